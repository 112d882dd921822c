package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/sesh-server/middleware"
	"github.com/vnkhanh/sesh-server/models"
	"github.com/vnkhanh/sesh-server/services"
)

// CreateSesh: tạo sesh mới, recipient nào không tồn tại thì bị loại lặng lẽ
func CreateSesh(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	var req struct {
		Game         string   `json:"game" binding:"required"`
		ProposedDay  string   `json:"proposed_day" binding:"required"`
		ProposedTime string   `json:"proposed_time" binding:"required"`
		Recipients   []string `json:"recipients" binding:"required,min=1"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Dữ liệu không hợp lệ",
			"error":   err.Error(),
		})
		return
	}

	sesh, err := services.Default.CreateSesh(&u, services.CreateSeshInput{
		Game:         req.Game,
		ProposedDay:  req.ProposedDay,
		ProposedTime: req.ProposedTime,
		Recipients:   req.Recipients,
	})
	if err != nil {
		respondSeshError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tạo sesh thành công",
		"data":    sesh,
	})
}

func GetSesh(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return
	}

	sesh, err := services.Default.GetSesh(uint(id))
	if err != nil {
		respondSeshError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sesh})
}

func GetSeshByShareURL(c *gin.Context) {
	sesh, err := services.Default.GetSeshByShareURL(c.Param("shareURL"))
	if err != nil {
		respondSeshError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sesh})
}

// AcceptSesh: unconfirmed -> confirmed; response trả sesh sau khi pool hai phía đã ghi
func AcceptSesh(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)
	sesh := c.MustGet("seshObj").(models.Sesh)

	updated, err := services.Default.Accept(u.ID, sesh.ID)
	if err != nil {
		respondSeshError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã accept sesh", "data": updated})
}

// DeclineSesh: unconfirmed -> declined
func DeclineSesh(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)
	sesh := c.MustGet("seshObj").(models.Sesh)

	updated, err := services.Default.Decline(u.ID, sesh.ID)
	if err != nil {
		respondSeshError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã decline sesh", "data": updated})
}

// respondSeshError map lỗi service sang status code cố định
func respondSeshError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Sesh không tồn tại", "error": err.Error()})
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Dữ liệu không hợp lệ", "error": err.Error()})
	case errors.Is(err, services.ErrNotInvited):
		c.JSON(http.StatusForbidden, gin.H{"message": "Bạn không ở danh sách chờ của sesh này", "error": err.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Không có quyền", "error": err.Error()})
	case errors.Is(err, services.ErrUpdateFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cập nhật thất bại", "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Lỗi hệ thống", "error": err.Error()})
	}
}
