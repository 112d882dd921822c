package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/sesh-server/config"
	"github.com/vnkhanh/sesh-server/middleware"
	"github.com/vnkhanh/sesh-server/models"
)

// GetUserByEmail: tra cứu user theo ?email= (dùng khi gõ danh sách recipient)
func GetUserByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Thiếu email"})
		return
	}

	var nd models.NguoiDung
	// không kéo pool + mật khẩu về cho lookup công khai
	err := config.DB.
		Select("id", "ten", "email", "image", "favorite_games").
		Where("email = ?", email).
		First(&nd).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User không tồn tại"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"id":             nd.ID,
		"ten":            nd.Ten,
		"email":          nd.Email,
		"image":          nd.Image,
		"favorite_games": nd.FavoriteGames,
	}})
}

func GetUserByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return
	}

	var nd models.NguoiDung
	if err := config.DB.
		Select("id", "ten", "email", "image", "favorite_games", "supporter").
		First(&nd, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User không tồn tại"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"id":             nd.ID,
		"ten":            nd.Ten,
		"email":          nd.Email,
		"image":          nd.Image,
		"favorite_games": nd.FavoriteGames,
		"supporter":      nd.Supporter,
	}})
}

// UpdateMe: PATCH profile. Không phải admin thì không được tự đổi vai_tro/supporter.
func UpdateMe(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	var req struct {
		Ten           *string   `json:"ten"`
		Image         *string   `json:"image"`
		FavoriteGames *[]string `json:"favorite_games"`
		Supporter     *bool     `json:"supporter"`
		VaiTro        *bool     `json:"vai_tro"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Dữ liệu không hợp lệ"})
		return
	}

	if (req.VaiTro != nil || req.Supporter != nil) && !u.VaiTro {
		c.JSON(http.StatusForbidden, gin.H{"message": "Bạn không có quyền thay đổi các trường này"})
		return
	}

	// update từng field nếu có
	if req.Ten != nil {
		u.Ten = *req.Ten
	}
	if req.Image != nil {
		u.Image = req.Image
	}
	if req.FavoriteGames != nil {
		u.FavoriteGames = *req.FavoriteGames
	}
	if req.Supporter != nil {
		u.Supporter = *req.Supporter
	}
	if req.VaiTro != nil {
		u.VaiTro = *req.VaiTro
	}

	if err := config.DB.Save(&u).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không cập nhật được profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cập nhật thành công", "data": gin.H{
		"id":             u.ID,
		"ten":            u.Ten,
		"email":          u.Email,
		"image":          u.Image,
		"favorite_games": u.FavoriteGames,
		"supporter":      u.Supporter,
		"vai_tro":        u.VaiTro,
	}})
}

// ListUsers: admin xem toàn bộ user
func ListUsers(c *gin.Context) {
	var users []models.NguoiDung
	if err := config.DB.Select("id", "ten", "email", "vai_tro", "ngay_tao").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được danh sách user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users, "total": len(users)})
}
