package controllers

import (
    "net/http"
    "os"

    "github.com/gin-gonic/gin"
    "github.com/vnkhanh/sesh-server/config"
    "github.com/vnkhanh/sesh-server/middleware"
    "github.com/vnkhanh/sesh-server/models"
    "github.com/vnkhanh/sesh-server/utils"
    "google.golang.org/api/idtoken"
)

type DangKyReq struct {
    Ten     string `json:"ten" binding:"required,min=1"`
    Email   string `json:"email" binding:"required,email"`
    MatKhau string `json:"mat_khau" binding:"required,min=6"`
}

func Register(c *gin.Context) {
    var req DangKyReq
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
        return
    }

    var count int64
    config.DB.Model(&models.NguoiDung{}).Where("email = ?", req.Email).Count(&count)
    if count > 0 {
        c.JSON(http.StatusConflict, gin.H{"message": "Email đã tồn tại"})
        return
    }

    hash, err := utils.HashPassword(req.MatKhau)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể mã hóa mật khẩu"})
        return
    }

    nd := models.NguoiDung{
        Ten:     req.Ten,
        Email:   req.Email,
        MatKhau: hash,
        VaiTro:  false,
    }

    if err := config.DB.Create(&nd).Error; err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể tạo tài khoản"})
        return
    }

    c.JSON(http.StatusCreated, gin.H{
        "user": gin.H{
            "id":       nd.ID,
            "ten":      nd.Ten,
            "email":    nd.Email,
            "vai_tro":  nd.VaiTro,
            "ngay_tao": nd.NgayTao,
        },
    })
}

type DangNhapReq struct {
    Email   string `json:"email" binding:"required,email"`
    MatKhau string `json:"mat_khau" binding:"required"`
}

func Login(c *gin.Context) {
    var req DangNhapReq
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
        return
    }

    var nd models.NguoiDung
    if err := config.DB.Where("email = ?", req.Email).First(&nd).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"message": "Email chưa đăng ký"})
        return
    }

    if !utils.CheckPassword(nd.MatKhau, req.MatKhau) {
        c.JSON(http.StatusUnauthorized, gin.H{"message": "Email hoặc mật khẩu không đúng"})
        return
    }

    token, err := utils.GenerateToken(nd.ID, nd.Email, roleOf(nd))
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"message": "Không tạo được token"})
        return
    }

    c.JSON(http.StatusOK, gin.H{
        "token": token,
        "user": gin.H{
            "id":      nd.ID,
            "ten":     nd.Ten,
            "email":   nd.Email,
            "vai_tro": nd.VaiTro,
        },
    })
}

// GoogleLoginHandler verify ID token từ client, tự tạo tài khoản nếu email chưa có
func GoogleLoginHandler(c *gin.Context) {
    var req struct {
        IDToken string `json:"id_token" binding:"required"`
    }
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"message": "Thiếu id_token"})
        return
    }

    payload, err := idtoken.Validate(c.Request.Context(), req.IDToken, os.Getenv("GOOGLE_CLIENT_ID"))
    if err != nil {
        c.JSON(http.StatusUnauthorized, gin.H{"message": "Google token không hợp lệ"})
        return
    }

    email, _ := payload.Claims["email"].(string)
    if email == "" {
        c.JSON(http.StatusUnauthorized, gin.H{"message": "Google token thiếu email"})
        return
    }
    name, _ := payload.Claims["name"].(string)
    picture, _ := payload.Claims["picture"].(string)

    var nd models.NguoiDung
    if err := config.DB.Where("email = ?", email).First(&nd).Error; err != nil {
        nd = models.NguoiDung{
            Ten:   name,
            Email: email,
        }
        if picture != "" {
            nd.Image = &picture
        }
        if err := config.DB.Create(&nd).Error; err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể tạo tài khoản"})
            return
        }
    }

    token, err := utils.GenerateToken(nd.ID, nd.Email, roleOf(nd))
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"message": "Không tạo được token"})
        return
    }

    c.JSON(http.StatusOK, gin.H{"token": token, "user": gin.H{
        "id":      nd.ID,
        "ten":     nd.Ten,
        "email":   nd.Email,
        "vai_tro": nd.VaiTro,
    }})
}

func Me(c *gin.Context) {
    c.JSON(http.StatusOK, gin.H{"user": c.MustGet(middleware.CtxUserPublic)})
}

func roleOf(nd models.NguoiDung) string {
    if nd.VaiTro {
        return "admin"
    }
    return "user"
}
