package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/sesh-server/config"
	"github.com/vnkhanh/sesh-server/models"
)

// LoadSesh: nạp sesh từ param :id vào context cho các route RSVP
func LoadSesh() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
			return
		}

		var sesh models.Sesh
		if err := config.DB.First(&sesh, id).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "Sesh không tồn tại"})
			return
		}

		// Đưa sesh vào context để controller dùng tiếp
		c.Set("seshObj", sesh)
		c.Next()
	}
}
