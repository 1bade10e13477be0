package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/survey-gen-server/config"
	"github.com/vnkhanh/survey-gen-server/utils"
)

type loginReq struct {
	Password string `json:"password" binding:"required"`
}

// Login đổi mật khẩu admin lấy JWT cho nhóm route /api/admin.
// Chỉ có một tài khoản admin, hash lưu trong ADMIN_PASSWORD_HASH.
func Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ"})
		return
	}

	hash := config.App.AdminPasswordHash
	if hash == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Admin login chưa được cấu hình"})
		return
	}
	if !utils.CheckPassword(hash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Sai thông tin đăng nhập"})
		return
	}

	token, err := utils.GenerateToken("admin", "admin")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể tạo token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
