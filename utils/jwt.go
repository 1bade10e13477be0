package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken tạo JWT token cho admin, hạn 24h
func GenerateToken(subject string, role string) (string, error) {
	jwtKey := []byte(os.Getenv("JWT_SECRET")) // Đọc tại thời điểm gọi
	if len(jwtKey) == 0 {
		return "", errors.New("JWT_SECRET không được thiết lập")
	}

	claims := AdminClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// VerifyToken xác minh và parse JWT token
func VerifyToken(tokenStr string) (*AdminClaims, error) {
	jwtKey := []byte(os.Getenv("JWT_SECRET")) // Đọc tại thời điểm gọi
	if len(jwtKey) == 0 {
		return nil, errors.New("JWT_SECRET không được thiết lập")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*AdminClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("token không hợp lệ")
}
