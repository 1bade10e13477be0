package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword dùng để sinh giá trị cho ADMIN_PASSWORD_HASH.
func HashPassword(raw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
