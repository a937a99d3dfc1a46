package models

import (
	"strings"

	"github.com/libris-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDemoUser 初始化演示用户账号（已有任意用户时跳过）
func InitDemoUser(email, password string) error {
	var count int64
	DB.Model(&User{}).Count(&count)
	if count > 0 {
		return nil
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		email = "reader@example.com"
	}
	if password == "" {
		password = "reader123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  "Demo Reader",
	}
	if err := DB.Create(&user).Error; err != nil {
		return err
	}

	if password == "reader123" {
		logger.Warnw("demo_user_created_with_default_password", "email", email, "password", password)
	} else {
		logger.Warnw("demo_user_created", "email", email, "password_hidden", true)
	}
	return nil
}
