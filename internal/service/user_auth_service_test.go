package service

import (
	"errors"
	"testing"
	"time"

	"github.com/libris-next/internal/config"
	"github.com/libris-next/internal/constants"
	"github.com/libris-next/internal/repository"

	"gorm.io/gorm"
)

func newTestAuthService(db *gorm.DB) *UserAuthService {
	cfg := &config.Config{}
	cfg.UserJWT.SecretKey = "test-secret"
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{
		MinLength:     8,
		RequireNumber: true,
	}
	return NewUserAuthService(cfg, repository.NewUserRepository(db))
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestAuthService(db)

	user, token, expiresAt, err := svc.Register("  Reader@Example.COM ", "bookworm42", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "reader@example.com" {
		t.Fatalf("email should be normalized, got %s", user.Email)
	}
	if user.DisplayName != "reader" {
		t.Fatalf("display name should default from email, got %s", user.DisplayName)
	}
	if user.Status != constants.UserStatusActive {
		t.Fatalf("status want active got %s", user.Status)
	}
	if token == "" || !expiresAt.After(time.Now()) {
		t.Fatalf("token unexpected: %q expires %v", token, expiresAt)
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("claims unexpected: %+v", claims)
	}

	logged, token, _, err := svc.Login("reader@example.com", "bookworm42")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.ID != user.ID || token == "" {
		t.Fatalf("login result unexpected: %+v", logged)
	}
	if logged.LastLoginAt == nil {
		t.Fatal("last login time should be set")
	}

	if _, _, _, err := svc.Login("reader@example.com", "wrong-pass-1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login("nobody@example.com", "bookworm42"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestAuthService(db)

	if _, _, _, err := svc.Register("reader@example.com", "bookworm42", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, _, err := svc.Register("READER@example.com", "bookworm42", ""); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("want ErrEmailExists got %v", err)
	}
}

func TestRegisterInvalidEmail(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestAuthService(db)

	for _, email := range []string{"", "   ", "not-an-email", "a@"} {
		if _, _, _, err := svc.Register(email, "bookworm42", ""); !errors.Is(err, ErrInvalidEmail) {
			t.Fatalf("email %q want ErrInvalidEmail got %v", email, err)
		}
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestAuthService(db)

	// 太短
	_, _, _, err := svc.Register("reader@example.com", "short1", "")
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("want ErrWeakPassword got %v", err)
	}
	// 缺数字
	_, _, _, err = svc.Register("reader@example.com", "bookwormmm", "")
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("want ErrWeakPassword got %v", err)
	}
	// 错误携带本地化 key
	var keyed interface {
		Key() string
		Args() []interface{}
	}
	if !errors.As(err, &keyed) {
		t.Fatalf("weak password error should carry a message key, got %T", err)
	}
	if keyed.Key() != "error.password_require_number" {
		t.Fatalf("key want error.password_require_number got %s", keyed.Key())
	}
}

func TestLoginDisabledUser(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestAuthService(db)

	user, _, _, err := svc.Register("reader@example.com", "bookworm42", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	user.Status = constants.UserStatusDisabled
	if err := db.Save(user).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}

	if _, _, _, err := svc.Login("reader@example.com", "bookworm42"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("want ErrUserDisabled got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestAuthService(db)

	user, _, _, err := svc.Register("reader@example.com", "bookworm42", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	name := "Bibliophile"
	locale := "zh-CN"
	updated, err := svc.UpdateProfile(user.ID, &name, &locale)
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.DisplayName != "Bibliophile" || updated.Locale != "zh-CN" {
		t.Fatalf("profile unexpected: %+v", updated)
	}

	// 全空更新拒绝
	empty := "   "
	if _, err := svc.UpdateProfile(user.ID, &empty, nil); !errors.Is(err, ErrProfileEmpty) {
		t.Fatalf("want ErrProfileEmpty got %v", err)
	}
	if _, err := svc.UpdateProfile(user.ID, nil, nil); !errors.Is(err, ErrProfileEmpty) {
		t.Fatalf("want ErrProfileEmpty got %v", err)
	}

	if _, err := svc.UpdateProfile(999, &name, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound got %v", err)
	}
}
