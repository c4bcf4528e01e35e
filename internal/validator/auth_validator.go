package validator

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"app/internal/usecase"
)

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.]+$`)
	phoneRe    = regexp.MustCompile(`^[0-9]{10}$`)
	codeRe     = regexp.MustCompile(`^[0-9]{6}$`)
)

type authValidator struct{}

// Usecaseは interface を依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

// 会員登録の入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, req usecase.AuthRegisterRequest) error {
	var details []usecase.FieldDetail

	if !isEmailLike(req.Email) {
		details = append(details, usecase.FieldDetail{Field: "email", Message: "invalid email"})
	}
	if len(req.Username) < 3 || !usernameRe.MatchString(req.Username) {
		details = append(details, usecase.FieldDetail{
			Field:   "username",
			Message: "username must be at least 3 characters (letters, numbers, underscores, dots)",
		})
	}
	if msg := passwordMessage(req.Password); msg != "" {
		details = append(details, usecase.FieldDetail{Field: "password", Message: msg})
	}
	if len(strings.TrimSpace(req.FullName)) < 2 {
		details = append(details, usecase.FieldDetail{Field: "fullname", Message: "full name must be at least 2 characters"})
	}
	if !phoneRe.MatchString(req.Phone) {
		details = append(details, usecase.FieldDetail{Field: "phone", Message: "invalid phone number"})
	}
	if strings.TrimSpace(req.Address) == "" {
		details = append(details, usecase.FieldDetail{Field: "address", Message: "address is required"})
	}

	if len(details) > 0 {
		return usecase.NewValidationError(details...)
	}
	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, req usecase.AuthLoginRequest) error {
	var details []usecase.FieldDetail

	if strings.TrimSpace(req.UsernameOrEmail) == "" {
		details = append(details, usecase.FieldDetail{Field: "usernameOrEmail", Message: "email or username is required"})
	}
	if req.Password == "" {
		details = append(details, usecase.FieldDetail{Field: "password", Message: "password is required"})
	}

	if len(details) > 0 {
		return usecase.NewValidationError(details...)
	}
	return nil
}

// 再設定コード発行の入力を検証
func (v *authValidator) ValidateForgotPassword(ctx context.Context, email string) error {
	if !isEmailLike(email) {
		return usecase.NewValidationError(usecase.FieldDetail{Field: "email", Message: "invalid email"})
	}
	return nil
}

// 再設定確定の入力を検証
func (v *authValidator) ValidateResetPassword(ctx context.Context, req usecase.ResetPasswordRequest) error {
	var details []usecase.FieldDetail

	if !isEmailLike(req.Email) {
		details = append(details, usecase.FieldDetail{Field: "email", Message: "invalid email"})
	}
	if !codeRe.MatchString(req.Code) {
		details = append(details, usecase.FieldDetail{Field: "code", Message: "code must be 6 digits"})
	}
	if msg := passwordMessage(req.NewPassword); msg != "" {
		details = append(details, usecase.FieldDetail{Field: "newPassword", Message: msg})
	}

	if len(details) > 0 {
		return usecase.NewValidationError(details...)
	}
	return nil
}

// プロフィール更新の入力を検証
func (v *authValidator) ValidateUpdateProfile(ctx context.Context, req usecase.UpdateProfileRequest) error {
	var details []usecase.FieldDetail

	if len(req.Username) < 3 || !usernameRe.MatchString(req.Username) {
		details = append(details, usecase.FieldDetail{
			Field:   "username",
			Message: "username must be at least 3 characters (letters, numbers, underscores, dots)",
		})
	}
	if len(strings.TrimSpace(req.FullName)) < 2 {
		details = append(details, usecase.FieldDetail{Field: "fullname", Message: "full name must be at least 2 characters"})
	}
	if !phoneRe.MatchString(req.Phone) {
		details = append(details, usecase.FieldDetail{Field: "phone", Message: "invalid phone number"})
	}
	if strings.TrimSpace(req.Address) == "" {
		details = append(details, usecase.FieldDetail{Field: "address", Message: "address is required"})
	}

	if len(details) > 0 {
		return usecase.NewValidationError(details...)
	}
	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// 最小6文字・大文字/小文字/数字を各1つ以上
func passwordMessage(password string) string {
	if len(password) < 6 {
		return "password must be at least 6 characters"
	}

	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLower || !hasUpper || !hasDigit {
		return "password must contain at least 1 uppercase letter, 1 lowercase letter, and 1 number"
	}
	return ""
}
