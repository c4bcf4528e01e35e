package auth

import (
	"strings"

	"app/internal/domain/model"
)

// 登録時の役割判定はポリシーなので差し替え可能にする
type RoleClassifier interface {
	Classify(email string, username string) model.Role
}

// ROLE_POLICYの値から実装を選ぶ（不明値はsuffix）
func NewRoleClassifier(policy string) RoleClassifier {
	if policy == "pattern" {
		return &PatternRoleClassifier{}
	}
	return &SuffixRoleClassifier{}
}

// ユーザー名の末尾（.admin / .staff）で判定する
type SuffixRoleClassifier struct{}

func (c *SuffixRoleClassifier) Classify(email string, username string) model.Role {
	if strings.HasSuffix(username, ".admin") {
		return model.RoleAdmin
	}
	if strings.HasSuffix(username, ".staff") {
		return model.RoleStaff
	}
	return model.RoleCustomer
}

// メール・ユーザー名のパターンで判定する
type PatternRoleClassifier struct{}

var (
	adminEmailParts    = []string{"@admin.", "admin@", ".admin@"}
	adminUsernameParts = []string{"admin_", "_admin", "administrator"}
	adminDomains       = []string{"admin.com", "admin.net", "admin.org"}

	staffEmailParts    = []string{"@staff.", "staff@", ".staff@"}
	staffUsernameParts = []string{"staff_", "_staff", "employee_"}
	staffDomains       = []string{"staff.com", "staff.net", "company-staff.com"}
)

func (c *PatternRoleClassifier) Classify(email string, username string) model.Role {
	emailLower := strings.ToLower(email)
	usernameLower := strings.ToLower(username)

	if matchAny(emailLower, adminEmailParts) ||
		matchAny(usernameLower, adminUsernameParts) ||
		endsWithAny(emailLower, adminDomains) {
		return model.RoleAdmin
	}

	if matchAny(emailLower, staffEmailParts) ||
		matchAny(usernameLower, staffUsernameParts) ||
		endsWithAny(emailLower, staffDomains) {
		return model.RoleStaff
	}

	return model.RoleCustomer
}

func matchAny(s string, parts []string) bool {
	for _, p := range parts {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func endsWithAny(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}
