package token

import (
	"errors"
	"strconv"
	"time"

	"app/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// 期限切れ・改ざん・別アルゴリズムなどは全部これに畳む
var ErrInvalidToken = errors.New("invalid token")

const (
	// セッショントークンの有効期限
	AccessTokenTTL = 24 * time.Hour
	// 再設定トークンの有効期限
	ResetTokenTTL = 15 * time.Minute

	resetPurpose = "password_reset"
)

// セッショントークンのclaims
type AccessClaims struct {
	Email    string `json:"email,omitempty"`
	Role     int    `json:"role"`
	Username string `json:"username,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	jwt.RegisteredClaims
}

// subをint64のユーザーIDに戻す
func (c *AccessClaims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// 再設定トークンのclaims
type ResetClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

func (c *ResetClaims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// ServiceはHS256固定でトークンを発行・検証する
type Service struct {
	secret    []byte
	AccessTTL time.Duration
	ResetTTL  time.Duration
}

// 署名キーが空なら生成しない（fail-closed）
func NewService(secret string) (*Service, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret is required")
	}
	return &Service{
		secret:    []byte(secret),
		AccessTTL: AccessTokenTTL,
		ResetTTL:  ResetTokenTTL,
	}, nil
}

// セッショントークンを発行
func (s *Service) Issue(user *model.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.AccessTTL)

	claims := AccessClaims{
		Email:    user.Email,
		Role:     int(user.Role()),
		Username: user.Username,
		Phone:    user.Phone,
		Address:  user.Address,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// セッショントークンを検証してclaimsを返す
func (s *Service) Verify(raw string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := s.parse(raw, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// 再設定トークンを発行（ユーザーIDに紐付け）
func (s *Service) IssueReset(userID int64) (string, error) {
	now := time.Now()

	claims := ResetClaims{
		Purpose: resetPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ResetTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// 再設定トークンを検証
func (s *Service) VerifyReset(raw string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	if err := s.parse(raw, claims); err != nil {
		return nil, err
	}
	if claims.Purpose != resetPurpose {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) parse(raw string, claims jwt.Claims) error {
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		// アルゴリズム差し替え攻撃対策でHS256以外は拒否
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || tok == nil || !tok.Valid {
		return ErrInvalidToken
	}
	return nil
}
