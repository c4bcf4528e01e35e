package token

import (
	"strconv"
	"testing"
	"time"

	"app/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testUser() *model.User {
	return &model.User{
		ID:       42,
		Email:    "user@test.com",
		Username: "user42",
		Phone:    "0123456789",
		Address:  "Somewhere 1",
		RoleID:   int(model.RoleStaff),
	}
}

// 署名キー無しではサービスを作れない
func TestNewService_EmptySecret(t *testing.T) {
	_, err := NewService("")
	assert.Error(t, err)
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	svc, err := NewService(testSecret)
	require.NoError(t, err)

	signed, expiresAt, err := svc.Issue(testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.WithinDuration(t, time.Now().Add(AccessTokenTTL), expiresAt, 5*time.Second)

	claims, err := svc.Verify(signed)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "user@test.com", claims.Email)
	assert.Equal(t, "user42", claims.Username)
	assert.Equal(t, int(model.RoleStaff), claims.Role)
}

// 期限切れは検証失敗
func TestVerify_Expired(t *testing.T) {
	svc, err := NewService(testSecret)
	require.NoError(t, err)
	svc.AccessTTL = -time.Minute

	signed, _, err := svc.Issue(testUser())
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// 別キーで署名されたtokenは拒否
func TestVerify_WrongKey(t *testing.T) {
	other, err := NewService("another-secret")
	require.NoError(t, err)
	signed, _, err := other.Issue(testUser())
	require.NoError(t, err)

	svc, err := NewService(testSecret)
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// HS256以外のアルゴリズムは同じキーでも拒否
func TestVerify_WrongAlgorithm(t *testing.T) {
	claims := AccessClaims{
		Role: int(model.RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	svc, err := NewService(testSecret)
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	svc, err := NewService(testSecret)
	require.NoError(t, err)

	_, err = svc.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResetToken_RoundTrip(t *testing.T) {
	svc, err := NewService(testSecret)
	require.NoError(t, err)

	signed, err := svc.IssueReset(7)
	require.NoError(t, err)

	claims, err := svc.VerifyReset(signed)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, strconv.FormatInt(7, 10), claims.Subject)
	assert.NotEmpty(t, claims.ID, "jti")
}

// セッショントークンを再設定トークンとして流用できない
func TestVerifyReset_RejectsAccessToken(t *testing.T) {
	svc, err := NewService(testSecret)
	require.NoError(t, err)

	signed, _, err := svc.Issue(testUser())
	require.NoError(t, err)

	_, err = svc.VerifyReset(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResetToken_Expired(t *testing.T) {
	svc, err := NewService(testSecret)
	require.NoError(t, err)
	svc.ResetTTL = -time.Minute

	signed, err := svc.IssueReset(7)
	require.NoError(t, err)

	_, err = svc.VerifyReset(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
