package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
	"time"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// email/usernameのunique制約違反
var ErrDuplicateUser = errors.New("duplicate user")

// ユーザーレコードの保存・取得・部分更新を約束
type UserRepository interface {
	// 新規ユーザー作成（email/username重複はErrDuplicateUser）
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得
	FindByID(ctx context.Context, id int64) (*model.User, error)
	// メールからユーザーを1件取得
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// ユーザー名からユーザーを1件取得
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// ログイン入力（メールまたはユーザー名）で1件取得
	FindByEmailOrUsername(ctx context.Context, value string) (*model.User, error)
	// 保存済みセッショントークンで1件取得
	FindBySessionToken(ctx context.Context, token string) (*model.User, error)

	// セッショントークンを上書き（nilで失効）
	UpdateSessionToken(ctx context.Context, id int64, token *string) error
	// 再設定3点セット（token/code/expiry）を同一更新でセット
	SetResetState(ctx context.Context, id int64, resetToken string, resetCode string, expiry time.Time) error
	// 新パスワードの保存と再設定3点セットのクリアを同一更新で行う
	ResetPassword(ctx context.Context, id int64, passwordHash string) error
	// プロフィール項目の部分更新（usernameの重複はErrDuplicateUser）
	UpdateProfile(ctx context.Context, id int64, username string, fullName string, phone string, address string) error
}
