package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	domainrepo "app/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgresのunique_violation
const pgUniqueViolation = "23505"

type userGormRepository struct {
	db *gorm.DB
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewUserRepository(db *gorm.DB) domainrepo.UserRepository {
	return &userGormRepository{db: db}
}

// ユーザーを新規作成
func (r *userGormRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return domainrepo.ErrDuplicateUser
		}
		return err
	}
	return nil
}

// IDでユーザーを1件取得
func (r *userGormRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// emailでユーザーを1件取得
func (r *userGormRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// usernameでユーザーを1件取得
func (r *userGormRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

// ログインIDはメールとユーザー名のどちらでも良い
func (r *userGormRepository) FindByEmailOrUsername(ctx context.Context, value string) (*model.User, error) {
	return r.findOne(ctx, "email = ? OR username = ?", value, value)
}

// 保存済みトークンでユーザーを1件取得
func (r *userGormRepository) FindBySessionToken(ctx context.Context, token string) (*model.User, error) {
	return r.findOne(ctx, "session_token = ?", token)
}

// セッショントークンを上書き
func (r *userGormRepository) UpdateSessionToken(ctx context.Context, id int64, token *string) error {
	return r.updateByID(ctx, id, map[string]interface{}{
		"session_token": token,
	})
}

// 再設定3点セットを1回のUPDATEでセット
func (r *userGormRepository) SetResetState(ctx context.Context, id int64, resetToken string, resetCode string, expiry time.Time) error {
	return r.updateByID(ctx, id, map[string]interface{}{
		"reset_token":  resetToken,
		"reset_code":   resetCode,
		"reset_expiry": expiry,
	})
}

// 新パスワード保存と再設定状態クリアを1回のUPDATEで行う
func (r *userGormRepository) ResetPassword(ctx context.Context, id int64, passwordHash string) error {
	return r.updateByID(ctx, id, map[string]interface{}{
		"password_hash": passwordHash,
		"reset_token":   nil,
		"reset_code":    nil,
		"reset_expiry":  nil,
	})
}

// プロフィール項目の部分更新
func (r *userGormRepository) UpdateProfile(ctx context.Context, id int64, username string, fullName string, phone string, address string) error {
	err := r.updateByID(ctx, id, map[string]interface{}{
		"username":  username,
		"full_name": fullName,
		"phone":     phone,
		"address":   address,
	})
	if isUniqueViolation(err) {
		return domainrepo.ErrDuplicateUser
	}
	return err
}

func (r *userGormRepository) findOne(ctx context.Context, query string, args ...interface{}) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where(query, args...).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

// 主キー1件に対する部分更新。0件更新は「対象がない」
func (r *userGormRepository) updateByID(ctx context.Context, id int64, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(fields)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrUserNotFound
	}
	return nil
}

// pgxのエラーコードでunique制約違反か判定
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}
