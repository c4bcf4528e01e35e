package model

import "time"

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"uniqueIndex;not null"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	FullName     string `gorm:"not null"`
	Phone        string
	Address      string
	RoleID       int `gorm:"not null;default:2"`

	// 最後に発行したセッショントークン（単一セッション運用時はログインごとに上書き）
	SessionToken *string `gorm:"index"`

	// パスワード再設定の3点セット。成功・期限切れで必ず同時にnullへ戻す
	ResetToken  *string
	ResetCode   *string `gorm:"type:varchar(6)"`
	ResetExpiry *time.Time

	RegisteredAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleIDを閉じた列挙へ変換（不明値はCUSTOMER扱い）
func (u *User) Role() Role {
	return RoleFromID(u.RoleID)
}

// 再設定フローが進行中かどうか
func (u *User) HasPendingReset() bool {
	return u.ResetToken != nil && u.ResetCode != nil && u.ResetExpiry != nil
}
