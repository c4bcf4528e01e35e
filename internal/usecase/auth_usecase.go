package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/mail"
	"app/internal/repository"
	"app/internal/token"
	auth "app/internal/usecase/auth_usecase"
)

var (
	//400 入力不足
	ErrValidation = errors.New("validation error")
	//401 認証失敗
	ErrUnauthorized = errors.New("unauthorized")
	//404 ユーザー・再設定状態が無い
	ErrNotFound = errors.New("not found")
	//409 email/username重複
	ErrConflict = errors.New("conflict")
	//400 再設定の期限切れ
	ErrExpired = errors.New("expired")
	//400 コード不一致・トークン不正
	ErrInvalidResetCode = errors.New("invalid reset code")
	//500
	ErrInternal = errors.New("internal error")
)

// フィールド単位の検証エラー詳細
type FieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Details []FieldDetail
}

func (e *ValidationError) Error() string {
	return "validation error"
}

// errors.Is(err, ErrValidation) で拾えるようにする
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func NewValidationError(details ...FieldDetail) *ValidationError {
	return &ValidationError{Details: details}
}

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, req AuthRegisterRequest) error
	ValidateLogin(ctx context.Context, req AuthLoginRequest) error
	ValidateForgotPassword(ctx context.Context, email string) error
	ValidateResetPassword(ctx context.Context, req ResetPasswordRequest) error
	ValidateUpdateProfile(ctx context.Context, req UpdateProfileRequest) error
}

// トークン発行・再設定トークン検証の約束
type TokenService interface {
	Issue(user *model.User) (string, time.Time, error)
	IssueReset(userID int64) (string, error)
	VerifyReset(raw string) (*token.ResetClaims, error)
}

type UserDTO struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"fullname"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Role     string `json:"role"`
	RoleID   int    `json:"roleId"`
}

type AuthRegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullname"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type AuthLoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

type UpdateProfileRequest struct {
	Username string `json:"username"`
	FullName string `json:"fullname"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// 登録・ログインの共通レスポンス（token＋役割ごとのリダイレクト先）
type AuthSessionResponse struct {
	Message    string  `json:"message,omitempty"`
	User       UserDTO `json:"user"`
	Token      string  `json:"token"`
	RedirectTo string  `json:"redirectTo"`
}

type AuthUsecase struct {
	cfg        config.Config
	users      repository.UserRepository
	tokens     TokenService
	hasher     auth.PasswordHasher
	verifier   auth.PasswordVerifier
	classifier auth.RoleClassifier
	mailer     mail.Sender
	validator  AuthValidator
	clock      auth.Clock
}

func NewAuthUsecase(
	cfg config.Config,
	users repository.UserRepository,
	tokens TokenService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	classifier auth.RoleClassifier,
	mailer mail.Sender,
	validator AuthValidator,
	clock auth.Clock,
) *AuthUsecase {
	return &AuthUsecase{
		cfg:        cfg,
		users:      users,
		tokens:     tokens,
		hasher:     hasher,
		verifier:   verifier,
		classifier: classifier,
		mailer:     mailer,
		validator:  validator,
		clock:      clock,
	}
}

// 会員登録。成功時はtokenとロール別リダイレクト先を返す
func (u *AuthUsecase) Register(ctx context.Context, req AuthRegisterRequest) (*AuthSessionResponse, error) {
	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, req); err != nil {
		return nil, err
	}

	//役割判定はポリシー差し替え可能
	role := u.classifier.Classify(req.Email, req.Username)

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := u.hasher.Hash(req.Password)
	if err != nil {
		return nil, ErrInternal
	}

	now := u.clock.Now()
	user := &model.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: pwHash,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Address:      req.Address,
		RoleID:       int(role),
		RegisteredAt: now,
	}

	//保存（email/username重複はunique制約で弾く）
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, ErrConflict
		}
		return nil, ErrInternal
	}

	//token発行＋保存（初回セッション）
	signed, _, err := u.tokens.Issue(user)
	if err != nil {
		return nil, ErrInternal
	}
	if err := u.users.UpdateSessionToken(ctx, user.ID, &signed); err != nil {
		return nil, ErrInternal
	}

	return &AuthSessionResponse{
		Message:    fmt.Sprintf("Successfully registered as %s", user.Role().DisplayName()),
		User:       toUserDTO(user),
		Token:      signed,
		RedirectTo: user.Role().HomeRoute(),
	}, nil
}

// ログイン。メールまたはユーザー名＋パスワード
func (u *AuthUsecase) Login(ctx context.Context, req AuthLoginRequest) (*AuthSessionResponse, error) {
	if err := u.validator.ValidateLogin(ctx, req); err != nil {
		return nil, err
	}

	user, err := u.users.FindByEmailOrUsername(ctx, req.UsernameOrEmail)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, ErrInternal
	}

	//パスワード照合（bcrypt）
	if ok := u.verifier.Verify(req.Password, user.PasswordHash); !ok {
		return nil, ErrUnauthorized
	}

	//token発行
	signed, _, err := u.tokens.Issue(user)
	if err != nil {
		return nil, ErrInternal
	}

	//単一セッション運用なら保存tokenを上書き＝旧セッション失効
	if u.cfg.SingleSession {
		if err := u.users.UpdateSessionToken(ctx, user.ID, &signed); err != nil {
			return nil, ErrInternal
		}
	}

	return &AuthSessionResponse{
		User:       toUserDTO(user),
		Token:      signed,
		RedirectTo: user.Role().HomeRoute(),
	}, nil
}

// 再設定コードの発行。メール送信に成功した場合だけ状態を保存する
func (u *AuthUsecase) ForgotPassword(ctx context.Context, email string) error {
	if err := u.validator.ValidateForgotPassword(ctx, email); err != nil {
		return err
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}

	code, err := generateResetCode()
	if err != nil {
		return ErrInternal
	}

	//送信が先。失敗したら状態はNONEのまま
	if err := u.mailer.SendResetCode(ctx, user.Email, code); err != nil {
		return ErrInternal
	}

	resetToken, err := u.tokens.IssueReset(user.ID)
	if err != nil {
		return ErrInternal
	}

	expiry := u.clock.Now().Add(token.ResetTokenTTL)
	if err := u.users.SetResetState(ctx, user.ID, resetToken, code, expiry); err != nil {
		return ErrInternal
	}

	return nil
}

// 再設定の確定。前提チェックをすべて通ってから初めて書き込む
func (u *AuthUsecase) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if err := u.validator.ValidateResetPassword(ctx, req); err != nil {
		return err
	}

	user, err := u.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}

	//進行中の再設定が無ければ404（使用済みコードの再送もここに落ちる）
	if !user.HasPendingReset() {
		return ErrNotFound
	}

	//期限切れ
	if u.clock.Now().After(*user.ResetExpiry) {
		return ErrExpired
	}

	//コード不一致
	if *user.ResetCode != req.Code {
		return ErrInvalidResetCode
	}

	//再設定トークンの署名・期限・持ち主を確認
	claims, err := u.tokens.VerifyReset(*user.ResetToken)
	if err != nil {
		return ErrInvalidResetCode
	}
	ownerID, err := claims.UserID()
	if err != nil || ownerID != user.ID {
		return ErrInvalidResetCode
	}

	pwHash, err := u.hasher.Hash(req.NewPassword)
	if err != nil {
		return ErrInternal
	}

	//新パスワード保存と3点セットのクリアは同一UPDATE
	if err := u.users.ResetPassword(ctx, user.ID, pwHash); err != nil {
		return ErrInternal
	}

	return nil
}

// 認証済みユーザー自身のプロフィール
func (u *AuthUsecase) Me(ctx context.Context, userID int64) (*UserDTO, error) {
	if userID <= 0 {
		return nil, ErrUnauthorized
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, ErrInternal
	}

	dto := toUserDTO(user)
	return &dto, nil
}

// プロフィール更新（username変更時は重複チェック）
func (u *AuthUsecase) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*UserDTO, error) {
	if userID <= 0 {
		return nil, ErrUnauthorized
	}

	if err := u.validator.ValidateUpdateProfile(ctx, req); err != nil {
		return nil, err
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInternal
	}

	if req.Username != user.Username {
		existing, err := u.users.FindByUsername(ctx, req.Username)
		if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInternal
		}
		if existing != nil {
			return nil, ErrConflict
		}
	}

	if err := u.users.UpdateProfile(ctx, user.ID, req.Username, req.FullName, req.Phone, req.Address); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, ErrConflict
		}
		return nil, ErrInternal
	}

	user.Username = req.Username
	user.FullName = req.FullName
	user.Phone = req.Phone
	user.Address = req.Address

	dto := toUserDTO(user)
	return &dto, nil
}

// model.UserをAPI返却用DTOに変換。
func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		FullName: u.FullName,
		Phone:    u.Phone,
		Address:  u.Address,
		Role:     u.Role().DisplayName(),
		RoleID:   int(u.Role()),
	}
}

// 6桁のゼロ埋めコード（crypto/randで一様乱数）
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
