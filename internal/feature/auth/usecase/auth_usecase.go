// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"tasktracker/internal/feature/auth/domain/entity"
	jwtmw "tasktracker/internal/platform/jwt"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// TokenGenerator はJWTトークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID uint) (string, error)
}

// AuthResult は登録・ログイン成功時の結果（ユーザーと発行済みトークン）です。
// Userのパスワードハッシュは呼び出し元へ返す前にクリアされます。
type AuthResult struct {
	User  *entity.User
	Token string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	tokens TokenGenerator
}

// authUsecaseがIdentityLoaderを実装していることをコンパイル時に検証します。
var _ jwtmw.IdentityLoader = (*authUsecase)(nil)

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, tokens TokenGenerator) *authUsecase {
	return &authUsecase{
		users:  users,
		tokens: tokens,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
// HTTP境界のバインディング検証をすり抜けた場合の多層防御です。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters long", ErrWeakPassword, minPasswordLength)
	}
	return nil
}

// setPassword は平文パスワードをハッシュ化してユーザーに設定します。
// 平文がこの関数の外へ出ることはありません。
func setPassword(user *entity.User, plaintext string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)
	return nil
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、トークンを発行します。
// メールアドレスが既に使われている場合はErrEmailAlreadyExistsを返します。
func (u *authUsecase) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	// パスワード強度を検証
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	user := &entity.User{Name: name, Email: email}
	if err := setPassword(user, password); err != nil {
		return nil, err
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := u.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	user.Password = "" // ハッシュを境界の外へ出さない
	return &AuthResult{User: user, Token: token}, nil
}

// Login はユーザーを認証し、成功時にJWTトークンを返します。
// メールアドレスとパスワードを検証し、署名済みJWTトークンを生成します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	// メールアドレスでユーザーを検索
	user, err := u.users.FindByEmail(ctx, email)

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // ダミーハッシュ
	if err == nil {
		passwordHash = user.Password
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	// 第1引数はハッシュ化パスワード、第2引数は平文パスワード
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	token, tokenErr := u.tokens.GenerateToken(user.ID)
	if tokenErr != nil {
		return nil, fmt.Errorf("failed to generate token: %w", tokenErr)
	}

	user.Password = "" // ハッシュを境界の外へ出さない
	return &AuthResult{User: user, Token: token}, nil
}

// LoadIdentity は検証済みトークンのsubjectをリダクト済みのIdentityへ解決します。
// ユーザーが既に削除されている場合はjwtmw.ErrUnknownSubjectを返します（フェイルクローズ）。
func (u *authUsecase) LoadIdentity(ctx context.Context, id uint) (*jwtmw.Identity, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, jwtmw.ErrUnknownSubject
		}
		return nil, err
	}
	return &jwtmw.Identity{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}
