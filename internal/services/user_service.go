package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"

	"belediyeBack/internal/models"
)

type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUserByID(ctx context.Context, id int64) (models.User, error)
	GetUserByLogin(ctx context.Context, login string) (models.User, error)
	ListUsers(ctx context.Context, f models.UserFilter) ([]models.User, int, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	CreateSession(ctx context.Context, session models.Session) error
	GetSessionByToken(ctx context.Context, token string) (models.Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// TokenIssuer signs access tokens and mints refresh tokens.
type TokenIssuer interface {
	NewJWT(userID int64, role string, expiresAt time.Time) (string, error)
	NewRefreshToken() (string, error)
}

type UserService struct {
	UserRepo   UserStore
	Tokens     TokenIssuer
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Clock      clockwork.Clock
}

func (s *UserService) SignUp(ctx context.Context, req models.SignUpRequest) (models.Tokens, error) {
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateStruct(req); err != nil {
		return models.Tokens{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Tokens{}, err
	}

	user, err := s.UserRepo.CreateUser(ctx, models.User{
		Name:         strings.TrimSpace(req.Name),
		Phone:        req.Phone,
		Email:        req.Email,
		Role:         models.RoleCitizen,
		PasswordHash: string(hash),
	})
	if err != nil {
		return models.Tokens{}, err
	}

	return s.CreateSession(ctx, user)
}

func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.Tokens, error) {
	if err := validateStruct(req); err != nil {
		return models.Tokens{}, err
	}

	user, err := s.UserRepo.GetUserByLogin(ctx, strings.TrimSpace(req.Login))
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			return models.Tokens{}, models.ErrInvalidCredentials
		}
		return models.Tokens{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return models.Tokens{}, models.ErrInvalidCredentials
	}

	return s.CreateSession(ctx, user)
}

// Refresh rotates a refresh token: the old session is removed and a new pair issued.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (models.Tokens, error) {
	if refreshToken == "" {
		return models.Tokens{}, models.ErrUnauthorized
	}

	session, err := s.UserRepo.GetSessionByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			return models.Tokens{}, models.ErrUnauthorized
		}
		return models.Tokens{}, err
	}

	// Only the request whose delete removed the row may issue new tokens.
	if err := s.UserRepo.DeleteSession(ctx, refreshToken); err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			return models.Tokens{}, models.ErrUnauthorized
		}
		return models.Tokens{}, err
	}
	if !session.ExpiresAt.After(now(s.Clock)) {
		return models.Tokens{}, models.ErrUnauthorized
	}

	user, err := s.UserRepo.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			return models.Tokens{}, models.ErrUnauthorized
		}
		return models.Tokens{}, err
	}

	return s.CreateSession(ctx, user)
}

// SignOut drops the refresh token. Unknown tokens are ignored.
func (s *UserService) SignOut(ctx context.Context, refreshToken string) error {
	err := s.UserRepo.DeleteSession(ctx, refreshToken)
	if errors.Is(err, models.ErrNoRecord) {
		return nil
	}
	return err
}

func (s *UserService) CreateSession(ctx context.Context, user models.User) (models.Tokens, error) {
	issuedAt := now(s.Clock)

	expiresAt := issuedAt.Add(s.AccessTTL)
	access, err := s.Tokens.NewJWT(user.ID, user.Role, expiresAt)
	if err != nil {
		return models.Tokens{}, err
	}

	refresh, err := s.Tokens.NewRefreshToken()
	if err != nil {
		return models.Tokens{}, err
	}

	err = s.UserRepo.CreateSession(ctx, models.Session{
		UserID:       user.ID,
		RefreshToken: refresh,
		ExpiresAt:    issuedAt.Add(s.RefreshTTL),
	})
	if err != nil {
		return models.Tokens{}, err
	}

	return models.Tokens{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
		User:         user,
	}, nil
}

func (s *UserService) PurgeSessions(ctx context.Context) (int64, error) {
	return s.UserRepo.DeleteExpiredSessions(ctx, now(s.Clock))
}

// EnsureAdmin creates the bootstrap administrator unless the phone is already registered.
func (s *UserService) EnsureAdmin(ctx context.Context, name, phone, password string) (bool, error) {
	if phone == "" || password == "" {
		return false, nil
	}
	_, err := s.UserRepo.GetUserByLogin(ctx, phone)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, models.ErrNoRecord) {
		return false, err
	}

	_, err = s.CreateUser(ctx, models.User{Name: name, Phone: phone, Role: models.RoleAdmin, Password: password})
	return err == nil, err
}

func (s *UserService) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	return s.UserRepo.GetUserByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, f models.UserFilter) (models.List[models.User], error) {
	users, total, err := s.UserRepo.ListUsers(ctx, f)
	if err != nil {
		return models.List[models.User]{}, err
	}
	return toList(users, total), nil
}

func (s *UserService) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	user.ID = 0
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if err := validateStruct(user); err != nil {
		return models.User{}, err
	}
	if user.Password == "" {
		return models.User{}, models.NewValidationError("password", "is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	user.PasswordHash = string(hash)
	user.Password = ""

	return s.UserRepo.CreateUser(ctx, user)
}

// UpdateUser applies a partial update. A non-empty password is re-hashed.
func (s *UserService) UpdateUser(ctx context.Context, id int64, patch []byte) (models.User, error) {
	user, err := s.UserRepo.GetUserByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if err := mergePatch(&user, patch); err != nil {
		return models.User{}, err
	}
	user.ID = id
	user.PasswordHash = ""
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if err := validateStruct(user); err != nil {
		return models.User{}, err
	}

	if user.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}
		user.PasswordHash = string(hash)
		user.Password = ""
	}

	return s.UserRepo.UpdateUser(ctx, user)
}

// DeleteUser soft-deletes a user. Administrators cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, actor models.Identity, id int64) error {
	if actor.UserID == id {
		return models.ErrForbidden
	}
	return s.UserRepo.DeleteUser(ctx, id)
}
