package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/megaJingHua/PixelGym/internal/domain"
	"github.com/megaJingHua/PixelGym/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrNameAlreadyTaken     = errors.New("this name is already taken")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrAccountPending       = errors.New("account is awaiting approval by the admin")
	ErrAccountDisabled      = errors.New("account has been disabled")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// --- Service Interface ---
type AuthService interface {
	Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	Logout(ctx context.Context, tokenID string) error
	// UpdateAccount changes the caller's own credentials. Empty arguments
	// are left untouched.
	UpdateAccount(ctx context.Context, userID, email, password string) error
	GetJWTSecret() string
}

// --- Service Implementation ---

type authService struct {
	userRepo      repository.UserRepository
	sessions      repository.SessionRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, sessions repository.SessionRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty")
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 12
	}
	return &authService{
		userRepo:      userRepo,
		sessions:      sessions,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register handles new user registration. Everyone except the reserved
// super-admin handle starts pending and must be approved before login.
func (s *authService) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	if name == "" || email == "" || password == "" || role == "" {
		return nil, errors.New("name, email, password, and role cannot be empty")
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetByName(ctx, name); err == nil {
		return nil, ErrNameAlreadyTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	status := domain.StatusPending
	if strings.EqualFold(name, domain.SuperAdminName) {
		status = domain.StatusActive
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		Status:       status,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique indexes close the check-then-create race.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Login authenticates a user, gates on account status, issues a JWT and
// registers its session so it can be revoked later.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, errors.New("email and password cannot be empty")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	// The super-admin can always log in, whatever the status fields say.
	if !user.IsSuperAdmin() {
		switch user.Status {
		case domain.StatusPending:
			return "", nil, ErrAccountPending
		case domain.StatusDisabled:
			return "", nil, ErrAccountDisabled
		}
	}

	tokenID := uuid.NewString()
	token, err := s.generateJWT(user, tokenID)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	if err := s.sessions.Store(ctx, tokenID, user.ID); err != nil {
		return "", nil, err
	}

	user.PasswordHash = ""
	return token, user, nil
}

// Logout revokes the session behind the given token ID.
func (s *authService) Logout(ctx context.Context, tokenID string) error {
	return s.sessions.Delete(ctx, tokenID)
}

// UpdateAccount changes email and/or password of the caller.
func (s *authService) UpdateAccount(ctx context.Context, userID, email, password string) error {
	if email == "" && password == "" {
		return nil
	}
	var hash string
	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return ErrHashingFailed
		}
		hash = string(hashed)
	}
	err := s.userRepo.SetCredentials(ctx, userID, email, hash)
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrUserAlreadyExists
	}
	return err
}

// --- JWT Helper ---

// Claims defines the structure of the JWT payload. The ID registered claim
// carries the session token ID used for revocation.
type Claims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	Name   string      `json:"name"`
	jwt.RegisteredClaims
}

func (s *authService) generateJWT(user *domain.User, tokenID string) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "pixel-gym",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// GetJWTSecret returns the JWT secret for middleware authentication.
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
