package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/clubhubdev/clubhub-backend/config"
	"github.com/clubhubdev/clubhub-backend/utils"
)

// ======================
// ❗ Sentinel errors
// ======================
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

const resetTokenTTL = 15 * time.Minute

type Service interface {
	Register(req RegisterRequest) (*UserInfo, error)
	Login(req LoginRequest) (*LoginResponse, error)
	Refresh(refreshToken string) (string, error)
	ForgotPassword(email string) error
	ResetPassword(token, newPassword string) error
	GetUserByID(id uint) (User, error)
}

type service struct {
	repo Repository
	cfg  *config.Config
}

func NewService(repo Repository, cfg *config.Config) Service {
	return &service{repo: repo, cfg: cfg}
}

// Register creates a participant account. Leader and university accounts
// are provisioned through the club approval flow, never self-signup.
func (s *service) Register(req RegisterRequest) (*UserInfo, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "name is required"}
	}
	if !strings.Contains(email, "@") {
		return nil, &ValidationError{Field: "email", Message: "invalid email address"}
	}
	if len(req.Password) < 6 {
		return nil, &ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	}

	if _, err := s.repo.GetByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     RoleParticipant,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	info := toUserInfo(user)
	return &info, nil
}

// Login verifies credentials and issues an access/refresh token pair
func (s *service) Login(req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	access, err := s.generateToken(user, s.cfg.JWTAccessSecret, s.accessTTL())
	if err != nil {
		return nil, err
	}
	refresh, err := s.generateToken(user, s.cfg.JWTRefreshSecret, s.refreshTTL())
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         toUserInfo(user),
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token
func (s *service) Refresh(refreshToken string) (string, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTRefreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return "", ErrInvalidToken
	}

	user, err := s.repo.GetByID(uint(userIDFloat))
	if err != nil {
		return "", ErrInvalidToken
	}

	return s.generateToken(user, s.cfg.JWTAccessSecret, s.accessTTL())
}

// ForgotPassword stores a one-time reset token in Redis and emails the link.
// Unknown emails return success to avoid account enumeration.
func (s *service) ForgotPassword(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		return err
	}

	token := uuid.NewString()
	if err := utils.SetToken("reset:"+token, user.Email, resetTokenTTL); err != nil {
		return err
	}

	return utils.SendResetLink(user.Email, token)
}

// ResetPassword validates the token and updates the password
func (s *service) ResetPassword(token, newPassword string) error {
	if len(newPassword) < 6 {
		return &ValidationError{Field: "new_password", Message: "password must be at least 6 characters"}
	}

	email, err := utils.GetToken("reset:" + token)
	if err != nil {
		return ErrInvalidToken
	}

	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return ErrInvalidToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(user.ID, string(hashed)); err != nil {
		return err
	}

	// One-time use
	_ = utils.DeleteToken("reset:" + token)
	return nil
}

// GetUserByID loads the user for the auth middleware
func (s *service) GetUserByID(id uint) (User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return User{}, err
	}
	return *user, nil
}

func (s *service) accessTTL() time.Duration {
	hours := s.cfg.JWTAccessTTLHours
	if hours <= 0 {
		hours = 1
	}
	return time.Duration(hours) * time.Hour
}

func (s *service) refreshTTL() time.Duration {
	hours := s.cfg.JWTRefreshTTLHours
	if hours <= 0 {
		hours = 24 * 7
	}
	return time.Duration(hours) * time.Hour
}

func (s *service) generateToken(user *User, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
