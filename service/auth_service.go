package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"answerly/config"
	"answerly/logger"
	"answerly/model"
	"answerly/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("User already exists")
	ErrUserNotFound       = errors.New("User not found")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
)

// TokenPair is the login response body.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthService mints and verifies the token pair and orchestrates the session
// lifecycle. There is no server-side session state; the pair held by the
// client is the whole session.
type AuthService struct {
	userRepo repository.IUserRepository
}

func NewAuthService(userRepo repository.IUserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), nil
}

func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func claimsFor(user *model.User, ttl time.Duration) *model.AppClaims {
	now := time.Now()
	return &model.AppClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// CreateAccessToken mints a short-lived token signed with the access secret.
// Expiry is enforced by the verifier, not here.
func (s *AuthService) CreateAccessToken(user *model.User) (string, error) {
	cfg := config.AppConfig.JWT
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claimsFor(user, cfg.AccessTTL))
	tokenString, err := token.SignedString([]byte(cfg.AccessSecret))
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", user.ID).Error("Failed to sign access token")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}
	return tokenString, nil
}

// CreateRefreshToken mints a long-lived token signed with the refresh secret.
// The two secrets are distinct so compromise of one token class does not
// compromise the other.
func (s *AuthService) CreateRefreshToken(user *model.User) (string, error) {
	cfg := config.AppConfig.JWT
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claimsFor(user, cfg.RefreshTTL))
	tokenString, err := token.SignedString([]byte(cfg.RefreshSecret))
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", user.ID).Error("Failed to sign refresh token")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}
	return tokenString, nil
}

// VerifyRefreshToken validates signature and expiry against the refresh secret.
func (s *AuthService) VerifyRefreshToken(tokenString string) (*model.AppClaims, error) {
	claims := &model.AppClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWT.RefreshSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidRefresh
	}
	return claims, nil
}

// Register hashes the password and inserts the user. The duplicate outcome
// comes from the store's unique index, so two concurrent registrations with
// the same email can never both succeed.
func (s *AuthService) Register(req model.RegisterRequest) error {
	hashed, err := s.HashPassword(req.Password)
	if err != nil {
		return err
	}

	role := req.Role
	if role == "" {
		role = string(model.RoleUser)
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
		Role:     role,
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return ErrUserExists
		}
		return err
	}

	logger.Log.WithField("user_id", user.ID).Info("User registered")
	return nil
}

// Login verifies credentials and mints the token pair.
func (s *AuthService) Login(email, password string) (*TokenPair, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !s.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.CreateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.CreateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	logger.Log.WithField("user_id", user.ID).Info("User logged in")
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// RefreshAccessToken mints a new access token from a valid refresh token.
// The refresh token itself is left unchanged; there is no rotation. The new
// token carries the same claim shape as a login-minted one.
func (s *AuthService) RefreshAccessToken(refreshToken string) (string, error) {
	claims, err := s.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	user := &model.User{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}
	return s.CreateAccessToken(user)
}

// CurrentUser resolves the authenticated identity to its full record.
func (s *AuthService) CurrentUser(id int) (*model.User, error) {
	return s.userRepo.GetUserByID(id)
}

// UpdateUsername changes the display name for the given user.
func (s *AuthService) UpdateUsername(userID int, username string) (*model.User, error) {
	return s.userRepo.UpdateUsername(userID, username)
}
