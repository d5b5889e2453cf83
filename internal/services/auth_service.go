package services

import (
	"fmt"
	"log"
	"time"

	"kedai/internal/apperr"
	"kedai/internal/models"
	"kedai/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
	resetDurat time.Duration // Duration for which a password-reset token is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
		resetDurat: time.Hour,
	}
}

// RegisterUser registers a new user, hashes their password, and saves them.
// Registration always yields a customer account; admin accounts are seeded.
func (s *AuthService) RegisterUser(user *models.User) error {
	// Check if username or email already exists
	if existingUser, err := s.userRepo.GetByUsername(user.Username); err == nil && existingUser != nil {
		return apperr.New(apperr.Conflict, "username '%s' already taken", user.Username)
	}
	if existingUser, err := s.userRepo.GetByEmail(user.Email); err == nil && existingUser != nil {
		return apperr.New(apperr.Conflict, "email '%s' already registered", user.Email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Wrap(apperr.Unexpected, err, "failed to hash password")
	}
	user.Password = string(hashedPassword) // Store the hashed password
	user.Role = models.RoleCustomer

	if err := s.userRepo.Create(user); err != nil {
		return apperr.Wrap(apperr.Unexpected, err, "failed to register user")
	}
	return nil
}

// LoginUser authenticates a user and returns a JWT token if successful.
func (s *AuthService) LoginUser(username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		// Do not reveal whether the username exists
		return "", apperr.New(apperr.Unauthenticated, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperr.New(apperr.Unauthenticated, "invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.tokenDurat).Unix(),
		"iat":      time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperr.Wrap(apperr.Unexpected, err, "failed to generate token")
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the actor it
// identifies if valid.
func (s *AuthService) ValidateToken(tokenString string) (*models.Actor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.Unauthenticated, err, "invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperr.New(apperr.Unauthenticated, "invalid token")
	}

	actor := &models.Actor{}
	if v, ok := claims["user_id"].(string); ok {
		actor.ID = v
	}
	if v, ok := claims["username"].(string); ok {
		actor.Username = v
	}
	if v, ok := claims["role"].(string); ok {
		actor.Role = v
	}
	if actor.ID == "" {
		return nil, apperr.New(apperr.Unauthenticated, "invalid token")
	}
	return actor, nil
}

// RequestPasswordReset issues a one-time reset token for the account behind
// email and stores it with an expiry. Delivery of the token is an external
// concern (the mailer collaborator); here it is only logged. To avoid account
// probing the returned error is nil even when the email is unknown.
func (s *AuthService) RequestPasswordReset(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			log.Printf("Password reset requested for unknown email %s", email)
			return nil
		}
		return apperr.Wrap(apperr.Unexpected, err, "failed to look up account")
	}

	user.ResetToken = uuid.New().String()
	user.ResetUntil = time.Now().Add(s.resetDurat)
	if err := s.userRepo.Update(user); err != nil {
		return apperr.Wrap(apperr.Unexpected, err, "failed to store reset token")
	}

	// The mailer collaborator would send this; we only log the event.
	log.Printf("Password reset token issued for user %s", user.ID)
	return nil
}

// ConfirmPasswordReset exchanges a valid, unexpired reset token for a new
// password. The token is single use: it is cleared on success.
func (s *AuthService) ConfirmPasswordReset(token, newPassword string) error {
	if token == "" || len(newPassword) < 6 {
		return apperr.Validationf("a reset token and a password of at least 6 characters are required")
	}

	user, err := s.userRepo.GetByResetToken(token)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return apperr.Validationf("reset token is invalid or already used")
		}
		return apperr.Wrap(apperr.Unexpected, err, "failed to look up reset token")
	}
	if time.Now().After(user.ResetUntil) {
		return apperr.Validationf("reset token has expired")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Wrap(apperr.Unexpected, err, "failed to hash password")
	}
	user.Password = string(hashedPassword)
	user.ResetToken = ""
	user.ResetUntil = time.Time{}

	if err := s.userRepo.Update(user); err != nil {
		return apperr.Wrap(apperr.Unexpected, err, "failed to update password")
	}
	return nil
}
