package service

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"aurora-fiscalizacao-be/internal/dto"
)

// IConsoleService authenticates back-office operators for the live console.
type IConsoleService interface {
	Login(req *dto.ConsoleLoginRequest) (*dto.ConsoleLoginResponse, error)
}

type consoleService struct {
	username     string
	passwordHash string
	jwtSecret    string
	tokenTTL     time.Duration
}

// NewConsoleService takes the single operator credential pair from config.
// passwordHash is a bcrypt hash, never the plaintext password.
func NewConsoleService(username, passwordHash, jwtSecret string, tokenTTL time.Duration) IConsoleService {
	if tokenTTL <= 0 {
		tokenTTL = 8 * time.Hour
	}
	return &consoleService{
		username:     username,
		passwordHash: passwordHash,
		jwtSecret:    jwtSecret,
		tokenTTL:     tokenTTL,
	}
}

func (s *consoleService) Login(req *dto.ConsoleLoginRequest) (*dto.ConsoleLoginResponse, error) {
	if s.username == "" || s.passwordHash == "" {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "console login is not configured")
	}

	if req.Username != s.username {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(req.Password)); err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	claims := jwt.MapClaims{
		"operator": req.Username,
		"exp":      expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &dto.ConsoleLoginResponse{
		Token:     signedToken,
		ExpiresAt: expiresAt,
	}, nil
}
