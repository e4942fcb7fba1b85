package handlers

import (
	"fmt"
	"time"

	"apptrack/config"
	"apptrack/models"
	"apptrack/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var cfg *config.Config

// InitAuthHandlers initializes auth handlers with the given config.
func InitAuthHandlers(c *config.Config) {
	cfg = c
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /register.
func Register(c *fiber.Ctx) error {
	req := new(RegisterRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if errs := validation.Run(
		validation.Required("name", req.Name, "Name is required"),
		validation.Email("email", req.Email, "Valid email required"),
		validation.MinLength("password", req.Password, 6, "Password must be at least 6 characters"),
	); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	if err := userRepo.Create(c.Context(), user); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"userId":  user.ID,
	})
}

// Login handles POST /login. Absent user and wrong password share one
// response so the existence of an email is never revealed.
func Login(c *fiber.Ctx) error {
	req := new(LoginRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if errs := validation.Run(
		validation.Email("email", req.Email, "Valid email required"),
		validation.Required("password", req.Password, "Password required"),
	); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	user, err := userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if user == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, err := generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// generateToken signs a one-hour token carrying the user's ID.
func generateToken(userID uint) (string, error) {
	if cfg == nil || cfg.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID,
		"exp":    now.Add(time.Hour).Unix(),
		"iat":    now.Unix(),
		"jti":    fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8]),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}
