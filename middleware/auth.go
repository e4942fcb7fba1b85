// Package middleware provides authentication, logging, and rate limiting
// middleware for the application.
package middleware

import (
	"strings"

	"apptrack/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// AuthRequired enforces a valid bearer token. A missing token is 401, a
// token that fails signature or expiry checks is 403. On success the decoded
// claims and user ID are stored in the request locals.
func AuthRequired(c *fiber.Ctx) error {
	var tokenString string
	if parts := strings.Fields(c.Get("Authorization")); len(parts) == 2 && parts[0] == "Bearer" {
		tokenString = parts[1]
	}
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Access denied",
		})
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusForbidden, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})

	if err != nil || !token.Valid {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Invalid token",
		})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Invalid token",
		})
	}

	c.Locals("claims", claims)
	if id, ok := claims["userId"].(float64); ok {
		c.Locals("userID", uint(id))
	}

	return c.Next()
}
