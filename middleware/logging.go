package middleware

import (
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

var Logger *slog.Logger

func init() {
	Logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// StructuredLogger returns a Fiber middleware logging each request with slog.
func StructuredLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		fields := []any{
			slog.Int("status", c.Response().StatusCode()),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
			slog.Duration("latency", time.Since(start)),
		}

		if uid := c.Locals("userID"); uid != nil {
			fields = append(fields, slog.Any("user_id", uid))
		}

		if err != nil {
			fields = append(fields, slog.String("error", err.Error()))
			Logger.Error("request failed", fields...)
		} else {
			Logger.Info("request processed", fields...)
		}

		return err
	}
}
