package handlers

import (
	"testing"
	"time"

	"apptrack/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	app, _ := setupApp(t)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
		expectedFields []string
	}{
		{
			name: "Valid registration",
			body: map[string]string{
				"name":     "A",
				"email":    "a@x.com",
				"password": "secret1",
			},
			expectedStatus: fiber.StatusCreated,
		},
		{
			name: "Password below minimum length",
			body: map[string]string{
				"name":     "B",
				"email":    "b@x.com",
				"password": "12345",
			},
			expectedStatus: fiber.StatusBadRequest,
			expectedFields: []string{"password"},
		},
		{
			name: "Password at minimum length",
			body: map[string]string{
				"name":     "C",
				"email":    "c@x.com",
				"password": "123456",
			},
			expectedStatus: fiber.StatusCreated,
		},
		{
			name: "Invalid email",
			body: map[string]string{
				"name":     "D",
				"email":    "not-an-email",
				"password": "secret1",
			},
			expectedStatus: fiber.StatusBadRequest,
			expectedFields: []string{"email"},
		},
		{
			name: "Missing name",
			body: map[string]string{
				"email":    "e@x.com",
				"password": "secret1",
			},
			expectedStatus: fiber.StatusBadRequest,
			expectedFields: []string{"name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := request(t, app, "POST", "/register", tt.body)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == fiber.StatusCreated {
				body := decode(t, resp)
				assert.Equal(t, "User registered successfully", body["message"])
				assert.NotZero(t, body["userId"])
			} else {
				assert.Equal(t, tt.expectedFields, errorFields(t, resp))
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, db := setupApp(t)

	body := map[string]string{
		"name":     "A",
		"email":    "a@x.com",
		"password": "secret1",
	}

	resp := request(t, app, "POST", "/register", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = request(t, app, "POST", "/register", body)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "User already exists", decode(t, resp)["error"])

	// No second row was created
	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "a@x.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLogin(t *testing.T) {
	app, _ := setupApp(t)

	registered := decode(t, request(t, app, "POST", "/register", map[string]string{
		"name":     "A",
		"email":    "a@x.com",
		"password": "secret1",
	}))
	userID := uint(registered["userId"].(float64))

	t.Run("Correct credentials", func(t *testing.T) {
		resp := request(t, app, "POST", "/login", map[string]string{
			"email":    "a@x.com",
			"password": "secret1",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := decode(t, resp)
		assert.Equal(t, "Login successful", body["message"])

		// The token verifies against the signing secret and carries the user ID
		tokenString, ok := body["token"].(string)
		require.True(t, ok)
		token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
			return []byte("test-secret-key"), nil
		})
		require.NoError(t, err)
		require.True(t, token.Valid)

		claims, ok := token.Claims.(jwt.MapClaims)
		require.True(t, ok)
		assert.Equal(t, float64(userID), claims["userId"])

		exp, err := claims.GetExpirationTime()
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, time.Minute)
	})

	t.Run("Wrong password", func(t *testing.T) {
		resp := request(t, app, "POST", "/login", map[string]string{
			"email":    "a@x.com",
			"password": "wrong",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid credentials", decode(t, resp)["error"])
	})

	t.Run("Unknown email gets the same response", func(t *testing.T) {
		resp := request(t, app, "POST", "/login", map[string]string{
			"email":    "nobody@x.com",
			"password": "secret1",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid credentials", decode(t, resp)["error"])
	})

	t.Run("Malformed email", func(t *testing.T) {
		resp := request(t, app, "POST", "/login", map[string]string{
			"email":    "not-an-email",
			"password": "secret1",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, []string{"email"}, errorFields(t, resp))
	})

	t.Run("Missing password", func(t *testing.T) {
		resp := request(t, app, "POST", "/login", map[string]string{
			"email": "a@x.com",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, []string{"password"}, errorFields(t, resp))
	})
}
