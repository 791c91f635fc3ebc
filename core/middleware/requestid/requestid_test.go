package requestid

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp() *fiber.App {
	app := fiber.New()
	app.Use(New())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(LocalsKey).(string))
	})
	return app
}

func TestRequestID_Generated(t *testing.T) {
	app := setupApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(Header))
}

func TestRequestID_IncomingReused(t *testing.T) {
	app := setupApp()

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(Header, "ray-123")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, "ray-123", resp.Header.Get(Header))
}
