package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	// Echo what the handler sees in locals so the test can compare it
	// against the response header.
	app.Get("/echo", func(c *fiber.Ctx) error {
		rid, _ := c.Locals(RequestIDLocalKey).(string)
		return c.SendString(rid)
	})

	t.Run("generates an id when the header is absent", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/echo", nil))
		require.NoError(t, err)

		rid := resp.Header.Get(RequestIDHeader)
		require.NotEmpty(t, rid)
		assert.Equal(t, rid, readBody(t, resp.Body))
	})

	t.Run("propagates a caller-supplied id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/echo", nil)
		req.Header.Set(RequestIDHeader, "req-abc-123")

		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, "req-abc-123", resp.Header.Get(RequestIDHeader))
		assert.Equal(t, "req-abc-123", readBody(t, resp.Body))
	})
}

func readBody(t *testing.T, r io.Reader) string {
	t.Helper()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(b)
}

func TestRequestIDFromContext(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		// The ID must also reach code that only sees the context.
		return c.SendString(RequestIDFromContext(c.UserContext()))
	})

	existingID := "ctx-id-456"
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set(RequestIDHeader, existingID)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, existingID, readBody(t, resp.Body))
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	app := fiber.New()

	// Logger depends on RequestID for the request_id field
	app.Use(RequestID())
	app.Use(Logger(zap.New(core)))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	entries := logs.All()
	assert.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.NotEmpty(t, fields["request_id"])
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/test", fields["path"])
	assert.Equal(t, int64(fiber.StatusAccepted), fields["status"])
	assert.NotNil(t, fields["latency"])
}
