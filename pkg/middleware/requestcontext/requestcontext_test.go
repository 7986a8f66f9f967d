package requestcontext

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRequestId(t *testing.T) {
	app := fiber.New()
	app.Use(New(WithRequestId()))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(GetRequestId(c.UserContext()))
	})

	t.Run("generate", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.NotEmpty(t, string(body))
		assert.Equal(t, string(body), resp.Header.Get(requestid.ConfigDefault.Header))
	})
	t.Run("from_header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestid.ConfigDefault.Header, "req-1")
		resp, err := app.Test(req)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "req-1", string(body))
	})
}

func TestOptionError(t *testing.T) {
	app := fiber.New()
	app.Use(New(func(ctx context.Context, c *fiber.Ctx) (context.Context, error) {
		return ctx, errors.New("boom")
	}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestGetRequestIdMissing(t *testing.T) {
	assert.Empty(t, GetRequestId(context.Background()))
}
