package middleware

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	dbsync "sarah-testing/lib/db-sync"
	authutils "sarah-testing/lib/utils/auth-utils"
)

type syncMock struct {
	pushed int
}

func (m *syncMock) Pull(ctx context.Context) error {
	return nil
}

func (m *syncMock) Push(ctx context.Context) error {
	m.pushed++
	return nil
}

func TestSyncAfterWrite(t *testing.T) {
	mock := &syncMock{}
	dbsync.Instance = mock
	defer func() { dbsync.Instance = nil }()

	app := fiber.New()
	app.Use(SyncAfterWrite())
	app.Get("/items", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Post("/items", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusCreated) })
	app.Delete("/items", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusConflict) })

	for _, method := range []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodDelete} {
		_, err := app.Test(httptest.NewRequest(method, "/items", nil))
		require.NoError(t, err)
	}
	require.Equal(t, 1, mock.pushed)
}

func TestAPIAuth(t *testing.T) {
	secret := "secret"
	app := fiber.New()
	app.Use(APIAuth(secret))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ping", nil))
	require.NoError(t, err)
	require.NotEqual(t, fiber.StatusOK, resp.StatusCode)

	token, err := authutils.GetToken(secret, "tester", time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodGet, "/ping", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAPIAuthDisabled(t *testing.T) {
	app := fiber.New()
	app.Use(APIAuth(""))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ping", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestWithBodyLimit(t *testing.T) {
	app := fiber.New()
	app.Use(WithBodyLimit(4))
	app.Post("/echo", func(c *fiber.Ctx) error { return c.Send(c.Body()) })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/echo", strings.NewReader("too long")))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodPost, "/echo", strings.NewReader("ok")))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
