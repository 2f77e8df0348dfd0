package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Each test uses its own registry; the collectors are registered per
// middleware instance and would collide on a shared one.
func newTestPrometheus(t *testing.T) (*PrometheusMiddleware, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)
	return m, reg
}

func TestPrometheusMiddleware(t *testing.T) {
	m, _ := newTestPrometheus(t)

	app := fiber.New()
	app.Use(m.Handler())
	app.Get("/documents", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Delete("/documents", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/broken", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "bad request")
	})

	resp, _ := app.Test(httptest.NewRequest("GET", "/documents", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/documents", "200")))

	app.Test(httptest.NewRequest("DELETE", "/documents", nil))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.requestCount.WithLabelValues("DELETE", "/documents", "204")))

	// Handler errors are counted under their mapped status.
	app.Test(httptest.NewRequest("GET", "/broken", nil))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/broken", "400")))
}

func TestPrometheusMiddleware_ExcludesMetricsEndpoint(t *testing.T) {
	m, reg := newTestPrometheus(t)

	app := fiber.New()
	app.Use(m.Handler())
	app.Get("/metrics", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	app.Test(httptest.NewRequest("GET", "/metrics", nil))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() == "http_requests_total" {
			assert.Empty(t, mf.GetMetric(), "scrape requests must not be counted")
		}
	}
}

func TestPrometheusMiddleware_UsesRoutePattern(t *testing.T) {
	m, _ := newTestPrometheus(t)

	app := fiber.New()
	app.Use(m.Handler())
	app.Get("/documents/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	id := "9f4c6a0e-0000-0000-0000-000000000000"
	app.Test(httptest.NewRequest("GET", "/documents/"+id, nil))

	// The raw path would make label cardinality unbounded.
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/documents/:id", "200")))
	assert.NotZero(t, testutil.CollectAndCount(m.requestDuration))
}
