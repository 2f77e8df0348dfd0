package handler

import (
	"database/sql"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vaultdocs/vaultdocs/internal/service"
)

// MaxRequestBodyBytes caps incoming request bodies. It must stay above
// the largest max_file_size in the seeded document type catalog
// (bank_statement, 100MB) so an oversize verdict always comes from the
// upload policy, never from the transport.
const MaxRequestBodyBytes = 128 * 1024 * 1024

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Documents service.DocumentService
	Search    service.SearchService
	Audit     service.AuditService
	Catalog   service.CatalogService
}

// RegisterRoutes attaches all HTTP routes to the provided Fiber app.
// Handlers stay thin; policy and persistence live in the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services, reg *prometheus.Registry) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	if reg != nil {
		app.Get("/metrics", adaptor.HTTPHandler(
			promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	app.Get("/document-types", ListDocumentTypes(svcs.Catalog))

	// Search routes are registered before /documents/:id so the literal
	// segments don't get captured as ids.
	app.Get("/documents", SearchDocuments(svcs.Search))
	app.Get("/documents/search", SearchDocuments(svcs.Search))
	app.Get("/documents/expiring", ExpiringDocuments(svcs.Search))
	app.Get("/documents/stats", DocumentStats(svcs.Search))

	app.Post("/documents", UploadDocument(svcs.Documents))
	app.Get("/documents/:id", GetDocument(svcs.Documents))
	app.Put("/documents/:id", UpdateDocument(svcs.Documents))
	app.Patch("/documents/:id", UpdateDocument(svcs.Documents))
	app.Delete("/documents/:id", DeleteDocument(svcs.Documents))
	app.Post("/documents/:id/restore", RestoreDocument(svcs.Documents))
	app.Get("/documents/:id/view", ViewDocument(svcs.Documents))
	app.Get("/documents/:id/download", DownloadDocument(svcs.Documents))
	app.Get("/documents/:id/audit", DocumentAuditTrail(svcs.Audit))

	app.Get("/entities/:type/:id/documents", ListEntityDocuments(svcs.Documents))

	app.Get("/audit/users/:id", UserAuditTrail(svcs.Audit))
	app.Get("/audit/stats", AuditStats(svcs.Audit))
}
