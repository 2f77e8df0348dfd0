package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vaultdocs/vaultdocs/internal/service"
)

// ListDocumentTypes returns the active type catalog, optionally filtered
// by ?category=.
func ListDocumentTypes(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		types, err := svc.ListTypes(c.UserContext(), c.Query("category"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": types, "total": len(types)})
	}
}
