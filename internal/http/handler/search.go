package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/vaultdocs/vaultdocs/internal/repository"
	"github.com/vaultdocs/vaultdocs/internal/service"
)

// SearchDocuments runs the conjunctive filter built from query params.
// Every param is optional; a malformed value is a 400, not an empty match.
func SearchDocuments(svc service.SearchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var f repository.DocumentFilter

		if v := c.Query("entity_type"); v != "" {
			f.EntityType = &v
		}
		if v := c.Query("external_entity_id"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_ENTITY_ID", "external_entity_id must be an integer")
			}
			f.ExternalEntityID = &id
		}
		if v := c.Query("type_name"); v != "" {
			f.TypeName = &v
		}
		if v := c.Query("is_verified"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_VERIFIED", "is_verified must be a boolean")
			}
			f.IsVerified = &b
		}
		if v := c.Query("expiring_before"); v != "" {
			t, err := parseDate(v)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_EXPIRING_BEFORE", "expiring_before must be YYYY-MM-DD or RFC 3339")
			}
			f.ExpiringBefore = &t
		}

		var err error
		if f.Limit, err = intQuery(c, "limit", 50); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "limit must be an integer")
		}
		if f.Offset, err = intQuery(c, "offset", 0); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "offset must be an integer")
		}

		docs, err := svc.Search(c.UserContext(), f)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": docs, "total": len(docs)})
	}
}

// ExpiringDocuments lists documents expiring within ?days= (default 30).
func ExpiringDocuments(svc service.SearchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		days, err := intQuery(c, "days", 30)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_DAYS", "days must be an integer")
		}
		docs, err := svc.Expiring(c.UserContext(), days)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": docs, "total": len(docs)})
	}
}

// DocumentStats returns per-type counts over active documents.
func DocumentStats(svc service.SearchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.Stats(c.UserContext(), c.Query("entity_type"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": stats})
	}
}

func intQuery(c *fiber.Ctx, name string, def int) (int, error) {
	v := c.Query(name)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
