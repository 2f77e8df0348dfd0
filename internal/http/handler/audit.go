package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/vaultdocs/vaultdocs/internal/service"
)

// DocumentAuditTrail returns one document's audit entries, newest first.
func DocumentAuditTrail(svc service.AuditService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		limit, err := intQuery(c, "limit", 50)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "limit must be an integer")
		}
		entries, err := svc.TrailByDocument(c.UserContext(), id, limit)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": entries, "total": len(entries)})
	}
}

// UserAuditTrail returns one user's audit entries across documents.
func UserAuditTrail(svc service.AuditService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Params("id")
		if userID == "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "user id is required")
		}
		limit, err := intQuery(c, "limit", 50)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "limit must be an integer")
		}
		entries, err := svc.TrailByUser(c.UserContext(), userID, limit)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": entries, "total": len(entries)})
	}
}

// AuditStats aggregates audit entries per operation, optionally windowed
// by ?from= and ?to=.
func AuditStats(svc service.AuditService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var from, to *time.Time
		if v := c.Query("from"); v != "" {
			t, err := parseDate(v)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_FROM", "from must be YYYY-MM-DD or RFC 3339")
			}
			from = &t
		}
		if v := c.Query("to"); v != "" {
			t, err := parseDate(v)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_TO", "to must be YYYY-MM-DD or RFC 3339")
			}
			to = &t
		}
		stats, err := svc.OperationStats(c.UserContext(), from, to)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": stats})
	}
}
