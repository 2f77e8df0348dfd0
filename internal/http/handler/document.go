package handler

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/vaultdocs/vaultdocs/internal/model"
	"github.com/vaultdocs/vaultdocs/internal/service"
)

// parseDate accepts a bare date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// UploadDocument accepts one multipart file plus its describing fields.
// Policy rejection (type, size, MIME, duplicate) happens in the service
// before any row or file exists.
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		entityType := c.FormValue("entity_type")
		if entityType == "" {
			return writeError(c, fiber.StatusBadRequest, "ENTITY_TYPE_REQUIRED", "entity_type is required")
		}
		externalID, err := strconv.ParseInt(c.FormValue("external_entity_id"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ENTITY_ID", "external_entity_id must be an integer")
		}
		typeName := c.FormValue("document_type")
		if typeName == "" {
			return writeError(c, fiber.StatusBadRequest, "DOCUMENT_TYPE_REQUIRED", "document_type is required")
		}

		in := service.UploadInput{
			EntityType:       entityType,
			ExternalEntityID: externalID,
			EntityName:       c.FormValue("entity_name"),
			TypeName:         typeName,
			DocumentNumber:   c.FormValue("document_number"),
			FileName:         fh.Filename,
			Size:             fh.Size,
			Notes:            c.FormValue("notes"),
		}

		if v := c.FormValue("expiry_date"); v != "" {
			t, err := parseDate(v)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_EXPIRY_DATE", "expiry_date must be YYYY-MM-DD or RFC 3339")
			}
			in.ExpiryDate = &t
		}
		if v := c.FormValue("metadata"); v != "" {
			if !json.Valid([]byte(v)) {
				return writeError(c, fiber.StatusBadRequest, "INVALID_METADATA", "metadata must be valid JSON")
			}
			in.Metadata = json.RawMessage(v)
		}

		in.MimeType = fh.Header.Get(fiber.HeaderContentType)
		if in.MimeType == "" {
			in.MimeType = "application/octet-stream"
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()
		in.Content = f

		doc, err := svc.Upload(c.UserContext(), in, actorFromRequest(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetDocument returns one active document with display fields.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// ListEntityDocuments returns one entity's active documents, newest first.
func ListEntityDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		externalID, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ENTITY_ID", "entity id must be an integer")
		}
		docs, err := svc.ListByEntity(c.UserContext(), c.Params("type"), externalID, c.Query("document_type"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": docs, "total": len(docs)})
	}
}

// UpdateDocument applies a partial update of the mutable fields.
func UpdateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var patch model.DocumentUpdate
		if err := c.BodyParser(&patch); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		}
		doc, err := svc.Update(c.UserContext(), id, patch, actorFromRequest(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DeleteDocument soft-deletes by default; ?hard=true removes the row and
// best-effort removes the file.
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		hard := c.QueryBool("hard", false)
		if err := svc.Delete(c.UserContext(), id, actorFromRequest(c), hard); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// RestoreDocument reverses a soft delete.
func RestoreDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := svc.Restore(c.UserContext(), id, actorFromRequest(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// ViewDocument streams the file inline, non-cacheable, with its stored
// content type so it renders in place.
func ViewDocument(svc service.DocumentService) fiber.Handler {
	return serveDocument(svc, model.AccessView)
}

// DownloadDocument streams the file as an attachment under its original
// filename.
func DownloadDocument(svc service.DocumentService) fiber.Handler {
	return serveDocument(svc, model.AccessDownload)
}

func serveDocument(svc service.DocumentService, purpose model.AccessType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, doc, err := svc.FetchForRead(c.UserContext(), id, actorFromRequest(c), purpose)
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Set(fiber.HeaderContentType, doc.MimeType)
		if purpose == model.AccessView {
			c.Set(fiber.HeaderCacheControl, "no-store")
			c.Set(fiber.HeaderContentDisposition, "inline")
		} else {
			c.Set(fiber.HeaderContentDisposition,
				fmt.Sprintf("attachment; filename=%q", doc.OriginalFileName))
		}
		return c.SendStream(rc, int(doc.FileSize))
	}
}
