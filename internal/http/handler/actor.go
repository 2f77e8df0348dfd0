package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vaultdocs/vaultdocs/internal/model"
)

// Actor identity headers. Authentication lives outside this subsystem;
// the boundary only carries who the caller claims to be into the logs.
const (
	ActorIDHeader      = "X-Actor-Id"
	ActorRoleHeader    = "X-Actor-Role"
	ActorSessionHeader = "X-Session-Id"
)

// anonymousActor is recorded when no actor identity header is present.
const anonymousActor = "anonymous"

// actorFromRequest assembles the acting identity from headers plus the
// request's network context.
func actorFromRequest(c *fiber.Ctx) model.Actor {
	id := c.Get(ActorIDHeader)
	if id == "" {
		id = anonymousActor
	}
	return model.Actor{
		UserID:    id,
		UserRole:  c.Get(ActorRoleHeader),
		SessionID: c.Get(ActorSessionHeader),
		IPAddress: c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	}
}
