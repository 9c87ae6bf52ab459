package notifications

import (
	notifsvc "foodshare-backend/internal/application/notifications"
	"foodshare-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *notifsvc.Service
}

// GET /api/v1/notifications/recent?limit=n
func (h *Handlers) Recent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", notifsvc.DefaultRecent)
	messages, err := h.Service.Recent(c.Context(), int64(limit))
	if err != nil {
		return response.DomainError(c, err)
	}
	if messages == nil {
		messages = []string{}
	}
	return response.Success(c, "Notifications fetched successfully", messages, fiber.Map{"count": len(messages)})
}
