package listingevents

import (
	authsvc "foodshare-backend/internal/application/auth"
	lesvc "foodshare-backend/internal/application/listingevents"
	"foodshare-backend/internal/middleware"
	"foodshare-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *lesvc.Service
}

// GET /api/v1/listing-events/get-listing-events/:listing_id
func (h *Handlers) GetListingEvents(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing_id format", fiber.StatusBadRequest, nil)
	}
	events, err := h.Service.GetListingEvents(c.Context(), listingID)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Listing events fetched successfully", events, nil)
}

// GET /api/v1/listing-events/get-org-listing-events
func (h *Handlers) GetOrgListingEvents(c *fiber.Ctx) error {
	actor, err := authsvc.ActorFromSession(middleware.GetUser(c))
	if err != nil || actor.OrgID == uuid.Nil {
		return response.Unauthorized(c, "User not associated with any organization")
	}
	events, err := h.Service.GetOrgListingEvents(c.Context(), actor.OrgID)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Organization listing events fetched successfully", events, nil)
}
