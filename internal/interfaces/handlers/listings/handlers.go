package listings

import (
	"time"

	authsvc "foodshare-backend/internal/application/auth"
	listsvc "foodshare-backend/internal/application/listings"
	"foodshare-backend/internal/domain"
	"foodshare-backend/internal/middleware"
	"foodshare-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *listsvc.Service
	// Location reads zone-less expiry times from the post form. Nil means local time.
	Location *time.Location
}

type createListingRequest struct {
	EventName    string `json:"event_name"`
	FoodType     string `json:"food_type"`
	Quantity     string `json:"quantity"`
	Location     string `json:"location"`
	Address      string `json:"address"`
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email"`
	ExpiryTime   string `json:"expiry_time"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
}

type listingIDRequest struct {
	ListingID string `json:"listing_id"`
}

// POST /api/v1/listings/create-listing
func (h *Handlers) CreateListing(c *fiber.Ctx) error {
	actor, err := authsvc.ActorFromSession(middleware.GetUser(c))
	if err != nil {
		return response.Unauthorized(c, "Please sign in first")
	}
	var body createListingRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	in := listsvc.CreateListingInput{
		EventName:    body.EventName,
		FoodType:     body.FoodType,
		Quantity:     body.Quantity,
		Location:     body.Location,
		Address:      body.Address,
		ContactPhone: body.ContactPhone,
		ContactEmail: body.ContactEmail,
		Description:  body.Description,
		ImageURL:     body.ImageURL,
	}
	if body.ExpiryTime != "" {
		if in.ExpiryTime, err = domain.ParseExpiry(body.ExpiryTime, h.Location); err != nil {
			return response.DomainError(c, err)
		}
	}

	listing, err := h.Service.CreateListing(c.Context(), actor, in)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.SuccessCreated(c, "Listing created successfully", h.Service.View(*listing), nil)
}

// GET /api/v1/listings/get-all-listings
func (h *Handlers) GetAllListings(c *fiber.Ctx) error {
	listings, err := h.Service.GetAllListings(c.Context())
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Listings fetched successfully", h.Service.Views(listings), fiber.Map{"count": len(listings)})
}

// GET /api/v1/listings/get-listing/:listing_id
func (h *Handlers) GetListingByID(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing_id format", fiber.StatusBadRequest, nil)
	}
	listing, err := h.Service.GetListing(c.Context(), listingID)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Listing fetched successfully", h.Service.View(*listing), nil)
}

// GET /api/v1/listings/get-my-listings
func (h *Handlers) GetMyListings(c *fiber.Ctx) error {
	actor, err := authsvc.ActorFromSession(middleware.GetUser(c))
	if err != nil {
		return response.Unauthorized(c, "Please sign in first")
	}
	listings, err := h.Service.GetMyListings(c.Context(), actor)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Your listings fetched successfully", h.Service.Views(listings), fiber.Map{"count": len(listings)})
}

// GET /api/v1/listings/get-available-listings
func (h *Handlers) GetAvailableListings(c *fiber.Ctx) error {
	listings, err := h.Service.GetAvailableListings(c.Context())
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Available listings fetched successfully", h.Service.Views(listings), fiber.Map{"count": len(listings)})
}

// GET /api/v1/listings/get-claimed-listings
func (h *Handlers) GetClaimedListings(c *fiber.Ctx) error {
	actor, err := authsvc.ActorFromSession(middleware.GetUser(c))
	if err != nil {
		return response.Unauthorized(c, "Please sign in first")
	}
	listings, err := h.Service.GetClaimedListings(c.Context(), actor)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Claimed listings fetched successfully", h.Service.Views(listings), fiber.Map{"count": len(listings)})
}

// POST /api/v1/listings/claim-listing
func (h *Handlers) ClaimListing(c *fiber.Ctx) error {
	actor, listingID, errResp := h.actorAndListing(c)
	if errResp != nil {
		return errResp()
	}
	listing, err := h.Service.ClaimListing(c.Context(), actor, listingID)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Listing claimed successfully", h.Service.View(*listing), nil)
}

// POST /api/v1/listings/collect-listing
func (h *Handlers) CollectListing(c *fiber.Ctx) error {
	actor, listingID, errResp := h.actorAndListing(c)
	if errResp != nil {
		return errResp()
	}
	listing, err := h.Service.CollectListing(c.Context(), actor, listingID)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Listing marked as collected", h.Service.View(*listing), nil)
}

// GET /api/v1/stats
func (h *Handlers) GetStats(c *fiber.Ctx) error {
	stats, err := h.Service.GetStats(c.Context())
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Stats fetched successfully", stats, nil)
}

// actorAndListing reads the session actor and the listing_id body field.
// On failure it returns the response to send.
func (h *Handlers) actorAndListing(c *fiber.Ctx) (domain.Actor, uuid.UUID, func() error) {
	actor, err := authsvc.ActorFromSession(middleware.GetUser(c))
	if err != nil {
		return domain.Actor{}, uuid.Nil, func() error { return response.Unauthorized(c, "Please sign in first") }
	}
	var body listingIDRequest
	if err := c.BodyParser(&body); err != nil || body.ListingID == "" {
		return domain.Actor{}, uuid.Nil, func() error {
			return response.Error(c, "listing_id is required", fiber.StatusBadRequest, nil)
		}
	}
	listingID, err := uuid.Parse(body.ListingID)
	if err != nil {
		return domain.Actor{}, uuid.Nil, func() error {
			return response.Error(c, "Invalid listing_id", fiber.StatusBadRequest, nil)
		}
	}
	return actor, listingID, nil
}
