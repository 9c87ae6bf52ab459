package listings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodshare-backend/internal/application/notifications"
	"foodshare-backend/internal/domain"
	"foodshare-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notifier receives the activity message for each mutation. Nil = no-op.
type Notifier interface {
	Push(ctx context.Context, message string) error
}

// Service is the listing store: the single owner of listing state and the
// only place transitions are applied.
type Service struct {
	DB                 *gorm.DB
	Notifier           Notifier
	Now                func() time.Time
	AllowExpiredClaims bool
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

type CreateListingInput struct {
	EventName    string
	FoodType     string
	Quantity     string
	Location     string
	Address      string
	ContactPhone string
	ContactEmail string
	ExpiryTime   time.Time
	Description  string
	ImageURL     string
}

func (in *CreateListingInput) normalize() {
	for _, f := range []*string{&in.EventName, &in.FoodType, &in.Quantity, &in.Location, &in.Address,
		&in.ContactPhone, &in.ContactEmail, &in.Description, &in.ImageURL} {
		*f = strings.TrimSpace(*f)
	}
}

func (in CreateListingInput) validate(now time.Time) error {
	missing := validation.FirstMissing(
		validation.Field{Name: "event_name", Value: in.EventName},
		validation.Field{Name: "food_type", Value: in.FoodType},
		validation.Field{Name: "quantity", Value: in.Quantity},
		validation.Field{Name: "location", Value: in.Location},
		validation.Field{Name: "address", Value: in.Address},
		validation.Field{Name: "contact_phone", Value: in.ContactPhone},
		validation.Field{Name: "contact_email", Value: in.ContactEmail},
		validation.Field{Name: "description", Value: in.Description},
	)
	if missing != "" {
		return fmt.Errorf("%w: Missing required field: %s", domain.ErrValidation, missing)
	}
	if in.ExpiryTime.IsZero() {
		return fmt.Errorf("%w: Missing required field: expiry_time", domain.ErrValidation)
	}
	if !validation.IsValidEmail(in.ContactEmail) {
		return fmt.Errorf("%w: Invalid contact_email", domain.ErrValidation)
	}
	if !validation.IsValidPhone(in.ContactPhone) {
		return fmt.Errorf("%w: Invalid contact_phone", domain.ErrValidation)
	}
	if !in.ExpiryTime.After(now) {
		return fmt.Errorf("%w: expiry_time must be in the future", domain.ErrValidation)
	}
	return nil
}

// CreateListing posts a new available listing owned by the actor. It is
// ordered ahead of every existing listing.
func (s *Service) CreateListing(ctx context.Context, actor domain.Actor, in CreateListingInput) (*domain.Listing, error) {
	if actor.Role != domain.RoleOrganizer || actor.UserID == uuid.Nil {
		return nil, domain.ErrUnauthorizedAction
	}
	now := s.now()
	in.normalize()
	if err := in.validate(now); err != nil {
		return nil, err
	}
	listing := &domain.Listing{
		OrganizerID:   actor.UserID,
		OrganizerName: actor.Name,
		EventName:     in.EventName,
		FoodType:      in.FoodType,
		Quantity:      in.Quantity,
		Location:      in.Location,
		Address:       in.Address,
		ContactPhone:  in.ContactPhone,
		ContactEmail:  in.ContactEmail,
		ExpiryTime:    in.ExpiryTime.UTC(),
		PostedAt:      now,
		Description:   in.Description,
		Status:        domain.StatusAvailable,
	}
	if in.ImageURL != "" {
		image := in.ImageURL
		listing.ImageURL = &image
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	var maxSeq int64
	if err := tx.Model(&domain.Listing{}).Select("COALESCE(MAX(seq), 0)").Scan(&maxSeq).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("Failed to create listing: %w", err)
	}
	listing.Seq = maxSeq + 1
	if err := tx.Create(listing).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("Failed to create listing: %w", err)
	}
	if err := recordEvent(tx, listing.ListingID, domain.EventCreated, actor, map[string]interface{}{
		"food_type":   listing.FoodType,
		"quantity":    listing.Quantity,
		"expiry_time": listing.ExpiryTime,
	}); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("Failed to create listing: %w", err)
	}

	transitionCounter.WithLabelValues(domain.EventCreated).Inc()
	log.Info().Str("listing_id", listing.ListingID.String()).Str("organizer_id", actor.UserID.String()).Msg("listing created")
	s.notify(ctx, notifications.FoodPosted(listing.FoodType, listing.EventName))
	return listing, nil
}

// ClaimListing reserves an available listing for the actor's NGO.
func (s *Service) ClaimListing(ctx context.Context, actor domain.Actor, listingID uuid.UUID) (*domain.Listing, error) {
	listing, err := s.claim(ctx, actor, listingID)
	if err != nil {
		rejectedCounter.WithLabelValues("claim").Inc()
		return nil, err
	}
	transitionCounter.WithLabelValues(domain.EventClaimed).Inc()
	return listing, nil
}

func (s *Service) claim(ctx context.Context, actor domain.Actor, listingID uuid.UUID) (*domain.Listing, error) {
	if actor.Role != domain.RoleNGO || actor.OrgID == uuid.Nil {
		return nil, domain.ErrUnauthorizedAction
	}
	now := s.now()

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	listing, err := findListing(tx, listingID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if listing.Status == domain.StatusAvailable && !s.AllowExpiredClaims && listing.Expired(now) {
		tx.Rollback()
		return nil, domain.ErrListingExpired
	}
	if err := listing.Claim(actor, now); err != nil {
		tx.Rollback()
		return nil, err
	}
	// Conditional on the status read above, so concurrent claims cannot both win.
	res := tx.Model(&domain.Listing{}).
		Where("listing_id = ? AND status = ?", listingID, string(domain.StatusAvailable)).
		Updates(map[string]interface{}{
			"status":            string(listing.Status),
			"claimed_by_org_id": actor.OrgID,
			"claimed_by":        actor.OrgName,
			"claimed_at":        now,
		})
	if res.Error != nil {
		tx.Rollback()
		return nil, fmt.Errorf("Failed to claim listing: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return nil, fmt.Errorf("%w: listing was claimed by another organization", domain.ErrInvalidTransition)
	}
	if err := recordEvent(tx, listingID, domain.EventClaimed, actor, map[string]interface{}{
		"claimed_by": actor.OrgName,
	}); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("Failed to claim listing: %w", err)
	}

	log.Info().Str("listing_id", listingID.String()).Str("org_id", actor.OrgID.String()).Msg("listing claimed")
	s.notify(ctx, notifications.FoodClaimed(actor.OrgName))
	return listing, nil
}

// CollectListing marks a listing claimed by the actor's NGO as picked up.
func (s *Service) CollectListing(ctx context.Context, actor domain.Actor, listingID uuid.UUID) (*domain.Listing, error) {
	listing, err := s.collect(ctx, actor, listingID)
	if err != nil {
		rejectedCounter.WithLabelValues("collect").Inc()
		return nil, err
	}
	transitionCounter.WithLabelValues(domain.EventCollected).Inc()
	return listing, nil
}

func (s *Service) collect(ctx context.Context, actor domain.Actor, listingID uuid.UUID) (*domain.Listing, error) {
	if actor.Role != domain.RoleNGO || actor.OrgID == uuid.Nil {
		return nil, domain.ErrUnauthorizedAction
	}
	now := s.now()

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	listing, err := findListing(tx, listingID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := listing.Collect(actor, now); err != nil {
		tx.Rollback()
		return nil, err
	}
	res := tx.Model(&domain.Listing{}).
		Where("listing_id = ? AND status = ? AND claimed_by_org_id = ?", listingID, string(domain.StatusClaimed), actor.OrgID).
		Updates(map[string]interface{}{
			"status":       string(listing.Status),
			"collected_at": now,
		})
	if res.Error != nil {
		tx.Rollback()
		return nil, fmt.Errorf("Failed to collect listing: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return nil, fmt.Errorf("%w: listing is no longer awaiting collection", domain.ErrInvalidTransition)
	}
	if err := recordEvent(tx, listingID, domain.EventCollected, actor, map[string]interface{}{
		"claimed_by": actor.OrgName,
	}); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("Failed to collect listing: %w", err)
	}

	log.Info().Str("listing_id", listingID.String()).Str("org_id", actor.OrgID.String()).Msg("listing collected")
	s.notify(ctx, notifications.FoodCollected())
	return listing, nil
}

func (s *Service) GetListing(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	return findListing(s.DB.WithContext(ctx), listingID)
}

// GetAllListings returns the whole board, newest posting first.
func (s *Service) GetAllListings(ctx context.Context) ([]domain.Listing, error) {
	var listings []domain.Listing
	if err := s.DB.WithContext(ctx).Order("seq DESC").Order("listing_id").Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("Failed to fetch listings: %w", err)
	}
	return listings, nil
}

// FlagExpiringSoon finds available listings whose pickup window closes
// within window and announces each of them once.
func (s *Service) FlagExpiringSoon(ctx context.Context, window time.Duration) ([]domain.Listing, error) {
	now := s.now()
	var candidates []domain.Listing
	if err := s.DB.WithContext(ctx).
		Where("status = ? AND expiry_notified_at IS NULL", string(domain.StatusAvailable)).
		Order("seq DESC").
		Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("Failed to fetch listings: %w", err)
	}

	var flagged []domain.Listing
	for _, l := range candidates {
		if l.Expired(now) || l.ExpiryTime.Sub(now) > window {
			continue
		}
		err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&domain.Listing{}).
				Where("listing_id = ? AND expiry_notified_at IS NULL", l.ListingID).
				Update("expiry_notified_at", now)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errAlreadyFlagged
			}
			return recordEvent(tx, l.ListingID, domain.EventExpiryWarning, domain.Actor{}, map[string]interface{}{
				"expiry_time": l.ExpiryTime,
				"time_left":   domain.TimeUntilExpiry(now, l.ExpiryTime),
			})
		})
		if errors.Is(err, errAlreadyFlagged) {
			continue
		}
		if err != nil {
			return flagged, fmt.Errorf("Failed to flag listing %s: %w", l.ListingID, err)
		}
		l.ExpiryNotifiedAt = &now
		flagged = append(flagged, l)
		transitionCounter.WithLabelValues(domain.EventExpiryWarning).Inc()
		s.notify(ctx, notifications.FoodExpiringSoon(l.FoodType, l.EventName))
	}
	return flagged, nil
}

var errAlreadyFlagged = errors.New("listing already flagged")

// Stats is the board summary shown on the landing page.
type Stats struct {
	TotalListings int64 `json:"total_listings"`
	Available     int64 `json:"available"`
	Claimed       int64 `json:"claimed"`
	Collected     int64 `json:"collected"`
	Organizations int64 `json:"organizations"`
}

func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := s.DB.WithContext(ctx).Model(&domain.Listing{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("Failed to compute stats: %w", err)
	}
	out := &Stats{}
	for _, r := range rows {
		out.TotalListings += r.Count
		switch domain.ListingStatus(r.Status) {
		case domain.StatusAvailable:
			out.Available = r.Count
		case domain.StatusClaimed:
			out.Claimed = r.Count
		case domain.StatusCollected:
			out.Collected = r.Count
		}
	}
	if err := s.DB.WithContext(ctx).Model(&domain.Org{}).Count(&out.Organizations).Error; err != nil {
		return nil, fmt.Errorf("Failed to compute stats: %w", err)
	}
	return out, nil
}

func (s *Service) notify(ctx context.Context, message string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Push(ctx, message); err != nil {
		log.Warn().Err(err).Str("message", message).Msg("notification dropped")
	}
}

func findListing(db *gorm.DB, listingID uuid.UUID) (*domain.Listing, error) {
	if listingID == uuid.Nil {
		return nil, domain.ErrNotFound
	}
	var listing domain.Listing
	if err := db.Where("listing_id = ?", listingID).First(&listing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &listing, nil
}

func recordEvent(tx *gorm.DB, listingID uuid.UUID, eventType string, actor domain.Actor, data map[string]interface{}) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	ev := &domain.ListingEvent{
		ListingID: listingID,
		EventType: eventType,
		EventData: datatypes.JSON(b),
	}
	if actor.OrgID != uuid.Nil {
		orgID, orgName := actor.OrgID, actor.OrgName
		ev.ActorOrgID = &orgID
		ev.ActorOrgName = &orgName
	}
	if err := tx.Create(ev).Error; err != nil {
		return fmt.Errorf("Failed to create listing event: %w", err)
	}
	return nil
}
