package listingevents

import (
	"context"
	"errors"

	"foodshare-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// GetListingEvents returns the history of one listing, oldest first.
func (s *Service) GetListingEvents(ctx context.Context, listingID uuid.UUID) ([]domain.ListingEvent, error) {
	if listingID == uuid.Nil {
		return nil, domain.ErrNotFound
	}
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).Select("listing_id").First(&listing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	events := []domain.ListingEvent{}
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).Order("created_at ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// GetOrgListingEvents returns every event the org took part in, oldest first.
func (s *Service) GetOrgListingEvents(ctx context.Context, orgID uuid.UUID) ([]domain.ListingEvent, error) {
	if orgID == uuid.Nil {
		return nil, errors.New("Organization ID is required")
	}
	events := []domain.ListingEvent{}
	if err := s.DB.WithContext(ctx).Where("actor_org_id = ?", orgID).Order("created_at ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
