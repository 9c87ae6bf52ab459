package listings

import (
	"context"

	"foodshare-backend/internal/domain"

	"github.com/google/uuid"
)

// Filters are pure: they keep the input order and never mutate listings.

// OwnedBy returns the listings posted by organizerID, in any status.
func OwnedBy(listings []domain.Listing, organizerID uuid.UUID) []domain.Listing {
	return filter(listings, func(l *domain.Listing) bool {
		return l.OrganizerID == organizerID
	})
}

// Available returns the listings still open for a claim. Expired listings
// stay in the result; callers label them with their time left.
func Available(listings []domain.Listing) []domain.Listing {
	return filter(listings, func(l *domain.Listing) bool {
		return l.Status == domain.StatusAvailable
	})
}

// ClaimedByOrg returns orgID's claims, both pending and collected.
func ClaimedByOrg(listings []domain.Listing, orgID uuid.UUID) []domain.Listing {
	return filter(listings, func(l *domain.Listing) bool {
		return l.HasClaimant() && *l.ClaimedByOrgID == orgID
	})
}

func filter(listings []domain.Listing, keep func(*domain.Listing) bool) []domain.Listing {
	out := make([]domain.Listing, 0, len(listings))
	for i := range listings {
		if keep(&listings[i]) {
			out = append(out, listings[i])
		}
	}
	return out
}

func (s *Service) GetMyListings(ctx context.Context, actor domain.Actor) ([]domain.Listing, error) {
	all, err := s.GetAllListings(ctx)
	if err != nil {
		return nil, err
	}
	return OwnedBy(all, actor.UserID), nil
}

func (s *Service) GetAvailableListings(ctx context.Context) ([]domain.Listing, error) {
	all, err := s.GetAllListings(ctx)
	if err != nil {
		return nil, err
	}
	return Available(all), nil
}

func (s *Service) GetClaimedListings(ctx context.Context, actor domain.Actor) ([]domain.Listing, error) {
	all, err := s.GetAllListings(ctx)
	if err != nil {
		return nil, err
	}
	return ClaimedByOrg(all, actor.OrgID), nil
}
