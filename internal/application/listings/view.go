package listings

import (
	"time"

	"foodshare-backend/internal/domain"

	"github.com/dustin/go-humanize"
)

// ListingView is a listing as rendered on the board.
type ListingView struct {
	domain.Listing
	TimeLeft  string `json:"time_left"`
	PostedAgo string `json:"posted_ago"`
	Expired   bool   `json:"expired"`
}

// NewListingView renders l at now.
func NewListingView(l domain.Listing, now time.Time) ListingView {
	return ListingView{
		Listing:   l,
		TimeLeft:  domain.TimeUntilExpiry(now, l.ExpiryTime),
		PostedAgo: humanize.RelTime(l.PostedAt, now, "ago", "from now"),
		Expired:   l.Expired(now),
	}
}

func (s *Service) View(l domain.Listing) ListingView {
	return NewListingView(l, s.now())
}

// Views renders every listing against the same instant.
func (s *Service) Views(listings []domain.Listing) []ListingView {
	now := s.now()
	out := make([]ListingView, 0, len(listings))
	for _, l := range listings {
		out = append(out, NewListingView(l, now))
	}
	return out
}
