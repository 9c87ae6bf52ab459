package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListingStatus only ever moves forward: available -> claimed -> collected.
type ListingStatus string

const (
	StatusAvailable ListingStatus = "available"
	StatusClaimed   ListingStatus = "claimed"
	StatusCollected ListingStatus = "collected"
)

// Rank orders statuses along the lifecycle; unknown statuses rank 0.
func (s ListingStatus) Rank() int {
	switch s {
	case StatusAvailable:
		return 1
	case StatusClaimed:
		return 2
	case StatusCollected:
		return 3
	}
	return 0
}

// Valid reports whether s is a known status.
func (s ListingStatus) Valid() bool {
	return s.Rank() > 0
}

// Listing is a surplus-food offer posted by an organizer.
type Listing struct {
	ListingID     uuid.UUID     `gorm:"column:listing_id;type:uuid;primaryKey" json:"listing_id"`
	Seq           int64         `gorm:"column:seq;not null;index" json:"-"`
	OrganizerID   uuid.UUID     `gorm:"column:organizer_id;type:uuid;not null;index" json:"organizer_id"`
	OrganizerName string        `gorm:"column:organizer_name;not null" json:"organizer_name"`
	EventName     string        `gorm:"column:event_name;not null" json:"event_name"`
	FoodType      string        `gorm:"column:food_type;not null" json:"food_type"`
	Quantity      string        `gorm:"column:quantity;not null" json:"quantity"`
	Location      string        `gorm:"column:location;not null" json:"location"`
	Address       string        `gorm:"column:address;not null" json:"address"`
	ContactPhone  string        `gorm:"column:contact_phone;not null" json:"contact_phone"`
	ContactEmail  string        `gorm:"column:contact_email;not null" json:"contact_email"`
	ExpiryTime    time.Time     `gorm:"column:expiry_time;not null" json:"expiry_time"`
	PostedAt      time.Time     `gorm:"column:posted_at;not null" json:"posted_at"`
	Description   string        `gorm:"column:description;not null" json:"description"`
	ImageURL      *string       `gorm:"column:image_url" json:"image_url"`
	Status        ListingStatus `gorm:"column:status;type:varchar(20);not null;default:'available'" json:"status"`

	ClaimedByOrgID *uuid.UUID `gorm:"column:claimed_by_org_id;type:uuid;index" json:"claimed_by_org_id"`
	ClaimedBy      *string    `gorm:"column:claimed_by" json:"claimed_by"`
	ClaimedAt      *time.Time `gorm:"column:claimed_at" json:"claimed_at"`
	CollectedAt    *time.Time `gorm:"column:collected_at" json:"collected_at"`

	ExpiryNotifiedAt *time.Time `gorm:"column:expiry_notified_at" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Listing) TableName() string {
	return "listings"
}

// BeforeCreate sets listing_id if not already set (DBs without default uuid).
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ListingID == uuid.Nil {
		l.ListingID = uuid.New()
	}
	return nil
}

// Expired reports whether the pickup window has closed at now.
func (l *Listing) Expired(now time.Time) bool {
	return !l.ExpiryTime.After(now)
}

// HasClaimant reports whether a claimant org is recorded.
func (l *Listing) HasClaimant() bool {
	return l.ClaimedByOrgID != nil && *l.ClaimedByOrgID != uuid.Nil
}

// Consistent checks the claimant invariant: a claimant is recorded if and
// only if the listing has been claimed.
func (l *Listing) Consistent() bool {
	return l.HasClaimant() == (l.Status.Rank() >= StatusClaimed.Rank())
}

// Claim reserves an available listing for the actor's org.
func (l *Listing) Claim(actor Actor, at time.Time) error {
	if actor.Role != RoleNGO || actor.OrgID == uuid.Nil {
		return ErrUnauthorizedAction
	}
	if l.Status != StatusAvailable {
		return fmt.Errorf("%w: cannot claim a %s listing", ErrInvalidTransition, l.Status)
	}
	orgID, orgName := actor.OrgID, actor.OrgName
	l.Status = StatusClaimed
	l.ClaimedByOrgID = &orgID
	l.ClaimedBy = &orgName
	l.ClaimedAt = &at
	return nil
}

// Collect marks a claimed listing as picked up. Only the claimant org may collect.
func (l *Listing) Collect(actor Actor, at time.Time) error {
	if actor.Role != RoleNGO {
		return ErrUnauthorizedAction
	}
	if l.Status != StatusClaimed {
		return fmt.Errorf("%w: cannot collect a %s listing", ErrInvalidTransition, l.Status)
	}
	if !l.HasClaimant() || *l.ClaimedByOrgID != actor.OrgID {
		return ErrUnauthorizedAction
	}
	l.Status = StatusCollected
	l.CollectedAt = &at
	return nil
}
