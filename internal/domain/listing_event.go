package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Listing event types, one per recorded transition.
const (
	EventCreated       = "CREATED"
	EventClaimed       = "CLAIMED"
	EventCollected     = "COLLECTED"
	EventExpiryWarning = "EXPIRY_WARNING"
)

type ListingEvent struct {
	EventID      uuid.UUID      `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	ListingID    uuid.UUID      `gorm:"column:listing_id;type:uuid;not null;index" json:"listing_id"`
	EventType    string         `gorm:"column:event_type;type:varchar(30);not null" json:"event_type"`
	EventData    datatypes.JSON `gorm:"column:event_data;not null" json:"event_data"`
	ActorOrgID   *uuid.UUID     `gorm:"column:actor_org_id;type:uuid;index" json:"actor_org_id"`
	ActorOrgName *string        `gorm:"column:actor_org_name" json:"actor_org_name"`
	CreatedAt    time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (ListingEvent) TableName() string {
	return "listing_events"
}

func (le *ListingEvent) BeforeCreate(tx *gorm.DB) error {
	if le.EventID == uuid.Nil {
		le.EventID = uuid.New()
	}
	return nil
}
