package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Org is an event organizer's company or an NGO. Listings reference the
// claimant org by id; the name is copied for display only.
type Org struct {
	OrgID     uuid.UUID `gorm:"column:org_id;type:uuid;primaryKey" json:"org_id"`
	OrgName   string    `gorm:"column:org_name;not null;uniqueIndex" json:"org_name"`
	Kind      Role      `gorm:"column:kind;type:varchar(20);not null" json:"kind"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Org) TableName() string {
	return "orgs"
}

// BeforeCreate ensures org_id is set for DBs without default uuid.
func (o *Org) BeforeCreate(tx *gorm.DB) error {
	if o.OrgID == uuid.Nil {
		o.OrgID = uuid.New()
	}
	return nil
}
