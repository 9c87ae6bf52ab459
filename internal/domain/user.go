package domain

import (
	"time"

	"foodshare-backend/internal/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is what a signed-in user may do on the board.
type Role string

const (
	RoleOrganizer Role = constants.Organizer
	RoleNGO       Role = constants.NGO
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return constants.IsValidRole(string(r))
}

// User is an entry of the sign-in directory.
type User struct {
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	Fullname     string    `gorm:"column:fullname;not null" json:"fullname"`
	Email        string    `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Role         Role      `gorm:"column:role;type:varchar(20);not null" json:"role"`
	OrgID        uuid.UUID `gorm:"column:org_id;type:uuid;not null" json:"org_id"`
	Org          *Org      `gorm:"foreignKey:OrgID;references:OrgID" json:"org,omitempty"`
	Phone        string    `gorm:"column:phone" json:"phone"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate sets UUID if not set (for DBs without gen_random_uuid).
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}

// Actor is the signed-in user performing a listing operation.
type Actor struct {
	UserID  uuid.UUID
	Name    string
	Role    Role
	OrgID   uuid.UUID
	OrgName string
}

// ActorFor builds the Actor for u. The org must be preloaded for OrgName.
func ActorFor(u *User) Actor {
	a := Actor{UserID: u.UserID, Name: u.Fullname, Role: u.Role, OrgID: u.OrgID}
	if u.Org != nil {
		a.OrgName = u.Org.OrgName
	}
	return a
}
