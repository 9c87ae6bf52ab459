package database

import (
	"fmt"
	"time"

	"foodshare-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// fixtureNow is the instant the demo fixture was written against. Seeded
// timestamps keep their offset from it, rebased onto the seeding time.
var fixtureNow = time.Date(2024, 1, 15, 16, 30, 0, 0, time.UTC)

// SeedID derives a stable id for a fixture record so demo links survive restarts.
func SeedID(kind, key string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("foodshare:"+kind+":"+key))
}

type seedOrg struct {
	name string
	kind domain.Role
}

type seedUser struct {
	name, email, phone, org string
	role                    domain.Role
}

type seedListing struct {
	key, organizerEmail                       string
	eventName, foodType, quantity, location   string
	address, phone, email, description, image string
	expiry, posted                            time.Time
	claimedBy                                 string
}

var seedOrgs = []seedOrg{
	{"Tech Conference Group", domain.RoleOrganizer},
	{"State University Events", domain.RoleOrganizer},
	{"Corporate Training Co", domain.RoleOrganizer},
	{"City Food Bank", domain.RoleNGO},
}

var seedUsers = []seedUser{
	{"Sarah Johnson", "sarah@techconf.com", "+1 (555) 123-4567", "Tech Conference Group", domain.RoleOrganizer},
	{"David Martinez", "david@cityfoodbank.org", "+1 (555) 987-6543", "City Food Bank", domain.RoleNGO},
	{"Michael Chen", "events@stateuni.edu", "+1 (555) 234-5678", "State University Events", domain.RoleOrganizer},
	{"Emma Rodriguez", "emma@corptraining.com", "+1 (555) 345-6789", "Corporate Training Co", domain.RoleOrganizer},
}

// Board order, first shown first.
var seedListings = []seedListing{
	{
		key: "1", organizerEmail: "sarah@techconf.com",
		eventName: "Tech Conference 2024", foodType: "Sandwiches & Salads", quantity: "50 servings",
		location: "Downtown Convention Center", address: "123 Main Street, City Center",
		phone: "+1 (555) 123-4567", email: "sarah@techconf.com",
		expiry: time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC), posted: time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC),
		description: "Fresh sandwiches, mixed salads, and vegetarian options from our tech conference lunch. All items are properly packaged and ready for pickup.",
		image:       "https://images.pexels.com/photos/1640777/pexels-photo-1640777.jpeg?auto=compress&cs=tinysrgb&w=400",
	},
	{
		key: "2", organizerEmail: "events@stateuni.edu",
		eventName: "University Graduation Party", foodType: "Catered Dinner", quantity: "80 servings",
		location: "State University Campus", address: "456 College Avenue, University District",
		phone: "+1 (555) 234-5678", email: "events@stateuni.edu",
		expiry: time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC), posted: time.Date(2024, 1, 15, 16, 15, 0, 0, time.UTC),
		description: "Variety of hot dishes including chicken, rice, vegetables, and desserts. Perfect for community distribution.",
		image:       "https://images.pexels.com/photos/958545/pexels-photo-958545.jpeg?auto=compress&cs=tinysrgb&w=400",
		claimedBy:   "City Food Bank",
	},
	{
		key: "3", organizerEmail: "emma@corptraining.com",
		eventName: "Corporate Training Workshop", foodType: "Breakfast & Snacks", quantity: "30 servings",
		location: "Business District Plaza", address: "789 Corporate Drive, Suite 200",
		phone: "+1 (555) 345-6789", email: "emma@corptraining.com",
		expiry: time.Date(2024, 1, 15, 17, 0, 0, 0, time.UTC), posted: time.Date(2024, 1, 15, 13, 45, 0, 0, time.UTC),
		description: "Assorted pastries, fresh fruit, coffee, and healthy snacks from our morning workshop.",
		image:       "https://images.pexels.com/photos/1640772/pexels-photo-1640772.jpeg?auto=compress&cs=tinysrgb&w=400",
	},
}

// Seeder loads the demo directory and board.
type Seeder struct {
	DB       *gorm.DB
	Password string
	Now      func() time.Time
}

// Run seeds orgs, users and listings once; it is a no-op when users exist.
func (s *Seeder) Run() error {
	var count int64
	if err := s.DB.Model(&domain.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info().Int64("users", count).Msg("seed: directory already populated, skipping")
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash password: %w", err)
	}
	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}
	rebase := func(t time.Time) time.Time { return now.Add(t.Sub(fixtureNow)) }

	return s.DB.Transaction(func(tx *gorm.DB) error {
		orgs := make(map[string]domain.Org, len(seedOrgs))
		for _, o := range seedOrgs {
			org := domain.Org{OrgID: SeedID("org", o.name), OrgName: o.name, Kind: o.kind}
			if err := tx.Create(&org).Error; err != nil {
				return fmt.Errorf("seed org %s: %w", o.name, err)
			}
			orgs[o.name] = org
		}

		users := make(map[string]domain.User, len(seedUsers))
		for _, u := range seedUsers {
			user := domain.User{
				UserID:       SeedID("user", u.email),
				Fullname:     u.name,
				Email:        u.email,
				PasswordHash: string(hash),
				Role:         u.role,
				OrgID:        orgs[u.org].OrgID,
				Phone:        u.phone,
			}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("seed user %s: %w", u.email, err)
			}
			users[u.email] = user
		}

		for i, sl := range seedListings {
			organizer := users[sl.organizerEmail]
			image := sl.image
			listing := domain.Listing{
				ListingID:     SeedID("listing", sl.key),
				Seq:           int64(len(seedListings) - i),
				OrganizerID:   organizer.UserID,
				OrganizerName: organizer.Fullname,
				EventName:     sl.eventName,
				FoodType:      sl.foodType,
				Quantity:      sl.quantity,
				Location:      sl.location,
				Address:       sl.address,
				ContactPhone:  sl.phone,
				ContactEmail:  sl.email,
				ExpiryTime:    rebase(sl.expiry),
				PostedAt:      rebase(sl.posted),
				Description:   sl.description,
				ImageURL:      &image,
				Status:        domain.StatusAvailable,
			}
			if sl.claimedBy != "" {
				org := orgs[sl.claimedBy]
				claimedAt := now.Add(-5 * time.Minute)
				listing.Status = domain.StatusClaimed
				listing.ClaimedByOrgID = &org.OrgID
				listing.ClaimedBy = &org.OrgName
				listing.ClaimedAt = &claimedAt
			}
			if err := tx.Create(&listing).Error; err != nil {
				return fmt.Errorf("seed listing %s: %w", sl.key, err)
			}
		}
		log.Info().Int("orgs", len(orgs)).Int("users", len(users)).Int("listings", len(seedListings)).Msg("seed: demo data loaded")
		return nil
	})
}
