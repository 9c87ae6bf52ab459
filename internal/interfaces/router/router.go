package router

import (
	"fmt"
	"time"

	authsvc "foodshare-backend/internal/application/auth"
	lesvc "foodshare-backend/internal/application/listingevents"
	listsvc "foodshare-backend/internal/application/listings"
	notifsvc "foodshare-backend/internal/application/notifications"
	remindersvc "foodshare-backend/internal/application/reminders"
	"foodshare-backend/internal/config"
	"foodshare-backend/internal/constants"
	"foodshare-backend/internal/infrastructure/cache"
	"foodshare-backend/internal/infrastructure/database"
	authhandler "foodshare-backend/internal/interfaces/handlers/auth"
	healthhandler "foodshare-backend/internal/interfaces/handlers/health"
	lehandler "foodshare-backend/internal/interfaces/handlers/listingevents"
	listhandler "foodshare-backend/internal/interfaces/handlers/listings"
	notifhandler "foodshare-backend/internal/interfaces/handlers/notifications"
	"foodshare-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// App is the wired server with the resources it owns.
type App struct {
	Fiber     *fiber.App
	DB        *gorm.DB
	Rdb       *redis.Client
	Reminders *remindersvc.Service

	closeRedis func()
}

// Close stops the reminder job and releases the store and Redis.
func (a *App) Close() {
	if a.Reminders != nil {
		a.Reminders.Stop()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if a.closeRedis != nil {
		a.closeRedis()
	}
}

// CreateApp opens the store and Redis, seeds the demo board when enabled,
// and registers every route.
func CreateApp(cfg *config.Config) (*App, error) {
	rdb, closeRedis, err := cache.Open(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		closeRedis()
		return nil, fmt.Errorf("database: %w", err)
	}
	a := &App{DB: db, Rdb: rdb, closeRedis: closeRedis}
	if err := database.AutoMigrate(db); err != nil {
		a.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if cfg.SeedDemoData {
		seeder := &database.Seeder{DB: db, Password: cfg.DemoPassword, Now: time.Now}
		if err := seeder.Run(); err != nil {
			a.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix:  cfg.FrontendURLEndsWith,
		DevPassword:    cfg.DevPassword,
		AllowLocalhost: !cfg.IsProduction(),
	}))
	app.Use(middleware.Tracing())
	app.Use(middleware.Session(rdb))
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.RouteLogger())

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		DB:             &gormDBPinger{db: db},
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/", hh.Dashboard)
	app.Get("/reset", hh.Reset)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.IsProduction(),
	}
	ah := &authhandler.Handlers{
		UserFinder: &authsvc.GormUserFinder{DB: db},
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/me", ah.Me)
	authGroup.Delete("/logout", ah.Logout)

	notifier := &notifsvc.Service{Rdb: rdb, Limit: cfg.NotificationLimit}
	ls := &listsvc.Service{
		DB:                 db,
		Notifier:           notifier,
		AllowExpiredClaims: cfg.AllowExpiredClaims,
	}

	// Listings
	lh := &listhandler.Handlers{Service: ls}
	lg := app.Group("/api/v1/listings", middleware.RequireAuth())
	lg.Post("/create-listing", middleware.AuthorizePermission(constants.PostFood), lh.CreateListing)
	lg.Get("/get-all-listings", lh.GetAllListings)
	lg.Get("/get-listing/:listing_id", lh.GetListingByID)
	lg.Get("/get-my-listings", middleware.AuthorizePermission(constants.ViewOwnListings), lh.GetMyListings)
	lg.Get("/get-available-listings", middleware.AuthorizePermission(constants.ViewAvailable), lh.GetAvailableListings)
	lg.Get("/get-claimed-listings", middleware.AuthorizePermission(constants.ViewClaimed), lh.GetClaimedListings)
	lg.Post("/claim-listing", middleware.AuthorizePermission(constants.ClaimFood), lh.ClaimListing)
	lg.Post("/collect-listing", middleware.AuthorizePermission(constants.CollectFood), lh.CollectListing)
	app.Get("/api/v1/stats", lh.GetStats)

	// Listing events
	leh := &lehandler.Handlers{Service: &lesvc.Service{DB: db}}
	leg := app.Group("/api/v1/listing-events", middleware.RequireAuth())
	leg.Get("/get-listing-events/:listing_id", leh.GetListingEvents)
	leg.Get("/get-org-listing-events", leh.GetOrgListingEvents)

	// Notifications
	nh := &notifhandler.Handlers{Service: notifier}
	app.Get("/api/v1/notifications/recent", middleware.RequireAuth(), nh.Recent)

	a.Fiber = app
	a.Reminders = &remindersvc.Service{
		Listings: ls,
		Schedule: cfg.ExpiryReminderSchedule,
		Window:   cfg.ExpiryReminderWindow,
	}
	log.Info().
		Bool("seeded", cfg.SeedDemoData).
		Bool("allow_expired_claims", cfg.AllowExpiredClaims).
		Msg("app created")
	return a, nil
}
