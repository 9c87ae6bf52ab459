// Package bootstrap builds the server from the environment. It is shared by
// the standalone binary and serverless entry points.
package bootstrap

import (
	"net/http"

	"foodshare-backend/internal/config"
	"foodshare-backend/internal/interfaces/router"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

// New loads config and creates the app.
func New() (*router.App, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	app, err := router.CreateApp(cfg)
	if err != nil {
		return nil, nil, err
	}
	return app, cfg, nil
}

// HTTPHandler exposes app as a net/http handler for serverless runtimes.
func HTTPHandler(app *router.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.RequestURI = r.URL.String()
		adaptor.FiberApp(app.Fiber)(w, r)
	}
}
