package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/voyago/tripengine/api"
	"github.com/voyago/tripengine/config"
)

// Handlers bundles the HTTP surface so Run does not grow a parameter per
// route group.
type Handlers struct {
	Catalog   *api.CatalogHandler
	Selection *api.SelectionHandler
	Booking   *api.BookingHandler
	Trips     *api.TripHandler
	Prompts   *api.PromptHandler
}

// Run starts the HTTP server and blocks until context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, h Handlers) error {
	router := gin.Default()

	h.Catalog.Register(router.Group("/catalog"))
	h.Selection.Register(router.Group("/selection"))
	h.Booking.Register(router.Group("/booking"))
	h.Trips.Register(router.Group("/trips"))
	h.Prompts.Register(router.Group("/prompts"))

	api.RegisterDocs(router, cfg.HTTP.SwaggerDir)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
