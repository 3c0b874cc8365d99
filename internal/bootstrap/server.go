package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/flightbook/api"
	"github.com/Domenick1991/flightbook/config"
	"github.com/Domenick1991/flightbook/internal/domain"
	"github.com/Domenick1991/flightbook/internal/service/auth"
	"github.com/Domenick1991/flightbook/internal/service/booking"
	"github.com/Domenick1991/flightbook/internal/service/flights"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, authSvc auth.AuthUseCase, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(cfg, authSvc, flightSvc, bookingSvc),
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

// NewRouter builds the gin engine with all middleware and routes.
func NewRouter(cfg *config.Config, authSvc auth.AuthUseCase, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(api.RequestID())
	r.Use(api.RequestLogger())

	corsCfg := cors.DefaultConfig()
	if len(cfg.HTTP.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-ID")
	r.Use(cors.New(corsCfg))

	requireAuth := api.RequireAuth(authSvc)
	requireAdmin := api.RequireRole(domain.RoleAdmin)

	root := r.Group("/api")
	api.NewAuthHandler(authSvc).Register(root)

	flightsPublic := root.Group("/flights")
	flightsAdmin := root.Group("/flights", requireAuth, requireAdmin)
	api.NewFlightHandler(flightSvc).Register(flightsPublic, flightsAdmin)

	bookingsAuthed := root.Group("/bookings", requireAuth)
	bookingsAdmin := root.Group("/bookings", requireAuth, requireAdmin)
	api.NewBookingHandler(bookingSvc).Register(bookingsAuthed, bookingsAdmin)

	if cfg.HTTP.SwaggerDir != "" {
		r.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
		r.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/swagger.json"),
		)))
	}

	return r
}
