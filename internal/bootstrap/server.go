package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Domenick1991/airportapi/api"
	"github.com/Domenick1991/airportapi/config"
	"github.com/Domenick1991/airportapi/internal/service/catalog"
	"github.com/Domenick1991/airportapi/internal/service/flights"
	"github.com/Domenick1991/airportapi/internal/service/orders"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, flightSvc flights.FlightUseCase, orderSvc orders.OrderUseCase, catalogSvc catalog.CatalogUseCase) error {
	router := newRouter(cfg, flightSvc, orderSvc, catalogSvc)

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(cfg *config.Config, flightSvc flights.FlightUseCase, orderSvc orders.OrderUseCase, catalogSvc catalog.CatalogUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	api.NewFlightHandler(flightSvc).Register(router.Group("/flights"))
	api.NewOrderHandler(orderSvc).Register(router.Group("/orders"))
	api.NewCatalogHandler(catalogSvc).Register(router.Group("/"))

	if cfg.HTTP.SwaggerFile != "" {
		specPath := "/swagger/" + filepath.Base(cfg.HTTP.SwaggerFile)
		router.StaticFile(specPath, cfg.HTTP.SwaggerFile)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL(specPath))))
	}

	return router
}
