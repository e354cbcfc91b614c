package httpserver

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"ziplofy-shipping/internal/domain"
	"ziplofy-shipping/internal/logger"
	"ziplofy-shipping/internal/service/locationsettings"
	"ziplofy-shipping/internal/service/shippingrate"
	"ziplofy-shipping/internal/service/shippingzone"
	"ziplofy-shipping/internal/service/store"
)

type ProfileService interface {
	Create(ctx context.Context, storeID, profileName string) (*domain.ShippingProfileDetail, error)
	List(ctx context.Context, storeID string) ([]domain.ShippingProfileDetail, error)
	Update(ctx context.Context, id, profileName string) (*domain.ShippingProfileDetail, error)
	Delete(ctx context.Context, id string) (*domain.ProfileDeleteResult, error)
}

type LocationSettingsService interface {
	Get(ctx context.Context, profileID string) ([]domain.LocationSetting, error)
	Update(ctx context.Context, profileID, locationID string, in locationsettings.UpdateInput) (*domain.LocationSetting, error)
}

type ProfileVariantService interface {
	List(ctx context.Context, profileID string) ([]domain.ProfileVariant, error)
	Create(ctx context.Context, profileID, productVariantID string) (*domain.ProfileVariant, error)
	Delete(ctx context.Context, id string) error
}

type ZoneService interface {
	Create(ctx context.Context, in shippingzone.CreateInput) (*domain.ShippingZone, error)
	List(ctx context.Context, profileID string) ([]domain.ShippingZone, error)
	Update(ctx context.Context, id string, in shippingzone.UpdateInput) (*domain.ShippingZone, error)
	Delete(ctx context.Context, id string) (*domain.ZoneDeleteResult, error)
}

type RateService interface {
	Create(ctx context.Context, in shippingrate.CreateInput) (*domain.ShippingZoneRate, error)
	List(ctx context.Context, zoneID string) ([]domain.ShippingZoneRate, error)
	Update(ctx context.Context, id string, in shippingrate.UpdateInput) (*domain.ShippingZoneRate, error)
	Delete(ctx context.Context, id string) error
}

type GeoService interface {
	ListCountries(ctx context.Context) ([]domain.Country, error)
	ListStates(ctx context.Context, countryID string) ([]domain.State, error)
}

type StoreService interface {
	ListLocations(ctx context.Context, storeID string) ([]domain.Location, error)
	CreateLocation(ctx context.Context, storeID string, in store.CreateLocationInput) (*domain.Location, error)
	DeleteLocation(ctx context.Context, id string) error
}

// Deps holds the services the routes call.
type Deps struct {
	Profiles         ProfileService
	LocationSettings LocationSettingsService
	Variants         ProfileVariantService
	Zones            ZoneService
	Rates            RateService
	Geo              GeoService
	Stores           StoreService
}

// buildRouter wires routes for the API.
func buildRouter(log *zap.Logger, db *pgxpool.Pool, deps Deps, opts Options) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(logger.Recovery(log), logger.GinMiddleware(log), corsMiddleware(opts.CORSAllowOrigins))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	profiles := &profileHandler{svc: deps.Profiles}
	router.POST("/shipping-profiles", wrap(profiles.create))
	router.GET("/shipping-profiles/store/:storeId", wrap(profiles.list))
	router.PUT("/shipping-profiles/:id", wrap(profiles.update))
	router.DELETE("/shipping-profiles/:id", wrap(profiles.delete))

	settings := &locationSettingsHandler{svc: deps.LocationSettings}
	router.GET("/shipping-profile-location-settings/:profileId", wrap(settings.get))
	router.PUT("/shipping-profile-location-settings/:profileId/location/:locationId", wrap(settings.update))

	variants := &profileVariantHandler{svc: deps.Variants}
	router.GET("/shipping-profile-product-variants/:profileId", wrap(variants.list))
	router.POST("/shipping-profile-product-variants/:profileId", wrap(variants.create))
	router.DELETE("/shipping-profile-product-variants/:id", wrap(variants.delete))

	zones := &zoneHandler{svc: deps.Zones}
	router.POST("/shipping-zones", wrap(zones.create))
	router.GET("/shipping-zones/profile/:shippingProfileId", wrap(zones.list))
	router.PUT("/shipping-zones/:id", wrap(zones.update))
	router.DELETE("/shipping-zones/:id", wrap(zones.delete))

	rates := &rateHandler{svc: deps.Rates}
	router.POST("/shipping-zone-rates", wrap(rates.create))
	router.GET("/shipping-zone-rates/zone/:shippingZoneId", wrap(rates.list))
	router.PUT("/shipping-zone-rates/:id", wrap(rates.update))
	router.DELETE("/shipping-zone-rates/:id", wrap(rates.delete))

	geo := &geoHandler{svc: deps.Geo}
	router.GET("/countries", wrap(geo.countries))
	router.GET("/countries/:countryId/states", wrap(geo.states))

	stores := &storeHandler{svc: deps.Stores}
	router.GET("/stores/:storeId/locations", wrap(stores.listLocations))
	router.POST("/stores/:storeId/locations", wrap(stores.createLocation))
	router.DELETE("/locations/:id", wrap(stores.deleteLocation))

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
