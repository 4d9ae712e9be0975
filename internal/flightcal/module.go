package flightcal

import (
	"errors"
	"time"

	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/amadeus"
	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/cache"
	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/entity"
	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/gateway"
	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/inbound"
	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/usecase"
	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/pkg/pkgconfig"
	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/pkg/pkgrouter"
)

type Dependency struct {
	Config pkgconfig.Config
	Router *pkgrouter.Router
}

// New wires the flight calendar module: one rate-limited gateway shared by
// every upstream call, the Amadeus client, the search/pricing usecase and its
// HTTP endpoints. All configuration is resolved here, once, at startup.
func New(dep Dependency) error {
	clientID := dep.Config.GetString("AMADEUS_CLIENT_ID")
	clientSecret := dep.Config.GetString("AMADEUS_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return errors.New("AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET must be set")
	}

	tier := dep.Config.GetString("modules.flight-calendar.amadeus.environment")
	baseURL := amadeus.TestBaseURL
	if tier == "production" {
		baseURL = amadeus.ProductionBaseURL
	}

	gatewayConfig := gateway.TierConfig(tier)
	if maxConcurrent := dep.Config.GetInt("modules.flight-calendar.gateway.max_concurrent"); maxConcurrent > 0 {
		gatewayConfig.MaxConcurrent = maxConcurrent
	}
	gw := gateway.New(gatewayConfig)

	client := amadeus.NewClient(amadeus.Config{
		BaseURL:      baseURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	}, gw)

	suggestionTTL := 5 * time.Minute
	if ttlSeconds := dep.Config.GetInt("modules.flight-calendar.suggestions.cache_ttl_seconds"); ttlSeconds > 0 {
		suggestionTTL = time.Duration(ttlSeconds) * time.Second
	}

	retries := dep.Config.GetInt("modules.flight-calendar.pricing.rate_limit_retries")

	uc := usecase.New(usecase.Dependency{
		Client:              client,
		SuggestionCache:     cache.New[[]entity.Location](usecase.CloneLocations),
		SuggestionCacheTTL:  suggestionTTL,
		MaxRateLimitRetries: retries,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
