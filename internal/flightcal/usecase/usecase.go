package usecase

import (
	"context"
	"time"

	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/amadeus"
	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/cache"
	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/entity"
)

// FareClient is the slice of the upstream provider this module consumes.
type FareClient interface {
	FlightOffers(ctx context.Context, q amadeus.FlightOffersQuery) (*amadeus.FlightOffersResponse, error)
	Locations(ctx context.Context, keyword string) ([]amadeus.LocationEntry, error)
}

type Dependency struct {
	Client              FareClient
	SuggestionCache     *cache.Cache[[]entity.Location]
	SuggestionCacheTTL  time.Duration
	MaxRateLimitRetries int
}

type Usecase struct {
	client              FareClient
	suggestionCache     *cache.Cache[[]entity.Location]
	suggestionCacheTTL  time.Duration
	maxRateLimitRetries int
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		client:              dep.Client,
		suggestionCache:     dep.SuggestionCache,
		suggestionCacheTTL:  dep.SuggestionCacheTTL,
		maxRateLimitRetries: dep.MaxRateLimitRetries,
	}
}
