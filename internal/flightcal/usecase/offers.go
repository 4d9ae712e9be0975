package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/amadeus"
	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/entity"
	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/pkg/pkgerror"
)

type OffersInput struct {
	Origin        string
	Destination   string
	DepartureDate time.Time
	ReturnDate    time.Time
	Adults        int
	TravelClass   entity.CabinClass
}

// Offers runs a full flight-offers search and normalizes the response into
// deduplicated display offers.
func (u *Usecase) Offers(ctx context.Context, in OffersInput) ([]entity.Offer, error) {
	resp, err := u.client.FlightOffers(ctx, amadeus.FlightOffersQuery{
		Origin:        in.Origin,
		Destination:   in.Destination,
		DepartureDate: in.DepartureDate.Format(entity.DateLayout),
		ReturnDate:    in.ReturnDate.Format(entity.DateLayout),
		Adults:        in.Adults,
		TravelClass:   in.TravelClass,
	})
	if err != nil {
		return nil, mapUpstreamError(err)
	}
	offers, err := normalizeOffers(resp)
	if err != nil {
		return nil, err
	}
	return offers, nil
}

// Suggestions resolves a keyword to airport/city candidates with
// display-cased names. Results are cached per keyword; the upstream reference
// data changes rarely and the lookup shares the pricing rate limit.
func (u *Usecase) Suggestions(ctx context.Context, keyword string) ([]entity.Location, error) {
	key := strings.ToLower(strings.TrimSpace(keyword))
	if cached, ok := u.suggestionCache.Get(key); ok {
		return cached, nil
	}

	entries, err := u.client.Locations(ctx, keyword)
	if err != nil {
		return nil, mapUpstreamError(err)
	}

	suggestions := make([]entity.Location, 0, len(entries))
	for _, entry := range entries {
		suggestions = append(suggestions, entity.Location{
			IataCode: entry.IataCode,
			Name:     titleCase(entry.Name),
			CityName: titleCase(entry.Address.CityName),
		})
	}

	u.suggestionCache.Set(key, suggestions, u.suggestionCacheTTL)
	return suggestions, nil
}

// mapUpstreamError converts provider failures on non-batch paths into
// business errors the HTTP layer can map to a status.
func mapUpstreamError(err error) error {
	switch {
	case errors.Is(err, amadeus.ErrRateLimited):
		return pkgerror.NewBusiness("upstream rate limit exceeded, retry shortly", pkgerror.CodeRateLimited)
	case errors.Is(err, amadeus.ErrMalformedResponse):
		return err
	default:
		var upstream *amadeus.UpstreamError
		if errors.As(err, &upstream) {
			return pkgerror.NewBusiness("flight search provider unavailable", pkgerror.CodeUnavailable)
		}
		return err
	}
}

// CloneLocations is the copy hook for the suggestion cache.
func CloneLocations(locations []entity.Location) []entity.Location {
	if locations == nil {
		return nil
	}
	clone := make([]entity.Location, len(locations))
	copy(clone, locations)
	return clone
}
