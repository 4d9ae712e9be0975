package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/amadeus"
	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/cache"
	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/entity"
)

func TestCalendarDatepairs(t *testing.T) {
	departure := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	returnDate := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)

	datepairs := CalendarDatepairs(departure, returnDate)

	require.Len(t, datepairs, 49)
	assert.Equal(t, entity.Datepair("2024-06-07>2024-06-17"), datepairs[0])
	assert.Equal(t, entity.Datepair("2024-06-10>2024-06-20"), datepairs[24])
	assert.Equal(t, entity.Datepair("2024-06-13>2024-06-23"), datepairs[48])

	seen := make(map[entity.Datepair]bool, len(datepairs))
	for _, datepair := range datepairs {
		assert.False(t, seen[datepair], "duplicate datepair %s", datepair)
		seen[datepair] = true
	}
}

func TestCalendarDatepairsCrossesMonthBoundary(t *testing.T) {
	departure := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	returnDate := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	datepairs := CalendarDatepairs(departure, returnDate)

	require.Len(t, datepairs, 49)
	// 2024 is a leap year.
	assert.Equal(t, entity.Datepair("2024-02-25>2024-02-28"), datepairs[0])
	assert.Equal(t, entity.Datepair("2024-03-02>2024-03-05"), datepairs[48])
}

// fakeFareClient scripts per-datepair pricing outcomes. The key is
// "<departureDate>><returnDate>".
type fakeFareClient struct {
	mu         sync.Mutex
	failures   map[string]error
	failuresN  map[string]int // fail the first N calls for a key, then succeed
	priceTotal string
	currency   string
	calls      int
	locations  []amadeus.LocationEntry
}

func (f *fakeFareClient) key(q amadeus.FlightOffersQuery) string {
	return q.DepartureDate + ">" + q.ReturnDate
}

func (f *fakeFareClient) FlightOffers(_ context.Context, q amadeus.FlightOffersQuery) (*amadeus.FlightOffersResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	key := f.key(q)
	if err, ok := f.failures[key]; ok {
		return nil, err
	}
	if n, ok := f.failuresN[key]; ok && n > 0 {
		f.failuresN[key] = n - 1
		return nil, amadeus.ErrRateLimited
	}

	total := f.priceTotal
	if total == "" {
		total = "199.99"
	}
	currency := f.currency
	if currency == "" {
		currency = "USD"
	}
	return &amadeus.FlightOffersResponse{
		Data: []amadeus.Offer{{
			ID:    "1",
			Price: amadeus.Price{Currency: currency, Total: total},
		}},
	}, nil
}

func (f *fakeFareClient) Locations(context.Context, string) ([]amadeus.LocationEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.locations, nil
}

func newTestUsecase(client FareClient, retries int) *Usecase {
	return New(Dependency{
		Client:              client,
		SuggestionCache:     cache.New[[]entity.Location](CloneLocations),
		SuggestionCacheTTL:  time.Minute,
		MaxRateLimitRetries: retries,
	})
}

func TestPricesForDatepairsEmptyInput(t *testing.T) {
	uc := newTestUsecase(&fakeFareClient{}, 0)

	output, err := uc.PricesForDatepairs(context.Background(), DatepairPricesInput{
		Origin:      "MAD",
		Destination: "JFK",
		Adults:      1,
		TravelClass: entity.CabinEconomy,
	})

	require.NoError(t, err)
	assert.Empty(t, output.Prices)
	assert.Equal(t, entity.BatchStats{}, output.Stats)
}

func TestPricesForDatepairsPartialFailure(t *testing.T) {
	departure := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	returnDate := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)
	datepairs := CalendarDatepairs(departure, returnDate)

	client := &fakeFareClient{
		priceTotal: "350.50",
		failures: map[string]error{
			"2024-06-10>2024-06-20": amadeus.ErrRateLimited,
		},
	}
	uc := newTestUsecase(client, 0)

	output, err := uc.PricesForDatepairs(context.Background(), DatepairPricesInput{
		Origin:      "MAD",
		Destination: "JFK",
		Adults:      1,
		TravelClass: entity.CabinEconomy,
		Datepairs:   datepairs,
	})

	require.NoError(t, err)
	require.Len(t, output.Prices, 49)
	assert.Equal(t, entity.BatchStats{Total: 49, Succeeded: 48, Failed: 1}, output.Stats)

	failed := output.Prices[entity.Datepair("2024-06-10>2024-06-20")]
	assert.True(t, failed.Failed)
	assert.Zero(t, failed.Price)
	assert.Empty(t, failed.PriceFormatted)

	succeeded := output.Prices[entity.Datepair("2024-06-07>2024-06-17")]
	assert.False(t, succeeded.Failed)
	assert.Equal(t, 350.50, succeeded.Price)
	assert.Equal(t, "$350.50", succeeded.PriceFormatted)
}

func TestPricesForDatepairsDuplicatesDispatchEachButKeepOneKey(t *testing.T) {
	client := &fakeFareClient{}
	uc := newTestUsecase(client, 0)

	datepair := entity.Datepair("2024-06-10>2024-06-20")
	other := entity.Datepair("2024-06-11>2024-06-21")
	output, err := uc.PricesForDatepairs(context.Background(), DatepairPricesInput{
		Origin:      "MAD",
		Destination: "JFK",
		Adults:      1,
		TravelClass: entity.CabinEconomy,
		Datepairs:   []entity.Datepair{datepair, datepair, other},
	})

	require.NoError(t, err)
	assert.Len(t, output.Prices, 2)
	assert.Equal(t, entity.BatchStats{Total: 3, Succeeded: 3}, output.Stats)
	assert.Equal(t, 3, client.calls)
}

func TestPricesForDatepairsInvalidDatepair(t *testing.T) {
	uc := newTestUsecase(&fakeFareClient{}, 0)

	_, err := uc.PricesForDatepairs(context.Background(), DatepairPricesInput{
		Origin:      "MAD",
		Destination: "JFK",
		Adults:      1,
		TravelClass: entity.CabinEconomy,
		Datepairs:   []entity.Datepair{"2024-06-10"},
	})

	assert.Error(t, err)
}

func TestPricesForDatepairsNoAvailabilityIsFailed(t *testing.T) {
	// An empty data slice means no flights for those dates; the entry stays
	// in the mapping, marked failed.
	uc := New(Dependency{
		Client: fareClientFunc(func(context.Context, amadeus.FlightOffersQuery) (*amadeus.FlightOffersResponse, error) {
			return &amadeus.FlightOffersResponse{}, nil
		}),
		SuggestionCache: cache.New[[]entity.Location](CloneLocations),
	})

	output, err := uc.PricesForDatepairs(context.Background(), DatepairPricesInput{
		Origin:      "MAD",
		Destination: "JFK",
		Adults:      1,
		TravelClass: entity.CabinEconomy,
		Datepairs:   []entity.Datepair{"2024-06-10>2024-06-20"},
	})

	require.NoError(t, err)
	require.Len(t, output.Prices, 1)
	assert.True(t, output.Prices["2024-06-10>2024-06-20"].Failed)
}

func TestFlightOffersRetryOnRateLimit(t *testing.T) {
	client := &fakeFareClient{
		priceTotal: "101.00",
		failuresN: map[string]int{
			"2024-06-10>2024-06-20": 1,
		},
	}
	uc := newTestUsecase(client, 2)

	output, err := uc.PricesForDatepairs(context.Background(), DatepairPricesInput{
		Origin:      "MAD",
		Destination: "JFK",
		Adults:      1,
		TravelClass: entity.CabinEconomy,
		Datepairs:   []entity.Datepair{"2024-06-10>2024-06-20"},
	})

	require.NoError(t, err)
	result := output.Prices["2024-06-10>2024-06-20"]
	assert.False(t, result.Failed)
	assert.Equal(t, 101.0, result.Price)
	assert.Equal(t, 2, client.calls)
}

// fareClientFunc adapts a function to FareClient for single-method fakes.
type fareClientFunc func(context.Context, amadeus.FlightOffersQuery) (*amadeus.FlightOffersResponse, error)

func (f fareClientFunc) FlightOffers(ctx context.Context, q amadeus.FlightOffersQuery) (*amadeus.FlightOffersResponse, error) {
	return f(ctx, q)
}

func (f fareClientFunc) Locations(context.Context, string) ([]amadeus.LocationEntry, error) {
	return nil, nil
}
