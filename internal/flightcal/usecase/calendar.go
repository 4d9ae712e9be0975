package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/amadeus"
	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/entity"
	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/pkg/pkgerror"
)

// calendarRadius is how many days around the requested dates the calendar
// grid covers in each direction.
const calendarRadius = 3

// CalendarDatepairs produces the date-pair grid around a departure/return
// date: every (departure+i, return+j) for i,j in [-3,3], 49 pairs total.
// Order is deterministic, i ascending then j ascending; callers rely on it.
func CalendarDatepairs(departure, returnDate time.Time) []entity.Datepair {
	datepairs := make([]entity.Datepair, 0, (2*calendarRadius+1)*(2*calendarRadius+1))
	for i := -calendarRadius; i <= calendarRadius; i++ {
		for j := -calendarRadius; j <= calendarRadius; j++ {
			datepairs = append(datepairs, entity.NewDatepair(
				departure.AddDate(0, 0, i),
				returnDate.AddDate(0, 0, j),
			))
		}
	}
	return datepairs
}

type CalendarInput struct {
	Origin        string
	Destination   string
	DepartureDate time.Time
	ReturnDate    time.Time
	Adults        int
	TravelClass   entity.CabinClass
}

// Calendar prices the ±3 day grid around the requested dates.
func (u *Usecase) Calendar(ctx context.Context, in CalendarInput) (*DatepairPricesOutput, error) {
	return u.PricesForDatepairs(ctx, DatepairPricesInput{
		Origin:      in.Origin,
		Destination: in.Destination,
		Adults:      in.Adults,
		TravelClass: in.TravelClass,
		Datepairs:   CalendarDatepairs(in.DepartureDate, in.ReturnDate),
	})
}

type DatepairPricesInput struct {
	Origin      string
	Destination string
	Adults      int
	TravelClass entity.CabinClass
	Datepairs   []entity.Datepair
}

type DatepairPricesOutput struct {
	Prices map[entity.Datepair]entity.PriceResult
	Stats  entity.BatchStats
}

type datepairResult struct {
	datepair entity.Datepair
	result   entity.PriceResult
}

// PricesForDatepairs looks up the lowest round-trip fare for every datepair.
// All lookups are submitted up front; concurrency and pacing are governed
// entirely by the gateway. The batch resolves exactly once, after every
// lookup has settled, and per-item failures never abort it: failed datepairs
// stay in the mapping marked Failed. Duplicate datepairs each dispatch and
// count toward the stats; the stored result is last-write-wins.
func (u *Usecase) PricesForDatepairs(ctx context.Context, in DatepairPricesInput) (*DatepairPricesOutput, error) {
	prices := make(map[entity.Datepair]entity.PriceResult, len(in.Datepairs))
	if len(in.Datepairs) == 0 {
		return &DatepairPricesOutput{Prices: prices}, nil
	}

	queries := make([]amadeus.FlightOffersQuery, len(in.Datepairs))
	for i, datepair := range in.Datepairs {
		departure, returnDate, err := datepair.Split()
		if err != nil {
			return nil, pkgerror.NewBusiness(err.Error(), pkgerror.CodeInvalidInput)
		}
		queries[i] = amadeus.FlightOffersQuery{
			Origin:        in.Origin,
			Destination:   in.Destination,
			DepartureDate: departure,
			ReturnDate:    returnDate,
			Adults:        in.Adults,
			TravelClass:   in.TravelClass,
			Max:           1,
		}
	}

	resultChan := make(chan datepairResult, len(in.Datepairs))
	for i, datepair := range in.Datepairs {
		datepair, query := datepair, queries[i]
		go func() {
			resultChan <- datepairResult{
				datepair: datepair,
				result:   u.priceDatepair(ctx, query),
			}
		}()
	}

	stats := entity.BatchStats{Total: len(in.Datepairs)}
	for i := 0; i < len(in.Datepairs); i++ {
		settled := <-resultChan
		if settled.result.Failed {
			stats.Failed++
		} else {
			stats.Succeeded++
		}
		prices[settled.datepair] = settled.result
	}

	slog.InfoContext(ctx, "datepair pricing batch completed",
		"origin", in.Origin,
		"destination", in.Destination,
		"total", stats.Total,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
	)
	return &DatepairPricesOutput{Prices: prices, Stats: stats}, nil
}

// priceDatepair settles a single lookup. Errors are absorbed into a Failed
// result; only the aggregate counts surface them.
func (u *Usecase) priceDatepair(ctx context.Context, query amadeus.FlightOffersQuery) entity.PriceResult {
	resp, err := u.flightOffersWithRetry(ctx, query)
	if err != nil {
		slog.DebugContext(ctx, "datepair pricing lookup failed",
			"departure", query.DepartureDate,
			"return", query.ReturnDate,
			"error", err,
		)
		return entity.PriceResult{Failed: true}
	}
	if len(resp.Data) == 0 {
		return entity.PriceResult{Failed: true}
	}

	// With max=1 the upstream already returns the minimum fare.
	offer := resp.Data[0]
	price, err := offer.TotalPrice()
	if err != nil {
		return entity.PriceResult{Failed: true}
	}
	return entity.PriceResult{
		Price:          price,
		PriceFormatted: formatMoney(price, offer.Price.Currency),
	}
}

// flightOffersWithRetry backs off and retries only on rate-limit errors; the
// gateway's pacing makes them rare, and any other failure is final.
func (u *Usecase) flightOffersWithRetry(ctx context.Context, query amadeus.FlightOffersQuery) (*amadeus.FlightOffersResponse, error) {
	backoff := 200 * time.Millisecond
	var lastErr error
	for attempt := 0; attempt <= u.maxRateLimitRetries; attempt++ {
		resp, err := u.client.FlightOffers(ctx, query)
		if err == nil {
			return resp, nil
		}
		if !errors.Is(err, amadeus.ErrRateLimited) {
			return nil, err
		}
		lastErr = err
		if attempt == u.maxRateLimitRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
			backoff *= 2
		}
	}
	return nil, lastErr
}
