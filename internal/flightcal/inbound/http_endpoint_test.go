package inbound

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/entity"
	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/usecase"
)

func TestMapCalendarResponse(t *testing.T) {
	output := &usecase.DatepairPricesOutput{
		Prices: map[entity.Datepair]entity.PriceResult{
			"2024-06-10>2024-06-20": {Price: 350.50, PriceFormatted: "$350.50"},
			"2024-06-11>2024-06-21": {Failed: true},
		},
	}

	resp := mapCalendarResponse(output)

	require.Len(t, resp, 2)
	priced := resp["2024-06-10>2024-06-20"]
	require.NotNil(t, priced.Price)
	assert.Equal(t, 350.50, *priced.Price)
	assert.Equal(t, "$350.50", priced.PriceFormatted)

	// Failed lookups keep their key with no price fields.
	failed := resp["2024-06-11>2024-06-21"]
	assert.Nil(t, failed.Price)
	assert.Empty(t, failed.PriceFormatted)
}

func TestMapOfferResponses(t *testing.T) {
	offers := []entity.Offer{{
		PriceFrom:         "$350.50",
		ValidatingAirline: "UX",
		Outbound: entity.Itinerary{
			Duration: "8 h 15 min",
			Stops:    "Nonstop",
			Segments: []entity.Segment{{Origin: "MAD", Destination: "JFK", CarrierCode: "UX", CabinClass: "Economy"}},
		},
		Inbounds: []entity.Itinerary{{
			Duration:       "7 h 5 min",
			PriceFormatted: "$350.50",
			OfferID:        "1",
			Segments:       []entity.Segment{{Origin: "JFK", Destination: "MAD", CarrierCode: "UX"}},
		}},
	}}

	resp := mapOfferResponses(offers)

	require.Len(t, resp, 1)
	assert.Equal(t, "$350.50", resp[0].PriceFrom)
	assert.Equal(t, "UX", resp[0].ValidatingAirline)
	assert.Equal(t, "Economy", resp[0].Outbound.Segments[0].Class)
	require.Len(t, resp[0].Inbounds, 1)
	assert.Equal(t, "1", resp[0].Inbounds[0].OfferID)
	assert.Equal(t, "$350.50", resp[0].Inbounds[0].PriceFormatted)
}
