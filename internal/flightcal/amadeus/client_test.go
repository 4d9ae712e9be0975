package amadeus

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/entity"
)

// passGateway lets every call straight through; gateway behavior has its own
// tests.
type passGateway struct{}

func (passGateway) Do(ctx context.Context, op func(context.Context) error) error {
	return op(ctx)
}

func validOffersPayload() map[string]any {
	segment := map[string]any{
		"id":          "s1",
		"departure":   map[string]any{"iataCode": "MAD", "at": "2024-06-10T10:00:00"},
		"arrival":     map[string]any{"iataCode": "JFK", "at": "2024-06-10T13:15:00"},
		"carrierCode": "UX",
		"number":      "91",
		"aircraft":    map[string]any{"code": "788"},
		"duration":    "PT8H15M",
	}
	return map[string]any{
		"data": []any{map[string]any{
			"id":                     "1",
			"price":                  map[string]any{"currency": "USD", "total": "350.50"},
			"validatingAirlineCodes": []any{"UX"},
			"itineraries":            []any{map[string]any{"duration": "PT8H15M", "segments": []any{segment}}},
			"travelerPricings": []any{map[string]any{
				"fareDetailsBySegment": []any{map[string]any{"segmentId": "s1", "cabin": "ECONOMY"}},
			}},
		}},
		"dictionaries": map[string]any{
			"carriers": map[string]any{"UX": "AIR EUROPA"},
			"aircraft": map[string]any{"788": "BOEING 787-8"},
		},
	}
}

func newTestServer(t *testing.T, offersStatus int, offersPayload any) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	tokenRequests := &atomic.Int64{}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		tokenRequests.Add(1)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-1", "expires_in": 1799})
	})
	mux.HandleFunc("/v2/shopping/flight-offers", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.WriteHeader(offersStatus)
		if offersPayload != nil {
			json.NewEncoder(w).Encode(offersPayload)
		}
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, tokenRequests
}

func testQuery() FlightOffersQuery {
	return FlightOffersQuery{
		Origin:        "MAD",
		Destination:   "JFK",
		DepartureDate: "2024-06-10",
		ReturnDate:    "2024-06-20",
		Adults:        1,
		TravelClass:   entity.CabinEconomy,
		Max:           1,
	}
}

func TestFlightOffers(t *testing.T) {
	server, tokenRequests := newTestServer(t, http.StatusOK, validOffersPayload())
	client := NewClient(Config{BaseURL: server.URL, ClientID: "id", ClientSecret: "secret"}, passGateway{})

	resp, err := client.FlightOffers(context.Background(), testQuery())
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "350.50", resp.Data[0].Price.Total)
	assert.Equal(t, "AIR EUROPA", resp.Dictionaries.Carriers["UX"])

	// The token is cached across calls.
	_, err = client.FlightOffers(context.Background(), testQuery())
	require.NoError(t, err)
	assert.Equal(t, int64(1), tokenRequests.Load())
}

func TestFlightOffersQueryParameters(t *testing.T) {
	var query string
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-1", "expires_in": 1799})
	})
	mux.HandleFunc("/v2/shopping/flight-offers", func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewClient(Config{BaseURL: server.URL, ClientID: "id", ClientSecret: "secret"}, passGateway{})
	_, err := client.FlightOffers(context.Background(), testQuery())
	require.NoError(t, err)

	assert.Contains(t, query, "originLocationCode=MAD")
	assert.Contains(t, query, "destinationLocationCode=JFK")
	assert.Contains(t, query, "departureDate=2024-06-10")
	assert.Contains(t, query, "returnDate=2024-06-20")
	assert.Contains(t, query, "adults=1")
	assert.Contains(t, query, "travelClass=ECONOMY")
	assert.Contains(t, query, "max=1")
}

func TestFlightOffersRateLimited(t *testing.T) {
	server, _ := newTestServer(t, http.StatusTooManyRequests, nil)
	client := NewClient(Config{BaseURL: server.URL, ClientID: "id", ClientSecret: "secret"}, passGateway{})

	_, err := client.FlightOffers(context.Background(), testQuery())
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestFlightOffersUpstreamError(t *testing.T) {
	server, _ := newTestServer(t, http.StatusBadRequest, map[string]any{
		"errors": []any{map[string]any{"title": "INVALID DATE", "detail": "departureDate is in the past"}},
	})
	client := NewClient(Config{BaseURL: server.URL, ClientID: "id", ClientSecret: "secret"}, passGateway{})

	_, err := client.FlightOffers(context.Background(), testQuery())
	require.Error(t, err)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusBadRequest, upstream.Status)
	assert.Equal(t, "departureDate is in the past", upstream.Detail)
	assert.NotErrorIs(t, err, ErrRateLimited)
}

func TestFlightOffersMalformedResponse(t *testing.T) {
	payload := validOffersPayload()
	offer := payload["data"].([]any)[0].(map[string]any)
	offer["price"] = map[string]any{"currency": "USD", "total": "not-a-number"}

	server, _ := newTestServer(t, http.StatusOK, payload)
	client := NewClient(Config{BaseURL: server.URL, ClientID: "id", ClientSecret: "secret"}, passGateway{})

	_, err := client.FlightOffers(context.Background(), testQuery())
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestLocations(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-1", "expires_in": 1799})
	})
	mux.HandleFunc("/v1/reference-data/locations", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "new york", r.URL.Query().Get("keyword"))
		assert.Equal(t, "AIRPORT,CITY", r.URL.Query().Get("subType"))
		json.NewEncoder(w).Encode(map[string]any{"data": []any{
			map[string]any{
				"iataCode": "JFK",
				"name":     "JOHN F KENNEDY INTL",
				"address":  map[string]any{"cityName": "NEW YORK"},
			},
		}})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewClient(Config{BaseURL: server.URL, ClientID: "id", ClientSecret: "secret"}, passGateway{})
	locations, err := client.Locations(context.Background(), "new york")
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "JFK", locations[0].IataCode)
	assert.Equal(t, "JOHN F KENNEDY INTL", locations[0].Name)
	assert.Equal(t, "NEW YORK", locations[0].Address.CityName)
}

func TestTokenFailurePropagates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"error_description": "invalid credentials"})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewClient(Config{BaseURL: server.URL, ClientID: "bad", ClientSecret: "bad"}, passGateway{})
	_, err := client.FlightOffers(context.Background(), testQuery())

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusUnauthorized, upstream.Status)
	assert.Equal(t, "invalid credentials", upstream.Detail)
}
