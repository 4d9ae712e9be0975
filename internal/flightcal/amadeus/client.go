package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/entity"
)

const (
	TestBaseURL       = "https://test.api.amadeus.com"
	ProductionBaseURL = "https://api.amadeus.com"

	defaultTimeout = 15 * time.Second

	// Tokens are refreshed slightly before upstream expiry so an in-flight
	// call never races the cutoff.
	tokenRefreshBuffer = 30 * time.Second
)

// ErrRateLimited marks an upstream throughput violation. It is recoverable by
// the gateway's own pacing and must stay distinguishable from other upstream
// failures so callers can decide to retry.
var ErrRateLimited = errors.New("amadeus: rate limit exceeded")

// UpstreamError is any non-rate-limit failure reported by the provider.
type UpstreamError struct {
	Status int
	Detail string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("amadeus: upstream request failed with status %d: %s", e.Status, e.Detail)
}

// Gateway is the throughput chokepoint every upstream call goes through.
type Gateway interface {
	Do(ctx context.Context, op func(context.Context) error) error
}

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Client talks to the Amadeus self-service APIs. All calls are dispatched
// through the gateway; authentication uses a cached client-credentials token.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	gateway      Gateway

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewClient(cfg Config, gw Gateway) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = TestBaseURL
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   &http.Client{Timeout: timeout},
		gateway:      gw,
	}
}

// FlightOffersQuery mirrors the upstream flight-offers-search parameters. Max
// caps the number of returned offers; zero means the upstream default.
type FlightOffersQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
	TravelClass   entity.CabinClass
	Max           int
}

// FlightOffers prices itineraries for one origin/destination/date query. The
// response is validated before it is returned.
func (c *Client) FlightOffers(ctx context.Context, q FlightOffersQuery) (*FlightOffersResponse, error) {
	params := url.Values{}
	params.Set("originLocationCode", q.Origin)
	params.Set("destinationLocationCode", q.Destination)
	params.Set("departureDate", q.DepartureDate)
	if q.ReturnDate != "" {
		params.Set("returnDate", q.ReturnDate)
	}
	params.Set("adults", strconv.Itoa(q.Adults))
	if q.TravelClass != "" {
		params.Set("travelClass", string(q.TravelClass))
	}
	if q.Max > 0 {
		params.Set("max", strconv.Itoa(q.Max))
	}

	var response FlightOffersResponse
	if err := c.get(ctx, "/v2/shopping/flight-offers", params, &response); err != nil {
		return nil, err
	}
	if err := response.Validate(); err != nil {
		return nil, err
	}
	return &response, nil
}

// Locations resolves a free-text keyword to candidate airports and cities.
func (c *Client) Locations(ctx context.Context, keyword string) ([]LocationEntry, error) {
	params := url.Values{}
	params.Set("subType", "AIRPORT,CITY")
	params.Set("keyword", keyword)

	var response LocationsResponse
	if err := c.get(ctx, "/v1/reference-data/locations", params, &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	return c.gateway.Do(ctx, func(ctx context.Context) error {
		token, err := c.token(ctx)
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("amadeus: request %s: %w", path, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("amadeus: read response %s: %w", path, err)
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			return ErrRateLimited
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &UpstreamError{Status: resp.StatusCode, Detail: upstreamDetail(body)}
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return nil
	})
}

// token returns a valid access token, refreshing through the client
// credentials grant when the cached one is missing or near expiry.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("amadeus: token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("amadeus: read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{Status: resp.StatusCode, Detail: upstreamDetail(body)}
	}

	var token struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("%w: token payload: %v", ErrMalformedResponse, err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrMalformedResponse)
	}

	c.accessToken = token.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - tokenRefreshBuffer)
	return c.accessToken, nil
}

func upstreamDetail(body []byte) string {
	var payload struct {
		Errors []struct {
			Detail string `json:"detail"`
			Title  string `json:"title"`
		} `json:"errors"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if len(payload.Errors) > 0 {
			if payload.Errors[0].Detail != "" {
				return payload.Errors[0].Detail
			}
			return payload.Errors[0].Title
		}
		if payload.ErrorDescription != "" {
			return payload.ErrorDescription
		}
	}
	detail := strings.TrimSpace(string(body))
	if len(detail) > 200 {
		detail = detail[:200]
	}
	return detail
}
