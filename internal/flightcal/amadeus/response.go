package amadeus

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrMalformedResponse marks an upstream payload the pipeline cannot consume.
// It indicates a contract violation, so it fails the whole call rather than
// degrading into partially-formatted output.
var ErrMalformedResponse = errors.New("amadeus: malformed response")

// SegmentTimeLayout is how Amadeus serializes segment timestamps: local time
// at the airport, no zone designator.
const SegmentTimeLayout = "2006-01-02T15:04:05"

// FlightOffersResponse is the raw flight-offers-search document. Field shapes
// are declared up front so a missing required field is caught by Validate
// instead of surfacing as a zero value deep in formatting.
type FlightOffersResponse struct {
	Data         []Offer      `json:"data"`
	Dictionaries Dictionaries `json:"dictionaries"`
}

// Dictionaries maps carrier and aircraft codes to upstream display names. The
// names arrive fully upper-cased.
type Dictionaries struct {
	Carriers map[string]string `json:"carriers"`
	Aircraft map[string]string `json:"aircraft"`
}

type Offer struct {
	ID                     string            `json:"id"`
	Price                  Price             `json:"price"`
	ValidatingAirlineCodes []string          `json:"validatingAirlineCodes"`
	Itineraries            []Itinerary       `json:"itineraries"`
	TravelerPricings       []TravelerPricing `json:"travelerPricings"`
}

type Price struct {
	Currency string `json:"currency"`
	Total    string `json:"total"`
}

type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	ID          string     `json:"id"`
	Departure   Endpoint   `json:"departure"`
	Arrival     Endpoint   `json:"arrival"`
	CarrierCode string     `json:"carrierCode"`
	Number      string     `json:"number"`
	Aircraft    Aircraft   `json:"aircraft"`
	Operating   *Operating `json:"operating,omitempty"`
	Duration    string     `json:"duration"`
}

type Endpoint struct {
	IataCode string `json:"iataCode"`
	At       string `json:"at"`
}

type Aircraft struct {
	Code string `json:"code"`
}

type Operating struct {
	CarrierCode string `json:"carrierCode"`
}

type TravelerPricing struct {
	FareDetailsBySegment []FareDetails `json:"fareDetailsBySegment"`
}

type FareDetails struct {
	SegmentID string `json:"segmentId"`
	Cabin     string `json:"cabin"`
}

// EffectiveCarrier is the operating carrier when present, falling back to the
// marketing carrier.
func (s Segment) EffectiveCarrier() string {
	if s.Operating != nil && s.Operating.CarrierCode != "" {
		return s.Operating.CarrierCode
	}
	return s.CarrierCode
}

// TotalPrice parses the offer's total into a decimal amount.
func (o Offer) TotalPrice() (float64, error) {
	price, err := strconv.ParseFloat(o.Price.Total, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: offer %s has unparsable price %q", ErrMalformedResponse, o.ID, o.Price.Total)
	}
	return price, nil
}

// Validate checks the structural invariants the normalizer relies on. An empty
// Data slice is valid; it means no availability for the query.
func (r *FlightOffersResponse) Validate() error {
	for _, offer := range r.Data {
		if _, err := offer.TotalPrice(); err != nil {
			return err
		}
		if offer.Price.Currency == "" {
			return fmt.Errorf("%w: offer %s missing price currency", ErrMalformedResponse, offer.ID)
		}
		if len(offer.Itineraries) == 0 {
			return fmt.Errorf("%w: offer %s has no itineraries", ErrMalformedResponse, offer.ID)
		}
		for _, itinerary := range offer.Itineraries {
			if len(itinerary.Segments) == 0 {
				return fmt.Errorf("%w: offer %s has an itinerary with no segments", ErrMalformedResponse, offer.ID)
			}
			for _, segment := range itinerary.Segments {
				if err := segment.validate(offer.ID); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s Segment) validate(offerID string) error {
	if s.Departure.IataCode == "" || s.Arrival.IataCode == "" {
		return fmt.Errorf("%w: offer %s segment %s missing airport code", ErrMalformedResponse, offerID, s.ID)
	}
	if s.CarrierCode == "" {
		return fmt.Errorf("%w: offer %s segment %s missing carrier code", ErrMalformedResponse, offerID, s.ID)
	}
	for _, at := range []string{s.Departure.At, s.Arrival.At} {
		if _, err := time.Parse(SegmentTimeLayout, at); err != nil {
			return fmt.Errorf("%w: offer %s segment %s has unparsable time %q", ErrMalformedResponse, offerID, s.ID, at)
		}
	}
	return nil
}

// LocationsResponse is the raw reference-data document for keyword lookups.
type LocationsResponse struct {
	Data []LocationEntry `json:"data"`
}

type LocationEntry struct {
	IataCode string          `json:"iataCode"`
	Name     string          `json:"name"`
	Address  LocationAddress `json:"address"`
}

type LocationAddress struct {
	CityName string `json:"cityName"`
}
