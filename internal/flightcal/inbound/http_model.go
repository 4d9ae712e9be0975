package inbound

// Response shapes follow the JSON contract the frontend consumes: camelCase
// keys, price strings preformatted server-side.

type OfferResponse struct {
	PriceFrom         string              `json:"priceFrom"`
	ValidatingAirline string              `json:"validatingAirline"`
	Outbound          ItineraryResponse   `json:"outbound"`
	Inbounds          []ItineraryResponse `json:"inbounds"`
}

type ItineraryResponse struct {
	Duration         string            `json:"duration"`
	Stops            string            `json:"stops"`
	DepartureAirport string            `json:"departureAirport"`
	DepartureTime    string            `json:"departureTime"`
	DepartureDate    string            `json:"departureDate"`
	ArrivalAirport   string            `json:"arrivalAirport"`
	ArrivalTime      string            `json:"arrivalTime"`
	ArrivalDate      string            `json:"arrivalDate"`
	Segments         []SegmentResponse `json:"segments"`
	PriceFormatted   string            `json:"priceFormatted,omitempty"`
	OfferID          string            `json:"offerId,omitempty"`
}

type SegmentResponse struct {
	DepartureDate string `json:"departureDate"`
	ArrivalDate   string `json:"arrivalDate"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
	Duration      string `json:"duration"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	CarrierCode   string `json:"carrierCode"`
	CarrierName   string `json:"carrierName"`
	FlightNumber  string `json:"flightNumber"`
	Aircraft      string `json:"aircraft"`
	Class         string `json:"class"`
	StopDuration  string `json:"stopDuration,omitempty"`
}

// CalendarPriceResponse is one cell of the calendar mapping. Failed lookups
// serialize as an empty object so every requested datepair keeps its key.
type CalendarPriceResponse struct {
	Price          *float64 `json:"price,omitempty"`
	PriceFormatted string   `json:"priceFormatted,omitempty"`
}

type SuggestionResponse struct {
	IataCode string `json:"iataCode"`
	Name     string `json:"name"`
	CityName string `json:"cityName"`
}

type DatepairsRequest struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Adults      int      `json:"adults"`
	TravelClass string   `json:"travelClass"`
	Datepairs   []string `json:"datepairs"`
}
