package entity

// Segment is a single flown leg, carrying only display-ready fields. All
// derivation from raw provider data happens in the usecase layer.
type Segment struct {
	DepartureDate string
	ArrivalDate   string
	DepartureTime string
	ArrivalTime   string
	Duration      string
	Origin        string
	Destination   string
	CarrierCode   string
	CarrierName   string
	FlightNumber  string
	Aircraft      string
	CabinClass    string
	// StopDuration is the layover before the next segment; empty on the last
	// segment of an itinerary.
	StopDuration string
}

// Itinerary is one directional leg of a round-trip. PriceFormatted and OfferID
// are set only when the itinerary is offered as an inbound alternative.
type Itinerary struct {
	Duration         string
	Stops            string
	DepartureAirport string
	DepartureTime    string
	DepartureDate    string
	ArrivalAirport   string
	ArrivalTime      string
	ArrivalDate      string
	Segments         []Segment
	PriceFormatted   string
	OfferID          string
}

// Offer groups every priced inbound alternative sharing one outbound flight
// sequence. All itineraries under one Offer have an identical outbound
// carrier composition.
type Offer struct {
	PriceFrom         string
	ValidatingAirline string
	Outbound          Itinerary
	Inbounds          []Itinerary
}

// PriceResult is the per-datepair outcome of a batch pricing lookup. Failed
// entries keep their place in the result mapping with price fields zeroed.
type PriceResult struct {
	Price          float64
	PriceFormatted string
	Failed         bool
}

// BatchStats counts how a pricing batch settled. Total tracks the literal
// number of dispatched requests, duplicates included.
type BatchStats struct {
	Total     int
	Succeeded int
	Failed    int
}

// Location is an airport or city suggestion from the reference-data lookup.
type Location struct {
	IataCode string
	Name     string
	CityName string
}
