package inbound

import (
	"context"
	"net/http"

	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/entity"
	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/usecase"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) SearchSuggestions(ctx context.Context, r *http.Request) (any, error) {
	keyword, err := parseKeyword(r)
	if err != nil {
		return nil, err
	}

	suggestions, err := h.uc.Suggestions(ctx, keyword)
	if err != nil {
		return nil, err
	}

	resp := make([]SuggestionResponse, 0, len(suggestions))
	for _, suggestion := range suggestions {
		resp = append(resp, SuggestionResponse{
			IataCode: suggestion.IataCode,
			Name:     suggestion.Name,
			CityName: suggestion.CityName,
		})
	}
	return resp, nil
}

func (h *HTTPEndpoint) FlightOffers(ctx context.Context, r *http.Request) (any, error) {
	input, err := parseOffersInput(r)
	if err != nil {
		return nil, err
	}

	offers, err := h.uc.Offers(ctx, input)
	if err != nil {
		return nil, err
	}
	return mapOfferResponses(offers), nil
}

func (h *HTTPEndpoint) CalendarView(ctx context.Context, r *http.Request) (any, error) {
	input, err := parseCalendarInput(r)
	if err != nil {
		return nil, err
	}

	output, err := h.uc.Calendar(ctx, input)
	if err != nil {
		return nil, err
	}
	return mapCalendarResponse(output), nil
}

func (h *HTTPEndpoint) FlightsForDatepairs(ctx context.Context, r *http.Request) (any, error) {
	input, err := parseDatepairsInput(r)
	if err != nil {
		return nil, err
	}

	output, err := h.uc.PricesForDatepairs(ctx, input)
	if err != nil {
		return nil, err
	}
	return mapCalendarResponse(output), nil
}

func mapOfferResponses(offers []entity.Offer) []OfferResponse {
	resp := make([]OfferResponse, 0, len(offers))
	for _, offer := range offers {
		resp = append(resp, OfferResponse{
			PriceFrom:         offer.PriceFrom,
			ValidatingAirline: offer.ValidatingAirline,
			Outbound:          mapItinerary(offer.Outbound),
			Inbounds:          mapItineraries(offer.Inbounds),
		})
	}
	return resp
}

func mapItineraries(itineraries []entity.Itinerary) []ItineraryResponse {
	resp := make([]ItineraryResponse, 0, len(itineraries))
	for _, itinerary := range itineraries {
		resp = append(resp, mapItinerary(itinerary))
	}
	return resp
}

func mapItinerary(itinerary entity.Itinerary) ItineraryResponse {
	segments := make([]SegmentResponse, 0, len(itinerary.Segments))
	for _, segment := range itinerary.Segments {
		segments = append(segments, SegmentResponse{
			DepartureDate: segment.DepartureDate,
			ArrivalDate:   segment.ArrivalDate,
			DepartureTime: segment.DepartureTime,
			ArrivalTime:   segment.ArrivalTime,
			Duration:      segment.Duration,
			Origin:        segment.Origin,
			Destination:   segment.Destination,
			CarrierCode:   segment.CarrierCode,
			CarrierName:   segment.CarrierName,
			FlightNumber:  segment.FlightNumber,
			Aircraft:      segment.Aircraft,
			Class:         segment.CabinClass,
			StopDuration:  segment.StopDuration,
		})
	}
	return ItineraryResponse{
		Duration:         itinerary.Duration,
		Stops:            itinerary.Stops,
		DepartureAirport: itinerary.DepartureAirport,
		DepartureTime:    itinerary.DepartureTime,
		DepartureDate:    itinerary.DepartureDate,
		ArrivalAirport:   itinerary.ArrivalAirport,
		ArrivalTime:      itinerary.ArrivalTime,
		ArrivalDate:      itinerary.ArrivalDate,
		Segments:         segments,
		PriceFormatted:   itinerary.PriceFormatted,
		OfferID:          itinerary.OfferID,
	}
}

func mapCalendarResponse(output *usecase.DatepairPricesOutput) map[string]CalendarPriceResponse {
	resp := make(map[string]CalendarPriceResponse, len(output.Prices))
	for datepair, result := range output.Prices {
		if result.Failed {
			resp[string(datepair)] = CalendarPriceResponse{}
			continue
		}
		price := result.Price
		resp[string(datepair)] = CalendarPriceResponse{
			Price:          &price,
			PriceFormatted: result.PriceFormatted,
		}
	}
	return resp
}
