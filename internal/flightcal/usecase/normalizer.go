package usecase

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/amadeus"
	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/entity"
)

// normalizeOffers collapses a raw multi-offer pricing response into
// deduplicated display offers: raw offers sharing an identical outbound
// carrier composition are merged into one Offer carrying every priced inbound
// alternative. Offers keep the first-seen order of their outbound signature;
// inbounds keep the order their parent raw offers were encountered in.
func normalizeOffers(resp *amadeus.FlightOffersResponse) ([]entity.Offer, error) {
	if err := resp.Validate(); err != nil {
		return nil, err
	}

	offers := make([]entity.Offer, 0, len(resp.Data))
	// Outbound signatures of emitted offers, parallel to offers. The linear
	// scan is fine; the provider caps responses at a few hundred offers.
	signatures := make([][]string, 0, len(resp.Data))

	for _, raw := range resp.Data {
		price, err := raw.TotalPrice()
		if err != nil {
			return nil, err
		}
		priceFrom := formatMoney(price, raw.Price.Currency)

		itineraries := make([]entity.Itinerary, len(raw.Itineraries))
		for i, rawItinerary := range raw.Itineraries {
			itinerary, err := normalizeItinerary(rawItinerary, raw, resp.Dictionaries)
			if err != nil {
				return nil, err
			}
			itineraries[i] = itinerary
		}

		// The first itinerary is always the outbound leg; the rest are
		// inbound alternatives priced at the parent offer's total.
		inbounds := itineraries[1:]
		for i := range inbounds {
			inbounds[i].PriceFormatted = priceFrom
			inbounds[i].OfferID = raw.ID
		}

		signature := outboundSignature(raw.Itineraries[0])
		if len(inbounds) > 0 {
			if match := slices.IndexFunc(signatures, func(s []string) bool {
				return slices.Equal(s, signature)
			}); match >= 0 {
				offers[match].Inbounds = append(offers[match].Inbounds, inbounds...)
				continue
			}
		}

		validating := ""
		if len(raw.ValidatingAirlineCodes) > 0 {
			validating = raw.ValidatingAirlineCodes[0]
		}
		offers = append(offers, entity.Offer{
			PriceFrom:         priceFrom,
			ValidatingAirline: validating,
			Outbound:          itineraries[0],
			Inbounds:          inbounds,
		})
		signatures = append(signatures, signature)
	}

	return offers, nil
}

// outboundSignature is the grouping key for offer deduplication: the ordered
// carrier codes of the outbound segments, preferring the operating carrier.
func outboundSignature(outbound amadeus.Itinerary) []string {
	signature := make([]string, len(outbound.Segments))
	for i, segment := range outbound.Segments {
		signature[i] = segment.EffectiveCarrier()
	}
	return signature
}

func normalizeItinerary(raw amadeus.Itinerary, offer amadeus.Offer, dict amadeus.Dictionaries) (entity.Itinerary, error) {
	duration, err := formatISODuration(raw.Duration)
	if err != nil {
		return entity.Itinerary{}, fmt.Errorf("%w: offer %s: %v", amadeus.ErrMalformedResponse, offer.ID, err)
	}

	itinerary := entity.Itinerary{
		Duration: duration,
		Stops:    stopsLabel(len(raw.Segments)),
		Segments: make([]entity.Segment, len(raw.Segments)),
	}

	for i, rawSegment := range raw.Segments {
		segment, arrival, err := normalizeSegment(rawSegment, offer, dict)
		if err != nil {
			return entity.Itinerary{}, err
		}
		if i < len(raw.Segments)-1 {
			// Validated by the response; re-parse cannot fail here.
			nextDeparture, _ := time.Parse(amadeus.SegmentTimeLayout, raw.Segments[i+1].Departure.At)
			segment.StopDuration = layoverLabel(arrival, nextDeparture)
		}
		itinerary.Segments[i] = segment
	}

	first := itinerary.Segments[0]
	last := itinerary.Segments[len(itinerary.Segments)-1]
	itinerary.DepartureAirport = first.Origin
	itinerary.DepartureTime = first.DepartureTime
	itinerary.DepartureDate = first.DepartureDate
	itinerary.ArrivalAirport = last.Destination
	itinerary.ArrivalTime = last.ArrivalTime
	itinerary.ArrivalDate = last.ArrivalDate
	return itinerary, nil
}

func normalizeSegment(raw amadeus.Segment, offer amadeus.Offer, dict amadeus.Dictionaries) (entity.Segment, time.Time, error) {
	departure, err := time.Parse(amadeus.SegmentTimeLayout, raw.Departure.At)
	if err != nil {
		return entity.Segment{}, time.Time{}, fmt.Errorf("%w: offer %s segment %s: %v", amadeus.ErrMalformedResponse, offer.ID, raw.ID, err)
	}
	arrival, err := time.Parse(amadeus.SegmentTimeLayout, raw.Arrival.At)
	if err != nil {
		return entity.Segment{}, time.Time{}, fmt.Errorf("%w: offer %s segment %s: %v", amadeus.ErrMalformedResponse, offer.ID, raw.ID, err)
	}
	duration, err := formatISODuration(raw.Duration)
	if err != nil {
		return entity.Segment{}, time.Time{}, fmt.Errorf("%w: offer %s segment %s: %v", amadeus.ErrMalformedResponse, offer.ID, raw.ID, err)
	}

	carrierCode := raw.EffectiveCarrier()
	return entity.Segment{
		DepartureDate: departure.Format(displayDateLayout),
		ArrivalDate:   arrival.Format(displayDateLayout),
		DepartureTime: departure.Format(displayTimeLayout),
		ArrivalTime:   arrival.Format(displayTimeLayout),
		Duration:      duration,
		Origin:        raw.Departure.IataCode,
		Destination:   raw.Arrival.IataCode,
		CarrierCode:   carrierCode,
		CarrierName:   displayName(dict.Carriers, carrierCode),
		FlightNumber:  raw.Number,
		Aircraft:      displayName(dict.Aircraft, raw.Aircraft.Code),
		CabinClass:    cabinLabel(offer, raw.ID),
	}, arrival, nil
}

// displayName resolves a code through a response dictionary. Codes the
// dictionary does not carry fall back to the code itself.
func displayName(dict map[string]string, code string) string {
	if name, ok := dict[code]; ok && name != "" {
		return titleCase(name)
	}
	return code
}

// cabinLabel finds the cabin of a segment in the first traveler's fare
// details: "PREMIUM_ECONOMY" -> "Premium Economy". Empty when the pricing
// entry is absent.
func cabinLabel(offer amadeus.Offer, segmentID string) string {
	if len(offer.TravelerPricings) == 0 {
		return ""
	}
	for _, fare := range offer.TravelerPricings[0].FareDetailsBySegment {
		if fare.SegmentID == segmentID {
			return titleCase(strings.ReplaceAll(fare.Cabin, "_", " "))
		}
	}
	return ""
}
