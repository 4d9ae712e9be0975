package inbound

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/entity"
	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/usecase"
	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/pkg/pkgerror"
)

func parseKeyword(r *http.Request) (string, error) {
	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
	if keyword == "" {
		return "", pkgerror.NewBusiness("keyword is required", pkgerror.CodeInvalidInput)
	}
	return keyword, nil
}

func parseOffersInput(r *http.Request) (usecase.OffersInput, error) {
	q := r.URL.Query()

	origin, destination, err := parseRoute(q.Get("origin"), q.Get("destination"))
	if err != nil {
		return usecase.OffersInput{}, err
	}
	departureDate, err := parseDate(q.Get("departureDate"), "departureDate")
	if err != nil {
		return usecase.OffersInput{}, err
	}
	returnDate, err := parseDate(q.Get("returnDate"), "returnDate")
	if err != nil {
		return usecase.OffersInput{}, err
	}
	adults, err := parseAdults(q.Get("adults"))
	if err != nil {
		return usecase.OffersInput{}, err
	}
	travelClass, err := parseTravelClass(q.Get("travelClass"))
	if err != nil {
		return usecase.OffersInput{}, err
	}

	return usecase.OffersInput{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: departureDate,
		ReturnDate:    returnDate,
		Adults:        adults,
		TravelClass:   travelClass,
	}, nil
}

func parseCalendarInput(r *http.Request) (usecase.CalendarInput, error) {
	offers, err := parseOffersInput(r)
	if err != nil {
		return usecase.CalendarInput{}, err
	}
	return usecase.CalendarInput{
		Origin:        offers.Origin,
		Destination:   offers.Destination,
		DepartureDate: offers.DepartureDate,
		ReturnDate:    offers.ReturnDate,
		Adults:        offers.Adults,
		TravelClass:   offers.TravelClass,
	}, nil
}

func parseDatepairsInput(r *http.Request) (usecase.DatepairPricesInput, error) {
	var body DatepairsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return usecase.DatepairPricesInput{}, pkgerror.NewBusiness("invalid request body", pkgerror.CodeInvalidInput)
	}

	origin, destination, err := parseRoute(body.Origin, body.Destination)
	if err != nil {
		return usecase.DatepairPricesInput{}, err
	}
	adults := body.Adults
	if adults == 0 {
		adults = 1
	}
	if adults < 0 {
		return usecase.DatepairPricesInput{}, pkgerror.NewBusiness("invalid adults, expected a positive integer", pkgerror.CodeInvalidInput)
	}
	travelClass, err := parseTravelClass(body.TravelClass)
	if err != nil {
		return usecase.DatepairPricesInput{}, err
	}

	datepairs := make([]entity.Datepair, len(body.Datepairs))
	for i, raw := range body.Datepairs {
		datepair := entity.Datepair(raw)
		if _, _, err := datepair.Split(); err != nil {
			return usecase.DatepairPricesInput{}, pkgerror.NewBusiness(err.Error(), pkgerror.CodeInvalidInput)
		}
		datepairs[i] = datepair
	}

	return usecase.DatepairPricesInput{
		Origin:      origin,
		Destination: destination,
		Adults:      adults,
		TravelClass: travelClass,
		Datepairs:   datepairs,
	}, nil
}

func parseRoute(origin, destination string) (string, string, error) {
	origin = strings.ToUpper(strings.TrimSpace(origin))
	destination = strings.ToUpper(strings.TrimSpace(destination))
	if !isLocatorCode(origin) || !isLocatorCode(destination) {
		return "", "", pkgerror.NewBusiness("origin and destination must be 3-letter location codes", pkgerror.CodeInvalidInput)
	}
	return origin, destination, nil
}

func isLocatorCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func parseDate(value, name string) (time.Time, error) {
	parsed, err := time.Parse(entity.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, pkgerror.NewBusiness("invalid "+name+", expected yyyy-MM-dd", pkgerror.CodeInvalidInput)
	}
	return parsed, nil
}

func parseAdults(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 1, nil
	}
	adults, err := strconv.Atoi(value)
	if err != nil || adults <= 0 {
		return 0, pkgerror.NewBusiness("invalid adults, expected a positive integer", pkgerror.CodeInvalidInput)
	}
	return adults, nil
}

func parseTravelClass(value string) (entity.CabinClass, error) {
	if strings.TrimSpace(value) == "" {
		return entity.CabinEconomy, nil
	}
	travelClass, err := entity.ParseCabinClass(value)
	if err != nil {
		return "", pkgerror.NewBusiness("invalid travelClass", pkgerror.CodeInvalidInput)
	}
	return travelClass, nil
}
