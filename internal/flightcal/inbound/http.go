package inbound

import (
	"context"

	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/entity"
	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal/usecase"
	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/pkg/pkgrouter"
)

type uc interface {
	Offers(ctx context.Context, in usecase.OffersInput) ([]entity.Offer, error)
	Calendar(ctx context.Context, in usecase.CalendarInput) (*usecase.DatepairPricesOutput, error)
	PricesForDatepairs(ctx context.Context, in usecase.DatepairPricesInput) (*usecase.DatepairPricesOutput, error)
	Suggestions(ctx context.Context, keyword string) ([]entity.Location, error)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/search-suggestions", end.SearchSuggestions)
	r.GET("/get-flight-offers", end.FlightOffers)
	r.GET("/calendar-view", end.CalendarView)
	r.POST("/flights-for-datepairs", end.FlightsForDatepairs)
}
