package app

import (
	"log/slog"
	"os"

	"github.com/gustavo-bertoldi/FlightSearchCalendar/internal/flightcal"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.flight-calendar.enabled") {
		if err := flightcal.New(flightcal.Dependency{
			Config: a.config,
			Router: a.router,
		}); err != nil {
			slog.Error("failed to init module flight-calendar", "error", err)
			os.Exit(1)
		}
	}
}
