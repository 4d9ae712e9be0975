package entity

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Datepair identifies a departure/return date combination, serialized as
// "<departure>><return>" with both dates in yyyy-MM-dd form.
type Datepair string

func NewDatepair(departure, returnDate time.Time) Datepair {
	return Datepair(departure.Format(DateLayout) + ">" + returnDate.Format(DateLayout))
}

// Split returns the departure and return date strings of the pair.
func (d Datepair) Split() (string, string, error) {
	departure, returnDate, ok := strings.Cut(string(d), ">")
	if !ok {
		return "", "", fmt.Errorf("invalid datepair %q", d)
	}
	if _, err := time.Parse(DateLayout, departure); err != nil {
		return "", "", fmt.Errorf("invalid departure date in datepair %q", d)
	}
	if _, err := time.Parse(DateLayout, returnDate); err != nil {
		return "", "", fmt.Errorf("invalid return date in datepair %q", d)
	}
	return departure, returnDate, nil
}
