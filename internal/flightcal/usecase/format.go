package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	displayDateLayout = "Monday, 2 January"
	displayTimeLayout = "15:04"
)

// formatISODuration renders an ISO-8601 duration token ("PT2H30M") for
// display: "2 h 30 min", "45 min" or "5 h". A token with neither component is
// upstream data the pipeline cannot trust.
func formatISODuration(value string) (string, error) {
	token, ok := strings.CutPrefix(value, "PT")
	if !ok {
		return "", fmt.Errorf("invalid duration %q", value)
	}

	var hours, minutes string
	if before, after, found := strings.Cut(token, "H"); found {
		hours = before
		token = after
	}
	if before, _, found := strings.Cut(token, "M"); found {
		minutes = before
	}

	switch {
	case hours != "" && minutes != "":
		return hours + " h " + minutes + " min", nil
	case minutes != "":
		return minutes + " min", nil
	case hours != "":
		return hours + " h", nil
	default:
		return "", fmt.Errorf("invalid duration %q", value)
	}
}

// titleCase converts an upper-case provider string to title case, splitting on
// spaces and hyphens and rejoining with single spaces:
// "NEW YORK CITY" -> "New York City".
func titleCase(value string) string {
	words := strings.FieldsFunc(value, func(r rune) bool {
		return r == ' ' || r == '-'
	})
	for i, word := range words {
		runes := []rune(word)
		words[i] = strings.ToUpper(string(runes[:1])) + strings.ToLower(string(runes[1:]))
	}
	return strings.Join(words, " ")
}

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// formatMoney renders a decimal amount in en-US style with a thousands-grouped
// integer part: "$1,234.56". Currencies without a known symbol keep their code
// as a prefix.
func formatMoney(amount float64, currency string) string {
	prefix, ok := currencySymbols[currency]
	if !ok {
		prefix = currency + " "
	}
	negative := amount < 0
	if negative {
		amount = -amount
	}

	formatted := strconv.FormatFloat(amount, 'f', 2, 64)
	integer, decimals, _ := strings.Cut(formatted, ".")
	for i := len(integer) - 3; i > 0; i -= 3 {
		integer = integer[:i] + "," + integer[i:]
	}

	if negative {
		return "-" + prefix + integer + "." + decimals
	}
	return prefix + integer + "." + decimals
}

// stopsLabel describes an itinerary of n segments: "Nonstop", "1 stop",
// "2 stops".
func stopsLabel(segments int) string {
	if segments <= 1 {
		return "Nonstop"
	}
	stops := segments - 1
	label := fmt.Sprintf("%d stop", stops)
	if stops >= 2 {
		label += "s"
	}
	return label
}

// layoverLabel reports the time between a segment's arrival and the next
// segment's departure as whole hours plus remainder minutes. Negative or zero
// layovers are upstream data anomalies and render as-is so they stay visible.
func layoverLabel(arrival, nextDeparture time.Time) string {
	total := int(nextDeparture.Sub(arrival).Minutes())
	return fmt.Sprintf("%d h %d min", total/60, total%60)
}
