package entity

import (
	"fmt"
	"strings"
)

// CabinClass is the travel class requested from the pricing provider, in the
// provider's own vocabulary.
type CabinClass string

const (
	CabinEconomy        CabinClass = "ECONOMY"
	CabinPremiumEconomy CabinClass = "PREMIUM_ECONOMY"
	CabinBusiness       CabinClass = "BUSINESS"
	CabinFirst          CabinClass = "FIRST"
)

func ParseCabinClass(value string) (CabinClass, error) {
	switch CabinClass(strings.ToUpper(strings.TrimSpace(value))) {
	case CabinEconomy:
		return CabinEconomy, nil
	case CabinPremiumEconomy:
		return CabinPremiumEconomy, nil
	case CabinBusiness:
		return CabinBusiness, nil
	case CabinFirst:
		return CabinFirst, nil
	}
	return "", fmt.Errorf("unknown travel class %q", value)
}
