package service

import (
	"regexp"
	"strings"

	"github.com/panaderia-next/internal/models"
)

var (
	zipPattern   = regexp.MustCompile(`\b(\d{5})(?:-\d{4})?\b`)
	aptPattern   = regexp.MustCompile(`(?i)\b(?:apt|apartment|unit|suite|ste|#)\s*\.?\s*([\w-]+)\b`)
	statePattern = regexp.MustCompile(`\b([A-Z]{2})\b`)
)

// applyNormalizedAddress splits a free-text delivery address into the
// order's structured address columns. Parsing is best-effort: the raw
// text is always kept in address_full, and address_verified is set
// only when street, city and zip could all be extracted.
func applyNormalizedAddress(order *models.Order, raw string) {
	raw = strings.TrimSpace(raw)
	order.AddressFull = raw
	if raw == "" {
		return
	}

	rest := raw
	if m := zipPattern.FindStringSubmatch(rest); m != nil {
		order.AddressZip = m[1]
		rest = strings.Replace(rest, m[0], "", 1)
	}
	if m := aptPattern.FindStringSubmatch(rest); m != nil {
		order.AddressApartment = m[1]
		rest = strings.Replace(rest, m[0], "", 1)
	}

	parts := splitAddressParts(rest)
	switch len(parts) {
	case 0:
	case 1:
		order.AddressStreet = parts[0]
	case 2:
		order.AddressStreet = parts[0]
		order.AddressCity = parts[1]
	default:
		order.AddressStreet = parts[0]
		order.AddressCity = parts[1]
		tail := strings.Join(parts[2:], " ")
		if m := statePattern.FindStringSubmatch(tail); m != nil {
			order.AddressState = m[1]
		}
	}

	order.AddressVerified = order.AddressStreet != "" &&
		order.AddressCity != "" &&
		order.AddressZip != ""

	// Dispatch groups drops by zip code, falling back to the city
	// when the address carries none.
	switch {
	case order.AddressZip != "":
		order.DeliveryZone = order.AddressZip
	case order.AddressCity != "":
		order.DeliveryZone = order.AddressCity
	}
}

func splitAddressParts(s string) []string {
	fields := strings.Split(s, ",")
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(strings.Trim(f, ","))
		if f != "" {
			parts = append(parts, f)
		}
	}
	return parts
}
