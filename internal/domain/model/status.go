package model

import (
	"regexp"
	"strings"
	"unicode"
)

// OrderStatus is the canonical, lower-case hyphenated fulfillment state.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusInTransit  OrderStatus = "in-transit"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusReturned   OrderStatus = "returned"
)

// MaxStatusVariants bounds the spellings used in a single membership query.
const MaxStatusVariants = 10

// DashboardStatuses are the states counted on the admin overview.
var DashboardStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusShipped,
	OrderStatusInTransit,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusReturned,
}

// statusAliases folds known historical spellings onto canonical statuses.
// Keys are already trimmed, lower-cased and hyphenated.
var statusAliases = map[string]OrderStatus{
	"pending":     OrderStatusPending,
	"processing":  OrderStatusProcessing,
	"shipped":     OrderStatusShipped,
	"in-transit":  OrderStatusInTransit,
	"intransit":   OrderStatusInTransit,
	"in-transist": OrderStatusInTransit,
	"delivered":   OrderStatusDelivered,
	"cancelled":   OrderStatusCancelled,
	"canceled":    OrderStatusCancelled,
	"returned":    OrderStatusReturned,
}

var (
	separatorRun = regexp.MustCompile(`[_\s]+`)
	dashOrSpace  = regexp.MustCompile(`[-\s]+`)
	dashOrUnder  = regexp.MustCompile(`[-_]+`)
)

// NormalizeStatus maps an arbitrary status string onto its canonical form.
// Unknown values pass through lower-cased and hyphenated.
func NormalizeStatus(raw string) OrderStatus {
	key := separatorRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(raw)), "-")
	if status, ok := statusAliases[key]; ok {
		return status
	}
	return OrderStatus(key)
}

// Known reports whether s is one of the canonical statuses.
func (s OrderStatus) Known() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusInTransit,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned:
		return true
	}
	return false
}

// StatusVariants lists plausible stored spellings of status, in insertion order,
// de-duplicated and capped at MaxStatusVariants.
func StatusVariants(status string) []string {
	if status == "" {
		return nil
	}
	lower := strings.ToLower(status)
	title := titleCase(lower)

	candidates := []string{
		lower,
		separatorRun.ReplaceAllString(lower, "-"),
		dashOrSpace.ReplaceAllString(lower, "_"),
		dashOrUnder.ReplaceAllString(lower, " "),
		title,
		strings.NewReplacer("-", " ", "_", " ").Replace(title),
	}
	if strings.Contains(lower, "transit") {
		candidates = append(candidates, "in-transit", "in transit", "in_transit")
	}
	if lower == "cancelled" || lower == "canceled" {
		candidates = append(candidates, "canceled", "cancelled")
	}

	seen := make(map[string]struct{}, len(candidates))
	variants := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		variants = append(variants, c)
		if len(variants) == MaxStatusVariants {
			break
		}
	}
	return variants
}

// MatchesVariants reports whether a stored status, raw or lower-cased, is one of variants.
func MatchesVariants(stored string, variants []string) bool {
	lower := strings.ToLower(stored)
	for _, v := range variants {
		if v == stored || v == lower {
			return true
		}
	}
	return false
}

// titleCase upper-cases the first letter and every letter following a separator.
func titleCase(s string) string {
	runes := []rune(s)
	capitalize := true
	for i, r := range runes {
		if capitalize && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			runes[i] = unicode.ToUpper(r)
		}
		capitalize = r == '-' || r == '_' || unicode.IsSpace(r)
	}
	return string(runes)
}
