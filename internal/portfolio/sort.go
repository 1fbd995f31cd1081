package portfolio

import (
	"fmt"
	"sort"
	"strings"
)

// SortField names a sortable column of the holdings view.
type SortField string

const (
	SortByName            SortField = "name"
	SortByShares          SortField = "shares"
	SortByCostBasis       SortField = "costBasis"
	SortByCurrentPrice    SortField = "currentPrice"
	SortByMarketValue     SortField = "marketValue"
	SortByGainLoss        SortField = "gainLoss"
	SortByGainLossPercent SortField = "gainLossPercent"
	SortByWeight          SortField = "weight"
)

// SortFields lists every valid SortField.
var SortFields = []SortField{
	SortByName, SortByShares, SortByCostBasis, SortByCurrentPrice,
	SortByMarketValue, SortByGainLoss, SortByGainLossPercent, SortByWeight,
}

// SortDirection is asc, desc, or none for the natural ledger order.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
	SortNone SortDirection = "none"
)

// ParseSortField validates s. The empty string is accepted as no field.
func ParseSortField(s string) (SortField, error) {
	if s == "" {
		return "", nil
	}
	for _, f := range SortFields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

// ParseSortDirection validates s. The empty string means none.
func ParseSortDirection(s string) (SortDirection, error) {
	switch SortDirection(strings.ToLower(s)) {
	case "", SortNone:
		return SortNone, nil
	case SortAsc:
		return SortAsc, nil
	case SortDesc:
		return SortDesc, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", s)
}

// SortState is the transient sort of a holdings view. The zero value is
// the natural order.
type SortState struct {
	Field     SortField     `json:"field,omitempty"`
	Direction SortDirection `json:"direction"`
}

// Active reports whether s reorders anything.
func (s SortState) Active() bool {
	return s.Field != "" && (s.Direction == SortAsc || s.Direction == SortDesc)
}

// Toggle returns the state after the user selects field: the same field
// cycles asc, desc, then back to the natural order, and a different field
// starts ascending.
func (s SortState) Toggle(field SortField) SortState {
	if s.Field != field || !s.Active() {
		return SortState{Field: field, Direction: SortAsc}
	}
	if s.Direction == SortAsc {
		return SortState{Field: field, Direction: SortDesc}
	}
	return SortState{Direction: SortNone}
}

// SortedView returns a sorted copy of holdings. Ties keep ledger order and
// the input slice is never modified.
func SortedView(holdings []Holding, state SortState) []Holding {
	out := make([]Holding, len(holdings))
	copy(out, holdings)
	if !state.Active() {
		return out
	}

	total := TotalMarketValue(holdings)
	desc := state.Direction == SortDesc

	if state.Field == SortByName {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
			if desc {
				return a > b
			}
			return a < b
		})
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := sortValue(out[i], state.Field, total), sortValue(out[j], state.Field, total)
		if desc {
			return a > b
		}
		return a < b
	})
	return out
}

// ChartView orders holdings by weight, largest first, regardless of the
// table's sort.
func ChartView(holdings []Holding) []Holding {
	return SortedView(holdings, SortState{Field: SortByWeight, Direction: SortDesc})
}

func sortValue(h Holding, field SortField, total float64) float64 {
	switch field {
	case SortByShares:
		return h.Shares
	case SortByCostBasis:
		return h.CostBasis
	case SortByCurrentPrice:
		return h.CurrentPrice
	case SortByMarketValue:
		return MarketValue(h)
	case SortByGainLoss:
		return GainLoss(h)
	case SortByGainLossPercent:
		pct, _ := GainLossPercent(h)
		return pct
	case SortByWeight:
		return Weight(h, total)
	}
	return 0
}
