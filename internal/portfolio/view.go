package portfolio

// Row pairs a holding with its derived metrics.
type Row struct {
	Holding
	Metrics
}

// View returns rows in the order given by state, with metrics computed
// against the whole set's market value.
func View(holdings []Holding, state SortState) []Row {
	total := TotalMarketValue(holdings)
	sorted := SortedView(holdings, state)
	rows := make([]Row, len(sorted))
	for i, h := range sorted {
		rows[i] = Row{Holding: h, Metrics: ComputeMetrics(h, total)}
	}
	return rows
}
