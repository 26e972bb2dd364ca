package dashboard

import "context"

type StatusCount struct {
	Status string `json:"status"`
	Total  int64  `json:"total"`
}

type PriorityCount struct {
	Priority string `json:"prioridade"`
	Total    int64  `json:"total"`
}

type DayCount struct {
	Day   string `json:"data"`
	Total int64  `json:"total"`
}

type MeanResolution struct {
	Hours *string `json:"media_horas"`
}

// Summary aggregates ticket counts for the dashboard.
type Summary struct {
	ByStatus       []StatusCount   `json:"porStatus"`
	ByPriority     []PriorityCount `json:"porPrioridade"`
	LastSevenDays  []DayCount      `json:"ultimos7"`
	MeanResolution MeanResolution  `json:"tempoMedio"`
}

// TotalTickets sums the per-status counts.
func (s Summary) TotalTickets() int64 {
	var n int64
	for _, c := range s.ByStatus {
		n += c.Total
	}
	return n
}

type Reader interface {
	Summary(ctx context.Context) (Summary, error)
}
