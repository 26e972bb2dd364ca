// Package dashboard turns the server's ticket summary into a report with
// every status and priority present in display order.
package dashboard

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"helpdesk/internal/domain/dashboard"
	tvo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/logger"
)

type Count struct {
	Key   string `json:"key"`
	Total int64  `json:"total"`
}

type Report struct {
	Total               int64    `json:"total"`
	ByStatus            []Count  `json:"porStatus"`
	ByPriority          []Count  `json:"porPrioridade"`
	LastSevenDays       []Count  `json:"ultimos7Dias"`
	MeanResolutionHours *float64 `json:"tempoMedioResolucaoHoras,omitempty"`
}

type Service struct {
	reader dashboard.Reader
	logger logger.Interface
}

func NewService(reader dashboard.Reader, logger logger.Interface) *Service {
	return &Service{reader: reader, logger: logger}
}

func (s *Service) Report(ctx context.Context) (Report, error) {
	summary, err := s.reader.Summary(ctx)
	if err != nil {
		s.logger.Errorw("failed to load dashboard summary", "error", err)
		return Report{}, fmt.Errorf("failed to load dashboard summary: %w", err)
	}
	return BuildReport(summary), nil
}

// BuildReport orders counts by the declared enum order, filling absent
// keys with zero. Unknown keys reported by the server are kept at the end.
func BuildReport(summary dashboard.Summary) Report {
	statusTotals := make(map[string]int64, len(summary.ByStatus))
	for _, c := range summary.ByStatus {
		statusTotals[c.Status] += c.Total
	}
	priorityTotals := make(map[string]int64, len(summary.ByPriority))
	for _, c := range summary.ByPriority {
		priorityTotals[c.Priority] += c.Total
	}

	report := Report{
		Total:         summary.TotalTickets(),
		ByStatus:      ordered(statusTotals, enumKeys(tvo.TicketStatuses)),
		ByPriority:    ordered(priorityTotals, enumKeys(tvo.Priorities)),
		LastSevenDays: make([]Count, 0, len(summary.LastSevenDays)),
	}
	for _, d := range summary.LastSevenDays {
		report.LastSevenDays = append(report.LastSevenDays, Count{Key: d.Day, Total: d.Total})
	}

	if h := summary.MeanResolution.Hours; h != nil {
		if v, err := strconv.ParseFloat(*h, 64); err == nil {
			report.MeanResolutionHours = &v
		}
	}
	return report
}

func enumKeys[T ~string](values []T) []string {
	keys := make([]string, len(values))
	for i, v := range values {
		keys[i] = string(v)
	}
	return keys
}

func ordered(totals map[string]int64, keys []string) []Count {
	out := make([]Count, 0, len(totals)+len(keys))
	known := make(map[string]bool, len(keys))
	for _, k := range keys {
		known[k] = true
		out = append(out, Count{Key: k, Total: totals[k]})
	}
	var extra []string
	for k := range totals {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	for _, k := range extra {
		out = append(out, Count{Key: k, Total: totals[k]})
	}
	return out
}
