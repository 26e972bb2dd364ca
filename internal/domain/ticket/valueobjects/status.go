package valueobjects

type TicketStatus string

const (
	StatusOpen       TicketStatus = "aberto"
	StatusInProgress TicketStatus = "em_progresso"
	StatusResolved   TicketStatus = "resolvido"
	StatusCancelled  TicketStatus = "cancelado"
)

// TicketStatuses lists every status in display order.
var TicketStatuses = []TicketStatus{
	StatusOpen,
	StatusInProgress,
	StatusResolved,
	StatusCancelled,
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	for _, s := range TicketStatuses {
		if s == ts {
			return true
		}
	}
	return false
}

func (ts TicketStatus) IsFinal() bool {
	return ts == StatusResolved || ts == StatusCancelled
}
