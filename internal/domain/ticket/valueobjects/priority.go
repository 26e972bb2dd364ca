package valueobjects

type Priority string

const (
	PriorityLow    Priority = "baixa"
	PriorityMedium Priority = "media"
	PriorityHigh   Priority = "alta"
	PriorityUrgent Priority = "urgente"
)

// Priorities lists every priority from lowest to highest.
var Priorities = []Priority{
	PriorityLow,
	PriorityMedium,
	PriorityHigh,
	PriorityUrgent,
}

func (p Priority) String() string {
	return string(p)
}

func (p Priority) IsValid() bool {
	return p.Level() > 0
}

// Level returns 1 for low through 4 for urgent, 0 when unknown.
func (p Priority) Level() int {
	for i, v := range Priorities {
		if v == p {
			return i + 1
		}
	}
	return 0
}

func (p Priority) IsUrgent() bool {
	return p == PriorityUrgent
}
