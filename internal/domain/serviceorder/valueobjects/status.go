package valueobjects

type OrderStatus string

const (
	StatusOpen       OrderStatus = "aberta"
	StatusInProgress OrderStatus = "em_andamento"
	StatusClosed     OrderStatus = "finalizada"
	StatusCancelled  OrderStatus = "cancelada"
)

var OrderStatuses = []OrderStatus{
	StatusOpen,
	StatusInProgress,
	StatusClosed,
	StatusCancelled,
}

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) IsValid() bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// ServiceMode tells whether the technician goes on site or works remotely.
type ServiceMode string

const (
	ModeOnSite ServiceMode = "presencial"
	ModeRemote ServiceMode = "remoto"
)

var ServiceModes = []ServiceMode{ModeOnSite, ModeRemote}

func (m ServiceMode) String() string {
	return string(m)
}

func (m ServiceMode) IsValid() bool {
	return m == ModeOnSite || m == ModeRemote
}
