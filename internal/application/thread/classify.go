package thread

import "helpdesk/internal/domain/ticket"

// Class decides how a comment is laid out relative to the viewer.
type Class int

const (
	ClassOther Class = iota
	ClassOwn
	ClassSystem
)

func (c Class) String() string {
	switch c {
	case ClassSystem:
		return "system"
	case ClassOwn:
		return "own"
	default:
		return "other"
	}
}

// Align is the horizontal placement of a rendered comment.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Align places system events centered, the viewer's own comments right and
// everybody else's left.
func (c Class) Align() Align {
	switch c {
	case ClassSystem:
		return AlignCenter
	case ClassOwn:
		return AlignRight
	default:
		return AlignLeft
	}
}

func Classify(c ticket.Comment, viewerID int64) Class {
	switch {
	case c.IsResolutionMarker():
		return ClassSystem
	case viewerID != 0 && c.UserID == viewerID:
		return ClassOwn
	default:
		return ClassOther
	}
}
