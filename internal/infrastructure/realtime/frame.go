// Package realtime keeps a live connection to the push channel and fans
// comment events out to per-ticket subscribers.
package realtime

import (
	"encoding/json"
	"fmt"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/constants"
)

// Frame is the envelope of every push message.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// NewCommentFrame encodes a comment the way the server pushes it.
func NewCommentFrame(c ticket.Comment) ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal comment: %w", err)
	}
	return json.Marshal(Frame{Event: constants.EventNewComment, Data: data})
}

// decodeComment extracts a comment from a raw frame. ok is false for
// unknown events and for frames that are not a usable comment.
func decodeComment(raw []byte) (c ticket.Comment, ok bool, err error) {
	var f Frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return c, false, fmt.Errorf("unmarshal frame: %w", err)
	}
	if f.Event != constants.EventNewComment {
		return c, false, nil
	}
	if err := json.Unmarshal(f.Data, &c); err != nil {
		return c, false, fmt.Errorf("unmarshal comment: %w", err)
	}
	if c.ID == 0 || c.TicketID == 0 {
		return c, false, fmt.Errorf("comment frame without id or ticket id")
	}
	return c, true, nil
}
