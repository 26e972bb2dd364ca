package ticket

import (
	"strconv"
	"time"
)

// ResolutionMarker is the reserved comment text announcing that a ticket was
// resolved. Only an exact match counts; it is a system event, not user content.
const ResolutionMarker = "__CHAMADO_RESOLVIDO__"

// Author is the user a comment belongs to, when the API embeds it.
type Author struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"tipo,omitempty"`
}

// Comment is one message in a ticket thread.
type Comment struct {
	ID        int64      `json:"id"`
	TicketID  int64      `json:"chamadoId"`
	UserID    int64      `json:"userId"`
	Text      string     `json:"comentario"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	Author    *Author    `json:"usuario,omitempty"`
}

// IsResolutionMarker reports whether c is the resolution system event.
func (c Comment) IsResolutionMarker() bool {
	return c.Text == ResolutionMarker
}

// AuthorName returns the embedded author's name, falling back to the user ID.
func (c Comment) AuthorName() string {
	if c.Author != nil && c.Author.FullName != "" {
		return c.Author.FullName
	}
	return "#" + strconv.FormatInt(c.UserID, 10)
}

// CommentForm is the body of a new or edited comment.
type CommentForm struct {
	Text string `json:"comentario" validate:"required"`
}
