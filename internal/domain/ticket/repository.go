package ticket

import (
	"context"

	"helpdesk/internal/domain/shared"
)

type TicketRepository interface {
	shared.Repository[Ticket, Filter, Form]
	// Resolve marks the ticket resolved on the server.
	Resolve(ctx context.Context, ticketID int64) (Ticket, error)
}

type CommentRepository interface {
	ListByTicket(ctx context.Context, ticketID int64) ([]Comment, error)
	Create(ctx context.Context, ticketID int64, form CommentForm) (Comment, error)
	Update(ctx context.Context, commentID int64, form CommentForm) (Comment, error)
	Delete(ctx context.Context, commentID int64) error
}

type CategoryRepository interface {
	ListAll(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, form CategoryForm) (Category, error)
	Update(ctx context.Context, categoryID int64, form CategoryForm) (Category, error)
	Delete(ctx context.Context, categoryID int64) error
}

// CommentSubscription streams new comments of one ticket until closed.
type CommentSubscription interface {
	Comments() <-chan Comment
	Close()
}

// CommentFeed hands out per-ticket subscriptions to live comment events.
type CommentFeed interface {
	Subscribe(ticketID int64) CommentSubscription
}
