// Package thread keeps the comment conversation of one ticket live: history
// from the API, new comments from the realtime feed, and the resolved flag.
package thread

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/biztime"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/goroutine"
	"helpdesk/internal/shared/logger"
)

// Resolver marks tickets resolved on the server.
type Resolver interface {
	Resolve(ctx context.Context, ticketID int64) (ticket.Ticket, error)
}

// State is a snapshot of the open conversation.
type State struct {
	TicketID   int64            `json:"chamadoId"`
	Comments   []ticket.Comment `json:"comentarios"`
	Resolved   bool             `json:"resolvido"`
	ResolvedAt *time.Time       `json:"resolvidoEm,omitempty"`
}

type Config struct {
	// PostMarker posts the resolution marker comment after a resolve call
	// so other viewers see the ticket as resolved.
	PostMarker bool
}

type Thread struct {
	comments ticket.CommentRepository
	tickets  Resolver
	feed     ticket.CommentFeed
	config   Config
	logger   logger.Interface
	now      func() time.Time

	mu         sync.Mutex
	ticketID   int64
	list       []ticket.Comment
	seen       map[int64]struct{}
	resolved   bool
	resolvedAt *time.Time
	sub        ticket.CommentSubscription
	pumpDone   <-chan struct{}
	seq        uint64
	updates    chan struct{}
}

func New(
	comments ticket.CommentRepository,
	tickets Resolver,
	feed ticket.CommentFeed,
	config Config,
	logger logger.Interface,
) *Thread {
	return &Thread{
		comments: comments,
		tickets:  tickets,
		feed:     feed,
		config:   config,
		logger:   logger,
		now:      biztime.NowUTC,
		seen:     map[int64]struct{}{},
		updates:  make(chan struct{}, 1),
	}
}

// Updates signals every state change. Signals coalesce; read State after
// each one.
func (t *Thread) Updates() <-chan struct{} {
	return t.updates
}

func (t *Thread) notify() {
	select {
	case t.updates <- struct{}{}:
	default:
	}
}

// Open loads the history of ticketID, derives the resolved flag from its
// last comment and starts following live comments. A thread already open
// on another ticket is closed first.
func (t *Thread) Open(ctx context.Context, ticketID int64) error {
	t.Close()

	t.mu.Lock()
	t.seq++
	token := t.seq
	t.ticketID = ticketID
	t.list = nil
	t.seen = map[int64]struct{}{}
	t.resolved = false
	t.resolvedAt = nil
	t.mu.Unlock()

	// Subscribe before fetching so nothing posted in between is lost; the
	// overlap is removed by comment ID.
	var sub ticket.CommentSubscription
	if t.feed != nil {
		sub = t.feed.Subscribe(ticketID)
	}

	history, err := t.comments.ListByTicket(ctx, ticketID)

	t.mu.Lock()
	if token != t.seq {
		t.mu.Unlock()
		if sub != nil {
			sub.Close()
		}
		t.logger.Debugw("discarding stale thread history", "ticket_id", ticketID)
		return nil
	}
	if err != nil {
		t.mu.Unlock()
		if sub != nil {
			sub.Close()
		}
		t.logger.Errorw("failed to load comments", "ticket_id", ticketID, "error", err)
		return fmt.Errorf("failed to load comments of ticket %d: %w", ticketID, err)
	}

	for _, c := range history {
		t.appendLocked(c)
	}
	t.deriveResolvedLocked()
	t.sub = sub
	if sub != nil {
		t.pumpDone = goroutine.SafeGo(t.logger, "thread-pump", func() {
			for c := range sub.Comments() {
				t.receive(token, c)
			}
		})
	}
	t.mu.Unlock()

	t.logger.Infow("thread opened", "ticket_id", ticketID, "comments", len(history))
	t.notify()
	return nil
}

// appendLocked adds c unless a comment with the same ID is already shown.
func (t *Thread) appendLocked(c ticket.Comment) bool {
	if _, dup := t.seen[c.ID]; dup {
		return false
	}
	t.seen[c.ID] = struct{}{}
	t.list = append(t.list, c)
	return true
}

func (t *Thread) deriveResolvedLocked() {
	t.resolved = false
	t.resolvedAt = nil
	if n := len(t.list); n > 0 && t.list[n-1].IsResolutionMarker() {
		at := t.list[n-1].CreatedAt
		t.resolved = true
		t.resolvedAt = &at
	}
}

func (t *Thread) receive(token uint64, c ticket.Comment) {
	t.mu.Lock()
	if token != t.seq || c.TicketID != t.ticketID {
		t.mu.Unlock()
		return
	}
	added := t.appendLocked(c)
	if added && c.IsResolutionMarker() {
		at := c.CreatedAt
		t.resolved = true
		t.resolvedAt = &at
	}
	t.mu.Unlock()

	if added {
		t.logger.Debugw("live comment appended", "ticket_id", c.TicketID, "comment_id", c.ID)
		t.notify()
	}
}

func (t *Thread) openTicket() (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ticketID == 0 {
		return 0, errors.NewBadRequestError("no ticket thread is open")
	}
	return t.ticketID, nil
}

// Submit posts a comment. Blank text is ignored. The comment shows up when
// the realtime feed delivers it.
func (t *Thread) Submit(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	ticketID, err := t.openTicket()
	if err != nil {
		return err
	}

	c, err := t.comments.Create(ctx, ticketID, ticket.CommentForm{Text: text})
	if err != nil {
		t.logger.Errorw("failed to post comment", "ticket_id", ticketID, "error", err)
		return fmt.Errorf("failed to post comment: %w", err)
	}

	t.logger.Infow("comment posted", "ticket_id", ticketID, "comment_id", c.ID)
	return nil
}

// Resolve marks the open ticket resolved, flips the local flag with the
// current time and, when configured, posts the resolution marker.
func (t *Thread) Resolve(ctx context.Context) error {
	ticketID, err := t.openTicket()
	if err != nil {
		return err
	}

	if _, err := t.tickets.Resolve(ctx, ticketID); err != nil {
		t.logger.Errorw("failed to resolve ticket", "ticket_id", ticketID, "error", err)
		return fmt.Errorf("failed to resolve ticket %d: %w", ticketID, err)
	}

	now := t.now()
	t.mu.Lock()
	if t.ticketID == ticketID {
		t.resolved = true
		t.resolvedAt = &now
	}
	t.mu.Unlock()
	t.notify()
	t.logger.Infow("ticket resolved", "ticket_id", ticketID)

	if !t.config.PostMarker {
		return nil
	}
	if _, err := t.comments.Create(ctx, ticketID, ticket.CommentForm{Text: ticket.ResolutionMarker}); err != nil {
		t.logger.Errorw("failed to post resolution marker", "ticket_id", ticketID, "error", err)
		return fmt.Errorf("failed to post resolution marker: %w", err)
	}
	return nil
}

// Edit changes the text of a comment and updates it in place.
func (t *Thread) Edit(ctx context.Context, commentID int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.NewValidationError("comentario is required")
	}

	updated, err := t.comments.Update(ctx, commentID, ticket.CommentForm{Text: text})
	if err != nil {
		t.logger.Errorw("failed to edit comment", "comment_id", commentID, "error", err)
		return fmt.Errorf("failed to edit comment %d: %w", commentID, err)
	}

	t.mu.Lock()
	for i := range t.list {
		if t.list[i].ID == commentID {
			updated.Author = t.list[i].Author
			t.list[i] = updated
		}
	}
	t.mu.Unlock()
	t.notify()
	return nil
}

// Remove deletes a comment and drops it from the conversation.
func (t *Thread) Remove(ctx context.Context, commentID int64) error {
	if err := t.comments.Delete(ctx, commentID); err != nil {
		t.logger.Errorw("failed to delete comment", "comment_id", commentID, "error", err)
		return fmt.Errorf("failed to delete comment %d: %w", commentID, err)
	}

	t.mu.Lock()
	kept := t.list[:0]
	for _, c := range t.list {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	t.list = kept
	t.mu.Unlock()
	t.notify()
	return nil
}

// State returns a copy of the conversation.
func (t *Thread) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	comments := make([]ticket.Comment, len(t.list))
	copy(comments, t.list)

	var at *time.Time
	if t.resolvedAt != nil {
		v := *t.resolvedAt
		at = &v
	}
	return State{
		TicketID:   t.ticketID,
		Comments:   comments,
		Resolved:   t.resolved,
		ResolvedAt: at,
	}
}

// Close stops following live comments.
func (t *Thread) Close() {
	t.mu.Lock()
	sub, done := t.sub, t.pumpDone
	t.sub, t.pumpDone = nil, nil
	t.ticketID = 0
	t.seq++
	t.mu.Unlock()

	if sub != nil {
		sub.Close()
	}
	if done != nil {
		<-done
	}
}
