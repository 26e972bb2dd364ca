package realtime

import (
	"context"
	"sync"
	"time"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/goroutine"
	"helpdesk/internal/shared/logger"
)

const defaultSubscriberBuffer = 64

// Broker owns the push connection and routes comment events to the
// subscribers of the matching ticket. Delivery never blocks the reader: a
// subscriber whose buffer is full loses the event.
type Broker struct {
	source    Source
	reconnect *ReconnectConfig
	logger    logger.Interface
	bufSize   int

	mu     sync.RWMutex
	subs   map[int64]map[*Subscription]struct{}
	cancel context.CancelFunc
	done   <-chan struct{}
}

var _ ticket.CommentFeed = (*Broker)(nil)

// BrokerOption is a function that configures the Broker.
type BrokerOption func(*Broker)

// WithSubscriberBuffer sets the per-subscriber channel capacity.
func WithSubscriberBuffer(n int) BrokerOption {
	return func(b *Broker) {
		if n > 0 {
			b.bufSize = n
		}
	}
}

// WithReconnectConfig sets the backoff used between connection attempts.
func WithReconnectConfig(rc *ReconnectConfig) BrokerOption {
	return func(b *Broker) {
		b.reconnect = rc
	}
}

// NewBroker creates a broker reading from source. A nil source yields a
// broker that only carries what Publish feeds it.
func NewBroker(source Source, log logger.Interface, opts ...BrokerOption) *Broker {
	b := &Broker{
		source:    source,
		reconnect: DefaultReconnectConfig(),
		logger:    log,
		bufSize:   defaultSubscriberBuffer,
		subs:      make(map[int64]map[*Subscription]struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Start connects in the background and keeps reconnecting until Close.
func (b *Broker) Start(ctx context.Context) {
	if b.source == nil {
		return
	}

	b.mu.Lock()
	if b.cancel != nil {
		b.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	b.mu.Unlock()

	rc := *b.reconnect
	rc.OnConnected = chain(rc.OnConnected, func() {
		b.logger.Infow("realtime channel connected", "transport", b.source.Name())
	})
	rc.OnDisconnected = chainErr(rc.OnDisconnected, func(err error) {
		if runCtx.Err() == nil {
			b.logger.Warnw("realtime channel disconnected", "transport", b.source.Name(), "error", err)
		}
	})
	rc.OnReconnecting = chainRetry(rc.OnReconnecting, func(attempt uint64, delay time.Duration) {
		b.logger.Debugw("realtime channel reconnecting", "attempt", attempt, "delay", delay)
	})

	done := goroutine.SafeGo(b.logger, "realtime-broker", func() {
		_ = RunWithReconnect(runCtx, b.source, &rc, b.handleFrame)
	})

	b.mu.Lock()
	b.done = done
	b.mu.Unlock()
}

// Close stops the connection and ends every subscription.
func (b *Broker) Close() {
	b.mu.Lock()
	cancel, done := b.cancel, b.done
	b.cancel, b.done = nil, nil
	subs := b.subs
	b.subs = make(map[int64]map[*Subscription]struct{})
	b.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
	for _, set := range subs {
		for s := range set {
			s.closeChannel()
		}
	}
}

// Subscribe returns a stream of new comments for ticketID.
func (b *Broker) Subscribe(ticketID int64) ticket.CommentSubscription {
	s := &Subscription{
		ticketID: ticketID,
		ch:       make(chan ticket.Comment, b.bufSize),
		broker:   b,
	}

	b.mu.Lock()
	set, ok := b.subs[ticketID]
	if !ok {
		set = make(map[*Subscription]struct{})
		b.subs[ticketID] = set
	}
	set[s] = struct{}{}
	b.mu.Unlock()

	return s
}

// Publish routes c to the subscribers of its ticket.
func (b *Broker) Publish(c ticket.Comment) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for s := range b.subs[c.TicketID] {
		select {
		case s.ch <- c:
		default:
			b.logger.Warnw("dropping comment event, subscriber buffer full",
				"ticket_id", c.TicketID,
				"comment_id", c.ID,
			)
		}
	}
}

func (b *Broker) handleFrame(raw []byte) {
	c, ok, err := decodeComment(raw)
	if err != nil {
		b.logger.Warnw("skipping malformed realtime frame", "error", err)
		return
	}
	if !ok {
		return
	}
	b.Publish(c)
}

func (b *Broker) unsubscribe(s *Subscription) {
	b.mu.Lock()
	set, ok := b.subs[s.ticketID]
	if ok {
		if _, present := set[s]; present {
			delete(set, s)
			if len(set) == 0 {
				delete(b.subs, s.ticketID)
			}
		} else {
			ok = false
		}
	}
	b.mu.Unlock()

	if ok {
		s.closeChannel()
	}
}

// Subscription is one consumer of a ticket's comment events.
type Subscription struct {
	ticketID int64
	ch       chan ticket.Comment
	broker   *Broker
	once     sync.Once
}

func (s *Subscription) Comments() <-chan ticket.Comment {
	return s.ch
}

// Close unsubscribes; the channel is closed afterwards. Safe to call twice.
func (s *Subscription) Close() {
	s.broker.unsubscribe(s)
}

func (s *Subscription) closeChannel() {
	s.once.Do(func() { close(s.ch) })
}

func chain(a, b func()) func() {
	return func() {
		b()
		if a != nil {
			a()
		}
	}
}

func chainErr(a, b func(error)) func(error) {
	return func(err error) {
		b(err)
		if a != nil {
			a(err)
		}
	}
}

func chainRetry(a, b func(uint64, time.Duration)) func(uint64, time.Duration) {
	return func(n uint64, d time.Duration) {
		b(n, d)
		if a != nil {
			a(n, d)
		}
	}
}
