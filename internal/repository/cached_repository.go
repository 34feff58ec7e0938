package repository

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/sheet-ticket-service/internal/domain"
)

// CacheBackend is the narrow KV surface the read cache needs. Get reports a
// miss as (_, false, nil).
type CacheBackend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

const statusKeyPrefix = "tickets:status:"

// cachedTicketRepository wraps a TicketRepository with a read-through cache
// for status listings. Every save invalidates all status keys, since an
// update moves a ticket between listings. Cache failures degrade to the
// inner repository; they never fail a read.
type cachedTicketRepository struct {
	inner   TicketRepository
	backend CacheBackend
	ttl     time.Duration
	logger  *zap.Logger
}

// NewCachedTicketRepository decorates inner with a status-listing cache.
func NewCachedTicketRepository(inner TicketRepository, backend CacheBackend, ttl time.Duration, logger *zap.Logger) TicketRepository {
	return &cachedTicketRepository{inner: inner, backend: backend, ttl: ttl, logger: logger}
}

func (r *cachedTicketRepository) SaveTicket(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	saved, err := r.inner.SaveTicket(ctx, ticket)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(domain.AllTicketStatuses))
	for _, status := range domain.AllTicketStatuses {
		keys = append(keys, statusKey(status))
	}
	if err := r.backend.Del(ctx, keys...); err != nil {
		r.logger.Warn("cache invalidation failed", zap.Error(err))
	}
	return saved, nil
}

func (r *cachedTicketRepository) FindByID(ctx context.Context, id string) (*domain.Ticket, error) {
	return r.inner.FindByID(ctx, id)
}

func (r *cachedTicketRepository) FindAllByStatus(ctx context.Context, status domain.TicketStatus) ([]domain.Ticket, error) {
	key := statusKey(status)

	cached, hit, err := r.backend.Get(ctx, key)
	if err != nil {
		r.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	} else if hit {
		var tickets []domain.Ticket
		if err := json.Unmarshal([]byte(cached), &tickets); err == nil {
			return tickets, nil
		}
		r.logger.Warn("discarding unreadable cache entry", zap.String("key", key))
	}

	tickets, err := r.inner.FindAllByStatus(ctx, status)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(tickets); err == nil {
		if err := r.backend.Set(ctx, key, string(encoded), r.ttl); err != nil {
			r.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return tickets, nil
}

func statusKey(status domain.TicketStatus) string {
	return statusKeyPrefix + string(status)
}
