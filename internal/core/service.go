package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/lister/internal/logging"
	"github.com/JonMunkholm/lister/internal/metrics"
	"github.com/JonMunkholm/lister/internal/store"
)

// DefaultOperationTimeout bounds an operation when no WithOperationTimeout
// option is given.
const DefaultOperationTimeout = 10 * time.Second

// Service is the consistency engine. Every mutating operation that touches
// more than one row runs as a single store transaction, so a by-value
// reference is either fully propagated or not at all.
type Service struct {
	store   store.Store
	metrics *metrics.Collector
	timeout time.Duration

	categories CategoryRegistry
	usage      NameUsageTracker
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records operation outcomes and cascade sizes on m.
func WithMetrics(m *metrics.Collector) Option {
	return func(s *Service) { s.metrics = m }
}

// WithOperationTimeout bounds every operation, transaction included.
// Zero disables the bound.
func WithOperationTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// NewService creates a Service backed by st.
func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:   st,
		timeout: DefaultOperationTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping reports whether the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// observe runs fn under the operation timeout and records its outcome.
func (s *Service) observe(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	err := fn(ctx)
	s.metrics.ObserveOperation(op, outcome(err), time.Since(start))
	return err
}

// inTx runs fn as one transaction. fn receives the transaction's queries and
// a logger tagged with the operation and a fresh operation id. Any error
// rolls the whole operation back.
func (s *Service) inTx(ctx context.Context, op string, fn func(ctx context.Context, q store.Queries, log *slog.Logger) error) error {
	log := logging.WithFields(ctx, "op", op, "op_id", uuid.NewString())
	if ip := ClientIPFromContext(ctx); ip != "" {
		log = log.With("client_ip", ip)
	}

	return s.observe(ctx, op, func(ctx context.Context) error {
		err := s.store.WithTx(ctx, func(q store.Queries) error {
			return fn(ctx, q, log)
		})
		if err == nil {
			return nil
		}

		err = classify(op, "", "", err)
		switch KindOf(err) {
		case KindStorage:
			log.Error("transaction rolled back", "error", err)
		default:
			log.Debug("transaction rolled back", "error", err)
		}
		return err
	})
}

func outcome(err error) string {
	if err == nil {
		return metrics.OutcomeOK
	}
	switch KindOf(err) {
	case KindNotFound:
		return metrics.OutcomeNotFound
	case KindConflict:
		return metrics.OutcomeConflict
	case KindValidation:
		return metrics.OutcomeValidation
	default:
		return metrics.OutcomeError
	}
}
