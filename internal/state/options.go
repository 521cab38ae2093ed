package state

import (
	"time"

	"e-shopping/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultSlotTimeout = 2 * time.Second

// IDGenerator returns a fresh unique id starting with prefix
type IDGenerator func(prefix string) string

// RandomID is the default IDGenerator
func RandomID(prefix string) string {
	return prefix + uuid.NewString()
}

type options struct {
	repo     repository.SlotRepository
	timeout  time.Duration
	logger   *zap.Logger
	notifier Notifier
	metrics  *Metrics
	newID    IDGenerator
}

// Option configures a store
type Option func(*options)

// WithSlots persists the store in repo. Without it the store is memory only.
func WithSlots(repo repository.SlotRepository) Option {
	return func(o *options) {
		o.repo = repo
	}
}

// WithSlotTimeout bounds every slot read and write
func WithSlotTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithLogger sets the store logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithNotifier sets the receiver of user-facing confirmations
func WithNotifier(notifier Notifier) Option {
	return func(o *options) {
		if notifier != nil {
			o.notifier = notifier
		}
	}
}

// WithMetrics records mutations and persistence failures in m
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithIDGenerator replaces RandomID
func WithIDGenerator(gen IDGenerator) Option {
	return func(o *options) {
		if gen != nil {
			o.newID = gen
		}
	}
}

func buildOptions(opts []Option) *options {
	o := &options{
		timeout:  defaultSlotTimeout,
		logger:   zap.NewNop(),
		notifier: NopNotifier{},
		newID:    RandomID,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
