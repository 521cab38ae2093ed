package state

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"e-shopping/internal/repository"

	"go.uber.org/zap"
)

// Slot names, one durable document per container
const (
	SlotIdentity      = "e-shopping.auth.v1"
	SlotShops         = "e-shopping.shops.v1"
	SlotStoreProducts = "e-shopping.store-products.v1"
	SlotCommerce      = "e-shopping.commerce.v1"
)

// slot reads and writes one JSON document in a SlotRepository
type slot[T any] struct {
	key     string
	repo    repository.SlotRepository
	timeout time.Duration
	logger  *zap.Logger
	metrics *Metrics
}

func newSlot[T any](key string, o *options) *slot[T] {
	if o.repo == nil {
		return nil
	}
	return &slot[T]{
		key:     key,
		repo:    o.repo,
		timeout: o.timeout,
		logger:  o.logger,
		metrics: o.metrics,
	}
}

// load returns the stored document. ok is false when the slot is missing,
// holds JSON null, or cannot be decoded; callers seed in that case.
func (s *slot[T]) load() (value T, ok bool) {
	if s == nil {
		return value, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	raw, err := s.repo.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, repository.ErrSlotNotFound) {
			s.metrics.load(s.key, "missing")
		} else {
			s.logger.Warn("Failed to read state slot, seeding defaults",
				zap.String("slot", s.key),
				zap.Error(err),
			)
			s.metrics.load(s.key, "error")
		}
		return value, false
	}

	var decoded *T
	if err := json.Unmarshal(raw, &decoded); err != nil || decoded == nil {
		s.logger.Warn("Unparsable state slot, seeding defaults",
			zap.String("slot", s.key),
			zap.Error(err),
		)
		s.metrics.load(s.key, "corrupt")
		return value, false
	}

	s.metrics.load(s.key, "loaded")
	return *decoded, true
}

// repaired records that a loaded document broke a store rule and was fixed up
func (s *slot[T]) repaired() {
	if s == nil {
		return
	}
	s.logger.Warn("Restored state slot was inconsistent, repaired it", zap.String("slot", s.key))
	s.metrics.load(s.key, "repaired")
}

// save writes value to the slot. Failures are logged and swallowed.
func (s *slot[T]) save(value T) {
	if s == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("Failed to encode state slot", zap.String("slot", s.key), zap.Error(err))
		s.metrics.persistFailure(s.key)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.repo.Put(ctx, s.key, raw); err != nil {
		s.logger.Error("Failed to persist state slot, changes are not durable",
			zap.String("slot", s.key),
			zap.Error(err),
		)
		s.metrics.persistFailure(s.key)
		return
	}

	s.logger.Debug("State slot persisted", zap.String("slot", s.key), zap.Int("bytes", len(raw)))
}
