package share

import (
	"context"
	"errors"
	"time"

	"github.com/aburakaktas/host-website-flyer-generator/constant"
	"github.com/aburakaktas/host-website-flyer-generator/domain/flyer"
	"github.com/aburakaktas/host-website-flyer-generator/infrastructure/cache"
	"github.com/aburakaktas/host-website-flyer-generator/infrastructure/logger"
	"github.com/google/uuid"
)

// TTL is how long a share record stays reachable
const TTL = 24 * time.Hour

// ErrNotFound is returned for share ids that are unknown or expired
var ErrNotFound = errors.New(constant.ErrShareNotFound)

// ErrIncompleteAssets is returned when a share request misses either payload
var ErrIncompleteAssets = errors.New(constant.ErrMissingAssets)

// Record is a stored flyer asset pair. Records are immutable after creation
// and logically gone once now-CreatedAt exceeds the TTL, whether or not the
// backing store has physically purged them.
type Record struct {
	ID        string
	Assets    flyer.Assets
	CreatedAt time.Time
}

// Backend is one storage tier for share records
type Backend interface {
	Put(ctx context.Context, rec Record) error
	Get(ctx context.Context, id string) (Record, error)
	Delete(ctx context.Context, id string) error
}

// Store maps opaque share ids to flyer assets across two storage tiers: a
// durable primary and an in-process memory secondary. Every operation tries
// the primary first and falls back to memory when the primary errors; the
// fallback is per-operation, never a permanent downgrade. Primary failures
// are logged, not surfaced, trading consistency for availability. A clean
// primary miss is authoritative not-found.
type Store struct {
	primary   Backend // nil when the durable tier is unavailable at startup
	secondary Backend
	cache     *cache.LRU
	now       func() time.Time
}

// NewStore creates a share store over the given tiers. primary may be nil.
func NewStore(primary, secondary Backend, lru *cache.LRU) *Store {
	ctx := logger.NewRequestContext()

	logger.CtxDebug(ctx, "Creating share store", logger.LoggerInfo{
		ContextFunction: constant.CtxShare,
		Data: map[string]interface{}{
			constant.DataService: "share",
			constant.DataBackend: backendName(primary),
		},
	})

	return &Store{
		primary:   primary,
		secondary: secondary,
		cache:     lru,
		now:       time.Now,
	}
}

// Put stores the asset pair under a fresh opaque id and returns the id
func (s *Store) Put(ctx context.Context, assets flyer.Assets) (string, error) {
	if !assets.Complete() {
		logger.CtxWarn(ctx, "Share assets incomplete", logger.LoggerInfo{
			ContextFunction: constant.CtxSharePut,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeSharePut,
				Message: constant.ErrMissingAssets,
				Type:    constant.ErrTypeValidation,
			},
		})
		return "", ErrIncompleteAssets
	}

	rec := Record{
		ID:        uuid.New().String(),
		Assets:    assets,
		CreatedAt: s.now(),
	}

	stored := false
	if s.primary != nil {
		if err := s.primary.Put(ctx, rec); err != nil {
			logger.CtxWarn(ctx, constant.MsgPrimaryStoreFallback, logger.LoggerInfo{
				ContextFunction: constant.CtxSharePut,
				Error: &logger.CustomError{
					Code:    constant.ErrCodeSharePut,
					Message: err.Error(),
					Type:    constant.ErrTypeStorage,
				},
				Data: map[string]interface{}{
					constant.DataShareID: rec.ID,
				},
			})
		} else {
			stored = true
		}
	}

	if !stored {
		if err := s.secondary.Put(ctx, rec); err != nil {
			logger.CtxError(ctx, "Failed to store share record", logger.LoggerInfo{
				ContextFunction: constant.CtxSharePut,
				Error: &logger.CustomError{
					Code:    constant.ErrCodeSharePut,
					Message: err.Error(),
					Type:    constant.ErrTypeStorage,
				},
				Data: map[string]interface{}{
					constant.DataShareID: rec.ID,
				},
			})
			return "", err
		}
	}

	s.cache.Set(rec.ID, rec)

	logger.CtxInfo(ctx, constant.MsgShareStored, logger.LoggerInfo{
		ContextFunction: constant.CtxSharePut,
		Data: map[string]interface{}{
			constant.DataShareID:   rec.ID,
			constant.DataCreatedAt: rec.CreatedAt,
		},
	})

	return rec.ID, nil
}

// Get returns the assets for an id, or ErrNotFound once the record is
// absent or older than the TTL
func (s *Store) Get(ctx context.Context, id string) (flyer.Assets, error) {
	if id == "" {
		return flyer.Assets{}, ErrNotFound
	}

	if v, ok := s.cache.Get(id); ok {
		if rec, ok := v.(Record); ok {
			if s.expired(rec) {
				// Cached hits honor the TTL too; purge and keep looking
				// so the backends get to clean up as well
				s.cache.Invalidate(id)
			} else {
				return rec.Assets, nil
			}
		}
	}

	if s.primary != nil {
		rec, err := s.primary.Get(ctx, id)
		switch {
		case err == nil:
			if s.expired(rec) {
				_ = s.primary.Delete(ctx, id)
				logger.CtxInfo(ctx, constant.MsgShareRecordExpired, logger.LoggerInfo{
					ContextFunction: constant.CtxShareGet,
					Data: map[string]interface{}{
						constant.DataShareID: id,
					},
				})
				return flyer.Assets{}, ErrNotFound
			}
			s.cache.Set(id, rec)
			return rec.Assets, nil
		case errors.Is(err, ErrNotFound):
			return flyer.Assets{}, ErrNotFound
		default:
			logger.CtxWarn(ctx, constant.MsgPrimaryStoreFallback, logger.LoggerInfo{
				ContextFunction: constant.CtxShareGet,
				Error: &logger.CustomError{
					Code:    constant.ErrCodeShareGet,
					Message: err.Error(),
					Type:    constant.ErrTypeStorage,
				},
				Data: map[string]interface{}{
					constant.DataShareID: id,
				},
			})
		}
	}

	rec, err := s.secondary.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return flyer.Assets{}, ErrNotFound
		}
		logger.CtxError(ctx, "Failed to retrieve share record", logger.LoggerInfo{
			ContextFunction: constant.CtxShareGet,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeShareGet,
				Message: err.Error(),
				Type:    constant.ErrTypeStorage,
			},
			Data: map[string]interface{}{
				constant.DataShareID: id,
			},
		})
		return flyer.Assets{}, err
	}

	if s.expired(rec) {
		_ = s.secondary.Delete(ctx, id)
		logger.CtxInfo(ctx, constant.MsgShareRecordExpired, logger.LoggerInfo{
			ContextFunction: constant.CtxShareGet,
			Data: map[string]interface{}{
				constant.DataShareID: id,
			},
		})
		return flyer.Assets{}, ErrNotFound
	}

	s.cache.Set(id, rec)

	logger.CtxInfo(ctx, constant.MsgShareRetrieved, logger.LoggerInfo{
		ContextFunction: constant.CtxShareGet,
		Data: map[string]interface{}{
			constant.DataShareID: id,
		},
	})

	return rec.Assets, nil
}

func (s *Store) expired(rec Record) bool {
	return s.now().Sub(rec.CreatedAt) > TTL
}

func backendName(primary Backend) string {
	if primary == nil {
		return "memory"
	}
	return "durable+memory"
}
