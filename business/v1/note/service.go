// Package note keeps a per user view of the notes a user can see consistent between the cache and the store.
//
// The store is the source of truth and is always written first. After every successful write the service
// invalidates, or patches in place, the cached snapshot of every user that can see the note: the owner and
// all its collaborators. A snapshot holds every visible note of a user in any archive or trash state, the
// default, archived and trashed views are filtered from it. Cache failures never fail a request, they are
// logged and the store is used instead. A concurrent read that fills the cache between a store write and its
// invalidation can leave a stale snapshot until it expires, that window is accepted.
package note

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ribgsilva/fundoo-notes/persistence/v1/note"
	"go.uber.org/zap"
)

// Store is the durable side, see persistence/v1/note for the mysql implementation
type Store interface {
	Insert(ctx context.Context, newN note.NewNote) (note.Note, error)
	FindByID(ctx context.Context, id uint64) (note.Note, error)
	ListVisible(ctx context.Context, userID uint64) ([]note.Note, error)
	Update(ctx context.Context, id uint64, upd note.UpdateNote) (note.Note, error)
	ToggleArchive(ctx context.Context, id uint64) (note.Note, error)
	ToggleTrash(ctx context.Context, id uint64) (note.Note, error)
	Delete(ctx context.Context, id uint64) error
	Collaborators(ctx context.Context, noteID uint64) ([]uint64, error)
	AddCollaborators(ctx context.Context, noteID uint64, userIDs []uint64) error
	RemoveCollaborators(ctx context.Context, noteID uint64, userIDs []uint64) error
	ExistingUsers(ctx context.Context, userIDs []uint64) ([]uint64, error)
	OwnedLabels(ctx context.Context, ownerID uint64, labelIDs []uint64) ([]uint64, error)
	AddLabels(ctx context.Context, noteID uint64, labelIDs []uint64) error
	RemoveLabels(ctx context.Context, noteID uint64, labelIDs []uint64) error
}

// Cache is a plain key value store with expiry, see persistence/v1/cache for the redis implementation.
// A nil Cache given to NewService makes every read go to the store.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// Patch rewrites an existing value with fn, keeping its expiry. It never creates a key, reports
	// found false for a missing one and fails if the key changed while fn ran.
	Patch(ctx context.Context, key string, fn func(value []byte) ([]byte, error)) (found bool, err error)
}

// Scheduler takes notes with a future reminder. Schedule must not block.
type Scheduler interface {
	Schedule(n Note)
}

// Config tunes the cache side. RetryAttempts is how many times a failed invalidation is retried,
// negative values count as zero.
type Config struct {
	CacheTTL      time.Duration
	RetryAttempts int
	RetryBackoff  time.Duration
}

type Service struct {
	log       *zap.SugaredLogger
	store     Store
	cache     Cache
	scheduler Scheduler
	cfg       Config
	validate  *validator.Validate
	now       func() time.Time
}

func NewService(log *zap.SugaredLogger, store Store, cache Cache, scheduler Scheduler, cfg Config) *Service {
	if cache == nil {
		cache = noCache{}
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	if cfg.RetryAttempts < 0 {
		cfg.RetryAttempts = 0
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 10 * time.Millisecond
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Service{
		log:       log,
		store:     store,
		cache:     cache,
		scheduler: scheduler,
		cfg:       cfg,
		validate:  v,
		now:       time.Now,
	}
}

func (s *Service) schedule(n Note) {
	if s.scheduler == nil || n.Reminder == nil {
		return
	}
	if !n.Reminder.After(s.now()) {
		s.log.Infow("reminder", "status", "skipped, already past", "noteId", n.Id, "reminder", n.Reminder)
		return
	}
	s.scheduler.Schedule(n)
}

func unique(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func contains(ids []uint64, id uint64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
