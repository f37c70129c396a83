package note

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const userKey = "user_%d"

func keyOf(userID uint64) string {
	return fmt.Sprintf(userKey, userID)
}

func keysOf(users []uint64) []string {
	users = unique(users)
	keys := make([]string, len(users))
	for i, u := range users {
		keys[i] = keyOf(u)
	}
	return keys
}

type view func(n Note) bool

var (
	defaultView  view = func(n Note) bool { return !n.IsArchive && !n.IsTrash }
	archivedView view = func(n Note) bool { return n.IsArchive && !n.IsTrash }
	trashedView  view = func(n Note) bool { return n.IsTrash }
)

func (v view) filter(notes []Note) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if v(n) {
			out = append(out, n)
		}
	}
	return out
}

func encode(notes []Note) ([]byte, error) {
	if notes == nil {
		notes = []Note{}
	}
	return json.Marshal(notes)
}

func decode(data []byte) ([]Note, error) {
	var notes []Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, err
	}
	if notes == nil {
		return nil, fmt.Errorf("snapshot is null")
	}
	return notes, nil
}

func find(notes []Note, id uint64) (Note, bool) {
	for _, n := range notes {
		if n.Id == id {
			return n, true
		}
	}
	return Note{}, false
}

var errNotCached = errors.New("note not in snapshot")

// replace swaps the element with the same id, reporting whether there was one
func replace(notes []Note, n Note) bool {
	for i := range notes {
		if notes[i].Id == n.Id {
			notes[i] = n
			return true
		}
	}
	return false
}

// noCache is used when the service runs without a cache, every read misses and writes are dropped
type noCache struct{}

func (noCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (noCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (noCache) Delete(context.Context, ...string) error { return nil }

func (noCache) Patch(context.Context, string, func([]byte) ([]byte, error)) (bool, error) {
	return false, nil
}
