// Package notetest provides an in memory note store for tests of the packages built on top of it.
package notetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ribgsilva/fundoo-notes/persistence/v1/note"
)

// Store keeps notes, collaborators, labels and users in maps
type Store struct {
	mu sync.Mutex

	err       error
	listCalls int

	nextNote      uint64
	nextLabel     uint64
	notes         map[uint64]note.Note
	collaborators map[uint64]map[uint64]struct{}
	noteLabels    map[uint64]map[uint64]struct{}
	labelOwners   map[uint64]uint64
	users         map[uint64]struct{}
	now           func() time.Time
}

func NewStore() *Store {
	return &Store{
		notes:         map[uint64]note.Note{},
		collaborators: map[uint64]map[uint64]struct{}{},
		noteLabels:    map[uint64]map[uint64]struct{}{},
		labelOwners:   map[uint64]uint64{},
		users:         map[uint64]struct{}{},
		now:           func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
}

// AddUsers registers ids that can be resolved as collaborators
func (s *Store) AddUsers(ids ...uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.users[id] = struct{}{}
	}
}

// AddLabel creates a label owned by ownerID and returns its id
func (s *Store) AddLabel(ownerID uint64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextLabel++
	s.labelOwners[s.nextLabel] = ownerID
	return s.nextLabel
}

// SetErr makes every following call fail with err, nil restores the store
func (s *Store) SetErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Calls returns how many times ListVisible was called
func (s *Store) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls
}

func (s *Store) Insert(_ context.Context, newN note.NewNote) (note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return note.Note{}, s.err
	}

	s.nextNote++
	now := s.now()
	n := note.Note{
		Id:          s.nextNote,
		Title:       newN.Title,
		Description: newN.Description,
		Color:       newN.Color,
		Image:       newN.Image,
		Reminder:    newN.Reminder,
		OwnerId:     newN.OwnerId,
		UpdatedAt:   now,
		CreatedAt:   now,
	}
	s.notes[n.Id] = n
	return s.get(n.Id), nil
}

func (s *Store) FindByID(_ context.Context, id uint64) (note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return note.Note{}, s.err
	}
	return s.get(id), nil
}

func (s *Store) ListVisible(_ context.Context, userID uint64) ([]note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.err != nil {
		return nil, s.err
	}

	notes := make([]note.Note, 0)
	for id, n := range s.notes {
		_, shared := s.collaborators[id][userID]
		if n.OwnerId == userID || shared {
			notes = append(notes, s.get(id))
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].Id < notes[j].Id })
	return notes, nil
}

func (s *Store) Update(_ context.Context, id uint64, upd note.UpdateNote) (note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return note.Note{}, s.err
	}

	n, ok := s.notes[id]
	if !ok {
		return note.Note{}, nil
	}
	if upd.Title != nil {
		n.Title = *upd.Title
	}
	if upd.Description != nil {
		n.Description = *upd.Description
	}
	if upd.Color != nil {
		n.Color = *upd.Color
	}
	if upd.Image != nil {
		n.Image = *upd.Image
	}
	if upd.Reminder != nil || upd.ClearReminder {
		n.Reminder = upd.Reminder
	}
	n.UpdatedAt = s.now()
	s.notes[id] = n
	return s.get(id), nil
}

func (s *Store) ToggleArchive(_ context.Context, id uint64) (note.Note, error) {
	return s.toggle(id, func(n *note.Note) { n.IsArchive = !n.IsArchive })
}

func (s *Store) ToggleTrash(_ context.Context, id uint64) (note.Note, error) {
	return s.toggle(id, func(n *note.Note) { n.IsTrash = !n.IsTrash })
}

func (s *Store) toggle(id uint64, flip func(n *note.Note)) (note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return note.Note{}, s.err
	}

	n, ok := s.notes[id]
	if !ok {
		return note.Note{}, nil
	}
	flip(&n)
	n.UpdatedAt = s.now()
	s.notes[id] = n
	return s.get(id), nil
}

func (s *Store) Delete(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	delete(s.notes, id)
	delete(s.collaborators, id)
	delete(s.noteLabels, id)
	return nil
}

func (s *Store) Collaborators(_ context.Context, noteID uint64) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return sorted(s.collaborators[noteID]), nil
}

func (s *Store) AddCollaborators(_ context.Context, noteID uint64, userIDs []uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.collaborators[noteID]; !ok {
		s.collaborators[noteID] = map[uint64]struct{}{}
	}
	for _, u := range userIDs {
		s.collaborators[noteID][u] = struct{}{}
	}
	return nil
}

func (s *Store) RemoveCollaborators(_ context.Context, noteID uint64, userIDs []uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	for _, u := range userIDs {
		delete(s.collaborators[noteID], u)
	}
	return nil
}

func (s *Store) ExistingUsers(_ context.Context, userIDs []uint64) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	found := map[uint64]struct{}{}
	for _, u := range userIDs {
		if _, ok := s.users[u]; ok {
			found[u] = struct{}{}
		}
	}
	return sorted(found), nil
}

func (s *Store) OwnedLabels(_ context.Context, ownerID uint64, labelIDs []uint64) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	owned := map[uint64]struct{}{}
	for _, l := range labelIDs {
		if owner, ok := s.labelOwners[l]; ok && owner == ownerID {
			owned[l] = struct{}{}
		}
	}
	return sorted(owned), nil
}

func (s *Store) AddLabels(_ context.Context, noteID uint64, labelIDs []uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.noteLabels[noteID]; !ok {
		s.noteLabels[noteID] = map[uint64]struct{}{}
	}
	for _, l := range labelIDs {
		s.noteLabels[noteID][l] = struct{}{}
	}
	return nil
}

func (s *Store) RemoveLabels(_ context.Context, noteID uint64, labelIDs []uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	for _, l := range labelIDs {
		delete(s.noteLabels[noteID], l)
	}
	return nil
}

// get must be called with mu held, a missing id gives the zero note like the mysql store
func (s *Store) get(id uint64) note.Note {
	n, ok := s.notes[id]
	if !ok {
		return note.Note{}
	}
	if labels := sorted(s.noteLabels[id]); len(labels) > 0 {
		n.Labels = labels
	} else {
		n.Labels = nil
	}
	return n
}

func sorted(set map[uint64]struct{}) []uint64 {
	out := make([]uint64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
