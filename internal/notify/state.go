// Package notify keeps notification read state and preferences on the
// device. Nothing here is sent to the server.
package notify

import (
	"context"
	"sort"
	"sync"

	"collectibles/internal/entity/common"
	"collectibles/internal/entity/dto"
	"collectibles/internal/storage"
)

// Key is the storage key holding the notification state.
const Key = "notice-state"

// maxReadIDs caps the remembered read set; older IDs are dropped first.
const maxReadIDs = 500

// Settings are the user's notification preferences.
type Settings struct {
	Sound      bool     `json:"sound"`
	Vibrate    bool     `json:"vibrate"`
	MutedTypes []string `json:"muted_types,omitempty"`
}

// DefaultSettings is used until the user changes anything.
func DefaultSettings() Settings {
	return Settings{Sound: true, Vibrate: true}
}

// Muted reports whether notices of kind are muted.
func (s Settings) Muted(kind string) bool {
	for _, m := range s.MutedTypes {
		if m == kind {
			return true
		}
	}
	return false
}

type document struct {
	ReadIDs  []common.ID `json:"read_ids"`
	Settings Settings    `json:"settings"`
}

// State reads and writes the notice-state key. Methods are safe for
// concurrent use within one process.
type State struct {
	mu    sync.Mutex
	local *storage.Local
}

// New returns a State backed by local.
func New(local *storage.Local) *State {
	return &State{local: local}
}

func (s *State) load(ctx context.Context) document {
	return storage.Value(ctx, s.local, Key, document{Settings: DefaultSettings()})
}

func (s *State) save(ctx context.Context, doc document) error {
	return s.local.Set(ctx, Key, doc, 0)
}

// MarkRead records ids as read.
func (s *State) MarkRead(ctx context.Context, ids ...common.ID) error {
	if len(ids) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load(ctx)
	seen := make(map[common.ID]struct{}, len(doc.ReadIDs))
	for _, id := range doc.ReadIDs {
		seen[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == 0 {
			continue
		}
		seen[id] = struct{}{}
		doc.ReadIDs = append(doc.ReadIDs, id)
	}
	if over := len(doc.ReadIDs) - maxReadIDs; over > 0 {
		doc.ReadIDs = doc.ReadIDs[over:]
	}
	return s.save(ctx, doc)
}

// MarkAllRead records every notice in the list as read.
func (s *State) MarkAllRead(ctx context.Context, notices []dto.Notice) error {
	ids := make([]common.ID, 0, len(notices))
	for _, n := range notices {
		ids = append(ids, n.ID)
	}
	return s.MarkRead(ctx, ids...)
}

// IsRead reports whether id was marked read.
func (s *State) IsRead(ctx context.Context, id common.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, read := range s.load(ctx).ReadIDs {
		if read == id {
			return true
		}
	}
	return false
}

// Unread returns the notices not yet read, skipping muted types.
func (s *State) Unread(ctx context.Context, notices []dto.Notice) []dto.Notice {
	s.mu.Lock()
	doc := s.load(ctx)
	s.mu.Unlock()

	read := make(map[common.ID]struct{}, len(doc.ReadIDs))
	for _, id := range doc.ReadIDs {
		read[id] = struct{}{}
	}
	var out []dto.Notice
	for _, n := range notices {
		if _, ok := read[n.ID]; ok || doc.Settings.Muted(n.Type) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// UnreadCount is len(Unread(...)).
func (s *State) UnreadCount(ctx context.Context, notices []dto.Notice) int {
	return len(s.Unread(ctx, notices))
}

// Settings returns the stored preferences.
func (s *State) Settings(ctx context.Context) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx).Settings
}

// UpdateSettings replaces the preferences.
func (s *State) UpdateSettings(ctx context.Context, settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.load(ctx)
	muted := append([]string(nil), settings.MutedTypes...)
	sort.Strings(muted)
	settings.MutedTypes = muted
	doc.Settings = settings
	return s.save(ctx, doc)
}

// Reset forgets read state and preferences.
func (s *State) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.local.Remove(ctx, Key)
}
