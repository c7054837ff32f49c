package storage

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"collectibles/internal/config"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestStoresRoundTrip(t *testing.T) {
	fileStore, err := NewFileStore(filepath.Join(t.TempDir(), "nested", "state.json"))
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	tests := []struct {
		name  string
		store Store
	}{
		{name: "memory", store: NewMemoryStore()},
		{name: "file", store: fileStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if _, ok, err := tt.store.Get(ctx, "missing"); err != nil || ok {
				t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
			}
			if err := tt.store.Set(ctx, "k", []byte(`{"a":1}`)); err != nil {
				t.Fatalf("set: %v", err)
			}
			got, ok, err := tt.store.Get(ctx, "k")
			if err != nil || !ok || string(got) != `{"a":1}` {
				t.Fatalf("unexpected get: %q ok=%v err=%v", got, ok, err)
			}
			if err := tt.store.Delete(ctx, "k"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if err := tt.store.Delete(ctx, "k"); err != nil {
				t.Fatalf("second delete: %v", err)
			}
			if _, ok, _ := tt.store.Get(ctx, "k"); ok {
				t.Fatal("expected key to be gone")
			}
			if err := tt.store.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}
			if err := tt.store.Set(ctx, "k", nil); err != ErrClosed {
				t.Fatalf("expected ErrClosed, got %v", err)
			}
		})
	}
}

func TestKeysByPrefix(t *testing.T) {
	fileStore, err := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	tests := []struct {
		name  string
		store Store
	}{
		{name: "memory", store: NewMemoryStore()},
		{name: "file", store: fileStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			defer tt.store.Close()
			for _, k := range []string{"app:user-token", "other:user-token", "app:*notice", "app:user-info"} {
				if err := tt.store.Set(ctx, k, []byte(`"v"`)); err != nil {
					t.Fatalf("set %s: %v", k, err)
				}
			}

			got, err := tt.store.Keys(ctx, "app:")
			if err != nil {
				t.Fatalf("keys: %v", err)
			}
			want := []string{"app:*notice", "app:user-info", "app:user-token"}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("expected %v, got %v", want, got)
			}

			local := NewLocal(tt.store, "app:")
			short, err := local.Keys(ctx)
			if err != nil {
				t.Fatalf("local keys: %v", err)
			}
			if !reflect.DeepEqual(short, []string{"*notice", "user-info", "user-token"}) {
				t.Errorf("expected prefix to be stripped, got %v", short)
			}

			if got, _ := tt.store.Keys(ctx, "none:"); len(got) != 0 {
				t.Errorf("expected no keys, got %v", got)
			}
		})
	}
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	ctx := context.Background()

	first, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Set(ctx, "user-token", []byte(`"abc"`)); err != nil {
		t.Fatal(err)
	}

	second, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	got, ok, err := second.Get(ctx, "user-token")
	if err != nil || !ok || string(got) != `"abc"` {
		t.Fatalf("expected persisted value, got %q ok=%v err=%v", got, ok, err)
	}
}

func TestLocalRoundTripAndExpiry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	mem := NewMemoryStore()
	local := NewLocal(mem, "test:", WithClock(clock.Now))

	type profile struct {
		Nickname string   `json:"nickname"`
		Tags     []string `json:"tags"`
	}
	want := profile{Nickname: "amy", Tags: []string{"a", "b"}}

	if err := local.Set(ctx, "user-info", want, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got profile
	ok, err := local.Get(ctx, "user-info", &got)
	if err != nil || !ok {
		t.Fatalf("expected value, got ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}

	clock.Advance(59 * time.Second)
	if def := Value(ctx, local, "user-info", profile{Nickname: "default"}); def.Nickname != "amy" {
		t.Errorf("expected value before expiry, got %+v", def)
	}

	clock.Advance(time.Second)
	def := Value(ctx, local, "user-info", profile{Nickname: "default"})
	if def.Nickname != "default" {
		t.Errorf("expected default after expiry, got %+v", def)
	}
	if _, ok, _ := mem.Get(ctx, "test:user-info"); ok {
		t.Error("expected expired key to be removed from the store")
	}
}

func TestLocalWithoutExpiry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Now()}
	local := NewLocal(NewMemoryStore(), "", WithClock(clock.Now))

	if err := local.Set(ctx, "k", 42, 0); err != nil {
		t.Fatal(err)
	}
	clock.Advance(24 * 365 * time.Hour)
	if got := Value(ctx, local, "k", 0); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	if exp, err := local.ExpiresAt(ctx, "k"); err != nil || !exp.IsZero() {
		t.Errorf("expected no expiry, got %v err=%v", exp, err)
	}
}

func TestLocalSetUntilInThePastRemoves(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	local := NewLocal(NewMemoryStore(), "", WithClock(clock.Now))

	_ = local.Set(ctx, "k", "v", 0)
	if err := local.SetUntil(ctx, "k", "v2", clock.now.Add(-time.Second)); err != nil {
		t.Fatal(err)
	}
	if got := Value(ctx, local, "k", "none"); got != "none" {
		t.Errorf("expected key removed, got %q", got)
	}
}

func TestLocalReadsLegacyRawString(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore()
	_ = mem.Set(ctx, "user-token", []byte("raw-token-value"))
	local := NewLocal(mem, "")

	if got := Value(ctx, local, "user-token", ""); got != "raw-token-value" {
		t.Errorf("expected raw token, got %q", got)
	}
}

func TestNewStore(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
		check   func(Store) bool
	}{
		{name: "memory", cfg: config.Config{StateStore: "memory"}, check: func(s Store) bool { _, ok := s.(*MemoryStore); return ok }},
		{name: "default file", cfg: config.Config{StateFile: filepath.Join(t.TempDir(), "s.json")}, check: func(s Store) bool { _, ok := s.(*FileStore); return ok }},
		{name: "redis without addr", cfg: config.Config{StateStore: "redis"}, wantErr: true},
		{name: "redis unreachable", cfg: config.Config{StateStore: "redis", StateRedisAddr: "127.0.0.1:1"}, wantErr: true},
		{name: "mysql without dsn", cfg: config.Config{StateStore: "mysql"}, wantErr: true},
		{name: "unknown", cfg: config.Config{StateStore: "etcd"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewStore(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.check(store) {
				t.Errorf("unexpected store type %T", store)
			}
		})
	}
}

func TestSQLStoreSQLite(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(config.Config{
		StateStore:  TypeSQLite,
		StateDBPath: filepath.Join(t.TempDir(), "db", "state.db"),
	})
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	defer store.Close()

	sqlStore, ok := store.(*SQLStore)
	if !ok {
		t.Fatalf("unexpected store type %T", store)
	}

	if _, ok, err := sqlStore.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	for key, value := range map[string]string{"a_1": "one", "a_2": "two", "ab": "three"} {
		if err := sqlStore.Set(ctx, key, []byte(value)); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}
	if err := sqlStore.Set(ctx, "a_1", []byte("uno")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, ok, err := sqlStore.Get(ctx, "a_1")
	if err != nil || !ok || string(got) != "uno" {
		t.Fatalf("unexpected get: %q ok=%v err=%v", got, ok, err)
	}

	// "_" is a LIKE wildcard and must match literally.
	keys, err := sqlStore.Keys(ctx, "a_")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if !reflect.DeepEqual(keys, []string{"a_1", "a_2"}) {
		t.Errorf("unexpected keys %v", keys)
	}

	if err := sqlStore.Delete(ctx, "a_1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := sqlStore.Get(ctx, "a_1"); ok {
		t.Fatal("expected key to be gone")
	}
}
