package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/wagebar/internal/models"
	"github.com/julianstephens/wagebar/internal/storage"
	"github.com/julianstephens/wagebar/internal/storage/postgres"
	"github.com/julianstephens/wagebar/internal/storage/sqlite"
)

func setupContext(t *testing.T) (*Context, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "wagebar.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return &Context{Store: store}, dbPath
}

func TestLoadSessionEmpty(t *testing.T) {
	ctx, _ := setupContext(t)

	if err := ctx.LoadSession(); err != nil {
		t.Fatalf("LoadSession() failed: %v", err)
	}
	if _, loaded := ctx.Slot.Current(); loaded {
		t.Error("expected an empty slot for a fresh store")
	}
}

func TestLoadSessionConfigured(t *testing.T) {
	ctx, _ := setupContext(t)
	if err := ctx.Store.SaveSettings(models.WorkSettings{WorkStart: "09:00", WorkEnd: "18:00"}); err != nil {
		t.Fatal(err)
	}

	if err := ctx.LoadSession(); err != nil {
		t.Fatalf("LoadSession() failed: %v", err)
	}
	ws, loaded := ctx.Slot.Current()
	if !loaded || ws.WorkStart != "09:00" {
		t.Errorf("slot = %+v (loaded %v)", ws, loaded)
	}
}

func TestPerformAutomaticBackup(t *testing.T) {
	ctx, dbPath := setupContext(t)

	ctx.PerformAutomaticBackup()

	entries, err := os.ReadDir(filepath.Join(filepath.Dir(dbPath), "backups"))
	if err != nil {
		t.Fatalf("backup directory missing: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 backup, got %d", len(entries))
	}
}

func TestBackupsUnsupportedForPostgres(t *testing.T) {
	ctx := &Context{Store: postgres.New("postgres://worker@localhost/wagebar")}

	if ctx.IsFileStore() {
		t.Error("postgres store reported as file store")
	}
	if _, err := ctx.Backups(); err == nil {
		t.Error("expected Backups() to fail for postgres")
	}
	// Must not panic or touch the network.
	ctx.PerformAutomaticBackup()
}

func TestContextDefaults(t *testing.T) {
	var buf bytes.Buffer
	fixed := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	ctx := &Context{Out: &buf, Clock: func() time.Time { return fixed }}

	ctx.Printf("%s\n", "hello")
	if buf.String() != "hello\n" {
		t.Errorf("Printf wrote %q", buf.String())
	}
	if !ctx.Now().Equal(fixed) {
		t.Errorf("Now() = %v, want %v", ctx.Now(), fixed)
	}

	ctx.ConfigDir = "/tmp/wagebar-test"
	if ctx.ResolveConfigDir() != "/tmp/wagebar-test" {
		t.Errorf("ResolveConfigDir() = %q", ctx.ResolveConfigDir())
	}
}

type uninitializedStore struct {
	storage.Provider
	inits int
}

func (s *uninitializedStore) Load() error { return storage.ErrNotInitialized }
func (s *uninitializedStore) Init() error { s.inits++; return nil }

func TestEnsureSessionCreatesMissingStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "wagebar.db")
	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() { store.Close() })
	ctx := &Context{Store: store}

	if err := ctx.LoadSession(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Fatalf("LoadSession() error = %v, want ErrNotInitialized", err)
	}

	if err := ctx.EnsureSession(); err != nil {
		t.Fatalf("EnsureSession() failed: %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database file was not created: %v", err)
	}
	if _, loaded := ctx.Slot.Current(); loaded {
		t.Error("a freshly created store should leave the slot empty")
	}

	// The new store is usable right away.
	if err := ctx.Slot.Save(ctx.Store, models.WorkSettings{WorkStart: "09:00", WorkEnd: "18:00"}); err != nil {
		t.Errorf("Save() after first run failed: %v", err)
	}
}

func TestEnsureSessionExistingStore(t *testing.T) {
	ctx, _ := setupContext(t)
	if err := ctx.Store.SaveSettings(models.WorkSettings{WorkStart: "08:00", WorkEnd: "17:00"}); err != nil {
		t.Fatal(err)
	}

	if err := ctx.EnsureSession(); err != nil {
		t.Fatalf("EnsureSession() failed: %v", err)
	}
	if ws, _ := ctx.Slot.Current(); ws.WorkStart != "08:00" {
		t.Errorf("expected saved settings to load, got %+v", ws)
	}
}

func TestEnsureSessionLeavesRemoteStoresAlone(t *testing.T) {
	store := &uninitializedStore{}
	ctx := &Context{Store: store}

	if err := ctx.EnsureSession(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("EnsureSession() error = %v, want ErrNotInitialized", err)
	}
	if store.inits != 0 {
		t.Errorf("Init called %d times on a non-file store", store.inits)
	}
}
