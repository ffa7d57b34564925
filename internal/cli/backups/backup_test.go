package backups

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/wagebar/internal/backup"
	"github.com/julianstephens/wagebar/internal/cli"
	"github.com/julianstephens/wagebar/internal/models"
	"github.com/julianstephens/wagebar/internal/storage/postgres"
	"github.com/julianstephens/wagebar/internal/storage/sqlite"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "wagebar.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	var out bytes.Buffer
	return &cli.Context{Store: store, Out: &out}, &out, dbPath
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, out, _ := setupTestContext(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No backups found") {
		t.Errorf("unexpected empty list output: %q", out.String())
	}

	out.Reset()
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(out.String(), "Backup created: wagebar-") {
		t.Errorf("unexpected create output: %q", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "1 total") {
		t.Errorf("expected one backup listed, got %q", out.String())
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, out, dbPath := setupTestContext(t)

	if err := ctx.Store.SaveSettings(models.WorkSettings{WorkStart: "09:00", WorkEnd: "18:00"}); err != nil {
		t.Fatal(err)
	}
	backupPath, err := backup.NewManager(dbPath).CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	if err := ctx.Store.SaveSettings(models.WorkSettings{WorkStart: "07:00", WorkEnd: "15:00"}); err != nil {
		t.Fatal(err)
	}

	cmd := &BackupRestoreCmd{BackupFile: filepath.Base(backupPath), Yes: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("restore failed: %v\n%s", err, out.String())
	}

	if err := ctx.Store.Load(); err != nil {
		t.Fatalf("reload after restore failed: %v", err)
	}
	ws, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if ws.WorkStart != "09:00" {
		t.Errorf("WorkStart = %q after restore, want 09:00", ws.WorkStart)
	}
}

func TestBackupRestoreCancelled(t *testing.T) {
	ctx, out, dbPath := setupTestContext(t)
	backupPath, err := backup.NewManager(dbPath).CreateBackup()
	if err != nil {
		t.Fatal(err)
	}

	ctx.In = strings.NewReader("n\n")
	if err := (&BackupRestoreCmd{BackupFile: backupPath}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Restore cancelled") {
		t.Errorf("expected cancellation, got %q", out.String())
	}
}

func TestBackupRestoreMissing(t *testing.T) {
	ctx, _, _ := setupTestContext(t)

	if err := (&BackupRestoreCmd{BackupFile: "wagebar-19990101-0000.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected an error for a missing backup")
	}
}

func TestBackupCommandsRejectPostgres(t *testing.T) {
	ctx := &cli.Context{Store: postgres.New("postgres://worker@localhost/wagebar"), Out: &bytes.Buffer{}}

	if err := (&BackupCreateCmd{}).Run(ctx); err == nil {
		t.Error("expected backup create to fail for postgres")
	}
	if err := (&BackupListCmd{}).Run(ctx); err == nil {
		t.Error("expected backup list to fail for postgres")
	}
}
