package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadSources(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("builtin", func(t *testing.T) {
		t.Parallel()
		f, err := Load(ctx, Source{})
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if len(f.Ragas) != 90 {
			t.Errorf("ragas = %d, want 90", len(f.Ragas))
		}
	})

	t.Run("toml with alias overlay", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "catalog.toml")
		aliases := filepath.Join(dir, "aliases.toml")
		if err := os.WriteFile(path, []byte(sampleTOML), 0o644); err != nil {
			t.Fatal(err)
		}
		overlay := "[aliases]\nHamsa = \"Hamsadhwani\"\nShankarabharanam = \"Hamsadhwani\"\n"
		if err := os.WriteFile(aliases, []byte(overlay), 0o644); err != nil {
			t.Fatal(err)
		}

		f, err := Load(ctx, Source{Path: path, AliasesPath: aliases})
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if len(f.Ragas) != 2 {
			t.Errorf("ragas = %d, want 2", len(f.Ragas))
		}
		if f.Aliases["Hamsa"] != "Hamsadhwani" || f.Aliases["Shankarabharanam"] != "Hamsadhwani" {
			t.Errorf("aliases = %v, want overlay applied", f.Aliases)
		}
	})

	t.Run("sqlite", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "catalog.db")
		st, err := OpenStore(ctx, DriverSQLite, path)
		if err != nil {
			t.Fatal(err)
		}
		f, _ := ParseFile([]byte(sampleTOML))
		if err := st.Save(ctx, f); err != nil {
			t.Fatal(err)
		}
		st.Close()

		got, err := Load(ctx, Source{DSN: path})
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if len(got.Ragas) != 2 || got.Ragas[0].Name != "Dheerasankarabharanam" {
			t.Errorf("ragas = %+v", got.Ragas)
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "empty.toml")
		if err := os.WriteFile(path, []byte("[aliases]\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(ctx, Source{Path: path})
		if !errors.Is(err, ErrNoCatalog) {
			t.Errorf("err = %v, want ErrNoCatalog", err)
		}
	})
}

func TestSourceWatchPaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  Source
		want int
	}{
		{"builtin", Source{}, 0},
		{"file", Source{Path: "c.toml"}, 1},
		{"file and aliases", Source{Path: "c.toml", AliasesPath: "a.toml"}, 2},
		{"sql ignores path", Source{Path: "c.toml", DSN: "c.db"}, 0},
	}
	for _, tt := range tests {
		if got := tt.src.WatchPaths(); len(got) != tt.want {
			t.Errorf("%s: WatchPaths = %v, want %d paths", tt.name, got, tt.want)
		}
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.toml")
	if err := os.WriteFile(path, []byte(sampleTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	// Writes to unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(sampleTOML+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ch := <-w.Changes:
		abs, _ := filepath.Abs(path)
		if ch.File != abs {
			t.Errorf("change file = %q, want %q", ch.File, abs)
		}
		if ch.Removed {
			t.Error("write reported as removal")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}
