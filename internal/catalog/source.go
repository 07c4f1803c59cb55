package catalog

import (
	"context"
	"fmt"
	"maps"
)

// Source selects where a catalog is read from. With nothing set the builtin
// catalog is used.
type Source struct {
	Path        string // TOML catalog file
	Driver      string // SQL driver, used when DSN is set
	DSN         string
	AliasesPath string // extra [aliases] table merged over the source's own
}

// Describe returns a short human-readable name for the source.
func (s Source) Describe() string {
	switch {
	case s.DSN != "":
		return s.Driver + " " + s.DSN
	case s.Path != "":
		return s.Path
	default:
		return "builtin"
	}
}

// WatchPaths returns the files a watcher should follow for this source.
func (s Source) WatchPaths() []string {
	var out []string
	if s.DSN == "" && s.Path != "" {
		out = append(out, s.Path)
	}
	if s.AliasesPath != "" {
		out = append(out, s.AliasesPath)
	}
	return out
}

// Load reads the catalog named by src.
func Load(ctx context.Context, src Source) (*File, error) {
	var (
		f   *File
		err error
	)
	switch {
	case src.DSN != "":
		driver := src.Driver
		if driver == "" {
			driver = DriverSQLite
		}
		var st *Store
		st, err = OpenStore(ctx, driver, src.DSN)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		f, err = st.Load(ctx)
	case src.Path != "":
		f, err = LoadFile(src.Path)
	default:
		f, err = Builtin()
	}
	if err != nil {
		return nil, err
	}
	if len(f.Ragas) == 0 {
		return nil, fmt.Errorf("catalog: %s: %w", src.Describe(), ErrNoCatalog)
	}

	if src.AliasesPath != "" {
		extra, err := LoadAliases(src.AliasesPath)
		if err != nil {
			return nil, err
		}
		if f.Aliases == nil {
			f.Aliases = make(map[string]string, len(extra))
		}
		maps.Copy(f.Aliases, extra)
	}
	return f, nil
}
