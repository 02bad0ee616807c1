package cmd

import (
	"path/filepath"
	"testing"

	"github.com/hydralabs/forge/internal/config"
)

func TestSinkDestination(t *testing.T) {
	cases := []struct {
		name     string
		provider string
		outFlag  string
		want     string
	}{
		{"local default", "local", "", filepath.Join("out", "users")},
		{"local with out flag", "local", "exports", "exports"},
		{"unset provider default", "", "", filepath.Join("out", "users")},
		{"postgres gets bare table", "postgres", "", ""},
		{"sqlite gets bare table", "sqlite", "", ""},
		{"mysql with table override", "mysql", "users_staging", "users_staging"},
	}
	for _, tc := range cases {
		got := sinkDestination(tc.provider, tc.outFlag, "out", "users")
		if got != tc.want {
			t.Errorf("%s: sinkDestination = %q, want %q", tc.name, got, tc.want)
		}
	}
}

// A database sink must never receive a filesystem path as its destination;
// the destination ends up as the INSERT target table.
func TestSinkDestinationNeverPathForDatabases(t *testing.T) {
	for _, provider := range []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"} {
		dest := sinkDestination(provider, "", "out", "events")
		if filepath.Dir(dest) != "." {
			t.Errorf("provider %s: destination %q contains a path separator", provider, dest)
		}
	}
}

func TestResolveProviderFlagWins(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Sink.Provider = "local"

	if got := resolveProvider(cfg, "postgres"); got != "postgres" {
		t.Errorf("resolveProvider = %q, want flag value postgres", got)
	}
	if got := resolveProvider(cfg, ""); got != "local" {
		t.Errorf("resolveProvider = %q, want config value local", got)
	}
}
