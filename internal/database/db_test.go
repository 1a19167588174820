package database

import (
	"strings"
	"testing"
)

func TestNewMySQLConfig_DSN(t *testing.T) {
	dsn := newMySQLConfig("app", "secret", "localhost", "3306", "nightwalk").FormatDSN()

	for _, want := range []string{
		"tcp(localhost:3306)",
		"/nightwalk",
		"parseTime=true",
		"loc=UTC",
		// Guarded UPDATEs count matched rows; without this an identical
		// resubmission inside the same second reads as zero rows and
		// surfaces a false conflict.
		"clientFoundRows=true",
		"charset=utf8mb4",
	} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("dsn %q missing %q", dsn, want)
		}
	}
}
