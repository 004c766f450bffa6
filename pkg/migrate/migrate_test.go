package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("shipped migrations failed validation: %v", err)
	}
}

func TestShippedMigrationsCoverCoreTables(t *testing.T) {
	entries, err := os.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}

	var haveUsers, haveProfiles bool
	for _, e := range entries {
		b, err := os.ReadFile(filepath.Join("migrations", e.Name()))
		if err != nil {
			t.Fatalf("read %s: %v", e.Name(), err)
		}
		txt := string(b)
		if strings.Contains(txt, "CREATE TABLE users") {
			haveUsers = true
		}
		if strings.Contains(txt, "CREATE TABLE profiles") {
			haveProfiles = true
			if !strings.Contains(txt, "ON DELETE CASCADE") {
				t.Fatal("profiles table must cascade on user delete")
			}
			if !strings.Contains(txt, "UNIQUE INDEX idx_profiles_user_id") {
				t.Fatal("profiles.user_id must be unique")
			}
		}
	}
	if !haveUsers {
		t.Fatal("missing users table migration")
	}
	if !haveProfiles {
		t.Fatal("missing profiles table migration")
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateSQLMigration(dir, "Add Clearance Audit!")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_clearance_audit.sql") {
		t.Fatalf("unexpected filename %s", path)
	}

	if err := ValidateDir(dir); err != nil {
		t.Fatalf("generated migration failed validation: %v", err)
	}

	if _, err := CreateSQLMigration(dir, ""); err == nil {
		t.Fatal("expected error for empty name")
	}
}
