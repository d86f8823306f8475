package shared

import (
	"context"
	"testing"
)

func TestMigrationRunner(t *testing.T) {
	ctx := context.Background()

	t.Run("loadMigrations", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}

		if len(migrations) < 2 {
			t.Fatalf("expected at least two migrations, got %d", len(migrations))
		}

		for i := 1; i < len(migrations); i++ {
			if migrations[i].Version <= migrations[i-1].Version {
				t.Errorf("migrations not sorted: version %d comes after %d", migrations[i].Version, migrations[i-1].Version)
			}
		}

		for _, m := range migrations {
			if m.Up == "" || m.Down == "" {
				t.Errorf("migration version %d missing up or down SQL", m.Version)
			}
			if m.Name == "" {
				t.Errorf("migration version %d missing name", m.Version)
			}
		}
	})

	t.Run("RunMigrations And Rollback", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		applied, err := RunMigrations(ctx, db)
		if err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
		if applied == 0 {
			t.Error("expected at least one migration to be applied")
		}

		for _, table := range []string{"states", "cities", "amenities", "users", "places", "place_amenity"} {
			if _, err := db.Exec("SELECT 1 FROM " + table + " LIMIT 1"); err != nil {
				t.Errorf("%s table should exist after migrations: %v", table, err)
			}
		}

		version, err := RollbackMigration(ctx, db)
		if err != nil {
			t.Fatalf("failed to rollback migration: %v", err)
		}
		if version != 1 {
			t.Errorf("expected to roll back version 1, got %d", version)
		}

		if _, err := db.Exec("SELECT 1 FROM places LIMIT 1"); err == nil {
			t.Error("places table should be dropped after rollback")
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("failed to query schema_migrations after rollback: %v", err)
		}
		if count != applied-1 {
			t.Errorf("expected %d applied migrations after rollback, got %d", applied-1, count)
		}
	})

	t.Run("Rollback with nothing applied", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := createMigrationsTable(ctx, db); err != nil {
			t.Fatalf("failed to create migrations table: %v", err)
		}

		if _, err := RollbackMigration(ctx, db); err == nil {
			t.Error("expected error when no migrations are applied")
		}
	})

	t.Run("Idempotent Migrations", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if _, err := RunMigrations(ctx, db); err != nil {
			t.Fatalf("failed to run migrations first time: %v", err)
		}

		applied, err := RunMigrations(ctx, db)
		if err != nil {
			t.Fatalf("failed to run migrations second time: %v", err)
		}
		if applied != 0 {
			t.Errorf("expected no migrations on second run, got %d", applied)
		}
	})

	t.Run("MigrationStatus", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		states, err := MigrationStatus(ctx, db)
		if err != nil {
			t.Fatalf("failed to get status: %v", err)
		}
		for _, s := range states {
			if s.Applied {
				t.Errorf("migration %d should not be applied yet", s.Version)
			}
		}

		if _, err := RunMigrations(ctx, db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		states, err = MigrationStatus(ctx, db)
		if err != nil {
			t.Fatalf("failed to get status: %v", err)
		}
		for _, s := range states {
			if !s.Applied {
				t.Errorf("migration %d should be applied", s.Version)
			}
		}
	})
}

func TestSplitStatements(t *testing.T) {
	script := `-- leading comment
CREATE TABLE a (id INTEGER); -- trailing
;
INSERT INTO a (id) VALUES (1);
`
	stmts := splitStatements(script)
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(stmts), stmts)
	}
	if stmts[0] != "CREATE TABLE a (id INTEGER)" {
		t.Errorf("unexpected first statement %q", stmts[0])
	}
}
