package migrate

import (
	"context"
	"testing"

	"github.com/feewise/feewise/pkg/config"
	"github.com/feewise/feewise/pkg/test"
)

func TestMigrate(t *testing.T) {
	ctx := config.WithContext(context.TODO(), config.DefaultConfig())
	dbx, err := test.OpenSqlite(ctx, t)
	if err != nil {
		t.Fatal(err)
	}
	if err := Migrate(ctx, dbx); err != nil {
		t.Errorf("Migrate() => %v, want nil error", err)
	}
	// Migrate is idempotent once the latest version is applied.
	if err := Migrate(ctx, dbx); err != nil {
		t.Errorf("Migrate() second run => %v, want nil error", err)
	}
}

func TestRollback(t *testing.T) {
	ctx := config.WithContext(context.TODO(), config.DefaultConfig())
	dbx, err := test.OpenSqlite(ctx, t)
	if err != nil {
		t.Fatal(err)
	}
	if err := Migrate(ctx, dbx); err != nil {
		t.Fatal(err)
	}
	if err := Rollback(ctx, dbx); err != nil {
		t.Errorf("Rollback() => %v, want nil error", err)
	}
	if err := Rollback(ctx, dbx); err == nil {
		t.Error("Rollback() with no migrations => nil, want error")
	}
}
