package database

import (
	"context"
	"testing"

	"github.com/feewise/feewise/pkg/config"
	"github.com/feewise/feewise/pkg/db"
	"github.com/feewise/feewise/pkg/db/migrate"
	"github.com/feewise/feewise/pkg/store"
	"github.com/feewise/feewise/pkg/test"
	"github.com/matryer/is"
)

func setupStore(t *testing.T) (context.Context, *db.DB, store.Store) {
	t.Helper()
	ctx := context.TODO()
	ctx = config.WithContext(ctx, config.DefaultConfig())
	dbx, err := test.OpenSqlite(ctx, t)
	if err != nil {
		t.Fatal(err)
	}
	if err := migrate.Migrate(ctx, dbx); err != nil {
		t.Fatal(err)
	}
	return ctx, dbx, New(ctx, dbx)
}

func TestEnabledSetRelation(t *testing.T) {
	is := is.New(t)
	ctx, dbx, s := setupStore(t)

	org1, err := s.CreateOrg(ctx, dbx, "Greenfield")
	is.NoErr(err)
	org2, err := s.CreateOrg(ctx, dbx, "Hillside")
	is.NoErr(err)
	ft, err := s.CreateFeeType(ctx, dbx, "Tuition", store.CreateFeeTypeOptions{})
	is.NoErr(err)

	// Adding the same id twice in one transaction collapses to one row.
	err = dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		if err := s.AddEnabledFeeTypes(ctx, tx, org1.ID, ft.ID); err != nil {
			return err
		}
		return s.AddEnabledFeeTypes(ctx, tx, org1.ID, ft.ID, ft.ID)
	})
	is.NoErr(err)

	ids, err := s.EnabledFeeTypeIDs(ctx, dbx, org1.ID)
	is.NoErr(err)
	is.Equal(ids, []int64{ft.ID})

	enabled, err := s.IsFeeTypeEnabled(ctx, dbx, org1.ID, ft.ID)
	is.NoErr(err)
	is.True(enabled)

	// Removing an absent id is a no-op.
	is.NoErr(s.RemoveEnabledFeeType(ctx, dbx, org2.ID, ft.ID))

	is.NoErr(s.AddEnabledFeeTypes(ctx, dbx, org2.ID, ft.ID))
	is.NoErr(s.RemoveEnabledFeeTypeForAll(ctx, dbx, ft.ID))

	for _, org := range []int64{org1.ID, org2.ID} {
		ids, err := s.EnabledFeeTypeIDs(ctx, dbx, org)
		is.NoErr(err)
		is.Equal(len(ids), 0)
	}
}
