package backend

import (
	"context"
	"errors"
	"testing"

	"github.com/feewise/feewise/pkg/config"
	"github.com/feewise/feewise/pkg/db/migrate"
	"github.com/feewise/feewise/pkg/proto"
	"github.com/feewise/feewise/pkg/store"
	"github.com/feewise/feewise/pkg/store/database"
	"github.com/feewise/feewise/pkg/test"
	"github.com/matryer/is"
)

func setupBackend(t *testing.T) (context.Context, *Backend) {
	t.Helper()
	ctx := context.TODO()
	cfg := config.DefaultConfig()
	cfg.DataPath = t.TempDir()
	ctx = config.WithContext(ctx, cfg)

	dbx, err := test.OpenSqlite(ctx, t)
	if err != nil {
		t.Fatal(err)
	}
	if err := migrate.Migrate(ctx, dbx); err != nil {
		t.Fatal(err)
	}

	dbstore := database.New(ctx, dbx)
	ctx = store.WithContext(ctx, dbstore)
	b := New(ctx, cfg, dbx)
	ctx = WithContext(ctx, b)
	return ctx, b
}

func TestCreateFeeType(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	ft, err := b.CreateFeeType(ctx, "  Tuition  ", store.CreateFeeTypeOptions{Code: "TUITION"})
	is.NoErr(err)
	is.Equal(ft.Name, "Tuition") // name is sanitized
	is.Equal(ft.IsPrivate, false)
	is.Equal(ft.OwnerOrgID.Valid, false)
	is.Equal(ft.Code.String, "TUITION")

	_, err = b.CreateFeeType(ctx, "   ", store.CreateFeeTypeOptions{})
	is.True(errors.Is(err, proto.ErrMissingName))

	_, err = b.CreateFeeType(ctx, "Lab Fee", store.CreateFeeTypeOptions{Code: "1bad"})
	is.True(errors.Is(err, proto.ErrInvalidCode))
}

func TestCreatePrivateFeeTypeEnablesOwner(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	org, err := b.CreateOrganization(ctx, "Greenfield")
	is.NoErr(err)

	ft, err := b.CreateFeeType(ctx, "Robotics Club", store.CreateFeeTypeOptions{OwnerOrgID: &org.ID})
	is.NoErr(err)
	is.Equal(ft.IsPrivate, true)
	is.Equal(ft.OwnerOrgID.Int64, org.ID)

	ids, err := b.EnabledFeeTypeIDs(ctx, org.ID)
	is.NoErr(err)
	is.Equal(ids, []int64{ft.ID})
}

func TestCreatePrivateFeeTypeUnknownOwner(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	owner := int64(999)
	_, err := b.CreateFeeType(ctx, "Ghost", store.CreateFeeTypeOptions{OwnerOrgID: &owner})
	is.True(errors.Is(err, proto.ErrOrgNotFound))

	// Nothing should have been committed.
	fts, err := b.FeeTypes(ctx, store.FeeTypeFilter{IncludeDeleted: true, IncludePrivate: true})
	is.NoErr(err)
	is.Equal(len(fts), 0)
}

func TestEnableFeeTypesIdempotent(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	org, err := b.CreateOrganization(ctx, "Greenfield")
	is.NoErr(err)
	ft, err := b.CreateFeeType(ctx, "Tuition", store.CreateFeeTypeOptions{})
	is.NoErr(err)

	is.NoErr(b.EnableFeeTypes(ctx, org.ID, ft.ID))
	is.NoErr(b.EnableFeeTypes(ctx, org.ID, ft.ID))

	ids, err := b.EnabledFeeTypeIDs(ctx, org.ID)
	is.NoErr(err)
	is.Equal(ids, []int64{ft.ID})
}

func TestEnableFeeTypesNotFound(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	org, err := b.CreateOrganization(ctx, "Greenfield")
	is.NoErr(err)

	err = b.EnableFeeTypes(ctx, 999, 1)
	is.True(errors.Is(err, proto.ErrOrgNotFound))

	err = b.EnableFeeTypes(ctx, org.ID, 999)
	is.True(errors.Is(err, proto.ErrFeeTypeNotFound))
}

func TestUpdateFeeType(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	ft, err := b.CreateFeeType(ctx, "Tuition", store.CreateFeeTypeOptions{})
	is.NoErr(err)

	_, err = b.UpdateFeeType(ctx, ft.ID, store.UpdateFeeTypeParams{})
	is.True(errors.Is(err, proto.ErrNoFields))

	name := "Term Tuition"
	got, err := b.UpdateFeeType(ctx, ft.ID, store.UpdateFeeTypeParams{Name: &name})
	is.NoErr(err)
	is.Equal(got.Name, "Term Tuition")

	_, err = b.UpdateFeeType(ctx, 999, store.UpdateFeeTypeParams{Name: &name})
	is.True(errors.Is(err, proto.ErrFeeTypeNotFound))
}

func TestCheckRemovalGlobal(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	org, err := b.CreateOrganization(ctx, "Greenfield")
	is.NoErr(err)
	ft, err := b.CreateFeeType(ctx, "Tuition", store.CreateFeeTypeOptions{})
	is.NoErr(err)
	is.NoErr(b.EnableFeeTypes(ctx, org.ID, ft.ID))

	check, err := b.CheckRemoval(ctx, org.ID, ft.ID)
	is.NoErr(err)
	is.Equal(check.WillDelete, false)
	is.Equal(check.IsPrivate, false)
	is.Equal(check.HasUsage, false)
	is.Equal(check.UsageCount, int64(0))
	is.Equal(check.FeeTypeName, "Tuition")
	is.True(check.Message != "")

	// Checking is read-only, the enabled set is untouched.
	again, err := b.CheckRemoval(ctx, org.ID, ft.ID)
	is.NoErr(err)
	is.Equal(check, again)
	ids, err := b.EnabledFeeTypeIDs(ctx, org.ID)
	is.NoErr(err)
	is.Equal(ids, []int64{ft.ID})
}

func TestCheckRemovalUsage(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	org, err := b.CreateOrganization(ctx, "Greenfield")
	is.NoErr(err)
	ft, err := b.CreateFeeType(ctx, "Tuition", store.CreateFeeTypeOptions{})
	is.NoErr(err)
	is.NoErr(b.EnableFeeTypes(ctx, org.ID, ft.ID))
	ay, err := b.CreateAcademicYear(ctx, "2026-27")
	is.NoErr(err)

	_, err = b.CreateFeeItem(ctx, store.CreateFeeItemParams{
		OrgID:          org.ID,
		AcademicYearID: ay.ID,
		FeeTypeID:      ft.ID,
		Name:           "Term 1 Tuition",
		AmountPaise:    1500000,
	})
	is.NoErr(err)

	check, err := b.CheckRemoval(ctx, org.ID, ft.ID)
	is.NoErr(err)
	is.Equal(check.HasUsage, true)
	is.Equal(check.UsageCount, int64(1))
}

func TestCheckRemovalNotOwner(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	owner, err := b.CreateOrganization(ctx, "Greenfield")
	is.NoErr(err)
	other, err := b.CreateOrganization(ctx, "Hillside")
	is.NoErr(err)
	ft, err := b.CreateFeeType(ctx, "Robotics Club", store.CreateFeeTypeOptions{OwnerOrgID: &owner.ID})
	is.NoErr(err)

	_, err = b.CheckRemoval(ctx, other.ID, ft.ID)
	is.True(errors.Is(err, proto.ErrNotOwner))
}

func TestRemoveGlobalLeavesOthersUntouched(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	org1, err := b.CreateOrganization(ctx, "Greenfield")
	is.NoErr(err)
	org2, err := b.CreateOrganization(ctx, "Hillside")
	is.NoErr(err)
	ft, err := b.CreateFeeType(ctx, "Tuition", store.CreateFeeTypeOptions{})
	is.NoErr(err)
	is.NoErr(b.EnableFeeTypes(ctx, org1.ID, ft.ID))
	is.NoErr(b.EnableFeeTypes(ctx, org2.ID, ft.ID))

	check, err := b.RemoveOrDelete(ctx, org1.ID, ft.ID)
	is.NoErr(err)
	is.Equal(check.WillDelete, false)

	ids1, err := b.EnabledFeeTypeIDs(ctx, org1.ID)
	is.NoErr(err)
	is.Equal(len(ids1), 0)

	ids2, err := b.EnabledFeeTypeIDs(ctx, org2.ID)
	is.NoErr(err)
	is.Equal(ids2, []int64{ft.ID})

	// The row itself survives.
	got, err := b.FeeType(ctx, ft.ID)
	is.NoErr(err)
	is.Equal(got.IsDeleted, false)
}

func TestDeletePrivateClearsEverySet(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	owner, err := b.CreateOrganization(ctx, "Greenfield")
	is.NoErr(err)
	other, err := b.CreateOrganization(ctx, "Hillside")
	is.NoErr(err)
	ft, err := b.CreateFeeType(ctx, "Robotics Club", store.CreateFeeTypeOptions{OwnerOrgID: &owner.ID})
	is.NoErr(err)
	is.NoErr(b.EnableFeeTypes(ctx, other.ID, ft.ID))

	check, err := b.RemoveOrDelete(ctx, owner.ID, ft.ID)
	is.NoErr(err)
	is.Equal(check.WillDelete, true)

	got, err := b.FeeType(ctx, ft.ID)
	is.NoErr(err)
	is.Equal(got.IsDeleted, true)
	is.Equal(got.DeletedAt.Valid, true)

	for _, org := range []int64{owner.ID, other.ID} {
		ids, err := b.EnabledFeeTypeIDs(ctx, org)
		is.NoErr(err)
		is.Equal(len(ids), 0)
	}
}

func TestRestorePrivateFeeType(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	owner, err := b.CreateOrganization(ctx, "Greenfield")
	is.NoErr(err)
	ft, err := b.CreateFeeType(ctx, "Robotics Club", store.CreateFeeTypeOptions{OwnerOrgID: &owner.ID})
	is.NoErr(err)

	_, err = b.RestoreFeeType(ctx, ft.ID, nil)
	is.True(errors.Is(err, proto.ErrNotDeleted))

	_, err = b.RemoveOrDelete(ctx, owner.ID, ft.ID)
	is.NoErr(err)

	got, err := b.RestoreFeeType(ctx, ft.ID, nil)
	is.NoErr(err)
	is.Equal(got.IsDeleted, false)
	is.Equal(got.DeletedAt.Valid, false)

	// Restore defaults the target to the owner, round-tripping the
	// enabled set back to its pre-removal state.
	ids, err := b.EnabledFeeTypeIDs(ctx, owner.ID)
	is.NoErr(err)
	is.Equal(ids, []int64{ft.ID})
}

func TestRestoreNameConflict(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	owner, err := b.CreateOrganization(ctx, "Greenfield")
	is.NoErr(err)
	ft, err := b.CreateFeeType(ctx, "Robotics Club", store.CreateFeeTypeOptions{OwnerOrgID: &owner.ID})
	is.NoErr(err)
	_, err = b.RemoveOrDelete(ctx, owner.ID, ft.ID)
	is.NoErr(err)

	// A new active type takes the name while the old one is deleted.
	_, err = b.CreateFeeType(ctx, "Robotics Club", store.CreateFeeTypeOptions{OwnerOrgID: &owner.ID})
	is.NoErr(err)

	_, err = b.RestoreFeeType(ctx, ft.ID, nil)
	is.True(errors.Is(err, proto.ErrNameTaken))
}

func TestRestoreGlobalReEnables(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	org, err := b.CreateOrganization(ctx, "Greenfield")
	is.NoErr(err)
	ft, err := b.CreateFeeType(ctx, "Tuition", store.CreateFeeTypeOptions{})
	is.NoErr(err)
	is.NoErr(b.EnableFeeTypes(ctx, org.ID, ft.ID))
	_, err = b.RemoveOrDelete(ctx, org.ID, ft.ID)
	is.NoErr(err)

	_, err = b.RestoreFeeType(ctx, ft.ID, &org.ID)
	is.NoErr(err)

	ids, err := b.EnabledFeeTypeIDs(ctx, org.ID)
	is.NoErr(err)
	is.Equal(ids, []int64{ft.ID})
}

func TestEnabledFeeTypesIncludesOwned(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	org, err := b.CreateOrganization(ctx, "Greenfield")
	is.NoErr(err)
	global, err := b.CreateFeeType(ctx, "Tuition", store.CreateFeeTypeOptions{})
	is.NoErr(err)
	is.NoErr(b.EnableFeeTypes(ctx, org.ID, global.ID))
	private, err := b.CreateFeeType(ctx, "Robotics Club", store.CreateFeeTypeOptions{OwnerOrgID: &org.ID})
	is.NoErr(err)

	fts, err := b.EnabledFeeTypes(ctx, org.ID)
	is.NoErr(err)
	is.Equal(len(fts), 2)

	seen := map[int64]bool{}
	for _, ft := range fts {
		seen[ft.ID] = true
	}
	is.True(seen[global.ID])
	is.True(seen[private.ID])
}

func TestFeeTypeStats(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	org, err := b.CreateOrganization(ctx, "Greenfield")
	is.NoErr(err)
	_, err = b.CreateFeeType(ctx, "Tuition", store.CreateFeeTypeOptions{})
	is.NoErr(err)
	_, err = b.CreateFeeType(ctx, "Transport", store.CreateFeeTypeOptions{})
	is.NoErr(err)
	_, err = b.CreateFeeType(ctx, "Robotics Club", store.CreateFeeTypeOptions{OwnerOrgID: &org.ID})
	is.NoErr(err)

	stats, err := b.FeeTypeStats(ctx, nil)
	is.NoErr(err)
	is.Equal(stats.Total, int64(3))
	is.Equal(stats.Global, int64(2))
	is.Equal(stats.Private, int64(1))

	scoped, err := b.FeeTypeStats(ctx, &org.ID)
	is.NoErr(err)
	is.Equal(scoped.OrgOwned, int64(1))
}
