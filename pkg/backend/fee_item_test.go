package backend

import (
	"context"
	"errors"
	"testing"

	"github.com/feewise/feewise/pkg/db/models"
	"github.com/feewise/feewise/pkg/proto"
	"github.com/feewise/feewise/pkg/store"
	"github.com/matryer/is"
)

func seedFeeItemFixtures(t *testing.T) (context.Context, *Backend, models.Organization, models.FeeType, models.AcademicYear) {
	t.Helper()
	ctx, b := setupBackend(t)

	is := is.New(t)
	org, err := b.CreateOrganization(ctx, "Greenfield")
	is.NoErr(err)
	ft, err := b.CreateFeeType(ctx, "Tuition", store.CreateFeeTypeOptions{})
	is.NoErr(err)
	is.NoErr(b.EnableFeeTypes(ctx, org.ID, ft.ID))
	ay, err := b.CreateAcademicYear(ctx, "2026-27")
	is.NoErr(err)
	return ctx, b, org, ft, ay
}

func TestCreateFeeItem(t *testing.T) {
	is := is.New(t)
	ctx, b, org, ft, ay := seedFeeItemFixtures(t)

	item, err := b.CreateFeeItem(ctx, store.CreateFeeItemParams{
		OrgID:          org.ID,
		AcademicYearID: ay.ID,
		FeeTypeID:      ft.ID,
		Name:           "Term 1 Tuition",
		AmountPaise:    1500000,
		EnabledGrades:  []string{"1", "2", "3"},
	})
	is.NoErr(err)
	is.Equal(item.Name, "Term 1 Tuition")
	is.Equal(item.AmountPaise, int64(1500000))
	is.Equal(item.IsMandatory, true) // mandatory unless stated otherwise
	is.Equal(item.FeeTypeName, "Tuition")
	is.Equal(item.AcademicYearName, "2026-27")
	is.Equal(item.BranchID.Valid, false)

	grades, err := b.FeeItemGrades(ctx, item.ID)
	is.NoErr(err)
	is.Equal(grades, []string{"1", "2", "3"})
}

func TestCreateFeeItemValidation(t *testing.T) {
	is := is.New(t)
	ctx, b, org, ft, ay := seedFeeItemFixtures(t)

	params := store.CreateFeeItemParams{
		OrgID:          org.ID,
		AcademicYearID: ay.ID,
		FeeTypeID:      ft.ID,
		Name:           "Term 1 Tuition",
		AmountPaise:    1500000,
	}

	p := params
	p.Name = "   "
	_, err := b.CreateFeeItem(ctx, p)
	is.True(errors.Is(err, proto.ErrMissingName))

	p = params
	p.AmountPaise = -1
	_, err = b.CreateFeeItem(ctx, p)
	is.True(errors.Is(err, proto.ErrInvalidAmount))

	p = params
	p.EnabledGrades = []string{""}
	_, err = b.CreateFeeItem(ctx, p)
	is.True(errors.Is(err, proto.ErrInvalidGrade))

	p = params
	p.OrgID = 999
	_, err = b.CreateFeeItem(ctx, p)
	is.True(errors.Is(err, proto.ErrOrgNotFound))

	p = params
	p.FeeTypeID = 999
	_, err = b.CreateFeeItem(ctx, p)
	is.True(errors.Is(err, proto.ErrFeeTypeNotFound))

	p = params
	p.AcademicYearID = 999
	_, err = b.CreateFeeItem(ctx, p)
	is.True(errors.Is(err, proto.ErrAcademicYearNotFound))
}

func TestCreateFeeItemPrivateTypeOwnership(t *testing.T) {
	is := is.New(t)
	ctx, b, org, _, ay := seedFeeItemFixtures(t)

	other, err := b.CreateOrganization(ctx, "Hillside")
	is.NoErr(err)
	private, err := b.CreateFeeType(ctx, "Robotics Club", store.CreateFeeTypeOptions{OwnerOrgID: &other.ID})
	is.NoErr(err)

	_, err = b.CreateFeeItem(ctx, store.CreateFeeItemParams{
		OrgID:          org.ID,
		AcademicYearID: ay.ID,
		FeeTypeID:      private.ID,
		Name:           "Robotics Kit",
		AmountPaise:    250000,
	})
	is.True(errors.Is(err, proto.ErrNotOwner))
}

func TestUpdateFeeItem(t *testing.T) {
	is := is.New(t)
	ctx, b, org, ft, ay := seedFeeItemFixtures(t)

	item, err := b.CreateFeeItem(ctx, store.CreateFeeItemParams{
		OrgID:          org.ID,
		AcademicYearID: ay.ID,
		FeeTypeID:      ft.ID,
		Name:           "Term 1 Tuition",
		AmountPaise:    1500000,
		EnabledGrades:  []string{"1", "2"},
	})
	is.NoErr(err)

	_, err = b.UpdateFeeItem(ctx, item.ID, store.UpdateFeeItemParams{})
	is.True(errors.Is(err, proto.ErrNoFields))

	amount := int64(1750000)
	grades := []string{"1", "2", "3"}
	got, err := b.UpdateFeeItem(ctx, item.ID, store.UpdateFeeItemParams{
		AmountPaise:   &amount,
		EnabledGrades: &grades,
	})
	is.NoErr(err)
	is.Equal(got.AmountPaise, int64(1750000))

	gotGrades, err := b.FeeItemGrades(ctx, item.ID)
	is.NoErr(err)
	is.Equal(gotGrades, []string{"1", "2", "3"})

	_, err = b.UpdateFeeItem(ctx, 999, store.UpdateFeeItemParams{AmountPaise: &amount})
	is.True(errors.Is(err, proto.ErrFeeItemNotFound))
}

func TestDeleteFeeItem(t *testing.T) {
	is := is.New(t)
	ctx, b, org, ft, ay := seedFeeItemFixtures(t)

	item, err := b.CreateFeeItem(ctx, store.CreateFeeItemParams{
		OrgID:          org.ID,
		AcademicYearID: ay.ID,
		FeeTypeID:      ft.ID,
		Name:           "Term 1 Tuition",
		AmountPaise:    1500000,
	})
	is.NoErr(err)

	is.NoErr(b.DeleteFeeItem(ctx, item.ID))

	// Soft-deleted items drop out of listings. Unlike fee types there is
	// no restore path.
	items, err := b.FeeItems(ctx, store.FeeItemFilter{OrgID: &org.ID})
	is.NoErr(err)
	is.Equal(len(items), 0)

	all, err := b.FeeItems(ctx, store.FeeItemFilter{OrgID: &org.ID, IncludeDeleted: true})
	is.NoErr(err)
	is.Equal(len(all), 1)
	is.Equal(all[0].IsDeleted, true)

	err = b.DeleteFeeItem(ctx, 999)
	is.True(errors.Is(err, proto.ErrFeeItemNotFound))
}

func TestDeletePrivateFeeTypeLeavesItems(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	org, err := b.CreateOrganization(ctx, "Greenfield")
	is.NoErr(err)
	ft, err := b.CreateFeeType(ctx, "Robotics Club", store.CreateFeeTypeOptions{OwnerOrgID: &org.ID})
	is.NoErr(err)
	ay, err := b.CreateAcademicYear(ctx, "2026-27")
	is.NoErr(err)

	for _, name := range []string{"Kit Fee", "Workshop Fee", "Competition Fee"} {
		_, err := b.CreateFeeItem(ctx, store.CreateFeeItemParams{
			OrgID:          org.ID,
			AcademicYearID: ay.ID,
			FeeTypeID:      ft.ID,
			Name:           name,
			AmountPaise:    500000,
		})
		is.NoErr(err)
	}

	check, err := b.RemoveOrDelete(ctx, org.ID, ft.ID)
	is.NoErr(err)
	is.Equal(check.WillDelete, true)
	is.Equal(check.UsageCount, int64(3))

	// Items referencing a deleted type are left in place, not cascaded.
	items, err := b.FeeItems(ctx, store.FeeItemFilter{OrgID: &org.ID, FeeTypeID: &ft.ID})
	is.NoErr(err)
	is.Equal(len(items), 3)
	for _, it := range items {
		is.Equal(it.IsDeleted, false)
	}
}

func TestFeeItemStats(t *testing.T) {
	is := is.New(t)
	ctx, b, org, ft, ay := seedFeeItemFixtures(t)

	transport, err := b.CreateFeeType(ctx, "Transport", store.CreateFeeTypeOptions{})
	is.NoErr(err)
	is.NoErr(b.EnableFeeTypes(ctx, org.ID, transport.ID))

	for _, it := range []struct {
		name   string
		typ    int64
		amount int64
	}{
		{"Term 1 Tuition", ft.ID, 1000000},
		{"Term 2 Tuition", ft.ID, 2000000},
		{"Bus Pass", transport.ID, 300000},
	} {
		_, err := b.CreateFeeItem(ctx, store.CreateFeeItemParams{
			OrgID:          org.ID,
			AcademicYearID: ay.ID,
			FeeTypeID:      it.typ,
			Name:           it.name,
			AmountPaise:    it.amount,
		})
		is.NoErr(err)
	}

	stats, err := b.FeeItemStats(ctx, store.FeeItemStatsFilter{OrgID: &org.ID})
	is.NoErr(err)
	is.Equal(stats.Total, int64(3))
	is.Equal(stats.MinAmountPaise, int64(300000))
	is.Equal(stats.MaxAmountPaise, int64(2000000))
	is.Equal(stats.AvgAmountPaise, float64(1100000))
	is.Equal(len(stats.ByType), 2)
}
