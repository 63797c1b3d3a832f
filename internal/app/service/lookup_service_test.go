package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/repository"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/db"
)

func setupLookupServiceTest(t *testing.T) LookupService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return NewLookupService(
		repository.NewSizeRepository(testDB),
		repository.NewColorRepository(testDB),
	)
}

func TestLookupService_Sizes(t *testing.T) {
	svc := setupLookupServiceTest(t)

	size, err := svc.CreateSize(SizeInput{Name: "M"})
	require.NoError(t, err)
	// Display name defaults to the short name.
	assert.Equal(t, "M", size.DisplayName)

	_, err = svc.CreateSize(SizeInput{Name: "M"})
	assert.ErrorIs(t, err, ErrDuplicateLookup)

	updated, err := svc.UpdateSize(size.ID, SizeInput{Name: "M", DisplayName: "Medium", SortOrder: 2})
	require.NoError(t, err)
	assert.Equal(t, "Medium", updated.DisplayName)
	assert.Equal(t, 2, updated.SortOrder)

	_, err = svc.UpdateSize(9999, SizeInput{Name: "XL"})
	assert.ErrorIs(t, err, ErrSizeNotFound)

	inactive := false
	_, err = svc.CreateSize(SizeInput{Name: "XS", IsActive: &inactive})
	require.NoError(t, err)

	all, err := svc.ListSizes(false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	visible, err := svc.ListSizes(true)
	require.NoError(t, err)
	assert.Len(t, visible, 1)

	require.NoError(t, svc.DeleteSize(size.ID))
	assert.ErrorIs(t, svc.DeleteSize(size.ID), ErrSizeNotFound)
}

func TestLookupService_Colors(t *testing.T) {
	svc := setupLookupServiceTest(t)

	color, err := svc.CreateColor(ColorInput{Name: "Red", HexCode: "#ff0000"})
	require.NoError(t, err)
	assert.Equal(t, "Red", color.DisplayName)
	assert.Equal(t, "#ff0000", color.HexCode)

	_, err = svc.CreateColor(ColorInput{Name: "Red"})
	assert.ErrorIs(t, err, ErrDuplicateLookup)

	updated, err := svc.UpdateColor(color.ID, ColorInput{Name: "Crimson", HexCode: "#dc143c"})
	require.NoError(t, err)
	assert.Equal(t, "Crimson", updated.Name)

	_, err = svc.UpdateColor(9999, ColorInput{Name: "Blue"})
	assert.ErrorIs(t, err, ErrColorNotFound)

	require.NoError(t, svc.DeleteColor(color.ID))
	assert.ErrorIs(t, svc.DeleteColor(color.ID), ErrColorNotFound)
}
