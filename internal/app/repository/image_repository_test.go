package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/model"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/db"
)

func setupImageRepositoryTest(t *testing.T) (ImageRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return NewImageRepository(testDB), testDB
}

func seedImages(t *testing.T, repo ImageRepository) []*model.Image {
	images := []*model.Image{
		{Filename: "hero.jpg", OriginalName: "hero-shot.jpg", Path: "root/hero.jpg", Folder: "root", Tags: "summer,hero", IsFeatured: true},
		{Filename: "tee.png", OriginalName: "green-tee.png", Path: "products/tee.png", Folder: "products", Tags: "summer,tees"},
		{Filename: "banner.webp", OriginalName: "sale-banner.webp", Path: "campaign/banner.webp", Folder: "campaign", Tags: "sale"},
	}
	for _, img := range images {
		require.NoError(t, repo.Create(img))
	}
	return images
}

func TestImageRepository_FindWithFilter(t *testing.T) {
	repo, _ := setupImageRepositoryTest(t)
	seedImages(t, repo)

	tests := []struct {
		name   string
		filter ImageFilter
		want   int
	}{
		{name: "No filter returns everything", filter: ImageFilter{}, want: 3},
		{name: "By folder", filter: ImageFilter{Folder: "products"}, want: 1},
		{name: "By tag", filter: ImageFilter{Tag: "summer"}, want: 2},
		{name: "By filename search", filter: ImageFilter{Search: "banner"}, want: 1},
		{name: "By original name search", filter: ImageFilter{Search: "green"}, want: 1},
		{name: "Featured only", filter: ImageFilter{Featured: true}, want: 1},
		{name: "Folder and tag combined", filter: ImageFilter{Folder: "root", Tag: "summer"}, want: 1},
		{name: "Limit", filter: ImageFilter{Limit: 2}, want: 2},
		{name: "Nothing matches", filter: ImageFilter{Folder: "empty"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			images, err := repo.FindWithFilter(tt.filter)
			require.NoError(t, err)
			assert.Len(t, images, tt.want)
		})
	}
}

func TestImageRepository_ListFolders(t *testing.T) {
	repo, _ := setupImageRepositoryTest(t)
	seedImages(t, repo)

	folders, err := repo.ListFolders()
	require.NoError(t, err)
	assert.Equal(t, []string{"campaign", "products", "root"}, folders)
}

func TestImageRepository_RecordUsage(t *testing.T) {
	repo, _ := setupImageRepositoryTest(t)
	images := seedImages(t, repo)

	usedAt := time.Now()
	require.NoError(t, repo.RecordUsage(images[0].ID, usedAt, "product"))
	require.NoError(t, repo.RecordUsage(images[0].ID, usedAt, ""))

	img, err := repo.FindByID(images[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, img.DownloadCount)
	assert.Equal(t, "product", img.UsageContext)
	assert.NotNil(t, img.LastUsedAt)
}

func TestImageRepository_PurgeLifecycle(t *testing.T) {
	repo, testDB := setupImageRepositoryTest(t)
	images := seedImages(t, repo)

	require.NoError(t, repo.Delete(images[0].ID))
	require.NoError(t, repo.Delete(images[1].ID))

	// Only deletions older than the cutoff are purgeable.
	aged := time.Now().Add(-72 * time.Hour)
	require.NoError(t, testDB.Unscoped().Model(&model.Image{}).
		Where("id = ?", images[0].ID).
		Update("deleted_at", aged).Error)

	purgeable, err := repo.FindPurgeable(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	require.Len(t, purgeable, 1)
	assert.Equal(t, images[0].ID, purgeable[0].ID)

	require.NoError(t, repo.HardDelete(images[0].ID))

	var count int64
	require.NoError(t, testDB.Unscoped().Model(&model.Image{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
