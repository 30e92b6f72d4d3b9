package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shahzada-shah/flow-studios/pkg/config"
	"github.com/shahzada-shah/flow-studios/pkg/enums"
	pkgerrors "github.com/shahzada-shah/flow-studios/pkg/errors"
	"github.com/shahzada-shah/flow-studios/pkg/migrate"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	dir := filepath.Join("..", "..", migrate.DirFor(config.DBDriverSQLite))
	if err := migrate.Run(context.Background(), sqlDB, config.DBDriverSQLite, dir, "up"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func TestRepositoryUpsertAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))

	url := "https://cdn.example/a.jpg"
	a := newTestProduct("a", "49.50", withCategories("leggings", "women"), withActivities("Yoga", "Dance"), withSizes(enums.SizeS, enums.SizeM), withCreated(1), sustainable(), bestseller())
	a.ImageURL = &url
	b := newTestProduct("b", "20.00", withCreated(0), outOfStock())

	require.NoError(t, repo.Upsert(ctx, []Product{a, b}))

	got, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a"}, ids(got), "oldest first")

	loaded := got[1]
	assert.Equal(t, []string{"leggings", "women"}, loaded.Categories)
	assert.Equal(t, []string{"Yoga", "Dance"}, loaded.Activities)
	assert.Equal(t, []enums.Size{enums.SizeS, enums.SizeM}, loaded.Sizes)
	assert.True(t, loaded.Price.Equal(a.Price))
	require.NotNil(t, loaded.ImageURL)
	assert.Equal(t, url, *loaded.ImageURL)
	assert.True(t, loaded.Sustainable)
	assert.True(t, loaded.Bestseller)
	assert.False(t, got[0].InStock, "false flags must survive the insert")
	assert.Empty(t, got[0].Categories)
}

func TestRepositoryUpsertOverwritesByID(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))

	require.NoError(t, repo.Upsert(ctx, []Product{newTestProduct("a", "10")}))
	updated := newTestProduct("a", "12.00", withColor("Sage"))
	require.NoError(t, repo.Upsert(ctx, []Product{updated}))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Sage", got[0].Color)
	assert.True(t, got[0].Price.Equal(updated.Price))
}

func TestRepositoryUpsertSlugConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))

	require.NoError(t, repo.Upsert(ctx, []Product{newTestProduct("a", "10")}))
	clash := newTestProduct("b", "10")
	clash.Slug = "product-a"

	err := repo.Upsert(ctx, []Product{clash})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
}

func TestRepositorySeedsEmbeddedCatalog(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))

	seed, err := NewSeedLoader("").Load(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, seed))

	store, err := Open(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, len(seed), store.Len())
}

func TestRepositoryUpsertEmptyIsNoop(t *testing.T) {
	repo := NewRepository(nil)
	assert.NoError(t, repo.Upsert(context.Background(), nil))
}
