//go:build integration

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_sentiment/internal/domain"
	mysqlrepo "hotel_sentiment/internal/storage/mysql"
)

func pstr(s string) *string { return &s }

// migrationsDir defaults to the repo's migrations/ folder.
func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("..", "..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir()

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files, "no .sql files in %s", dir)
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		require.NoError(t, err)
		_, err = db.Exec(string(sqlBytes))
		require.NoError(t, err, "exec %s", f)
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=hotel_reviews",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/hotel_reviews?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		resource.GetPort("3306/tcp"))

	var db *sql.DB
	require.NoError(t, pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}))
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

func TestRepo_MySQL_ListAndUpdate(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// Arrange
	texts := []*string{
		pstr("Kamar bersih"),
		nil,
		pstr("   "),
		pstr("Staf ramah"),
		pstr("AC rusak"),
	}
	var ids []int64
	for _, tx := range texts {
		id, err := repo.InsertReview(ctx, 10001, tx)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	// Act: first page skips null and blank text
	page, err := repo.ListUnrated(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[0], page[0].ID)
	assert.Equal(t, ids[3], page[1].ID)
	assert.Equal(t, "Staf ramah", *page[1].Text)

	page, err = repo.ListUnrated(ctx, page[1].ID, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[4], page[0].ID)

	// rated rows drop out of the listing
	require.NoError(t, repo.UpdateAspects(ctx, ids[0], []byte(`{"Kebersihan":5.0}`)))
	require.NoError(t, repo.UpdateAspects(ctx, ids[0], []byte(`{"Kebersihan":5.0}`)))
	page, err = repo.ListUnrated(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[3], page[0].ID)

	got, err := repo.GetReview(ctx, ids[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"Kebersihan":5.0}`, string(got.AspectsJSON))

	// Assert: unknown ids
	_, err = repo.GetReview(ctx, 999999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	err = repo.UpdateAspects(ctx, 999999, []byte(`{}`))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
