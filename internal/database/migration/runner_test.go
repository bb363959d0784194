package migration

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"testing/fstest"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checksum(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"V2__records.sql": {Data: []byte("CREATE TABLE b (id INT);\n")},
		"V1__init.sql":    {Data: []byte("CREATE TABLE a (id INT);")},
		"README.md":       {Data: []byte("ignored")},
	}
}

func TestLoadMigrations_OrdersByVersion(t *testing.T) {
	migs, err := loadMigrations(testFS())
	require.NoError(t, err)
	require.Len(t, migs, 2)
	assert.Equal(t, int64(1), migs[0].Version)
	assert.Equal(t, "init", migs[0].Name)
	assert.Equal(t, "records", migs[1].Name)
	assert.Equal(t, checksum("CREATE TABLE b (id INT);"), migs[1].Checksum)
}

func TestLoadMigrations_Rejects(t *testing.T) {
	_, err := loadMigrations(fstest.MapFS{"V1__a.sql": {Data: []byte("  ")}})
	assert.ErrorContains(t, err, "empty migration file")

	_, err = loadMigrations(fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1")},
		"V01__b.sql": {Data: []byte("SELECT 2")},
	})
	assert.ErrorContains(t, err, "duplicate migration version")
}

func TestEmbeddedSchema(t *testing.T) {
	migs, err := loadMigrations(Embedded())
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	assert.Equal(t, int64(1), migs[0].Version)
	assert.Contains(t, migs[0].SQL, "CREATE TABLE IF NOT EXISTS match_records")

	require.Len(t, migs, 2)
	assert.Equal(t, int64(2), migs[1].Version)
	assert.Contains(t, migs[1].SQL, "CHECK (expected_salary > 0)")
}

func TestRunner_AppliesPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("SELECT pg_advisory_lock").WithArgs(lockKey).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version, checksum, applied_at FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version", "checksum", "applied_at"}).
			AddRow(int64(1), checksum("CREATE TABLE a (id INT);"), time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE b").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").
		WithArgs(int64(2), "records", checksum("CREATE TABLE b (id INT);"), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectExec("SELECT pg_advisory_unlock").WithArgs(lockKey).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Runner{FS: testFS()}.Run(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_ChecksumMismatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("SELECT pg_advisory_lock").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version").
		WillReturnRows(sqlmock.NewRows([]string{"version", "checksum", "applied_at"}).
			AddRow(int64(1), "stale", time.Now()))
	mock.ExpectExec("SELECT pg_advisory_unlock").WillReturnResult(sqlmock.NewResult(0, 0))

	err = Runner{FS: testFS()}.Run(context.Background(), db)
	assert.ErrorIs(t, err, ErrChecksumMismatch)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_Status(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version").
		WillReturnRows(sqlmock.NewRows([]string{"version", "checksum", "applied_at"}).
			AddRow(int64(1), checksum("CREATE TABLE a (id INT);"), at))

	states, err := Runner{FS: testFS()}.Status(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.True(t, states[0].Applied)
	assert.Equal(t, at, states[0].AppliedAt)
	assert.False(t, states[1].Applied)
}
