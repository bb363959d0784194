package repository

import (
	"context"
	"testing"

	"talent-match/internal/database/sqldb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqldb.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = raw.Close()
	})
	return sqldb.Wrap(raw), mock
}

var ctx = context.Background()
