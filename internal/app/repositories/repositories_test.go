package repositories

import (
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2016, 3, 1, 12, 0, 0, 0, time.UTC)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func q(fragment string) string {
	return regexp.QuoteMeta(fragment)
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func foreignKeyViolation() error {
	return &pgconn.PgError{Code: "23503"}
}

func strPtr(s string) *string {
	return &s
}
