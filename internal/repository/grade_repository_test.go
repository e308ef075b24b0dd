package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpulse/classpulse-api/internal/models"
	appErrors "github.com/classpulse/classpulse-api/pkg/errors"
)

func newGatewayMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestGradeRepositoryFetchAll(t *testing.T) {
	db, mock, cleanup := newGatewayMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	rows := sqlmock.NewRows([]string{"id", "student_id", "student_name", "assignment_label", "grade", "attendance_percent", "created_at", "updated_at"}).
		AddRow("1", "alice-johnson", "Alice Johnson", "Math Quiz 1", 88, 95, time.Now(), time.Now())
	mock.ExpectQuery("SELECT (.+) FROM grade_entries ORDER BY student_name ASC").
		WillReturnRows(rows)

	entries, err := repo.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Alice Johnson", entries[0].StudentName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeRepositoryFetchAllFailureMapsToRemoteUnavailable(t *testing.T) {
	db, mock, cleanup := newGatewayMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM grade_entries").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.FetchAll(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrRemoteUnavailable.Code, appErrors.FromError(err).Code)
}

func TestGradeRepositoryInsertKeepsCallerID(t *testing.T) {
	db, mock, cleanup := newGatewayMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectExec("INSERT INTO grade_entries").
		WillReturnResult(sqlmock.NewResult(0, 1))

	entry, err := repo.Insert(context.Background(), models.GradeEntry{
		ID:          "fixed-id",
		StudentID:   "alice-johnson",
		StudentName: "Alice Johnson",
		Grade:       90,
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", entry.ID)
	assert.False(t, entry.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeRepositoryInsertAssignsID(t *testing.T) {
	db, mock, cleanup := newGatewayMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectExec("INSERT INTO grade_entries").
		WillReturnResult(sqlmock.NewResult(0, 1))

	entry, err := repo.Insert(context.Background(), models.GradeEntry{StudentID: "bob-smith"})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
}

func TestGradeRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newGatewayMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectExec("UPDATE grade_entries SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), models.GradeEntry{ID: "1", Grade: 75})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newGatewayMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectExec("DELETE FROM grade_entries WHERE id = \\$1").
		WithArgs("1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeRepositoryNilDB(t *testing.T) {
	repo := NewGradeRepository(nil)

	_, err := repo.FetchAll(context.Background())
	assert.ErrorIs(t, err, appErrors.ErrRemoteUnavailable)

	_, err = repo.Insert(context.Background(), models.GradeEntry{})
	assert.ErrorIs(t, err, appErrors.ErrRemoteUnavailable)

	assert.ErrorIs(t, repo.Update(context.Background(), models.GradeEntry{}), appErrors.ErrRemoteUnavailable)
	assert.ErrorIs(t, repo.Delete(context.Background(), "1"), appErrors.ErrRemoteUnavailable)
}
