package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpulse/classpulse-api/internal/models"
	appErrors "github.com/classpulse/classpulse-api/pkg/errors"
)

func TestGoalRepositoryFetchAll(t *testing.T) {
	db, mock, cleanup := newGatewayMock(t)
	defer cleanup()
	repo := NewGoalRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "description", "subject", "progress_percent", "owner", "created_at", "updated_at"}).
		AddRow("g1", "Read two novels", "", "English", 40, "alice-johnson", time.Now(), time.Now())
	mock.ExpectQuery("SELECT (.+) FROM goals").WillReturnRows(rows)

	goals, err := repo.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, 40, goals[0].ProgressPercent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGoalRepositoryInsert(t *testing.T) {
	db, mock, cleanup := newGatewayMock(t)
	defer cleanup()
	repo := NewGoalRepository(db)

	mock.ExpectExec("INSERT INTO goals").WillReturnResult(sqlmock.NewResult(0, 1))

	goal, err := repo.Insert(context.Background(), models.Goal{Title: "Master algebra", Subject: "Mathematics", Owner: "bob-smith"})
	require.NoError(t, err)
	assert.NotEmpty(t, goal.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGoalRepositoryNilDB(t *testing.T) {
	repo := NewGoalRepository(nil)
	_, err := repo.FetchAll(context.Background())
	assert.ErrorIs(t, err, appErrors.ErrRemoteUnavailable)
}

func TestCalendarRepositoryFetchAll(t *testing.T) {
	db, mock, cleanup := newGatewayMock(t)
	defer cleanup()
	repo := NewCalendarRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "description", "occurs_on", "category", "attributed_to", "created_at", "updated_at"}).
		AddRow("e1", "Math Quiz - Algebra", "", time.Now(), "exam", "Mrs. Johnson", time.Now(), time.Now())
	mock.ExpectQuery("SELECT (.+) FROM calendar_events").WillReturnRows(rows)

	events, err := repo.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventExam, events[0].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalendarRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newGatewayMock(t)
	defer cleanup()
	repo := NewCalendarRepository(db)

	mock.ExpectExec("DELETE FROM calendar_events WHERE id = \\$1").
		WithArgs("e1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "e1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
