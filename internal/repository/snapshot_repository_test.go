package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/classpulse/classpulse-api/pkg/errors"
)

func TestSnapshotRepositoryNilClientReadsMiss(t *testing.T) {
	repo := NewSnapshotRepository(nil, nil, nil)

	var dest []string
	err := repo.ReadSnapshot(context.Background(), "grades", &dest)
	assert.ErrorIs(t, err, appErrors.ErrSnapshotMiss)
}

func TestSnapshotRepositoryNilClientWritesNoop(t *testing.T) {
	repo := NewSnapshotRepository(nil, nil, nil)
	assert.NoError(t, repo.WriteSnapshot(context.Background(), "grades", []string{"a"}))
	assert.NoError(t, repo.Close())
}
