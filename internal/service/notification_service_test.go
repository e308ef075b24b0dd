package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpulse/classpulse-api/internal/models"
)

func TestNotificationRecentNewestFirst(t *testing.T) {
	svc := NewNotificationService(10, nil)
	svc.Success("first", "a")
	svc.Error("second", "b")

	recent := svc.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, "second", recent[0].Title)
	assert.Equal(t, models.NotificationError, recent[0].Kind)
	assert.Equal(t, "first", recent[1].Title)
	assert.Equal(t, models.NotificationSuccess, recent[1].Kind)
}

func TestNotificationRingEvictsOldest(t *testing.T) {
	svc := NewNotificationService(3, nil)
	for i := 0; i < 5; i++ {
		svc.Success(fmt.Sprintf("n%d", i), "")
	}

	recent := svc.Recent()
	require.Len(t, recent, 3)
	assert.Equal(t, "n4", recent[0].Title)
	assert.Equal(t, "n2", recent[2].Title)
}

func TestNotificationDefaultCapacity(t *testing.T) {
	svc := NewNotificationService(0, nil)
	for i := 0; i < 60; i++ {
		svc.Success("n", "")
	}
	assert.Len(t, svc.Recent(), 50)
}
