package services

import (
	"shopping-route-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionTrackerLifecycle(t *testing.T) {
	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tr := NewSessionTracker(func() time.Time { return clock })
	stores := testStores()
	items := testItems()
	items[0].AssignedPrice = price("2.99")
	items[1].AssignedPrice = price("3.49")

	s, err := tr.Start(stores[0], items[:2])
	require.NoError(t, err)
	require.NotEmpty(t, s.ID)
	require.Equal(t, domain.SessionInProgress, s.Status)
	require.Equal(t, clock, s.StartedAt)
	require.Equal(t, "A", tr.ActiveStoreID())

	_, err = tr.Start(stores[0], items[:2])
	require.ErrorIs(t, err, domain.ErrSessionExists)

	require.NoError(t, tr.ToggleChecked("A", "milk"))
	require.NoError(t, tr.ToggleChecked("A", "bread"))
	require.NoError(t, tr.MarkUnavailable("A", "bread", "", ""))
	require.ErrorIs(t, tr.ToggleChecked("B", "milk"), domain.ErrSessionNotFound)

	clock = clock.Add(25 * time.Minute)
	done, err := tr.Complete("A", "")
	require.NoError(t, err)
	require.True(t, done.ActualTotal.Equal(price("6.48")), "got %s", done.ActualTotal)
	require.Equal(t, clock, *done.EndedAt)
	require.Empty(t, tr.ActiveStoreID())

	_, err = tr.Complete("A", "")
	require.ErrorIs(t, err, domain.ErrSessionCompleted)
	_, err = tr.Complete("C", "")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionTrackerEmptyBucket(t *testing.T) {
	tr := NewSessionTracker(nil)
	_, err := tr.Start(testStores()[2], nil)
	require.ErrorIs(t, err, domain.ErrEmptyBucket)

	_, ok := tr.Session("C")
	require.False(t, ok, "no session is created")
	_, ok = tr.Active()
	require.False(t, ok)
}

func TestSessionTrackerActivePointerMoves(t *testing.T) {
	tr := NewSessionTracker(nil)
	stores := testStores()
	items := testItems()

	_, err := tr.Start(stores[0], items[:1])
	require.NoError(t, err)
	_, err = tr.Start(stores[1], items[1:])
	require.NoError(t, err)
	require.Equal(t, "B", tr.ActiveStoreID())

	// Completing the older session leaves the pointer on B.
	_, err = tr.Complete("A", "")
	require.NoError(t, err)
	active, ok := tr.Active()
	require.True(t, ok)
	require.Equal(t, "B", active.StoreID)
}
