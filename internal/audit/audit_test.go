package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rescueops/internal/platform/logger"
)

func TestRecorderStampsEvents(t *testing.T) {
	rec := NewRecorder(logger.New(), 4)
	fixed := time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC)
	rec.now = func() time.Time { return fixed }

	rec.Record(ActionReminderSent, "user-1", "CPR", map[string]string{"reminder_type": "expired"})

	select {
	case event := <-rec.Inbox():
		assert.NotEmpty(t, event.ID)
		assert.Equal(t, ActionReminderSent, event.Action)
		assert.Equal(t, "user-1", event.UserID)
		assert.Equal(t, "CPR", event.Subject)
		assert.Equal(t, fixed, event.CreatedAt)
	default:
		t.Fatal("expected an event in the inbox")
	}
}

func TestRecorderDropsWhenFull(t *testing.T) {
	rec := NewRecorder(logger.New(), 1)

	// Second record must not block even though nothing drains the inbox.
	done := make(chan struct{})
	go func() {
		rec.Record(ActionReminderSent, "user-1", "CPR", nil)
		rec.Record(ActionReminderSent, "user-1", "EMT-B", nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Record blocked on a full inbox")
	}
	assert.Len(t, rec.Inbox(), 1)
}

func TestWorkerPersistsEvents(t *testing.T) {
	store := NewInMemoryStore()
	rec := NewRecorder(logger.New(), 4)
	worker := NewWorker(store, nil, rec.Inbox(), logger.New())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	rec.Record(ActionSnapshotGenerated, "", "2025-06-15", nil)

	require.Eventually(t, func() bool {
		events, err := store.ListSince(context.Background(), time.Time{})
		return err == nil && len(events) == 1
	}, time.Second, 10*time.Millisecond)

	events, err := store.ListSince(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, ActionSnapshotGenerated, events[0].Action)
	assert.Equal(t, "2025-06-15", events[0].Subject)
}

func TestStoreListSinceFiltersByTime(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	base := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	old := Event{ID: "e1", Action: ActionReminderSent, CreatedAt: base.Add(-48 * time.Hour)}
	recent := Event{ID: "e2", Action: ActionReminderFailed, CreatedAt: base.Add(-1 * time.Hour)}
	require.NoError(t, store.Append(ctx, old))
	require.NoError(t, store.Append(ctx, recent))

	events, err := store.ListSince(ctx, base.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "e2", events[0].ID)
}
