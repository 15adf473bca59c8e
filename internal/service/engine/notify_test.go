package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifierStacksAndDismissesIndependently(t *testing.T) {
	nt := NewNotifier(time.Minute, nil, nil)
	defer nt.Shutdown()

	first := nt.Push("first")
	second := nt.Push("second")
	third := nt.Push("third")

	active := nt.Active()
	require.Len(t, active, 3)

	nt.Dismiss(second)
	active = nt.Active()
	require.Len(t, active, 2)
	ids := []string{active[0].ID, active[1].ID}
	assert.Contains(t, ids, first)
	assert.Contains(t, ids, third)
	assert.NotContains(t, ids, second)

	// Dismissing twice is harmless.
	nt.Dismiss(second)
	assert.Len(t, nt.Active(), 2)
}

func TestNotifierAutoDismissAfterTTL(t *testing.T) {
	nt := NewNotifier(20*time.Millisecond, nil, nil)
	defer nt.Shutdown()

	nt.Push("transient")
	require.Len(t, nt.Active(), 1)

	assert.Eventually(t, func() bool {
		return len(nt.Active()) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestNotifierDismissStopsAutoTimer(t *testing.T) {
	dismissed := make(chan string, 4)
	nt := NewNotifier(20*time.Millisecond, nil, func(id string) { dismissed <- id })
	defer nt.Shutdown()

	id := nt.Push("transient")
	nt.Dismiss(id)

	select {
	case got := <-dismissed:
		assert.Equal(t, id, got)
	case <-time.After(time.Second):
		t.Fatal("dismiss callback never fired")
	}

	// The stopped timer must not fire a second dismissal.
	select {
	case <-dismissed:
		t.Fatal("timer fired after manual dismissal")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestNotifierInvokeRunsActionAndDismisses(t *testing.T) {
	nt := NewNotifier(time.Minute, nil, nil)
	defer nt.Shutdown()

	ran := false
	id := nt.PushAction("failed", "Retry", func() { ran = true })

	require.True(t, nt.Invoke(id))
	assert.True(t, ran)
	assert.Empty(t, nt.Active())

	// Already consumed.
	assert.False(t, nt.Invoke(id))
}

func TestNotifierInvokeWithoutAction(t *testing.T) {
	nt := NewNotifier(time.Minute, nil, nil)
	defer nt.Shutdown()

	plain := nt.Push("just a message")
	assert.False(t, nt.Invoke(plain))
	assert.Len(t, nt.Active(), 1, "a failed invoke leaves the notification up")
	assert.False(t, nt.Invoke("no-such-id"))
}

func TestNotifierPushCallback(t *testing.T) {
	pushed := make(chan Notification, 1)
	nt := NewNotifier(time.Minute, func(n Notification) { pushed <- n }, nil)
	defer nt.Shutdown()

	id := nt.PushAction("failed", "Retry", func() {})
	select {
	case n := <-pushed:
		assert.Equal(t, id, n.ID)
		assert.Equal(t, "failed", n.Message)
		assert.Equal(t, "Retry", n.ActionLabel)
	case <-time.After(time.Second):
		t.Fatal("push callback never fired")
	}
}

func TestNotifierActiveOrderedOldestFirst(t *testing.T) {
	nt := NewNotifier(time.Minute, nil, nil)
	defer nt.Shutdown()

	first := nt.Push("first")
	time.Sleep(2 * time.Millisecond)
	second := nt.Push("second")

	active := nt.Active()
	require.Len(t, active, 2)
	assert.Equal(t, first, active[0].ID)
	assert.Equal(t, second, active[1].ID)
}

func TestNotifierShutdownDropsEverything(t *testing.T) {
	nt := NewNotifier(time.Minute, nil, nil)
	nt.Push("one")
	nt.Push("two")

	nt.Shutdown()
	assert.Empty(t, nt.Active())
	assert.Empty(t, nt.Push("after close"), "a closed notifier accepts nothing")
}
