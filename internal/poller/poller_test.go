package poller

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sheetdeck/sheetdeck/internal/api"
	"github.com/sheetdeck/sheetdeck/internal/api/mockapi"
)

const testInterval = 2 * time.Millisecond

// eventRecorder collects poller events and signals terminal ones.
type eventRecorder struct {
	mu        sync.Mutex
	progress  []api.TaskStatus
	completed []api.TaskStatus
	failed    []string
	terminal  chan struct{}
}

func newEventRecorder() *eventRecorder {
	return &eventRecorder{terminal: make(chan struct{})}
}

func (r *eventRecorder) TaskProgress(st api.TaskStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, st)
}

func (r *eventRecorder) TaskCompleted(st api.TaskStatus) {
	r.mu.Lock()
	r.completed = append(r.completed, st)
	r.mu.Unlock()
	close(r.terminal)
}

func (r *eventRecorder) TaskFailed(msg string) {
	r.mu.Lock()
	r.failed = append(r.failed, msg)
	r.mu.Unlock()
	close(r.terminal)
}

func (r *eventRecorder) waitTerminal(t *testing.T) {
	t.Helper()
	select {
	case <-r.terminal:
	case <-time.After(5 * time.Second):
		t.Fatal("poller never reached a terminal state")
	}
}

func TestSubmitFailurePreservesIdleState(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mockapi.NewMockService(ctrl)
	svc.EXPECT().SubmitGeneration(gomock.Any(), "sess-1", "brief").
		Return("", &api.Error{StatusCode: 500, Detail: "boom"})

	p := New(svc, newEventRecorder(), WithInterval(testInterval))
	_, err := p.Submit(context.Background(), "sess-1", "brief")
	require.Error(t, err)
	assert.Equal(t, StateIdle, p.State())
	assert.Empty(t, p.TaskID())
}

func TestPollUntilCompleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mockapi.NewMockService(ctrl)
	svc.EXPECT().SubmitGeneration(gomock.Any(), "sess-1", "make a 5-slide deck").Return("task-9", nil)
	gomock.InOrder(
		svc.EXPECT().TaskStatus(gomock.Any(), "task-9").
			Return(&api.TaskStatus{Status: "processing", Progress: 30, Message: "analyzing"}, nil),
		svc.EXPECT().TaskStatus(gomock.Any(), "task-9").
			Return(&api.TaskStatus{Status: "processing", Progress: 70, Message: "building"}, nil),
		svc.EXPECT().TaskStatus(gomock.Any(), "task-9").
			Return(&api.TaskStatus{Status: api.StatusCompleted, Progress: 100, Message: "done"}, nil),
	)

	rec := newEventRecorder()
	p := New(svc, rec, WithInterval(testInterval))

	id, err := p.Submit(context.Background(), "sess-1", "make a 5-slide deck")
	require.NoError(t, err)
	assert.Equal(t, "task-9", id)

	rec.waitTerminal(t)

	assert.Equal(t, StateCompleted, p.State())
	assert.Empty(t, p.TaskID(), "task id is cleared on terminal state")

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.completed, 1, "completion fires exactly once")
	assert.Empty(t, rec.failed)
	// Progress fires for every fetch, including the terminal one.
	require.Len(t, rec.progress, 3)
	assert.Equal(t, 30, rec.progress[0].Progress)
	assert.Equal(t, 100, rec.progress[2].Progress)
}

func TestPollFailedTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mockapi.NewMockService(ctrl)
	svc.EXPECT().SubmitGeneration(gomock.Any(), gomock.Any(), gomock.Any()).Return("task-9", nil)
	svc.EXPECT().TaskStatus(gomock.Any(), "task-9").
		Return(&api.TaskStatus{Status: api.StatusFailed, Message: "generation blew up"}, nil)

	rec := newEventRecorder()
	p := New(svc, rec, WithInterval(testInterval))
	_, err := p.Submit(context.Background(), "sess-1", "brief")
	require.NoError(t, err)

	rec.waitTerminal(t)

	assert.Equal(t, StateFailed, p.State())
	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.failed, 1)
	assert.Equal(t, "generation blew up", rec.failed[0])
	assert.Empty(t, rec.completed)
}

func TestPollTransportFailureIsTerminal(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mockapi.NewMockService(ctrl)
	svc.EXPECT().SubmitGeneration(gomock.Any(), gomock.Any(), gomock.Any()).Return("task-9", nil)
	svc.EXPECT().TaskStatus(gomock.Any(), "task-9").
		Return(nil, &api.Error{Detail: "connection refused"})

	rec := newEventRecorder()
	p := New(svc, rec, WithInterval(testInterval))
	_, err := p.Submit(context.Background(), "sess-1", "brief")
	require.NoError(t, err)

	rec.waitTerminal(t)

	assert.Equal(t, StateFailed, p.State())
	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.failed, 1)
	assert.Contains(t, rec.failed[0], "connection refused")
}

func TestNonTerminalStatusKeepsPolling(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mockapi.NewMockService(ctrl)
	svc.EXPECT().SubmitGeneration(gomock.Any(), gomock.Any(), gomock.Any()).Return("task-9", nil)

	polled := make(chan struct{}, 64)
	svc.EXPECT().TaskStatus(gomock.Any(), "task-9").
		DoAndReturn(func(context.Context, string) (*api.TaskStatus, error) {
			polled <- struct{}{}
			return &api.TaskStatus{Status: "processing", Progress: 50}, nil
		}).MinTimes(5)

	rec := newEventRecorder()
	p := New(svc, rec, WithInterval(testInterval))
	_, err := p.Submit(context.Background(), "sess-1", "brief")
	require.NoError(t, err)

	// Let it loop several times; it must never decide the task is done.
	for i := 0; i < 5; i++ {
		select {
		case <-polled:
		case <-time.After(5 * time.Second):
			t.Fatal("poller stopped polling")
		}
	}
	assert.Equal(t, StatePolling, p.State())

	p.Cancel()
	assert.Equal(t, StateAborted, p.State())

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Empty(t, rec.completed)
	assert.Empty(t, rec.failed)
}

func TestMaxAttemptsCeiling(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mockapi.NewMockService(ctrl)
	svc.EXPECT().SubmitGeneration(gomock.Any(), gomock.Any(), gomock.Any()).Return("task-9", nil)
	svc.EXPECT().TaskStatus(gomock.Any(), "task-9").
		Return(&api.TaskStatus{Status: "processing"}, nil).Times(3)

	rec := newEventRecorder()
	p := New(svc, rec, WithInterval(testInterval), WithMaxAttempts(3))
	_, err := p.Submit(context.Background(), "sess-1", "brief")
	require.NoError(t, err)

	rec.waitTerminal(t)
	assert.Equal(t, StateFailed, p.State())
}

func TestSubmitWhilePollingIsRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mockapi.NewMockService(ctrl)
	svc.EXPECT().SubmitGeneration(gomock.Any(), gomock.Any(), gomock.Any()).Return("task-9", nil)
	svc.EXPECT().TaskStatus(gomock.Any(), "task-9").
		Return(&api.TaskStatus{Status: "processing"}, nil).AnyTimes()

	p := New(svc, newEventRecorder(), WithInterval(testInterval))
	_, err := p.Submit(context.Background(), "sess-1", "first")
	require.NoError(t, err)

	_, err = p.Submit(context.Background(), "sess-1", "second")
	assert.ErrorIs(t, err, ErrTaskActive)

	p.Cancel()
}

func TestResubmitAfterTerminalState(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mockapi.NewMockService(ctrl)
	svc.EXPECT().SubmitGeneration(gomock.Any(), gomock.Any(), gomock.Any()).Return("task-1", nil)
	svc.EXPECT().TaskStatus(gomock.Any(), "task-1").
		Return(&api.TaskStatus{Status: api.StatusCompleted, Progress: 100}, nil)

	rec := newEventRecorder()
	p := New(svc, rec, WithInterval(testInterval))
	_, err := p.Submit(context.Background(), "sess-1", "first")
	require.NoError(t, err)
	rec.waitTerminal(t)

	svc.EXPECT().SubmitGeneration(gomock.Any(), gomock.Any(), gomock.Any()).Return("task-2", nil)
	svc.EXPECT().TaskStatus(gomock.Any(), "task-2").
		Return(&api.TaskStatus{Status: api.StatusFailed, Message: "nope"}, nil)

	rec2 := newEventRecorder()
	p.events = rec2
	id, err := p.Submit(context.Background(), "sess-1", "second")
	require.NoError(t, err)
	assert.Equal(t, "task-2", id)
	rec2.waitTerminal(t)
	assert.Equal(t, StateFailed, p.State())
}

func TestCancelIdleIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mockapi.NewMockService(ctrl)

	p := New(svc, newEventRecorder(), WithInterval(testInterval))
	p.Cancel()
	assert.Equal(t, StateIdle, p.State())
}
