package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeliveryCostsHandler struct{ mock.Mock }

func (m *MockDeliveryCostsHandler) Handle(
	ctx context.Context,
	cmd commands.CalculateDeliveryCostsCommand,
) (commands.CalculateDeliveryCostsResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.CalculateDeliveryCostsResult), args.Error(1)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newLogger() (*slog.Logger, *syncBuffer) {
	out := &syncBuffer{}
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})), out
}

func TestDeliveryCostJob_Run_LogsFailure(t *testing.T) {
	logger, out := newLogger()
	handler := new(MockDeliveryCostsHandler)
	handler.On("Handle", mock.Anything, mock.AnythingOfType("commands.CalculateDeliveryCostsCommand")).
		Return(commands.CalculateDeliveryCostsResult{Priced: 2, Failed: 1}, errors.New("parcel x: disk\nfull")).
		Once()

	jobs.NewDeliveryCostJob(handler, "", logger).Run(t.Context())

	logged := out.String()
	assert.Contains(t, logged, `"msg":"Delivery cost job failed"`)
	assert.Contains(t, logged, `"component":"delivery_cost_job"`)
	assert.Contains(t, logged, `"failed":1`)
	assert.Contains(t, logged, "parcel x: disk full")
	handler.AssertExpectations(t)
}

func TestDeliveryCostJob_Run_LogsSuccess(t *testing.T) {
	logger, out := newLogger()
	handler := new(MockDeliveryCostsHandler)
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(commands.CalculateDeliveryCostsResult{Priced: 3}, nil).Once()

	jobs.NewDeliveryCostJob(handler, "", logger).Run(t.Context())

	assert.Contains(t, out.String(), `"priced":3`)
}

func TestDeliveryCostJob_Start_RejectsInvalidSchedule(t *testing.T) {
	logger, _ := newLogger()
	job := jobs.NewDeliveryCostJob(new(MockDeliveryCostsHandler), "every minute please", logger)

	require.Error(t, job.Start())
}

func TestDeliveryCostJob_SkipsOverlappingRuns(t *testing.T) {
	logger, _ := newLogger()
	var running, maxRunning, calls atomic.Int32
	handler := new(MockDeliveryCostsHandler)
	handler.On("Handle", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			calls.Add(1)
			n := running.Add(1)
			for {
				m := maxRunning.Load()
				if n <= m || maxRunning.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(1500 * time.Millisecond)
			running.Add(-1)
		}).
		Return(commands.CalculateDeliveryCostsResult{}, nil)

	job := jobs.NewDeliveryCostJob(handler, "@every 1s", logger)
	require.NoError(t, job.Start())

	time.Sleep(3500 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	job.Stop(ctx)

	assert.GreaterOrEqual(t, calls.Load(), int32(1))
	assert.Equal(t, int32(1), maxRunning.Load())
}

func TestJobManager_StartAndStop(t *testing.T) {
	logger, out := newLogger()
	manager := jobs.NewJobManager(new(MockDeliveryCostsHandler), "@every 1h", logger)

	require.NoError(t, manager.StartAll())
	manager.StopAll(t.Context())

	assert.Contains(t, out.String(), "Delivery cost job started")
	assert.Contains(t, out.String(), "Delivery cost job stopped")
}
