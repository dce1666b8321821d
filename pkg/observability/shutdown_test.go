package observability

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShutdownManager(t *testing.T) {
	tests := []struct {
		name            string
		timeout         time.Duration
		expectedTimeout time.Duration
	}{
		{"custom timeout", 10 * time.Second, 10 * time.Second},
		{"zero timeout uses default", 0, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewShutdownManager(NewLogger(InfoLevel, io.Discard), tt.timeout, &http.Server{})
			assert.Equal(t, tt.expectedTimeout, sm.shutdownTimeout)
			assert.Len(t, sm.servers, 1)
			assert.Empty(t, sm.shutdownFuncs)
		})
	}

	t.Run("nil logger", func(t *testing.T) {
		assert.NotNil(t, NewShutdownManager(nil, 0).logger)
	})
}

func TestRegisterShutdownFunc(t *testing.T) {
	sm := NewShutdownManager(NewLogger(InfoLevel, io.Discard), time.Second)

	sm.RegisterShutdownFunc(func(context.Context) error { return nil })
	sm.RegisterShutdownFunc(nil)

	assert.Len(t, sm.shutdownFuncs, 1)
}

func TestShutdown_Functions(t *testing.T) {
	tests := []struct {
		name    string
		funcs   []ShutdownFunc
		wantErr string
	}{
		{
			name: "all succeed",
			funcs: []ShutdownFunc{
				func(context.Context) error { return nil },
				func(context.Context) error { return nil },
			},
		},
		{
			name: "one fails",
			funcs: []ShutdownFunc{
				func(context.Context) error { return errors.New("close store") },
				func(context.Context) error { return nil },
			},
			wantErr: "shutdown completed with 1 errors: close store",
		},
		{
			name:  "none registered",
			funcs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewShutdownManager(NewLogger(InfoLevel, io.Discard), time.Second)
			for _, fn := range tt.funcs {
				sm.RegisterShutdownFunc(fn)
			}

			err := sm.Shutdown(context.Background())
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestShutdown_AllFunctionsRun(t *testing.T) {
	sm := NewShutdownManager(NewLogger(InfoLevel, io.Discard), time.Second)

	var calls atomic.Int32
	for i := 0; i < 5; i++ {
		sm.RegisterShutdownFunc(func(context.Context) error {
			calls.Add(1)
			return nil
		})
	}

	require.NoError(t, sm.Shutdown(context.Background()))
	assert.Equal(t, int32(5), calls.Load())
}

func TestShutdown_Timeout(t *testing.T) {
	sm := NewShutdownManager(NewLogger(InfoLevel, io.Discard), time.Second)
	release := make(chan struct{})
	defer close(release)

	sm.RegisterShutdownFunc(func(ctx context.Context) error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.EqualError(t, sm.Shutdown(ctx), "shutdown timeout reached")
}

func TestShutdown_StopsServers(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := &http.Server{Handler: http.NotFoundHandler()}
	served := make(chan error, 1)
	go func() { served <- server.Serve(ln) }()

	var closed atomic.Bool
	sm := NewShutdownManager(NewLogger(InfoLevel, io.Discard), time.Second, server)
	sm.RegisterShutdownFunc(func(context.Context) error {
		closed.Store(true)
		return nil
	})

	require.NoError(t, sm.Shutdown(context.Background()))
	assert.True(t, closed.Load())
	assert.ErrorIs(t, <-served, http.ErrServerClosed)
}

func TestWait_ContextCancelled(t *testing.T) {
	sm := NewShutdownManager(NewLogger(InfoLevel, io.Discard), time.Second)

	var ran atomic.Bool
	sm.RegisterShutdownFunc(func(context.Context) error {
		ran.Store(true)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() { result <- sm.Wait(ctx) }()

	cancel()
	select {
	case err := <-result:
		assert.NoError(t, err)
		assert.True(t, ran.Load())
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after cancel")
	}
}
