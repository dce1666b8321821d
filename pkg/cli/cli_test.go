package cli

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/advocates/pkg/api"
	"github.com/platinummonkey/advocates/pkg/observability"
	"github.com/platinummonkey/advocates/pkg/search"
	"github.com/platinummonkey/advocates/pkg/seed"
	"github.com/platinummonkey/advocates/pkg/storage/bleve"
)

// syncBuffer is a bytes.Buffer safe for the controller's goroutines
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

// captureOutput swaps the package streams for the duration of the test
func captureOutput(t *testing.T, in io.Reader) (*syncBuffer, *syncBuffer) {
	t.Helper()

	out, errOut := &syncBuffer{}, &syncBuffer{}
	oldIn, oldOut, oldErr := stdin, stdout, stderr
	stdin, stdout, stderr = in, out, errOut
	t.Cleanup(func() {
		stdin, stdout, stderr = oldIn, oldOut, oldErr
	})

	if stdin == nil {
		stdin = strings.NewReader("")
	}
	return out, errOut
}

// newAPIServer serves the embedded fixtures from an in-memory index
func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := bleve.New()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	records, err := seed.Default()
	require.NoError(t, err)
	_, err = seed.Apply(context.Background(), store, records)
	require.NoError(t, err)

	server := api.NewServer(search.NewService(store, nil), api.Options{
		Logger: observability.NewLogger(observability.ErrorLevel, &bytes.Buffer{}),
	})

	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)
	return srv
}
