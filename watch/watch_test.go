// SPDX-License-Identifier: MIT
package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/katalvlaran/finmatrix/watch"
)

func TestWatcher_DebouncesBurst(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	data := filepath.Join(dir, "sales.json")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(data, []byte("[]"), 0o644))

	fired := make(chan struct{}, 4)
	w, err := watch.New([]string{data}, func(context.Context) { fired <- struct{}{} },
		watch.WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(data, []byte("[{}]"), 0o644))
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild after write")
	}
	w.Stop()

	st := w.Stats()
	assert.Equal(t, 1, st.Rebuilds)
	assert.GreaterOrEqual(t, st.Events, 1)
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := watch.New([]string{filepath.Join(t.TempDir(), "a.json")}, nil)
	require.NoError(t, err)
	w.Stop()
}

func TestWatcher_ContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := watch.New([]string{filepath.Join(t.TempDir(), "a.json")}, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()
	w.Stop()
}

func TestNew_Errors(t *testing.T) {
	_, err := watch.New(nil, nil)
	assert.ErrorIs(t, err, watch.ErrNoPaths)

	w, err := watch.New([]string{"/definitely/not/here/a.json"}, nil)
	require.NoError(t, err)
	assert.Error(t, w.Start(context.Background()))
	w.Stop()
}
