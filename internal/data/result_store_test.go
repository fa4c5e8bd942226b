package data

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/text2ture/internal/domain/model"
)

func newTestStore(t *testing.T) *FSResultStore {
	t.Helper()
	return MustNewFSResultStore(FSResultStoreOptions{Root: t.TempDir(), URLPrefix: "/objects"})
}

func TestNewFSResultStore(t *testing.T) {
	_, err := NewFSResultStore(FSResultStoreOptions{Root: "  "})
	require.ErrorIs(t, err, ErrRootRequired)

	root := filepath.Join(t.TempDir(), "nested", "output")
	s, err := NewFSResultStore(FSResultStoreOptions{Root: root})
	require.NoError(t, err)
	assert.DirExists(t, root)
	assert.Equal(t, root, s.Root())
}

func TestFSResultStore_ReadUnknownUIDIsProcessing(t *testing.T) {
	s := newTestStore(t)

	rec, err := s.Read(context.Background(), "never-submitted")
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusProcessing, rec.Status)
	assert.Nil(t, rec.Result)
	assert.False(t, rec.MarkerExists)
}

func TestFSResultStore_WriteSuccess(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	artifact := model.Artifact{"chair": "/objects/u1/chair.jpg", "table": "/objects/u1/table.jpg"}

	require.NoError(t, s.WriteSuccess(ctx, "u1", artifact))

	assert.FileExists(t, filepath.Join(s.Root(), "u1", "u1.json"))
	rec, err := s.Read(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusCompleted, rec.Status)
	assert.Equal(t, artifact, rec.Result)
	assert.True(t, rec.MarkerExists)
	assert.Empty(t, rec.Error)
}

func TestFSResultStore_WriteSuccessEmptyArtifact(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteSuccess(ctx, "u1", nil))

	rec, err := s.Read(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusCompleted, rec.Status)
	assert.Equal(t, model.Artifact{}, rec.Result)
}

func TestFSResultStore_WriteFailure(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteFailure(ctx, "u2", "sample image missing"))

	raw, err := os.ReadFile(filepath.Join(s.Root(), "u2", "u2_error.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"sample image missing","uid":"u2"}`, string(raw))
	assert.NoFileExists(t, filepath.Join(s.Root(), "u2", "u2.json"))

	rec, err := s.Read(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusError, rec.Status)
	assert.Equal(t, "sample image missing", rec.Error)
	assert.Nil(t, rec.Result)
}

func TestFSResultStore_LatestOutcomeWins(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteFailure(ctx, "u1", "first attempt failed"))
	require.NoError(t, s.WriteSuccess(ctx, "u1", model.Artifact{"a": "/objects/u1/a.jpg"}))

	rec, err := s.Read(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusCompleted, rec.Status)
	assert.NoFileExists(t, filepath.Join(s.Root(), "u1", "u1_error.json"))

	require.NoError(t, s.WriteFailure(ctx, "u1", "second attempt failed"))

	rec, err = s.Read(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusError, rec.Status)
	assert.Equal(t, "second attempt failed", rec.Error)
	assert.NoFileExists(t, filepath.Join(s.Root(), "u1", "u1.json"))
}

func TestFSResultStore_ErrorMarkerTakesPrecedence(t *testing.T) {
	s := newTestStore(t)
	dir := filepath.Join(s.Root(), "u1")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "u1.json"), []byte(`{"a":"/objects/u1/a.jpg"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "u1_error.json"), []byte(`{"error":"boom","uid":"u1"}`), 0o644))

	rec, err := s.Read(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusError, rec.Status)
	assert.Equal(t, "boom", rec.Error)
	assert.Nil(t, rec.Result)
}

func TestFSResultStore_CorruptMarkers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	t.Run("corrupt success marker reads as completed with no result", func(t *testing.T) {
		dir := filepath.Join(s.Root(), "c1")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "c1.json"), []byte(`{not json`), 0o644))

		rec, err := s.Read(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, model.JobStatusCompleted, rec.Status)
		assert.Nil(t, rec.Result)
	})

	t.Run("corrupt error marker reads as error with generic message", func(t *testing.T) {
		dir := filepath.Join(s.Root(), "c2")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "c2_error.json"), []byte(`garbage`), 0o644))

		rec, err := s.Read(ctx, "c2")
		require.NoError(t, err)
		assert.Equal(t, model.JobStatusError, rec.Status)
		assert.Equal(t, unreadableErrorMessage, rec.Error)
	})

	t.Run("empty success marker", func(t *testing.T) {
		dir := filepath.Join(s.Root(), "c3")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "c3.json"), nil, 0o644))

		rec, err := s.Read(ctx, "c3")
		require.NoError(t, err)
		assert.Equal(t, model.JobStatusCompleted, rec.Status)
		assert.Nil(t, rec.Result)
	})
}

func TestFSResultStore_InvalidUID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, uid := range []string{"", "..", "a/b", "../escape"} {
		_, err := s.Read(ctx, uid)
		assert.Error(t, err, "read %q", uid)
		assert.Error(t, s.WriteSuccess(ctx, uid, nil), "write success %q", uid)
		assert.Error(t, s.WriteFailure(ctx, uid, "x"), "write failure %q", uid)
	}
	entries, err := os.ReadDir(s.Root())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFSResultStore_CanceledContext(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.WriteSuccess(ctx, "u1", nil)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFSResultStore_PutFile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ref, err := s.PutFile(ctx, "u1", "chair.jpg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/objects/u1/chair.jpg", ref)

	raw, err := os.ReadFile(filepath.Join(s.Root(), "u1", "chair.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(raw))

	// An auxiliary file alone does not make the job terminal.
	rec, err := s.Read(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusProcessing, rec.Status)

	ref, err = s.PutFile(ctx, "u1", "red chair.jpg", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "/objects/u1/red%20chair.jpg", ref)
}

func TestFSResultStore_PutFileRejectsUnsafeNames(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"", ".", "..", "../x.jpg", `a\b.jpg`, "u1.json", "u1_error.json"} {
		_, err := s.PutFile(ctx, "u1", name, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidFileName, "name %q", name)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("source vanished") }

func TestFSResultStore_PutFileReaderError(t *testing.T) {
	s := newTestStore(t)

	_, err := s.PutFile(context.Background(), "u1", "a.jpg", failingReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source vanished")
	assert.NoFileExists(t, filepath.Join(s.Root(), "u1", "a.jpg"))
}

func TestFSResultStore_PutFilePartialReadKeepsPreviousFile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, err := s.PutFile(ctx, "u1", "a.jpg", strings.NewReader("complete"))
	require.NoError(t, err)

	_, err = s.PutFile(ctx, "u1", "a.jpg", io.MultiReader(strings.NewReader("trunc"), failingReader{}))
	require.Error(t, err)

	raw, err := os.ReadFile(filepath.Join(s.Root(), "u1", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "complete", string(raw))

	entries, err := os.ReadDir(filepath.Join(s.Root(), "u1"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFSResultStore_ConcurrentDistinctUIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	const n = 50

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			uid := fmt.Sprintf("concurrent_test_%d", i)
			if i%2 == 0 {
				assert.NoError(t, s.WriteSuccess(ctx, uid, model.Artifact{"obj": uid}))
			} else {
				assert.NoError(t, s.WriteFailure(ctx, uid, "failed "+uid))
			}
		}()
	}
	wg.Wait()

	for i := range n {
		uid := fmt.Sprintf("concurrent_test_%d", i)
		rec, err := s.Read(ctx, uid)
		require.NoError(t, err)
		if i%2 == 0 {
			assert.Equal(t, model.JobStatusCompleted, rec.Status)
			assert.Equal(t, uid, rec.Result["obj"])
		} else {
			assert.Equal(t, model.JobStatusError, rec.Status)
			assert.Equal(t, "failed "+uid, rec.Error)
		}
	}
	assert.Zero(t, s.locks.size())
}

func TestFSResultStore_ConcurrentSameUIDLeavesOneMarker(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 40 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				assert.NoError(t, s.WriteSuccess(ctx, "shared", model.Artifact{"i": fmt.Sprint(i)}))
			} else {
				assert.NoError(t, s.WriteFailure(ctx, "shared", "boom"))
			}
		}()
	}
	wg.Wait()

	_, okSuccess := s.readMarker(ctx, filepath.Join(s.Root(), "shared", "shared.json"))
	_, okError := s.readMarker(ctx, filepath.Join(s.Root(), "shared", "shared_error.json"))
	assert.True(t, okSuccess != okError, "expected exactly one marker, success=%v error=%v", okSuccess, okError)
}

func TestFSResultStore_ConcurrentReadersNeverSeePartialMarker(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	big := model.Artifact{}
	for i := range 200 {
		big[fmt.Sprintf("object_%03d", i)] = fmt.Sprintf("/objects/u1/object_%03d.jpg", i)
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			rec, err := s.Read(ctx, "u1")
			if !assert.NoError(t, err) {
				return
			}
			if rec.Status == model.JobStatusCompleted {
				assert.Len(t, rec.Result, len(big))
			}
		}
	}()

	for range 20 {
		require.NoError(t, s.WriteSuccess(ctx, "u1", big))
	}
	close(done)
	wg.Wait()
}

func TestFSResultStore_PutFileEmptyReader(t *testing.T) {
	s := newTestStore(t)

	ref, err := s.PutFile(context.Background(), "u1", "empty.jpg", strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "/objects/u1/empty.jpg", ref)
	assert.FileExists(t, filepath.Join(s.Root(), "u1", "empty.jpg"))
}
