package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/moby/sys/atomicwriter"

	"github.com/target/text2ture/internal/core"
	"github.com/target/text2ture/internal/domain/model"
)

const (
	successMarkerSuffix = ".json"
	errorMarkerSuffix   = "_error.json"

	dirPerm  fs.FileMode = 0o755
	filePerm fs.FileMode = 0o644

	unreadableErrorMessage = "error marker could not be read"
)

// FSResultStoreOptions configures an FSResultStore.
type FSResultStoreOptions struct {
	// Root is the output directory. It is created if missing.
	Root string
	// URLPrefix is the public path under which Root is served. Defaults to "/objects".
	URLPrefix string
	Logger    *slog.Logger
}

// FSResultStore keeps job outcomes on the local filesystem. Every UID owns the
// directory <root>/<uid>/ holding at most:
//
//	<uid>.json        success marker (artifact JSON)
//	<uid>_error.json  error marker ({"error": ..., "uid": ...})
//	<name>            auxiliary files written through PutFile
//
// Markers are written with temp-file + rename, so a reader never observes a
// partial marker. After a marker lands the opposite marker is removed, making
// the latest outcome win. Between those two steps both markers may exist;
// Read resolves that window in favour of the error marker.
type FSResultStore struct {
	root      string
	urlPrefix string
	logger    *slog.Logger
	locks     *uidLocker
}

var (
	_ core.ResultStore      = (*FSResultStore)(nil)
	_ core.ResultFileWriter = (*FSResultStore)(nil)
)

// NewFSResultStore creates the root directory and returns a ready store.
func NewFSResultStore(opts FSResultStoreOptions) (*FSResultStore, error) {
	root := strings.TrimSpace(opts.Root)
	if root == "" {
		return nil, ErrRootRequired
	}
	if err := os.MkdirAll(root, dirPerm); err != nil {
		return nil, fmt.Errorf("create result root %s: %w", root, err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	prefix := strings.Trim(opts.URLPrefix, "/")
	if prefix == "" {
		prefix = "objects"
	}

	return &FSResultStore{
		root:      filepath.Clean(root),
		urlPrefix: "/" + prefix,
		logger:    logger.With("component", "result_store"),
		locks:     newUIDLocker(),
	}, nil
}

// MustNewFSResultStore is like NewFSResultStore but panics on error.
func MustNewFSResultStore(opts FSResultStoreOptions) *FSResultStore {
	s, err := NewFSResultStore(opts)
	if err != nil {
		panic(err)
	}
	return s
}

// Root returns the directory that holds every UID namespace.
func (s *FSResultStore) Root() string { return s.root }

// WriteSuccess records artifact as the outcome for uid.
func (s *FSResultStore) WriteSuccess(ctx context.Context, uid string, artifact model.Artifact) error {
	if artifact == nil {
		artifact = model.Artifact{}
	}
	body, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("encode artifact for %s: %w", uid, err)
	}
	return s.writeMarker(ctx, uid, markerWrite{
		body:  body,
		name:  successMarkerName(uid),
		stale: errorMarkerName(uid),
	})
}

// WriteFailure records message as the failure outcome for uid.
func (s *FSResultStore) WriteFailure(ctx context.Context, uid string, message string) error {
	body, err := json.MarshalIndent(model.ErrorRecord{Error: message, UID: uid}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode error record for %s: %w", uid, err)
	}
	return s.writeMarker(ctx, uid, markerWrite{
		body:  body,
		name:  errorMarkerName(uid),
		stale: successMarkerName(uid),
	})
}

type markerWrite struct {
	body  []byte
	name  string
	stale string
}

func (s *FSResultStore) writeMarker(ctx context.Context, uid string, w markerWrite) error {
	if err := model.ValidateUID(uid); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	release := s.locks.lock(uid)
	defer release()

	dir, err := s.ensureDir(uid)
	if err != nil {
		return err
	}
	if err := atomicwriter.WriteFile(filepath.Join(dir, w.name), w.body, filePerm); err != nil {
		return fmt.Errorf("write marker %s: %w", w.name, err)
	}
	if err := os.Remove(filepath.Join(dir, w.stale)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		// The new marker is durable; a leftover opposite marker is resolved by read precedence.
		s.logger.WarnContext(ctx, "failed to remove stale marker", "uid", uid, "marker", w.stale, "error", err)
	}
	return nil
}

// Read reports the current status for uid. Only an invalid UID is an error;
// missing or unreadable markers degrade to a status.
func (s *FSResultStore) Read(ctx context.Context, uid string) (model.StatusRecord, error) {
	if err := model.ValidateUID(uid); err != nil {
		return model.StatusRecord{}, err
	}
	rec := model.StatusRecord{UID: uid, Status: model.JobStatusProcessing}
	dir := filepath.Join(s.root, uid)

	if raw, ok := s.readMarker(ctx, filepath.Join(dir, errorMarkerName(uid))); ok {
		rec.Status = model.JobStatusError
		rec.MarkerExists = true
		var er model.ErrorRecord
		if err := json.Unmarshal(raw, &er); err != nil || er.Error == "" {
			s.logger.WarnContext(ctx, "unreadable error marker", "uid", uid, "error", err)
			rec.Error = unreadableErrorMessage
		} else {
			rec.Error = er.Error
		}
		return rec, nil
	}

	if raw, ok := s.readMarker(ctx, filepath.Join(dir, successMarkerName(uid))); ok {
		rec.Status = model.JobStatusCompleted
		rec.MarkerExists = true
		var artifact model.Artifact
		if err := json.Unmarshal(raw, &artifact); err != nil {
			s.logger.WarnContext(ctx, "unreadable success marker", "uid", uid, "error", err)
			return rec, nil
		}
		rec.Result = artifact
	}
	return rec, nil
}

// readMarker returns the file contents and whether the marker exists.
// An existing but unreadable file counts as present with empty contents.
func (s *FSResultStore) readMarker(ctx context.Context, p string) ([]byte, bool) {
	raw, err := os.ReadFile(p)
	switch {
	case err == nil:
		return raw, true
	case errors.Is(err, fs.ErrNotExist):
		return nil, false
	default:
		s.logger.WarnContext(ctx, "marker read failed", "path", p, "error", err)
		return nil, true
	}
}

// PutFile atomically stores an auxiliary file for uid and returns its public reference.
func (s *FSResultStore) PutFile(ctx context.Context, uid, name string, r io.Reader) (string, error) {
	if err := model.ValidateUID(uid); err != nil {
		return "", err
	}
	if err := validateFileName(uid, name); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir, err := s.ensureDir(uid)
	if err != nil {
		return "", err
	}

	// Read fully first so a failing reader never leaves a truncated file behind.
	body, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read %s for %s: %w", name, uid, err)
	}
	if err := atomicwriter.WriteFile(filepath.Join(dir, name), body, filePerm); err != nil {
		return "", fmt.Errorf("write %s for %s: %w", name, uid, err)
	}
	return s.Ref(uid, name), nil
}

// Ref returns the public reference of a stored file without touching disk.
func (s *FSResultStore) Ref(uid, name string) string {
	return path.Join(s.urlPrefix, url.PathEscape(uid), url.PathEscape(name))
}

func (s *FSResultStore) ensureDir(uid string) (string, error) {
	dir := filepath.Join(s.root, uid)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf("create result dir for %s: %w", uid, err)
	}
	return dir, nil
}

func validateFileName(uid, name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidFileName, name)
	case strings.ContainsAny(name, `/\`+"\x00"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidFileName, name)
	case name == successMarkerName(uid), name == errorMarkerName(uid):
		return fmt.Errorf("%w: %q is reserved", ErrInvalidFileName, name)
	}
	return nil
}

func successMarkerName(uid string) string { return uid + successMarkerSuffix }

func errorMarkerName(uid string) string { return uid + errorMarkerSuffix }
