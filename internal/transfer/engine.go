// Package transfer implements the transfer engine: scanning picks into
// files, preflight reporting, and the sequential copy/move executor that
// writes a dated session folder and a manifest.
package transfer

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/joe/transfer-pilot/internal/classify"
	"github.com/joe/transfer-pilot/internal/logging"
	"github.com/joe/transfer-pilot/internal/pick"
	"github.com/joe/transfer-pilot/internal/volume"
	"github.com/joe/transfer-pilot/pkg/fileops"
	"github.com/joe/transfer-pilot/pkg/filesystem"
)

// Exported constants.
const (
	// ProgressInterval is the minimum gap between chunk progress events.
	ProgressInterval = 120 * time.Millisecond
	// MaxRenameAttempts bounds the " (N)" search under the rename policy.
	MaxRenameAttempts = 9999
)

// Request describes one run.
type Request struct {
	Items    []pick.Item
	Dest     string
	Mode     CopyMode
	Conflict ConflictPolicy
	Verify   VerifyMode
	// Cancel is polled before each entry and each chunk. The engine never
	// resets it.
	Cancel *CancelToken
	// SessionLog also writes a JSON log to <session>/transfer.log.
	SessionLog bool
}

// Engine runs preflight reports and transfers. It holds no per-run state, but
// runs are meant to be sequential.
type Engine struct {
	FileOps      *fileops.FileOps     // Source and destination I/O
	TimeProvider TimeProvider         // Session naming, durations, throttling
	Space        volume.SpaceProvider // Free space for preflight (optional)
	Filter       FileFilter           // Folder-pick exclusions (optional)
	Logger       logrus.FieldLogger   // Optional; nil discards
	emitter      EventEmitter
}

// NewEngine creates an engine reading and writing through fs.
func NewEngine(fs filesystem.FileSystem) *Engine {
	return &Engine{
		FileOps:      fileops.NewFileOps(fs),
		TimeProvider: &RealTimeProvider{},
		Space:        volume.NewDFProbe(),
	}
}

// SetEventEmitter sets the event emitter for UI communication.
// The emitter is optional - if nil, no events will be emitted.
func (e *Engine) SetEventEmitter(emitter EventEmitter) {
	e.emitter = emitter
}

// run carries the state of one Execute call.
type run struct {
	*Engine

	req        Request
	log        logrus.FieldLogger
	session    Session
	rows       []ManifestRow
	totalFiles uint64
	totalBytes uint64
	bytesDone  uint64
	throttle   *throttle
}

// Execute transfers every scanned entry, one at a time in scan order, into a
// new session folder under req.Dest and writes manifest.json.
//
// Per-entry failures are recorded as error rows and the run continues.
// Cancellation stops the run after recording the in-flight entry, if any,
// and still writes the manifest. Only setup, metadata and manifest failures
// are returned as errors.
func (e *Engine) Execute(req Request) (*Summary, error) {
	r := &run{Engine: e, req: req, log: e.logger()}
	startedAt := e.TimeProvider.Now()

	r.emit(PhaseScanning, 0, "")

	entries, err := Scan(e.FileOps.SourceFS, req.Items, e.Filter)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		size, err := e.sourceSize(entry.SourcePath)
		if err != nil {
			return nil, err
		}

		r.totalBytes = addSaturating(r.totalBytes, size)
	}

	r.totalFiles = uint64(len(entries))
	r.session = NewSession(req.Dest, startedAt)

	err = r.session.Prepare(e.FileOps.DestFS)
	if err != nil {
		return nil, err
	}

	if req.SessionLog {
		closeLog, err := r.attachSessionLog()
		if err != nil {
			return nil, err
		}

		defer closeLog()
	}

	r.log.WithFields(logrus.Fields{
		"session":  r.session.Dir,
		"files":    r.totalFiles,
		"bytes":    r.totalBytes,
		"mode":     req.Mode,
		"conflict": req.Conflict,
		"verify":   req.Verify,
	}).Info("Transfer session started")

	for _, item := range req.Items {
		r.log.WithFields(logrus.Fields{
			"pick_id": item.ID,
			"kind":    item.Kind,
			"path":    item.Path,
		}).Debug("Pick queued")
	}

	r.throttle = newThrottle(e.TimeProvider, ProgressInterval)
	r.emit(PhaseCopying, 0, "")

	for i, entry := range entries {
		proceed, err := r.process(uint64(i)+1, entry)
		if err != nil {
			return nil, err
		}

		if !proceed {
			break
		}
	}

	err = r.session.WriteManifest(e.FileOps.DestFS, r.rows)
	if err != nil {
		return nil, err
	}

	finishedAt := e.TimeProvider.Now()
	cancelled := req.Cancel.Cancelled()

	final := Progress{
		Phase:       PhaseDone,
		CurrentFile: r.totalFiles,
		TotalFiles:  r.totalFiles,
		CurrentPath: r.session.Dir,
		BytesDone:   r.bytesDone,
		BytesTotal:  r.totalBytes,
		Percent:     100, //nolint:mnd // a finished run is complete
	}
	if cancelled {
		final.Phase = PhaseCancelled
		final.Percent = Percent(r.bytesDone, r.totalBytes)
	}

	e.emit(final)

	summary := newSummary(r.rows, r.totalBytes, r.session, finishedAt, cancelled)

	r.log.WithFields(logrus.Fields{
		"copied":    summary.CopiedFiles,
		"moved":     summary.MovedFiles,
		"skipped":   summary.SkippedFiles,
		"errors":    summary.ErrorFiles,
		"cancelled": cancelled,
	}).Info("Transfer session finished")

	return summary, nil
}

// process handles one entry and reports whether the run should continue.
// Only a source metadata failure is returned as an error.
//
//nolint:funlen,cyclop // Linear per-entry state machine
func (r *run) process(index uint64, entry FileEntry) (bool, error) {
	if r.req.Cancel.Cancelled() {
		r.log.WithField("source", entry.SourcePath).Info("Transfer cancelled before entry")
		r.emit(PhaseCancelled, index, entry.SourcePath)

		return false, nil
	}

	size, err := r.sourceSize(entry.SourcePath)
	if err != nil {
		return false, err
	}

	dest := r.session.DestinationFor(entry)

	if r.destExists(dest) {
		switch r.req.Conflict {
		case Overwrite:
		case Skip:
			r.record(index, entry, dest, size, StatusSkipped, nil)

			return true, nil
		case Rename:
			dest = r.uniqueDestPath(dest)
		}
	}

	r.emit(PhaseCopying, index, entry.SourcePath)

	base := r.bytesDone
	r.throttle.reset()

	stats, err := r.FileOps.CopyFileWithStats(entry.SourcePath, dest,
		func(written, _ int64, _ string) {
			r.bytesDone = addSaturating(base, uint64(written)) //nolint:gosec // written is non-negative
			if r.throttle.allow() {
				r.emit(PhaseCopying, index, entry.SourcePath)
			}
		}, r.req.Cancel)
	r.bytesDone = addSaturating(base, uint64(stats.BytesCopied)) //nolint:gosec // non-negative

	if stats.TimesErr != nil {
		r.log.WithField("dest", dest).WithError(stats.TimesErr).Warn("Modification time not preserved")
	}

	if errors.Is(err, ErrCancelled) {
		r.record(index, entry, dest, size, StatusCancelled, nil)
		r.emit(PhaseCancelled, index, entry.SourcePath)

		return false, nil
	}

	if err == nil {
		err = r.verify(index, entry, dest, size)
	}

	status := StatusCopied

	if err == nil && r.req.Mode == Move {
		removeErr := r.FileOps.Remove(entry.SourcePath)
		if removeErr != nil {
			err = fmt.Errorf("move cleanup failed: %w", removeErr)
		} else {
			status = StatusMoved
		}
	}

	if err != nil {
		status = StatusError
	}

	r.record(index, entry, dest, size, status, err)
	r.emit(PhaseCopying, index, "")

	return true, nil
}

// verify applies the configured check to a completed copy.
func (r *run) verify(index uint64, entry FileEntry, dest string, size uint64) error {
	switch r.req.Verify {
	case VerifyNone:
		return nil
	case VerifySize:
		info, err := r.FileOps.StatDest(dest)
		if err != nil {
			return fmt.Errorf("verify failed: %w", err)
		}

		if uint64(info.Size()) != size { //nolint:gosec // file sizes are non-negative
			return fmt.Errorf("verify failed: %w", ErrSizeMismatch)
		}

		return nil
	case VerifySHA256:
		r.emit(PhaseVerifying, index, entry.SourcePath)

		srcHash, err := r.FileOps.ComputeFileHash(entry.SourcePath)
		if err != nil {
			return fmt.Errorf("verify failed: %w", err)
		}

		dstHash, err := r.FileOps.ComputeDestFileHash(dest)
		if err != nil {
			return fmt.Errorf("verify failed: %w", err)
		}

		if srcHash != dstHash {
			return fmt.Errorf("verify failed: %w", ErrHashMismatch)
		}

		return nil
	default:
		return nil
	}
}

// record appends a manifest row and announces it.
func (r *run) record(index uint64, entry FileEntry, dest string, size uint64, status Status, err error) {
	category, ext := classify.Classify(entry.SourcePath)

	row := ManifestRow{
		Source:   entry.SourcePath,
		Dest:     dest,
		Category: string(category),
		Ext:      ext,
		Bytes:    size,
		Status:   status,
	}

	fields := logrus.Fields{
		"pick_id": r.req.Items[entry.Pick].ID,
		"source":  row.Source,
		"dest":    row.Dest,
		"status":  row.Status,
		"bytes":   row.Bytes,
	}

	if err != nil {
		msg := err.Error()
		row.Error = &msg
		r.log.WithFields(fields).WithError(err).Warn("Entry failed")
	} else {
		r.log.WithFields(fields).Debug("Entry recorded")
	}

	r.rows = append(r.rows, row)
	r.Engine.emit(EntryRecorded{Index: index, Row: row})
}

// emit sends a Progress event built from the run counters.
func (r *run) emit(phase Phase, currentFile uint64, currentPath string) {
	r.Engine.emit(Progress{
		Phase:       phase,
		CurrentFile: currentFile,
		TotalFiles:  r.totalFiles,
		CurrentPath: currentPath,
		BytesDone:   r.bytesDone,
		BytesTotal:  r.totalBytes,
		Percent:     Percent(r.bytesDone, r.totalBytes),
	})
}

func (r *run) destExists(path string) bool {
	exists, err := r.FileOps.DestFS.Exists(path)

	return err == nil && exists
}

// uniqueDestPath returns "stem (N).ext" for the lowest free N, or dest itself
// if every candidate is taken.
func (r *run) uniqueDestPath(dest string) string {
	if !r.destExists(dest) {
		return dest
	}

	dir := filepath.Dir(dest)
	stem := classify.Stem(dest)
	ext := classify.Extension(dest)

	for n := 1; n <= MaxRenameAttempts; n++ {
		name := fmt.Sprintf("%s (%d)", stem, n)
		if ext != "" {
			name += "." + ext
		}

		candidate := filepath.Join(dir, name)
		if !r.destExists(candidate) {
			return candidate
		}
	}

	return dest
}

// attachSessionLog tees the run logger into <session>/transfer.log.
func (r *run) attachSessionLog() (func(), error) {
	file, err := r.FileOps.DestFS.Create(r.session.LogPath())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSessionSetup, err)
	}

	r.log = logging.Tee(r.log, file)

	return func() { _ = file.Close() }, nil
}

// emit sends an event if an emitter is configured.
// Safe to call even when emitter is nil.
func (e *Engine) emit(event Event) {
	if e.emitter != nil {
		e.emitter.Emit(event)
	}
}

func (e *Engine) logger() logrus.FieldLogger {
	if e.Logger == nil {
		return logging.Discard()
	}

	return e.Logger
}
