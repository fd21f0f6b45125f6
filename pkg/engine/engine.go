package engine

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/filesystem"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/arthur-debert/dotsync/pkg/template"
	"github.com/arthur-debert/dotsync/pkg/types"
	"github.com/rs/zerolog"
)

// DryRunPrefix marks log lines for changes that were not made
const DryRunPrefix = "[DRY RUN]"

// maxBackupAttempts bounds the search for a free backup name
const maxBackupAttempts = 1000

// Options configures an Engine. Zero values select the real filesystem, the
// process home directory and the wall clock.
type Options struct {
	FS       types.FS
	Renderer *template.Renderer
	Now      func() time.Time
	DryRun   bool
	Logger   *zerolog.Logger
}

// Engine applies entries to the filesystem
type Engine struct {
	fs       types.FS
	renderer *template.Renderer
	now      func() time.Time
	dryRun   bool
	logger   zerolog.Logger
}

// New creates an Engine
func New(opts Options) *Engine {
	e := &Engine{
		fs:       opts.FS,
		renderer: opts.Renderer,
		now:      opts.Now,
		dryRun:   opts.DryRun,
	}
	if e.fs == nil {
		e.fs = filesystem.NewOS()
	}
	if e.renderer == nil {
		e.renderer = template.NewRenderer(paths.GetHomeDirectoryWithDefault(""))
	}
	if e.now == nil {
		e.now = time.Now
	}
	if opts.Logger != nil {
		e.logger = *opts.Logger
	} else {
		e.logger = logging.GetLogger("engine")
	}
	return e
}

// EntryResult is the outcome of one entry
type EntryResult struct {
	Entry types.Entry
	// Backup is where the previous target went, empty when there was none
	Backup string
	// Bytes written for copy and template entries
	Bytes int64
	Err   error
}

// OK reports whether the entry was placed (or would be, in a dry run)
func (r EntryResult) OK() bool {
	return r.Err == nil
}

// Report collects the results of a Sync call in entry order
type Report struct {
	Results []EntryResult
	DryRun  bool
}

// Succeeded returns the number of entries without errors
func (r *Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of entries with errors
func (r *Report) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// Backups returns the number of targets that were moved aside
func (r *Report) Backups() int {
	n := 0
	for _, res := range r.Results {
		if res.Backup != "" {
			n++
		}
	}
	return n
}

// Err joins the per-entry errors, or returns nil when every entry succeeded
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return stderrors.Join(errs...)
}

// Sync processes entries in order. An entry's failure is logged and recorded
// in the report; it never stops the remaining entries.
func (e *Engine) Sync(entries []types.Entry) *Report {
	done := logging.LogOperationStart(e.logger, "sync")
	defer done()

	report := &Report{
		Results: make([]EntryResult, 0, len(entries)),
		DryRun:  e.dryRun,
	}

	for _, entry := range entries {
		res := e.process(entry)
		if res.Err != nil {
			e.logger.Error().
				Err(res.Err).
				Str("kind", entry.Kind.String()).
				Str("source", entry.Source).
				Str("target", entry.Target).
				Msg("Failed to sync entry")
		}
		report.Results = append(report.Results, res)
	}

	e.logger.Info().
		Int("entries", len(entries)).
		Int("failed", report.Failed()).
		Int("backups", report.Backups()).
		Bool("dryRun", e.dryRun).
		Msg("Sync finished")

	return report
}

func (e *Engine) process(entry types.Entry) EntryResult {
	res := EntryResult{Entry: entry}

	backup, err := e.backup(entry.Target)
	if err != nil {
		res.Err = err
		return res
	}
	res.Backup = backup

	if e.dryRun {
		res.Err = e.check(entry)
		e.logger.Info().
			Str("kind", entry.Kind.String()).
			Str("source", entry.Source).
			Str("target", entry.Target).
			Str("backup", backup).
			Msg(DryRunPrefix + " Would place entry")
		return res
	}

	parent := filepath.Dir(entry.Target)
	if err := e.fs.MkdirAll(parent, 0755); err != nil {
		res.Err = errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", parent).
			WithDetail("target", entry.Target)
		return res
	}

	res.Bytes, res.Err = e.place(entry)
	return res
}

// backup moves an existing target aside and returns the backup path. A
// missing target is not an error and yields "". Lstat errors other than
// "exists" are treated as absent; the following steps report them.
func (e *Engine) backup(target string) (string, error) {
	if _, err := e.fs.Lstat(target); err != nil {
		return "", nil
	}

	backupPath, err := e.freeBackupPath(target)
	if err != nil {
		return "", err
	}

	if e.dryRun {
		return backupPath, nil
	}

	if err := e.fs.Rename(target, backupPath); err != nil {
		return "", errors.Wrapf(err, errors.ErrBackup, "failed to back up %s to %s", target, backupPath).
			WithDetail("target", target).
			WithDetail("backup", backupPath)
	}

	e.logger.Info().Str("target", target).Str("backup", backupPath).Msg("Backed up existing target")
	return backupPath, nil
}

func (e *Engine) freeBackupPath(target string) (string, error) {
	now := e.now()
	for n := 0; n < maxBackupAttempts; n++ {
		candidate := backupPathN(target, now, n)
		if _, err := e.fs.Lstat(candidate); err != nil {
			return candidate, nil
		}
	}
	return "", errors.Newf(errors.ErrBackup, "no free backup name for %s", target).
		WithDetail("target", target)
}

// place dispatches on the entry kind
func (e *Engine) place(entry types.Entry) (int64, error) {
	switch entry.Kind {
	case types.KindSymlink:
		return 0, e.symlink(entry)
	case types.KindCopy:
		return e.copy(entry)
	case types.KindTemplate:
		n, err := e.renderer.RenderFile(e.fs, entry.Source, entry.Target)
		if err == nil {
			e.logger.Info().Str("source", entry.Source).Str("target", entry.Target).Msg("Rendered template")
		}
		return n, err
	default:
		return 0, errors.Newf(errors.ErrInternal, "unknown entry kind %s", entry.Kind).
			WithDetail("target", entry.Target)
	}
}

func (e *Engine) symlink(entry types.Entry) error {
	if err := e.fs.Symlink(entry.Source, entry.Target); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate,
			"failed to create symlink %s -> %s", entry.Target, entry.Source).
			WithDetail("source", entry.Source).
			WithDetail("target", entry.Target)
	}
	e.logger.Info().Str("target", entry.Target).Str("source", entry.Source).Msg("Created symlink")
	return nil
}

func (e *Engine) copy(entry types.Entry) (int64, error) {
	copyErr := func(err error, msg string) error {
		return errors.Wrapf(err, errors.ErrCopy, "%s %s to %s", msg, entry.Source, entry.Target).
			WithDetail("source", entry.Source).
			WithDetail("target", entry.Target)
	}

	info, err := e.fs.Stat(entry.Source)
	if err != nil {
		return 0, copyErr(err, "failed to copy")
	}
	if info.IsDir() {
		return 0, copyErr(os.ErrInvalid, "cannot copy directory")
	}

	data, err := e.fs.ReadFile(entry.Source)
	if err != nil {
		return 0, copyErr(err, "failed to copy")
	}
	if err := e.fs.WriteFile(entry.Target, data, info.Mode().Perm()); err != nil {
		return 0, copyErr(err, "failed to copy")
	}

	e.logger.Info().Str("source", entry.Source).Str("target", entry.Target).Msg("Copied file")
	return int64(len(data)), nil
}

// check reports the error a copy or template entry would hit on an
// unreadable source, without changing anything
func (e *Engine) check(entry types.Entry) error {
	var code errors.ErrorCode
	switch entry.Kind {
	case types.KindCopy:
		code = errors.ErrCopy
	case types.KindTemplate:
		code = errors.ErrTemplateRead
	default:
		return nil
	}

	info, err := e.fs.Stat(entry.Source)
	if err == nil && info.IsDir() {
		err = os.ErrInvalid
	}
	if err != nil {
		return errors.Wrapf(err, code, "source %s is not readable", entry.Source).
			WithDetail("source", entry.Source).
			WithDetail("target", entry.Target)
	}
	return nil
}
