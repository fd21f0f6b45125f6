package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/arthur-debert/dotsync/pkg/engine"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/manifest"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/arthur-debert/dotsync/pkg/template"
	"github.com/arthur-debert/dotsync/pkg/types"
	"github.com/arthur-debert/dotsync/pkg/ui"
	"github.com/arthur-debert/dotsync/pkg/watch"
	"github.com/spf13/cobra"
)

// syncOptions are the resolved inputs of one sync pass
type syncOptions struct {
	Manifest string
	DryRun   bool
	Strict   bool
}

// loadEntries reads the manifest at path and expands its targets with env
func loadEntries(path string, env paths.Env) (*manifest.Document, []types.Entry, error) {
	doc, err := manifest.Load(path)
	if err != nil {
		return nil, nil, err
	}
	entries, err := manifest.Parse(doc, paths.NewResolver(env))
	if err != nil {
		return nil, nil, err
	}
	return doc, entries, nil
}

// runSync performs one load, parse and sync pass. Manifest errors are
// returned; entry failures are only returned in strict mode.
func runSync(opts syncOptions, r ui.Renderer) ([]types.Entry, error) {
	logger := logging.GetLogger("cli.sync")
	logger.Info().
		Str("manifest", opts.Manifest).
		Bool("dryRun", opts.DryRun).
		Bool("strict", opts.Strict).
		Msg("Starting sync")

	env := paths.SystemEnv()
	_, entries, err := loadEntries(opts.Manifest, env)
	if err != nil {
		return nil, err
	}

	report := newEngine(opts, env).Sync(entries)
	if len(entries) == 0 {
		if err := r.RenderMessage(MsgNothingToSync); err != nil {
			return entries, err
		}
	} else if err := r.RenderResult(report); err != nil {
		return entries, err
	}

	if opts.Strict && report.Failed() > 0 {
		return entries, fmt.Errorf(MsgErrStrictFailed, report.Failed(), len(report.Results))
	}
	return entries, nil
}

// newEngine builds the sync engine for one pass. Templates see the same home
// directory the resolver expanded targets with.
func newEngine(opts syncOptions, env paths.Env) *engine.Engine {
	return engine.New(engine.Options{
		Renderer: template.NewRenderer(env.Home),
		DryRun:   opts.DryRun,
	})
}

func newSyncCmd(a *app) *cobra.Command {
	var (
		manifestFlag string
		dryRun       bool
		strict       bool
		watchFlag    bool
	)

	cmd := &cobra.Command{
		Use:     "sync",
		Short:   MsgSyncShort,
		Long:    MsgSyncLong,
		Example: MsgSyncExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			opts := syncOptions{
				Manifest: manifestPath(manifestFlag, cfg),
				DryRun:   cfg.Sync.DryRun,
				Strict:   cfg.Sync.Strict,
			}
			if cmd.Flags().Changed("dry-run") {
				opts.DryRun = dryRun
			}
			if cmd.Flags().Changed("strict") {
				opts.Strict = strict
			}

			r, err := a.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			if !watchFlag {
				_, err := runSync(opts, r)
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watchSync(ctx, opts, r)
		},
	}

	addManifestFlag(cmd, &manifestFlag)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	cmd.Flags().BoolVar(&strict, "strict", false, MsgFlagStrict)
	cmd.Flags().BoolVar(&watchFlag, "watch", false, MsgFlagWatch)

	return cmd
}

// watchSync syncs once, then again after every change to the manifest or to
// a copy or template source, until ctx is done. Failures of a pass are
// rendered and the watch goes on.
func watchSync(ctx context.Context, opts syncOptions, r ui.Renderer) error {
	logger := logging.GetLogger("cli.watch")

	w, err := watch.New(0)
	if err != nil {
		return fmt.Errorf(MsgErrWatch, opts.Manifest, err)
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(opts.Manifest); err != nil {
		return fmt.Errorf(MsgErrWatch, opts.Manifest, err)
	}

	pass := func() {
		entries, err := runSync(opts, r)
		if err != nil {
			_ = r.RenderError(err)
		}
		for _, entry := range entries {
			if entry.Kind == types.KindSymlink {
				continue
			}
			if err := w.Add(entry.Source); err != nil {
				logger.Warn().Err(err).Str("source", entry.Source).Msg("Cannot watch source")
			}
		}
	}

	pass()
	_ = r.RenderMessage(fmt.Sprintf(MsgWatching, filepath.Clean(opts.Manifest)))

	w.Run(ctx, func(changed []string) {
		_ = r.RenderMessage(fmt.Sprintf(MsgResyncing, changed[0]))
		pass()
	})

	_ = r.RenderMessage(MsgWatchStopped)
	return nil
}

func newPlanCmd(a *app) *cobra.Command {
	var manifestFlag string

	cmd := &cobra.Command{
		Use:     "plan",
		Short:   MsgPlanShort,
		Long:    MsgPlanLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			_, entries, err := loadEntries(manifestPath(manifestFlag, cfg), paths.SystemEnv())
			if err != nil {
				return err
			}
			return r.RenderResult(entries)
		},
	}

	addManifestFlag(cmd, &manifestFlag)
	return cmd
}
