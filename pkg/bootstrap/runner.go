package bootstrap

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/internal/hashutil"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single package install or script run
const DefaultTimeout = 10 * time.Minute

// sentinelDir is the subdirectory of the state dir holding run-once sentinels
const sentinelDir = "run-once"

// Commander runs an external command to completion
type Commander interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecCommander runs commands with os/exec, streaming their output
type ExecCommander struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run implements Commander
func (c ExecCommander) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	cmd.Env = os.Environ()
	return cmd.Run()
}

// Options configures a Runner
type Options struct {
	Commander Commander
	// UseSudo prefixes installs for apt, pacman and dnf with sudo
	UseSudo bool
	// StateDir holds run-once sentinels
	StateDir string
	// Force reruns scripts that already ran
	Force bool
	// Timeout bounds each command; zero means DefaultTimeout
	Timeout time.Duration
	// Out receives user-facing notices
	Out io.Writer
}

// Runner installs packages and runs scripts
type Runner struct {
	opts   Options
	logger zerolog.Logger
}

// Result records what a bootstrap run did
type Result struct {
	Installed      []Package
	FailedPackages []Package
	ScriptsRun     []Script
	ScriptsSkipped []Script
	FailedScripts  []Script
	Errors         []error
}

// Err joins every recorded failure, or returns nil
func (r *Result) Err() error {
	return stderrors.Join(r.Errors...)
}

// NewRunner creates a Runner, filling in defaults for unset options
func NewRunner(opts Options) *Runner {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Commander == nil {
		opts.Commander = ExecCommander{Stdout: opts.Out, Stderr: os.Stderr}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Runner{
		opts:   opts,
		logger: logging.GetLogger("bootstrap"),
	}
}

// Run installs every package and then runs every script. Failures do not
// stop the run; they are collected in the Result.
func (r *Runner) Run(ctx context.Context, cfg *Config) *Result {
	result := &Result{}
	if cfg == nil {
		r.logger.Info().Msg("No bootstrap section in manifest")
		return result
	}

	r.installPackages(ctx, cfg.Packages, result)
	r.runScripts(ctx, cfg.RunOnce, result)

	r.logger.Info().
		Int("installed", len(result.Installed)).
		Int("packagesFailed", len(result.FailedPackages)).
		Int("scriptsRun", len(result.ScriptsRun)).
		Int("scriptsSkipped", len(result.ScriptsSkipped)).
		Int("scriptsFailed", len(result.FailedScripts)).
		Msg("Bootstrap completed")

	return result
}

func (r *Runner) installPackages(ctx context.Context, packages []Package, result *Result) {
	if len(packages) == 0 {
		return
	}

	if !r.opts.UseSudo {
		r.warnSudo(packages)
	}

	for _, pkg := range packages {
		if err := ctx.Err(); err != nil {
			result.Errors = append(result.Errors, err)
			return
		}

		args := pkg.Manager.InstallCommand(pkg.Name, r.opts.UseSudo)
		if len(args) == 0 {
			err := errors.Newf(errors.ErrBootstrapPackage, "unsupported package manager %s", pkg.Manager).
				WithDetail("package", pkg.Name)
			result.FailedPackages = append(result.FailedPackages, pkg)
			result.Errors = append(result.Errors, err)
			continue
		}

		fmt.Fprintf(r.opts.Out, "Installing %s with %s...\n", pkg.Name, pkg.Manager)
		if err := r.run(ctx, args); err != nil {
			wrapped := errors.Wrapf(err, errors.ErrBootstrapPackage, "failed to install %s", pkg.Name).
				WithDetail("package", pkg.Name).
				WithDetail("manager", pkg.Manager.String())
			event := r.logger.Error().Err(wrapped).Str("package", pkg.Name)
			if pkg.Manager.NeedsSudo() && !r.opts.UseSudo {
				event = event.Str("hint", "sudo "+strings.Join(pkg.Manager.InstallCommand(pkg.Name, false), " "))
			}
			event.Msg("Package installation failed")

			result.FailedPackages = append(result.FailedPackages, pkg)
			result.Errors = append(result.Errors, wrapped)
			continue
		}

		r.logger.Info().Str("package", pkg.Name).Str("manager", pkg.Manager.String()).Msg("Package installed")
		result.Installed = append(result.Installed, pkg)
	}
}

// warnSudo lists the managers in packages that need root, once
func (r *Runner) warnSudo(packages []Package) {
	seen := map[string]bool{}
	for _, pkg := range packages {
		if pkg.Manager.NeedsSudo() {
			seen[pkg.Manager.String()] = true
		}
	}
	if len(seen) == 0 {
		return
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(r.opts.Out, "The following package managers require sudo privileges:")
	for _, name := range names {
		fmt.Fprintf(r.opts.Out, "   - %s\n", name)
	}
	fmt.Fprintln(r.opts.Out, "   Run with --sudo or install these packages manually.")
}

func (r *Runner) runScripts(ctx context.Context, scripts []Script, result *Result) {
	for _, script := range scripts {
		if err := ctx.Err(); err != nil {
			result.Errors = append(result.Errors, err)
			return
		}

		ran, err := r.runScript(ctx, script)
		switch {
		case err != nil:
			r.logger.Error().Err(err).Str("script", script.Path).Msg("Script failed")
			result.FailedScripts = append(result.FailedScripts, script)
			result.Errors = append(result.Errors, err)
		case ran:
			result.ScriptsRun = append(result.ScriptsRun, script)
		default:
			result.ScriptsSkipped = append(result.ScriptsSkipped, script)
		}
	}
}

// runScript returns whether the script was executed
func (r *Runner) runScript(ctx context.Context, script Script) (bool, error) {
	info, err := os.Stat(script.Path)
	if err != nil || info.IsDir() {
		return false, errors.Newf(errors.ErrBootstrapScript, "script file not found: %s", script.Path).
			WithDetail("script", script.Path)
	}

	checksum, err := hashutil.FileChecksum(script.Path)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrBootstrapScript, "failed to read script %s", script.Path).
			WithDetail("script", script.Path)
	}

	sentinel := r.sentinelPath(script.Path)
	if !r.opts.Force && sentinel != "" {
		if recorded, err := os.ReadFile(sentinel); err == nil && string(recorded) == checksum {
			r.logger.Info().Str("script", script.Path).Msg("Script already ran, skipping")
			return false, nil
		}
	}

	fmt.Fprintf(r.opts.Out, "Running: %s\n", script.Label())

	args := []string{script.Path}
	if filepath.Ext(script.Path) == ".sh" {
		args = []string{"bash", script.Path}
	} else if !filepath.IsAbs(script.Path) && !strings.ContainsRune(script.Path, filepath.Separator) {
		// exec would search PATH for a bare name
		args = []string{"." + string(filepath.Separator) + script.Path}
	}

	if err := r.run(ctx, args); err != nil {
		return false, errors.Wrapf(err, errors.ErrBootstrapScript, "script %s failed", script.Path).
			WithDetail("script", script.Path)
	}

	if sentinel != "" {
		if err := writeSentinel(sentinel, checksum); err != nil {
			r.logger.Warn().Err(err).Str("sentinel", sentinel).Msg("Failed to record script run")
		}
	}

	r.logger.Info().Str("script", script.Path).Msg("Script completed")
	return true, nil
}

func (r *Runner) run(ctx context.Context, args []string) error {
	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	logging.LogCommand(args[0], args[1:])
	return r.opts.Commander.Run(ctx, args[0], args[1:]...)
}

func (r *Runner) sentinelPath(script string) string {
	if r.opts.StateDir == "" {
		return ""
	}
	abs, err := filepath.Abs(script)
	if err != nil {
		abs = script
	}
	return filepath.Join(r.opts.StateDir, sentinelDir, hashutil.StringKey(abs))
}

func writeSentinel(path, checksum string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(checksum), 0644)
}
