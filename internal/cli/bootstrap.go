package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/dotsync/pkg/bootstrap"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/manifest"
	"github.com/spf13/cobra"
)

func newBootstrapCmd(a *app) *cobra.Command {
	var (
		manifestFlag string
		force        bool
		sudo         bool
	)

	cmd := &cobra.Command{
		Use:     "bootstrap",
		Short:   MsgBootstrapShort,
		Long:    MsgBootstrapLong,
		Example: MsgBootstrapExample,
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

			doc, err := manifest.Load(manifestPath(manifestFlag, cfg))
			if err != nil {
				return err
			}
			if doc.Bootstrap == nil {
				return r.RenderMessage(MsgNoBootstrap)
			}

			useSudo := cfg.Bootstrap.UseSudo
			if cmd.Flags().Changed("sudo") {
				useSudo = sudo
			}

			logger := logging.GetLogger("cli.bootstrap")
			logger.Info().
				Int("packages", len(doc.Bootstrap.Packages)).
				Int("scripts", len(doc.Bootstrap.RunOnce)).
				Bool("sudo", useSudo).
				Bool("force", force).
				Msg("Starting bootstrap")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			runner := bootstrap.NewRunner(bootstrap.Options{
				UseSudo:  useSudo,
				StateDir: cfg.Bootstrap.StateDir,
				Force:    force,
				Timeout:  cfg.Bootstrap.Timeout,
				Out:      cmd.ErrOrStderr(),
			})
			result := runner.Run(ctx, doc.Bootstrap)

			if err := r.RenderResult(result); err != nil {
				return err
			}
			if n := len(result.Errors); n > 0 {
				return fmt.Errorf(MsgErrBootstrap, n)
			}
			return nil
		},
	}

	addManifestFlag(cmd, &manifestFlag)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	cmd.Flags().BoolVar(&sudo, "sudo", true, MsgFlagSudo)

	return cmd
}
