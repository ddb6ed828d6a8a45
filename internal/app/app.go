// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"primerfig/internal/appcore"
	"primerfig/internal/cli"
	"primerfig/internal/cliutil"
	"primerfig/internal/cmdutil"
	"primerfig/internal/config"
	"primerfig/internal/output"
	"primerfig/internal/version"
	"primerfig/internal/visitors"
)

// usageError marks bad flags or arguments (exit code 2).
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// exitError carries a non-zero code out of a RunE.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit %d", e.code) }

type state struct {
	stdout, stderr io.Writer

	common cli.Common
	v      *viper.Viper
	cfg    config.Config
	log    *cmdutil.Logger
}

func newRootCmd(st *state) *cobra.Command {
	root := &cobra.Command{
		Use:   "primerfig",
		Short: "Draw primer-pair layouts around a target site",
		Long: `primerfig turns primer-design results (JSON, HTML result panels or TSV)
into one diagram per target site: an axis over the primer footprints, the
target highlighted in red and one arrow pair per primer, darker for fewer
off-target hits.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return st.loadConfig(cmd)
		},
	}
	root.SetVersionTemplate("primerfig version {{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })
	cli.RegisterCommon(root.PersistentFlags(), &st.common)

	root.AddCommand(newRenderCmd(st), newExportCmd(st), newVersionCmd(st))
	return root
}

func (st *state) loadConfig(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(st.common.EnvFile); err != nil {
		return usageError{err}
	}
	for name, key := range cli.ConfigKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := st.v.BindPFlag(key, f); err != nil {
				return usageError{err}
			}
		}
	}
	cfg, err := config.Load(st.v, st.common.ConfigFile)
	if err != nil {
		return usageError{err}
	}
	st.cfg = cfg
	level := cfg.LogLevel()
	if st.common.Quiet {
		level = cmdutil.LevelError
	}
	st.log = cmdutil.NewLogger(st.stderr, level)
	st.log.Debugf("config: %+v", cfg)
	return nil
}

func newRenderCmd(st *state) *cobra.Command {
	var o cli.RenderOptions
	cmd := &cobra.Command{
		Use:   "render [flags] FILE...",
		Short: "Render one diagram per site as SVG, PNG, JSON or text",
		Example: `  primerfig render results.json > site.svg
  primerfig render -f png -o figs/ panels.html
  primerfig render -f text --width 1000 sites.tsv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := cliutil.ExpandPositionals(args)
			if err != nil {
				return usageError{err}
			}
			o.Inputs = paths
			if err := o.Validate(); err != nil {
				return usageError{err}
			}
			inputs, err := appcore.LoadInputs(paths, o.InputFormat)
			if err != nil {
				return exitError{ioFailure(st.stderr, err)}
			}
			single := o.Format == output.FormatSVG || o.Format == output.FormatPNG
			if o.OutDir == "" && single && len(inputs) > 1 {
				return usageError{fmt.Errorf("%d sites found: --format %s writes one site to stdout, use --out-dir", len(inputs), o.Format)}
			}

			cfg := st.cfg
			var wf appcore.WriterFactory = appcore.NewStreamWriterFactory(o.Format, cfg.RasterOptions())
			if o.OutDir != "" {
				wf = appcore.NewDirWriterFactory(o.OutDir, o.Format, cfg.RasterOptions())
			}
			visit := appcore.VisitorFunc(visitors.Rendered{Log: st.log}.Visit)
			if o.Unique {
				visit = visitors.NewUniqueSites(st.log).Visit
			}
			code := appcore.Run(cmd.Context(), st.stdout, st.stderr, appcore.Options{
				Inputs:            inputs,
				Width:             cfg.Render.Width,
				Height:            cfg.Render.Height,
				Zoom:              cfg.Render.Zoom,
				Threads:           cfg.Render.Threads,
				Diagram:           cfg.DiagramOptions(),
				Viewport:          cfg.ViewportOptions(),
				Log:               st.log,
				NoDiagramExitCode: 1,
			}, visit, wf)
			return exitCode(code)
		},
	}
	cli.RegisterRender(cmd.Flags(), &o)
	return cmd
}

func newExportCmd(st *state) *cobra.Command {
	var o cli.ExportOptions
	cmd := &cobra.Command{
		Use:   "export [flags] FILE...",
		Short: "Write the primer list (site, rank, penalty, hits, sequences) as TSV or XLSX",
		Example: `  primerfig export --max-hit 10 results.json > primers.tsv
  primerfig export -f xlsx -o primers.xlsx panels.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := cliutil.ExpandPositionals(args)
			if err != nil {
				return usageError{err}
			}
			o.Inputs = paths
			if err := o.Validate(); err != nil {
				return usageError{err}
			}
			inputs, err := appcore.LoadInputs(paths, o.InputFormat)
			if err != nil {
				return exitError{ioFailure(st.stderr, err)}
			}

			out := st.stdout
			if o.Output != "" && o.Output != "-" {
				fh, err := os.Create(o.Output)
				if err != nil {
					return exitError{ioFailure(st.stderr, err)}
				}
				defer func() { _ = fh.Close() }()
				out = fh
			}
			code := appcore.Export(cmd.Context(), out, st.stderr, appcore.ExportOptions{
				Inputs:         inputs,
				Format:         o.Format,
				MaxHit:         o.MaxHit,
				Sort:           o.Sort,
				Log:            st.log,
				NoSiteExitCode: 1,
			})
			return exitCode(code)
		},
	}
	cli.RegisterExport(cmd.Flags(), &o)
	return cmd
}

func newVersionCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// Printing the version never needs configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(*cobra.Command, []string) error {
			_, err := fmt.Fprintf(st.stdout, "primerfig version %s\n", version.Version)
			return err
		},
	}
}

func ioFailure(stderr io.Writer, err error) int {
	_, _ = fmt.Fprintln(stderr, err)
	return 3
}

func exitCode(code int) error {
	if code == 0 {
		return nil
	}
	return exitError{code}
}

// RunContext executes argv and returns the process exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	st := &state{stdout: stdout, stderr: stderr, v: viper.New()}
	root := newRootCmd(st)
	root.SetArgs(argv)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(parent)
	var ee exitError
	var ue usageError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &ee):
		return ee.code
	case errors.As(err, &ue):
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		_, _ = fmt.Fprint(stderr, cmd.UsageString())
		return 2
	case errors.Is(err, context.Canceled):
		return 130
	default:
		// Cobra's own argument errors (unknown command, bad arg count).
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
