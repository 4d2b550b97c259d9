package internal

import (
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"directive-mapper/internal/config"
	"directive-mapper/internal/gen"
	"directive-mapper/internal/plan"
)

// app holds the state shared by all commands.
type app struct {
	getenv func(string) string
	stdout io.Writer
	stderr io.Writer

	configFlag string
	outputFlag string
	debugFlag  bool

	cfg *config.Config
	log logr.Logger
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mapper-generator",
		Short: "Resolve mapping directives into conversion plans",
		Long: "mapper-generator reads mapping directives from Go comments (//mapper:to ...)\n" +
			"and YAML directive files, validates them and resolves one mapping tree per\n" +
			"destination and strategy. Arguments ending in .yaml or .yml are directive\n" +
			"files, anything else is a Go package pattern.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.preRun,
	}

	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.PersistentFlags().StringVarP(&a.configFlag, "config", "c", config.DefaultFile, "Configuration file")
	cmd.PersistentFlags().StringVarP(&a.outputFlag, "output", "o", "", "Output format. One of: (json | yaml)")
	cmd.PersistentFlags().BoolVar(&a.debugFlag, "debug", false, "Set log level to debug")

	cmd.AddCommand(
		newResolveCmd(a),
		newCheckCmd(a),
		newGenCmd(a),
	)

	return cmd
}

// preRun loads the configuration and sets up logging once flags are parsed.
func (a *app) preRun(cmd *cobra.Command, _ []string) error {
	switch a.outputFlag {
	case "", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format %q", a.outputFlag)
	}

	a.log = newLogger(a.stderr, logLevel(a.debugFlag, a.getenv("MAPPER_LOG")))

	cfg, err := config.LoadOrDefault(a.configFlag)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration %s: %w", a.configFlag, err)
	}

	a.cfg = cfg
	a.log.V(1).Info("configuration loaded", "file", a.configFlag,
		"packages", len(cfg.Packages), "directives", len(cfg.Directives))

	return nil
}

func (a *app) resolver() *plan.Resolver {
	rc := plan.DefaultConfig()
	rc.Parallelism = a.cfg.Parallelism

	return plan.NewResolver(rc, a.log.WithName("resolver"))
}

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [packages | directive files]",
		Short: "Resolve directives and print the mapping plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			tds, err := a.load(args)
			if err != nil {
				return err
			}

			p, err := a.resolver().ResolveAll(cmd.Context(), tds)
			if err != nil {
				return err
			}

			return a.renderPlan(p)
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [packages | directive files]",
		Short: "Validate directives and report every failing type",
		RunE: func(cmd *cobra.Command, args []string) error {
			tds, err := a.load(args)
			if err != nil {
				return err
			}

			p, diags := a.resolver().Check(cmd.Context(), tds)
			a.renderCheck(len(p.Types), diags)

			if diags.HasErrors() {
				return fmt.Errorf("%d of %d types failed", len(diags.Errors), len(tds))
			}

			return nil
		},
	}
}

func newGenCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "gen [packages | directive files]",
		Short: "Generate conversion methods for every resolved tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			tds, err := a.load(args)
			if err != nil {
				return err
			}

			p, err := a.resolver().ResolveAll(cmd.Context(), tds)
			if err != nil {
				return err
			}

			gc := gen.DefaultGeneratorConfig()
			gc.PackageName = a.cfg.Output.Package
			gc.OutputDir = a.cfg.Output.Dir
			gc.GenerateComments = a.cfg.Output.GenerateComments()

			if a.cfg.Output.Suffix != "" {
				gc.FileSuffix = a.cfg.Output.Suffix
			}

			files, err := gen.NewGenerator(gc).Generate(p)
			if err != nil {
				return err
			}

			if dryRun {
				for _, f := range files {
					_, _ = fmt.Fprintf(a.stdout, "// %s\n%s\n", f.Filename, f.Content)
				}

				return nil
			}

			if err := gen.WriteFiles(files, gc.OutputDir); err != nil {
				return err
			}

			a.renderGenerated(files, gc.OutputDir)

			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print generated code instead of writing files")

	return cmd
}
