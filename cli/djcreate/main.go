package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"devkit/cli/djcreate/internal/config"
	"devkit/cli/djcreate/internal/console"
	"devkit/cli/djcreate/internal/execx"
	"devkit/cli/djcreate/internal/fetch"
	"devkit/cli/djcreate/internal/logging"
	"devkit/cli/djcreate/internal/provision"
	"devkit/cli/djcreate/internal/runner"
)

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "djcreate [project-name]",
		Short: "Create a Django project with its own virtual environment",
		Long: `djcreate creates <project-name>/ (default "django-project"), sets up a
virtual environment in env/, installs Django, generates the "main" project,
runs the initial migration, asks for an admin account and downloads a
.gitignore template.

Tunables are read from DJCREATE_* environment variables.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args)
		},
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.Load(runtime.GOOS)
	if err != nil {
		return err
	}
	logger, closer, err := logging.Open(cfg.LogFile, config.LoggerName, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()
	entry := logger.WithField("run", uuid.NewString())

	entry.Info("Starting Django Project Creator")
	name, defaulted := provision.ResolveName(args, config.DefaultProject, entry)

	con := console.New(os.Stdout)
	con.EnableANSI(runtime.GOOS)
	con.Header("Starting Django Project Creator...")
	if defaulted {
		con.Warn(provision.DefaultNameWarning(config.DefaultProject))
	}

	base, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	p := provision.New(provision.Options{
		Name:        name,
		BaseDir:     base,
		GOOS:        runtime.GOOS,
		Python:      cfg.Python,
		Package:     cfg.Package,
		TemplateURL: cfg.TemplateURL,
	}, execx.NewHost(cfg.Debug), fetch.New(cfg.FetchTimeout, cfg.UserAgent))

	return runner.New(entry, con, cfg.DryRun).Run(ctx, p.Steps(), p.FollowUp())
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		red := color.New(color.Bold, color.FgRed)
		red.Fprint(os.Stderr, "Error: ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
