package provision

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"devkit/cli/djcreate/internal/execx"
	"devkit/cli/djcreate/internal/layout"
	"devkit/cli/djcreate/internal/runner"
)

// Commander runs external tools. *execx.Host satisfies it.
type Commander interface {
	Run(ctx context.Context, dir, name string, args ...string) execx.Result
	Capture(ctx context.Context, dir, name string, args ...string) (string, execx.Result)
}

// Fetcher downloads a remote document. *fetch.Client satisfies it.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

type Options struct {
	// Name is used verbatim as directory name and display text.
	Name string
	// BaseDir is where the project directory is created. It must be absolute.
	BaseDir     string
	GOOS        string
	Python      string
	Package     string
	TemplateURL string
}

type Provisioner struct {
	opts  Options
	cmd   Commander
	fetch Fetcher
}

func New(opts Options, cmd Commander, fetch Fetcher) *Provisioner {
	return &Provisioner{opts: opts, cmd: cmd, fetch: fetch}
}

// ResolveName returns the first argument, or defaultName with a logged
// warning. defaulted tells the caller to show the warning on the console.
func ResolveName(args []string, defaultName string, logger log.FieldLogger) (name string, defaulted bool) {
	if len(args) > 0 {
		logger.Infof("Project name: %s", args[0])
		return args[0], false
	}
	logger.Warnf("No project name was provided. Using %q.", defaultName)
	return defaultName, true
}

// DefaultNameWarning is the console text for a defaulted project name.
func DefaultNameWarning(defaultName string) string {
	return fmt.Sprintf("No project name was provided. Using %q.", defaultName)
}

func (p *Provisioner) ProjectDir() string {
	return layout.ProjectDir(p.opts.BaseDir, p.opts.Name)
}

func (p *Provisioner) envPython() string {
	return layout.EnvPython(p.ProjectDir(), p.opts.GOOS)
}

// FollowUp lists the commands the user runs in their own shell afterwards:
// the process cannot change its parent's directory or activate the
// environment there.
func (p *Provisioner) FollowUp() []string {
	return []string{
		"cd " + p.opts.Name,
		layout.ActivateCommand(p.opts.GOOS),
	}
}

// Steps returns the fixed provisioning sequence. Every step receives the
// project directory explicitly; the process working directory is never changed.
func (p *Provisioner) Steps() []runner.Step {
	dir := p.ProjectDir()
	py := p.envPython()
	return []runner.Step{
		p.createDirectory(dir),
		p.enterDirectory(dir),
		p.createEnvironment(dir),
		p.installFramework(dir, py),
		p.freezeRequirements(dir, py),
		p.tool("start-project", dir, "Generating project skeleton...", "Created Django project: ", layout.ProjectModule, false,
			py, "-m", "django", "startproject", layout.ProjectModule, "."),
		p.tool("migrate", dir, "Running initial migrations...", "Applied initial migrations.", "", false,
			py, layout.ManageScript, "migrate"),
		p.tool("create-superuser", dir, "Creating admin account...", "Created admin account.", "", true,
			py, layout.ManageScript, "createsuperuser"),
		p.fetchGitignore(dir),
	}
}

func (p *Provisioner) createDirectory(dir string) runner.Step {
	return runner.Step{
		Name: "create-directory",
		Kind: runner.KindFilesystem,
		Plan: runner.PlanEntry{Path: dir},
		Do: func(context.Context) (runner.Status, error) {
			if err := os.Mkdir(dir, 0o755); err != nil {
				return runner.Status{}, err
			}
			return runner.Status{Message: "Created project directory: ", Value: p.opts.Name}, nil
		},
	}
}

func (p *Provisioner) enterDirectory(dir string) runner.Step {
	return runner.Step{
		Name: "enter-directory",
		Kind: runner.KindFilesystem,
		Plan: runner.PlanEntry{Dir: dir},
		Do: func(context.Context) (runner.Status, error) {
			st, err := os.Stat(dir)
			if err != nil {
				return runner.Status{}, err
			}
			if !st.IsDir() {
				return runner.Status{}, fmt.Errorf("%s is not a directory", dir)
			}
			return runner.Status{Message: "Using project directory: ", Value: p.opts.Name}, nil
		},
	}
}

func (p *Provisioner) createEnvironment(dir string) runner.Step {
	argv := []string{p.opts.Python, "-m", "venv", layout.EnvDirName}
	return runner.Step{
		Name:     "create-environment",
		Kind:     runner.KindProcess,
		Progress: "Creating virtual environment...",
		Plan:     runner.PlanEntry{Command: argv, Dir: dir},
		Do: func(ctx context.Context) (runner.Status, error) {
			if err := p.cmd.Run(ctx, dir, argv[0], argv[1:]...).AsError(argv[0], argv[1:]...); err != nil {
				return runner.Status{}, err
			}
			return runner.Status{
				Message: "Created virtual environment: ",
				Value:   filepath.ToSlash(filepath.Join(p.opts.Name, layout.EnvDirName)),
			}, nil
		},
	}
}

func (p *Provisioner) installFramework(dir, py string) runner.Step {
	argv := []string{py, "-m", "pip", "install", p.opts.Package}
	return runner.Step{
		Name:     "install-framework",
		Kind:     runner.KindProcess,
		Progress: fmt.Sprintf("Installing %s...", p.opts.Package),
		Plan:     runner.PlanEntry{Command: argv, Dir: dir},
		Do: func(ctx context.Context) (runner.Status, error) {
			if err := p.cmd.Run(ctx, dir, argv[0], argv[1:]...).AsError(argv[0], argv[1:]...); err != nil {
				return runner.Status{}, err
			}
			return runner.Status{Message: "Installed ", Value: p.opts.Package}, nil
		},
	}
}

func (p *Provisioner) freezeRequirements(dir, py string) runner.Step {
	argv := []string{py, "-m", "pip", "freeze"}
	path := filepath.Join(dir, layout.RequirementsFile)
	return runner.Step{
		Name:     "freeze-requirements",
		Kind:     runner.KindProcess,
		Progress: "Freezing installed packages...",
		Plan:     runner.PlanEntry{Command: argv, Dir: dir, Path: path},
		Do: func(ctx context.Context) (runner.Status, error) {
			out, res := p.cmd.Capture(ctx, dir, argv[0], argv[1:]...)
			if err := res.AsError(argv[0], argv[1:]...); err != nil {
				return runner.Status{}, err
			}
			if strings.TrimSpace(out) == "" {
				return runner.Status{}, errors.New("pip freeze listed no packages")
			}
			if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
				return runner.Status{}, runner.Fail(runner.KindFilesystem, err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return runner.Status{}, runner.Fail(runner.KindFilesystem, err)
			}
			return runner.Status{Message: "Wrote ", Value: layout.RequirementsFile, Detail: string(data)}, nil
		},
	}
}

// tool runs one command of the freshly created environment in dir.
func (p *Provisioner) tool(name, dir, progress, msg, value string, interactive bool, argv ...string) runner.Step {
	return runner.Step{
		Name:     name,
		Kind:     runner.KindProcess,
		Progress: progress,
		Plan:     runner.PlanEntry{Command: argv, Dir: dir, Interactive: interactive},
		Do: func(ctx context.Context) (runner.Status, error) {
			if err := p.cmd.Run(ctx, dir, argv[0], argv[1:]...).AsError(argv[0], argv[1:]...); err != nil {
				return runner.Status{}, err
			}
			return runner.Status{Message: msg, Value: value}, nil
		},
	}
}

func (p *Provisioner) fetchGitignore(dir string) runner.Step {
	path := filepath.Join(dir, layout.GitignoreFile)
	return runner.Step{
		Name:     "fetch-gitignore",
		Kind:     runner.KindNetwork,
		Progress: "Downloading .gitignore template...",
		Plan:     runner.PlanEntry{URL: p.opts.TemplateURL, Path: path},
		Do: func(ctx context.Context) (runner.Status, error) {
			body, err := p.fetch.Get(ctx, p.opts.TemplateURL)
			if err != nil {
				return runner.Status{}, err
			}
			if err := os.WriteFile(path, body, 0o644); err != nil {
				return runner.Status{}, runner.Fail(runner.KindFilesystem, err)
			}
			return runner.Status{Message: "Created ", Value: layout.GitignoreFile}, nil
		},
	}
}
