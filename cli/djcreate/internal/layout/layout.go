package layout

import (
	"path/filepath"
)

const (
	// EnvDirName is the project subdirectory holding the virtual environment.
	EnvDirName = "env"
	// ProjectModule is the Django project package startproject generates.
	ProjectModule    = "main"
	RequirementsFile = "requirements.txt"
	GitignoreFile    = ".gitignore"
	ManageScript     = "manage.py"
)

// ProjectDir places name under base exactly as given. An absolute name is
// returned unchanged; otherwise the result is not cleaned, so "missing/../b"
// still needs "missing" to exist when the directory is created.
func ProjectDir(base, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return base + string(filepath.Separator) + name
}

// EnvDir returns the virtual environment root inside projectDir.
func EnvDir(projectDir string) string {
	return filepath.Join(projectDir, EnvDirName)
}

// EnvPython returns the interpreter inside the environment. Tools are always
// run through this path so they act on the environment, not the host install.
//   - windows: <project>/env/Scripts/python.exe
//   - others : <project>/env/bin/python
func EnvPython(projectDir, goos string) string {
	if goos == "windows" {
		return filepath.Join(EnvDir(projectDir), "Scripts", "python.exe")
	}
	return filepath.Join(EnvDir(projectDir), "bin", "python")
}

// DefaultPython is the host interpreter used to create the environment.
func DefaultPython(goos string) string {
	if goos == "windows" {
		return "python"
	}
	return "python3"
}

// ActivateCommand is the shell command a user runs inside the project
// directory to activate the environment in their own shell.
func ActivateCommand(goos string) string {
	if goos == "windows" {
		return `.\` + EnvDirName + `\Scripts\activate`
	}
	return "source " + EnvDirName + "/bin/activate"
}
