// Package provision defines the Django bootstrap sequence: project
// directory, virtual environment, django install, requirements freeze,
// startproject, migrate, createsuperuser and a .gitignore from the template
// service.
//
// Environment tools are always invoked through the environment's own
// interpreter by absolute path. Activating the environment from a child
// process would not reach the user's shell, so the run ends by printing the
// activation command instead.
package provision
