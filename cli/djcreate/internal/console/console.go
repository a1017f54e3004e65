// Package console prints the styled status lines a user watches while a
// project is being created.
package console

import (
	"io"

	"github.com/fatih/color"
)

type Console struct {
	out      io.Writer
	header   *color.Color
	ok       *color.Color
	value    *color.Color
	progress *color.Color
	warn     *color.Color
	fail     *color.Color
}

func New(out io.Writer) *Console {
	return &Console{
		out:      out,
		header:   color.New(color.Bold, color.FgHiMagenta),
		ok:       color.New(color.FgHiGreen),
		value:    color.New(color.Bold, color.FgHiBlue),
		progress: color.New(color.FgHiCyan),
		warn:     color.New(color.FgHiYellow),
		fail:     color.New(color.Bold, color.FgHiRed),
	}
}

// EnableANSI routes output through a colorable stdout on Windows consoles,
// which otherwise print escape sequences verbatim. It reports whether the
// writer was swapped.
func (c *Console) EnableANSI(goos string) bool {
	if goos != "windows" {
		return false
	}
	c.out = color.Output
	return true
}

// Writer exposes the underlying writer for unstyled documents.
func (c *Console) Writer() io.Writer { return c.out }

func (c *Console) Header(msg string) {
	c.header.Fprint(c.out, msg)
	io.WriteString(c.out, "\n\n")
}

// OK prints a green status line with an optional highlighted value.
func (c *Console) OK(msg, value string) {
	c.ok.Fprint(c.out, msg)
	if value != "" {
		c.value.Fprint(c.out, value)
	}
	io.WriteString(c.out, "\n")
}

func (c *Console) Progress(msg string) {
	c.progress.Fprintln(c.out, msg)
}

func (c *Console) Warn(msg string) {
	c.warn.Fprint(c.out, msg)
	io.WriteString(c.out, "\n\n")
}

func (c *Console) Fail(err error) {
	c.fail.Fprintln(c.out, err.Error())
}

// Command prints a shell command on its own line, untouched.
func (c *Console) Command(cmd string) {
	c.value.Fprintln(c.out, cmd)
}

func (c *Console) Plain(text string) {
	io.WriteString(c.out, text)
}
