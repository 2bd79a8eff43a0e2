// Package terminal prints user-facing CLI output. Colors are dropped when
// the output is not a terminal.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Colors for terminal output. They are empty strings when color is off.
var (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
)

var out io.Writer = os.Stdout

func init() {
	SetOutput(os.Stdout)
}

// SetOutput redirects all helpers to w. Color stays on only when w is a
// terminal and NO_COLOR is unset.
func SetOutput(w io.Writer) {
	out = w
	SetColor(IsTerminal(w) && os.Getenv("NO_COLOR") == "")
}

// Output returns the current writer.
func Output() io.Writer { return out }

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w any) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// SetColor turns escape sequences on or off.
func SetColor(on bool) {
	if !on {
		Reset, Bold, Dim, Red, Green, Yellow, Blue, Magenta, Cyan = "", "", "", "", "", "", "", "", ""
		return
	}
	Reset = "\033[0m"
	Bold = "\033[1m"
	Dim = "\033[2m"
	Red = "\033[31m"
	Green = "\033[32m"
	Yellow = "\033[33m"
	Blue = "\033[34m"
	Magenta = "\033[35m"
	Cyan = "\033[36m"
}

// UI helper functions.

// Success prints a green success message.
func Success(msg string) {
	fmt.Fprintf(out, "%s%s✓%s %s\n", Bold, Green, Reset, msg)
}

// Error prints a red error message.
func Error(msg string) {
	fmt.Fprintf(out, "%s%s✗%s %s\n", Bold, Red, Reset, msg)
}

// Info prints a blue info message.
func Info(msg string) {
	fmt.Fprintf(out, "%s%si%s %s\n", Bold, Blue, Reset, msg)
}

// Warning prints a yellow warning message.
func Warning(msg string) {
	fmt.Fprintf(out, "%s%s!%s %s\n", Bold, Yellow, Reset, msg)
}

// Header prints a bold header.
func Header(msg string) {
	fmt.Fprintf(out, "\n%s%s%s\n", Bold, msg, Reset)
}

// Detail prints an indented detail line.
func Detail(label, value string) {
	fmt.Fprintf(out, "  %s%s:%s %s\n", Dim, label, Reset, value)
}

// Item prints one numbered list row: position, id, then a dimmed note.
func Item(pos int, id, note string) {
	if note == "" {
		fmt.Fprintf(out, "  %s%3d%s  %s\n", Dim, pos, Reset, id)
		return
	}
	fmt.Fprintf(out, "  %s%3d%s  %-28s %s%s%s\n", Dim, pos, Reset, id, Dim, note, Reset)
}

// Divider prints a horizontal line.
func Divider() {
	fmt.Fprintf(out, "%s%s%s\n", Dim, strings.Repeat("─", 60), Reset)
}

// Banner prints the shell welcome box with the given edition and version.
func Banner(edition, version string) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s╭─────────────────────────────────╮%s\n", Dim, Reset)
	fmt.Fprintf(out, "  %s│%s  capreg %s%-24s%s%s│%s\n", Dim, Reset, Bold, "v"+version, Reset, Dim, Reset)
	fmt.Fprintf(out, "  %s│%s  %-31s%s│%s\n", Dim, Reset, edition+" edition", Dim, Reset)
	fmt.Fprintf(out, "  %s╰─────────────────────────────────╯%s\n", Dim, Reset)
	fmt.Fprintln(out)
}

// Mark returns a colored check or cross.
func Mark(ok bool) string {
	if ok {
		return Green + "✓" + Reset
	}
	return Red + "✗" + Reset
}
