package diag

import (
	"fmt"
	"io"
)

// Shower wraps the Show method.
type Shower interface {
	// Show takes an indentation string and shows.
	Show(indent string) string
}

// Styling of culprits and error messages. Disabled with [DisableStyling] when
// the output is not a terminal.
var (
	errorStyle   = "31;1"
	culpritStyle = "1;4"

	useStyling = true
)

// DisableStyling turns off all terminal escape sequences in shown output.
func DisableStyling() { useStyling = false }

func styled(s, style string) string {
	if !useStyling || s == "" {
		return s
	}
	return "\033[" + style + "m" + s + "\033[m"
}

// ShowError shows an error to the writer. It uses the Show method if the
// error implements [Shower], and prints the message in the error style
// otherwise.
func ShowError(w io.Writer, err error) {
	if shower, ok := err.(Shower); ok {
		fmt.Fprintln(w, shower.Show(""))
	} else {
		fmt.Fprintln(w, styled(err.Error(), errorStyle))
	}
}
