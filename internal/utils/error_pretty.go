package utils

import (
	"fmt"
	"io"
	"strings"
)

// PrettyPrintError writes every wrapped layer of err on its own, further
// indented line.
func PrettyPrintError(w io.Writer, err error) {
	parts := strings.Split(err.Error(), ": ")
	indent := 0
	for _, part := range parts {
		fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", indent), part)
		indent += 2
	}
}
