package display

import (
	"fmt"
	"io"

	"github.com/backmassage/smartencode/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Magenta)
	fmt.Fprint(w, `  ____                      _   _____                     _
 / ___| _ __ ___   __ _ _ __| |_| ____|_ __   ___ ___   __| | ___
 \___ \| '_ `+"`"+` _ \ / _`+"`"+` | '__| __|  _| | '_ \ / __/ _ \ / _`+"`"+` |/ _ \
  ___) | | | | | | (_| | |  | |_| |___| | | | (_| (_) | (_| |  __/
 |____/|_| |_| |_|\__,_|_|   \__|_____|_| |_|\___\___/ \__,_|\___|
`)
	if term.Enabled() {
		fmt.Fprintln(w, term.NC)
	}
}
