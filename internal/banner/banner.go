package banner

import (
	"io"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
)

// PrintBanner writes the startup banner to w.
func PrintBanner(w io.Writer, endpoint string) {
	myFigure := figure.NewFigure("LENS", "doom", true)
	figure.Write(w, myFigure)

	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)

	_, _ = cyan.Fprintln(w, "════════════════════════════════════════════════")
	_, _ = green.Fprintln(w, "    StrengthLens | live password strength feedback")
	_, _ = green.Fprintf(w, "    scoring service: %s\n", endpoint)
	_, _ = cyan.Fprintln(w, "════════════════════════════════════════════════")
}
