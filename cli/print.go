package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// Color output helpers
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

func printSuccess(w io.Writer, msg string, args ...interface{}) {
	fmt.Fprintf(w, colorGreen+"✓ "+msg+colorReset+"\n", args...)
}

func printError(w io.Writer, msg string, args ...interface{}) {
	fmt.Fprintf(w, colorRed+"✗ "+msg+colorReset+"\n", args...)
}

func printInfo(w io.Writer, msg string, args ...interface{}) {
	fmt.Fprintf(w, colorCyan+"ℹ "+msg+colorReset+"\n", args...)
}

func printWarning(w io.Writer, msg string, args ...interface{}) {
	fmt.Fprintf(w, colorYellow+"⚠ "+msg+colorReset+"\n", args...)
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// table writes tab separated rows as aligned columns
func table(w io.Writer, header string, rows []string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	for _, row := range rows {
		fmt.Fprintln(tw, row)
	}
	return tw.Flush()
}
