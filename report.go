package qverify

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	json "github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Render writes d in the named format.
func Render(w io.Writer, format string, d *Diagnosis) error {
	switch format {
	case FormatJSON:
		return RenderJSON(w, d)
	case FormatText, "":
		return RenderText(w, d)
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, format)
	}
}

func RenderJSON(w io.Writer, d *Diagnosis) error {
	if d == nil || d.Result == nil {
		return fmt.Errorf("%w: nothing to render", ErrEmptyResult)
	}

	buf, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}

	buf = append(buf, '\n')
	_, err = w.Write(buf)
	return err
}

// RenderText writes the human-readable report with a counts table.
func RenderText(w io.Writer, d *Diagnosis) error {
	if d == nil || d.Result == nil {
		return fmt.Errorf("%w: nothing to render", ErrEmptyResult)
	}

	fmt.Fprintln(w, headingStyle.Render("=== Entangling Circuit ==="))
	fmt.Fprintf(w, "Circuit: %s\n", d.Circuit.Name)
	fmt.Fprintf(w, "Circuit depth: %d\n", d.Circuit.Depth)
	fmt.Fprintf(w, "Number of qubits: %d\n", d.Circuit.NumQubits)
	fmt.Fprintln(w)

	fmt.Fprintln(w, headingStyle.Render("=== Simulation ==="))
	fmt.Fprintf(w, "Shots: %d\n", d.Result.TotalShots)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"State", "Outcome", "Count", "Percent"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, e := range d.Result.Entries {
		table.Append([]string{
			e.Key,
			string(e.Outcome),
			strconv.Itoa(e.Shots),
			fmt.Sprintf("%.1f%%", e.Percentage),
		})
	}
	table.Render()

	if d.Result.Passed() {
		fmt.Fprintln(w, passStyle.Render("✅ Verification passed"))
		fmt.Fprintf(w, "   Qubit states: %v\n", d.Result.Outcomes())
		return nil
	}

	fmt.Fprintln(w, failStyle.Render(fmt.Sprintf("⚠️  Unexpected states found: %v", d.Result.Unexpected)))
	fmt.Fprintf(w, "   Expected: %v\n", d.Expected)
	return nil
}

// RenderError writes the line shown when the verifier could not run.
func RenderError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("❌ Verification could not run: %v", err)))
}
