package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "gooze.dev/pkg/fuzzmut/internal/model"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// SimpleUI implements UI by printing to the cobra command's output.
type SimpleUI struct {
	cmd    *cobra.Command
	styled bool
	mode   StartMode
}

// NewSimpleUI creates a new SimpleUI. When styled is set, headings and
// statuses are rendered with lipgloss.
func NewSimpleUI(cmd *cobra.Command, styled bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, styled: styled}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	config := StartConfig{mode: ModeList}
	for _, option := range options {
		option(&config)
	}

	s.mode = config.mode

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayStrategies prints the registered strategies as a table.
func (s *SimpleUI) DisplayStrategies(ctx context.Context, strategies []m.StrategyInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s\n%s", s.heading("Strategies"), renderStrategyTable(strategies))

	return nil
}

func renderStrategyTable(strategies []m.StrategyInfo) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Strategy", "Family", "Seed Index", "Description"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	for _, info := range strategies {
		seeded := "-"
		if info.Seeded {
			seeded = "yes"
		}

		table.Append([]string{string(info.Strategy), string(info.Family), seeded, info.Description})
	}

	table.SetFooter([]string{fmt.Sprintf("Total %d", len(strategies)), "", "", ""})
	table.Render()

	return tableBuffer.String()
}

// DisplayRunInfo shows what a batch run is about to do.
func (s *SimpleUI) DisplayRunInfo(ctx context.Context, info RunInfo) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n", s.heading("Generating test cases"))
	s.printf("Running %d job(s) over %d file(s) with %d worker(s), seed %d (Shard %d/%d)\n",
		info.Jobs, info.Files, info.Parallel, info.Seed, info.ShardIndex, info.ShardCount)
}

// DisplayJobResult reports jobs that did not produce a test case.
func (s *SimpleUI) DisplayJobResult(ctx context.Context, report m.Report) {
	if err := ctx.Err(); err != nil {
		return
	}

	switch report.Status {
	case m.Generated:
		return
	case m.Skipped:
		s.printf("%s %s (%s #%d): %s\n", s.style(skippedStyle, report.Status.String()), report.Input, report.Strategy, report.Iteration, report.Err)
	case m.Failed:
		s.printf("%s %s (%s #%d): %s\n", s.style(failedStyle, report.Status.String()), report.Input, report.Strategy, report.Iteration, report.Err)
	}
}

// DisplayRunSummary prints per-strategy counts.
func (s *SimpleUI) DisplayRunSummary(ctx context.Context, summaries []m.RunSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s\n%s", s.heading("Summary"), renderSummaryTable(summaries))

	return nil
}

func renderSummaryTable(summaries []m.RunSummary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Strategy", "Generated", "Skipped", "Failed", "Bytes"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_RIGHT,
	})

	var total m.RunSummary

	for _, summary := range summaries {
		table.Append([]string{
			string(summary.Strategy),
			fmt.Sprintf("%d", summary.Generated),
			fmt.Sprintf("%d", summary.Skipped),
			fmt.Sprintf("%d", summary.Failed),
			fmt.Sprintf("%d", summary.Bytes),
		})

		total.Generated += summary.Generated
		total.Skipped += summary.Skipped
		total.Failed += summary.Failed
		total.Bytes += summary.Bytes
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total %d", len(summaries)),
		fmt.Sprintf("%d", total.Generated),
		fmt.Sprintf("%d", total.Skipped),
		fmt.Sprintf("%d", total.Failed),
		fmt.Sprintf("%d", total.Bytes),
	})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) heading(text string) string {
	return s.style(headingStyle, text)
}

func (s *SimpleUI) style(style lipgloss.Style, text string) string {
	if !s.styled {
		return text
	}

	return style.Render(text)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
