package reporting

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// ConsoleReporter renders the denial audit as a terminal table.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a reporter writing to stdout.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{out: os.Stdout}
}

// NewConsoleReporterWithWriter creates a reporter writing to w.
func NewConsoleReporterWithWriter(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: w}
}

// RenderDenials writes the denial audit table.
func (r *ConsoleReporter) RenderDenials(records []DenialRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle("DENIAL AUDIT")
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Time", "Kind", "Instrument", "Client Order ID", "Reason"})
	for _, rec := range records {
		t.AppendRow(table.Row{
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			rec.Kind,
			rec.InstrumentID.String(),
			string(rec.ClientOrderID),
			rec.Reason,
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 19, WidthMax: 19, Align: text.AlignLeft},
		{Number: 2, WidthMin: 15, WidthMax: 15, Align: text.AlignLeft},
		{Number: 3, WidthMin: 14, WidthMax: 20, Align: text.AlignLeft},
		{Number: 5, WidthMin: 30, WidthMax: 70, Align: text.AlignLeft},
	})

	t.Render()
}

// RenderStateChanges writes the trading state transition table.
func (r *ConsoleReporter) RenderStateChanges(records []StateChangeRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle("TRADING STATE TRANSITIONS")
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Time", "Trader", "State"})
	for _, rec := range records {
		t.AppendRow(table.Row{
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			string(rec.TraderID),
			rec.State.String(),
		})
	}

	t.Render()
}
