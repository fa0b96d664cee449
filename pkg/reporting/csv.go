package reporting

import (
	"encoding/csv"
	"os"
	"strings"
)

// CSVReporter writes the denial audit as CSV files.
type CSVReporter struct{}

// NewCSVReporter creates a CSV reporter.
func NewCSVReporter() *CSVReporter {
	return &CSVReporter{}
}

// WriteAuditCSV writes denial records to path. An .xlsx path delegates
// to the Excel writer so callers can pick the format by extension.
func (r *CSVReporter) WriteAuditCSV(denials []DenialRecord, states []StateChangeRecord, path string) error {
	if err := EnsureParentDir(path); err != nil {
		return err
	}

	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return NewExcelReporter().WriteAuditXLSX(denials, states, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{
		"Time",
		"Kind",
		"Trader",
		"Strategy",
		"Instrument",
		"Client_Order_ID",
		"Reason",
	}); err != nil {
		return err
	}

	for _, rec := range denials {
		if err := w.Write([]string{
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			rec.Kind,
			string(rec.TraderID),
			string(rec.StrategyID),
			rec.InstrumentID.String(),
			string(rec.ClientOrderID),
			rec.Reason,
		}); err != nil {
			return err
		}
	}

	return nil
}
