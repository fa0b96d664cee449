package reporting

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelReporter writes the denial audit as an Excel workbook.
type ExcelReporter struct{}

// NewExcelReporter creates a new Excel reporter.
func NewExcelReporter() *ExcelReporter {
	return &ExcelReporter{}
}

type excelStyles struct {
	header int
	base   int
	reason int
}

// WriteAuditXLSX writes the collected denials and state transitions to
// an xlsx workbook at path, creating parent directories as needed.
func (r *ExcelReporter) WriteAuditXLSX(denials []DenialRecord, states []StateChangeRecord, path string) error {
	if err := EnsureParentDir(path); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const denialsSheet = "Denials"
	const statesSheet = "State Transitions"

	fx.SetSheetName(fx.GetSheetName(0), denialsSheet)
	if _, err := fx.NewSheet(statesSheet); err != nil {
		return err
	}

	styles, err := r.createStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeDenialsSheet(fx, denialsSheet, denials, styles); err != nil {
		return err
	}
	if err := r.writeStatesSheet(fx, statesSheet, states, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

func (r *ExcelReporter) createStyles(fx *excelize.File) (excelStyles, error) {
	var styles excelStyles
	var err error

	styles.header, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return styles, err
	}

	styles.base, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 10, Family: "Calibri"},
	})
	if err != nil {
		return styles, err
	}

	styles.reason, err = fx.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10, Family: "Calibri", Color: "8B0000"},
		Alignment: &excelize.Alignment{WrapText: true},
	})
	return styles, err
}

func (r *ExcelReporter) writeDenialsSheet(fx *excelize.File, sheet string, denials []DenialRecord, styles excelStyles) error {
	headers := []string{"Time (UTC)", "Kind", "Trader", "Strategy", "Instrument", "Client Order ID", "Reason"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := fx.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		fx.SetCellStyle(sheet, cell, cell, styles.header)
	}

	for row, rec := range denials {
		values := []interface{}{
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			rec.Kind,
			string(rec.TraderID),
			string(rec.StrategyID),
			rec.InstrumentID.String(),
			string(rec.ClientOrderID),
			rec.Reason,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := fx.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
			style := styles.base
			if col == len(values)-1 {
				style = styles.reason
			}
			fx.SetCellStyle(sheet, cell, cell, style)
		}
	}

	fx.SetColWidth(sheet, "A", "A", 20)
	fx.SetColWidth(sheet, "E", "F", 22)
	fx.SetColWidth(sheet, "G", "G", 60)
	return nil
}

func (r *ExcelReporter) writeStatesSheet(fx *excelize.File, sheet string, states []StateChangeRecord, styles excelStyles) error {
	headers := []string{"Time (UTC)", "Trader", "State"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := fx.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		fx.SetCellStyle(sheet, cell, cell, styles.header)
	}

	for row, rec := range states {
		values := []interface{}{
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			string(rec.TraderID),
			rec.State.String(),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := fx.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
			fx.SetCellStyle(sheet, cell, cell, styles.base)
		}
	}

	fx.SetColWidth(sheet, "A", "A", 20)
	return nil
}
