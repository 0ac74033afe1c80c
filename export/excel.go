package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/intervention-engine/strokerisk/store"
)

// SheetName is the worksheet the checks are written to
const SheetName = "Stroke Checks"

// ChecksHeader is the header row of the export, one column per value
var ChecksHeader = []string{
	"Check ID",
	"Name",
	"Checked At",
	"Age",
	"Gender",
	"Smoking",
	"Height (cm)",
	"Weight (kg)",
	"Systolic BP",
	"Diastolic BP",
	"BP Medication",
	"Diabetes",
	"HDL",
	"LDL",
	"Total Cholesterol",
	"Triglycerides",
	"BMI",
	"Total Score",
	"Stroke Risk (%)",
	"Risk Level",
	"Cerebral Infarction (%)",
	"Myocardial Infarction (%)",
	"Stroke All Types (%)",
	"Vascular Age",
}

var columnWidths = map[string]float64{
	"Check ID":   38,
	"Name":       20,
	"Checked At": 22,
	"Risk Level": 15,
}

// GenerateChecksExport writes the checks to an xlsx workbook, one row per check in the order given.  Values
// that were not entered or do not apply are left blank.
func GenerateChecksExport(checks []*store.Check) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range ChecksHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(SheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
		if width, ok := columnWidths[header]; ok {
			name, err := excelize.ColumnNumberToName(col + 1)
			if err != nil {
				return nil, fmt.Errorf("failed to convert column number: %w", err)
			}
			if err := f.SetColWidth(SheetName, name, name, width); err != nil {
				return nil, fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}

	for i, check := range checks {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		row := checkRow(check)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write check %s: %w", check.ID, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func checkRow(check *store.Check) []any {
	in := check.Input
	r := check.Result
	row := []any{
		check.ID,
		check.Name,
		check.CheckedAt.UTC().Format("2006-01-02 15:04:05"),
		in.Age,
		string(in.Gender),
		string(in.Smoking),
		in.HeightCm,
		in.WeightKg,
		in.SystolicBP,
		in.DiastolicBP,
		yesNo(in.OnBPMedication),
		yesNo(in.HasDiabetes),
		optional(in.HDLCholesterol),
		optional(in.LDLCholesterol),
		optional(in.TotalCholesterol),
		optional(in.Triglycerides),
		r.BMI,
		r.TotalScore,
		r.RiskProbability,
		r.RiskLevel.Label(),
	}
	if ci := check.Circulatory; ci != nil {
		row = append(row,
			ci.CerebralInfarction.Probability,
			ci.MyocardialInfarction.Probability,
			ci.TotalStroke.Probability,
			ci.VascularAge)
	} else {
		row = append(row, nil, nil, nil, nil)
	}
	return row
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// optional returns nil for a value that was not entered so the cell stays blank
func optional(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
