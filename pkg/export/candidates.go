package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nexcruit/ats-backend/internal/domain/entity"
)

const (
	CandidatesSheet = "Candidates"
	ContentType     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var candidateColumns = []struct {
	title string
	width float64
}{
	{"Name", 25},
	{"Email", 32},
	{"Phone", 18},
	{"Technology", 18},
	{"Level", 14},
	{"Status", 22},
	{"Experience (years)", 18},
	{"Salary Expectation", 20},
	{"Resume Score", 14},
	{"Skills", 40},
	{"CV", 45},
	{"Created", 20},
}

// Candidates renders the candidate list as an XLSX workbook.
func Candidates(candidates []entity.Candidate) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", CandidatesSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}

	for i, col := range candidateColumns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(CandidatesSheet, name, name, col.width)
		cell := fmt.Sprintf("%s1", name)
		f.SetCellValue(CandidatesSheet, cell, col.title)
		f.SetCellStyle(CandidatesSheet, cell, cell, headerStyle)
	}

	for i, c := range candidates {
		row := i + 2
		values := []any{
			c.Name,
			c.Email,
			c.Phone,
			c.Technology,
			c.Level,
			string(c.Status),
			optional(c.Experience),
			optional(c.SalaryExpectation),
			c.ResumeScore,
			strings.Join(c.Skills, ", "),
			c.CVURL,
			c.CreatedAt.UTC().Format(time.DateTime),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(CandidatesSheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename is the attachment name for an export generated at t.
func Filename(t time.Time) string {
	return "candidates-" + t.UTC().Format("20060102-150405") + ".xlsx"
}

func optional(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
