package export

import (
	"bytes"
	"strconv"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"blogaulas/models"
)

type SheetSpec struct {
	Title  string
	Header []string
	Rows   [][]string
}

var userHeader = []string{"ID", "Username", "Role", "Created at"}

// UserSheet lays out one user per row.
func UserSheet(title string, users []models.User) SheetSpec {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(u.ID), 10),
			u.Username,
			string(u.Role),
			u.CreatedAt.UTC().Format("2006-01-02 15:04"),
		})
	}
	return SheetSpec{Title: title, Header: userHeader, Rows: rows}
}

func NewUsersWorkbook(sheets []SheetSpec) (*excelize.File, error) {
	if len(sheets) == 0 {
		return nil, errors.New("workbook needs at least one sheet")
	}
	f := excelize.NewFile()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, errors.Wrap(err, "header style")
	}
	for i, s := range sheets {
		name := s.Title
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, errors.Wrap(err, "rename sheet")
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, errors.Wrap(err, "new sheet")
		}
		if err := writeSheet(f, name, s, bold); err != nil {
			return nil, errors.Wrapf(err, "sheet %s", name)
		}
	}
	return f, nil
}

func writeSheet(f *excelize.File, name string, s SheetSpec, headerStyle int) error {
	if err := f.SetSheetRow(name, "A1", &s.Header); err != nil {
		return err
	}
	if len(s.Header) > 0 {
		end, err := excelize.CoordinatesToCellName(len(s.Header), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(name, "A1", end, headerStyle); err != nil {
			return err
		}
		if err := f.AutoFilter(name, "A1:"+end, nil); err != nil {
			return err
		}
	}

	for r, row := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return errors.Wrapf(err, "row %d", r+2)
		}
	}

	for c := 1; c <= len(s.Header); c++ {
		col, err := excelize.ColumnNumberToName(c)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(name, col, col, columnWidth(s, c-1)); err != nil {
			return err
		}
	}
	return nil
}

// columnWidth sizes a column from its header and the first 50 rows.
func columnWidth(s SheetSpec, c int) float64 {
	width := len(s.Header[c])
	for r := 0; r < min(50, len(s.Rows)); r++ {
		if c < len(s.Rows[r]) && len(s.Rows[r][c]) > width {
			width = len(s.Rows[r][c])
		}
	}
	w := float64(width) * 0.9
	if w < 12 {
		w = 12
	}
	if w > 40 {
		w = 40
	}
	return w
}

// Bytes renders the workbook in xlsx format.
func Bytes(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
