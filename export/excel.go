package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	charts "github.com/midbel/livecharts"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

// Excel writes a workbook with one sheet per serie. Each sheet has an x and
// a y column with a header row.
func Excel[T charts.Key](w io.Writer, series []charts.Serie[T]) error {
	f := excelize.NewFile()
	defer f.Close()

	if len(series) == 0 {
		_, err := f.WriteTo(w)
		return err
	}
	names := sheetNames(series)
	for i, s := range series {
		sheet := names[i]
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return errors.Wrapf(err, "%s: fail to rename sheet", sheet)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return errors.Wrapf(err, "%s: fail to create sheet", sheet)
		}
		if err := writeSerie(f, sheet, s); err != nil {
			return errors.Wrapf(err, "%s: fail to write serie", s.ID)
		}
	}
	_, err := f.WriteTo(w)
	return err
}

func writeSerie[T charts.Key](f *excelize.File, sheet string, s charts.Serie[T]) error {
	if err := f.SetSheetRow(sheet, cellName(1, 1), &[]any{"x", "y"}); err != nil {
		return err
	}
	for i, pt := range s.Points {
		row := []any{any(pt.X), pt.Y}
		if math.IsNaN(pt.Y) {
			row[1] = nil
		}
		if err := f.SetSheetRow(sheet, cellName(1, i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// sheetNames gives each serie a valid and unique sheet name.
func sheetNames[T charts.Key](series []charts.Serie[T]) []string {
	var (
		names = make([]string, 0, len(series))
		seen  = make(map[string]int)
	)
	for _, s := range series {
		name := sanitizeSheet(s.ID)
		if n := seen[strings.ToLower(name)]; n > 0 {
			suffix := fmt.Sprintf("-%d", n+1)
			name = truncate(name, maxSheetName-len(suffix)) + suffix
		}
		seen[strings.ToLower(sanitizeSheet(s.ID))]++
		names = append(names, name)
	}
	return names
}

func sanitizeSheet(str string) string {
	str = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		default:
			return r
		}
	}, str)
	str = strings.Trim(str, "'")
	if str == "" {
		str = "serie"
	}
	return truncate(str, maxSheetName)
}

func truncate(str string, size int) string {
	rs := []rune(str)
	if len(rs) <= size {
		return str
	}
	return string(rs[:size])
}
