package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteXLSX writes d as a workbook with one sheet per section.
func WriteXLSX(w io.Writer, d Document) error {
	f := excelize.NewFile()
	for i, s := range d.Sections {
		name := sheetName(s.Name, i)
		if i == 0 {
			f.SetSheetName("Sheet1", name)
		} else {
			f.NewSheet(name)
		}
		writeSheet(f, name, s.Table)
	}
	return f.Write(w)
}

func writeSheet(f *excelize.File, sheet string, t Table) {
	put := func(row int, cells []string) {
		for col, v := range cells {
			f.SetCellValue(sheet, excelize.ToAlphaString(col)+strconv.Itoa(row), v)
		}
	}
	put(1, t.Headers)
	for i, r := range t.Rows {
		put(i+2, r)
	}
}

// sheetName fits a section name into Excel's 31 character limit.
func sheetName(name string, i int) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, name)
	if name == "" {
		name = "Sheet" + strconv.Itoa(i+1)
	}
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
