package extraction

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nevindra/fiscus"
	"github.com/nevindra/fiscus/document"
	"github.com/nevindra/fiscus/fileguard"
)

// Export merges the page artifacts in docDir into a single file. An ".xlsx"
// target gets a Parameters sheet (page, key, value) and a Transactions sheet
// (page column plus the table columns, categorized tables preferred); a
// ".csv" target gets the transactions alone. The output file is written
// under a rollback guard, so a failed export leaves any previous export
// untouched.
func Export(docDir, outPath string) error {
	pages, err := collectPages(docDir)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		return fmt.Errorf("no extracted artifacts in %s", docDir)
	}

	return fileguard.Run([]string{outPath}, func() error {
		switch strings.ToLower(filepath.Ext(outPath)) {
		case ".xlsx":
			return exportXLSX(pages, outPath)
		case ".csv":
			return exportCSV(pages, outPath)
		default:
			return fmt.Errorf("unsupported export format %q, want .xlsx or .csv", filepath.Ext(outPath))
		}
	})
}

type pageData struct {
	page   int
	params any           // decoded params JSON, nil when absent
	table  *fiscus.Table // categorized preferred, nil when absent
}

// collectPages loads artifacts for page 1, 2, ... until a page has neither
// a params nor a table file. The workflow writes pages in order, so the
// artifacts always form a gapless prefix.
func collectPages(docDir string) ([]pageData, error) {
	var out []pageData
	for page := 1; ; page++ {
		pd := pageData{page: page}

		if data, err := os.ReadFile(document.PageParamsPath(docDir, page)); err == nil {
			if err := json.Unmarshal(data, &pd.params); err != nil {
				return nil, fmt.Errorf("parse page %d params: %w", page, err)
			}
		}

		tablePath := document.PageTablePath(docDir, page)
		if catPath := document.PageCategorizedPath(docDir, page); fileExists(catPath) {
			tablePath = catPath
		}
		if data, err := os.ReadFile(tablePath); err == nil {
			table, err := fiscus.ParseTable(string(data))
			if err != nil {
				return nil, fmt.Errorf("parse page %d table: %w", page, err)
			}
			pd.table = table
		}

		if pd.params == nil && pd.table == nil {
			break
		}
		out = append(out, pd)
	}
	return out, nil
}

func exportXLSX(pages []pageData, outPath string) error {
	f := excelize.NewFile()

	const paramsSheet = "Parameters"
	const txSheet = "Transactions"
	if err := f.SetSheetName("Sheet1", paramsSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(txSheet); err != nil {
		return err
	}

	setCell := func(sheet string, col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	setCell(paramsSheet, 1, 1, "Page")
	setCell(paramsSheet, 2, 1, "Key")
	setCell(paramsSheet, 3, 1, "Value")
	row := 2
	for _, pd := range pages {
		for _, kv := range paramRows(pd.params) {
			setCell(paramsSheet, 1, row, pd.page)
			setCell(paramsSheet, 2, row, kv[0])
			setCell(paramsSheet, 3, row, kv[1])
			row++
		}
	}

	var headerLen int
	txRow := 1
	for _, pd := range pages {
		if pd.table == nil {
			continue
		}
		if txRow == 1 {
			setCell(txSheet, 1, 1, "Page")
			for i, h := range pd.table.Header {
				setCell(txSheet, i+2, 1, h)
			}
			headerLen = len(pd.table.Header)
			txRow = 2
		}
		for _, r := range pd.table.Rows {
			setCell(txSheet, 1, txRow, pd.page)
			for i, v := range r {
				setCell(txSheet, i+2, txRow, v)
			}
			txRow++
		}
	}

	_ = f.SetColWidth(paramsSheet, "B", "B", 28)
	_ = f.SetColWidth(paramsSheet, "C", "C", 48)
	if headerLen > 0 {
		last, _ := excelize.ColumnNumberToName(headerLen + 1)
		_ = f.SetColWidth(txSheet, "B", last, 18)
	}

	idx, _ := f.GetSheetIndex(txSheet)
	f.SetActiveSheet(idx)
	return f.SaveAs(outPath)
}

func exportCSV(pages []pageData, outPath string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	wroteHeader := false
	for _, pd := range pages {
		if pd.table == nil {
			continue
		}
		if !wroteHeader {
			if err := w.Write(append([]string{"Page"}, pd.table.Header...)); err != nil {
				return err
			}
			wroteHeader = true
		}
		for _, r := range pd.table.Rows {
			if err := w.Write(append([]string{strconv.Itoa(pd.page)}, r...)); err != nil {
				return err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	if !wroteHeader {
		return fmt.Errorf("no table artifacts to export")
	}
	return os.WriteFile(outPath, buf.Bytes(), 0o644)
}

// paramRows turns a decoded params value into key/value rows. Objects give
// one row per key, sorted; any other value becomes a single row.
func paramRows(params any) [][2]string {
	switch v := params.(type) {
	case nil:
		return nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		rows := make([][2]string, 0, len(keys))
		for _, k := range keys {
			rows = append(rows, [2]string{k, formatParamValue(v[k])})
		}
		return rows
	default:
		return [][2]string{{"value", formatParamValue(v)}}
	}
}

func formatParamValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(data)
	}
}
