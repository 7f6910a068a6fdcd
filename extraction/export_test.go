package extraction

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/nevindra/fiscus/document"
)

func seedExportDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	seedArtifact(t, document.PageParamsPath(dir, 1),
		"{\n    \"account\": \"6222-001\",\n    \"bank\": \"Test Bank\",\n    \"pages\": 2\n}")
	seedArtifact(t, document.PageTablePath(dir, 1),
		"Date,Description,Amount\n2024-01-02,Grocery Store,-45.30\n")
	seedArtifact(t, document.PageTablePath(dir, 2),
		"Date,Description,Amount\n2024-01-03,Bus Fare,-2.00\n")
	seedArtifact(t, document.PageCategorizedPath(dir, 2),
		"Date,Description,Amount,Category\n2024-01-03,Bus Fare,-2.00,Transport\n")
	return dir
}

func TestExportCSV(t *testing.T) {
	dir := seedExportDir(t)
	out := filepath.Join(t.TempDir(), "out.csv")

	if err := Export(dir, out); err != nil {
		t.Fatalf("Export: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := "Page,Date,Description,Amount\n" +
		"1,2024-01-02,Grocery Store,-45.30\n" +
		"2,2024-01-03,Bus Fare,-2.00\n"
	if string(got) != want {
		t.Errorf("csv = %q, want %q", got, want)
	}
}

func TestExportXLSX(t *testing.T) {
	dir := seedExportDir(t)
	out := filepath.Join(t.TempDir(), "out.xlsx")

	if err := Export(dir, out); err != nil {
		t.Fatalf("Export: %v", err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatalf("open exported workbook: %v", err)
	}
	defer f.Close()

	// Parameters sheet: header plus the page-1 params, keys sorted.
	cell := func(sheet, ref string) string {
		v, err := f.GetCellValue(sheet, ref)
		if err != nil {
			t.Fatalf("GetCellValue(%s, %s): %v", sheet, ref, err)
		}
		return v
	}
	if got := cell("Parameters", "B1"); got != "Key" {
		t.Errorf("Parameters B1 = %q", got)
	}
	if got := cell("Parameters", "B2"); got != "account" {
		t.Errorf("Parameters B2 = %q, want account (sorted first)", got)
	}
	if got := cell("Parameters", "C3"); got != "Test Bank" {
		t.Errorf("Parameters C3 = %q", got)
	}
	if got := cell("Parameters", "C4"); got != "2" {
		t.Errorf("Parameters C4 = %q, want numeric value formatted", got)
	}

	// Transactions sheet: header from the first table, categorized page-2
	// rows preferred over the raw table.
	if got := cell("Transactions", "A1"); got != "Page" {
		t.Errorf("Transactions A1 = %q", got)
	}
	if got := cell("Transactions", "C2"); got != "Grocery Store" {
		t.Errorf("Transactions C2 = %q", got)
	}
	if got := cell("Transactions", "E3"); got != "Transport" {
		t.Errorf("Transactions E3 = %q, want categorized row", got)
	}
}

func TestExportEmptyDirectory(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.csv")
	if err := Export(t.TempDir(), out); err == nil {
		t.Fatal("expected error for directory without artifacts")
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	dir := seedExportDir(t)
	err := Export(dir, filepath.Join(t.TempDir(), "out.pdf"))
	if err == nil || !strings.Contains(err.Error(), "unsupported export format") {
		t.Fatalf("got %v, want unsupported-format error", err)
	}
}

func TestExportFailureKeepsPreviousFile(t *testing.T) {
	dir := t.TempDir()
	seedArtifact(t, document.PageParamsPath(dir, 1), `{"bank": "B"}`)

	out := filepath.Join(t.TempDir(), "out.csv")
	seedArtifact(t, out, "previous export\n")

	// Params-only directory has no tables, so the CSV export fails; the
	// earlier export must survive.
	if err := Export(dir, out); err == nil {
		t.Fatal("expected error exporting directory without tables")
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "previous export\n" {
		t.Errorf("previous export clobbered: %q", got)
	}
}

func TestCollectPagesStopsAtGap(t *testing.T) {
	dir := t.TempDir()
	seedArtifact(t, document.PageParamsPath(dir, 1), `{"a": 1}`)
	seedArtifact(t, document.PageParamsPath(dir, 3), `{"a": 3}`)

	pages, err := collectPages(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 || pages[0].page != 1 {
		t.Errorf("pages = %+v, want only page 1", pages)
	}
}

func TestParamRows(t *testing.T) {
	rows := paramRows(map[string]any{
		"zebra": "z",
		"alpha": 1.5,
		"done":  true,
		"empty": nil,
	})
	if len(rows) != 4 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0][0] != "alpha" || rows[0][1] != "1.5" {
		t.Errorf("rows[0] = %v", rows[0])
	}
	if rows[1][0] != "done" || rows[1][1] != "true" {
		t.Errorf("rows[1] = %v", rows[1])
	}
	if rows[2][0] != "empty" || rows[2][1] != "" {
		t.Errorf("rows[2] = %v", rows[2])
	}
	if rows[3][0] != "zebra" || rows[3][1] != "z" {
		t.Errorf("rows[3] = %v", rows[3])
	}

	if got := paramRows(nil); got != nil {
		t.Errorf("paramRows(nil) = %v", got)
	}
	arr := paramRows([]any{"a", "b"})
	if len(arr) != 1 || arr[0][0] != "value" || arr[0][1] != `["a","b"]` {
		t.Errorf("array params = %v", arr)
	}
}
