package extraction

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/nevindra/fiscus"
	"github.com/nevindra/fiscus/document"
)

const testTable = "Date,Description,Amount\n2024-01-02,Grocery Store,-45.30\n2024-01-03,Monthly Salary,3000.00\n"

const categorizedReply = "```\n" +
	"Date,Description,Amount,Category\n" +
	"2024-01-02,Grocery Store,-45.30,Groceries\n" +
	"2024-01-03,Monthly Salary,3000.00,Salary\n" +
	"```"

func TestCategorizePagesWritesArtifact(t *testing.T) {
	dir := initTestDoc(t, 1)
	seedArtifact(t, document.PageTablePath(dir, 1), testTable)

	stub := &stubProvider{replies: []string{categorizedReply}}
	var events []PageEvent
	err := CategorizePages(context.Background(), dir, Options{
		Provider: stub,
		OnPage:   func(e PageEvent) { events = append(events, e) },
	})
	if err != nil {
		t.Fatalf("CategorizePages: %v", err)
	}

	got, err := os.ReadFile(document.PageCategorizedPath(dir, 1))
	if err != nil {
		t.Fatalf("read categorized artifact: %v", err)
	}
	want := "Date,Description,Amount,Category\n" +
		"2024-01-02,Grocery Store,-45.30,Groceries\n" +
		"2024-01-03,Monthly Salary,3000.00,Salary\n"
	if string(got) != want {
		t.Errorf("artifact = %q, want %q", got, want)
	}

	if len(events) != 1 || events[0].Artifact != ArtifactCategorized || events[0].Skipped {
		t.Errorf("events = %+v", events)
	}
}

func TestCategorizePagesSkipsExisting(t *testing.T) {
	dir := initTestDoc(t, 1)
	seedArtifact(t, document.PageTablePath(dir, 1), testTable)
	seedArtifact(t, document.PageCategorizedPath(dir, 1), "already,done\n1,2\n")

	stub := &stubProvider{}
	var events []PageEvent
	err := CategorizePages(context.Background(), dir, Options{
		Provider: stub,
		OnPage:   func(e PageEvent) { events = append(events, e) },
	})
	if err != nil {
		t.Fatal(err)
	}
	if stub.calls != 0 {
		t.Errorf("provider called %d times for categorized document", stub.calls)
	}
	if len(events) != 1 || !events[0].Skipped {
		t.Errorf("events = %+v, want one skipped event", events)
	}
}

func TestCategorizePagesSkipsPagesWithoutTables(t *testing.T) {
	dir := initTestDoc(t, 2)
	// No table artifacts at all: nothing to do, no provider calls.
	stub := &stubProvider{}
	if err := CategorizePages(context.Background(), dir, Options{Provider: stub}); err != nil {
		t.Fatal(err)
	}
	if stub.calls != 0 {
		t.Errorf("provider called %d times", stub.calls)
	}
}

func TestCategorizePagesRetriesOnBadReply(t *testing.T) {
	dir := initTestDoc(t, 1)
	seedArtifact(t, document.PageTablePath(dir, 1), testTable)

	dropped := "```\nDate,Description,Amount,Category\n2024-01-02,Grocery Store,-45.30,Groceries\n```"
	stub := &stubProvider{replies: []string{dropped, categorizedReply}}
	err := CategorizePages(context.Background(), dir, Options{Provider: stub})
	if err != nil {
		t.Fatalf("CategorizePages: %v", err)
	}
	if stub.calls != 2 {
		t.Errorf("got %d provider calls, want 2 (retry after dropped row)", stub.calls)
	}
}

func TestBuildCategorizeInput(t *testing.T) {
	got := buildCategorizeInput([]string{"Dining", "Other"}, "h1,h2\nr1,r2\n")
	want := "# Allowed Categories\n\n- Dining\n- Other\n\n" +
		"# Table To Categorize\n\n```\nh1,h2\nr1,r2\n```\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCategorizedValidator(t *testing.T) {
	source := &fiscus.Table{
		Header: []string{"Date", "Amount"},
		Rows:   [][]string{{"2024-01-02", "-45.30"}},
	}
	validate := categorizedValidator(source, []string{"Groceries", "Other"})

	good := &fiscus.Table{
		Header: []string{"Date", "Amount", "Category"},
		Rows:   [][]string{{"2024-01-02", "-45.30", "Groceries"}},
	}
	if err := validate(good); err != nil {
		t.Errorf("valid reply rejected: %v", err)
	}

	tests := []struct {
		name  string
		reply *fiscus.Table
		want  string
	}{
		{
			"missing category column",
			&fiscus.Table{Header: []string{"Date", "Amount"}, Rows: [][]string{{"2024-01-02", "-45.30"}}},
			"columns",
		},
		{
			"wrong last column name",
			&fiscus.Table{Header: []string{"Date", "Amount", "Label"}, Rows: [][]string{{"2024-01-02", "-45.30", "Groceries"}}},
			"Category",
		},
		{
			"renamed source column",
			&fiscus.Table{Header: []string{"Day", "Amount", "Category"}, Rows: [][]string{{"2024-01-02", "-45.30", "Groceries"}}},
			"renamed",
		},
		{
			"row count changed",
			&fiscus.Table{Header: []string{"Date", "Amount", "Category"}, Rows: nil},
			"rows",
		},
		{
			"cell value changed",
			&fiscus.Table{Header: []string{"Date", "Amount", "Category"}, Rows: [][]string{{"2024-01-02", "-99.99", "Groceries"}}},
			"changed",
		},
		{
			"category outside allowed list",
			&fiscus.Table{Header: []string{"Date", "Amount", "Category"}, Rows: [][]string{{"2024-01-02", "-45.30", "Snacks"}}},
			"allowed",
		},
	}
	for _, tt := range tests {
		err := validate(tt.reply)
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: error %q does not mention %q", tt.name, err, tt.want)
		}
	}
}

func TestDefaultCategoriesFreshSlice(t *testing.T) {
	a := DefaultCategories()
	a[0] = "mutated"
	if b := DefaultCategories(); b[0] == "mutated" {
		t.Error("DefaultCategories shares state between calls")
	}
}
