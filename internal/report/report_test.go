package report_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/Tiliavir/trivial-meal-tracker/internal/ledger"
	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
	"github.com/Tiliavir/trivial-meal-tracker/internal/report"
)

// document is the parsed structure of a rendered report.
type document struct {
	headings []string
	// rows holds the cell count of every row, per table.
	rows [][]int
	text string
}

func parse(t *testing.T, md string) document {
	t.Helper()
	src := []byte(md)
	root := goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser().Parse(text.NewReader(src))

	var doc document
	var all strings.Builder
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			doc.headings = append(doc.headings, plainText(n, src))
		case *east.Table:
			doc.rows = append(doc.rows, nil)
		case *east.TableHeader, *east.TableRow:
			last := len(doc.rows) - 1
			doc.rows[last] = append(doc.rows[last], n.ChildCount())
		case *east.TableCell:
			all.WriteByte(' ')
		case *ast.Text:
			all.Write(n.Segment.Value(src))
			if n.SoftLineBreak() {
				all.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	doc.text = all.String()
	return doc
}

func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering {
			b.Write(t.Segment.Value(src))
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

var eggs = model.MealEntry{ID: "0f3c2a9e-1111", Name: "Eggs", Calories: 240, Protein: 18, Carbs: 2, Fats: 18, Time: "08:30"}

func TestStatus(t *testing.T) {
	status := ledger.DayStatus{
		Date:      "2026-02-27",
		Meals:     1,
		Totals:    eggs.Nutrition(),
		Goals:     model.DefaultGoals(),
		Remaining: model.NutritionTotals{Calories: 1760, Protein: 132, Carbs: 248, Fats: 47},
		Progress:  model.NutritionTotals{Calories: 12, Protein: 12, Carbs: 0.8, Fats: 27.7},
	}
	planned := []model.PlannedEntry{{ID: "p1", Name: "Oats", Calories: 300, Day: model.Friday}}

	doc := parse(t, report.Status(status, []model.MealEntry{eggs}, model.Friday, planned))

	if want := []string{"Today, 2026-02-27", "Planned for Friday"}; strings.Join(doc.headings, "|") != strings.Join(want, "|") {
		t.Errorf("headings = %q, want %q", doc.headings, want)
	}
	if len(doc.rows) != 3 {
		t.Fatalf("tables = %d, want 3", len(doc.rows))
	}
	if got := doc.rows[0]; len(got) != 5 || got[1] != 5 {
		t.Errorf("goal table rows = %v", got)
	}
	for _, want := range []string{"1760", "12%", "0f3c2a9e", "Oats"} {
		if !strings.Contains(doc.text, want) {
			t.Errorf("status is missing %q", want)
		}
	}
	if strings.Contains(doc.text, "0f3c2a9e-1111") {
		t.Error("ids are not shortened")
	}
}

func TestStatusWithoutPlan(t *testing.T) {
	doc := parse(t, report.Status(ledger.DayStatus{Date: "2026-02-27"}, nil, model.Friday, nil))
	if len(doc.headings) != 1 || len(doc.rows) != 1 {
		t.Errorf("headings %q tables %d", doc.headings, len(doc.rows))
	}
	if !strings.Contains(doc.text, "No meals logged.") {
		t.Errorf("empty log not reported: %s", doc.text)
	}
}

func TestMealsTotalsAndEscaping(t *testing.T) {
	meals := []model.MealEntry{
		eggs,
		{ID: "b", Name: "Toast | Jam", Calories: 150.25, Time: "09:00"},
	}
	md := report.Meals(meals)
	doc := parse(t, md)

	if len(doc.rows) != 1 {
		t.Fatalf("tables = %d, want 1", len(doc.rows))
	}
	for i, cells := range doc.rows[0] {
		if cells != 7 {
			t.Errorf("row %d has %d cells, want 7", i, cells)
		}
	}
	if !strings.Contains(md, "**Total:** 390.3 kcal") {
		t.Errorf("totals missing from:\n%s", md)
	}
}

func TestWeek(t *testing.T) {
	var days []ledger.DayView
	for i, wd := range []model.Weekday{model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday, model.Saturday, model.Sunday} {
		d := ledger.DayView{Weekday: wd, Date: fmt.Sprintf("2026-02-%02d", 23+i), Source: ledger.SourceNone}
		if wd == model.Friday {
			d.Today, d.Source, d.Meals, d.Totals = true, ledger.SourceLive, []model.MealEntry{eggs}, eggs.Nutrition()
		}
		days = append(days, d)
	}
	w := ledger.WeekView{Label: "2026-W09", Days: days, Total: eggs.Nutrition(), Average: eggs.Nutrition(), CountedDays: 1}

	doc := parse(t, report.Week(w))
	if len(doc.headings) != 1 || doc.headings[0] != "Week 2026-W09" {
		t.Errorf("headings = %q", doc.headings)
	}
	if len(doc.rows) != 1 || len(doc.rows[0]) != 8 {
		t.Fatalf("week table rows = %v, want header and 7 days", doc.rows)
	}
	if !strings.Contains(doc.text, "live") || !strings.Contains(doc.text, "over 1 day(s)") {
		t.Errorf("week text = %s", doc.text)
	}
}

func TestJournalAndDay(t *testing.T) {
	day := model.JournalDay{Date: "2026-02-26", Meals: []model.MealEntry{eggs}, Totals: eggs.Nutrition()}

	doc := parse(t, report.Journal([]model.JournalDay{day}))
	if len(doc.rows) != 1 || len(doc.rows[0]) != 2 {
		t.Errorf("journal rows = %v", doc.rows)
	}
	if doc = parse(t, report.Journal(nil)); !strings.Contains(doc.text, "No archived days.") {
		t.Errorf("empty journal = %s", doc.text)
	}

	doc = parse(t, report.Day(day))
	if len(doc.headings) != 1 || doc.headings[0] != "2026-02-26" {
		t.Errorf("day headings = %q", doc.headings)
	}
}

func TestPlan(t *testing.T) {
	doc := parse(t, report.Plan([]report.PlanDay{
		{Weekday: model.Monday, Entries: []model.PlannedEntry{{ID: "p1", Name: "Oats", Time: "07:00"}, {ID: "p2", Name: "Soup"}}},
		{Weekday: model.Tuesday},
	}))
	if want := "Meal plan|Monday|Tuesday"; strings.Join(doc.headings, "|") != want {
		t.Errorf("headings = %q", doc.headings)
	}
	if len(doc.rows) != 1 || len(doc.rows[0]) != 3 {
		t.Errorf("plan rows = %v", doc.rows)
	}
	if !strings.Contains(doc.text, "Nothing planned.") {
		t.Errorf("empty weekday not reported: %s", doc.text)
	}
}

func TestRecipes(t *testing.T) {
	r := model.RecipeTemplate{ID: "r1", Name: "Bowl", Calories: 320, Instructions: "Rice\n\nInstructions:\n1. Cook"}

	doc := parse(t, report.Recipes([]model.RecipeTemplate{r}))
	if len(doc.rows) != 1 || len(doc.rows[0]) != 2 {
		t.Errorf("recipe rows = %v", doc.rows)
	}
	if doc = parse(t, report.Recipes(nil)); !strings.Contains(doc.text, "recipe book is empty") {
		t.Errorf("empty book = %s", doc.text)
	}

	md := report.Recipe(r)
	if !strings.Contains(md, "1. Cook") || !strings.HasPrefix(md, "# Bowl") {
		t.Errorf("recipe = %s", md)
	}
}

func TestPrint(t *testing.T) {
	md := report.Meals([]model.MealEntry{eggs})

	var plain bytes.Buffer
	if err := report.Print(&plain, md, report.Options{Plain: true}); err != nil {
		t.Fatalf("Print plain: %v", err)
	}
	if plain.String() != md {
		t.Errorf("plain output was altered")
	}

	var styled bytes.Buffer
	if err := report.Print(&styled, md, report.Options{WordWrap: 100}); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if !strings.Contains(styled.String(), "Eggs") || strings.Contains(styled.String(), "|:---") {
		t.Errorf("styled output = %q", styled.String())
	}
}
