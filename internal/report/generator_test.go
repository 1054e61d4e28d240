package report

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nao1215/rolereport/internal/model"
)

var (
	ana = model.User{Name: "Ana", Role: model.RoleAdmin}
	bob = model.User{Name: "Bob", Role: model.RoleUser}
)

// sampleItems returns the items used by the documented scenarios.
func sampleItems() []model.LineItem {
	return []model.LineItem{
		{ID: "1", Name: "A", Value: 1500},
		{ID: "2", Name: "B", Value: 200},
	}
}

// TestGenerateReport_Scenarios tests complete documents for fixed inputs.
func TestGenerateReport_Scenarios(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		format model.Format
		viewer model.User
		items  []model.LineItem
		want   string
	}{
		{
			name:   "admin CSV includes every item",
			format: model.FormatCSV,
			viewer: ana,
			items:  sampleItems(),
			want:   "ID,NOME,VALOR,USUARIO\n1,A,1500,Ana\n2,B,200,Ana\n\nTotal,,\n1700,,",
		},
		{
			name:   "user CSV hides items above the view limit",
			format: model.FormatCSV,
			viewer: bob,
			items:  sampleItems(),
			want:   "ID,NOME,VALOR,USUARIO\n2,B,200,Bob\n\nTotal,,\n200,,",
		},
		{
			name:   "empty CSV",
			format: model.FormatCSV,
			viewer: ana,
			items:  nil,
			want:   "ID,NOME,VALOR,USUARIO\n\nTotal,,\n0,,",
		},
		{
			name:   "admin HTML emphasizes priority items",
			format: model.FormatHTML,
			viewer: ana,
			items:  sampleItems(),
			want: "<html><body>\n" +
				"<h1>Relatório</h1>\n" +
				"<h2>Usuário: Ana</h2>\n" +
				"<table>\n" +
				"<tr><th>ID</th><th>Nome</th><th>Valor</th></tr>\n" +
				`<tr style="font-weight:bold;"><td>1</td><td>A</td><td>1500</td></tr>` + "\n" +
				"<tr><td>2</td><td>B</td><td>200</td></tr>\n" +
				"</table>\n" +
				"<h3>Total: 1700</h3>\n" +
				"</body></html>",
		},
		{
			name:   "user HTML",
			format: model.FormatHTML,
			viewer: bob,
			items:  sampleItems(),
			want: "<html><body>\n" +
				"<h1>Relatório</h1>\n" +
				"<h2>Usuário: Bob</h2>\n" +
				"<table>\n" +
				"<tr><th>ID</th><th>Nome</th><th>Valor</th></tr>\n" +
				"<tr><td>2</td><td>B</td><td>200</td></tr>\n" +
				"</table>\n" +
				"<h3>Total: 200</h3>\n" +
				"</body></html>",
		},
		{
			name:   "empty HTML",
			format: model.FormatHTML,
			viewer: bob,
			items:  []model.LineItem{},
			want: "<html><body>\n" +
				"<h1>Relatório</h1>\n" +
				"<h2>Usuário: Bob</h2>\n" +
				"<table>\n" +
				"<tr><th>ID</th><th>Nome</th><th>Valor</th></tr>\n" +
				"</table>\n" +
				"<h3>Total: 0</h3>\n" +
				"</body></html>",
		},
		{
			name:   "unknown format renders nothing",
			format: model.Format("XML"),
			viewer: ana,
			items:  sampleItems(),
			want:   "",
		},
		{
			name:   "lowercase format is unknown",
			format: model.Format("csv"),
			viewer: bob,
			items:  sampleItems(),
			want:   "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewGenerator().GenerateReport(tc.format, tc.viewer, tc.items)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("document mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestGenerateReport_StrictFormat tests that strict generators reject unknown formats.
func TestGenerateReport_StrictFormat(t *testing.T) {
	t.Parallel()

	g := NewGenerator(WithStrictFormat(true))

	t.Run("unknown format is an error", func(t *testing.T) {
		t.Parallel()

		doc, err := g.GenerateReport(model.Format("XML"), ana, sampleItems())
		if !errors.Is(err, model.ErrUnsupportedFormat) {
			t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
		}
		if doc != "" {
			t.Errorf("expected no document, got %q", doc)
		}
	})

	t.Run("supported format still renders", func(t *testing.T) {
		t.Parallel()

		doc, err := g.GenerateReport(model.FormatCSV, ana, sampleItems())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasSuffix(doc, "1700,,") {
			t.Errorf("unexpected document: %q", doc)
		}
	})
}

// TestGenerateReport_Boundaries tests the thresholds at their exact values.
func TestGenerateReport_Boundaries(t *testing.T) {
	t.Parallel()

	items := []model.LineItem{
		{ID: "a", Name: "limit", Value: ViewLimit},
		{ID: "b", Name: "over-limit", Value: ViewLimit + 0.01},
		{ID: "c", Name: "threshold", Value: PriorityThreshold},
		{ID: "d", Name: "over-threshold", Value: PriorityThreshold + 1},
	}

	t.Run("value equal to the view limit is visible", func(t *testing.T) {
		t.Parallel()

		doc := GenerateReport(model.FormatCSV, bob, items)
		want := "ID,NOME,VALOR,USUARIO\na,limit,500,Bob\n\nTotal,,\n500,,"
		if diff := cmp.Diff(want, doc); diff != "" {
			t.Errorf("document mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("value equal to the priority threshold is not bold", func(t *testing.T) {
		t.Parallel()

		doc := GenerateReport(model.FormatHTML, ana, items)
		if !strings.Contains(doc, "<tr><td>c</td><td>threshold</td><td>1000</td></tr>") {
			t.Errorf("expected plain row for threshold value:\n%s", doc)
		}
		if !strings.Contains(doc, `<tr style="font-weight:bold;"><td>d</td><td>over-threshold</td><td>1001</td></tr>`) {
			t.Errorf("expected bold row above threshold:\n%s", doc)
		}
	})
}

// TestGenerateReport_Roles tests strategy selection for role values.
func TestGenerateReport_Roles(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		role      model.Role
		wantAdmin bool
	}{
		{"admin", model.RoleAdmin, true},
		{"user", model.RoleUser, false},
		{"absent role", model.Role(""), false},
		{"lowercase admin", model.Role("admin"), false},
		{"unexpected role", model.Role("MANAGER"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := StrategyFor(model.User{Name: "X", Role: tc.role}, model.FormatCSV)
			_, isAdmin := s.(*AdminStrategy)
			if isAdmin != tc.wantAdmin {
				t.Errorf("got admin strategy %v, expected %v", isAdmin, tc.wantAdmin)
			}
		})
	}
}

// TestGenerateReport_TotalMatchesIncludedItems checks the total line against
// the rows actually present for random item sets.
func TestGenerateReport_TotalMatchesIncludedItems(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(42, 7))

	for round := range 50 {
		items := make([]model.LineItem, rng.IntN(30))
		for i := range items {
			items[i] = model.LineItem{
				ID:    strconv.Itoa(i),
				Name:  "item" + strconv.Itoa(i),
				Value: float64(rng.IntN(3000)),
			}
		}

		for _, viewer := range []model.User{ana, bob} {
			doc := GenerateReport(model.FormatCSV, viewer, items)
			lines := strings.Split(doc, "\n")

			// header, rows..., blank, "Total,,", total
			rows := lines[1 : len(lines)-3]
			var sum float64
			for _, row := range rows {
				fields := strings.Split(row, ",")
				v, err := strconv.ParseFloat(fields[2], 64)
				if err != nil {
					t.Fatalf("round %d: bad row %q: %v", round, row, err)
				}
				if viewer.Role != model.RoleAdmin && v > ViewLimit {
					t.Fatalf("round %d: user report contains hidden value %v", round, v)
				}
				sum += v
			}

			wantRows := len(items)
			if viewer.Role != model.RoleAdmin {
				wantRows = len(Visible(items))
			}
			if len(rows) != wantRows {
				t.Fatalf("round %d: got %d rows, expected %d", round, len(rows), wantRows)
			}

			totalLine := lines[len(lines)-1]
			if want := model.FormatValue(sum) + ",,"; totalLine != want {
				t.Errorf("round %d: total line %q, expected %q", round, totalLine, want)
			}
		}
	}
}

// TestGenerateReport_DoesNotMutateItems tests that input items are left untouched.
func TestGenerateReport_DoesNotMutateItems(t *testing.T) {
	t.Parallel()

	items := []model.LineItem{
		{ID: "1", Name: "A", Value: 900},
		{ID: "2", Name: "B", Value: 100},
		{ID: "3", Name: "C", Value: 1200},
	}
	before := append([]model.LineItem(nil), items...)

	for _, format := range model.Formats() {
		_ = GenerateReport(format, bob, items)
		_ = GenerateReport(format, ana, items)
	}

	if diff := cmp.Diff(before, items); diff != "" {
		t.Errorf("items were modified (-before +after):\n%s", diff)
	}
}

// TestGenerateReport_Concurrent tests that concurrent calls do not share state.
func TestGenerateReport_Concurrent(t *testing.T) {
	t.Parallel()

	g := NewGenerator()
	items := sampleItems()
	want := GenerateReport(model.FormatCSV, ana, items)

	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := g.GenerateReport(model.FormatCSV, ana, items)
			if err != nil || got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)

	for got := range errs {
		t.Errorf("concurrent call returned %q", got)
	}
}
