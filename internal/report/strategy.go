package report

import (
	"html"
	"strings"

	"github.com/nao1215/rolereport/internal/model"
)

const (
	// PriorityThreshold is the value above which an item is emphasized in
	// the admin HTML view.
	PriorityThreshold = 1000

	// ViewLimit is the highest value a non-admin viewer is allowed to see.
	ViewLimit = 500
)

// Fixed output text. Reports are produced in Portuguese only.
const (
	csvHeader  = "ID,NOME,VALOR,USUARIO\n"
	htmlTitle  = "Relatório"
	htmlViewer = "Usuário: "
	boldStyle  = `style="font-weight:bold;"`
)

// Strategy is a role-specific rendering policy.
//
// The set of strategies is closed: only AdminStrategy and UserStrategy
// implement it, and StrategyFor is the only place that chooses between them.
type Strategy interface {
	// Header returns the document preamble.
	Header() string

	// Body returns the rows for the items this viewer may see and the sum
	// of the values of exactly those rows.
	Body(items []model.LineItem) (string, float64)

	// Footer returns the closing text carrying total.
	Footer(total float64) string

	sealed()
}

// RenderState is the document produced so far and the running total.
// It is a value: Append returns a new state and leaves the receiver unchanged.
type RenderState struct {
	Document string
	Total    float64
}

// Append returns the state extended by fragment, with value added to the total.
func (s RenderState) Append(fragment string, value float64) RenderState {
	return RenderState{
		Document: s.Document + fragment,
		Total:    s.Total + value,
	}
}

// Render runs the header, body and footer phases of s exactly once, in that
// order, and returns the document with surrounding whitespace trimmed.
func Render(s Strategy, items []model.LineItem) string {
	return strings.TrimSpace(render(s, items).Document)
}

// render returns the untrimmed final state.
func render(s Strategy, items []model.LineItem) RenderState {
	state := RenderState{}.Append(s.Header(), 0)

	body, total := s.Body(items)
	state = state.Append(body, total)

	return state.Append(s.Footer(state.Total), 0)
}

// layout holds what every strategy renders identically: the header, the
// footer and the row markup. Strategies embed it and supply the body policy.
type layout struct {
	viewer model.User
	format model.Format

	// escapeHTML escapes viewer and item text in HTML output. Off by
	// default: text is written verbatim.
	escapeHTML bool
}

func newLayout(viewer model.User, format model.Format) layout {
	return layout{viewer: viewer, format: format}
}

// Header returns the CSV column row or the HTML preamble with the viewer's name.
func (l layout) Header() string {
	switch l.format {
	case model.FormatCSV:
		return csvHeader
	case model.FormatHTML:
		var sb strings.Builder
		sb.WriteString("<html><body>\n")
		sb.WriteString("<h1>" + htmlTitle + "</h1>\n")
		sb.WriteString("<h2>" + htmlViewer + l.text(l.viewer.Name) + "</h2>\n")
		sb.WriteString("<table>\n<tr><th>ID</th><th>Nome</th><th>Valor</th></tr>\n")
		return sb.String()
	default:
		return ""
	}
}

// Footer returns the total line for CSV or the closing tags for HTML.
func (l layout) Footer(total float64) string {
	switch l.format {
	case model.FormatCSV:
		return "\nTotal,,\n" + model.FormatValue(total) + ",,\n"
	case model.FormatHTML:
		return "</table>\n<h3>Total: " + model.FormatValue(total) + "</h3>\n</body></html>\n"
	default:
		return ""
	}
}

// row returns the markup for one item and the value it adds to the total.
// Every rendered row goes through here so the total cannot drift from the rows.
// emphasize only affects HTML.
func (l layout) row(item model.LineItem, emphasize bool) (string, float64) {
	switch l.format {
	case model.FormatCSV:
		return item.ID + "," + item.Name + "," + model.FormatValue(item.Value) + "," + l.viewer.Name + "\n", item.Value
	case model.FormatHTML:
		open := "<tr>"
		if emphasize {
			open = "<tr " + boldStyle + ">"
		}
		return open +
			"<td>" + l.text(item.ID) + "</td>" +
			"<td>" + l.text(item.Name) + "</td>" +
			"<td>" + model.FormatValue(item.Value) + "</td>" +
			"</tr>\n", item.Value
	default:
		return "", 0
	}
}

// rows renders items in order and sums the values of the rows it emitted.
func (l layout) rows(items []model.LineItem, emphasize func(model.LineItem) bool) (string, float64) {
	var sb strings.Builder
	var total float64
	for _, item := range items {
		fragment, value := l.row(item, emphasize(item))
		sb.WriteString(fragment)
		total += value
	}
	return sb.String(), total
}

// text returns s as it goes into an HTML text node.
func (l layout) text(s string) string {
	if l.escapeHTML {
		return html.EscapeString(s)
	}
	return s
}

func (layout) sealed() {}
