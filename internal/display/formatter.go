package display

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tayloree/coupon-report/internal/advisor"
	"github.com/tayloree/coupon-report/internal/coupon"
	"github.com/tayloree/coupon-report/internal/report"
)

// Styles for terminal output.
var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	starStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")) // magenta
	savingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))            // green
	strategyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))            // yellow
	dimStyle      = lipgloss.NewStyle().Faint(true)
	cyanStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

const dateLayout = "2006-01-02"

// CouponJSON is the JSON output shape for a canonical coupon.
type CouponJSON struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Items       []string `json:"items"`
	Conditions  []string `json:"conditions"`
	ValidFrom   string   `json:"validFrom"`
	ValidTo     string   `json:"validTo"`
	Status      string   `json:"status"`
	Discount    string   `json:"discount"`
	Group       string   `json:"group"`
}

// SuggestionJSON is the JSON output shape for a combination suggestion.
type SuggestionJSON struct {
	Kind     string   `json:"kind"`
	Label    string   `json:"label"`
	Coupons  []string `json:"coupons"`
	Saving   string   `json:"saving"`
	Strategy string   `json:"strategy"`
	Rank     int      `json:"rank"`
	Stars    string   `json:"stars"`
}

// BucketsJSON holds the three buckets in output form.
type BucketsJSON struct {
	Today   []CouponJSON `json:"today"`
	Future  []CouponJSON `json:"future"`
	Expired []CouponJSON `json:"expired"`
}

// CountsJSON summarizes bucket sizes and product groups.
type CountsJSON struct {
	Total    int            `json:"total"`
	Today    int            `json:"today"`
	Future   int            `json:"future"`
	Expired  int            `json:"expired"`
	Groups   map[string]int `json:"groups"`
	Statuses map[string]int `json:"statuses,omitempty"`
}

// AnalysisJSON is the document printed by a full analysis run with --json.
type AnalysisJSON struct {
	RunID       string           `json:"runId"`
	Today       string           `json:"today"`
	Counts      CountsJSON       `json:"counts"`
	Buckets     BucketsJSON      `json:"buckets"`
	Suggestions []SuggestionJSON `json:"suggestions"`
	Report      string           `json:"report"`
	SavedTo     string           `json:"savedTo,omitempty"`
	Workbook    string           `json:"workbook,omitempty"`
}

// Analysis builds the JSON document for a run.
func Analysis(runID string, in report.Input, text string) AnalysisJSON {
	return AnalysisJSON{
		RunID:       runID,
		Today:       in.Today.Format(dateLayout),
		Counts:      Counts(in.Buckets, nil),
		Buckets:     BucketsJSON{Today: couponsJSON(in.Buckets.Today), Future: couponsJSON(in.Buckets.Future), Expired: couponsJSON(in.Buckets.Expired)},
		Suggestions: SuggestionsJSON(in.Suggestions),
		Report:      text,
	}
}

// Counts tallies bucket sizes and product groups across all buckets.
func Counts(b coupon.Buckets, statuses map[string]int) CountsJSON {
	groups := map[string]int{
		string(advisor.GroupDrink): 0,
		string(advisor.GroupFood):  0,
		string(advisor.GroupOther): 0,
	}
	for _, list := range [][]coupon.Coupon{b.Today, b.Future, b.Expired} {
		for _, c := range list {
			groups[string(advisor.Classify(c))]++
		}
	}
	return CountsJSON{
		Total:    b.Len(),
		Today:    len(b.Today),
		Future:   len(b.Future),
		Expired:  len(b.Expired),
		Groups:   groups,
		Statuses: statuses,
	}
}

// SuggestionsJSON converts suggestions to their output shape. Never nil.
func SuggestionsJSON(suggestions []advisor.Suggestion) []SuggestionJSON {
	out := make([]SuggestionJSON, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, SuggestionJSON{
			Kind:     string(s.Kind),
			Label:    s.Label,
			Coupons:  nonNil(s.Coupons),
			Saving:   s.Saving,
			Strategy: s.Strategy,
			Rank:     s.Rank,
			Stars:    report.Stars(s.Rank),
		})
	}
	return out
}

// PrintJSON encodes any output shape as a single JSON line.
func PrintJSON(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}

// PrintBuckets renders bucket and group counts for a given evaluation date.
func PrintBuckets(w io.Writer, today time.Time, counts CountsJSON) {
	fmt.Fprintf(w, "\n%s %s\n\n",
		headerStyle.Render("Coupon buckets"),
		dimStyle.Render("as of "+today.Format(dateLayout)),
	)
	fmt.Fprintf(w, "  %s: %d\n", cyanStyle.Render("today"), counts.Today)
	fmt.Fprintf(w, "  %s: %d\n", cyanStyle.Render("future"), counts.Future)
	fmt.Fprintf(w, "  %s: %d\n", cyanStyle.Render("expired"), counts.Expired)
	fmt.Fprintf(w, "  %s\n\n", dimStyle.Render(fmt.Sprintf("%d coupons total", counts.Total)))

	fmt.Fprintf(w, "%s\n\n", titleStyle.Render("Product groups:"))
	printCounts(w, counts.Groups)

	if len(counts.Statuses) > 0 {
		fmt.Fprintf(w, "%s\n\n", titleStyle.Render("Statuses:"))
		printCounts(w, counts.Statuses)
	}
}

// PrintSuggestions renders combination suggestions, or the guidance text when
// too few coupons are active.
func PrintSuggestions(w io.Writer, active int, suggestions []advisor.Suggestion) {
	fmt.Fprintf(w, "\n%s — %s\n\n",
		headerStyle.Render("Combination suggestions"),
		cyanStyle.Render(fmt.Sprintf("%d active coupons", active)),
	)
	if active < advisor.MinActive {
		fmt.Fprintf(w, "  %s\n\n", dimStyle.Render(report.NotEnoughCoupons))
		return
	}
	if len(suggestions) == 0 {
		fmt.Fprintf(w, "  %s\n\n", dimStyle.Render("No combinations found."))
		return
	}
	for _, s := range suggestions {
		fmt.Fprintf(w, "  %s %s\n", starStyle.Render(report.Stars(s.Rank)), titleStyle.Render(s.Label))
		fmt.Fprintf(w, "    %s | %s\n", savingStyle.Render(s.Saving), strategyStyle.Render(s.Strategy))
		fmt.Fprintf(w, "    %s\n\n", dimStyle.Render(wordWrap(strings.Join(s.Coupons, ", "), 72, "    ")))
	}
}

// PrintContext prints a dim line describing where input came from.
func PrintContext(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s\n\n", dimStyle.Render(msg))
}

// PrintSaved prints a confirmation that an artifact was written.
func PrintSaved(w io.Writer, what, path string) {
	fmt.Fprintln(w, savingStyle.Render(fmt.Sprintf("%s saved to %s", what, path)))
}

// PrintError prints a styled error message.
func PrintError(w io.Writer, msg string) {
	fmt.Fprintln(w, errorStyle.Render(msg))
}

// PrintWarning prints a styled warning message.
func PrintWarning(w io.Writer, msg string) {
	fmt.Fprintln(w, warningStyle.Render(msg))
}

// CouponJSONOf converts a coupon to its output shape.
func CouponJSONOf(c coupon.Coupon) CouponJSON {
	return CouponJSON{
		Name:        c.Name,
		Description: c.Description,
		Items:       nonNil(c.Items),
		Conditions:  nonNil(c.Conditions),
		ValidFrom:   c.ValidFrom,
		ValidTo:     c.ValidTo,
		Status:      c.Status,
		Discount:    c.Discount,
		Group:       string(advisor.Classify(c)),
	}
}

func couponsJSON(list []coupon.Coupon) []CouponJSON {
	out := make([]CouponJSON, 0, len(list))
	for _, c := range list {
		out = append(out, CouponJSONOf(c))
	}
	return out
}

func printCounts(w io.Writer, counts map[string]int) {
	type nameCount struct {
		Name  string
		Count int
	}
	sorted := make([]nameCount, 0, len(counts))
	for k, v := range counts {
		sorted = append(sorted, nameCount{k, v})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Name < sorted[j].Name
	})
	for _, c := range sorted {
		fmt.Fprintf(w, "  %s: %d coupons\n", cyanStyle.Render(c.Name), c.Count)
	}
	fmt.Fprintln(w)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func wordWrap(text string, width int, indent string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n"+indent)
}
