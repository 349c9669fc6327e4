// Package report renders coupon buckets and combination suggestions as a
// markdown report.
package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/tayloree/coupon-report/internal/advisor"
	"github.com/tayloree/coupon-report/internal/coupon"
)

// DefaultPath is where the report is saved unless configured otherwise.
const DefaultPath = "coupon_analysis.md"

// Placeholder and label texts.
const (
	Title              = "Coupon Analysis Report"
	NoneToday          = "No coupons are available today."
	NoneFuture         = "No upcoming coupons."
	NoneExpired        = "No expired coupons."
	NotEnoughCoupons   = "Not enough coupons to suggest combinations. Collect more coupons first."
	VariousItems       = "Various items"
	NoConditions       = "No special conditions"
	LongTermValidity   = "Long-term validity"
	ComingSoon         = "Coming soon"
	AndMore            = " and more"
	maxItemsShown      = 3
	maxConditionsShown = 2
)

// Input is everything a report is rendered from.
type Input struct {
	Today       time.Time
	Buckets     coupon.Buckets
	Suggestions []advisor.Suggestion
}

// Render formats the report. The output depends only on in.
func Render(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", Title)
	if !in.Today.IsZero() {
		fmt.Fprintf(&b, "Evaluation date: %s\n\n", in.Today.Format("2006-01-02"))
	}

	b.WriteString("## 1. Coupons available today\n\n")
	if len(in.Buckets.Today) == 0 {
		b.WriteString(NoneToday + "\n\n")
	} else {
		rows := make([][]string, 0, len(in.Buckets.Today))
		for _, c := range in.Buckets.Today {
			rows = append(rows, []string{c.Name, Items(c), Conditions(c), Validity(c), c.Status})
		}
		writeTable(&b, []string{"Coupon", "Items", "Conditions", "Validity", "Status"}, rows)
	}

	b.WriteString("## 2. Upcoming coupons\n\n")
	if len(in.Buckets.Future) == 0 {
		b.WriteString(NoneFuture + "\n\n")
	} else {
		rows := make([][]string, 0, len(in.Buckets.Future))
		for _, c := range in.Buckets.Future {
			rows = append(rows, []string{c.Name, Items(c), orDash(c.ValidFrom), Conditions(c), ComingSoon})
		}
		writeTable(&b, []string{"Coupon", "Items", "Starts", "Conditions", "Note"}, rows)
	}

	b.WriteString("## 3. Expired coupons\n\n")
	if len(in.Buckets.Expired) == 0 {
		b.WriteString(NoneExpired + "\n\n")
	} else {
		rows := make([][]string, 0, len(in.Buckets.Expired))
		for _, c := range in.Buckets.Expired {
			rows = append(rows, []string{c.Name, Items(c), orDash(c.ValidTo), c.Status})
		}
		writeTable(&b, []string{"Coupon", "Items", "Ended", "Status"}, rows)
	}

	b.WriteString("## 4. Best combination suggestions\n\n")
	if len(in.Buckets.Today) < advisor.MinActive {
		b.WriteString(NotEnoughCoupons + "\n")
	} else {
		rows := make([][]string, 0, len(in.Suggestions))
		for _, s := range in.Suggestions {
			rows = append(rows, []string{s.Label, strings.Join(s.Coupons, ", "), s.Saving, s.Strategy, Stars(s.Rank)})
		}
		writeTable(&b, []string{"Combination", "Coupons", "Estimated saving", "Strategy", "Rating"}, rows)
	}

	return b.String()
}

// Save writes the rendered report to path.
func Save(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	return nil
}

// Items is the display text for a coupon's applicable items.
func Items(c coupon.Coupon) string {
	return truncatedList(c.Items, maxItemsShown, VariousItems)
}

// Conditions is the display text for a coupon's usage conditions.
func Conditions(c coupon.Coupon) string {
	return truncatedList(c.Conditions, maxConditionsShown, NoConditions)
}

// Validity is the display text for a coupon's validity window.
func Validity(c coupon.Coupon) string {
	if c.HasWindow() {
		return c.ValidFrom + " to " + c.ValidTo
	}
	return LongTermValidity
}

// Stars renders a 1-5 rank as filled and empty stars.
func Stars(rank int) string {
	rank = max(0, min(5, rank))
	return strings.Repeat("★", rank) + strings.Repeat("☆", 5-rank)
}

func truncatedList(values []string, limit int, empty string) string {
	if len(values) == 0 {
		return empty
	}
	if len(values) <= limit {
		return strings.Join(values, ", ")
	}
	return strings.Join(values[:limit], ", ") + AndMore
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func writeTable(b *strings.Builder, header []string, rows [][]string) {
	table := tablewriter.NewWriter(b)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = cell(v)
		}
		table.Append(cells)
	}
	table.Render()
	b.WriteString("\n")
}

var cellReplacer = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

func cell(v string) string {
	return cellReplacer.Replace(v)
}
