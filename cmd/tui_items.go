package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"github.com/tayloree/coupon-report/internal/advisor"
	"github.com/tayloree/coupon-report/internal/coupon"
	"github.com/tayloree/coupon-report/internal/filter"
	"github.com/tayloree/coupon-report/internal/report"
)

// Section names, in display order.
const (
	sectionToday        = "Usable today"
	sectionFuture       = "Upcoming"
	sectionExpired      = "Expired"
	sectionCombinations = "Combinations"
)

func sectionNoun(section string) string {
	if section == sectionCombinations {
		return "combinations"
	}
	return "coupons"
}

type tuiSectionItem struct {
	name    string
	count   int
	ordinal int
}

func (s tuiSectionItem) FilterValue() string { return strings.ToLower(s.name) }
func (s tuiSectionItem) Title() string       { return fmt.Sprintf("%d. %s", s.ordinal, s.name) }
func (s tuiSectionItem) Description() string {
	return fmt.Sprintf("Section header • %d %s", s.count, sectionNoun(s.name))
}

type tuiCouponItem struct {
	coupon      coupon.Coupon
	bucket      coupon.Bucket
	section     string
	title       string
	description string
	filterValue string
}

func (c tuiCouponItem) FilterValue() string { return c.filterValue }
func (c tuiCouponItem) Title() string       { return c.title }
func (c tuiCouponItem) Description() string { return c.description }

type tuiSuggestionItem struct {
	suggestion  advisor.Suggestion
	title       string
	description string
	filterValue string
}

func (s tuiSuggestionItem) FilterValue() string { return s.filterValue }
func (s tuiSuggestionItem) Title() string       { return s.title }
func (s tuiSuggestionItem) Description() string { return s.description }

// buildSectionedListItems lays out non-empty buckets in fixed order, followed
// by the combination suggestions. Each section starts with a numbered header.
func buildSectionedListItems(b coupon.Buckets, suggestions []advisor.Suggestion) (items []list.Item, starts []int) {
	sections := []struct {
		name    string
		bucket  coupon.Bucket
		coupons []coupon.Coupon
	}{
		{sectionToday, coupon.ActiveToday, b.Today},
		{sectionFuture, coupon.Future, b.Future},
		{sectionExpired, coupon.Expired, b.Expired},
	}

	items = make([]list.Item, 0, b.Len()+len(suggestions)+4)
	header := func(name string, count int) {
		starts = append(starts, len(items))
		items = append(items, tuiSectionItem{name: name, count: count, ordinal: len(starts)})
	}

	for _, s := range sections {
		if len(s.coupons) == 0 {
			continue
		}
		header(s.name, len(s.coupons))
		for _, c := range s.coupons {
			items = append(items, buildTUICouponItem(c, s.bucket, s.name))
		}
	}
	if len(suggestions) > 0 {
		header(sectionCombinations, len(suggestions))
		for _, s := range suggestions {
			items = append(items, buildTUISuggestionItem(s))
		}
	}

	if len(items) == 0 {
		return nil, nil
	}
	return items, starts
}

func buildTUICouponItem(c coupon.Coupon, bucket coupon.Bucket, section string) tuiCouponItem {
	group := string(advisor.Classify(c))

	desc := []string{group, report.Validity(c)}
	if c.Discount != "" {
		desc = append(desc, c.Discount)
	}
	searchable := []string{
		c.Name, c.Description,
		strings.Join(c.Items, " "), strings.Join(c.Conditions, " "),
		c.Status, c.Discount, group, section,
	}

	return tuiCouponItem{
		coupon:      c,
		bucket:      bucket,
		section:     section,
		title:       c.Name,
		description: strings.Join(desc, "  •  "),
		filterValue: strings.ToLower(strings.Join(searchable, " ")),
	}
}

func buildTUISuggestionItem(s advisor.Suggestion) tuiSuggestionItem {
	searchable := []string{s.Label, strings.Join(s.Coupons, " "), s.Saving, s.Strategy, sectionCombinations}
	return tuiSuggestionItem{
		suggestion:  s,
		title:       s.Label,
		description: report.Stars(s.Rank) + "  •  " + s.Saving,
		filterValue: strings.ToLower(strings.Join(searchable, " ")),
	}
}

func labeled(label, value string) string {
	return tuiMetaStyle.Render(label) + " " + value
}

func renderCouponDetailContent(item tuiCouponItem, width int) string {
	width = max(24, width)
	c := item.coupon

	desc := c.Description
	if strings.TrimSpace(desc) == "" {
		desc = "No description provided."
	}
	discount := c.Discount
	if discount == "" {
		discount = "-"
	}

	var b strings.Builder
	b.WriteString(tuiCouponStyle.Render(wrapText(c.Name, width)) + "\n")
	b.WriteString(tuiMetaStyle.Render(fmt.Sprintf("%s  |  group: %s  |  status: %s", item.section, advisor.Classify(c), c.Status)) + "\n\n")
	b.WriteString(labeled("Items:", wrapText(report.Items(c), width)) + "\n")
	b.WriteString(labeled("Conditions:", wrapText(report.Conditions(c), width)) + "\n")
	b.WriteString(labeled("Validity:", report.Validity(c)) + "\n")
	b.WriteString(labeled("Discount:", tuiValueStyle.Render(discount)) + "\n\n")
	b.WriteString(tuiMetaStyle.Render("Description:") + "\n")
	b.WriteString(wrapText(desc, width))

	if len(c.Items)+len(c.Conditions) > 0 {
		b.WriteString("\n\n" + tuiMutedStyle.Render("All extracted fields:"))
		for _, it := range c.Items {
			b.WriteString("\n" + tuiMutedStyle.Render("• item: "+it))
		}
		for _, cond := range c.Conditions {
			b.WriteString("\n" + tuiMutedStyle.Render("• condition: "+cond))
		}
	}
	return b.String()
}

func renderSuggestionDetailContent(s advisor.Suggestion, width int) string {
	width = max(24, width)

	var b strings.Builder
	b.WriteString(tuiCouponStyle.Render(wrapText(s.Label, width)) + "\n")
	b.WriteString(tuiStarStyle.Render(report.Stars(s.Rank)) + "\n\n")
	b.WriteString(labeled("Estimated saving:", tuiValueStyle.Render(s.Saving)) + "\n")
	b.WriteString(labeled("Strategy:", wrapText(s.Strategy, width)) + "\n\n")
	b.WriteString(tuiMetaStyle.Render("Coupons:"))
	for _, name := range s.Coupons {
		b.WriteString("\n• " + name)
	}
	return b.String()
}

// wrapText greedily fills lines up to width bytes.
func wrapText(text string, width int) string {
	width = max(12, width)
	var b strings.Builder
	lineLen := 0
	for _, w := range strings.Fields(text) {
		switch {
		case lineLen == 0:
		case lineLen+1+len(w) > width:
			b.WriteByte('\n')
			lineLen = 0
		default:
			b.WriteByte(' ')
			lineLen++
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	return b.String()
}

func canonicalizeTUIOptions(opts filter.Options) filter.Options {
	opts.Query = strings.TrimSpace(opts.Query)
	opts.Status = strings.TrimSpace(opts.Status)
	group, ok := advisor.ParseGroup(opts.Group)
	opts.Group = ""
	if ok {
		opts.Group = string(group)
	}
	return opts
}

var tuiGroupChoices = []string{"", string(advisor.GroupDrink), string(advisor.GroupFood), string(advisor.GroupOther)}

func buildLimitChoices(current int) []int {
	values := []int{0, 10, 25, 50, 100}
	if current > 0 && !slices.Contains(values, current) {
		values = append(values, current)
		slices.Sort(values)
	}
	return values
}

func firstEntryIndexFrom(items []list.Item, start int) int {
	for i := start; i < len(items); i++ {
		if _, header := items[i].(tuiSectionItem); !header {
			return i
		}
	}
	return -1
}

// stableIDForItem keeps the selection across pipeline reruns.
func stableIDForItem(item list.Item) string {
	switch v := item.(type) {
	case tuiCouponItem:
		return "coupon:" + v.bucket.String() + ":" + strings.ToLower(strings.TrimSpace(v.title))
	case tuiSuggestionItem:
		return "combo:" + strings.ToLower(v.title)
	case tuiSectionItem:
		return "section:" + strings.ToLower(v.name)
	}
	return ""
}
