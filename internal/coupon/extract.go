package coupon

import (
	"strings"

	"github.com/tayloree/coupon-report/internal/source"
)

// Key aliases, in lookup order.
var (
	nameKeys        = []string{"name", "couponName"}
	descriptionKeys = []string{"description", "couponDesc"}
	validFromKeys   = []string{"validFrom", "effectiveDate"}
	validToKeys     = []string{"validTo", "expiryDate"}
	statusKeys      = []string{"status"}
	discountKeys    = []string{"discount", "discountAmount"}
)

// listRule mines a list out of description text. The keyword gates the rule,
// the marker is the split point and the separator splits the tail.
type listRule struct {
	keyword   string
	marker    string
	separator string
}

var itemRules = []listRule{
	{keyword: "适用产品", marker: "适用产品:", separator: ";"},
	{keyword: "可购买", marker: "可购买:", separator: "、"},
}

var conditionRules = []listRule{
	{keyword: "使用条件", marker: "使用条件:", separator: ";"},
	{keyword: "条件", marker: "条件:", separator: "，"},
}

// allMarkers bound a tail: a tail ends where the next marker starts.
var allMarkers = []string{"适用产品:", "可购买:", "使用条件:", "条件:"}

// Extract builds the canonical coupon for one raw record. It never fails;
// missing fields fall back to defaults.
func Extract(raw source.Record) Coupon {
	desc := lookupOr(raw, descriptionKeys, "")
	return Coupon{
		Name:        lookupOr(raw, nameKeys, DefaultName),
		Description: desc,
		Items:       mineList(desc, itemRules),
		Conditions:  mineList(desc, conditionRules),
		ValidFrom:   lookupOr(raw, validFromKeys, ""),
		ValidTo:     lookupOr(raw, validToKeys, ""),
		Status:      lookupOr(raw, statusKeys, DefaultStatus),
		Discount:    lookupOr(raw, discountKeys, ""),
	}
}

func lookupOr(raw source.Record, keys []string, fallback string) string {
	if v, ok := raw.Lookup(keys...); ok {
		return v
	}
	return fallback
}

func mineList(text string, rules []listRule) []string {
	for _, rule := range rules {
		if !strings.Contains(text, rule.keyword) {
			continue
		}
		return splitSegments(markerTail(text, rule.marker), rule.separator)
	}
	return []string{}
}

// markerTail returns the text after the last occurrence of marker, cut off at
// the next marker. Without the marker the whole text is the tail.
func markerTail(text, marker string) string {
	tail := text
	if idx := strings.LastIndex(text, marker); idx >= 0 {
		tail = text[idx+len(marker):]
	}

	end := len(tail)
	for _, m := range allMarkers {
		if idx := strings.Index(tail, m); idx >= 0 && idx < end {
			end = idx
		}
	}
	return strings.TrimRight(tail[:end], " ;；。\t\r\n")
}

func splitSegments(tail, sep string) []string {
	parts := strings.Split(tail, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
