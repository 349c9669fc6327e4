// Package filter narrows raw coupon records before they are analyzed.
package filter

import (
	"html"
	"strings"

	"github.com/tayloree/coupon-report/internal/advisor"
	"github.com/tayloree/coupon-report/internal/coupon"
	"github.com/tayloree/coupon-report/internal/source"
)

// Options holds all filter criteria. Zero values disable a criterion.
type Options struct {
	Query  string
	Group  string
	Status string
	Limit  int
}

// Active reports whether any criterion is set.
func (o Options) Active() bool {
	return strings.TrimSpace(o.Query) != "" ||
		strings.TrimSpace(o.Group) != "" ||
		strings.TrimSpace(o.Status) != "" ||
		o.Limit > 0
}

// Apply keeps the records matching every criterion, in input order, then
// applies the limit.
func Apply(records []source.Record, opts Options) []source.Record {
	query := strings.ToLower(strings.TrimSpace(opts.Query))

	wantGroup := strings.TrimSpace(opts.Group) != ""
	group, groupOK := advisor.ParseGroup(opts.Group)

	wantStatus := strings.TrimSpace(opts.Status) != ""
	status := newStatusMatcher(opts.Status)

	if wantGroup && !groupOK {
		return []source.Record{}
	}

	capHint := len(records)
	if opts.Limit > 0 && opts.Limit < capHint {
		capHint = opts.Limit
	}
	result := make([]source.Record, 0, capHint)

	for _, rec := range records {
		if opts.Limit > 0 && len(result) >= opts.Limit {
			break
		}
		if query != "" && !matchesQuery(rec, query) {
			continue
		}
		if wantStatus || wantGroup {
			c := coupon.Extract(rec)
			if wantStatus && !status.matches(c.Status) {
				continue
			}
			if wantGroup && advisor.Classify(c) != group {
				continue
			}
		}
		result = append(result, rec)
	}
	return result
}

func matchesQuery(rec source.Record, q string) bool {
	name, _ := rec.Lookup("name", "couponName")
	if strings.Contains(strings.ToLower(CleanText(name)), q) {
		return true
	}
	desc, _ := rec.Lookup("description", "couponDesc")
	return strings.Contains(strings.ToLower(CleanText(desc)), q)
}

// Statuses returns a map of coupon status to count across all records.
func Statuses(records []source.Record) map[string]int {
	out := make(map[string]int)
	for _, rec := range records {
		out[coupon.Extract(rec).Status]++
	}
	return out
}

// CleanText unescapes HTML entities and normalizes whitespace.
func CleanText(s string) string {
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
