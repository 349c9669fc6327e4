package filter

import "strings"

var statusSynonyms = map[string][]string{
	"available": {"unused", "usable", "active", "valid", "可用", "未使用"},
	"used":      {"redeemed", "consumed", "已使用"},
	"expired":   {"lapsed", "过期", "已过期"},
	"pending":   {"not yet active", "upcoming", "待生效", "未生效"},
	"locked":    {"frozen", "冻结"},
}

// statusIndex maps every normalized status spelling to its canonical status.
var statusIndex = func() map[string]string {
	idx := make(map[string]string)
	for canonical, synonyms := range statusSynonyms {
		idx[normalizeStatus(canonical)] = canonical
		for _, s := range synonyms {
			idx[normalizeStatus(s)] = canonical
		}
	}
	return idx
}()

// canonicalStatus resolves a status through the synonym table. Unknown
// statuses resolve to their normalized form so they still match themselves.
func canonicalStatus(raw string) string {
	norm := normalizeStatus(raw)
	if canonical, ok := statusIndex[norm]; ok {
		return canonical
	}
	return norm
}

type statusMatcher struct {
	want string
}

func newStatusMatcher(wanted string) statusMatcher {
	return statusMatcher{want: canonicalStatus(wanted)}
}

func (m statusMatcher) matches(status string) bool {
	return m.want != "" && canonicalStatus(status) == m.want
}

// normalizeStatus lowercases, folds - and _ into spaces, and drops a plural s.
func normalizeStatus(raw string) string {
	s := strings.NewReplacer("_", " ", "-", " ").Replace(strings.ToLower(raw))
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 3 && strings.HasSuffix(s, "s") && !strings.HasSuffix(s, "ss") {
		s = strings.TrimSuffix(s, "s")
	}
	return s
}
