package advisor

import (
	"strings"

	"github.com/tayloree/coupon-report/internal/coupon"
)

// Group is the inferred product category of a coupon.
type Group string

const (
	GroupDrink Group = "drink"
	GroupFood  Group = "food"
	GroupOther Group = "other"
)

type groupRule struct {
	group    Group
	keywords []string
}

// groupRules are checked in order; the first rule with a keyword found in the
// description decides the group.
var groupRules = []groupRule{
	{group: GroupDrink, keywords: []string{"饮料", "饮品", "可乐", "咖啡"}},
	{group: GroupFood, keywords: []string{"汉堡", "薯条", "鸡块", "套餐"}},
}

// Classify infers a coupon's product group from its description.
func Classify(c coupon.Coupon) Group {
	desc := strings.ToLower(c.Description)
	for _, rule := range groupRules {
		for _, kw := range rule.keywords {
			if strings.Contains(desc, strings.ToLower(kw)) {
				return rule.group
			}
		}
	}
	return GroupOther
}

// Groups splits coupons into product groups, keeping input order in each.
func Groups(coupons []coupon.Coupon) map[Group][]coupon.Coupon {
	out := make(map[Group][]coupon.Coupon, 3)
	for _, c := range coupons {
		g := Classify(c)
		out[g] = append(out[g], c)
	}
	return out
}

var groupSynonyms = map[Group][]string{
	GroupDrink: {"drinks", "beverage", "beverages", "饮料", "饮品"},
	GroupFood:  {"foods", "meal", "meals", "snack", "snacks", "食物", "餐"},
	GroupOther: {"general", "misc", "通用", "其他"},
}

// ParseGroup resolves a user-supplied group name or synonym.
func ParseGroup(raw string) (Group, bool) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	if norm == "" {
		return "", false
	}
	for g, synonyms := range groupSynonyms {
		if norm == string(g) {
			return g, true
		}
		for _, s := range synonyms {
			if norm == s {
				return g, true
			}
		}
	}
	return "", false
}
