package advisor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tayloree/coupon-report/internal/advisor"
	"github.com/tayloree/coupon-report/internal/coupon"
)

func drink(name string) coupon.Coupon {
	return coupon.Coupon{Name: name, Description: "中可乐免费升级为大可乐"}
}

func food(name string) coupon.Coupon {
	return coupon.Coupon{Name: name, Description: "购买汉堡，第二个免费"}
}

func other(name, discount string) coupon.Coupon {
	return coupon.Coupon{Name: name, Description: "全场通用", Discount: discount}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		desc string
		want advisor.Group
	}{
		{"中可乐免费升级", advisor.GroupDrink},
		{"任意饮品第二杯半价", advisor.GroupDrink},
		{"大薯条5折", advisor.GroupFood},
		{"鸡块加量", advisor.GroupFood},
		{"可乐套餐", advisor.GroupDrink},
		{"全场8折", advisor.GroupOther},
		{"", advisor.GroupOther},
	}
	for _, tt := range tests {
		got := advisor.Classify(coupon.Coupon{Description: tt.desc})
		assert.Equal(t, tt.want, got, "Classify(%q)", tt.desc)
	}
}

func TestSuggest_TooFewCoupons(t *testing.T) {
	assert.Empty(t, advisor.Suggest(nil))
	assert.Empty(t, advisor.Suggest([]coupon.Coupon{food("Burger")}))
	assert.NotNil(t, advisor.Suggest(nil))
}

func TestSuggest_DrinkAndFoodPairFirst(t *testing.T) {
	got := advisor.Suggest([]coupon.Coupon{food("Burger BOGO"), drink("Cola upgrade")})

	require.NotEmpty(t, got)
	first := got[0]
	assert.Equal(t, advisor.KindDrinkFood, first.Kind)
	assert.Equal(t, 5, first.Rank)
	assert.Equal(t, []string{"Cola upgrade", "Burger BOGO"}, first.Coupons)
	assert.Equal(t, "Cola+Burger", first.Label)
	assert.Equal(t, advisor.DrinkFoodStrategy, first.Strategy)
}

func TestSuggest_LabelIgnoresSurroundingWhitespace(t *testing.T) {
	got := advisor.Suggest([]coupon.Coupon{food("Burger\tBOGO"), drink("  Cola upgrade")})

	require.NotEmpty(t, got)
	assert.Equal(t, "Cola+Burger", got[0].Label)
	assert.Equal(t, []string{"  Cola upgrade", "Burger\tBOGO"}, got[0].Coupons)
}

func TestSuggest_UsesFirstOfEachGroup(t *testing.T) {
	got := advisor.Suggest([]coupon.Coupon{
		drink("D1"), food("F1"), drink("D2"), food("F2"), food("F3"),
	})

	require.Len(t, got, 2)
	assert.Equal(t, []string{"D1", "F1"}, got[0].Coupons)
	assert.Equal(t, advisor.KindDoubleFood, got[1].Kind)
	assert.Equal(t, []string{"F1", "F2"}, got[1].Coupons)
	assert.Equal(t, 4, got[1].Rank)
	assert.Equal(t, advisor.DoubleFoodStrategy, got[1].Strategy)
}

func TestSuggest_OtherCouponsCappedAtTwo(t *testing.T) {
	got := advisor.Suggest([]coupon.Coupon{
		other("O1", "¥5"), other("O2", ""), other("O3", "¥1"),
	})

	require.Len(t, got, 2)
	assert.Equal(t, "General offer 1", got[0].Label)
	assert.Equal(t, "¥5", got[0].Saving)
	assert.Equal(t, 3, got[0].Rank)
	assert.Equal(t, advisor.SingleStrategy, got[0].Strategy)
	assert.Equal(t, "General offer 2", got[1].Label)
	assert.Equal(t, advisor.SingleSaving, got[1].Saving)
}

func TestSuggest_PriorityOrder(t *testing.T) {
	got := advisor.Suggest([]coupon.Coupon{
		other("O1", ""), food("F1"), food("F2"), drink("D1"),
	})

	kinds := make([]advisor.Kind, 0, len(got))
	for _, s := range got {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []advisor.Kind{advisor.KindDrinkFood, advisor.KindDoubleFood, advisor.KindSingle}, kinds)
}

func TestSuggest_TwoDrinksProduceNothing(t *testing.T) {
	assert.Empty(t, advisor.Suggest([]coupon.Coupon{drink("D1"), drink("D2")}))
}

func TestGroups_Disjoint(t *testing.T) {
	coupons := []coupon.Coupon{drink("D1"), food("F1"), other("O1", ""), food("F2")}
	groups := advisor.Groups(coupons)

	total := 0
	for _, g := range groups {
		total += len(g)
	}
	assert.Equal(t, len(coupons), total)
	assert.Len(t, groups[advisor.GroupFood], 2)
}

func TestParseGroup(t *testing.T) {
	tests := []struct {
		input string
		want  advisor.Group
		ok    bool
	}{
		{"drink", advisor.GroupDrink, true},
		{" Beverages ", advisor.GroupDrink, true},
		{"饮品", advisor.GroupDrink, true},
		{"meal", advisor.GroupFood, true},
		{"misc", advisor.GroupOther, true},
		{"toys", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := advisor.ParseGroup(tt.input)
		assert.Equal(t, tt.ok, ok, "ParseGroup(%q)", tt.input)
		assert.Equal(t, tt.want, got, "ParseGroup(%q)", tt.input)
	}
}
