package coupon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tayloree/coupon-report/internal/coupon"
	"github.com/tayloree/coupon-report/internal/source"
)

func TestExtract_ItemsAndConditions(t *testing.T) {
	c := coupon.Extract(source.Record{
		"name":        "麦辣鸡腿堡买一送一",
		"description": "适用产品:麦辣鸡腿堡;使用条件:限堂食",
	})

	assert.Equal(t, []string{"麦辣鸡腿堡"}, c.Items)
	assert.Equal(t, []string{"限堂食"}, c.Conditions)
}

func TestExtract_PurchasableAndShortConditionMarkers(t *testing.T) {
	c := coupon.Extract(source.Record{
		"description": "大薯条5折优惠。可购买:大薯条、中薯条;条件:任意订单可用，限堂食",
	})

	assert.Equal(t, []string{"大薯条", "中薯条"}, c.Items)
	assert.Equal(t, []string{"任意订单可用", "限堂食"}, c.Conditions)
}

func TestExtract_LastMarkerOccurrenceWins(t *testing.T) {
	c := coupon.Extract(source.Record{
		"description": "适用产品:旧品;说明 适用产品:新品A; 新品B ;;",
	})

	assert.Equal(t, []string{"新品A", "新品B"}, c.Items)
}

func TestExtract_ApplicableProductsBeforePurchasable(t *testing.T) {
	c := coupon.Extract(source.Record{
		"description": "可购买:薯条、可乐 适用产品:汉堡",
	})

	assert.Equal(t, []string{"汉堡"}, c.Items)
}

func TestExtract_NoMarkers(t *testing.T) {
	c := coupon.Extract(source.Record{"description": "Half price on everything"})

	assert.NotNil(t, c.Items)
	assert.Empty(t, c.Items)
	assert.NotNil(t, c.Conditions)
	assert.Empty(t, c.Conditions)
}

func TestExtract_Aliases(t *testing.T) {
	c := coupon.Extract(source.Record{
		"couponName":     "Fries",
		"couponDesc":     "Large fries",
		"effectiveDate":  "2025-01-20",
		"expiryDate":     "2025-01-27",
		"discountAmount": "50%",
	})

	assert.Equal(t, "Fries", c.Name)
	assert.Equal(t, "Large fries", c.Description)
	assert.Equal(t, "2025-01-20", c.ValidFrom)
	assert.Equal(t, "2025-01-27", c.ValidTo)
	assert.Equal(t, "50%", c.Discount)
	assert.True(t, c.HasWindow())
}

func TestExtract_PrimaryKeysWinOverAliases(t *testing.T) {
	c := coupon.Extract(source.Record{
		"name":          "Primary",
		"couponName":    "Alias",
		"validFrom":     "2025-01-01",
		"effectiveDate": "2024-01-01",
	})

	assert.Equal(t, "Primary", c.Name)
	assert.Equal(t, "2025-01-01", c.ValidFrom)
}

func TestExtract_Defaults(t *testing.T) {
	c := coupon.Extract(source.Record{})

	assert.Equal(t, coupon.DefaultName, c.Name)
	assert.Equal(t, coupon.DefaultStatus, c.Status)
	assert.Empty(t, c.Description)
	assert.Empty(t, c.ValidFrom)
	assert.Empty(t, c.ValidTo)
	assert.Empty(t, c.Discount)
	assert.False(t, c.HasWindow())
}

func TestExtract_Idempotent(t *testing.T) {
	records := append(source.SampleRecords(),
		source.Record{"couponName": "X", "couponDesc": "条件:a，b", "expiryDate": "2025-03-01", "discountAmount": 3},
		source.Record{},
	)

	for _, raw := range records {
		first := coupon.Extract(raw)
		again := coupon.Extract(source.Record{
			"name":        first.Name,
			"description": first.Description,
			"validFrom":   first.ValidFrom,
			"validTo":     first.ValidTo,
			"status":      first.Status,
			"discount":    first.Discount,
		})
		assert.Equal(t, first, again, "re-extracting %q", first.Name)
	}
}
