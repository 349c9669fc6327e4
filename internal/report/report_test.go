package report_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tayloree/coupon-report/internal/advisor"
	"github.com/tayloree/coupon-report/internal/coupon"
	"github.com/tayloree/coupon-report/internal/report"
	"github.com/tayloree/coupon-report/internal/source"
)

var evalDay = time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)

func sampleInput() report.Input {
	b := coupon.Categorize(source.SampleRecords(), evalDay)
	return report.Input{Today: evalDay, Buckets: b, Suggestions: advisor.Suggest(b.Today)}
}

func TestRender_SampleData(t *testing.T) {
	out := report.Render(sampleInput())

	assert.True(t, strings.HasPrefix(out, "# "+report.Title))
	assert.Contains(t, out, "Evaluation date: 2025-01-20")
	assert.Contains(t, out, "麦辣鸡腿堡买一送一")
	assert.Contains(t, out, "2025-01-19 to 2025-01-25")
	assert.Contains(t, out, "限堂食")
	assert.Contains(t, out, "可乐免费升级")
	assert.Contains(t, out, report.ComingSoon)
	assert.Contains(t, out, report.NoneExpired)
	assert.Contains(t, out, "General offer 1")
	assert.Contains(t, out, advisor.SingleSaving)
	assert.Contains(t, out, "★★★☆☆")
	assert.NotContains(t, out, report.NotEnoughCoupons)
}

func TestRender_SectionOrder(t *testing.T) {
	out := report.Render(sampleInput())

	today := strings.Index(out, "## 1.")
	future := strings.Index(out, "## 2.")
	expired := strings.Index(out, "## 3.")
	combos := strings.Index(out, "## 4.")
	assert.True(t, today < future && future < expired && expired < combos)
}

func TestRender_EmptyBuckets(t *testing.T) {
	out := report.Render(report.Input{})

	assert.Contains(t, out, report.NoneToday)
	assert.Contains(t, out, report.NoneFuture)
	assert.Contains(t, out, report.NoneExpired)
	assert.Contains(t, out, report.NotEnoughCoupons)
	assert.NotContains(t, out, "Evaluation date")
}

func TestRender_NotEnoughCouponsWithSingleActive(t *testing.T) {
	in := report.Input{Buckets: coupon.Buckets{Today: []coupon.Coupon{{Name: "Solo", Status: "available"}}}}

	out := report.Render(in)

	assert.Contains(t, out, "Solo")
	assert.Contains(t, out, report.NotEnoughCoupons)
}

func TestRender_Deterministic(t *testing.T) {
	assert.Equal(t, report.Render(sampleInput()), report.Render(sampleInput()))
}

func TestRender_EscapesPipes(t *testing.T) {
	in := report.Input{Buckets: coupon.Buckets{Expired: []coupon.Coupon{{Name: "A|B", Status: "used"}}}}

	out := report.Render(in)

	assert.Contains(t, out, `A\|B`)
}

func TestItems_Truncation(t *testing.T) {
	c := coupon.Coupon{Items: []string{"a", "b", "c", "d"}}
	assert.Equal(t, "a, b, c and more", report.Items(c))

	c.Items = []string{"a", "b", "c"}
	assert.Equal(t, "a, b, c", report.Items(c))

	c.Items = nil
	assert.Equal(t, report.VariousItems, report.Items(c))
}

func TestConditions_Truncation(t *testing.T) {
	c := coupon.Coupon{Conditions: []string{"x", "y", "z"}}
	assert.Equal(t, "x, y and more", report.Conditions(c))

	c.Conditions = []string{}
	assert.Equal(t, report.NoConditions, report.Conditions(c))
}

func TestValidity(t *testing.T) {
	assert.Equal(t, "2025-01-01 to 2025-02-01", report.Validity(coupon.Coupon{ValidFrom: "2025-01-01", ValidTo: "2025-02-01"}))
	assert.Equal(t, report.LongTermValidity, report.Validity(coupon.Coupon{ValidFrom: "2025-01-01"}))
	assert.Equal(t, report.LongTermValidity, report.Validity(coupon.Coupon{}))
}

func TestStars(t *testing.T) {
	assert.Equal(t, "★★★★★", report.Stars(5))
	assert.Equal(t, "★★★☆☆", report.Stars(3))
	assert.Equal(t, "☆☆☆☆☆", report.Stars(-1))
	assert.Equal(t, "★★★★★", report.Stars(9))
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), report.DefaultPath)

	require.NoError(t, report.Save(path, "# hello\n"))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# hello\n", string(b))
}

func TestSave_Failure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "report.md")

	err := report.Save(path, "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving report")
}
