package coupon_test

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tayloree/coupon-report/internal/coupon"
	"github.com/tayloree/coupon-report/internal/source"
)

func windowRecord(name, from, to string) source.Record {
	return source.Record{"name": name, "validFrom": from, "validTo": to}
}

func TestClassify_Examples(t *testing.T) {
	rec := windowRecord("A", "2025-01-19", "2025-01-25")

	assert.Equal(t, coupon.ActiveToday, coupon.Classify(rec, day(2025, 1, 20)))
	assert.Equal(t, coupon.Expired, coupon.Classify(rec, day(2025, 1, 26)))
	assert.Equal(t, coupon.Future, coupon.Classify(rec, day(2025, 1, 10)))
}

func TestClassify_WindowBoundsAreInclusive(t *testing.T) {
	rec := windowRecord("A", "2025-01-19", "2025-01-25")

	assert.Equal(t, coupon.ActiveToday, coupon.Classify(rec, day(2025, 1, 19)))
	assert.Equal(t, coupon.ActiveToday, coupon.Classify(rec, day(2025, 1, 25)))
}

func TestClassify_IgnoresTimeOfDay(t *testing.T) {
	rec := windowRecord("A", "2025-01-19", "2025-01-25")
	lateEvening := time.Date(2025, 1, 25, 23, 30, 0, 0, time.Local)

	assert.Equal(t, coupon.ActiveToday, coupon.Classify(rec, lateEvening))
}

func TestClassify_StartOnly(t *testing.T) {
	rec := source.Record{"effectiveDate": "2025-01-22"}

	assert.Equal(t, coupon.Future, coupon.Classify(rec, day(2025, 1, 21)))
	assert.Equal(t, coupon.ActiveToday, coupon.Classify(rec, day(2025, 1, 22)))
	assert.Equal(t, coupon.ActiveToday, coupon.Classify(rec, day(2026, 1, 1)))
}

func TestClassify_EndOnlyOrExpiryDateIsTreatedAsUndated(t *testing.T) {
	assert.Equal(t, coupon.ActiveToday, coupon.Classify(source.Record{"validTo": "2020-01-01"}, day(2025, 1, 1)))
	assert.Equal(t, coupon.ActiveToday, coupon.Classify(
		source.Record{"validFrom": "2020-01-01", "expiryDate": "2020-02-01"}, day(2025, 1, 1)))
}

func TestClassify_UnparseableDatesFallThrough(t *testing.T) {
	rec := source.Record{"validFrom": "soon", "validTo": "2020-01-01"}
	assert.Equal(t, coupon.ActiveToday, coupon.Classify(rec, day(2025, 1, 1)))

	rec = source.Record{"validFrom": "2025-01-10", "validTo": "whenever"}
	assert.Equal(t, coupon.ActiveToday, coupon.Classify(rec, day(2025, 1, 11)))
	assert.Equal(t, coupon.Future, coupon.Classify(rec, day(2025, 1, 9)))
}

func TestClassify_UndatedIsAlwaysActive(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	rec := source.Record{"name": "undated"}
	for range 200 {
		today := day(2000, 1, 1).AddDate(0, 0, rng.Intn(20000))
		assert.Equal(t, coupon.ActiveToday, coupon.Classify(rec, today), "today=%s", today)
	}
}

func TestClassify_WindowProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := day(2024, 1, 1)

	for caseNum := 0; caseNum < 500; caseNum++ {
		start := base.AddDate(0, 0, rng.Intn(400))
		end := start.AddDate(0, 0, rng.Intn(30))
		today := base.AddDate(0, 0, rng.Intn(460))
		rec := windowRecord("p", start.Format("2006-01-02"), end.Format("2006/01/02"))

		want := coupon.ActiveToday
		switch {
		case today.Before(start):
			want = coupon.Future
		case today.After(end):
			want = coupon.Expired
		}
		assert.Equal(t, want, coupon.Classify(rec, today), "case=%d window=[%s,%s] today=%s", caseNum, start, end, today)
	}
}

func TestCategorize_SampleData(t *testing.T) {
	b := coupon.Categorize(source.SampleRecords(), day(2025, 1, 20))

	require.Len(t, b.Today, 2)
	assert.Equal(t, "麦辣鸡腿堡买一送一", b.Today[0].Name)
	assert.Equal(t, "大薯条5折券", b.Today[1].Name)
	require.Len(t, b.Future, 2)
	assert.Equal(t, "可乐免费升级", b.Future[0].Name)
	assert.Equal(t, "新年全家桶8折", b.Future[1].Name)
	assert.Empty(t, b.Expired)
}

func TestCategorize_PartitionsInput(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	dates := []string{"", "2025-01-01", "2025/01/15", "01/20/2025", "garbage", "2025-02-01"}

	for caseNum := 0; caseNum < 200; caseNum++ {
		n := rng.Intn(40)
		records := make([]source.Record, 0, n)
		for i := range n {
			records = append(records, source.Record{
				"name":      fmt.Sprintf("c-%d", i),
				"validFrom": dates[rng.Intn(len(dates))],
				"validTo":   dates[rng.Intn(len(dates))],
			})
		}

		b := coupon.Categorize(records, day(2025, 1, 16))

		assert.Equal(t, n, b.Len())
		seen := map[string]int{}
		for _, group := range [][]coupon.Coupon{b.Today, b.Future, b.Expired} {
			for _, c := range group {
				seen[c.Name]++
			}
		}
		assert.Len(t, seen, n)
		for name, count := range seen {
			assert.Equal(t, 1, count, "coupon %s appears in %d buckets", name, count)
		}
	}
}

func TestCategorize_PreservesInputOrder(t *testing.T) {
	records := []source.Record{
		windowRecord("e1", "2024-01-01", "2024-01-02"),
		windowRecord("t1", "2025-01-01", "2025-12-31"),
		windowRecord("e2", "2024-02-01", "2024-02-02"),
		windowRecord("t2", "", ""),
	}

	b := coupon.Categorize(records, day(2025, 6, 1))

	require.Len(t, b.Today, 2)
	assert.Equal(t, "t1", b.Today[0].Name)
	assert.Equal(t, "t2", b.Today[1].Name)
	require.Len(t, b.Expired, 2)
	assert.Equal(t, "e1", b.Expired[0].Name)
	assert.Equal(t, "e2", b.Expired[1].Name)
}

func TestCategorize_EmptyInput(t *testing.T) {
	b := coupon.Categorize(nil, day(2025, 1, 1))

	assert.Equal(t, 0, b.Len())
	assert.NotNil(t, b.Today)
}

func TestBucketString(t *testing.T) {
	assert.Equal(t, "today", coupon.ActiveToday.String())
	assert.Equal(t, "future", coupon.Future.String())
	assert.Equal(t, "expired", coupon.Expired.String())
}
