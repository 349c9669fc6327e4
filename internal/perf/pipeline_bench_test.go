package perf_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/tayloree/coupon-report/internal/advisor"
	"github.com/tayloree/coupon-report/internal/coupon"
	"github.com/tayloree/coupon-report/internal/display"
	"github.com/tayloree/coupon-report/internal/export"
	"github.com/tayloree/coupon-report/internal/filter"
	"github.com/tayloree/coupon-report/internal/logging"
	"github.com/tayloree/coupon-report/internal/report"
	"github.com/tayloree/coupon-report/internal/source"
)

var benchToday = time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)

func benchmarkRecords(count int) []source.Record {
	products := []string{"可乐", "咖啡", "汉堡", "薯条", "鸡块", "套餐", "冰淇淋"}
	records := make([]source.Record, 0, count)
	for i := range count {
		product := products[i%len(products)]
		rec := source.Record{
			"name":        fmt.Sprintf("Coupon %d %s", i, product),
			"description": fmt.Sprintf("适用产品:%s;大份%s;使用条件:限堂食;每人限一次", product, product),
			"discount":    fmt.Sprintf("%d元", (i%9)+1),
		}
		switch i % 4 {
		case 0:
			rec["validFrom"] = "2025-01-01"
			rec["validTo"] = "2025-01-31"
		case 1:
			rec["effectiveDate"] = "2025/02/01"
		case 2:
			rec["validFrom"] = "12/01/2024"
			rec["validTo"] = "12/31/2024"
			rec["status"] = "expired"
		}
		records = append(records, rec)
	}
	return records
}

func benchmarkPayload(b *testing.B, count int) []byte {
	b.Helper()

	payload, err := json.Marshal(map[string]any{"coupons": benchmarkRecords(count)})
	if err != nil {
		b.Fatalf("marshal payload: %v", err)
	}
	return payload
}

func runPipeline(b *testing.B, payload []byte, opts filter.Options) report.Input {
	b.Helper()

	records, err := source.Decode(bytes.NewReader(payload))
	if err != nil {
		b.Fatalf("decode: %v", err)
	}
	records = filter.Apply(records, opts)
	if len(records) == 0 {
		b.Fatalf("filter returned no coupons")
	}

	buckets := coupon.Categorize(records, benchToday)
	in := report.Input{
		Today:       benchToday,
		Buckets:     buckets,
		Suggestions: advisor.Suggest(buckets.Today),
	}
	text := report.Render(in)
	if err := display.PrintJSON(io.Discard, display.Analysis("bench", in, text)); err != nil {
		b.Fatalf("print analysis json: %v", err)
	}
	return in
}

func BenchmarkPipeline_1kCoupons(b *testing.B) {
	payload := benchmarkPayload(b, 1000)

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		runPipeline(b, payload, filter.Options{})
	}
}

func BenchmarkPipeline_1kCouponsFiltered(b *testing.B) {
	payload := benchmarkPayload(b, 1000)
	opts := filter.Options{Query: "coupon", Group: "food", Limit: 50}

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		runPipeline(b, payload, opts)
	}
}

func BenchmarkWorkbook_1kCoupons(b *testing.B) {
	in := runPipeline(b, benchmarkPayload(b, 1000), filter.Options{})
	entry := logging.Discard()

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		if _, err := export.Workbook(in, entry); err != nil {
			b.Fatalf("workbook: %v", err)
		}
	}
}
