package coupon

import (
	"time"

	"github.com/tayloree/coupon-report/internal/source"
)

// Bucket is a coupon's date-validity class relative to an evaluation date.
type Bucket int

const (
	ActiveToday Bucket = iota
	Future
	Expired
)

func (b Bucket) String() string {
	switch b {
	case ActiveToday:
		return "today"
	case Future:
		return "future"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// Buckets partitions a batch of coupons. Each slice keeps input order.
type Buckets struct {
	Today   []Coupon `json:"today"`
	Future  []Coupon `json:"future"`
	Expired []Coupon `json:"expired"`
}

// Len returns the total number of coupons across all buckets.
func (b Buckets) Len() int {
	return len(b.Today) + len(b.Future) + len(b.Expired)
}

// Window is the parsed validity window of a record. A nil end means the
// record has no usable end date.
type Window struct {
	Start *time.Time
	End   *time.Time
}

// WindowOf parses the validity window used for categorization. The start
// falls back to effectiveDate; the end only comes from validTo.
func WindowOf(raw source.Record) Window {
	var w Window
	if v, ok := raw.Lookup(validFromKeys...); ok {
		if t, ok := ParseDate(v); ok {
			w.Start = &t
		}
	}
	if v, ok := raw.Lookup("validTo"); ok {
		if t, ok := ParseDate(v); ok {
			w.End = &t
		}
	}
	return w
}

// Classify decides the bucket of one record for the given day.
func Classify(raw source.Record, today time.Time) Bucket {
	return WindowOf(raw).bucket(Day(today))
}

func (w Window) bucket(today time.Time) Bucket {
	switch {
	case w.Start != nil && w.End != nil:
		if today.Before(*w.Start) {
			return Future
		}
		if today.After(*w.End) {
			return Expired
		}
		return ActiveToday
	case w.Start != nil:
		if today.Before(*w.Start) {
			return Future
		}
		return ActiveToday
	default:
		// Undated coupons are assumed usable.
		return ActiveToday
	}
}

// Categorize sorts every record into exactly one bucket for the given day.
func Categorize(records []source.Record, today time.Time) Buckets {
	day := Day(today)
	out := Buckets{
		Today:   []Coupon{},
		Future:  []Coupon{},
		Expired: []Coupon{},
	}
	for _, raw := range records {
		c := Extract(raw)
		switch WindowOf(raw).bucket(day) {
		case Future:
			out.Future = append(out.Future, c)
		case Expired:
			out.Expired = append(out.Expired, c)
		default:
			out.Today = append(out.Today, c)
		}
	}
	return out
}
