// Package coupon turns raw coupon records into canonical coupons and sorts
// them into date-validity buckets.
package coupon

const (
	// DefaultName is used when a record carries no name under any alias.
	DefaultName = "unknown coupon"
	// DefaultStatus is used when a record carries no status.
	DefaultStatus = "available"
)

// Coupon is the canonical view of one raw coupon record. Empty ValidFrom,
// ValidTo or Discount mean the source did not provide them.
type Coupon struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Items       []string `json:"items"`
	Conditions  []string `json:"conditions"`
	ValidFrom   string   `json:"validFrom,omitempty"`
	ValidTo     string   `json:"validTo,omitempty"`
	Status      string   `json:"status"`
	Discount    string   `json:"discount,omitempty"`
}

// HasWindow reports whether both ends of the validity window are known.
func (c Coupon) HasWindow() bool {
	return c.ValidFrom != "" && c.ValidTo != ""
}
