// Package export writes an analysis to an XLSX workbook.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/tayloree/coupon-report/internal/advisor"
	"github.com/tayloree/coupon-report/internal/coupon"
	"github.com/tayloree/coupon-report/internal/report"
)

// Sheet names, in workbook order.
const (
	SheetToday        = "Today"
	SheetFuture       = "Upcoming"
	SheetExpired      = "Expired"
	SheetCombinations = "Combinations"
)

var couponHeaders = []string{"Coupon", "Items", "Conditions", "Valid From", "Valid To", "Status", "Discount", "Group"}

// Workbook builds XLSX bytes for buckets and suggestions.
func Workbook(in report.Input, log logrus.FieldLogger) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name    string
		coupons []coupon.Coupon
	}{
		{SheetToday, in.Buckets.Today},
		{SheetFuture, in.Buckets.Future},
		{SheetExpired, in.Buckets.Expired},
	}
	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return nil, fmt.Errorf("xlsx sheet %s: %w", s.name, err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return nil, fmt.Errorf("xlsx sheet %s: %w", s.name, err)
		}
		writeRow(f, s.name, 1, couponHeaders)
		for r, c := range s.coupons {
			writeRow(f, s.name, r+2, []string{
				c.Name,
				strings.Join(c.Items, ", "),
				strings.Join(c.Conditions, ", "),
				c.ValidFrom,
				c.ValidTo,
				c.Status,
				c.Discount,
				string(advisor.Classify(c)),
			})
		}
		_ = f.SetColWidth(s.name, "A", "A", 28)
		_ = f.SetColWidth(s.name, "B", "C", 36)
		_ = f.SetColWidth(s.name, "D", "E", 14)
	}

	if _, err := f.NewSheet(SheetCombinations); err != nil {
		return nil, fmt.Errorf("xlsx sheet %s: %w", SheetCombinations, err)
	}
	writeRow(f, SheetCombinations, 1, []string{"Combination", "Coupons", "Estimated Saving", "Strategy", "Rating"})
	for r, s := range in.Suggestions {
		writeRow(f, SheetCombinations, r+2, []string{
			s.Label,
			strings.Join(s.Coupons, ", "),
			s.Saving,
			s.Strategy,
			report.Stars(s.Rank),
		})
	}
	_ = f.SetColWidth(SheetCombinations, "A", "B", 30)
	_ = f.SetColWidth(SheetCombinations, "C", "D", 40)

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	log.WithFields(logrus.Fields{
		"today":        len(in.Buckets.Today),
		"future":       len(in.Buckets.Future),
		"expired":      len(in.Buckets.Expired),
		"combinations": len(in.Suggestions),
	}).Debug("export.xlsx.ok")
	return buf.Bytes(), nil
}

// WriteFile builds the workbook and saves it to path.
func WriteFile(path string, in report.Input, log logrus.FieldLogger) error {
	b, err := Workbook(in, log)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []string) {
	for col, v := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}
