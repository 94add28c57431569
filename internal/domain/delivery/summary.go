package delivery

import "time"

// BatchRow is one (group, scanner, count) tuple of a day's submission, shaped
// for redriving the client's edit form.
type BatchRow struct {
	GroupCode      string `json:"group_code"`
	ScannerCode    string `json:"scanner_code"`
	DeliveredCount int    `json:"delivered_count"`
}

// DaySummary is the projection of one driver-day's stored state.
type DaySummary struct {
	Submitted      bool
	DeliveryDate   time.Time
	TotalDelivered int
	GroupCodes     []string
	ScannerCodes   []string
	Batches        []BatchRow
}

// Summarize reshapes a stored delivery into the day summary. A nil delivery
// means nothing was submitted for that date.
//
// Malformed nested rows are tolerated rather than failing the projection:
// groups without a code are skipped wholesale, and scans whose scanner
// relation did not resolve still count toward the total but do not appear in
// the batch rows or scanner list.
func Summarize(d *Delivery, date time.Time) DaySummary {
	if d == nil {
		return DaySummary{Submitted: false, DeliveryDate: date}
	}

	summary := DaySummary{
		Submitted:    true,
		DeliveryDate: date,
		GroupCodes:   []string{},
		ScannerCodes: []string{},
		Batches:      []BatchRow{},
	}

	seenGroups := map[string]bool{}
	seenScanners := map[string]bool{}

	for gi := range d.Groups {
		group := &d.Groups[gi]
		if group.GroupCode == "" {
			continue
		}
		if !seenGroups[group.GroupCode] {
			seenGroups[group.GroupCode] = true
			summary.GroupCodes = append(summary.GroupCodes, group.GroupCode)
		}

		for si := range group.Scans {
			scan := &group.Scans[si]
			summary.TotalDelivered += scan.DeliveredCount

			if scan.Scanner == nil || scan.Scanner.Code == "" {
				continue
			}
			code := scan.Scanner.Code
			if !seenScanners[code] {
				seenScanners[code] = true
				summary.ScannerCodes = append(summary.ScannerCodes, code)
			}
			summary.Batches = append(summary.Batches, BatchRow{
				GroupCode:      group.GroupCode,
				ScannerCode:    code,
				DeliveredCount: scan.DeliveredCount,
			})
		}
	}

	return summary
}
