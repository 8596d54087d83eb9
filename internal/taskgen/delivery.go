package taskgen

import "time"

// DeliveryDateFrom adds n business days to start, skipping weekends. The
// result is never a Saturday or Sunday.
func DeliveryDateFrom(start time.Time, days int) time.Time {
	if days < 0 {
		days = 0
	}
	d := start
	for i := 0; i < days; i++ {
		d = d.AddDate(0, 0, 1)
		for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			d = d.AddDate(0, 0, 1)
		}
	}
	// A zero-day delivery quoted on a weekend still lands on a weekday.
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// DeliveryDateString formats the delivery date n business days from now,
// for display next to a proposal.
func DeliveryDateString(days int) string {
	return DeliveryDateFrom(time.Now(), days).Format("Monday, January 2")
}
