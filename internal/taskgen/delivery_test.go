package taskgen

import (
	"testing"
	"time"
)

func TestDeliveryFromMonday(t *testing.T) {
	monday := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	if monday.Weekday() != time.Monday {
		t.Fatalf("setup: expected Monday, got %v", monday.Weekday())
	}
	got := DeliveryDateFrom(monday, 3)
	if got.Weekday() != time.Thursday {
		t.Fatalf("Monday + 3 business days should be Thursday, got %v", got.Weekday())
	}
}

func TestDeliverySkipsWeekend(t *testing.T) {
	friday := time.Date(2025, 6, 6, 10, 0, 0, 0, time.UTC)
	got := DeliveryDateFrom(friday, 1)
	if got.Weekday() != time.Monday {
		t.Fatalf("Friday + 1 business day should be Monday, got %v", got.Weekday())
	}
}

func TestDeliveryNeverWeekend(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for day := 0; day < 14; day++ {
		for n := 0; n <= 10; n++ {
			got := DeliveryDateFrom(start.AddDate(0, 0, day), n)
			if wd := got.Weekday(); wd == time.Saturday || wd == time.Sunday {
				t.Fatalf("delivery landed on %v (start+%d, n=%d)", wd, day, n)
			}
		}
	}
}
