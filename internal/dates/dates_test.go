package dates

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayStripsTimeAndZone(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	in := time.Date(2024, time.January, 28, 23, 45, 12, 0, loc)

	got := Day(in)
	want := date(2024, time.January, 28)
	if !got.Equal(want) {
		t.Fatalf("Day() = %v, want %v", got, want)
	}
}

func TestFixedOffsetsPreserveWeekday(t *testing.T) {
	// Walk across several months so month and year boundaries are covered.
	start := date(2023, time.November, 1)
	for i := 0; i < 120; i++ {
		d := start.AddDate(0, 0, i)

		week := OneWeekAgo(d)
		if week.Weekday() != d.Weekday() {
			t.Errorf("OneWeekAgo(%v) weekday = %v, want %v", d, week.Weekday(), d.Weekday())
		}
		if days := int(d.Sub(week).Hours() / 24); days != 7 {
			t.Errorf("OneWeekAgo(%v) is %d days back, want 7", d, days)
		}

		two := TwoWeeksAgo(d)
		if two.Weekday() != d.Weekday() {
			t.Errorf("TwoWeeksAgo(%v) weekday = %v, want %v", d, two.Weekday(), d.Weekday())
		}
		if days := int(d.Sub(two).Hours() / 24); days != 14 {
			t.Errorf("TwoWeeksAgo(%v) is %d days back, want 14", d, days)
		}
	}
}

func TestOneMonthAgo(t *testing.T) {
	tests := []struct {
		name string
		day  time.Time
		want time.Time
	}{
		{
			// Naive month-back is Thursday 2023-12-28; stepping backward to
			// the nearest Sunday lands on the 24th.
			name: "backward weekday adjustment",
			day:  date(2024, time.January, 28),
			want: date(2023, time.December, 24),
		},
		{
			// March 31st clamps to February 29th (leap year), a Thursday,
			// then steps back to Sunday the 25th.
			name: "end of month clamp",
			day:  date(2024, time.March, 31),
			want: date(2024, time.February, 25),
		},
		{
			// May 31st clamps to April 30th, a Tuesday, then back to Friday.
			name: "31st onto 30-day month",
			day:  date(2024, time.May, 31),
			want: date(2024, time.April, 26),
		},
		{
			name: "january wraps into previous year",
			day:  date(2024, time.January, 7),
			want: date(2023, time.December, 3),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OneMonthAgo(tt.day)
			if !got.Equal(tt.want) {
				t.Fatalf("OneMonthAgo(%v) = %v, want %v",
					tt.day.Format("2006-01-02"), got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}

func TestOneMonthAgoProperties(t *testing.T) {
	start := date(2023, time.June, 1)
	for i := 0; i < 400; i++ {
		d := start.AddDate(0, 0, i)
		got := OneMonthAgo(d)

		if got.Weekday() != d.Weekday() {
			t.Errorf("OneMonthAgo(%v) weekday = %v, want %v", d, got.Weekday(), d.Weekday())
		}
		if !got.Before(d) {
			t.Errorf("OneMonthAgo(%v) = %v, not strictly earlier", d, got)
		}

		naive := monthBack(d)
		back := int(naive.Sub(got).Hours() / 24)
		if back < 0 || back > 6 {
			t.Errorf("OneMonthAgo(%v) is %d days before the naive date %v, want 0..6", d, back, naive)
		}
	}
}

func TestRandomSameWeekday(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	today := date(2024, time.January, 28) // Sunday

	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		got, err := RandomSameWeekday(today, rng)
		if err != nil {
			t.Fatalf("RandomSameWeekday: %v", err)
		}
		if got.Weekday() != today.Weekday() {
			t.Fatalf("weekday = %v, want %v", got.Weekday(), today.Weekday())
		}
		if got.Before(CampaignAnnouncement) || got.After(today) {
			t.Fatalf("date %v outside [%v, %v]", got, CampaignAnnouncement, today)
		}
		seen[got.Format("2006-01-02")] = struct{}{}
	}
	if len(seen) < 2 {
		t.Errorf("expected several distinct dates over 200 draws, got %d", len(seen))
	}
}

func TestRandomSameWeekdayAtLowerBound(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	got, err := RandomSameWeekday(CampaignAnnouncement, rng)
	if err != nil {
		t.Fatalf("RandomSameWeekday: %v", err)
	}
	if !got.Equal(CampaignAnnouncement) {
		t.Fatalf("got %v, want the lower bound itself", got)
	}
}

func TestRandomSameWeekdayBeforeLowerBound(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := RandomSameWeekday(date(2016, time.January, 1), rng)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
}

func TestResolve(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	today := date(2024, time.January, 28)

	got, err := Resolve("today", today, rng)
	if err != nil {
		t.Fatalf("Resolve(today): %v", err)
	}
	if !got.Equal(today) {
		t.Errorf("Resolve(today) = %v, want %v", got, today)
	}

	got, err = Resolve("one_week", today, rng)
	if err != nil {
		t.Fatalf("Resolve(one_week): %v", err)
	}
	if want := date(2024, time.January, 21); !got.Equal(want) {
		t.Errorf("Resolve(one_week) = %v, want %v", got, want)
	}

	if _, err := Resolve("next_year", today, rng); err == nil {
		t.Error("expected error for unknown option")
	}
}
