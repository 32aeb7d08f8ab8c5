// Package dates maps a requested time-period option onto a concrete target
// date while preserving the weekday of the reference day, so a Sunday is
// always compared against an earlier Sunday.
package dates

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/hindsight-hq/past-news/internal/domain"
)

// CampaignAnnouncement is the lower bound for the random option.
var CampaignAnnouncement = time.Date(2016, time.May, 26, 0, 0, 0, 0, time.UTC)

// ErrInvalidRange is returned by the random option when the reference day
// precedes CampaignAnnouncement, leaving no candidate dates.
var ErrInvalidRange = errors.New("reference day precedes the start of the date range")

// Day truncates t to its calendar date, normalized to midnight UTC. All
// arithmetic in this package is date-only; no time-of-day component enters
// any comparison.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// OneWeekAgo returns the date exactly seven days before day. The weekday is
// preserved by construction.
func OneWeekAgo(day time.Time) time.Time {
	return Day(day).AddDate(0, 0, -7)
}

// TwoWeeksAgo returns the date exactly fourteen days before day.
func TwoWeeksAgo(day time.Time) time.Time {
	return Day(day).AddDate(0, 0, -14)
}

// OneMonthAgo returns a date roughly one calendar month before day that
// falls on day's weekday. The naive month-back date clamps to the shorter
// month's last day when needed, then steps backward (never forward) until
// the weekday matches, so the result is at most six days earlier than the
// naive date and always strictly earlier than day.
func OneMonthAgo(day time.Time) time.Time {
	d := Day(day)
	naive := monthBack(d)
	diff := (int(naive.Weekday()) - int(d.Weekday()) + 7) % 7
	return naive.AddDate(0, 0, -diff)
}

// monthBack subtracts one calendar month with an explicit end-of-month
// clamp. AddDate would normalize March 31st minus a month into early March;
// here it maps to the last day of February.
func monthBack(d time.Time) time.Time {
	year, month := d.Year(), d.Month()
	month--
	if month < time.January {
		month = time.December
		year--
	}

	dom := d.Day()
	if last := lastDayOfMonth(year, month); dom > last {
		dom = last
	}
	return time.Date(year, month, dom, 0, 0, 0, 0, time.UTC)
}

// lastDayOfMonth exploits the day-zero normalization of time.Date: day 0 of
// the following month is the last day of this one.
func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// RandomSameWeekday picks a uniformly random date between
// CampaignAnnouncement and day (both inclusive) that falls on day's weekday.
func RandomSameWeekday(day time.Time, rng *rand.Rand) (time.Time, error) {
	d := Day(day)
	if d.Before(CampaignAnnouncement) {
		return time.Time{}, fmt.Errorf("%w: %s is before %s",
			ErrInvalidRange, d.Format("2006-01-02"), CampaignAnnouncement.Format("2006-01-02"))
	}

	// First date at or after the lower bound sharing d's weekday. Since d
	// itself qualifies, the candidate set is never empty.
	ahead := (int(d.Weekday()) - int(CampaignAnnouncement.Weekday()) + 7) % 7
	first := CampaignAnnouncement.AddDate(0, 0, ahead)

	weeks := int(d.Sub(first).Hours()/24)/7 + 1
	return first.AddDate(0, 0, 7*rng.Intn(weeks)), nil
}

// Resolve maps an option onto its target date. rng is only consulted for
// the random option.
func Resolve(opt domain.Option, today time.Time, rng *rand.Rand) (time.Time, error) {
	switch opt {
	case domain.OptionToday:
		return Day(today), nil
	case domain.OptionOneWeek:
		return OneWeekAgo(today), nil
	case domain.OptionTwoWeeks:
		return TwoWeeksAgo(today), nil
	case domain.OptionOneMonth:
		return OneMonthAgo(today), nil
	case domain.OptionRandom:
		return RandomSameWeekday(today, rng)
	}
	return time.Time{}, fmt.Errorf("unknown option %q", opt)
}
