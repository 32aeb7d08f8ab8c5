package domain

import (
	"fmt"
	"strings"
	"time"
)

// Domain contains core models shared across the service.

// Article is a single news article as returned by the search backend.
// Instances are immutable once fetched; they live only for the current
// request or cache entry.
type Article struct {
	Headline  string
	Body      string
	URL       string
	Published time.Time
}

// Option selects which historical day coverage is fetched for. Every option
// except today resolves to an earlier date sharing today's weekday.
type Option string

const (
	OptionToday    Option = "today"
	OptionOneWeek  Option = "one_week"
	OptionTwoWeeks Option = "two_weeks"
	OptionOneMonth Option = "one_month"
	OptionRandom   Option = "random"
)

// ParseOption validates a raw option value from the outside world.
func ParseOption(raw string) (Option, error) {
	opt := Option(strings.ToLower(strings.TrimSpace(raw)))
	switch opt {
	case OptionToday, OptionOneWeek, OptionTwoWeeks, OptionOneMonth, OptionRandom:
		return opt, nil
	}
	return "", fmt.Errorf("invalid option %q, must be one of: today, one_week, two_weeks, one_month, random", raw)
}

// Cacheable reports whether results for the option may enter the daily
// cache. Random picks a fresh date on every request and is never cached.
func (o Option) Cacheable() bool {
	return o != OptionRandom
}

// Result is the outcome of a lookup for one target date. A nil Article with
// a message denotes a quiet day: the date had no qualifying coverage. For a
// selected article, Body holds the truncated excerpt rather than the full
// text.
type Result struct {
	TargetDate time.Time
	Article    *Article
	Message    string
}

// Quiet reports whether the result is a quiet day.
func (r Result) Quiet() bool {
	return r.Article == nil
}
