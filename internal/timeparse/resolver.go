// ABOUTME: Resolver turns loose date/time expressions into concrete instants
// ABOUTME: Operates in a fixed reference timezone and never reports failure
package timeparse

import (
	"regexp"
	"strings"
	"time"

	naturaldate "github.com/tj/go-naturaldate"
)

// DefaultDurationMinutes is used when an item carries no usable duration
const DefaultDurationMinutes = 60

// fallbackHour anchors the last-resort start time (today at 09:00)
const fallbackHour = 9

// Resolver parses natural-language date/time expressions against a fixed
// reference timezone, so "tomorrow 3pm" means the same instant no matter
// where the process runs.
type Resolver struct {
	loc *time.Location
	now func() time.Time
}

// NewResolver creates a Resolver for the given reference timezone
func NewResolver(loc *time.Location) *Resolver {
	return &Resolver{
		loc: loc,
		now: time.Now,
	}
}

// Resolve turns a date expression and a time expression into a start/end
// pair. It degrades through fallbacks rather than erroring: a best-effort
// calendar entry beats a dropped message.
func (r *Resolver) Resolve(dateExpr, timeExpr string, durationMinutes int) (start, end time.Time) {
	if durationMinutes <= 0 {
		durationMinutes = DefaultDurationMinutes
	}
	duration := time.Duration(durationMinutes) * time.Minute

	refNow := r.now().In(r.loc)
	normDate := Normalize(dateExpr)
	normTime := Normalize(timeExpr)

	// Combined forward-looking parse: ambiguous expressions resolve to the
	// next future occurrence, never the past
	if parsed, ok := r.parseFuture(normDate+" "+normTime, refNow); ok {
		return parsed, parsed.Add(duration)
	}

	timeOnly, timeOK := r.parseFuture(normTime, refNow)
	dateOnly, dateOK := r.parseFuture(normDate, refNow)

	switch {
	case timeOK && dateOK:
		// Compose date's Y/M/D with time's H/M
		start = time.Date(dateOnly.Year(), dateOnly.Month(), dateOnly.Day(),
			timeOnly.Hour(), timeOnly.Minute(), 0, 0, r.loc)
	case timeOK:
		// Today at the parsed time
		start = time.Date(refNow.Year(), refNow.Month(), refNow.Day(),
			timeOnly.Hour(), timeOnly.Minute(), 0, 0, r.loc)
	default:
		// Last resort: today at 09:00
		start = time.Date(refNow.Year(), refNow.Month(), refNow.Day(),
			fallbackHour, 0, 0, 0, r.loc)
	}

	return start, start.Add(duration)
}

// parseFuture parses an expression relative to ref, preferring future
// occurrences. A result identical to ref means nothing was recognized.
func (r *Resolver) parseFuture(expr string, ref time.Time) (time.Time, bool) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return time.Time{}, false
	}
	parsed, err := naturaldate.Parse(expr, ref, naturaldate.WithDirection(naturaldate.Future))
	if err != nil || parsed.Equal(ref) {
		return time.Time{}, false
	}
	return parsed, true
}

var (
	rePMSuffix    = regexp.MustCompile(`(\d)p\b`)
	reAMSuffix    = regexp.MustCompile(`(\d)a\b`)
	reCompactTime = regexp.MustCompile(`\b(\d{1,2})(\d{2})(am|pm)\b`)
)

// wordSubs expands spelled-out hours and common shorthand; order matters so
// "noon" and "midnight" rewrite before bare number words could interfere.
var wordSubs = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`\bnoon\b`), "12pm"},
	{regexp.MustCompile(`\bmidnight\b`), "12am"},
	{regexp.MustCompile(`\bone\b`), "1"},
	{regexp.MustCompile(`\btwo\b`), "2"},
	{regexp.MustCompile(`\bthree\b`), "3"},
	{regexp.MustCompile(`\bfour\b`), "4"},
	{regexp.MustCompile(`\bfive\b`), "5"},
	{regexp.MustCompile(`\bsix\b`), "6"},
	{regexp.MustCompile(`\bseven\b`), "7"},
	{regexp.MustCompile(`\beight\b`), "8"},
	{regexp.MustCompile(`\bnine\b`), "9"},
	{regexp.MustCompile(`\bten\b`), "10"},
	{regexp.MustCompile(`\beleven\b`), "11"},
	{regexp.MustCompile(`\btwelve\b`), "12"},
	{regexp.MustCompile(`\btom\b`), "tomorrow"},
	{regexp.MustCompile(`\btmw\b`), "tomorrow"},
	{regexp.MustCompile(`\b2nite\b`), "tonight"},
	{regexp.MustCompile(`\btonite\b`), "tonight"},
	{regexp.MustCompile(`\bmon\b`), "monday"},
	{regexp.MustCompile(`\btues?\b`), "tuesday"},
	{regexp.MustCompile(`\bwed\b`), "wednesday"},
	{regexp.MustCompile(`\bthurs?\b`), "thursday"},
	{regexp.MustCompile(`\bfri\b`), "friday"},
	{regexp.MustCompile(`\bsat\b`), "saturday"},
	{regexp.MustCompile(`\bsun\b`), "sunday"},
}

// Normalize rewrites casual date/time shorthand into forms the parser
// understands: "6p" -> "6pm", "630pm" -> "6:30pm", "tom" -> "tomorrow",
// "noon" -> "12pm", day abbreviations to full names.
func Normalize(expr string) string {
	normalized := strings.ToLower(strings.TrimSpace(expr))

	normalized = rePMSuffix.ReplaceAllString(normalized, "${1}pm")
	normalized = reAMSuffix.ReplaceAllString(normalized, "${1}am")
	normalized = reCompactTime.ReplaceAllString(normalized, "$1:$2$3")

	for _, sub := range wordSubs {
		normalized = sub.re.ReplaceAllString(normalized, sub.repl)
	}

	return normalized
}
