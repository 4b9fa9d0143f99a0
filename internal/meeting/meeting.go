// Package meeting parses course meeting specifications such as
// "TR 10:10-11:25" into weekday sets and clock times.
package meeting

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Meeting is one weekly meeting pattern: a set of weekdays plus start and
// end clock times in minutes from midnight.
type Meeting struct {
	Days      []time.Weekday
	StartHour int
	StartMin  int
	EndHour   int
	EndMin    int
}

// dayLetters maps the registrar's compact day codes to weekdays. R is
// Thursday and U is Sunday, following the usual US registrar convention.
var dayLetters = map[rune]time.Weekday{
	'M': time.Monday,
	'T': time.Tuesday,
	'W': time.Wednesday,
	'R': time.Thursday,
	'F': time.Friday,
	'S': time.Saturday,
	'U': time.Sunday,
}

// timePattern matches "10:10-11:25" and variants with am/pm suffixes and
// loose spacing around the dash.
var timePattern = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(am|pm)?\s*-\s*(\d{1,2}):(\d{2})\s*(am|pm)?`)

// ParseDays interprets a compact day code like "MW", "TR" or "MWF".
// Unknown letters fail the whole code rather than guessing.
func ParseDays(s string) ([]time.Weekday, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return nil, fmt.Errorf("empty day code")
	}
	days := make([]time.Weekday, 0, len(s))
	for _, r := range s {
		day, ok := dayLetters[r]
		if !ok {
			return nil, fmt.Errorf("unknown day letter %q in %q", r, s)
		}
		days = append(days, day)
	}
	return days, nil
}

// Parse splits a combined spec like "TR 10:10-11:25" into its day set and
// time range. The day code is everything before the first space; the time
// range may appear anywhere in the rest.
func Parse(s string) (Meeting, error) {
	s = strings.TrimSpace(s)
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return Meeting{}, fmt.Errorf("meeting spec %q has no time part", s)
	}

	days, err := ParseDays(fields[0])
	if err != nil {
		return Meeting{}, fmt.Errorf("parsing %q: %w", s, err)
	}

	m := timePattern.FindStringSubmatch(strings.Join(fields[1:], " "))
	if m == nil {
		return Meeting{}, fmt.Errorf("no time range in %q", s)
	}

	startHour, _ := strconv.Atoi(m[1])
	startMin, _ := strconv.Atoi(m[2])
	endHour, _ := strconv.Atoi(m[4])
	endMin, _ := strconv.Atoi(m[5])

	startHour = toTwentyFour(startHour, m[3])
	endHour = toTwentyFour(endHour, m[6])
	// "10:10-1:25" without meridiems crosses noon; carry the end hour
	// past twelve so the range stays ordered.
	if endHour < startHour || (endHour == startHour && endMin < startMin) {
		if endHour < 12 {
			endHour += 12
		}
	}
	if startHour > 23 || endHour > 23 || startMin > 59 || endMin > 59 {
		return Meeting{}, fmt.Errorf("time range out of bounds in %q", s)
	}

	return Meeting{
		Days:      days,
		StartHour: startHour,
		StartMin:  startMin,
		EndHour:   endHour,
		EndMin:    endMin,
	}, nil
}

// toTwentyFour applies an am/pm suffix to an hour. Without a suffix the
// hour is returned unchanged.
func toTwentyFour(hour int, meridiem string) int {
	switch strings.ToLower(meridiem) {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	return hour
}

// Next returns the first start of the meeting on or after ref, in ref's
// location.
func (m Meeting) Next(ref time.Time) time.Time {
	if len(m.Days) == 0 {
		return time.Time{}
	}
	for offset := 0; offset < 8; offset++ {
		day := ref.AddDate(0, 0, offset)
		if !m.meetsOn(day.Weekday()) {
			continue
		}
		start := time.Date(day.Year(), day.Month(), day.Day(), m.StartHour, m.StartMin, 0, 0, ref.Location())
		if !start.Before(ref) {
			return start
		}
	}
	return time.Time{}
}

// Duration is the length of one session.
func (m Meeting) Duration() time.Duration {
	start := time.Duration(m.StartHour)*time.Hour + time.Duration(m.StartMin)*time.Minute
	end := time.Duration(m.EndHour)*time.Hour + time.Duration(m.EndMin)*time.Minute
	return end - start
}

func (m Meeting) meetsOn(day time.Weekday) bool {
	for _, d := range m.Days {
		if d == day {
			return true
		}
	}
	return false
}
