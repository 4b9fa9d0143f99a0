// Package calendar renders scheduled courses as an iCalendar document,
// one weekly-recurring event per course with a parseable meeting spec.
package calendar

import (
	"crypto/sha1"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/afriesen/classdir/internal/course"
	"github.com/afriesen/classdir/internal/meeting"
)

// dayCodes maps weekdays to RFC 5545 BYDAY codes.
var dayCodes = map[time.Weekday]string{
	time.Sunday:    "SU",
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
}

// Generate serializes the catalog's scheduled courses as a VCALENDAR.
// Courses without a recognizable meeting spec are skipped; a catalog with
// none of them still yields a valid, empty calendar.
func Generate(cat *course.Catalog, now time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//classdir//classdir//EN")

	for _, c := range cat.Courses {
		if c.Error != "" {
			continue
		}
		spec, ok := meetingSpec(c)
		if !ok {
			continue
		}
		m, err := meeting.Parse(spec)
		if err != nil {
			continue
		}
		start := m.Next(now)
		if start.IsZero() {
			continue
		}

		ev := cal.AddEvent(fmt.Sprintf("%x@classdir", sha1.Sum([]byte(c.URL))))
		ev.SetDtStampTime(now)
		ev.SetStartAt(start)
		ev.SetEndAt(start.Add(m.Duration()))
		ev.SetSummary(summary(c))
		ev.SetURL(c.URL)
		if room, ok := c.Field("Location"); ok && room != "" {
			ev.SetLocation(room)
		}
		ev.AddRrule("FREQ=WEEKLY;BYDAY=" + byday(m.Days))
	}

	return cal.Serialize()
}

// meetingSpec pulls a combined "TR 10:10-11:25" style spec out of the
// course's rows, joining separate Day and Time fields when the page used
// the wider header-table layout.
func meetingSpec(c *course.Course) (string, bool) {
	for _, name := range []string{"Times", "Time"} {
		if v, ok := c.Field(name); ok && v != "" {
			// Header tables record Day and Time separately.
			if day, hasDay := c.Field("Day"); hasDay && day != "" {
				return day + " " + v, true
			}
			return v, true
		}
	}
	return "", false
}

func summary(c *course.Course) string {
	if c.Title != "" {
		return c.Title
	}
	if call, ok := c.Field("Call Number"); ok && call != "" {
		return "Course " + call
	}
	return c.URL
}

func byday(days []time.Weekday) string {
	out := ""
	for i, d := range days {
		if i > 0 {
			out += ","
		}
		out += dayCodes[d]
	}
	return out
}
