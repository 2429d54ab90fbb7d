package booking

import (
	"fmt"
	"time"
)

// BuildSlots derives the bookable slot labels for one calendar day.
//
// Candidates are every whole hour in [StartHour, EndHour). When day is
// the current calendar day in its own location, hours at or before now's
// hour are dropped, so same-day booking only offers hours that have not
// started yet. Hours occupied by the given booking times are removed.
// Labels come back as zero-padded "HH:00" strings, ascending.
func BuildSlots(oh OpeningHours, day time.Time, now time.Time, booked []time.Time) []string {
	loc := day.Location()
	now = now.In(loc)

	bookedHours := make(map[int]struct{}, len(booked))
	for _, t := range booked {
		bookedHours[t.In(loc).Hour()] = struct{}{}
	}

	sameDay := SameCalendarDay(day, now)

	slots := make([]string, 0, oh.EndHour-oh.StartHour)
	for h := oh.StartHour; h < oh.EndHour; h++ {
		if sameDay && h <= now.Hour() {
			continue
		}
		if _, taken := bookedHours[h]; taken {
			continue
		}
		slots = append(slots, fmt.Sprintf("%02d:00", h))
	}

	return slots
}

// DayWindow returns the half-open interval [midnight, next midnight)
// covering day in its own location.
func DayWindow(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}

// SlotAligned reports whether t sits exactly on an hour boundary.
func SlotAligned(t time.Time) bool {
	return t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

func SameCalendarDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
