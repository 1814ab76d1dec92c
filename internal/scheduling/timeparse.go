package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// FallbackTime is what unparseable time input degrades to. Class schedules
// originate from free-text uploads, so the parser is deliberately lenient:
// it warns instead of failing. See CanonicalTime.
const FallbackTime = "00:00"

// CanonicalTime converts a free-form time-of-day string into zero-padded
// 24-hour "HH:MM". Accepted inputs: "7:00 AM", "7 PM", "07:00", "700",
// "1330". Anything else degrades to FallbackTime with a warning log, since
// a hard failure would reject whole schedule uploads over one bad cell.
func CanonicalTime(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return FallbackTime
	}

	meridiem := ""
	for _, suffix := range []string{"AM", "A.M.", "PM", "P.M."} {
		if strings.HasSuffix(s, suffix) {
			meridiem = string(suffix[0]) + "M"
			s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
			break
		}
	}

	hour, minute, err := splitClock(s)
	if err != nil {
		log.Warn().Str("input", raw).Msg("Unparseable time string, falling back to 00:00")
		return FallbackTime
	}

	hour = applyMeridiem(hour, meridiem)
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		log.Warn().Str("input", raw).Msg("Out-of-range time string, falling back to 00:00")
		return FallbackTime
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// splitClock breaks "7:30", "7" or digit-only forms ("730", "0730") into
// hour and minute components, before any meridiem adjustment.
func splitClock(s string) (int, int, error) {
	if s == "" {
		return 0, 0, fmt.Errorf("empty time")
	}
	if colon := strings.Index(s, ":"); colon >= 0 {
		hour, err := strconv.Atoi(strings.TrimSpace(s[:colon]))
		if err != nil {
			return 0, 0, err
		}
		minute, err := strconv.Atoi(strings.TrimSpace(s[colon+1:]))
		if err != nil {
			return 0, 0, err
		}
		return hour, minute, nil
	}

	digits := strings.TrimSpace(s)
	if _, err := strconv.Atoi(digits); err != nil {
		return 0, 0, err
	}
	switch {
	case len(digits) <= 2: // bare hour, e.g. "7" or "11"
		hour, _ := strconv.Atoi(digits)
		return hour, 0, nil
	case len(digits) <= 4: // "700" -> 7:00, "1330" -> 13:30
		minute, _ := strconv.Atoi(digits[len(digits)-2:])
		hour, _ := strconv.Atoi(digits[:len(digits)-2])
		return hour, minute, nil
	default:
		return 0, 0, fmt.Errorf("too many digits: %s", digits)
	}
}

// applyMeridiem converts a 12-hour clock hour to 24-hour:
// 12 AM -> 0, 12 PM -> 12, otherwise add 12 for PM.
func applyMeridiem(hour int, meridiem string) int {
	switch meridiem {
	case "AM":
		if hour == 12 {
			return 0
		}
	case "PM":
		if hour != 12 {
			return hour + 12
		}
	}
	return hour
}

// MinutesOfDay converts canonical "HH:MM" to minutes since midnight.
// Input is expected to already be canonical; malformed input counts as 00:00.
func MinutesOfDay(canonical string) int {
	parts := strings.SplitN(canonical, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	hour, errH := strconv.Atoi(parts[0])
	minute, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil {
		return 0
	}
	return hour*60 + minute
}

// weekday abbreviation tokens. Two-character tokens must be tried before
// single characters so "Th" is not read as Tuesday + an unknown rune.
var twoCharDays = map[string]time.Weekday{
	"Th": time.Thursday,
	"Su": time.Sunday,
}

var oneCharDays = map[byte]time.Weekday{
	'M': time.Monday,
	'T': time.Tuesday,
	'W': time.Wednesday,
	'F': time.Friday,
	'S': time.Saturday,
}

// ParseWeekdays decodes a weekday-abbreviation run such as "MW", "TTh" or
// "MWF" into weekdays. The scan is greedy left to right; unrecognized
// characters are skipped.
func ParseWeekdays(token string) []time.Weekday {
	var days []time.Weekday
	for i := 0; i < len(token); {
		if i+1 < len(token) {
			if d, ok := twoCharDays[token[i:i+2]]; ok {
				days = append(days, d)
				i += 2
				continue
			}
		}
		if d, ok := oneCharDays[token[i]]; ok {
			days = append(days, d)
		}
		i++
	}
	return days
}

// ParseScheduleString decodes a free-form class schedule string such as
// "MW 7:00-8:30 AM" or "TTh 11:00 AM-1:00 PM" into its weekdays and
// canonical start/end times. When only the end time carries a meridiem it
// applies to both ends of the range.
func ParseScheduleString(raw string) ([]time.Weekday, string, string) {
	s := strings.TrimSpace(raw)
	dayToken := s
	timePart := ""
	if space := strings.Index(s, " "); space >= 0 {
		dayToken = s[:space]
		timePart = strings.TrimSpace(s[space+1:])
	}

	days := ParseWeekdays(dayToken)

	startRaw, endRaw := timePart, ""
	if dash := strings.Index(timePart, "-"); dash >= 0 {
		startRaw = strings.TrimSpace(timePart[:dash])
		endRaw = strings.TrimSpace(timePart[dash+1:])
	}
	if !hasMeridiem(startRaw) && hasMeridiem(endRaw) {
		if m := meridiemOf(endRaw); m != "" {
			startRaw = startRaw + " " + m
		}
	}

	return days, CanonicalTime(startRaw), CanonicalTime(endRaw)
}

func hasMeridiem(s string) bool {
	return meridiemOf(s) != ""
}

func meridiemOf(s string) string {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for _, suffix := range []string{"AM", "A.M.", "PM", "P.M."} {
		if strings.HasSuffix(upper, suffix) {
			return string(suffix[0]) + "M"
		}
	}
	return ""
}

// ResolveWeekday maps a full weekday name ("Monday") to time.Weekday.
// Duty-hour windows store weekday names; resolving to the closed enum here
// keeps a typo'd weekday from silently producing an empty schedule.
func ResolveWeekday(name string) (time.Weekday, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return time.Sunday, fmt.Errorf("empty weekday name")
	}
	normalized := strings.ToUpper(trimmed[:1]) + strings.ToLower(trimmed[1:])
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == normalized {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday: %q", name)
}
