package scheduling

import (
	"testing"
	"time"
)

func TestCanonicalTime(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"7:00 AM", "07:00"},
		{"8:30 AM", "08:30"},
		{"1:15 PM", "13:15"},
		{"12:00 PM", "12:00"}, // noon stays 12
		{"12:00 AM", "00:00"}, // midnight
		{"12:30 AM", "00:30"},
		{"7 PM", "19:00"}, // bare hour with meridiem
		{"11 AM", "11:00"},
		{"07:00", "07:00"}, // already canonical
		{"13:45", "13:45"},
		{"700", "07:00"}, // digit-only fallback
		{"1330", "13:30"},
		{"7", "07:00"},
		{"  9:05 pm ", "21:05"},
		{"", "00:00"},          // empty degrades
		{"garbage", "00:00"},   // unparseable degrades
		{"25:00", "00:00"},     // out of range degrades
		{"7:99", "00:00"},      // bad minutes degrades
		{"12345", "00:00"},     // too many digits
	}
	for _, tc := range cases {
		if got := CanonicalTime(tc.input); got != tc.want {
			t.Errorf("CanonicalTime(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestMinutesOfDay(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"00:00", 0},
		{"07:00", 420},
		{"13:30", 810},
		{"23:59", 1439},
		{"bogus", 0},
	}
	for _, tc := range cases {
		if got := MinutesOfDay(tc.input); got != tc.want {
			t.Errorf("MinutesOfDay(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestParseWeekdays(t *testing.T) {
	cases := []struct {
		input string
		want  []time.Weekday
	}{
		{"MW", []time.Weekday{time.Monday, time.Wednesday}},
		{"TTh", []time.Weekday{time.Tuesday, time.Thursday}},
		{"MWF", []time.Weekday{time.Monday, time.Wednesday, time.Friday}},
		{"Th", []time.Weekday{time.Thursday}},
		{"Su", []time.Weekday{time.Sunday}},
		{"S", []time.Weekday{time.Saturday}},
		{"ThF", []time.Weekday{time.Thursday, time.Friday}},
		{"M-W", []time.Weekday{time.Monday, time.Wednesday}}, // unknown runes skipped
		{"", nil},
	}
	for _, tc := range cases {
		got := ParseWeekdays(tc.input)
		if len(got) != len(tc.want) {
			t.Errorf("ParseWeekdays(%q) = %v, want %v", tc.input, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("ParseWeekdays(%q)[%d] = %v, want %v", tc.input, i, got[i], tc.want[i])
			}
		}
	}
}

func TestParseScheduleString(t *testing.T) {
	// Scenario from the class-schedule upload format.
	days, start, end := ParseScheduleString("MW 7:00-8:30 AM")
	if len(days) != 2 || days[0] != time.Monday || days[1] != time.Wednesday {
		t.Fatalf("days = %v, want [Monday Wednesday]", days)
	}
	if start != "07:00" {
		t.Errorf("start = %q, want 07:00", start)
	}
	if end != "08:30" {
		t.Errorf("end = %q, want 08:30", end)
	}
}

func TestParseScheduleString_MixedMeridiem(t *testing.T) {
	days, start, end := ParseScheduleString("TTh 11:00 AM-1:00 PM")
	if len(days) != 2 || days[0] != time.Tuesday || days[1] != time.Thursday {
		t.Fatalf("days = %v, want [Tuesday Thursday]", days)
	}
	if start != "11:00" || end != "13:00" {
		t.Errorf("range = %q-%q, want 11:00-13:00", start, end)
	}
}

func TestParseScheduleString_EndMeridiemAppliesToStart(t *testing.T) {
	_, start, end := ParseScheduleString("F 5:30-7:00 PM")
	if start != "17:30" || end != "19:00" {
		t.Errorf("range = %q-%q, want 17:30-19:00", start, end)
	}
}

func TestResolveWeekday(t *testing.T) {
	day, err := ResolveWeekday("Monday")
	if err != nil || day != time.Monday {
		t.Errorf("ResolveWeekday(Monday) = %v, %v", day, err)
	}
	day, err = ResolveWeekday("  thursday ")
	if err != nil || day != time.Thursday {
		t.Errorf("ResolveWeekday(thursday) = %v, %v", day, err)
	}
	if _, err := ResolveWeekday("Mondy"); err == nil {
		t.Error("expected error for typo'd weekday")
	}
	if _, err := ResolveWeekday(""); err == nil {
		t.Error("expected error for empty weekday")
	}
}
