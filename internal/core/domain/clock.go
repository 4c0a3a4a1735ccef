package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ClockTime is a time of day expressed in minutes since midnight.
// 24:00 is allowed so a window can close at the end of the day.
type ClockTime int

const endOfDay ClockTime = 24 * 60

func NewClockTime(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

// ParseClockTime accepts "HH:MM" and "HH:MM:SS". Seconds must be zero.
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || len(p) != 2 || p[0] < '0' || p[0] > '9' {
			return 0, fmt.Errorf("invalid time of day %q", s)
		}
		nums[i] = n
	}
	if nums[1] > 59 || (len(nums) == 3 && nums[2] != 0) {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	c := NewClockTime(nums[0], nums[1])
	if c > endOfDay {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return c, nil
}

func (c ClockTime) Hour() int   { return int(c) / 60 }
func (c ClockTime) Minute() int { return int(c) % 60 }

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// On anchors the time of day to a calendar date in loc.
func (c ClockTime) On(date time.Time, loc *time.Location) time.Time {
	y, mo, d := date.Date()
	return time.Date(y, mo, d, c.Hour(), c.Minute(), 0, 0, loc)
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
}
