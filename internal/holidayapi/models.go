package holidayapi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/username/holiday-stats/pkg/dateutil"
)

// Response represents the holidays endpoint response body
type Response struct {
	Holidays []Holiday `json:"holidays"`
	Requests Requests  `json:"requests"`
	Status   int       `json:"status"`
	Warning  string    `json:"warning,omitempty"`
	Error    string    `json:"error,omitempty"` // Only set on failed requests
}

// Requests holds API quota metadata
type Requests struct {
	Available int    `json:"available"`
	Resets    string `json:"resets"`
	Used      int    `json:"used"`
}

// Holiday represents a single holiday record
type Holiday struct {
	Country  string    `json:"country"`
	Date     string    `json:"date"` // YYYY-MM-DD
	Name     string    `json:"name"`
	Observed string    `json:"observed"` // YYYY-MM-DD
	Public   bool      `json:"public"`
	UUID     uuid.UUID `json:"uuid"`
	Weekday  Weekdays  `json:"weekday"`
}

// Weekdays holds weekday info for the nominal and the observed date
type Weekdays struct {
	Date     WeekdayInfo `json:"date"`
	Observed WeekdayInfo `json:"observed"`
}

// WeekdayInfo is the API's description of a day of week
type WeekdayInfo struct {
	Name    string  `json:"name"`
	Numeric Numeric `json:"numeric"`
}

// Numeric is a day-of-week code in the API's 1-7 scheme (Monday=1, Sunday=7).
// The API encodes it as a string ("6"), older payloads use a plain number.
type Numeric int

// UnmarshalJSON implements json.Unmarshaler for Numeric
func (n *Numeric) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = 0
		return nil
	}

	// Try as string first
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("Numeric: cannot parse %q: %w", s, err)
		}
		*n = Numeric(v)
		return nil
	}

	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("Numeric: cannot unmarshal %s", string(b))
	}
	*n = Numeric(v)
	return nil
}

// MarshalJSON keeps the API's string encoding
func (n Numeric) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.Itoa(int(n)))
}

// Valid reports whether n is inside the 1-7 range
func (n Numeric) Valid() bool {
	return n >= 1 && n <= 7
}

// IsWeekend reports whether the code denotes Saturday (6) or Sunday (7)
func (n Numeric) IsWeekend() bool {
	return n == 6 || n == 7
}

// DayNumeric returns the nominal date's weekday code.
// When the API omitted it, the code is derived from the date itself.
func (h Holiday) DayNumeric() Numeric {
	if h.Weekday.Date.Numeric.Valid() {
		return h.Weekday.Date.Numeric
	}

	date, err := dateutil.ParseDate(h.Date)
	if err != nil {
		return 0
	}
	return Numeric(dateutil.ISOWeekday(date))
}

// IsWeekend reports whether the holiday's nominal date falls on a weekend
func (h Holiday) IsWeekend() bool {
	return h.DayNumeric().IsWeekend()
}

// ParsedDate returns the nominal date as time.Time
func (h Holiday) ParsedDate() (time.Time, error) {
	return dateutil.ParseDate(h.Date)
}
