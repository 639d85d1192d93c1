package stats

import (
	"github.com/username/holiday-stats/internal/holidayapi"
	"github.com/username/holiday-stats/pkg/dateutil"
	"go.uber.org/zap"
)

// Report holds descriptive statistics of one country's holidays.
// Built once by Aggregate and never mutated afterwards.
type Report struct {
	Country string
	Total   int
	Public  int
	Weekday int
	Weekend int
	Prime   int

	PublicHolidays  []holidayapi.Holiday
	WeekdayHolidays []holidayapi.Holiday
	WeekendHolidays []holidayapi.Holiday
	PrimeHolidays   []holidayapi.Holiday
}

// NonPublic returns the number of holidays not flagged public
func (r Report) NonPublic() int {
	return r.Total - r.Public
}

// Aggregator builds reports, logging dates that cannot be reduced for the prime count
type Aggregator struct {
	logger *zap.Logger
}

// NewAggregator creates a new Aggregator
func NewAggregator(logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{logger: logger}
}

// Aggregate classifies holidays in a single pass.
// Every holiday lands in exactly one of weekday/weekend; public and prime are independent filters.
func (a *Aggregator) Aggregate(holidays []holidayapi.Holiday, country string) Report {
	report := Report{
		Country: country,
		Total:   len(holidays),
	}

	for _, h := range holidays {
		if h.Public {
			report.PublicHolidays = append(report.PublicHolidays, h)
		}

		a.checkWeekday(h, country)
		if h.IsWeekend() {
			report.WeekendHolidays = append(report.WeekendHolidays, h)
		} else {
			report.WeekdayHolidays = append(report.WeekdayHolidays, h)
		}

		value, err := PrimeDateValue(h.Date)
		if err != nil {
			a.logger.Debug("Skipping holiday in prime count",
				zap.String("country", country),
				zap.String("holiday", h.Name),
				zap.Error(err))
			continue
		}
		if IsPrime(value) {
			report.PrimeHolidays = append(report.PrimeHolidays, h)
		}
	}

	report.Public = len(report.PublicHolidays)
	report.Weekday = len(report.WeekdayHolidays)
	report.Weekend = len(report.WeekendHolidays)
	report.Prime = len(report.PrimeHolidays)

	return report
}

// checkWeekday logs holidays whose API weekday code contradicts the calendar date.
// The API code still decides the classification.
func (a *Aggregator) checkWeekday(h holidayapi.Holiday, country string) {
	if !h.Weekday.Date.Numeric.Valid() {
		return
	}
	date, err := h.ParsedDate()
	if err != nil {
		return
	}
	if dateutil.IsWeekend(date) != h.IsWeekend() {
		a.logger.Debug("Weekday code disagrees with date",
			zap.String("country", country),
			zap.String("holiday", h.Name),
			zap.String("date", h.Date),
			zap.Int("numeric", int(h.Weekday.Date.Numeric)))
	}
}

// Aggregate is a convenience wrapper without logging
func Aggregate(holidays []holidayapi.Holiday, country string) Report {
	return NewAggregator(nil).Aggregate(holidays, country)
}
