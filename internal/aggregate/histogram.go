package aggregate

import (
	"fmt"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/w3c-ie-stats/internal/domain"
)

// Month is a calendar month in UTC.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the UTC month containing t.
func MonthOf(t time.Time) Month {
	t = t.UTC()
	return Month{Year: t.Year(), Month: t.Month()}
}

// Key returns the YYYY-MM bucket key.
func (m Month) Key() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Next returns the following month.
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

func (m Month) after(o Month) bool {
	return m.Year > o.Year || (m.Year == o.Year && m.Month > o.Month)
}

// MonthRange lists every month from the month of from to the month of to,
// both included. It is empty when from is after to.
func MonthRange(from, to time.Time) []Month {
	start, end := MonthOf(from), MonthOf(to)
	var months []Month
	for m := start; !m.after(end); m = m.Next() {
		months = append(months, m)
	}
	return months
}

// Histogram counts events per month over months. Months without events get a
// zero bucket; events outside the range are ignored. Scale is relative to the
// busiest month in range.
func Histogram(months []Month, lists ...[]domain.ActivityEvent) []domain.MonthBucket {
	counts := make(map[Month]int)
	for _, list := range lists {
		for _, ev := range list {
			counts[MonthOf(ev.CreatedAt)]++
		}
	}

	buckets := make([]domain.MonthBucket, len(months))
	values := make(stats.Float64Data, len(months))
	for i, m := range months {
		buckets[i] = domain.MonthBucket{Month: m.Key(), Count: counts[m]}
		values[i] = float64(counts[m])
	}
	peak, err := stats.Max(values)
	if err != nil || peak == 0 {
		return buckets
	}
	for i := range buckets {
		buckets[i].Scale = float64(buckets[i].Count) / peak
	}
	return buckets
}
