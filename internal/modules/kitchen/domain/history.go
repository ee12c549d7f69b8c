package domain

// DayStat aggregates the focus segments completed on one calendar day.
type DayStat struct {
	Date         Date
	FocusMinutes int
	Sessions     int
}

// FillDays returns one entry per day from first to last inclusive, taking
// values from stats and zero elsewhere.
func FillDays(first, last Date, stats []DayStat) []DayStat {
	byDay := make(map[Date]DayStat, len(stats))
	for _, s := range stats {
		byDay[s.Date] = s
	}
	var out []DayStat
	for d := first; !last.Before(d); d = d.AddDays(1) {
		s, ok := byDay[d]
		if !ok {
			s = DayStat{Date: d}
		}
		out = append(out, s)
	}
	return out
}
