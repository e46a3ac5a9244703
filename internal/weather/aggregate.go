package weather

// WeekSummary condenses a PastWeek result into a few headline numbers.
type WeekSummary struct {
	City      string   `json:"city"`
	Days      int      `json:"days"`
	Missing   int      `json:"missing"`
	AvgTempC  float64  `json:"avgTempC"`
	MaxTempC  float64  `json:"maxTempC"`
	MinTempC  float64  `json:"minTempC"`
	Condition Category `json:"condition"`
}

// SummarizeWeek combines the available days of a week into a WeekSummary.
// Average temperatures are averaged; the condition is selected by majority,
// ties going to the most recent day. Nil entries count as missing.
func SummarizeWeek(city string, week []*HistoricalWeather) WeekSummary {
	summary := WeekSummary{
		City:      city,
		Condition: CategoryUnknown,
	}

	var sumAvg float64
	counts := make(map[Category]int)
	order := make([]Category, 0, len(week))

	for _, h := range week {
		fd, ok := h.Day()
		if !ok {
			summary.Missing++
			continue
		}

		d := fd.Day
		if summary.Days == 0 || d.MaxTempC > summary.MaxTempC {
			summary.MaxTempC = d.MaxTempC
		}
		if summary.Days == 0 || d.MinTempC < summary.MinTempC {
			summary.MinTempC = d.MinTempC
		}
		sumAvg += d.AvgTempC
		summary.Days++

		cat := d.Condition.Category()
		if counts[cat] == 0 {
			order = append(order, cat)
		}
		counts[cat]++
	}

	if summary.Days == 0 {
		return summary
	}

	summary.AvgTempC = sumAvg / float64(summary.Days)

	best := 0
	for _, cat := range order {
		if counts[cat] > best {
			best = counts[cat]
			summary.Condition = cat
		}
	}

	return summary
}
