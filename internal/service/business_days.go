package service

import "time"

// startOfDay 해당 일자의 00:00 으로 정규화
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// rollToBusinessDay 주말이면 다음 월요일로 이동
func rollToBusinessDay(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday:
		return t.AddDate(0, 0, 2)
	case time.Sunday:
		return t.AddDate(0, 0, 1)
	default:
		return t
	}
}

// AddBusinessDays 기준일에서 영업일 기준 days 일 이후를 계산.
// 기준일이 주말이면 먼저 다음 월요일로 이동한 뒤 계산하며, 결과는 자정으로 정규화한다.
func AddBusinessDays(start time.Time, days int) time.Time {
	t := rollToBusinessDay(startOfDay(start))
	for i := 0; i < days; i++ {
		t = t.AddDate(0, 0, 1)
		for t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
			t = t.AddDate(0, 0, 1)
		}
	}
	return t
}
