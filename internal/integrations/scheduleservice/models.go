package scheduleservice

import "time"

// StaffDaySchedule рабочие часы мастера на конкретную дату
type StaffDaySchedule struct {
	StaffID   int64     `json:"staffId"`
	Date      string    `json:"date"` // YYYY-MM-DD
	IsWorking bool      `json:"isWorking"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
}

// Covers проверяет, что интервал [start, end) целиком лежит в рабочих часах
func (s *StaffDaySchedule) Covers(start, end time.Time) bool {
	if !s.IsWorking {
		return false
	}
	return !start.Before(s.StartAt) && !end.After(s.EndAt)
}
