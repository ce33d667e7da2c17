package clientservice

import "time"

// Client профиль клиента из клиентского сервиса
type Client struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	Birthday *time.Time `json:"birthday,omitempty"`
}

// HasBirthdayWithin проверяет, попадает ли дата в окно вокруг дня рождения клиента.
// Сравнивается только день и месяц; год рождения не важен.
func (c *Client) HasBirthdayWithin(date time.Time, windowDays int) bool {
	if c.Birthday == nil {
		return false
	}

	for offset := -windowDays; offset <= windowDays; offset++ {
		d := date.AddDate(0, 0, offset)
		if d.Month() == c.Birthday.Month() && d.Day() == c.Birthday.Day() {
			return true
		}
	}
	return false
}
