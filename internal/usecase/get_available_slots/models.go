package get_available_slots

import "time"

// Request модель запроса доступных слотов мастера на дату
type Request struct {
	BranchID  int64     // ID филиала
	ServiceID int64     // ID услуги (определяет длительность слота)
	StaffID   int64     // ID мастера
	Date      time.Time // Дата (без времени)
}

// Slot доступный интервал для записи
type Slot struct {
	StartAt time.Time // Начало интервала
	EndAt   time.Time // Конец интервала
}

// Response модель ответа со списком доступных слотов
type Response struct {
	StaffID         int64     // ID мастера
	Date            time.Time // Дата
	DurationMinutes int       // Длительность слота
	Slots           []Slot    // Доступные слоты
}
