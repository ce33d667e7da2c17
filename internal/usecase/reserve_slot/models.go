package reserve_slot

import "time"

// Request модель запроса на резервирование слота
type Request struct {
	BusinessID      int64     // ID бизнеса (тенанта)
	BranchID        int64     // ID филиала
	ServiceID       int64     // ID услуги
	StaffID         int64     // ID мастера
	ClientID        int64     // ID клиента
	StartAt         time.Time // Начало интервала
	DurationMinutes int       // Длительность в минутах
}

// Response модель ответа с созданным удержанием слота
type Response struct {
	ID         int64     // ID созданного бронирования
	BusinessID int64     // ID бизнеса
	BranchID   int64     // ID филиала
	ServiceID  int64     // ID услуги
	StaffID    int64     // ID мастера
	ClientID   int64     // ID клиента
	StartAt    time.Time // Начало интервала
	EndAt      time.Time // Конец интервала
	Status     string    // Статус бронирования (hold)
	ExpiresAt  time.Time // Время истечения удержания

	// Денормализованные данные услуги
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги

	CreatedAt time.Time // Время создания
}
