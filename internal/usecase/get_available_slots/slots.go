package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/scheduleservice"
)

// generateSlots строит сетку слотов по рабочему расписанию мастера
// с шагом в длительность услуги
func generateSlots(schedule *scheduleservice.StaffDaySchedule, durationMinutes int) []Slot {
	if !schedule.IsWorking {
		return nil
	}

	duration := time.Duration(durationMinutes) * time.Minute
	slots := make([]Slot, 0)

	for start := schedule.StartAt; !start.Add(duration).After(schedule.EndAt); start = start.Add(duration) {
		slots = append(slots, Slot{
			StartAt: start,
			EndAt:   start.Add(duration),
		})
	}

	return slots
}

// filterAvailable убирает слоты, уже прошедшие или пересекающиеся
// с активными бронированиями мастера
func filterAvailable(slots []Slot, bookings []*domain.Booking, now time.Time) []Slot {
	available := make([]Slot, 0, len(slots))

	for _, slot := range slots {
		if slot.StartAt.Before(now) {
			continue
		}
		if isOccupied(slot, bookings) {
			continue
		}
		available = append(available, slot)
	}

	return available
}

// isOccupied проверяет пересечение слота с активными бронированиями
func isOccupied(slot Slot, bookings []*domain.Booking) bool {
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		if booking.Overlaps(slot.StartAt, slot.EndAt) {
			return true
		}
	}
	return false
}
