package get_available_slots

import (
	"testing"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/scheduleservice"
)

func workingDay(start, end time.Time) *scheduleservice.StaffDaySchedule {
	return &scheduleservice.StaffDaySchedule{
		StaffID:   4,
		IsWorking: true,
		StartAt:   start,
		EndAt:     end,
	}
}

func TestGenerateSlots_Grid(t *testing.T) {
	start := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	slots := generateSlots(workingDay(start, end), 60)
	if len(slots) != 3 {
		t.Fatalf("got %d slots, want 3", len(slots))
	}
	for i, slot := range slots {
		wantStart := start.Add(time.Duration(i) * time.Hour)
		if !slot.StartAt.Equal(wantStart) || !slot.EndAt.Equal(wantStart.Add(time.Hour)) {
			t.Errorf("slot %d = [%v, %v), want start %v", i, slot.StartAt, slot.EndAt, wantStart)
		}
	}
}

func TestGenerateSlots_PartialSlotDropped(t *testing.T) {
	// Смена 9:00-10:30, слот по 60 минут: второй слот не помещается
	start := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)

	slots := generateSlots(workingDay(start, end), 60)
	if len(slots) != 1 {
		t.Errorf("got %d slots, want 1", len(slots))
	}
}

func TestGenerateSlots_DayOff(t *testing.T) {
	start := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	schedule := workingDay(start, start.Add(8*time.Hour))
	schedule.IsWorking = false

	if slots := generateSlots(schedule, 30); len(slots) != 0 {
		t.Errorf("got %d slots on a day off, want 0", len(slots))
	}
}

func TestFilterAvailable(t *testing.T) {
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	at := func(hour int) time.Time { return day.Add(time.Duration(hour) * time.Hour) }

	slots := []Slot{
		{StartAt: at(9), EndAt: at(10)},
		{StartAt: at(10), EndAt: at(11)},
		{StartAt: at(11), EndAt: at(12)},
		{StartAt: at(12), EndAt: at(13)},
	}
	bookings := []*domain.Booking{
		{Status: domain.StatusConfirmed, StartAt: at(11), EndAt: at(12)},
		// Отмененное бронирование слот не занимает
		{Status: domain.StatusCancelled, StartAt: at(12), EndAt: at(13)},
	}

	// В 9:30 слот 9:00 уже прошел
	now := day.Add(9*time.Hour + 30*time.Minute)
	available := filterAvailable(slots, bookings, now)

	if len(available) != 2 {
		t.Fatalf("got %d available slots, want 2", len(available))
	}
	if !available[0].StartAt.Equal(at(10)) || !available[1].StartAt.Equal(at(12)) {
		t.Errorf("available = %+v, want slots at 10:00 and 12:00", available)
	}
}

func TestFilterAvailable_TouchingBookingDoesNotBlock(t *testing.T) {
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	at := func(hour int) time.Time { return day.Add(time.Duration(hour) * time.Hour) }

	slots := []Slot{{StartAt: at(10), EndAt: at(11)}}
	bookings := []*domain.Booking{
		{Status: domain.StatusHold, StartAt: at(9), EndAt: at(10)},
		{Status: domain.StatusHold, StartAt: at(11), EndAt: at(12)},
	}

	available := filterAvailable(slots, bookings, day)
	if len(available) != 1 {
		t.Errorf("got %d available slots, want 1: back-to-back bookings must not block", len(available))
	}
}
