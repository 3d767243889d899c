package get_available_slots

import (
	"github.com/quickcourt/QC-BookingService/internal/domain"
	"github.com/quickcourt/QC-BookingService/pkg/types"
)

// buildSlotGrid строит часовую сетку слотов в пределах рабочего времени корта
// Последний слот заканчивается не позже времени закрытия: неполный хвост
// рабочего дня (например, 22:30-23:00 при часовом шаге) в сетку не попадает
func buildSlotGrid(open, close types.TimeString) []Slot {
	var grid []Slot

	cursor := open
	for cursor.IsBefore(close) {
		next, err := cursor.AddMinutes(domain.SlotStepMinutes)
		if err != nil {
			break
		}
		if close.IsBefore(next) {
			break
		}
		grid = append(grid, Slot{StartTime: cursor, EndTime: next})
		cursor = next
	}

	return grid
}

// filterFree возвращает слоты сетки, не пересекающиеся ни с одной блокирующей бронью
// Семантика пересечения полуоткрытая: бронь до 11:00 не занимает слот 11:00-12:00
func filterFree(grid []Slot, reservations []*domain.Reservation) []Slot {
	free := make([]Slot, 0, len(grid))

	for _, slot := range grid {
		occupied := false
		for _, res := range reservations {
			if !res.IsBlocking() {
				continue
			}
			if res.Overlaps(slot.StartTime, slot.EndTime) {
				occupied = true
				break
			}
		}
		if !occupied {
			free = append(free, slot)
		}
	}

	return free
}
