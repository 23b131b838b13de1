// Package catalog holds the bookable-catalog side of the domain. The
// reservation engine treats it as read-only; slot capacity is mutated only
// through the guarded decrement in the slot repository.
package catalog

import (
	"errors"
	"time"
)

var (
	ErrInvalidWindow    = errors.New("slot start time must be before end time")
	ErrCapacityExceeded = errors.New("spots available cannot exceed total spots")
	ErrNegativeSpots    = errors.New("spots cannot be negative")
)

// Slot is a bookable time window with finite capacity. spotsAvailable is the
// contended resource; 0 <= spotsAvailable <= totalSpots holds at all times.
type Slot struct {
	id             int64
	experienceID   int64
	startTime      time.Time
	endTime        time.Time
	totalSpots     int
	spotsAvailable int
	unitPrice      int64
}

func NewSlot(id, experienceID int64, start, end time.Time, totalSpots, spotsAvailable int, unitPrice int64) (*Slot, error) {
	if !start.Before(end) {
		return nil, ErrInvalidWindow
	}
	if totalSpots < 0 || spotsAvailable < 0 {
		return nil, ErrNegativeSpots
	}
	if spotsAvailable > totalSpots {
		return nil, ErrCapacityExceeded
	}

	return &Slot{
		id:             id,
		experienceID:   experienceID,
		startTime:      start,
		endTime:        end,
		totalSpots:     totalSpots,
		spotsAvailable: spotsAvailable,
		unitPrice:      unitPrice,
	}, nil
}

// CanAccommodate reports whether the slot currently has room for quantity
// spots. Advisory only: the authoritative check is the conditional decrement
// inside the reservation transaction.
func (s *Slot) CanAccommodate(quantity int) bool {
	return quantity >= 1 && s.spotsAvailable >= quantity
}

func (s *Slot) IsSoldOut() bool {
	return s.spotsAvailable == 0
}

func (s *Slot) ID() int64           { return s.id }
func (s *Slot) ExperienceID() int64 { return s.experienceID }
func (s *Slot) StartTime() time.Time { return s.startTime }
func (s *Slot) EndTime() time.Time  { return s.endTime }
func (s *Slot) TotalSpots() int     { return s.totalSpots }
func (s *Slot) SpotsAvailable() int { return s.spotsAvailable }
func (s *Slot) UnitPrice() int64    { return s.unitPrice }
