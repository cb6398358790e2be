package workinghours

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Minimum preparation buffer before the earliest selectable pickup slot.
const leadTime = 30 * time.Minute

// Interval between consecutive pickup slots.
const slotStep = 10 * time.Minute

// How long before closing a restaurant counts as closing soon.
const closingSoonWindow = time.Hour

var ErrInvalidTimeOfDay = errors.New("invalid time of day")

// TimeOfDay is a wall-clock time without a date or time zone.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay accepts "HH:mm" or "HH:mm:ss"; seconds are ignored.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// on anchors the time of day to the calendar day of ref.
func (t TimeOfDay) on(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), t.Hour, t.Minute, 0, 0, ref.Location())
}

// Schedule is a restaurant's recurring daily availability window.
// ClosesAt numerically at or before OpensAt means the window crosses midnight.
type Schedule struct {
	OpensAt  TimeOfDay
	ClosesAt TimeOfDay
}

// ParseSchedule builds a Schedule from the opens_at/closes_at strings stored
// with a restaurant.
func ParseSchedule(opensAt, closesAt string) (Schedule, error) {
	open, err := ParseTimeOfDay(opensAt)
	if err != nil {
		return Schedule{}, err
	}
	closeAt, err := ParseTimeOfDay(closesAt)
	if err != nil {
		return Schedule{}, err
	}
	return Schedule{OpensAt: open, ClosesAt: closeAt}, nil
}

func (s Schedule) overnight() bool {
	open := s.OpensAt.Hour*60 + s.OpensAt.Minute
	closeAt := s.ClosesAt.Hour*60 + s.ClosesAt.Minute
	return closeAt <= open
}

type OrderingStatus string

const (
	StatusOpen        OrderingStatus = "open"
	StatusClosingSoon OrderingStatus = "closing_soon"
	StatusClosed      OrderingStatus = "closed"
)

// PickupSlot is one candidate pickup time offered to the customer.
type PickupSlot struct {
	Time        string `json:"time"`
	IsAvailable bool   `json:"is_available"`
}

// OrderDecision reports whether a restaurant currently accepts orders.
type OrderDecision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// IsOpen reports whether the restaurant is open at now. The opening instant
// is inclusive, the closing instant exclusive. An overnight window is open
// continuously from OpensAt through ClosesAt the following morning.
func IsOpen(s Schedule, now time.Time) bool {
	openToday := s.OpensAt.on(now)
	closeToday := s.ClosesAt.on(now)

	if s.overnight() {
		return !now.Before(openToday) || now.Before(closeToday)
	}
	return !now.Before(openToday) && now.Before(closeToday)
}

// AvailablePickupSlots generates the pickup times still selectable today,
// every 10 minutes from the effective start up to but excluding closing.
// The effective start is the later of now+30min and today's opening time,
// rounded up to the next 10-minute boundary.
func AvailablePickupSlots(s Schedule, now time.Time) []PickupSlot {
	openToday := s.OpensAt.on(now)
	end := s.ClosesAt.on(now)
	if s.overnight() {
		if now.Before(end) {
			// Morning portion of an overnight window: the open window started
			// yesterday evening and only the tail until this morning's close
			// remains. Tonight's slots are not offered yet.
			openToday = openToday.Add(-24 * time.Hour)
		} else {
			end = end.Add(24 * time.Hour)
		}
	}

	start := now.Add(leadTime)
	if start.Before(openToday) {
		start = openToday
	}
	start = roundUpToSlot(start)

	slots := []PickupSlot{}
	for slot := start; slot.Before(end); slot = slot.Add(slotStep) {
		slots = append(slots, PickupSlot{Time: slot.Format("15:04"), IsAvailable: true})
	}
	return slots
}

// Status classifies the restaurant's current ordering state. Closing soon
// begins exactly 60 minutes before the closing instant.
func Status(s Schedule, now time.Time) OrderingStatus {
	if !IsOpen(s, now) {
		return StatusClosed
	}

	closing := s.ClosesAt.on(now)
	if s.overnight() && !now.Before(closing) {
		// Evening portion of an overnight window: closing happens tomorrow.
		closing = closing.Add(24 * time.Hour)
	}

	if !now.Before(closing.Add(-closingSoonWindow)) {
		return StatusClosingSoon
	}
	return StatusOpen
}

// CanOrder reports whether any pickup slot remains today. An empty slot list
// is a normal state, not an error.
func CanOrder(s Schedule, now time.Time) OrderDecision {
	if len(AvailablePickupSlots(s, now)) == 0 {
		return OrderDecision{
			Allowed: false,
			Reason:  "restaurant is not currently accepting orders, try again during business hours",
		}
	}
	return OrderDecision{Allowed: true}
}

// SlotTimestamp converts a selected slot label back into a full timestamp on
// the calendar day of now. A label that already passed today refers to the
// early morning of the next day (overnight windows).
func SlotTimestamp(label string, now time.Time) (time.Time, error) {
	tod, err := ParseTimeOfDay(label)
	if err != nil {
		return time.Time{}, err
	}
	at := tod.on(now)
	if at.Before(now) {
		at = at.Add(24 * time.Hour)
	}
	return at, nil
}

// roundUpToSlot rounds t up to the next 10-minute boundary, truncating
// seconds. 12:34:17 becomes 12:40:00; 12:40:00 stays as is.
func roundUpToSlot(t time.Time) time.Time {
	minute := ((t.Minute() + 9) / 10) * 10
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), minute, 0, 0, t.Location())
}
