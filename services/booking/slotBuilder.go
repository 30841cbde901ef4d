package booking

import (
	"fmt"
	"hash/fnv"
	"math"
	"strconv"
	"strings"
	"time"

	"washbook/models"
)

// DefaultOpenRatio is the share of slots the simulated availability leaves open.
const DefaultOpenRatio = 0.7

// SlotWindow is the bookable part of a day, in minutes from midnight.
type SlotWindow struct {
	Open        int // e.g. 480 for 8:00 AM
	Close       int // a slot must end at or before this minute
	Granularity int // minutes between candidate starts
}

// DefaultSlotWindow is 8:00 AM to 6:00 PM on a half-hour grid.
func DefaultSlotWindow() SlotWindow {
	return SlotWindow{Open: 8 * 60, Close: 18 * 60, Granularity: 30}
}

// NewSlotWindow builds a window from "HH:MM" clock strings.
func NewSlotWindow(open, close string, granularity int) (SlotWindow, error) {
	o, err := ParseClock(open)
	if err != nil {
		return SlotWindow{}, fmt.Errorf("slot open: %w", err)
	}
	c, err := ParseClock(close)
	if err != nil {
		return SlotWindow{}, fmt.Errorf("slot close: %w", err)
	}
	if c <= o {
		return SlotWindow{}, fmt.Errorf("slot close %s must be after open %s", close, open)
	}
	if granularity <= 0 {
		return SlotWindow{}, fmt.Errorf("slot granularity must be positive, got %d", granularity)
	}
	return SlotWindow{Open: o, Close: c, Granularity: granularity}, nil
}

// ParseClock parses "HH:MM" (24h) into minutes from midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatSlotLabel renders minutes from midnight as a 12h label, e.g. "8:00 AM".
func FormatSlotLabel(minute int) string {
	h, m := minute/60, minute%60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return strconv.Itoa(h12) + ":" + fmt.Sprintf("%02d", m) + " " + suffix
}

// AvailabilityChecker decides whether a candidate slot can be booked.
type AvailabilityChecker interface {
	IsAvailable(locationID, date string, start int) bool
}

// AllAvailable marks every slot open.
type AllAvailable struct{}

func (AllAvailable) IsAvailable(string, string, int) bool { return true }

// SimulatedAvailability opens a stable pseudo-random share of slots per location, date and start.
type SimulatedAvailability struct {
	OpenRatio float64
}

func (s SimulatedAvailability) IsAvailable(locationID, date string, start int) bool {
	h := fnv.New32a()
	_, _ = h.Write([]byte(locationID + "|" + date + "|" + strconv.Itoa(start)))
	return float64(h.Sum32())/float64(math.MaxUint32) < s.OpenRatio
}

// GenerateSlots lists every start in w for which svc finishes by w.Close.
func GenerateSlots(svc models.WashService, date, locationID string, w SlotWindow, checker AvailabilityChecker) []models.TimeSlot {
	if w.Granularity <= 0 || svc.DurationMinutes <= 0 {
		return nil
	}
	var slots []models.TimeSlot
	for start := w.Open; start+svc.DurationMinutes <= w.Close; start += w.Granularity {
		slots = append(slots, models.TimeSlot{
			Label:     FormatSlotLabel(start),
			Start:     start,
			End:       start + svc.DurationMinutes,
			Available: checker.IsAvailable(locationID, date, start),
		})
	}
	return slots
}

// SlotAvailable reports whether label is a generated, available slot.
func SlotAvailable(svc models.WashService, date, locationID, label string, w SlotWindow, checker AvailabilityChecker) bool {
	for _, slot := range GenerateSlots(svc, date, locationID, w, checker) {
		if slot.Label == label {
			return slot.Available
		}
	}
	return false
}

// SlotStart returns the start minute encoded by a slot label.
func SlotStart(label string) (int, error) {
	t, err := time.Parse("3:04 PM", strings.TrimSpace(label))
	if err != nil {
		return 0, fmt.Errorf("invalid slot label %q", label)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// UpcomingDates lists days starting today in tz. Today is shown but never bookable.
func UpcomingDates(now time.Time, days int, tz *time.Location) []models.BookingDate {
	local := now.In(tz)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, tz)
	dates := make([]models.BookingDate, 0, days)
	for i := 0; i < days; i++ {
		d := today.AddDate(0, 0, i)
		dates = append(dates, models.BookingDate{
			Date:       d.Format(dateLayout),
			Label:      d.Format("Mon, Jan 2"),
			IsToday:    i == 0,
			IsTomorrow: i == 1,
			Bookable:   i >= 1,
		})
	}
	return dates
}
