package booking

import (
	"testing"
	"time"
	_ "time/tzdata"

	"washbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(slots []models.TimeSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Label
	}
	return out
}

func TestGenerateSlots_ServiceMustFinishByClose(t *testing.T) {
	cat := testRules().Catalogue
	w := DefaultSlotWindow()

	cases := []struct {
		service string
		count   int
		last    string
	}{
		{"basic", 20, "5:30 PM"},   // 15 min
		{"premium", 20, "5:30 PM"}, // 25 min
		{"luxury", 19, "5:00 PM"},  // 40 min
	}
	for _, tc := range cases {
		svc, ok := cat.ServiceByID(tc.service)
		require.True(t, ok)

		slots := GenerateSlots(svc, "2026-10-17", "los-angeles", w, AllAvailable{})
		require.Len(t, slots, tc.count, tc.service)
		assert.Equal(t, "8:00 AM", slots[0].Label)
		assert.Equal(t, tc.last, slots[len(slots)-1].Label, tc.service)
		for _, s := range slots {
			assert.LessOrEqual(t, s.End, w.Close)
			assert.Equal(t, svc.DurationMinutes, s.End-s.Start)
		}
	}
}

func TestGenerateSlots_FinerGridReachesCloserToClose(t *testing.T) {
	svc, _ := testRules().Catalogue.ServiceByID("basic")
	w := SlotWindow{Open: 8 * 60, Close: 18 * 60, Granularity: 15}

	got := labels(GenerateSlots(svc, "2026-10-17", "san-diego", w, AllAvailable{}))
	assert.Equal(t, "5:45 PM", got[len(got)-1])
	assert.NotContains(t, labels(GenerateSlots(svc, "2026-10-17", "san-diego", DefaultSlotWindow(), AllAvailable{})), "5:45 PM")
}

func TestGenerateSlots_NoonLabels(t *testing.T) {
	svc, _ := testRules().Catalogue.ServiceByID("basic")
	w := SlotWindow{Open: 11 * 60, Close: 14 * 60, Granularity: 30}

	assert.Equal(t,
		[]string{"11:00 AM", "11:30 AM", "12:00 PM", "12:30 PM", "1:00 PM", "1:30 PM"},
		labels(GenerateSlots(svc, "2026-10-17", "san-diego", w, AllAvailable{})))
}

func TestGenerateSlots_DegenerateInputs(t *testing.T) {
	svc, _ := testRules().Catalogue.ServiceByID("basic")
	assert.Empty(t, GenerateSlots(svc, "2026-10-17", "x", SlotWindow{Open: 480, Close: 1080}, AllAvailable{}))
	assert.Empty(t, GenerateSlots(models.WashService{ID: "zero"}, "2026-10-17", "x", DefaultSlotWindow(), AllAvailable{}))
	assert.Empty(t, GenerateSlots(svc, "2026-10-17", "x", SlotWindow{Open: 480, Close: 490, Granularity: 30}, AllAvailable{}))
}

func TestSimulatedAvailability(t *testing.T) {
	sim := SimulatedAvailability{OpenRatio: DefaultOpenRatio}
	first := sim.IsAvailable("los-angeles", "2026-10-17", 480)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, sim.IsAvailable("los-angeles", "2026-10-17", 480), "stable per slot")
	}

	svc, _ := testRules().Catalogue.ServiceByID("basic")
	slots := GenerateSlots(svc, "2026-10-17", "los-angeles", DefaultSlotWindow(), sim)
	open := 0
	for _, s := range slots {
		if s.Available {
			open++
		}
	}
	assert.Greater(t, open, 0)
	assert.Less(t, open, len(slots)+1)

	closed := SimulatedAvailability{OpenRatio: 0}
	assert.False(t, closed.IsAvailable("los-angeles", "2026-10-17", 480))
}

func TestSlotAvailable(t *testing.T) {
	svc, _ := testRules().Catalogue.ServiceByID("luxury")
	w := DefaultSlotWindow()

	assert.True(t, SlotAvailable(svc, "2026-10-17", "sacramento", "5:00 PM", w, AllAvailable{}))
	assert.False(t, SlotAvailable(svc, "2026-10-17", "sacramento", "5:30 PM", w, AllAvailable{}))
	assert.False(t, SlotAvailable(svc, "2026-10-17", "sacramento", "9:15 AM", w, AllAvailable{}))
	assert.False(t, SlotAvailable(svc, "2026-10-17", "sacramento", "9:00 AM", w, SimulatedAvailability{}))
}

func TestSlotLabels(t *testing.T) {
	assert.Equal(t, "8:00 AM", FormatSlotLabel(480))
	assert.Equal(t, "12:00 PM", FormatSlotLabel(720))
	assert.Equal(t, "12:00 AM", FormatSlotLabel(0))
	assert.Equal(t, "5:45 PM", FormatSlotLabel(1065))

	start, err := SlotStart("5:30 PM")
	require.NoError(t, err)
	assert.Equal(t, 1050, start)

	_, err = SlotStart("17:30")
	assert.Error(t, err)
}

func TestNewSlotWindow(t *testing.T) {
	w, err := NewSlotWindow("08:00", "18:00", 30)
	require.NoError(t, err)
	assert.Equal(t, DefaultSlotWindow(), w)

	_, err = NewSlotWindow("18:00", "08:00", 30)
	assert.Error(t, err)
	_, err = NewSlotWindow("8am", "18:00", 30)
	assert.Error(t, err)
	_, err = NewSlotWindow("08:00", "18:00", 0)
	assert.Error(t, err)
}

func TestUpcomingDates(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	// 02:00 UTC on the 17th is still the evening of the 16th in Los Angeles.
	now := time.Date(2026, 10, 17, 2, 0, 0, 0, time.UTC)
	dates := UpcomingDates(now, 3, la)

	require.Len(t, dates, 3)
	assert.Equal(t, models.BookingDate{Date: "2026-10-16", Label: "Fri, Oct 16", IsToday: true}, dates[0])
	assert.Equal(t, models.BookingDate{Date: "2026-10-17", Label: "Sat, Oct 17", IsTomorrow: true, Bookable: true}, dates[1])
	assert.Equal(t, "2026-10-18", dates[2].Date)
	assert.True(t, dates[2].Bookable)

	assert.Equal(t, time.Date(2026, 10, 17, 0, 0, 0, 0, la), Tomorrow(now, la))
}
