package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const submissionsMetric = "washbook_booking_submissions_total"

// BookingMetrics counts wizard transitions, submissions and location resolutions.
// A nil *BookingMetrics is valid and records nothing.
type BookingMetrics struct {
	transitions *prometheus.CounterVec
	submissions *prometheus.CounterVec
	resolutions *prometheus.CounterVec
}

// NewBookingMetrics registers the booking counters on reg.
func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "washbook",
			Name:      "wizard_transitions_total",
			Help:      "Booking wizard transitions by event and outcome.",
		}, []string{"event", "outcome"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "washbook",
			Name:      "booking_submissions_total",
			Help:      "Booking submissions by result.",
		}, []string{"result"}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "washbook",
			Name:      "location_resolutions_total",
			Help:      "Nearest-location resolutions by source.",
		}, []string{"source"}),
	}
	reg.MustRegister(m.transitions, m.submissions, m.resolutions)
	return m
}

func (m *BookingMetrics) Transition(event, outcome string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(event, outcome).Inc()
}

func (m *BookingMetrics) Submission(result string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(result).Inc()
}

func (m *BookingMetrics) Resolution(source string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(source).Inc()
}

// SubmissionCounts reads the submission counter back from gatherer, keyed by result.
func SubmissionCounts(gatherer prometheus.Gatherer) (map[string]float64, error) {
	counts := map[string]float64{}
	if gatherer == nil {
		return counts, nil
	}
	mfs, err := gatherer.Gather()
	if err != nil {
		return nil, err
	}
	for _, mf := range mfs {
		if mf.GetName() != submissionsMetric {
			continue
		}
		for _, m := range mf.GetMetric() {
			counts[labelValue(m, "result")] += m.GetCounter().GetValue()
		}
	}
	return counts, nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
