// Package metrics exports engine outcomes as Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vsinha/hatchery/pkg/application/services"
	"github.com/vsinha/hatchery/pkg/domain/entities"
)

const namespace = "hatchery"

// Recorder implements services.MetricsRecorder with Prometheus counters
type Recorder struct {
	classified  *prometheus.CounterVec
	assignments *prometheus.CounterVec
	boxTrolleys *prometheus.CounterVec
	chicks      prometheus.Counter
}

var _ services.MetricsRecorder = (*Recorder)(nil)

// NewRecorder creates the counters and registers them with reg
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		classified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trolleys_classified_total",
			Help:      "Trolleys classified, by fertility status.",
		}, []string{"status"}),
		assignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_assignments_total",
			Help:      "Trolleys assigned to the post-hatch rack, by kind (actual or planned).",
		}, []string{"kind"}),
		boxTrolleys: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "box_trolleys_packed_total",
			Help:      "Box-trolleys produced by the packing engine, by fullness.",
		}, []string{"fill"}),
		chicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chicks_packed_total",
			Help:      "Chicks packed into box-trolleys.",
		}),
	}

	for _, c := range []prometheus.Collector{r.classified, r.assignments, r.boxTrolleys, r.chicks} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ObserveClassified counts a classified trolley
func (r *Recorder) ObserveClassified(status entities.FertilityStatus) {
	r.classified.WithLabelValues(status.String()).Inc()
}

// ObserveAssignments counts actual and planned rack assignments
func (r *Recorder) ObserveAssignments(assigned, overflow int) {
	r.assignments.WithLabelValues("actual").Add(float64(assigned))
	r.assignments.WithLabelValues("planned").Add(float64(overflow))
}

// ObservePacked counts a produced box-trolley and its chicks
func (r *Recorder) ObservePacked(bt entities.ChickBoxTrolley) {
	fill := "partial"
	switch {
	case bt.Full:
		fill = "full"
	case bt.IsPlaceholder():
		fill = "empty"
	}
	r.boxTrolleys.WithLabelValues(fill).Inc()
	r.chicks.Add(float64(bt.Chicks))
}
