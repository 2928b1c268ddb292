package otel

import (
	"context"
	"errors"
	"fmt"

	goHelper "github.com/MrEthical07/goHelper"
	"github.com/MrEthical07/goHelper/metrics/export/internaldefs"
	"go.opentelemetry.io/otel/metric"
)

var (
	ErrNilMeter  = errors.New("nil meter")
	ErrNilSource = errors.New("nil metrics source")
)

const layoutErrorRatioName = "gohelper_layout_error_ratio"

type metricsSource interface {
	MetricsSnapshot() goHelper.MetricsSnapshot
}

type helperCounter struct {
	id         goHelper.MetricID
	instrument metric.Int64ObservableCounter
}

type latencyGauges struct {
	id      goHelper.MetricID
	buckets [8]metric.Int64ObservableGauge
	count   metric.Int64ObservableGauge
}

// OTelExporter observes a Helper's counters on every collection cycle of
// the supplied meter.
type OTelExporter struct {
	source       metricsSource
	registration metric.Registration
	counters     []helperCounter
	latency      []latencyGauges
	layoutErrors metric.Float64ObservableGauge
	names        []string
}

func NewOTelExporter(meter metric.Meter, h *goHelper.Helper) (*OTelExporter, error) {
	if h == nil {
		return nil, ErrNilSource
	}
	return NewOTelExporterFromSource(meter, h)
}

// NewOTelExporterFromSource is NewOTelExporter for anything that can produce
// a MetricsSnapshot.
func NewOTelExporterFromSource(meter metric.Meter, source metricsSource) (*OTelExporter, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	if source == nil {
		return nil, ErrNilSource
	}

	e := &OTelExporter{
		source:   source,
		counters: make([]helperCounter, 0, len(internaldefs.CounterDefs)),
		latency:  make([]latencyGauges, 0, len(internaldefs.HistogramDefs)),
	}

	var observables []metric.Observable

	for _, def := range internaldefs.CounterDefs {
		ins, err := meter.Int64ObservableCounter(def.Name, metric.WithDescription(def.Help))
		if err != nil {
			return nil, fmt.Errorf("create counter %s: %w", def.Name, err)
		}
		e.counters = append(e.counters, helperCounter{id: def.ID, instrument: ins})
		e.names = append(e.names, def.Name)
		observables = append(observables, ins)
	}

	for _, def := range internaldefs.HistogramDefs {
		g := latencyGauges{id: def.ID}
		for i, suffix := range internaldefs.HistogramBoundSuffix {
			name := def.Name + "_bucket_le_" + suffix
			ins, err := meter.Int64ObservableGauge(name,
				metric.WithDescription("Cumulative page compositions with latency le="+internaldefs.HistogramBounds[i]+"."))
			if err != nil {
				return nil, fmt.Errorf("create latency bucket %s: %w", name, err)
			}
			g.buckets[i] = ins
			e.names = append(e.names, name)
			observables = append(observables, ins)
		}
		countName := def.Name + "_count"
		count, err := meter.Int64ObservableGauge(countName, metric.WithDescription("Timed page compositions."))
		if err != nil {
			return nil, fmt.Errorf("create latency count %s: %w", countName, err)
		}
		g.count = count
		e.names = append(e.names, countName)
		observables = append(observables, count)
		e.latency = append(e.latency, g)
	}

	ratio, err := meter.Float64ObservableGauge(layoutErrorRatioName,
		metric.WithDescription("Failed page compositions as a fraction of all compositions."))
	if err != nil {
		return nil, fmt.Errorf("create gauge %s: %w", layoutErrorRatioName, err)
	}
	e.layoutErrors = ratio
	e.names = append(e.names, layoutErrorRatioName)
	observables = append(observables, ratio)

	registration, err := meter.RegisterCallback(e.observe, observables...)
	if err != nil {
		return nil, fmt.Errorf("register callback: %w", err)
	}
	e.registration = registration
	return e, nil
}

func (e *OTelExporter) observe(_ context.Context, o metric.Observer) error {
	snap := e.source.MetricsSnapshot()

	for _, c := range e.counters {
		o.ObserveInt64(c.instrument, int64(snap.Counters[c.id]))
	}
	for _, g := range e.latency {
		cumulative := internaldefs.CumulativeBuckets(internaldefs.NormalizeBuckets(snap.Histograms[g.id]))
		for i := range cumulative {
			o.ObserveInt64(g.buckets[i], int64(cumulative[i]))
		}
		o.ObserveInt64(g.count, int64(cumulative[len(cumulative)-1]))
	}

	o.ObserveFloat64(e.layoutErrors, layoutErrorRatio(snap))
	return nil
}

// layoutErrorRatio is 0 until the first composition.
func layoutErrorRatio(snap goHelper.MetricsSnapshot) float64 {
	failed := snap.Counters[goHelper.MetricLayoutFailure]
	total := snap.Counters[goHelper.MetricLayoutRender] + failed
	if total == 0 {
		return 0
	}
	return float64(failed) / float64(total)
}

// InstrumentNames returns the names of all registered instruments.
func (e *OTelExporter) InstrumentNames() []string {
	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}

// Close unregisters the collection callback.
func (e *OTelExporter) Close() error {
	if e == nil || e.registration == nil {
		return nil
	}
	return e.registration.Unregister()
}
