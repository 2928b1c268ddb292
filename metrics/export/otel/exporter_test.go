package otel

import (
	"context"
	"sync"
	"testing"

	goHelper "github.com/MrEthical07/goHelper"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type fakeSource struct {
	mu       sync.RWMutex
	snapshot goHelper.MetricsSnapshot
}

func (f *fakeSource) MetricsSnapshot() goHelper.MetricsSnapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := goHelper.MetricsSnapshot{
		Counters:   make(map[goHelper.MetricID]uint64, len(f.snapshot.Counters)),
		Histograms: make(map[goHelper.MetricID][]uint64, len(f.snapshot.Histograms)),
	}
	for k, v := range f.snapshot.Counters {
		out.Counters[k] = v
	}
	for k, buckets := range f.snapshot.Histograms {
		next := make([]uint64, len(buckets))
		copy(next, buckets)
		out.Histograms[k] = next
	}
	return out
}

func findInt64(rm metricdata.ResourceMetrics, name string) (int64, bool) {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				if len(data.DataPoints) > 0 {
					return data.DataPoints[0].Value, true
				}
			case metricdata.Gauge[int64]:
				if len(data.DataPoints) > 0 {
					return data.DataPoints[0].Value, true
				}
			}
		}
	}
	return 0, false
}

func TestExporterRegistersAndCollects(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter("gohelper-test")

	src := &fakeSource{
		snapshot: goHelper.MetricsSnapshot{
			Counters: map[goHelper.MetricID]uint64{
				goHelper.MetricCodeGenerated: 3,
			},
			Histograms: map[goHelper.MetricID][]uint64{
				goHelper.MetricLayoutLatency: {1, 1, 1, 1, 1, 1, 1, 1},
			},
		},
	}

	exp, err := NewOTelExporterFromSource(meter, src)
	if err != nil {
		t.Fatalf("NewOTelExporterFromSource failed: %v", err)
	}
	defer func() {
		if err := exp.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if v, ok := findInt64(rm, "gohelper_code_generated_total"); !ok || v != 3 {
		t.Fatalf("expected code counter 3, got %d (found=%v)", v, ok)
	}
	if v, ok := findInt64(rm, "gohelper_layout_latency_seconds_count"); !ok || v != 8 {
		t.Fatalf("expected histogram count 8, got %d (found=%v)", v, ok)
	}
	if v, ok := findInt64(rm, "gohelper_layout_latency_seconds_bucket_le_0_025"); !ok || v != 3 {
		t.Fatalf("expected cumulative bucket 3, got %d (found=%v)", v, ok)
	}
}

func TestExporterRejectsNilInputs(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter("gohelper-test")

	if _, err := NewOTelExporterFromSource(meter, nil); err == nil {
		t.Fatal("expected error for nil source")
	}
	if _, err := NewOTelExporter(meter, nil); err == nil {
		t.Fatal("expected error for nil helper")
	}
	if _, err := NewOTelExporterFromSource(nil, &fakeSource{}); err == nil {
		t.Fatal("expected error for nil meter")
	}
}

func TestExporterConcurrentCollectNoPanic(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter("gohelper-test")

	src := &fakeSource{
		snapshot: goHelper.MetricsSnapshot{
			Counters: map[goHelper.MetricID]uint64{
				goHelper.MetricRedirect: 1,
			},
			Histograms: map[goHelper.MetricID][]uint64{},
		},
	}

	exp, err := NewOTelExporterFromSource(meter, src)
	if err != nil {
		t.Fatalf("NewOTelExporterFromSource failed: %v", err)
	}
	defer func() {
		if err := exp.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(v uint64) {
			defer wg.Done()
			src.mu.Lock()
			src.snapshot.Counters[goHelper.MetricRedirect] = v
			src.mu.Unlock()

			var rm metricdata.ResourceMetrics
			_ = reader.Collect(context.Background(), &rm)
		}(uint64(i + 1))
	}
	wg.Wait()
}

func findFloat64(rm metricdata.ResourceMetrics, name string) (float64, bool) {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			if data, ok := m.Data.(metricdata.Gauge[float64]); ok && len(data.DataPoints) > 0 {
				return data.DataPoints[0].Value, true
			}
		}
	}
	return 0, false
}

func TestExporterLayoutErrorRatio(t *testing.T) {
	tests := []struct {
		name     string
		renders  uint64
		failures uint64
		want     float64
	}{
		{"no compositions", 0, 0, 0},
		{"all ok", 4, 0, 0},
		{"one in four failed", 3, 1, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := sdkmetric.NewManualReader()
			provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

			src := &fakeSource{snapshot: goHelper.MetricsSnapshot{
				Counters: map[goHelper.MetricID]uint64{
					goHelper.MetricLayoutRender:  tt.renders,
					goHelper.MetricLayoutFailure: tt.failures,
				},
			}}
			exp, err := NewOTelExporterFromSource(provider.Meter("gohelper-test"), src)
			if err != nil {
				t.Fatalf("NewOTelExporterFromSource failed: %v", err)
			}
			defer exp.Close()

			var rm metricdata.ResourceMetrics
			if err := reader.Collect(context.Background(), &rm); err != nil {
				t.Fatalf("Collect failed: %v", err)
			}
			if v, ok := findFloat64(rm, "gohelper_layout_error_ratio"); !ok || v != tt.want {
				t.Fatalf("expected ratio %v, got %v (found=%v)", tt.want, v, ok)
			}
		})
	}
}

func TestExporterInstrumentNames(t *testing.T) {
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewManualReader()))

	exp, err := NewOTelExporterFromSource(provider.Meter("gohelper-test"), &fakeSource{})
	if err != nil {
		t.Fatalf("NewOTelExporterFromSource failed: %v", err)
	}
	defer exp.Close()

	names := exp.InstrumentNames()
	// 19 counters, 8 latency buckets, the latency count and the error ratio.
	if len(names) != 29 {
		t.Fatalf("expected 29 instruments, got %d: %v", len(names), names)
	}
	if names[0] != "gohelper_log_info_total" || names[len(names)-1] != "gohelper_layout_error_ratio" {
		t.Fatalf("unexpected order %v", names)
	}

	names[0] = "mutated"
	if exp.InstrumentNames()[0] != "gohelper_log_info_total" {
		t.Fatal("InstrumentNames must return a copy")
	}
}
