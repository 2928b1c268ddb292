package internaldefs

import (
	goHelper "github.com/MrEthical07/goHelper"
)

type CounterDef struct {
	ID   goHelper.MetricID
	Name string
	Help string
}

type HistogramDef struct {
	ID   goHelper.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in a stable order.
var CounterDefs = []CounterDef{
	{ID: goHelper.MetricLogInfo, Name: "gohelper_log_info_total", Help: "Log lines written at INFO."},
	{ID: goHelper.MetricLogDebug, Name: "gohelper_log_debug_total", Help: "Log lines written at DEBUG."},
	{ID: goHelper.MetricLogWarning, Name: "gohelper_log_warning_total", Help: "Log lines written at WARNING."},
	{ID: goHelper.MetricLogError, Name: "gohelper_log_error_total", Help: "Log lines written at ERROR."},
	{ID: goHelper.MetricEncrypt, Name: "gohelper_encrypt_total", Help: "Successful encryptions."},
	{ID: goHelper.MetricEncryptFailure, Name: "gohelper_encrypt_failure_total", Help: "Failed encryptions."},
	{ID: goHelper.MetricDecrypt, Name: "gohelper_decrypt_total", Help: "Successful decryptions."},
	{ID: goHelper.MetricDecryptFailure, Name: "gohelper_decrypt_failure_total", Help: "Decryptions rejected for malformed input or bad padding."},
	{ID: goHelper.MetricIDGenerated, Name: "gohelper_id_generated_total", Help: "Random identifiers generated."},
	{ID: goHelper.MetricHashGenerated, Name: "gohelper_hash_generated_total", Help: "Random hashes generated."},
	{ID: goHelper.MetricCodeGenerated, Name: "gohelper_code_generated_total", Help: "Structured codes generated."},
	{ID: goHelper.MetricCodeFailure, Name: "gohelper_code_failure_total", Help: "Structured code requests rejected."},
	{ID: goHelper.MetricRedirect, Name: "gohelper_redirect_total", Help: "Redirects to user routes."},
	{ID: goHelper.MetricRedirectAdmin, Name: "gohelper_redirect_admin_total", Help: "Redirects to admin routes."},
	{ID: goHelper.MetricLayoutRender, Name: "gohelper_layout_render_total", Help: "Successful page compositions."},
	{ID: goHelper.MetricLayoutFailure, Name: "gohelper_layout_failure_total", Help: "Failed page compositions."},
	{ID: goHelper.MetricSessionWrite, Name: "gohelper_session_write_total", Help: "Session values written."},
	{ID: goHelper.MetricSessionWriteFailure, Name: "gohelper_session_write_failure_total", Help: "Session writes that failed."},
	{ID: goHelper.MetricDump, Name: "gohelper_dump_total", Help: "Debug dumps written."},
}

var HistogramDefs = []HistogramDef{
	{ID: goHelper.MetricLayoutLatency, Name: "gohelper_layout_latency_seconds", Help: "Page composition latency histogram."},
}

// HistogramBounds are the upper bounds, in seconds, of the eight latency
// buckets; the last one is +Inf.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundValues mirrors HistogramBounds without the +Inf bucket.
var HistogramBoundValues = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5}

var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets copies raw into a fixed array, zero-filling missing buckets.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
