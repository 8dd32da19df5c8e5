package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	r := New()

	r.RecordGeneration("model", 2*time.Millisecond)
	r.RecordGeneration("model", 3*time.Millisecond)
	r.RecordGeneration("selection", time.Millisecond)
	r.RecordParts("solid_wood", 4)
	r.RecordParts("sheet_good", 0)
	r.RecordCommand("update_part", "applied")
	r.RecordDiagnostic("error", "tab.cutlist.error.no_entities")

	assert.InDelta(t, 2.0, testutil.ToFloat64(r.generationsTotal.WithLabelValues("model")), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(r.generationsTotal.WithLabelValues("selection")), 1e-9)
	assert.InDelta(t, 4.0, testutil.ToFloat64(r.partsTotal.WithLabelValues("solid_wood")), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(r.commandsTotal.WithLabelValues("update_part", "applied")), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(r.diagnosticsTotal.WithLabelValues("error", "tab.cutlist.error.no_entities")), 1e-9)
}

func TestRecordersAreIndependent(t *testing.T) {
	a := New()
	b := New()
	a.RecordCommand("update_group", "noop")

	assert.InDelta(t, 1.0, testutil.ToFloat64(a.commandsTotal.WithLabelValues("update_group", "noop")), 1e-9)
	assert.InDelta(t, 0.0, testutil.ToFloat64(b.commandsTotal.WithLabelValues("update_group", "noop")), 1e-9)
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder
	require.NotPanics(t, func() {
		r.RecordGeneration("model", time.Second)
		r.RecordParts("unknown", 3)
		r.RecordDiagnostic("tip", "x")
		r.RecordCommand("update_part", "noop")
		r.RecordRequest("/health", "200", time.Millisecond)
	})
	assert.Nil(t, r.Registry())
}

func TestTimer(t *testing.T) {
	timer := NewTimer()
	assert.GreaterOrEqual(t, timer.Duration(), time.Duration(0))
}
