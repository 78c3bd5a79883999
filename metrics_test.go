package sptensor

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/hupe1980/sptensor/coord"
	"github.com/stretchr/testify/assert"
)

func TestStatsHelpers(t *testing.T) {
	s := Stats{Gets: 4, Inserts: 1, Adds: 3, Muls: 2}
	assert.Equal(t, uint64(5), s.Memory())
	assert.Equal(t, uint64(5), s.ALU())
	assert.Equal(t, Stats{Gets: 8, Inserts: 2, Adds: 6, Muls: 4}, s.Merge(s))
}

func TestBasicMetricsCollector(t *testing.T) {
	mc := &BasicMetricsCollector{}
	mc.RecordRead(10, time.Millisecond, nil)
	mc.RecordRead(0, time.Millisecond, errors.New("boom"))
	mc.RecordWrite(10, time.Millisecond, nil)
	mc.RecordTrace(Stats{Gets: 2}, time.Millisecond, nil)

	assert.Equal(t, int64(2), mc.ReadCount.Load())
	assert.Equal(t, int64(1), mc.ReadErrors.Load())
	assert.Equal(t, int64(1), mc.WriteCount.Load())
	assert.Equal(t, uint64(2), mc.Totals().Gets)
	assert.Equal(t, time.Millisecond.Nanoseconds(), mc.OpTotalNanos.Load())

	var noop NoopMetricsCollector
	noop.RecordContract(Stats{}, 0, nil)
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	l.WithOrder(2).WithShape(coord.Coords{2, 3}).WithStore("bptree").LogWrite("a.coo", 5, nil)
	out := buf.String()
	assert.Contains(t, out, "tensor written")
	assert.Contains(t, out, "order=2")
	assert.Contains(t, out, `shape="[2, 3]"`)
	assert.Contains(t, out, "store=bptree")
	assert.Contains(t, out, "nnz=5")

	buf.Reset()
	l.LogRead("b.coo", 0, errors.New("missing"))
	assert.Contains(t, buf.String(), "read failed")

	buf.Reset()
	NoopLogger().LogRead("c.coo", 1, nil)
	assert.Empty(t, buf.String())
}
