package engine

import "go.uber.org/zap"

// TraceRecord is one structured combat event: what happened, when in
// simulated time, to whom, and how hard. Rendering records to a terminal
// or file is the caller's concern, not the engine's.
type TraceRecord struct {
	Time      float64
	Kind      string // "attack", "crit", "evade", "reflect", "stun", "regen", "lifesteal", "heal", "revive", "expiry", "trample"
	Actor     string
	Target    string
	Magnitude float64
	// Health is the affected combatant's health after the event. The
	// engine clamps at zero, so a negative value here is a defect.
	Health float64
}

// Recorder receives the trace of an encounter as it unfolds. A fresh
// Recorder per run keeps traces restartable; a nil Recorder disables
// tracing entirely.
type Recorder interface {
	Record(TraceRecord)
}

// MemoryRecorder accumulates trace records in order. Reset makes the same
// recorder reusable for the next encounter.
type MemoryRecorder struct {
	records []TraceRecord
}

// Record appends r to the trace.
func (m *MemoryRecorder) Record(r TraceRecord) { m.records = append(m.records, r) }

// Records returns the accumulated trace in event order. The returned slice
// is the recorder's own backing store; callers must copy before mutating.
func (m *MemoryRecorder) Records() []TraceRecord { return m.records }

// Reset discards the accumulated trace.
func (m *MemoryRecorder) Reset() { m.records = m.records[:0] }

// ZapRecorder logs each trace record at debug level through a zap logger.
type ZapRecorder struct {
	Logger *zap.Logger
}

// Record logs r as a structured debug entry.
func (z ZapRecorder) Record(r TraceRecord) {
	z.Logger.Debug("combat event",
		zap.Float64("t", r.Time),
		zap.String("kind", r.Kind),
		zap.String("actor", r.Actor),
		zap.String("target", r.Target),
		zap.Float64("magnitude", r.Magnitude),
		zap.Float64("health", r.Health),
	)
}

// MultiRecorder fans one trace out to several recorders.
type MultiRecorder []Recorder

// Record forwards r to every recorder in order.
func (m MultiRecorder) Record(r TraceRecord) {
	for _, rec := range m {
		rec.Record(r)
	}
}
