package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	lines []string
	kvs   [][]any
}

func (r *recorder) record(level, msg string, kv []any) {
	r.lines = append(r.lines, level+":"+msg)
	r.kvs = append(r.kvs, kv)
}

func (r *recorder) Log(m string, kv ...any)   { r.record("log", m, kv) }
func (r *recorder) Debug(m string, kv ...any) { r.record("debug", m, kv) }
func (r *recorder) Info(m string, kv ...any)  { r.record("info", m, kv) }
func (r *recorder) Warn(m string, kv ...any)  { r.record("warn", m, kv) }
func (r *recorder) Error(m string, kv ...any) { r.record("error", m, kv) }
func (r *recorder) Fatal(m string, kv ...any) { r.record("fatal", m, kv) }

func TestFanOut(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	Init(a, b)
	t.Cleanup(func() { singleton = nil })

	Info("hello", "k", 1)
	Log("plain", "k", 2)
	Warn("careful")

	for _, r := range []*recorder{a, b} {
		assert.Equal(t, []string{"info:hello", "log:plain", "warn:careful"}, r.lines)
		assert.Equal(t, []any{"k", 2}, r.kvs[1])
	}
}

func TestUninitialisedIsNoop(t *testing.T) {
	singleton = nil
	assert.NotPanics(t, func() {
		Info("x")
		Error("y")
	})
}

func TestFieldsPrependKeyvals(t *testing.T) {
	r := &recorder{}
	Init(r)
	t.Cleanup(func() { singleton = nil })

	doc := With("document_id", "d1")
	doc.Info("extracted", "bytes", 10)
	doc.With("status", "done").Warn("slow")

	assert.Equal(t, []string{"info:extracted", "warn:slow"}, r.lines)
	assert.Equal(t, []any{"document_id", "d1", "bytes", 10}, r.kvs[0])
	assert.Equal(t, []any{"document_id", "d1", "status", "done"}, r.kvs[1])
	assert.Equal(t, Fields{"document_id", "d1"}, doc)
}

func TestCallsBeforeInitAreDropped(t *testing.T) {
	singleton = nil
	assert.NotPanics(t, func() {
		Info("nobody listens")
		With("k", "v").Error("still nobody")
	})
}
