package digiscope

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type recordingLogger struct {
	msgs []string
}

func (r *recordingLogger) Debug(msg string) { r.msgs = append(r.msgs, "DEBUG "+msg) }
func (r *recordingLogger) Info(msg string)  { r.msgs = append(r.msgs, "INFO "+msg) }
func (r *recordingLogger) Warn(msg string)  { r.msgs = append(r.msgs, "WARN "+msg) }
func (r *recordingLogger) Error(msg string) { r.msgs = append(r.msgs, "ERROR "+msg) }

func TestLoggingStaysInForeground(t *testing.T) {
	rec := &recordingLogger{}
	SetLogger(rec)
	defer SetLogger(nil)

	r := newRig(Low)
	s := newScope[uint32](t, r, 4, nil)
	s.SetBeginCallback(func() {})
	s.SetCompleteCallback(func() {})

	s.Start(Rising)
	logged := len(rec.msgs)
	r.edgeAt(1, 2, 3, 4, 5)
	if len(rec.msgs) != logged {
		t.Errorf("Edge handler logged: %q", rec.msgs[logged:])
	}
	s.Close()

	want := []string{
		"INFO Digital scope initialized.",
		"DEBUG Scope armed, trigger RISING",
		"INFO Digital scope closed.",
	}
	if diff := cmp.Diff(want, rec.msgs); diff != "" {
		t.Errorf("Log mismatch (-want +got):\n%s", diff)
	}
	for _, m := range rec.msgs {
		if strings.ContainsAny(m, "\r\n") {
			t.Errorf("Message %q contains a line break", m)
		}
	}
}

func TestSetLoggerNilSilences(t *testing.T) {
	SetLogger(&recordingLogger{})
	SetLogger(nil)
	if _, ok := globalLogger.(discard); !ok {
		t.Errorf("Expected discard logger, got %T", globalLogger)
	}
}
