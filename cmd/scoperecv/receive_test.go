package main

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/michcald/digiscope"
)

func TestReceive(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	in := strings.NewReader(strings.Join([]string{
		"LOG [INFO]  Digital scope initialized.\r",
		"garbage",
		"DATA 0 1 5 0 32 1 33 0\r",
		"DATA 7 x",
		"",
	}, "\n"))
	var out bytes.Buffer

	if err := receive(context.Background(), in, &out, logger); err != nil {
		t.Fatalf("receive failed: %v", err)
	}

	if n := logs.FilterMessage("board").Len(); n != 1 {
		t.Errorf("Expected one board log line, got %d", n)
	}
	if n := logs.FilterMessage("capture received").Len(); n != 1 {
		t.Errorf("Expected one capture, got %d", n)
	}
	if n := logs.FilterMessage("skipping line").Len(); n != 2 {
		t.Errorf("Expected two skipped lines, got %d", n)
	}

	got := out.String()
	for _, want := range []string{"HIGH", "LOW", "32", "33"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected table to contain %q:\n%s", want, got)
		}
	}
}

func TestReceiveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := receive(ctx, strings.NewReader(""), &bytes.Buffer{}, zap.NewNop())
	if err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

// dataLine builds a DATA line of n alternating samples with wide timestamps.
func dataLine(n int) string {
	var b strings.Builder
	b.WriteString("DATA")
	for i := 0; i < n; i++ {
		b.WriteByte(' ')
		b.WriteString(strconv.FormatUint(4000000000+uint64(i), 10))
		b.WriteString(" " + strconv.Itoa(i%2))
	}
	b.WriteString("\r\n")
	return b.String()
}

func TestReceiveLongCapture(t *testing.T) {
	for _, n := range []int{8000, digiscope.MaxCapacity} {
		core, logs := observer.New(zap.DebugLevel)
		line := dataLine(n)
		if len(line) > maxLine {
			t.Fatalf("%d samples: line of %d bytes exceeds limit %d", n, len(line), maxLine)
		}

		err := receive(context.Background(), strings.NewReader(line+"LOG [INFO]  done\r\n"), &bytes.Buffer{}, zap.New(core))
		if err != nil {
			t.Fatalf("%d samples: receive failed: %v", n, err)
		}

		got := logs.FilterMessage("capture received").All()
		if len(got) != 1 {
			t.Fatalf("%d samples: expected one capture, got %d", n, len(got))
		}
		if events := got[0].ContextMap()["events"]; events != int64(n) {
			t.Errorf("Expected %d events, got %v", n, events)
		}
		if logs.FilterMessage("board").Len() != 1 {
			t.Errorf("%d samples: line after the capture was lost", n)
		}
	}
}
