// Package report writes finished captures as text lines and parses them back.
//
// The format is line oriented so it can be streamed over a serial link:
//
//	LOG <free text>
//	DATA <t0> <s0> <t1> <s1> ...
//
// where t is the time of a sample in microseconds relative to sample 0 and
// s is 1 for HIGH and 0 for LOW after that sample.
// Writing avoids fmt to keep TinyGo binaries small.
package report

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/michcald/digiscope"
)

var (
	ErrMalformed   = errors.New("malformed report line")
	ErrUnknownKind = errors.New("unknown report line kind")
)

const (
	logPrefix  = "LOG"
	dataPrefix = "DATA"
)

// Capture is the read side of a stopped scope.
type Capture interface {
	NumEvents() int
	TimeOf(idx int) uint32
	StateOf(idx int) digiscope.Level
}

// WriteLog writes msg as a LOG line.
func WriteLog(w io.Writer, msg string) error {
	buf := make([]byte, 0, len(logPrefix)+len(msg)+2)
	buf = append(buf, logPrefix...)
	buf = append(buf, ' ')
	buf = append(buf, msg...)
	buf = append(buf, '\n')
	_, err := w.Write(buf)
	return err
}

// WriteData writes all samples of c as a single DATA line.
func WriteData(w io.Writer, c Capture) error {
	n := c.NumEvents()
	buf := make([]byte, 0, len(dataPrefix)+n*10+1)
	buf = append(buf, dataPrefix...)
	for i := 0; i < n; i++ {
		buf = append(buf, ' ')
		buf = strconv.AppendUint(buf, uint64(c.TimeOf(i)), 10)
		if c.StateOf(i) == digiscope.High {
			buf = append(buf, " 1"...)
		} else {
			buf = append(buf, " 0"...)
		}
	}
	buf = append(buf, '\n')
	_, err := w.Write(buf)
	return err
}

type Kind uint8

const (
	KindLog Kind = iota + 1
	KindData
)

// Sample is one parsed DATA entry.
type Sample struct {
	Time  uint32
	State digiscope.Level
}

// Line is one parsed report line. Message is set for KindLog, Samples for
// KindData.
type Line struct {
	Kind    Kind
	Message string
	Samples []Sample
}

// ParseLine parses a single line without its terminator. A trailing
// carriage return is ignored.
func ParseLine(line string) (Line, error) {
	line = strings.TrimRight(line, "\r\n")
	kind, rest, _ := strings.Cut(line, " ")

	switch kind {
	case logPrefix:
		return Line{Kind: KindLog, Message: rest}, nil
	case dataPrefix:
		samples, err := parseSamples(rest)
		if err != nil {
			return Line{}, err
		}
		return Line{Kind: KindData, Samples: samples}, nil
	default:
		return Line{}, ErrUnknownKind
	}
}

func parseSamples(s string) ([]Sample, error) {
	fields := strings.Fields(s)
	if len(fields)%2 != 0 {
		return nil, ErrMalformed
	}

	samples := make([]Sample, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		t, err := strconv.ParseUint(fields[i], 10, 32)
		if err != nil {
			return nil, ErrMalformed
		}
		var state digiscope.Level
		switch fields[i+1] {
		case "1":
			state = digiscope.High
		case "0":
			state = digiscope.Low
		default:
			return nil, ErrMalformed
		}
		samples = append(samples, Sample{Time: uint32(t), State: state})
	}
	return samples, nil
}
