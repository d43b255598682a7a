package main

import (
	"bufio"
	"context"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"go.uber.org/zap"

	"github.com/michcald/digiscope"
	"github.com/michcald/digiscope/report"
)

// maxLine fits a DATA line from a full scope: each sample is a space, up to
// ten digits of time, a space and the state digit.
const maxLine = len("DATA") + digiscope.MaxCapacity*len(" 4294967295 0") + len("\r\n")

// receive reads report lines from r until EOF or until ctx is done. LOG
// lines go to logger, DATA lines are rendered to w.
func receive(ctx context.Context, r io.Reader, w io.Writer, logger *zap.Logger) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	captures := 0

	for scanner.Scan() {
		line, err := report.ParseLine(scanner.Text())
		if err != nil {
			logger.Debug("skipping line", zap.String("line", scanner.Text()), zap.Error(err))
			continue
		}

		switch line.Kind {
		case report.KindLog:
			logger.Info("board", zap.String("msg", line.Message))
		case report.KindData:
			captures++
			logger.Info("capture received", zap.Int("capture", captures), zap.Int("events", len(line.Samples)))
			renderCapture(w, line.Samples)
		}
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return scanner.Err()
}

// renderCapture prints one capture. Delta is the time since the previous
// sample, i.e. the duration of the level before it.
func renderCapture(w io.Writer, samples []report.Sample) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Time (us)", "Delta (us)", "State"})

	var prev uint32
	for i, s := range samples {
		t.AppendRow(table.Row{i, s.Time, s.Time - prev, s.State})
		prev = s.Time
	}
	t.AppendFooter(table.Row{"", "", "Events", len(samples)})
	t.Render()
}
