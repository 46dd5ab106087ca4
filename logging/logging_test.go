package logging

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, log.InfoLevel)

	if logger == nil {
		t.Fatal("New() returned nil")
	}

	logger.Info("test message")
	if buf.Len() == 0 {
		t.Error("logger should have written output")
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, log.InfoLevel)

	logger.Debug("should be filtered")
	if buf.Len() != 0 {
		t.Error("debug message should not appear at info level")
	}

	logger.Info("should appear")
	if buf.Len() == 0 {
		t.Error("info message should appear at info level")
	}
}

func TestWithLoggerAndFromContext(t *testing.T) {
	ctx := context.Background()
	logger := log.Default()

	ctx = WithLogger(ctx, logger)
	retrieved := FromContext(ctx)
	if retrieved != logger {
		t.Error("FromContext should return the same logger stored by WithLogger")
	}
}

func TestFromContextDefaultsWithoutLogger(t *testing.T) {
	logger := FromContext(context.Background())
	if logger == nil {
		t.Error("FromContext should return a default logger when none is set")
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, log.InfoLevel)

	p := StartProgress(logger)
	if p == nil {
		t.Fatal("StartProgress() returned nil")
	}

	time.Sleep(5 * time.Millisecond)
	p.Done("finished step")

	if !bytes.Contains(buf.Bytes(), []byte("finished step")) {
		t.Error("Done() output should contain the given message")
	}
}
