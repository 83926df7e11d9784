package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	t.Cleanup(func() {
		SetSink(os.Stderr)
		SetLevel(Notice)
	})
	logger := New("logtest")

	SetLevel(Notice)
	logger.Info("hidden message")
	logger.Noticef("shown %d", 1)
	if strings.Contains(buf.String(), "hidden message") {
		t.Error("info message logged at notice level")
	}
	if !strings.Contains(buf.String(), "shown 1") {
		t.Errorf("notice message missing from output %q", buf.String())
	}

	buf.Reset()
	SetLevel(Debug)
	logger.Debugf("voxel %d", 42)
	if !strings.Contains(buf.String(), "voxel 42") || !strings.Contains(buf.String(), "[logtest]") {
		t.Errorf("debug message missing from output %q", buf.String())
	}
}
