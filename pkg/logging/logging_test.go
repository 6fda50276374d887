package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Adirelle/mondo/pkg/logging"
	"github.com/apex/log"
)

func TestWriteEntry(t *testing.T) {
	t.Parallel()
	when := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		fields log.Fields
		want   string
	}{
		{
			log.Fields{"path": "house color", "subcommand": "add", "args": []string{"villa", "blue"}, "player": "Steve"},
			"2023-05-01T12:00:00Z [info] command.success <house color add> args=[villa blue] player=Steve\n",
		},
		{
			log.Fields{"path": "!house", "args": []string{}},
			"2023-05-01T12:00:00Z [info] command.success <!house> args=[]\n",
		},
		{
			log.Fields{"line": "house build"},
			"2023-05-01T12:00:00Z [info] command.success line=\"house build\"\n",
		},
		{
			nil,
			"2023-05-01T12:00:00Z [info] command.success\n",
		},
	}
	for _, c := range cases {
		buf := &bytes.Buffer{}
		entry := &log.Entry{Level: log.InfoLevel, Message: "command.success", Timestamp: when, Fields: c.fields}
		if err := logging.WriteEntry(buf, entry); err != nil {
			t.Fatal(err)
		}
		if buf.String() != c.want {
			t.Errorf("got %q, want %q", buf.String(), c.want)
		}
	}
}

func TestConsoleConfigJSON(t *testing.T) {
	t.Parallel()
	config := logging.NewConfig("")
	if err := json.Unmarshal([]byte(`{"console": "debug", "file": {"disabled": true}}`), config); err != nil {
		t.Fatal(err)
	}
	if log.Level(config.Console) != log.DebugLevel {
		t.Errorf("got %v", log.Level(config.Console))
	}

	handler, level, svc := config.CreateLogging()
	if handler == nil || level != log.DebugLevel || svc != nil {
		t.Errorf("got %v %v %v", handler, level, svc)
	}
}

func TestFileLogging(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	config := logging.NewConfig(dir)
	config.Console = logging.ConsoleConfig(log.FatalLevel)

	handler, level, svc := config.CreateLogging()
	if level != log.InfoLevel || svc == nil {
		t.Fatalf("got %v %v", level, svc)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- svc.Serve(ctx) }()

	logger := &log.Logger{Handler: handler, Level: level}
	logger.Debug("hidden")
	logger.WithField("label", "house").Info("command.handle")

	content := waitForContent(t, filepath.Join(dir, logging.DefaultFilename), "command.handle")
	cancel()
	if err := <-done; err != nil {
		t.Error(err)
	}

	if !strings.Contains(content, "[info] command.handle label=house") || strings.Contains(content, "hidden") {
		t.Errorf("got %q", content)
	}
}

func waitForContent(t *testing.T, path, needle string) string {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	var content []byte
	for time.Now().Before(deadline) {
		content, _ = os.ReadFile(path)
		if strings.Contains(string(content), needle) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	return string(content)
}

func TestOverflowIsReported(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	file := logging.NewFileConfig(dir)
	handler, _, svc := file.CreateLogging()

	for i := 0; i < 105; i++ {
		_ = handler.HandleLog(&log.Entry{Level: log.InfoLevel, Message: "command.handle", Timestamp: time.Now(), Fields: log.Fields{"n": i}})
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- svc.Serve(ctx) }()

	content := waitForContent(t, file.Path, "n=99\n")
	cancel()
	if err := <-done; err != nil {
		t.Error(err)
	}
	if !strings.Contains(content, "[warn] logging.dropped count=5") {
		t.Errorf("got %q", content)
	}
	if n := strings.Count(content, "command.handle"); n != 100 {
		t.Errorf("expected 100 queued entries, got %d", n)
	}
}

func TestDisabledFileHasNoHandler(t *testing.T) {
	t.Parallel()
	config := logging.NewConfig("")
	config.File.Path = ""
	handler, level, svc := config.CreateLogging()
	if handler == nil || level != log.WarnLevel || svc != nil {
		t.Errorf("got %v %v %v", handler, level, svc)
	}
}
