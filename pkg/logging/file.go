package logging

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/apex/log"
	"github.com/thejerf/suture/v4"
	"gopkg.in/natefinch/lumberjack.v2"
)

type (
	// FileConfig describes the rotated log file.
	FileConfig struct {
		Disabled   bool      `json:"disabled,omitempty"`
		Level      log.Level `json:"level"`
		Path       string    `json:"path" validate:"required_without=Disabled"`
		MaxSizeMB  int       `json:"maxSizeMB" validate:"min=0"`
		MaxBackups int       `json:"maxBackups" validate:"min=0"`
		Compress   bool      `json:"compress"`
	}

	// fileHandler queues entries for Serve. Entries that do not fit in the
	// queue are counted and reported by the next written line.
	fileHandler struct {
		level   log.Level
		path    string
		writer  io.WriteCloser
		entries chan *log.Entry
		dropped atomic.Uint64
	}
)

const (
	DefaultFilename = "mondo.log"

	queueSize = 100
)

// Fields of command entries that are rendered as the command column.
var commandFields = []string{"path", "subcommand"}

var (
	_ factory        = (*FileConfig)(nil)
	_ suture.Service = (*fileHandler)(nil)
	_ log.Handler    = (*fileHandler)(nil)
)

func NewFileConfig(baseDir string) *FileConfig {
	return &FileConfig{
		Level:      log.InfoLevel,
		Path:       filepath.Join(baseDir, DefaultFilename),
		MaxSizeMB:  10,
		MaxBackups: 10,
		Compress:   true,
	}
}

func (f *FileConfig) CreateLogging() (log.Handler, log.Level, suture.Service) {
	if f.Disabled || f.Path == "" {
		return nil, log.FatalLevel, nil
	}
	writer := &lumberjack.Logger{
		Filename:   f.Path,
		MaxSize:    f.MaxSizeMB,
		MaxBackups: f.MaxBackups,
		LocalTime:  true,
		Compress:   f.Compress,
	}
	h := newFileHandler(f.Path, f.Level, writer)
	return h, f.Level, h
}

func newFileHandler(path string, level log.Level, writer io.WriteCloser) *fileHandler {
	return &fileHandler{
		level:   level,
		path:    path,
		writer:  writer,
		entries: make(chan *log.Entry, queueSize),
	}
}

func (h *fileHandler) GoString() string {
	return "File Logger"
}

func (h *fileHandler) HandleLog(entry *log.Entry) error {
	if entry.Level < h.level {
		return nil
	}
	select {
	case h.entries <- entry:
	default:
		h.dropped.Add(1)
	}
	return nil
}

func (h *fileHandler) Serve(ctx context.Context) (err error) {
	defer func() {
		cerr := h.writer.Close()
		if err == nil {
			err = cerr
		}
		if err != nil {
			stdlog.Printf("error logging to %s: %s", h.path, err)
		}
	}()
	log.WithField("path", h.path).Debug("logging.file.started")

	for {
		select {
		case entry := <-h.entries:
			if dropped := h.dropped.Swap(0); dropped > 0 {
				err = WriteEntry(h.writer, &log.Entry{
					Level:     log.WarnLevel,
					Message:   "logging.dropped",
					Timestamp: entry.Timestamp,
					Fields:    log.Fields{"count": dropped},
				})
				if err != nil {
					return
				}
			}
			if err = WriteEntry(h.writer, entry); err != nil {
				return
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// WriteEntry writes one line: timestamp, level and message, then for command
// entries the command path in brackets, then the other fields sorted by name.
// Values containing spaces are quoted.
func WriteEntry(writer io.Writer, entry *log.Entry) error {
	line := &strings.Builder{}
	fmt.Fprintf(line, "%s [%s] %s", entry.Timestamp.Format(time.RFC3339), entry.Level, entry.Message)

	fields := entry.Fields
	if command := commandColumn(fields); command != "" {
		fmt.Fprintf(line, " <%s>", command)
	}
	for _, name := range fields.Names() {
		if isCommandField(name) {
			continue
		}
		fmt.Fprintf(line, " %s=%s", name, formatValue(fields.Get(name)))
	}
	line.WriteByte('\n')

	_, err := io.WriteString(writer, line.String())
	return err
}

func commandColumn(fields log.Fields) string {
	parts := make([]string, 0, len(commandFields))
	for _, name := range commandFields {
		if value, found := fields[name]; found && value != nil {
			parts = append(parts, fmt.Sprint(value))
		}
	}
	return strings.Join(parts, " ")
}

func isCommandField(name string) bool {
	for _, field := range commandFields {
		if field == name {
			return true
		}
	}
	return false
}

func formatValue(value interface{}) string {
	text := fmt.Sprintf("%v", value)
	if strings.ContainsAny(text, " \t\n\"") {
		return fmt.Sprintf("%q", text)
	}
	return text
}
