package logtail

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

const blockSize = 32 * 1024

// Read returns at most maxLines from the end of the file at path. The file is
// read backwards in blocks so cost depends on maxLines, not file size.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat log: %w", err)
	}
	return tail(file, info.Size(), maxLines)
}

func tail(r io.ReaderAt, size int64, maxLines int) ([]string, error) {
	var buf []byte
	offset := size
	for offset > 0 {
		n := int64(blockSize)
		if offset < n {
			n = offset
		}
		offset -= n
		block := make([]byte, n)
		if _, err := r.ReadAt(block, offset); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read log: %w", err)
		}
		buf = append(block, buf...)
		// One extra newline covers a trailing newline at end of file.
		if bytes.Count(buf, []byte{'\n'}) > maxLines {
			break
		}
	}

	text := strings.TrimRight(string(buf), "\n")
	if text == "" {
		return nil, nil
	}
	lines := strings.Split(text, "\n")
	if offset > 0 && len(lines) > 0 {
		// The first line may be cut mid-way by the block boundary.
		lines = lines[1:]
	}
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, nil
}

// Level is the severity recorded on a log line.
type Level string

const (
	LevelDebug   Level = "debug"
	LevelInfo    Level = "info"
	LevelWarn    Level = "warning"
	LevelError   Level = "error"
	LevelUnknown Level = ""
)

// Entry is a parsed logrus text line.
type Entry struct {
	Raw     string
	Time    string
	Level   Level
	Message string
	Fields  []Field
}

// Field is a key=value pair following the message.
type Field struct {
	Key   string
	Value string
}

var pairPattern = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_.-]*)=("(?:[^"\\]|\\.)*"|\S*)`)

// Parse splits a logrus TextFormatter line into its parts. Lines that are not
// key=value formatted come back with only Raw and Message set.
func Parse(line string) Entry {
	entry := Entry{Raw: line}
	matches := pairPattern.FindAllStringSubmatch(line, -1)
	if len(matches) == 0 {
		entry.Message = line
		return entry
	}
	for _, m := range matches {
		key, value := m[1], unquote(m[2])
		switch key {
		case "time":
			entry.Time = value
		case "level":
			entry.Level = normalizeLevel(value)
		case "msg":
			entry.Message = value
		default:
			entry.Fields = append(entry.Fields, Field{Key: key, Value: value})
		}
	}
	if entry.Level == LevelUnknown && entry.Message == "" {
		return Entry{Raw: line, Message: line}
	}
	return entry
}

func unquote(value string) string {
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		value = value[1 : len(value)-1]
		value = strings.ReplaceAll(value, `\"`, `"`)
		value = strings.ReplaceAll(value, `\\`, `\`)
	}
	return value
}

func normalizeLevel(value string) Level {
	switch strings.ToLower(value) {
	case "debug", "trace":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error", "fatal", "panic":
		return LevelError
	default:
		return LevelUnknown
	}
}
