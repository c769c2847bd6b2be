// Package emotion streams a voice conversation to an empathic voice API,
// logs the prosody scores per message and produces a mental-health
// assessment from the accumulated log.
package emotion

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"
)

// EmotionScore is one named emotion with its confidence.
type EmotionScore struct {
	Name  string
	Score float64
}

// TopEmotions returns the n highest-scoring emotions, ties broken by
// name for stable output.
func TopEmotions(scores map[string]float64, n int) []EmotionScore {
	out := make([]EmotionScore, 0, len(scores))
	for name, score := range scores {
		out = append(out, EmotionScore{Name: name, Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// LogEntry is one logged conversation message with its top emotions.
type LogEntry struct {
	Timestamp time.Time
	Role      string
	Message   string
	Emotions  []EmotionScore // up to 3
}

// Log appends conversation messages with their top-3 emotions to a CSV
// file. Rows are timestamp, role, message, then three emotion/score
// pairs, padded with empty fields when fewer emotions scored.
type Log struct {
	mu   sync.Mutex
	path string
}

// NewLog creates a log writing to path.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Append writes one entry to the log file.
func (l *Log) Append(entry LogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("emotion: open log: %w", err)
	}
	defer func() { _ = f.Close() }()

	record := []string{
		entry.Timestamp.UTC().Format("2006-01-02 15:04:05"),
		entry.Role,
		entry.Message,
	}
	for i := 0; i < 3; i++ {
		if i < len(entry.Emotions) {
			record = append(record, entry.Emotions[i].Name,
				strconv.FormatFloat(entry.Emotions[i].Score, 'f', -1, 64))
		} else {
			record = append(record, "", "")
		}
	}

	w := csv.NewWriter(f)
	if err := w.Write(record); err != nil {
		return fmt.Errorf("emotion: write log row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("emotion: flush log: %w", err)
	}
	return nil
}

// Load reads every parseable row from the log file. Malformed rows are
// skipped rather than failing the load.
func (l *Log) Load() ([]LogEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("emotion: open log: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var entries []LogEntry
	for {
		record, err := r.Read()
		if err != nil {
			break
		}
		if len(record) < 9 {
			continue
		}
		ts, err := time.Parse("2006-01-02 15:04:05", record[0])
		if err != nil {
			continue
		}
		entry := LogEntry{Timestamp: ts, Role: record[1], Message: record[2]}
		for i := 0; i < 3; i++ {
			name := record[3+2*i]
			if name == "" {
				continue
			}
			score, err := strconv.ParseFloat(record[4+2*i], 64)
			if err != nil {
				continue
			}
			entry.Emotions = append(entry.Emotions, EmotionScore{Name: name, Score: score})
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
