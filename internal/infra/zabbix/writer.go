// Package zabbix formats and writes zabbix_sender input files:
// one "<host> <itemKey> <value>" line per monitored item, fed to
// zabbix_sender -z <server> -i <file>.
package zabbix

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Writer produces the sender input file and the per-minute vector files
// that live alongside it.
type Writer struct {
	path string // sender input file
	host string // host column of every line
}

// NewWriter creates a writer targeting the given sender input path.
func NewWriter(path, host string) *Writer {
	return &Writer{path: path, host: host}
}

// Line formats a single sender input line.
func (w *Writer) Line(itemKey string, open bool) string {
	v := 0
	if open {
		v = 1
	}
	return fmt.Sprintf("%s %s %d", w.host, itemKey, v)
}

// WriteSenderInput writes the sender input file. The write is idempotent:
// the file is rewritten on every run regardless of state changes.
func (w *Writer) WriteSenderInput(lines []string) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	data := strings.Join(lines, "\n") + "\n"
	return os.WriteFile(w.path, []byte(data), 0644)
}

// PerMinutePath returns the per-minute vector file path for a venue and a
// UTC day: "<base>_<venueID>_<yyyymmdd>.txt" next to the sender input file.
func (w *Writer) PerMinutePath(venueID string, day time.Time) string {
	dir := filepath.Dir(w.path)
	base := filepath.Base(w.path)
	if dot := strings.LastIndexByte(base, '.'); dot > 0 {
		base = base[:dot]
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%s_%s.txt", base, venueID, day.UTC().Format("20060102")))
}

// WritePerMinute writes the per-minute vector file for one venue and one UTC
// day. states must hold one entry per minute from 00:00 to 23:59; each line
// is "HH:MM:SS <epochSeconds> <0|1>".
func (w *Writer) WritePerMinute(venueID string, day time.Time, states []bool) (string, error) {
	path := w.PerMinutePath(venueID, day)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	d := day.UTC()
	midnight := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)

	var b strings.Builder
	for i, open := range states {
		t := midnight.Add(time.Duration(i) * time.Minute)
		v := 0
		if open {
			v = 1
		}
		fmt.Fprintf(&b, "%s %d %d\n", t.Format("15:04:05"), t.Unix(), v)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", err
	}
	return path, nil
}
