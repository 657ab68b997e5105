package infra

import (
	"bufio"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Juskocode/QDSMarketTool/internal/domain"
	"github.com/Juskocode/QDSMarketTool/internal/schedule"
)

// LoadMarkets reads the venue allowlist. Each line: "<id> <key> <itemKey>".
// Blank lines and '#' comments are ignored; short lines are logged and
// skipped so one bad entry never takes down the run.
func LoadMarkets(path string) ([]domain.VenueConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []domain.VenueConfig
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 3 {
			slog.Warn("bad markets line, skipping", slog.String("line", line))
			continue
		}
		out = append(out, domain.VenueConfig{ID: parts[0], Key: parts[1], ItemKey: parts[2]})
	}
	return out, sc.Err()
}

// LoadAggregatedTokens reads the aggregated schedule dataset. The file is a
// CSV with a header row; column 0 holds the schedule token and column 3 a
// ';'-separated list of venue keys, each optionally suffixed with "@date".
// The date suffix is stripped and the first token seen for a key wins.
func LoadAggregatedTokens(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // rows may carry trailing columns

	tokens := make(map[string]string)
	header := true
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header {
			header = false
			continue
		}
		if len(record) < 4 {
			continue
		}
		token := strings.TrimSpace(record[0])
		keys := strings.TrimSpace(record[3])
		if token == "" || keys == "" {
			continue
		}
		for _, raw := range strings.Split(keys, ";") {
			key := strings.TrimSpace(raw)
			if key == "" {
				continue
			}
			if at := strings.IndexByte(key, '@'); at > 0 {
				key = key[:at]
			}
			if _, ok := tokens[key]; !ok {
				tokens[key] = token
			}
		}
	}
	slog.Info("loaded aggregated schedule tokens", slog.Int("keys", len(tokens)))
	return tokens, nil
}

// LoadDefaultsTokens reads raw schedule definitions ("key=<definition>"
// lines, '#' comments ignored), keeps only keys with the given prefix and
// mines each right-hand side for a usable token. Definitions yielding no
// token are dropped silently; the first token seen for a key wins.
func LoadDefaultsTokens(path, keyPrefix string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tokens := make(map[string]string)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, rhs, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" || !strings.HasPrefix(key, keyPrefix) {
			continue
		}
		token, ok := schedule.ExtractToken(rhs)
		if !ok {
			continue
		}
		if _, exists := tokens[key]; !exists {
			tokens[key] = token
		}
	}
	if len(tokens) > 0 {
		slog.Info("loaded defaults schedule tokens", slog.Int("keys", len(tokens)))
	}
	return tokens, sc.Err()
}
