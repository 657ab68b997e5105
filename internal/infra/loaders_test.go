package infra

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadMarkets(t *testing.T) {
	path := writeFile(t, "markets.list", `
# trading venues monitored by zabbix
CME_GLBX tv.GLBX CME_market_state
NYSE     tv.NYSE NYSE_market_state

bad-line-with-two-fields only
XETR tv.XETR XETR_market_state extra-field-ignored
`)

	venues, err := LoadMarkets(path)
	if err != nil {
		t.Fatalf("LoadMarkets failed: %v", err)
	}
	if len(venues) != 3 {
		t.Fatalf("Expected 3 venues, got %d", len(venues))
	}
	if venues[0].ID != "CME_GLBX" || venues[0].Key != "tv.GLBX" || venues[0].ItemKey != "CME_market_state" {
		t.Errorf("Unexpected first venue: %+v", venues[0])
	}
	if venues[2].ID != "XETR" {
		t.Errorf("Expected trailing fields to be tolerated, got %+v", venues[2])
	}
}

func TestLoadMarkets_MissingFile(t *testing.T) {
	if _, err := LoadMarkets(filepath.Join(t.TempDir(), "nope.list")); err == nil {
		t.Fatal("Expected error for missing markets file")
	}
}

func TestLoadAggregatedTokens(t *testing.T) {
	path := writeFile(t, "schedule_unique.csv", `schedule,count,first_seen,tv_all
09301600,2,2024-01-01,tv.NYSE; tv.XNAS@20240101
0000+0000,1,2024-01-01,tv.FX
p04000930r09301600,1,2024-01-01,tv.NYSE
,1,2024-01-01,tv.EMPTY
`)

	tokens, err := LoadAggregatedTokens(path)
	if err != nil {
		t.Fatalf("LoadAggregatedTokens failed: %v", err)
	}

	t.Run("Keys are split on semicolons", func(t *testing.T) {
		if tokens["tv.NYSE"] != "09301600" {
			t.Errorf("Expected 09301600 for tv.NYSE, got %s", tokens["tv.NYSE"])
		}
		if tokens["tv.FX"] != "0000+0000" {
			t.Errorf("Expected 0000+0000 for tv.FX, got %s", tokens["tv.FX"])
		}
	})

	t.Run("Date suffix is stripped", func(t *testing.T) {
		if tokens["tv.XNAS"] != "09301600" {
			t.Errorf("Expected date-suffixed key to be stripped, got map %v", tokens)
		}
	})

	t.Run("First token wins on duplicate keys", func(t *testing.T) {
		if tokens["tv.NYSE"] != "09301600" {
			t.Errorf("Expected the first token to win, got %s", tokens["tv.NYSE"])
		}
	})

	t.Run("Rows without a token are skipped", func(t *testing.T) {
		if _, ok := tokens["tv.EMPTY"]; ok {
			t.Error("Expected empty-token row to be skipped")
		}
	})
}

func TestLoadDefaultsTokens(t *testing.T) {
	path := writeFile(t, "defaults.schedule", `
# raw schedule definitions
tv.GLBX=(tz=CST;0=-17001615;hd=US)
tv.NYSE=(tz=ET;de=p04000930r09301600a16002000;hd=US)
tv.FX=(de=0000+0000)
other.KEY=(0=09301600)
tv.NOTOKEN=(tz=GMT;hd=US)
not-an-assignment
`)

	tokens, err := LoadDefaultsTokens(path, "tv.")
	if err != nil {
		t.Fatalf("LoadDefaultsTokens failed: %v", err)
	}

	if tokens["tv.GLBX"] != "-17001615" {
		t.Errorf("Expected -17001615 for tv.GLBX, got %s", tokens["tv.GLBX"])
	}
	if tokens["tv.NYSE"] != "p04000930r09301600a16002000" {
		t.Errorf("Unexpected token for tv.NYSE: %s", tokens["tv.NYSE"])
	}
	if tokens["tv.FX"] != "0000+0000" {
		t.Errorf("Expected 0000+0000 for tv.FX, got %s", tokens["tv.FX"])
	}
	if _, ok := tokens["other.KEY"]; ok {
		t.Error("Expected keys outside the prefix to be dropped")
	}
	if _, ok := tokens["tv.NOTOKEN"]; ok {
		t.Error("Expected definitions without a usable token to be dropped")
	}
}
