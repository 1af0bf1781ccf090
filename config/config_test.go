package config

import (
	"os"
	"os/exec"
	"strings"
	"testing"
)

// TestLoadConfig_Defaults verifies that defaults are loaded and the ticker
// universe is parsed.
func TestLoadConfig_Defaults(t *testing.T) {
	// Clear relevant env vars to ensure defaults are used
	for _, k := range []string{
		"SERVER_PORT", "SQLITE_PATH", "SNAPSHOT_PATH",
		"MARKET_API_KEY", "MARKET_BASE_URL", "MARKET_TIMEOUT_SECONDS",
		"TICKERS", "REFRESH_INTERVAL_MINUTES", "REFRESH_ENABLED", "REFRESH_PARALLEL",
	} {
		_ = os.Unsetenv(k)
	}

	LoadConfig()

	if AppConfig.Server.Port != "8080" {
		t.Fatalf("expected default SERVER_PORT=8080, got %q", AppConfig.Server.Port)
	}
	if AppConfig.Store.Path != "./data/stocks.db" || AppConfig.Store.SnapshotPath != "./stocks.db" {
		t.Fatalf("unexpected store defaults: %+v", AppConfig.Store)
	}
	if AppConfig.Market.BaseURL != "https://www.alphavantage.co" || AppConfig.Market.TimeoutSeconds != 10 {
		t.Fatalf("unexpected market defaults: %+v", AppConfig.Market)
	}
	if !AppConfig.Refresh.Enabled || AppConfig.Refresh.IntervalMinutes != 60 || AppConfig.Refresh.Parallel != 4 {
		t.Fatalf("unexpected refresh defaults: %+v", AppConfig.Refresh)
	}
	if len(AppConfig.Refresh.Tickers) != 22 {
		t.Fatalf("expected 22 default tickers, got %d", len(AppConfig.Refresh.Tickers))
	}
	for _, want := range []string{"SPY", "NVDA", "PG"} {
		found := false
		for _, tk := range AppConfig.Refresh.Tickers {
			if tk == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("default universe missing %s: %v", want, AppConfig.Refresh.Tickers)
		}
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("TICKERS", " aapl, msft ,,spy ")
	t.Setenv("MARKET_BASE_URL", "http://localhost:9090/")

	LoadConfig()

	got := AppConfig.Refresh.Tickers
	want := []string{"AAPL", "MSFT", "SPY"}
	if len(got) != len(want) {
		t.Fatalf("tickers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tickers = %v, want %v", got, want)
		}
	}
	// Trailing slash must be stripped so URL building stays simple.
	if AppConfig.Market.BaseURL != "http://localhost:9090" {
		t.Fatalf("base url = %q", AppConfig.Market.BaseURL)
	}
}

func TestParseTickers(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{",,,", 0},
		{"SPY", 1},
		{"spy,qqq", 2},
		{" a , b , c ", 3},
	}
	for _, tc := range cases {
		if got := parseTickers(tc.in); len(got) != tc.want {
			t.Fatalf("parseTickers(%q) = %v, want %d entries", tc.in, got, tc.want)
		}
	}
}

// TestValidateConfig_Fatal uses a subprocess to assert that validateConfig
// triggers a fatal exit when required fields are missing.
func TestValidateConfig_Fatal(t *testing.T) {
	if os.Getenv("CONFIG_FATAL_SUBPROCESS") == "1" {
		LoadConfig()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run", "TestValidateConfig_Fatal")
	cmd.Env = append(os.Environ(),
		"CONFIG_FATAL_SUBPROCESS=1",
		"TICKERS=,", // parses to an empty universe
	)
	out, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("expected subprocess to exit nonzero, output: %s", out)
	}
	if !strings.Contains(string(out), "TICKERS") {
		t.Fatalf("expected TICKERS in fatal output, got: %s", out)
	}
}
