// Package universe holds the symbol list a scan runs over. The default is
// the NSE large-cap set; deployments can swap it via a YAML file.
package universe

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultSymbols is the built-in NSE large-cap universe.
var DefaultSymbols = []string{
	"RELIANCE", "TCS", "HDFCBANK", "INFY", "HINDUNILVR", "ICICIBANK", "KOTAKBANK",
	"SBIN", "BHARTIARTL", "ITC", "ASIANPAINT", "LT", "AXISBANK", "MARUTI", "SUNPHARMA",
	"TITAN", "ULTRACEMCO", "WIPRO", "NESTLEIND", "POWERGRID", "TATAMOTORS", "ONGC",
	"NTPC", "TECHM", "HCLTECH", "DIVISLAB", "CIPLA", "DRREDDY", "BAJFINANCE",
	"BAJAJFINSV", "COALINDIA", "IOC", "GRASIM", "JSWSTEEL", "HINDALCO", "INDUSINDBK",
	"ADANIPORTS", "BRITANNIA", "EICHERMOT", "HEROMOTOCO", "SHREECEM", "BAJAJ-AUTO",
	"TATASTEEL", "BPCL", "APOLLOHOSP", "HDFCLIFE", "SBILIFE", "ICICIPRULI",
	"PIDILITIND", "GODREJCP", "MARICO", "DABUR",
}

// KnownSectors enumerates the sector labels the fundamentals provider
// emits. Criteria naming a sector outside this set are rejected as
// invalid rather than silently matching nothing.
var KnownSectors = []string{
	"Basic Materials",
	"Communication Services",
	"Consumer Cyclical",
	"Consumer Defensive",
	"Energy",
	"Financial Services",
	"Healthcare",
	"Industrials",
	"Real Estate",
	"Technology",
	"Utilities",
}

// IsKnownSector reports whether name is a recognized sector label.
func IsKnownSector(name string) bool {
	for _, s := range KnownSectors {
		if s == name {
			return true
		}
	}
	return false
}

type universeFile struct {
	Symbols []string `yaml:"symbols"`
}

// Load reads a symbol universe from a YAML file. Duplicates are removed;
// the result keeps the file's order otherwise.
func Load(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("universe: read %s: %w", path, err)
	}
	var f universeFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("universe: parse %s: %w", path, err)
	}
	if len(f.Symbols) == 0 {
		return nil, fmt.Errorf("universe: %s lists no symbols", path)
	}
	return dedupe(f.Symbols), nil
}

func dedupe(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Sorted returns a lexically sorted copy, used where deterministic
// iteration matters more than file order.
func Sorted(symbols []string) []string {
	out := append([]string(nil), symbols...)
	sort.Strings(out)
	return out
}
