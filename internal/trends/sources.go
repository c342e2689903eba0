package trends

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SourcesConfig is the YAML registry of trend sources:
//
// sources:
//   - name: google-trends
//     type: rss
//     url: https://trends.google.co.kr/trending/rss?geo=KR
type SourcesConfig struct {
	Sources []SourceEntry `yaml:"sources"`
}

type SourceEntry struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	URL     string `yaml:"url"`
	Limit   int    `yaml:"limit"`   // max candidates taken from this source (0 = default)
	Timeout int    `yaml:"timeout"` // per-source timeout in seconds (0 = default)
}

const defaultSourceLimit = 20

// LoadSources reads the source registry and builds the adapter list in file
// order. That order is also the merge order of FetchAll.
func LoadSources(path string, defaultTimeout time.Duration) ([]Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg SourcesConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}

	var sources []Source
	for _, entry := range cfg.Sources {
		src, err := buildSource(entry, defaultTimeout)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", entry.Name, err)
		}
		sources = append(sources, src)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no sources configured in %s", path)
	}
	return sources, nil
}

func buildSource(entry SourceEntry, defaultTimeout time.Duration) (Source, error) {
	if entry.Name == "" || entry.URL == "" {
		return nil, fmt.Errorf("name and url are required")
	}

	timeout := defaultTimeout
	if entry.Timeout > 0 {
		timeout = time.Duration(entry.Timeout) * time.Second
	}
	limit := entry.Limit
	if limit <= 0 {
		limit = defaultSourceLimit
	}
	client := &http.Client{Timeout: timeout}

	switch entry.Type {
	case "rss":
		return NewRSSSource(entry.Name, entry.URL, limit, timeout), nil
	case "signal":
		return NewSignalSource(entry.Name, entry.URL, limit, client), nil
	case "nate":
		return NewNateSource(entry.Name, entry.URL, limit, client), nil
	case "zum":
		return NewZumSource(entry.Name, entry.URL, limit, client), nil
	default:
		return nil, fmt.Errorf("unknown source type %q", entry.Type)
	}
}
