package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// RouteLimit allows Limit requests per client within Window.
type RouteLimit struct {
	Limit  int
	Window time.Duration
}

// DefaultRateLimitRules are the limits applied when no rules file overrides them.
func DefaultRateLimitRules() map[string]RouteLimit {
	return map[string]RouteLimit{
		"analyze": {Limit: 5, Window: time.Minute},
		"search":  {Limit: 20, Window: time.Minute},
	}
}

type rateLimitFile struct {
	Routes map[string]struct {
		Limit  int    `yaml:"limit"`
		Window string `yaml:"window"`
	} `yaml:"routes"`
}

// LoadRateLimitRules returns the default rules merged with the routes found in
// the YAML file at path. An empty path returns the defaults.
//
//	routes:
//	  search:
//	    limit: 30
//	    window: 1m
func LoadRateLimitRules(path string) (map[string]RouteLimit, error) {
	rules := DefaultRateLimitRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return mergeRateLimitRules(rules, data)
}

func mergeRateLimitRules(rules map[string]RouteLimit, data []byte) (map[string]RouteLimit, error) {
	var file rateLimitFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid rate limit file: %w", err)
	}

	for route, r := range file.Routes {
		rule := RouteLimit{Limit: r.Limit, Window: time.Minute}
		if r.Window != "" {
			d, err := time.ParseDuration(r.Window)
			if err != nil {
				return nil, fmt.Errorf("invalid window for route %q: %w", route, err)
			}
			rule.Window = d
		}
		rules[route] = rule
	}
	return rules, nil
}
