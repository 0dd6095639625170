// Package testkit runs JSON-scenario API tests against an http.Handler.
//
// Each scenario is a JSON file describing one request and what must come
// back:
//
//	testdata/
//	  01_place_order.json        ← scenario
//	  01_place_order_req.json    ← request body
//	  01_place_order_res.json    ← expected response body (subset match)
//
// Scenarios in a directory run in file-name order against the same handler,
// so later files may depend on state created by earlier ones.
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scenario describes a single REST API test case loaded from a JSON file.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	RequestMethod   string            `json:"requestMethod"`
	RequestURL      string            `json:"requestUrl"`
	RequestFileName string            `json:"requestFileName"` // relative to the scenario file
	Headers         map[string]string `json:"headers"`

	ResponseFileName string `json:"responseFileName"`
	ExpectedCode     int    `json:"expectedCode"`

	dir string
}

// LoadScenario reads and validates a scenario from a JSON file.
func LoadScenario(path string) (*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}

	s.dir = filepath.Dir(abs)
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	return nil
}

// RequestBodyPath returns the absolute path to the request body file, or ""
// when none is set.
func (s *Scenario) RequestBodyPath() string {
	return s.resolve(s.RequestFileName)
}

// ResponseBodyPath returns the absolute path to the expected response file,
// or "" when none is set.
func (s *Scenario) ResponseBodyPath() string {
	return s.resolve(s.ResponseFileName)
}

func (s *Scenario) resolve(name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

// scenarioFiles lists the scenario files in dir in name order. Request and
// response bodies (*_req.json, *_res.json) are skipped.
func scenarioFiles(dir string) ([]string, error) {
	all, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	var out []string
	for _, p := range all {
		base := filepath.Base(p)
		if strings.HasSuffix(base, "_req.json") || strings.HasSuffix(base, "_res.json") {
			continue
		}
		out = append(out, p)
	}
	sort.Strings(out)
	if len(out) == 0 {
		return nil, fmt.Errorf("testkit: no scenario files found in %q", dir)
	}
	return out, nil
}
