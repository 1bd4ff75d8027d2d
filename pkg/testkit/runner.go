package testkit

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// Run executes the scenario at path against handler as a subtest.
func Run(t *testing.T, handler http.Handler, path string, vars map[string]string) {
	t.Helper()

	s, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("testkit: load scenario %q: %v", path, err)
	}

	t.Run(s.Name, func(t *testing.T) {
		runScenario(t, handler, s, vars)
	})
}

// RunDir runs every *.json scenario in dir in file name order. Files
// ending in _req.json or _res.json are body files and are skipped.
func RunDir(t *testing.T, handler http.Handler, dir string, vars map[string]string) {
	t.Helper()

	for _, path := range ScenarioFiles(t, dir) {
		s, err := LoadScenario(path)
		if err != nil {
			t.Errorf("testkit: load %q: %v", path, err)
			continue
		}
		t.Run(s.Name, func(t *testing.T) {
			runScenario(t, handler, s, vars)
		})
	}
}

// ScenarioFiles lists the scenario files of dir, sorted.
func ScenarioFiles(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		t.Fatalf("testkit: glob %q: %v", dir, err)
	}

	var out []string
	for _, p := range entries {
		if strings.HasSuffix(p, "_req.json") || strings.HasSuffix(p, "_res.json") {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		t.Fatalf("testkit: no scenario files found in %q", dir)
	}
	sort.Strings(out)
	return out
}

func runScenario(t *testing.T, handler http.Handler, s *Scenario, vars map[string]string) {
	t.Helper()

	var body string
	if p := s.RequestBodyPath(); p != "" {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("[%s] read request file %q: %v", s.Name, p, err)
		}
		body = expand(string(data), vars)
	}

	req := httptest.NewRequest(strings.ToUpper(s.RequestMethod), expand(s.RequestURL, vars), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range s.Headers {
		req.Header.Set(k, expand(v, vars))
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code, rec.Body.Bytes())

	if p := s.ResponseBodyPath(); p != "" {
		expected, err := os.ReadFile(p)
		if err != nil {
			t.Errorf("[%s] read response file %q: %v", s.Name, p, err)
			return
		}
		AssertJSONSubset(t, s, []byte(expand(string(expected), vars)), rec.Body.Bytes())
	}
}
