package testkit

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoadScenarioDefaultsAndValidation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.json", `{"name":"ok","requestUrl":"/","expectedCode":200,"requestFileName":"ok_req.json"}`)
	writeFile(t, dir, "bad.json", `{"name":"bad","expectedCode":200}`)

	s, err := LoadScenario(filepath.Join(dir, "ok.json"))
	require.NoError(t, err)
	assert.Equal(t, "GET", s.RequestMethod)
	assert.Equal(t, filepath.Join(dir, "ok_req.json"), s.RequestBodyPath())
	assert.Empty(t, s.ResponseBodyPath())

	_, err = LoadScenario(filepath.Join(dir, "bad.json"))
	assert.ErrorContains(t, err, "requestUrl is required")
}

func TestScenarioFilesSkipsBodiesAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"02_b.json", "01_a.json", "01_a_req.json", "01_a_res.json"} {
		writeFile(t, dir, name, `{}`)
	}

	files, err := scenarioFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "01_a.json", filepath.Base(files[0]))
	assert.Equal(t, "02_b.json", filepath.Base(files[1]))
}

func TestDiffJSONTreatsExpectedAsSubset(t *testing.T) {
	exp := map[string]any{"total": 25.0, "items": []any{map[string]any{"quantity": 5.0}}}
	act := map[string]any{"order_id": 1.0, "total": 25.0, "items": []any{map[string]any{"quantity": 5.0, "line_total": 25.0}}}
	assert.Empty(t, DiffJSON("", exp, act))

	act["total"] = 24.0
	diffs := DiffJSON("", exp, act)
	require.Len(t, diffs, 1)
	assert.Contains(t, diffs[0], "total")
}

func TestRunDirAgainstHandler(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "01_echo.json", `{"name":"echo","requestMethod":"POST","requestUrl":"/echo","requestFileName":"01_echo_req.json","responseFileName":"01_echo_res.json","expectedCode":200}`)
	writeFile(t, dir, "01_echo_req.json", `{"message":"hello"}`)
	writeFile(t, dir, "01_echo_res.json", `{"message":"hello"}`)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"hello","extra":true}`))
	})

	RunDir(t, handler, dir)
}
