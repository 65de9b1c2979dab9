package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/pagelist/internal/config"
	"github.com/gravitrone/pagelist/internal/list"
)

func newTestRoot(t *testing.T) (*cobra.Command, *Options, *bytes.Buffer) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvAPIKey, "")

	opts := &Options{}
	root := Root(opts)
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	return root, opts, out
}

func run(root *cobra.Command, args ...string) error {
	root.SetArgs(args)
	return root.Execute()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// itemServer serves total numbered items page by page and records the query strings.
type itemServer struct {
	mu      sync.Mutex
	queries []map[string]string
	auth    string
}

func (s *itemServer) start(t *testing.T, total int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/health" {
			_, _ = w.Write([]byte(`{"status":"ok"}`))
			return
		}
		q := r.URL.Query()
		s.mu.Lock()
		s.auth = r.Header.Get("Authorization")
		s.queries = append(s.queries, map[string]string{
			"page_number": q.Get("page_number"),
			"page_size":   q.Get("page_size"),
			"search_text": q.Get("search_text"),
		})
		s.mu.Unlock()

		page, _ := strconv.Atoi(q.Get("page_number"))
		size, _ := strconv.Atoi(q.Get("page_size"))
		search := q.Get("search_text")
		var matched []map[string]any
		for i := 0; i < total; i++ {
			caption := fmt.Sprintf("Item %d", i)
			if search != "" && !strings.Contains(caption, search) {
				continue
			}
			matched = append(matched, map[string]any{"key": strconv.Itoa(i), "caption": caption})
		}
		start := (page - 1) * size
		end := start + size
		if start > len(matched) {
			start = len(matched)
		}
		if end > len(matched) {
			end = len(matched)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": matched[start:end]})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestDumpStaticDataSorted(t *testing.T) {
	root, _, out := newTestRoot(t)
	data := writeFile(t, "fruit.yaml", `items:
  - key: c
    caption: cherry
  - key: a
    caption: Apple
  - key: b
    caption: banana
`)

	require.NoError(t, run(root, "dump", "--data", data, "--sort-on", "caption", "--sort-dir", "asc"))
	assert.Equal(t, []string{"a\tApple", "b\tbanana", "c\tcherry"}, lines(out.String()))
}

func TestDumpStaticDataFiltersByQuery(t *testing.T) {
	root, _, out := newTestRoot(t)
	data := writeFile(t, "fruit.json", `{"items":[{"key":"a","caption":"Apple"},{"key":"b","caption":"Banana"}]}`)

	require.NoError(t, run(root, "dump", "--data", data, "--query", "NAN"))
	assert.Equal(t, []string{"b\tBanana"}, lines(out.String()))
}

func TestDumpWalksRemotePages(t *testing.T) {
	root, _, out := newTestRoot(t)
	t.Setenv(EnvAPIKey, "pl_testkey")
	backend := &itemServer{}
	srv := backend.start(t, 7)

	require.NoError(t, run(root, "dump", "--url", srv.URL, "--page-size", "3"))
	assert.Len(t, lines(out.String()), 7)
	assert.Equal(t, "Bearer pl_testkey", backend.auth)

	require.Len(t, backend.queries, 3)
	for i, q := range backend.queries {
		assert.Equal(t, strconv.Itoa(i+1), q["page_number"])
		assert.Equal(t, "3", q["page_size"])
	}
}

func TestDumpStopsAtMaxPages(t *testing.T) {
	root, _, out := newTestRoot(t)
	backend := &itemServer{}
	srv := backend.start(t, 50)

	require.NoError(t, run(root, "dump", "--url", srv.URL, "--page-size", "5", "--max-pages", "2"))
	assert.Len(t, lines(out.String()), 10)
	assert.Len(t, backend.queries, 2)
}

func TestDumpServerSearchSendsQuery(t *testing.T) {
	root, _, out := newTestRoot(t)
	backend := &itemServer{}
	srv := backend.start(t, 12)

	require.NoError(t, run(root, "dump", "--url", srv.URL, "--server-search", "--query", "1"))
	require.Len(t, backend.queries, 1)
	assert.Equal(t, "1", backend.queries[0]["search_text"])
	// Item 1, Item 10, Item 11
	assert.Len(t, lines(out.String()), 3)
}

func TestDumpReportsLoadFailure(t *testing.T) {
	root, _, _ := newTestRoot(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"bad_request","message":"no such list"}}`))
	}))
	t.Cleanup(srv.Close)

	err := run(root, "dump", "--url", srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load page 1")
	assert.Contains(t, err.Error(), "no such list")
}

func TestConfigInitShowPath(t *testing.T) {
	root, _, out := newTestRoot(t)
	path := filepath.Join(t.TempDir(), "cfg", "config")

	require.NoError(t, run(root, "config", "init", "--config", path))
	assert.Contains(t, out.String(), "config saved to "+path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	err = run(root, "config", "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	require.NoError(t, run(root, "config", "init", "--config", path, "--force"))

	out.Reset()
	require.NoError(t, run(root, "config", "show", "--config", path))
	assert.Contains(t, out.String(), "page_size: 20")
	assert.Contains(t, out.String(), "search_type: contains")

	out.Reset()
	require.NoError(t, run(root, "config", "path", "--config", path))
	assert.Equal(t, path+"\n", out.String())
}

func TestConfigShowMasksKeyAndChecksAPI(t *testing.T) {
	root, _, out := newTestRoot(t)
	t.Setenv(EnvAPIKey, "pl_secretkey")
	srv := (&itemServer{}).start(t, 0)

	require.NoError(t, run(root, "config", "show", "--url", srv.URL, "--check"))
	assert.Contains(t, out.String(), "api_key: pl_sec...")
	assert.NotContains(t, out.String(), "pl_secretkey")
	assert.Contains(t, out.String(), "api: ok")
}

func TestConfigShowCheckSkipsStaticData(t *testing.T) {
	root, _, out := newTestRoot(t)
	data := writeFile(t, "items.toml", "[[items]]\nkey = \"a\"\n")

	require.NoError(t, run(root, "config", "show", "--data", data, "--check"))
	assert.Contains(t, out.String(), "api: not used")
}

func TestOpenAppliesOnlyChangedFlags(t *testing.T) {
	root, opts, _ := newTestRoot(t)
	path := filepath.Join(t.TempDir(), "config")
	cfg := config.Default()
	cfg.List.PageSize = 5
	cfg.List.SortOn = "caption"
	cfg.List.SortDirection = "desc"
	cfg.Endpoint = "/rows"
	require.NoError(t, cfg.SaveTo(path))

	var s *Session
	root.RunE = func(c *cobra.Command, _ []string) error {
		var err error
		s, err = opts.Open(c)
		return err
	}
	require.NoError(t, run(root, "--config", path, "--page-size", "7", "--single"))
	t.Cleanup(func() { _ = s.Close() })

	assert.Equal(t, 7, s.List.PageSize)
	assert.True(t, s.List.SingleSelect)
	assert.Equal(t, list.SortSpec{On: "caption", Direction: list.Descending}, list.SortSpec{On: s.List.SortOn, Direction: s.List.SortDirection})
	assert.NotNil(t, s.List.Fetcher)
	assert.NotNil(t, s.Client)
	assert.Equal(t, "/rows", s.Title())
	assert.NotNil(t, s.List.Logger)
}

func TestOpenPrefersDataFile(t *testing.T) {
	root, opts, _ := newTestRoot(t)
	data := writeFile(t, "items.yml", "items:\n  - key: a\n")

	var s *Session
	root.RunE = func(c *cobra.Command, _ []string) error {
		var err error
		s, err = opts.Open(c)
		return err
	}
	require.NoError(t, run(root, "--data", data, "--url", "http://127.0.0.1:1"))
	t.Cleanup(func() { _ = s.Close() })

	assert.Nil(t, s.Client)
	assert.Nil(t, s.List.Fetcher)
	assert.Len(t, s.List.Data, 1)
	assert.Equal(t, "items.yml", s.Title())
	assert.True(t, s.Controller().Static())
}

func TestOpenRejectsBadDataFile(t *testing.T) {
	root, _, _ := newTestRoot(t)
	data := writeFile(t, "items.csv", "a,b\n")

	err := run(root, "dump", "--data", data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported data format")
}

func TestOpenWritesLogFile(t *testing.T) {
	root, _, _ := newTestRoot(t)
	data := writeFile(t, "items.yaml", "items:\n  - key: a\n")
	logPath := filepath.Join(t.TempDir(), "logs", "pagelist.log")

	require.NoError(t, run(root, "dump", "--data", data, "--log-file", logPath, "--log-level", "debug"))
	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "static data loaded")
	assert.Contains(t, string(content), "dump finished")
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "", maskKey(""))
	assert.Equal(t, "***", maskKey("short"))
	assert.Equal(t, "pl_abc...", maskKey("pl_abcdef"))
}
