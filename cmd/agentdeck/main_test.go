package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/barysiuk/agentdeck/cmd/agentdeck/cmd"
	"github.com/rogpeppe/go-internal/testscript"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"agentdeck": func() {
			if err := cmd.Execute(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	})
}

func TestScript(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:                 filepath.Join("testdata", "script"),
		RequireExplicitExec: true,
		Setup: func(e *testscript.Env) error {
			// Set HOME to WORK so ~/.agentdeck/ is created inside the temp dir
			e.Vars = append(e.Vars, "HOME="+e.WorkDir)
			return nil
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			// start-fake-api starts an in-memory stand-in for the remote agents
			// API and points the CLI at it via AGENTDECK_API_URL and
			// ELEVENLABS_API_KEY. The server lives until the script ends.
			// Usage: start-fake-api
			"start-fake-api": cmdStartFakeAPI,

			// seed-remote-agent adds an agent directly to the fake API's store,
			// as if it had been created outside this project.
			// Usage: seed-remote-agent <name>
			"seed-remote-agent": cmdSeedRemoteAgent,

			// file-contains asserts that a file contains (or doesn't contain) a substring.
			// Usage: [!] file-contains <path> <substring>
			"file-contains": cmdFileContains,
		},
	})
}

const fakeAPIKey = "sk_test_agentdeck"

// fakeAPI is an in-memory agent store behind the handful of endpoints the
// CLI calls. Each script gets its own instance.
type fakeAPI struct {
	mu     sync.Mutex
	nextID int
	order  []string
	docs   map[string]map[string]any
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{docs: make(map[string]map[string]any)}
}

func (f *fakeAPI) add(doc map[string]any) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("agent_%d", f.nextID)
	f.order = append(f.order, id)
	f.docs[id] = doc
	return id
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/convai/agents/create", func(w http.ResponseWriter, r *http.Request) {
		var doc map[string]any
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		id := f.add(doc)
		_ = json.NewEncoder(w).Encode(map[string]string{"agent_id": id})
	})

	mux.HandleFunc("PATCH /v1/convai/agents/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		var doc map[string]any
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		_, ok := f.docs[id]
		if ok {
			f.docs[id] = doc
		}
		f.mu.Unlock()
		if !ok {
			http.Error(w, `{"detail": "agent not found"}`, http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"agent_id": id})
	})

	mux.HandleFunc("GET /v1/convai/agents", func(w http.ResponseWriter, r *http.Request) {
		search := r.URL.Query().Get("search")
		f.mu.Lock()
		summaries := []map[string]string{}
		for _, id := range f.order {
			name, _ := f.docs[id]["name"].(string)
			if search != "" && !strings.Contains(name, search) {
				continue
			}
			summaries = append(summaries, map[string]string{"agent_id": id, "name": name})
		}
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{"agents": summaries, "has_more": false})
	})

	mux.HandleFunc("GET /v1/convai/agents/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		f.mu.Lock()
		doc, ok := f.docs[id]
		f.mu.Unlock()
		if !ok {
			http.Error(w, `{"detail": "agent not found"}`, http.StatusNotFound)
			return
		}
		full := map[string]any{"agent_id": id}
		for k, v := range doc {
			full[k] = v
		}
		_ = json.NewEncoder(w).Encode(full)
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("xi-api-key") != fakeAPIKey {
			http.Error(w, `{"detail": "invalid api key"}`, http.StatusUnauthorized)
			return
		}
		mux.ServeHTTP(w, r)
	})
}

var (
	fakeAPIsMu sync.Mutex
	fakeAPIs   = make(map[*testscript.TestScript]*fakeAPI)
)

func cmdStartFakeAPI(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("start-fake-api does not support negation")
	}
	if len(args) != 0 {
		ts.Fatalf("usage: start-fake-api")
	}

	api := newFakeAPI()
	srv := httptest.NewServer(api.handler())

	fakeAPIsMu.Lock()
	fakeAPIs[ts] = api
	fakeAPIsMu.Unlock()

	ts.Defer(func() {
		srv.Close()
		fakeAPIsMu.Lock()
		delete(fakeAPIs, ts)
		fakeAPIsMu.Unlock()
	})

	ts.Setenv("AGENTDECK_API_URL", srv.URL)
	ts.Setenv("ELEVENLABS_API_KEY", fakeAPIKey)
}

func cmdSeedRemoteAgent(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("seed-remote-agent does not support negation")
	}
	if len(args) != 1 {
		ts.Fatalf("usage: seed-remote-agent <name>")
	}

	fakeAPIsMu.Lock()
	api := fakeAPIs[ts]
	fakeAPIsMu.Unlock()
	if api == nil {
		ts.Fatalf("seed-remote-agent: run start-fake-api first")
	}

	api.add(map[string]any{
		"name":                args[0],
		"conversation_config": map[string]any{"agent": map[string]any{"first_message": "Hello"}},
	})
}

// cmdFileContains checks if a file contains a substring.
func cmdFileContains(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) != 2 {
		ts.Fatalf("usage: file-contains <path> <substring>")
	}
	path := ts.MkAbs(args[0])
	substr := args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		ts.Fatalf("reading %s: %v", args[0], err)
	}

	contains := strings.Contains(string(data), substr)
	if neg {
		if contains {
			ts.Fatalf("file %s contains %q (expected not to)", args[0], substr)
		}
	} else {
		if !contains {
			ts.Fatalf("file %s does not contain %q\nContent:\n%s", args[0], substr, string(data))
		}
	}
}
