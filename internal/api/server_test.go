package api

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/docsite/internal/config"
	"github.com/dgallion1/docsite/internal/pipeline"
	"github.com/dgallion1/docsite/internal/search"
	"github.com/dgallion1/docsite/internal/site"
)

const content = `# Guide

Welcome to the guide.

## Install

Run the installer with make.

## Configure

Set the ` + "`<port>`" + ` option.
`

type testEnv struct {
	srv    *Server
	orch   *pipeline.Orchestrator
	events *Broker
	cfg    config.Config
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "content.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Defaults()
	cfg.ContentPath = path
	cfg.OutDir = filepath.Join(dir, "dist")

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := search.NewEngine()
	orch := pipeline.NewOrchestrator(cfg, site.NewBuilder(cfg, log), engine, log)

	env := &testEnv{orch: orch, cfg: cfg, events: NewBroker()}
	opts = append(opts, WithLiveReload(env.events))
	env.srv = NewServer(orch, engine, log, cfg, opts...)
	orch.OnPublish(func(_ pipeline.JobSnapshot, s *site.Site) {
		env.srv.SetHeadings(s.Headings)
		env.events.Publish("reload")
	})
	orch.Start(context.Background())
	t.Cleanup(orch.Stop)

	job := pipeline.NewJob(pipeline.TriggerStartup, false)
	if err := orch.Submit(job); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	snap, err := orch.Wait(ctx, job)
	if err != nil || snap.Status != pipeline.StatusCompleted {
		t.Fatalf("initial build failed: %v %+v", err, snap.Result.Errors)
	}
	return env
}

func (e *testEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	e.srv.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	w := env.get(t, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Body.String(); got != `{"status":"ok"}` {
		t.Errorf("unexpected body %q", got)
	}
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		query     string
		state     search.State
		wantFirst string
	}{
		{"", search.StateIdle, ""},
		{"i", search.StateIdle, ""},
		{"install", search.StateResults, "install"},
		{"zzzz", search.StateNoResults, ""},
	}
	for _, tt := range tests {
		w := env.get(t, "/api/search?q="+tt.query)
		if w.Code != http.StatusOK {
			t.Fatalf("q=%q: expected 200, got %d", tt.query, w.Code)
		}
		var resp searchResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatal(err)
		}
		if resp.State != tt.state {
			t.Errorf("q=%q: expected state %q, got %q", tt.query, tt.state, resp.State)
		}
		if resp.Results == nil {
			t.Errorf("q=%q: expected empty list, got null", tt.query)
		}
		if tt.wantFirst != "" {
			if len(resp.Results) == 0 || resp.Results[0].ID != tt.wantFirst {
				t.Errorf("q=%q: expected first result %q, got %+v", tt.query, tt.wantFirst, resp.Results)
			}
		}
	}
}

func TestSearch_Highlights(t *testing.T) {
	env := newTestEnv(t)
	w := env.get(t, "/api/search?q=install")
	var resp searchResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Results) == 0 {
		t.Fatal("expected results")
	}
	if got := resp.Results[0].Title; got != "<mark>Install</mark>" {
		t.Errorf("expected highlighted title, got %q", got)
	}
	if !strings.Contains(resp.Results[0].Snippet, "<mark>install</mark>") {
		t.Errorf("expected highlighted snippet, got %q", resp.Results[0].Snippet)
	}
}

func TestSearch_EscapesSnippet(t *testing.T) {
	env := newTestEnv(t)
	w := env.get(t, "/api/search?q=port")
	var resp searchResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Results) == 0 {
		t.Fatal("expected results")
	}
	if strings.Contains(resp.Results[0].Snippet, "<port>") {
		t.Errorf("expected snippet to be escaped, got %q", resp.Results[0].Snippet)
	}
}

func TestHeadings(t *testing.T) {
	env := newTestEnv(t)
	w := env.get(t, "/api/headings")
	var resp struct {
		Headings []struct {
			Depth int    `json:"depth"`
			ID    string `json:"id"`
		} `json:"headings"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	want := []string{"guide", "install", "configure"}
	if len(resp.Headings) != len(want) {
		t.Fatalf("expected %d headings, got %d", len(want), len(resp.Headings))
	}
	for i, id := range want {
		if resp.Headings[i].ID != id {
			t.Errorf("heading %d: expected %q, got %q", i, id, resp.Headings[i].ID)
		}
	}
}

func TestBuilds_SubmitAndPoll(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/builds?force=true", nil)
	w := httptest.NewRecorder()
	env.srv.ServeHTTP(w, req)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}
	var accepted struct {
		JobID   string `json:"job_id"`
		Force   bool   `json:"force"`
		PollURL string `json:"poll_url"`
	}
	json.NewDecoder(w.Body).Decode(&accepted)
	if accepted.JobID == "" || !accepted.Force {
		t.Fatalf("unexpected response %+v", accepted)
	}
	if accepted.PollURL != "/api/builds/"+accepted.JobID {
		t.Errorf("unexpected poll url %q", accepted.PollURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := env.orch.Wait(ctx, env.orch.GetJob(accepted.JobID)); err != nil {
		t.Fatal(err)
	}

	w = env.get(t, accepted.PollURL)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var snap pipeline.JobSnapshot
	json.NewDecoder(w.Body).Decode(&snap)
	if snap.Status != pipeline.StatusCompleted {
		t.Errorf("expected status %q, got %q", pipeline.StatusCompleted, snap.Status)
	}
	if snap.Trigger != pipeline.TriggerAPI {
		t.Errorf("expected trigger %q, got %q", pipeline.TriggerAPI, snap.Trigger)
	}
}

func TestBuilds_UnknownJob(t *testing.T) {
	env := newTestEnv(t)
	w := env.get(t, "/api/builds/nope")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"error":"job not found"`) {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}

func TestBuildStats(t *testing.T) {
	env := newTestEnv(t)
	w := env.get(t, "/api/stats/builds")
	var resp struct {
		Builds     pipeline.StatsSnapshot `json:"builds"`
		QueueDepth int                    `json:"queue_depth"`
		Sections   int                    `json:"sections"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Builds.Count != 1 {
		t.Errorf("expected 1 build, got %d", resp.Builds.Count)
	}
	if resp.Sections != 3 {
		t.Errorf("expected 3 sections, got %d", resp.Sections)
	}
}

func TestStatic_InjectsLiveReload(t *testing.T) {
	env := newTestEnv(t)
	w := env.get(t, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `new EventSource("/api/events")`) {
		t.Error("expected live reload snippet in page")
	}

	w = env.get(t, "/"+site.SearchIndexName)
	if w.Code != http.StatusOK {
		t.Fatalf("expected search index to be served, got %d", w.Code)
	}
}

func TestStatic_NoLiveReloadWithoutBroker(t *testing.T) {
	env := newTestEnv(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	plain := NewServer(env.orch, search.NewEngine(), log, env.cfg)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	plain.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "EventSource") {
		t.Error("expected no live reload snippet")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/events", nil)
	w = httptest.NewRecorder()
	plain.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for events, got %d", w.Code)
	}
}

func TestEvents_ReceivesReload(t *testing.T) {
	env := newTestEnv(t)
	ts := httptest.NewServer(env.srv)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/events")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("expected event stream, got %q", ct)
	}

	lines := make(chan string, 16)
	go func() {
		sc := bufio.NewScanner(resp.Body)
		for sc.Scan() {
			lines <- sc.Text()
		}
		close(lines)
	}()

	deadline := time.After(5 * time.Second)
	for env.events.Clients() == 0 {
		select {
		case <-deadline:
			t.Fatal("client never subscribed")
		case <-time.After(10 * time.Millisecond):
		}
	}
	env.events.Publish("reload")

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				t.Fatal("stream closed before reload")
			}
			if line == "event: reload" {
				return
			}
		case <-deadline:
			t.Fatal("expected reload event")
		}
	}
}

func TestBroker_DropsForSlowClients(t *testing.T) {
	b := NewBroker()
	ch, unsubscribe := b.Subscribe()
	b.Publish("reload")
	b.Publish("reload")
	if got := <-ch; got != "reload" {
		t.Errorf("expected reload, got %q", got)
	}
	select {
	case ev := <-ch:
		t.Errorf("expected second event to be dropped, got %q", ev)
	default:
	}
	unsubscribe()
	if b.Clients() != 0 {
		t.Errorf("expected 0 clients, got %d", b.Clients())
	}
}
