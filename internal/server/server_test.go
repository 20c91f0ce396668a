package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	errs "github.com/matzehuels/galaxy/pkg/errors"
	"github.com/matzehuels/galaxy/pkg/pipeline"
	"github.com/matzehuels/galaxy/pkg/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := New(pipeline.NewRunner(nil, nil, nil), store.NewMemoryStore(), nil)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp := get(t, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body healthResponse
	decode(t, resp, &body)
	if body.Status != "ok" || body.Build.Version == "" {
		t.Errorf("body = %+v", body)
	}
}

func TestCreateGetAndPoints(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/v1/galaxies", `{"point_count": 40, "formats": ["csv"]}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	var created createResponse
	decode(t, resp, &created)
	if err := errs.ValidateRunID(created.ID); err != nil {
		t.Fatalf("id %q: %v", created.ID, err)
	}
	if created.Stats.PointCount != 40 {
		t.Errorf("stats.point_count = %d, want 40", created.Stats.PointCount)
	}
	if created.Points != nil {
		t.Error("points should only be inlined on request")
	}
	if loc := resp.Header.Get("Location"); loc != "/v1/galaxies/"+created.ID {
		t.Errorf("Location = %q", loc)
	}

	resp = get(t, ts.URL+"/v1/galaxies/"+created.ID)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, want 200", resp.StatusCode)
	}
	var run store.Run
	decode(t, resp, &run)
	if run.ID != created.ID || run.Config.PointCount != 40 {
		t.Errorf("run = %+v", run)
	}

	resp = get(t, ts.URL+"/v1/galaxies/"+created.ID+"/points.csv")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("points status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	data, _ := io.ReadAll(resp.Body)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 41 {
		t.Errorf("csv has %d lines, want header + 40", len(lines))
	}

	resp = get(t, ts.URL+"/v1/galaxies/"+created.ID+"/points.json")
	var out struct {
		RunID  string            `json:"run_id"`
		Points []json.RawMessage `json:"points"`
	}
	decode(t, resp, &out)
	if out.RunID != created.ID || len(out.Points) != 40 {
		t.Errorf("json export run_id=%q points=%d", out.RunID, len(out.Points))
	}
}

func TestCreateInline(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts.URL+"/v1/galaxies?inline=true", `{"point_count": 3, "formats": ["ply"]}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var created struct {
		Points struct {
			Points []struct {
				I int `json:"i"`
			} `json:"points"`
		} `json:"points"`
	}
	decode(t, resp, &created)
	if len(created.Points.Points) != 3 {
		t.Errorf("inline points = %d, want 3", len(created.Points.Points))
	}
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name     string
		do       func() *http.Response
		status   int
		code     errs.Code
		wantIter int
	}{
		{"bad json", func() *http.Response { return post(t, ts.URL+"/v1/galaxies", `{`) }, 400, errs.ErrCodeInvalidInput, -1},
		{"unknown field", func() *http.Response { return post(t, ts.URL+"/v1/galaxies", `{"width": 3}`) }, 400, errs.ErrCodeInvalidInput, -1},
		{"bad mode", func() *http.Response { return post(t, ts.URL+"/v1/galaxies", `{"mode": "x"}`) }, 400, errs.ErrCodeConfiguration, -1},
		{"bad format", func() *http.Response { return post(t, ts.URL+"/v1/galaxies", `{"formats": ["svg"]}`) }, 400, errs.ErrCodeInvalidFormat, -1},
		{"zero seed count", func() *http.Response { return post(t, ts.URL+"/v1/galaxies", `{"seed_count": 0}`) }, 400, errs.ErrCodeConfiguration, -1},
		{"index error", func() *http.Response {
			return post(t, ts.URL+"/v1/galaxies", `{"seed_count": 1, "point_count": 10}`)
		}, 422, errs.ErrCodeIndex, 1},
		{"bad id", func() *http.Response { return get(t, ts.URL+"/v1/galaxies/nope") }, 400, errs.ErrCodeInvalidInput, -1},
		{"missing run", func() *http.Response {
			return get(t, ts.URL+"/v1/galaxies/6f1c2a8e-6d1e-4a5b-9c7d-2e3f4a5b6c7d")
		}, 404, errs.ErrCodeNotFound, -1},
		{"bad points format", func() *http.Response {
			return get(t, ts.URL+"/v1/galaxies/6f1c2a8e-6d1e-4a5b-9c7d-2e3f4a5b6c7d/points.obj")
		}, 400, errs.ErrCodeInvalidFormat, -1},
		{"bad stream params", func() *http.Response { return get(t, ts.URL+"/v1/stream?point_count=lots") }, 400, errs.ErrCodeInvalidInput, -1},
		{"invalid stream options", func() *http.Response { return get(t, ts.URL+"/v1/stream?seed_count=-2") }, 400, errs.ErrCodeConfiguration, -1},
		{"zero stream seed count", func() *http.Response { return get(t, ts.URL+"/v1/stream?seed_count=0") }, 400, errs.ErrCodeConfiguration, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := tt.do()
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var body errorBody
			decode(t, resp, &body)
			if body.Code != tt.code {
				t.Errorf("code = %q, want %q (message %q)", body.Code, tt.code, body.Message)
			}
			if tt.wantIter >= 0 && (body.Iteration == nil || *body.Iteration != tt.wantIter) {
				t.Errorf("iteration = %v, want %d", body.Iteration, tt.wantIter)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code errs.Code
		want int
	}{
		{errs.ErrCodeInvalidInput, 400},
		{errs.ErrCodeConfiguration, 400},
		{errs.ErrCodeNotFound, 404},
		{errs.ErrCodeIndex, 422},
		{errs.ErrCodeNumericDegeneracy, 422},
		{errs.ErrCodeInternal, 500},
		{"", 500},
	}
	for _, tt := range tests {
		if got := statusFor(tt.code); got != tt.want {
			t.Errorf("statusFor(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func wsURL(ts *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + path
}

func TestStream(t *testing.T) {
	ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, wsURL(ts, "/v1/stream?point_count=5&mode=corrected&base_seed=0.5"), nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.CloseNow()

	wantSelectors := []int{0, 2, 1, 2, 1}
	for i := 0; i < 5; i++ {
		var p struct {
			I int `json:"i"`
			F int `json:"f"`
		}
		if err := wsjson.Read(ctx, conn, &p); err != nil {
			t.Fatalf("read point %d: %v", i, err)
		}
		if p.I != i || p.F != wantSelectors[i] {
			t.Errorf("point %d = %+v, want index %d selector %d", i, p, i, wantSelectors[i])
		}
	}

	var done doneMessage
	if err := wsjson.Read(ctx, conn, &done); err != nil {
		t.Fatalf("read done: %v", err)
	}
	if !done.Done || done.Count != 5 {
		t.Errorf("done = %+v, want count 5", done)
	}
}

func TestStreamIterationError(t *testing.T) {
	ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, wsURL(ts, "/v1/stream?seed_count=1&point_count=5"), nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.CloseNow()

	var first map[string]any
	if err := wsjson.Read(ctx, conn, &first); err != nil {
		t.Fatal(err)
	}
	if first["f"] != float64(3) {
		t.Errorf("literal point selector = %v, want 3", first["f"])
	}

	var msg errorMessage
	if err := wsjson.Read(ctx, conn, &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Code != errs.ErrCodeIndex || msg.Iteration == nil || *msg.Iteration != 1 {
		t.Errorf("error message = %+v, want INDEX_OUT_OF_RANGE at iteration 1", msg)
	}
}

func TestStreamOptions(t *testing.T) {
	q := map[string][]string{
		"seed_count":   {"4"},
		"point_count":  {"0"},
		"base_seed":    {"1.5"},
		"rsq_add_var3": {"0.25"},
		"mode":         {"one-based"},
		"start":        {"1,2,3"},
	}
	opts, err := streamOptions(q)
	if err != nil {
		t.Fatal(err)
	}
	if opts.SeedCount != 4 || opts.PointCount != 0 || opts.BaseSeed != 1.5 || opts.RsqAddVar3 != 0.25 ||
		opts.Mode != "one-based" || opts.Start != [3]float64{1, 2, 3} {
		t.Errorf("streamOptions() = %+v", opts)
	}

	if _, err := streamOptions(map[string][]string{"start": {"1,2"}}); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("bad start error = %v", err)
	}
}
