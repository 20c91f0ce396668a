package server

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/matzehuels/galaxy/pkg/core/chaos"
	"github.com/matzehuels/galaxy/pkg/core/vec"
	errs "github.com/matzehuels/galaxy/pkg/errors"
	"github.com/matzehuels/galaxy/pkg/export"
	"github.com/matzehuels/galaxy/pkg/pipeline"
)

// doneMessage ends a successful stream.
type doneMessage struct {
	Done  bool `json:"done"`
	Count int  `json:"count"`
}

// errorMessage ends a failed stream.
type errorMessage struct {
	Error     string    `json:"error"`
	Code      errs.Code `json:"code"`
	Iteration *int      `json:"iteration,omitempty"`
}

// handleStream upgrades to a WebSocket and sends one text message per point in
// iteration order, followed by a done or error message. Options come from
// the query string and are validated before the upgrade, so bad input gets a
// plain 400.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	opts, err := streamOptions(r.URL.Query())
	if err == nil {
		err = opts.ValidateForGenerate()
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket accept", "error", err)
		return
	}
	defer conn.CloseNow()

	// The client sends nothing; CloseRead cancels ctx when it goes away.
	ctx := conn.CloseRead(r.Context())

	count := 0
	err = s.runner.Stream(ctx, opts, chaos.SinkFunc(func(p chaos.Point) error {
		if err := wsjson.Write(ctx, conn, export.NewPoint(p)); err != nil {
			return err
		}
		count++
		return nil
	}))

	if err != nil {
		if ctx.Err() != nil {
			s.logger.Debug("stream aborted", "points", count, "error", err)
			return
		}
		body := newErrorBody(err)
		msg := errorMessage{Error: body.Message, Code: body.Code, Iteration: body.Iteration}
		if werr := wsjson.Write(ctx, conn, msg); werr != nil {
			s.logger.Debug("write stream error", "error", werr)
			return
		}
		conn.Close(websocket.StatusNormalClosure, "")
		return
	}

	if err := wsjson.Write(ctx, conn, doneMessage{Done: true, Count: count}); err != nil {
		s.logger.Debug("write stream done", "error", err)
		return
	}
	conn.Close(websocket.StatusNormalClosure, "")
}

// streamOptions reads options from query parameters. Absent parameters keep
// their defaults.
func streamOptions(q url.Values) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()

	ints := map[string]*int{
		"seed_count":  &opts.SeedCount,
		"point_count": &opts.PointCount,
	}
	for name, dst := range ints {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return opts, errs.New(errs.ErrCodeInvalidInput, "%s: not an integer: %q", name, v)
			}
			*dst = n
		}
	}

	floats := map[string]*float64{
		"base_seed":    &opts.BaseSeed,
		"rsq_add_var3": &opts.RsqAddVar3,
	}
	for name, dst := range floats {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return opts, errs.New(errs.ErrCodeInvalidInput, "%s: not a number: %q", name, v)
			}
			*dst = f
		}
	}

	if v := q.Get("mode"); v != "" {
		opts.Mode = v
	}
	if v := q.Get("start"); v != "" {
		start, err := vec.Parse(v)
		if err != nil {
			return opts, errs.New(errs.ErrCodeInvalidInput, "start: %v", err)
		}
		opts.Start = start.Array()
	}
	return opts, nil
}
