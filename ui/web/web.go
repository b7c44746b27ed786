// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

// Package web serves fnplot as a local web page: a text input for the expression, the chart and the
// typeset expression.
//
// Every change of the input is posted to the server, which hands it to the Coordinator and answers with
// the chart frames produced by the change and the new markup. The page applies the frames in order, so
// the chart created by the first rendering is updated in place afterwards.
//
// The server is meant for a single local user, and by default it only listens on the loopback interface.
package web

import (
	"context"
	"encoding/json"
	"html/template"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/jorgemunozl/fnplot/pkg/chart"
	"github.com/jorgemunozl/fnplot/pkg/coordinator"
	"github.com/jorgemunozl/fnplot/pkg/typeset"
	"github.com/jorgemunozl/fnplot/ui/commandline"
)

// DefaultAddr the server listens to, if none is given.
const DefaultAddr = "127.0.0.1:8080"

// MaxRequestBytes is the largest request body accepted by the expression API.
const MaxRequestBytes = 64 << 10

// ShutdownTimeout is how long ListenAndServe waits for requests in flight when its context is done.
var ShutdownTimeout = 5 * time.Second

// Server implements http.Handler with the fnplot page and its API.
type Server struct {
	coordinator *coordinator.Coordinator
	recorder    *chart.Recorder
	mux         *http.ServeMux
	startOnce   sync.Once

	// mu serializes the events, so each response has exactly the frames of its own event.
	mu   sync.Mutex
	last coordinator.Update
}

var _ http.Handler = (*Server)(nil)

// New creates a Server whose coordinator draws charts with charts and typesets with typesetter.
//
// The default expression is rendered on the first request.
func New(cfg coordinator.Config, charts chart.Renderer, typesetter typeset.Renderer) *Server {
	s := &Server{
		recorder: chart.NewRecorder(),
		mux:      http.NewServeMux(),
	}
	s.coordinator = coordinator.New(cfg, charts, s.recorder, typesetter)
	s.mux.HandleFunc("GET /{$}", s.handlePage)
	s.mux.HandleFunc("POST /api/expression", s.handleExpression)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s
}

// Coordinator used by the server.
func (s *Server) Coordinator() *coordinator.Coordinator { return s.coordinator }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) start() {
	s.startOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.last = s.coordinator.Start()
	})
}

// ExpressionRequest is the body of `POST /api/expression`.
type ExpressionRequest struct {
	Expression string `json:"expression"`
}

// ExpressionResponse is the answer of `POST /api/expression`.
type ExpressionResponse struct {
	Expression string            `json:"expression"`
	State      coordinator.State `json:"state"`

	// Frames displayed while handling the expression, in order. Empty if the chart was not touched.
	Frames []chart.Frame `json:"frames"`

	Markup string `json:"markup"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) handleExpression(w http.ResponseWriter, r *http.Request) {
	var req ExpressionRequest
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.start()

	start := time.Now()
	update, frames := s.onExpressionChanged(req.Expression)
	klog.V(1).Infof("web: expression %q %s in %s", req.Expression, update.State,
		commandline.FormatDuration(time.Since(start)))

	if frames == nil {
		frames = []chart.Frame{}
	}
	writeJSON(w, ExpressionResponse{
		Expression: update.Expression,
		State:      update.State,
		Frames:     frames,
		Markup:     update.Markup,
		Error:      update.Error,
	})
}

// onExpressionChanged handles text and returns the frames displayed while handling it.
func (s *Server) onExpressionChanged(text string) (coordinator.Update, []chart.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.recorder.Len()
	update := s.coordinator.OnExpressionChanged(text)
	s.last = update
	frames := s.recorder.Since(n)
	s.recorder.Compact()
	return update, frames
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		klog.Errorf("web: failed to write response: %+v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	s.start()
	data := s.snapshot()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		klog.Errorf("web: failed to render page: %+v", err)
	}
}

// snapshot returns the page showing the last update.
func (s *Server) snapshot() pageData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return newPageData(s.last, s.recorder.Replay())
}

type pageChart struct {
	ID   string
	HTML template.HTML
}

type pageData struct {
	Expression string
	Markup     template.HTML
	Error      string
	Charts     []pageChart
	Scripts    []template.JS
}

// newPageData builds the page showing the last update, with the charts drawn by frames.
func newPageData(update coordinator.Update, frames []chart.Frame) pageData {
	data := pageData{
		Expression: update.Expression,
		Markup:     template.HTML(update.Markup),
		Error:      update.Error,
	}
	for _, frame := range frames {
		if frame.Kind == chart.KindScript {
			data.Scripts = append(data.Scripts, template.JS(frame.Content))
			continue
		}
		data.Charts = append(data.Charts, pageChart{ID: frame.ChartID, HTML: template.HTML(frame.HTML())})
	}
	return data
}

// ListenAndServe listens on addr (DefaultAddr if empty) and serves until ctx is done, when the server is
// shut down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	if !isLoopback(addr) {
		klog.Warningf("web: listening on %q, fnplot is meant for a single local user", addr)
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %q", addr)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is done. The listener is closed when it returns.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	klog.Infof("fnplot available at http://%s/", listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		return errors.Wrap(err, "web server failed")
	case <-ctx.Done():
	}
	klog.Infof("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "failed to shut down web server")
	}
	return nil
}

func isLoopback(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
