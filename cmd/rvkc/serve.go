// Copyright 2026 The rvkc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	rvkc "github.com/fachref/rvkc"
	"github.com/fachref/rvkc/core"
	"github.com/fachref/rvkc/pica"
)

// maxBodyBytes bounds a classify request body. PICA records are a few
// kilobytes; anything larger is not a record.
const maxBodyBytes = 1 << 20

const shutdownTimeout = 5 * time.Second

type server struct {
	classifier *rvkc.Classifier
	timeout    time.Duration
	logger     *slog.Logger
}

func serveCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	classifier, cleanup, err := buildClassifier(c, c.String("db") != "")
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer cleanup()

	srv := &server{
		classifier: classifier,
		timeout:    c.Duration("timeout"),
		logger:     slog.Default(),
	}

	httpServer := &http.Server{
		Addr:    c.String("addr"),
		Handler: srv.routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		srv.logger.Info("listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return cli.Exit(fmt.Sprintf("serve: %v", err), 1)
	case <-ctx.Done():
	}

	srv.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return cli.Exit(fmt.Sprintf("shutdown: %v", err), 1)
	}
	return nil
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/classify", s.handleClassify)
	mux.HandleFunc("GET /api/node/{notation}", s.handleNode)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// handleClassify accepts either a raw PICA record or a JSON envelope
// {"pica": "..."} and responds with the extracted concepts and ranked
// suggestions.
func (s *server) handleClassify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("read body: %v", err))
		return
	}

	picaText := string(body)
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var req classifyRequest
		if err := json.Unmarshal(body, &req); err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("decode request: %v", err))
			return
		}
		picaText = req.Pica
	}

	rec, err := pica.Parse(strings.NewReader(picaText))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("parse record: %v", err))
		return
	}

	run, err := s.classifier.ClassifyRecord(ctx, rec)
	if err != nil {
		s.logger.Error("classify request failed", "error", err)
		s.writeError(w, statusFor(err), err.Error())
		return
	}

	s.writeResponse(w, http.StatusOK, runPayload(run))
}

func (s *server) handleNode(w http.ResponseWriter, r *http.Request) {
	notation := strings.TrimSpace(r.PathValue("notation"))
	if notation == "" {
		s.writeError(w, http.StatusBadRequest, "notation required")
		return
	}

	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	node, path, err := s.classifier.Lookup(ctx, notation)
	if err != nil {
		s.writeError(w, statusFor(err), err.Error())
		return
	}

	s.writeResponse(w, http.StatusOK, nodePayload(node, path))
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusFor maps classifier errors onto response codes. Anything not
// recognized is a server-side failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *server) writeResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Debug("write response", "error", err)
	}
}

func (s *server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeResponse(w, status, errorResponse{Error: msg})
}

type classifyRequest struct {
	Pica string `json:"pica"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type conceptResponse struct {
	Text       string `json:"text"`
	Kind       string `json:"kind"`
	Rank       int    `json:"rank"`
	Normalized string `json:"normalized,omitempty"`
}

type resultResponse struct {
	Notation   string            `json:"notation"`
	Path       []string          `json:"path"`
	Confidence float64           `json:"confidence"`
	Depth      int               `json:"depth"`
	Concepts   []conceptResponse `json:"concepts"`
}

type runResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	CreatedAt time.Time         `json:"created_at"`
	Concepts  []conceptResponse `json:"concepts"`
	Results   []resultResponse  `json:"results"`
}

type nodeResponse struct {
	Notation    string   `json:"notation"`
	Label       string   `json:"label"`
	Depth       int      `json:"depth"`
	HasChildren bool     `json:"has_children"`
	Path        []string `json:"path"`
}

// batchLine is one JSONL record of batch output.
type batchLine struct {
	Index int          `json:"index"`
	Run   *runResponse `json:"run,omitempty"`
	Error string       `json:"error,omitempty"`
}

func conceptsPayload(concepts []core.Concept) []conceptResponse {
	out := make([]conceptResponse, 0, len(concepts))
	for _, concept := range concepts {
		out = append(out, conceptResponse{
			Text:       concept.Text,
			Kind:       string(concept.Kind),
			Rank:       concept.Rank,
			Normalized: concept.Normalized,
		})
	}
	return out
}

func runPayload(run *core.ClassificationRun) runResponse {
	results := make([]resultResponse, 0, len(run.Results))
	for _, res := range run.Results {
		results = append(results, resultResponse{
			Notation:   res.Notation,
			Path:       res.Path,
			Confidence: res.Confidence,
			Depth:      res.Depth,
			Concepts:   conceptsPayload(res.Concepts),
		})
	}
	return runResponse{
		ID:        fmt.Sprintf("%016x", uint64(run.ID)),
		Title:     run.Title,
		CreatedAt: run.CreatedAt,
		Concepts:  conceptsPayload(run.Concepts),
		Results:   results,
	}
}

func nodePayload(node core.NotationNode, path []string) nodeResponse {
	return nodeResponse{
		Notation:    node.Notation,
		Label:       node.Label,
		Depth:       node.Depth,
		HasChildren: node.HasChildren,
		Path:        path,
	}
}
