package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/casegen"
	"github.com/aretw0/casegen/internal/presentation/graph"
	"github.com/aretw0/casegen/pkg/adapters/memory"
	"github.com/aretw0/casegen/pkg/domain"
	"github.com/aretw0/casegen/pkg/ports"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 4 << 20

// Engine defines the part of the casegen facade the server drives.
type Engine interface {
	Load(ctx context.Context, src ports.GraphSource) (*domain.Graph, error)
	Generate(ctx context.Context, g *domain.Graph, s domain.Strategy, opts casegen.Options) (*domain.Run, error)
	Run(ctx context.Context, id string) (*domain.Run, error)
	Runs(ctx context.Context) ([]string, error)
}

// Server serves the casegen HTTP API.
type Server struct {
	Engine   Engine
	Streams  *StreamManager
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithGatherer exposes the gathered metrics on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// MachineRequest carries an inline machine description.
type MachineRequest struct {
	Begin       string       `json:"begin,omitempty"`
	Transitions []domain.Row `json:"transitions"`
}

// GenerateRequest is the body of POST /generate.
type GenerateRequest struct {
	MachineRequest
	Strategy domain.Strategy `json:"strategy"`
	From     string          `json:"from,omitempty"`
	To       string          `json:"to,omitempty"`
	Entry    string          `json:"entry,omitempty"`
	Start    string          `json:"start,omitempty"`
	Open     bool            `json:"open,omitempty"`
	MaxDepth int             `json:"max_depth,omitempty"`
	MaxCases int             `json:"max_cases,omitempty"`
	Shuffle  int64           `json:"shuffle,omitempty"`
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{
		Engine:  engine,
		Streams: NewStreamManager(),
	}
	for _, opt := range opts {
		opt(server)
	}
	if server.Logger == nil {
		server.Logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Post("/generate", server.Generate)
	r.Post("/graph", server.Graph)
	r.Get("/runs", server.ListRuns)
	r.Get("/runs/{id}", server.GetRun)
	r.Get("/events", server.SubscribeEvents)
	r.Get("/healthz", server.GetHealth)
	r.Get("/info", server.GetInfo)
	if server.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(server.Gatherer, promhttp.HandlerOpts{}))
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Generate handles the POST /generate request.
func (s *Server) Generate(w http.ResponseWriter, r *http.Request) {
	var body GenerateRequest
	if !s.decode(w, r, &body) {
		return
	}
	if body.Strategy == "" {
		body.Strategy = domain.StrategyPath
	}

	g, err := s.load(r.Context(), body.MachineRequest)
	if err != nil {
		s.fail(w, "Generate", err)
		return
	}

	run, err := s.Engine.Generate(r.Context(), g, body.Strategy, casegen.Options{
		Begin:    body.From,
		End:      body.To,
		Entry:    body.Entry,
		Start:    body.Start,
		Open:     body.Open,
		MaxDepth: body.MaxDepth,
		MaxCases: body.MaxCases,
		Shuffle:  body.Shuffle,
	})
	if err != nil && run == nil {
		s.fail(w, "Generate", err)
		return
	}
	if err != nil {
		// The run was generated but could not be persisted.
		s.Logger.Error("Generate: store failed", "run_id", run.ID, "error", err)
	}

	if summary, mErr := json.Marshal(summarize(run)); mErr == nil {
		s.Streams.Broadcast(run.Graph, string(summary))
	}
	s.encode(w, "Generate", run)
}

// Graph handles the POST /graph request. It answers with a Mermaid flowchart, or with
// the state table when format=dump.
func (s *Server) Graph(w http.ResponseWriter, r *http.Request) {
	var body MachineRequest
	if !s.decode(w, r, &body) {
		return
	}

	g, err := s.load(r.Context(), body)
	if err != nil {
		s.fail(w, "Graph", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if r.URL.Query().Get("format") == "dump" {
		if err := graph.Dump(w, g); err != nil {
			s.Logger.Error("Graph: dump failed", "error", err)
		}
		return
	}
	fmt.Fprint(w, graph.GenerateMermaid(g, nil))
}

// ListRuns handles the GET /runs request.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Engine.Runs(r.Context())
	if err != nil {
		s.fail(w, "ListRuns", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.encode(w, "ListRuns", ids)
}

// GetRun handles the GET /runs/{id} request.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.Engine.Run(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "GetRun", err)
		return
	}
	s.encode(w, "GetRun", run)
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.encode(w, "GetHealth", map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	strategies := make([]string, 0, len(domain.Strategies()))
	for _, st := range domain.Strategies() {
		strategies = append(strategies, string(st))
	}
	s.encode(w, "GetInfo", map[string]any{
		"app":        "casegen-http",
		"version":    strings.TrimSpace(casegen.Version),
		"strategies": strategies,
	})
}

func (s *Server) load(ctx context.Context, m MachineRequest) (*domain.Graph, error) {
	if len(m.Transitions) == 0 {
		return nil, &domain.MalformedInputError{Row: 0, Reason: "no transitions"}
	}
	return s.Engine.Load(ctx, &inlineSource{Source: memory.NewSource("", m.Transitions...), begin: m.Begin})
}

// inlineSource is a request body machine with an optional declared begin state.
type inlineSource struct {
	*memory.Source
	begin string
}

func (i *inlineSource) Begin(ctx context.Context) (string, error) {
	return i.begin, nil
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Invalid request body", "path", r.URL.Path, "error", err)
		return false
	}
	return true
}

func (s *Server) encode(w http.ResponseWriter, op string, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error(op+" response encode failed", "error", err)
	}
}

// fail maps domain errors to status codes.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	var (
		malformed    *domain.MalformedInputError
		unknown      *domain.UnknownNodeError
		unreachable  *domain.UnreachableError
		disconnected *domain.DisconnectedGraphError
		deadEnd      *domain.DeadEndError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &malformed), errors.As(err, &unknown), errors.Is(err, domain.ErrUnknownStrategy):
		status = http.StatusBadRequest
	case errors.As(err, &unreachable), errors.As(err, &disconnected), errors.As(err, &deadEnd):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrRunNotFound):
		status = http.StatusNotFound
	case errors.Is(err, casegen.ErrNoStore):
		status = http.StatusNotImplemented
	}

	if status == http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "error", err)
	} else {
		s.Logger.Debug(op+" rejected", "status", status, "error", err)
	}
	http.Error(w, fmt.Sprintf("%s error: %v", op, err), status)
}

// runSummary is the event published for every generated run.
type runSummary struct {
	ID        string          `json:"id"`
	Graph     string          `json:"graph,omitempty"`
	Strategy  domain.Strategy `json:"strategy"`
	Cases     int             `json:"cases"`
	Failures  int             `json:"failures"`
	Redundant int             `json:"redundant"`
}

func summarize(run *domain.Run) runSummary {
	return runSummary{
		ID:        run.ID,
		Graph:     run.Graph,
		Strategy:  run.Strategy,
		Cases:     len(run.Cases),
		Failures:  len(run.Failures),
		Redundant: run.Redundant,
	}
}

// StreamManager handles active SSE connections.
// Subscribers listen to one graph name, or to every graph with an empty name.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // graph name -> set of channels
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
	}
}

func (sm *StreamManager) Subscribe(topic string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[topic]; !ok {
		sm.subscribers[topic] = make(map[chan<- string]struct{})
	}
	sm.subscribers[topic][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[topic]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, topic)
			}
		}
	}
}

// Broadcast sends msg to the subscribers of graph and to those of every graph.
func (sm *StreamManager) Broadcast(graph string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	topics := []string{""}
	if graph != "" {
		topics = append(topics, graph)
	}
	for _, topic := range topics {
		for ch := range sm.subscribers[topic] {
			select {
			case ch <- msg:
			default:
				// Drop message if channel is full (slow client)
				slog.Warn("SSE: Client buffer full, dropping message", "graph", topic)
			}
		}
	}
}

// SubscribeEvents handles the GET /events request (SSE). Every generated run is
// published as a summary; the graph query parameter narrows the stream.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	topic := r.URL.Query().Get("graph")
	ch, cancel := s.Streams.Subscribe(topic)
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Debug("SSE client disconnected", "graph", topic)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: run\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
