// Package api provides HTTP handlers and the main API server logic for
// DiaVoice.
//
// It exposes the conversational assessment endpoints (text and voice turns,
// current question, prediction, preventive measures, reset) and wires the
// conversation engine to the session store and the external collaborators.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/diavoice/DiaVoice/internal/classifier"
	"github.com/diavoice/DiaVoice/internal/flow"
	"github.com/diavoice/DiaVoice/internal/notify"
	"github.com/diavoice/DiaVoice/internal/store"
	"github.com/diavoice/DiaVoice/internal/transcribe"
)

// Default server configuration constants
const (
	// DefaultAddr is the default listen address for the API server.
	DefaultAddr = ":8080"
	// DefaultReadTimeout bounds reading an entire request, including body.
	DefaultReadTimeout = 30 * time.Second
	// DefaultWriteTimeout bounds writes of the response.
	DefaultWriteTimeout = 30 * time.Second
)

// Opts holds configuration options for the API server.
type Opts struct {
	Addr string
}

// Option defines a configuration option for the API server.
type Option func(*Opts)

// WithAddr sets the listen address for the API server.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// Server bundles the conversation engine with its collaborators and owns the
// HTTP routing. The transcriber, predictor, and notifier may each be nil when
// unconfigured; the corresponding endpoints report the missing capability.
type Server struct {
	addr        string
	st          store.Store
	engine      *flow.Engine
	transcriber transcribe.Service
	predictor   classifier.Service
	notifier    notify.Service
	locks       *sessionLocks
}

// NewServer creates an API server around the given store and collaborators.
func NewServer(st store.Store, tr transcribe.Service, cl classifier.Service, nf notify.Service, opts ...Option) *Server {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	return &Server{
		addr:        cfg.Addr,
		st:          st,
		engine:      flow.NewEngine(st),
		transcriber: tr,
		predictor:   cl,
		notifier:    nf,
		locks:       newSessionLocks(),
	}
}

// Handler builds the route table. Exposed separately so tests can drive the
// server through httptest without binding a socket.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/process-text", s.processTextHandler)
	mux.HandleFunc("/api/process-voice", s.processVoiceHandler)
	mux.HandleFunc("/api/current-question", s.currentQuestionHandler)
	mux.HandleFunc("/api/predict", s.predictHandler)
	mux.HandleFunc("/api/preventive-measures", s.preventiveMeasuresHandler)
	mux.HandleFunc("/api/reset", s.resetHandler)
	mux.HandleFunc("/health", s.healthHandler)
	return mux
}

// Run starts the HTTP server and blocks until it exits.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
	}
	slog.Info("DiaVoice API running", "addr", s.addr)
	return srv.ListenAndServe()
}

// Run assembles the configured modules and starts the API server. Voice
// transcription, prediction, and SMS delivery each degrade gracefully when
// their collaborator is not configured.
func Run(storeOpts []store.Option, trOpts []transcribe.Option, clOpts []classifier.Option, nfOpts []notify.Option, apiOpts []Option) error {
	st, err := store.New(storeOpts...)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}
	defer st.Close()

	var tr transcribe.Service
	if client, err := transcribe.NewClient(trOpts...); err != nil {
		slog.Warn("Transcription not configured; voice turns disabled", "error", err)
	} else {
		tr = client
	}

	var cl classifier.Service
	if client, err := classifier.NewClient(clOpts...); err != nil {
		slog.Warn("Classifier not configured; predictions disabled", "error", err)
	} else {
		cl = client
	}

	var nf notify.Service
	if client, err := notify.NewClient(nfOpts...); err != nil {
		slog.Warn("Twilio not configured; SMS delivery disabled", "error", err)
	} else {
		nf = client
	}

	return NewServer(st, tr, cl, nf, apiOpts...).Run()
}
