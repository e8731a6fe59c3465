// Package service ties the interpretation engine to the record store.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/japaniel/visionary/pkg/db"
	"github.com/japaniel/visionary/pkg/symbols"
	"github.com/japaniel/visionary/pkg/vision"
)

var (
	// ErrInvalidSubmission wraps request validation failures.
	ErrInvalidSubmission = errors.New("invalid submission")
	// ErrPersistence wraps storage failures after the interpretation was
	// computed. The Submission returned alongside it is still usable.
	ErrPersistence = errors.New("failed to persist vision")
)

// SubmitRequest is the caller-supplied part of a vision.
type SubmitRequest struct {
	Title       string `json:"title" yaml:"title" validate:"max=100"`
	Description string `json:"description" yaml:"description" validate:"required,notblank"`
	Context     string `json:"context" yaml:"context"`
}

// Submission is the outcome of Submit.
type Submission struct {
	ID             string        `json:"id,omitempty"`
	Interpretation string        `json:"interpretation"`
	Analysis       vision.Result `json:"analysis"`
}

// Analyzer is the engine capability the service needs.
type Analyzer interface {
	AnalyzeVision(description, context string) vision.Result
}

// Store is the persistence capability the service needs. *db.Store
// implements it.
type Store interface {
	CreateVision(ctx context.Context, v *db.Vision) error
	AttachInterpretation(ctx context.Context, id, interpretation string) error
	GetVision(ctx context.Context, id string) (db.Vision, error)
	ListVisions(ctx context.Context, limit int) ([]db.Vision, error)
	ResetSymbols(ctx context.Context, entries []symbols.Entry) (int, error)
	ListSymbols(ctx context.Context) ([]symbols.Entry, error)
	CountSymbols(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

// Status reports store connectivity and the stored symbol count.
type Status struct {
	Database string `json:"database"`
	Symbols  int    `json:"symbols"`
}

const (
	StatusConnected   = "connected"
	StatusUnavailable = "unavailable"
)

type Service struct {
	analyzer Analyzer
	store    Store
	seed     []symbols.Entry
	validate *validator.Validate
	trans    ut.Translator
	logger   *zap.Logger
}

// New builds a Service. seed is the table restored by ResetSymbols.
func New(analyzer Analyzer, store Store, seed []symbols.Entry, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	validate, trans := newValidator()
	return &Service{
		analyzer: analyzer,
		store:    store,
		seed:     seed,
		validate: validate,
		trans:    trans,
		logger:   logger,
	}
}

// Interpret analyses and renders a request without touching the store.
func (s *Service) Interpret(req SubmitRequest) (Submission, error) {
	if err := s.Validate(req); err != nil {
		return Submission{}, err
	}
	res := s.analyzer.AnalyzeVision(req.Description, req.Context)
	return Submission{
		Interpretation: vision.FormatRecord(res),
		Analysis:       res,
	}, nil
}

// Submit interprets a request and stores it with its rendering. When storage
// fails the returned Submission still carries the interpretation and the
// error wraps ErrPersistence.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (Submission, error) {
	sub, err := s.Interpret(req)
	if err != nil {
		return Submission{}, err
	}

	rec := &db.Vision{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Context:     req.Context,
	}
	if err := s.store.CreateVision(ctx, rec); err != nil {
		s.logger.Error("failed to store vision", zap.Error(err))
		return sub, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	sub.ID = rec.ID

	if err := s.store.AttachInterpretation(ctx, rec.ID, sub.Interpretation); err != nil {
		s.logger.Error("failed to attach interpretation",
			zap.String("id", rec.ID), zap.Error(err))
		return sub, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.logger.Info("vision stored",
		zap.String("id", rec.ID),
		zap.Any("themes", sub.Analysis.Themes),
		zap.Bool("degraded", sub.Analysis.Degraded))
	return sub, nil
}

// Get returns a stored vision.
func (s *Service) Get(ctx context.Context, id string) (db.Vision, error) {
	return s.store.GetVision(ctx, id)
}

// Recent lists the most recently stored visions.
func (s *Service) Recent(ctx context.Context, limit int) ([]db.Vision, error) {
	return s.store.ListVisions(ctx, limit)
}

// ResetSymbols drops the stored symbol table and reloads it from entries,
// or from the seed table when entries is nil.
func (s *Service) ResetSymbols(ctx context.Context, entries []symbols.Entry) (int, error) {
	if entries == nil {
		entries = s.seed
	}
	n, err := s.store.ResetSymbols(ctx, entries)
	if err != nil {
		return 0, err
	}
	s.logger.Info("symbol table reset", zap.Int("symbols", n))
	return n, nil
}

// Symbols returns the stored symbol table, falling back to the seed table
// when the store is empty.
func (s *Service) Symbols(ctx context.Context) ([]symbols.Entry, error) {
	entries, err := s.store.ListSymbols(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return s.seed, nil
	}
	return entries, nil
}

// Status probes the store. The error is non-nil when the store is
// unreachable; the Status is filled either way.
func (s *Service) Status(ctx context.Context) (Status, error) {
	if err := s.store.Ping(ctx); err != nil {
		return Status{Database: StatusUnavailable}, err
	}
	n, err := s.store.CountSymbols(ctx)
	if err != nil {
		return Status{Database: StatusUnavailable}, err
	}
	return Status{Database: StatusConnected, Symbols: n}, nil
}
