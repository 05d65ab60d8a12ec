// Package service evaluates numeral problems and keeps their side records:
// calculation history and the result cache.
package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shunichi-ikebuchi/roman-calculator/pkg/db"
	"github.com/shunichi-ikebuchi/roman-calculator/pkg/numeral"
)

// Operation names an arithmetic operation.
type Operation string

const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
)

// ParseOperation accepts an operation name or its symbol.
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add", "plus", "+":
		return OpAdd, nil
	case "subtract", "sub", "minus", "-":
		return OpSubtract, nil
	}
	return "", fmt.Errorf("unknown operation %q", s)
}

// Problem is one calculation to perform.
type Problem struct {
	Op    Operation
	Left  string
	Right string
}

func (p Problem) String() string {
	sign := "+"
	if p.Op == OpSubtract {
		sign = "-"
	}
	return fmt.Sprintf("%s %s %s", p.Left, sign, p.Right)
}

// Result is the outcome of a Problem. Exactly one of Value and Err is set.
type Result struct {
	Problem Problem
	Value   string
	Err     error
	Cached  bool
}

// Recorder stores calculation history.
type Recorder interface {
	Record(ctx context.Context, record db.CalculationRecord) (int64, error)
}

// Memo stores results of successful calculations.
type Memo interface {
	Get(op, left, right string) (string, bool, error)
	Put(op, left, right, result string) error
}

// Service evaluates problems with a shared calculator.
type Service struct {
	calc     *numeral.Calculator
	recorder Recorder
	memo     Memo
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder records every evaluation.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithMemo looks results up before calculating and stores new ones.
func WithMemo(m Memo) Option {
	return func(s *Service) { s.memo = m }
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Service. A nil calculator uses numeral defaults.
func New(calc *numeral.Calculator, opts ...Option) *Service {
	if calc == nil {
		calc = numeral.NewCalculator()
	}
	s := &Service{
		calc:   calc,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Calculator returns the calculator the service uses.
func (s *Service) Calculator() *numeral.Calculator {
	return s.calc
}

// Evaluate solves p. History and cache failures are logged, never returned.
func (s *Service) Evaluate(ctx context.Context, p Problem) Result {
	res := Result{Problem: p}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	memoOp := s.memoOp(p.Op)
	if s.memo != nil {
		value, found, err := s.memo.Get(memoOp, p.Left, p.Right)
		if err != nil {
			s.logger.Warn("cache lookup failed", "problem", p.String(), "error", err)
		} else if found {
			s.logger.Debug("cache hit", "problem", p.String(), "result", value)
			res.Value = value
			res.Cached = true
			s.record(ctx, res)
			return res
		}
	}

	switch p.Op {
	case OpAdd:
		res.Value, res.Err = s.calc.Add(p.Left, p.Right)
	case OpSubtract:
		res.Value, res.Err = s.calc.Subtract(p.Left, p.Right)
	default:
		res.Err = fmt.Errorf("unknown operation %q", p.Op)
		return res
	}

	if res.Err != nil {
		s.logger.Debug("calculation failed", "problem", p.String(), "error", res.Err)
	} else {
		s.logger.Debug("calculated", "problem", p.String(), "result", res.Value)
		if s.memo != nil {
			if err := s.memo.Put(memoOp, p.Left, p.Right, res.Value); err != nil {
				s.logger.Warn("cache store failed", "problem", p.String(), "error", err)
			}
		}
	}

	s.record(ctx, res)
	return res
}

func (s *Service) record(ctx context.Context, res Result) {
	if s.recorder == nil {
		return
	}

	record := db.CalculationRecord{
		Operation: string(res.Problem.Op),
		Left:      res.Problem.Left,
		Right:     res.Problem.Right,
		Result:    res.Value,
		ErrorKind: string(numeral.KindOf(res.Err)),
	}
	if _, err := s.recorder.Record(ctx, record); err != nil {
		s.logger.Warn("failed to record calculation", "problem", res.Problem.String(), "error", err)
	}
}

// memoOp scopes cached additions to the length limit in force, so a sum
// cached under a larger limit is not served under a smaller one.
func (s *Service) memoOp(op Operation) string {
	if op == OpAdd {
		return string(op) + ":" + strconv.Itoa(s.calc.MaxLength())
	}
	return string(op)
}
