package batch

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/shunichi-ikebuchi/roman-calculator/pkg/numeral"
	"github.com/shunichi-ikebuchi/roman-calculator/pkg/service"
)

// Task is a problem with an optional expected answer. An expectation
// starting with "!" names an error kind instead, e.g. "!underflow".
type Task struct {
	Problem service.Problem
	Expect  string
}

// Outcome pairs a task with its result.
type Outcome struct {
	Task   Task
	Result service.Result
}

// Passed reports whether the result meets the expectation. Without one,
// any numeral passes.
func (o Outcome) Passed() bool {
	if kind, ok := strings.CutPrefix(o.Task.Expect, "!"); ok {
		return numeral.KindOf(o.Result.Err) == numeral.ErrorKind(kind)
	}
	if o.Result.Err != nil {
		return false
	}
	return o.Task.Expect == "" || o.Task.Expect == o.Result.Value
}

// Summary counts outcomes.
type Summary struct {
	Total  int `yaml:"total"`
	Passed int `yaml:"passed"`
	Failed int `yaml:"failed"`
	Errors int `yaml:"errors"`
}

// Summarize counts passed outcomes, wrong answers and unexpected errors.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		switch {
		case o.Passed():
			s.Passed++
		case o.Result.Err != nil && !strings.HasPrefix(o.Task.Expect, "!"):
			s.Errors++
		default:
			s.Failed++
		}
	}
	return s
}

// Runner evaluates tasks concurrently.
type Runner struct {
	Service *service.Service
	Workers int
	Logger  *slog.Logger
}

// Run evaluates every task and returns outcomes in task order. Calculation
// errors are reported in each outcome; the returned error is only set when
// ctx ends before all tasks ran.
func (r *Runner) Run(ctx context.Context, tasks []Task) ([]Outcome, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	workers := r.Workers
	if workers < 1 {
		workers = 1
	}

	outcomes := make([]Outcome, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	logger.Debug("batch started", "tasks", len(tasks), "workers", workers)

	for i, task := range tasks {
		i, task := i, task
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = Outcome{Task: task, Result: r.Service.Evaluate(gctx, task.Problem)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	if err := ctx.Err(); err != nil {
		return outcomes, err
	}

	logger.Debug("batch finished", "tasks", len(tasks))
	return outcomes, nil
}
