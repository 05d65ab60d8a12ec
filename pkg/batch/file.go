// Package batch evaluates lists of numeral problems read from YAML files.
package batch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shunichi-ikebuchi/roman-calculator/pkg/service"
)

// Entry represents one problem in a batch file.
type Entry struct {
	Op     string `yaml:"op"`
	Left   string `yaml:"left"`
	Right  string `yaml:"right"`
	Expect string `yaml:"expect,omitempty"`
}

// File represents the complete batch file.
//
//	problems:
//	  - op: add
//	    left: IV
//	    right: II
//	    expect: VI
type File struct {
	Name     string  `yaml:"name,omitempty"`
	Problems []Entry `yaml:"problems"`
}

// Load reads and parses a batch file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse parses batch YAML and checks every entry names an operation and
// two operands.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for i, e := range f.Problems {
		if _, err := service.ParseOperation(e.Op); err != nil {
			return nil, fmt.Errorf("problem %d: %w", i+1, err)
		}
		if e.Left == "" || e.Right == "" {
			return nil, fmt.Errorf("problem %d: left and right are required", i+1)
		}
	}

	return &f, nil
}

// Tasks converts entries into tasks for a Runner.
func (f *File) Tasks() []Task {
	tasks := make([]Task, 0, len(f.Problems))
	for _, e := range f.Problems {
		op, _ := service.ParseOperation(e.Op)
		tasks = append(tasks, Task{
			Problem: service.Problem{Op: op, Left: e.Left, Right: e.Right},
			Expect:  e.Expect,
		})
	}
	return tasks
}

// Report is the YAML form of a finished batch.
type Report struct {
	Name    string        `yaml:"name,omitempty"`
	Summary Summary       `yaml:"summary"`
	Results []ReportEntry `yaml:"results"`
}

// ReportEntry is the YAML form of one Outcome.
type ReportEntry struct {
	Op     string `yaml:"op"`
	Left   string `yaml:"left"`
	Right  string `yaml:"right"`
	Result string `yaml:"result,omitempty"`
	Expect string `yaml:"expect,omitempty"`
	Error  string `yaml:"error,omitempty"`
	Passed bool   `yaml:"passed"`
}

// NewReport builds a report from outcomes.
func NewReport(name string, outcomes []Outcome) Report {
	r := Report{Name: name, Summary: Summarize(outcomes)}
	for _, o := range outcomes {
		entry := ReportEntry{
			Op:     string(o.Task.Problem.Op),
			Left:   o.Task.Problem.Left,
			Right:  o.Task.Problem.Right,
			Result: o.Result.Value,
			Expect: o.Task.Expect,
			Passed: o.Passed(),
		}
		if o.Result.Err != nil {
			entry.Error = o.Result.Err.Error()
		}
		r.Results = append(r.Results, entry)
	}
	return r
}

// Marshal encodes the report as YAML.
func (r Report) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}
