package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gopkg.in/yaml.v3"

	"github.com/shunichi-ikebuchi/roman-calculator/pkg/service"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const sampleBatch = `
name: lesson one
problems:
  - op: add
    left: IV
    right: II
    expect: VI
  - op: "+"
    left: VII
    right: VIII
    expect: XV
  - op: subtract
    left: ID
    right: XLV
    expect: CDLIV
  - op: sub
    left: I
    right: II
    expect: "!underflow"
  - op: add
    left: X
    right: X
    expect: XXX
  - op: add
    left: M
    right: Q
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sampleBatch))
	require.NoError(t, err)

	assert.Equal(t, "lesson one", f.Name)
	require.Len(t, f.Problems, 6)

	tasks := f.Tasks()
	assert.Equal(t, service.Problem{Op: service.OpAdd, Left: "VII", Right: "VIII"}, tasks[1].Problem)
	assert.Equal(t, service.OpSubtract, tasks[3].Problem.Op)
	assert.Equal(t, "!underflow", tasks[3].Expect)
}

func TestParseRejectsBadEntries(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown op", "problems:\n  - {op: times, left: I, right: I}\n"},
		{"missing operand", "problems:\n  - {op: add, left: I}\n"},
		{"not yaml", "problems: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problems.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleBatch), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, f.Problems, 6)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	f, err := Parse([]byte(sampleBatch))
	require.NoError(t, err)

	r := &Runner{Service: service.New(nil), Workers: 3}
	outcomes, err := r.Run(context.Background(), f.Tasks())
	require.NoError(t, err)
	require.Len(t, outcomes, 6)

	// Outcomes keep input order.
	assert.Equal(t, "VI", outcomes[0].Result.Value)
	assert.Equal(t, "XV", outcomes[1].Result.Value)
	assert.Equal(t, "CDLIV", outcomes[2].Result.Value)

	assert.True(t, outcomes[0].Passed())
	assert.True(t, outcomes[3].Passed())
	assert.False(t, outcomes[4].Passed())
	assert.False(t, outcomes[5].Passed())

	assert.Equal(t, Summary{Total: 6, Passed: 4, Failed: 1, Errors: 1}, Summarize(outcomes))
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tasks := []Task{{Problem: service.Problem{Op: service.OpAdd, Left: "I", Right: "I"}}}
	r := &Runner{Service: service.New(nil), Workers: 2}

	_, err := r.Run(ctx, tasks)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunManyTasks(t *testing.T) {
	var tasks []Task
	for i := 0; i < 200; i++ {
		tasks = append(tasks, Task{
			Problem: service.Problem{Op: service.OpAdd, Left: "MCMXCIX", Right: "I"},
			Expect:  "MM",
		})
	}

	r := &Runner{Service: service.New(nil), Workers: 8}
	outcomes, err := r.Run(context.Background(), tasks)
	require.NoError(t, err)
	assert.Equal(t, Summary{Total: 200, Passed: 200}, Summarize(outcomes))
}

func TestReport(t *testing.T) {
	f, err := Parse([]byte(sampleBatch))
	require.NoError(t, err)

	outcomes, err := (&Runner{Service: service.New(nil), Workers: 2}).Run(context.Background(), f.Tasks())
	require.NoError(t, err)

	report := NewReport(f.Name, outcomes)
	data, err := report.Marshal()
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, report.Summary, decoded.Summary)
	assert.Contains(t, decoded.Results[3].Error, "underflow")
	assert.Contains(t, decoded.Results[5].Error, "invalid_symbol")

	want := []ReportEntry{
		{Op: "add", Left: "IV", Right: "II", Result: "VI", Expect: "VI", Passed: true},
		{Op: "add", Left: "VII", Right: "VIII", Result: "XV", Expect: "XV", Passed: true},
		{Op: "subtract", Left: "ID", Right: "XLV", Result: "CDLIV", Expect: "CDLIV", Passed: true},
		{Op: "subtract", Left: "I", Right: "II", Expect: "!underflow", Passed: true},
		{Op: "add", Left: "X", Right: "X", Result: "XX", Expect: "XXX"},
		{Op: "add", Left: "M", Right: "Q"},
	}
	if diff := cmp.Diff(want, decoded.Results, cmpopts.IgnoreFields(ReportEntry{}, "Error")); diff != "" {
		t.Errorf("report results mismatch (-want +got):\n%s", diff)
	}
}
