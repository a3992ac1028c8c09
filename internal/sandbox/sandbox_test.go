package sandbox_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burhanahmeed/tempo/internal/sandbox"
)

// pinned is a fixed wall clock so script output is deterministic.
var pinned = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

func pinnedExecutor(opts ...sandbox.ExecutorOption) *sandbox.Executor {
	opts = append(opts, sandbox.WithClock(func() time.Time { return pinned }))
	return sandbox.NewExecutor(opts...)
}

func run(t *testing.T, script string) sandbox.Result {
	t.Helper()

	res := pinnedExecutor().Execute(context.Background(), script)
	require.NoError(t, res.Err)

	return res
}

func TestExecuteExpressions(t *testing.T) {
	cases := []struct {
		name   string
		script string
		want   string
	}{
		{
			name:   "now",
			script: `now()`,
			want:   "2024-03-15T10:30:00Z",
		},
		{
			name:   "today truncates to midnight",
			script: `today()`,
			want:   "2024-03-15T00:00:00Z",
		},
		{
			name:   "arithmetic",
			script: `1 + 2 + 3`,
			want:   "6",
		},
		{
			name:   "string concatenation",
			script: `'week' + 'day'`,
			want:   "weekday",
		},
		{
			name:   "time plus duration",
			script: `now() + dur('90m')`,
			want:   "2024-03-15T12:00:00Z",
		},
		{
			name:   "time minus duration string",
			script: `now() - '30m'`,
			want:   "2024-03-15T10:00:00Z",
		},
		{
			name:   "add builtin",
			script: `add(today(), dur('24h'))`,
			want:   "2024-03-16T00:00:00Z",
		},
		{
			name:   "sub builtin",
			script: `sub(now(), dur('1h'))`,
			want:   "2024-03-15T09:30:00Z",
		},
		{
			name:   "diff",
			script: `diff(now(), today())`,
			want:   "10h30m0s",
		},
		{
			name:   "format named layout",
			script: `format(now(), 'date')`,
			want:   "2024-03-15",
		},
		{
			name:   "format literal layout",
			script: `format(now(), '15:04')`,
			want:   "10:30",
		},
		{
			name:   "unix",
			script: `unix(now())`,
			want:   "1710498600",
		},
		{
			name:   "weekday",
			script: `weekday(now())`,
			want:   "Friday",
		},
		{
			name:   "components",
			script: `year(now()) + month(now()) + day(now())`,
			want:   "2042",
		},
		{
			name:   "parentheses",
			script: `(1 + 2) + 3`,
			want:   "6",
		},
		{
			name: "variables carry across lines",
			script: `start = today()
end = start + dur('8h')
diff(end, start)`,
			want: "8h0m0s",
		},
		{
			name: "last bare expression wins",
			script: `1 + 1
2 + 2`,
			want: "4",
		},
		{
			name: "comments and blank lines are skipped",
			script: `# just a comment

1 + 1`,
			want: "2",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := run(t, tc.script)
			assert.Equal(t, tc.want, res.Value)
		})
	}
}

func TestLogCapturesOutput(t *testing.T) {
	res := run(t, `log('start is', today())
log(1 + 1)
'done'`)

	assert.Equal(t, []string{
		"start is 2024-03-15T00:00:00Z",
		"2",
	}, res.Logs)
	assert.Equal(t, "done", res.Value)
}

func TestErrorsAbortWithLineNumber(t *testing.T) {
	cases := []struct {
		name    string
		script  string
		errPart string
	}{
		{
			name:    "unknown variable",
			script:  `missing + 1`,
			errPart: `unknown variable "missing"`,
		},
		{
			name:    "unknown function",
			script:  `explode()`,
			errPart: `unknown function "explode"`,
		},
		{
			name:    "type mismatch",
			script:  `now() + 5`,
			errPart: "cannot apply",
		},
		{
			name:    "bad duration",
			script:  `dur('soon')`,
			errPart: `invalid duration "soon"`,
		},
		{
			name: "line number in error",
			script: `1 + 1
bogus()`,
			errPart: "line 2:",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := pinnedExecutor().Execute(context.Background(), tc.script)
			require.Error(t, res.Err)
			assert.Contains(t, res.Err.Error(), tc.errPart)
		})
	}
}

func TestErrorKeepsEarlierLogs(t *testing.T) {
	res := pinnedExecutor().Execute(context.Background(), `log('before')
bogus()`)

	require.Error(t, res.Err)
	assert.Equal(t, []string{"before"}, res.Logs)
}

func TestStepBudgetBoundsLongScripts(t *testing.T) {
	var b strings.Builder

	// thousands of terms on a single line blow the step budget without
	// taking wall-clock time
	b.WriteString("0")

	for i := 0; i < 20_000; i++ {
		b.WriteString(" + 1")
	}

	res := pinnedExecutor().Execute(context.Background(), b.String())

	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "budget")
}

func TestTimeoutBoundsExecution(t *testing.T) {
	ex := pinnedExecutor(sandbox.WithTimeout(time.Nanosecond))

	res := ex.Execute(context.Background(), `1 + 1`)

	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "timed out")
}

func TestParseNaturalLanguageDates(t *testing.T) {
	res := run(t, `format(parse('2024-03-15'), 'date')`)
	assert.Equal(t, "2024-03-15", res.Value)
}
