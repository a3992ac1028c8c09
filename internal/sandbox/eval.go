package sandbox

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/markusmobius/go-dateparser"
)

var errStepBudget = errors.New("script exceeded its evaluation budget")

// evaluator holds per-run state: variables, captured logs, and the step
// budget.
type evaluator struct {
	ctx   interface{ Err() error }
	clock func() time.Time
	vars  map[string]any
	logs  []string
	steps int
}

// evalLine evaluates one statement: an assignment or a bare expression.
func (ev *evaluator) evalLine(line string) (any, error) {
	if name, rest, ok := splitAssignment(line); ok {
		v, err := ev.evalExpr(newLexer(rest))
		if err != nil {
			return nil, err
		}

		ev.vars[name] = v

		return v, nil
	}

	return ev.evalExpr(newLexer(line))
}

// splitAssignment detects `name = expr`, taking care not to confuse `==`
// or `=` inside a string for an assignment.
func splitAssignment(line string) (name, rest string, ok bool) {
	idx := strings.IndexByte(line, '=')
	if idx <= 0 || idx+1 >= len(line) || line[idx+1] == '=' {
		return "", "", false
	}

	name = strings.TrimSpace(line[:idx])
	if !isIdent(name) {
		return "", "", false
	}

	return name, line[idx+1:], true
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if unicode.IsLetter(r) || r == '_' {
			continue
		}

		if i > 0 && unicode.IsDigit(r) {
			continue
		}

		return false
	}

	return true
}

// step consumes one unit of the evaluation budget and checks the
// deadline.
func (ev *evaluator) step() error {
	ev.steps++
	if ev.steps > maxSteps {
		return errStepBudget
	}

	if err := ev.ctx.Err(); err != nil {
		return fmt.Errorf("script timed out: %w", err)
	}

	return nil
}

// evalExpr parses and evaluates `term (("+"|"-") term)*`.
func (ev *evaluator) evalExpr(lx *lexer) (any, error) {
	left, err := ev.evalTerm(lx)
	if err != nil {
		return nil, err
	}

	for {
		op, ok := lx.peekOp()
		if !ok {
			break
		}

		lx.next()

		right, err := ev.evalTerm(lx)
		if err != nil {
			return nil, err
		}

		left, err = applyOp(op, left, right)
		if err != nil {
			return nil, err
		}
	}

	if tok := lx.peek(); tok.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %q", tok.text)
	}

	return left, nil
}

func (ev *evaluator) evalTerm(lx *lexer) (any, error) {
	if err := ev.step(); err != nil {
		return nil, err
	}

	tok := lx.next()

	switch tok.kind {
	case tokNumber:
		n, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", tok.text)
		}

		return n, nil

	case tokString:
		return tok.text, nil

	case tokIdent:
		if lx.peek().kind == tokLParen {
			lx.next()
			return ev.evalCall(tok.text, lx)
		}

		v, ok := ev.vars[tok.text]
		if !ok {
			return nil, fmt.Errorf("unknown variable %q", tok.text)
		}

		return v, nil

	case tokLParen:
		v, err := ev.evalSubExpr(lx)
		if err != nil {
			return nil, err
		}

		if lx.next().kind != tokRParen {
			return nil, errors.New("missing closing parenthesis")
		}

		return v, nil

	default:
		return nil, fmt.Errorf("unexpected %q", tok.text)
	}
}

// evalSubExpr evaluates an expression without requiring EOF afterwards,
// for use inside parentheses and argument lists.
func (ev *evaluator) evalSubExpr(lx *lexer) (any, error) {
	left, err := ev.evalTerm(lx)
	if err != nil {
		return nil, err
	}

	for {
		op, ok := lx.peekOp()
		if !ok {
			return left, nil
		}

		lx.next()

		right, err := ev.evalTerm(lx)
		if err != nil {
			return nil, err
		}

		left, err = applyOp(op, left, right)
		if err != nil {
			return nil, err
		}
	}
}

// evalCall evaluates a call to one of the built-in capabilities. The
// opening parenthesis is already consumed.
func (ev *evaluator) evalCall(name string, lx *lexer) (any, error) {
	var args []any

	if lx.peek().kind == tokRParen {
		lx.next()
	} else {
		for {
			v, err := ev.evalSubExpr(lx)
			if err != nil {
				return nil, err
			}

			args = append(args, v)

			tok := lx.next()
			if tok.kind == tokRParen {
				break
			}

			if tok.kind != tokComma {
				return nil, fmt.Errorf(
					"expected ',' or ')' in call to %s, got %q",
					name,
					tok.text,
				)
			}
		}
	}

	return ev.callBuiltin(name, args)
}

func (ev *evaluator) callBuiltin(name string, args []any) (any, error) {
	switch name {
	case "now":
		if err := wantArgs(name, args, 0); err != nil {
			return nil, err
		}

		return ev.clock(), nil

	case "today":
		if err := wantArgs(name, args, 0); err != nil {
			return nil, err
		}

		t := ev.clock()

		return time.Date(
			t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location(),
		), nil

	case "parse":
		s, err := argString(name, args, 0, 1)
		if err != nil {
			return nil, err
		}

		d, err := dateparser.Parse(nil, s)
		if err != nil {
			return nil, fmt.Errorf("parse(%q): %w", s, err)
		}

		return d.Time, nil

	case "dur":
		s, err := argString(name, args, 0, 1)
		if err != nil {
			return nil, err
		}

		return parseDuration(s)

	case "add", "sub":
		t, err := argTime(name, args, 0, 2)
		if err != nil {
			return nil, err
		}

		d, err := argDuration(name, args, 1, 2)
		if err != nil {
			return nil, err
		}

		if name == "sub" {
			d = -d
		}

		return t.Add(d), nil

	case "diff":
		a, err := argTime(name, args, 0, 2)
		if err != nil {
			return nil, err
		}

		b, err := argTime(name, args, 1, 2)
		if err != nil {
			return nil, err
		}

		return a.Sub(b), nil

	case "format":
		t, err := argTime(name, args, 0, 2)
		if err != nil {
			return nil, err
		}

		layout, err := argString(name, args, 1, 2)
		if err != nil {
			return nil, err
		}

		return t.Format(namedLayout(layout)), nil

	case "unix":
		t, err := argTime(name, args, 0, 1)
		if err != nil {
			return nil, err
		}

		return float64(t.Unix()), nil

	case "weekday":
		t, err := argTime(name, args, 0, 1)
		if err != nil {
			return nil, err
		}

		return t.Weekday().String(), nil

	case "year", "month", "day", "hour", "minute":
		t, err := argTime(name, args, 0, 1)
		if err != nil {
			return nil, err
		}

		return timeComponent(name, t), nil

	case "log":
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, formatValue(a))
		}

		ev.logs = append(ev.logs, strings.Join(parts, " "))

		return nil, nil

	default:
		return nil, fmt.Errorf("unknown function %q", name)
	}
}

func timeComponent(name string, t time.Time) float64 {
	switch name {
	case "year":
		return float64(t.Year())
	case "month":
		return float64(t.Month())
	case "day":
		return float64(t.Day())
	case "hour":
		return float64(t.Hour())
	default:
		return float64(t.Minute())
	}
}

// namedLayout maps friendly layout names onto Go reference layouts. An
// unrecognised name is treated as a literal Go layout string.
func namedLayout(name string) string {
	switch strings.ToLower(name) {
	case "iso", "rfc3339":
		return time.RFC3339
	case "date":
		return "2006-01-02"
	case "time":
		return "15:04:05"
	case "kitchen":
		return time.Kitchen
	case "rfc822":
		return time.RFC822
	default:
		return name
	}
}

func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	return d, nil
}

func applyOp(op byte, left, right any) (any, error) {
	switch l := left.(type) {
	case time.Time:
		d, ok := asDuration(right)
		if !ok {
			return nil, fmt.Errorf(
				"cannot apply %q to a time and %s", op, typeName(right),
			)
		}

		if op == '-' {
			d = -d
		}

		return l.Add(d), nil

	case time.Duration:
		d, ok := asDuration(right)
		if !ok {
			return nil, fmt.Errorf(
				"cannot apply %q to a duration and %s", op, typeName(right),
			)
		}

		if op == '-' {
			return l - d, nil
		}

		return l + d, nil

	case float64:
		r, ok := right.(float64)
		if !ok {
			return nil, fmt.Errorf(
				"cannot apply %q to a number and %s", op, typeName(right),
			)
		}

		if op == '-' {
			return l - r, nil
		}

		return l + r, nil

	case string:
		if op != '+' {
			return nil, errors.New("strings only support +")
		}

		r, ok := right.(string)
		if !ok {
			return nil, fmt.Errorf(
				"cannot concatenate a string and %s", typeName(right),
			)
		}

		return l + r, nil

	default:
		return nil, fmt.Errorf("cannot apply %q to %s", op, typeName(left))
	}
}

// asDuration converts a value to a duration, accepting duration values
// and duration-formatted strings.
func asDuration(v any) (time.Duration, bool) {
	switch t := v.(type) {
	case time.Duration:
		return t, true
	case string:
		d, err := time.ParseDuration(t)
		if err != nil {
			return 0, false
		}

		return d, true
	default:
		return 0, false
	}
}

func typeName(v any) string {
	switch v.(type) {
	case time.Time:
		return "a time"
	case time.Duration:
		return "a duration"
	case float64:
		return "a number"
	case string:
		return "a string"
	case nil:
		return "nothing"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func wantArgs(name string, args []any, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s expects %d argument(s), got %d", name, n, len(args))
	}

	return nil
}

func argString(name string, args []any, i, n int) (string, error) {
	if err := wantArgs(name, args, n); err != nil {
		return "", err
	}

	s, ok := args[i].(string)
	if !ok {
		return "", fmt.Errorf(
			"%s: argument %d must be a string, got %s",
			name, i+1, typeName(args[i]),
		)
	}

	return s, nil
}

func argTime(name string, args []any, i, n int) (time.Time, error) {
	if err := wantArgs(name, args, n); err != nil {
		return time.Time{}, err
	}

	t, ok := args[i].(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf(
			"%s: argument %d must be a time, got %s",
			name, i+1, typeName(args[i]),
		)
	}

	return t, nil
}

func argDuration(name string, args []any, i, n int) (time.Duration, error) {
	if err := wantArgs(name, args, n); err != nil {
		return 0, err
	}

	d, ok := asDuration(args[i])
	if !ok {
		return 0, fmt.Errorf(
			"%s: argument %d must be a duration, got %s",
			name, i+1, typeName(args[i]),
		)
	}

	return d, nil
}
