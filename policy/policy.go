// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/CadamTech/agekey-sdk/callback"
)

const (
	// DefaultMaxExpressionLength is the maximum accepted expression length.
	DefaultMaxExpressionLength = 4096

	// DefaultCostLimit is the runtime cost limit applied to every evaluation.
	DefaultCostLimit = 100000
)

// Variables declared in every policy environment.
const (
	VarAgeThresholds = "age_thresholds"
	VarSubject       = "subject"
	VarClaims        = "claims"
)

// Engine compiles policies. The CEL environment is built once, on first use.
type Engine struct {
	once sync.Once
	env  *cel.Env
	err  error

	maxExpressionLength int
	costLimit           uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxExpressionLength sets the maximum accepted expression length.
func WithMaxExpressionLength(n int) Option {
	return func(e *Engine) { e.maxExpressionLength = n }
}

// WithCostLimit sets the runtime cost limit for evaluation.
func WithCostLimit(limit uint64) Option {
	return func(e *Engine) { e.costLimit = limit }
}

// NewEngine returns an engine with default limits, adjusted by opts.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		maxExpressionLength: DefaultMaxExpressionLength,
		costLimit:           DefaultCostLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = NewEngine()

// Compile compiles expr with the default engine.
func Compile(expr string) (*Policy, error) {
	return defaultEngine.Compile(expr)
}

func (e *Engine) getEnv() (*cel.Env, error) {
	e.once.Do(func() {
		e.env, e.err = cel.NewEnv(
			cel.Variable(VarAgeThresholds, cel.MapType(cel.StringType, cel.BoolType)),
			cel.Variable(VarSubject, cel.StringType),
			cel.Variable(VarClaims, cel.MapType(cel.StringType, cel.DynType)),
		)
	})
	return e.env, e.err
}

func (e *Engine) check(expr string) (*cel.Env, *cel.Ast, error) {
	if len(expr) > e.maxExpressionLength {
		return nil, nil, fmt.Errorf("%w: expression length %d exceeds maximum of %d",
			ErrExpressionCheck, len(expr), e.maxExpressionLength)
	}

	env, err := e.getEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create policy environment: %w", err)
	}

	parsed, issues := env.Parse(expr)
	if issues.Err() != nil {
		return nil, nil, newExpressionError(StageParse, expr, issues)
	}

	checked, issues := env.Check(parsed)
	if issues.Err() != nil {
		return nil, nil, newExpressionError(StageCheck, expr, issues)
	}

	if !checked.OutputType().IsExactType(cel.BoolType) && !checked.OutputType().IsExactType(cel.DynType) {
		return nil, nil, fmt.Errorf("%w: expression %q has type %s",
			ErrInvalidResult, expr, checked.OutputType())
	}
	return env, checked, nil
}

// Check validates expr without building a program.
func (e *Engine) Check(expr string) error {
	_, _, err := e.check(expr)
	return err
}

// Compile parses, type checks and compiles expr.
func (e *Engine) Compile(expr string) (*Policy, error) {
	env, checked, err := e.check(expr)
	if err != nil {
		return nil, err
	}

	program, err := env.Program(checked, cel.CostLimit(e.costLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to create policy program for %q: %w", expr, err)
	}
	return &Policy{source: expr, program: program}, nil
}

// Policy is a compiled expression.
type Policy struct {
	source  string
	program cel.Program
}

// Source returns the expression the policy was compiled from.
func (p *Policy) Source() string {
	return p.source
}

// Allows evaluates the policy against a validated result.
func (p *Policy) Allows(r *callback.Result) (bool, error) {
	if r == nil {
		return false, ErrNoResult
	}

	out, _, err := p.program.Eval(activation(r))
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrEvaluation, err)
	}

	allowed, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: got %T", ErrInvalidResult, out.Value())
	}
	return allowed, nil
}

func activation(r *callback.Result) map[string]any {
	thresholds := r.AgeThresholds
	if thresholds == nil {
		thresholds = map[string]bool{}
	}
	claims := make(map[string]any, len(r.Raw))
	for k, v := range r.Raw {
		claims[k] = normalize(v)
	}
	return map[string]any{
		VarAgeThresholds: thresholds,
		VarSubject:       r.Subject,
		VarClaims:        claims,
	}
}

// normalize converts json.Number values, which CEL cannot adapt, to int64 or
// float64.
func normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	default:
		return v
	}
}
