// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
)

// Sentinel errors for policy operations.
var (
	// ErrExpressionCheck is returned when an expression fails length, syntax or type checks.
	ErrExpressionCheck = errors.New("policy expression check failed")

	// ErrEvaluation is returned when evaluating a policy fails.
	ErrEvaluation = errors.New("policy evaluation failed")

	// ErrInvalidResult is returned when a policy does not produce a boolean.
	ErrInvalidResult = errors.New("policy did not evaluate to a boolean")

	// ErrNoResult is returned when a policy is evaluated without a result.
	ErrNoResult = errors.New("no verification result to evaluate")
)

// Stage names the compilation step an expression failed in.
type Stage string

const (
	// StageParse indicates a syntax error.
	StageParse Stage = "parse"
	// StageCheck indicates a type error, such as an undeclared variable.
	StageCheck Stage = "check"
)

// Issue is one problem reported for an expression.
type Issue struct {
	Line int    `json:"line,omitempty"`
	Col  int    `json:"col,omitempty"`
	Msg  string `json:"msg,omitempty"`
}

// ExpressionError reports why an expression failed to compile.
type ExpressionError struct {
	Stage  Stage   `json:"stage"`
	Source string  `json:"source,omitempty"`
	Issues []Issue `json:"errors,omitempty"`

	cause error
}

// Error implements the error interface.
func (e *ExpressionError) Error() string {
	return fmt.Sprintf("policy %s error in expression %q: %s", e.Stage, e.Source, e.cause)
}

// Unwrap returns the underlying error.
func (e *ExpressionError) Unwrap() error {
	return e.cause
}

// AsJSON renders the error details as JSON.
func (e *ExpressionError) AsJSON() string {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf(`{"error": "failed to marshal JSON: %s"}`, err)
	}
	return string(b)
}

func newExpressionError(stage Stage, source string, issues *cel.Issues) error {
	list := make([]Issue, 0, len(issues.Errors()))
	for _, err := range issues.Errors() {
		list = append(list, Issue{
			Line: err.Location.Line(),
			Col:  err.Location.Column(),
			Msg:  err.Message,
		})
	}
	return &ExpressionError{
		Stage:  stage,
		Source: source,
		Issues: list,
		cause:  fmt.Errorf("%w: %w", ErrExpressionCheck, issues.Err()),
	}
}
