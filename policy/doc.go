// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package policy evaluates relying-party access rules against a validated AgeKey
Use result.

A policy is a CEL expression that must evaluate to a boolean. Three variables
are declared:

	age_thresholds  map(string, bool)  the age_thresholds claim, keyed by age
	subject         string             the pairwise subject, empty when absent
	claims          map(string, dyn)   every claim of the ID token

# Basic Usage

	p, err := policy.Compile(`age_thresholds["18"] && subject != ""`)
	if err != nil {
	    // handle compilation error
	}

	allowed, err := p.Allows(result)

# Error Handling

Compilation errors carry location information:

	_, err := policy.Compile(`age_thresholds["18"`)
	var exprErr *policy.ExpressionError
	if errors.As(err, &exprErr) {
	    fmt.Println(exprErr.Stage)    // parse or check
	    fmt.Println(exprErr.AsJSON()) // line/column/message details
	}

# Limits

Expression length and evaluation cost are bounded. Use an [Engine] built with
[WithMaxExpressionLength] and [WithCostLimit] to change the bounds.

Engines and compiled policies are safe for concurrent use.
*/
package policy
