// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/CadamTech/agekey-sdk/agekey"
	"github.com/CadamTech/agekey-sdk/callback"
	"github.com/CadamTech/agekey-sdk/claims"
	"github.com/CadamTech/agekey-sdk/verification"
)

var errMissingFlag = errors.New("missing required flag")

// intList is a repeatable integer flag.
type intList []int

func (l *intList) String() string {
	parts := make([]string, len(*l))
	for i, n := range *l {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func (l *intList) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*l = append(*l, n)
	return nil
}

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(s string) error {
	*l = append(*l, s)
	return nil
}

func useURLCommand() *command {
	fs := flag.NewFlagSet("use-url", flag.ContinueOnError)
	var (
		ages      intList
		methods   stringList
		canCreate bool
	)
	fs.Var(&ages, "age", "age threshold to verify (repeatable)")
	fs.Var(&methods, "method", "allowed verification method (repeatable)")
	fs.BoolVar(&canCreate, "can-create", false, "let users without an AgeKey create one")

	return &command{flags: fs, run: func(_ context.Context, a *app) error {
		client, err := a.client()
		if err != nil {
			return err
		}
		opts := agekey.UseOptions{EnableCreate: canCreate}
		opts.AgeThresholds = claims.AgeThresholds(ages)
		for _, m := range methods {
			opts.AllowedMethods = append(opts.AllowedMethods, claims.Method(m))
		}

		req, err := client.Use().AuthorizationURL(opts)
		if err != nil {
			return err
		}
		return writeJSON(a.stdout, map[string]string{
			"url":   req.URL,
			"state": req.State,
			"nonce": req.Nonce,
		})
	}}
}

// useResult is the printed form of a validated Use callback.
type useResult struct {
	AgeThresholds map[string]bool `json:"age_thresholds"`
	Subject       string          `json:"subject,omitempty"`
	Allowed       *bool           `json:"allowed,omitempty"`
}

func callbackCommand() *command {
	fs := flag.NewFlagSet("callback", flag.ContinueOnError)
	var callbackURL, state, nonce string
	fs.StringVar(&callbackURL, "url", "", "callback URL received on the redirect URI")
	fs.StringVar(&state, "state", "", "state printed by use-url")
	fs.StringVar(&nonce, "nonce", "", "nonce printed by use-url")

	return &command{flags: fs, run: func(_ context.Context, a *app) error {
		switch {
		case callbackURL == "":
			return fmt.Errorf("%w: -url", errMissingFlag)
		case state == "":
			return fmt.Errorf("%w: -state", errMissingFlag)
		case nonce == "":
			return fmt.Errorf("%w: -nonce", errMissingFlag)
		}

		pol, err := compilePolicy(a.cfg.Server.Policy)
		if err != nil {
			return err
		}
		client, err := a.client()
		if err != nil {
			return err
		}
		result, err := client.Use().HandleCallback(callbackURL, callback.Expected{State: state, Nonce: nonce})
		if err != nil {
			return err
		}

		out := useResult{AgeThresholds: result.AgeThresholds, Subject: result.Subject}
		if pol != nil {
			allowed, err := pol.Allows(result)
			if err != nil {
				return err
			}
			out.Allowed = &allowed
		}
		return writeJSON(a.stdout, out)
	}}
}

func parCommand() *command {
	fs := flag.NewFlagSet("par", flag.ContinueOnError)
	var (
		method, provenance, verificationID string
		years, atLeast, dob, verifiedAt    string
		upgrade                            bool
	)
	fs.StringVar(&method, "method", "", "verification method, e.g. id_doc_scan")
	fs.StringVar(&years, "years", "", "exact age in years")
	fs.StringVar(&atLeast, "at-least", "", "minimum age in years")
	fs.StringVar(&dob, "dob", "", "date of birth (YYYY-MM-DD)")
	fs.StringVar(&provenance, "provenance", "", "verification provenance, e.g. /agekey/id_doc_scan")
	fs.StringVar(&verificationID, "verification-id", "", "verification identifier (default random UUID)")
	fs.StringVar(&verifiedAt, "verified-at", "", "verification instant, RFC3339 (default now)")
	fs.BoolVar(&upgrade, "upgrade", false, "allow upgrading an existing AgeKey")

	return &command{flags: fs, run: func(ctx context.Context, a *app) error {
		detail, err := buildDetail(method, provenance, verificationID, verifiedAt, years, atLeast, dob, time.Now())
		if err != nil {
			return err
		}
		client, err := a.client()
		if err != nil {
			return err
		}
		res, err := client.Create().Initiate(ctx, agekey.CreateOptions{Detail: detail, EnableUpgrade: upgrade})
		if err != nil {
			return err
		}
		return writeJSON(a.stdout, map[string]any{
			"url":         res.URL,
			"request_uri": res.RequestURI,
			"expires_in":  res.ExpiresIn,
			"state":       res.State,
		})
	}}
}

var errAgeSpec = errors.New("exactly one of years, at-least or dob is required")

// buildDetail assembles an authorization detail from textual inputs shared by
// the par command and the demo server's create form.
func buildDetail(method, provenance, id, verifiedAt, years, atLeast, dob string, now time.Time) (verification.AuthorizationDetail, error) {
	age, err := parseAgeSpec(years, atLeast, dob)
	if err != nil {
		return verification.AuthorizationDetail{}, err
	}

	at := now
	if verifiedAt != "" {
		at, err = time.Parse(time.RFC3339, verifiedAt)
		if err != nil {
			return verification.AuthorizationDetail{}, fmt.Errorf("verified-at: %w", err)
		}
	}
	if id == "" {
		id = uuid.NewString()
	}

	return verification.AuthorizationDetail{
		Method:         claims.Method(method),
		Age:            age,
		VerifiedAt:     at,
		VerificationID: id,
		Provenance:     provenance,
	}, nil
}

func parseAgeSpec(years, atLeast, dob string) (verification.AgeSpec, error) {
	set := 0
	for _, v := range []string{years, atLeast, dob} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return nil, errAgeSpec
	}

	switch {
	case years != "":
		n, err := strconv.Atoi(years)
		if err != nil {
			return nil, fmt.Errorf("years: %w", err)
		}
		return verification.ExactYears(n), nil
	case atLeast != "":
		n, err := strconv.Atoi(atLeast)
		if err != nil {
			return nil, fmt.Errorf("at-least: %w", err)
		}
		return verification.AtLeastYears(n), nil
	default:
		t, err := time.Parse(time.DateOnly, dob)
		if err != nil {
			return nil, fmt.Errorf("dob: %w", err)
		}
		return verification.DateOfBirth(t), nil
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
