// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/CadamTech/agekey-sdk/agekey"
	"github.com/CadamTech/agekey-sdk/akerror"
	"github.com/CadamTech/agekey-sdk/callback"
	"github.com/CadamTech/agekey-sdk/claims"
	"github.com/CadamTech/agekey-sdk/logger"
	"github.com/CadamTech/agekey-sdk/policy"
	"github.com/CadamTech/agekey-sdk/recovery"
)

// Cookies holding per-flow secrets between the redirect and the callback.
const (
	stateCookie       = "agekey_state"
	nonceCookie       = "agekey_nonce"
	createStateCookie = "agekey_create_state"

	cookieMaxAge = 10 * time.Minute
)

func serveCommand() *command {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	var (
		listen, policyExpr, createRedirect string
		ages                               intList
	)
	fs.StringVar(&listen, "listen", "", "listen address (overrides server.listen_addr)")
	fs.StringVar(&policyExpr, "policy", "", "CEL expression a verified result must satisfy (overrides server.policy)")
	fs.StringVar(&createRedirect, "create-redirect-uri", "",
		"redirect URI of the create flow (default: create/callback next to the configured redirect URI)")
	fs.Var(&ages, "age", "default age threshold for /verify (repeatable, default 18)")

	return &command{flags: fs, run: func(ctx context.Context, a *app) error {
		if listen != "" {
			a.cfg.Server.ListenAddr = listen
		}
		if policyExpr != "" {
			a.cfg.Server.Policy = policyExpr
		}
		if len(ages) == 0 {
			ages = intList{18}
		}

		s, err := newServer(a, createRedirect, ages)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              a.cfg.Server.ListenAddr,
			Handler:           s.routes(a.registry),
			ReadHeaderTimeout: 5 * time.Second,
		}
		return listenAndServe(ctx, srv, a.cfg.Server.ShutdownTimeout)
	}}
}

// server is the demo relying party.
type server struct {
	use    *agekey.UseFlow
	create *agekey.CreateFlow
	policy *policy.Policy
	ages   []int
	secure bool
	now    func() time.Time
	logger *slog.Logger
}

func newServer(a *app, createRedirect string, ages []int) (*server, error) {
	pol, err := compilePolicy(a.cfg.Server.Policy)
	if err != nil {
		return nil, err
	}

	useClient, err := a.client()
	if err != nil {
		return nil, err
	}

	createCfg := a.cfg.Client
	if createRedirect == "" {
		createRedirect, err = siblingURI(createCfg.RedirectURI, "create/callback")
		if err != nil {
			return nil, err
		}
	}
	createCfg.RedirectURI = createRedirect
	createClient, err := agekey.New(createCfg,
		agekey.WithLogger(logger.NewSlog()),
		agekey.WithMetrics(a.metrics),
	)
	if err != nil {
		return nil, err
	}

	redirect, _ := url.Parse(a.cfg.Client.RedirectURI)
	return &server{
		use:    useClient.Use(),
		create: createClient.Create(),
		policy: pol,
		ages:   ages,
		secure: redirect != nil && redirect.Scheme == "https",
		now:    time.Now,
		logger: logger.NewSlog(),
	}, nil
}

func (s *server) routes(reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(recovery.Middleware(s.logger))

	r.Get("/verify", s.handleVerify)
	r.Get("/callback", s.handleCallback)
	r.Post("/create", s.handleCreate)
	r.Get("/create/callback", s.handleCreateCallback)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	return r
}

// handleVerify starts the Use flow. Thresholds come from repeated "age"
// query parameters, or the server defaults.
func (s *server) handleVerify(w http.ResponseWriter, r *http.Request) {
	ages := s.ages
	if raw := r.URL.Query()["age"]; len(raw) > 0 {
		ages = make([]int, 0, len(raw))
		for _, v := range raw {
			n, err := strconv.Atoi(v)
			if err != nil {
				writeError(w, akerror.New(akerror.KindInvalidRequest, fmt.Sprintf("invalid age %q", v)))
				return
			}
			ages = append(ages, n)
		}
	}
	canCreate, _ := strconv.ParseBool(r.URL.Query().Get("can_create"))

	opts := agekey.UseOptions{EnableCreate: canCreate}
	opts.AgeThresholds = claims.AgeThresholds(ages)
	req, err := s.use.AuthorizationURL(opts)
	if err != nil {
		writeError(w, err)
		return
	}

	s.setCookie(w, stateCookie, req.State)
	s.setCookie(w, nonceCookie, req.Nonce)
	http.Redirect(w, r, req.URL, http.StatusFound)
}

func (s *server) handleCallback(w http.ResponseWriter, r *http.Request) {
	state, errState := r.Cookie(stateCookie)
	nonce, errNonce := r.Cookie(nonceCookie)
	s.clearCookie(w, stateCookie)
	s.clearCookie(w, nonceCookie)
	if errState != nil || errNonce != nil {
		writeError(w, akerror.New(akerror.KindInvalidRequest, "no verification in progress"))
		return
	}

	result, err := s.use.HandleCallback(r.URL.String(), callback.Expected{State: state.Value, Nonce: nonce.Value})
	if err != nil {
		writeError(w, err)
		return
	}

	out := useResult{AgeThresholds: result.AgeThresholds, Subject: result.Subject}
	status := http.StatusOK
	if s.policy != nil {
		allowed, err := s.policy.Allows(result)
		if err != nil {
			s.logger.ErrorContext(r.Context(), "policy evaluation failed", "error", err)
			writeError(w, akerror.Wrap(akerror.KindConfiguration, err, "policy evaluation failed"))
			return
		}
		out.Allowed = &allowed
		if !allowed {
			status = http.StatusForbidden
		}
	}
	writeResponse(w, status, out)
}

// handleCreate pushes the verification described by the posted form and
// redirects to AgeKey.
func (s *server) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, akerror.Wrap(akerror.KindInvalidRequest, err, "invalid form"))
		return
	}
	f := r.PostForm
	detail, err := buildDetail(
		f.Get("method"), f.Get("provenance"), f.Get("verification_id"), f.Get("verified_at"),
		f.Get("years"), f.Get("at_least_years"), f.Get("date_of_birth"), s.now(),
	)
	if err != nil {
		writeError(w, akerror.Wrap(akerror.KindInvalidRequest, err, ""))
		return
	}
	upgrade, _ := strconv.ParseBool(f.Get("upgrade"))

	res, err := s.create.Initiate(r.Context(), agekey.CreateOptions{Detail: detail, EnableUpgrade: upgrade})
	if err != nil {
		writeError(w, err)
		return
	}

	s.setCookie(w, createStateCookie, res.State)
	http.Redirect(w, r, res.URL, http.StatusSeeOther)
}

func (s *server) handleCreateCallback(w http.ResponseWriter, r *http.Request) {
	res, err := s.create.HandleCallback(r.URL.String())
	if err != nil {
		writeError(w, err)
		return
	}

	stored, cookieErr := r.Cookie(createStateCookie)
	s.clearCookie(w, createStateCookie)
	if cookieErr == nil && res.State != "" && !callback.ConstantTimeEqual(res.State, stored.Value) {
		writeError(w, akerror.New(akerror.KindStateMismatch, "state does not match the pushed request"))
		return
	}
	if !res.Success {
		writeError(w, akerror.FromOAuthCode(res.Error, res.ErrorDescription))
		return
	}
	writeResponse(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *server) setCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(cookieMaxAge / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *server) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// errorResponse is the JSON body of a failed request.
type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	ErrorURI         string `json:"error_uri,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	var akErr *akerror.Error
	if !errors.As(err, &akErr) {
		akErr = akerror.Wrap(akerror.KindConfiguration, err, "").(*akerror.Error)
	}
	writeResponse(w, akErr.HTTPCode(), errorResponse{
		Error:            string(akErr.Kind()),
		ErrorDescription: akErr.Error(),
		ErrorURI:         akErr.DocURL(),
	})
}

func writeResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = writeJSON(w, v)
}

// compilePolicy compiles expr, or returns nil when it is empty.
func compilePolicy(expr string) (*policy.Policy, error) {
	if expr == "" {
		return nil, nil
	}
	return policy.Compile(expr)
}

// siblingURI resolves ref against base, so "create/callback" next to
// "https://rp.example/callback" is "https://rp.example/create/callback".
func siblingURI(base, ref string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", akerror.Wrap(akerror.KindConfiguration, err, "invalid redirect URI")
	}
	return u.ResolveReference(&url.URL{Path: ref}).String(), nil
}

// listenAndServe runs srv until ctx is done, then shuts it down within timeout.
func listenAndServe(ctx context.Context, srv *http.Server, timeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Infow("demo relying party listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("demo relying party stopped", "error", err)
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), timeout)
		defer cancel()
		logger.Info("shutting down demo relying party")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
