// Copyright (c) 2018 DDN. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package web serves the fstab line generator as an HTML form.
package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/intel-hpdd/logging/alert"
	"github.com/intel-hpdd/logging/audit"
	"github.com/intel-hpdd/logging/debug"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	metrics "github.com/rcrowley/go-metrics"

	fstabgen "github.com/wastore/go-fstabgen"
	"github.com/wastore/go-fstabgen/config"
	"github.com/wastore/go-fstabgen/form"
	"github.com/wastore/go-fstabgen/fs/spec"
)

// Server hosts the form.
type Server struct {
	cfg      *config.Config
	policy   fstabgen.Policy
	registry metrics.Registry
	router   *httprouter.Router
}

// NewServer returns a Server for cfg. The builder metrics of every request
// are collected in registry.
func NewServer(cfg *config.Config, registry metrics.Registry) *Server {
	s := &Server{
		cfg:      cfg,
		policy:   cfg.BuilderPolicy(),
		registry: registry,
		router:   httprouter.New(),
	}
	s.router.GET("/", s.handleIndex)
	s.router.POST("/generate", s.handleGenerate)
	s.router.POST("/api/v1/line", s.handleLine)
	s.router.GET("/debug/metrics", s.handleMetrics)
	s.router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v interface{}) {
		alert.Warnf("panic serving %s: %v", r.URL.Path, v)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// build runs a fresh builder for one request. The returned message is
// the text of the user notification, if one was raised.
func (s *Server) build(e spec.MountEntry) (line, message string, err error) {
	notifier := fstabgen.NotifierFunc(func(err error) {
		if ve, ok := err.(*spec.ValidationError); ok {
			message = ve.Message()
			return
		}
		message = err.Error()
	})
	b := fstabgen.New(
		fstabgen.WithPolicy(s.policy),
		fstabgen.WithNotifier(notifier),
		fstabgen.WithRegistry(s.registry),
	)
	line, err = b.Build(e)
	return
}

func (s *Server) render(w http.ResponseWriter, status int, p *page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, p); err != nil {
		alert.Warnf("rendering page: %v", err)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.render(w, http.StatusOK, newPage(spec.NewMountEntry(), s.cfg.Filesystems))
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	e := form.Decode(r.PostForm)
	p := newPage(e, s.cfg.Filesystems)

	line, msg, err := s.build(e)
	p.Alert = msg
	if err != nil {
		debug.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		// the output field keeps whatever the user had in it
		p.Output = r.PostForm.Get("output")
		s.render(w, http.StatusUnprocessableEntity, p)
		return
	}
	p.Output = line
	s.render(w, http.StatusOK, p)
}

func (s *Server) handleLine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	line, msg, err := s.build(form.Decode(r.PostForm))
	if err != nil {
		http.Error(w, msg, http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if msg != "" {
		w.Header().Set("X-Fstabgen-Warning", msg)
	}
	io.WriteString(w, line+"\n")
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "application/json")
	metrics.WriteJSONOnce(s.registry, w)
}

// Run serves on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return errors.Wrapf(err, "listening on %s", s.cfg.Listen)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts the
// server down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	audit.Logf("serving fstab form on http://%s (%s policy)", ln.Addr(), s.policy)
	if err := srv.Serve(ln); err != http.ErrServerClosed {
		return errors.Wrap(err, "serving")
	}
	if err := <-done; err != nil {
		return errors.Wrap(err, "shutting down")
	}
	audit.Logf("stopped serving on %s", ln.Addr())
	return nil
}
