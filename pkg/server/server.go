// Package server wires the scheduler, store, and HTTP surface together.
//
// One Server owns the whole daemon: it builds the check battery from
// configuration, runs the scheduler loop in a background goroutine, and
// serves the dashboard and JSON API over the shared store. The scheduler
// is the store's only writer; every HTTP handler is a reader.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/probekit/netprobe/pkg/check"
	"github.com/probekit/netprobe/pkg/check/command"
	"github.com/probekit/netprobe/pkg/check/request"
	"github.com/probekit/netprobe/pkg/config"
	"github.com/probekit/netprobe/pkg/resolver"
	"github.com/probekit/netprobe/pkg/runner"
	"github.com/probekit/netprobe/pkg/store"
)

// shutdownTimeout bounds how long Stop waits for in-flight requests.
const shutdownTimeout = 10 * time.Second

// Server runs the check scheduler and serves results over HTTP.
type Server struct {
	cfg     config.Config
	logger  *logrus.Logger
	runner  *runner.Runner
	store   *store.Store
	httpSrv *http.Server

	done   chan struct{}
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer builds a Server from configuration: it registers the check
// variants, instantiates the battery, and prepares the HTTP server.
func NewServer(cfg config.Config, logger *logrus.Logger) (*Server, error) {
	entries, err := buildBattery(cfg.Checks)
	if err != nil {
		return nil, err
	}

	run, err := runner.New(entries, logger)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		runner: run,
		store:  store.New(cfg.MaxRuns),
		done:   make(chan struct{}),
	}

	s.httpSrv = &http.Server{
		Addr:              cfg.Listen,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s, nil
}

// buildBattery instantiates the configured checks through the variant
// registry, preserving the declared order.
func buildBattery(specs []config.CheckSpec) ([]runner.Entry, error) {
	reg := check.NewRegistry()
	if err := reg.Register(command.TypeName, command.Factory); err != nil {
		return nil, err
	}
	if err := reg.Register(request.TypeName, request.Factory); err != nil {
		return nil, err
	}

	entries := make([]runner.Entry, 0, len(specs))
	for _, spec := range specs {
		chk, err := reg.Create(spec.Type, spec.FactoryConfig())
		if err != nil {
			return nil, fmt.Errorf("check %q: %w", spec.Name, err)
		}
		entries = append(entries, runner.Entry{
			Name:        spec.Name,
			Description: spec.Description,
			Check:       chk,
		})
	}
	return entries, nil
}

// Start launches the scheduler loop and the HTTP listener. It returns once
// both are running; the first check run happens in the background, so the
// API is reachable immediately and reports "no results yet" until the run
// completes.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.logResolvers(ctx)

	s.wg.Add(1)
	go s.scheduler(ctx)

	ln := make(chan error, 1)
	go func() {
		s.logger.Infof("Starting API server on %s...", s.cfg.Listen)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ln <- err
		}
	}()

	// Surface immediate bind failures; otherwise the listener is up.
	select {
	case err := <-ln:
		cancel()
		return fmt.Errorf("could not start API server: %w", err)
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// Stop shuts down the scheduler and the HTTP server.
func (s *Server) Stop() {
	close(s.done)
	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		s.logger.Errorf("API server shutdown: %v", err)
	}

	s.wg.Wait()
	s.logger.Info("Scheduler stopped.")
}

// logResolvers reports the host resolver configuration and probes each
// configured nameserver once, so startup logs show which resolvers answer.
func (s *Server) logResolvers(ctx context.Context) {
	info, err := resolver.ReadConfig("")
	if err != nil {
		s.logger.Warnf("Could not read resolver config: %v", err)
		return
	}
	s.logger.WithFields(logrus.Fields{
		"nameservers": info.Nameservers,
		"search":      info.Search,
	}).Info("Host resolver configuration")

	for _, ns := range info.Nameservers {
		rtt, err := resolver.Probe(ctx, ns)
		if err != nil {
			s.logger.Warnf("Nameserver %s did not answer: %v", ns, err)
			continue
		}
		s.logger.Infof("Nameserver %s answered in %v", ns, rtt.Round(time.Millisecond))
	}
}
