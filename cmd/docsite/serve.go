package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dgallion1/docsite/internal/api"
	"github.com/dgallion1/docsite/internal/config"
	"github.com/dgallion1/docsite/internal/pipeline"
	"github.com/dgallion1/docsite/internal/search"
	"github.com/dgallion1/docsite/internal/site"
	"github.com/dgallion1/docsite/internal/watch"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and serve it with the search and build APIs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runServer(cmd, cfg, newLogger(true), false)
	},
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "listen port (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

// runServer builds the site through the pipeline and serves out_dir until
// SIGINT or SIGTERM. In dev mode the source is watched, every published
// build is announced on /api/events and pages carry the reload snippet.
func runServer(cmd *cobra.Command, cfg config.Config, log *slog.Logger, dev bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine := search.NewEngine()
	orch := pipeline.NewOrchestrator(cfg, site.NewBuilder(cfg, log), engine, log)

	var (
		opts    []api.Option
		broker  *api.Broker
		watcher *watch.Watcher
	)
	if dev {
		broker = api.NewBroker()
		watcher = watch.New(cfg.ContentPath, watch.Options{
			Interval: cfg.WatchInterval,
			Debounce: cfg.WatchDebounce,
			Logger:   log,
		})
		opts = append(opts, api.WithLiveReload(broker), api.WithWatcher(watcher))
	}
	srv := api.NewServer(orch, engine, log, cfg, opts...)

	out := cmd.OutOrStdout()
	orch.OnPublish(func(snap pipeline.JobSnapshot, s *site.Site) {
		srv.SetHeadings(s.Headings)
		if dev {
			broker.Publish("reload")
			FormatJobSummary(out, snap)
		}
	})
	orch.Start(ctx)

	if err := orch.Submit(pipeline.NewJob(pipeline.TriggerStartup, true)); err != nil {
		orch.Stop()
		return err
	}

	var watchers sync.WaitGroup
	if dev {
		watchers.Add(1)
		go func() {
			defer watchers.Done()
			watcher.OnChange(ctx, func() error { return rebuild(ctx, orch) })
		}()
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	// Graceful shutdown.
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting docsite", "port", cfg.Port, "dev", dev, "content", cfg.ContentPath, "out_dir", cfg.OutDir)
	err := httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		stop()
		<-shutdownDone
		watchers.Wait()
		orch.Stop()
		return fmt.Errorf("server error: %w", err)
	}

	<-shutdownDone
	watchers.Wait()
	orch.Stop()
	return nil
}

// rebuild queues a watch-triggered build and waits for it. Only a rejected
// submission is reported back to the watcher, so the change is retried; a
// failed build is logged by the pipeline and waits for the next edit.
func rebuild(ctx context.Context, orch *pipeline.Orchestrator) error {
	job := pipeline.NewJob(pipeline.TriggerWatch, false)
	if err := orch.Submit(job); err != nil {
		return err
	}
	_, err := orch.Wait(ctx, job)
	return err
}
