package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sghaida/typereg/di"
	"github.com/sghaida/typereg/event"
	"github.com/sghaida/typereg/examples/webapp"
)

const shutdownTimeout = 5 * time.Second

type cli struct {
	v       *viper.Viper
	cfgFile string
	envFile string
	cfg     config
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:          "diplan",
		Short:        "Build webapp components from a plan file",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			cfg, err := loadConfig(c.v, c.cfgFile, c.envFile)
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&c.cfgFile, "config", "c", "", "config file (yaml, json or toml)")
	root.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "text", "log format (text, json)")
	_ = c.v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))
	_ = c.v.BindPFlag("log_format", root.PersistentFlags().Lookup("log-format"))

	root.AddCommand(c.listCmd(), c.runCmd())
	return root
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the components a plan can name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat := webapp.Catalog()
			out := cmd.OutOrStdout()
			for _, name := range cat.Names() {
				comp, _ := cat.Lookup(name)
				deps := make([]string, 0, len(comp.Dependencies()))
				for _, id := range comp.Dependencies() {
					deps = append(deps, id.String())
				}
				fmt.Fprintf(out, "%s %s [%s]\n", name, comp.Output(), strings.Join(deps, ", "))
			}
			return nil
		},
	}
}

func (c *cli) runCmd() *cobra.Command {
	var (
		planFile string
		addr     string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build the components listed in a plan file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, planFile, addr)
		},
	}
	cmd.Flags().StringVarP(&planFile, "plan", "p", "", "plan file (yaml)")
	cmd.Flags().StringVar(&addr, "serve", "", "serve the built WebServer on this address")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}

func (c *cli) run(cmd *cobra.Command, planFile, addr string) error {
	logger, err := newLogger(cmd.ErrOrStderr(), c.cfg.LogLevel, c.cfg.LogFormat)
	if err != nil {
		return err
	}
	plan, err := loadPlan(planFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, shutdown, err := newTracerProvider(ctx, c.cfg.Tracing, c.cfg.App.Name, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			logger.Warn("tracer shutdown failed", "error", err)
		}
	}()

	events := event.NewDispatcher(event.WithLogger(logger), event.WithPanicRecovery())
	event.AddListener(events, func(e *webapp.RequestServed) {
		logger.Info("request served",
			"method", e.Method,
			"route", e.Route,
			"status", e.Status,
			"duration", e.Duration)
	})

	app, err := webapp.Bootstrap(ctx, c.cfg.webapp(), plan,
		webapp.WithDispatcher(events),
		webapp.WithContainerOptions(di.WithLogger(logger), di.WithTracerProvider(tp)),
	)
	if app != nil {
		out := cmd.OutOrStdout()
		for _, step := range app.Steps {
			fmt.Fprintf(out, "%s %s %s\n", step.Component, step.Handle.Type(), step.Handle.ID())
		}
	}
	if err != nil {
		return err
	}

	if addr == "" {
		return nil
	}
	return serve(ctx, app, addr, logger)
}

func serve(ctx context.Context, app *webapp.App, addr string, logger *slog.Logger) error {
	h, err := app.Server()
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Load(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Info("serving", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	}
}
