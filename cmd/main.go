/*
Copyright 2025 Costline Contributors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Main entrypoint for the costline notification job. One invocation runs
// one notification end to end and exits; scheduling is the host's concern
// (cron, EventBridge, CI). Exercised through the E2E tests, not unit tests.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nextdoor/costline/internal/notify"
	"github.com/nextdoor/costline/internal/service"
	"github.com/nextdoor/costline/pkg/aws"
	"github.com/nextdoor/costline/pkg/config"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:     "costline",
		Short:   "Push the month-to-date AWS spend to a LINE channel",
		Version: version,
		Long: `costline is a one-shot notification job. Each run queries AWS Cost
Explorer for the current month-to-date spend, formats a short summary,
loads LINE credentials from a DynamoDB settings table, and pushes the
summary to the configured LINE channel.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), configFile)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "/etc/costline/config.yaml",
		"Path to the job configuration file. Individual values can be overridden with COSTLINE_* environment variables.")

	return cmd
}

// run wires the real collaborators together and executes one notification.
func run(ctx context.Context, configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	awsClient, err := aws.NewClient(ctx, aws.ClientConfig{
		DefaultRegion: cfg.DefaultRegion,
		AssumeRoleARN: cfg.AssumeRoleARN,
	})
	if err != nil {
		return fmt.Errorf("create AWS client: %w", err)
	}

	svc := &service.Service{
		Billing: &service.CostExplorerSource{
			Client: awsClient,
			Metric: cfg.CostMetric,
		},
		Credentials: &service.DynamoTokenStore{
			Client: awsClient,
			Table:  cfg.SettingsTable,
		},
		Notifier: notify.NewLineNotifier(cfg.LineAPIURL, cfg.GetRequestTimeout()),
		Log:      log.WithName("notify"),
	}

	return svc.Notify(ctx)
}

// newLogger builds a logr.Logger backed by zap at the configured level.
func newLogger(level string) (logr.Logger, error) {
	zapLevel := zapcore.InfoLevel
	if level != "" {
		var err error
		zapLevel, err = zapcore.ParseLevel(level)
		if err != nil {
			return logr.Logger{}, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(zapLevel)
	zapLog, err := zapCfg.Build()
	if err != nil {
		return logr.Logger{}, fmt.Errorf("build logger: %w", err)
	}

	return zapr.NewLogger(zapLog), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		// Errors are already logged where they happened; the exit code is
		// the job's only other output channel.
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
