// Command agentpipe runs the content agent pipeline service: it wires the
// collaborator clients, the agent templates and the pipeline, and serves
// the HTTP front door. No business logic lives here, only wiring.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/askiada/go-agent-pipeline/internal/config"
	"github.com/askiada/go-agent-pipeline/internal/logging"
	"github.com/askiada/go-agent-pipeline/internal/openai"
	"github.com/askiada/go-agent-pipeline/internal/serper"
	"github.com/askiada/go-agent-pipeline/internal/server"
	"github.com/askiada/go-agent-pipeline/pkg/agent"
	"github.com/askiada/go-agent-pipeline/pkg/pipeline"
	"github.com/askiada/go-agent-pipeline/pkg/pipeline/drawer"
	"github.com/askiada/go-agent-pipeline/pkg/pipeline/measure"
	"github.com/askiada/go-agent-pipeline/pkg/pipeline/model"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	err := run(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	completion := openai.NewClient(openai.Config{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.Model,
		Timeout: cfg.OpenAI.Timeout,
	}, logger)

	search := serper.NewClient(serper.Config{
		APIKey:  cfg.Serper.APIKey,
		BaseURL: cfg.Serper.BaseURL,
		Timeout: cfg.Serper.Timeout,
	}, logger)

	agents := []agent.Agent{
		agent.NewResearcher(completion, search),
	}
	if cfg.Pipeline.IncludeWriter {
		agents = append(agents, agent.NewWriter(completion))
	}
	agents = append(agents,
		agent.NewTwitterAgent(completion),
		agent.NewLinkedInAgent(completion),
	)

	var opts []model.PipelineOption

	msr := measure.NewDefaultMeasure()
	opts = append(opts, measure.PipelineMeasure(msr))

	if cfg.Pipeline.DrawFile != "" {
		opts = append(opts, drawer.PipelineDrawer(drawer.NewSVGDrawer(cfg.Pipeline.DrawFile), msr))
	}

	pipe, err := pipeline.New(agents, opts...)
	if err != nil {
		return err
	}

	srv, err := server.New(pipe, logger, &server.Config{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		RunTimeout:      cfg.Server.RunTimeout,
		IncludeHistory:  cfg.Pipeline.IncludeHistory,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting agent pipeline service",
		zap.Int("agents", len(agents)),
		zap.String("model", cfg.OpenAI.Model),
	)

	return srv.Start(ctx)
}
