package bootstrap

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/target/text2ture/config"
	"github.com/target/text2ture/internal/adapters/transcriber"
	"github.com/target/text2ture/internal/data"
	"github.com/target/text2ture/internal/observability/notify/slack"
	"github.com/target/text2ture/internal/observability/statsd"
	"github.com/target/text2ture/internal/service"
	"github.com/target/text2ture/internal/service/failurenotifier"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Store       *data.FSResultStore
	Generator   *service.ObjectGenerator
	Executor    *service.Executor
	Submitter   *service.Submitter
	Status      *service.StatusReader
	Transcriber *transcriber.FAL

	// Optional backing services; nil when disabled.
	Registry *data.RedisSubmissionRegistry
	Journal  *data.OutcomeJournalRepo

	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	MetricsSink     *statsd.Client
	FailureNotifier *failurenotifier.Service
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB               // Optional: enables the outcome journal
	RedisClient redis.UniversalClient // Optional: enables the submission registry
	Logger      *slog.Logger
}

// NewServices wires the result store, executor, and the request-facing services.
func NewServices(deps ServiceDeps) (*ServiceContainer, error) {
	if deps.Config == nil {
		return nil, errors.New("config is required")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	store, err := data.NewFSResultStore(data.FSResultStoreOptions{
		Root:      cfg.Storage.SaveFolder,
		URLPrefix: cfg.Storage.ObjectsURLPrefix,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create result store: %w", err)
	}

	fal, err := transcriber.NewFAL(transcriber.FALOptions{
		APIKey:   cfg.Transcriber.APIKey,
		URL:      cfg.Transcriber.URL,
		Timeout:  cfg.Transcriber.Timeout,
		TextPath: cfg.Transcriber.TextPath,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create transcriber: %w", err)
	}

	generator, err := service.NewObjectGenerator(service.ObjectGeneratorOptions{
		Files:       store,
		Transcriber: fal,
		Config: service.ObjectGeneratorConfig{
			SampleImagePath: cfg.Storage.SampleImagePath,
			WorkDelay:       cfg.Executor.WorkDelay,
		},
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create object generator: %w", err)
	}

	obs := buildObservability(logger, cfg.Observability)
	container := &ServiceContainer{
		Store:         store,
		Generator:     generator,
		Transcriber:   fal,
		Observability: obs,
	}
	if deps.RedisClient != nil {
		container.Registry = data.NewRedisSubmissionRegistry(data.RedisSubmissionRegistryOptions{
			Client:    deps.RedisClient,
			KeyPrefix: cfg.Redis.KeyPrefix,
			TTL:       cfg.Redis.RegistryTTL,
		})
	}
	if deps.DB != nil {
		container.Journal = data.NewOutcomeJournalRepo(deps.DB)
	}

	execOpts := service.ExecutorOptions{
		Store:      store,
		Work:       generator.Work,
		Workers:    cfg.Executor.Workers,
		QueueSize:  cfg.Executor.QueueSize,
		JobTimeout: cfg.Executor.JobTimeout,
		Logger:     logger,
	}
	// Optional interfaces are only set when present so they never hold a typed nil.
	if obs.MetricsSink != nil {
		execOpts.Metrics = obs.MetricsSink
	}
	if obs.FailureNotifier.Enabled() {
		execOpts.Notifier = obs.FailureNotifier
	}
	if container.Journal != nil {
		execOpts.Journal = container.Journal
	}
	executor, err := service.NewExecutor(execOpts)
	if err != nil {
		return nil, fmt.Errorf("create executor: %w", err)
	}
	container.Executor = executor

	submitOpts := service.SubmitterOptions{Queue: executor, Logger: logger}
	statusOpts := service.StatusReaderOptions{Store: store, Logger: logger}
	if container.Registry != nil {
		submitOpts.Registry = container.Registry
		statusOpts.Registry = container.Registry
	}
	if container.Submitter, err = service.NewSubmitter(submitOpts); err != nil {
		return nil, fmt.Errorf("create submitter: %w", err)
	}
	if container.Status, err = service.NewStatusReader(statusOpts); err != nil {
		return nil, fmt.Errorf("create status reader: %w", err)
	}

	return container, nil
}

// buildObservability configures metrics and notification adapters.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	var metricsSink *statsd.Client
	if cfg.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Metrics.StatsdAddress,
			Prefix:  cfg.Metrics.Prefix,
			Logger:  logger,
		})
		if err != nil {
			logger.Error("failed to initialise statsd client", "error", err)
		} else {
			metricsSink = client
		}
	}

	return ObservabilityContainer{
		MetricsSink:     metricsSink,
		FailureNotifier: buildFailureNotifier(logger, cfg.Notifications),
	}
}

func buildFailureNotifier(logger *slog.Logger, cfg config.ObservabilityNotificationsConfig) *failurenotifier.Service {
	opts := failurenotifier.Options{
		Logger:          logger,
		DeliveryTimeout: cfg.Timeout,
	}
	if !cfg.Enabled {
		return failurenotifier.NewService(opts)
	}

	if cfg.Slack.Enabled {
		client, err := slack.NewClient(slack.Config{
			WebhookURL:      cfg.Slack.WebhookURL,
			Channel:         cfg.Slack.Channel,
			Username:        cfg.Slack.Username,
			Timeout:         cfg.Timeout,
			RetryLimit:      cfg.RetryLimit,
			StatusURLPrefix: cfg.Slack.StatusURLPrefix,
		})
		if err != nil {
			logger.Error("failed to initialise slack notifier", "error", err)
		} else {
			opts.Sinks = append(opts.Sinks, failurenotifier.SinkRegistration{Name: "slack", Sink: client})
		}
	}

	return failurenotifier.NewService(opts)
}
