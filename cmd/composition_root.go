package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	httpin "certify/internal/adapters/in/http"
	"certify/internal/adapters/out/assembler"
	"certify/internal/adapters/out/email"
	"certify/internal/adapters/out/engine"
	"certify/internal/adapters/out/fetch"
	"certify/internal/adapters/out/notify"
	"certify/internal/adapters/out/postgres"
	"certify/internal/core/application/usecases/commands"
	"certify/internal/core/application/usecases/queries"
	"certify/internal/core/domain/services"
	"certify/internal/jobs"
)

const (
	engineTimeout            = 10 * time.Second
	defaultFetchTimeout      = 30 * time.Second
	defaultWatchdogThreshold = 10 * time.Minute
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	planner   services.AssemblyPlanner
	broker    *notify.Broker
	assembler *assembler.PDFAssembler
	engine    *engine.Client
	fetcher   *fetch.HTTPPageFetcher
	sender    *email.SMTPSender

	watchdogThreshold time.Duration
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	var fontData []byte
	if configs.FontFile != "" {
		data, err := os.ReadFile(configs.FontFile)
		if err != nil {
			return nil, fmt.Errorf("read font file: %w", err)
		}
		fontData = data
	}
	pdfAssembler, err := assembler.NewPDFAssembler(fontData)
	if err != nil {
		return nil, fmt.Errorf("create assembler: %w", err)
	}

	smtpPort, err := strconv.Atoi(configs.SMTPPort)
	if err != nil {
		return nil, fmt.Errorf("parse SMTP_PORT: %w", err)
	}
	fetchTimeout, err := durationOrDefault(configs.FetchTimeout, defaultFetchTimeout)
	if err != nil {
		return nil, fmt.Errorf("parse FETCH_TIMEOUT: %w", err)
	}
	watchdogThreshold, err := durationOrDefault(configs.WatchdogThreshold, defaultWatchdogThreshold)
	if err != nil {
		return nil, fmt.Errorf("parse WATCHDOG_THRESHOLD: %w", err)
	}

	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,

		planner:   services.NewAssemblyPlanner(),
		broker:    notify.NewBroker(),
		assembler: pdfAssembler,
		engine:    engine.NewClient(configs.EngineURL, configs.CallbackBaseURL, engineTimeout, logger),
		fetcher:   fetch.NewHTTPPageFetcher(fetchTimeout),
		sender:    email.NewSMTPSender(configs.SMTPHost, smtpPort, configs.SMTPUsername, configs.SMTPPassword, configs.SMTPFrom),

		watchdogThreshold: watchdogThreshold,
	}, nil
}

func durationOrDefault(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	return time.ParseDuration(raw)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.broker)
}

func (c *CompositionRoot) CreateMarkOrderPaidCommandHandler() commands.MarkOrderPaidCommandHandler {
	return commands.NewMarkOrderPaidCommandHandler(c.orderUoWFactory(), c.broker)
}

func (c *CompositionRoot) CreateSetManualEditsCommandHandler() commands.SetManualEditsCommandHandler {
	return commands.NewSetManualEditsCommandHandler(c.orderUoWFactory(), c.broker)
}

func (c *CompositionRoot) CreateTriggerReconstructionCommandHandler() commands.TriggerReconstructionCommandHandler {
	return commands.NewTriggerReconstructionCommandHandler(c.orderUoWFactory(), c.engine, c.broker)
}

func (c *CompositionRoot) CreateApplyReconstructionResultCommandHandler() commands.ApplyReconstructionResultCommandHandler {
	return commands.NewApplyReconstructionResultCommandHandler(c.orderUoWFactory(), c.broker, c.logger)
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	return commands.NewDispatchOrderCommandHandler(
		c.orderUoWFactory(),
		c.planner,
		c.fetcher,
		c.assembler,
		c.sender,
		c.broker,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAwaitingDispatchQueryHandler() queries.GetAwaitingDispatchQueryHandler {
	return queries.NewGetAwaitingDispatchQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreatePreviewDocumentQueryHandler() queries.PreviewDocumentQueryHandler {
	return queries.NewPreviewDocumentQueryHandler(c.gormDB, c.planner, c.assembler)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateMarkOrderPaidCommandHandler(),
		c.CreateSetManualEditsCommandHandler(),
		c.CreateTriggerReconstructionCommandHandler(),
		c.CreateApplyReconstructionResultCommandHandler(),
		c.CreateDispatchOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetAwaitingDispatchQueryHandler(),
		c.CreatePreviewDocumentQueryHandler(),
		c.broker,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.gormDB, c.watchdogThreshold, c.logger)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

// FuncOrderUoWFactory adapts the gorm unit-of-work factory to the
// application-layer factory interface.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
