package cmd

import (
	"log/slog"

	httpin "jewelflow/internal/adapters/in/http"
	"jewelflow/internal/adapters/out/postgres"
	"jewelflow/internal/core/application/usecases/commands"
	"jewelflow/internal/core/application/usecases/queries"
	"jewelflow/internal/core/domain/model/task"
	"jewelflow/internal/core/ports"
	"jewelflow/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	alerts     ports.TaskAlertPublisher
	storage    ports.EvidenceStorage
	thresholds task.Thresholds
	logger     *slog.Logger
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	alerts ports.TaskAlertPublisher,
	storage ports.EvidenceStorage,
	logger *slog.Logger,
) CompositionRoot {
	thresholds := task.DefaultThresholds()
	if configs.HighPriorityDays > 0 {
		thresholds.HighDays = configs.HighPriorityDays
	}
	if configs.MediumPriorityDays > 0 {
		thresholds.MediumDays = configs.MediumPriorityDays
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		alerts:     alerts,
		storage:    storage,
		thresholds: thresholds,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateClaimTaskCommandHandler() commands.ClaimTaskCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimTaskCommandHandler(f)
}

func (c *CompositionRoot) CreateReleaseTaskCommandHandler() commands.ReleaseTaskCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReleaseTaskCommandHandler(f)
}

func (c *CompositionRoot) CreateCompleteTaskCommandHandler() commands.CompleteTaskCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteTaskCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListPendingTasksQueryHandler() queries.ListPendingTasksQueryHandler {
	return queries.NewListPendingTasksQueryHandler(c.gormDB, c.thresholds)
}

func (c *CompositionRoot) CreateGetStageLoadQueryHandler() queries.GetStageLoadQueryHandler {
	return queries.NewGetStageLoadQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateClaimTaskCommandHandler(),
		c.CreateReleaseTaskCommandHandler(),
		c.CreateCompleteTaskCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateListOrdersQueryHandler(),
		c.CreateListPendingTasksQueryHandler(),
		c.CreateGetStageLoadQueryHandler(),
		c.storage,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateListPendingTasksQueryHandler(),
		c.alerts,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
