package cmd

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	httpin "tableside/internal/adapters/in/http"
	"tableside/internal/adapters/out/postgres"
	"tableside/internal/adapters/out/postgres/staffrepo"
	"tableside/internal/core/application/auth"
	"tableside/internal/core/application/usecases/commands"
	"tableside/internal/core/application/usecases/queries"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/table"
	"tableside/internal/eventbus"
	"tableside/internal/jobs"
	"tableside/internal/sessions"
)

// CompositionRoot wires adapters into application components. Everything is
// built once at startup; handlers are cheap to create per use.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	bus        *eventbus.Bus
	store      *sessions.Store
	gate       *auth.Gate
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	store := sessions.NewStore()

	// Login and lazy revalidation read current table state outside any
	// command transaction.
	tableReads := readOnlyUoW{postgres.NewGormUnitOfWorkFactory(gormDB)}

	gate := auth.NewGate(
		store,
		tableReads,
		staffrepo.NewGormStaffRepository(gormDB),
		config.CustomerSessionTTL,
		config.StaffSessionTTL,
		time.Now,
	)

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		bus:        eventbus.NewBus(logger),
		store:      store,
		gate:       gate,
		logger:     logger,
	}
}

// Bus returns the in-process event bus.
func (c *CompositionRoot) Bus() *eventbus.Bus {
	return c.bus
}

// SessionStore returns the in-memory session store.
func (c *CompositionRoot) SessionStore() *sessions.Store {
	return c.store
}

// Gate returns the authentication gate.
func (c *CompositionRoot) Gate() *auth.Gate {
	return c.gate
}

// CreateHTTPServer assembles the HTTP server over every command and query
// handler.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	handlers := httpin.Handlers{
		PlaceOrder:     c.CreatePlaceOrderCommandHandler(),
		AdvanceOrder:   c.CreateAdvanceOrderCommandHandler(),
		CancelOrder:    c.CreateCancelOrderCommandHandler(),
		DeleteOrder:    c.CreateDeleteOrderCommandHandler(),
		AddTable:       c.CreateAddTableCommandHandler(),
		RenameTable:    c.CreateRenameTableCommandHandler(),
		DeleteTable:    c.CreateDeleteTableCommandHandler(),
		RotatePin:      c.CreateRotatePinCommandHandler(),
		SetItemAvail:   c.CreateSetMenuItemAvailabilityCommandHandler(),
		UpdateSettings: c.CreateUpdateSettingsCommandHandler(),

		GetTableOrders:  c.CreateGetTableOrdersQueryHandler(),
		GetActiveOrders: c.CreateGetActiveOrdersQueryHandler(),
	}

	return httpin.NewServer(handlers, c.gate, c.bus, c.logger.With("component", "http"))
}

// CreateJobManager assembles the background jobs around the HTTP server's
// stream registry and the session store.
func (c *CompositionRoot) CreateJobManager(heartbeater jobs.Heartbeater) *jobs.JobManager {
	return jobs.NewJobManager(heartbeater, c.store, c.logger)
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.PlaceOrderUoWFactory = FuncPlaceOrderUoWFactory(func() commands.PlaceOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.bus, time.Now)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	return commands.NewAdvanceOrderCommandHandler(c.orderUoWFactory(), c.bus)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.bus)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory(), c.bus)
}

func (c *CompositionRoot) CreateAddTableCommandHandler() commands.AddTableCommandHandler {
	return commands.NewAddTableCommandHandler(c.tableUoWFactory(), c.bus)
}

func (c *CompositionRoot) CreateRenameTableCommandHandler() commands.RenameTableCommandHandler {
	return commands.NewRenameTableCommandHandler(c.tableUoWFactory(), c.bus)
}

func (c *CompositionRoot) CreateDeleteTableCommandHandler() commands.DeleteTableCommandHandler {
	return commands.NewDeleteTableCommandHandler(c.tableUoWFactory(), c.bus)
}

func (c *CompositionRoot) CreateRotatePinCommandHandler() commands.RotatePinCommandHandler {
	return commands.NewRotatePinCommandHandler(c.tableUoWFactory(), c.bus)
}

func (c *CompositionRoot) CreateSetMenuItemAvailabilityCommandHandler() commands.SetMenuItemAvailabilityCommandHandler {
	var f commands.MenuUoWFactory = FuncMenuUoWFactory(func() commands.MenuUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetMenuItemAvailabilityCommandHandler(f, c.bus)
}

func (c *CompositionRoot) CreateUpdateSettingsCommandHandler() commands.UpdateSettingsCommandHandler {
	var f commands.SettingsUoWFactory = FuncSettingsUoWFactory(func() commands.SettingsUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateSettingsCommandHandler(f, c.bus)
}

func (c *CompositionRoot) CreateGetTableOrdersQueryHandler() queries.GetTableOrdersQueryHandler {
	return queries.NewGetTableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) tableUoWFactory() commands.TableUoWFactory {
	return FuncTableUoWFactory(func() commands.TableUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPlaceOrderUoWFactory func() commands.PlaceOrderUoW

func (f FuncPlaceOrderUoWFactory) Create() commands.PlaceOrderUoW {
	return f()
}

type FuncTableUoWFactory func() commands.TableUoW

func (f FuncTableUoWFactory) Create() commands.TableUoW {
	return f()
}

type FuncMenuUoWFactory func() commands.MenuUoW

func (f FuncMenuUoWFactory) Create() commands.MenuUoW {
	return f()
}

type FuncSettingsUoWFactory func() commands.SettingsUoW

func (f FuncSettingsUoWFactory) Create() commands.SettingsUoW {
	return f()
}

// readOnlyUoW adapts the unit of work factory to the gate's plain table
// reads. Each Get runs on a fresh non-transactional repository.
type readOnlyUoW struct {
	factory *postgres.GormUnitOfWorkFactory
}

func (r readOnlyUoW) Get(ctx context.Context, id kernel.UUID) (*table.Table, error) {
	return r.factory.Create().TableRepository().Get(ctx, id)
}
