package postgres_test

import (
	"context"
	"testing"
	"time"

	"tableside/internal/adapters/out/postgres"
	"tableside/internal/adapters/out/postgres/menurepo"
	"tableside/internal/adapters/out/postgres/orderrepo"
	"tableside/internal/adapters/out/postgres/settingsrepo"
	"tableside/internal/adapters/out/postgres/tablerepo"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/core/domain/model/settings"
	"tableside/internal/core/domain/model/table"
	"tableside/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies transaction semantics of the GORM
// unit of work against a real PostgreSQL instance.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineDTO{},
		&tablerepo.TableDTO{},
		&menurepo.ItemDTO{},
		&settingsrepo.SettingsDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_lines, tables, menu_items, settings CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	line, err := order.NewLine(kernel.NewUUID(), 1)
	suite.Require().NoError(err)
	ord, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.Line{line}, time.Now())
	suite.Require().NoError(err)
	return ord
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	tbl, err := table.NewTable(kernel.NewUUID(), "Window 1", kernel.NewRandomPin())
	suite.Require().NoError(err)
	err = uow.TableRepository().Add(ctx, tbl)
	suite.Require().NoError(err)

	ord := suite.newOrder()
	err = uow.OrderRepository().Add(ctx, ord)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	check := suite.factory.Create()
	gotTable, err := check.TableRepository().Get(ctx, tbl.ID())
	suite.Require().NoError(err)
	suite.True(gotTable.IsEqual(tbl))

	gotOrder, err := check.OrderRepository().Get(ctx, ord.ID())
	suite.Require().NoError(err)
	suite.True(gotOrder.IsEqual(ord))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsEverything() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	ord := suite.newOrder()
	err = uow.OrderRepository().Add(ctx, ord)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	check := suite.factory.Create()
	_, err = check.OrderRepository().Get(ctx, ord.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBeginSerializable_CommitSucceedsWithoutConflict() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.BeginSerializable(ctx)
	suite.Require().NoError(err)

	ord := suite.newOrder()
	err = uow.OrderRepository().Add(ctx, ord)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin_Fails() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestSettings_DefaultThenUpsert() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	got, err := uow.SettingsRepository().Get(ctx)
	suite.Require().NoError(err)
	suite.Equal(settings.DefaultMaxItemsPerOrder, got.MaxItemsPerOrder())

	limits, err := settings.NewSettings(5, 1)
	suite.Require().NoError(err)
	err = uow.SettingsRepository().Save(ctx, limits)
	suite.Require().NoError(err)

	// Saving again overwrites the same row.
	limits2, err := settings.NewSettings(7, 2)
	suite.Require().NoError(err)
	err = uow.SettingsRepository().Save(ctx, limits2)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	check := suite.factory.Create()
	got, err = check.SettingsRepository().Get(ctx)
	suite.Require().NoError(err)
	suite.Equal(7, got.MaxItemsPerOrder())
	suite.Equal(2, got.MaxActiveOrdersPerTable())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
