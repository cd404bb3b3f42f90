package postgres_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	postgres_adapter "parcels/internal/adapters/out/postgres"
	"parcels/internal/adapters/out/postgres/pgtest"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/ports"

	"github.com/stretchr/testify/suite"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work against PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	factory  ports.UnitOfWorkFactory
	logs     *bytes.Buffer
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.logs = new(bytes.Buffer)
	logger := slog.New(slog.NewTextHandler(suite.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.database.DB, logger)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Stop(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.ParcelRepository())
	suite.NotNil(uow1.ParcelTypeRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().Error(uow.Commit(ctx), "Commit without an open transaction")
	suite.Require().Error(uow.Rollback(ctx), "Rollback without an open transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsTypeAndParcel() {
	ctx := context.Background()
	uow := suite.factory.Create()
	parcelType, p := suite.newTypeAndParcel("Electronics")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelTypeRepository().Add(ctx, parcelType))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))

	tracked := uow.(*postgres_adapter.GormUnitOfWork).TrackedAggregates()
	suite.Require().Len(tracked, 1)
	suite.True(tracked[0].ID.IsEqual(p.ID()))

	suite.Require().NoError(uow.Commit(ctx))
	suite.Contains(suite.logs.String(), "Transaction committed")
	suite.Contains(suite.logs.String(), p.ID().String())
	suite.Empty(uow.(*postgres_adapter.GormUnitOfWork).TrackedAggregates())

	got, err := suite.factory.Create().ParcelRepository().GetByIDAndSession(ctx, p.ID(), p.SessionKey())
	suite.Require().NoError(err)
	suite.Equal("Electronics", got.Type().Name())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()
	parcelType, p := suite.newTypeAndParcel("Clothing")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelTypeRepository().Add(ctx, parcelType))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))

	_, err := uow.ParcelRepository().GetByIDAndSession(ctx, p.ID(), p.SessionKey())
	suite.Require().NoError(err, "Parcel is visible inside its transaction")

	suite.Require().NoError(uow.Rollback(ctx))
	suite.Empty(uow.(*postgres_adapter.GormUnitOfWork).TrackedAggregates())
	suite.NotContains(suite.logs.String(), p.ID().String())

	fresh := suite.factory.Create()
	_, err = fresh.ParcelRepository().GetByIDAndSession(ctx, p.ID(), p.SessionKey())
	suite.Require().Error(err)
	_, err = fresh.ParcelTypeRepository().Get(ctx, parcelType.ID())
	suite.Require().Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()
	parcelType, p := suite.newTypeAndParcel("Misc")

	suite.Require().NoError(uow.ParcelTypeRepository().Add(ctx, parcelType))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))

	unpriced, err := suite.factory.Create().ParcelRepository().GetAllUnpriced(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(unpriced, 1)
	suite.True(unpriced[0].ID().IsEqual(p.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) newTypeAndParcel(typeName string) (parcel.ParcelType, *parcel.Parcel) {
	parcelType, err := parcel.NewParcelType(kernel.NewUUID(), typeName)
	suite.Require().NoError(err)

	p, err := parcel.NewParcel(kernel.NewUUID(), kernel.NewSessionKey(), "Item", 1, 10, parcelType,
		time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	suite.Require().NoError(err)
	return parcelType, p
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
