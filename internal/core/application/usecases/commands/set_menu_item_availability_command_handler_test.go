package commands_test

import (
	"context"
	"errors"
	"testing"

	"tableside/internal/core/application/usecases/commands"
	"tableside/internal/core/domain/events"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/menu"
	"tableside/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMenuRepository struct{ mock.Mock }

func (m *MockMenuRepository) Add(ctx context.Context, item *menu.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockMenuRepository) Update(ctx context.Context, item *menu.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockMenuRepository) Get(ctx context.Context, id kernel.UUID) (*menu.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.Item), args.Error(1)
}
func (m *MockMenuRepository) GetByIDs(_ context.Context, _ []kernel.UUID) ([]*menu.Item, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockMenuRepository) GetAll(_ context.Context) ([]*menu.Item, error) {
	return nil, errors.New("not implemented in mock")
}

type MockMenuUoW struct{ mock.Mock }

func (m *MockMenuUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockMenuUoW) BeginSerializable(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockMenuUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockMenuUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockMenuUoW) MenuRepository() ports.MenuRepository {
	args := m.Called()
	return args.Get(0).(ports.MenuRepository)
}

type MockMenuUoWFactory struct{ mock.Mock }

func (m *MockMenuUoWFactory) Create() commands.MenuUoW {
	args := m.Called()
	return args.Get(0).(commands.MenuUoW)
}

func TestSetMenuItemAvailabilityCommandHandler_Handle_MarksSoldOut(t *testing.T) {
	ctx := t.Context()
	item, err := menu.NewItem(kernel.NewUUID(), "Flat White", 450)
	require.NoError(t, err)
	cmd, err := commands.NewSetMenuItemAvailabilityCommand(item.ID(), false)
	require.NoError(t, err)

	repo := new(MockMenuRepository)
	uow := new(MockMenuUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MenuRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, item.ID()).Return(item, nil).Once(),
		repo.On("Update", mock.Anything, item).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMenuUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		return e.Kind == events.KindMenuChanged
	})).Once()

	h := commands.NewSetMenuItemAvailabilityCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.False(t, item.Available())
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestSetMenuItemAvailabilityCommandHandler_Handle_UnknownItem(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewSetMenuItemAvailabilityCommand(id, true)
	require.NoError(t, err)

	repo := new(MockMenuRepository)
	uow := new(MockMenuUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MenuRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, id).Return(nil, errors.New("not found")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMenuUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	h := commands.NewSetMenuItemAvailabilityCommandHandler(factory, publisher)
	require.Error(t, h.Handle(ctx, cmd))
	publisher.AssertNotCalled(t, "Publish", mock.Anything)
}
