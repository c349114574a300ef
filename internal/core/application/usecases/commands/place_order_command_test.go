package commands_test

import (
	"testing"

	"tableside/internal/core/application/usecases/commands"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlaceOrderCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	tableID := kernel.NewUUID()
	line, err := order.NewLine(kernel.NewUUID(), 3)
	require.NoError(t, err)

	cmd, err := commands.NewPlaceOrderCommand(orderID, tableID, []order.Line{line})
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, tableID, cmd.TableID())
	assert.Len(t, cmd.Lines(), 1)
}

func TestNewPlaceOrderCommand_InvalidOrderID(t *testing.T) {
	line, err := order.NewLine(kernel.NewUUID(), 1)
	require.NoError(t, err)

	_, err = commands.NewPlaceOrderCommand(kernel.UUID{}, kernel.NewUUID(), []order.Line{line})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewPlaceOrderCommand_NoLines(t *testing.T) {
	_, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), kernel.NewUUID(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrLinesAreRequired)
}

func TestNewPlaceOrderCommand_UnconstructedLine(t *testing.T) {
	_, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), kernel.NewUUID(), []order.Line{{}})
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrLineIsNotConstructed)
}
