package commands_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPendingOrder(t *testing.T, w *world) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), w.menuItem.ID, w.menuItem.Name, 1, w.menuItem.Price)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), w.customer.ID(), w.restaurant.ID, []order.Item{item},
		w.restaurant.DeliveryFee, kernel.ZeroMoney(), "1 Main St", "", time.Now())
	require.NoError(t, err)
	o.MarkPersisted()
	return o
}

func TestChangeOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	w := newWorld(t)
	o := newPendingOrder(t, w)

	mockRepo := new(MockOrderRepository)
	mockUoW := new(MockUoW)
	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("OrderRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		mockUoW.On("OrderRepository").Return(mockRepo).Once(),
		mockRepo.On("Update", ctx, o).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewChangeOrderStatusCommandHandler(mockUoWFactory(mockUoW), keylock.New(), w.publisher, nil, w.logger)

	// Act
	err := handler.Handle(ctx, statusCommand(t, o.ID(), order.Confirmed, nil, w.staff))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, order.Confirmed, o.Status())
	assert.Equal(t, order.Confirmed.EventType(), o.Events()[len(o.Events())-1].Type())

	msgs := w.publisher.all()
	require.Len(t, msgs, 1)
	assert.Equal(t, ports.OrderUpdateOf(o), msgs[0].message)
	assert.Equal(t, order.Confirmed.String(), msgs[0].message.Status)
	assert.Equal(t, len(o.Events()), msgs[0].message.Seq, "stamped with the confirmed event")
	assert.ElementsMatch(t, []ports.Recipient{
		ports.UserRecipient(w.customer.ID()),
		ports.RestaurantRecipient(w.restaurant.ID),
	}, msgs[0].recipients)

	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	// Arrange
	ctx := t.Context()
	w := newWorld(t)
	o := newPendingOrder(t, w)
	eventsBefore := len(o.Events())

	mockRepo := new(MockOrderRepository)
	mockUoW := new(MockUoW)
	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("OrderRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewChangeOrderStatusCommandHandler(mockUoWFactory(mockUoW), keylock.New(), w.publisher, nil, w.logger)

	// Act
	err := handler.Handle(ctx, statusCommand(t, o.ID(), order.Delivered, nil, kernel.SystemActor()))

	// Assert
	var invalid *order.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, order.Pending, invalid.From)
	assert.Equal(t, order.Delivered, invalid.To)
	assert.Equal(t, order.Pending, o.Status())
	assert.Len(t, o.Events(), eventsBefore)
	assert.Empty(t, w.publisher.all())
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockUoW.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_Unauthorized(t *testing.T) {
	// Arrange
	ctx := t.Context()
	w := newWorld(t)
	o := newPendingOrder(t, w)

	mockRepo := new(MockOrderRepository)
	mockUoW := new(MockUoW)
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("OrderRepository").Return(mockRepo).Once()
	mockRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewChangeOrderStatusCommandHandler(mockUoWFactory(mockUoW), keylock.New(), w.publisher, nil, w.logger)

	// Act
	err := handler.Handle(ctx, statusCommand(t, o.ID(), order.Confirmed, nil, w.customer))

	// Assert
	require.ErrorIs(t, err, order.ErrUnauthorized)
	assert.Equal(t, order.Pending, o.Status())
	assert.Empty(t, w.publisher.all())
	mockUoW.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_SameStatusIsNoop(t *testing.T) {
	// Arrange
	ctx := t.Context()
	w := newWorld(t)
	o := newPendingOrder(t, w)
	_, err := o.ApplyTransition(order.Confirmed, w.staff, time.Now())
	require.NoError(t, err)
	o.MarkPersisted()

	mockRepo := new(MockOrderRepository)
	mockUoW := new(MockUoW)
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("OrderRepository").Return(mockRepo).Once()
	mockRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewChangeOrderStatusCommandHandler(mockUoWFactory(mockUoW), keylock.New(), w.publisher, nil, w.logger)

	// Act
	err = handler.Handle(ctx, statusCommand(t, o.ID(), order.Confirmed, nil, w.staff))

	// Assert
	require.NoError(t, err)
	assert.Empty(t, w.publisher.all())
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockUoW.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_ReloadsAfterConcurrentUpdate(t *testing.T) {
	// Arrange
	ctx := t.Context()
	w := newWorld(t)
	stale := newPendingOrder(t, w)

	// Another instance cancelled the order between our read and our write.
	current := newPendingOrder(t, w)
	_, err := current.ApplyTransition(order.Cancelled, w.staff, time.Now())
	require.NoError(t, err)
	current.MarkPersisted()

	firstRepo, secondRepo := new(MockOrderRepository), new(MockOrderRepository)
	firstUoW, secondUoW := new(MockUoW), new(MockUoW)
	mock.InOrder(
		firstUoW.On("Begin", ctx).Return(nil).Once(),
		firstUoW.On("OrderRepository").Return(firstRepo).Once(),
		firstRepo.On("Get", ctx, stale.ID()).Return(stale, nil).Once(),
		firstUoW.On("OrderRepository").Return(firstRepo).Once(),
		firstRepo.On("Update", ctx, stale).Return(ports.ErrConcurrentUpdate).Once(),
		firstUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mock.InOrder(
		secondUoW.On("Begin", ctx).Return(nil).Once(),
		secondUoW.On("OrderRepository").Return(secondRepo).Once(),
		secondRepo.On("Get", ctx, stale.ID()).Return(current, nil).Once(),
		secondUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewChangeOrderStatusCommandHandler(
		mockUoWFactory(firstUoW, secondUoW), keylock.New(), w.publisher, nil, w.logger)

	// Act
	err = handler.Handle(ctx, statusCommand(t, stale.ID(), order.Confirmed, nil, w.staff))

	// Assert
	var invalid *order.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, order.Cancelled, invalid.From)
	assert.Empty(t, w.publisher.all())
	firstUoW.AssertExpectations(t)
	secondUoW.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_CommitError(t *testing.T) {
	// Arrange
	ctx := t.Context()
	w := newWorld(t)
	o := newPendingOrder(t, w)
	commitErr := errors.New("commit failed")

	mockRepo := new(MockOrderRepository)
	mockUoW := new(MockUoW)
	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("OrderRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		mockUoW.On("OrderRepository").Return(mockRepo).Once(),
		mockRepo.On("Update", ctx, o).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(commitErr).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewChangeOrderStatusCommandHandler(mockUoWFactory(mockUoW), keylock.New(), w.publisher, nil, w.logger)

	// Act
	err := handler.Handle(ctx, statusCommand(t, o.ID(), order.Confirmed, nil, w.staff))

	// Assert
	require.ErrorIs(t, err, commitErr)
	assert.Empty(t, w.publisher.all())
	mockUoW.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_InvalidCommand(t *testing.T) {
	w := newWorld(t)
	handler := commands.NewChangeOrderStatusCommandHandler(mockUoWFactory(new(MockUoW)), keylock.New(), w.publisher, nil, w.logger)

	err := handler.Handle(t.Context(), commands.ChangeOrderStatusCommand{})

	require.ErrorIs(t, err, commands.ErrChangeOrderStatusCommandIsNotConstructed)
}

func TestChangeOrderStatusCommandHandler_Handle_ReadyTriggersAssignment(t *testing.T) {
	// Arrange
	ctx := t.Context()
	w := newWorld(t)
	o := w.placeOrder(t)
	w.advance(t, o.ID(), order.Confirmed, order.Preparing)

	assigner := new(MockAssigner)
	assigner.On("Handle", ctx, mock.MatchedBy(func(cmd commands.AssignDeliveryPartnerCommand) bool {
		return cmd.OrderID().IsEqual(o.ID()) && cmd.Actor().Is(kernel.RoleSystem)
	})).Return(nil).Once()

	handler := commands.NewChangeOrderStatusCommandHandler(w.uowFactory(), w.locker, w.publisher, assigner, w.logger)

	// Act
	err := handler.Handle(ctx, statusCommand(t, o.ID(), order.ReadyForPickup, nil, w.staff))

	// Assert
	require.NoError(t, err)
	assigner.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_NoPartnerLeavesOrderReady(t *testing.T) {
	// Arrange
	ctx := t.Context()
	w := newWorld(t)
	o := w.placeOrder(t)
	w.advance(t, o.ID(), order.Confirmed, order.Preparing)

	// Act
	err := w.statusHandler(true).Handle(ctx, statusCommand(t, o.ID(), order.ReadyForPickup, nil, w.staff))

	// Assert
	require.NoError(t, err)
	stored := w.order(t, o.ID())
	assert.Equal(t, order.ReadyForPickup, stored.Status())
	assert.Nil(t, stored.Courier())
}

func TestChangeOrderStatusCommandHandler_Handle_FullDelivery(t *testing.T) {
	// Arrange
	ctx := t.Context()
	w := newWorld(t)
	w.addCourier(t, w.rider.ID(), 52.5210, 13.4060)
	o := w.placeOrder(t)
	handler := w.statusHandler(true)

	// Act
	require.NoError(t, handler.Handle(ctx, statusCommand(t, o.ID(), order.Confirmed, nil, w.staff)))
	require.NoError(t, handler.Handle(ctx, statusCommand(t, o.ID(), order.Preparing, nil, w.staff)))
	require.NoError(t, handler.Handle(ctx, statusCommand(t, o.ID(), order.ReadyForPickup, nil, w.staff)))

	assigned := w.order(t, o.ID())
	require.NotNil(t, assigned.Courier())
	assert.True(t, assigned.Courier().IsEqual(w.rider.ID()))
	require.NotNil(t, w.courier(t, w.rider.ID()).ActiveOrderID())

	require.NoError(t, handler.Handle(ctx, statusCommand(t, o.ID(), order.OutForDelivery, nil, w.rider)))
	require.NoError(t, handler.Handle(ctx, statusCommand(t, o.ID(), order.Delivered, nil, w.rider)))

	// Assert
	delivered := w.order(t, o.ID())
	assert.Equal(t, order.Delivered, delivered.Status())
	assert.Equal(t, delivered.Status(), delivered.StatusFromTrail())
	assert.Nil(t, w.courier(t, w.rider.ID()).ActiveOrderID(), "the partner is free again")

	var statuses []string
	for _, msg := range w.publisher.all() {
		statuses = append(statuses, msg.message.Status)
	}
	assert.Equal(t, []string{
		"confirmed", "preparing", "ready_for_pickup", "ready_for_pickup", "out_for_delivery", "delivered",
	}, statuses)

	last := w.publisher.all()[len(statuses)-1]
	assert.Contains(t, last.recipients, ports.UserRecipient(w.rider.ID()))
}

func TestChangeOrderStatusCommandHandler_Handle_ConcurrentReadyAndCancel(t *testing.T) {
	for range 20 {
		w := newWorld(t)
		o := w.placeOrder(t)
		w.advance(t, o.ID(), order.Confirmed, order.Preparing)
		handler := w.statusHandler(false)

		var (
			wg      sync.WaitGroup
			results [2]error
		)
		cmds := []commands.ChangeOrderStatusCommand{
			statusCommand(t, o.ID(), order.ReadyForPickup, nil, w.staff),
			statusCommand(t, o.ID(), order.Cancelled, nil, w.staff),
		}
		for i, cmd := range cmds {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i] = handler.Handle(t.Context(), cmd)
			}()
		}
		wg.Wait()

		succeeded := 0
		for _, err := range results {
			if err == nil {
				succeeded++
				continue
			}
			require.ErrorIs(t, err, order.ErrInvalidTransition)
		}
		require.Equal(t, 1, succeeded, "exactly one transition wins")

		stored := w.order(t, o.ID())
		ready, cancelled := 0, 0
		for _, e := range stored.Events() {
			switch e.Type() {
			case order.ReadyForPickup.EventType():
				ready++
			case order.Cancelled.EventType():
				cancelled++
			}
		}
		assert.Equal(t, 1, ready+cancelled)
		assert.Equal(t, stored.Status(), stored.StatusFromTrail())
		assert.Len(t, w.publisher.all(), 1)
	}
}

func TestChangeOrderStatusCommandHandler_Handle_ExpectedStatusMakesConfirmAndCancelExclusive(t *testing.T) {
	for range 20 {
		w := newWorld(t)
		o := w.placeOrder(t)
		handler := w.statusHandler(false)
		pending := order.Pending

		var (
			wg      sync.WaitGroup
			results [2]error
		)
		cmds := []commands.ChangeOrderStatusCommand{
			statusCommand(t, o.ID(), order.Confirmed, &pending, w.staff),
			statusCommand(t, o.ID(), order.Cancelled, &pending, w.staff),
		}
		for i, cmd := range cmds {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i] = handler.Handle(t.Context(), cmd)
			}()
		}
		wg.Wait()

		require.True(t, (results[0] == nil) != (results[1] == nil), "exactly one of confirm and cancel wins")
		stored := w.order(t, o.ID())
		if results[0] == nil {
			assert.Equal(t, order.Confirmed, stored.Status())
		} else {
			assert.Equal(t, order.Cancelled, stored.Status())
		}
	}
}
