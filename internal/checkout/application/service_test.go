package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cart "github.com/wyfcoding/ecommerce/internal/cart/domain"
	"github.com/wyfcoding/ecommerce/internal/checkout/domain"
	orderapp "github.com/wyfcoding/ecommerce/internal/order/application"
	order "github.com/wyfcoding/ecommerce/internal/order/domain"
)

type memorySessionRepo struct {
	sessions map[string]domain.Session
	saveErr  error
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{sessions: make(map[string]domain.Session)}
}

func (r *memorySessionRepo) Get(_ context.Context, id string) (*domain.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := s
	return &copied, nil
}

func (r *memorySessionRepo) Save(_ context.Context, s *domain.Session) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.sessions[s.ID] = *s
	return nil
}

func (r *memorySessionRepo) Delete(_ context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

type fakeCartProvider struct {
	cart     *cart.Cart
	getErr   error
	cleared  bool
	clearErr error
}

func (f *fakeCartProvider) GetCart(_ context.Context, _ string) (*cart.Cart, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.cart, nil
}

func (f *fakeCartProvider) ClearCart(_ context.Context, _ string) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared = true
	return nil
}

type fakeOrderPlacer struct {
	orderID string
	err     error
	lastCmd orderapp.CreateOrderCommand
	calls   int
}

func (f *fakeOrderPlacer) CreateOrder(_ context.Context, cmd orderapp.CreateOrderCommand) (string, error) {
	f.calls++
	f.lastCmd = cmd
	if f.err != nil {
		return "", f.err
	}
	return f.orderID, nil
}

type seqIDGen struct{ n int }

func (g *seqIDGen) GenerateString(prefix string) string {
	g.n++
	return fmt.Sprintf("%s-%d", prefix, g.n)
}

func cartWithItems() *cart.Cart {
	c := &cart.Cart{UserID: "user-1"}
	c.AddItem(cart.CartItem{
		ProductID: "p-1",
		Name:      "Linen Shirt",
		UnitPrice: decimal.NewFromInt(500),
		Quantity:  2,
		Color:     "white",
		Size:      "M",
	})
	return c
}

func testCustomer() order.CustomerInfo {
	return order.CustomerInfo{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "asha.rao@example.com",
		Phone:     "9876543210",
		Address:   "12 MG Road",
		City:      "Bengaluru",
		State:     "Karnataka",
		Pincode:   "560001",
	}
}

func newService(repo *memorySessionRepo, carts *fakeCartProvider, orders *fakeOrderPlacer) *CheckoutApplicationService {
	return NewCheckoutApplicationService(repo, carts, orders, &seqIDGen{}, nil)
}

func advanceToConfirmation(t *testing.T, svc *CheckoutApplicationService) *domain.Session {
	t.Helper()
	ctx := context.Background()

	session, err := svc.StartCheckout(ctx, "user-1")
	require.NoError(t, err)
	_, err = svc.SubmitDetails(ctx, session.ID, testCustomer())
	require.NoError(t, err)
	session, err = svc.SelectPayment(ctx, session.ID, order.PaymentMethodCOD)
	require.NoError(t, err)
	require.Equal(t, domain.StepConfirmation, session.Step)
	return session
}

func TestStartCheckoutCreatesSession(t *testing.T) {
	repo := newMemorySessionRepo()
	svc := newService(repo, &fakeCartProvider{cart: cartWithItems()}, &fakeOrderPlacer{})

	session, err := svc.StartCheckout(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepCustomerDetails, session.Step)
	assert.Contains(t, repo.sessions, session.ID)
}

func TestStartCheckoutRejectsEmptyCart(t *testing.T) {
	svc := newService(newMemorySessionRepo(), &fakeCartProvider{cart: &cart.Cart{UserID: "user-1"}}, &fakeOrderPlacer{})

	_, err := svc.StartCheckout(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderHappyPath(t *testing.T) {
	repo := newMemorySessionRepo()
	carts := &fakeCartProvider{cart: cartWithItems()}
	orders := &fakeOrderPlacer{orderID: "ORD-1001"}
	svc := newService(repo, carts, orders)

	session := advanceToConfirmation(t, svc)

	placed, err := svc.PlaceOrder(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepPlaced, placed.Step)
	assert.Equal(t, "ORD-1001", placed.OrderID)
	assert.True(t, carts.cleared)

	// 会话 ID 作为幂等键传给订单服务
	assert.Equal(t, session.ID, orders.lastCmd.ClientOrderID)
	assert.Equal(t, "user-1", orders.lastCmd.UserID)
	require.Len(t, orders.lastCmd.Items, 1)
	assert.Equal(t, "p-1", orders.lastCmd.Items[0].ProductID)
	assert.Equal(t, 2, orders.lastCmd.Items[0].Quantity)
}

func TestPlaceOrderFailureKeepsCart(t *testing.T) {
	repo := newMemorySessionRepo()
	carts := &fakeCartProvider{cart: cartWithItems()}
	orders := &fakeOrderPlacer{err: errors.New("order service unavailable")}
	svc := newService(repo, carts, orders)

	session := advanceToConfirmation(t, svc)

	failed, err := svc.PlaceOrder(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepConfirmation, failed.Step)
	assert.Equal(t, "order service unavailable", failed.LastError)
	assert.False(t, carts.cleared)
}

func TestPlaceOrderRetryAfterFailure(t *testing.T) {
	repo := newMemorySessionRepo()
	carts := &fakeCartProvider{cart: cartWithItems()}
	orders := &fakeOrderPlacer{err: errors.New("transient")}
	svc := newService(repo, carts, orders)

	session := advanceToConfirmation(t, svc)

	_, err := svc.PlaceOrder(context.Background(), session.ID)
	require.NoError(t, err)

	orders.err = nil
	orders.orderID = "ORD-1002"

	placed, err := svc.PlaceOrder(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepPlaced, placed.Step)
	assert.Equal(t, "ORD-1002", placed.OrderID)
	assert.Equal(t, 2, orders.calls)
	// 两次提交携带同一个幂等键
	assert.Equal(t, session.ID, orders.lastCmd.ClientOrderID)
}

func TestPlaceOrderWithEmptiedCartFails(t *testing.T) {
	repo := newMemorySessionRepo()
	carts := &fakeCartProvider{cart: cartWithItems()}
	svc := newService(repo, carts, &fakeOrderPlacer{orderID: "ORD-1"})

	session := advanceToConfirmation(t, svc)

	// 会话进行中购物车被清空
	carts.cart = &cart.Cart{UserID: "user-1"}

	failed, err := svc.PlaceOrder(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepConfirmation, failed.Step)
	assert.Equal(t, ErrEmptyCart.Error(), failed.LastError)
}

func TestPlaceOrderRequiresConfirmationStep(t *testing.T) {
	repo := newMemorySessionRepo()
	svc := newService(repo, &fakeCartProvider{cart: cartWithItems()}, &fakeOrderPlacer{})

	session, err := svc.StartCheckout(context.Background(), "user-1")
	require.NoError(t, err)

	_, err = svc.PlaceOrder(context.Background(), session.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStep)
}

func TestPlaceOrderUnknownSession(t *testing.T) {
	svc := newService(newMemorySessionRepo(), &fakeCartProvider{cart: cartWithItems()}, &fakeOrderPlacer{})

	_, err := svc.PlaceOrder(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestBackFromPaymentStep(t *testing.T) {
	repo := newMemorySessionRepo()
	svc := newService(repo, &fakeCartProvider{cart: cartWithItems()}, &fakeOrderPlacer{})

	session, err := svc.StartCheckout(context.Background(), "user-1")
	require.NoError(t, err)
	_, err = svc.SubmitDetails(context.Background(), session.ID, testCustomer())
	require.NoError(t, err)

	back, err := svc.Back(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepCustomerDetails, back.Step)
}
