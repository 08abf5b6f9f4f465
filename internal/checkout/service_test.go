package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hfchoice/storefront/internal/mailer"
	"github.com/hfchoice/storefront/internal/orders"
	"github.com/hfchoice/storefront/internal/shared"
)

// ============================================================================
// MOCKS
// ============================================================================

type mockOrderRepository struct {
	orders      map[int64]*orders.Order
	nextID      int64
	createError error
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: make(map[int64]*orders.Order), nextID: 1}
}

func (m *mockOrderRepository) Create(ctx context.Context, order orders.Order) (*orders.Order, error) {
	if m.createError != nil {
		return nil, m.createError
	}
	order.ID = m.nextID
	m.nextID++
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	m.orders[order.ID] = &order
	copied := order
	return &copied, nil
}

func (m *mockOrderRepository) Get(ctx context.Context, id int64) (*orders.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (m *mockOrderRepository) GetForOwner(ctx context.Context, id int64, ownerKey string) (*orders.Order, error) {
	o, ok := m.orders[id]
	if !ok || o.OwnerKey != ownerKey {
		return nil, shared.ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (m *mockOrderRepository) ListAll(ctx context.Context) ([]orders.Order, error) {
	var result []orders.Order
	for _, o := range m.orders {
		result = append(result, *o)
	}
	return result, nil
}

func (m *mockOrderRepository) ListByOwner(ctx context.Context, ownerKey string) ([]orders.Order, error) {
	var result []orders.Order
	for _, o := range m.orders {
		if o.OwnerKey == ownerKey {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id int64, status orders.Status) (*orders.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	o.Status = status
	copied := *o
	return &copied, nil
}

type mockMailer struct {
	sent []mailer.Message

	// failAfter fails every Send once len(sent) reaches it. Zero means
	// every Send fails.
	failAfter int
	sendError error
}

func (m *mockMailer) Send(msg mailer.Message) error {
	if m.sendError != nil && len(m.sent) >= m.failAfter {
		return m.sendError
	}
	m.sent = append(m.sent, msg)
	return nil
}

func validRequest() Request {
	return Request{
		Cart: []orders.Item{
			{Description: "Basin Faucet", Code: "FAU-100", Brand: "Aqualine", Quantity: 2},
			{Description: "Ceramic Tile 60x60", Code: "TIL-220", Quantity: 3},
		},
		UserEmail:    "shopper@example.com",
		CustomerName: "Dana Reyes",
		Phone:        "555-0147",
		Notes:        "Need delivery before Friday",
	}
}

// ============================================================================
// SUBMIT
// ============================================================================

func TestSubmitPersistsQuoteOrder(t *testing.T) {
	repo := newMockOrderRepository()
	mail := &mockMailer{}
	svc := NewService(repo, mail, "staff@hfchoice.example")
	ctx := context.Background()

	order, err := svc.Submit(ctx, "user-a", validRequest())
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, orders.StatusQuote, order.Status)
	assert.Equal(t, "user-a", order.OwnerKey)
	assert.Equal(t, "shopper@example.com", order.Email)
	assert.Equal(t, 5, order.TotalItems)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, "Dana Reyes", order.CustomerName)
}

func TestSubmitSendsBothEmails(t *testing.T) {
	repo := newMockOrderRepository()
	mail := &mockMailer{}
	svc := NewService(repo, mail, "staff@hfchoice.example")
	ctx := context.Background()

	_, err := svc.Submit(ctx, "user-a", validRequest())
	require.NoError(t, err)
	require.Len(t, mail.sent, 2)

	staff := mail.sent[0]
	assert.Equal(t, "staff@hfchoice.example", staff.To)
	assert.Contains(t, staff.Subject, "New Quote Request")
	assert.Contains(t, staff.Body, "Basin Faucet")
	assert.Contains(t, staff.Body, "Dana Reyes")

	customer := mail.sent[1]
	assert.Equal(t, "shopper@example.com", customer.To)
	assert.Contains(t, customer.Subject, "Confirmation")
	assert.Contains(t, customer.Body, "Need delivery before Friday")
}

func TestSubmitEmptyCart(t *testing.T) {
	repo := newMockOrderRepository()
	mail := &mockMailer{}
	svc := NewService(repo, mail, "staff@hfchoice.example")

	req := validRequest()
	req.Cart = nil

	_, err := svc.Submit(context.Background(), "user-a", req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidArgument))
	assert.Empty(t, repo.orders)
	assert.Empty(t, mail.sent)
}

func TestSubmitMissingEmail(t *testing.T) {
	repo := newMockOrderRepository()
	mail := &mockMailer{}
	svc := NewService(repo, mail, "staff@hfchoice.example")

	req := validRequest()
	req.UserEmail = ""

	_, err := svc.Submit(context.Background(), "user-a", req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidArgument))
}

func TestSubmitZeroQuantityCountsAsOne(t *testing.T) {
	repo := newMockOrderRepository()
	mail := &mockMailer{}
	svc := NewService(repo, mail, "staff@hfchoice.example")

	req := validRequest()
	req.Cart = []orders.Item{
		{Description: "Basin Faucet", Code: "FAU-100"},
		{Description: "Ceramic Tile 60x60", Code: "TIL-220", Quantity: 4},
	}

	order, err := svc.Submit(context.Background(), "user-a", req)
	require.NoError(t, err)
	assert.Equal(t, 5, order.TotalItems)
}

func TestSubmitMailFailureKeepsOrder(t *testing.T) {
	repo := newMockOrderRepository()
	mail := &mockMailer{sendError: errors.New("smtp: connection refused")}
	svc := NewService(repo, mail, "staff@hfchoice.example")
	ctx := context.Background()

	order, err := svc.Submit(ctx, "user-a", validRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrDependencyFailure))

	// The order is persisted and returned alongside the error.
	require.NotNil(t, order)
	persisted, getErr := repo.Get(ctx, order.ID)
	require.NoError(t, getErr)
	assert.Equal(t, orders.StatusQuote, persisted.Status)
}

func TestSubmitSecondMailFailureStillFails(t *testing.T) {
	repo := newMockOrderRepository()
	mail := &mockMailer{sendError: errors.New("smtp: timeout"), failAfter: 1}
	svc := NewService(repo, mail, "staff@hfchoice.example")

	order, err := svc.Submit(context.Background(), "user-a", validRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrDependencyFailure))

	// Staff notification went out before the confirmation failed.
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "staff@hfchoice.example", mail.sent[0].To)
	require.NotNil(t, order)
	assert.NotEmpty(t, repo.orders)
}

func TestSubmitPersistFailureSendsNoMail(t *testing.T) {
	repo := newMockOrderRepository()
	repo.createError = errors.New("pg: connection reset")
	mail := &mockMailer{}
	svc := NewService(repo, mail, "staff@hfchoice.example")

	_, err := svc.Submit(context.Background(), "user-a", validRequest())
	require.Error(t, err)
	assert.False(t, errors.Is(err, shared.ErrDependencyFailure))
	assert.Empty(t, mail.sent)
}

func TestSubmitBodiesMentionEveryItem(t *testing.T) {
	repo := newMockOrderRepository()
	mail := &mockMailer{}
	svc := NewService(repo, mail, "staff@hfchoice.example")

	_, err := svc.Submit(context.Background(), "user-a", validRequest())
	require.NoError(t, err)
	require.Len(t, mail.sent, 2)

	for _, msg := range mail.sent {
		for _, want := range []string{"FAU-100", "TIL-220", "Total Items: 5"} {
			assert.True(t, strings.Contains(msg.Body, want), "body missing %q", want)
		}
	}
}
