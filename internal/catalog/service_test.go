package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hfchoice/storefront/internal/shared"
)

// ============================================================================
// MOCK REPOSITORY
// ============================================================================

type mockRepository struct {
	products  map[int64]*Product
	nextID    int64
	listCalls int
}

func newMockRepository() *mockRepository {
	return &mockRepository{products: make(map[int64]*Product), nextID: 1}
}

func (m *mockRepository) List(ctx context.Context, filters ListFilters) ([]Product, int, error) {
	m.listCalls++
	var result []Product
	for id := int64(1); id < m.nextID; id++ {
		p, ok := m.products[id]
		if !ok {
			continue
		}
		if filters.VisibleOnly && !p.Visible {
			continue
		}
		if filters.Group != "" && p.Group != filters.Group {
			continue
		}
		if filters.Brand != "" && p.Brand != filters.Brand {
			continue
		}
		if filters.Search != "" {
			needle := strings.ToLower(filters.Search)
			if !strings.Contains(strings.ToLower(p.Description), needle) &&
				!strings.Contains(strings.ToLower(p.Code), needle) {
				continue
			}
		}
		result = append(result, *p)
	}
	return result, len(result), nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *mockRepository) Create(ctx context.Context, p Product) (*Product, error) {
	p.ID = m.nextID
	m.nextID++
	m.products[p.ID] = &p
	copied := p
	return &copied, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, p Product) (*Product, error) {
	if _, ok := m.products[id]; !ok {
		return nil, shared.ErrNotFound
	}
	p.ID = id
	m.products[id] = &p
	copied := p
	return &copied, nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.products[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockRepository) ToggleVisibility(ctx context.Context, id int64) (*Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	p.Visible = !p.Visible
	copied := *p
	return &copied, nil
}

func (m *mockRepository) SetImageRef(ctx context.Context, id int64, ref string) (*Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	p.ImageRef = ref
	copied := *p
	return &copied, nil
}

func newTestService(t *testing.T) (*Service, *mockRepository) {
	t.Helper()
	repo := newMockRepository()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(repo, NewCache(client, time.Minute)), repo
}

func faucetForm() ProductForm {
	return ProductForm{
		Code:        "FAU-100",
		Description: "Basin Faucet",
		Brand:       "Aqualine",
		Group:       "Plumbing",
		Unit:        "pc",
		Cost:        45.50,
	}
}

// ============================================================================
// CRUD
// ============================================================================

func TestCreateProduct(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, faucetForm())
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "FAU-100", p.Code)
	assert.Equal(t, 45.50, p.Cost)
	assert.True(t, p.Visible, "visibility defaults to true")
}

func TestCreateProductExplicitlyHidden(t *testing.T) {
	svc, _ := newTestService(t)

	form := faucetForm()
	hidden := false
	form.Visible = &hidden

	p, err := svc.Create(context.Background(), form)
	require.NoError(t, err)
	assert.False(t, p.Visible)
}

func TestCreateProductValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	form := faucetForm()
	form.Code = "   "
	_, err := svc.Create(ctx, form)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidArgument))

	form = faucetForm()
	form.Description = ""
	_, err = svc.Create(ctx, form)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidArgument))

	form = faucetForm()
	form.Cost = -1
	_, err = svc.Create(ctx, form)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidArgument))
}

func TestUpdateProduct(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, faucetForm())
	require.NoError(t, err)

	form := faucetForm()
	form.Description = "Basin Faucet Chrome"
	form.Cost = 52.00

	updated, err := svc.Update(ctx, created.ID, form)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Basin Faucet Chrome", updated.Description)
	assert.Equal(t, 52.00, updated.Cost)
}

func TestUpdateUnknownProduct(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Update(context.Background(), 999, faucetForm())
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestDeleteProduct(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, faucetForm())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestToggleVisibility(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, faucetForm())
	require.NoError(t, err)
	require.True(t, created.Visible)

	toggled, err := svc.ToggleVisibility(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Visible)

	toggled, err = svc.ToggleVisibility(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Visible)
}

func TestMintImageKey(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, faucetForm())
	require.NoError(t, err)
	require.Empty(t, created.ImageRef)

	first, err := svc.MintImageKey(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.ImageRef, "products/"))

	second, err := svc.MintImageKey(ctx, created.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ImageRef, second.ImageRef)
}

// ============================================================================
// VISIBLE LISTING CACHE
// ============================================================================

func TestListVisibleCachesResult(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, faucetForm())
	require.NoError(t, err)

	callsBefore := repo.listCalls

	first, err := svc.ListVisible(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.ListVisible(ctx)
	require.NoError(t, err)
	require.Len(t, second, 1)

	// The second listing is served from Redis, not the repository.
	assert.Equal(t, callsBefore+1, repo.listCalls)
}

func TestListVisibleExcludesHidden(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, faucetForm())
	require.NoError(t, err)

	form := faucetForm()
	form.Code = "TIL-220"
	form.Description = "Ceramic Tile 60x60"
	hidden := false
	form.Visible = &hidden
	_, err = svc.Create(ctx, form)
	require.NoError(t, err)

	products, err := svc.ListVisible(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "FAU-100", products[0].Code)
}

func TestMutationInvalidatesVisibleCache(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, faucetForm())
	require.NoError(t, err)

	products, err := svc.ListVisible(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)

	_, err = svc.ToggleVisibility(ctx, created.ID)
	require.NoError(t, err)

	products, err = svc.ListVisible(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestListVisibleWithoutCache(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, NewCache(nil, time.Minute))
	ctx := context.Background()

	_, err := svc.Create(ctx, faucetForm())
	require.NoError(t, err)

	products, err := svc.ListVisible(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)

	// Every call hits the repository when no cache client is configured.
	before := repo.listCalls
	_, err = svc.ListVisible(ctx)
	require.NoError(t, err)
	assert.Equal(t, before+1, repo.listCalls)
}

// ============================================================================
// FILTERED LISTING
// ============================================================================

func TestListWithFilters(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, faucetForm())
	require.NoError(t, err)

	form := faucetForm()
	form.Code = "TIL-220"
	form.Description = "Ceramic Tile 60x60"
	form.Brand = "Terrano"
	form.Group = "Tiles"
	_, err = svc.Create(ctx, form)
	require.NoError(t, err)

	products, total, err := svc.List(ctx, ListFilters{Brand: "Terrano"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, products, 1)
	assert.Equal(t, "TIL-220", products[0].Code)

	products, total, err = svc.List(ctx, ListFilters{Search: "faucet"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, products, 1)
	assert.Equal(t, "FAU-100", products[0].Code)
}
