package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/location-manager/internal/application/dto"
	"github.com/jhoicas/location-manager/internal/application/ledger"
	"github.com/jhoicas/location-manager/internal/domain"
	"github.com/jhoicas/location-manager/internal/domain/entity"
)

type entryRepoMock struct{ mock.Mock }

func (m *entryRepoMock) Create(ctx context.Context, e *entity.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *entryRepoMock) GetByID(ctx context.Context, id string) (*entity.Entry, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*entity.Entry)
	return e, args.Error(1)
}

func (m *entryRepoMock) Update(ctx context.Context, e *entity.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *entryRepoMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *entryRepoMock) ListByShop(ctx context.Context, shopID string) ([]*entity.EntryWithProduct, error) {
	args := m.Called(ctx, shopID)
	list, _ := args.Get(0).([]*entity.EntryWithProduct)
	return list, args.Error(1)
}

func (m *entryRepoMock) ListByProduct(ctx context.Context, productID string) ([]*entity.EntryWithShop, error) {
	args := m.Called(ctx, productID)
	list, _ := args.Get(0).([]*entity.EntryWithShop)
	return list, args.Error(1)
}

func (m *entryRepoMock) DeleteByShop(ctx context.Context, shopID string) error {
	return m.Called(ctx, shopID).Error(0)
}

func (m *entryRepoMock) DeleteByProduct(ctx context.Context, productID string) error {
	return m.Called(ctx, productID).Error(0)
}

type shopRepoMock struct{ mock.Mock }

func (m *shopRepoMock) Create(ctx context.Context, s *entity.Shop) error {
	return m.Called(ctx, s).Error(0)
}

func (m *shopRepoMock) GetByID(ctx context.Context, id string) (*entity.Shop, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*entity.Shop)
	return s, args.Error(1)
}

func (m *shopRepoMock) Update(ctx context.Context, s *entity.Shop) error {
	return m.Called(ctx, s).Error(0)
}

func (m *shopRepoMock) List(ctx context.Context) ([]*entity.Shop, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*entity.Shop)
	return list, args.Error(1)
}

func (m *shopRepoMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type productRepoMock struct{ mock.Mock }

func (m *productRepoMock) Create(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *productRepoMock) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *productRepoMock) Update(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *productRepoMock) List(ctx context.Context) ([]*entity.Product, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*entity.Product)
	return list, args.Error(1)
}

func (m *productRepoMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func TestCreate_Mock_DenegadoNoConsultaProductoNiGuarda(t *testing.T) {
	entries, shops, products := new(entryRepoMock), new(shopRepoMock), new(productRepoMock)
	shops.On("GetByID", mock.Anything, "1").Return(&entity.Shop{ID: "1", Name: "Centro"}, nil)
	uc := ledger.NewEntryUseCase(entries, shops, products, nil)

	_, err := uc.Create(context.Background(), userOf("2"), dto.CreateEntryRequest{ShopID: "1", ProductID: "p", Quantity: 4})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	shops.AssertExpectations(t)
	products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	entries.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_Mock_GuardaTotalExacto(t *testing.T) {
	entries, shops, products := new(entryRepoMock), new(shopRepoMock), new(productRepoMock)
	shops.On("GetByID", mock.Anything, "1").Return(&entity.Shop{ID: "1"}, nil)
	products.On("GetByID", mock.Anything, "p").Return(&entity.Product{ID: "p", Name: "Queso", Price: decimal.RequireFromString("99.99")}, nil)
	entries.On("Create", mock.Anything, mock.MatchedBy(func(e *entity.Entry) bool {
		return e.ShopID == "1" && e.ProductID == "p" && e.Quantity == 10 &&
			e.TotalPrice.Equal(decimal.RequireFromString("999.90"))
	})).Return(nil).Once()
	uc := ledger.NewEntryUseCase(entries, shops, products, nil)

	out, err := uc.Create(context.Background(), userOf("1"), dto.CreateEntryRequest{ShopID: "1", ProductID: "p", Quantity: 10})

	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	entries.AssertExpectations(t)
}

func TestUpdate_Mock_AutorizaContraLocalExistente(t *testing.T) {
	entries, shops, products := new(entryRepoMock), new(shopRepoMock), new(productRepoMock)
	entries.On("GetByID", mock.Anything, "e1").Return(&entity.Entry{ID: "e1", ShopID: "1", ProductID: "p", Quantity: 1}, nil)
	uc := ledger.NewEntryUseCase(entries, shops, products, nil)

	_, err := uc.Update(context.Background(), userOf("2"), "e1", dto.UpdateEntryRequest{ProductID: "p", Quantity: 3})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	entries.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestDelete_Mock_NoBorraSinAutorizacion(t *testing.T) {
	entries, shops, products := new(entryRepoMock), new(shopRepoMock), new(productRepoMock)
	entries.On("GetByID", mock.Anything, "e1").Return(&entity.Entry{ID: "e1", ShopID: "1"}, nil)
	uc := ledger.NewEntryUseCase(entries, shops, products, nil)

	err := uc.Delete(context.Background(), userOf("2"), "e1")

	assert.ErrorIs(t, err, domain.ErrForbidden)
	entries.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
