package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"local-ads/internal/core/domain"
	"local-ads/internal/core/port"
)

// MockCampaignRepository is a testify mock of port.CampaignRepository.
type MockCampaignRepository struct {
	mock.Mock
}

// NewMockCampaignRepository creates a mock that asserts its expectations on cleanup.
func NewMockCampaignRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCampaignRepository {
	m := &MockCampaignRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCampaignRepository) Insert(ctx context.Context, c *domain.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCampaignRepository) Update(ctx context.Context, c *domain.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCampaignRepository) UpdateStatus(ctx context.Context, id int64, status bool) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockCampaignRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCampaignRepository) Get(ctx context.Context, id int64) (*domain.Campaign, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*domain.Campaign)
	return c, args.Error(1)
}

func (m *MockCampaignRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Campaign, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*domain.Campaign)
	return c, args.Error(1)
}

func (m *MockCampaignRepository) GetByName(ctx context.Context, name string) (*domain.Campaign, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(*domain.Campaign)
	return c, args.Error(1)
}

func (m *MockCampaignRepository) NameTaken(ctx context.Context, name string, exceptID int64) (bool, error) {
	args := m.Called(ctx, name, exceptID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCampaignRepository) Find(ctx context.Context, f port.CampaignFilter) ([]domain.Campaign, error) {
	args := m.Called(ctx, f)
	cs, _ := args.Get(0).([]domain.Campaign)
	return cs, args.Error(1)
}

func (m *MockCampaignRepository) FindActive(ctx context.Context, keywords []string) ([]domain.Campaign, error) {
	args := m.Called(ctx, keywords)
	cs, _ := args.Get(0).([]domain.Campaign)
	return cs, args.Error(1)
}

// MockSellerRepository is a testify mock of port.SellerRepository.
type MockSellerRepository struct {
	mock.Mock
}

// NewMockSellerRepository creates a mock that asserts its expectations on cleanup.
func NewMockSellerRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSellerRepository {
	m := &MockSellerRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSellerRepository) Create(ctx context.Context, s *domain.Seller) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSellerRepository) Get(ctx context.Context, id int64) (*domain.Seller, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*domain.Seller)
	return s, args.Error(1)
}

func (m *MockSellerRepository) GetByUsername(ctx context.Context, username string) (*domain.Seller, error) {
	args := m.Called(ctx, username)
	s, _ := args.Get(0).(*domain.Seller)
	return s, args.Error(1)
}

func (m *MockSellerRepository) List(ctx context.Context) ([]domain.Seller, error) {
	args := m.Called(ctx)
	ss, _ := args.Get(0).([]domain.Seller)
	return ss, args.Error(1)
}

func (m *MockSellerRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockCityRepository is a testify mock of port.CityRepository.
type MockCityRepository struct {
	mock.Mock
}

// NewMockCityRepository creates a mock that asserts its expectations on cleanup.
func NewMockCityRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCityRepository {
	m := &MockCityRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCityRepository) GetByName(ctx context.Context, name string) (*domain.City, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(*domain.City)
	return c, args.Error(1)
}

func (m *MockCityRepository) List(ctx context.Context) ([]domain.City, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]domain.City)
	return cs, args.Error(1)
}

// MockKeywordRepository is a testify mock of port.KeywordRepository.
type MockKeywordRepository struct {
	mock.Mock
}

// NewMockKeywordRepository creates a mock that asserts its expectations on cleanup.
func NewMockKeywordRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockKeywordRepository {
	m := &MockKeywordRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockKeywordRepository) FindByNames(ctx context.Context, names []string) ([]domain.Keyword, error) {
	args := m.Called(ctx, names)
	ks, _ := args.Get(0).([]domain.Keyword)
	return ks, args.Error(1)
}

func (m *MockKeywordRepository) List(ctx context.Context) ([]domain.Keyword, error) {
	args := m.Called(ctx)
	ks, _ := args.Get(0).([]domain.Keyword)
	return ks, args.Error(1)
}
