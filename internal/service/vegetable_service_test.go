package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"veggie-market/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockVegetableRepository is a mock implementation of VegetableRepository.
type MockVegetableRepository struct {
	mock.Mock
}

func (m *MockVegetableRepository) FindByID(ctx context.Context, id model.VegetableID) (*model.Vegetable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vegetable), args.Error(1)
}

func (m *MockVegetableRepository) FindAll(ctx context.Context) ([]model.Vegetable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Vegetable), args.Error(1)
}

func (m *MockVegetableRepository) FindByIDs(ctx context.Context, ids []model.VegetableID) ([]model.Vegetable, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Vegetable), args.Error(1)
}

func (m *MockVegetableRepository) Register(ctx context.Context, vegetable model.UpsertVegetable) (*model.Vegetable, error) {
	args := m.Called(ctx, vegetable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vegetable), args.Error(1)
}

func (m *MockVegetableRepository) RegisterAll(ctx context.Context, vegetables []model.UpsertVegetable) (int64, error) {
	args := m.Called(ctx, vegetables)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVegetableRepository) Update(ctx context.Context, id model.VegetableID, vegetable model.UpsertVegetable) (*model.Vegetable, error) {
	args := m.Called(ctx, id, vegetable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vegetable), args.Error(1)
}

func (m *MockVegetableRepository) PartialUpdate(ctx context.Context, id model.VegetableID, vegetable model.PartialVegetable) (*model.Vegetable, error) {
	args := m.Called(ctx, id, vegetable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vegetable), args.Error(1)
}

func (m *MockVegetableRepository) Delete(ctx context.Context, id model.VegetableID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVegetableRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func ptr[T any](v T) *T {
	return &v
}

func testVegetable(name string, price model.Price) *model.Vegetable {
	now := time.Now().UTC()
	return &model.Vegetable{
		ID:        model.NewEntityID[model.Vegetable](),
		Name:      name,
		UnitPrice: price,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestVegetableService_FindByID(t *testing.T) {
	ctx := context.Background()
	existing := testVegetable("Carrot", 120)

	tests := []struct {
		name      string
		id        string
		setupMock func(*MockVegetableRepository)
		want      *model.Vegetable
		wantErr   error
		wantKind  model.ErrorKind
	}{
		{
			name: "found",
			id:   existing.ID.String(),
			setupMock: func(m *MockVegetableRepository) {
				m.On("FindByID", ctx, existing.ID).Return(existing, nil)
			},
			want: existing,
		},
		{
			name: "not found",
			id:   existing.ID.String(),
			setupMock: func(m *MockVegetableRepository) {
				m.On("FindByID", ctx, existing.ID).Return(nil, nil)
			},
			wantErr:  model.ErrVegetableNotFound,
			wantKind: model.KindNotFound,
		},
		{
			name:      "malformed id",
			id:        "not-a-uuid",
			setupMock: func(m *MockVegetableRepository) {},
			wantErr:   model.ErrInvalidVegetableID,
			wantKind:  model.KindValidation,
		},
		{
			name: "repository error",
			id:   existing.ID.String(),
			setupMock: func(m *MockVegetableRepository) {
				m.On("FindByID", ctx, existing.ID).Return(nil, errors.New("connection refused"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockVegetableRepository)
			tt.setupMock(mockRepo)
			svc := NewVegetableService(mockRepo, zerolog.Nop())

			got, err := svc.FindByID(ctx, tt.id)

			switch {
			case tt.want != nil:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, model.IsKind(err, tt.wantKind))
				assert.Nil(t, got)
			default:
				require.Error(t, err)
				assert.False(t, model.IsKind(err, model.KindValidation))
				assert.False(t, model.IsKind(err, model.KindNotFound))
				assert.Contains(t, err.Error(), "failed to get vegetable")
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestVegetableService_FindAll(t *testing.T) {
	ctx := context.Background()

	t.Run("returns every vegetable", func(t *testing.T) {
		vegetables := []model.Vegetable{*testVegetable("Carrot", 120), *testVegetable("Leek", 90)}
		mockRepo := new(MockVegetableRepository)
		mockRepo.On("FindAll", ctx).Return(vegetables, nil)

		got, err := NewVegetableService(mockRepo, zerolog.Nop()).FindAll(ctx)

		require.NoError(t, err)
		assert.Equal(t, vegetables, got)
		mockRepo.AssertExpectations(t)
	})

	t.Run("wraps repository error", func(t *testing.T) {
		mockRepo := new(MockVegetableRepository)
		mockRepo.On("FindAll", ctx).Return(nil, errors.New("boom"))

		got, err := NewVegetableService(mockRepo, zerolog.Nop()).FindAll(ctx)

		require.Error(t, err)
		assert.Nil(t, got)
		assert.Contains(t, err.Error(), "failed to get vegetables")
	})
}

func TestVegetableService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("trims name and stores", func(t *testing.T) {
		created := testVegetable("Tomato", 250)
		mockRepo := new(MockVegetableRepository)
		mockRepo.On("Register", ctx, model.UpsertVegetable{Name: "Tomato", UnitPrice: 250}).Return(created, nil)

		got, err := NewVegetableService(mockRepo, zerolog.Nop()).Register(ctx, &model.UpsertVegetableRequest{
			Name:      "  Tomato ",
			UnitPrice: ptr(int64(250)),
		})

		require.NoError(t, err)
		assert.Equal(t, created, got)
		mockRepo.AssertExpectations(t)
	})

	invalid := []struct {
		name    string
		req     *model.UpsertVegetableRequest
		wantErr error
	}{
		{"nil request", nil, model.ErrInvalidJSON},
		{"blank name", &model.UpsertVegetableRequest{Name: "   ", UnitPrice: ptr(int64(1))}, model.ErrInvalidName},
		{"missing price", &model.UpsertVegetableRequest{Name: "Onion"}, model.ErrInvalidUnitPrice},
		{"negative price", &model.UpsertVegetableRequest{Name: "Onion", UnitPrice: ptr(int64(-1))}, model.ErrInvalidUnitPrice},
		{"price overflows integer column", &model.UpsertVegetableRequest{Name: "Onion", UnitPrice: ptr(int64(1) << 31)}, model.ErrInvalidUnitPrice},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockVegetableRepository)

			got, err := NewVegetableService(mockRepo, zerolog.Nop()).Register(ctx, tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, model.IsKind(err, model.KindValidation))
			assert.Nil(t, got)
			mockRepo.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
		})
	}

	t.Run("zero price is accepted", func(t *testing.T) {
		created := testVegetable("Parsley", 0)
		mockRepo := new(MockVegetableRepository)
		mockRepo.On("Register", ctx, model.UpsertVegetable{Name: "Parsley", UnitPrice: 0}).Return(created, nil)

		got, err := NewVegetableService(mockRepo, zerolog.Nop()).Register(ctx, &model.UpsertVegetableRequest{
			Name:      "Parsley",
			UnitPrice: ptr(int64(0)),
		})

		require.NoError(t, err)
		assert.Equal(t, model.Price(0), got.UnitPrice)
	})
}

func TestVegetableService_RegisterAll(t *testing.T) {
	ctx := context.Background()

	t.Run("stores every entry in one call", func(t *testing.T) {
		mockRepo := new(MockVegetableRepository)
		mockRepo.On("RegisterAll", ctx, []model.UpsertVegetable{
			{Name: "Carrot", UnitPrice: 120},
			{Name: "Onion", UnitPrice: 80},
		}).Return(int64(2), nil).Once()

		got, err := NewVegetableService(mockRepo, zerolog.Nop()).RegisterAll(ctx, []*model.UpsertVegetableRequest{
			{Name: " Carrot", UnitPrice: ptr(int64(120))},
			{Name: "Onion", UnitPrice: ptr(int64(80))},
		})

		require.NoError(t, err)
		assert.Equal(t, int64(2), got)
		mockRepo.AssertExpectations(t)
	})

	t.Run("invalid entry stores nothing", func(t *testing.T) {
		mockRepo := new(MockVegetableRepository)

		got, err := NewVegetableService(mockRepo, zerolog.Nop()).RegisterAll(ctx, []*model.UpsertVegetableRequest{
			{Name: "Carrot", UnitPrice: ptr(int64(120))},
			{Name: "", UnitPrice: ptr(int64(80))},
		})

		assert.ErrorIs(t, err, model.ErrInvalidName)
		assert.Contains(t, err.Error(), "entry 1")
		assert.Zero(t, got)
		mockRepo.AssertNotCalled(t, "RegisterAll", mock.Anything, mock.Anything)
	})

	t.Run("repository failure", func(t *testing.T) {
		mockRepo := new(MockVegetableRepository)
		mockRepo.On("RegisterAll", ctx, mock.Anything).Return(int64(0), errors.New("connection reset"))

		got, err := NewVegetableService(mockRepo, zerolog.Nop()).RegisterAll(ctx, []*model.UpsertVegetableRequest{
			{Name: "Carrot", UnitPrice: ptr(int64(120))},
		})

		require.Error(t, err)
		assert.False(t, model.IsKind(err, model.KindValidation))
		assert.Zero(t, got)
	})
}

func TestVegetableService_Update(t *testing.T) {
	ctx := context.Background()
	id := model.NewEntityID[model.Vegetable]()
	req := &model.UpsertVegetableRequest{Name: "Cabbage", UnitPrice: ptr(int64(300))}

	t.Run("replaces the vegetable", func(t *testing.T) {
		updated := testVegetable("Cabbage", 300)
		updated.ID = id
		mockRepo := new(MockVegetableRepository)
		mockRepo.On("Update", ctx, id, model.UpsertVegetable{Name: "Cabbage", UnitPrice: 300}).Return(updated, nil)

		got, err := NewVegetableService(mockRepo, zerolog.Nop()).Update(ctx, id.String(), req)

		require.NoError(t, err)
		assert.Equal(t, updated, got)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing vegetable", func(t *testing.T) {
		mockRepo := new(MockVegetableRepository)
		mockRepo.On("Update", ctx, id, mock.Anything).Return(nil, nil)

		_, err := NewVegetableService(mockRepo, zerolog.Nop()).Update(ctx, id.String(), req)

		assert.ErrorIs(t, err, model.ErrVegetableNotFound)
	})

	t.Run("malformed id is rejected before validation", func(t *testing.T) {
		mockRepo := new(MockVegetableRepository)

		_, err := NewVegetableService(mockRepo, zerolog.Nop()).Update(ctx, "42", &model.UpsertVegetableRequest{})

		assert.ErrorIs(t, err, model.ErrInvalidVegetableID)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid body", func(t *testing.T) {
		mockRepo := new(MockVegetableRepository)

		_, err := NewVegetableService(mockRepo, zerolog.Nop()).Update(ctx, id.String(), &model.UpsertVegetableRequest{Name: "Cabbage"})

		assert.ErrorIs(t, err, model.ErrInvalidUnitPrice)
	})
}

func TestVegetableService_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	id := model.NewEntityID[model.Vegetable]()
	current := testVegetable("Pepper", 180)
	current.ID = id

	tests := []struct {
		name      string
		req       *model.PartialVegetableRequest
		wantPatch model.PartialVegetable
	}{
		{
			name:      "name only",
			req:       &model.PartialVegetableRequest{Name: ptr(" Red pepper ")},
			wantPatch: model.PartialVegetable{Name: ptr("Red pepper")},
		},
		{
			name:      "price only",
			req:       &model.PartialVegetableRequest{UnitPrice: ptr(int64(200))},
			wantPatch: model.PartialVegetable{UnitPrice: ptr(model.Price(200))},
		},
		{
			name:      "no fields",
			req:       &model.PartialVegetableRequest{},
			wantPatch: model.PartialVegetable{},
		},
		{
			name:      "nil request is an empty patch",
			req:       nil,
			wantPatch: model.PartialVegetable{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockVegetableRepository)
			mockRepo.On("PartialUpdate", ctx, id, tt.wantPatch).Return(current, nil)

			got, err := NewVegetableService(mockRepo, zerolog.Nop()).PartialUpdate(ctx, id.String(), tt.req)

			require.NoError(t, err)
			assert.Equal(t, current, got)
			mockRepo.AssertExpectations(t)
		})
	}

	t.Run("blank name", func(t *testing.T) {
		mockRepo := new(MockVegetableRepository)

		_, err := NewVegetableService(mockRepo, zerolog.Nop()).PartialUpdate(ctx, id.String(), &model.PartialVegetableRequest{Name: ptr("")})

		assert.ErrorIs(t, err, model.ErrInvalidName)
		mockRepo.AssertNotCalled(t, "PartialUpdate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing vegetable", func(t *testing.T) {
		mockRepo := new(MockVegetableRepository)
		mockRepo.On("PartialUpdate", ctx, id, mock.Anything).Return(nil, nil)

		_, err := NewVegetableService(mockRepo, zerolog.Nop()).PartialUpdate(ctx, id.String(), &model.PartialVegetableRequest{})

		assert.ErrorIs(t, err, model.ErrVegetableNotFound)
	})
}

func TestVegetableService_Delete(t *testing.T) {
	ctx := context.Background()
	id := model.NewEntityID[model.Vegetable]()

	tests := []struct {
		name     string
		affected int64
	}{
		{"existing vegetable", 1},
		{"missing vegetable", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockVegetableRepository)
			mockRepo.On("Delete", ctx, id).Return(tt.affected, nil)

			got, err := NewVegetableService(mockRepo, zerolog.Nop()).Delete(ctx, id.String())

			require.NoError(t, err)
			assert.Equal(t, tt.affected, got)
			mockRepo.AssertExpectations(t)
		})
	}

	t.Run("malformed id", func(t *testing.T) {
		mockRepo := new(MockVegetableRepository)

		got, err := NewVegetableService(mockRepo, zerolog.Nop()).Delete(ctx, "abc")

		assert.ErrorIs(t, err, model.ErrInvalidVegetableID)
		assert.Zero(t, got)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo := new(MockVegetableRepository)
		mockRepo.On("Delete", ctx, id).Return(int64(0), errors.New("boom"))

		_, err := NewVegetableService(mockRepo, zerolog.Nop()).Delete(ctx, id.String())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete vegetable")
	})
}

func TestVegetableService_Count(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockVegetableRepository)
	mockRepo.On("Count", ctx).Return(int64(7), nil)

	got, err := NewVegetableService(mockRepo, zerolog.Nop()).Count(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(7), got)
}
