package record

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Session(ctx context.Context) (Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(Session), args.Error(1)
}

// MockSession is a mock implementation of the Session interface for testing
type MockSession struct {
	mock.Mock
}

func (m *MockSession) Create(ctx context.Context, name string, age int) (*Record, error) {
	args := m.Called(ctx, name, age)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Record), args.Error(1)
}

func (m *MockSession) List(ctx context.Context) ([]Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Record), args.Error(1)
}

func (m *MockSession) Get(ctx context.Context, id int) (*Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Record), args.Error(1)
}

func (m *MockSession) Update(ctx context.Context, rec *Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockSession) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSession) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newTestService() (Servicer, *MockRepository, *MockSession) {
	repo := new(MockRepository)
	sess := new(MockSession)
	repo.On("Session", mock.Anything).Return(sess, nil)
	sess.On("Close").Return(nil)
	return NewService(repo, slog.Default()), repo, sess
}

func TestService_Create(t *testing.T) {
	service, _, sess := newTestService()
	ctx := context.Background()

	sess.On("Create", ctx, "Ana", 30).Return(&Record{ID: 1, Name: "Ana", Age: 30}, nil)

	rec, err := service.Create(ctx, "Ana", 30)

	require.NoError(t, err)
	assert.Equal(t, &Record{ID: 1, Name: "Ana", Age: 30}, rec)
	sess.AssertExpectations(t)
}

func TestService_Create_StoreError(t *testing.T) {
	service, _, sess := newTestService()
	ctx := context.Background()
	boom := errors.New("disk full")

	sess.On("Create", ctx, "Ana", 30).Return(nil, boom)

	rec, err := service.Create(ctx, "Ana", 30)

	assert.Nil(t, rec)
	assert.ErrorIs(t, err, boom)
	// session released on the failure path too
	sess.AssertCalled(t, "Close")
}

func TestService_SessionError(t *testing.T) {
	repo := new(MockRepository)
	boom := errors.New("pool exhausted")
	repo.On("Session", mock.Anything).Return(nil, boom)
	service := NewService(repo, slog.Default())
	ctx := context.Background()

	_, err := service.Create(ctx, "Ana", 30)
	assert.ErrorIs(t, err, boom)

	_, err = service.List(ctx)
	assert.ErrorIs(t, err, boom)

	_, err = service.Update(ctx, 1, "Ana", 30)
	assert.ErrorIs(t, err, boom)

	_, err = service.Delete(ctx, 1)
	assert.ErrorIs(t, err, boom)
}

func TestService_List(t *testing.T) {
	tests := []struct {
		name     string
		stored   []Record
		expected []Record
	}{
		{
			name:     "returns stored records",
			stored:   []Record{{ID: 1, Name: "Ana", Age: 30}, {ID: 2, Name: "Bia", Age: 25}},
			expected: []Record{{ID: 1, Name: "Ana", Age: 30}, {ID: 2, Name: "Bia", Age: 25}},
		},
		{
			name:     "empty table yields empty slice",
			stored:   nil,
			expected: []Record{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, sess := newTestService()
			ctx := context.Background()
			sess.On("List", ctx).Return(tt.stored, nil)

			records, err := service.List(ctx)

			require.NoError(t, err)
			assert.NotNil(t, records)
			assert.Equal(t, tt.expected, records)
			sess.AssertCalled(t, "Close")
		})
	}
}

func TestService_Update(t *testing.T) {
	service, _, sess := newTestService()
	ctx := context.Background()

	sess.On("Get", ctx, 1).Return(&Record{ID: 1, Name: "Ana", Age: 30}, nil)
	sess.On("Update", ctx, &Record{ID: 1, Name: "Carla", Age: 41}).Return(nil)

	rec, err := service.Update(ctx, 1, "Carla", 41)

	require.NoError(t, err)
	assert.Equal(t, &Record{ID: 1, Name: "Carla", Age: 41}, rec)
	sess.AssertExpectations(t)
}

func TestService_Update_NotFound(t *testing.T) {
	service, _, sess := newTestService()
	ctx := context.Background()

	sess.On("Get", ctx, 9999).Return(nil, ErrNotFound)

	rec, err := service.Update(ctx, 9999, "Carla", 41)

	assert.Nil(t, rec)
	assert.ErrorIs(t, err, ErrNotFound)
	sess.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	sess.AssertCalled(t, "Close")
}

func TestService_Update_RemovedConcurrently(t *testing.T) {
	service, _, sess := newTestService()
	ctx := context.Background()

	sess.On("Get", ctx, 3).Return(&Record{ID: 3, Name: "Ana", Age: 30}, nil)
	sess.On("Update", ctx, mock.Anything).Return(ErrNotFound)

	_, err := service.Update(ctx, 3, "Carla", 41)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Delete(t *testing.T) {
	tests := []struct {
		name        string
		storeErr    error
		expectedMsg string
		expectedErr error
	}{
		{
			name:        "existing record",
			expectedMsg: "Registro 5 deletado com sucesso",
		},
		{
			name:        "missing record",
			storeErr:    ErrNotFound,
			expectedErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, sess := newTestService()
			ctx := context.Background()
			sess.On("Delete", ctx, 5).Return(tt.storeErr)

			msg, err := service.Delete(ctx, 5)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectedMsg, msg)
			sess.AssertCalled(t, "Close")
		})
	}
}
