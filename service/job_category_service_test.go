package service

import (
	"context"
	"database/sql"
	"errors"
	"go-jobs-api/model"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockJobCategoryRepo struct{ mock.Mock }

func (m *mockJobCategoryRepo) GetAllActive() ([]*model.JobCategory, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.JobCategory), args.Error(1)
}
func (m *mockJobCategoryRepo) GetByID(id string) (*model.JobCategory, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JobCategory), args.Error(1)
}

func TestJobCategoryService_GetAllActive_Caching(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	mockRepo := new(mockJobCategoryRepo)
	svc := NewJobCategoryService(mockRepo, client)
	ctx := context.Background()

	categories := []*model.JobCategory{
		{ID: "cat-1", Code: "CLEANING", Name: "Kebersihan & Sanitasi", IsActive: true},
		{ID: "cat-2", Code: "HOME_REPAIR", Name: "Perbaikan Rumah", IsActive: true},
	}
	mockRepo.On("GetAllActive").Return(categories, nil).Once()

	// First call misses the cache and hits the database.
	result, appErr := svc.GetAllActive(ctx)
	assert.Nil(t, appErr)
	assert.Len(t, result, 2)
	assert.True(t, mr.Exists("job_categories:active"))

	// Second call is served from the cache; the repository mock would fail
	// the test if it were called again.
	result, appErr = svc.GetAllActive(ctx)
	assert.Nil(t, appErr)
	assert.Len(t, result, 2)
	assert.Equal(t, "cat-1", result[0].ID)
	mockRepo.AssertExpectations(t)
}

func TestJobCategoryService_GetAllActive_RepositoryError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	mockRepo := new(mockJobCategoryRepo)
	mockRepo.On("GetAllActive").Return(nil, errors.New("db down")).Once()
	svc := NewJobCategoryService(mockRepo, client)

	_, appErr := svc.GetAllActive(context.Background())
	assert.NotNil(t, appErr)
	assert.Equal(t, 500, appErr.Code)
}

func TestJobCategoryService_GetByID(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	t.Run("found", func(t *testing.T) {
		mockRepo := new(mockJobCategoryRepo)
		mockRepo.On("GetByID", "cat-1").Return(&model.JobCategory{ID: "cat-1", Code: "CLEANING"}, nil).Once()
		svc := NewJobCategoryService(mockRepo, client)

		category, appErr := svc.GetByID("cat-1")
		assert.Nil(t, appErr)
		assert.Equal(t, "CLEANING", category.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(mockJobCategoryRepo)
		mockRepo.On("GetByID", "missing").Return(nil, sql.ErrNoRows).Once()
		svc := NewJobCategoryService(mockRepo, client)

		_, appErr := svc.GetByID("missing")
		assert.NotNil(t, appErr)
		assert.Equal(t, 404, appErr.Code)
		assert.Equal(t, "job categories not found", appErr.Message)
	})
}
