package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"go-jobs-api/common"
	"go-jobs-api/logger"
	"go-jobs-api/model"
	"go-jobs-api/repository"
	"net/http"
	"time"
)

const jobCategoriesCacheKey = "job_categories:active"

// JobCategoryService lists the platform's job categories, utilizing a
// cache-aside strategy for the hot all-active listing.
type JobCategoryService struct {
	repo  repository.IJobCategoryRepository
	cache repository.ICacheClient
}

func NewJobCategoryService(repo repository.IJobCategoryRepository, cache repository.ICacheClient) *JobCategoryService {
	return &JobCategoryService{repo: repo, cache: cache}
}

func (s *JobCategoryService) GetAllActive(ctx context.Context) ([]*model.JobCategory, *common.AppError) {
	// 1. Try the cache first.
	if cached, err := s.cache.Get(ctx, jobCategoriesCacheKey).Result(); err == nil {
		var categories []*model.JobCategory
		if err := json.Unmarshal([]byte(cached), &categories); err == nil {
			return categories, nil
		}
	}

	// 2. Cache miss. Fetch from the database.
	categories, err := s.repo.GetAllActive()
	if err != nil {
		return nil, common.NewInternalError(err)
	}

	// 3. Store the result for future requests. A cache write failure only
	// costs the next request a database round trip.
	if data, err := json.Marshal(categories); err == nil {
		if err := s.cache.Set(ctx, jobCategoriesCacheKey, data, 10*time.Minute).Err(); err != nil {
			logger.Log.WithError(err).Warn("Failed to cache job categories")
		}
	}

	return categories, nil
}

func (s *JobCategoryService) GetByID(id string) (*model.JobCategory, *common.AppError) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, common.NewAppError(http.StatusNotFound, "job categories not found", nil)
		}
		return nil, common.NewInternalError(err)
	}
	return category, nil
}
