package handler

import (
	"go-jobs-api/common"
	"go-jobs-api/service"
	"net/http"
)

type JobCategoryHandler struct {
	service *service.JobCategoryService
}

func NewJobCategoryHandler(service *service.JobCategoryService) *JobCategoryHandler {
	return &JobCategoryHandler{service: service}
}

// GetAll godoc
// @Summary      List active job categories
// @Tags         job-categories
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} common.SuccessResponse
// @Router       /api/job-categories [get]
func (h *JobCategoryHandler) GetAll(w http.ResponseWriter, r *http.Request) *common.AppError {
	categories, appErr := h.service.GetAllActive(r.Context())
	if appErr != nil {
		return appErr
	}

	common.SendSuccess(w, http.StatusOK, "Success get all job categories", categories)
	return nil
}

// Get godoc
// @Summary      Get a job category by id
// @Tags         job-categories
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "job category id"
// @Success      200 {object} common.SuccessResponse
// @Router       /api/job-categories/{id} [get]
func (h *JobCategoryHandler) Get(w http.ResponseWriter, r *http.Request) *common.AppError {
	id := r.PathValue("id")
	category, appErr := h.service.GetByID(id)
	if appErr != nil {
		return appErr
	}

	common.SendSuccess(w, http.StatusOK, "Success get job category", category)
	return nil
}
