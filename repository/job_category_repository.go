package repository

import (
	"database/sql"
	"go-jobs-api/logger"
	"go-jobs-api/model"
)

// IJobCategoryRepository defines the contract for job category reads.
type IJobCategoryRepository interface {
	GetAllActive() ([]*model.JobCategory, error)
	GetByID(id string) (*model.JobCategory, error)
}

type JobCategoryRepository struct {
	DB *sql.DB
}

func NewJobCategoryRepository(db *sql.DB) *JobCategoryRepository {
	return &JobCategoryRepository{DB: db}
}

const jobCategoryColumns = `id, code, name, image1, image2, image3, is_active, created_at`

// GetAllActive retrieves every category still offered on the platform.
func (r *JobCategoryRepository) GetAllActive() ([]*model.JobCategory, error) {
	query := `SELECT ` + jobCategoryColumns + ` FROM job_categories WHERE is_active = TRUE ORDER BY name`
	rows, err := r.DB.Query(query)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute query for active job categories")
		return nil, err
	}
	defer rows.Close()

	var categories []*model.JobCategory
	for rows.Next() {
		var c model.JobCategory
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Image1, &c.Image2, &c.Image3, &c.IsActive, &c.CreatedAt); err != nil {
			logger.Log.WithError(err).Error("Failed to scan job category row")
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

// GetByID returns sql.ErrNoRows when the category does not exist.
func (r *JobCategoryRepository) GetByID(id string) (*model.JobCategory, error) {
	query := `SELECT ` + jobCategoryColumns + ` FROM job_categories WHERE id = $1`
	var c model.JobCategory
	err := r.DB.QueryRow(query, id).Scan(&c.ID, &c.Code, &c.Name, &c.Image1, &c.Image2, &c.Image3, &c.IsActive, &c.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute get job category by id query")
		}
		return nil, err
	}
	return &c, nil
}
