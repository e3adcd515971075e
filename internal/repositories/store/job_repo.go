// Package store holds the GORM repositories backing the on-device object
// store. Repositories map gorm.ErrRecordNotFound to utils.ErrNotFound at
// the boundary; services translate that into coded errors.
package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/TwisterMc/JobTwister/internal/models"
	"github.com/TwisterMc/JobTwister/internal/utils"
)

// ListOptions narrows and orders a job listing. Zero value means every job,
// date applied descending.
type ListOptions struct {
	Search        string // case-insensitive substring over company, title, notes
	Denied        *bool
	WorkplaceType models.WorkplaceType
	SortBy        string // date_applied | company_name | last_modified
	Ascending     bool
}

type JobRepository interface {
	List(ctx context.Context, opts ListOptions) ([]models.Job, error)
	GetByID(ctx context.Context, id string) (*models.Job, error)
	Create(ctx context.Context, job *models.Job) error
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	// Transaction runs fn against a repository bound to one transaction;
	// the import reconciliation commits as a single unit through this.
	Transaction(ctx context.Context, fn func(JobRepository) error) error
}

type jobRepo struct {
	db *gorm.DB
}

func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

var sortColumns = map[string]string{
	"date_applied":  "date_applied",
	"company_name":  "company_name",
	"last_modified": "last_modified",
}

func (r *jobRepo) List(ctx context.Context, opts ListOptions) ([]models.Job, error) {
	q := r.db.WithContext(ctx).Model(&models.Job{}).Preload("Interviews")

	if s := strings.TrimSpace(opts.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where(
			"lower(company_name) LIKE ? OR lower(job_title) LIKE ? OR lower(notes) LIKE ?",
			like, like, like,
		)
	}
	if opts.Denied != nil {
		q = q.Where("is_denied = ?", *opts.Denied)
	}
	if opts.WorkplaceType != "" {
		q = q.Where("workplace_type = ?", string(opts.WorkplaceType))
	}

	col, ok := sortColumns[opts.SortBy]
	if !ok {
		col = "date_applied"
	}
	dir := "DESC"
	if opts.Ascending {
		dir = "ASC"
	}
	q = q.Order(col + " " + dir)

	var jobs []models.Job
	if err := q.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var j models.Job
	err := r.db.WithContext(ctx).
		Preload("Interviews").
		Take(&j, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *jobRepo) Create(ctx context.Context, job *models.Job) error {
	for i := range job.Interviews {
		job.Interviews[i].JobID = job.ID
	}
	return r.db.WithContext(ctx).Create(job).Error
}

// Update fully replaces the job row and its owned interview set. The old
// interviews are deleted and the decoded set inserted inside one
// transaction so a reconcile never leaves orphans.
func (r *jobRepo) Update(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", job.ID).Delete(&models.Interview{}).Error; err != nil {
			return err
		}
		if err := tx.Omit("Interviews").Save(job).Error; err != nil {
			return err
		}
		if len(job.Interviews) == 0 {
			return nil
		}
		for i := range job.Interviews {
			job.Interviews[i].JobID = job.ID
		}
		return tx.Create(&job.Interviews).Error
	})
}

func (r *jobRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Select(clause.Associations).
		Delete(&models.Job{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Job{}).Count(&n).Error
	return n, err
}

func (r *jobRepo) Transaction(ctx context.Context, fn func(JobRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&jobRepo{db: tx})
	})
}
