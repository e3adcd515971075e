package services

import (
	"context"
	"errors"

	"github.com/TwisterMc/JobTwister/internal/csvio"
	"github.com/TwisterMc/JobTwister/internal/events"
	"github.com/TwisterMc/JobTwister/internal/models"
	"github.com/TwisterMc/JobTwister/internal/repositories/store"
	"github.com/TwisterMc/JobTwister/internal/utils"
)

// ImportSummary reports what one import did to the store.
type ImportSummary struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"` // data rows seen
}

type CSVService interface {
	// Export serializes every stored job, date applied descending.
	Export(ctx context.Context) (string, error)
	// Import parses the blob and reconciles each decoded job against the
	// store by id: existing jobs are fully overwritten (interview set
	// included), unknown ids insert. The whole reconcile commits as one
	// transaction; a malformed row never aborts it, an empty blob does.
	Import(ctx context.Context, blob string) (*ImportSummary, error)
}

type csvService struct {
	jobs store.JobRepository
	hub  *events.Hub
}

func NewCSVService(jobs store.JobRepository, hub *events.Hub) CSVService {
	return &csvService{jobs: jobs, hub: hub}
}

func (s *csvService) Export(ctx context.Context) (string, error) {
	const op = "CSVService.Export"

	jobs, err := s.jobs.List(ctx, store.ListOptions{})
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	return csvio.Export(jobs), nil
}

func (s *csvService) Import(ctx context.Context, blob string) (*ImportSummary, error) {
	const op = "CSVService.Import"

	decoded, stats, err := csvio.Parse(blob)
	switch {
	case errors.Is(err, csvio.ErrEmptyInput):
		return nil, utils.E(utils.CodeEmptyInput, op, "file has no job rows", err)
	case errors.Is(err, csvio.ErrUnsupportedFormat):
		return nil, utils.E(utils.CodeUnsupportedFormat, op, "unrecognized CSV header", err)
	case err != nil:
		return nil, utils.E(utils.CodeInternal, op, "failed to parse CSV", err)
	}

	summary := &ImportSummary{Skipped: stats.Skipped, Total: stats.Rows}
	err = s.jobs.Transaction(ctx, func(r store.JobRepository) error {
		for i := range decoded {
			job := &decoded[i]
			existing, err := r.GetByID(ctx, job.ID)
			switch {
			case errors.Is(err, utils.ErrNotFound):
				if err := r.Create(ctx, job); err != nil {
					return err
				}
				summary.Inserted++
			case err != nil:
				return err
			default:
				overwrite(existing, job)
				if err := r.Update(ctx, existing); err != nil {
					return err
				}
				summary.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to commit import", err)
	}

	s.hub.Publish(events.Event{
		Type:  events.TypeJobsImported,
		Count: summary.Inserted + summary.Updated,
	})
	return summary, nil
}

// overwrite replaces every field of dst with the decoded values. This is a
// full replace, not a merge: the import file wins.
func overwrite(dst, src *models.Job) {
	dst.DateApplied = src.DateApplied
	dst.CompanyName = src.CompanyName
	dst.JobTitle = src.JobTitle
	dst.URL = src.URL
	dst.SalaryMin = src.SalaryMin
	dst.SalaryMax = src.SalaryMax
	dst.IsDenied = src.IsDenied
	dst.DeniedDate = src.DeniedDate
	dst.Notes = src.Notes
	dst.WorkplaceType = src.WorkplaceType
	dst.LastModified = src.LastModified
	dst.Interviews = make([]models.Interview, len(src.Interviews))
	copy(dst.Interviews, src.Interviews)
	for i := range dst.Interviews {
		dst.Interviews[i].JobID = dst.ID
	}
}
