package services

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/TwisterMc/JobTwister/internal/events"
	"github.com/TwisterMc/JobTwister/internal/models"
	"github.com/TwisterMc/JobTwister/internal/repositories/store"
	"github.com/TwisterMc/JobTwister/internal/utils"
)

// JobInput carries every editable field of a job. Salary bounds are not
// ordered against each other on purpose: the form never enforced it.
type JobInput struct {
	DateApplied   *time.Time `json:"date_applied"`
	CompanyName   string     `json:"company_name"`
	JobTitle      string     `json:"job_title"`
	URL           string     `json:"url"`
	SalaryMin     *float64   `json:"salary_min"`
	SalaryMax     *float64   `json:"salary_max"`
	IsDenied      bool       `json:"is_denied"`
	DeniedDate    *time.Time `json:"denied_date"`
	Notes         string     `json:"notes"`
	WorkplaceType string     `json:"workplace_type"`
}

// Stats mirrors the dashboard cards: totals across the whole store.
type Stats struct {
	Applied     int `json:"applied"`
	Interviewed int `json:"interviewed"`
	Denied      int `json:"denied"`
}

// TimelinePoint counts application events on one calendar day.
type TimelinePoint struct {
	Date       string `json:"date"` // 2006-01-02
	Applied    int    `json:"applied"`
	Interviews int    `json:"interviews"`
	Denials    int    `json:"denials"`
}

type JobService interface {
	List(ctx context.Context, opts store.ListOptions) ([]models.Job, error)
	Get(ctx context.Context, id string) (*models.Job, error)
	Create(ctx context.Context, in JobInput) (*models.Job, error)
	Update(ctx context.Context, id string, in JobInput) (*models.Job, error)
	Delete(ctx context.Context, id string) error
	AddInterview(ctx context.Context, jobID string, date time.Time, notes string) (*models.Job, error)
	UpdateInterview(ctx context.Context, jobID, interviewID string, date time.Time, notes string) (*models.Job, error)
	RemoveInterview(ctx context.Context, jobID, interviewID string) (*models.Job, error)
	Stats(ctx context.Context) (*Stats, error)
	Timeline(ctx context.Context, from, to time.Time) ([]TimelinePoint, error)
}

type jobService struct {
	jobs store.JobRepository
	hub  *events.Hub
}

func NewJobService(jobs store.JobRepository, hub *events.Hub) JobService {
	return &jobService{jobs: jobs, hub: hub}
}

func (s *jobService) List(ctx context.Context, opts store.ListOptions) ([]models.Job, error) {
	const op = "JobService.List"

	jobs, err := s.jobs.List(ctx, opts)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	return jobs, nil
}

func (s *jobService) Get(ctx context.Context, id string) (*models.Job, error) {
	const op = "JobService.Get"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "id is required", nil)
	}
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get job", err)
	}
	return j, nil
}

func (s *jobService) Create(ctx context.Context, in JobInput) (*models.Job, error) {
	const op = "JobService.Create"

	if err := validateURL(op, in.URL); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	applied := now
	if in.DateApplied != nil {
		applied = *in.DateApplied
	}
	job := &models.Job{
		ID:            uuid.NewString(),
		DateApplied:   applied,
		CompanyName:   in.CompanyName,
		JobTitle:      in.JobTitle,
		URL:           in.URL,
		SalaryMin:     in.SalaryMin,
		SalaryMax:     in.SalaryMax,
		IsDenied:      in.IsDenied,
		DeniedDate:    in.DeniedDate,
		Notes:         in.Notes,
		WorkplaceType: models.ParseWorkplaceType(in.WorkplaceType),
		LastModified:  now,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create job", err)
	}
	s.hub.Publish(events.Event{Type: events.TypeJobCreated, JobID: job.ID})
	return job, nil
}

func (s *jobService) Update(ctx context.Context, id string, in JobInput) (*models.Job, error) {
	const op = "JobService.Update"

	if err := validateURL(op, in.URL); err != nil {
		return nil, err
	}

	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.DateApplied != nil {
		job.DateApplied = *in.DateApplied
	}
	job.CompanyName = in.CompanyName
	job.JobTitle = in.JobTitle
	job.URL = in.URL
	job.SalaryMin = in.SalaryMin
	job.SalaryMax = in.SalaryMax
	job.IsDenied = in.IsDenied
	job.DeniedDate = in.DeniedDate
	job.Notes = in.Notes
	job.WorkplaceType = models.ParseWorkplaceType(in.WorkplaceType)
	job.Touch()

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update job", err)
	}
	s.hub.Publish(events.Event{Type: events.TypeJobUpdated, JobID: job.ID})
	return job, nil
}

func (s *jobService) Delete(ctx context.Context, id string) error {
	const op = "JobService.Delete"

	if id == "" {
		return utils.E(utils.CodeInvalidArgument, op, "id is required", nil)
	}
	if err := s.jobs.Delete(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete job", err)
	}
	s.hub.Publish(events.Event{Type: events.TypeJobDeleted, JobID: id})
	return nil
}

func (s *jobService) AddInterview(ctx context.Context, jobID string, date time.Time, notes string) (*models.Job, error) {
	const op = "JobService.AddInterview"

	job, err := s.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	job.Interviews = append(job.Interviews, models.Interview{
		ID:    uuid.NewString(),
		JobID: job.ID,
		Date:  date,
		Notes: notes,
		Round: job.NextRound(),
	})
	job.Touch()

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to add interview", err)
	}
	s.hub.Publish(events.Event{Type: events.TypeJobUpdated, JobID: job.ID})
	return job, nil
}

func (s *jobService) UpdateInterview(ctx context.Context, jobID, interviewID string, date time.Time, notes string) (*models.Job, error) {
	const op = "JobService.UpdateInterview"

	job, err := s.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range job.Interviews {
		if job.Interviews[i].ID == interviewID {
			job.Interviews[i].Date = date
			job.Interviews[i].Notes = notes
			found = true
			break
		}
	}
	if !found {
		return nil, utils.E(utils.CodeNotFound, op, "interview not found", nil)
	}
	job.Touch()

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update interview", err)
	}
	s.hub.Publish(events.Event{Type: events.TypeJobUpdated, JobID: job.ID})
	return job, nil
}

func (s *jobService) RemoveInterview(ctx context.Context, jobID, interviewID string) (*models.Job, error) {
	const op = "JobService.RemoveInterview"

	job, err := s.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	kept := job.Interviews[:0]
	found := false
	for _, iv := range job.Interviews {
		if iv.ID == interviewID {
			found = true
			continue
		}
		kept = append(kept, iv)
	}
	if !found {
		return nil, utils.E(utils.CodeNotFound, op, "interview not found", nil)
	}
	job.Interviews = kept
	job.Touch()

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to remove interview", err)
	}
	s.hub.Publish(events.Event{Type: events.TypeJobUpdated, JobID: job.ID})
	return job, nil
}

func (s *jobService) Stats(ctx context.Context) (*Stats, error) {
	const op = "JobService.Stats"

	jobs, err := s.jobs.List(ctx, store.ListOptions{})
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	st := &Stats{Applied: len(jobs)}
	for i := range jobs {
		if jobs[i].HasInterview() {
			st.Interviewed++
		}
		if jobs[i].IsDenied {
			st.Denied++
		}
	}
	return st, nil
}

// Timeline buckets applied/interview/denial events by calendar day over
// [from, to]. The store is small enough that this is in-memory work, same
// as the original dashboard.
func (s *jobService) Timeline(ctx context.Context, from, to time.Time) ([]TimelinePoint, error) {
	const op = "JobService.Timeline"

	if to.Before(from) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "time range is inverted", nil)
	}
	jobs, err := s.jobs.List(ctx, store.ListOptions{})
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}

	buckets := map[string]*TimelinePoint{}
	bucket := func(t time.Time) *TimelinePoint {
		day := t.Format("2006-01-02")
		if p, ok := buckets[day]; ok {
			return p
		}
		p := &TimelinePoint{Date: day}
		buckets[day] = p
		return p
	}
	inRange := func(t time.Time) bool {
		return !t.Before(from) && !t.After(to)
	}

	for i := range jobs {
		j := &jobs[i]
		if inRange(j.DateApplied) {
			bucket(j.DateApplied).Applied++
		}
		for k := range j.Interviews {
			if inRange(j.Interviews[k].Date) {
				bucket(j.Interviews[k].Date).Interviews++
			}
		}
		if j.IsDenied && j.DeniedDate != nil && inRange(*j.DeniedDate) {
			bucket(*j.DeniedDate).Denials++
		}
	}

	points := make([]TimelinePoint, 0, len(buckets))
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if p, ok := buckets[d.Format("2006-01-02")]; ok {
			points = append(points, *p)
		}
	}
	return points, nil
}

func validateURL(op, raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return utils.E(utils.CodeInvalidArgument, op, "url must be absolute", err)
	}
	return nil
}
