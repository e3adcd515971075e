package models

import (
	"time"
)

type WorkplaceType string

const (
	WorkplaceRemote   WorkplaceType = "Remote"
	WorkplaceHybrid   WorkplaceType = "Hybrid"
	WorkplaceInOffice WorkplaceType = "In-Office"
)

// ParseWorkplaceType maps stored text to a WorkplaceType.
// Unknown values fall back to Remote.
func ParseWorkplaceType(s string) WorkplaceType {
	switch WorkplaceType(s) {
	case WorkplaceHybrid:
		return WorkplaceHybrid
	case WorkplaceInOffice:
		return WorkplaceInOffice
	default:
		return WorkplaceRemote
	}
}

// Job is the aggregate root for one application. Interviews are owned
// exclusively by the job and are deleted with it.
type Job struct {
	ID            string        `gorm:"column:id;type:text;primaryKey" json:"id"`
	DateApplied   time.Time     `gorm:"column:date_applied" json:"date_applied"`
	CompanyName   string        `gorm:"column:company_name;type:text" json:"company_name"`
	JobTitle      string        `gorm:"column:job_title;type:text" json:"job_title"`
	URL           string        `gorm:"column:url;type:text" json:"url"`
	SalaryMin     *float64      `gorm:"column:salary_min" json:"salary_min,omitempty"`
	SalaryMax     *float64      `gorm:"column:salary_max" json:"salary_max,omitempty"`
	IsDenied      bool          `gorm:"column:is_denied" json:"is_denied"`
	DeniedDate    *time.Time    `gorm:"column:denied_date" json:"denied_date,omitempty"`
	Notes         string        `gorm:"column:notes;type:text" json:"notes"`
	WorkplaceType WorkplaceType `gorm:"column:workplace_type;type:text" json:"workplace_type"`
	LastModified  time.Time     `gorm:"column:last_modified" json:"last_modified"`

	Interviews []Interview `gorm:"foreignKey:JobID;references:ID;constraint:OnDelete:CASCADE" json:"interviews"`
}

func (Job) TableName() string { return "jobs" }

// HasInterview is derived from the interviews collection; it is never
// stored as its own column.
func (j *Job) HasInterview() bool { return len(j.Interviews) > 0 }

// LatestInterviewDate returns the date of the most recent interview,
// or nil when there are none.
func (j *Job) LatestInterviewDate() *time.Time {
	var latest *time.Time
	for i := range j.Interviews {
		d := j.Interviews[i].Date
		if latest == nil || d.After(*latest) {
			latest = &d
		}
	}
	return latest
}

// NextRound returns max(existing rounds) + 1.
func (j *Job) NextRound() int {
	max := 0
	for i := range j.Interviews {
		if j.Interviews[i].Round > max {
			max = j.Interviews[i].Round
		}
	}
	return max + 1
}

// Touch refreshes LastModified.
func (j *Job) Touch() { j.LastModified = time.Now().UTC() }

type Interview struct {
	ID    string    `gorm:"column:id;type:text;primaryKey" json:"id"`
	JobID string    `gorm:"column:job_id;type:text;index" json:"job_id"`
	Date  time.Time `gorm:"column:date" json:"date"`
	Notes string    `gorm:"column:notes;type:text" json:"notes"`
	Round int       `gorm:"column:round" json:"round"`
}

func (Interview) TableName() string { return "interviews" }
