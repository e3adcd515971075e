package csvio

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/TwisterMc/JobTwister/internal/models"
)

// Export serializes jobs into a CSV blob in the canonical layout: header
// row first, one row per job, '\n'-joined with no trailing newline. Input
// order is preserved; only each job's interviews are re-sorted (by date
// ascending) for deterministic output.
func Export(jobs []models.Job) string {
	lines := make([]string, 0, len(jobs)+1)
	lines = append(lines, strings.Join(FormatV3.Header(), ","))
	for i := range jobs {
		lines = append(lines, encodeRow(&jobs[i]))
	}
	return strings.Join(lines, "\n")
}

func encodeRow(j *models.Job) string {
	fields := []string{
		j.ID,
		formatDate(j.DateApplied),
		j.CompanyName,
		j.JobTitle,
		j.URL,
		formatOptionalFloat(j.SalaryMin),
		formatOptionalFloat(j.SalaryMax),
		strconv.FormatBool(j.IsDenied),
		formatOptionalDate(j.DeniedDate),
		j.Notes,
		string(j.WorkplaceType),
		formatTimestamp(j.LastModified),
		encodeInterviews(j.Interviews),
	}
	for i, f := range fields {
		fields[i] = EscapeField(f)
	}
	return strings.Join(fields, ",")
}

// encodeInterviews renders each interview as "date|round|notes" with the
// notes escaped against the sub-format delimiters, then joins the segments
// with ';'. The combined string is escaped once more by the row encoder
// when it becomes a CSV field.
func encodeInterviews(interviews []models.Interview) string {
	if len(interviews) == 0 {
		return ""
	}
	sorted := make([]models.Interview, len(interviews))
	copy(sorted, interviews)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Date.Before(sorted[b].Date)
	})

	segments := make([]string, 0, len(sorted))
	for i := range sorted {
		iv := &sorted[i]
		segments = append(segments, strings.Join([]string{
			formatTimestamp(iv.Date),
			strconv.Itoa(iv.Round),
			escapeAny(iv.Notes, interviewSpecials),
		}, "|"))
	}
	return strings.Join(segments, ";")
}

// decodeInterviews reverses encodeInterviews. A segment that does not split
// into exactly three parts, or whose date fails to parse, is dropped
// without failing the row.
func decodeInterviews(jobID, field string) []models.Interview {
	if field == "" {
		return nil
	}
	var out []models.Interview
	for _, segment := range splitQuoted(field, ';') {
		parts := splitQuoted(segment, '|')
		if len(parts) != 3 {
			continue
		}
		date, ok := parseFlexibleDate(strings.TrimSpace(parts[0]))
		if !ok {
			continue
		}
		round, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || round < 1 {
			round = len(out) + 1
		}
		out = append(out, models.Interview{
			ID:    uuid.NewString(),
			JobID: jobID,
			Date:  date,
			Notes: UnescapeField(parts[2]),
			Round: round,
		})
	}
	return out
}

// ImportStats reports what Parse did with the rows it saw.
type ImportStats struct {
	Rows    int // non-empty data rows
	Skipped int // rows dropped for having too few columns
}

// Parse decodes a CSV blob into transient jobs. The header row selects the
// column layout; rows with fewer columns than the layout requires are
// skipped, and malformed fields degrade to their documented fallbacks
// rather than failing the row. A blob with no data rows at all returns
// ErrEmptyInput.
func Parse(blob string) ([]models.Job, ImportStats, error) {
	var stats ImportStats

	records := splitRecords(blob)
	for len(records) > 0 && strings.TrimSpace(records[len(records)-1]) == "" {
		records = records[:len(records)-1]
	}
	if len(records) == 0 {
		return nil, stats, ErrEmptyInput
	}

	format, err := DetectFormat(TokenizeRow(records[0]))
	if err != nil {
		return nil, stats, err
	}

	var jobs []models.Job
	for _, record := range records[1:] {
		if strings.TrimSpace(record) == "" {
			continue
		}
		stats.Rows++
		cols := TokenizeRow(record)
		if len(cols) < len(format.Header()) {
			stats.Skipped++
			continue
		}
		jobs = append(jobs, decodeRow(format, cols))
	}
	if stats.Rows == 0 {
		return nil, stats, ErrEmptyInput
	}
	return jobs, stats, nil
}

func decodeRow(format Format, cols []string) models.Job {
	switch format {
	case FormatV1:
		return decodeRowV1(cols)
	case FormatV2:
		return decodeRowV2(cols)
	default:
		return decodeRowV3(cols)
	}
}

func decodeRowV3(cols []string) models.Job {
	now := time.Now().UTC()
	job := models.Job{
		ID:            decodeID(cols[0]),
		DateApplied:   requiredDate(cols[1], now),
		CompanyName:   strings.TrimSpace(cols[2]),
		JobTitle:      strings.TrimSpace(cols[3]),
		URL:           strings.TrimSpace(cols[4]),
		SalaryMin:     optionalFloat(cols[5]),
		SalaryMax:     optionalFloat(cols[6]),
		IsDenied:      decodeBool(cols[7]),
		DeniedDate:    optionalDate(cols[8]),
		Notes:         cols[9],
		WorkplaceType: models.ParseWorkplaceType(strings.TrimSpace(cols[10])),
		LastModified:  requiredDate(cols[11], now),
	}
	job.Interviews = decodeInterviews(job.ID, cols[12])
	return job
}

func decodeRowV2(cols []string) models.Job {
	now := time.Now().UTC()
	job := models.Job{
		ID:            decodeID(cols[0]),
		DateApplied:   requiredDate(cols[1], now),
		CompanyName:   strings.TrimSpace(cols[2]),
		JobTitle:      strings.TrimSpace(cols[3]),
		URL:           strings.TrimSpace(cols[4]),
		SalaryMin:     optionalFloat(cols[5]),
		IsDenied:      decodeBool(cols[8]),
		Notes:         cols[9],
		WorkplaceType: models.ParseWorkplaceType(strings.TrimSpace(cols[10])),
		LastModified:  now,
	}
	// The boolean-era interview state becomes a single round-1 interview
	// when a date survives; without a date nothing can be reconstructed.
	if decodeBool(cols[6]) {
		if date, ok := parseFlexibleDate(strings.TrimSpace(cols[7])); ok {
			job.Interviews = []models.Interview{{
				ID:    uuid.NewString(),
				JobID: job.ID,
				Date:  date,
				Round: 1,
			}}
		}
	}
	return job
}

func decodeRowV1(cols []string) models.Job {
	now := time.Now().UTC()
	return models.Job{
		ID:            uuid.NewString(),
		CompanyName:   strings.TrimSpace(cols[0]),
		JobTitle:      strings.TrimSpace(cols[1]),
		Notes:         cols[2],
		IsDenied:      decodeBool(cols[4]),
		WorkplaceType: models.ParseWorkplaceType(strings.TrimSpace(cols[5])),
		DateApplied:   requiredDate(cols[6], now),
		LastModified:  requiredDate(cols[7], now),
	}
}

func decodeID(s string) string {
	if id := strings.TrimSpace(s); id != "" {
		return id
	}
	return uuid.NewString()
}

func decodeBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

func requiredDate(s string, now time.Time) time.Time {
	if t, ok := parseFlexibleDate(strings.TrimSpace(s)); ok {
		return t
	}
	return now
}

func optionalDate(s string) *time.Time {
	if t, ok := parseFlexibleDate(strings.TrimSpace(s)); ok {
		return &t
	}
	return nil
}

func optionalFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

func formatOptionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}
