package csvio

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TwisterMc/JobTwister/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ts(y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, time.UTC)
}

func float(v float64) *float64 { return &v }

func sampleJob() models.Job {
	denied := date(2025, time.February, 10)
	return models.Job{
		ID:            "job-1",
		DateApplied:   date(2025, time.January, 15),
		CompanyName:   `Acme, Inc.`,
		JobTitle:      `Senior "Go" Engineer`,
		URL:           "https://acme.example/careers/42",
		SalaryMin:     float(120000),
		SalaryMax:     float(150000),
		IsDenied:      true,
		DeniedDate:    &denied,
		Notes:         "first line\nsecond, line with \"quotes\"",
		WorkplaceType: models.WorkplaceHybrid,
		LastModified:  ts(2025, time.February, 11, 9, 30, 0),
		Interviews: []models.Interview{
			{ID: "iv-2", JobID: "job-1", Date: ts(2025, time.February, 1, 14, 0, 0), Notes: "onsite; ask about |comp|", Round: 2},
			{ID: "iv-1", JobID: "job-1", Date: ts(2025, time.January, 20, 10, 0, 0), Notes: "phone screen", Round: 1},
		},
	}
}

func TestExportHeader(t *testing.T) {
	blob := Export(nil)
	assert.Equal(t,
		"ID,Date Applied,Company Name,Job Title,URL,Salary Min,Salary Max,Is Denied,Denied Date,Notes,Workplace Type,Last Modified,Interviews",
		blob)
}

func TestExportPreservesOrderAndHasNoTrailingNewline(t *testing.T) {
	jobs := []models.Job{
		{ID: "b", CompanyName: "Beta", WorkplaceType: models.WorkplaceRemote},
		{ID: "a", CompanyName: "Alpha", WorkplaceType: models.WorkplaceRemote},
	}
	blob := Export(jobs)

	records := splitRecords(blob)
	require.Len(t, records, 3)
	assert.True(t, strings.HasPrefix(records[1], "b,"))
	assert.True(t, strings.HasPrefix(records[2], "a,"))
	assert.False(t, strings.HasSuffix(blob, "\n"))
}

func TestRoundTrip(t *testing.T) {
	in := sampleJob()
	blob := Export([]models.Job{in})

	out, stats, err := Parse(blob)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 1, stats.Rows)
	assert.Equal(t, 0, stats.Skipped)

	got := out[0]
	assert.Equal(t, in.ID, got.ID)
	assert.True(t, got.DateApplied.Equal(in.DateApplied))
	assert.Equal(t, in.CompanyName, got.CompanyName)
	assert.Equal(t, in.JobTitle, got.JobTitle)
	assert.Equal(t, in.URL, got.URL)
	require.NotNil(t, got.SalaryMin)
	require.NotNil(t, got.SalaryMax)
	assert.Equal(t, *in.SalaryMin, *got.SalaryMin)
	assert.Equal(t, *in.SalaryMax, *got.SalaryMax)
	assert.Equal(t, in.IsDenied, got.IsDenied)
	require.NotNil(t, got.DeniedDate)
	assert.True(t, got.DeniedDate.Equal(*in.DeniedDate))
	assert.Equal(t, in.Notes, got.Notes)
	assert.Equal(t, in.WorkplaceType, got.WorkplaceType)
	assert.True(t, got.LastModified.Equal(in.LastModified))

	// interviews come back sorted by date; ids are regenerated but dates,
	// rounds, and notes must survive, delimiters included
	require.Len(t, got.Interviews, 2)
	assert.True(t, got.Interviews[0].Date.Equal(ts(2025, time.January, 20, 10, 0, 0)))
	assert.Equal(t, 1, got.Interviews[0].Round)
	assert.Equal(t, "phone screen", got.Interviews[0].Notes)
	assert.True(t, got.Interviews[1].Date.Equal(ts(2025, time.February, 1, 14, 0, 0)))
	assert.Equal(t, 2, got.Interviews[1].Round)
	assert.Equal(t, "onsite; ask about |comp|", got.Interviews[1].Notes)
}

func TestRoundTripEmptyOptionals(t *testing.T) {
	in := models.Job{
		ID:            "bare",
		DateApplied:   date(2025, time.March, 1),
		WorkplaceType: models.WorkplaceRemote,
		LastModified:  ts(2025, time.March, 1, 8, 0, 0),
	}
	out, _, err := Parse(Export([]models.Job{in}))
	require.NoError(t, err)
	require.Len(t, out, 1)

	got := out[0]
	assert.Equal(t, "bare", got.ID)
	assert.Empty(t, got.CompanyName)
	assert.Nil(t, got.SalaryMin)
	assert.Nil(t, got.SalaryMax)
	assert.Nil(t, got.DeniedDate)
	assert.False(t, got.IsDenied)
	assert.Empty(t, got.Interviews)
}

func TestParseSkipsShortRows(t *testing.T) {
	blob := Export([]models.Job{sampleJob()}) + "\nonly,three,columns"

	out, stats, err := Parse(blob)
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, 2, stats.Rows)
	assert.Equal(t, 1, stats.Skipped)
}

func TestParseEmptyInput(t *testing.T) {
	_, _, err := Parse("")
	assert.ErrorIs(t, err, ErrEmptyInput)

	headerOnly := strings.Join(FormatV3.Header(), ",")
	_, _, err = Parse(headerOnly)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, _, err = Parse(headerOnly + "\n\n\n")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestParseUnknownHeader(t *testing.T) {
	_, _, err := Parse("Foo,Bar,Baz\n1,2,3")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseGeneratesIDForBlankColumn(t *testing.T) {
	row := ",2025-01-01,Acme,Engineer,,,," + "false" + ",,notes,Remote,2025-01-01 10:00:00,"
	blob := strings.Join(FormatV3.Header(), ",") + "\n" + row

	out, _, err := Parse(blob)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.NotEmpty(t, out[0].ID)
}

func TestParseFieldFallbacks(t *testing.T) {
	row := "id-1,not a date,Acme,Engineer,,abc,-5,YES,garbage,notes,Starship,also not a date,"
	blob := strings.Join(FormatV3.Header(), ",") + "\n" + row

	out, _, err := Parse(blob)
	require.NoError(t, err)
	require.Len(t, out, 1)

	got := out[0]
	// unparseable required dates fall back to now, optional ones to nil
	assert.WithinDuration(t, time.Now().UTC(), got.DateApplied, 5*time.Second)
	assert.WithinDuration(t, time.Now().UTC(), got.LastModified, 5*time.Second)
	assert.Nil(t, got.DeniedDate)
	assert.Nil(t, got.SalaryMin)
	assert.Nil(t, got.SalaryMax)
	assert.False(t, got.IsDenied)
	assert.Equal(t, models.WorkplaceRemote, got.WorkplaceType)
}

func TestParseDropsBadInterviewSegments(t *testing.T) {
	interviews := "2025-01-20 10:00:00|1|good;not-a-date|2|bad;missingparts"
	row := `id-1,2025-01-01,Acme,Engineer,,,,false,,notes,Remote,2025-01-01 10:00:00,"` + interviews + `"`
	blob := strings.Join(FormatV3.Header(), ",") + "\n" + row

	out, _, err := Parse(blob)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Len(t, out[0].Interviews, 1)
	assert.Equal(t, "good", out[0].Interviews[0].Notes)
}

func TestFlexibleDateFormats(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"March 5, 2025 2:30 PM", ts(2025, time.March, 5, 14, 30, 0)},
		{"2025-03-05", date(2025, time.March, 5)},
		{"2025-03-05 14:30:00", ts(2025, time.March, 5, 14, 30, 0)},
	}
	for _, tt := range tests {
		got, ok := parseFlexibleDate(tt.in)
		require.True(t, ok, "input %q", tt.in)
		assert.True(t, got.Equal(tt.want), "input %q", tt.in)
	}

	_, ok := parseFlexibleDate("yesterday-ish")
	assert.False(t, ok)
}

func TestParseLegacyV1(t *testing.T) {
	blob := strings.Join(FormatV1.Header(), ",") + "\n" +
		`Acme,Engineer,"some, notes",true,false,Hybrid,2024-05-01,2024-05-02`

	out, _, err := Parse(blob)
	require.NoError(t, err)
	require.Len(t, out, 1)

	got := out[0]
	assert.NotEmpty(t, got.ID) // v1 has no identifier column
	assert.Equal(t, "Acme", got.CompanyName)
	assert.Equal(t, "Engineer", got.JobTitle)
	assert.Equal(t, "some, notes", got.Notes)
	assert.Equal(t, models.WorkplaceHybrid, got.WorkplaceType)
	assert.False(t, got.IsDenied)
	assert.True(t, got.DateApplied.Equal(date(2024, time.May, 1)))
	// without a date column, the boolean interview flag reconstructs nothing
	assert.Empty(t, got.Interviews)
}

func TestParseLegacyV2(t *testing.T) {
	blob := strings.Join(FormatV2.Header(), ",") + "\n" +
		"id-7,2024-06-01,Acme,Engineer,https://acme.example,120000,true,2024-06-10 10:00:00,false,notes,In-Office"

	out, _, err := Parse(blob)
	require.NoError(t, err)
	require.Len(t, out, 1)

	got := out[0]
	assert.Equal(t, "id-7", got.ID)
	require.NotNil(t, got.SalaryMin)
	assert.Equal(t, 120000.0, *got.SalaryMin)
	assert.Nil(t, got.SalaryMax) // flat salary era had no range
	assert.Equal(t, models.WorkplaceInOffice, got.WorkplaceType)
	require.Len(t, got.Interviews, 1)
	assert.Equal(t, 1, got.Interviews[0].Round)
	assert.True(t, got.Interviews[0].Date.Equal(ts(2024, time.June, 10, 10, 0, 0)))
}

func TestDetectFormat(t *testing.T) {
	f, err := DetectFormat(FormatV3.Header())
	require.NoError(t, err)
	assert.Equal(t, FormatV3, f)

	f, err = DetectFormat(FormatV1.Header())
	require.NoError(t, err)
	assert.Equal(t, FormatV1, f)

	// case and whitespace tolerant, but never a guess
	f, err = DetectFormat(TokenizeRow("company name, job title, notes, has interview, is denied, work type, date applied, last modified"))
	require.NoError(t, err)
	assert.Equal(t, FormatV1, f)

	_, err = DetectFormat([]string{"ID", "Stuff"})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
