package csvio

import (
	"errors"
	"strings"
)

// Format identifies one of the known CSV column layouts. The column set
// drifted alongside the entity schema over the application's lifetime, so
// import detects the layout from the header row instead of guessing from
// column counts.
type Format int

const (
	// FormatV3 is the canonical layout: identifiers, salary range, denial
	// date, and the serialized interview history.
	FormatV3 Format = iota
	// FormatV1 is the original 8-column layout: no identifiers, boolean
	// interview state only.
	FormatV1
	// FormatV2 is the intermediate layout: identifiers and a flat salary,
	// interview state still a boolean plus a single date.
	FormatV2
)

var (
	ErrEmptyInput        = errors.New("csv: no data rows")
	ErrUnsupportedFormat = errors.New("csv: unrecognized header")
)

var headerV3 = []string{
	"ID", "Date Applied", "Company Name", "Job Title", "URL",
	"Salary Min", "Salary Max", "Is Denied", "Denied Date", "Notes",
	"Workplace Type", "Last Modified", "Interviews",
}

var headerV2 = []string{
	"ID", "Date Applied", "Company Name", "Job Title", "URL",
	"Salary", "Has Interview", "Interview Date", "Is Denied", "Notes",
	"Work Type",
}

var headerV1 = []string{
	"Company Name", "Job Title", "Notes", "Has Interview", "Is Denied",
	"Work Type", "Date Applied", "Last Modified",
}

// Header returns the column names for the format.
func (f Format) Header() []string {
	switch f {
	case FormatV1:
		return headerV1
	case FormatV2:
		return headerV2
	default:
		return headerV3
	}
}

func (f Format) String() string {
	switch f {
	case FormatV1:
		return "v1"
	case FormatV2:
		return "v2"
	default:
		return "v3"
	}
}

// DetectFormat matches tokenized header fields against the known layouts.
// Matching ignores case and surrounding whitespace but is otherwise exact;
// an unknown header is ErrUnsupportedFormat, never a guess.
func DetectFormat(header []string) (Format, error) {
	for _, f := range []Format{FormatV3, FormatV2, FormatV1} {
		if headerMatches(header, f.Header()) {
			return f, nil
		}
	}
	return FormatV3, ErrUnsupportedFormat
}

func headerMatches(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if !strings.EqualFold(strings.TrimSpace(got[i]), want[i]) {
			return false
		}
	}
	return true
}
