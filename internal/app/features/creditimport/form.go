package creditimport

import (
	"net/url"

	"github.com/dalemusser/credithub/internal/app/system/limits"
)

// FieldCSVString is the only field of the import form.
const FieldCSVString = "csv_string"

// Form is the import form state, echoed back to the page after every submit.
type Form struct {
	CSVString string `json:"csv_string"`
}

// DecodeForm checks that values carries exactly one csv_string value no
// larger than maxBytes (limits.MaxImportBytes when maxBytes <= 0).
func DecodeForm(values url.Values, maxBytes int) (Form, error) {
	if maxBytes <= 0 {
		maxBytes = limits.MaxImportBytes
	}

	vals := values[FieldCSVString]
	if len(vals) == 0 {
		return Form{}, &MalformedSubmissionError{Reason: "csv_string is required"}
	}
	if len(vals) != 1 {
		return Form{}, &MalformedSubmissionError{
			Reason: "csv_string must be submitted once",
			Form:   Form{CSVString: vals[0]},
		}
	}
	if len(vals[0]) > maxBytes {
		return Form{}, &MalformedSubmissionError{Reason: "csv_string is too large"}
	}
	return Form{CSVString: vals[0]}, nil
}
