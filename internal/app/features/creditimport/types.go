package creditimport

import (
	"github.com/dalemusser/credithub/internal/app/system/formutil"
)

// importData is the view model for the import page.
type importData struct {
	formutil.Base

	CSVString    string
	FieldName    string
	Submitted    bool
	Lines        int
	FailedCount  int
	Created      int
	CreateFailed int
}

// importResponse is the JSON body for API callers.
type importResponse struct {
	Form         Form   `json:"form"`
	BatchID      string `json:"batch_id,omitempty"`
	Lines        int    `json:"lines"`
	FailedCount  int    `json:"failed_count"`
	Created      int    `json:"created"`
	CreateFailed int    `json:"create_failed"`
	Error        string `json:"error,omitempty"`
}
