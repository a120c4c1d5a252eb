// internal/app/system/limits/limits.go
package limits

// Request body size limits for various features.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxImportBytes is the default maximum size of a credit import submission.
	MaxImportBytes = 1 << 20 // 1 MB
)

// MaxConcurrentCreates bounds how many credit inserts one import runs at once.
const MaxConcurrentCreates = 16

// Import history page sizes.
const (
	DefaultHistoryPage = 25
	MaxHistoryPage     = 200
)
