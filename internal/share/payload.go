package share

// DocumentEntry is one document in a portable payload. Only display metadata
// travels; document IDs are re-derived from URLs on import so payloads stay
// meaningful across substrates.
type DocumentEntry struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Payload is the portable form of one label's document set.
type Payload struct {
	Label     string          `json:"label"`
	Documents []DocumentEntry `json:"documents"`
}

// ImportResult reports the outcome of a merge.
// ImportedCount is only meaningful when Success is true.
type ImportResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ImportedCount int    `json:"imported_count"`
}
