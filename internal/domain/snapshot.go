package domain

import "time"

// ExportRun describes one successful export of a user's repositories.
type ExportRun struct {
	ID         string
	Username   string
	FetchedAt  time.Time
	StatusCode int
	RepoCount  int
	JSONPath   string
	CSVPath    string
}

// SnapshotRepository is one exported row, kept with its position in the CSV.
type SnapshotRepository struct {
	Position  int
	FullName  string
	Name      string
	CreatedAt time.Time
	// Data is the projected record encoded as a JSON object.
	Data []byte
}

// Snapshot is an export run together with the rows it produced.
type Snapshot struct {
	Run          ExportRun
	Repositories []SnapshotRepository
}
