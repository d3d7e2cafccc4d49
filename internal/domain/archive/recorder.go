package archive

import "time"

// Operation names reported to a Recorder
const (
	OpCreate = "create"
	OpAdd    = "add"
	OpRemove = "remove"
	OpExport = "export"
)

// Recorder receives one call per archive write
type Recorder interface {
	RecordRewrite(op string, bytes int64, duration time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) RecordRewrite(string, int64, time.Duration, error) {}
