package entity

// DatasetProfiledEvent is published after a fresh profile so the raw bytes can
// be archived out of band.
type DatasetProfiledEvent struct {
	EventID   string
	DatasetID string
	Name      string
	Raw       []byte
}
