package ports

// ProgressReporter receives advancement of a long-running batch so the user
// can watch uploads and exports tick by. Implementations must tolerate
// Advance/Done without a preceding Start.
type ProgressReporter interface {
	Start(label string, total int)
	Advance(item string)
	Done()
}

// NoopProgress discards all progress events; used in tests and quiet mode
type NoopProgress struct{}

func (NoopProgress) Start(string, int) {}
func (NoopProgress) Advance(string)    {}
func (NoopProgress) Done()             {}
