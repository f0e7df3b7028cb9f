package model

// Status describes the outcome of one generation job.
type Status int

const (
	// Generated indicates a test case was produced and written.
	Generated Status = iota
	// Skipped indicates the strategy rejected the input (usage error).
	Skipped
	// Failed indicates an index, syntax or I/O failure.
	Failed
)

func (s Status) String() string {
	switch s {
	case Generated:
		return "generated"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Report records one generation job of a batch run.
type Report struct {
	Input     Path     `msgpack:"input" yaml:"input"`
	InputHash string   `msgpack:"input_hash" yaml:"input_hash"`
	Strategy  Strategy `msgpack:"strategy" yaml:"strategy"`
	Iteration int      `msgpack:"iteration" yaml:"iteration"`
	Seed      uint64   `msgpack:"seed" yaml:"seed"`
	Output    Path     `msgpack:"output,omitempty" yaml:"output,omitempty"`
	Size      int      `msgpack:"size" yaml:"size"`
	Status    Status   `msgpack:"status" yaml:"status"`
	Err       string   `msgpack:"err,omitempty" yaml:"error,omitempty"`
}

// RunSummary aggregates reports per strategy.
type RunSummary struct {
	Strategy  Strategy `yaml:"strategy"`
	Generated int      `yaml:"generated"`
	Skipped   int      `yaml:"skipped"`
	Failed    int      `yaml:"failed"`
	Bytes     int      `yaml:"bytes"`
}

// Manifest is the persisted record of a batch run.
type Manifest struct {
	Version   int          `yaml:"version"`
	Seed      uint64       `yaml:"seed"`
	Count     int          `yaml:"count"`
	Summaries []RunSummary `yaml:"summaries"`
	Reports   []Report     `yaml:"reports"`
}
