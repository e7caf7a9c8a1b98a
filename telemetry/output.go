package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/particles/config"
)

// CSVLog appends records to one CSV file, writing the header once.
type CSVLog struct {
	name          string
	file          *os.File
	headerWritten bool
}

// CreateCSVLog creates (or truncates) dir/name.
func CreateCSVLog(dir, name string) (*CSVLog, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &CSVLog{name: name, file: f}, nil
}

// Append writes records, which must be a slice of structs with csv tags.
func (l *CSVLog) Append(records any) error {
	if !l.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, l.file); err != nil {
			return fmt.Errorf("writing %s: %w", l.name, err)
		}
		l.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, l.file); err != nil {
		return fmt.Errorf("writing %s: %w", l.name, err)
	}
	return nil
}

// Close closes the file. A nil log is a no-op.
func (l *CSVLog) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir       string
	telemetry *CSVLog
	perf      *CSVLog
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	telemetry, err := CreateCSVLog(dir, "telemetry.csv")
	if err != nil {
		return nil, err
	}
	perf, err := CreateCSVLog(dir, "perf.csv")
	if err != nil {
		telemetry.Close()
		return nil, err
	}

	return &OutputManager{dir: dir, telemetry: telemetry, perf: perf}, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return om.telemetry.Append([]WindowStats{stats})
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	return om.perf.Append([]PerfStatsCSV{stats.ToCSV(windowEnd)})
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files and returns the first error.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, l := range []*CSVLog{om.telemetry, om.perf} {
		if err := l.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
