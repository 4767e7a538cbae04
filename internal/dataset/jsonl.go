package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Output file names for the two partitions.
const (
	TrainingFile   = "training.jsonl"
	ValidationFile = "validation.jsonl"
)

// WriteStats summarizes a persistence pass. Dropped counts examples that
// failed validation at write time; callers use it to detect dataset
// shrinkage quantitatively instead of grepping logs.
type WriteStats struct {
	Written int
	Dropped int
}

// WriteJSONL serializes examples to path as JSON Lines, one example per
// line. Every example is validated immediately before writing; invalid ones
// are logged and skipped, so malformed examples can never reach disk no
// matter how they were produced upstream.
//
// The file is written to a temporary sibling and renamed into place, so a
// pre-existing file from an earlier run is only replaced by a complete one.
func WriteJSONL(path string, examples []Example, log *logrus.Logger) (WriteStats, error) {
	if log == nil {
		log = discardLogger()
	}

	var stats WriteStats
	tmp := path + ".tmp"

	// #nosec G304 -- path is the caller's output location
	f, err := os.Create(tmp)
	if err != nil {
		return stats, fmt.Errorf("create %s: %w", tmp, err)
	}

	writeErr := func() error {
		defer func() { _ = f.Close() }()

		w := bufio.NewWriter(f)
		enc := json.NewEncoder(w)
		for i, ex := range examples {
			if !Validate(ex) {
				stats.Dropped++
				log.WithFields(logrus.Fields{
					"file":  filepath.Base(path),
					"index": i,
				}).Warn("dropping invalid example")
				continue
			}
			if err := enc.Encode(ex); err != nil {
				return fmt.Errorf("encode example %d: %w", i, err)
			}
			stats.Written++
		}
		return w.Flush()
	}()

	if writeErr != nil {
		_ = os.Remove(tmp)
		return WriteStats{}, writeErr
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return WriteStats{}, fmt.Errorf("finalize %s: %w", path, err)
	}
	return stats, nil
}

// SplitStats holds per-partition write statistics.
type SplitStats struct {
	Training   WriteStats
	Validation WriteStats
}

// Dropped is the total number of examples dropped across both partitions.
func (s SplitStats) Dropped() int {
	return s.Training.Dropped + s.Validation.Dropped
}

// WriteSplit persists the two partitions as training.jsonl and
// validation.jsonl under dir, creating dir if needed.
func WriteSplit(dir string, training, validation []Example, log *logrus.Logger) (SplitStats, error) {
	if err := os.MkdirAll(dir, 0750); err != nil { // #nosec G301 -- user output dir
		return SplitStats{}, fmt.Errorf("create output directory: %w", err)
	}

	trainStats, err := WriteJSONL(filepath.Join(dir, TrainingFile), training, log)
	if err != nil {
		return SplitStats{}, err
	}
	valStats, err := WriteJSONL(filepath.Join(dir, ValidationFile), validation, log)
	if err != nil {
		return SplitStats{}, err
	}

	return SplitStats{Training: trainStats, Validation: valStats}, nil
}

// ReadJSONL parses a JSONL file back into examples. Lines that are not
// valid JSON objects are counted as skipped rather than failing the read;
// structural validation of parseable examples is the caller's concern.
func ReadJSONL(path string) (examples []Example, skipped int, err error) {
	// #nosec G304 -- path is user-provided input
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ex Example
		if err := json.Unmarshal(line, &ex); err != nil {
			skipped++
			continue
		}
		examples = append(examples, ex)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", path, err)
	}
	return examples, skipped, nil
}

// discardLogger returns a logger that drops everything.
func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
