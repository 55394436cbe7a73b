package orchestration

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Job is one entry of a batch file.
type Job struct {
	// Name labels the job in the summary. It defaults to "job-<index>".
	Name string `yaml:"name"`
	// Poly is the polynomial in command-line syntax, e.g. "w 20" or "-2 0 1".
	Poly string `yaml:"poly"`
	// Refine overrides the -refine digits of the invocation.
	Refine *int `yaml:"refine,omitempty"`
	// Print overrides the -print digits of the invocation.
	Print *int `yaml:"print,omitempty"`
}

// batchFile is the mapping form of a batch file.
type batchFile struct {
	Jobs []Job `yaml:"jobs"`
}

// ErrNoJobs is returned when a batch file lists no job.
var ErrNoJobs = errors.New("batch file contains no jobs")

// LoadJobsFile reads the batch file at path.
func LoadJobsFile(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	jobs, err := LoadJobs(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return jobs, nil
}

// LoadJobs decodes a batch document. The document is either a sequence of
// jobs or a mapping with a "jobs" key. Unknown fields are rejected.
func LoadJobs(r io.Reader) ([]Job, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoJobs
		}
		return nil, fmt.Errorf("invalid batch file: %w", err)
	}

	doc := &root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}

	var jobs []Job
	switch doc.Kind {
	case yaml.SequenceNode:
		if err := decodeStrict(doc, &jobs); err != nil {
			return nil, err
		}
	case yaml.MappingNode:
		var bf batchFile
		if err := decodeStrict(doc, &bf); err != nil {
			return nil, err
		}
		jobs = bf.Jobs
	default:
		return nil, fmt.Errorf("invalid batch file: expected a list of jobs at line %d", doc.Line)
	}

	if len(jobs) == 0 {
		return nil, ErrNoJobs
	}
	for i := range jobs {
		if err := jobs[i].validate(i); err != nil {
			return nil, err
		}
	}
	return jobs, nil
}

// decodeStrict re-encodes n so that it can be decoded with KnownFields.
func decodeStrict(n *yaml.Node, v any) error {
	raw, err := yaml.Marshal(n)
	if err != nil {
		return fmt.Errorf("invalid batch file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid batch file: %w", err)
	}
	return nil
}

func (j *Job) validate(index int) error {
	if j.Name == "" {
		j.Name = fmt.Sprintf("job-%d", index+1)
	}
	if j.Poly == "" {
		return fmt.Errorf("job %q: missing poly", j.Name)
	}
	if j.Refine != nil && *j.Refine < 0 {
		return fmt.Errorf("job %q: refine must be non-negative, got %d", j.Name, *j.Refine)
	}
	if j.Print != nil && *j.Print < 0 {
		return fmt.Errorf("job %q: print must be non-negative, got %d", j.Name, *j.Print)
	}
	return nil
}

// digits returns the job's refine and print digits, falling back to the
// invocation's.
func (j Job) digits(refine, printDigits int) (int, int) {
	if j.Refine != nil {
		refine = *j.Refine
	}
	if j.Print != nil {
		printDigits = *j.Print
	}
	return refine, printDigits
}
