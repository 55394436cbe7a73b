package orchestration

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJobs(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		doc  string
		want []Job
	}{
		{
			name: "sequence",
			doc: `
- name: wilkinson
  poly: w 20
  refine: 30
- poly: "-2 0 1"
  print: 15
`,
			want: []Job{
				{Name: "wilkinson", Poly: "w 20", Refine: intPtr(30)},
				{Name: "job-2", Poly: "-2 0 1", Print: intPtr(15)},
			},
		},
		{
			name: "mapping",
			doc: `
jobs:
  - name: mignotte
    poly: m 20 5
    refine: 10
    print: 10
`,
			want: []Job{{Name: "mignotte", Poly: "m 20 5", Refine: intPtr(10), Print: intPtr(10)}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := LoadJobs(strings.NewReader(tc.doc))
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("LoadJobs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadJobs_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"empty document", "", "no jobs"},
		{"empty list", "[]", "no jobs"},
		{"scalar", "hello", "expected a list of jobs"},
		{"missing poly", "- name: nothing\n", `job "nothing": missing poly`},
		{"negative refine", "- poly: w 3\n  refine: -1\n", "refine must be non-negative"},
		{"negative print", "- poly: w 3\n  print: -4\n", "print must be non-negative"},
		{"unknown field", "- poly: w 3\n  digits: 4\n", "field digits not found"},
		{"malformed", "- poly: [w\n", "invalid batch file"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadJobs(strings.NewReader(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadJobsFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "jobs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- poly: c 12\n"), 0o600))

	jobs, err := LoadJobsFile(path)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "job-1", jobs[0].Name)

	_, err = LoadJobsFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = LoadJobsFile(empty)
	assert.True(t, errors.Is(err, ErrNoJobs))
}

func TestJobDigits(t *testing.T) {
	t.Parallel()
	refine, printDigits := Job{}.digits(7, 3)
	assert.Equal(t, 7, refine)
	assert.Equal(t, 3, printDigits)

	refine, printDigits = Job{Refine: intPtr(0), Print: intPtr(12)}.digits(7, 3)
	assert.Equal(t, 0, refine)
	assert.Equal(t, 12, printDigits)
}
