package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jobsSource = `package jobs

import "time"

type Other struct {
	Name string
}

//go:generate builder-gen
type Job struct {
	Name  string
	Steps []string ` + "`" + `builder:"each=Step"` + "`" + `
	Every time.Duration ` + "`" + `builder:"default=time.Minute"` + "`" + `
}
`

const pairSource = `package jobs

//go:generate builder-gen
type First struct {
	A int
}

//go:generate builder-gen
type Second struct {
	B int
}
`

func setupPackage(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jobs.go"), []byte(jobsSource), 0o644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("GOFILE", "jobs.go")
	t.Setenv("GOPACKAGE", "jobs")
	t.Setenv("GOLINE", "9")
	return dir
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand(&out, &errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	t.Run("Should infer the type from the generate directive", func(t *testing.T) {
		dir := setupPackage(t)
		_, stderr, err := execute(t)
		require.NoError(t, err)
		src, err := os.ReadFile(filepath.Join(dir, "jobs_job_builder.go"))
		require.NoError(t, err)
		assert.Contains(t, string(src), "func (b JobBuilder) Step(v string) JobBuilder")
		assert.Contains(t, stderr, "Generated")
	})
	t.Run("Should generate the type below the reported line", func(t *testing.T) {
		dir := setupPackage(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "pair.go"), []byte(pairSource), 0o644))
		t.Setenv("GOFILE", "pair.go")
		for _, tc := range []struct{ line, want, skip string }{
			{"3", "pair_first_builder.go", "pair_second_builder.go"},
			{"8", "pair_second_builder.go", "pair_first_builder.go"},
		} {
			require.NoError(t, os.RemoveAll(filepath.Join(dir, tc.skip)))
			t.Setenv("GOLINE", tc.line)
			_, _, err := execute(t)
			require.NoError(t, err)
			assert.FileExists(t, filepath.Join(dir, tc.want))
			assert.NoFileExists(t, filepath.Join(dir, tc.skip))
		}
	})
	t.Run("Should honour an explicit type", func(t *testing.T) {
		dir := setupPackage(t)
		_, _, err := execute(t, "--type=Other")
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "jobs_other_builder.go"))
	})
	t.Run("Should print to stdout", func(t *testing.T) {
		dir := setupPackage(t)
		stdout, _, err := execute(t, "--stdout", "--package=jobs_test")
		require.NoError(t, err)
		assert.Contains(t, stdout, "package jobs_test")
		assert.Contains(t, stdout, "func NewJobBuilder() JobBuilder")
		assert.NoFileExists(t, filepath.Join(dir, "jobs_job_builder.go"))
	})
	t.Run("Should write into the output directory", func(t *testing.T) {
		setupPackage(t)
		out := t.TempDir()
		_, _, err := execute(t, "--output", out)
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(out, "jobs_job_builder.go"))
	})
	t.Run("Should read the source file from a flag", func(t *testing.T) {
		dir := setupPackage(t)
		t.Setenv("GOFILE", "")
		_, _, err := execute(t, "--file", filepath.Join(dir, "jobs.go"), "--type=Job")
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "jobs_job_builder.go"))
	})
	t.Run("Should fail without a source file", func(t *testing.T) {
		setupPackage(t)
		t.Setenv("GOFILE", "")
		_, stderr, err := execute(t)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no source file")
		assert.Contains(t, stderr, "generation failed")
	})
	t.Run("Should fail for an unknown type", func(t *testing.T) {
		setupPackage(t)
		_, _, err := execute(t, "--type=Missing")
		assert.Error(t, err)
	})
	t.Run("Should reject an invalid log level", func(t *testing.T) {
		setupPackage(t)
		_, _, err := execute(t, "--log-level=loud")
		assert.ErrorContains(t, err, "invalid log level")
	})
	t.Run("Should reject positional arguments", func(t *testing.T) {
		setupPackage(t)
		_, _, err := execute(t, "extra")
		assert.Error(t, err)
	})
}

func TestDetectTypeName(t *testing.T) {
	dir := setupPackage(t)
	t.Run("Should use the directive above the type", func(t *testing.T) {
		name, err := detectTypeName(dir, "jobs.go", 0)
		require.NoError(t, err)
		assert.Equal(t, "Job", name)
	})
	t.Run("Should prefer the line reported by go generate", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "pair.go"), []byte(pairSource), 0o644))
		name, err := detectTypeName(dir, "pair.go", 8)
		require.NoError(t, err)
		assert.Equal(t, "Second", name)
		name, err = detectTypeName(dir, "pair.go", 0)
		require.NoError(t, err)
		assert.Equal(t, "First", name)
	})
	t.Run("Should find a struct below the line without a directive", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "plain.go"), []byte("package jobs\n\ntype Plain struct {\n\tName string\n}\n"), 0o644))
		name, err := detectTypeName(dir, "plain.go", 1)
		require.NoError(t, err)
		assert.Equal(t, "Plain", name)
	})
}
