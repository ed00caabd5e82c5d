package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestAnalyze_RequiresOneArgument(t *testing.T) {
	_, err := execute(t, "analyze")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestExtract_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.pdf")
	_, err := execute(t, "extract", missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.pdf")
}

func TestExtract_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.pdf")
	require.NoError(t, writeFile(path, func(f *os.File) error {
		_, err := f.WriteString("just some text")
		return err
	}))

	_, err := execute(t, "extract", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a parseable PDF")
}

func TestAnalyze_MissingAPIKey(t *testing.T) {
	t.Setenv("DOCANALYZER_COMPLETION_PROVIDER", "groq")
	t.Setenv("DOCANALYZER_COMPLETION_API_KEY", "")
	t.Setenv("GROQ_API_KEY", "")

	path := filepath.Join(t.TempDir(), "doc.pdf")
	_, err := execute(t, "analyze", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}
