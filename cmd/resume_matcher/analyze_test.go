package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/extraction/pdftest"
	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/schemas"
)

const (
	resumeText      = "Experienced in Python and SQL."
	descriptionText = "Looking for a Python, SQL, and AWS engineer."
)

func TestAnalyzeCommand_JSON(t *testing.T) {
	resume := writeFile(t, "resume.pdf", pdftest.Build(resumeText))

	out, err := executeCommand(t, "analyze", "--resume", resume, "--job-text", descriptionText)
	require.NoError(t, err)
	require.NoError(t, schemas.ValidateResultJSON([]byte(out)))

	var result matching.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, []string{"aws", "python", "sql"}, result.DescriptionSkills.Slice())
	assert.Equal(t, []string{"aws"}, result.MissingSkills.Slice())
	assert.Greater(t, result.SimilarityPercent, 0.0)
}

func TestAnalyzeCommand_Text(t *testing.T) {
	resume := writeFile(t, "resume.pdf", pdftest.Build(resumeText))

	out, err := executeCommand(t, "analyze", "-r", resume, "--job-text", descriptionText, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Match:")
	assert.Contains(t, out, "Tier:")
	assert.Contains(t, out, "Missing skills:")
	assert.Contains(t, out, "aws")
}

func TestAnalyzeCommand_JobFile(t *testing.T) {
	resume := writeFile(t, "resume.pdf", pdftest.Build(resumeText))
	job := writeFile(t, "job.txt", []byte(descriptionText+"\n"))

	out, err := executeCommand(t, "analyze", "--resume", resume, "--job", job)
	require.NoError(t, err)

	var result matching.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, []string{"aws"}, result.MissingSkills.Slice())
}

func TestAnalyzeCommand_JobURL(t *testing.T) {
	posting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><nav>Home</nav><main><p>` + descriptionText + `</p></main></body></html>`))
	}))
	t.Cleanup(posting.Close)

	resume := writeFile(t, "resume.pdf", pdftest.Build(resumeText))

	out, err := executeCommand(t, "analyze", "--resume", resume, "--job-url", posting.URL+"/jobs/1")
	require.NoError(t, err)

	var result matching.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, []string{"aws", "python", "sql"}, result.DescriptionSkills.Slice())
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	resume := writeFile(t, "resume.pdf", pdftest.Build(resumeText))

	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{
			name:        "missing --resume",
			args:        []string{"analyze", "--job-text", descriptionText},
			errorString: "required flag",
		},
		{
			name:        "no job source",
			args:        []string{"analyze", "--resume", resume},
			errorString: "at least one of the flags",
		},
		{
			name:        "two job sources",
			args:        []string{"analyze", "--resume", resume, "--job-text", descriptionText, "--job-url", "https://example.com"},
			errorString: "none of the others",
		},
		{
			name:        "bad format",
			args:        []string{"analyze", "--resume", resume, "--job-text", descriptionText, "--format", "xml"},
			errorString: "invalid --format",
		},
		{
			name:        "resume not found",
			args:        []string{"analyze", "--resume", filepath.Join(t.TempDir(), "missing.pdf"), "--job-text", descriptionText},
			errorString: "failed to read resume",
		},
		{
			name:        "blank description",
			args:        []string{"analyze", "--resume", resume, "--job-text", "   "},
			errorString: "invalid input",
		},
		{
			name:        "job file not found",
			args:        []string{"analyze", "--resume", resume, "--job", filepath.Join(t.TempDir(), "job.txt")},
			errorString: "file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestAnalyzeCommand_InvalidConfig(t *testing.T) {
	resume := writeFile(t, "resume.pdf", pdftest.Build(resumeText))
	cfg := writeFile(t, "config.yaml", []byte("server:\n  max_upload_mb: 0\n"))

	_, err := executeCommand(t, "--config", cfg, "analyze", "--resume", resume, "--job-text", descriptionText)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config error")
}
