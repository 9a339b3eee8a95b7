package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://job-boards.greenhouse.io/doordashusa/jobs/7063751", PlatformGreenhouse},
		{"https://boards.greenhouse.io/company/jobs/123", PlatformGreenhouse},
		{"https://greenhouse.io/jobs/456", PlatformGreenhouse},
		{"https://jobs.lever.co/company/job-id", PlatformLever},
		{"https://company.wd5.myworkdayjobs.com/en-US/External", PlatformWorkday},
		{"https://workday.com/jobs", PlatformWorkday},
		{"https://jobs.ashbyhq.com/acme/1234", PlatformAshby},
		{"https://JOBS.LEVER.CO/Company", PlatformLever},
		{"https://example.com/careers/123", PlatformUnknown},
		{"https://notgreenhouse.io.evil.com/jobs", PlatformUnknown},
		{"https://clever.com/jobs", PlatformUnknown},
		{"://bad url", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestPlatformSelectors(t *testing.T) {
	assert.Equal(t, ".job__description.body", PlatformGreenhouse.ContentSelectors()[0])
	assert.Contains(t, PlatformLever.ContentSelectors(), ".posting-description")
	assert.Contains(t, PlatformWorkday.ContentSelectors(), "[data-automation-id='jobDescription']")
	assert.Equal(t, JobPostingSelectors(), PlatformUnknown.ContentSelectors())

	common := PlatformUnknown.NoiseSelectors()
	assert.Contains(t, common, "form")
	assert.Contains(t, common, ".eeo-statement")

	for _, p := range []Platform{PlatformGreenhouse, PlatformLever, PlatformWorkday, PlatformAshby} {
		noise := p.NoiseSelectors()
		assert.Greater(t, len(noise), len(common), "platform %s adds its own noise selectors", p)
		assert.Subset(t, noise, common)
	}
}
