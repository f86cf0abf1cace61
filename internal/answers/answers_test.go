package answers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobhunter/backend/internal/config"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(config.LLMConfig{Model: "gpt-3.5-turbo"}, zap.NewNop())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestDraft_NilDrafterReportsUnavailable(t *testing.T) {
	var d *Drafter
	assert.False(t, d.Available())

	_, err := d.Draft(context.Background(), Request{Question: "Why us?"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestBuildPrompt_IncludesAllContext(t *testing.T) {
	prompt := BuildPrompt(Request{
		Question: "Why do you want this job?",
		Resume:   "Five years operating forklifts at Metro Warehouse.",
		JobTitle: "Forklift Operator",
		Company:  "Prime Distribution",
	})

	assert.Contains(t, prompt, "Why do you want this job?")
	assert.Contains(t, prompt, "Five years operating forklifts")
	assert.Contains(t, prompt, "Position: Forklift Operator")
	assert.Contains(t, prompt, "Company: Prime Distribution")
}

func TestBuildPrompt_OmitsEmptySections(t *testing.T) {
	prompt := BuildPrompt(Request{Question: "Describe your availability."})

	assert.NotContains(t, prompt, "Position:")
	assert.NotContains(t, prompt, "Company:")
	assert.NotContains(t, prompt, "Resume:")
}

func TestBuildPrompt_TruncatesLongResume(t *testing.T) {
	resume := strings.Repeat("x", resumeCharLimit+5000)
	prompt := BuildPrompt(Request{Question: "Q", Resume: resume})

	require.Less(t, len(prompt), resumeCharLimit+1000)
}
