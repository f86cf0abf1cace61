// Package answers drafts application-question answers with an LLM, using
// the applicant's resume text as grounding material.
package answers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"github.com/jobhunter/backend/internal/config"
)

// ErrNotConfigured is returned when no API key was provided.
var ErrNotConfigured = errors.New("answers: no API key configured")

// resumeCharLimit keeps prompts within model context limits.
const resumeCharLimit = 12000

// Request carries one application question plus its surrounding context.
type Request struct {
	Question string `json:"question"`
	Resume   string `json:"resume"`
	JobTitle string `json:"job_title"`
	Company  string `json:"company"`
}

// Drafter generates answer drafts. A nil Drafter is valid and reports
// itself unavailable, so callers can hold one unconditionally.
type Drafter struct {
	llm     llms.Model
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// New builds a drafter from config. Returns ErrNotConfigured when the
// API key is missing, which callers should treat as a disabled feature
// rather than a startup failure.
func New(cfg config.LLMConfig, logger *zap.Logger) (*Drafter, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	llm, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("creating llm client: %w", err)
	}
	return &Drafter{llm: llm, model: cfg.Model, timeout: cfg.Timeout, logger: logger}, nil
}

// Available reports whether answer drafting can be served.
func (d *Drafter) Available() bool {
	return d != nil && d.llm != nil
}

// Draft produces an answer to one application question.
func (d *Drafter) Draft(ctx context.Context, req Request) (string, error) {
	if !d.Available() {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(req.Question) == "" {
		return "", errors.New("answers: question is required")
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	prompt := BuildPrompt(req)
	answer, err := llms.GenerateFromSinglePrompt(ctx, d.llm, prompt)
	if err != nil {
		return "", fmt.Errorf("generating answer: %w", err)
	}

	d.logger.Debug("answer drafted",
		zap.String("model", d.model),
		zap.Int("prompt_chars", len(prompt)),
	)
	return strings.TrimSpace(answer), nil
}

// BuildPrompt assembles the drafting prompt. The resume is truncated
// rather than rejected when it exceeds the context budget.
func BuildPrompt(req Request) string {
	resume := req.Resume
	if len(resume) > resumeCharLimit {
		resume = resume[:resumeCharLimit]
	}

	var b strings.Builder
	b.WriteString("You are helping a job applicant answer an application question.\n")
	b.WriteString("Write in first person, keep it concise (2-4 sentences unless the question demands more), ")
	b.WriteString("and ground every claim in the resume below. Never invent experience the resume does not support.\n\n")
	if req.JobTitle != "" {
		fmt.Fprintf(&b, "Position: %s\n", req.JobTitle)
	}
	if req.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", req.Company)
	}
	fmt.Fprintf(&b, "\nQuestion: %s\n", req.Question)
	if resume != "" {
		fmt.Fprintf(&b, "\nResume:\n%s\n", resume)
	}
	return b.String()
}
