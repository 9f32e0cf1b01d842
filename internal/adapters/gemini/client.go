// Package gemini implements the generation client port using Google's
// Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.trai.ch/glean/internal/core/domain"
	"go.trai.ch/glean/internal/core/ports"
	"go.trai.ch/zerr"
	"google.golang.org/genai"
)

var _ ports.GenerationClient = (*Client)(nil)

// Client implements ports.GenerationClient against the Gemini API. It is
// safe for concurrent use.
type Client struct {
	client *genai.Client
	logger ports.Logger
}

// NewClient creates a Client from the GEMINI_API_KEY environment variable
// (read by the node wiring) or an explicit key.
func NewClient(ctx context.Context, apiKey string, logger ports.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, zerr.New("gemini API key is empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create gemini client")
	}

	return &Client{client: client, logger: logger}, nil
}

// Generate executes one task's generation request. Failures are classified
// into domain.ErrGenerationRetryable (timeouts, provider errors) and
// domain.ErrGenerationTerminal (safety blocks, empty responses) so the
// scheduler only retries the transient class.
func (c *Client) Generate(ctx context.Context, req ports.GenerationRequest) (domain.Artifact, error) {
	prompt := buildPrompt(req)

	resp, err := c.client.Models.GenerateContent(ctx, req.Model, genai.Text(prompt), nil)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return domain.Artifact{}, err
		}
		// Provider errors, including deadline expiry, are assumed
		// transient unless proven otherwise.
		return domain.Artifact{}, fmt.Errorf("%w: task %s: %v", domain.ErrGenerationRetryable, req.TaskID, err)
	}

	return artifactFromResponse(req, resp)
}

// artifactFromResponse turns a raw model response into an artifact,
// classifying empty and safety-blocked responses as terminal.
func artifactFromResponse(req ports.GenerationRequest, resp *genai.GenerateContentResponse) (domain.Artifact, error) {
	switch {
	case resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil:
		return domain.Artifact{}, fmt.Errorf("%w: task %s: empty response", domain.ErrGenerationTerminal, req.TaskID)
	case resp.Candidates[0].FinishReason == genai.FinishReasonSafety:
		return domain.Artifact{}, fmt.Errorf("%w: task %s: blocked by safety filters", domain.ErrGenerationTerminal, req.TaskID)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}

	if text.Len() == 0 {
		return domain.Artifact{}, fmt.Errorf("%w: task %s: no text parts", domain.ErrGenerationTerminal, req.TaskID)
	}

	return domain.Artifact{
		TaskName:  req.TaskID,
		Content:   text.String(),
		Model:     req.Model,
		CreatedAt: time.Now(),
	}, nil
}

// taskInstructions maps pipeline task ids to their role line. Prompt
// wording is deliberately minimal; quality tuning lives outside this repo.
var taskInstructions = map[string]string{
	domain.TaskClassify.String():     "Classify this video by topic, audience and content type.",
	domain.TaskSummarize.String():    "Write a layered summary: one paragraph, then key points.",
	domain.TaskAnalyze.String():      "Analyze the core insights and arguments of this video.",
	domain.TaskActionPlan.String():   "Derive a concrete action plan from the analysis.",
	domain.TaskReport.String():       "Synthesize a full report from the upstream analyses.",
	domain.TaskBlogPost.String():     "Write a blog post based on the summary.",
	domain.TaskLinkedInPost.String(): "Write a LinkedIn post based on the summary.",
	domain.TaskTweet.String():        "Write a tweet based on the summary.",
}

func buildPrompt(req ports.GenerationRequest) string {
	var b strings.Builder

	if instruction, ok := taskInstructions[req.TaskID]; ok {
		b.WriteString(instruction)
		b.WriteString("\n\n")
	}

	if custom := req.Params[domain.ParamCustomInstruction]; custom != "" {
		fmt.Fprintf(&b, "Additional instructions: %s\n\n", custom)
	}

	// Upstream artifacts in deterministic order. Missing optional inputs
	// are omitted rather than rendered as placeholders.
	names := make([]string, 0, len(req.Inputs))
	for name := range req.Inputs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if req.Inputs[name] == domain.MissingInput {
			continue
		}
		fmt.Fprintf(&b, "## %s\n%s\n\n", name, req.Inputs[name])
	}

	fmt.Fprintf(&b, "## transcript\n%s\n", req.Transcript)
	return b.String()
}
