// Package generation turns user input into a validated resume document and
// produces critique of generated resumes using a language model.
package generation

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jonathan/intelliresume/internal/llm"
	"github.com/jonathan/intelliresume/internal/logging"
	"github.com/jonathan/intelliresume/internal/types"
)

// Default sampling temperatures.
const (
	DefaultContentTemperature  float32 = 0.6
	DefaultFeedbackTemperature float32 = 0.7
)

// Generator runs the content and feedback flows. It holds no per-call
// state and is safe for concurrent use.
type Generator struct {
	client              llm.Client
	tier                llm.ModelTier
	contentTemperature  float32
	feedbackTemperature float32
}

// Option configures a Generator.
type Option func(*Generator)

// WithTier selects the model tier for both flows.
func WithTier(tier llm.ModelTier) Option {
	return func(g *Generator) { g.tier = tier }
}

// WithTemperatures overrides the sampling temperatures.
func WithTemperatures(content, feedback float32) Option {
	return func(g *Generator) {
		g.contentTemperature = content
		g.feedbackTemperature = feedback
	}
}

// New creates a Generator. A nil client makes every call fail with
// KindAuthFailure.
func New(client llm.Client, opts ...Option) *Generator {
	g := &Generator{
		client:              client,
		tier:                llm.TierStandard,
		contentTemperature:  DefaultContentTemperature,
		feedbackTemperature: DefaultFeedbackTemperature,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateResume produces a ResumeDocument from the request with one model
// call. Failures are *GenerationError.
func (g *Generator) GenerateResume(ctx context.Context, req types.GenerateRequest) (*types.ResumeDocument, error) {
	log := logging.FromContext(ctx).With("op", OpContent)

	if g.client == nil {
		return nil, Classify(OpContent, llm.ErrMissingAPIKey)
	}

	prompt, err := BuildContentPrompt(req)
	if err != nil {
		return nil, g.fail(log, OpContent, err)
	}

	reply, err := g.client.GenerateJSON(ctx, prompt, llm.Options{
		Tier:        g.tier,
		Temperature: g.contentTemperature,
	})
	if err != nil {
		return nil, g.fail(log, OpContent, err)
	}

	doc, err := ParseResumeReply(reply)
	if err != nil {
		log.Debug("rejected model reply", "reply", reply)
		return nil, g.fail(log, OpContent, err)
	}

	log.Info("resume generated",
		"experience", len(doc.Experience),
		"education", len(doc.Education),
		"skills", len(doc.Skills),
	)
	return doc, nil
}

// GetFeedback asks the model to critique a generated resume and returns the
// trimmed prose reply. The reply is never parsed.
func (g *Generator) GetFeedback(ctx context.Context, req types.FeedbackRequest) (string, error) {
	log := logging.FromContext(ctx).With("op", OpFeedback)

	if g.client == nil {
		return "", Classify(OpFeedback, llm.ErrMissingAPIKey)
	}

	prompt, err := BuildFeedbackPrompt(req)
	if err != nil {
		return "", g.fail(log, OpFeedback, err)
	}

	reply, err := g.client.GenerateText(ctx, prompt, llm.Options{
		Tier:        g.tier,
		Temperature: g.feedbackTemperature,
	})
	if err != nil {
		return "", g.fail(log, OpFeedback, err)
	}

	return strings.TrimSpace(reply), nil
}

func (g *Generator) fail(log *slog.Logger, op Operation, err error) *GenerationError {
	ge := Classify(op, err)
	log.Error("generation failed", "kind", ge.Kind, "field", ge.Field, "error", err)
	return ge
}
