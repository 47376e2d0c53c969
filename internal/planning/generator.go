package planning

import (
	"context"
	"errors"
	"time"

	"wellness/planner/internal/completion"
	"wellness/planner/internal/domain"
	"wellness/planner/internal/logger"
)

// Stage is a step of one generation.
type Stage string

const (
	StageIdle               Stage = "idle"
	StageBuildingPrompt     Stage = "building_prompt"
	StageAwaitingCompletion Stage = "awaiting_completion"
	StageParsed             Stage = "parsed"
	StageFallback           Stage = "fallback"
)

// Outcome is a generated or substituted document. Reason is nil when
// Source is generated.
type Outcome[T any] struct {
	Document T
	Source   domain.PlanSource
	Model    string
	Reason   error
}

// Fallback reports whether the document is the hand-authored substitute.
func (o Outcome[T]) Fallback() bool { return o.Source == domain.SourceFallback }

type Generator struct {
	invoker completion.Invoker
	logger  *logger.Logger
	now     func() time.Time
}

func NewGenerator(invoker completion.Invoker, log *logger.Logger) *Generator {
	return &Generator{
		invoker: invoker,
		logger:  log.With("service", "Generator"),
		now:     time.Now,
	}
}

// WithClock replaces the time source used for plan dates.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate makes exactly one completion attempt for the variant. Any failure
// of the completion service or of the output yields the variant's fallback
// with Source set to fallback. Only a missing API key and cancellation of
// ctx are returned as errors; in those cases nothing should be persisted.
func Generate[T any](ctx context.Context, g *Generator, v Variant[T], profile domain.UserProfile, pc PromptContext) (Outcome[T], error) {
	log := g.logger.With("variant", v.Name, "userId", profile.UserID)
	now := g.now()

	log.Debug("generation stage", "stage", StageBuildingPrompt)
	prompt := v.Build(Normalize(profile), pc)

	log.Debug("generation stage", "stage", StageAwaitingCompletion, "provider", v.Provider, "model", v.Model)
	raw, err := g.invoker.Complete(ctx, completion.Request{
		Provider: v.Provider,
		Model:    v.Model,
		Messages: []completion.Message{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
		MaxTokens:   v.MaxTokens,
		Temperature: v.Temperature,
	})
	if err != nil {
		switch {
		case errors.Is(err, completion.ErrNotConfigured), errors.Is(err, completion.ErrUnknownProvider):
			log.Error("completion provider not configured", "error", err)
			return Outcome[T]{}, err
		case ctx.Err() != nil:
			log.Info("generation cancelled", "error", ctx.Err())
			return Outcome[T]{}, ctx.Err()
		}
		log.Warn("completion failed, using fallback", "stage", StageFallback, "error", err)
		return fallback(v, profile, pc, now, err), nil
	}

	doc, err := Parse(raw, v.Schema)
	if err != nil {
		log.Warn("completion output rejected, using fallback", "stage", StageFallback, "error", err, "length", len(raw))
		return fallback(v, profile, pc, now, err), nil
	}
	if v.Stamp != nil {
		v.Stamp(&doc, now)
	}
	log.Info("generation stage", "stage", StageParsed)
	return Outcome[T]{Document: doc, Source: domain.SourceGenerated, Model: v.Model}, nil
}

func fallback[T any](v Variant[T], profile domain.UserProfile, pc PromptContext, now time.Time, reason error) Outcome[T] {
	return Outcome[T]{
		Document: v.Fallback(profile, pc, now),
		Source:   domain.SourceFallback,
		Model:    v.Model,
		Reason:   reason,
	}
}
