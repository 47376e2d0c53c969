package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"wellness/planner/internal/domain"
	"wellness/planner/internal/planning"
)

// runner erases a variant's document type so commands can pick one by name.
type runner struct {
	prompt   func(domain.UserProfile, planning.PromptContext) planning.Prompt
	fallback func(domain.UserProfile, planning.PromptContext, time.Time) any
	generate func(context.Context, *planning.Generator, domain.UserProfile, planning.PromptContext) (result, error)
}

// result is the printable form of a generation outcome.
type result struct {
	Source   domain.PlanSource `json:"source"`
	Model    string            `json:"model"`
	Reason   string            `json:"reason,omitempty"`
	Document any               `json:"document"`
}

func runnerFor[T any](v planning.Variant[T]) runner {
	return runner{
		prompt: func(p domain.UserProfile, pc planning.PromptContext) planning.Prompt {
			return v.Build(planning.Normalize(p), pc)
		},
		fallback: func(p domain.UserProfile, pc planning.PromptContext, now time.Time) any {
			return v.Fallback(p, pc, now)
		},
		generate: func(ctx context.Context, g *planning.Generator, p domain.UserProfile, pc planning.PromptContext) (result, error) {
			out, err := planning.Generate(ctx, g, v, p, pc)
			if err != nil {
				return result{}, err
			}
			r := result{Source: out.Source, Model: out.Model, Document: out.Document}
			if out.Reason != nil {
				r.Reason = out.Reason.Error()
			}
			return r, nil
		},
	}
}

var runners = map[string]runner{
	planning.TwoDay.Name:         runnerFor(planning.TwoDay),
	planning.PlanOptions.Name:    runnerFor(planning.PlanOptions),
	planning.SchedulePlans.Name:  runnerFor(planning.SchedulePlans),
	planning.HealthScore.Name:    runnerFor(planning.HealthScore),
	planning.PlanActivities.Name: runnerFor(planning.PlanActivities),
}

func lookupRunner(name string) (runner, error) {
	r, ok := runners[name]
	if !ok {
		names := make([]string, 0, len(runners))
		for n := range runners {
			names = append(names, n)
		}
		sort.Strings(names)
		return runner{}, fmt.Errorf("unknown variant %q (want one of %s)", name, strings.Join(names, ", "))
	}
	return r, nil
}

// loadInputs reads the profile and prompt context files. Missing paths give
// zero values.
func loadInputs(profileFile, contextFile string) (domain.UserProfile, planning.PromptContext, error) {
	var (
		p  domain.UserProfile
		pc planning.PromptContext
	)
	if err := readJSON(profileFile, &p); err != nil {
		return p, pc, fmt.Errorf("profile: %w", err)
	}
	if err := readJSON(contextFile, &pc); err != nil {
		return p, pc, fmt.Errorf("context: %w", err)
	}
	return p, pc, nil
}

func readJSON(path string, v any) error {
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
