package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pqcguard/internal/domain/models"
	"pqcguard/internal/executor"
	"pqcguard/internal/playbooks"
	"pqcguard/pkg/logger"
)

// ErrEmptyScenario rejects blank scenario text before the pipeline starts.
var ErrEmptyScenario = errors.New("scenario text is empty")

// timeNow is swapped in tests to freeze time.
var timeNow = time.Now

// Engine drives an assessment run through its states:
// idle -> classifying -> resolving -> scoring -> roadmap_building ->
// awaiting_execution -> document_building -> complete. Transitions are
// strictly forward; failed is terminal. All run state is call-local, so
// concurrent runs never interfere.
type Engine struct {
	classifier *Classifier
	resolver   *Resolver
	inventory  *Inventory
	scorer     *Scorer
	roadmap    *RoadmapBuilder
	documents  *DocumentBuilder
	reporter   *Reporter
	registry   *playbooks.Registry
	executor   executor.Executor
	logger     *logger.Logger
}

// NewEngine wires the pipeline services into an assessment engine.
func NewEngine(
	classifier *Classifier,
	resolver *Resolver,
	inventory *Inventory,
	scorer *Scorer,
	roadmap *RoadmapBuilder,
	documents *DocumentBuilder,
	reporter *Reporter,
	registry *playbooks.Registry,
	exec executor.Executor,
	log *logger.Logger,
) *Engine {
	return &Engine{
		classifier: classifier,
		resolver:   resolver,
		inventory:  inventory,
		scorer:     scorer,
		roadmap:    roadmap,
		documents:  documents,
		reporter:   reporter,
		registry:   registry,
		executor:   exec,
		logger:     log.WithComponent("engine"),
	}
}

// Analyze runs the pipeline up to the assessment plan, leaving the run in
// awaiting_execution. No playbooks are executed.
func (e *Engine) Analyze(ctx context.Context, scenario string) (models.AssessmentRun, error) {
	run := newRun(scenario)
	log := e.logger.WithRunID(run.ID)

	if strings.TrimSpace(scenario) == "" {
		return fail(run, ErrEmptyScenario), ErrEmptyScenario
	}

	run.State = models.StateClassifying
	run.Classification = e.classifier.Classify(scenario)
	quantum := run.Classification.Profile == ProfileQuantum

	run.State = models.StateResolving
	controls, err := e.resolver.Resolve(ctx, run.Classification)
	if err != nil {
		return fail(run, err), err
	}
	run.Controls = controls

	run.State = models.StateScoring
	run.Assets = e.inventory.ExtractAssets(scenario, run.CreatedAt)
	risk := e.scorer.Assess(run.Assets, run.CreatedAt)
	run.Risk = &risk

	// Quantum scenarios always assess the key management baseline; elevated
	// aggregate risk pulls in data-at-rest protection as well.
	if quantum {
		baseline := []string{"SC-12", "SC-13", "SC-17"}
		if risk.HasElevatedRisk() {
			baseline = append(baseline, "SC-28")
		}
		for _, id := range baseline {
			if err := e.resolver.EnsureControl(ctx, &run.Controls, id); err != nil {
				return fail(run, err), err
			}
		}
	}

	run.State = models.StateRoadmapBuilding
	roadmap := e.roadmap.Build(risk, run.CreatedAt)
	run.Roadmap = &roadmap

	plan := e.documents.BuildAssessmentPlan(run.Controls, quantum, run.CreatedAt)
	run.Plan = &plan

	run.State = models.StateAwaitingExecution

	log.Info().
		Str("profile", run.Classification.Profile).
		Strs("categories", run.Classification.Categories()).
		Int("controls", len(run.Controls.Controls)).
		Int("assets", len(run.Assets)).
		Msg("analysis complete, awaiting execution")

	return run, nil
}

// Run executes the full pipeline: analysis, sequential playbook execution,
// and document/report building.
func (e *Engine) Run(ctx context.Context, scenario string, opts ReportOptions) (models.AssessmentRun, error) {
	run, err := e.Analyze(ctx, scenario)
	if err != nil {
		return run, err
	}
	log := e.logger.WithRunID(run.ID)

	start := timeNow().UTC()
	outcomes, err := e.executePlaybooks(ctx, run.Controls.Playbooks, log)
	if err != nil {
		return fail(run, err), err
	}
	run.Executions = outcomes
	end := timeNow().UTC()

	run.State = models.StateDocumentBuilding
	results := e.documents.BuildAssessmentResults(outcomes, start, end)
	run.Results = &results

	report := e.reporter.Generate(run.Controls, outcomes, &results, opts, end)
	run.Report = &report

	run.State = models.StateComplete
	completed := timeNow().UTC()
	run.CompletedAt = &completed

	log.Info().
		Str("overall", OverallStatus(outcomes)).
		Int("executions", len(outcomes)).
		Msg("assessment run complete")

	return run, nil
}

// executePlaybooks awaits each resolved playbook sequentially, in registry
// registration order. A playbook that runs and fails is recorded and the run
// continues; an unreachable executor aborts the run.
func (e *Engine) executePlaybooks(ctx context.Context, slugs []string, log *logger.Logger) ([]models.ExecutionOutcome, error) {
	wanted := make(map[string]bool, len(slugs))
	for _, slug := range slugs {
		wanted[slug] = true
	}

	executed := make(map[string]bool, len(slugs))
	var outcomes []models.ExecutionOutcome
	for _, playbook := range e.registry.List() {
		if !wanted[playbook.Slug] {
			continue
		}
		executed[playbook.Slug] = true

		startedAt := timeNow().UTC()
		result, err := e.executor.Execute(ctx, executor.Request{
			Playbook:  playbook.Slug,
			Path:      playbook.Path,
			ControlID: primaryControl(playbook),
		})
		if err != nil {
			return nil, fmt.Errorf("playbook %s: %w", playbook.Slug, err)
		}
		finishedAt := timeNow().UTC()

		outcome := models.ExecutionOutcome{
			Playbook:   playbook.Slug,
			ControlID:  primaryControl(playbook),
			Status:     result.Status,
			Output:     result.Output,
			StartedAt:  startedAt,
			FinishedAt: finishedAt,
		}
		for _, f := range result.Findings {
			outcome.Findings = append(outcome.Findings, models.ExecutionFinding{
				Control:  f.Control,
				Status:   f.Status,
				Message:  f.Message,
				Evidence: f.Evidence,
			})
		}
		if outcome.Failed() {
			log.Warn().Str("playbook", playbook.Slug).Msg("playbook execution failed")
		}
		outcomes = append(outcomes, outcome)
	}

	// A custom manifest can drop playbooks the classifier still references.
	// Skipping them is acceptable degradation, but never a silent one.
	for _, slug := range slugs {
		if !executed[slug] {
			log.Warn().Str("playbook", slug).Msg("resolved playbook has no registry entry, skipping")
		}
	}
	return outcomes, nil
}

func primaryControl(p playbooks.Playbook) string {
	if len(p.Controls) > 0 {
		return p.Controls[0]
	}
	return playbooks.ConventionControlID(p.Slug)
}

func newRun(scenario string) models.AssessmentRun {
	return models.AssessmentRun{
		ID:        uuid.NewString(),
		Scenario:  scenario,
		State:     models.StateIdle,
		CreatedAt: timeNow().UTC(),
	}
}

func fail(run models.AssessmentRun, err error) models.AssessmentRun {
	run.State = models.StateFailed
	run.Error = err.Error()
	completed := timeNow().UTC()
	run.CompletedAt = &completed
	return run
}
