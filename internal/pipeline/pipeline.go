// Package pipeline wires the five analysis stages into a directed graph with
// one conditional edge and executes it strictly sequentially over a shared
// state record.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/IamHari01/NEXUS-TALENT/internal/metrics"
	"github.com/IamHari01/NEXUS-TALENT/internal/observability"
	"github.com/IamHari01/NEXUS-TALENT/internal/types"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// End terminates graph execution.
const End = "END"

// gapThreshold routes low scores through gap analysis. At or above it the
// graph skips straight to pathfinding.
const gapThreshold = 85

// Stage is one node of the analysis graph. Run mutates only the state fields
// the stage owns; a returned error is recorded on the state and execution
// continues with the next node.
type Stage interface {
	Name() string
	Run(ctx context.Context, st *types.State) error
}

// edge resolves the next node name from the state after a stage ran.
type edge func(st *types.State) string

// Graph is the static node/edge wiring. Execution starts at entry and ends
// when an edge resolves to End.
type Graph struct {
	entry  string
	stages map[string]Stage
	edges  map[string]edge
}

// NewGraph builds the analysis DAG:
//
//	parse → source → score → (score < 85 ? gap : path) → path → END
func NewGraph(parse, source, score, gap, path Stage) *Graph {
	g := &Graph{
		entry:  parse.Name(),
		stages: make(map[string]Stage),
		edges:  make(map[string]edge),
	}
	g.addStage(parse, staticEdge(source.Name()))
	g.addStage(source, staticEdge(score.Name()))
	g.addStage(score, func(st *types.State) string {
		if st.MatchScore < gapThreshold {
			return gap.Name()
		}
		return path.Name()
	})
	g.addStage(gap, staticEdge(path.Name()))
	g.addStage(path, staticEdge(End))
	return g
}

func (g *Graph) addStage(s Stage, next edge) {
	g.stages[s.Name()] = s
	g.edges[s.Name()] = next
}

func staticEdge(next string) edge {
	return func(*types.State) string { return next }
}

// Engine executes the graph with tracing and per-stage metrics.
type Engine struct {
	graph   *Graph
	metrics *metrics.Collector
	logger  *zap.Logger
}

// NewEngine creates an engine. metrics may be nil.
func NewEngine(graph *Graph, m *metrics.Collector, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{graph: graph, metrics: m, logger: logger}
}

// Analyze runs the graph to its terminal state. Stage failures are recorded
// in the state and never abort the walk; only a panic escaping a stage is
// converted into the returned error.
func (e *Engine) Analyze(ctx context.Context, st *types.State) (err error) {
	tracer := observability.Tracer()
	ctx, span := tracer.Start(ctx, "career.analyze")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("workflow execution failed: %v", r)
			e.logger.Error("workflow panicked", zap.Any("panic", r))
		}
	}()

	e.metrics.AnalysisStarted()

	current := e.graph.entry
	for current != End {
		stage, ok := e.graph.stages[current]
		if !ok {
			return fmt.Errorf("graph references unknown stage %q", current)
		}

		stageCtx, stageSpan := tracer.Start(ctx, "stage."+stage.Name())
		start := time.Now()
		runErr := stage.Run(stageCtx, st)
		elapsed := time.Since(start)
		stageSpan.SetAttributes(attribute.Bool("stage.failed", runErr != nil))
		stageSpan.End()

		e.metrics.ObserveStage(stage.Name(), elapsed)

		if runErr != nil {
			e.logger.Warn("stage failed",
				zap.String("stage", stage.Name()),
				zap.Error(runErr))
			st.SetError(runErr.Error())
		}

		current = e.graph.edges[stage.Name()](st)
	}

	e.logger.Info("analysis complete",
		zap.Int("score", st.MatchScore),
		zap.Int("jobs", len(st.Jobs)),
		zap.Int("learning_resources", len(st.LearningPath)),
		zap.String("status", st.GapStatus),
		zap.Bool("degraded", st.Error != ""))
	return nil
}
