// Package pipeline threads a run through a small sequence of
// processing stages, each free to append diagnostics to the shared
// context without halting the run, so a caller can inspect every
// stage's findings together rather than only the first failure.
package pipeline

import "io"

// Directive is one unit of work a Processor can act on. A caller's
// own directive type need only report a label for diagnostics.
type Directive interface {
	Describe() string
}

// Diagnostic is one stage-reported problem or note, kept distinct
// from a hard error so a run can surface several at once.
type Diagnostic struct {
	Stage   string
	Message string
}

// PipelineContext threads state between Processors: the directives
// being run, the diagnostics accumulated so far, and the sink stages
// write human-readable output to.
type PipelineContext struct {
	Directives  []Directive
	Diagnostics []Diagnostic
	Out         io.Writer
	Err         error
}

// NewPipelineContext creates a context over directives, writing stage
// output to out.
func NewPipelineContext(directives []Directive, out io.Writer) *PipelineContext {
	return &PipelineContext{Directives: directives, Out: out}
}

// AddDiagnostic appends a diagnostic attributed to stage.
func (c *PipelineContext) AddDiagnostic(stage, message string) {
	c.Diagnostics = append(c.Diagnostics, Diagnostic{Stage: stage, Message: message})
}

// Processor is one pipeline stage. It must not panic; stage failures
// are reported via ctx.Diagnostics or ctx.Err instead, so later
// stages can still run and the caller sees every stage's findings.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Continue on errors to collect diagnostics from all stages
		// (a stage that set ctx.Err or added diagnostics does not stop
		// later stages from being called; each stage decides itself
		// whether to act on what earlier stages recorded).
	}
	return ctx
}
