package domain

// Span names emitted by the execution engine.
const (
	// SpanProjectExecute covers one execution of a project's task list.
	SpanProjectExecute = "project.execute"
	// SpanTaskExecute covers one task within an execution.
	SpanTaskExecute = "task.execute"
)

// Span attribute keys.
const (
	AttrExecutionID = "remotex.execution_id"
	AttrProject     = "remotex.project"
	AttrTask        = "remotex.task"
	AttrTaskIndex   = "remotex.task_index"
	AttrTaskCount   = "remotex.task_count"
	AttrState       = "remotex.state"
)
