package core

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
	// ParamTypeBool denotes boolean parameters.
	ParamTypeBool ParamType = "bool"
	// ParamTypeString denotes free-form string parameters.
	ParamTypeString ParamType = "string"
)

// Parameter describes a single tunable value exposed by the generation
// pipeline for inspection.
type Parameter struct {
	Key         string
	Label       string
	Type        ParamType
	Value       string
	Description string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name    string
	Params  []Parameter
	Summary string
}

// ParameterSnapshot captures the current set of tunables driving a
// generation run. It is a read-only view used by the describe flag of the
// CLI and the preview overlay; mutating it has no effect on the pipeline.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}
