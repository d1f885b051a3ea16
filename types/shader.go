package types

// ShaderStage represents a shader stage.
type ShaderStage uint8

const (
	// ShaderStageNone represents no shader stage.
	ShaderStageNone ShaderStage = 0
	// ShaderStageVertex is the vertex shader stage.
	ShaderStageVertex ShaderStage = 1 << iota
	// ShaderStageFragment is the fragment shader stage.
	ShaderStageFragment
	// ShaderStageCompute is the compute shader stage.
	ShaderStageCompute
)

// ShaderStages is a combination of shader stages.
type ShaderStages = ShaderStage

const (
	// ShaderStagesVertexFragment includes vertex and fragment.
	ShaderStagesVertexFragment = ShaderStageVertex | ShaderStageFragment
	// ShaderStagesAll includes all stages.
	ShaderStagesAll = ShaderStageVertex | ShaderStageFragment | ShaderStageCompute
)

// ShaderSource is compiled shader code attached to a pipeline stage. The
// runtime consumes pre-built binaries only; compilation happens upstream.
type ShaderSource interface {
	shaderSource()
}

// ShaderSourceSPIRV is a pre-built SPIR-V binary. Code's length must be a
// positive multiple of 4; the words are in the byte order the producing
// compiler wrote, which for every practical toolchain is host order.
type ShaderSourceSPIRV struct {
	// Code is the SPIR-V bytecode.
	Code []byte
}

func (ShaderSourceSPIRV) shaderSource() {}
