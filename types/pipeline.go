package types

// VertexStage describes the vertex stage of a render pipeline.
type VertexStage struct {
	// Source is the compiled shader the vertex stage runs.
	Source ShaderSource
	// EntryPoint is the entry point function name.
	EntryPoint string
	// Constants are pipeline-overridable constants.
	Constants map[string]float64
	// Buffers are the vertex buffer layouts consumed by the stage.
	Buffers []VertexBufferLayout
}

// FragmentStage describes the fragment stage of a render pipeline.
type FragmentStage struct {
	// Source is the compiled shader the fragment stage runs.
	Source ShaderSource
	// EntryPoint is the entry point function name.
	EntryPoint string
	// Constants are pipeline-overridable constants.
	Constants map[string]float64
	// Targets are the color targets written by the stage.
	Targets []ColorTargetState
}

// StencilOperation describes a stencil test operation.
type StencilOperation uint8

const (
	StencilOperationKeep StencilOperation = iota
	StencilOperationZero
	StencilOperationReplace
	StencilOperationInvert
	StencilOperationIncrementClamp
	StencilOperationDecrementClamp
	StencilOperationIncrementWrap
	StencilOperationDecrementWrap
)

// StencilFaceState describes the stencil test for one polygon face.
type StencilFaceState struct {
	// Compare is the comparison function.
	Compare CompareFunction
	// FailOp runs when the stencil test fails.
	FailOp StencilOperation
	// DepthFailOp runs when the stencil test passes but the depth test fails.
	DepthFailOp StencilOperation
	// PassOp runs when both the stencil and depth tests pass.
	PassOp StencilOperation
}

// DepthStencilState describes the depth/stencil attachment state of a
// render pipeline.
type DepthStencilState struct {
	// Format is the depth/stencil texture format.
	Format TextureFormat
	// DepthWriteEnabled enables writes to the depth attachment.
	DepthWriteEnabled bool
	// DepthCompare is the depth comparison function.
	DepthCompare CompareFunction
	// StencilFront is the stencil state for front-facing polygons.
	StencilFront StencilFaceState
	// StencilBack is the stencil state for back-facing polygons.
	StencilBack StencilFaceState
	// StencilReadMask masks stencil test reads.
	StencilReadMask uint32
	// StencilWriteMask masks stencil test writes.
	StencilWriteMask uint32
	// DepthBias adds a constant depth offset.
	DepthBias int32
	// DepthBiasSlopeScale scales the depth bias by fragment slope.
	DepthBiasSlopeScale float32
	// DepthBiasClamp clamps the total depth bias.
	DepthBiasClamp float32
}

// RenderPipelineDescriptor describes a graphics pipeline. There is no
// cached pipeline layout object: bind group layouts and push constant
// ranges are supplied directly and the native VkPipelineLayout is owned
// by the pipeline record.
type RenderPipelineDescriptor struct {
	// Label is a debug label.
	Label string
	// BindGroupLayouts are the bind group layouts the pipeline layout chains.
	BindGroupLayouts []BindGroupLayoutHandle
	// PushConstantRanges describe push constant ranges.
	PushConstantRanges []PushConstantRange
	// Vertex is the vertex stage.
	Vertex VertexStage
	// Primitive describes primitive assembly.
	Primitive PrimitiveState
	// DepthStencil describes the depth/stencil state (nil disables both tests).
	DepthStencil *DepthStencilState
	// Multisample describes multisampling.
	Multisample MultisampleState
	// Fragment is the fragment stage (nil for depth/stencil-only passes).
	Fragment *FragmentStage
}

// ComputeStage describes the single stage of a compute pipeline.
type ComputeStage struct {
	// Source is the compiled shader the compute stage runs.
	Source ShaderSource
	// EntryPoint is the entry point function name.
	EntryPoint string
	// Constants are pipeline-overridable constants.
	Constants map[string]float64
}

// ComputePipelineDescriptor describes a compute pipeline.
type ComputePipelineDescriptor struct {
	// Label is a debug label.
	Label string
	// BindGroupLayouts are the bind group layouts the pipeline layout chains.
	BindGroupLayouts []BindGroupLayoutHandle
	// PushConstantRanges describe push constant ranges.
	PushConstantRanges []PushConstantRange
	// Compute is the compute stage.
	Compute ComputeStage
}
