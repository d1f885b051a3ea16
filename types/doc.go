// Package types defines the backend-agnostic vocabulary of the device
// runtime: handles, descriptor structs, and the enums they reference.
//
//   - Adapter description (AdapterInfo, DeviceType, Features, Limits)
//   - Resource descriptors (BufferDescriptor, TextureDescriptor,
//     SamplerDescriptor) and their opaque handles
//   - Binding model (BindGroupLayoutDescriptor, BindGroupEntry and the
//     BindingResource variants)
//   - Pipeline descriptors (RenderPipelineDescriptor,
//     ComputePipelineDescriptor) and the vertex/blend/depth state they
//     compose
//
// Everything here is plain data with no behavior beyond small helpers;
// the hal/vulkan package translates these into native create-info
// structures.
package types
