// Package plot implements the function plotter: viewport state, the world/pixel transform,
// pointer handling and frame generation as a DrawList.
//
// An Engine is single-threaded. Every mutation marks it dirty; the host calls RenderFrame
// after a batch of mutations and rasterizes the returned DrawList.
package plot
