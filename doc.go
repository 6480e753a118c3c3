// Package crt renders a retro cathode-ray-tube appearance on top of live
// terminal content, compositing any number of simultaneously visible panes
// into a single presented frame at interactive rates.
//
// # Overview
//
// crt is the rendering and compositing core of a CRT-styled terminal. It is
// part of the GoGPU ecosystem and follows the same CPU-first design as
// gogpu/gg: every pass is implemented in pure Go over pixel buffers, with an
// optional wgpu-backed presentation path enabled by importing crt/gpu.
//
// The pipeline is a fixed chain executed once per frame:
//
//	layout -> text compositing -> distortion/bloom -> scanline/noise/flicker
//	       -> burn-in feedback -> (bezel) -> final compositing
//
// # Quick Start
//
//	r := render.New(800, 600, atl, crt.DefaultScheme())
//	id, _ := r.Layout().AddPane()
//
//	frame, err := r.Render(&render.FrameContext{
//	    Time:     t,
//	    Mode:     crt.ModeWholeScreen,
//	    Settings: crt.AmberSettings(),
//	    Scheme:   crt.DefaultScheme(),
//	    Panes:    map[layout.PaneID]render.PaneFrame{id: {Grid: buf}},
//	})
//
// The returned frame is a *crt.Pixmap ready for presentation or PNG export.
//
// # Subpackages
//
//   - layout: automatic multi-pane grid layout and hit testing
//   - atlas: shelf-packed glyph atlas with rebuild-on-font-change
//   - term: the terminal-emulation collaborator boundary (cell grids)
//   - compose: cell grid to textured-quad compositing
//   - effects: the CRT effect stages and per-mode coordinate transforms
//   - render: frame orchestration and the final compositor
//   - gpu: opt-in GPU presentation (blank import)
//
// # Logging
//
// crt produces no log output by default. Call SetLogger to enable it.
package crt
