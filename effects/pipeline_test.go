package effects

import (
	"testing"

	"github.com/gogpu/crt"
)

func neutralSettings() crt.EffectSettings {
	return crt.EffectSettings{
		Brightness:    1,
		ContentScaleX: 1,
		ContentScaleY: 1,
	}
}

func TestPipelineNeutralSettingsPassThrough(t *testing.T) {
	p := NewPipeline(16, 16)
	src := crt.NewPixmap(16, 16)
	src.FillRect(4, 4, 8, 8, crt.RGB(1, 0.5, 0))
	dst := crt.NewPixmap(16, 16)

	s := neutralSettings()
	p.Apply(dst, src, &s, Frame{CellHeight: 8})

	got := dst.GetPixel(8, 8)
	if got.R < 0.95 || got.G < 0.45 || got.G > 0.55 {
		t.Errorf("center pixel = %+v, want pass-through orange", got)
	}
}

func TestPipelineFlatScreenKeepsEdgesBright(t *testing.T) {
	// With zero curvature and unit content scale the remap is the
	// identity, so the edge fade must not dim the outermost rows and
	// columns the way its derivative band does on a curved screen.
	p := NewPipeline(32, 32)
	src := crt.NewPixmap(32, 32)
	src.Clear(crt.RGB(1, 1, 1))
	dst := crt.NewPixmap(32, 32)

	s := neutralSettings()
	p.Apply(dst, src, &s, Frame{CellHeight: 8})

	for _, pt := range [][2]int{{0, 0}, {31, 0}, {0, 31}, {31, 31}, {0, 16}, {16, 0}} {
		if got := dst.GetPixel(pt[0], pt[1]); got.R < 0.95 {
			t.Errorf("edge pixel (%d,%d) = %v, want full brightness", pt[0], pt[1], got.R)
		}
	}
}

func TestPipelineScanlinePhaseFollowsRowOffset(t *testing.T) {
	// Text rows start RowOffset pixels below the surface top, so the
	// triangle wave peak must sit mid-row of the shifted grid, not of
	// a grid anchored at y=0.
	p := NewPipeline(16, 32)
	src := crt.NewPixmap(16, 32)
	src.Clear(crt.RGB(1, 1, 1))
	dst := crt.NewPixmap(16, 32)

	s := neutralSettings()
	s.ScanlineIntensity = 0.6
	p.Apply(dst, src, &s, Frame{CellHeight: 8, RowOffset: 4})

	// First text row spans y=4..11; its stroke center is y=8 and its
	// boundary with the next row is y=12.
	mid := dst.GetPixel(8, 8).R
	boundary := dst.GetPixel(8, 12).R
	if mid <= boundary {
		t.Errorf("row center %v not brighter than row boundary %v", mid, boundary)
	}

	// Without the offset the same pixels invert: y=4 is a boundary of
	// the unshifted grid, y=8 a center.
	p2 := NewPipeline(16, 32)
	p2.Apply(dst, src, &s, Frame{CellHeight: 8})
	if m := dst.GetPixel(8, 4).R; m <= dst.GetPixel(8, 8).R {
		t.Errorf("unshifted grid: y=4 %v should outshine y=8 %v", m, dst.GetPixel(8, 8).R)
	}
}

func TestPipelineCurvatureBlacksOutCorners(t *testing.T) {
	p := NewPipeline(32, 32)
	src := crt.NewPixmap(32, 32)
	src.Clear(crt.RGB(1, 1, 1))
	dst := crt.NewPixmap(32, 32)

	s := neutralSettings()
	s.ScreenCurvature = 0.3
	p.Apply(dst, src, &s, Frame{CellHeight: 8})

	if got := dst.GetPixel(0, 0); got.R != 0 {
		t.Errorf("corner = %+v, want black void", got)
	}
	if got := dst.GetPixel(16, 16); got.R < 0.9 {
		t.Errorf("center = %+v, want bright", got)
	}
}

func TestPipelineScanlinesDarkenRowBoundaries(t *testing.T) {
	p := NewPipeline(16, 32)
	src := crt.NewPixmap(16, 32)
	src.Clear(crt.RGB(1, 1, 1))
	dst := crt.NewPixmap(16, 32)

	s := neutralSettings()
	s.ScanlineIntensity = 0.6
	p.Apply(dst, src, &s, Frame{CellHeight: 8})

	// Pixel centers sample the triangle wave: mid-row (y=3.5..4.5 of an
	// 8px cell) is brighter than the row boundary.
	mid := dst.GetPixel(8, 4).R
	boundary := dst.GetPixel(8, 0).R
	if mid <= boundary {
		t.Errorf("mid-row %v not brighter than boundary %v", mid, boundary)
	}
}

func TestPipelineFocusGlowOnlyWhenFocused(t *testing.T) {
	p := NewPipeline(64, 64)
	src := crt.NewPixmap(64, 64) // black content
	dst := crt.NewPixmap(64, 64)

	s := neutralSettings()
	s.FontColor = crt.RGB(1, 0.7, 0)
	s.FocusGlowRadius = 0.1
	s.FocusGlowWidth = 0.2
	s.FocusGlowIntensity = 1

	p.Apply(dst, src, &s, Frame{CellHeight: 8, Focused: true})
	focusedEdge := dst.GetPixel(0, 32).R

	p2 := NewPipeline(64, 64)
	p2.Apply(dst, src, &s, Frame{CellHeight: 8, Focused: false})
	unfocusedEdge := dst.GetPixel(0, 32).R

	if focusedEdge <= 0 {
		t.Error("focused pane edge received no glow")
	}
	if unfocusedEdge != 0 {
		t.Errorf("unfocused pane glows: %v", unfocusedEdge)
	}
}

func TestPipelineBurnInPersistsAcrossFrames(t *testing.T) {
	p := NewPipeline(8, 8)
	flash := crt.NewPixmap(8, 8)
	flash.FillRect(0, 0, 8, 8, crt.RGB(1, 1, 1))
	dark := crt.NewPixmap(8, 8)
	dst := crt.NewPixmap(8, 8)

	s := neutralSettings()
	s.BurnIn = 0.9
	p.Apply(dst, flash, &s, Frame{CellHeight: 8})
	p.Apply(dst, dark, &s, Frame{CellHeight: 8})

	if got := dst.GetPixel(4, 4); got.R == 0 {
		t.Error("burn-in left no afterglow on the following frame")
	}
	if got := dst.GetPixel(4, 4); got.R > 0.95 {
		t.Errorf("afterglow %v not decayed", got.R)
	}
}

func TestPipelineResizeDiscardsBurnIn(t *testing.T) {
	p := NewPipeline(8, 8)
	flash := crt.NewPixmap(8, 8)
	flash.Clear(crt.RGB(1, 1, 1))
	dst := crt.NewPixmap(8, 8)

	s := neutralSettings()
	s.BurnIn = 0.95
	p.Apply(dst, flash, &s, Frame{CellHeight: 8})

	p.Resize(16, 16)
	dst16 := crt.NewPixmap(16, 16)
	p.Apply(dst16, crt.NewPixmap(16, 16), &s, Frame{CellHeight: 8})
	if got := dst16.GetPixel(4, 4); got.R != 0 {
		t.Errorf("burn-in survived resize: %v", got.R)
	}
}

func TestPipelineVignetteDarkensCorners(t *testing.T) {
	p := NewPipeline(32, 32)
	src := crt.NewPixmap(32, 32)
	src.Clear(crt.RGB(1, 1, 1))
	dst := crt.NewPixmap(32, 32)

	s := neutralSettings()
	s.Vignette = 0.8
	p.Apply(dst, src, &s, Frame{CellHeight: 8})

	center := dst.GetPixel(16, 16).R
	corner := dst.GetPixel(1, 1).R
	if corner >= center {
		t.Errorf("corner %v not darker than center %v", corner, center)
	}
}
