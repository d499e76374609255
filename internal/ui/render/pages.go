package render

import (
	"image"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/pdfview/internal/preview"
	"github.com/kk-code-lab/pdfview/internal/view"
)

// upperHalfBlock shows the upper pixel as foreground and the lower one as
// background.
const upperHalfBlock = '▀'

type placedPage struct {
	img  *image.RGBA
	top  int
	left int
}

func (p placedPage) bottom() int {
	return p.top + p.img.Bounds().Dy()
}

// placePages lays the page canvases out top to bottom in content
// coordinates, centring pages narrower than the client width.
func placePages(w *view.Wrapper) []placedPage {
	clientWidth, _ := w.ClientSize()
	items := w.Items()
	placed := make([]placedPage, 0, len(items))
	y := 0
	for _, item := range items {
		img := item.Canvas.Image()
		left := 0
		if dx := int(clientWidth) - img.Bounds().Dx(); dx > 0 {
			left = dx / 2
		}
		placed = append(placed, placedPage{img: img, top: y, left: left})
		y += img.Bounds().Dy() + view.PageGap
	}
	return placed
}

func (r *Renderer) drawPages(snap preview.Snapshot, layout Layout) {
	gap := tcell.StyleDefault.Background(r.theme.PageGapBg)
	for row := 0; row < layout.PageRows; row++ {
		for x := 0; x < layout.Width; x++ {
			r.screen.SetContent(x, layout.PageTop+row, ' ', nil, gap)
		}
	}

	w := snap.Wrapper
	if w == nil || !w.HasPageList() {
		r.drawPlaceholder(snap, layout)
		return
	}

	placed := placePages(w)
	top := int(w.ScrollTop())
	left := int(w.ScrollLeft())

	for row := 0; row < layout.PageRows; row++ {
		yUpper := top + 2*row
		upper := pageAtY(placed, yUpper)
		lower := pageAtY(placed, yUpper+1)
		if upper == nil && lower == nil {
			continue
		}
		for x := 0; x < layout.Width; x++ {
			fg, fgOK := r.pixel(upper, left+x, yUpper)
			bg, bgOK := r.pixel(lower, left+x, yUpper+1)
			if !fgOK && !bgOK {
				continue
			}
			if !fgOK {
				fg = r.theme.PageGapBg
			}
			if !bgOK {
				bg = r.theme.PageGapBg
			}
			style := tcell.StyleDefault.Foreground(fg).Background(bg)
			r.screen.SetContent(x, layout.PageTop+row, upperHalfBlock, nil, style)
		}
	}
}

func pageAtY(placed []placedPage, y int) *placedPage {
	for i := range placed {
		if y < placed[i].top {
			return nil
		}
		if y < placed[i].bottom() {
			return &placed[i]
		}
	}
	return nil
}

func (r *Renderer) pixel(p *placedPage, x, y int) (tcell.Color, bool) {
	if p == nil {
		return 0, false
	}
	px, py := x-p.left, y-p.top
	b := p.img.Bounds()
	if px < 0 || py < 0 || px >= b.Dx() || py >= b.Dy() {
		return 0, false
	}
	c := p.img.RGBAAt(b.Min.X+px, b.Min.Y+py)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)), true
}

func (r *Renderer) drawPlaceholder(snap preview.Snapshot, layout Layout) {
	if layout.PageRows == 0 {
		return
	}
	msg := "no document"
	switch {
	case snap.Phase == preview.PhaseLoading:
		msg = "loading…"
	case snap.Wrapper != nil:
		msg = "document could not be displayed"
	}
	style := tcell.StyleDefault.Background(r.theme.PageGapBg)
	msg = r.truncateTextToWidth(msg, layout.Width)
	x := (layout.Width - r.measureTextWidth(msg)) / 2
	if x < 0 {
		x = 0
	}
	r.drawTextLine(x, layout.PageTop+layout.PageRows/2, layout.Width-x, msg, style)
}

// CurrentPage is the page shown at the top of the page area, 0 when nothing
// is mounted.
func CurrentPage(snap preview.Snapshot) int {
	w := snap.Wrapper
	if w == nil || !w.HasPageList() {
		return 0
	}
	item := w.PageAt(w.ScrollTop())
	if item == nil {
		return 0
	}
	return item.PageNumber
}
