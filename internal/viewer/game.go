package viewer

import (
	stderrors "errors"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/matzehuels/packnav/pkg/render"
)

// Debug font metrics of ebitenutil.DebugPrint.
const (
	glyphWidth  = 6
	glyphHeight = 16
)

var (
	background  = color.RGBA{R: 0xf4, G: 0xf4, B: 0xf4, A: 0xff}
	statusColor = color.RGBA{R: 0, G: 0, B: 0, A: 0xb0}
)

// Run opens the window and blocks until it is closed. The title is the
// configured window title followed by name. The canvas is scaled to the
// configured window size.
func (v *Viewer) Run(name string) error {
	ebiten.SetWindowSize(v.cfg.Viewer.Width, v.cfg.Viewer.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	title := v.cfg.Viewer.Title
	if name != "" {
		title += " - " + name
	}
	ebiten.SetWindowTitle(title)
	err := ebiten.RunGame(v)
	if stderrors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Update implements ebiten.Game.
func (v *Viewer) Update() error {
	if v.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	v.poll()

	x, y := ebiten.CursorPosition()
	p := render.Point{X: float64(x), Y: float64(y)}
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		v.press(p)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		v.release(p)
	default:
		v.move(p)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		v.zoomOut()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		v.open()
	}

	v.step(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

// Draw implements ebiten.Game.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	for _, p := range paint(v.scene.Snapshot()) {
		switch p.kind {
		case primDisc:
			vector.DrawFilledCircle(screen, float32(p.x), float32(p.y), float32(p.r), p.color, true)
		case primRing:
			vector.StrokeCircle(screen, float32(p.x), float32(p.y), float32(p.r), float32(p.width), p.color, true)
		case primSegment:
			vector.StrokeLine(screen, float32(p.x), float32(p.y), float32(p.x2), float32(p.y2), float32(p.width), p.color, true)
		case primLabel:
			w := len([]rune(p.text)) * glyphWidth
			x, y := int(p.x)-w/2, int(p.y)-glyphHeight/2
			vector.DrawFilledRect(screen, float32(x-2), float32(y), float32(w+4), glyphHeight, p.color, false)
			ebitenutil.DebugPrintAt(screen, p.text, x, y)
		}
	}

	if line := v.statusLine(); line != "" {
		size := float32(v.Size())
		vector.DrawFilledRect(screen, 0, size-glyphHeight-8, size, glyphHeight+8, statusColor, false)
		ebitenutil.DebugPrintAt(screen, line, 8, int(size)-glyphHeight-4)
	}
}

// Layout implements ebiten.Game. The logical screen is always the
// navigator canvas, so cursor positions are canvas coordinates.
func (v *Viewer) Layout(int, int) (int, int) {
	return v.Size(), v.Size()
}

func (v *Viewer) statusLine() string {
	switch {
	case v.status == "":
		return ""
	case v.failure:
		return "error: " + v.status
	}
	return v.status
}
