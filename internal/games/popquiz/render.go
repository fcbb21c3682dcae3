package popquiz

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/popquiz/internal/core"
	"github.com/vovakirdan/popquiz/internal/games/popquiz/engine"
)

// Characters used for rendering.
const (
	SettledChar    = '●'
	FadingChar     = '○'
	FloatingChar   = '•'
	ProjectileChar = '◉'
	GuideChar      = '·'
	WallChar       = '│'
	LossChar       = '┄'
)

const (
	panelMinWidth    = 28
	questionMaxWidth = 48
	guideFrames      = 150
	guideEvery       = 4
)

// palette maps sphere colors to terminal colors.
var palette = [engine.ColorCount]core.Color{
	engine.ColorRed:    core.ColorBrightRed,
	engine.ColorGreen:  core.ColorBrightGreen,
	engine.ColorBlue:   core.ColorBrightBlue,
	engine.ColorYellow: core.ColorBrightYellow,
	engine.ColorPurple: core.ColorBrightMagenta,
	engine.ColorCyan:   core.ColorBrightCyan,
}

// TermColor returns the terminal color of a sphere color.
func TermColor(c engine.Color) core.Color {
	if c >= engine.ColorCount {
		return core.ColorWhite
	}
	return palette[c]
}

// viewport maps board pixels onto terminal cells. One character spans one
// sphere radius horizontally and one hex row vertically, so neighboring
// spheres land on alternating columns.
type viewport struct {
	layout  engine.Layout
	originX int // Screen column of board x = 0
	originY int // Screen line of the ceiling
	cols    int
	lines   int
	panelX  int
	screenW int
	screenH int
}

func newViewport(eng *engine.Engine, w, h int) viewport {
	lay := eng.Layout()
	height := eng.Bounds().Bottom - lay.TopY
	v := viewport{
		layout:  lay,
		originX: 1,
		originY: 0,
		cols:    int(math.Ceil(lay.Width / lay.Radius)),
		lines:   int(math.Floor(height / lay.RowHeight)),
		screenW: w,
		screenH: h,
	}
	v.panelX = v.originX + v.cols + 2
	return v
}

// minSize returns the smallest terminal that fits the board, the side panel
// and the footer.
func (v viewport) minSize() (int, int) {
	return v.panelX + panelMinWidth, v.lines + 1
}

func (v viewport) fits() bool {
	w, h := v.minSize()
	return v.screenW >= w && v.screenH >= h
}

// cellOf returns the screen position of a board point.
func (v viewport) cellOf(p engine.Vec) (int, int) {
	x := v.originX + int(math.Floor(p.X/v.layout.Radius))
	y := v.originY + int(math.Floor((p.Y-v.layout.TopY)/v.layout.RowHeight))
	return x, y
}

// toBoard returns the board point at the center of a screen cell.
func (v viewport) toBoard(x, y int) engine.Vec {
	return engine.V(
		(float64(x-v.originX)+0.5)*v.layout.Radius,
		v.layout.TopY+(float64(y-v.originY)+0.5)*v.layout.RowHeight,
	)
}

// board is the screen area covered by the arena.
func (v viewport) board() core.Rect {
	return core.NewRect(v.originX, v.originY, v.cols, v.lines)
}

func (v viewport) inBoard(x, y int) bool {
	return v.board().Contains(x, y)
}

// Render draws the current frame.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.eng == nil {
		return
	}

	if g.tooSmall {
		w, h := g.view.minSize()
		notice := core.CenteredRect(core.NewRect(0, 0, dst.Width(), dst.Height()), dst.Width(), 3)
		dst.DrawTextCentered(notice.Y, "Window too small", core.ColorBrightWhite)
		dst.DrawTextCentered(notice.Bottom()-1, fmt.Sprintf("Need %dx%d", w, h), core.ColorGray)
		return
	}

	g.renderFrame(dst)
	g.renderBoard(dst)
	if !g.quiz.open && g.eng.Status() == engine.RoundActive {
		g.renderGuide(dst)
	}
	g.renderProjectile(dst)
	g.renderPanel(dst)
	if g.quiz.open {
		g.renderQuestion(dst)
	}
	g.renderOverlay(dst)
	g.renderFooter(dst)
}

// renderFrame draws the side walls and the loss line.
func (g *Game) renderFrame(dst *core.Screen) {
	v := g.view
	for y := v.originY; y < v.originY+v.lines; y++ {
		dst.SetCell(v.originX-1, y, WallChar, core.ColorGray)
		dst.SetCell(v.originX+v.cols, y, WallChar, core.ColorGray)
	}

	_, lossY := v.cellOf(engine.V(0, g.eng.LossLine()))
	dst.DrawHLine(v.originX, lossY, v.cols, LossChar, core.ColorRed)
}

// renderBoard draws every live sphere of the arena.
func (g *Game) renderBoard(dst *core.Screen) {
	v := g.view
	g.eng.Board().Each(func(_ engine.Handle, s engine.Sphere) {
		x, y := v.cellOf(s.Pos)
		if !v.inBoard(x, y) {
			return
		}
		c := TermColor(s.Color)
		switch s.State {
		case engine.SphereSettled:
			dst.SetCell(x, y, SettledChar, c)
		case engine.SphereFading:
			dst.SetCell(x, y, FadingChar, c.Dim())
		case engine.SphereFloating:
			dst.SetCell(x, y, FloatingChar, c)
		}
	})
}

// renderGuide traces the first part of the current shot on a scratch
// projectile.
func (g *Game) renderGuide(dst *core.Screen) {
	anchor := g.eng.Anchor()
	phys := g.cfg.Physics

	aim := g.aim.pointer(anchor)
	if g.eng.State() == engine.StateAiming {
		aim = g.eng.Projectile().Pos
	} else if g.eng.State() != engine.StateIdle {
		return
	}

	vel, ok := engine.LaunchVelocity(anchor, aim, phys)
	if !ok {
		return
	}
	p := engine.Projectile{Pos: anchor}
	p.Launch(vel, 0)

	v := g.view
	frame := time.Second / 60
	for i := 1; i <= guideFrames; i++ {
		step := p.Advance(g.eng.Board(), g.eng.Bounds(), phys, time.Duration(i)*frame)
		if step.Outcome != engine.FlightContinues {
			return
		}
		if i%guideEvery != 0 {
			continue
		}
		x, y := v.cellOf(p.Pos)
		if v.inBoard(x, y) && dst.Get(x, y) == ' ' {
			dst.SetCell(x, y, GuideChar, core.ColorGray)
		}
	}
}

// renderProjectile draws the loaded sphere at the anchor or in flight.
func (g *Game) renderProjectile(dst *core.Screen) {
	if g.eng.Status() != engine.RoundActive {
		return
	}
	x, y := g.view.cellOf(g.eng.Projectile().Pos)
	dst.SetCell(x, y, ProjectileChar, TermColor(g.eng.Loaded()))
}

// renderPanel draws the score, the ammo and the round counters.
func (g *Game) renderPanel(dst *core.Screen) {
	x := g.view.panelX
	y := g.view.originY

	dst.DrawTextColor(x, y, strings.ToUpper(g.Title()), core.ColorBrightWhite)
	y += 2

	dst.DrawTextColor(x, y, fmt.Sprintf("Score   %d", g.eng.Score()), core.ColorBrightYellow)
	y++
	if target := g.profile.WinScore; target > 0 {
		dst.DrawTextColor(x, y, fmt.Sprintf("Target  %d", target), core.ColorWhite)
	} else {
		dst.DrawTextColor(x, y, "Target  endless", core.ColorWhite)
	}
	y++
	if !g.quiz.open && g.eng.Status() == engine.RoundActive {
		secs := int(math.Ceil(g.eng.NextRowIn().Seconds()))
		dst.DrawTextColor(x, y, fmt.Sprintf("New row %ds", secs), core.ColorWhite)
	} else {
		dst.DrawTextColor(x, y, "New row --", core.ColorGray)
	}
	y += 2

	dst.DrawTextColor(x, y, "Loaded  ", core.ColorWhite)
	dst.SetCell(x+8, y, SettledChar, TermColor(g.eng.Loaded()))
	dst.DrawTextColor(x+10, y, g.eng.Loaded().String(), core.ColorGray)
	y++
	dst.DrawTextColor(x, y, "Next    ", core.ColorWhite)
	dst.SetCell(x+8, y, SettledChar, TermColor(g.eng.Next()))
	dst.DrawTextColor(x+10, y, g.eng.Next().String(), core.ColorGray)
	y += 2

	s := g.Stats()
	dst.DrawTextColor(x, y, fmt.Sprintf("Shots %d  Pops %d  Orphans %d", s.Shots, s.Pops, s.Orphans), core.ColorGray)
	y++
	dst.DrawTextColor(x, y, fmt.Sprintf("Trivia %d/%d", s.Correct, s.Questions), core.ColorGray)
}

// renderQuestion draws the open question centered in the space below the
// panel.
func (g *Game) renderQuestion(dst *core.Screen) {
	v := g.view
	top := v.originY + 12
	area := core.NewRect(v.panelX, top, dst.Width()-v.panelX-1, v.originY+v.lines-top)
	if area.W < 10 || area.H < 5 {
		return
	}
	box := core.CenteredRect(area, questionMaxWidth, area.H)
	color := TermColor(g.quiz.color)
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, color)

	title := fmt.Sprintf(" %d x %s: %s ", g.quiz.size, g.quiz.color, CategoryFor(g.quiz.color))
	dst.DrawTextColor(box.X+2, box.Y, title, color)

	inner := box.W - 4
	y := box.Y + 1
	if !g.quiz.ready {
		dst.DrawTextColor(box.X+2, y, "Fetching question...", core.ColorGray)
		return
	}

	last := box.Bottom() - 3
	for _, line := range wrap(g.quiz.question.Prompt, inner) {
		if y > last {
			break
		}
		dst.DrawTextColor(box.X+2, y, line, core.ColorBrightWhite)
		y++
	}

	draft := "> " + g.quiz.draft + "_"
	if n := len([]rune(draft)); n > inner {
		draft = string([]rune(draft)[n-inner:])
	}
	dst.DrawTextColor(box.X+2, box.Bottom()-2, draft, core.ColorBrightCyan)
}

// renderOverlay draws the pause and round-over messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	cx, mid := g.view.board().Center()
	center := func(y int, text string, c core.Color) {
		dst.DrawTextColor(cx-len([]rune(text))/2, y, text, c)
	}

	switch {
	case g.eng.Status() == engine.RoundWon:
		center(mid-1, " YOU WIN! ", core.ColorBrightGreen)
		center(mid+1, fmt.Sprintf(" Final score: %d ", g.eng.Score()), core.ColorBrightWhite)
		center(mid+2, " R restart  Q quit ", core.ColorGray)
	case g.eng.Status() == engine.RoundLost:
		center(mid-1, " GAME OVER ", core.ColorBrightRed)
		center(mid+1, fmt.Sprintf(" Final score: %d ", g.eng.Score()), core.ColorBrightWhite)
		center(mid+2, " R restart  Q quit ", core.ColorGray)
	case g.paused:
		center(mid, " PAUSED ", core.ColorBrightYellow)
	}
}

// renderFooter draws the key help or the latest banner on the last line.
func (g *Game) renderFooter(dst *core.Screen) {
	y := dst.Height() - 1
	if g.banner.text != "" && g.eng.Now() < g.banner.until {
		dst.DrawTextCentered(y, g.banner.text, g.banner.color)
		return
	}

	help := "←/→ aim  ↑/↓ pull  Space fire  Tab swap  drag mouse  P pause  Q quit"
	if g.quiz.open {
		help = "Type answer  Enter submit  Ctrl+S skip  Esc pause"
	}
	dst.DrawTextCentered(y, help, core.ColorGray)
}

// wrap breaks text into lines of at most width cells.
func wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	out := ansi.Wrap(text, width, "")
	return strings.Split(out, "\n")
}
