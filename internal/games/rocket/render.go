package rocket

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/tui-rocket/internal/core"
	ctl "github.com/vovakirdan/tui-rocket/internal/rocket"
)

// Visual characters for rendering
const (
	TerrainChar = '█'
	PadChar     = '▀'
)

// headingGlyphs are indexed by heading in 45° steps, counter-clockwise from
// nose up.
var headingGlyphs = [8]rune{'▲', '◤', '◀', '◣', '▼', '◢', '▶', '◥'}

// HeadingGlyph returns the rocket glyph for a heading in degrees.
func HeadingGlyph(angle float64) rune {
	step := int(math.Round(angle/45)) % 8
	if step < 0 {
		step += 8
	}
	return headingGlyphs[step]
}

func tagColor(tag string, moving bool) core.Color {
	switch tag {
	case ctl.TagFriendly:
		return core.ColorCyan
	case ctl.TagFinish:
		return core.ColorBrightGreen
	}
	if moving {
		return core.ColorMagenta
	}
	return core.ColorGray
}

// origin returns the screen cell of world (0, 0). The level is centered
// under a one-line HUD with a frame around it.
func (g *Game) origin(dst *core.Screen) (int, int) {
	lvl := g.scenes.Active()
	x := core.Max((dst.Width()-lvl.Width)/2, 1)
	return x, 2
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	lvl := g.scenes.Active()
	ox, oy := g.origin(dst)

	dst.DrawBox(core.NewRect(ox-1, oy-1, lvl.Width+2, lvl.Height+2))

	for _, m := range g.movers {
		cells := m.rect.Cells()
		cells.X += ox
		cells.Y += oy
		fill := TerrainChar
		if m.obstacle.Tag == ctl.TagFriendly || m.obstacle.Tag == ctl.TagFinish {
			fill = PadChar
		}
		dst.FillRect(cells, fill, tagColor(m.obstacle.Tag, m.osc != nil))
	}

	g.exhaust.Render(dst, ox, oy)
	g.success.Render(dst, ox, oy)
	g.explosion.Render(dst, ox, oy)

	if g.ctrl.State() != ctl.StateDying {
		pos := g.body.Position
		x := int(math.Floor(pos.X)) + ox
		y := int(math.Floor(pos.Y)) + oy
		dst.SetCell(x, y, HeadingGlyph(g.body.Angle), core.ColorBrightWhite)
	}

	g.drawHUD(dst, oy+lvl.Height+1)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

func (g *Game) drawHUD(dst *core.Screen, statusY int) {
	lvl := g.scenes.Active()
	hud := fmt.Sprintf(" Rocket Boost | Level %d/%d: %s  Landed: %d ",
		g.scenes.ActiveIndex()+1, g.scenes.Count(), lvl.Name, g.score)
	dst.DrawText(1, 0, hud)

	var status string
	switch g.ctrl.State() {
	case ctl.StateAscending:
		status = "Touchdown! Next level incoming..."
	case ctl.StateDying:
		status = "Crashed. Back to the first level..."
	default:
		status = "Space: thrust  A/D: rotate  P: pause  Q: quit"
	}
	dst.DrawTextColor(1, statusY, status, stateColor(g.ctrl.State()))

	if g.ctrl.Debug() {
		flags := "[debug L:skip C:collisions]"
		if g.ctrl.CollisionsDisabled() {
			flags = "[debug collisions OFF]"
		}
		x := dst.Width() - utf8.RuneCountInString(flags) - 1
		dst.DrawTextColor(x, statusY, flags, core.ColorYellow)
	}
}

func stateColor(s ctl.State) core.Color {
	switch s {
	case ctl.StateAscending:
		return core.ColorBrightGreen
	case ctl.StateDying:
		return core.ColorBrightRed
	default:
		return core.ColorDefault
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-utf8.RuneCountInString(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-utf8.RuneCountInString(subtitle))/2, boxY+3, subtitle)
}
