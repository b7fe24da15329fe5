package spiralkeys

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// RunConfig configures the interactive window.
type RunConfig struct {
	Width, Height  int
	Octaves        int
	SegmentSamples int
	AutoDecay      bool          // strike schedules a fade immediately
	Duration       time.Duration // fade length; 0 means the default
	Debug          bool
}

// Piano is the interactive shell: it owns the scene composition, converts
// pointer and keyboard input into board commands, and drives the decay
// scheduler from ebiten's update loop (the frame clock). It implements
// ebiten.Game.
type Piano struct {
	width, height int

	spiral     Spiral
	registry   *Registry
	board      *Board
	hit        *HitTester
	compositor *Compositor
	status     *StatusLine

	needRecapture bool
	prevMouse     bool
	prevSpace     bool
	prevToggle    bool

	injected []Vec2 // queued synthetic clicks, one consumed per update

	lastAdvance time.Duration
}

// NewPiano builds the full instrument from a config. Zero-value fields fall
// back to the reference defaults.
func NewPiano(cfg RunConfig) *Piano {
	if cfg.Width <= 0 {
		cfg.Width = 900
	}
	if cfg.Height <= 0 {
		cfg.Height = 760
	}
	if cfg.Octaves <= 0 {
		cfg.Octaves = DefaultOctaves
	}
	if cfg.SegmentSamples < 2 {
		cfg.SegmentSamples = DefaultSegmentSamples
	}
	if cfg.Debug {
		SetDebugMode(true)
	}

	spiral := NewSpiral(cfg.Octaves)
	registry := NewRegistry(spiral, cfg.SegmentSamples)
	board := NewBoard(registry)
	if cfg.Duration > 0 {
		board.Scheduler().Duration = cfg.Duration
	}
	board.SetAutoDecay(cfg.AutoDecay)

	mapping := NewPlotMapping(cfg.Width, cfg.Height, cfg.Octaves)

	p := &Piano{
		width:         cfg.Width,
		height:        cfg.Height,
		spiral:        spiral,
		registry:      registry,
		board:         board,
		hit:           NewHitTester(spiral, registry),
		compositor:    NewCompositor(registry, mapping, cfg.Width, cfg.Height),
		status:        NewStatusLine(board),
		needRecapture: true,
	}
	return p
}

// Board exposes the state machine, e.g. for attaching listeners.
func (p *Piano) Board() *Board {
	return p.board
}

// InjectClick queues a synthetic click at screen coordinates, consumed by the
// next Update exactly like a real mouse press. Used by scripted demos and
// tests; no window is required for the board-side effects.
func (p *Piano) InjectClick(x, y float64) {
	p.injected = append(p.injected, Vec2{X: x, Y: y})
}

// KeyScreenPosition returns the screen point at the center of a key's arc,
// or ok=false for a key outside the spiral. Useful for scripted input.
func (p *Piano) KeyScreenPosition(key Key) (x, y float64, ok bool) {
	if !p.spiral.Contains(key) {
		return 0, 0, false
	}
	start, end := p.spiral.AngleRange(key)
	mid := (start + end) / 2
	x, y = p.compositor.Mapping().ToScreen(mid, p.spiral.Radius(mid))
	return x, y, true
}

// Update processes one tick: input first, then one scheduler advance, so a
// strike's transition is applied before the frame that renders it.
func (p *Piano) Update() error {
	p.handleKeyboard()
	p.handleMouse()
	p.drainInjected()

	if globalDebug {
		t0 := time.Now()
		p.board.Scheduler().Advance()
		p.lastAdvance = time.Since(t0)
		return nil
	}
	p.board.Scheduler().Advance()
	return nil
}

// handleKeyboard maps Space to a batch release (auto-decay off only) and A to
// the auto-decay toggle. The mode caption is part of the static scene, so a
// toggle forces a snapshot recapture.
func (p *Piano) handleKeyboard() {
	space := ebiten.IsKeyPressed(ebiten.KeySpace)
	if space && !p.prevSpace {
		p.board.ReleaseAll()
	}
	p.prevSpace = space

	toggle := ebiten.IsKeyPressed(ebiten.KeyA)
	if toggle && !p.prevToggle {
		p.board.SetAutoDecay(!p.board.AutoDecay())
		p.needRecapture = true
	}
	p.prevToggle = toggle
}

// handleMouse fires one strike per left-button press edge.
func (p *Piano) handleMouse() {
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if pressed && !p.prevMouse {
		mx, my := ebiten.CursorPosition()
		p.click(float64(mx), float64(my))
	}
	p.prevMouse = pressed
}

// drainInjected consumes one queued synthetic click.
func (p *Piano) drainInjected() {
	if len(p.injected) == 0 {
		return
	}
	pt := p.injected[0]
	copy(p.injected, p.injected[1:])
	p.injected = p.injected[:len(p.injected)-1]
	p.click(pt.X, pt.Y)
}

// click converts a screen point to spiral coordinates and strikes the key
// under it. Points outside the plot area or between keys are ignored.
func (p *Piano) click(x, y float64) {
	angle, r, ok := p.compositor.Mapping().ToPolar(x, y)
	if !ok {
		return
	}
	key, ok := p.hit.Resolve(angle, r)
	if !ok {
		return
	}
	p.board.Strike(key)
}

// Draw recaptures the static snapshot when needed, composites the frame, and
// overlays the status line.
func (p *Piano) Draw(screen *ebiten.Image) {
	if p.needRecapture || !p.compositor.HasSnapshot() {
		p.compositor.Recapture(p.paintStatic)
		p.needRecapture = false
	}

	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
	}
	painted := p.compositor.Draw(screen)
	ebitenutil.DebugPrintAt(screen, p.status.Text(), 8, 8)

	if globalDebug {
		debugLog(debugStats{
			liveTasks:   p.board.Scheduler().Len(),
			paintedSegs: painted,
			advanceTime: p.lastAdvance,
			drawTime:    time.Since(t0),
		})
	}
}

// Layout reports the fixed logical screen size.
func (p *Piano) Layout(_, _ int) (int, int) {
	return p.width, p.height
}

// Run opens a window for the piano and blocks until it is closed.
func Run(p *Piano, title string) error {
	ebiten.SetWindowSize(p.width, p.height)
	ebiten.SetWindowTitle(title)
	return ebiten.RunGame(p)
}

// --- Static scene ---

var (
	backgroundFill = color.RGBA{0xfa, 0xfa, 0xf7, 0xff}
	backboneColor  = Color{R: 0.53, G: 0.81, B: 0.92, A: 0.5} // sky blue
	gridColor      = color.RGBA{0xd0, 0xd0, 0xd0, 0xff}
	sectorShade    = Color{R: 0.5, G: 0.5, B: 0.5, A: 0.05}
)

// paintStatic draws everything that never changes during interaction: the
// spiral backbone, black-key sector shading, octave rings, the twelve radial
// spokes, octave labels, and the mode caption. Handed to the compositor as
// the atomic recapture payload; no dynamic segment is reachable from here.
func (p *Piano) paintStatic(dst *ebiten.Image) {
	dst.Fill(backgroundFill)
	m := p.compositor.Mapping()

	// Shaded sectors for the black-key pitch classes.
	for _, pc := range BlackKeyPitchClasses {
		a0 := float64(pc) * pitchAngle
		a1 := float64(pc+1) * pitchAngle
		p.fillAnnularSector(dst, m, a0, a1, sectorShade)
	}

	// Octave rings.
	for i := 0; i <= m.Octaves; i++ {
		d := m.DisplayRadius(math.Exp2(float64(i)))
		vector.StrokeCircle(dst, float32(m.CenterX), float32(m.CenterY), float32(d), 1, gridColor, true)
	}

	// Twelve radial spokes at the pitch-class boundaries.
	for pc := 0; pc < 12; pc++ {
		a := float64(pc) * pitchAngle
		x0, y0 := m.ToScreen(a, 1)
		x1, y1 := m.ToScreen(a, p.spiral.MaxRadius())
		vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), 1, gridColor, true)
	}

	// The spiral backbone across all octaves.
	p.strokeBackbone(dst, m)

	// C labels, one per octave ring at angle zero.
	for oct := 0; oct < p.spiral.Octaves; oct++ {
		x, y := m.ToScreen(0, math.Exp2(float64(oct)))
		ebitenutil.DebugPrintAt(dst, Key{Octave: oct}.Name(), int(x)+6, int(y)-14)
	}

	caption := "Interactive Spiral Piano Keyboard (auto-decay OFF)"
	if p.board.AutoDecay() {
		caption = "Interactive Spiral Piano Keyboard (auto-decay ON)"
	}
	ebitenutil.DebugPrintAt(dst, caption, p.width/2-len(caption)*3, 8)
}

// strokeBackbone draws the continuous spiral polyline under the segments.
func (p *Piano) strokeBackbone(dst *ebiten.Image, m PlotMapping) {
	const samplesPerTurn = 200
	total := p.spiral.Octaves * samplesPerTurn

	var path vector.Path
	for i := 0; i <= total; i++ {
		theta := float64(i) / samplesPerTurn * 2 * math.Pi
		x, y := m.ToScreen(theta, p.spiral.Radius(theta))
		if i == 0 {
			path.MoveTo(float32(x), float32(y))
		} else {
			path.LineTo(float32(x), float32(y))
		}
	}

	vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{Width: 2})
	drawPathTriangles(dst, vs, is, backboneColor)
}

// fillAnnularSector shades the region between the innermost and outermost
// rings across [a0, a1], approximating the two arcs with short chords.
func (p *Piano) fillAnnularSector(dst *ebiten.Image, m PlotMapping, a0, a1 float64, shade Color) {
	const arcSteps = 24
	outer := p.spiral.MaxRadius()

	var path vector.Path
	for i := 0; i <= arcSteps; i++ {
		a := a0 + (a1-a0)*float64(i)/arcSteps
		x, y := m.ToScreen(a, outer)
		if i == 0 {
			path.MoveTo(float32(x), float32(y))
		} else {
			path.LineTo(float32(x), float32(y))
		}
	}
	for i := arcSteps; i >= 0; i-- {
		a := a0 + (a1-a0)*float64(i)/arcSteps
		x, y := m.ToScreen(a, 1)
		path.LineTo(float32(x), float32(y))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	drawPathTriangles(dst, vs, is, shade)
}

// whiteSubImage is a 1x1 interior of a 3x3 white image; sampling away from
// the edge avoids bleed with antialiased triangles.
var whiteSubImage *ebiten.Image

func ensureWhiteSubImage() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// drawPathTriangles submits path-generated triangles tinted with clr.
func drawPathTriangles(dst *ebiten.Image, vs []ebiten.Vertex, is []uint16, clr Color) {
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(clr.R)
		vs[i].ColorG = float32(clr.G)
		vs[i].ColorB = float32(clr.B)
		vs[i].ColorA = float32(clr.A)
	}
	var op ebiten.DrawTrianglesOptions
	op.AntiAlias = true
	op.FillRule = ebiten.FillRuleNonZero
	dst.DrawTriangles(vs, is, ensureWhiteSubImage(), &op)
}
