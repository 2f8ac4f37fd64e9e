package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/pandamonium/assets"
	"github.com/milk9111/pandamonium/common"
	"github.com/milk9111/pandamonium/config"
	"github.com/milk9111/pandamonium/levels"
	"github.com/milk9111/pandamonium/obj"
	"github.com/milk9111/pandamonium/prefabs"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

// warningTime is when the clock turns red.
const warningTime = 30

type Game struct {
	cfg    config.Config
	frames int

	names      []string
	levelIndex int
	levelMap   *levels.Map
	level      *obj.Level
	tuning     prefabs.Tuning
	// score banked from cleared levels
	totalScore int

	watcher *prefabs.Watcher
	sounds  *assets.Mixer
	// overheated last frame, for the overheat sound
	wasOverheated bool

	// banner fades the cleared message in
	banner      *gween.Tween
	bannerAlpha float32

	paused  bool
	quit    bool
	debug   bool
	pauseUI *ebitenui.UI
	face    ebtext.Face
}

func NewGame(cfg config.Config) (*Game, error) {
	prefabs.Dir = cfg.PrefabsDir

	tuning, err := prefabs.LoadTuning()
	if err != nil {
		return nil, err
	}

	names := levelNames(cfg.LevelsDir)
	if len(names) == 0 {
		return nil, fmt.Errorf("no levels found")
	}

	g := &Game{
		cfg:    cfg,
		names:  names,
		tuning: tuning,
		debug:  cfg.Debug,
		face:   ebtext.NewGoXFace(basicfont.Face7x13),
	}

	if cfg.Level != "" {
		want := strings.TrimSuffix(filepath.Base(cfg.Level), ".txt")
		g.levelIndex = -1
		for i, name := range names {
			if name == want {
				g.levelIndex = i
				break
			}
		}
		if g.levelIndex < 0 {
			return nil, fmt.Errorf("unknown level %q", cfg.Level)
		}
	}

	if err := g.loadLevel(g.levelIndex); err != nil {
		return nil, err
	}

	if cfg.Watch {
		g.startWatcher()
	}
	if !cfg.Mute {
		g.sounds = assets.NewMixer(0.5)
	}

	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func (g *Game) parseOptions() []levels.Option {
	if g.cfg.Strict {
		return []levels.Option{levels.Strict()}
	}
	return nil
}

func (g *Game) loadLevel(index int) error {
	name := g.names[index]
	m, err := levels.Load(g.cfg.LevelsDir, name, g.parseOptions()...)
	if err != nil {
		return err
	}

	lvl, err := obj.NewLevel(m, g.tuning)
	if err != nil {
		return err
	}

	g.levelIndex = index
	g.levelMap = m
	g.setLevel(lvl)
	log.Printf("loaded level %s (%dx%d, %d enemies)", m.Name, m.Width, m.Height, len(m.Enemies))
	return nil
}

// nextLevel banks the score and moves on, wrapping after the last level.
func (g *Game) nextLevel() {
	g.totalScore += g.level.Score()
	next := (g.levelIndex + 1) % len(g.names)
	if err := g.loadLevel(next); err != nil {
		log.Printf("failed to load level %s: %v", g.names[next], err)
	}
}

// restartLevel rebuilds the current level from the last good map.
func (g *Game) restartLevel() {
	lvl, err := obj.NewLevel(g.levelMap, g.tuning)
	if err != nil {
		log.Printf("failed to restart level %s: %v", g.levelMap.Name, err)
		return
	}
	g.setLevel(lvl)
}

func (g *Game) setLevel(lvl *obj.Level) {
	// the view is always the logical screen, whatever the tuning says
	lvl.Camera().SetViewportWidth(common.BaseWidth)
	g.level = lvl
	g.banner = nil
	g.bannerAlpha = 0
	g.wasOverheated = false
}

func (g *Game) startWatcher() {
	var dirs []string
	for _, dir := range []string{g.cfg.PrefabsDir, g.cfg.LevelsDir} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return
	}

	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		log.Printf("hot reload disabled: %v", err)
		return
	}
	g.watcher = w
	log.Printf("watching %s for changes", strings.Join(dirs, ", "))
}

// applyReloads drains the watcher without blocking the frame.
func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case c, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(c)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("watch error: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(c prefabs.Change) {
	if c.Removed {
		log.Printf("%s removed, using the embedded copy", c.Path)
	}

	switch c.Kind {
	case prefabs.SpecChange:
		tuning, err := prefabs.LoadTuning()
		if err != nil {
			log.Printf("reload %s: %v", c.Path, err)
			return
		}
		g.tuning = tuning
		log.Printf("reloaded prefabs after %s changed", c.Path)
		g.restartLevel()
	case prefabs.LevelChange:
		current := g.names[g.levelIndex]
		g.names = levelNames(g.cfg.LevelsDir)
		g.levelIndex = max(0, slices.Index(g.names, current))
		if c.Name() != current {
			return
		}
		if err := g.loadLevel(g.levelIndex); err != nil {
			log.Printf("reload %s: %v", c.Path, err)
		}
	}
}

func (g *Game) Update() error {
	if g.quit {
		if g.watcher != nil {
			_ = g.watcher.Close()
		}
		return ebiten.Termination
	}

	g.frames++
	g.applyReloads()

	controls := pollControls(tickDuration())
	if controls.DebugPressed {
		g.debug = !g.debug
	}
	if controls.PausePressed {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if controls.ContinuePressed {
		switch {
		case !g.level.Player().IsAlive():
			g.level.StartNewLife()
		case g.level.TimeRemaining() == 0 && g.level.ReachedExit():
			g.nextLevel()
			return nil
		case g.level.TimeRemaining() == 0:
			g.restartLevel()
			return nil
		}
	}

	g.level.Update(controls.Tick)

	g.playCues()
	if g.banner != nil {
		var done bool
		g.bannerAlpha, done = g.banner.Update(float32(controls.Tick.Elapsed.Seconds()))
		if done {
			g.banner = nil
		}
	}
	return nil
}

func (g *Game) playCues() {
	for _, cue := range g.level.Cues() {
		switch cue {
		case obj.CueBulletFired:
			g.sounds.Play(assets.SoundFire)
		case obj.CueExitReached:
			g.sounds.Play(assets.SoundExit)
			g.banner = gween.New(0, 1, 0.6, ease.OutCubic)
			log.Printf("level %s cleared with %s left", g.level.Name, g.level.TimeRemaining())
		}
	}

	overheated := g.level.Player().Overheated()
	if overheated && !g.wasOverheated {
		g.sounds.Play(assets.SoundOverheat)
	}
	g.wasOverheated = overheated
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.level.Snapshot()
	screen.Fill(colornames.Cornflowerblue)

	camX := snap.CameraX
	fillRect := func(r common.Rect, c color.Color) {
		vector.FillRect(screen, float32(float64(r.X)-camX), float32(r.Y), float32(r.Width), float32(r.Height), c, false)
	}

	viewW := float64(g.level.Camera().ViewportWidth())
	for _, t := range snap.Tiles {
		r := common.TileBounds(t.X, t.Y)
		if float64(r.Right()) < camX || float64(r.Left()) > camX+viewW {
			continue
		}
		fillRect(r, tileColor(t.Texture))
	}

	for _, e := range snap.Enemies {
		fillRect(e.Bounds, g.tuning.Enemy.Color)
		if e.Waiting {
			vector.StrokeRect(screen, float32(float64(e.Bounds.X)-camX), float32(e.Bounds.Y),
				float32(e.Bounds.Width), float32(e.Bounds.Height), 2, colornames.White, false)
		}
	}

	for _, b := range snap.Bullets {
		fillRect(b.Bounds, g.tuning.Bullet.Color)
	}

	playerColor := g.tuning.Player.Color.Color
	if snap.Player.Overheated {
		playerColor = colornames.Orange
	}
	if !snap.Player.Alive {
		playerColor = colornames.Gray
	}
	fillRect(snap.Player.Bounds, playerColor)

	if g.debug {
		g.level.World().DrawShapes(&shapeDrawer{screen: screen, camX: camX})
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()), 0, common.BaseHeight-40)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("state: %s  anim: %s  jump: %v  ground: %v  boxes: %d",
			g.level.Player().StateName(), snap.Player.Animation, snap.Player.Jump, snap.Player.OnGround, g.level.World().Boxes()), 0, common.BaseHeight-20)
	}

	g.drawHUD(screen, snap)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image, snap obj.Snapshot) {
	remaining := snap.TimeRemaining.Seconds()
	timeColor := color.Color(colornames.Yellow)
	if remaining <= warningTime && !snap.ReachedExit && g.frames/30%2 == 0 {
		timeColor = colornames.Red
	}

	secs := int(remaining)
	g.drawText(screen, fmt.Sprintf("TIME: %02d:%02d", secs/60, secs%60), 10, 10, timeColor)
	g.drawText(screen, fmt.Sprintf("SCORE: %d", g.totalScore+snap.Score), 10, 28, colornames.Yellow)
	g.drawText(screen, fmt.Sprintf("HEAT: %.1f / %.1f", snap.Player.Heat, g.tuning.Player.Weapon.MaxHeat), 10, 46, colornames.White)
	g.drawText(screen, fmt.Sprintf("LEVEL: %s", snap.Name), 10, 64, colornames.White)

	if snap.ReachedExit {
		g.drawCentered(screen, "Level cleared!", common.BaseHeight/2-20, g.bannerAlpha)
	}

	var msg string
	switch {
	case !snap.Player.Alive:
		msg = "You died. Press jump to try again."
	case snap.TimedOut:
		msg = "Time ran out. Press jump to restart."
	case snap.ReachedExit && snap.TimeRemaining == 0:
		msg = "Press jump to continue."
	}
	if msg != "" {
		g.drawCentered(screen, msg, common.BaseHeight/2, 1)
	}
}

// drawCentered draws s across the middle of the screen. basicfont is 7px
// per glyph.
func (g *Game) drawCentered(screen *ebiten.Image, s string, y int, alpha float32) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(float64(common.BaseWidth/2-len(s)*7/2), float64(y))
	op.ColorScale.ScaleWithColor(colornames.White)
	op.ColorScale.ScaleAlpha(alpha)
	ebtext.Draw(screen, s, g.face, op)
}

func (g *Game) drawText(screen *ebiten.Image, s string, x, y int, c color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	ebtext.Draw(screen, s, g.face, op)
}

func tileColor(texture string) color.Color {
	switch texture {
	case obj.TextureBlock:
		return colornames.Saddlebrown
	case obj.TexturePlatform:
		return colornames.Burlywood
	case obj.TexturePaintable:
		return colornames.Slategray
	case obj.TextureExit:
		return colornames.Gold
	default:
		return colornames.Magenta
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// levelNames lists the embedded levels plus any extra .txt files in dir,
// numeric names first in numeric order.
func levelNames(dir string) []string {
	seen := map[string]bool{}
	var names []string
	for _, name := range levels.Names() {
		seen[name] = true
		names = append(names, name)
	}

	if dir != "" {
		if entries, err := os.ReadDir(dir); err == nil {
			for _, e := range entries {
				if e.IsDir() || !prefabs.IsLevelFile(e.Name()) {
					continue
				}
				name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
				if !seen[name] {
					seen[name] = true
					names = append(names, name)
				}
			}
		}
	}

	sort.Slice(names, func(i, j int) bool {
		a, errA := strconv.Atoi(names[i])
		b, errB := strconv.Atoi(names[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return names[i] < names[j]
	})
	return names
}
