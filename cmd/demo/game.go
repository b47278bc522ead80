package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/platkit/obj"
	"github.com/milk9111/platkit/physics"
	"github.com/milk9111/platkit/prefabs"
	"github.com/milk9111/platkit/scene"
	"github.com/milk9111/platkit/trigger"
)

const (
	baseWidth  = 768
	baseHeight = 512
	zoom       = 4.0
	tickRate   = 1.0 / 60.0

	moveSpeed = 80.0
	jumpSpeed = -220.0
)

// Game runs the trigger demo: a controller walking a small level while the
// surface triggers report contact state.
type Game struct {
	frames int

	level      *obj.Level
	root       *scene.Node
	world      *physics.CastWorld
	scheduler  *scene.Scheduler
	controller *obj.Controller
	zone       *trigger.SurfaceTrigger

	standing map[*scene.Node]bool
	status   string

	watcher *prefabs.Watcher
}

func NewGame(levelPath string, watch bool) (*Game, error) {
	var level *obj.Level
	var err error
	if levelPath != "" {
		level, err = obj.LoadLevel(levelPath)
	} else {
		level, err = prefabs.LoadLevel("level.yaml")
	}
	if err != nil {
		return nil, err
	}

	root := scene.NewNode("world")
	world := physics.NewCastWorld(level, root)

	g := &Game{
		level:     level,
		root:      root,
		world:     world,
		scheduler: scene.NewScheduler(root),
		standing:  make(map[*scene.Node]bool),
	}

	g.controller = obj.NewController("player", 12, 14)
	spawnX, spawnY := level.SpawnPosition()
	world.AttachController(g.controller, spawnX, spawnY)

	if err := g.applyPlatformRules(); err != nil {
		return nil, err
	}

	zoneSpec, err := prefabs.LoadTriggerSpec("zone.yaml")
	if err != nil {
		return nil, err
	}
	g.zone, err = prefabs.BuildTrigger(zoneSpec)
	if err != nil {
		return nil, err
	}
	root.AddComponent(g.zone)

	relay := trigger.NewActivationRelay(g.zone)
	relay.OnReactiveEnter = func(c trigger.Controller, hit trigger.TerrainCastHit) {
		g.status = fmt.Sprintf("entered %s", hit.Surface.Name)
	}
	relay.OnReactiveExit = func(c trigger.Controller, hit trigger.TerrainCastHit) {
		g.status = fmt.Sprintf("left %s", hit.Surface.Name)
	}
	root.AddComponent(relay)

	for _, ref := range world.SurfaceList() {
		node := ref.Node
		trig := trigger.FindSurfaceTrigger(node)
		if trig == nil {
			continue
		}
		trig.SurfaceEnter.Connect(func(c trigger.Controller, hit trigger.TerrainCastHit) {
			g.standing[node] = true
		})
		trig.SurfaceExit.Connect(func(c trigger.Controller, hit trigger.TerrainCastHit) {
			g.standing[node] = false
		})
	}

	if watch {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			log.Printf("demo: watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

// applyPlatformRules compiles the platform spec's scripted rules onto every
// one-way surface trigger.
func (g *Game) applyPlatformRules() error {
	spec, err := prefabs.LoadTriggerSpec("platform.yaml")
	if err != nil {
		return err
	}
	for _, ref := range g.world.SurfaceList() {
		if !ref.Surface.OneWay {
			continue
		}
		built, err := prefabs.BuildTrigger(spec)
		if err != nil {
			return err
		}
		if trig := trigger.FindSurfaceTrigger(ref.Node); trig != nil {
			trig.CollisionRules = built.CollisionRules
			trig.SurfaceRules = built.SurfaceRules
		}
	}
	return nil
}

func (g *Game) Update() error {
	g.frames++

	if g.watcher != nil {
		select {
		case name := <-g.watcher.Events:
			log.Printf("demo: %s changed, rebuilding trigger rules", name)
			if err := g.applyPlatformRules(); err != nil {
				log.Printf("demo: rebuild failed: %v", err)
			}
		default:
		}
	}

	g.handleInput()
	g.world.Step(tickRate)
	g.scheduler.Tick()

	return nil
}

func (g *Game) handleInput() {
	body := g.controller.Body
	if body == nil {
		return
	}
	v := body.Velocity()
	moveX := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		moveX -= moveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		moveX += moveSpeed
	}
	vy := v.Y
	if g.controller.Grounded && ebiten.IsKeyPressed(ebiten.KeySpace) {
		vy = jumpSpeed
	}
	body.SetVelocity(moveX, vy)
}

func (g *Game) Draw(screen *ebiten.Image) {
	for _, ref := range g.world.SurfaceList() {
		r := ref.Surface.Rect
		clr := colornames.Slategray
		if ref.Surface.OneWay {
			clr = colornames.Darkseagreen
		}
		if g.standing[ref.Node] {
			clr = colornames.Orange
		}
		vector.DrawFilledRect(screen,
			float32(r.X*zoom), float32(r.Y*zoom),
			float32(r.Width*zoom), float32(r.Height*zoom),
			clr, false)
	}

	pos := g.controller.Position()
	vector.DrawFilledRect(screen,
		float32((pos.X-g.controller.Width/2)*zoom), float32((pos.Y-g.controller.Height/2)*zoom),
		float32(g.controller.Width*zoom), float32(g.controller.Height*zoom),
		colornames.Tomato, false)

	var names []string
	for _, c := range g.zone.Contacts() {
		if ctrl, ok := c.(*obj.Controller); ok {
			names = append(names, ctrl.Name)
		}
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.0f\ngrounded: %v\nprimary: %s\nsecondary: %s\nzone contacts: %s\nreactives: %d\n%s",
		ebiten.ActualFPS(),
		g.controller.Grounded,
		nodeName(g.controller.PrimarySurface()),
		nodeName(g.controller.SecondarySurface()),
		strings.Join(names, ","),
		len(g.controller.Reactives()),
		g.status,
	))
}

func nodeName(n *scene.Node) string {
	if n == nil {
		return "-"
	}
	return n.Name
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
