// Package ebiten runs a Scene's scheduler inside an Ebiten game loop with
// the Dear ImGui backend drawn on top.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/sparsecs/ecs"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// It is stored as a scene singleton.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Game implements ebiten.Game. Each Update runs one scheduler frame between
// the ImGui BeginFrame and EndFrame calls.
type Game struct {
	Scene     *ecs.Scene
	Scheduler *ecs.Scheduler
	Backend   *ecs.Singleton[ImguiBackend]

	// DrawScene, if set, draws game content below the ImGui overlay.
	DrawScene func(screen *ebiten.Image)
}

// NewGame stores backend as a singleton of scene and returns a Game that
// drives scheduler at the Ebiten tick rate.
func NewGame(scene *ecs.Scene, scheduler *ecs.Scheduler, backend *ebitenbackend.EbitenBackend) *Game {
	scene.AddSingleton(ImguiBackend{EbitenBackend: backend})
	return &Game{
		Scene:     scene,
		Scheduler: scheduler,
		Backend:   ecs.NewSingleton[ImguiBackend](scene),
	}
}

func (g *Game) Update() error {
	backend := g.Backend.Get()
	backend.BeginFrame()
	g.Scheduler.Once(1.0 / float64(ebiten.TPS()))
	backend.EndFrame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.DrawScene != nil {
		g.DrawScene(screen)
	}
	g.Backend.Get().Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.Backend.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

var _ ebiten.Game = (*Game)(nil)
