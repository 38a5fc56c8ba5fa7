package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"github.com/CCernusca/2d-rendering/internal/game"
	ebitenrender "github.com/CCernusca/2d-rendering/internal/render/ebiten"
	"github.com/CCernusca/2d-rendering/internal/simulation"
	"github.com/CCernusca/2d-rendering/internal/snapshot"
	"github.com/CCernusca/2d-rendering/internal/world"
	"github.com/CCernusca/2d-rendering/internal/world/script"
)

func main() {
	scenePath := flag.String("scene", "", "scene file (.json or .zy) or a bare scene name; empty runs the built-in demo")
	sceneDir := flag.String("scene-dir", "scenes", "directory scanned for scene files")
	listScenes := flag.Bool("list", false, "list the scenes in the scene directory and exit")
	snapshotPath := flag.String("snapshot", "", "render the scene to a PNG file and exit")
	configPath := flag.String("config", "config.json", "simulation rules file")
	showRays := flag.Bool("show-rays", true, "draw every beam on the overview")
	stripHeight := flag.Int("strip-height", 50, "height of each viewer strip in pixels")
	debug := flag.Bool("debug", false, "show the selected viewer's pose on screen")
	flag.Parse()

	if *listScenes {
		scenes, err := world.ScanScenes(*sceneDir)
		if err != nil {
			log.Fatalf("Failed to scan scenes: %v", err)
		}
		if len(scenes) == 0 {
			fmt.Printf("No scenes in %s\n", *sceneDir)
			return
		}
		for _, s := range scenes {
			kind := "json"
			if s.Script {
				kind = "script"
			}
			fmt.Printf("%-20s %-7s %s\n", s.Name, kind, s.Path)
		}
		return
	}

	def, err := loadScene(*scenePath, *sceneDir)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}
	log.Printf("Scene %q: %d groups, %d viewers (%dx%d)",
		def.Name, len(def.Groups), len(def.Viewers), def.Width, def.Height)

	if *snapshotPath != "" {
		opts := snapshot.Options{StripHeight: *stripHeight, ShowBeams: *showRays}
		if err := snapshot.Write(def, opts, *snapshotPath); err != nil {
			log.Fatalf("Failed to write snapshot: %v", err)
		}
		log.Printf("Wrote snapshot to %s", *snapshotPath)
		return
	}

	cfg, err := simulation.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load simulation config: %v", err)
	}

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	g, err := game.New(renderer, inputMgr, def, cfg, game.Options{
		ShowRays:    *showRays,
		StripHeight: *stripHeight,
		Debug:       *debug,
	})
	if err != nil {
		log.Fatalf("Failed to build game: %v", err)
	}
	defer g.Close()

	title := "sightsim"
	if def.Name != "" {
		title += " - " + def.Name
	}
	w, h := g.Layout(0, 0)
	engine.SetWindowSize(w, h)
	engine.SetWindowTitle(title)
	engine.SetWindowResizable(true)

	log.Println("Starting simulation...")
	if err := engine.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

// loadScene picks the loader from the file extension. A bare name is
// resolved against the scene directory; no argument at all runs the
// built-in demo scene.
func loadScene(path, sceneDir string) (*world.Definition, error) {
	if path == "" {
		return world.Default(), nil
	}
	if filepath.Ext(path) == "" {
		entry, err := world.FindScene(sceneDir, path)
		if err != nil {
			return nil, err
		}
		path = entry.Path
	}
	if world.IsScriptPath(path) {
		return script.NewEngine().LoadFile(path)
	}
	return world.Load(path)
}
