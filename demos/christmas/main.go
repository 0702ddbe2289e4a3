// christmas renders the gesture-driven particle tree. Without a camera the
// hand detector replays a script: a fist shows the tree, an open palm spells
// out the greeting. Press C to toggle detection, T and Space to switch shapes
// by hand while it is off, M to mute, R to scatter the cloud.
package main

import (
	_ "embed"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/phanxgames/festive"
)

//go:embed demo.json
var demoScript []byte

const (
	screenW = 1280
	screenH = 720
)

func main() {
	configPath := flag.String("config", "", "TOML file overriding the default settings")
	scriptPath := flag.String("script", "", "detector script to replay instead of the built-in one")
	greeting := flag.String("greeting", "", "caption for the open-palm shape (use \\n between lines)")
	debug := flag.Bool("debug", false, "log gesture changes and frame stats to stderr")
	mute := flag.Bool("mute", false, "start with the music muted")
	flag.Parse()

	cfg := festive.DefaultConfig()
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			log.Fatalf("read config: %v", err)
		}
		if cfg, err = festive.LoadConfig(data); err != nil {
			log.Fatal(err)
		}
	}
	if *greeting != "" {
		cfg.Greeting = strings.ReplaceAll(*greeting, `\n`, "\n")
	}

	script := demoScript
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatalf("read script: %v", err)
		}
		script = data
	}
	detector, err := festive.LoadScript(script)
	if err != nil {
		log.Fatal(err)
	}

	scene := festive.NewScene(cfg)
	scene.ClearColor = festive.Color{R: 0.01, G: 0.02, B: 0.05}
	scene.SetDebugMode(*debug)
	detector.OnScreenshot = scene.Screenshot
	detector.OnDrag = scene.InjectDrag
	scene.SetDetector(detector)
	scene.SetDetection(true)

	jingle, err := festive.NewJingle(audio.NewContext(festive.DefaultSampleRate))
	if err != nil {
		log.Printf("music disabled: %v", err)
	} else {
		jingle.SetMuted(*mute)
		jingle.Play()
		scene.SetJingle(jingle)
	}

	if err := festive.Run(scene, festive.RunConfig{
		Title:     festive.HUDTitle,
		Width:     screenW,
		Height:    screenH,
		ShowFPS:   true,
		Resizable: true,
	}); err != nil {
		log.Fatal(err)
	}
}
