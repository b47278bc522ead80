package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	levelPath := flag.String("level", "", "level YAML path (default: embedded level.yaml)")
	watch := flag.Bool("watch", false, "rebuild triggers when prefab specs or scripts change")
	flag.Parse()

	game, err := NewGame(*levelPath, *watch)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("platkit demo")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
