// Command replay rebuilds the opponent tracker from a recorded match and
// checks that the incremental filter agrees with a replay from scratch.
//
//	go run ./cmd -map map.txt -log match.log
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/saeidalz13/submarine-duel/internal/config"
	"github.com/saeidalz13/submarine-duel/models/opponent"
)

func main() {
	mapPath := flag.String("map", "", "file with the map rows")
	logPath := flag.String("log", "", "file with one order line per turn")
	quiet := flag.Bool("q", false, "only print the final state")
	flag.Parse()

	if *mapPath == "" || *logPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(".env")
	if err != nil {
		panic(err)
	}

	mapFile, err := os.Open(*mapPath)
	if err != nil {
		log.Fatalln(err)
	}
	defer mapFile.Close()

	m, err := ReadMap(mapFile, cfg.Game.SectorWidth, cfg.Game.SectorHeight)
	if err != nil {
		log.Fatalln(err)
	}

	logFile, err := os.Open(*logPath)
	if err != nil {
		log.Fatalln(err)
	}
	defer logFile.Close()

	tracker := opponent.NewTracker(m, cfg.Game.Tracker)
	steps, err := Replay(tracker, logFile)
	if err != nil {
		log.Fatalln(err)
	}

	for _, step := range steps {
		if *quiet && step.Err == nil {
			continue
		}
		fmt.Printf("%4d  epoch %3d  candidates %3d  sector %d  %s\n", step.Line, step.Epoch, step.Candidates, step.Sector, step.Text)
		if step.Err != nil {
			if isContradiction(step.Err) {
				fmt.Println("      contradiction:", step.Err)
			} else {
				fmt.Println("      rejected:", step.Err)
			}
		}
	}

	fmt.Print(Render(m, tracker))
	if pos, ok := tracker.CollapsedPosition(); ok {
		fmt.Println("opponent at", pos)
	} else if c, ok := tracker.Centroid(); ok {
		fmt.Println("centroid", c)
	}

	if err := Verify(tracker); err != nil {
		log.Fatalln(err)
	}
	fmt.Printf("replay agrees after %d observations\n", tracker.Epoch())
}
