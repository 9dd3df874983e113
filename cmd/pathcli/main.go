package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pathviz/pathviz-server/internal/grid"
	"github.com/pathviz/pathviz-server/internal/maze"
	"github.com/pathviz/pathviz-server/internal/search"
)

var (
	log = logrus.New()

	rows       int
	cols       int
	algoName   string
	seed       uint64
	weightFill float64
	detour     float64
	delay      time.Duration
	quiet      bool
	verbose    bool
)

func init() {
	flag.IntVar(&rows, "rows", 15, "grid height")
	flag.IntVar(&cols, "cols", 31, "grid width")
	flag.StringVar(&algoName, "algo", "astar", `search algorithm ("dijkstra" or "astar")`)
	flag.Uint64Var(&seed, "seed", 0, "rng seed (0 picks a random one)")
	flag.Float64Var(&weightFill, "weight-fill", 0, "fraction of cells given random weights")
	flag.Float64Var(&detour, "detour", maze.DefaultDetourChance,
		"chance a repair corridor meanders")
	flag.DurationVar(&delay, "delay", 25*time.Millisecond, "pause between frames")
	flag.BoolVar(&quiet, "quiet", false, "print only the final frame and summary")
	flag.BoolVar(&verbose, "v", false, "verbose logging")
}

func setupLogging() {
	logLevel := logrus.InfoLevel
	if verbose {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)

	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
}

const clearScreen = "\033[H\033[2J"

func drawFrame(g *grid.Grid, explored int) {
	fmt.Print(clearScreen)
	fmt.Println(g)
	fmt.Printf("explored: %d\n", explored)
}

func main() {
	flag.Parse()
	setupLogging()

	algo, err := search.ParseAlgorithm(algoName)
	if err != nil {
		log.Fatal(err)
	}

	if seed == 0 {
		seed = rand.Uint64()
	}
	rnd := rand.New(rand.NewPCG(seed, seed))
	log.Debugf("seed = %d", seed)

	g, err := grid.New(rows, cols)
	if err != nil {
		log.Fatal(err)
	}

	maze.RandomizeStartEnd(g, rnd)
	maze.GenerateWithDetour(g, rnd, detour)
	if weightFill > 0 {
		maze.RandomizeWeights(g, rnd, weightFill)
	}

	session, err := search.New(g, algo)
	if err != nil {
		log.Fatal(err)
	}

	var result search.Result
	for {
		step := session.Step()
		if step.Kind == search.Terminal {
			result = *step.Result
			break
		}
		if !quiet {
			drawFrame(g, step.Explored)
			time.Sleep(delay)
		}
	}

	drawFrame(g, result.NodesExplored)

	log.WithFields(logrus.Fields{
		"algorithm":  algo,
		"seed":       seed,
		"explored":   result.NodesExplored,
		"pathLength": result.PathLength,
	}).Info("search finished")

	if !result.Success {
		log.Error("no path between start and end")
		os.Exit(1)
	}
}
