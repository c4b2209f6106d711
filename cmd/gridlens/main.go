package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gridlens/gridlens/internal/frame"
	"github.com/gridlens/gridlens/internal/overlay"
	"github.com/gridlens/gridlens/internal/pipeline"
	"github.com/gridlens/gridlens/internal/warp"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags before flag parsing so they work
	// without any other arguments.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("gridlens %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	var (
		puzzlePath  = flag.String("puzzle", "puzzle.png", "output path for the rectified puzzle; rewritten on every successful frame")
		puzzleSize  = flag.Int("size", 600, "side length of the square rectified output")
		detectWidth = flag.Int("detect-width", 0, "downsample frames to this width before detection (0 = native resolution)")
		radius      = flag.Float64("radius", pipeline.DefaultCannyRadius, "Canny smoothing radius")
		overlayDir  = flag.String("overlay-dir", "", "write diagnostic overlay images into this directory")
		drawLines   = flag.Bool("draw-lines", false, "overlay every extracted line candidate")
		drawClust   = flag.Bool("draw-clusters", false, "overlay line clusters, one color each")
		drawPuzzle  = flag.Bool("draw-puzzle-lines", false, "overlay only the plausible puzzle line clusters")
		drawHough   = flag.Bool("draw-hough", false, "overlay the Hough accumulator inset")
	)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	// Logging goes to stderr; file output is the program's product.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	debug := os.Getenv("GRIDLENS_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("gridlens v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	cfg := overlay.Config{
		Lines:          *drawLines,
		Clusters:       *drawClust,
		PuzzleClusters: *drawPuzzle,
		Accumulator:    *drawHough,
	}
	if cfg.Enabled() && *overlayDir == "" {
		*overlayDir = "."
	}

	p := pipeline.New(*radius)

	// Frames reused across inputs so a sequence of equally sized stills
	// allocates once.
	var src, det, rectified, merged frame.Frame

	found := 0
	for _, path := range flag.Args() {
		if err := frame.Load(path, &src); err != nil {
			log.Fatalf("reading %s: %v", path, err)
		}
		frame.FitWidth(&src, *detectWidth, &det)

		res := p.Process(&det)
		if debug {
			f := p.Finder()
			log.Printf("%s: %d peaks, %d clusters, %d plausible, found=%v",
				path, len(f.Peaks), len(f.Clusters), len(f.PuzzleClusters), res.Found)
		}

		if res.Found {
			// Sample the full-resolution source through the detection-space
			// grid; the scale factors bridge the two resolutions.
			warp.Extract(&src, res.SampleGrid[:],
				1/float64(det.Width), 1/float64(det.Height),
				&rectified, *puzzleSize, *puzzleSize)
			if err := frame.Save(&rectified, *puzzlePath); err != nil {
				log.Fatalf("writing %s: %v", *puzzlePath, err)
			}
			found++
			log.Printf("%s: puzzle found, corners %v", path, res.Corners)
		} else {
			// An ordinary negative: the last successful rectification, if
			// any, stays on disk untouched.
			log.Printf("%s: no puzzle found", path)
		}

		if cfg.Enabled() {
			frame.BlendAdd(&det, p.Edges(), &merged)
			overlay.Render(&merged, p.Finder(), p.Accumulator(), cfg)
			out := overlayPath(*overlayDir, path)
			if err := frame.Save(&merged, out); err != nil {
				log.Fatalf("writing %s: %v", out, err)
			}
		}
	}

	if found == 0 {
		log.Printf("no puzzle found in %d frame(s)", flag.NArg())
	}
}

// overlayPath derives the diagnostic output name for an input frame.
func overlayPath(dir, input string) string {
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	return filepath.Join(dir, strings.TrimSuffix(base, ext)+"_overlay.png")
}

func usage() {
	fmt.Fprintln(os.Stderr, "gridlens - locate a Sudoku grid in camera frames and rectify it")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage: gridlens [options] frame.png [frame2.png ...]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Options:")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Environment variables:")
	fmt.Fprintln(os.Stderr, "  GRIDLENS_LOG_LEVEL=debug    Enable debug logging")
}
