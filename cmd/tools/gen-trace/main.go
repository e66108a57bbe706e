// Command gen-trace generates a synthetic keypoint container for testing
// the smoothing and charting tools without a real pipeline export.
package main

import (
	"flag"
	"log"
	"math"
	"math/rand"
	"strings"

	"github.com/banshee-data/kinematics.report/internal/posedb"
	"github.com/banshee-data/kinematics.report/keypoints"
)

func main() {
	log.SetFlags(0)
	output := flag.String("out", "trace.db", "output container path")
	frames := flag.Int("frames", 200, "number of frames")
	bodyparts := flag.String("bodyparts", "nose,tail", "comma-separated bodypart labels")
	scorer := flag.String("scorer", "synthetic", "scorer label")
	noise := flag.Float64("noise", 2.0, "noise amplitude in pixels")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	parts := strings.Split(*bodyparts, ",")
	rng := rand.New(rand.NewSource(*seed))
	t := keypoints.NewTable(*scorer, parts, *frames)

	// Each bodypart follows a phase-shifted circular path with additive
	// noise; likelihood hovers near 1 with occasional dips.
	for pi, bp := range parts {
		phase := float64(pi) * math.Pi / 4
		xi := t.ColumnIndex(bp, keypoints.CoordX)
		yi := t.ColumnIndex(bp, keypoints.CoordY)
		li := t.ColumnIndex(bp, keypoints.CoordLikelihood)
		for f := 0; f < *frames; f++ {
			angle := 2*math.Pi*float64(f)/float64(*frames) + phase
			t.Values[xi][f] = 320 + 100*math.Cos(angle) + *noise*rng.NormFloat64()
			t.Values[yi][f] = 240 + 100*math.Sin(angle) + *noise*rng.NormFloat64()
			likelihood := 0.95 + 0.05*rng.Float64()
			if rng.Float64() < 0.02 {
				likelihood = rng.Float64() * 0.5 // occasional occlusion
			}
			t.Values[li][f] = likelihood
		}
	}

	if err := posedb.WriteFile(*output, t); err != nil {
		log.Fatalf("write %s: %v", *output, err)
	}
	log.Printf("✓ Created: %s (%d frames, %d bodyparts)", *output, *frames, len(parts))
}
