// Command kinematics inspects, smooths and charts keypoint tables stored
// in the pose container format.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	kinematics "github.com/banshee-data/kinematics.report"
	"github.com/banshee-data/kinematics.report/internal/report"
)

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "info":
		err = runInfo(os.Args[2:])
	case "smooth":
		err = runSmooth(os.Args[2:])
	case "plot":
		err = runPlot(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("kinematics %s: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: kinematics <command> [flags]

Commands:
  info    print scorer, bodyparts and frame count of a keypoint container
  smooth  smooth trajectories and write the result to a new container
  plot    render raw vs smoothed trajectory charts

Run "kinematics <command> -h" for command flags.`)
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	dbPath := fs.String("db", "", "keypoint container path")
	fs.Parse(args)
	if *dbPath == "" {
		return fmt.Errorf("-db is required")
	}

	t, bodyparts, scorer, err := kinematics.Load(*dbPath, kinematics.DefaultLoadOptions())
	if err != nil {
		return err
	}

	fmt.Printf("scorer:    %s\n", scorer)
	fmt.Printf("bodyparts: %s\n", strings.Join(bodyparts, ", "))
	fmt.Printf("frames:    %d\n", t.NumRows())
	fmt.Printf("columns:   %d\n", t.NumColumns())
	return nil
}

func runSmooth(args []string) error {
	fs := flag.NewFlagSet("smooth", flag.ExitOnError)
	dbPath := fs.String("db", "", "keypoint container path")
	window := fs.Int("window", 3, "filter window length (positive odd integer)")
	order := fs.Int("order", 1, "polynomial order (less than window)")
	deriv := fs.Int("deriv", 0, "derivative order (0=position, 1=velocity, 2=acceleration)")
	bodyparts := fs.String("bodyparts", kinematics.AllBodyparts, "comma-separated bodypart labels, or \"all\"")
	out := fs.String("out", "", "output filename (default trajectory_smooth_<scorer>.db)")
	dest := fs.String("dest", "", "destination directory (required)")
	fs.Parse(args)
	if *dbPath == "" {
		return fmt.Errorf("-db is required")
	}
	if *dest == "" {
		return fmt.Errorf("-dest is required")
	}

	t, _, _, err := kinematics.Load(*dbPath, kinematics.DefaultLoadOptions())
	if err != nil {
		return err
	}

	_, err = kinematics.SmoothTrajectory(t, strings.Split(*bodyparts, ","), kinematics.SmoothOptions{
		FilterWindow: *window,
		PolyOrder:    *order,
		Deriv:        *deriv,
		Save:         true,
		OutputName:   *out,
		DestDir:      *dest,
	})
	return err
}

func runPlot(args []string) error {
	fs := flag.NewFlagSet("plot", flag.ExitOnError)
	dbPath := fs.String("db", "", "keypoint container path")
	bodypart := fs.String("bodypart", "", "bodypart to chart")
	window := fs.Int("window", 3, "filter window length (positive odd integer)")
	order := fs.Int("order", 1, "polynomial order (less than window)")
	htmlOut := fs.String("html", "", "HTML chart output path")
	pngOut := fs.String("png", "", "PNG chart output path")
	fs.Parse(args)
	if *dbPath == "" {
		return fmt.Errorf("-db is required")
	}
	if *bodypart == "" {
		return fmt.Errorf("-bodypart is required")
	}
	if *htmlOut == "" && *pngOut == "" {
		return fmt.Errorf("at least one of -html or -png is required")
	}

	raw, _, _, err := kinematics.Load(*dbPath, kinematics.DefaultLoadOptions())
	if err != nil {
		return err
	}
	opts := kinematics.DefaultSmoothOptions()
	opts.FilterWindow = *window
	opts.PolyOrder = *order
	smoothed, err := kinematics.SmoothTrajectory(raw, []string{*bodypart}, opts)
	if err != nil {
		return err
	}

	if *htmlOut != "" {
		if err := report.WriteHTML(*htmlOut, raw, smoothed, *bodypart); err != nil {
			return err
		}
		log.Printf("✓ Wrote %s", *htmlOut)
	}
	if *pngOut != "" {
		if err := report.WritePNG(*pngOut, raw, smoothed, *bodypart); err != nil {
			return err
		}
		log.Printf("✓ Wrote %s", *pngOut)
	}
	return nil
}
