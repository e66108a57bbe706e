package kinematics

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/banshee-data/kinematics.report/internal/posedb"
	"github.com/banshee-data/kinematics.report/internal/savgol"
	"github.com/banshee-data/kinematics.report/keypoints"
)

// AllBodyparts, passed as the single element of the bodyparts argument,
// selects every bodypart in the table.
const AllBodyparts = "all"

// Sentinel re-exports so callers can branch with errors.Is without
// importing the internal packages.

// ErrInvalidFilter indicates window/order/derivative parameters that
// violate the filter's mathematical preconditions.
var ErrInvalidFilter = savgol.ErrInvalidFilter

// ErrBadFormat indicates a table whose column labels do not follow the
// scorer/bodypart/coord scheme.
var ErrBadFormat = keypoints.ErrBadFormat

// ErrNoDestination is returned when a save is requested without an
// explicit destination directory. There is no implicit working-directory
// default.
var ErrNoDestination = errors.New("kinematics: save requested without destination directory")

// SmoothOptions configures SmoothTrajectory.
type SmoothOptions struct {
	FilterWindow int    // length of the filter window; positive odd integer
	PolyOrder    int    // polynomial order; must be less than FilterWindow
	Deriv        int    // 0 = smoothed position, 1 = velocity, 2 = acceleration, ...
	Save         bool   // persist the result to DestDir/OutputName
	OutputName   string // defaults to "trajectory_smooth_<scorer>.db"
	DestDir      string // required when Save is set
}

// DefaultSmoothOptions returns the default smoothing configuration:
// window 3, first-order polynomial, no derivative, no save.
func DefaultSmoothOptions() SmoothOptions {
	return SmoothOptions{FilterWindow: 3, PolyOrder: 1}
}

// SmoothTrajectory applies a Savitzky-Golay filter along the frame axis to
// the x and y columns of the requested bodyparts and returns a new table
// holding only those bodyparts' columns. bodyparts is either the literal
// []string{AllBodyparts} or an explicit list; labels absent from the table
// are silently excluded. Likelihood columns are confidence scores, not
// trajectories: they are never filtered, and for selected bodyparts they
// pass through to the output unmodified.
//
// The caller's table is never mutated and the frame count and order are
// preserved exactly. With opts.Save set, the result is also written to the
// container at DestDir/OutputName after the transform succeeds in memory.
func SmoothTrajectory(t *keypoints.Table, bodyparts []string, opts SmoothOptions) (*keypoints.Table, error) {
	if err := savgol.Validate(opts.FilterWindow, opts.PolyOrder, opts.Deriv); err != nil {
		return nil, err
	}
	if opts.Save && opts.DestDir == "" {
		return nil, ErrNoDestination
	}

	work := t.Clone()
	selected := selectionMask(work, bodyparts)
	for i, col := range work.Columns {
		if !selected[i] || col.Coord == keypoints.CoordLikelihood {
			continue
		}
		smoothed, err := savgol.Filter(work.Values[i], opts.FilterWindow, opts.PolyOrder, opts.Deriv)
		if err != nil {
			return nil, fmt.Errorf("smooth %s/%s: %w", col.Bodypart, col.Coord, err)
		}
		work.Values[i] = smoothed
	}
	out := work.Select(selected)

	if opts.Save {
		name := opts.OutputName
		if name == "" {
			scorer, err := t.Scorer()
			if err != nil {
				return nil, err
			}
			name = "trajectory_smooth_" + scorer + ".db"
		}
		dest := filepath.Join(opts.DestDir, name)
		if err := posedb.WriteFile(dest, out); err != nil {
			return nil, fmt.Errorf("save smoothed table: %w", err)
		}
		log.Printf("Saved smoothed keypoint table to %s", dest)
	}

	return out, nil
}

// selectionMask marks the columns belonging to the requested bodyparts.
func selectionMask(t *keypoints.Table, bodyparts []string) []bool {
	mask := make([]bool, t.NumColumns())
	if len(bodyparts) > 0 && bodyparts[0] == AllBodyparts {
		for i := range mask {
			mask[i] = true
		}
		return mask
	}
	want := make(map[string]bool, len(bodyparts))
	for _, bp := range bodyparts {
		want[bp] = true
	}
	for i, c := range t.Columns {
		mask[i] = want[c.Bodypart]
	}
	return mask
}
