package kinematics

import (
	"fmt"
	"os"

	"github.com/banshee-data/kinematics.report/internal/posedb"
	"github.com/banshee-data/kinematics.report/keypoints"
)

// LoadOptions configures Load. FilterWindow and PolyOrder are only used
// when Smooth is set.
type LoadOptions struct {
	Smooth       bool
	FilterWindow int
	PolyOrder    int
}

// DefaultLoadOptions returns the default loader configuration: no
// smoothing, window 3, first-order polynomial.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{FilterWindow: 3, PolyOrder: 1}
}

// Load reads the keypoint table from the container at path and returns it
// together with the distinct bodypart labels (first-encounter order) and
// the scorer label. With opts.Smooth set, every bodypart's trajectory is
// smoothed in place of the raw values before returning; nothing is written
// back to disk on this path.
func Load(path string, opts LoadOptions) (*keypoints.Table, []string, string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil, "", fmt.Errorf("load keypoint table: %w", err)
	}

	t, err := posedb.ReadFile(path)
	if err != nil {
		return nil, nil, "", fmt.Errorf("load keypoint table from %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return nil, nil, "", fmt.Errorf("load keypoint table from %s: %w", path, err)
	}

	bodyparts := t.Bodyparts()
	scorer, err := t.Scorer()
	if err != nil {
		return nil, nil, "", err
	}

	if opts.Smooth {
		t, err = SmoothTrajectory(t, []string{AllBodyparts}, SmoothOptions{
			FilterWindow: opts.FilterWindow,
			PolyOrder:    opts.PolyOrder,
		})
		if err != nil {
			return nil, nil, "", err
		}
	}

	return t, bodyparts, scorer, nil
}
