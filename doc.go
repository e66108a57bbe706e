// Package kinematics loads motion-tracking keypoint tables produced by a
// video-analysis pipeline and smooths bodypart trajectories (or computes
// their time derivatives) with a Savitzky-Golay filter.
//
// Tables live in a SQLite container format (see internal/posedb) keyed by
// a fixed record name. The two top-level operations are Load and
// SmoothTrajectory; both are synchronous, work on private copies, and
// never reorder or drop frames.
package kinematics
