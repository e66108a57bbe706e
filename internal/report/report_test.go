package report

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banshee-data/kinematics.report/keypoints"
)

func chartTables(frames int) (*keypoints.Table, *keypoints.Table) {
	raw := keypoints.NewTable("modelA", []string{"nose"}, frames)
	for i := range raw.Values {
		for f := range raw.Values[i] {
			raw.Values[i][f] = math.Sin(float64(f) / 4)
		}
	}
	smoothed := raw.Clone()
	return raw, smoothed
}

func TestWriteHTML(t *testing.T) {
	raw, smoothed := chartTables(40)
	path := filepath.Join(t.TempDir(), "chart.html")

	if err := WriteHTML(path, raw, smoothed, "nose"); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read chart: %v", err)
	}
	html := string(data)
	for _, want := range []string{"raw", "smoothed", "nose"} {
		if !strings.Contains(html, want) {
			t.Fatalf("chart HTML missing %q", want)
		}
	}
}

func TestWriteHTMLUnknownBodypart(t *testing.T) {
	raw, smoothed := chartTables(10)
	path := filepath.Join(t.TempDir(), "chart.html")

	err := WriteHTML(path, raw, smoothed, "wing")
	if !errors.Is(err, keypoints.ErrBadFormat) {
		t.Fatalf("WriteHTML with unknown bodypart = %v, want ErrBadFormat", err)
	}
}

func TestWritePNG(t *testing.T) {
	raw, smoothed := chartTables(40)
	path := filepath.Join(t.TempDir(), "chart.png")

	if err := WritePNG(path, raw, smoothed, "nose"); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat chart: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("chart PNG is empty")
	}
}

func TestWriteHTMLFrameCountMismatch(t *testing.T) {
	raw, _ := chartTables(40)
	_, smoothed := chartTables(20)
	path := filepath.Join(t.TempDir(), "chart.html")

	if err := WriteHTML(path, raw, smoothed, "nose"); err == nil {
		t.Fatal("WriteHTML accepted mismatched frame counts")
	}
}
