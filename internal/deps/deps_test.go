package deps_test

import (
	"testing"

	"rtvk/internal/deps"
)

func TestCheckBinariesMissing(t *testing.T) {
	statuses := deps.CheckBinaries([]deps.Requirement{
		{Name: "FFmpeg", Command: "definitely-not-a-real-binary-ffmpeg"},
	})
	if len(statuses) != 1 {
		t.Fatalf("got %d statuses", len(statuses))
	}
	if statuses[0].Available {
		t.Error("nonexistent binary reported available")
	}
	if statuses[0].Detail == "" {
		t.Error("missing binary should carry a detail message")
	}
}

func TestCheckBinariesUnconfigured(t *testing.T) {
	statuses := deps.CheckBinaries([]deps.Requirement{{Name: "FFmpeg"}})
	if statuses[0].Available {
		t.Error("empty command reported available")
	}
}

func TestDefaultFallsBackToFFmpeg(t *testing.T) {
	reqs := deps.Default("")
	if len(reqs) != 1 || reqs[0].Command != "ffmpeg" {
		t.Errorf("Default = %+v", reqs)
	}
	reqs = deps.Default("/opt/ffmpeg/bin/ffmpeg")
	if reqs[0].Command != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("Default override = %+v", reqs)
	}
}
