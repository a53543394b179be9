package audiocodec_test

import (
	"runtime"
	"testing"

	"github.com/simonhull/audiocodec"
)

func TestGetVersionInfo(t *testing.T) {
	info := audiocodec.GetVersionInfo()

	if info.Version != audiocodec.Version {
		t.Errorf("expected version %s, got %s", audiocodec.Version, info.Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("expected Go version %s, got %s", runtime.Version(), info.GoVersion)
	}
	// Test binaries carry no VCS stamp.
	if info.GitCommit == "" || info.BuildTime == "" {
		t.Errorf("expected placeholders for missing fields, got %+v", info)
	}
}
