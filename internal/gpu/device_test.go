//go:build !nogpu

package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestOpenDeviceNoop(t *testing.T) {
	d, err := OpenDevice(gputypes.BackendEmpty)
	if err != nil {
		t.Fatalf("OpenDevice(empty): %v", err)
	}
	if d.Device == nil || d.Queue == nil {
		t.Fatal("device or queue is nil")
	}
	d.Close()
	if d.Device != nil || d.Queue != nil {
		t.Error("Close did not clear the device")
	}
	d.Close()
}

func TestOpenDeviceUnavailable(t *testing.T) {
	_, err := OpenDevice(gputypes.BackendBrowserWebGPU)
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("expected ErrBackendUnavailable, got %v", err)
	}
}
