//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Register the Vulkan and noop backends via init().
	_ "github.com/gogpu/wgpu/hal/noop"
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// ErrBackendUnavailable is returned by OpenDevice when the requested HAL
// backend is not registered on this platform.
var ErrBackendUnavailable = errors.New("gpu: backend not available")

// ErrNoAdapter is returned by OpenDevice when the backend exposes no adapter.
var ErrNoAdapter = errors.New("gpu: no GPU adapters found")

// Device is a GPU device opened without a host application.
type Device struct {
	instance hal.Instance

	// Device and Queue are valid until Close.
	Device hal.Device
	Queue  hal.Queue

	// Info describes the selected adapter.
	Info gputypes.AdapterInfo
}

// OpenDevice opens a device on backend, preferring a discrete or integrated
// GPU over other adapter types.
func OpenDevice(backend gputypes.Backend) (*Device, error) {
	b, ok := hal.GetBackend(backend)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBackendUnavailable, backend)
	}
	instance, err := b.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}
	slogger().Info("pxl: GPU device opened", "backend", backend, "adapter", selected.Info.Name)
	return &Device{
		instance: instance,
		Device:   openDev.Device,
		Queue:    openDev.Queue,
		Info:     selected.Info,
	}, nil
}

// Close waits for outstanding GPU work and releases the device and instance.
// Safe to call multiple times.
func (d *Device) Close() {
	if d.Device != nil {
		if err := d.Device.WaitIdle(); err != nil {
			slogger().Warn("pxl: wait idle before device close", "err", err)
		}
		d.Device.Destroy()
		d.Device = nil
		d.Queue = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
}
