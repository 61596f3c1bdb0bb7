// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package renderer

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal"

	_ "github.com/gogpu/wgpu/hal/vulkan" // Register the Vulkan HAL backend.
)

// GPU is an open device and its queue.
type GPU struct {
	Device      hal.Device
	Queue       hal.Queue
	AdapterName string

	release func()
}

// Release returns the device to its source. Safe to call more than once.
func (g *GPU) Release() {
	if g.release != nil {
		g.release()
		g.release = nil
	}
}

// wait blocks until the queue has completed the submission with the given
// index.
func (g *GPU) wait(index uint64) error {
	if g.Queue.PollCompleted() >= index {
		return nil
	}
	return g.Device.WaitIdle()
}

// DeviceSource provides the device a renderer draws with.
// Acquire blocks until the device is ready or acquisition failed.
type DeviceSource interface {
	Acquire() (*GPU, error)
}

// InstanceFactory creates a HAL instance for a StandaloneSource.
type InstanceFactory func() (hal.Instance, error)

// VulkanInstance returns a factory for the registered Vulkan HAL backend.
func VulkanInstance() InstanceFactory {
	return func() (hal.Instance, error) {
		backend, ok := hal.GetBackend(gputypes.BackendVulkan)
		if !ok {
			return nil, fmt.Errorf("%w: vulkan backend not registered", ErrNoAdapter)
		}
		return backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	}
}

// PowerPreference orders adapter types during selection.
type PowerPreference int

const (
	// PowerHighPerformance prefers discrete GPUs, then integrated ones.
	PowerHighPerformance PowerPreference = iota

	// PowerLowPower prefers integrated GPUs, then discrete ones.
	PowerLowPower
)

// StandaloneSource creates its own instance and device. Hardware adapters are
// preferred; any other adapter (virtual, CPU) is used only as a fallback.
type StandaloneSource struct {
	NewInstance InstanceFactory
	Power       PowerPreference
}

// Acquire creates the instance, selects an adapter and opens a device with
// default limits. The returned GPU destroys both on Release.
func (s StandaloneSource) Acquire() (*GPU, error) {
	newInstance := s.NewInstance
	if newInstance == nil {
		newInstance = VulkanInstance()
	}
	instance, err := newInstance()
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	selected := selectAdapter(adapters, s.Power)
	if selected == nil {
		instance.Destroy()
		return nil, ErrNoAdapter
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("%w: %w", ErrDeviceCreation, err)
	}

	slogger().Info("renderer: adapter selected", "adapter", selected.Info.Name, "candidates", len(adapters))

	device := openDev.Device
	return &GPU{
		Device:      device,
		Queue:       openDev.Queue,
		AdapterName: selected.Info.Name,
		release: func() {
			device.Destroy()
			instance.Destroy()
		},
	}, nil
}

// selectAdapter returns the best ranked adapter, or nil if there are none.
// Ties keep enumeration order.
func selectAdapter(adapters []hal.ExposedAdapter, power PowerPreference) *hal.ExposedAdapter {
	var best *hal.ExposedAdapter
	bestRank := -1
	for i := range adapters {
		r := adapterRank(&adapters[i], power)
		if r > bestRank {
			best = &adapters[i]
			bestRank = r
		}
	}
	return best
}

// adapterRank scores an adapter for the given preference; higher is better.
func adapterRank(a *hal.ExposedAdapter, power PowerPreference) int {
	switch a.Info.DeviceType {
	case gputypes.DeviceTypeDiscreteGPU:
		if power == PowerLowPower {
			return 2
		}
		return 3
	case gputypes.DeviceTypeIntegratedGPU:
		if power == PowerLowPower {
			return 3
		}
		return 2
	default:
		return 1
	}
}

// AdapterInfo describes an adapter reported by ListAdapters.
type AdapterInfo struct {
	Name string

	// Kind is "discrete", "integrated" or "other".
	Kind string

	// Selected marks the adapter a StandaloneSource with the same power
	// preference would open.
	Selected bool
}

// ListAdapters enumerates the adapters of a fresh instance without opening
// a device. A nil factory uses VulkanInstance.
func ListAdapters(newInstance InstanceFactory, power PowerPreference) ([]AdapterInfo, error) {
	if newInstance == nil {
		newInstance = VulkanInstance()
	}
	instance, err := newInstance()
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	defer instance.Destroy()

	adapters := instance.EnumerateAdapters(nil)
	selected := selectAdapter(adapters, power)
	infos := make([]AdapterInfo, len(adapters))
	for i := range adapters {
		infos[i] = AdapterInfo{
			Name:     adapters[i].Info.Name,
			Kind:     adapterKind(&adapters[i]),
			Selected: &adapters[i] == selected,
		}
	}
	return infos, nil
}

func adapterKind(a *hal.ExposedAdapter) string {
	switch a.Info.DeviceType {
	case gputypes.DeviceTypeDiscreteGPU:
		return "discrete"
	case gputypes.DeviceTypeIntegratedGPU:
		return "integrated"
	default:
		return "other"
	}
}

// halProvider is implemented by device providers that expose their HAL
// device and queue directly rather than through a *wgpu.Device.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// SharedSource borrows the device of a host framework. The host keeps
// ownership: Release on the returned GPU does nothing.
type SharedSource struct {
	Provider gpucontext.DeviceProvider
}

// Acquire extracts the HAL device and queue from the provider. A provider
// whose Device is a *wgpu.Device (gogpu.App) is unwrapped first; providers
// implementing HalDevice and HalQueue are accepted as a fallback.
func (s SharedSource) Acquire() (*GPU, error) {
	if s.Provider == nil {
		return nil, ErrNoHalProvider
	}
	device, queue, err := sharedHandles(s.Provider)
	if err != nil {
		return nil, err
	}
	name := s.Provider.AdapterInfo().Name
	if name == "" {
		name = "shared"
	}
	slogger().Info("renderer: using shared device", "adapter", name)
	return &GPU{Device: device, Queue: queue, AdapterName: name}, nil
}

func sharedHandles(p gpucontext.DeviceProvider) (hal.Device, hal.Queue, error) {
	if wd, ok := p.Device().(*wgpu.Device); ok && wd != nil {
		device, queue := wd.HalDevice(), wd.HalQueue()
		if device == nil || queue == nil {
			return nil, nil, fmt.Errorf("%w: wgpu device has no HAL backend", ErrNoHalProvider)
		}
		return device, queue, nil
	}
	hp, ok := p.(halProvider)
	if !ok {
		return nil, nil, fmt.Errorf("%w: device %T", ErrNoHalProvider, p.Device())
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok {
		return nil, nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHalProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok {
		return nil, nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHalProvider)
	}
	return device, queue, nil
}
