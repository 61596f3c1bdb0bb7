package renderer

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal"
)

type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

type mockQueue struct{}

type mockAdapter struct{}

var (
	_ gpucontext.DeviceProvider = (*mockProvider)(nil)
	_ gpucontext.DeviceProvider = (*mockHalProvider)(nil)
	_ gpucontext.DeviceProvider = (*wgpuProvider)(nil)
)

// mockProvider implements gpucontext.DeviceProvider with opaque handles.
type mockProvider struct {
	gpu  *GPU
	name string
}

func (m *mockProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (m *mockProvider) Queue() gpucontext.Queue               { return &mockQueue{} }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }
func (m *mockProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: m.name, Type: gpucontext.AdapterTypeUnknown}
}

// mockHalProvider exposes HAL handles through methods of its own.
type mockHalProvider struct {
	mockProvider
}

func (m *mockHalProvider) HalDevice() any { return m.gpu.Device }
func (m *mockHalProvider) HalQueue() any  { return m.gpu.Queue }

// wgpuProvider hands out a *wgpu.Device the way gogpu.App does.
type wgpuProvider struct {
	mockProvider
	device *wgpu.Device
}

func (m *wgpuProvider) Device() gpucontext.Device { return m.device }
func (m *wgpuProvider) Queue() gpucontext.Queue   { return m.device.Queue() }

func newWGPUProvider(t *testing.T, owner *GPU) *wgpuProvider {
	t.Helper()
	device, err := wgpu.NewDeviceFromHAL(owner.Device, owner.Queue, 0, wgpu.DefaultLimits(), "shared")
	if err != nil {
		t.Fatalf("NewDeviceFromHAL failed: %v", err)
	}
	return &wgpuProvider{mockProvider: mockProvider{name: "noop adapter"}, device: device}
}

func namedAdapter(name string) hal.ExposedAdapter {
	var a hal.ExposedAdapter
	a.Info.Name = name
	return a
}

func TestSelectAdapter(t *testing.T) {
	cpu := namedAdapter("cpu")
	integrated := namedAdapter("integrated")
	integrated.Info.DeviceType = gputypes.DeviceTypeIntegratedGPU
	discrete := namedAdapter("discrete")
	discrete.Info.DeviceType = gputypes.DeviceTypeDiscreteGPU
	discrete2 := discrete
	discrete2.Info.Name = "discrete2"

	tests := []struct {
		name     string
		adapters []hal.ExposedAdapter
		power    PowerPreference
		want     string
	}{
		{"discrete first", []hal.ExposedAdapter{cpu, integrated, discrete}, PowerHighPerformance, "discrete"},
		{"low power", []hal.ExposedAdapter{discrete, cpu, integrated}, PowerLowPower, "integrated"},
		{"fallback", []hal.ExposedAdapter{cpu}, PowerHighPerformance, "cpu"},
		{"integrated over cpu", []hal.ExposedAdapter{cpu, integrated}, PowerHighPerformance, "integrated"},
		{"tie keeps order", []hal.ExposedAdapter{integrated, discrete, discrete2}, PowerHighPerformance, "discrete"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selectAdapter(tt.adapters, tt.power)
			if got == nil {
				t.Fatal("selectAdapter returned nil")
			}
			if got.Info.Name != tt.want {
				t.Errorf("selected %q, want %q", got.Info.Name, tt.want)
			}
		})
	}

	if got := selectAdapter(nil, PowerHighPerformance); got != nil {
		t.Errorf("selectAdapter(nil) = %v, want nil", got)
	}
}

func TestStandaloneSourceNoop(t *testing.T) {
	gpu, err := noopSource().Acquire()
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if gpu.Device == nil || gpu.Queue == nil {
		t.Fatal("expected device and queue")
	}
	gpu.Release()
	gpu.Release()
}

func TestStandaloneSourceInstanceError(t *testing.T) {
	boom := errors.New("boom")
	src := StandaloneSource{NewInstance: func() (hal.Instance, error) { return nil, boom }}
	if _, err := src.Acquire(); !errors.Is(err, boom) {
		t.Errorf("Acquire error = %v, want %v", err, boom)
	}
}

func TestSharedSourceWithoutHal(t *testing.T) {
	if _, err := (SharedSource{}).Acquire(); !errors.Is(err, ErrNoHalProvider) {
		t.Errorf("nil provider: error = %v, want ErrNoHalProvider", err)
	}
	if _, err := (SharedSource{Provider: &mockProvider{}}).Acquire(); !errors.Is(err, ErrNoHalProvider) {
		t.Errorf("provider without HAL: error = %v, want ErrNoHalProvider", err)
	}
}

func TestSharedSource(t *testing.T) {
	owner, err := noopSource().Acquire()
	if err != nil {
		t.Fatal(err)
	}
	defer owner.Release()

	src := SharedSource{Provider: &mockHalProvider{mockProvider{gpu: owner}}}
	r, err := New(unitCircle()).Init(src, NewOffscreenSurface(), 200, 100)
	if err != nil {
		t.Fatalf("Init on shared device failed: %v", err)
	}
	if r.AdapterName() != "shared" {
		t.Errorf("AdapterName() = %q, want shared", r.AdapterName())
	}
	if err := r.RenderFrame(); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}
	// Destroy must leave the borrowed device usable.
	r.Destroy()
	r2, err := New(unitCircle()).Init(src, NewOffscreenSurface(), 200, 100)
	if err != nil {
		t.Fatalf("device unusable after Destroy: %v", err)
	}
	r2.Destroy()
}

func TestSharedSourceUnwrapsWGPUDevice(t *testing.T) {
	owner, err := noopSource().Acquire()
	if err != nil {
		t.Fatal(err)
	}
	defer owner.Release()

	provider := newWGPUProvider(t, owner)
	gpu, err := (SharedSource{Provider: provider}).Acquire()
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if gpu.Device != owner.Device {
		t.Error("shared GPU does not use the provider's HAL device")
	}
	if gpu.Queue != owner.Queue {
		t.Error("shared GPU does not use the provider's HAL queue")
	}
	if gpu.AdapterName != "noop adapter" {
		t.Errorf("AdapterName = %q, want provider adapter name", gpu.AdapterName)
	}

	r, err := New(unitCircle()).Init(SharedSource{Provider: provider}, NewOffscreenSurface(), 64, 64)
	if err != nil {
		t.Fatalf("Init on unwrapped device failed: %v", err)
	}
	defer r.Destroy()
	if err := r.RenderFrame(); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}
}

func TestSharedSourceNilWGPUDevice(t *testing.T) {
	provider := &wgpuProvider{}
	if _, err := (SharedSource{Provider: provider}).Acquire(); !errors.Is(err, ErrNoHalProvider) {
		t.Errorf("error = %v, want ErrNoHalProvider", err)
	}
}

func TestSharedGPUReleaseKeepsDevice(t *testing.T) {
	g := &GPU{AdapterName: "shared"}
	g.Release()
}

func TestListAdapters(t *testing.T) {
	infos, err := ListAdapters(noopSource().NewInstance, PowerHighPerformance)
	if err != nil {
		t.Fatalf("ListAdapters failed: %v", err)
	}
	if len(infos) == 0 {
		t.Fatal("noop backend reported no adapters")
	}
	selected := 0
	for _, info := range infos {
		if info.Selected {
			selected++
		}
		switch info.Kind {
		case "discrete", "integrated", "other":
		default:
			t.Errorf("unexpected kind %q", info.Kind)
		}
	}
	if selected != 1 {
		t.Errorf("%d adapters selected, want 1", selected)
	}
}
