package core

import (
	"errors"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// handles gives fake physical devices distinct identities
var handles [16]byte

func fakePhysicalDevice(i int) vk.PhysicalDevice {
	return vk.PhysicalDevice(unsafe.Pointer(&handles[i]))
}

type fakeDevice struct {
	properties vk.PhysicalDeviceProperties
	families   []vk.QueueFamilyProperties
	extensions []string
}

// fakeDriver records every call and keeps a count of live objects per kind
type fakeDriver struct {
	devices []fakeDevice
	caps    vk.SurfaceCapabilities
	formats []vk.SurfaceFormat
	modes   []vk.PresentMode
	images  int

	// fail makes the named call return the result
	fail map[string]vk.Result

	calls []string
	live  map[string]int

	instanceInfo  *vk.InstanceCreateInfo
	deviceInfo    *vk.DeviceCreateInfo
	swapchainInfo *vk.SwapchainCreateInfo
	viewInfos     []*vk.ImageViewCreateInfo
	passInfo      *vk.RenderPassCreateInfo
	queueFamily   uint32
}

func computeFamily() vk.QueueFamilyProperties {
	return vk.QueueFamilyProperties{QueueFlags: vk.QueueFlags(vk.QueueComputeBit), QueueCount: 1}
}

func graphicsFamily() vk.QueueFamilyProperties {
	return vk.QueueFamilyProperties{QueueFlags: vk.QueueFlags(vk.QueueGraphicsBit), QueueCount: 1}
}

func suitableDevice() fakeDevice {
	return fakeDevice{
		families:   []vk.QueueFamilyProperties{graphicsFamily(), computeFamily()},
		extensions: []string{"VK_KHR_maintenance1", vk.KhrSwapchainExtensionName},
	}
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		devices: []fakeDevice{suitableDevice()},
		caps: vk.SurfaceCapabilities{
			MinImageCount:    2,
			MaxImageCount:    8,
			CurrentExtent:    vk.Extent2D{Width: 640, Height: 480},
			MinImageExtent:   vk.Extent2D{Width: 1, Height: 1},
			MaxImageExtent:   vk.Extent2D{Width: 4096, Height: 4096},
			CurrentTransform: vk.SurfaceTransformIdentityBit,
		},
		formats: []vk.SurfaceFormat{
			{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
			{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		},
		modes:  []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeMailbox},
		images: 3,
		fail:   map[string]vk.Result{},
		live:   map[string]int{},
	}
}

func (d *fakeDriver) call(name string) error {
	d.calls = append(d.calls, name)
	if ret, ok := d.fail[name]; ok {
		return NewResultError(name, ret)
	}
	return nil
}

func (d *fakeDriver) created(kind string)   { d.live[kind]++ }
func (d *fakeDriver) destroyed(kind string) { d.live[kind]-- }

func (d *fakeDriver) device(pd vk.PhysicalDevice) fakeDevice {
	for i := range d.devices {
		if fakePhysicalDevice(i) == pd {
			return d.devices[i]
		}
	}
	panic("unknown physical device")
}

func (d *fakeDriver) CreateInstance(info *vk.InstanceCreateInfo) (vk.Instance, error) {
	d.instanceInfo = info
	if err := d.call("CreateInstance"); err != nil {
		return nil, err
	}
	d.created("instance")
	return nil, nil
}

func (d *fakeDriver) DestroyInstance(vk.Instance) {
	d.calls = append(d.calls, "DestroyInstance")
	d.destroyed("instance")
}

func (d *fakeDriver) DestroySurface(vk.Instance, vk.Surface) {
	d.calls = append(d.calls, "DestroySurface")
	d.destroyed("surface")
}

func (d *fakeDriver) PhysicalDevices(vk.Instance) ([]vk.PhysicalDevice, error) {
	if err := d.call("PhysicalDevices"); err != nil {
		return nil, err
	}
	devices := make([]vk.PhysicalDevice, len(d.devices))
	for i := range devices {
		devices[i] = fakePhysicalDevice(i)
	}
	return devices, nil
}

func (d *fakeDriver) DeviceProperties(pd vk.PhysicalDevice) vk.PhysicalDeviceProperties {
	return d.device(pd).properties
}

func (d *fakeDriver) QueueFamilies(pd vk.PhysicalDevice) []vk.QueueFamilyProperties {
	return d.device(pd).families
}

func (d *fakeDriver) DeviceExtensions(pd vk.PhysicalDevice) ([]string, error) {
	if err := d.call("DeviceExtensions"); err != nil {
		return nil, err
	}
	return d.device(pd).extensions, nil
}

func (d *fakeDriver) CreateDevice(pd vk.PhysicalDevice, info *vk.DeviceCreateInfo) (vk.Device, error) {
	d.deviceInfo = info
	if err := d.call("CreateDevice"); err != nil {
		return nil, err
	}
	d.created("device")
	return nil, nil
}

func (d *fakeDriver) DeviceQueue(_ vk.Device, family uint32) vk.Queue {
	d.queueFamily = family
	return nil
}

func (d *fakeDriver) DeviceWaitIdle(vk.Device) error {
	return d.call("DeviceWaitIdle")
}

func (d *fakeDriver) DestroyDevice(vk.Device) {
	d.calls = append(d.calls, "DestroyDevice")
	d.destroyed("device")
}

func (d *fakeDriver) SurfaceCapabilities(vk.PhysicalDevice, vk.Surface) (vk.SurfaceCapabilities, error) {
	return d.caps, d.call("SurfaceCapabilities")
}

func (d *fakeDriver) SurfaceFormats(vk.PhysicalDevice, vk.Surface) ([]vk.SurfaceFormat, error) {
	return d.formats, d.call("SurfaceFormats")
}

func (d *fakeDriver) PresentModes(vk.PhysicalDevice, vk.Surface) ([]vk.PresentMode, error) {
	return d.modes, d.call("PresentModes")
}

func (d *fakeDriver) CreateSwapchain(_ vk.Device, info *vk.SwapchainCreateInfo) (vk.Swapchain, error) {
	var swapchain vk.Swapchain
	d.swapchainInfo = info
	if err := d.call("CreateSwapchain"); err != nil {
		return swapchain, err
	}
	d.created("swapchain")
	return swapchain, nil
}

func (d *fakeDriver) SwapchainImages(vk.Device, vk.Swapchain) ([]vk.Image, error) {
	if err := d.call("SwapchainImages"); err != nil {
		return nil, err
	}
	return make([]vk.Image, d.images), nil
}

func (d *fakeDriver) DestroySwapchain(vk.Device, vk.Swapchain) {
	d.calls = append(d.calls, "DestroySwapchain")
	d.destroyed("swapchain")
}

func (d *fakeDriver) CreateImageView(_ vk.Device, info *vk.ImageViewCreateInfo) (vk.ImageView, error) {
	var view vk.ImageView
	d.viewInfos = append(d.viewInfos, info)
	if err := d.call("CreateImageView"); err != nil {
		return view, err
	}
	d.created("view")
	return view, nil
}

func (d *fakeDriver) DestroyImageView(vk.Device, vk.ImageView) {
	d.calls = append(d.calls, "DestroyImageView")
	d.destroyed("view")
}

func (d *fakeDriver) CreateRenderPass(_ vk.Device, info *vk.RenderPassCreateInfo) (vk.RenderPass, error) {
	var renderPass vk.RenderPass
	d.passInfo = info
	if err := d.call("CreateRenderPass"); err != nil {
		return renderPass, err
	}
	d.created("renderPass")
	return renderPass, nil
}

func (d *fakeDriver) DestroyRenderPass(vk.Device, vk.RenderPass) {
	d.calls = append(d.calls, "DestroyRenderPass")
	d.destroyed("renderPass")
}

// leaked returns the kinds with objects still alive
func (d *fakeDriver) leaked() map[string]int {
	leaked := map[string]int{}
	for kind, n := range d.live {
		if n != 0 {
			leaked[kind] = n
		}
	}
	return leaked
}

// count returns how many times the named call was made
func (d *fakeDriver) count(name string) int {
	var n int
	for _, c := range d.calls {
		if c == name {
			n++
		}
	}
	return n
}

type fakeWindow struct {
	driver     *fakeDriver
	extensions []string
	fail       bool
}

func (w *fakeWindow) RequiredExtensions() []string {
	return w.extensions
}

func (w *fakeWindow) CreateSurface(vk.Instance) (vk.Surface, error) {
	var surface vk.Surface
	w.driver.calls = append(w.driver.calls, "CreateSurface")
	if w.fail {
		return surface, errors.New("SDL_Vulkan_CreateSurface failed")
	}
	w.driver.created("surface")
	return surface, nil
}
