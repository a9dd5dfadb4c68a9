package core

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// NewVulkanDriver loads the Vulkan entry points and returns the native
// Driver. With a nil procAddr the system loader is used, otherwise the
// vkGetInstanceProcAddr supplied by the window system.
func NewVulkanDriver(procAddr unsafe.Pointer) (Driver, error) {
	if procAddr == nil {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			return nil, WrapCategory(ErrPlatform, err, "vk.SetDefaultGetInstanceProcAddr()")
		}
	} else {
		vk.SetGetInstanceProcAddr(procAddr)
	}

	if err := vk.Init(); err != nil {
		return nil, WrapCategory(ErrPlatform, err, "vk.Init()")
	}
	return vulkanDriver{}, nil
}

// vulkanDriver calls straight into github.com/vulkan-go/vulkan
type vulkanDriver struct{}

func (vulkanDriver) CreateInstance(info *vk.InstanceCreateInfo) (vk.Instance, error) {
	var instance vk.Instance
	if err := NewResultError("vk.CreateInstance()", vk.CreateInstance(info, nil, &instance)); err != nil {
		return nil, err
	}
	if err := vk.InitInstance(instance); err != nil {
		vk.DestroyInstance(instance, nil)
		return nil, WrapCategory(ErrVulkan, err, "vk.InitInstance()")
	}
	return instance, nil
}

func (vulkanDriver) DestroyInstance(instance vk.Instance) {
	vk.DestroyInstance(instance, nil)
}

func (vulkanDriver) DestroySurface(instance vk.Instance, surface vk.Surface) {
	vk.DestroySurface(instance, surface, nil)
}

func (vulkanDriver) PhysicalDevices(instance vk.Instance) ([]vk.PhysicalDevice, error) {
	var deviceCount uint32
	if err := NewResultError("vk.EnumeratePhysicalDevices()", vk.EnumeratePhysicalDevices(instance, &deviceCount, nil)); err != nil {
		return nil, err
	}
	devices := make([]vk.PhysicalDevice, deviceCount)
	if err := NewResultError("vk.EnumeratePhysicalDevices()", vk.EnumeratePhysicalDevices(instance, &deviceCount, devices)); err != nil {
		return nil, err
	}
	return devices[:deviceCount], nil
}

func (vulkanDriver) DeviceProperties(device vk.PhysicalDevice) vk.PhysicalDeviceProperties {
	var properties vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(device, &properties)
	properties.Deref()
	return properties
}

func (vulkanDriver) QueueFamilies(device vk.PhysicalDevice) []vk.QueueFamilyProperties {
	var familyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(device, &familyCount, nil)
	families := make([]vk.QueueFamilyProperties, familyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(device, &familyCount, families)
	for i := range families {
		families[i].Deref()
	}
	return families[:familyCount]
}

func (vulkanDriver) DeviceExtensions(device vk.PhysicalDevice) ([]string, error) {
	var extensionCount uint32
	if err := NewResultError("vk.EnumerateDeviceExtensionProperties()", vk.EnumerateDeviceExtensionProperties(device, "", &extensionCount, nil)); err != nil {
		return nil, err
	}
	properties := make([]vk.ExtensionProperties, extensionCount)
	if err := NewResultError("vk.EnumerateDeviceExtensionProperties()", vk.EnumerateDeviceExtensionProperties(device, "", &extensionCount, properties)); err != nil {
		return nil, err
	}

	extensions := make([]string, 0, extensionCount)
	for _, ext := range properties[:extensionCount] {
		ext.Deref()
		extensions = append(extensions, vk.ToString(ext.ExtensionName[:]))
	}
	return extensions, nil
}

func (vulkanDriver) CreateDevice(physicalDevice vk.PhysicalDevice, info *vk.DeviceCreateInfo) (vk.Device, error) {
	var device vk.Device
	if err := NewResultError("vk.CreateDevice()", vk.CreateDevice(physicalDevice, info, nil, &device)); err != nil {
		return nil, err
	}
	return device, nil
}

func (vulkanDriver) DeviceQueue(device vk.Device, family uint32) vk.Queue {
	var queue vk.Queue
	vk.GetDeviceQueue(device, family, 0, &queue)
	return queue
}

func (vulkanDriver) DeviceWaitIdle(device vk.Device) error {
	return NewResultError("vk.DeviceWaitIdle()", vk.DeviceWaitIdle(device))
}

func (vulkanDriver) DestroyDevice(device vk.Device) {
	vk.DestroyDevice(device, nil)
}

func (vulkanDriver) SurfaceCapabilities(device vk.PhysicalDevice, surface vk.Surface) (vk.SurfaceCapabilities, error) {
	var caps vk.SurfaceCapabilities
	if err := NewResultError("vk.GetPhysicalDeviceSurfaceCapabilities()", vk.GetPhysicalDeviceSurfaceCapabilities(device, surface, &caps)); err != nil {
		return caps, err
	}
	caps.Deref()
	caps.CurrentExtent.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()
	return caps, nil
}

func (vulkanDriver) SurfaceFormats(device vk.PhysicalDevice, surface vk.Surface) ([]vk.SurfaceFormat, error) {
	var formatCount uint32
	if err := NewResultError("vk.GetPhysicalDeviceSurfaceFormats()", vk.GetPhysicalDeviceSurfaceFormats(device, surface, &formatCount, nil)); err != nil {
		return nil, err
	}
	formats := make([]vk.SurfaceFormat, formatCount)
	if err := NewResultError("vk.GetPhysicalDeviceSurfaceFormats()", vk.GetPhysicalDeviceSurfaceFormats(device, surface, &formatCount, formats)); err != nil {
		return nil, err
	}
	for i := range formats {
		formats[i].Deref()
	}
	return formats[:formatCount], nil
}

func (vulkanDriver) PresentModes(device vk.PhysicalDevice, surface vk.Surface) ([]vk.PresentMode, error) {
	var modeCount uint32
	if err := NewResultError("vk.GetPhysicalDeviceSurfacePresentModes()", vk.GetPhysicalDeviceSurfacePresentModes(device, surface, &modeCount, nil)); err != nil {
		return nil, err
	}
	modes := make([]vk.PresentMode, modeCount)
	if err := NewResultError("vk.GetPhysicalDeviceSurfacePresentModes()", vk.GetPhysicalDeviceSurfacePresentModes(device, surface, &modeCount, modes)); err != nil {
		return nil, err
	}
	return modes[:modeCount], nil
}

func (vulkanDriver) CreateSwapchain(device vk.Device, info *vk.SwapchainCreateInfo) (vk.Swapchain, error) {
	var swapchain vk.Swapchain
	err := NewResultError("vk.CreateSwapchain()", vk.CreateSwapchain(device, info, nil, &swapchain))
	return swapchain, err
}

func (vulkanDriver) SwapchainImages(device vk.Device, swapchain vk.Swapchain) ([]vk.Image, error) {
	var imageCount uint32
	if err := NewResultError("vk.GetSwapchainImages()", vk.GetSwapchainImages(device, swapchain, &imageCount, nil)); err != nil {
		return nil, err
	}
	images := make([]vk.Image, imageCount)
	if err := NewResultError("vk.GetSwapchainImages()", vk.GetSwapchainImages(device, swapchain, &imageCount, images)); err != nil {
		return nil, err
	}
	return images[:imageCount], nil
}

func (vulkanDriver) DestroySwapchain(device vk.Device, swapchain vk.Swapchain) {
	vk.DestroySwapchain(device, swapchain, nil)
}

func (vulkanDriver) CreateImageView(device vk.Device, info *vk.ImageViewCreateInfo) (vk.ImageView, error) {
	var view vk.ImageView
	err := NewResultError("vk.CreateImageView()", vk.CreateImageView(device, info, nil, &view))
	return view, err
}

func (vulkanDriver) DestroyImageView(device vk.Device, view vk.ImageView) {
	vk.DestroyImageView(device, view, nil)
}

func (vulkanDriver) CreateRenderPass(device vk.Device, info *vk.RenderPassCreateInfo) (vk.RenderPass, error) {
	var renderPass vk.RenderPass
	err := NewResultError("vk.CreateRenderPass()", vk.CreateRenderPass(device, info, nil, &renderPass))
	return renderPass, err
}

func (vulkanDriver) DestroyRenderPass(device vk.Device, renderPass vk.RenderPass) {
	vk.DestroyRenderPass(device, renderPass, nil)
}
