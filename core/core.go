package core

import (
	vk "github.com/vulkan-go/vulkan"
)

// Destroyable is anything that owns native resources
type Destroyable interface {
	// Destroy releases every resource it owns
	Destroy()
}

// SurfaceSource is the window side of presentation.
type SurfaceSource interface {
	// RequiredExtensions returns the instance extensions the window
	// system needs for presentation
	RequiredExtensions() []string

	// CreateSurface creates a presentation surface for the instance
	CreateSurface(vk.Instance) (vk.Surface, error)
}

// Driver is the subset of the Vulkan API the bootstrapper calls.
// Query methods return fully dereferenced values. Every failing
// call returns a *ResultError.
type Driver interface {
	CreateInstance(*vk.InstanceCreateInfo) (vk.Instance, error)
	DestroyInstance(vk.Instance)
	DestroySurface(vk.Instance, vk.Surface)

	PhysicalDevices(vk.Instance) ([]vk.PhysicalDevice, error)
	DeviceProperties(vk.PhysicalDevice) vk.PhysicalDeviceProperties
	QueueFamilies(vk.PhysicalDevice) []vk.QueueFamilyProperties
	DeviceExtensions(vk.PhysicalDevice) ([]string, error)

	CreateDevice(vk.PhysicalDevice, *vk.DeviceCreateInfo) (vk.Device, error)
	DeviceQueue(vk.Device, uint32) vk.Queue
	DeviceWaitIdle(vk.Device) error
	DestroyDevice(vk.Device)

	SurfaceCapabilities(vk.PhysicalDevice, vk.Surface) (vk.SurfaceCapabilities, error)
	SurfaceFormats(vk.PhysicalDevice, vk.Surface) ([]vk.SurfaceFormat, error)
	PresentModes(vk.PhysicalDevice, vk.Surface) ([]vk.PresentMode, error)

	CreateSwapchain(vk.Device, *vk.SwapchainCreateInfo) (vk.Swapchain, error)
	SwapchainImages(vk.Device, vk.Swapchain) ([]vk.Image, error)
	DestroySwapchain(vk.Device, vk.Swapchain)

	CreateImageView(vk.Device, *vk.ImageViewCreateInfo) (vk.ImageView, error)
	DestroyImageView(vk.Device, vk.ImageView)

	CreateRenderPass(vk.Device, *vk.RenderPassCreateInfo) (vk.RenderPass, error)
	DestroyRenderPass(vk.Device, vk.RenderPass)
}
