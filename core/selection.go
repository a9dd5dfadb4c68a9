package core

import (
	"fmt"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// SelectionPolicy decides which of several qualifying physical devices
// is used, and which of its compute queue families.
type SelectionPolicy int

// Available selection policies
const (
	// LastFitPolicy keeps the last qualifying device in enumeration
	// order and the last compute family of that device.
	LastFitPolicy SelectionPolicy = iota
	// FirstFitPolicy keeps the first qualifying device and its first
	// compute family.
	FirstFitPolicy
	// BestScorePolicy prefers discrete over integrated over virtual over
	// CPU devices. Ties go to the earliest device, first compute family.
	BestScorePolicy
)

var policyNames = map[SelectionPolicy]string{
	LastFitPolicy:   "last-fit",
	FirstFitPolicy:  "first-fit",
	BestScorePolicy: "best-score",
}

func (p SelectionPolicy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("SelectionPolicy(%d)", int(p))
}

// ParseSelectionPolicy parses a policy name as printed by String
func ParseSelectionPolicy(name string) (SelectionPolicy, error) {
	for p, n := range policyNames {
		if n == name {
			return p, nil
		}
	}
	return 0, errors.Errorf("unknown selection policy %q", name)
}

// DeviceCandidate is everything selection needs to know about
// one physical device.
type DeviceCandidate struct {
	Device        vk.PhysicalDevice
	Properties    vk.PhysicalDeviceProperties
	QueueFamilies []vk.QueueFamilyProperties
	Extensions    []string
}

// ComputeFamilies returns the indexes of the families that
// advertise compute support, in order.
func (c DeviceCandidate) ComputeFamilies() []uint32 {
	var indexes []uint32
	for i, family := range c.QueueFamilies {
		if family.QueueFlags&vk.QueueFlags(vk.QueueComputeBit) != 0 {
			indexes = append(indexes, uint32(i))
		}
	}
	return indexes
}

// SupportsSwapchain reports whether the swapchain extension is advertised
func (c DeviceCandidate) SupportsSwapchain() bool {
	return contains(c.Extensions, vk.KhrSwapchainExtensionName)
}

// Suitable reports whether both selection predicates hold
func (c DeviceCandidate) Suitable() bool {
	return len(c.ComputeFamilies()) > 0 && c.SupportsSwapchain()
}

// Selection is the outcome of physical device selection
type Selection struct {
	// Index of the device in enumeration order
	Index         int
	Device        vk.PhysicalDevice
	ComputeFamily uint32
}

// SelectPhysicalDevice picks a device out of candidates according to policy.
// Only suitable candidates are considered; when there are none the returned
// error matches ErrNoSuitableDevice.
func SelectPhysicalDevice(candidates []DeviceCandidate, policy SelectionPolicy) (Selection, error) {
	chosen := -1
	for i, c := range candidates {
		if !c.Suitable() {
			continue
		}
		switch policy {
		case FirstFitPolicy:
			if chosen < 0 {
				chosen = i
			}
		case BestScorePolicy:
			if chosen < 0 || deviceScore(c.Properties.DeviceType) > deviceScore(candidates[chosen].Properties.DeviceType) {
				chosen = i
			}
		default:
			chosen = i
		}
	}
	if chosen < 0 {
		return Selection{}, errors.Wrapf(ErrNoSuitableDevice, "none of %d devices has a compute queue family and %s", len(candidates), vk.KhrSwapchainExtensionName)
	}

	families := candidates[chosen].ComputeFamilies()
	family := families[0]
	if policy == LastFitPolicy {
		family = families[len(families)-1]
	}

	return Selection{
		Index:         chosen,
		Device:        candidates[chosen].Device,
		ComputeFamily: family,
	}, nil
}

func deviceScore(t vk.PhysicalDeviceType) int {
	switch t {
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return 4
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return 3
	case vk.PhysicalDeviceTypeVirtualGpu:
		return 2
	case vk.PhysicalDeviceTypeCpu:
		return 1
	default:
		return 0
	}
}

// ChooseSurfaceFormat prefers BGRA8 sRGB with the sRGB non-linear color
// space wherever it appears, and falls back to the first format.
func ChooseSurfaceFormat(formats []vk.SurfaceFormat) (vk.SurfaceFormat, error) {
	if len(formats) == 0 {
		return vk.SurfaceFormat{}, errors.Wrap(ErrBadSurface, "surface reports no formats")
	}
	for _, f := range formats {
		if f.Format == vk.FormatB8g8r8a8Srgb && f.ColorSpace == vk.ColorSpaceSrgbNonlinear {
			return f, nil
		}
	}
	return formats[0], nil
}

// ChoosePresentMode prefers mailbox. FIFO is the only mode every
// implementation has to support, so it is the fallback.
func ChoosePresentMode(modes []vk.PresentMode) vk.PresentMode {
	for _, m := range modes {
		if m == vk.PresentModeMailbox {
			return m
		}
	}
	return vk.PresentModeFifo
}

// SwapImageCount asks for one image more than the minimum,
// within the maximum when the surface has one.
func SwapImageCount(caps vk.SurfaceCapabilities) uint32 {
	count := caps.MinImageCount + 1
	if caps.MaxImageCount > 0 && count > caps.MaxImageCount {
		count = caps.MaxImageCount
	}
	return count
}

// ExtentSupported reports whether width x height lies within the
// surface's image extent limits.
func ExtentSupported(caps vk.SurfaceCapabilities, width, height uint32) bool {
	return caps.MinImageExtent.Width <= width && width <= caps.MaxImageExtent.Width &&
		caps.MinImageExtent.Height <= height && height <= caps.MaxImageExtent.Height
}
