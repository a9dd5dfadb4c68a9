package core

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// PhysicalDeviceInfo describes a rendering device as seen by selection
type PhysicalDeviceInfo struct {
	Index           int      `json:"index"`
	ID              int      `json:"id"`
	VendorID        int      `json:"vendorId"`
	DriverVersion   int      `json:"driverVersion"`
	APIVersion      string   `json:"apiVersion"`
	Name            string   `json:"name"`
	Type            string   `json:"type"`
	Extensions      []string `json:"extensions"`
	QueueFamilies   int      `json:"queueFamilies"`
	ComputeFamilies []uint32 `json:"computeFamilies"`
	Swapchain       bool     `json:"swapchain"`
	Suitable        bool     `json:"suitable"`
}

// DescribeDevices reports on every physical device of the instance
func DescribeDevices(driver Driver, instance vk.Instance) ([]PhysicalDeviceInfo, error) {
	candidates, err := enumerateCandidates(driver, instance)
	if err != nil {
		return nil, err
	}

	pdi := make([]PhysicalDeviceInfo, len(candidates))
	for i, c := range candidates {
		pdi[i] = PhysicalDeviceInfo{
			Index:           i,
			ID:              int(c.Properties.DeviceID),
			VendorID:        int(c.Properties.VendorID),
			DriverVersion:   int(c.Properties.DriverVersion),
			APIVersion:      versionString(c.Properties.ApiVersion),
			Name:            deviceName(c.Properties),
			Type:            deviceTypeName(c.Properties.DeviceType),
			Extensions:      c.Extensions,
			QueueFamilies:   len(c.QueueFamilies),
			ComputeFamilies: c.ComputeFamilies(),
			Swapchain:       c.SupportsSwapchain(),
			Suitable:        c.Suitable(),
		}
	}
	return pdi, nil
}

func deviceName(p vk.PhysicalDeviceProperties) string {
	return vk.ToString(p.DeviceName[:])
}

func deviceTypeName(t vk.PhysicalDeviceType) string {
	switch t {
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return "discrete"
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return "integrated"
	case vk.PhysicalDeviceTypeVirtualGpu:
		return "virtual"
	case vk.PhysicalDeviceTypeCpu:
		return "cpu"
	default:
		return "other"
	}
}

func versionString(v uint32) string {
	return fmt.Sprintf("%d.%d.%d", v>>22, (v>>12)&0x3ff, v&0xfff)
}
