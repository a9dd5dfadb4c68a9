package core

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func namedProperties(name string, t vk.PhysicalDeviceType) vk.PhysicalDeviceProperties {
	p := vk.PhysicalDeviceProperties{
		DeviceType: t,
		DeviceID:   0x1234,
		VendorID:   0x10de,
		ApiVersion: vk.MakeVersion(1, 3, 250),
	}
	copy(p.DeviceName[:], name)
	return p
}

func TestDescribeDevices(t *testing.T) {
	d := newFakeDriver()
	gpu := suitableDevice()
	gpu.properties = namedProperties("Fake Discrete", vk.PhysicalDeviceTypeDiscreteGpu)
	d.devices = []fakeDevice{
		gpu,
		{
			properties: namedProperties("Fake Software", vk.PhysicalDeviceTypeCpu),
			families:   []vk.QueueFamilyProperties{computeFamily()},
		},
	}

	devices, err := DescribeDevices(d, nil)
	require.NoError(t, err)
	require.Len(t, devices, 2)

	assert.Equal(t, "Fake Discrete", devices[0].Name)
	assert.Equal(t, "discrete", devices[0].Type)
	assert.Equal(t, "1.3.250", devices[0].APIVersion)
	assert.Equal(t, 0x10de, devices[0].VendorID)
	assert.Equal(t, []uint32{1}, devices[0].ComputeFamilies)
	assert.Equal(t, 2, devices[0].QueueFamilies)
	assert.True(t, devices[0].Swapchain)
	assert.True(t, devices[0].Suitable)

	assert.Equal(t, 1, devices[1].Index)
	assert.Equal(t, "cpu", devices[1].Type)
	assert.False(t, devices[1].Swapchain)
	assert.False(t, devices[1].Suitable)

	_, err = json.Marshal(devices)
	assert.NoError(t, err)
}

func TestDescribeDevicesEnumerationFailure(t *testing.T) {
	d := newFakeDriver()
	d.fail["DeviceExtensions"] = vk.ErrorLayerNotPresent

	_, err := DescribeDevices(d, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVulkan))
}
