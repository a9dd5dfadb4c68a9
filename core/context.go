package core

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"
)

// Vulkan names enabled in debug mode
const (
	ValidationLayerName     = "VK_LAYER_KHRONOS_validation"
	DebugUtilsExtensionName = "VK_EXT_debug_utils"
)

// DefaultMaxSwapImages is the swap image capacity when none is configured
const DefaultMaxSwapImages = 3

const (
	applicationVersion   = 1
	queuePriority        = float32(1.0)
	swapchainArrayLayers = 1
)

// Stage is a completed step of graphics context bring-up.
// Teardown unwinds stages in reverse.
type Stage int

// Bring-up stages, in creation order
const (
	StageNone Stage = iota
	StageInstance
	StageSurface
	StageDevice
	StageSwapchain
	StageImageViews
	StageRenderPass
)

var stageNames = [...]string{"none", "instance", "surface", "device", "swapchain", "image views", "render pass"}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}

// GraphicsContext owns every Vulkan object of the application.
// The instance owns all the others; the physical device and the swap
// images are borrowed and never destroyed.
type GraphicsContext struct {
	Destroyable

	driver        Driver
	configuration RendererConfiguration
	stage         Stage

	instance       vk.Instance
	surface        vk.Surface
	physicalDevice vk.PhysicalDevice // borrowed
	device         vk.Device

	computeFamily uint32
	computeQueue  vk.Queue

	swapchain      vk.Swapchain
	surfaceFormat  vk.SurfaceFormat
	presentMode    vk.PresentMode
	extent         vk.Extent2D
	swapImages     []vk.Image // borrowed from swapchain
	swapImageViews []vk.ImageView

	renderPass vk.RenderPass

	frames uint64
}

// NewGraphicsContext brings up the graphics context stage by stage.
// When a stage fails, everything created by earlier stages is destroyed
// before the error is returned.
func NewGraphicsContext(driver Driver, window SurfaceSource, instanceCfg InstanceConfiguration, cfg RendererConfiguration) (*GraphicsContext, error) {
	if cfg.MaxSwapImages <= 0 {
		cfg.MaxSwapImages = DefaultMaxSwapImages
	}

	c := &GraphicsContext{
		driver:        driver,
		configuration: cfg,
	}

	stages := []struct {
		stage  Stage
		create func() error
	}{
		{StageInstance, func() error { return c.createInstance(window.RequiredExtensions(), instanceCfg) }},
		{StageSurface, func() error { return c.createSurface(window) }},
		{StageDevice, c.createDevice},
		{StageSwapchain, c.createSwapchain},
		{StageImageViews, c.createImageViews},
		{StageRenderPass, c.createRenderPass},
	}
	for _, s := range stages {
		if err := s.create(); err != nil {
			log.WithFields(log.Fields{
				"stage": s.stage,
				"error": err,
			}).Error("graphics context bring-up failed, rolling back")
			c.Destroy()
			return nil, err
		}
	}

	log.WithFields(log.Fields{
		"computeFamily": c.computeFamily,
		"images":        len(c.swapImages),
		"format":        c.surfaceFormat.Format,
		"presentMode":   c.presentMode,
	}).Info("graphics context ready")
	return c, nil
}

func (c *GraphicsContext) createInstance(windowExtensions []string, cfg InstanceConfiguration) error {
	instance, err := NewInstance(c.driver, windowExtensions, cfg)
	if err != nil {
		return err
	}
	c.instance = instance
	c.stage = StageInstance
	return nil
}

// NewInstance creates a Vulkan instance enabling the given extensions plus
// the configured ones, with validation when cfg.DebugMode is set.
func NewInstance(driver Driver, extensions []string, cfg InstanceConfiguration) (vk.Instance, error) {
	extensions = appendUnique(appendUnique(nil, extensions...), cfg.Extensions...)
	layers := appendUnique(nil, cfg.Layers...)
	if cfg.DebugMode {
		extensions = appendUnique(extensions, DebugUtilsExtensionName)
		layers = appendUnique(layers, ValidationLayerName)
	}

	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PApplicationName:   safeString(cfg.ApplicationName),
		ApplicationVersion: applicationVersion,
		ApiVersion:         vk.MakeVersion(1, 3, 0),
	}
	instanceInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: safeStrings(extensions),
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     safeStrings(layers),
	}

	instance, err := driver.CreateInstance(&instanceInfo)
	if err != nil {
		return nil, errors.Wrap(err, "could not create instance")
	}

	log.WithFields(log.Fields{
		"extensions": extensions,
		"layers":     layers,
	}).Debug("instance created")
	return instance, nil
}

func (c *GraphicsContext) createSurface(window SurfaceSource) error {
	surface, err := window.CreateSurface(c.instance)
	if err != nil {
		return WrapCategory(ErrBadSurface, err, "could not create surface")
	}
	c.surface = surface
	c.stage = StageSurface

	log.Debug("surface created")
	return nil
}

// enumerateCandidates gathers what selection needs about every physical device
func enumerateCandidates(driver Driver, instance vk.Instance) ([]DeviceCandidate, error) {
	devices, err := driver.PhysicalDevices(instance)
	if err != nil {
		return nil, errors.Wrap(err, "could not enumerate physical devices")
	}

	candidates := make([]DeviceCandidate, len(devices))
	for i, device := range devices {
		extensions, err := driver.DeviceExtensions(device)
		if err != nil {
			return nil, errors.Wrapf(err, "could not enumerate extensions of device %d", i)
		}
		candidates[i] = DeviceCandidate{
			Device:        device,
			Properties:    driver.DeviceProperties(device),
			QueueFamilies: driver.QueueFamilies(device),
			Extensions:    extensions,
		}
	}
	return candidates, nil
}

func (c *GraphicsContext) createDevice() error {
	candidates, err := enumerateCandidates(c.driver, c.instance)
	if err != nil {
		return err
	}

	selection, err := SelectPhysicalDevice(candidates, c.configuration.SelectionPolicy)
	if err != nil {
		return err
	}
	c.physicalDevice = selection.Device
	c.computeFamily = selection.ComputeFamily

	log.WithFields(log.Fields{
		"device":        selection.Index,
		"name":          deviceName(candidates[selection.Index].Properties),
		"computeFamily": selection.ComputeFamily,
		"policy":        c.configuration.SelectionPolicy,
	}).Info("physical device selected")

	extensions := appendUnique([]string{vk.KhrSwapchainExtensionName}, c.configuration.DeviceExtensions...)

	queueInfos := []vk.DeviceQueueCreateInfo{{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: c.computeFamily,
		QueueCount:       1,
		PQueuePriorities: []float32{queuePriority},
	}}
	deviceInfo := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: safeStrings(extensions),
	}

	device, err := c.driver.CreateDevice(c.physicalDevice, &deviceInfo)
	if err != nil {
		return errors.Wrap(err, "could not create logical device")
	}
	c.device = device
	c.computeQueue = c.driver.DeviceQueue(device, c.computeFamily)
	c.stage = StageDevice

	log.Debug("logical device created")
	return nil
}

func (c *GraphicsContext) createSwapchain() error {
	caps, err := c.driver.SurfaceCapabilities(c.physicalDevice, c.surface)
	if err != nil {
		return errors.Wrap(err, "could not get surface capabilities")
	}

	width, height := c.configuration.SurfaceWidth, c.configuration.SurfaceHeight
	if !ExtentSupported(caps, width, height) {
		return errors.Wrapf(ErrBadSurface, "surface extents %dx%d-%dx%d are not compatible with configured size %dx%d",
			caps.MinImageExtent.Width, caps.MinImageExtent.Height,
			caps.MaxImageExtent.Width, caps.MaxImageExtent.Height,
			width, height)
	}
	imageCount := SwapImageCount(caps)

	formats, err := c.driver.SurfaceFormats(c.physicalDevice, c.surface)
	if err != nil {
		return errors.Wrap(err, "could not get surface formats")
	}
	if c.surfaceFormat, err = ChooseSurfaceFormat(formats); err != nil {
		return err
	}

	modes, err := c.driver.PresentModes(c.physicalDevice, c.surface)
	if err != nil {
		return errors.Wrap(err, "could not get surface present modes")
	}
	c.presentMode = ChoosePresentMode(modes)
	c.extent = vk.Extent2D{Width: width, Height: height}

	swapchainInfo := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          c.surface,
		MinImageCount:    imageCount,
		ImageFormat:      c.surfaceFormat.Format,
		ImageColorSpace:  c.surfaceFormat.ColorSpace,
		ImageExtent:      c.extent,
		ImageArrayLayers: swapchainArrayLayers,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageSharingMode: vk.SharingModeExclusive,
		PreTransform:     caps.CurrentTransform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		PresentMode:      c.presentMode,
		Clipped:          vk.True,
	}

	swapchain, err := c.driver.CreateSwapchain(c.device, &swapchainInfo)
	if err != nil {
		return errors.Wrap(err, "could not create swapchain")
	}
	c.swapchain = swapchain
	c.stage = StageSwapchain

	images, err := c.driver.SwapchainImages(c.device, c.swapchain)
	if err != nil {
		return errors.Wrap(err, "could not get swapchain images")
	}
	if len(images) > c.configuration.MaxSwapImages {
		return errors.Wrapf(ErrVulkan, "swapchain returned %d images, capacity is %d", len(images), c.configuration.MaxSwapImages)
	}
	c.swapImages = images

	log.WithFields(log.Fields{
		"requested": imageCount,
		"images":    len(images),
	}).Debug("swapchain created")
	return nil
}

func (c *GraphicsContext) createImageViews() error {
	c.swapImageViews = make([]vk.ImageView, 0, len(c.swapImages))
	for i, image := range c.swapImages {
		viewInfo := vk.ImageViewCreateInfo{
			SType:    vk.StructureTypeImageViewCreateInfo,
			Image:    image,
			ViewType: vk.ImageViewType2d,
			Format:   c.surfaceFormat.Format,
			Components: vk.ComponentMapping{
				R: vk.ComponentSwizzleIdentity,
				G: vk.ComponentSwizzleIdentity,
				B: vk.ComponentSwizzleIdentity,
				A: vk.ComponentSwizzleIdentity,
			},
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
				BaseMipLevel:   0,
				LevelCount:     1,
				BaseArrayLayer: 0,
				LayerCount:     swapchainArrayLayers,
			},
		}

		view, err := c.driver.CreateImageView(c.device, &viewInfo)
		if err != nil {
			// views created so far are still released on rollback
			c.stage = StageImageViews
			return errors.Wrapf(err, "could not create image view %d", i)
		}
		c.swapImageViews = append(c.swapImageViews, view)
	}
	c.stage = StageImageViews

	log.WithField("views", len(c.swapImageViews)).Debug("image views created")
	return nil
}

func (c *GraphicsContext) createRenderPass() error {
	attachments := []vk.AttachmentDescription{{
		Format:         c.surfaceFormat.Format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}}
	colorReferences := []vk.AttachmentReference{{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}}
	subpasses := []vk.SubpassDescription{{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: uint32(len(colorReferences)),
		PColorAttachments:    colorReferences,
	}}
	dependencies := []vk.SubpassDependency{{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentWriteBit),
	}}

	renderPassInfo := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(attachments)),
		PAttachments:    attachments,
		SubpassCount:    uint32(len(subpasses)),
		PSubpasses:      subpasses,
		DependencyCount: uint32(len(dependencies)),
		PDependencies:   dependencies,
	}

	renderPass, err := c.driver.CreateRenderPass(c.device, &renderPassInfo)
	if err != nil {
		return errors.Wrap(err, "could not create render pass")
	}
	c.renderPass = renderPass
	c.stage = StageRenderPass

	log.Debug("render pass created")
	return nil
}

// Update runs once per frame. Nothing is rendered yet.
func (c *GraphicsContext) Update() {
	c.frames++
}

// Frames returns how many times Update ran
func (c *GraphicsContext) Frames() uint64 {
	return c.frames
}

// Stage returns the last completed bring-up stage
func (c *GraphicsContext) Stage() Stage {
	return c.stage
}

// ComputeFamily returns the queue family the device was created with
func (c *GraphicsContext) ComputeFamily() uint32 {
	return c.computeFamily
}

// ComputeQueue returns the single queue of the logical device
func (c *GraphicsContext) ComputeQueue() vk.Queue {
	return c.computeQueue
}

// SurfaceFormat returns the swapchain format
func (c *GraphicsContext) SurfaceFormat() vk.SurfaceFormat {
	return c.surfaceFormat
}

// PresentMode returns the swapchain present mode
func (c *GraphicsContext) PresentMode() vk.PresentMode {
	return c.presentMode
}

// ImageCount returns the number of swapchain images
func (c *GraphicsContext) ImageCount() int {
	return len(c.swapImages)
}

// Destroy releases everything in reverse creation order. Only
// objects whose stage was reached are released, each exactly once;
// calling it again does nothing.
func (c *GraphicsContext) Destroy() {
	if c == nil || c.stage == StageNone {
		return
	}

	if c.stage >= StageDevice {
		if err := c.driver.DeviceWaitIdle(c.device); err != nil {
			log.WithField("error", err).Warn("device did not become idle before teardown")
		}
	}

	if c.stage >= StageRenderPass {
		c.driver.DestroyRenderPass(c.device, c.renderPass)
	}
	if c.stage >= StageImageViews {
		for _, view := range c.swapImageViews {
			c.driver.DestroyImageView(c.device, view)
		}
		c.swapImageViews = nil
	}
	if c.stage >= StageSwapchain {
		c.swapImages = nil
		c.driver.DestroySwapchain(c.device, c.swapchain)
	}
	if c.stage >= StageSurface {
		c.driver.DestroySurface(c.instance, c.surface)
	}
	if c.stage >= StageDevice {
		c.driver.DestroyDevice(c.device)
	}
	c.driver.DestroyInstance(c.instance)

	log.WithField("stage", c.stage).Debug("graphics context destroyed")
	c.stage = StageNone
}
