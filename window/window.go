// Package window wraps the SDL2 window the Vulkan surface is presented to.
package window

import (
	"math"
	"unsafe"

	"github.com/csmoulaison/vk-tracer/core"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	vk "github.com/vulkan-go/vulkan"
)

// Init starts the SDL video and event subsystems and loads the Vulkan
// library. It returns the loader's vkGetInstanceProcAddr.
func Init() (unsafe.Pointer, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, core.WrapCategory(core.ErrPlatform, err, "sdl.Init()")
	}
	if err := sdl.VulkanLoadLibrary(""); err != nil {
		sdl.Quit()
		return nil, core.WrapCategory(core.ErrPlatform, err, "sdl.VulkanLoadLibrary()")
	}

	var version sdl.Version
	sdl.GetVersion(&version)
	log.WithField("sdl", version).Debug("platform initialised")
	return sdl.VulkanGetVkGetInstanceProcAddr(), nil
}

// Quit undoes Init
func Quit() {
	sdl.VulkanUnloadLibrary()
	sdl.Quit()
}

// Window is a Vulkan capable SDL window
type Window struct {
	window *sdl.Window
}

var (
	_ core.Destroyable   = (*Window)(nil)
	_ core.SurfaceSource = (*Window)(nil)
)

// New opens a shown Vulkan window at the top left corner of the screen.
func New(title string, width, height uint32) (*Window, error) {
	if width > math.MaxInt32 || height > math.MaxInt32 {
		return nil, errors.Wrapf(core.ErrPlatform, "window size %dx%d is out of range", width, height)
	}

	w, err := sdl.CreateWindow(title, 0, 0, int32(width), int32(height), sdl.WINDOW_SHOWN|sdl.WINDOW_VULKAN)
	if err != nil {
		return nil, core.WrapCategory(core.ErrPlatform, err, "sdl.CreateWindow()")
	}

	log.WithFields(log.Fields{
		"title":  title,
		"width":  width,
		"height": height,
	}).Debug("window created")
	return &Window{window: w}, nil
}

// RequiredExtensions implements core.SurfaceSource
func (w *Window) RequiredExtensions() []string {
	return w.window.VulkanGetInstanceExtensions()
}

// CreateSurface implements core.SurfaceSource
func (w *Window) CreateSurface(instance vk.Instance) (vk.Surface, error) {
	pSurface, err := w.window.VulkanCreateSurface(instance)
	if err != nil {
		var surface vk.Surface
		return surface, err
	}
	return vk.SurfaceFromPointer(uintptr(pSurface)), nil
}

// Destroy closes the window
func (w *Window) Destroy() {
	if err := w.window.Destroy(); err != nil {
		log.WithField("error", err).Warn("could not destroy window")
	}
}
