package core

import (
	"os"
	"strconv"

	"github.com/gobuffalo/envy"
	"github.com/gobuffalo/packr"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Configuration keys
const (
	KeyAppName        = "VKT_APP_NAME"
	KeyValidation     = "VKT_VALIDATION"
	KeySurfaceWidth   = "VKT_SURFACE_WIDTH"
	KeySurfaceHeight  = "VKT_SURFACE_HEIGHT"
	KeyMaxSwapImages  = "VKT_MAX_SWAP_IMAGES"
	KeyDevicePolicy   = "VKT_DEVICE_POLICY"
	KeyEventPollDelay = "VKT_EVENT_POLL_DELAY"
	KeyLogLevel       = "VKT_LOG_LEVEL"

	KeyInstanceExtensions = "VKT_INSTANCE_EXTENSIONS"
	KeyInstanceLayers     = "VKT_INSTANCE_LAYERS"
	KeyDeviceExtensions   = "VKT_DEVICE_EXTENSIONS"
)

const defaultsFile = "vktracer.env"

var defaults = packr.NewBox("./defaults")

// Configuration defines the global application configuration
type Configuration struct {
	LogLevel log.Level

	Time     TimeConfiguration
	Instance InstanceConfiguration
	Renderer RendererConfiguration
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// EventPollDelay is the pause between two event queue drains,
	// in milliseconds. Zero polls as fast as possible.
	EventPollDelay int
}

// InstanceConfiguration is used to configure the Vulkan instance
type InstanceConfiguration struct {
	ApplicationName string

	// DebugMode enables the validation layer and the debug utils extension
	DebugMode bool

	// Extensions and Layers are enabled on top of what the window
	// system requires, read as comma separated lists
	Extensions []string
	Layers     []string
}

// RendererConfiguration is used to configure the device and swapchain
type RendererConfiguration struct {
	SurfaceWidth  uint32
	SurfaceHeight uint32

	// MaxSwapImages bounds the number of swapchain images the context holds
	MaxSwapImages int

	SelectionPolicy SelectionPolicy

	// DeviceExtensions are enabled in addition to VK_KHR_swapchain
	DeviceExtensions []string
}

// LoadConfiguration builds the configuration from the bundled defaults,
// the optional file at path and the process environment, in increasing
// order of precedence. A missing file at path is not an error.
func LoadConfiguration(path string) (Configuration, error) {
	raw, err := defaults.FindString(defaultsFile)
	if err != nil {
		return Configuration{}, WrapCategory(ErrPlatform, err, "defaults")
	}
	values, err := godotenv.Unmarshal(raw)
	if err != nil {
		return Configuration{}, WrapCategory(ErrPlatform, err, "defaults")
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			file, err := godotenv.Read(path)
			if err != nil {
				return Configuration{}, WrapCategory(ErrPlatform, err, "%s", path)
			}
			for k, v := range file {
				values[k] = v
			}
		} else if !os.IsNotExist(err) {
			return Configuration{}, WrapCategory(ErrPlatform, err, "%s", path)
		}
	}

	for k, v := range values {
		values[k] = envy.Get(k, v)
	}

	return parseConfiguration(values)
}

func parseConfiguration(values map[string]string) (Configuration, error) {
	var (
		cfg Configuration
		err error
	)

	cfg.Instance.ApplicationName = values[KeyAppName]
	if cfg.Instance.ApplicationName == "" {
		return cfg, errors.Wrap(ErrPlatform, KeyAppName+": empty")
	}
	cfg.Instance.Extensions = splitList(values[KeyInstanceExtensions])
	cfg.Instance.Layers = splitList(values[KeyInstanceLayers])
	if cfg.Instance.DebugMode, err = strconv.ParseBool(values[KeyValidation]); err != nil {
		return cfg, WrapCategory(ErrPlatform, err, KeyValidation)
	}

	if cfg.Renderer.SurfaceWidth, err = parseExtent(values, KeySurfaceWidth); err != nil {
		return cfg, err
	}
	if cfg.Renderer.SurfaceHeight, err = parseExtent(values, KeySurfaceHeight); err != nil {
		return cfg, err
	}
	if cfg.Renderer.MaxSwapImages, err = strconv.Atoi(values[KeyMaxSwapImages]); err != nil || cfg.Renderer.MaxSwapImages < 1 {
		return cfg, errors.Wrapf(ErrPlatform, "%s: must be a positive integer, got %q", KeyMaxSwapImages, values[KeyMaxSwapImages])
	}
	cfg.Renderer.DeviceExtensions = splitList(values[KeyDeviceExtensions])
	if cfg.Renderer.SelectionPolicy, err = ParseSelectionPolicy(values[KeyDevicePolicy]); err != nil {
		return cfg, WrapCategory(ErrPlatform, err, KeyDevicePolicy)
	}

	if cfg.Time.EventPollDelay, err = strconv.Atoi(values[KeyEventPollDelay]); err != nil || cfg.Time.EventPollDelay < 0 {
		return cfg, errors.Wrapf(ErrPlatform, "%s: must be a non-negative integer, got %q", KeyEventPollDelay, values[KeyEventPollDelay])
	}
	if cfg.LogLevel, err = log.ParseLevel(values[KeyLogLevel]); err != nil {
		return cfg, WrapCategory(ErrPlatform, err, KeyLogLevel)
	}

	return cfg, nil
}

func parseExtent(values map[string]string, key string) (uint32, error) {
	v, err := strconv.ParseUint(values[key], 10, 31)
	if err != nil || v == 0 {
		return 0, errors.Wrapf(ErrPlatform, "%s: must be a positive integer, got %q", key, values[key])
	}
	return uint32(v), nil
}
