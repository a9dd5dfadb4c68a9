package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/csmoulaison/vk-tracer/core"
	"github.com/csmoulaison/vk-tracer/window"
	log "github.com/sirupsen/logrus"
)

func init() {
	runtime.LockOSThread()
}

var (
	configPath = flag.String("config", "vktracer.env", "Configuration file, ignored when missing")
	debug      = flag.Bool("vkdbg", false, "Load Vulkan validation layers")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	configuration, err := core.LoadConfiguration(*configPath)
	if err != nil {
		log.WithField("error", err).Error("could not load configuration")
		return core.ExitCode(err)
	}
	if *debug {
		configuration.Instance.DebugMode = true
	}
	core.SetupLogging(configuration.LogLevel)

	procAddr, err := window.Init()
	if err != nil {
		log.WithField("error", err).Error("could not initialise platform")
		return core.ExitCode(err)
	}
	defer window.Quit()

	sdlWindow, err := window.New(configuration.Instance.ApplicationName,
		configuration.Renderer.SurfaceWidth,
		configuration.Renderer.SurfaceHeight)
	if err != nil {
		log.WithField("error", err).Error("could not create window")
		return core.ExitCode(err)
	}
	defer sdlWindow.Destroy()

	driver, err := core.NewVulkanDriver(procAddr)
	if err != nil {
		log.WithField("error", err).Error("could not load vulkan")
		return core.ExitCode(err)
	}

	graphics, err := core.NewGraphicsContext(driver, sdlWindow, configuration.Instance, configuration.Renderer)
	if err != nil {
		log.WithField("error", err).Error("could not create graphics context")
		return core.ExitCode(err)
	}
	defer graphics.Destroy()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	timeService := core.NewTime(configuration.Time)
	defer timeService.Destroy()

	/* Event loop */
EventLoop:
	for {
		select {
		case <-ctx.Done():
			log.Info("interrupted")
			break EventLoop
		case <-timeService.EventTicker().C:
			if window.PollQuit() {
				break EventLoop
			}
			graphics.Update()
		}
	}

	log.WithField("frames", graphics.Frames()).Info("event loop exited")
	return core.ExitSuccess
}
