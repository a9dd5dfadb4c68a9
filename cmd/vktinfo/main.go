package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/csmoulaison/vk-tracer/core"
	log "github.com/sirupsen/logrus"
)

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

	driver, err := core.NewVulkanDriver(nil)
	if err != nil {
		log.WithField("error", err).Error("could not load vulkan")
		return core.ExitCode(err)
	}

	instance, err := core.NewInstance(driver, nil, configuration.Instance)
	if err != nil {
		log.WithField("error", err).Error("could not create instance")
		return core.ExitCode(err)
	}
	defer driver.DestroyInstance(instance)

	devices, err := core.DescribeDevices(driver, instance)
	if err != nil {
		log.WithField("error", err).Error("could not describe devices")
		return core.ExitCode(err)
	}

	bytes, err := json.MarshalIndent(devices, "", "  ")
	if err != nil {
		log.WithField("error", err).Error("could not encode devices")
		return core.ExitVulkan
	}
	fmt.Printf("%s\n", bytes)
	return core.ExitSuccess
}
