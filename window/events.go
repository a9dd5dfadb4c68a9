package window

import (
	"github.com/veandco/go-sdl2/sdl"
)

// ShouldQuit drains every pending event from poll and reports whether a
// quit request or an Escape key press was among them.
func ShouldQuit(poll func() sdl.Event) bool {
	var quit bool
	for event := poll(); event != nil; event = poll() {
		switch et := event.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.KeyboardEvent:
			if et.Type == sdl.KEYDOWN && et.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
				quit = true
			}
		}
	}
	return quit
}

// PollQuit is ShouldQuit over the SDL event queue
func PollQuit() bool {
	return ShouldQuit(sdl.PollEvent)
}
