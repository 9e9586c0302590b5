// Package renderer provides the character-grid engine.
//
// A Renderer owns the grid the application draws into and reconciles it
// against a backend once per frame:
//
//	┌─────────────────────────────────────────┐
//	│     Renderer (DrawCell / Present)       │
//	├─────────────────────────────────────────┤
//	│  back buffer │ front buffer │ dirty rows│
//	├─────────────────────────────────────────┤
//	│           Backend Abstraction           │
//	├─────────────────────────────────────────┤
//	│  Terminal (tcell) │ Canvas (x/image)    │
//	└─────────────────────────────────────────┘
//
// The strategy is chosen by the backend's Mode. In diff mode the renderer
// keeps the last presented frame and sends only cells that changed. In
// direct mode the backend starts every frame blank, so every cell is sent.
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	r, err := renderer.New(term, renderer.Options{Width: 60, Height: 25, FPS: 60})
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//	for !r.QuitRequested() {
//		r.Clear()
//		r.DrawText(1, 1, "hello", core.ColorWhite, core.ColorReset)
//		if err := r.Present(); err != nil {
//			return err
//		}
//	}
//
// A Renderer is not safe for concurrent use.
package renderer
