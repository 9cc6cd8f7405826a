// Package ui contains the Bubble Tea program that shows an organization's
// stats as paged scenes. The Model type focuses on message orchestration,
// while dedicated helpers own navigation, input, projection and rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - On the create screen, messages go to the fetch form first. Everything
//     else is routed through a typed handler registry so each tea.Msg is
//     handled by a focused function (key presses, mouse clicks, frame ticks,
//     backend reloads, fetch and copy results).
//   - Navigation helpers (internal/ui/navigation.go) switch tabs, page the
//     current visualizer and move focus. Filter helpers (internal/ui/input.go)
//     keep all text entry concerns isolated from the event loop.
//
// State ownership:
//   - Each collection (internal/collection) owns its visualizer and detail
//     surface. The model only drives them through visualizer.Controller.
//   - Per-tab view state (filter, focus) lives in internal/ui/state.Tab.
//   - All visualizers share one anim.Scheduler. The model asks for frame ticks
//     only while the scheduler has work, so an idle scene costs nothing.
//   - Slow work (fetching from GitHub, writing the clipboard) runs through the
//     internal/ui/command bus.
//
// Backend interactions:
//   - A backend.Watcher, when enabled, streams stats file changes. Each event
//     goes to applyBackendEvent, which reloads every collection through the
//     data dispatcher and re-applies active filters.
//
// Rendering projects the scene top-down (internal/ui/projection.go): X runs
// across the columns and Z down the rows, with a detail panel for the
// selected record beside or below the canvas.
package ui
