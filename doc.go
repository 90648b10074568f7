// Package tether routes input to interactive tools attached to a scene
// hierarchy, for [Ebitengine] and anything else that can enqueue events.
//
// Tools never see devices. They listen on named slots — logical input
// channels like "PrimaryAction" or "PointerTransformation" — and a routing
// configuration decides which physical controls feed which slots. Swap the
// configuration and the same tool runs off a mouse button, a key, or a
// synthesized tween.
//
// # Quick start
//
//	sys := tether.NewToolSystem(nil) // default desktop profile
//
//	root := tether.NewNode("root")
//	box := tether.NewNode("box")
//	root.AddChild(box)
//
//	sys.AddTool(tether.NewDragTool(), tether.NewPath(root, box))
//
//	devices, _ := tether.NewDevices(sys, tether.DefaultConfig())
//	for _, d := range devices {
//		sys.AddDevice(d)
//	}
//	tether.Run(sys, tether.RunConfig{Title: "drag the box"})
//
// For full control, implement [ebiten.Game] yourself and call
// [ToolSystem.Update] once per tick.
//
// # Slots and routing
//
// A [Slot] is a named channel, interned by the system's [Registry]. The
// routing [Config] declares virtual mappings — "LeftButton feeds
// PrimaryAction" — which may chain. Resolution reduces any slot to the
// physical trigger slots that transitively feed it; a slot nothing feeds is
// its own trigger. Configurations load from YAML or JSON via [LoadConfig].
//
// # Tools and bindings
//
// A [Tool] is bound to a [Path] through the scene with
// [ToolSystem.AddTool]. Each (tool, path) pair is an independent [Binding]
// with its own activation state: gated tools flip INACTIVE→ACTIVE on an
// exact pressed reading of an activation slot and back on the exact
// released reading; always-active tools just run. Callbacks receive a
// [Context] for axis readings, transforms, paths, picks and the viewer.
//
// # Events
//
// Devices, tweens and injection all enqueue [Event] values; the system
// drains the queue strictly in arrival order, finishing each event's
// dispatch and index reconciliation before reading the next. Everything
// runs on one goroutine — tether is single-threaded like the scene graph
// it serves.
//
// [Ebitengine]: https://ebitengine.org
package tether
