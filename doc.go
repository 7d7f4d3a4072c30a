// Package xmap is the viewport core of an interactive 3D map viewer for
// [Ebitengine].
//
// A [MapView] binds a renderer, a scene and a perspective camera to a host
// widget. Models are attached with [MapView.LoadModel], themed with
// [MapView.ChangeTheme], and drawn by a conditional render loop that only
// redraws when something changed.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	model := xmap.BuildDemoMap(xmap.DefaultConfig().Demo)
//	xmap.Run(func(mv *xmap.MapView) error {
//		if err := mv.LoadModel(model); err != nil {
//			return err
//		}
//		return mv.ChangeTheme(xmap.Theme{Background: "#f9f9f9"})
//	}, xmap.RunConfig{Title: "Map", Width: 960, Height: 640})
//
// For headless use, bind the view to a [StaticHost] and drive it with
// [MapView.Tick] or [MapView.StartRenderer]:
//
//	mv := xmap.NewMapView(xmap.NewStaticHost(640, 480), xmap.WithRenderer(r))
//	mv.InitView()
//	go mv.StartRenderer(ctx)
//
// # Render loop
//
// Each tick first runs work queued with [MapView.Do], then advances the
// animation engine. A frame is drawn when an animation changed something,
// when the view was invalidated, or once after a resize. Drawing updates
// overlays, clears the color buffer, renders the scene and clears depth, in
// that order. A failing frame is logged and never stops the loop.
//
// # Coordinates
//
// The world is Z-up. [Location] values are local to a [Floor];
// [MapView.LocationToViewport] maps them to host pixels and returns the
// off-screen sentinel for hidden floors. [MapView.CameraRaycast] maps a
// pointer position back to a world ray, and [MapView.Pick] intersects it
// with the model.
//
// # Themes
//
// A [Theme] background is a color string or a {color, alpha} pair. Anything
// else falls back to [DefaultBackground]. Every model node receives
// OnThemeChange, so custom nodes can restyle themselves.
//
// # Rendering backends
//
// The stock [Renderer] is a [Rasterizer]: it flattens visible meshes into
// depth-sorted flat-shaded triangles and hands them to a [Surface].
// [EbitenSurface] draws on the GPU through Ebitengine; the ggrender
// subpackage draws off-screen with gg for snapshots and tests.
//
// # ECS integration
//
// Set an [EventSink] with [WithEventSink] to receive lifecycle events. The
// ecs subpackage forwards them to a Donburi world.
//
// [Ebitengine]: https://ebitengine.org
package xmap
