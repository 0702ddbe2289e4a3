// Package festive renders a gesture-driven particle Christmas tree with
// [Ebitengine].
//
// A cloud of point particles continuously morphs between two target shapes:
// a conical tree with trunk and star, and a text greeting. A hand detector
// reports landmarks per camera frame; each frame is classified as an open
// or closed hand, debounced by a majority vote, and the stable result picks
// the shape. A closed fist shows the tree, an open palm the greeting.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := festive.NewScene(festive.DefaultConfig())
//	scene.SetDetector(detector)
//	scene.SetDetection(true)
//	festive.Run(scene, festive.RunConfig{
//		Title: "Merry Christmas", Width: 1280, Height: 720,
//	})
//
// # Pipeline
//
// [Detector] implementations call a [HandHandler] on their own goroutine.
// The scene classifies each [Hand] with [ClassifyHand], feeds the [Pose] to
// a [Stabilizer], and publishes changes through a [GestureCell]. The render
// loop reads the cell once per frame and hands the [Gesture] to the [Engine],
// which eases every particle toward its point of the matching [Shape].
//
// Without a camera, [ScriptDetector] replays poses or recorded landmark
// frames from JSON.
//
// # Shapes
//
// [GenerateTreeShape] and [GenerateTextShape] build target shapes once at
// startup. Index order matters: on the tree the first 85% of indices are the
// body, the next 12% the trunk and the rest the star, and particle colors
// follow those segments.
//
// # Extras
//
// The scene also animates a spiral ribbon, twinkling lights and falling
// snow, eases the camera between framings with [gween], and can loop a
// synthesized jingle. Gesture changes can be forwarded to an ECS world
// through [GestureSink] (see the [Donburi] adapter in festive/ecs).
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package festive
