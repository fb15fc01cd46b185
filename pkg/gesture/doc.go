// Package gesture describes drag and resize interactions as event streams.
//
// A [Source] is attached to one [Target] at a time together with a [Handler].
// While attached, the source reports drag frames, resize frames and the end
// of each gesture. Every frame carries the geometry the gesture proposes, the
// active resize handle as a [Direction], and the translation accumulated since
// the gesture started.
//
// [Pointer] is the terminal implementation: the editor feeds it press, motion
// and release positions already converted to canvas units, and it decides
// whether the press landed on a resize handle or on the body of the target.
//
// West-edge resizes are reported as a simultaneous width change and position
// shift. A handler that wants to apply the shift itself can pin the
// horizontal translation from [Handler.OnResizeStart] with
// [ResizeStart.PinTranslateX].
package gesture
