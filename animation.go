package festive

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float32 fields simultaneously. Create one via
// TweenVec3 or TweenFloat and call Update(dt) each frame. Values are written
// straight into the target fields.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float32
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. Done is set once every tween has finished.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = val
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenVec3 creates a TweenGroup that animates all three components of v to
// the given target over the specified duration using the easing function.
func TweenVec3(v *Vec3, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3}
	g.tweens[0] = gween.New(v.X, to.X, duration, fn)
	g.tweens[1] = gween.New(v.Y, to.Y, duration, fn)
	g.tweens[2] = gween.New(v.Z, to.Z, duration, fn)
	g.fields[0] = &v.X
	g.fields[1] = &v.Y
	g.fields[2] = &v.Z
	return g
}

// TweenFloat creates a TweenGroup that animates a single field.
func TweenFloat(f *float32, to float32, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(*f, to, duration, fn)
	g.fields[0] = f
	return g
}
