package festive

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
)

// Shape is an ordered set of target points, one per particle slot. The
// point at index i is the destination of particle i.
type Shape []Vec3

// Fractions of a tree shape given to each segment. The star takes whatever
// the body and trunk leave over so the total is always exact.
const (
	TreeBodyFraction  = 0.85
	TreeTrunkFraction = 0.12
)

// Tree geometry in scene units.
const (
	treeBaseY      = -5.0 // bottom of the lowest tier
	treeTopY       = 6.0  // y of the star center
	treeHeight     = treeTopY - treeBaseY
	treeJitter     = 0.5 // radial jitter width
	trunkRadius    = 0.9
	trunkHeight    = 2.5
	starRadius     = 0.8
	tierBandHeight = 3.5
	tierCount      = 3
	bodyTopY       = treeBaseY + tierCount*tierBandHeight
	trunkBottomY   = treeBaseY - trunkHeight
)

// tier is one frustum band of the tree body. upTo is the cumulative share of
// body points that fall in this band or any band below it. Band k starts at
// treeBaseY + k*tierBandHeight.
type tier struct {
	upTo       float32
	baseRadius float32
	topRadius  float32
}

var treeTiers = [tierCount]tier{
	{upTo: 0.40, baseRadius: 5.0, topRadius: 3.5},
	{upTo: 0.75, baseRadius: 3.5, topRadius: 2.0},
	{upTo: 1.00, baseRadius: 2.0, topRadius: 0.0},
}

// tierBaseY returns the y of the bottom of band k.
func tierBaseY(k int) float32 {
	return treeBaseY + float32(k)*tierBandHeight
}

// TreeSegments splits count into the body, trunk and star segments used by
// GenerateTreeShape. Particles are laid out in that order.
func TreeSegments(count int) (body, trunk, star int) {
	if count <= 0 {
		return 0, 0, 0
	}
	body = int(float64(count) * TreeBodyFraction)
	trunk = int(float64(count) * TreeTrunkFraction)
	star = count - body - trunk
	return body, trunk, star
}

// GenerateTreeShape returns count points forming a layered conical tree: three
// stacked frustum tiers, a cylindrical trunk below them and a small spherical
// star above the apex. A nil rng uses an unseeded source, so two calls give
// different but statistically similar trees.
func GenerateTreeShape(count int, rng *rand.Rand) Shape {
	rng = newRand(rng)
	body, trunk, star := TreeSegments(count)
	points := make(Shape, 0, body+trunk+star)

	for i := 0; i < body; i++ {
		points = append(points, treeBodyPoint(rng))
	}
	for i := 0; i < trunk; i++ {
		angle := rng.Float32() * 2 * math32.Pi
		r := rng.Float32() * trunkRadius
		points = append(points, Vec3{
			X: math32.Cos(angle) * r,
			Y: treeBaseY - rng.Float32()*trunkHeight,
			Z: math32.Sin(angle) * r,
		})
	}
	for i := 0; i < star; i++ {
		phi := rng.Float32() * 2 * math32.Pi
		theta := rng.Float32() * math32.Pi
		r := rng.Float32() * starRadius
		points = append(points, Vec3{
			X: r * math32.Sin(theta) * math32.Cos(phi),
			Y: treeTopY + r*math32.Sin(theta)*math32.Sin(phi),
			Z: r * math32.Cos(theta),
		})
	}
	return points
}

func treeBodyPoint(rng *rand.Rand) Vec3 {
	h := rng.Float32()
	lo := float32(0)
	k := tierCount - 1
	for i, candidate := range treeTiers {
		if h < candidate.upTo {
			k = i
			break
		}
		lo = candidate.upTo
	}
	tr := treeTiers[k]
	t := (h - lo) / (tr.upTo - lo)
	y := tierBaseY(k) + t*tierBandHeight
	radius := tr.baseRadius + (tr.topRadius-tr.baseRadius)*t

	angle := rng.Float32() * 2 * math32.Pi
	r := rng.Float32()*radius + jitter(rng, treeJitter)
	return Vec3{
		X: math32.Cos(angle) * r,
		Y: y,
		Z: math32.Sin(angle) * r,
	}
}
