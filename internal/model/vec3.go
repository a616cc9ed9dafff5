package model

import "math"

// Vec3 is a point or direction in scene space (Y up).
// Value type, passed by value.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v * k.
func (v Vec3) Scale(k float64) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }

// LengthSquared returns |v|² (без sqrt для hot path).
func (v Vec3) LengthSquared() float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }

// Length returns |v|.
func (v Vec3) Length() float64 { return math.Sqrt(v.LengthSquared()) }

// Normalized returns the unit vector, or zero for a zero vector.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// DistanceSquared returns the squared distance to another point.
func (v Vec3) DistanceSquared(o Vec3) float64 { return v.Sub(o).LengthSquared() }

// Distance returns the distance to another point.
func (v Vec3) Distance(o Vec3) float64 { return math.Sqrt(v.DistanceSquared(o)) }

// Forward returns the horizontal unit direction for a yaw in degrees.
// Yaw 0 faces +Z, positive yaw turns clockwise seen from above (toward +X).
func Forward(yaw float64) Vec3 {
	r := yaw * math.Pi / 180
	return Vec3{X: math.Sin(r), Z: math.Cos(r)}
}

// SignedYaw returns the signed angle in degrees around +Y from one horizontal
// direction to another, in (-180, 180]. Positive means clockwise from above.
func SignedYaw(from, to Vec3) float64 {
	a := math.Atan2(from.X, from.Z)
	b := math.Atan2(to.X, to.Z)
	d := math.Mod((b-a)*180/math.Pi, 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return d
}
