package material

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Reflect mirrors direction v about normal n
func Reflect(v, n core.Vec3) core.Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
