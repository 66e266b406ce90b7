package geometry

import (
	"math"

	"github.com/dlumiere/wisp-tracer/pkg/core"
	"github.com/dlumiere/wisp-tracer/pkg/sampler"
)

// Camera generates primary rays from a LookAt basis, thin-lens depth of
// field, and Halton-sequence antialiasing/lens jitter with a per-pixel
// Cranley-Patterson rotation (§4.10).
type Camera struct {
	Origin   core.Vec3
	xCam     core.Vec3
	yCam     core.Vec3
	zCam     core.Vec3
	halfW    float64
	halfH    float64
	focalDist float64
	lensRadius float64
	pixelSize  float64
	width, height int
}

// NewCamera builds the world-from-camera basis and image-plane extents
// from a lookAt/lookFrom pair, vertical field of view (radians), aspect
// ratio, focal distance, and depth-of-field aperture radius.
func NewCamera(lookFrom, lookAt, up core.Vec3, fovY float64, width, height int, focalDist, dofRadius float64) *Camera {
	zCam := lookFrom.Subtract(lookAt).Normalize() // −normalize(dir)
	xCam := up.Cross(zCam).Normalize()
	yCam := zCam.Cross(xCam)

	halfH := focalDist * math.Tan(fovY/2)
	aspect := float64(width) / float64(height)
	halfW := aspect * halfH
	pixelSize := 2 * halfW / float64(width)

	return &Camera{
		Origin:     lookFrom,
		xCam:       xCam,
		yCam:       yCam,
		zCam:       zCam,
		halfW:      halfW,
		halfH:      halfH,
		focalDist:  focalDist,
		lensRadius: dofRadius,
		pixelSize:  pixelSize,
		width:      width,
		height:     height,
	}
}

// PixelRotation is the per-pixel uniform Cranley-Patterson rotation applied
// to every Halton dimension used by that pixel's samples.
type PixelRotation struct {
	RX, RY, RLensTheta, RLensR float64
}

// GenerateRay builds the k-th sample's primary ray for pixel (i, j), per
// §4.10. The returned direction is not normalized: it runs from the lens
// origin to the image-plane point at focalDist, and the scene-graph
// intersector does not renormalize it, so hit distances t are measured in
// units of that length.
func (c *Camera) GenerateRay(i, j, k int, rot PixelRotation) core.Ray {
	jx := sampler.CranleyPatterson(sampler.Halton(k, sampler.BaseAA1), rot.RX)
	jy := sampler.CranleyPatterson(sampler.Halton(k, sampler.BaseAA2), rot.RY)

	px := -c.halfW + c.pixelSize*(float64(i)+jx)
	py := c.halfH - c.pixelSize*(float64(j)+jy)

	cameraSpacePoint := core.NewVec3(px, py, -c.focalDist)
	worldDest := c.toWorld(cameraSpacePoint)

	lensOrigin := c.Origin
	if c.lensRadius > 0 {
		r1 := sampler.CranleyPatterson(sampler.Halton(k, sampler.BaseLens1), rot.RLensTheta)
		r2 := sampler.CranleyPatterson(sampler.Halton(k, sampler.BaseLens2), rot.RLensR)
		lensX, lensY := sampler.UniformSampleDisk(r1, r2)
		lensOrigin = c.Origin.Add(c.xCam.Multiply(c.lensRadius * lensX)).Add(c.yCam.Multiply(c.lensRadius * lensY))
	}

	return core.Ray{
		Origin:    lensOrigin,
		Direction: worldDest.Subtract(lensOrigin),
	}
}

// Width reports the image width in pixels this camera was built for.
func (c *Camera) Width() int { return c.width }

// Height reports the image height in pixels this camera was built for.
func (c *Camera) Height() int { return c.height }

// toWorld maps a camera-space point into world space using the camera's
// orthonormal basis.
func (c *Camera) toWorld(p core.Vec3) core.Vec3 {
	return c.Origin.
		Add(c.xCam.Multiply(p.X)).
		Add(c.yCam.Multiply(p.Y)).
		Add(c.zCam.Multiply(p.Z))
}
