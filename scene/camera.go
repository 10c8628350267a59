package scene

import "github.com/shadercoder/Salty/types"

// A pinhole camera. Update precomputes the screen-spanning vectors so
// that primary ray generation is a couple of multiply-adds per sample.
type Camera struct {
	Position types.Vec3
	Target   types.Vec3
	Up       types.Vec3

	// Vertical field of view expressed as the full height of the screen
	// plane (primary rays span FOV/2 either side of its center), and the
	// eye-to-screen distance.
	FOV  float32
	Near float32

	// Precomputed view direction and screen basis.
	direction    types.Vec3
	screenRight  types.Vec3
	screenUp     types.Vec3
	screenCenter types.Vec3
}

// Create a camera and run the initial update.
func NewCamera(position, target, up types.Vec3, width, height uint32, fov, near float32) *Camera {
	c := &Camera{
		Position: position,
		Target:   target,
		Up:       up,
		FOV:      fov,
		Near:     near,
	}
	c.Update(width, height)
	return c
}

// Recompute the screen basis for the given frame dimensions.
func (c *Camera) Update(width, height uint32) {
	aspect := float32(width) / float32(height)

	c.direction = c.Target.Sub(c.Position).Normalize()
	c.screenRight = c.direction.Cross(c.Up).Normalize().Mul(c.FOV * aspect)
	c.screenUp = c.screenRight.Cross(c.direction).Normalize().Mul(c.FOV)
	c.screenCenter = c.Position.Add(c.direction.Mul(c.Near))
}

// Generate the primary ray for normalized image coordinates in [0, 1]
// with (0, 0) at the bottom-left of the screen.
func (c *Camera) PrimaryRay(x, y float32) types.Ray {
	onScreen := c.screenRight.Mul(x - 0.5).
		Add(c.screenUp.Mul(y - 0.5)).
		Add(c.screenCenter)
	return types.NewRay(c.Position, onScreen.Sub(c.Position).Normalize())
}
