package config

import (
	"fmt"

	"go.uber.org/multierr"
)

// Validate reports every setting the game cannot run with.
func (c *Config) Validate() error {
	var err error

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("graphics: size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.ShadowResolution < 0 {
		err = multierr.Append(err, fmt.Errorf("graphics: shadow_resolution %d is negative", c.Graphics.ShadowResolution))
	}

	t := c.Terrain
	if t.Width <= 0 || t.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("terrain: extent %vx%v must be positive", t.Width, t.Height))
	}
	if t.WidthSegments < 1 || t.HeightSegments < 1 {
		err = multierr.Append(err, fmt.Errorf("terrain: segments %dx%d must be at least 1", t.WidthSegments, t.HeightSegments))
	}
	if t.Scale <= 0 {
		err = multierr.Append(err, fmt.Errorf("terrain: scale %v must be positive", t.Scale))
	}
	if t.MaxHeight < 0 {
		err = multierr.Append(err, fmt.Errorf("terrain: max_height %v is negative", t.MaxHeight))
	}
	if t.Noise.Octaves < 1 || t.Noise.Persistence < 0 || t.Noise.Persistence > 1 || t.Noise.Lacunarity <= 0 {
		err = multierr.Append(err, fmt.Errorf("terrain: noise %+v is invalid", t.Noise))
	}

	if c.Trees.Count < 0 {
		err = multierr.Append(err, fmt.Errorf("trees: count %d is negative", c.Trees.Count))
	}

	l := c.Camera.Limits
	if l.MinZoom <= 0 || l.MinZoom > l.MaxZoom {
		err = multierr.Append(err, fmt.Errorf("camera: zoom range [%v, %v] is invalid", l.MinZoom, l.MaxZoom))
	}
	if l.MinPitch > l.MaxPitch {
		err = multierr.Append(err, fmt.Errorf("camera: pitch range [%v, %v] is invalid", l.MinPitch, l.MaxPitch))
	}

	if c.Nav.CellSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("nav: cell_size %v must be positive", c.Nav.CellSize))
	}

	if c.Game.SquadSize < 0 {
		err = multierr.Append(err, fmt.Errorf("game: squad_size %d is negative", c.Game.SquadSize))
	}
	if c.Game.HarvestAmount <= 0 {
		err = multierr.Append(err, fmt.Errorf("game: harvest_amount %d must be positive", c.Game.HarvestAmount))
	}

	return err
}
