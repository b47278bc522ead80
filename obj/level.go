package obj

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/platkit/common"
)

// Tile values understood by the level grid.
const (
	TileEmpty  = 0
	TileSolid  = 1
	TileOneWay = 2
)

// Level is a tile map stored as YAML. Tiles is a flat row-major array of
// length Width*Height.
type Level struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	TileSize int    `yaml:"tile_size"`
	Tiles    []int  `yaml:"tiles"`
	SpawnX   int    `yaml:"spawn_x"`
	SpawnY   int    `yaml:"spawn_y"`
	Name     string `yaml:"name"`
}

// Surface is one run of contiguous solid tiles merged into a rectangle, or
// a single one-way platform tile.
type Surface struct {
	Rect   common.Rect
	OneWay bool
}

// LoadLevel loads a level from a YAML file at path.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("obj: load level %s: %w", path, err)
	}
	return ParseLevel(data)
}

// ParseLevel decodes and validates level YAML.
func ParseLevel(data []byte) (*Level, error) {
	var l Level
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("obj: unmarshal level: %w", err)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return nil, fmt.Errorf("obj: level has invalid size %dx%d", l.Width, l.Height)
	}
	if len(l.Tiles) != l.Width*l.Height {
		return nil, fmt.Errorf("obj: level has %d tiles, want %d", len(l.Tiles), l.Width*l.Height)
	}
	if l.TileSize <= 0 {
		l.TileSize = 16
	}
	return &l, nil
}

// TileAt returns the tile value at tile coordinates, or TileEmpty out of
// bounds.
func (l *Level) TileAt(x, y int) int {
	if l == nil || x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return TileEmpty
	}
	return l.Tiles[y*l.Width+x]
}

// SpawnPosition returns the spawn point in world units.
func (l *Level) SpawnPosition() (float64, float64) {
	if l == nil {
		return 0, 0
	}
	return float64(l.SpawnX * l.TileSize), float64(l.SpawnY * l.TileSize)
}

// Surfaces merges contiguous solid tiles into larger rectangles so the cast
// world uses fewer static boxes instead of one box per tile. One-way tiles
// remain individual surfaces.
func (l *Level) Surfaces() []Surface {
	if l == nil || len(l.Tiles) != l.Width*l.Height {
		return nil
	}
	size := float64(l.TileSize)
	processed := make([]bool, l.Width*l.Height)
	var out []Surface
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			idx := y*l.Width + x
			if processed[idx] {
				continue
			}
			v := l.Tiles[idx]
			if v == TileEmpty {
				processed[idx] = true
				continue
			}

			x0 := float64(x) * size
			y0 := float64(y) * size

			if v == TileOneWay {
				out = append(out, Surface{
					Rect:   common.Rect{X: x0, Y: y0, Width: size, Height: size},
					OneWay: true,
				})
				processed[idx] = true
				continue
			}

			// greedily expand a rectangle over contiguous solid tiles,
			// width first then height
			w := 1
			for x+w < l.Width {
				idx2 := y*l.Width + (x + w)
				if processed[idx2] || l.Tiles[idx2] != TileSolid {
					break
				}
				w++
			}

			h := 1
		heightLoop:
			for y+h < l.Height {
				for xi := x; xi < x+w; xi++ {
					idx2 := (y+h)*l.Width + xi
					if processed[idx2] || l.Tiles[idx2] != TileSolid {
						break heightLoop
					}
				}
				h++
			}

			out = append(out, Surface{
				Rect: common.Rect{X: x0, Y: y0, Width: float64(w) * size, Height: float64(h) * size},
			})

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*l.Width+xx] = true
				}
			}
		}
	}
	return out
}
