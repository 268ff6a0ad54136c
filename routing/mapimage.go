package routing

import (
	"fmt"
	"image"
	"image/color"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"

	_ "github.com/jbuchbinder/gopnm"
	"gopkg.in/yaml.v2"
)

const (
	Occupied int8 = 100
	Unknown  int8 = -1
)

type Point struct {
	X float64
	Y float64
}

// MapConfig is the ROS map_server yaml
type MapConfig struct {
	Image          string    `yaml:"image"`
	Resolution     float64   `yaml:"resolution"`
	Origin         []float64 `yaml:"origin"`
	Negate         int       `yaml:"negate"`
	OccupiedThresh float64   `yaml:"occupied_thresh"`
	FreeThresh     float64   `yaml:"free_thresh"`
}

// MapMeta is a decoded occupancy image. Data is row major from the top image row,
// each value 0 (free), 100 (occupied) or -1 (unknown).
type MapMeta struct {
	W      int
	H      int
	Origin Point
	Reso   float64
	Data   []int8
}

func ReadImageYaml(yamlFile string) (*MapConfig, error) {
	buf, err := ioutil.ReadFile(yamlFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	c := &MapConfig{OccupiedThresh: 0.65, FreeThresh: 0.196}
	if err := yaml.Unmarshal(buf, c); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedInput, yamlFile, err)
	}
	if c.Image == "" {
		return nil, fmt.Errorf("%w: %s: no image", ErrMalformedInput, yamlFile)
	}
	if c.Resolution <= 0 {
		return nil, fmt.Errorf("%w: %s: resolution must be positive", ErrMalformedInput, yamlFile)
	}
	if len(c.Origin) < 2 {
		return nil, fmt.Errorf("%w: %s: origin needs x and y", ErrMalformedInput, yamlFile)
	}
	return c, nil
}

// ReadMapImage reads a ROS format map: the yaml and the pgm image it points at.
func ReadMapImage(yamlFile string) (*MapMeta, error) {
	conf, err := ReadImageYaml(yamlFile)
	if err != nil {
		return nil, err
	}
	mapFile := conf.Image
	if !filepath.IsAbs(mapFile) {
		mapFile = filepath.Join(filepath.Dir(yamlFile), mapFile)
	}

	file, err := os.Open(mapFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	defer file.Close()

	imageData, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedInput, mapFile, err)
	}
	return decodeOccupancy(imageData, conf), nil
}

func decodeOccupancy(img image.Image, conf *MapConfig) *MapMeta {
	bound := img.Bounds()
	m := new(MapMeta)
	m.W = bound.Dx()
	m.H = bound.Dy()
	m.Reso = conf.Resolution
	m.Origin = Point{X: conf.Origin[0], Y: conf.Origin[1]}
	m.Data = make([]int8, m.W*m.H)

	for j := 0; j < m.H; j++ {
		for i := 0; i < m.W; i++ {
			pixel := color.GrayModel.Convert(img.At(bound.Min.X+i, bound.Min.Y+j)).(color.Gray).Y
			// dark pixels are occupied unless negated
			p := float64(255-pixel) / 255.0
			if conf.Negate != 0 {
				p = float64(pixel) / 255.0
			}
			var v int8
			switch {
			case p > conf.OccupiedThresh:
				v = Occupied
			case p < conf.FreeThresh:
				v = 0
			default:
				v = Unknown
			}
			m.Data[i+j*m.W] = v
		}
	}
	return m
}

// Grid converts occupancy into cells. Unknown cells are blocked.
func (m *MapMeta) Grid() (*Grid, error) {
	if m.W == 0 || m.H == 0 {
		return nil, fmt.Errorf("%w: empty map image", ErrMalformedInput)
	}
	rows := make([][]Cell, m.H)
	for j := 0; j < m.H; j++ {
		rows[j] = make([]Cell, m.W)
		for i := 0; i < m.W; i++ {
			if m.Data[i+j*m.W] != 0 {
				rows[j][i] = Blocked
			}
		}
	}
	return NewGridFromRows(rows)
}

// Pos2Ind converts a world position to a cell. The map origin is the bottom left pixel.
func (m *MapMeta) Pos2Ind(x, y float64) (Coord, bool) {
	col := int(math.Floor((x - m.Origin.X) / m.Reso))
	fromBottom := int(math.Floor((y - m.Origin.Y) / m.Reso))
	c := Coord{Row: m.H - 1 - fromBottom, Col: col}
	if c.Row < 0 || c.Row >= m.H || c.Col < 0 || c.Col >= m.W {
		return c, false
	}
	return c, true
}

// Ind2Pos returns the world position of the cell centre.
func (m *MapMeta) Ind2Pos(c Coord) (float64, float64) {
	x := m.Origin.X + (float64(c.Col)+0.5)*m.Reso
	y := m.Origin.Y + (float64(m.H-1-c.Row)+0.5)*m.Reso
	return x, y
}

// Route2Pos converts a path into world positions.
func (m *MapMeta) Route2Pos(p Path) [][2]float64 {
	route := make([][2]float64, 0, len(p))
	for _, c := range p {
		x, y := m.Ind2Pos(c)
		route = append(route, [2]float64{x, y})
	}
	return route
}
