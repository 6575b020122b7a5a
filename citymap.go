package citygrow

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/boljen/go-bitmap"
	"github.com/fogleman/gg"
	"github.com/unixpickle/model3d/model2d"
	"golang.org/x/image/colornames"

	"github.com/voidshard/citygrow/internal/encoding"
	"github.com/voidshard/citygrow/internal/line"
)

// maxRasterID is the largest lot / building id a CityMap can hold
const maxRasterID = math.MaxUint16

const (
	// bit numbers for our bitmap
	bitRoad       = 0
	bitCentreline = 1
	bitJunction   = 2
	bitLot        = 3
	bitWater      = 4
)

// CityMap is a graphical representation of a Settlement, mostly for
// debugging. Pixel (0,0) is the world corner (-MapSize/2, -MapSize/2).
type CityMap interface {
	// Save as custom file in a format defined by the library
	Save(fpath string) error

	// SaveAdv saves as an image with the given color scheme
	SaveAdv(fpath string, scheme *ColourScheme) error

	// CustomImage returns an image with the given color scheme
	CustomImage(scheme *ColourScheme) (image.Image, error)

	// Pixel returns the pixel holding world (x, z)
	Pixel(x, z float64) image.Point

	IsRoad(x, y int) bool
	IsCentreline(x, y int) bool
	IsJunction(x, y int) bool
	IsLot(x, y int) bool
	IsWater(x, y int) bool

	// LotID & BuildingID return 0 where there is no lot. Each is stored in 16
	// bits, ids above maxRasterID read back as maxRasterID.
	LotID(x, y int) (int, error)
	BuildingID(x, y int) (int, error)

	// Resource returns the resource (if any) & it's richness at x,y
	Resource(x, y int) (Resource, float64, error)
}

// imageMap is a particular implementation of CityMap using a RGBA64
type imageMap struct {
	// Map is an RGBA64 image where each pixel of 64 bits is split via
	//
	// R [16 bits]
	//   16-1: [16 bits] -> lot id
	// G [16 bits]
	//   16-1: [16 bits] -> building id
	// B [16 bits]
	//   16-9 [8 bits] -> resource id
	//    8-1 [8 bits] -> resource richness (0-255)
	// A [16 bits]
	//   16-9 [8 bits] -> unused
	//    8-1 [8 bits] -> bitmap (true if set, false if not)
	//       bit 0 -> isRoad
	//       bit 1 -> isCentreline
	//       bit 2 -> isJunction
	//       bit 3 -> isLot
	//       bit 4 -> isWater
	//       bit 5-7 -> unused
	//
	im *image.RGBA64

	// temporary map for the road network. We draw thick curved roads with a
	// drawing lib & transfer the result into our main image in endDraw()
	ctx *gg.Context

	// world units -> pixels
	scale  float64
	origin float64

	// category of each building by id
	categories map[int]Category
}

// ColourScheme defines how various features should be coloured.
type ColourScheme struct {
	Ground      color.Color
	Water       color.Color
	Roads       color.Color
	Centrelines color.Color
	Junctions   color.Color
	Lots        color.Color
	Buildings   map[Category]color.Color
	Resources   map[Resource]color.Color
}

// DefaultScheme returns a reasonable default ColourScheme.
func DefaultScheme() *ColourScheme {
	return &ColourScheme{
		Ground:      colornames.Darkolivegreen,
		Water:       colornames.Steelblue,
		Roads:       colornames.Burlywood,
		Centrelines: colornames.Saddlebrown,
		Junctions:   colornames.Crimson,
		Lots:        colornames.Lightgray,
		Buildings: map[Category]color.Color{
			Producer:    colornames.Firebrick,
			Residential: colornames.Royalblue,
		},
		Resources: map[Resource]color.Color{
			Timber:      colornames.Forestgreen,
			FertileLand: colornames.Yellowgreen,
			Coal:        colornames.Dimgray,
			Clay:        colornames.Sienna,
			Stone:       colornames.Silver,
		},
	}
}

// Map renders the settlement into a CityMap with the given number of pixels
// per world unit.
func (s *Settlement) Map(pixelsPerUnit float64) (CityMap, error) {
	if pixelsPerUnit <= 0 {
		return nil, fmt.Errorf("pixels per unit must be positive, got %f", pixelsPerUnit)
	}
	size := int(math.Ceil(s.cfg.MapSize * pixelsPerUnit))
	if size < 1 {
		return nil, fmt.Errorf("map of %f units is too small to draw", s.cfg.MapSize)
	}

	c := newMap(image.Rect(0, 0, size, size), pixelsPerUnit, s.cfg.MapSize/2)

	c.setGround(s.terrain, s.resources, s.cfg.WaterLevel)

	net := s.graph
	for _, sid := range net.SegmentIDs() {
		seg, _ := net.Segment(sid)
		samples, ok := net.Samples(sid, s.cfg.ClearanceDensity)
		if !ok {
			continue
		}
		c.drawRoad(samples2d(samples), seg.Width)
	}
	c.endDraw()

	for _, sid := range net.SegmentIDs() {
		samples, ok := net.Samples(sid, s.cfg.ClearanceDensity)
		if !ok {
			continue
		}
		c.setCentreline(samples2d(samples))
	}
	// any node joining two or more segments is filled, as wide as the
	// widest road meeting there
	for _, nid := range net.NodeIDs() {
		n, _ := net.Node(nid)
		if len(n.Segments) < 2 {
			continue
		}
		radius := 0.0
		for _, sid := range n.Segments {
			if seg, ok := net.Segment(sid); ok {
				radius = math.Max(radius, seg.Width/2)
			}
		}
		c.setJunction(model2d.XY(n.Position.X, n.Position.Z), radius)
	}

	for _, b := range s.buildings {
		c.categories[b.ID] = b.Category
	}
	for _, l := range s.lots {
		c.setLot(l)
	}

	return c, nil
}

// Save the CityMap as is to disk
func (c *imageMap) Save(fpath string) error {
	return savePNG(fpath, c.im)
}

// CustomImage returns the CityMap coloured with the given Scheme
func (c *imageMap) CustomImage(scheme *ColourScheme) (image.Image, error) {
	bnds := c.im.Bounds()
	im := image.NewRGBA(bnds)

	for dy := bnds.Min.Y; dy < bnds.Max.Y; dy++ {
		for dx := bnds.Min.X; dx < bnds.Max.X; dx++ {
			bm := c.getBM(dx, dy)

			if bm.Get(bitJunction) {
				im.Set(dx, dy, scheme.Junctions)
				continue
			} else if bm.Get(bitCentreline) {
				im.Set(dx, dy, scheme.Centrelines)
				continue
			} else if bm.Get(bitRoad) {
				im.Set(dx, dy, scheme.Roads)
				continue
			}

			if bm.Get(bitLot) {
				bid, err := c.BuildingID(dx, dy)
				if err != nil {
					return nil, err
				}
				col, ok := scheme.Buildings[c.categories[bid]]
				if !ok {
					col = scheme.Lots
				}
				im.Set(dx, dy, col)
				continue
			}

			if bm.Get(bitWater) {
				im.Set(dx, dy, scheme.Water)
				continue
			}

			res, _, err := c.Resource(dx, dy)
			if err != nil {
				return nil, err
			}
			col, ok := scheme.Resources[res]
			if !ok {
				col = scheme.Ground
			}
			im.Set(dx, dy, col)
		}
	}

	return im, nil
}

// SaveAdv essentially saves the CityMap using the given scheme to disk.
// Essentially sugar around "CustomImage()" followed by writing out a PNG.
func (c *imageMap) SaveAdv(fpath string, scheme *ColourScheme) error {
	im, err := c.CustomImage(scheme)
	if err != nil {
		return err
	}
	ctx := gg.NewContextForRGBA(im.(*image.RGBA))
	return ctx.SavePNG(fpath)
}

// Pixel returns the pixel holding world (x, z)
func (c *imageMap) Pixel(x, z float64) image.Point {
	return image.Pt(int(math.Floor((x+c.origin)*c.scale)), int(math.Floor((z+c.origin)*c.scale)))
}

// world returns the world (x, z) at the centre of pixel x,y
func (c *imageMap) world(x, y int) (float64, float64) {
	return (float64(x)+0.5)/c.scale - c.origin, (float64(y)+0.5)/c.scale - c.origin
}

// LotID returns the lot id at x,y, 0 indicates no lot.
func (c *imageMap) LotID(x, y int) (int, error) {
	if c.isOutOfBounds(x, y) {
		return -1, fmt.Errorf("(%d,%d) is out of bounds", x, y)
	}
	return int(c.im.RGBA64At(x, y).R), nil
}

// BuildingID returns the building id at x,y, 0 indicates no building.
func (c *imageMap) BuildingID(x, y int) (int, error) {
	if c.isOutOfBounds(x, y) {
		return -1, fmt.Errorf("(%d,%d) is out of bounds", x, y)
	}
	return int(c.im.RGBA64At(x, y).G), nil
}

// Resource returns the resource & richness at x,y
func (c *imageMap) Resource(x, y int) (Resource, float64, error) {
	if c.isOutOfBounds(x, y) {
		return "", 0, fmt.Errorf("(%d,%d) is out of bounds", x, y)
	}
	id, rich := encoding.Split16(c.im.RGBA64At(x, y).B)
	res, ok := resourceForID(int(id))
	if !ok {
		return "", 0, nil
	}
	return res, encoding.Unquantize8(rich), nil
}

// setResource sets the resource & richness at x,y
func (c *imageMap) setResource(x, y int, r Resource, richness float64) {
	v := c.im.RGBA64At(x, y)
	v.B = encoding.Merge8(uint8(r.ID()), encoding.Quantize8(richness))
	c.im.SetRGBA64(x, y, v)
}

// setLotID sets the given lot & building at x,y. Ids are clamped to
// maxRasterID.
func (c *imageMap) setLotID(x, y, lot, building int) {
	v := c.im.RGBA64At(x, y)
	v.R = clampID(lot)
	v.G = clampID(building)
	c.im.SetRGBA64(x, y, v)
}

// setFlag sets a single bit of the bitmap at x,y
func (c *imageMap) setFlag(x, y, bit int) {
	if c.isOutOfBounds(x, y) {
		return
	}
	bm := c.getBM(x, y)
	bm.Set(bit, true)
	c.setBM(x, y, bm)
}

// setBM sets the 8 bit bitmap at x,y
func (c *imageMap) setBM(x, y int, bm bitmap.Bitmap) {
	num := encoding.FromBytes8(bm.Data(true))

	current := c.im.RGBA64At(x, y)
	high, _ := encoding.Split16(current.A)
	current.A = encoding.Merge8(high, num)

	c.im.SetRGBA64(x, y, current)
}

// getBM gets the 8 bit bitmap at x,y
func (c *imageMap) getBM(x, y int) bitmap.Bitmap {
	current := c.im.RGBA64At(x, y)

	_, bmdata := encoding.Split16(current.A)
	data := encoding.ToBytes8(bmdata)
	return bitmap.Bitmap(data)
}

// flag returns if the given bit is set at x,y
func (c *imageMap) flag(x, y, bit int) bool {
	if c.isOutOfBounds(x, y) {
		return false
	}
	return c.getBM(x, y).Get(bit)
}

// IsRoad returns if there is road surface at x,y
func (c *imageMap) IsRoad(x, y int) bool {
	return c.flag(x, y, bitRoad)
}

// IsCentreline returns if a road centreline passes through x,y
func (c *imageMap) IsCentreline(x, y int) bool {
	return c.flag(x, y, bitCentreline)
}

// IsJunction returns if x,y is at a node joining 3 or more roads
func (c *imageMap) IsJunction(x, y int) bool {
	return c.flag(x, y, bitJunction)
}

// IsLot returns if x,y is part of a lot
func (c *imageMap) IsLot(x, y int) bool {
	return c.flag(x, y, bitLot)
}

// IsWater returns if the ground at x,y is under water
func (c *imageMap) IsWater(x, y int) bool {
	return c.flag(x, y, bitWater)
}

// isOutOfBounds determines if x,y is outside of the image area
func (c *imageMap) isOutOfBounds(x, y int) bool {
	return !image.Pt(x, y).In(c.im.Bounds())
}

// setGround marks water & resources for every pixel
func (c *imageMap) setGround(terrain Terrain, resources Resources, waterLevel float64) {
	bnds := c.im.Bounds()
	for dy := bnds.Min.Y; dy < bnds.Max.Y; dy++ {
		for dx := bnds.Min.X; dx < bnds.Max.X; dx++ {
			wx, wz := c.world(dx, dy)
			if terrain.Height(wx, wz) < waterLevel {
				c.setFlag(dx, dy, bitWater)
			}
			if cell, ok := resources.ResourceAt(wx, wz); ok {
				c.setResource(dx, dy, cell.Resource, cell.Richness)
			}
		}
	}
}

// setLot marks every pixel whose centre falls inside the lot
func (c *imageMap) setLot(l *Lot) {
	r := l.Rect()
	b := r.Bounds()
	lo := c.Pixel(b.X.Lo, b.Y.Lo)
	hi := c.Pixel(b.X.Hi, b.Y.Hi)

	for dy := lo.Y; dy <= hi.Y; dy++ {
		for dx := lo.X; dx <= hi.X; dx++ {
			if c.isOutOfBounds(dx, dy) {
				continue
			}
			wx, wz := c.world(dx, dy)
			if !r.Contains(model2d.XY(wx, wz)) {
				continue
			}
			c.setLotID(dx, dy, l.ID, l.Building)
			c.setFlag(dx, dy, bitLot)
		}
	}
}

// setCentreline traces the road path pixel by pixel
func (c *imageMap) setCentreline(path []model2d.Coord) {
	pix := make([]image.Point, len(path))
	for i, p := range path {
		pix[i] = c.Pixel(p.X, p.Y)
	}
	for _, p := range line.Polyline(pix) {
		c.setFlag(p.X, p.Y, bitCentreline)
	}
}

// setJunction marks a disc of the given world radius around at
func (c *imageMap) setJunction(at model2d.Coord, radius float64) {
	centre := c.Pixel(at.X, at.Y)
	r := int(math.Ceil(radius * c.scale))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			c.setFlag(centre.X+dx, centre.Y+dy, bitJunction)
		}
	}
}

// drawRoad (polyline) on to our scratch image
func (c *imageMap) drawRoad(path []model2d.Coord, width float64) {
	if len(path) < 2 {
		return
	}
	c.ctx.SetColor(color.RGBA{255, 0, 0, 255})
	c.ctx.SetLineCapRound()
	c.ctx.SetLineJoinRound()
	c.ctx.SetLineWidth(math.Max(1, width*c.scale))
	for i, p := range path {
		x, y := (p.X+c.origin)*c.scale, (p.Y+c.origin)*c.scale
		if i == 0 {
			c.ctx.MoveTo(x, y)
		} else {
			c.ctx.LineTo(x, y)
		}
	}
	c.ctx.Stroke()
}

// endDraw copies road pixels from our scratch image to our proper map.
func (c *imageMap) endDraw() {
	temp := c.ctx.Image()
	bnds := temp.Bounds()

	for dy := bnds.Min.Y; dy < bnds.Max.Y; dy++ {
		for dx := bnds.Min.X; dx < bnds.Max.X; dx++ {
			r, _, _, _ := temp.At(dx, dy).RGBA()
			if r>>8 < 128 {
				continue
			}
			c.setFlag(dx, dy, bitRoad)
		}
	}
}

// newMap returns a new map with the given bounds
func newMap(bounds image.Rectangle, scale, origin float64) *imageMap {
	ctx := gg.NewContextForRGBA(image.NewRGBA(bounds))
	ctx.SetRGBA(0, 0, 0, 0)
	ctx.Clear()

	return &imageMap{
		ctx:        ctx,
		im:         image.NewRGBA64(bounds),
		scale:      scale,
		origin:     origin,
		categories: map[int]Category{},
	}
}

// clampID fits an id into a 16 bit channel
func clampID(id int) uint16 {
	if id < 0 {
		return 0
	}
	if id > maxRasterID {
		return maxRasterID
	}
	return uint16(id)
}
