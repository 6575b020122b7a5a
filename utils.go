package citygrow

import (
	"bytes"
	"image"
	"image/png"
	"os"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// lotPosition returns the world position of a lot centre, sitting on the
// ground
func lotPosition(centre model2d.Coord, terrain Terrain) model3d.Coord3D {
	return model3d.XYZ(centre.X, terrain.Height(centre.X, centre.Y), centre.Y)
}

// samples2d drops elevation from spline samples
func samples2d(in []model3d.Coord3D) []model2d.Coord {
	out := make([]model2d.Coord, len(in))
	for i, p := range in {
		out[i] = model2d.XY(p.X, p.Z)
	}
	return out
}

// savePNG to disk
func savePNG(fpath string, in image.Image) error {
	buff := new(bytes.Buffer)
	err := png.Encode(buff, in)
	if err != nil {
		return errors.Wrap(err, "encoding png")
	}
	return errors.Wrapf(os.WriteFile(fpath, buff.Bytes(), 0644), "writing %s", fpath)
}
