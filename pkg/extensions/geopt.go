package extensions

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/gentry/pkg/types"
)

// GeoPtType tags GeoPt elements.
const GeoPtType types.ElementType = "gd.geoPt"

// GeoPt is a geographic point in WGS84 degrees, with optional elevation in
// meters and the time it was recorded.
type GeoPt struct {
	Lat   float64    `xml:"lat,attr" json:"lat"`
	Lon   float64    `xml:"lon,attr" json:"lon"`
	Elev  float64    `xml:"elev,attr,omitempty" json:"elev,omitempty"`
	Label string     `xml:"label,attr,omitempty" json:"label,omitempty"`
	Time  *time.Time `xml:"time,attr,omitempty" json:"time,omitempty"`
}

func (*GeoPt) ElementType() types.ElementType { return GeoPtType }

// GeoPtDescriptor returns the default declaration of gd:geoPt.
func GeoPtDescriptor() types.Descriptor {
	return types.Descriptor{
		Type:        GeoPtType,
		Namespace:   types.NamespaceG,
		LocalName:   "geoPt",
		Cardinality: types.Repeating,
		New:         func() types.Element { return &GeoPt{} },
	}
}

// ParseGeoPt parses "lat,lon" or "lat,lon,elev".
func ParseGeoPt(s string) (*GeoPt, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return nil, fmt.Errorf("geo point %q: want lat,lon[,elev]", s)
	}
	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("geo point %q: %w", s, err)
		}
		vals[i] = v
	}
	pt := &GeoPt{Lat: vals[0], Lon: vals[1]}
	if len(vals) == 3 {
		pt.Elev = vals[2]
	}
	if err := pt.Validate(); err != nil {
		return nil, err
	}
	return pt, nil
}

// Validate checks that latitude and longitude are in range and that no
// coordinate is NaN.
func (g *GeoPt) Validate() error {
	if math.IsNaN(g.Lat) || math.IsNaN(g.Lon) || math.IsNaN(g.Elev) {
		return fmt.Errorf("geo point (%v, %v, %v) has a NaN coordinate", g.Lat, g.Lon, g.Elev)
	}
	if g.Lat < -90 || g.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", g.Lat)
	}
	if g.Lon < -180 || g.Lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", g.Lon)
	}
	return nil
}
