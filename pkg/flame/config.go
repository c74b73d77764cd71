package flame

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/abworrall/xirho-hdr/pkg/emath"
	"github.com/abworrall/xirho-hdr/pkg/hist"
)

/* Example config file ...

brightness: 2.5
gamma: 2.2
gammamin: 0.05
osa: 2
iters: 400000000
camera: [1.5, 0, 0, 0, 1.5, 0]
# or, instead of camera:
# zoom: 1.5
# rotate: 30
# center: [0.2, -0.1]
curve: aces
workers: 8
srgb: true

*/

type Config struct {
	Verbosity int

	// Tone mapping
	Brightness float64
	Gamma      float64
	GammaMin   float64
	Curve      string // one of emath.ListCurves()

	// What the renderer did
	OSA      int
	Iters    int64
	ProjArea float64
	Camera   []float64 `yaml:",omitempty"` // optional 2x3 camera affine; overrides ProjArea

	// Alternatively the camera can be composed; used when Zoom is set
	Zoom   float64   `yaml:",omitempty"`
	Rotate float64   `yaml:",omitempty"` // degrees
	Center []float64 `yaml:",omitempty"` // x, y

	// Output
	Workers int
	SRGB    bool
}

func NewConfig() Config {
	tm, md := DefaultToneMap(), DefaultMetadata()
	return Config{
		Brightness: tm.Brightness,
		Gamma:      tm.Gamma,
		GammaMin:   tm.GammaMin,
		Curve:      "aces",
		OSA:        md.OSA,
		Iters:      md.Iters,
		ProjArea:   md.ProjArea,
		Workers:    4,
	}
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	if err := yaml.UnmarshalStrict(b, &c); err != nil {
		return c, err
	}
	return c, c.Validate()
}

// LoadConfig reads a YAML config file; keys not in the file keep their
// defaults.
func LoadConfig(filename string) (Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %v", filename, err)
	}
	c, err := newConfigFromYaml(contents)
	if err != nil {
		return c, fmt.Errorf("config parse %s: %w", filename, err)
	}
	return c, nil
}

func (c Config) AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("# can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

func (c Config) Validate() error {
	if err := c.ToneMap().Validate(); err != nil {
		return err
	}
	md, err := c.Metadata()
	if err != nil {
		return err
	}
	if err := md.Validate(); err != nil {
		return err
	}
	if _, err := c.GetCurve(); err != nil {
		return err
	}
	return nil
}

func (c Config) ToneMap() ToneMap {
	return ToneMap{Brightness: c.Brightness, Gamma: c.Gamma, GammaMin: c.GammaMin}
}

// Metadata works out ProjArea from the camera, when one is given.
func (c Config) Metadata() (Metadata, error) {
	md := Metadata{OSA: c.OSA, Iters: c.Iters, ProjArea: c.ProjArea}
	if len(c.Camera) > 0 || c.Zoom != 0 {
		cam, err := c.GetCamera()
		if err != nil {
			return md, err
		}
		md.ProjArea = cam.ProjArea()
	}
	return md, nil
}

// GetCamera returns the explicit camera matrix if there is one, else the
// camera composed from zoom, rotate and center, else the identity.
func (c Config) GetCamera() (emath.Aff3, error) {
	if len(c.Camera) > 0 {
		if c.Zoom != 0 {
			return emath.Aff3{}, fmt.Errorf("camera and zoom are mutually exclusive")
		}
		if len(c.Camera) != 6 {
			return emath.Aff3{}, fmt.Errorf("camera wants 6 values, got %d", len(c.Camera))
		}
		var m emath.Aff3
		copy(m[:], c.Camera)
		return m, nil
	}
	if c.Zoom == 0 {
		if c.Rotate != 0 || len(c.Center) > 0 {
			return emath.Aff3{}, fmt.Errorf("rotate and center need a zoom")
		}
		return emath.Identity(), nil
	}

	var cx, cy float64
	switch len(c.Center) {
	case 0:
	case 2:
		cx, cy = c.Center[0], c.Center[1]
	default:
		return emath.Aff3{}, fmt.Errorf("center wants 2 values, got %d", len(c.Center))
	}
	return emath.Identity().Scale(c.Zoom, c.Zoom).Rotate(c.Rotate).Translate(-cx, -cy), nil
}

func (c Config) GetCurve() (emath.Curve, error) {
	return emath.CurveByName(c.Curve)
}

// NewView builds a view over h with this configuration.
func (c Config) NewView(h *hist.Histogram) (*View, error) {
	curve, err := c.GetCurve()
	if err != nil {
		return nil, err
	}
	md, err := c.Metadata()
	if err != nil {
		return nil, err
	}
	return NewViewCurve(h, md, c.ToneMap(), curve)
}

func (c Config) RenderOptions() RenderOptions {
	return RenderOptions{Workers: c.Workers, SRGB: c.SRGB}
}
