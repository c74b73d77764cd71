package flame

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abworrall/xirho-hdr/pkg/emath"
)

func TestNewConfigDefaults(t *testing.T) {
	c := NewConfig()
	require.NoError(t, c.Validate())
	require.Equal(t, DefaultToneMap(), c.ToneMap())

	md, err := c.Metadata()
	require.NoError(t, err)
	require.Equal(t, DefaultMetadata(), md)
	require.Equal(t, "aces", c.Curve)
}

func TestConfigFromYaml(t *testing.T) {
	c, err := newConfigFromYaml([]byte(`
brightness: 2.5
gamma: 2.2
gammamin: 0.05
osa: 2
iters: 400000000
curve: linear
srgb: true
`))
	require.NoError(t, err)
	require.Equal(t, ToneMap{Brightness: 2.5, Gamma: 2.2, GammaMin: 0.05}, c.ToneMap())
	require.Equal(t, 2, c.OSA)
	require.Equal(t, int64(400000000), c.Iters)
	require.Equal(t, 1.0, c.ProjArea)
	require.Equal(t, 4, c.Workers)
	require.Equal(t, RenderOptions{Workers: 4, SRGB: true}, c.RenderOptions())

	// Round trips through AsYaml.
	again, err := newConfigFromYaml([]byte(c.AsYaml()))
	require.NoError(t, err)
	require.Equal(t, c, again)
}

func TestConfigCamera(t *testing.T) {
	c, err := newConfigFromYaml([]byte(`camera: [2, 0, 5, 0, 1.5, -1]`))
	require.NoError(t, err)
	md, err := c.Metadata()
	require.NoError(t, err)
	require.InDelta(t, 3.0, md.ProjArea, 1e-12)

	_, err = newConfigFromYaml([]byte(`camera: [1, 2, 3]`))
	require.Error(t, err)

	_, err = newConfigFromYaml([]byte(`camera: [1, 0, 0, 1, 0, 0]`))
	require.ErrorIs(t, err, emath.ErrDomain)
}

func TestConfigComposedCamera(t *testing.T) {
	c, err := newConfigFromYaml([]byte("zoom: 2\nrotate: 90\ncenter: [1, 0]\n"))
	require.NoError(t, err)

	cam, err := c.GetCamera()
	require.NoError(t, err)
	want := [6]float64{0, -2, 0, 2, 0, -2}
	for i := range want {
		require.InDelta(t, want[i], cam[i], 1e-12, "cam[%d]", i)
	}

	md, err := c.Metadata()
	require.NoError(t, err)
	require.InDelta(t, 4.0, md.ProjArea, 1e-12)

	again, err := newConfigFromYaml([]byte(c.AsYaml()))
	require.NoError(t, err)
	require.Equal(t, c, again)

	for _, doc := range []string{
		"zoom: 2\ncamera: [1, 0, 0, 0, 1, 0]\n",
		"zoom: 2\ncenter: [1]\n",
		"rotate: 45\n",
	} {
		_, err := newConfigFromYaml([]byte(doc))
		require.Error(t, err, doc)
	}
}

func TestConfigInvalid(t *testing.T) {
	for _, doc := range []string{
		"gamma: 0",
		"brightness: -1",
		"gammamin: 2",
		"osa: 0",
		"iters: 0",
		"projarea: 0",
	} {
		_, err := newConfigFromYaml([]byte(doc))
		require.ErrorIs(t, err, emath.ErrDomain, doc)
	}

	_, err := newConfigFromYaml([]byte("curve: reinhard"))
	require.Error(t, err)

	_, err = newConfigFromYaml([]byte("gamma_min: 0.5"))
	require.Error(t, err, "unknown keys are rejected")
}

func TestLoadConfig(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "histmap.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("brightness: 4\nworkers: 2\n"), 0o644))

	c, err := LoadConfig(fn)
	require.NoError(t, err)
	require.Equal(t, 4.0, c.Brightness)
	require.Equal(t, 2, c.Workers)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	v, err := c.NewView(testHist(t))
	require.NoError(t, err)
	require.Equal(t, 4.0, v.ToneMap().Brightness)
}
