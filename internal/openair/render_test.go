package openair

import (
	"strings"
	"testing"

	"github.com/brunoga/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/asselect/internal/settings"
	"github.com/sells-group/asselect/internal/yaixm"
)

func testDataset() *yaixm.Dataset {
	ctr := vol("bigtown-1", "SFC", "3500 ft")
	ctr.Seqno = intp(3)

	return &yaixm.Dataset{
		Airspace: []yaixm.Feature{
			{ID: "bigtown", Name: "BIGTOWN", Type: yaixm.IcaoCTR, Class: "D", Geometry: []yaixm.Volume{ctr}},
			feature("HILLTOP", yaixm.IcaoOther, yaixm.LocalGlider, yaixm.Volume{
				Lower: "SFC", Upper: "2000 ft",
				Boundary: yaixm.Boundary{yaixm.Circle{Radius: "2 nm", Centre: "520000N 0010000W"}},
			}),
		},
		RAT: []yaixm.Feature{
			feature("AIRSHOW", yaixm.IcaoOther, yaixm.LocalRAT, vol("", "SFC", "FL60")),
		},
		LOA: []yaixm.LOA{{
			Name: "BIGTOWN LOA",
			Areas: []yaixm.Area{{
				Replace: []yaixm.Replace{{
					ID:       "bigtown-1",
					Geometry: []yaixm.Volume{vol("bigtown-1a", "SFC", "FL45"), vol("bigtown-1b", "FL45", "FL65")},
				}},
			}},
		}},
		Service: []yaixm.Service{
			{Callsign: "BIGTOWN RADAR", Frequency: 120.5, Controls: []string{"bigtown"}},
		},
		Obstacle: []yaixm.Obstacle{
			{ID: "UK0001", Name: "MAST", Position: "513000N 0013000W", Elevation: "1200 ft"},
		},
	}
}

const squareDP = "DP 51:00:00 N 001:00:00 W\n" +
	"DP 51:00:00 N 000:00:00 E\n" +
	"DP 50:00:00 N 000:00:00 E\n" +
	"DP 50:00:00 N 001:00:00 W\n" +
	"DP 51:00:00 N 001:00:00 W\n"

func TestRender_Default(t *testing.T) {
	got, err := Render(testDataset(), settings.Default())
	require.NoError(t, err)

	want := "*\n" +
		"AC D\n" +
		"AN BIGTOWN\n" +
		"AF 120.500\n" +
		"AL SFC\n" +
		"AH 3500ALT\n" +
		squareDP
	assert.Equal(t, want, got)
}

func TestRender_Deterministic(t *testing.T) {
	s := competition()
	s.LOA = []string{"BIGTOWN LOA"}
	s.RAT = []string{"AIRSHOW"}
	s.Airspace.Gliding = settings.Gliding
	s.Airspace.Obstacle = true
	s.Options.Radio = true

	ds := testDataset()
	first, err := Render(ds, s)
	require.NoError(t, err)
	second, err := Render(ds, s)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRender_DoesNotModifyDataset(t *testing.T) {
	s := settings.Default()
	s.LOA = []string{"BIGTOWN LOA"}
	s.RAT = []string{"AIRSHOW"}

	ds := testDataset()
	before := deep.MustCopy(ds)

	_, err := Render(ds, s)
	require.NoError(t, err)
	assert.Equal(t, before, ds)
}

func TestRender_LOAReplace(t *testing.T) {
	s := competition()
	s.LOA = []string{"BIGTOWN LOA"}

	out, err := Convert(testDataset(), s)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Volumes)
	assert.Contains(t, out.Text, "AN BIGTOWN-3\nAF 120.500\nAL SFC\nAH FL45\n")
	assert.Contains(t, out.Text, "AN BIGTOWN-3\nAF 120.500\nAL FL45\nAH FL65\n")
	assert.NotContains(t, out.Text, "3500ALT")
}

func TestRender_HomeSite(t *testing.T) {
	s := settings.Default()
	require.True(t, s.Airspace.Gliding.IsExcluded())

	got, err := Render(testDataset(), s)
	require.NoError(t, err)
	assert.NotContains(t, got, "HILLTOP")

	s.Airspace.Home = "HILLTOP"
	got, err = Render(testDataset(), s)
	require.NoError(t, err)
	assert.Contains(t, got, "*\nAC OTHER\nAN HILLTOP\nAL SFC\nAH 2000ALT\nV X=52:00:00 N 001:00:00 W\nDC 2\n")
}

func TestRender_GlidingSiteExcluded(t *testing.T) {
	ds := &yaixm.Dataset{Airspace: []yaixm.Feature{
		feature("HILLTOP", yaixm.IcaoOther, yaixm.LocalGlider, vol("", "SFC", "FL65")),
	}}

	got, err := Render(ds, settings.Default())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRender_RAT(t *testing.T) {
	s := settings.Default()

	got, err := Render(testDataset(), s)
	require.NoError(t, err)
	assert.NotContains(t, got, "AIRSHOW")

	s.RAT = []string{"AIRSHOW"}
	got, err = Render(testDataset(), s)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(got, "*\nAC P\nAN AIRSHOW\nAL SFC\nAH FL60\n"+squareDP))
}

func TestRender_RATOnly(t *testing.T) {
	s := settings.Default()
	s.Options.Format = settings.FormatRATOnly
	s.RAT = []string{"AIRSHOW"}
	s.Airspace.Obstacle = true

	out, err := Convert(testDataset(), s)
	require.NoError(t, err)
	assert.Equal(t, "*\nAC P\nAN AIRSHOW\nAL SFC\nAH FL60\n"+squareDP, out.Text)
	assert.Equal(t, 1, out.Volumes)
	assert.Zero(t, out.Obstacles)
}

func TestRender_Obstacles(t *testing.T) {
	s := settings.Default()
	got, err := Render(testDataset(), s)
	require.NoError(t, err)
	assert.NotContains(t, got, "MAST")

	s.Airspace.Obstacle = true
	out, err := Convert(testDataset(), s)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Obstacles)
	assert.True(t, strings.HasSuffix(out.Text,
		"*\nAC OTHER\nAN MAST\nAL SFC\nAH 1200ALT\nV X=51:30:00 N 001:30:00 W\nDC 0.5\n"))
}

func TestRender_Counts(t *testing.T) {
	out, err := Convert(testDataset(), settings.Default())
	require.NoError(t, err)
	assert.Equal(t, 1, out.Volumes)
	assert.Equal(t, 1, out.Excluded)
	assert.Zero(t, out.Obstacles)
}

func TestRender_Errors(t *testing.T) {
	badLevel := testDataset()
	badLevel.Airspace[0].Geometry[0].Lower = "FLxx"

	badPoint := testDataset()
	badPoint.Airspace[0].Geometry[0].Boundary = yaixm.Boundary{yaixm.Line{"510000N 001W"}}

	badSettings := settings.Default()
	badSettings.Options.Format = "kml"

	tests := []struct {
		name string
		ds   *yaixm.Dataset
		s    settings.Settings
	}{
		{name: "nil dataset", s: settings.Default()},
		{name: "bad level", ds: badLevel, s: settings.Default()},
		{name: "bad point", ds: badPoint, s: settings.Default()},
		{name: "bad settings", ds: testDataset(), s: badSettings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.ds, tt.s)
			require.Error(t, err)
			assert.Empty(t, got)
		})
	}
}
