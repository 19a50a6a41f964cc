package dataset

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

const header = "title_length,description_length,edge_intensity,color_histogram,spectral_entropy,audio_intensity,virality"

func table(rows ...string) string {
	out := header
	for _, r := range rows {
		out += "\n" + r
	}
	return out
}

func TestParse(t *testing.T) {

	ds, err := Parse(table(
		"10,100,0.5,0.5,0.5,0.5,1",
		"50,500,0.1,0.9,0.2,0.8,0",
		"30,300,0.3,0.3,0.3,0.3,1",
	), "virality")
	assert.NoError(t, err)

	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, []float64{10, 100, 0.5, 0.5, 0.5, 0.5}, ds.X()[0])
	assert.Equal(t, []float64{1, 0, 1}, ds.Y())
}

func TestParse_ColumnOrderIndependent(t *testing.T) {

	text := "virality,audio_intensity,spectral_entropy,color_histogram,edge_intensity,description_length,title_length\n" +
		"1,0.5,0.4,0.3,0.2,100,10"

	ds, err := Parse(text, "virality")
	assert.NoError(t, err)

	assert.Equal(t, []float64{10, 100, 0.2, 0.3, 0.4, 0.5}, ds.X()[0])
	assert.Equal(t, []float64{1}, ds.Y())
}

func TestParse_MissingColumn(t *testing.T) {

	text := "title_length,description_length,edge_intensity,color_histogram,spectral_entropy,virality\n" +
		"10,100,0.5,0.5,0.5,1"

	_, err := Parse(text, "virality")
	assert.ErrorIs(t, err, SchemaErr)
	assert.Contains(t, err.Error(), "audio_intensity")
}

func TestParse_DropsBadRows(t *testing.T) {

	ds, err := Parse(table(
		"10,100,0.5,0.5,0.5,0.5,1",
		"not,a,number,0.5,0.5,0.5,1",
		"1,2,3",
		"30,300,0.3,0.3,0.3,0.3,0",
	), "virality")
	assert.NoError(t, err)

	assert.Equal(t, 2, ds.Len())
}

func TestParse_Empty(t *testing.T) {

	_, err := Parse(table("not,a,number,at,all,x,y"), "virality")
	assert.ErrorIs(t, err, EmptyErr)

	_, err = Parse("", "virality")
	assert.Error(t, err)
}

func TestSplit_Deterministic(t *testing.T) {

	rows := make([]string, 0)
	for i := 0; i < 10; i++ {
		rows = append(rows, fmt.Sprintf("%d,%d,0.1,0.2,0.3,0.4,%d", i, i*10, i%2))
	}

	ds, err := Parse(table(rows...), "virality")
	assert.NoError(t, err)

	trainA, valA := ds.Split(0.8, 42)
	trainB, valB := ds.Split(0.8, 42)

	assert.Equal(t, 8, trainA.Len())
	assert.Equal(t, 2, valA.Len())
	assert.Equal(t, trainA.X(), trainB.X())
	assert.Equal(t, valA.Y(), valB.Y())
}
