package predict

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"testing"

	"github.com/clipsense/virality/internal/dataset"
	"github.com/clipsense/virality/internal/model"
	"github.com/clipsense/virality/internal/nn"
	"github.com/clipsense/virality/internal/storage"
	jsonstore "github.com/clipsense/virality/internal/storage/file/json"
	"github.com/clipsense/virality/internal/train"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainedArtifact(t *testing.T, mode nn.Mode) *model.Artifact {
	rnd := rand.New(rand.NewSource(21))
	text := "title_length,description_length,edge_intensity,color_histogram,spectral_entropy,audio_intensity,virality"
	for i := 0; i < 40; i++ {
		edge := rnd.Float64()
		y := 0.0
		if edge > 0.5 {
			y = 1
		}
		if mode == nn.Regression {
			y = edge * 50000
		}
		text += fmt.Sprintf("\n%d,%d,%.4f,%.4f,%.4f,%.4f,%.1f",
			10+rnd.Intn(50), 100+rnd.Intn(500), edge, rnd.Float64(), rnd.Float64(), rnd.Float64(), y)
	}
	ds, err := dataset.Parse(text, "virality")
	require.NoError(t, err)

	artifact, _, err := train.New(train.Config{Mode: mode, Epochs: 30, Seed: 13}).Fit(context.Background(), ds)
	require.NoError(t, err)
	return artifact
}

func pngBytes(t *testing.T, seed int64) []byte {
	rnd := rand.New(rand.NewSource(seed))
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			img.Set(x, y, color.RGBA{R: uint8(rnd.Intn(256)), G: uint8(rnd.Intn(256)), B: uint8(rnd.Intn(256)), A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func wavBytes(samples []float64, rate int) []byte {
	data := new(bytes.Buffer)
	for _, s := range samples {
		binary.Write(data, binary.LittleEndian, int16(s*32767))
	}
	buf := new(bytes.Buffer)
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+data.Len()))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint32(rate))
	binary.Write(buf, binary.LittleEndian, uint32(rate*2))
	binary.Write(buf, binary.LittleEndian, uint16(2))
	binary.Write(buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(data.Len()))
	buf.Write(data.Bytes())
	return buf.Bytes()
}

func TestHandle_PredictNotLoaded(t *testing.T) {

	handle := NewHandle()

	_, err := handle.Predict([]byte("whatever"), "title", "description")
	assert.ErrorIs(t, err, NotLoadedErr)
}

func TestHandle_PredictClassification(t *testing.T) {

	handle := NewHandle()
	require.NoError(t, handle.Load(trainedArtifact(t, nn.Classification)))

	result, err := handle.Predict(pngBytes(t, 1), "catchy title", "a description of the clip")
	assert.NoError(t, err)

	assert.GreaterOrEqual(t, result.Score, 0.0)
	assert.LessOrEqual(t, result.Score, 1.0)
	assert.Equal(t, result.Score >= 0.5, result.Viral)
	assert.Equal(t, nn.Classification, result.Mode)
}

func TestHandle_PredictRegression(t *testing.T) {

	handle := NewHandle()
	require.NoError(t, handle.Load(trainedArtifact(t, nn.Regression)))

	samples := make([]float64, 8000)
	for i := range samples {
		samples[i] = 0.3
	}

	result, err := handle.Predict(wavBytes(samples, 16000), "title", "description")
	assert.NoError(t, err)

	assert.GreaterOrEqual(t, result.Views, 0.0)
	assert.Equal(t, nn.Regression, result.Mode)
}

func TestHandle_PredictDeterministic(t *testing.T) {

	handle := NewHandle()
	require.NoError(t, handle.Load(trainedArtifact(t, nn.Classification)))

	payload := pngBytes(t, 5)

	a, err := handle.Predict(payload, "same title", "same description")
	assert.NoError(t, err)
	b, err := handle.Predict(payload, "same title", "same description")
	assert.NoError(t, err)

	// bit for bit identical for identical inputs
	assert.Equal(t, a.Score, b.Score)
	assert.Equal(t, a.Vector.Values, b.Vector.Values)
}

func TestHandle_ArtifactStorageRoundTrip(t *testing.T) {

	artifact := trainedArtifact(t, nn.Classification)

	shard, err := jsonstore.Shard(t.TempDir())(storage.ModelsDir)
	require.NoError(t, err)

	key := storage.Key{Name: artifact.Name, Label: "artifact"}
	require.NoError(t, shard.Store(key, artifact))

	restored := new(model.Artifact)
	require.NoError(t, shard.Load(key, restored))

	original := NewHandle()
	require.NoError(t, original.Load(artifact))
	loaded := NewHandle()
	require.NoError(t, loaded.Load(restored))

	payload := pngBytes(t, 9)
	a, err := original.Predict(payload, "title", "description")
	assert.NoError(t, err)
	b, err := loaded.Predict(payload, "title", "description")
	assert.NoError(t, err)

	// the stats travel with the weights: predictions match exactly
	assert.Equal(t, a.Score, b.Score)
}

func TestHandle_PredictCorruptMedia(t *testing.T) {

	handle := NewHandle()
	require.NoError(t, handle.Load(trainedArtifact(t, nn.Classification)))

	_, err := handle.Predict([]byte("definitely not media bytes"), "t", "d")
	assert.Error(t, err)
}

func TestHandle_Lifecycle(t *testing.T) {

	handle := NewHandle()
	assert.False(t, handle.Loaded())

	artifact := trainedArtifact(t, nn.Classification)
	require.NoError(t, handle.Load(artifact))
	assert.True(t, handle.Loaded())

	require.NoError(t, handle.Replace(trainedArtifact(t, nn.Classification)))
	assert.True(t, handle.Loaded())

	handle.Dispose()
	assert.False(t, handle.Loaded())

	_, err := handle.Predict(pngBytes(t, 2), "t", "d")
	assert.ErrorIs(t, err, NotLoadedErr)
}

func TestHandle_LoadIncompleteArtifact(t *testing.T) {

	handle := NewHandle()

	err := handle.Load(nil)
	assert.ErrorIs(t, err, model.IncompleteArtifactErr)

	artifact := trainedArtifact(t, nn.Classification)
	artifact.Scaler.Mean = nil
	artifact.Scaler.StDev = nil
	err = handle.Load(artifact)
	assert.ErrorIs(t, err, model.IncompleteArtifactErr)
}

func TestArtifact_RegressionRequiresLabelTransform(t *testing.T) {

	artifact := trainedArtifact(t, nn.Regression)
	artifact.Label = nil

	err := NewHandle().Load(artifact)
	assert.ErrorIs(t, err, model.IncompleteArtifactErr)
}
