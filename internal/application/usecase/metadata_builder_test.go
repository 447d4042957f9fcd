package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assetdom "videotoken/internal/domain/asset"
	tokendom "videotoken/internal/domain/token"
)

type capturingUploader struct {
	mu       sync.Mutex
	lastJSON []byte
	jsonErr  error
}

func (c *capturingUploader) UploadFile(_ context.Context, _ assetdom.Blob) (string, error) {
	return "https://gateway.test/file", nil
}

func (c *capturingUploader) UploadJSON(_ context.Context, data []byte) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.jsonErr != nil {
		return "", c.jsonErr
	}
	c.lastJSON = append([]byte(nil), data...)
	return "https://gateway.test/meta", nil
}

func TestAssembleDocumentShape(t *testing.T) {
	up := &capturingUploader{}
	b := NewMetadataBuilder(up)

	spec := tokendom.Spec{
		Name:        "  Demo  ",
		Symbol:      "DMO",
		Description: "a demo token",
	}

	uri, err := b.Assemble(context.Background(), spec,
		"https://gateway.test/img", "https://gateway.test/vid")
	require.NoError(t, err)
	assert.Equal(t, "https://gateway.test/meta", uri)

	var doc map[string]string
	require.NoError(t, json.Unmarshal(up.lastJSON, &doc))
	assert.Equal(t, "Demo", doc["name"])
	assert.Equal(t, "DMO", doc["symbol"])
	assert.Equal(t, "a demo token", doc["description"])
	assert.Equal(t, "https://gateway.test/img", doc["image"])
	assert.Equal(t, "https://gateway.test/vid", doc["video"])
}

func TestAssembleOmitsEmptyVideo(t *testing.T) {
	up := &capturingUploader{}
	b := NewMetadataBuilder(up)

	_, err := b.Assemble(context.Background(),
		tokendom.Spec{Name: "Demo", Symbol: "DMO", Description: "d"},
		"https://gateway.test/img", "")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(up.lastJSON, &doc))
	_, hasVideo := doc["video"]
	assert.False(t, hasVideo)
}

func TestAssembleRejectsEmptyImageLocator(t *testing.T) {
	up := &capturingUploader{}
	b := NewMetadataBuilder(up)

	_, err := b.Assemble(context.Background(),
		tokendom.Spec{Name: "Demo", Symbol: "DMO", Description: "d"},
		"  ", "https://gateway.test/vid")
	require.Error(t, err)

	// rejected before anything went over the wire
	assert.Nil(t, up.lastJSON)
}

func TestAssemblePropagatesUploadError(t *testing.T) {
	up := &capturingUploader{jsonErr: errors.New("gateway down")}
	b := NewMetadataBuilder(up)

	_, err := b.Assemble(context.Background(),
		tokendom.Spec{Name: "Demo", Symbol: "DMO", Description: "d"},
		"https://gateway.test/img", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gateway down")
}
