package storage

import (
	"context"
	"testing"
	"time"

	"alcyxob/coaching-app/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewS3StorageRequiresBucket(t *testing.T) {
	_, err := NewS3Storage(config.S3Config{Region: "us-east-1"}, zap.NewNop())
	require.Error(t, err)
}

func TestS3StoragePresignsPathStyleURL(t *testing.T) {
	files, err := NewS3Storage(config.S3Config{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
		BucketName:      "coach",
		URLExpiry:       time.Minute,
	}, zap.NewNop())
	require.NoError(t, err)

	url, err := files.URL(context.Background(), Key(AreaPlayers, "p_0123456789abcdef.jpg"))
	require.NoError(t, err)
	assert.Contains(t, url, "http://localhost:9000/coach/players/p_0123456789abcdef.jpg?")
	assert.Contains(t, url, "X-Amz-Expires=60")
	assert.Contains(t, url, "X-Amz-Signature=")
}
