package assets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-resolution-router/internal/core/domain"
)

func TestGCSFetcher_ObjectName(t *testing.T) {
	tests := []struct {
		prefix string
		page   string
		want   string
	}{
		{prefix: "", page: "viewer.html", want: "viewer.html"},
		{prefix: "viewer/v2", page: "/webxr.html", want: "viewer/v2/webxr.html"},
		{prefix: "viewer/", page: "default.html", want: "viewer/default.html"},
	}

	for _, tt := range tests {
		f := &GCSFetcher{bucket: "assets", prefix: tt.prefix}
		got, err := f.ObjectName(tt.page)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := (&GCSFetcher{bucket: "assets"}).ObjectName("../secrets.json")
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestNewGCSFetcher_RequiresBucket(t *testing.T) {
	_, err := NewGCSFetcher(context.Background(), "", "")
	assert.Error(t, err)
}
