package media

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey(FolderAvatars, "user-1", "Me.PNG")

	parts := strings.Split(key, "/")
	require.Len(t, parts, 3)
	assert.Equal(t, "avatars", parts[0])
	assert.Equal(t, "user-1", parts[1])
	assert.True(t, strings.HasSuffix(parts[2], ".png"))

	_, err := uuid.Parse(strings.TrimSuffix(parts[2], ".png"))
	assert.NoError(t, err)
}

func TestObjectKey_Unique(t *testing.T) {
	assert.NotEqual(t, ObjectKey(FolderVideos, "u", "a.mp4"), ObjectKey(FolderVideos, "u", "a.mp4"))
}
