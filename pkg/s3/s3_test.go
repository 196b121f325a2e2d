package s3

import (
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOfflineClient(t *testing.T, cfg *aws.Config) *Client {
	t.Helper()
	sess, err := session.NewSession(cfg)
	require.NoError(t, err)
	return &Client{s3Client: s3.New(sess), bucket: "vidtube-media"}
}

func TestObjectURL_AWS(t *testing.T) {
	c := newOfflineClient(t, &aws.Config{Region: aws.String("eu-west-1")})

	assert.Equal(t,
		"https://vidtube-media.s3.eu-west-1.amazonaws.com/avatars/u1/a.png",
		c.objectURL("avatars/u1/a.png"))
}

func TestObjectURL_MinIOEndpoint(t *testing.T) {
	c := newOfflineClient(t, &aws.Config{
		Region:           aws.String("us-east-1"),
		Endpoint:         aws.String("http://localhost:9000"),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(true),
	})

	assert.Equal(t,
		"http://localhost:9000/vidtube-media/videos/u1/v.mp4",
		c.objectURL("videos/u1/v.mp4"))
}
