package lambda

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stahnma/pds-didweb/internal/cache"
	"github.com/stahnma/pds-didweb/internal/commands"
	"github.com/stahnma/pds-didweb/internal/config"
	"github.com/stahnma/pds-didweb/internal/pds"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClient struct {
	body string
	err  error
}

func (f *fakeClient) ListRepos(_ context.Context, _ string) (*pds.Listing, error) {
	if f.err != nil {
		return nil, f.err
	}
	return pds.ParseListing([]byte(f.body))
}

type fakeUploader struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeUploader) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	data, _ := io.ReadAll(params.Body)
	f.body = string(data)
	return &s3.PutObjectOutput{}, f.err
}

func newApp(client pds.Client) *commands.App {
	return &commands.App{
		Config: config.Config{
			PDSHost:     "pds.example.com",
			NoCache:     true,
			S3Bucket:    "bucket",
			S3ObjectKey: "didweb/%s.json",
		},
		Cache:  cache.New(),
		Client: client,
		Logger: zap.NewNop(),
	}
}

func TestHandler_Uploads(t *testing.T) {
	app := newApp(&fakeClient{body: `{"repos":[{"did":"did:web:a.com"},{"did":"did:plc:xyz"}]}`})
	up := &fakeUploader{}

	msg, err := NewHandler(app, up)(context.Background(), nil)
	require.NoError(t, err)

	assert.Contains(t, msg, "Uploaded 1 did:web repos from pds.example.com")
	assert.Equal(t, "bucket", aws.ToString(up.input.Bucket))
	key := aws.ToString(up.input.Key)
	assert.True(t, strings.HasPrefix(key, "didweb/") && strings.HasSuffix(key, ".json"), "key %q", key)
	assert.NotContains(t, key, "%s")
	assert.JSONEq(t, `[{"did":"did:web:a.com"}]`, up.body)
}

func TestHandler_MissingTarget(t *testing.T) {
	app := newApp(&fakeClient{body: `{}`})
	app.Config.S3Bucket = ""

	_, err := NewHandler(app, &fakeUploader{})(context.Background(), nil)
	assert.ErrorContains(t, err, "S3_BUCKET_NAME")
}

func TestHandler_FetchError(t *testing.T) {
	app := newApp(&fakeClient{err: &pds.RequestError{StatusCode: 500}})
	up := &fakeUploader{}

	_, err := NewHandler(app, up)(context.Background(), nil)
	var reqErr *pds.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Nil(t, up.input, "nothing should be uploaded")
}

func TestHandler_UploadError(t *testing.T) {
	app := newApp(&fakeClient{body: `{}`})
	up := &fakeUploader{err: errors.New("access denied")}

	_, err := NewHandler(app, up)(context.Background(), nil)
	assert.ErrorContains(t, err, "failed to upload file to S3")
	assert.Equal(t, "[]", up.body)
}
