package assets

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/umsclient/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testStore() *S3Store {
	return NewS3Store(Config{
		Region:       "us-east-1",
		Bucket:       "ums",
		BaseEndpoint: "http://127.0.0.1:9000",
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
	}, testLogger())
}

// stubPresign replaces every AWS seam with fakes and restores them on cleanup.
func stubPresign(t *testing.T, putURL, getURL string) {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	origPresign := newS3PresignClient
	origPut := presignPutObject
	origGet := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
		newS3PresignClient = origPresign
		presignPutObject = origPut
		presignGetObject = origGet
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return nil
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return nil
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: putURL}, nil
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: getURL}, nil
	}
}

func stubPut(t *testing.T, fn func(ctx context.Context, url string, body io.Reader, size int64) error) {
	t.Helper()
	orig := putToPresignedURL
	t.Cleanup(func() { putToPresignedURL = orig })
	putToPresignedURL = fn
}

func collect(t *testing.T, h *Handle) []Event {
	t.Helper()
	var evs []Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-h.Events():
			if !ok {
				return evs
			}
			evs = append(evs, ev)
		case <-timeout:
			t.Fatal("timed out waiting for upload events")
		}
	}
}

func TestObjectKey_PairsTimestampWithName(t *testing.T) {
	k1 := ObjectKey("cat.png")
	k2 := ObjectKey("cat.png")

	assert.True(t, strings.HasPrefix(k1, "avatars/"))
	assert.True(t, strings.HasSuffix(k1, "-cat.png"))
	assert.NotEqual(t, k1, k2)
}

func TestObjectKey_StripsDirectories(t *testing.T) {
	k := ObjectKey("/home/alice/pics/cat.png")
	assert.True(t, strings.HasSuffix(k, "-cat.png"))
	assert.NotContains(t, k, "alice")
}

func TestBeginUpload_ProgressThenCompleted(t *testing.T) {
	stubPresign(t, "http://store/put", "http://store/get/img42")
	stubPut(t, func(ctx context.Context, url string, body io.Reader, size int64) error {
		require.Equal(t, "http://store/put", url)
		// drain in small chunks so the progress reader fires several times
		buf := make([]byte, 3)
		for {
			if _, err := body.Read(buf); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		}
	})

	data := "0123456789"
	h := testStore().BeginUpload(context.Background(), strings.NewReader(data), int64(len(data)), "cat.png")
	evs := collect(t, h)

	require.NotEmpty(t, evs)
	last := evs[len(evs)-1]
	assert.Equal(t, EventCompleted, last.Kind)
	assert.Equal(t, "http://store/get/img42", last.URL)

	var prev int64
	for _, ev := range evs {
		assert.Equal(t, h.TaskID, ev.TaskID)
		if ev.Kind != EventProgress {
			continue
		}
		assert.Equal(t, int64(len(data)), ev.Total)
		assert.GreaterOrEqual(t, ev.Transferred, prev)
		prev = ev.Transferred
	}
}

func TestBeginUpload_PutFailure(t *testing.T) {
	stubPresign(t, "http://store/put", "http://store/get")
	stubPut(t, func(ctx context.Context, url string, body io.Reader, size int64) error {
		return errors.New("object exceeds the size policy")
	})

	h := testStore().BeginUpload(context.Background(), strings.NewReader("xx"), 2, "big.png")
	evs := collect(t, h)

	var terminal []Event
	for _, ev := range evs {
		if ev.Kind != EventProgress {
			terminal = append(terminal, ev)
		}
	}
	require.Len(t, terminal, 1)
	assert.Equal(t, EventFailed, terminal[0].Kind)
	assert.ErrorContains(t, terminal[0].Err, "size policy")
}

func TestBeginUpload_PresignFailure(t *testing.T) {
	stubPresign(t, "http://store/put", "http://store/get")

	orig := presignPutObject
	t.Cleanup(func() { presignPutObject = orig })
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign-fail")
	}

	h := testStore().BeginUpload(context.Background(), strings.NewReader("xx"), 2, "a.png")
	evs := collect(t, h)

	require.Len(t, evs, 1)
	assert.Equal(t, EventFailed, evs[0].Kind)
}

func TestBeginUpload_NoEventsAfterTerminal(t *testing.T) {
	stubPresign(t, "http://store/put", "http://store/get")
	stubPut(t, func(ctx context.Context, url string, body io.Reader, size int64) error {
		_, err := io.Copy(io.Discard, body)
		return err
	})

	h := testStore().BeginUpload(context.Background(), strings.NewReader("abc"), 3, "a.png")
	evs := collect(t, h)

	// the channel closed after collect returned, so the terminal event is last
	require.NotEmpty(t, evs)
	assert.Equal(t, EventCompleted, evs[len(evs)-1].Kind)
}
