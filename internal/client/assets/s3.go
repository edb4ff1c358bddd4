package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/umsclient/internal/logging"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	putToPresignedURL = func(ctx context.Context, url string, body io.Reader, size int64) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
		if err != nil {
			return err
		}
		req.ContentLength = size
		req.Header.Set("Content-Type", "application/octet-stream")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return fmt.Errorf("storage put failed: %s: %s", resp.Status, strings.TrimSpace(string(b)))
		}
		return nil
	}
)

// Config holds the settings of the S3-compatible object store (MinIO in
// development) that keeps avatar images.
type Config struct {
	Region        string
	Bucket        string
	BaseEndpoint  string
	AccessKey     string
	SecretKey     string
	RetrievalTTL  time.Duration
	PresignPutTTL time.Duration
}

// S3Store uploads objects through presigned PUT URLs and hands back a
// presigned GET URL as the durable retrieval URL.
type S3Store struct {
	cfg Config
	log logging.Logger
}

func NewS3Store(cfg Config, log logging.Logger) *S3Store {
	if cfg.PresignPutTTL == 0 {
		cfg.PresignPutTTL = 15 * time.Minute
	}
	if cfg.RetrievalTTL == 0 {
		cfg.RetrievalTTL = 7 * 24 * time.Hour
	}
	return &S3Store{cfg: cfg, log: log}
}

// ObjectKey forms a storage key that is unique for the lifetime of the
// store: a high-resolution timestamp paired with the original file name.
func ObjectKey(suggestedName string) string {
	return fmt.Sprintf("avatars/%d-%s", time.Now().UnixNano(), path.Base(suggestedName))
}

func (s *S3Store) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.AccessKey,
			s.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.cfg.BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// BeginUpload starts the transfer in a background goroutine and returns the
// handle immediately. The caller observes progress and the single terminal
// event on the handle's channel.
func (s *S3Store) BeginUpload(ctx context.Context, r io.Reader, size int64, suggestedName string) *Handle {
	h := NewHandle(uuid.New())
	go s.run(ctx, h, r, size, suggestedName)
	return h
}

func (s *S3Store) run(ctx context.Context, h *Handle, r io.Reader, size int64, suggestedName string) {
	defer h.CloseSend()

	fail := func(err error) {
		s.log.Warn(ctx, "upload failed", "task_id", h.TaskID.String(), "error", err)
		h.Emit(ctx, Event{TaskID: h.TaskID, Kind: EventFailed, Err: err})
	}

	key := ObjectKey(suggestedName)

	pc, err := s.presignClient(ctx)
	if err != nil {
		fail(fmt.Errorf("storage client: %w", err))
		return
	}

	bucket := s.cfg.Bucket

	putReq, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.cfg.PresignPutTTL))
	if err != nil {
		fail(fmt.Errorf("presign put: %w", err))
		return
	}

	pr := &progressReader{
		r:     r,
		total: size,
		onProgress: func(transferred, total int64) {
			h.Emit(ctx, Event{TaskID: h.TaskID, Kind: EventProgress, Transferred: transferred, Total: total})
		},
	}

	if err := putToPresignedURL(ctx, putReq.URL, pr, size); err != nil {
		fail(err)
		return
	}

	getReq, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.cfg.RetrievalTTL))
	if err != nil {
		fail(fmt.Errorf("presign get: %w", err))
		return
	}

	s.log.Info(ctx, "upload completed", "task_id", h.TaskID.String(), "key", key)
	h.Emit(ctx, Event{TaskID: h.TaskID, Kind: EventCompleted, Transferred: size, Total: size, URL: getReq.URL})
}

// progressReader counts bytes as the HTTP transport consumes the body and
// reports each increment.
type progressReader struct {
	r          io.Reader
	total      int64
	read       int64
	onProgress func(transferred, total int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		p.onProgress(p.read, p.total)
	}
	return n, err
}
