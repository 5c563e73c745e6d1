package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// S3 fetches symbols from an s3://bucket/prefix symbol store.
type S3 struct {
	downloader *manager.Downloader
}

func NewS3FromConfig(cfg aws.Config) *S3 {
	return NewS3(s3.NewFromConfig(cfg))
}

func NewS3(client manager.DownloadAPIClient) *S3 {
	return &S3{
		downloader: manager.NewDownloader(client),
	}
}

func (c *S3) Fetch(ctx context.Context, remote string, dst io.Writer) (int64, error) {
	bucket, key, err := ParseS3URI(remote)
	if err != nil {
		return 0, err
	}

	input := &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	// *os.File takes the parts directly; other writers get a buffered copy.
	if w, ok := dst.(io.WriterAt); ok {
		n, err := c.downloader.Download(ctx, w, input)
		if err != nil {
			return n, classifyS3Error(remote, err)
		}
		return n, nil
	}

	buf := manager.NewWriteAtBuffer(nil)
	if _, err := c.downloader.Download(ctx, buf, input); err != nil {
		return 0, classifyS3Error(remote, err)
	}

	n, err := dst.Write(buf.Bytes())
	if err != nil {
		return int64(n), fmt.Errorf("write object: %w", err)
	}

	return int64(n), nil
}

// classifyS3Error maps S3 response errors onto *StatusError so they read
// the same as HTTP symbol server failures.
func classifyS3Error(remote string, err error) error {
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() != 0 {
		return &StatusError{Code: respErr.HTTPStatusCode(), Path: remote}
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return &StatusError{Code: http.StatusNotFound, Path: remote}
		case "AccessDenied":
			return &StatusError{Code: http.StatusForbidden, Path: remote}
		}
	}

	return fmt.Errorf("get object %s: %w", remote, err)
}

// ParseS3URI splits s3://bucket/key into its bucket and key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	if !strings.HasPrefix(uri, "s3://") {
		return "", "", fmt.Errorf("invalid S3 URI: must start with s3://")
	}

	path := strings.TrimPrefix(uri, "s3://")
	parts := strings.SplitN(path, "/", 2)

	if parts[0] == "" {
		return "", "", fmt.Errorf("invalid S3 URI: missing bucket name")
	}
	if len(parts) < 2 || parts[1] == "" {
		return "", "", fmt.Errorf("invalid S3 URI: missing object key")
	}

	return parts[0], parts[1], nil
}
