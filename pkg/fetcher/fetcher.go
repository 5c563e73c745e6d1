// Package fetcher implements the transports used to pull symbol files from
// a remote store: HTTP(S) symbol servers, s3:// buckets and plain
// directories such as file shares.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
)

// Fetcher copies one remote symbol file into dst.
// Nothing is written to dst unless the remote answered with success.
type Fetcher interface {
	Fetch(ctx context.Context, remote string, dst io.Writer) (int64, error)
}

// StatusError is returned when the remote answers with anything but 200.
type StatusError struct {
	Code int
	Path string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("File %s - Code %d %s", e.Path, e.Code, http.StatusText(e.Code))
}

// Options configures the transport chosen by ForRemote.
type Options struct {
	UserAgent string
	Profile   string
	Region    string
}

// ForRemote picks a transport for the remote root of a locator.
func ForRemote(ctx context.Context, remoteRoot string, opts Options) (Fetcher, error) {
	switch {
	case strings.HasPrefix(remoteRoot, "s3://"):
		var configOpts []func(*config.LoadOptions) error
		if opts.Profile != "" {
			configOpts = append(configOpts, config.WithSharedConfigProfile(opts.Profile))
		}
		if opts.Region != "" {
			configOpts = append(configOpts, config.WithRegion(opts.Region))
		}

		cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return NewS3FromConfig(cfg), nil
	case strings.HasPrefix(remoteRoot, "http://"), strings.HasPrefix(remoteRoot, "https://"):
		return NewHTTP(http.DefaultClient, opts.UserAgent), nil
	default:
		return NewFile(), nil
	}
}
