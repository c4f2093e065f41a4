package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/autocrm/autocrm/internal/shared/config"
	"github.com/autocrm/autocrm/internal/shared/constants"
	"github.com/autocrm/autocrm/internal/shared/logger"
)

// StorageClient calls the backend object storage REST API.
type StorageClient struct {
	restClient
}

func NewStorageClient(cfg *config.BackendConfig, log logger.Interface) *StorageClient {
	rc := newRESTClient(cfg, log)
	// uploads and deletes need the service role when one is configured
	if cfg.ServiceKey != "" {
		rc.apiKey = cfg.ServiceKey
	}
	return &StorageClient{restClient: rc}
}

// Upload writes body to bucket/path, replacing any existing object.
func (c *StorageClient) Upload(ctx context.Context, bucket, path, contentType string, body io.Reader) error {
	req, err := c.newRequest(ctx, http.MethodPost, objectPath(bucket, path), body, "")
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = constants.ContentTypeOctetStream
	}
	req.Header.Set(constants.HeaderContentType, contentType)
	req.Header.Set(constants.HeaderUpsert, "true")
	req.Header.Set(constants.HeaderCacheControl, "max-age="+constants.StorageCacheControl)

	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("failed to upload %s/%s: %w", bucket, path, err)
	}
	return nil
}

// PublicURL is the unauthenticated address of bucket/path. No request is made.
func (c *StorageClient) PublicURL(bucket, path string) string {
	return c.baseURL + "/storage/v1/object/public/" + url.PathEscape(bucket) + "/" + escapePath(path)
}

// Remove deletes the objects at paths; missing objects are ignored by the service.
func (c *StorageClient) Remove(ctx context.Context, bucket string, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	payload := map[string][]string{"prefixes": paths}
	if err := c.doJSON(ctx, http.MethodDelete, "/storage/v1/object/"+url.PathEscape(bucket), payload, "", nil); err != nil {
		return fmt.Errorf("failed to remove objects from %s: %w", bucket, err)
	}
	return nil
}

func objectPath(bucket, path string) string {
	return "/storage/v1/object/" + url.PathEscape(bucket) + "/" + escapePath(path)
}

func escapePath(path string) string {
	segments := strings.Split(strings.TrimLeft(path, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
