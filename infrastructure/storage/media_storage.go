package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/logger"
)

type objectStore interface {
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// MediaStorage keeps uploaded media in one bucket under <kind>s/<uuid><ext>.
type MediaStorage struct {
	store   objectStore
	bucket  string
	baseURL string
	probe   func(path string) (float64, error)
}

// NewMediaStorage serves objects from publicBaseURL/<bucket>/<object>.
func NewMediaStorage(client *minio.Client, bucket, publicBaseURL string) repository.IMediaStorage {
	return newMediaStorage(client, bucket, publicBaseURL)
}

func newMediaStorage(store objectStore, bucket, publicBaseURL string) *MediaStorage {
	return &MediaStorage{
		store:   store,
		bucket:  bucket,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
		probe:   probeDuration,
	}
}

func (s *MediaStorage) Upload(ctx context.Context, localPath string, kind model.MediaKind) (*model.MediaAsset, error) {
	defer removeTemp(ctx, localPath)

	mt, err := mimetype.DetectFile(localPath)
	if err != nil {
		return nil, err
	}
	contentType := mt.String()
	if !strings.HasPrefix(contentType, string(kind)+"/") {
		return nil, fmt.Errorf("%w: %s is not %s", repository.ErrUnsupportedMedia, contentType, kind)
	}

	asset := &model.MediaAsset{ContentType: contentType}
	if kind == model.MediaKindVideo {
		duration, err := s.probe(localPath)
		if err != nil {
			logger.FromContext(ctx).WithField("error", err).Warn("Could not probe video duration")
		}
		asset.Duration = duration
	}

	objectName := fmt.Sprintf("%ss/%s%s", kind, uuid.NewString(), mt.Extension())
	if _, err := s.store.FPutObject(ctx, s.bucket, objectName, localPath, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return nil, err
	}
	asset.URL = fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, objectName)
	return asset, nil
}

// Delete removes the object behind url. URLs this storage did not produce are ignored.
func (s *MediaStorage) Delete(ctx context.Context, url string) error {
	objectName, ok := s.objectNameFromURL(url)
	if !ok {
		logger.FromContext(ctx).WithField("url", url).Warn("Not a managed media URL, skipping delete")
		return nil
	}
	return s.store.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}

func (s *MediaStorage) objectNameFromURL(url string) (string, bool) {
	prefix := fmt.Sprintf("%s/%s/", s.baseURL, s.bucket)
	if url == "" || !strings.HasPrefix(url, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(url, prefix)
	return name, name != ""
}

func removeTemp(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.FromContext(ctx).WithField("error", err).WithField("path", path).Warn("Failed to remove temp file")
	}
}

func probeDuration(path string) (float64, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, err
	}
	return parseProbeDuration(out)
}

func parseProbeDuration(probeJSON string) (float64, error) {
	var probe struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(probeJSON), &probe); err != nil {
		return 0, err
	}
	if probe.Format.Duration == "" {
		return 0, errors.New("ffprobe output has no duration")
	}
	return strconv.ParseFloat(probe.Format.Duration, 64)
}
