package service

import (
	"Sabzee/internal/model"
	"Sabzee/internal/pkg/consts"
	"Sabzee/internal/pkg/minio"
	"Sabzee/internal/pkg/util"
	"context"
	"io"
	log "log/slog"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// ImageUpload is one incoming file; the reader must be seekable so the
// content type can be sniffed before the payload is consumed.
type ImageUpload struct {
	Filename string
	Size     int64
	Reader   io.ReadSeeker
}

// ImageStore abstracts the object storage behind uploaded images.
type ImageStore interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, objectName string) error
	PublicURL(objectName string) string
}

type minioImageStore struct{}

func NewImageStore() ImageStore {
	return &minioImageStore{}
}

func (minioImageStore) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	return minio.UploadFile(ctx, objectName, reader, size, contentType)
}

func (minioImageStore) Delete(ctx context.Context, objectName string) error {
	return minio.DeleteFile(ctx, objectName)
}

func (minioImageStore) PublicURL(objectName string) string {
	return minio.GetPublicURL(objectName)
}

// uploadImageBatch validates, normalizes and stores a batch concurrently.
// Objects already stored when a sibling fails are not rolled back; the
// cleanup job reclaims them.
func uploadImageBatch(ctx context.Context, store ImageStore, folder string, uploads []*ImageUpload) ([]model.PostImage, error) {
	if len(uploads) == 0 {
		return nil, ErrNoImages
	}
	if len(uploads) > consts.MaxImagesPerUpload {
		return nil, ErrTooManyImages
	}

	images := make([]model.PostImage, len(uploads))
	g, gctx := errgroup.WithContext(ctx)
	for i, up := range uploads {
		g.Go(func() error {
			img, err := uploadOneImage(gctx, store, folder, up)
			if err != nil {
				return err
			}
			images[i] = *img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

// deleteImageBatch removes stored objects concurrently and waits for the
// whole batch. Failures are logged; the cleanup job reclaims leftovers.
func deleteImageBatch(ctx context.Context, store ImageStore, images []model.PostImage) {
	g, gctx := errgroup.WithContext(ctx)
	for _, img := range images {
		g.Go(func() error {
			if err := store.Delete(gctx, img.StorageID); err != nil {
				log.WarnContext(gctx, "failed to delete stored image", "storageId", img.StorageID, "err", err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func uploadOneImage(ctx context.Context, store ImageStore, folder string, up *ImageUpload) (*model.PostImage, error) {
	if up.Size > consts.MaxImageSizeBytes {
		return nil, ErrFileTooLarge
	}

	contentType, err := util.GetSafeContentType(up.Reader)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		return nil, ErrFileNotSupported
	}

	reader, size, err := util.NormalizeImage(up.Reader)
	if err != nil {
		return nil, ErrFileNotSupported
	}

	objectName := folder + uuid.NewString() + ".jpg"
	key, err := store.Upload(ctx, objectName, reader, size, "image/jpeg")
	if err != nil {
		return nil, err
	}

	return &model.PostImage{
		ID:        primitive.NewObjectID(),
		URL:       store.PublicURL(key),
		StorageID: key,
	}, nil
}
