package job

import (
	"Sabzee/internal/pkg/consts"
	"Sabzee/internal/pkg/minio"
	"Sabzee/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// orphanGracePeriod keeps freshly uploaded objects safe while their
// owning document is still being written.
const orphanGracePeriod = 24 * time.Hour

// StorageCleanupJob removes stored images that no document references
// anymore, typically left behind by failed batch uploads.
type StorageCleanupJob struct {
	forumRepo   repository.ForumRepo
	productRepo repository.ProductRepo
}

func NewStorageCleanupJob(forumRepo repository.ForumRepo, productRepo repository.ProductRepo) *StorageCleanupJob {
	return &StorageCleanupJob{
		forumRepo:   forumRepo,
		productRepo: productRepo,
	}
}

func (s *StorageCleanupJob) Run() {
	ctx := context.Background()
	log.Info("start storage cleanup job")

	forumRefs, err := s.forumRepo.AllImageStorageIDs(ctx)
	if err != nil {
		log.Error("failed to collect forum image references", "err", err)
		return
	}
	productRefs, err := s.productRepo.AllImageStorageIDs(ctx)
	if err != nil {
		log.Error("failed to collect product image references", "err", err)
		return
	}

	cutoff := time.Now().Add(-orphanGracePeriod)
	count := 0
	count += s.cleanPrefix(ctx, consts.FolderForumPosts, forumRefs, cutoff)
	count += s.cleanPrefix(ctx, consts.FolderProducts, productRefs, cutoff)

	if count > 0 {
		log.Info("storage cleanup job finished", "cleaned_count", count)
	}
}

func (s *StorageCleanupJob) cleanPrefix(ctx context.Context, prefix string, refs map[string]struct{}, cutoff time.Time) int {
	keys, err := minio.ListObjectKeysOlderThan(ctx, prefix, cutoff)
	if err != nil {
		log.Error("failed to list stored objects", "prefix", prefix, "err", err)
		return 0
	}

	count := 0
	for _, key := range keys {
		if _, ok := refs[key]; ok {
			continue
		}
		if err = minio.DeleteFile(ctx, key); err != nil {
			log.Error("failed to delete orphaned object", "key", key, "err", err)
			continue
		}
		count++
		log.Info("removed orphaned object", "key", key)
	}
	return count
}
