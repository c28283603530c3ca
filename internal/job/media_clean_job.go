package job

import (
	"Moments/internal/pkg/consts"
	"Moments/internal/pkg/minio"
	"Moments/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// orphanGracePeriod 新上传对象的保护期，避免清理进行中的发帖
const orphanGracePeriod = 24 * time.Hour

// MediaCleanupJob 清理不再被任何帖子或头像引用的媒体对象
type MediaCleanupJob struct {
	postRepo repository.PostRepo
}

func NewMediaCleanupJob(postRepo repository.PostRepo) *MediaCleanupJob {
	return &MediaCleanupJob{
		postRepo: postRepo,
	}
}

func (s *MediaCleanupJob) Run() {
	ctx := context.Background()
	log.Info("start media cleanup job")

	referenced, err := s.postRepo.ListReferencedMediaKeys(ctx)
	if err != nil {
		log.Error("failed to collect referenced media keys", "err", err)
		return
	}

	keep := make(map[string]struct{}, len(referenced)+1)
	keep[consts.DefaultPostImage] = struct{}{}
	for _, key := range referenced {
		keep[key] = struct{}{}
	}

	deadline := time.Now().Add(-orphanGracePeriod)
	count := 0

	for _, prefix := range []string{consts.ImagePrefix, consts.VideoPrefix, consts.AudioPrefix} {
		objects, err := minio.ListObjects(ctx, prefix)
		if err != nil {
			log.Error("failed to list bucket objects", "prefix", prefix, "err", err)
			continue
		}

		for _, obj := range objects {
			if _, ok := keep[obj.Key]; ok {
				continue
			}
			if obj.LastModified.After(deadline) {
				continue
			}

			if err = minio.DeleteFile(ctx, obj.Key); err != nil {
				log.Error("failed to delete orphan media object", "key", obj.Key, "err", err)
				continue
			}
			count++
			log.Info("cleanup orphan media object", "key", obj.Key)
		}
	}

	if count > 0 {
		log.Info("media cleanup job finished", "cleaned_count", count)
	}
}
