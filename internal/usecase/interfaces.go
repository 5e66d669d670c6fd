package usecase

import (
	"context"
	"io"
	"time"

	"photo-share/pkg/logger"
	"photo-share/pkg/queue"
)

// ImageStorage keeps uploaded post images. *s3.Client satisfies it.
type ImageStorage interface {
	UploadFile(key string, body io.Reader, contentType string) (string, error)
	DeleteFile(key string) error
}

// EventPublisher emits notification events. *queue.Client satisfies it.
type EventPublisher interface {
	Publish(task queue.Task) error
}

// TokenRevoker invalidates issued tokens. *cache.TokenStore satisfies it.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// notify publishes a notification event. Failures are logged and never fail
// the request that triggered them.
func notify(publisher EventPublisher, log *logger.Logger, task queue.Task) {
	if publisher == nil {
		return
	}
	log.Info("[NOTIFICATION QUEUE] Publishing %s event: user_id=%s, actor_id=%s", task.Type, task.UserID, task.ActorID)
	if err := publisher.Publish(task); err != nil {
		log.Error("[NOTIFICATION QUEUE] Failed to publish %s event: %v", task.Type, err)
	}
}
