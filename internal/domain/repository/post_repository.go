package repository

import (
	"context"

	"peopleconnect/internal/domain/entity"
)

type PostRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	List(ctx context.Context) ([]*entity.Post, error)
	// Watch calls onChange with the full collection every time any post changes,
	// until ctx is cancelled or the stream fails.
	Watch(ctx context.Context, onChange func([]*entity.Post)) error
	// UpdateModeration commits a decision only while the stored post is still
	// Pending and returns a Conflict otherwise.
	UpdateModeration(ctx context.Context, id string, update entity.ModerationUpdate) error
	Delete(ctx context.Context, id string) error
}
