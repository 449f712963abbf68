package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"peopleconnect/internal/domain/entity"
	"peopleconnect/internal/domain/repository"
	"peopleconnect/pkg/errors"
	"peopleconnect/pkg/logger"
)

const postsCollection = "posts"

type firestorePostRepository struct {
	client *firestore.Client
}

func NewFirestorePostRepository(client *firestore.Client) repository.PostRepository {
	return &firestorePostRepository{
		client: client,
	}
}

func (r *firestorePostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	doc, err := r.client.Collection(postsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Post", err)
		}
		return nil, errors.Internal("Failed to get post", err)
	}

	return decodePost(doc)
}

func (r *firestorePostRepository) List(ctx context.Context) ([]*entity.Post, error) {
	docs, err := r.client.Collection(postsCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list posts", err)
	}

	return decodePosts(docs), nil
}

func (r *firestorePostRepository) Watch(ctx context.Context, onChange func([]*entity.Post)) error {
	it := r.client.Collection(postsCollection).Snapshots(ctx)
	defer it.Stop()

	for {
		snap, err := it.Next()
		if err != nil {
			if ctx.Err() != nil || err == iterator.Done || status.Code(err) == codes.Canceled {
				return ctx.Err()
			}
			return errors.Internal("Post feed subscription failed", err)
		}

		docs, err := snap.Documents.GetAll()
		if err != nil {
			return errors.Internal("Failed to read post snapshot", err)
		}
		onChange(decodePosts(docs))
	}
}

func (r *firestorePostRepository) UpdateModeration(ctx context.Context, id string, update entity.ModerationUpdate) error {
	ref := r.client.Collection(postsCollection).Doc(id)
	updates := []firestore.Update{
		{Path: "postStatus", Value: string(update.Status)},
		{Path: "moderatedAt", Value: update.ModeratedAt},
		{Path: "moderatedBy", Value: update.ModeratedBy},
	}
	// The map goes in as one field value so a rescan replaces it wholesale.
	if update.Classifications != nil {
		updates = append(updates, firestore.Update{Path: "nsfwClassifications", Value: update.Classifications})
	}

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}
		if current := storedStatus(doc); current != entity.PostStatusPending {
			return errors.Conflict("Post has already been " + string(current))
		}
		return tx.Update(ref, updates)
	})
	if err != nil {
		if errors.Is(err, "CONFLICT") {
			return err
		}
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Post", err)
		}
		return errors.Internal("Failed to update post status", err)
	}

	return nil
}

// storedStatus reads postStatus the way decodePost does: absent means Pending.
func storedStatus(doc *firestore.DocumentSnapshot) entity.PostStatus {
	v, err := doc.DataAt("postStatus")
	if err != nil {
		return entity.PostStatusPending
	}
	if s, _ := v.(string); s != "" {
		return entity.PostStatus(s)
	}
	return entity.PostStatusPending
}

func (r *firestorePostRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(postsCollection).Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete post", err)
	}

	return nil
}

func decodePost(doc *firestore.DocumentSnapshot) (*entity.Post, error) {
	var post entity.Post
	if err := doc.DataTo(&post); err != nil {
		return nil, errors.Internal("Failed to parse post data", err)
	}
	post.ID = doc.Ref.ID
	if post.PostStatus == "" {
		post.PostStatus = entity.PostStatusPending
	}
	return &post, nil
}

// decodePosts keeps the collection's enumeration order and skips records
// that do not fit the post shape instead of failing the whole feed.
func decodePosts(docs []*firestore.DocumentSnapshot) []*entity.Post {
	posts := make([]*entity.Post, 0, len(docs))
	for _, doc := range docs {
		post, err := decodePost(doc)
		if err != nil {
			logger.Warn("Skipping malformed post %s: %v", doc.Ref.ID, err)
			continue
		}
		posts = append(posts, post)
	}
	return posts
}
