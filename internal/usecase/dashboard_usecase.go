package usecase

import (
	"context"
	"time"

	"peopleconnect/internal/domain/entity"
	"peopleconnect/internal/domain/repository"
)

type DashboardUseCase struct {
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	feed         *PostFeed
	moderation   *ModerationUseCase
}

func NewDashboardUseCase(
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
	feed *PostFeed,
	moderation *ModerationUseCase,
) *DashboardUseCase {
	return &DashboardUseCase{
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		feed:         feed,
		moderation:   moderation,
	}
}

// Stats counts posts from the live feed and users and categories from the store.
func (uc *DashboardUseCase) Stats(ctx context.Context) (*entity.DashboardStats, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := uc.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	stats := &entity.DashboardStats{
		TotalUsers: len(users),
		UsersByRole: map[string]int{
			entity.RoleClient:          0,
			entity.RoleServiceProvider: 0,
		},
		PostsByStatus: map[string]int{
			string(entity.PostStatusPending):  0,
			string(entity.PostStatusApproved): 0,
			string(entity.PostStatusRejected): 0,
		},
		TotalCategories:  len(categories),
		FeedSynchronized: uc.feed.Synchronized(),
	}

	for _, u := range users {
		for _, role := range u.Roles {
			stats.UsersByRole[role]++
		}
		if u.IsDisabled() {
			stats.DisabledUsers++
		}
	}

	posts := uc.feed.Posts()
	stats.TotalPosts = len(posts)
	for _, p := range posts {
		stats.PostsByStatus[string(p.PostStatus)]++
	}

	if last := uc.moderation.LastScanAt(); !last.IsZero() {
		stats.LastScanAt = last.Format(time.RFC3339)
	}
	return stats, nil
}
