package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"peopleconnect/internal/domain/entity"
	"peopleconnect/internal/domain/service"
	"peopleconnect/internal/mocks"
)

func TestDashboardStats(t *testing.T) {
	f := newModerationFixture(t, service.DefaultModerationPolicy(),
		pendingPost("p1"),
		&entity.Post{ID: "p2", PostStatus: entity.PostStatusApproved},
		&entity.Post{ID: "p3", PostStatus: entity.PostStatusApproved},
	)
	f.userRepo.On("List", mock.Anything).Return([]*entity.User{
		{Roles: []string{entity.RoleClient}, Status: entity.UserStatusActive},
		{Roles: []string{entity.RoleClient, entity.RoleServiceProvider}, Status: entity.UserStatusDisabled},
	}, nil)
	categories := new(mocks.CategoryRepository)
	categories.On("ListCategories", mock.Anything).Return([]*entity.Category{{Name: "Home"}}, nil)

	stats, err := NewDashboardUseCase(f.userRepo, categories, f.feed, f.uc).Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 2, stats.UsersByRole[entity.RoleClient])
	assert.Equal(t, 1, stats.UsersByRole[entity.RoleServiceProvider])
	assert.Equal(t, 1, stats.DisabledUsers)
	assert.Equal(t, 3, stats.TotalPosts)
	assert.Equal(t, 2, stats.PostsByStatus["Approved"])
	assert.Equal(t, 0, stats.PostsByStatus["Rejected"])
	assert.Equal(t, 1, stats.TotalCategories)
	assert.True(t, stats.FeedSynchronized)
	assert.Empty(t, stats.LastScanAt)
}
