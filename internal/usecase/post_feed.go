package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"peopleconnect/internal/domain/entity"
	"peopleconnect/internal/domain/repository"
	"peopleconnect/pkg/logger"
)

// PostFeed is the shared, locally materialized view of the posts collection.
// Every remote change rebuilds the whole list.
type PostFeed struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository

	mu     sync.RWMutex
	posts  []*entity.Post
	synced bool

	listenersMu sync.Mutex
	listeners   map[int]func([]*entity.Post)
	nextID      int

	retryDelay    time.Duration
	maxRetryDelay time.Duration
}

func NewPostFeed(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostFeed {
	return &PostFeed{
		postRepo:      postRepo,
		userRepo:      userRepo,
		listeners:     make(map[int]func([]*entity.Post)),
		retryDelay:    time.Second,
		maxRetryDelay: 30 * time.Second,
	}
}

// Start keeps the feed subscribed until ctx is cancelled, resubscribing with
// backoff when the stream drops.
func (f *PostFeed) Start(ctx context.Context) error {
	delay := f.retryDelay
	for {
		err := f.postRepo.Watch(ctx, func(raw []*entity.Post) {
			f.replace(ctx, raw)
			delay = f.retryDelay
		})
		if ctx.Err() != nil {
			return nil
		}
		logger.Error("Post feed subscription ended: %v; resubscribing in %s", err, delay)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}
		if delay *= 2; delay > f.maxRetryDelay {
			delay = f.maxRetryDelay
		}
	}
}

// Load reads the collection once. The CLI uses it in place of Start.
func (f *PostFeed) Load(ctx context.Context) error {
	raw, err := f.postRepo.List(ctx)
	if err != nil {
		return err
	}
	f.replace(ctx, raw)
	return nil
}

func (f *PostFeed) replace(ctx context.Context, raw []*entity.Post) {
	names := make(map[string]string)
	for _, post := range raw {
		post.UserName = f.resolveName(ctx, post.Email, names)
	}

	sortPendingFirst(raw)

	f.mu.Lock()
	f.posts = raw
	f.synced = true
	f.mu.Unlock()

	logger.Debug("Post feed refreshed: %d posts", len(raw))
	f.notify()
}

// sortPendingFirst keeps the collection's enumeration order among equal statuses.
func sortPendingFirst(posts []*entity.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PostStatus == entity.PostStatusPending && posts[j].PostStatus != entity.PostStatusPending
	})
}

// resolveName is best effort: any failure shows the email instead.
func (f *PostFeed) resolveName(ctx context.Context, email string, seen map[string]string) string {
	if email == "" {
		return ""
	}
	if name, ok := seen[email]; ok {
		return name
	}

	name := email
	user, err := f.userRepo.GetByEmail(ctx, email)
	if err != nil {
		logger.Debug("No user name for %s: %v", email, err)
	} else if user.Name != "" {
		name = user.Name
	}
	seen[email] = name
	return name
}

func (f *PostFeed) Posts() []*entity.Post {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return clonePosts(f.posts, nil)
}

func (f *PostFeed) Pending() []*entity.Post {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return clonePosts(f.posts, func(p *entity.Post) bool { return p.PostStatus == entity.PostStatusPending })
}

func (f *PostFeed) ByStatus(status entity.PostStatus) []*entity.Post {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return clonePosts(f.posts, func(p *entity.Post) bool { return p.PostStatus == status })
}

func (f *PostFeed) Get(id string) (*entity.Post, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, p := range f.posts {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return nil, false
}

func (f *PostFeed) Synchronized() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.synced
}

// Mirror applies a committed moderation write to the local list without a
// refetch. The next remote snapshot supersedes it anyway.
func (f *PostFeed) Mirror(id string, update entity.ModerationUpdate) {
	f.mu.Lock()
	found := false
	for _, p := range f.posts {
		if p.ID != id {
			continue
		}
		p.PostStatus = update.Status
		if update.Classifications != nil {
			p.NSFWClassifications = update.Classifications
		}
		at := update.ModeratedAt
		p.ModeratedAt = &at
		p.ModeratedBy = update.ModeratedBy
		found = true
		break
	}
	if found {
		sortPendingFirst(f.posts)
	}
	f.mu.Unlock()

	if found {
		f.notify()
	}
}

// Remove drops a deleted post from the local list.
func (f *PostFeed) Remove(id string) {
	f.mu.Lock()
	kept := f.posts[:0:0]
	for _, p := range f.posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	removed := len(kept) != len(f.posts)
	f.posts = kept
	f.mu.Unlock()

	if removed {
		f.notify()
	}
}

// Subscribe registers fn for every list change and returns its cancel func.
func (f *PostFeed) Subscribe(fn func([]*entity.Post)) func() {
	f.listenersMu.Lock()
	id := f.nextID
	f.nextID++
	f.listeners[id] = fn
	f.listenersMu.Unlock()

	return func() {
		f.listenersMu.Lock()
		delete(f.listeners, id)
		f.listenersMu.Unlock()
	}
}

func (f *PostFeed) notify() {
	f.listenersMu.Lock()
	fns := make([]func([]*entity.Post), 0, len(f.listeners))
	for _, fn := range f.listeners {
		fns = append(fns, fn)
	}
	f.listenersMu.Unlock()

	if len(fns) == 0 {
		return
	}
	snapshot := f.Posts()
	for _, fn := range fns {
		fn(snapshot)
	}
}

func clonePosts(posts []*entity.Post, keep func(*entity.Post) bool) []*entity.Post {
	out := make([]*entity.Post, 0, len(posts))
	for _, p := range posts {
		if keep == nil || keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}
