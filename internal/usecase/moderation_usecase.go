package usecase

import (
	"context"
	"image"
	"sync"
	"time"

	"peopleconnect/internal/domain/entity"
	"peopleconnect/internal/domain/repository"
	"peopleconnect/internal/domain/service"
	"peopleconnect/internal/infrastructure/metrics"
	"peopleconnect/pkg/errors"
	"peopleconnect/pkg/logger"
)

// ScannerActor is recorded as moderatedBy for automatic decisions.
const ScannerActor = "scanner"

// ImageDecoder turns fetched bytes into pixels for the classifier.
type ImageDecoder func(data []byte) (image.Image, error)

type ModerationUseCase struct {
	postRepo   repository.PostRepository
	feed       *PostFeed
	fetcher    service.ImageFetcher
	decode     ImageDecoder
	classifier service.ImageClassifier
	policy     service.ModerationPolicy

	scanMu   sync.Mutex
	stateMu  sync.RWMutex
	lastScan time.Time
	now      func() time.Time
}

func NewModerationUseCase(
	postRepo repository.PostRepository,
	feed *PostFeed,
	fetcher service.ImageFetcher,
	decode ImageDecoder,
	classifier service.ImageClassifier,
	policy service.ModerationPolicy,
) *ModerationUseCase {
	return &ModerationUseCase{
		postRepo:   postRepo,
		feed:       feed,
		fetcher:    fetcher,
		decode:     decode,
		classifier: classifier,
		policy:     policy,
		now:        time.Now,
	}
}

type PostScanResult struct {
	PostID           string             `json:"postId"`
	Status           entity.PostStatus  `json:"status"`
	Held             bool               `json:"held"`
	Superseded       bool               `json:"superseded"`
	Classifications  map[string]float64 `json:"classifications"`
	ImagesClassified int                `json:"imagesClassified"`
	ImagesFailed     int                `json:"imagesFailed"`
	ImagesSkipped    int                `json:"imagesSkipped"`
}

type ScanReport struct {
	StartedAt  time.Time        `json:"startedAt"`
	FinishedAt time.Time        `json:"finishedAt"`
	Scanned    int              `json:"scanned"`
	Approved   int              `json:"approved"`
	Rejected   int              `json:"rejected"`
	Held       int              `json:"held"`
	Superseded int              `json:"superseded"`
	Results    []PostScanResult `json:"results"`
}

// ScanPending classifies every post that is Pending in the current feed
// snapshot, one post and one image at a time, and commits each decision
// before moving on. Posts that turn Pending during the scan wait for the
// next one. A failed status write stops the scan and is returned.
func (uc *ModerationUseCase) ScanPending(ctx context.Context) (*ScanReport, error) {
	if !uc.scanMu.TryLock() {
		return nil, errors.Conflict("A moderation scan is already running")
	}
	defer uc.scanMu.Unlock()

	report := &ScanReport{StartedAt: uc.now(), Results: []PostScanResult{}}
	pending := uc.feed.Pending()
	logger.Info("Moderation scan started: %d pending posts", len(pending))

	defer func() {
		report.FinishedAt = uc.now()
		metrics.ScanDuration.Observe(report.FinishedAt.Sub(report.StartedAt).Seconds())

		uc.stateMu.Lock()
		uc.lastScan = report.FinishedAt
		uc.stateMu.Unlock()
	}()

	for _, post := range pending {
		result, err := uc.scanPost(ctx, post)
		if err != nil {
			logger.Error("Moderation scan aborted at post %s: %v", post.ID, err)
			return report, err
		}

		report.Scanned++
		report.Results = append(report.Results, result)
		switch {
		case result.Superseded:
			report.Superseded++
		case result.Held:
			report.Held++
		case result.Status == entity.PostStatusRejected:
			report.Rejected++
		default:
			report.Approved++
		}
	}

	logger.Info("Moderation scan finished: scanned=%d approved=%d rejected=%d held=%d superseded=%d",
		report.Scanned, report.Approved, report.Rejected, report.Held, report.Superseded)
	return report, nil
}

func (uc *ModerationUseCase) scanPost(ctx context.Context, post *entity.Post) (PostScanResult, error) {
	result := PostScanResult{PostID: post.ID}
	agg := uc.policy.NewAggregate()

	for i, url := range post.PostImages {
		predictions, err := uc.classifyImage(ctx, post.ID, url)
		if err != nil {
			result.ImagesFailed++
			if uc.policy.OnImageError == service.ImageErrorHold {
				result.Held = true
			}
			continue
		}

		agg.Add(predictions)
		result.ImagesClassified++

		if uc.policy.EarlyExit && agg.Rejected() {
			result.ImagesSkipped = len(post.PostImages) - i - 1
			break
		}
	}

	result.Classifications = agg.Scores()

	// A confirmed rejection stands even if another image could not be read.
	if result.Held && !agg.Rejected() {
		result.Status = entity.PostStatusPending
		metrics.ModerationDecisions.WithLabelValues("Held").Inc()
		logger.Warn("Post %s held for manual review: %d of %d images unreadable",
			post.ID, result.ImagesFailed, len(post.PostImages))
		return result, nil
	}
	result.Held = false
	result.Status = agg.Decision()

	update := entity.ModerationUpdate{
		Status:          result.Status,
		Classifications: result.Classifications,
		ModeratedBy:     ScannerActor,
		ModeratedAt:     uc.now(),
	}
	if err := uc.postRepo.UpdateModeration(ctx, post.ID, update); err != nil {
		// Decided or deleted since the snapshot was taken; that outcome stands.
		if errors.Is(err, "CONFLICT") || errors.IsNotFound(err) {
			logger.Warn("Post %s changed during the scan, scanner decision %s dropped: %v", post.ID, result.Status, err)
			result.Superseded = true
			result.Status = ""
			return result, nil
		}
		return result, err
	}
	uc.feed.Mirror(post.ID, update)

	metrics.ModerationDecisions.WithLabelValues(string(result.Status)).Inc()
	logger.LogModerationDecision(post.ID, string(result.Status), result.Classifications, result.ImagesClassified)
	return result, nil
}

// classifyImage runs fetch, decode and classify for one image. Any failure
// is logged and counted; the caller decides what the missing signal means.
func (uc *ModerationUseCase) classifyImage(ctx context.Context, postID, url string) ([]entity.Prediction, error) {
	fetched, err := uc.fetcher.Fetch(ctx, url)
	if err != nil {
		metrics.ModerationImageFailures.WithLabelValues("fetch").Inc()
		logger.Warn("Post %s: image %s could not be fetched: %v", postID, url, err)
		return nil, err
	}

	img, err := uc.decode(fetched.Data)
	if err != nil {
		metrics.ModerationImageFailures.WithLabelValues("decode").Inc()
		logger.Warn("Post %s: image %s could not be decoded: %v", postID, url, err)
		return nil, err
	}

	predictions, err := uc.classifier.Classify(ctx, img)
	if err != nil {
		metrics.ModerationImageFailures.WithLabelValues("classify").Inc()
		logger.Warn("Post %s: image %s could not be classified: %v", postID, url, err)
		return nil, err
	}
	return predictions, nil
}

func (uc *ModerationUseCase) LastScanAt() time.Time {
	uc.stateMu.RLock()
	defer uc.stateMu.RUnlock()
	return uc.lastScan
}

func (uc *ModerationUseCase) ApprovePost(ctx context.Context, id, adminID string) (*entity.Post, error) {
	return uc.decideManually(ctx, id, adminID, entity.PostStatusApproved)
}

func (uc *ModerationUseCase) RejectPost(ctx context.Context, id, adminID string) (*entity.Post, error) {
	return uc.decideManually(ctx, id, adminID, entity.PostStatusRejected)
}

// decideManually reads the post from the store, not the feed. The write is
// conditional as well, so a scanner decision landing in between wins.
func (uc *ModerationUseCase) decideManually(ctx context.Context, id, adminID string, status entity.PostStatus) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.PostStatus != entity.PostStatusPending {
		return nil, errors.Conflict("Post has already been " + string(post.PostStatus))
	}

	update := entity.ModerationUpdate{
		Status:      status,
		ModeratedBy: adminID,
		ModeratedAt: uc.now(),
	}
	if err := uc.postRepo.UpdateModeration(ctx, id, update); err != nil {
		return nil, err
	}
	uc.feed.Mirror(id, update)
	logger.Info("Post %s manually set to %s by %s", id, status, adminID)

	post.PostStatus = status
	post.ModeratedAt = &update.ModeratedAt
	post.ModeratedBy = adminID
	if cached, ok := uc.feed.Get(id); ok {
		post.UserName = cached.UserName
	}
	return post, nil
}

func (uc *ModerationUseCase) DeletePost(ctx context.Context, id string) error {
	if _, err := uc.postRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := uc.postRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.feed.Remove(id)
	return nil
}

func (uc *ModerationUseCase) ListPosts(status string) ([]*entity.Post, error) {
	if status == "" {
		return uc.feed.Posts(), nil
	}
	s := entity.PostStatus(status)
	if !s.IsValid() {
		return nil, errors.Validation("status must be one of: Pending Approved Rejected")
	}
	return uc.feed.ByStatus(s), nil
}
