// Package app builds the clients and use cases shared by the API server and
// the admin CLI.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"peopleconnect/internal/adapter/repository"
	domainrepo "peopleconnect/internal/domain/repository"
	"peopleconnect/internal/domain/service"
	"peopleconnect/internal/infrastructure/cache"
	"peopleconnect/internal/infrastructure/classifier"
	"peopleconnect/internal/infrastructure/firebase"
	"peopleconnect/internal/infrastructure/imageproxy"
	"peopleconnect/internal/infrastructure/storage"
	"peopleconnect/internal/usecase"
	"peopleconnect/pkg/config"
	"peopleconnect/pkg/logger"
)

type App struct {
	Config *config.Config

	Firestore *firestore.Client
	Identity  *firebase.FirebaseAuthClient
	Storage   *storage.CloudStorageClient
	Cache     *cache.Cache
	Fetcher   *imageproxy.Fetcher

	PostRepo     domainrepo.PostRepository
	UserRepo     domainrepo.UserRepository
	CategoryRepo domainrepo.CategoryRepository

	Feed       *usecase.PostFeed
	Auth       *usecase.AuthUseCase
	Users      *usecase.UserUseCase
	Moderation *usecase.ModerationUseCase
	Categories *usecase.CategoryUseCase
	Dashboard  *usecase.DashboardUseCase
	// Migration is nil unless FIREBASE_DATABASE_URL points at the legacy database.
	Migration *usecase.TaxonomyMigrationUseCase
}

// credentials prefers inline service account JSON, then a key file. With
// neither, the Google client libraries fall back to default credentials.
func credentials(cfg *config.Config) ([]option.ClientOption, error) {
	if cfg.FirebaseServiceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccountJSON))}, nil
	}

	if cfg.FirebaseServiceAccountPath != "" {
		if _, err := os.Stat(cfg.FirebaseServiceAccountPath); err != nil {
			return nil, fmt.Errorf("service account file %s: %w", cfg.FirebaseServiceAccountPath, err)
		}
		logger.Info("Using Firebase service account from file: %s", cfg.FirebaseServiceAccountPath)
		return []option.ClientOption{option.WithCredentialsFile(cfg.FirebaseServiceAccountPath)}, nil
	}

	logger.Warn("No service account configured; using application default credentials")
	return nil, nil
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	opts, err := credentials(cfg)
	if err != nil {
		return nil, err
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{
		ProjectID:     cfg.FirebaseProject,
		DatabaseURL:   cfg.FirebaseDatabaseURL,
		StorageBucket: cfg.StorageBucket,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase: %w", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase auth: %w", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}

	policy, err := service.LoadModerationPolicy(cfg.ModerationPolicyFile)
	if err != nil {
		firestoreClient.Close()
		return nil, err
	}

	a := &App{
		Config:    cfg,
		Firestore: firestoreClient,
		Identity:  firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey),
		Cache:     cache.Connect(cfg.RedisURL, "peopleconnect:"),
	}

	var files service.FileUploadService
	if cfg.StorageBucket != "" {
		a.Storage, err = storage.NewCloudStorageClient(ctx, cfg.StorageBucket, opts...)
		if err != nil {
			a.Close()
			return nil, err
		}
		files = a.Storage
	} else {
		logger.Warn("STORAGE_BUCKET not set; image uploads are disabled")
	}

	a.Fetcher = imageproxy.NewFetcher(a.Cache, imageproxy.Options{
		Timeout:      time.Duration(cfg.ImageProxyTimeoutSeconds) * time.Second,
		MaxBytes:     cfg.ImageProxyMaxBytes,
		CacheTTL:     time.Duration(cfg.ImageProxyCacheTTLSecond) * time.Second,
		AllowedHosts: cfg.ImageProxyAllowedHosts,
	})
	imageClassifier := classifier.NewHTTPClassifier(cfg.ClassifierURL, time.Duration(cfg.ClassifierTimeoutSeconds)*time.Second)

	a.PostRepo = repository.NewFirestorePostRepository(firestoreClient)
	a.UserRepo = repository.NewFirestoreUserRepository(firestoreClient)
	a.CategoryRepo = repository.NewFirestoreCategoryRepository(firestoreClient)

	a.Feed = usecase.NewPostFeed(a.PostRepo, a.UserRepo)
	a.Auth = usecase.NewAuthUseCase(a.Identity)
	a.Users = usecase.NewUserUseCase(a.UserRepo, a.Identity)
	a.Moderation = usecase.NewModerationUseCase(a.PostRepo, a.Feed, a.Fetcher, classifier.Decode, imageClassifier, policy)
	a.Categories = usecase.NewCategoryUseCase(a.CategoryRepo, files)
	a.Dashboard = usecase.NewDashboardUseCase(a.UserRepo, a.CategoryRepo, a.Feed, a.Moderation)

	if cfg.FirebaseDatabaseURL != "" {
		dbClient, err := firebaseApp.Database(ctx)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("initialize realtime database: %w", err)
		}
		a.Migration = usecase.NewTaxonomyMigrationUseCase(firebase.NewRealtimeTaxonomySource(dbClient), a.CategoryRepo)
	}

	logger.Info("Moderation policy: threshold=%.2f reject=%v earlyExit=%t onImageError=%s",
		policy.Threshold, policy.RejectLabels, policy.EarlyExit, policy.OnImageError)
	return a, nil
}

func (a *App) Close() {
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			logger.Warn("Closing storage client: %v", err)
		}
	}
	if err := a.Cache.Close(); err != nil {
		logger.Warn("Closing cache: %v", err)
	}
	if err := a.Firestore.Close(); err != nil {
		logger.Warn("Closing firestore client: %v", err)
	}
}
