package mocks

import (
	"context"
	"image"
	"io"

	"github.com/stretchr/testify/mock"

	"peopleconnect/internal/domain/entity"
	"peopleconnect/internal/domain/service"
)

type IdentityService struct {
	mock.Mock
}

func (m *IdentityService) SignInWithEmailPassword(ctx context.Context, email, password string) (*service.SignInResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SignInResult), args.Error(1)
}

func (m *IdentityService) VerifyToken(ctx context.Context, idToken string) (*service.TokenClaims, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenClaims), args.Error(1)
}

func (m *IdentityService) RevokeSessions(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

func (m *IdentityService) DisableUserByEmail(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *IdentityService) EnableUserByEmail(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *IdentityService) DeleteUserByEmail(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *IdentityService) GrantAdmin(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

type FileUploadService struct {
	mock.Mock
}

func (m *FileUploadService) UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error) {
	args := m.Called(ctx, file, fileType, folder)
	return args.String(0), args.Error(1)
}

func (m *FileUploadService) DeleteFile(ctx context.Context, fileURL string) error {
	return m.Called(ctx, fileURL).Error(0)
}

type ImageFetcher struct {
	mock.Mock
}

func (m *ImageFetcher) Fetch(ctx context.Context, rawURL string) (*service.FetchedImage, error) {
	args := m.Called(ctx, rawURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FetchedImage), args.Error(1)
}

type ImageClassifier struct {
	mock.Mock
}

func (m *ImageClassifier) Classify(ctx context.Context, img image.Image) ([]entity.Prediction, error) {
	args := m.Called(ctx, img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Prediction), args.Error(1)
}
