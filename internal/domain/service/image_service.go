package service

import (
	"context"
	"image"

	"peopleconnect/internal/domain/entity"
)

// FetchedImage is the raw body of a remote image.
type FetchedImage struct {
	Data        []byte
	ContentType string
}

type ImageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*FetchedImage, error)
}

type ImageClassifier interface {
	Classify(ctx context.Context, img image.Image) ([]entity.Prediction, error)
}
