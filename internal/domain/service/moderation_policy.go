package service

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"peopleconnect/internal/domain/entity"
)

const (
	// ImageErrorIgnore treats an image that cannot be fetched, decoded or
	// classified as carrying no signal. The post can still be approved.
	ImageErrorIgnore = "ignore"
	// ImageErrorHold leaves the post Pending for manual review.
	ImageErrorHold = "hold"
)

type ModerationPolicy struct {
	Threshold    float64  `yaml:"threshold"`
	Labels       []string `yaml:"labels"`
	RejectLabels []string `yaml:"rejectLabels"`
	EarlyExit    bool     `yaml:"earlyExit"`
	OnImageError string   `yaml:"onImageError"`
}

func DefaultModerationPolicy() ModerationPolicy {
	return ModerationPolicy{
		Threshold:    0.7,
		Labels:       append([]string(nil), entity.ClassificationLabels...),
		RejectLabels: []string{entity.LabelHentai, entity.LabelPorn, entity.LabelSexy},
		EarlyExit:    true,
		OnImageError: ImageErrorIgnore,
	}
}

// LoadModerationPolicy reads a YAML policy file over the defaults. An empty
// path returns the defaults.
func LoadModerationPolicy(path string) (ModerationPolicy, error) {
	policy := DefaultModerationPolicy()
	if path == "" {
		return policy, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return policy, fmt.Errorf("read moderation policy: %w", err)
	}
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return policy, fmt.Errorf("parse moderation policy: %w", err)
	}
	if err := policy.Validate(); err != nil {
		return policy, err
	}
	return policy, nil
}

func (p ModerationPolicy) Validate() error {
	if p.Threshold <= 0 || p.Threshold > 1 {
		return fmt.Errorf("moderation policy: threshold must be in (0,1], got %v", p.Threshold)
	}
	if len(p.Labels) == 0 {
		return fmt.Errorf("moderation policy: labels must not be empty")
	}
	known := make(map[string]bool, len(p.Labels))
	for _, l := range p.Labels {
		known[l] = true
	}
	for _, l := range p.RejectLabels {
		if !known[l] {
			return fmt.Errorf("moderation policy: reject label %q is not a known label", l)
		}
	}
	switch p.OnImageError {
	case ImageErrorIgnore, ImageErrorHold:
	default:
		return fmt.Errorf("moderation policy: onImageError must be %q or %q", ImageErrorIgnore, ImageErrorHold)
	}
	return nil
}

// ScoreAggregate keeps the highest probability seen per label across all
// images of one post.
type ScoreAggregate struct {
	policy ModerationPolicy
	scores map[string]float64
}

func (p ModerationPolicy) NewAggregate() *ScoreAggregate {
	scores := make(map[string]float64, len(p.Labels))
	for _, l := range p.Labels {
		scores[l] = 0
	}
	return &ScoreAggregate{policy: p, scores: scores}
}

// Add folds one image's predictions into the running maxima. Labels outside
// the policy's label set are dropped.
func (a *ScoreAggregate) Add(predictions []entity.Prediction) {
	for _, pred := range predictions {
		current, ok := a.scores[pred.ClassName]
		if !ok {
			continue
		}
		if pred.Probability > current {
			a.scores[pred.ClassName] = pred.Probability
		}
	}
}

// Rejected reports whether any reject label has reached the threshold.
func (a *ScoreAggregate) Rejected() bool {
	for _, l := range a.policy.RejectLabels {
		if a.scores[l] >= a.policy.Threshold {
			return true
		}
	}
	return false
}

func (a *ScoreAggregate) Decision() entity.PostStatus {
	if a.Rejected() {
		return entity.PostStatusRejected
	}
	return entity.PostStatusApproved
}

// Scores returns a copy that is safe to persist.
func (a *ScoreAggregate) Scores() map[string]float64 {
	out := make(map[string]float64, len(a.scores))
	for k, v := range a.scores {
		out[k] = v
	}
	return out
}
