package entity

import (
	"time"
)

type PostStatus string

const (
	PostStatusPending  PostStatus = "Pending"
	PostStatusApproved PostStatus = "Approved"
	PostStatusRejected PostStatus = "Rejected"
)

func (s PostStatus) IsValid() bool {
	switch s {
	case PostStatusPending, PostStatusApproved, PostStatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether moderation is finished for the post.
func (s PostStatus) IsTerminal() bool {
	return s == PostStatusApproved || s == PostStatusRejected
}

// Post is one user-submitted listing. UserName is resolved from the users
// collection at read time and never stored on the post document.
type Post struct {
	ID                  string             `json:"id" firestore:"-"`
	Email               string             `json:"email" firestore:"email"`
	UserName            string             `json:"userName" firestore:"-"`
	PostDescription     string             `json:"postDescription" firestore:"postDescription"`
	PostImages          []string           `json:"postImages" firestore:"postImages"`
	PostStatus          PostStatus         `json:"postStatus" firestore:"postStatus"`
	BookDay             string             `json:"bookDay,omitempty" firestore:"bookDay,omitempty"`
	NSFWClassifications map[string]float64 `json:"nsfwClassifications,omitempty" firestore:"nsfwClassifications,omitempty"`
	ModeratedAt         *time.Time         `json:"moderatedAt,omitempty" firestore:"moderatedAt,omitempty"`
	ModeratedBy         string             `json:"moderatedBy,omitempty" firestore:"moderatedBy,omitempty"`
}

// ModerationUpdate is the set of fields the status writer commits in one write.
type ModerationUpdate struct {
	Status          PostStatus
	Classifications map[string]float64
	ModeratedBy     string
	ModeratedAt     time.Time
}

// DisplayName falls back to the submitter's email when the user lookup failed.
func (p *Post) DisplayName() string {
	if p.UserName != "" {
		return p.UserName
	}
	return p.Email
}

func (p *Post) Clone() *Post {
	cp := *p
	if p.PostImages != nil {
		cp.PostImages = append([]string(nil), p.PostImages...)
	}
	if p.NSFWClassifications != nil {
		cp.NSFWClassifications = make(map[string]float64, len(p.NSFWClassifications))
		for k, v := range p.NSFWClassifications {
			cp.NSFWClassifications[k] = v
		}
	}
	if p.ModeratedAt != nil {
		t := *p.ModeratedAt
		cp.ModeratedAt = &t
	}
	return &cp
}
