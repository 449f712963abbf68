package entity

import (
	"time"
)

// Category is a top-level taxonomy node keyed by name. Sub-categories and
// services are stored beneath it.
type Category struct {
	Name      string    `json:"name" firestore:"name"`
	Image     string    `json:"image" firestore:"image"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

type SubCategory struct {
	Name         string    `json:"name" firestore:"name"`
	Image        string    `json:"image" firestore:"image"`
	CategoryName string    `json:"categoryName" firestore:"categoryName"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt"`
}

type Service struct {
	Name         string    `json:"name" firestore:"name"`
	Image        string    `json:"image" firestore:"image"`
	CategoryName string    `json:"categoryName" firestore:"categoryName"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt"`
}

// ChildKind selects one of the two child collections of a category.
type ChildKind string

const (
	ChildSubCategory ChildKind = "subCategories"
	ChildService     ChildKind = "services"
)
