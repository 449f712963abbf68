package firebase

import (
	"context"

	"firebase.google.com/go/v4/db"

	"peopleconnect/pkg/errors"
)

// legacyTaxonomyRoots are the Realtime Database nodes earlier app revisions
// wrote categories and services to.
var legacyTaxonomyRoots = []string{"category", "categories", "services"}

// RealtimeTaxonomySource reads the raw legacy taxonomy trees so they can be
// migrated into Firestore.
type RealtimeTaxonomySource struct {
	client *db.Client
}

func NewRealtimeTaxonomySource(client *db.Client) *RealtimeTaxonomySource {
	return &RealtimeTaxonomySource{client: client}
}

// Fetch returns each legacy root that exists, keyed by root name.
func (s *RealtimeTaxonomySource) Fetch(ctx context.Context) (map[string]map[string]interface{}, error) {
	trees := make(map[string]map[string]interface{})
	for _, root := range legacyTaxonomyRoots {
		var node map[string]interface{}
		if err := s.client.NewRef(root).Get(ctx, &node); err != nil {
			return nil, errors.Internal("Failed to read legacy node "+root, err)
		}
		if len(node) > 0 {
			trees[root] = node
		}
	}
	return trees, nil
}
