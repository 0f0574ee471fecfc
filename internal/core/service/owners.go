package service

import (
	"context"
	"fmt"

	"github.com/sirpyerre/proposals-api/internal/core/domain"
	"github.com/sirpyerre/proposals-api/internal/core/ports"
)

// resolveOwners returns the public summaries of the given user ids. Ids
// without a stored user map to a summary carrying only the id.
func resolveOwners(ctx context.Context, users ports.UserRepository, ids []string) (map[string]domain.UserSummary, error) {
	out := make(map[string]domain.UserSummary, len(ids))
	unique := uniqueIDs(ids)
	if len(unique) == 0 {
		return out, nil
	}

	found, err := users.FindByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("resolve owners: %w", err)
	}
	for _, u := range found {
		out[u.ID] = u.Summary()
	}
	for _, id := range unique {
		if _, ok := out[id]; !ok {
			out[id] = domain.UserSummary{ID: id}
		}
	}
	return out, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// requireOwner guards owner-scoped operations against an empty identity,
// which repositories would otherwise read as "no owner filter".
func requireOwner(ownerID string) error {
	if ownerID == "" {
		return domain.ErrInvalidToken
	}
	return nil
}
