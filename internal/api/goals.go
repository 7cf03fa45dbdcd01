package api

import (
	"fmt"
	"net/url"
	"sort"
)

// ListGoals returns all goals owned by ownerID, ordered by creation time
// ascending. Documents without a creation time sort earliest.
func (c *Client) ListGoals(ownerID string) ([]Goal, error) {
	docs, err := c.runOwnedQuery(CollectionGoals, ownerID)
	if err != nil {
		return nil, err
	}

	goals := make([]Goal, 0, len(docs))
	for i := range docs {
		goals = append(goals, decodeGoal(&docs[i]))
	}
	sort.SliceStable(goals, func(i, j int) bool {
		return goals[i].CreatedAt.Before(goals[j].CreatedAt)
	})
	return goals, nil
}

// CreateGoal creates a goal owned by ownerID with the given title.
func (c *Client) CreateGoal(ownerID, title string) (*Goal, error) {
	doc := Document{Fields: encodeNewGoal(ownerID, title)}

	var created Document
	if err := c.Post(c.collectionPath(CollectionGoals), doc, &created); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	goal := decodeGoal(&created)
	return &goal, nil
}

// UpdateGoalFields applies a partial update to a goal.
func (c *Client) UpdateGoalFields(id string, upd GoalFieldUpdate) error {
	fields, mask := encodeGoalUpdate(upd)
	if len(mask) == 0 {
		return nil
	}

	query := url.Values{}
	for _, field := range mask {
		query.Add("updateMask.fieldPaths", field)
	}

	doc := Document{Fields: fields}
	if err := c.Patch(c.collectionPath(CollectionGoals)+"/"+id, query, doc, nil); err != nil {
		return fmt.Errorf("failed to update goal %s: %w", id, err)
	}
	return nil
}

// DeleteGoal deletes a goal.
func (c *Client) DeleteGoal(id string) error {
	if err := c.Delete(c.collectionPath(CollectionGoals) + "/" + id); err != nil {
		return fmt.Errorf("failed to delete goal %s: %w", id, err)
	}
	return nil
}
