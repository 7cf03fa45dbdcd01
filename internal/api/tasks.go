package api

import (
	"fmt"
	"net/url"
	"sort"
)

type collectionSelector struct {
	CollectionID string `json:"collectionId"`
}

type fieldReference struct {
	FieldPath string `json:"fieldPath"`
}

type fieldFilter struct {
	Field fieldReference `json:"field"`
	Op    string         `json:"op"`
	Value Value          `json:"value"`
}

type queryFilter struct {
	FieldFilter *fieldFilter `json:"fieldFilter,omitempty"`
}

type structuredQuery struct {
	From  []collectionSelector `json:"from"`
	Where *queryFilter         `json:"where,omitempty"`
}

type runQueryRequest struct {
	StructuredQuery structuredQuery `json:"structuredQuery"`
}

// runQueryResult is one streamed query result. Entries without a document
// (progress markers) are skipped.
type runQueryResult struct {
	Document *Document `json:"document,omitempty"`
}

// queryParent returns the parent path for collection queries.
func (c *Client) queryParent() string {
	return fmt.Sprintf("%s/artifacts/%s/public/data", c.documentsRoot(), c.appID)
}

// runOwnedQuery fetches all documents of a collection owned by ownerID.
// Ownership filtering happens server-side; it is the sole access-control
// boundary.
func (c *Client) runOwnedQuery(collection, ownerID string) ([]Document, error) {
	req := runQueryRequest{
		StructuredQuery: structuredQuery{
			From: []collectionSelector{{CollectionID: collection}},
			Where: &queryFilter{
				FieldFilter: &fieldFilter{
					Field: fieldReference{FieldPath: "createdBy"},
					Op:    "EQUAL",
					Value: stringValue(ownerID),
				},
			},
		},
	}

	var results []runQueryResult
	if err := c.Post(c.queryParent()+":runQuery", req, &results); err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}

	docs := make([]Document, 0, len(results))
	for _, r := range results {
		if r.Document != nil {
			docs = append(docs, *r.Document)
		}
	}
	return docs, nil
}

// ListTasks returns all tasks owned by ownerID, ordered by creation time
// ascending. Documents without a creation time sort earliest.
func (c *Client) ListTasks(ownerID string) ([]Task, error) {
	docs, err := c.runOwnedQuery(CollectionTasks, ownerID)
	if err != nil {
		return nil, err
	}

	tasks := make([]Task, 0, len(docs))
	for i := range docs {
		tasks = append(tasks, decodeTask(&docs[i]))
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// CreateTask creates a task owned by ownerID, bound to t.TaskDate, with the
// creation defaults for the remaining fields. The server assigns the ID and
// creation timestamp.
func (c *Client) CreateTask(ownerID string, t NewTask) (*Task, error) {
	doc := Document{Fields: encodeNewTask(ownerID, t)}

	var created Document
	if err := c.Post(c.collectionPath(CollectionTasks), doc, &created); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	task := decodeTask(&created)
	return &task, nil
}

// UpdateTaskFields applies a partial update to a task. Fields not named in
// the update are left untouched; an empty update is a no-op.
func (c *Client) UpdateTaskFields(id string, upd TaskFieldUpdate) error {
	fields, mask := encodeTaskUpdate(upd)
	if len(mask) == 0 {
		return nil
	}

	query := url.Values{}
	for _, field := range mask {
		query.Add("updateMask.fieldPaths", field)
	}

	doc := Document{Fields: fields}
	if err := c.Patch(c.collectionPath(CollectionTasks)+"/"+id, query, doc, nil); err != nil {
		return fmt.Errorf("failed to update task %s: %w", id, err)
	}
	return nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(id string) error {
	if err := c.Delete(c.collectionPath(CollectionTasks) + "/" + id); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	return nil
}
