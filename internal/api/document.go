package api

import (
	"strings"
	"time"
)

// Value is a typed document field value. Exactly one member is set.
type Value struct {
	StringValue    *string `json:"stringValue,omitempty"`
	BooleanValue   *bool   `json:"booleanValue,omitempty"`
	TimestampValue *string `json:"timestampValue,omitempty"`
}

// Document is a stored document on the wire. Name is the full resource
// path; the final path segment is the document ID.
type Document struct {
	Name       string           `json:"name,omitempty"`
	Fields     map[string]Value `json:"fields,omitempty"`
	CreateTime string           `json:"createTime,omitempty"`
	UpdateTime string           `json:"updateTime,omitempty"`
}

func stringValue(s string) Value { return Value{StringValue: &s} }
func boolValue(b bool) Value     { return Value{BooleanValue: &b} }

func (v Value) str() string {
	if v.StringValue == nil {
		return ""
	}
	return *v.StringValue
}

func (v Value) boolean() bool {
	return v.BooleanValue != nil && *v.BooleanValue
}

// ID returns the document ID, the last segment of the resource name.
func (d *Document) ID() string {
	if i := strings.LastIndexByte(d.Name, '/'); i >= 0 {
		return d.Name[i+1:]
	}
	return d.Name
}

// createdAt returns the server-assigned creation time. A missing or
// unparsable timestamp yields the zero time, which sorts earliest.
func (d *Document) createdAt() time.Time {
	if d.CreateTime == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, d.CreateTime)
	if err != nil {
		return time.Time{}
	}
	return t
}

// decodeTask maps a stored document onto a Task.
func decodeTask(d *Document) Task {
	return Task{
		ID:        d.ID(),
		Text:      d.Fields["text"].str(),
		Notes:     d.Fields["notes"].str(),
		Completed: d.Fields["completed"].boolean(),
		TaskDate:  d.Fields["taskDate"].str(),
		DueDate:   d.Fields["dueDate"].str(),
		DueTime:   d.Fields["dueTime"].str(),
		Time:      d.Fields["time"].str(),
		Assignee:  d.Fields["assignee"].str(),
		CreatedBy: d.Fields["createdBy"].str(),
		CreatedAt: d.createdAt(),
	}
}

// decodeGoal maps a stored document onto a Goal.
func decodeGoal(d *Document) Goal {
	return Goal{
		ID:        d.ID(),
		Title:     d.Fields["title"].str(),
		Completed: d.Fields["completed"].boolean(),
		CreatedBy: d.Fields["createdBy"].str(),
		CreatedAt: d.createdAt(),
	}
}

// encodeNewTask builds the field set for task creation, applying the
// creation defaults for the fields the caller does not choose.
func encodeNewTask(ownerID string, t NewTask) map[string]Value {
	return map[string]Value{
		"text":      stringValue(t.Text),
		"notes":     stringValue(""),
		"completed": boolValue(false),
		"taskDate":  stringValue(t.TaskDate),
		"dueDate":   stringValue(""),
		"dueTime":   stringValue(""),
		"time":      stringValue("Anytime"),
		"assignee":  stringValue("You"),
		"createdBy": stringValue(ownerID),
	}
}

// encodeNewGoal builds the field set for goal creation.
func encodeNewGoal(ownerID, title string) map[string]Value {
	return map[string]Value{
		"title":     stringValue(title),
		"completed": boolValue(false),
		"createdBy": stringValue(ownerID),
	}
}

// encodeTaskUpdate converts a partial task update into document fields plus
// the update mask naming exactly the fields to touch.
func encodeTaskUpdate(upd TaskFieldUpdate) (map[string]Value, []string) {
	fields := map[string]Value{}
	var mask []string

	if upd.Text != nil {
		fields["text"] = stringValue(*upd.Text)
		mask = append(mask, "text")
	}
	if upd.Notes != nil {
		fields["notes"] = stringValue(*upd.Notes)
		mask = append(mask, "notes")
	}
	if upd.Completed != nil {
		fields["completed"] = boolValue(*upd.Completed)
		mask = append(mask, "completed")
	}
	if upd.DueDate != nil {
		fields["dueDate"] = stringValue(*upd.DueDate)
		mask = append(mask, "dueDate")
	}
	if upd.DueTime != nil {
		fields["dueTime"] = stringValue(*upd.DueTime)
		mask = append(mask, "dueTime")
	}

	return fields, mask
}

// encodeGoalUpdate converts a partial goal update into document fields plus
// the update mask.
func encodeGoalUpdate(upd GoalFieldUpdate) (map[string]Value, []string) {
	fields := map[string]Value{}
	var mask []string

	if upd.Title != nil {
		fields["title"] = stringValue(*upd.Title)
		mask = append(mask, "title")
	}
	if upd.Completed != nil {
		fields["completed"] = boolValue(*upd.Completed)
		mask = append(mask, "completed")
	}

	return fields, mask
}
