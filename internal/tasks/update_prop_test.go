package tasks

import (
	"context"
	"testing"

	"pgregory.net/rapid"

	"github.com/taskroom-project/backend/internal/database/models"
)

// Partial-update semantics, checked over arbitrary patches: a field changes
// exactly when it is present in the patch, identity fields never move, and
// updated_at is stamped only for non-empty patches.
func TestUpdatePatchSemantics(t *testing.T) {
	priorities := []models.Priority{
		models.PriorityLow, models.PriorityMedium,
		models.PriorityHigh, models.PriorityUrgent,
	}

	rapid.Check(t, func(t *rapid.T) {
		svc := newTestService()
		ctx := context.Background()

		task, err := svc.Create(ctx, CreateInput{
			Text:     rapid.StringMatching(`[a-z ]{1,20}`).Draw(t, "text"),
			Creator:  "alice",
			RoomID:   "R1",
			Priority: rapid.SampledFrom(priorities).Draw(t, "priority"),
			Tags:     rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,6}`), 0, 4).Draw(t, "tags"),
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		var patch models.TaskPatch
		if rapid.Bool().Draw(t, "patchText") {
			v := rapid.StringMatching(`[a-z ]{1,20}`).Draw(t, "newText")
			patch.Text = &v
		}
		if rapid.Bool().Draw(t, "patchCompleted") {
			v := rapid.Bool().Draw(t, "newCompleted")
			patch.Completed = &v
		}
		if rapid.Bool().Draw(t, "patchPriority") {
			v := rapid.SampledFrom(priorities).Draw(t, "newPriority")
			patch.Priority = &v
		}
		if rapid.Bool().Draw(t, "patchTags") {
			v := models.StringList(rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,6}`), 0, 4).Draw(t, "newTags"))
			patch.Tags = &v
		}
		if rapid.Bool().Draw(t, "patchDescription") {
			v := rapid.StringMatching(`[a-z ]{0,30}`).Draw(t, "newDescription")
			patch.Description = &v
		}

		updated, err := svc.Update(ctx, task.ID, patch)
		if err != nil {
			t.Fatalf("update: %v", err)
		}

		if patch.Text != nil {
			if updated.Text != *patch.Text {
				t.Fatalf("text not applied: %q != %q", updated.Text, *patch.Text)
			}
		} else if updated.Text != task.Text {
			t.Fatalf("text changed without being patched")
		}

		if patch.Completed != nil {
			if updated.Completed != *patch.Completed {
				t.Fatalf("completed not applied")
			}
		} else if updated.Completed != task.Completed {
			t.Fatalf("completed changed without being patched")
		}

		if patch.Priority != nil {
			if updated.Priority != *patch.Priority {
				t.Fatalf("priority not applied")
			}
		} else if updated.Priority != task.Priority {
			t.Fatalf("priority changed without being patched")
		}

		wantTags := task.Tags
		if patch.Tags != nil {
			wantTags = *patch.Tags
		}
		if len(updated.Tags) != len(wantTags) {
			t.Fatalf("tags mismatch: %v != %v", updated.Tags, wantTags)
		}
		for i := range wantTags {
			if updated.Tags[i] != wantTags[i] {
				t.Fatalf("tags mismatch at %d: %v != %v", i, updated.Tags, wantTags)
			}
		}

		if patch.Description != nil {
			if updated.Description == nil || *updated.Description != *patch.Description {
				t.Fatalf("description not applied")
			}
		} else if updated.Description != task.Description {
			t.Fatalf("description changed without being patched")
		}

		// Identity fields are structurally out of reach of a patch.
		if updated.ID != task.ID || updated.RoomID != task.RoomID ||
			updated.Creator != task.Creator || !updated.CreatedAt.Equal(task.CreatedAt) {
			t.Fatalf("identity field changed by update")
		}

		if patch.Empty() {
			if updated.UpdatedAt != nil {
				t.Fatalf("empty patch must not stamp updated_at")
			}
		} else if updated.UpdatedAt == nil {
			t.Fatalf("non-empty patch must stamp updated_at")
		}
	})
}
