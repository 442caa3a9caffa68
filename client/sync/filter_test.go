package sync

import "testing"

func TestApplyFilter(t *testing.T) {
	tasks := []Task{
		{ID: "1", Title: "a", Completed: false, AssignedTo: AssigneePartner1},
		{ID: "2", Title: "b", Completed: true, AssignedTo: AssigneePartner2},
		{ID: "3", Title: "c", Completed: false, AssignedTo: AssigneeUnassigned},
		{ID: "4", Title: "d", Completed: true, AssignedTo: AssigneePartner1},
	}

	tests := []struct {
		name    string
		filter  Filter
		wantIDs []string
	}{
		{"all", FilterAll, []string{"1", "2", "3", "4"}},
		{"active", FilterActive, []string{"1", "3"}},
		{"completed", FilterCompleted, []string{"2", "4"}},
		{"partner1", FilterPartner1, []string{"1", "4"}},
		{"partner2", FilterPartner2, []string{"2"}},
		{"unknown tag behaves as all", Filter("bogus"), []string{"1", "2", "3", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFilter(tasks, tt.filter)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d tasks, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("got[%d].ID = %q, want %q (order must be preserved)", i, got[i].ID, id)
				}
			}
		})
	}

	t.Run("empty input", func(t *testing.T) {
		if got := ApplyFilter(nil, FilterActive); len(got) != 0 {
			t.Errorf("got %d tasks from nil input", len(got))
		}
	})
}
