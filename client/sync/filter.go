package sync

// Filter tag สำหรับมุมมอง task list
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
	FilterPartner1  Filter = "partner1"
	FilterPartner2  Filter = "partner2"
)

// ApplyFilter เป็น pure function - คืน subsequence ที่ match filter
// โดยคงลำดับเดิม filter ที่ไม่รู้จักถือเป็น FilterAll
func ApplyFilter(tasks []Task, filter Filter) []Task {
	pred := filterPredicate(filter)
	out := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if pred(task) {
			out = append(out, task)
		}
	}
	return out
}

func filterPredicate(filter Filter) func(Task) bool {
	switch filter {
	case FilterActive:
		return func(t Task) bool { return !t.Completed }
	case FilterCompleted:
		return func(t Task) bool { return t.Completed }
	case FilterPartner1:
		return func(t Task) bool { return t.AssignedTo == AssigneePartner1 }
	case FilterPartner2:
		return func(t Task) bool { return t.AssignedTo == AssigneePartner2 }
	default:
		return func(Task) bool { return true }
	}
}
