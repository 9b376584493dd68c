package task

func strptr(s string) *string { return &s }

// SeedTasks returns the sample tasks written on a first run so the page never
// starts empty. IDs and dates are fixed; two runs seed identical data.
func SeedTasks() []Task {
	return []Task{
		{
			ID:          "seed-plan-sprint",
			Date:        NewDate(2026, 3, 6),
			Description: "Plan next sprint and assign owners",
			Status:      StatusPending,
		},
		{
			ID:          "seed-review-pr",
			Date:        NewDate(2026, 3, 5),
			Description: "Review open pull requests",
			Link:        strptr("https://github.com/pulls"),
			Status:      StatusPending,
		},
		{
			ID:          "seed-update-deps",
			Date:        NewDate(2026, 3, 4),
			Description: "Update project dependencies",
			Status:      StatusCompleted,
		},
		{
			ID:          "seed-write-notes",
			Date:        NewDate(2026, 3, 3),
			Description: "Write up meeting notes for the team wiki",
			Link:        strptr("https://wiki.example.com/notes"),
			Status:      StatusPending,
		},
		{
			ID:          "seed-clean-inbox",
			Date:        NewDate(2026, 3, 2),
			Description: "Clean out the support inbox",
			Status:      StatusCompleted,
		},
	}
}
