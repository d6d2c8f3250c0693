package sheet

type TaskOption func(*Task)

func WithHours(hours string) TaskOption {
	return func(task *Task) {
		task.Hours = NormalizeHours(hours)
	}
}

func WithDescription(description string) TaskOption {
	return func(task *Task) {
		task.Description = description
	}
}

func WithFinished(finished bool) TaskOption {
	return func(task *Task) {
		task.Finished = finished
	}
}

func WithDate(date string) TaskOption {
	return func(task *Task) {
		task.Date = NormalizeDate(date)
	}
}
