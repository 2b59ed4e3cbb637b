package repository

// Resource names of the mock API document
const (
	ResourceTasks             = "tasks"
	ResourceEvents            = "events"
	ResourceCategories        = "categories"
	ResourceClasses           = "classes"
	ResourceNotifications     = "notifications"
	ResourceStats             = "stats"
	ResourceUser              = "user"
	ResourceTelegram          = "telegram"
	ResourceAIRecommendations = "aiRecommendations"
	ResourceAIChat            = "aiChat"
)

// Collections lists the id-keyed collections served by the generic router
var Collections = []string{
	ResourceTasks,
	ResourceEvents,
	ResourceCategories,
	ResourceClasses,
	ResourceNotifications,
}

// DefaultDocument returns the document a fresh mock API starts from
func DefaultDocument(email string) map[string]interface{} {
	category := func(id int, name, description, color string) Record {
		return Record{"id": id, "name": name, "description": description, "color": color}
	}

	return map[string]interface{}{
		ResourceUser: Record{
			"id":     1,
			"name":   "Demo User",
			"email":  email,
			"avatar": "",
		},
		ResourceStats: Record{
			"activeTasks":      0,
			"urgentTasks":      0,
			"completedToday":   0,
			"productivity":     0,
			"productivityData": []interface{}{0, 0, 0, 0, 0, 0, 0},
		},
		ResourceTasks:  []interface{}{},
		ResourceEvents: []interface{}{},
		ResourceCategories: []interface{}{
			category(1, "Study", "Lectures, homework and exam preparation", "blue"),
			category(2, "Work", "Job and internship tasks", "purple"),
			category(3, "Personal", "Personal errands and plans", "green"),
			category(4, "Home", "Household chores", "yellow"),
			category(5, "Health", "Sport, doctors and wellbeing", "red"),
			category(6, "Hobby", "Leisure and hobbies", "pink"),
		},
		ResourceClasses:           []interface{}{},
		ResourceNotifications:     []interface{}{},
		ResourceTelegram:          []interface{}{},
		ResourceAIRecommendations: []interface{}{},
		ResourceAIChat:            []interface{}{},
	}
}
