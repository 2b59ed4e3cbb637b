package entities

import "strings"

// Priority is the urgency level of a task
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// NotificationType classifies a notification for display and delivery filtering
type NotificationType string

const (
	NotificationInfo     NotificationType = "info"
	NotificationWarning  NotificationType = "warning"
	NotificationTask     NotificationType = "task"
	NotificationCalendar NotificationType = "calendar"
	NotificationSystem   NotificationType = "system"
)

// RecommendationType classifies an AI recommendation
type RecommendationType string

const (
	RecommendationStudy        RecommendationType = "study"
	RecommendationProductivity RecommendationType = "productivity"
	RecommendationSchedule     RecommendationType = "schedule"
	RecommendationGeneral      RecommendationType = "general"
)

// Identified is implemented by every entity stored in an id-keyed collection
type Identified interface {
	GetID() int
}

// Task represents a planner task
type Task struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"dueDate"`
	Time        string   `json:"time,omitempty"`
	Priority    Priority `json:"priority"`
	Category    string   `json:"category"`
	Progress    int      `json:"progress"`
	Completed   bool     `json:"completed"`
}

func (t Task) GetID() int { return t.ID }

// IsUrgent reports whether the task counts towards the urgent tasks statistic
func (t Task) IsUrgent() bool {
	return !t.Completed && t.Priority == PriorityHigh
}

// ExternalID returns the calendar link identifier for the task
func (t Task) ExternalID() string {
	return TaskExternalID(t.ID)
}

// Event represents a calendar event
type Event struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Icon        string `json:"icon"`
	ColorClass  string `json:"colorClass"`
	Description string `json:"description,omitempty"`
	ExternalID  string `json:"externalId,omitempty"`
}

func (e Event) GetID() int { return e.ID }

// Category represents a task category
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

func (c Category) GetID() int { return c.ID }

// Class is one weekly timetable slot. Time is a range such as "09:00 - 10:30".
type Class struct {
	ID        int    `json:"id"`
	Time      string `json:"time"`
	Day       string `json:"day"`
	Subject   string `json:"subject"`
	Type      string `json:"type"`
	Location  string `json:"location"`
	SubjectID int    `json:"subjectId"`
}

func (c Class) GetID() int { return c.ID }

// StartTime returns the start of the class time range
func (c Class) StartTime() string {
	start, _, _ := strings.Cut(c.Time, " - ")
	return strings.TrimSpace(start)
}

// Subject is the legacy shape some API deployments still serve instead of categories
type Subject struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Teacher string `json:"teacher,omitempty"`
	Color   string `json:"color"`
}

func (s Subject) GetID() int { return s.ID }

// Category converts the subject into a category
func (s Subject) Category() Category {
	return Category{
		ID:          s.ID,
		Name:        s.Name,
		Description: "Category converted from subject '" + s.Name + "'",
		Color:       s.Color,
	}
}

// Notification is a message shown to a user and optionally delivered by email or chat
type Notification struct {
	ID           int                    `json:"id"`
	UserID       int                    `json:"userId"`
	Title        string                 `json:"title"`
	Message      string                 `json:"message"`
	Type         NotificationType       `json:"type"`
	CreatedAt    string                 `json:"createdAt"`
	IsRead       bool                   `json:"isRead"`
	TaskID       *int                   `json:"taskId,omitempty"`
	EventID      *int                   `json:"eventId,omitempty"`
	EmailSent    *bool                  `json:"emailSent,omitempty"`
	TelegramSent *bool                  `json:"telegramSent,omitempty"`
	RelatedTitle string                 `json:"relatedTitle,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

func (n Notification) GetID() int { return n.ID }

// EmailNotification is an outgoing email
type EmailNotification struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Text    string `json:"text"`
	HTML    string `json:"html,omitempty"`
}

// Stats holds the dashboard counters
type Stats struct {
	ActiveTasks      int   `json:"activeTasks"`
	UrgentTasks      int   `json:"urgentTasks"`
	CompletedToday   int   `json:"completedToday"`
	Productivity     int   `json:"productivity"`
	ProductivityData []int `json:"productivityData"`
}

// TelegramSettings selects which notifications reach the chat channel
type TelegramSettings struct {
	Tasks     bool `json:"tasks"`
	Events    bool `json:"events"`
	Important bool `json:"important"`
}

// TelegramConfig links a user to a chat
type TelegramConfig struct {
	UserID    int              `json:"userId"`
	ChatID    string           `json:"chatId"`
	Username  string           `json:"username"`
	Connected bool             `json:"connected"`
	Settings  TelegramSettings `json:"settings"`
}

// TelegramMessage is an outgoing chat message
type TelegramMessage struct {
	ChatID    string `json:"chatId" validate:"required"`
	Text      string `json:"text" validate:"required"`
	ParseMode string `json:"parseMode,omitempty"`
}

// AiRecommendation is an assistant suggestion for a user
type AiRecommendation struct {
	ID             int                `json:"id"`
	UserID         int                `json:"userId"`
	Text           string             `json:"text"`
	Type           RecommendationType `json:"type"`
	CreatedAt      string             `json:"createdAt"`
	Applied        bool               `json:"applied"`
	TaskID         *int               `json:"taskId,omitempty"`
	EventID        *int               `json:"eventId,omitempty"`
	RelatedSubject string             `json:"relatedSubject,omitempty"`
}

func (r AiRecommendation) GetID() int { return r.ID }

// Suggestion is a generic productivity tip served by the API
type Suggestion struct {
	Text     string `json:"text"`
	Type     string `json:"type"`
	Priority int    `json:"priority"`
}

// ChatMessage is one message of an assistant chat session
type ChatMessage struct {
	ID        int    `json:"id"`
	UserID    int    `json:"userId"`
	Text      string `json:"text"`
	IsUser    bool   `json:"isUser"`
	CreatedAt string `json:"createdAt"`
	SessionID string `json:"sessionId"`
}

func (m ChatMessage) GetID() int { return m.ID }

// User is the signed-in planner user
type User struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// Initials returns up to two upper-case initials of the user name
func (u User) Initials() string {
	parts := strings.Fields(u.Name)
	switch {
	case len(parts) == 0:
		return ""
	case len(parts) == 1:
		return strings.ToUpper(string([]rune(parts[0])[:1]))
	default:
		return strings.ToUpper(string([]rune(parts[0])[:1]) + string([]rune(parts[1])[:1]))
	}
}

// TaskExternalID builds the event link identifier of a task id
func TaskExternalID(taskID int) string {
	return "task-" + itoa(taskID)
}
