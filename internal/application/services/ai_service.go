package services

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskmaster/planner/internal/adapters/localstore"
	"github.com/taskmaster/planner/internal/adapters/remote"
	"github.com/taskmaster/planner/internal/adapters/storage"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
	"github.com/taskmaster/planner/internal/ports"
)

// DefaultSuggestions are served when the API cannot be reached
func DefaultSuggestions() []entities.Suggestion {
	return []entities.Suggestion{
		{Text: "Plan the hardest tasks for the morning", Type: "productivity", Priority: 1},
		{Text: "Take a 5 minute break after every 25 minutes of work", Type: "productivity", Priority: 2},
		{Text: "Review lecture notes on the day of the lecture", Type: "study", Priority: 2},
		{Text: "Keep one evening a week free of study tasks", Type: "schedule", Priority: 3},
	}
}

// chatRule answers a message containing every keyword
type chatRule struct {
	keywords []string
	reply    string
}

var chatRules = []chatRule{
	{[]string{"hello"}, "Hello! How can I help you today?"},
	{[]string{"help"}, "Of course! I can help you plan tasks, review your schedule and suggest ways to be more productive. What are you interested in?"},
	{[]string{"what can you do"}, "I can help you plan tasks, review your schedule, suggest good times to work on projects and give productivity tips."},
	{[]string{"productiv"}, "To be more productive: 1) use the Pomodoro technique, 25 minutes of work and 5 minutes of rest; 2) plan the hardest tasks for your peak hours, usually the morning; 3) break big tasks into small subtasks; 4) take regular breaks to keep your energy up."},
	{[]string{"when", "study"}, "Studies suggest the best times to learn are the morning (9 to 12) and the late afternoon (16 to 18). It depends on your chronotype, so track when you are most productive."},
	{[]string{"stress"}, "To fight stress: 1) exercise regularly; 2) try meditation and breathing techniques; 3) sleep 7 to 8 hours; 4) eat well; 5) plan time to rest; 6) alternate kinds of activity during the day."},
	{[]string{"exam"}, "To prepare for an exam: 1) make a plan and split the material into parts; 2) use active recall instead of rereading; 3) explain the material out loud as if teaching it; 4) keep study sessions short but regular; 5) get enough sleep, especially the night before."},
}

const fallbackReply = "Sorry, I did not quite understand your question. Could you tell me more about what you want to plan?"

// AiService handles assistant recommendations and chat
type AiService struct {
	recommendations *storage.Collection[entities.AiRecommendation]
	chat            *storage.Collection[entities.ChatMessage]
	client          *remote.Client
	now             func() time.Time
	logger          *logger.Logger
}

// NewAiService creates a new assistant service
func NewAiService(ctx context.Context, deps Deps) *AiService {
	resolver := storage.NewResolver(deps.Prober)

	return &AiService{
		recommendations: storage.NewCollection(ctx, storage.CollectionConfig[entities.AiRecommendation]{
			Name:     "ai-recommendations",
			Remote:   storage.NewRemote[entities.AiRecommendation](deps.Client, "/ai/recommendations"),
			Local:    storage.NewLocal[entities.AiRecommendation](deps.Local, localstore.KeyAIRecommendations, nil),
			Resolver: resolver,
			Store:    deps.Local,
			Logger:   deps.Logger,
		}),
		chat: storage.NewCollection(ctx, storage.CollectionConfig[entities.ChatMessage]{
			Name:     "ai-chat",
			Remote:   storage.NewRemote[entities.ChatMessage](deps.Client, "/ai/chat"),
			Local:    storage.NewLocal[entities.ChatMessage](deps.Local, localstore.KeyAIChat, nil),
			Resolver: resolver,
			Store:    deps.Local,
			Logger:   deps.Logger,
		}),
		client: deps.Client,
		now:    deps.now,
		logger: deps.Logger.WithComponent("ai"),
	}
}

// NewSessionID returns a fresh chat session id
func NewSessionID() string {
	return uuid.NewString()
}

// GetRecommendations returns the recommendations of a user
func (s *AiService) GetRecommendations(ctx context.Context, userID int) ([]entities.AiRecommendation, error) {
	res, err := s.recommendations.List(ctx, ports.Filter{"userId": strconv.Itoa(userID)})
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	return res.Value, nil
}

// CreateRecommendation stores a recommendation stamped with the current time
func (s *AiService) CreateRecommendation(ctx context.Context, rec entities.AiRecommendation) (entities.AiRecommendation, error) {
	rec.CreatedAt = s.now().Format(time.RFC3339)

	res, err := s.recommendations.Create(ctx, rec)
	if err != nil {
		return entities.AiRecommendation{}, fmt.Errorf("failed to create recommendation: %w", err)
	}
	return res.Value, nil
}

// MarkRecommendationApplied flags a recommendation as applied
func (s *AiService) MarkRecommendationApplied(ctx context.Context, id int) (entities.AiRecommendation, error) {
	res, err := s.recommendations.Update(ctx, id, entities.Patch{"applied": true})
	if err != nil {
		return entities.AiRecommendation{}, fmt.Errorf("failed to apply recommendation %d: %w", id, err)
	}
	return res.Value.Current, nil
}

// GetChatMessages returns one chat session of a user
func (s *AiService) GetChatMessages(ctx context.Context, userID int, sessionID string) ([]entities.ChatMessage, error) {
	res, err := s.chat.List(ctx, ports.Filter{
		"userId":    strconv.Itoa(userID),
		"sessionId": sessionID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	return res.Value, nil
}

// SendChatMessage stores a chat message stamped with the current time
func (s *AiService) SendChatMessage(ctx context.Context, msg entities.ChatMessage) (entities.ChatMessage, error) {
	msg.CreatedAt = s.now().Format(time.RFC3339)

	res, err := s.chat.Create(ctx, msg)
	if err != nil {
		return entities.ChatMessage{}, fmt.Errorf("failed to store chat message: %w", err)
	}
	return res.Value, nil
}

// GenerateRecommendations derives recommendations from the task list and
// returns every recommendation of the user.
func (s *AiService) GenerateRecommendations(ctx context.Context, userID int, tasks []entities.Task) ([]entities.AiRecommendation, error) {
	now := s.now()

	var overdue, important, exam *entities.Task
	for i := range tasks {
		task := &tasks[i]
		if task.Completed {
			continue
		}
		if days, ok := daysUntil(task.DueDate, now); ok && days < 0 && overdue == nil {
			overdue = task
		}
		if task.Priority == entities.PriorityHigh && important == nil {
			important = task
		}
		if exam == nil && isExamTask(*task) {
			exam = task
		}
	}

	var generated []entities.AiRecommendation
	if overdue != nil {
		id := overdue.ID
		generated = append(generated, entities.AiRecommendation{
			UserID: userID,
			Text:   fmt.Sprintf("Work on the overdue task %q first", overdue.Title),
			Type:   entities.RecommendationProductivity,
			TaskID: &id,
		})
	}
	if important != nil {
		id := important.ID
		generated = append(generated, entities.AiRecommendation{
			UserID: userID,
			Text:   fmt.Sprintf("Break the important task %q into subtasks to work on it more effectively", important.Title),
			Type:   entities.RecommendationProductivity,
			TaskID: &id,
		})
	}
	if exam != nil {
		id := exam.ID
		subject := exam.Category
		if subject == "" {
			subject = "the subject"
		}
		generated = append(generated, entities.AiRecommendation{
			UserID:         userID,
			Text:           fmt.Sprintf("Set aside 2 hours today to prepare for the %s exam", subject),
			Type:           entities.RecommendationStudy,
			TaskID:         &id,
			RelatedSubject: exam.Category,
		})
	}

	for _, rec := range generated {
		if _, err := s.CreateRecommendation(ctx, rec); err != nil {
			return nil, err
		}
	}

	return s.GetRecommendations(ctx, userID)
}

func isExamTask(task entities.Task) bool {
	return strings.Contains(strings.ToLower(task.Title), "exam") ||
		strings.Contains(strings.ToLower(task.Description), "exam")
}

// Reply stores the user's message, answers it and stores the answer
func (s *AiService) Reply(ctx context.Context, userID int, message, sessionID string) (string, error) {
	if _, err := s.SendChatMessage(ctx, entities.ChatMessage{
		UserID:    userID,
		Text:      message,
		IsUser:    true,
		SessionID: sessionID,
	}); err != nil {
		return "", err
	}

	reply := ReplyTo(message)

	if _, err := s.SendChatMessage(ctx, entities.ChatMessage{
		UserID:    userID,
		Text:      reply,
		IsUser:    false,
		SessionID: sessionID,
	}); err != nil {
		return "", err
	}

	return reply, nil
}

// ReplyTo picks the canned answer for a message
func ReplyTo(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range chatRules {
		matched := true
		for _, kw := range rule.keywords {
			if !strings.Contains(lower, kw) {
				matched = false
				break
			}
		}
		if matched {
			return rule.reply
		}
	}
	return fallbackReply
}

// Suggestions returns generic productivity tips
func (s *AiService) Suggestions(ctx context.Context) ([]entities.Suggestion, error) {
	res, err := storage.Do(ctx, s.recommendations.Resolver(), s.logger, "ai", "suggestions",
		func(ctx context.Context) ([]entities.Suggestion, error) {
			return remote.Send[[]entities.Suggestion](ctx, s.client, http.MethodPost, "/ai/suggestions", map[string]string{})
		},
		func(ctx context.Context) ([]entities.Suggestion, error) {
			return DefaultSuggestions(), nil
		},
	)
	return res.Value, err
}
