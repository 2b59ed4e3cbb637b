package services

import (
	"context"
	"strings"
	"testing"

	"github.com/taskmaster/planner/internal/domain/entities"
)

func TestReplyTo(t *testing.T) {
	tests := []struct {
		message string
		prefix  string
	}{
		{"Hello there", "Hello!"},
		{"Can you help me?", "Of course!"},
		{"What can you do", "I can help you plan"},
		{"How to be more productive", "To be more productive"},
		{"When should I study?", "Studies suggest"},
		{"So much stress", "To fight stress"},
		{"Exam next week", "To prepare for an exam"},
		{"qwerty", "Sorry"},
	}

	for _, tt := range tests {
		if got := ReplyTo(tt.message); !strings.HasPrefix(got, tt.prefix) {
			t.Errorf("ReplyTo(%q) = %q, want prefix %q", tt.message, got, tt.prefix)
		}
	}
}

func TestReplyStoresBothMessages(t *testing.T) {
	ctx := context.Background()
	svc := NewAiService(ctx, offlineDeps(t))
	session := NewSessionID()

	if _, err := svc.Reply(ctx, 1, "hello", session); err != nil {
		t.Fatalf("reply: %v", err)
	}
	svc.Reply(ctx, 1, "other session", NewSessionID())

	msgs, err := svc.GetChatMessages(ctx, 1, session)
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if len(msgs) != 2 || !msgs[0].IsUser || msgs[1].IsUser {
		t.Fatalf("unexpected session messages %+v", msgs)
	}
}

func TestGenerateRecommendations(t *testing.T) {
	ctx := context.Background()
	svc := NewAiService(ctx, offlineDeps(t))

	tasks := []entities.Task{
		{ID: 1, Title: "Old essay", DueDate: day(-3), Priority: entities.PriorityLow},
		{ID: 2, Title: "Thesis", DueDate: day(10), Priority: entities.PriorityHigh},
		{ID: 3, Title: "Math exam", DueDate: day(5), Category: "Math"},
		{ID: 4, Title: "Finished exam", Completed: true, Priority: entities.PriorityHigh},
	}

	recs, err := svc.GenerateRecommendations(ctx, 1, tasks)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %+v", recs)
	}
	if *recs[0].TaskID != 1 || *recs[1].TaskID != 2 || *recs[2].TaskID != 3 {
		t.Fatalf("unexpected task links %+v", recs)
	}
	if recs[2].Type != entities.RecommendationStudy || recs[2].RelatedSubject != "Math" {
		t.Fatalf("unexpected exam recommendation %+v", recs[2])
	}

	applied, err := svc.MarkRecommendationApplied(ctx, recs[0].ID)
	if err != nil || !applied.Applied {
		t.Fatalf("apply: %+v, %v", applied, err)
	}
}

func TestSuggestionsOffline(t *testing.T) {
	svc := NewAiService(context.Background(), offlineDeps(t))

	got, err := svc.Suggestions(context.Background())
	if err != nil || len(got) != len(DefaultSuggestions()) {
		t.Fatalf("unexpected suggestions %+v, %v", got, err)
	}
}
