package service

import (
	"context"
	"fmt"

	"collegeconnect/internal/domain"
)

// ConversationService derives the conversation list on read. No
// conversation entity is persisted; the flat message log is the only
// source of truth.
type ConversationService struct {
	messages domain.MessageRepository
}

func NewConversationService(messages domain.MessageRepository) *ConversationService {
	return &ConversationService{messages: messages}
}

// ListForUser returns one summary per distinct counterpart, most recently
// active conversation first. A user with no messages gets an empty list.
func (s *ConversationService) ListForUser(ctx context.Context, userID int64) ([]*domain.ConversationSummary, error) {
	msgs, err := s.messages.ListInvolving(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return DeriveSummaries(userID, msgs), nil
}

// DeriveSummaries collapses a newest-first message log into per-counterpart
// summaries. The first message seen for a counterpart is necessarily the
// most recent one exchanged with them, and keeping the walk order means the
// result is already sorted by last-message recency. Timestamp ties keep the
// input order, so the result is deterministic for identical input.
func DeriveSummaries(userID int64, msgs []*domain.Message) []*domain.ConversationSummary {
	seen := make(map[int64]struct{}, len(msgs))
	summaries := make([]*domain.ConversationSummary, 0, len(msgs))
	for _, m := range msgs {
		other := m.Counterpart(userID)
		if _, ok := seen[other.ID]; ok {
			continue
		}
		seen[other.ID] = struct{}{}
		summaries = append(summaries, &domain.ConversationSummary{
			User:        other,
			LastMessage: m,
		})
	}
	return summaries
}
