package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/emberdate/emberdate/internal/apperr"
	"github.com/emberdate/emberdate/internal/domain/entity"
	repo "github.com/emberdate/emberdate/internal/domain/repository"
)

// MatchService owns like submission, mutual-match detection and conversation
// creation. The atomicity of the mutual transition lives in the match
// repository; this layer validates input and shapes the result.
type MatchService struct {
	Users   repo.UserRepository
	Matches repo.MatchRepository
	Logger  *logrus.Logger
}

func NewMatchService(users repo.UserRepository, matches repo.MatchRepository, logger *logrus.Logger) *MatchService {
	return &MatchService{Users: users, Matches: matches, Logger: logger}
}

// MatchResult is the outcome of a like submission. When Matched is false only
// LikedUsername is set (the like acknowledgment); when true, Match is the
// privacy-scoped view of the other user, Convo the pair conversation and User
// the actor's own refreshed record.
type MatchResult struct {
	Matched       bool
	LikedUsername string
	Match         *entity.PublicProfile
	Convo         *entity.Conversation
	User          *entity.User
}

// SubmitLike records actor's like on target. Self-likes are rejected and the
// like itself is idempotent: repeating it never duplicates likes, matches or
// conversations.
func (s *MatchService) SubmitLike(ctx context.Context, actor *entity.User, targetID string) (*MatchResult, error) {
	if actor == nil {
		return nil, apperr.ErrUnauthorized
	}
	if targetID == actor.ID {
		return nil, apperr.ErrSelfLike
	}
	target, err := s.Users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	out, err := s.Matches.RecordLike(ctx, actor.ID, targetID)
	if err != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"actor": actor.ID, "target": targetID,
		}).Error("record like failed")
		return nil, err
	}

	if !out.Mutual {
		return &MatchResult{LikedUsername: target.Username}, nil
	}

	// Refresh the actor so the returned record carries the new like/match.
	fresh, err := s.Users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	pub := target.Public()
	s.Logger.WithFields(logrus.Fields{
		"actor": actor.ID, "target": targetID, "conversation": out.Conversation.ID,
	}).Info("match created")
	return &MatchResult{Matched: true, Match: &pub, Convo: out.Conversation, User: fresh}, nil
}

// Unmatched returns the actor's candidate list: everyone except themselves
// and anyone they already liked or matched. Order is store-native.
func (s *MatchService) Unmatched(ctx context.Context, actor *entity.User) ([]entity.PublicProfile, error) {
	if actor == nil {
		return nil, apperr.ErrUnauthorized
	}
	return s.Users.Candidates(ctx, actor.ID)
}
