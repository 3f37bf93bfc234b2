// Package memory is a map-backed implementation of the domain repositories.
// It mirrors the Postgres store's semantics (idempotent likes, symmetric
// matches, one conversation per pair, cascading delete) and backs tests and
// local development without a database.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/emberdate/emberdate/internal/apperr"
	"github.com/emberdate/emberdate/internal/domain/entity"
	"github.com/emberdate/emberdate/internal/domain/repository"
)

type Store struct {
	mu        sync.Mutex
	users     map[string]*entity.User
	userOrder []string
	likes     map[string][]string // user id -> liked ids, insertion order
	matches   map[string][]string // user id -> matched ids, insertion order
	convos    map[string]*entity.Conversation
	pairConvo map[string]string // "low|high" -> conversation id
	messages  map[string][]entity.Message
	images    map[string]*entity.Image
}

func NewStore() *Store {
	return &Store{
		users:     make(map[string]*entity.User),
		likes:     make(map[string][]string),
		matches:   make(map[string][]string),
		convos:    make(map[string]*entity.Conversation),
		pairConvo: make(map[string]string),
		messages:  make(map[string][]entity.Message),
		images:    make(map[string]*entity.Image),
	}
}

func (s *Store) Users() repository.UserRepository                 { return &userRepo{s} }
func (s *Store) Matches() repository.MatchRepository              { return &matchRepo{s} }
func (s *Store) Conversations() repository.ConversationRepository { return &convoRepo{s} }
func (s *Store) Messages() repository.MessageRepository           { return &messageRepo{s} }
func (s *Store) Images() repository.ImageRepository               { return &imageRepo{s} }

func pairKey(a, b string) string {
	low, high := entity.OrderedPair(a, b)
	return low + "|" + high
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func remove(list []string, v string) []string {
	out := list[:0]
	for _, x := range list {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// hydrate returns a copy of the user with the like/match lists attached.
// Callers hold s.mu.
func (s *Store) hydrate(u *entity.User) *entity.User {
	cp := *u
	cp.Likes = append([]string{}, s.likes[u.ID]...)
	cp.Matches = append([]string{}, s.matches[u.ID]...)
	return &cp
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return errors.New("duplicate email")
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	r.s.userOrder = append(r.s.userOrder, u.ID)
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return r.s.hydrate(u), nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return r.s.hydrate(u), nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *userRepo) UpdateProfile(_ context.Context, id, username string, age int, bio string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return apperr.ErrNotFound
	}
	u.Username = username
	u.Age = age
	u.Bio = bio
	return nil
}

func (r *userRepo) Candidates(_ context.Context, userID string) ([]entity.PublicProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.PublicProfile, 0)
	for _, id := range r.s.userOrder {
		if id == userID {
			continue
		}
		if contains(r.s.likes[userID], id) || contains(r.s.matches[userID], id) {
			continue
		}
		if u, ok := r.s.users[id]; ok {
			out = append(out, u.Public())
		}
	}
	return out, nil
}

func (r *userRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return apperr.ErrNotFound
	}

	delete(r.s.likes, id)
	delete(r.s.matches, id)
	for other := range r.s.likes {
		r.s.likes[other] = remove(r.s.likes[other], id)
	}
	for other := range r.s.matches {
		r.s.matches[other] = remove(r.s.matches[other], id)
	}
	for cid, c := range r.s.convos {
		if c.HasParticipant(id) {
			delete(r.s.convos, cid)
			delete(r.s.messages, cid)
			delete(r.s.pairConvo, pairKey(c.Participants[0], c.Participants[1]))
		}
	}
	for cid, msgs := range r.s.messages {
		kept := msgs[:0]
		for _, m := range msgs {
			if m.Sender != id && m.Receiver != id {
				kept = append(kept, m)
			}
		}
		r.s.messages[cid] = kept
	}
	if u.ImageID != "" {
		delete(r.s.images, u.ImageID)
	}

	delete(r.s.users, id)
	r.s.userOrder = remove(r.s.userOrder, id)
	return nil
}

type matchRepo struct{ s *Store }

func (r *matchRepo) RecordLike(_ context.Context, actorID, targetID string) (*entity.LikeOutcome, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !contains(r.s.likes[actorID], targetID) {
		r.s.likes[actorID] = append(r.s.likes[actorID], targetID)
	}

	out := &entity.LikeOutcome{Mutual: contains(r.s.likes[targetID], actorID)}
	if !out.Mutual {
		return out, nil
	}

	if contains(r.s.matches[actorID], targetID) {
		out.AlreadyMatched = true
	} else {
		r.s.matches[actorID] = append(r.s.matches[actorID], targetID)
		r.s.matches[targetID] = append(r.s.matches[targetID], actorID)
	}

	key := pairKey(actorID, targetID)
	if cid, ok := r.s.pairConvo[key]; ok {
		c := *r.s.convos[cid]
		out.Conversation = &c
		return out, nil
	}
	c := &entity.Conversation{
		ID:           uuid.NewString(),
		Participants: [2]string{actorID, targetID},
		CreatedAt:    time.Now().UnixMilli(),
	}
	r.s.convos[c.ID] = c
	r.s.pairConvo[key] = c.ID
	cp := *c
	out.Conversation = &cp
	return out, nil
}

type convoRepo struct{ s *Store }

func (r *convoRepo) GetByID(_ context.Context, id string) (*entity.Conversation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.convos[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *convoRepo) ListByParticipant(_ context.Context, userID string) ([]entity.Conversation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.Conversation, 0)
	for _, c := range r.s.convos {
		if c.HasParticipant(userID) {
			out = append(out, *c)
		}
	}
	return out, nil
}

type messageRepo struct{ s *Store }

func (r *messageRepo) Create(_ context.Context, m *entity.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	r.s.messages[m.ConversationID] = append(r.s.messages[m.ConversationID], *m)
	return nil
}

func (r *messageRepo) ListByConversation(_ context.Context, conversationID string) ([]entity.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]entity.Message{}, r.s.messages[conversationID]...), nil
}

type imageRepo struct{ s *Store }

func (r *imageRepo) Save(_ context.Context, userID string, img *entity.Image) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return "", apperr.ErrNotFound
	}
	if u.ImageID != "" {
		img.ID = u.ImageID
	} else {
		img.ID = uuid.NewString()
		u.ImageID = img.ID
	}
	cp := *img
	r.s.images[img.ID] = &cp
	return img.ID, nil
}

func (r *imageRepo) GetByID(_ context.Context, id string) (*entity.Image, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	img, ok := r.s.images[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *img
	return &cp, nil
}

var (
	_ repository.UserRepository         = (*userRepo)(nil)
	_ repository.MatchRepository        = (*matchRepo)(nil)
	_ repository.ConversationRepository = (*convoRepo)(nil)
	_ repository.MessageRepository      = (*messageRepo)(nil)
	_ repository.ImageRepository        = (*imageRepo)(nil)
)
