package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/sakif/reconnect/internal/apperror"
	"github.com/sakif/reconnect/internal/model"
	"github.com/sakif/reconnect/internal/repository"
)

// =========================================================================
// IN-MEMORY STORE
// =========================================================================
//
// memStore implements repository.Store over plain maps. Every repository
// stores and returns copies so a test cannot mutate state by accident.
// Setting fail makes every call return that error, which stands in for a
// broken database connection.

var errDriver = errors.New("driver: connection reset")

type memStore struct {
	users       map[uint]model.User
	onboardings map[uint]model.Onboarding // keyed by user id
	profiles    map[uint]model.UserProfile
	missions    map[uint]model.Mission
	messages    map[uint]model.Message
	nextID      uint
	txCalls     int
	fail        error
}

var _ repository.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		users:       map[uint]model.User{},
		onboardings: map[uint]model.Onboarding{},
		profiles:    map[uint]model.UserProfile{},
		missions:    map[uint]model.Mission{},
		messages:    map[uint]model.Message{},
	}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) Users() repository.UserRepository { return memUsers{m} }
func (m *memStore) Onboardings() repository.OnboardingRepository { return memOnboardings{m} }
func (m *memStore) Profiles() repository.ProfileRepository { return memProfiles{m} }
func (m *memStore) Missions() repository.MissionRepository { return memMissions{m} }
func (m *memStore) Messages() repository.MessageRepository { return memMessages{m} }

func (m *memStore) WithinTx(_ context.Context, fn func(tx repository.Store) error) error {
	m.txCalls++
	return fn(m)
}

type memUsers struct{ m *memStore }

func (r memUsers) Create(_ context.Context, u *model.User) error {
	if r.m.fail != nil {
		return r.m.fail
	}
	u.ID = r.m.id()
	r.m.users[u.ID] = *u
	return nil
}

func (r memUsers) GetByID(_ context.Context, id uint) (*model.User, error) {
	if r.m.fail != nil {
		return nil, r.m.fail
	}
	u, ok := r.m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	return &u, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if r.m.fail != nil {
		return nil, r.m.fail
	}
	for _, u := range r.m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (r memUsers) EmailTaken(_ context.Context, email string, exceptID uint) (bool, error) {
	if r.m.fail != nil {
		return false, r.m.fail
	}
	for _, u := range r.m.users {
		if u.Email == email && u.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (r memUsers) UsernameTaken(_ context.Context, username string, exceptID uint) (bool, error) {
	if r.m.fail != nil {
		return false, r.m.fail
	}
	for _, u := range r.m.users {
		if u.Username == username && u.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (r memUsers) Update(_ context.Context, u *model.User) error {
	if r.m.fail != nil {
		return r.m.fail
	}
	if _, ok := r.m.users[u.ID]; !ok {
		return apperror.NotFound("user", u.ID)
	}
	r.m.users[u.ID] = *u
	return nil
}

type memOnboardings struct{ m *memStore }

func (r memOnboardings) GetByUserID(_ context.Context, userID uint) (*model.Onboarding, error) {
	if r.m.fail != nil {
		return nil, r.m.fail
	}
	ob, ok := r.m.onboardings[userID]
	if !ok {
		return nil, apperror.NotFoundMessage("Onboarding data not found")
	}
	return &ob, nil
}

func (r memOnboardings) Save(_ context.Context, ob *model.Onboarding) error {
	if r.m.fail != nil {
		return r.m.fail
	}
	if ob.ID == 0 {
		ob.ID = r.m.id()
	}
	r.m.onboardings[ob.UserID] = *ob
	return nil
}

type memProfiles struct{ m *memStore }

func (r memProfiles) Create(_ context.Context, p *model.UserProfile) error {
	if r.m.fail != nil {
		return r.m.fail
	}
	if _, ok := r.m.profiles[p.UserID]; ok {
		return apperror.Conflict("user_id", "Profile already exists")
	}
	p.ID = r.m.id()
	r.m.profiles[p.UserID] = *p
	return nil
}

func (r memProfiles) GetByUserID(_ context.Context, userID uint) (*model.UserProfile, error) {
	if r.m.fail != nil {
		return nil, r.m.fail
	}
	p, ok := r.m.profiles[userID]
	if !ok {
		return nil, apperror.NotFoundMessage("Profile not found")
	}
	return &p, nil
}

func (r memProfiles) Update(_ context.Context, p *model.UserProfile) error {
	if r.m.fail != nil {
		return r.m.fail
	}
	if _, ok := r.m.profiles[p.UserID]; !ok {
		return apperror.NotFoundMessage("Profile not found")
	}
	r.m.profiles[p.UserID] = *p
	return nil
}

type memMissions struct{ m *memStore }

func (r memMissions) Create(_ context.Context, mission *model.Mission) error {
	if r.m.fail != nil {
		return r.m.fail
	}
	mission.ID = r.m.id()
	r.m.missions[mission.ID] = *mission
	return nil
}

func (r memMissions) GetByID(_ context.Context, userID, id uint) (*model.Mission, error) {
	if r.m.fail != nil {
		return nil, r.m.fail
	}
	mission, ok := r.m.missions[id]
	if !ok || mission.UserID != userID {
		return nil, apperror.NotFound("mission", id)
	}
	return &mission, nil
}

func (r memMissions) List(_ context.Context, userID uint, opts repository.ListOptions) ([]model.Mission, error) {
	if r.m.fail != nil {
		return nil, r.m.fail
	}
	out := []model.Mission{}
	for _, mission := range r.m.missions {
		if mission.UserID == userID {
			out = append(out, mission)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, opts), nil
}

func (r memMissions) Update(_ context.Context, mission *model.Mission) error {
	if r.m.fail != nil {
		return r.m.fail
	}
	stored, ok := r.m.missions[mission.ID]
	if !ok || stored.UserID != mission.UserID {
		return apperror.NotFound("mission", mission.ID)
	}
	r.m.missions[mission.ID] = *mission
	return nil
}

func (r memMissions) Delete(_ context.Context, userID, id uint) error {
	if r.m.fail != nil {
		return r.m.fail
	}
	stored, ok := r.m.missions[id]
	if !ok || stored.UserID != userID {
		return apperror.NotFound("mission", id)
	}
	delete(r.m.missions, id)
	return nil
}

type memMessages struct{ m *memStore }

func (r memMessages) Create(_ context.Context, msg *model.Message) error {
	if r.m.fail != nil {
		return r.m.fail
	}
	msg.ID = r.m.id()
	r.m.messages[msg.ID] = *msg
	return nil
}

func (r memMessages) GetByID(_ context.Context, userID, id uint) (*model.Message, error) {
	if r.m.fail != nil {
		return nil, r.m.fail
	}
	msg, ok := r.m.messages[id]
	if !ok || msg.UserID != userID {
		return nil, apperror.NotFound("message", id)
	}
	return &msg, nil
}

func (r memMessages) List(_ context.Context, userID uint, opts repository.ListOptions) ([]model.Message, error) {
	if r.m.fail != nil {
		return nil, r.m.fail
	}
	out := []model.Message{}
	for _, msg := range r.m.messages {
		if msg.UserID == userID {
			out = append(out, msg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return paginate(out, opts), nil
}

func paginate[T any](items []T, opts repository.ListOptions) []T {
	if opts.Offset >= len(items) {
		return []T{}
	}
	items = items[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(items) {
		items = items[:opts.Limit]
	}
	return items
}

// =========================================================================
// HELPERS
// =========================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// seedUser stores an active user directly, bypassing signup.
func seedUser(t *testing.T, store *memStore, email, username string) *model.User {
	t.Helper()
	u := &model.User{Email: email, Username: username, HashedPassword: "x", IsActive: true}
	if err := store.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return u
}

func strPtr(s string) *string { return &s }
