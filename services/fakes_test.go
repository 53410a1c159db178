package services

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Dosada05/trade-machine/models"
	"github.com/Dosada05/trade-machine/repositories"
	"github.com/Dosada05/trade-machine/storage"
)

func cloneTrade(t models.Trade) models.Trade {
	t.Teams = append([]string(nil), t.Teams...)
	t.DraftPicks = append([]models.TradeDraftPick(nil), t.DraftPicks...)
	return t
}

type fakeTradeRepo struct {
	mu     sync.Mutex
	trades map[uuid.UUID]models.Trade
	err    error
	// failCreateAt makes the n-th Create call (1-based) return createErr.
	failCreateAt int
	createErr    error
	creates      int
	executors    []repositories.SQLExecutor
}

func newFakeTradeRepo() *fakeTradeRepo {
	return &fakeTradeRepo{trades: make(map[uuid.UUID]models.Trade)}
}

func (r *fakeTradeRepo) Create(ctx context.Context, exec repositories.SQLExecutor, trade *models.Trade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	r.executors = append(r.executors, exec)
	if r.creates == r.failCreateAt {
		return r.createErr
	}
	if r.err != nil {
		return r.err
	}
	if trade.ID == uuid.Nil {
		trade.ID = uuid.New()
	}
	for i := range trade.DraftPicks {
		trade.DraftPicks[i].ID = uuid.New()
		trade.DraftPicks[i].TradeID = trade.ID
		trade.DraftPicks[i].Position = i
	}
	r.trades[trade.ID] = cloneTrade(*trade)
	return nil
}

func (r *fakeTradeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Trade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trades[id]
	if !ok {
		return nil, repositories.ErrTradeNotFound
	}
	c := cloneTrade(t)
	return &c, nil
}

func (r *fakeTradeRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Trade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]models.Trade, 0)
	for _, t := range r.trades {
		if t.UserID == userID {
			out = append(out, cloneTrade(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeTradeRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	list, err := r.ListByUser(ctx, userID)
	return len(list), err
}

func (r *fakeTradeRepo) Update(ctx context.Context, trade *models.Trade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.trades[trade.ID]; !ok {
		return repositories.ErrTradeNotFound
	}
	for i := range trade.DraftPicks {
		trade.DraftPicks[i].ID = uuid.New()
		trade.DraftPicks[i].TradeID = trade.ID
		trade.DraftPicks[i].Position = i
	}
	r.trades[trade.ID] = cloneTrade(*trade)
	return nil
}

func (r *fakeTradeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.trades[id]; !ok {
		return repositories.ErrTradeNotFound
	}
	delete(r.trades, id)
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) List(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeTeamRepo struct {
	teams []models.Team
}

func (r *fakeTeamRepo) List(ctx context.Context) ([]models.Team, error) {
	out := append([]models.Team(nil), r.teams...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	for _, t := range r.teams {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (r *fakeTeamRepo) CreateIfMissing(ctx context.Context, exec repositories.SQLExecutor, team *models.Team) (bool, error) {
	for _, t := range r.teams {
		if t.Name == team.Name {
			return false, nil
		}
	}
	team.ID = uuid.New()
	r.teams = append(r.teams, *team)
	return true, nil
}

type fakePickRepo struct {
	picks []models.DraftPick
}

func (r *fakePickRepo) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.DraftPick, error) {
	out := make([]models.DraftPick, 0)
	for _, p := range r.picks {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePickRepo) Count(ctx context.Context, exec repositories.SQLExecutor) (int, error) {
	return len(r.picks), nil
}

func (r *fakePickRepo) CreateBatch(ctx context.Context, exec repositories.SQLExecutor, picks []models.DraftPick) error {
	r.picks = append(r.picks, picks...)
	return nil
}

type publishedEvent struct {
	userID    uuid.UUID
	eventType string
	tradeID   uuid.UUID
}

type fakeEvents struct {
	events []publishedEvent
}

func (f *fakeEvents) PublishTradeEvent(userID uuid.UUID, eventType string, tradeID uuid.UUID) {
	f.events = append(f.events, publishedEvent{userID, eventType, tradeID})
}

type fakeUploader struct {
	objects map[string][]byte
	deleted []string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: make(map[string][]byte)}
}

func (u *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return nil, err
	}
	u.objects[key] = buf.Bytes()
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error {
	u.deleted = append(u.deleted, key)
	delete(u.objects, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

type fakeGenerator struct {
	answer   string
	err      error
	calls    int
	prompt   string
	messages []ChatMessage
	maxTok   int32
}

func (g *fakeGenerator) Generate(ctx context.Context, systemPrompt string, messages []ChatMessage, maxOutputTokens int32) (string, error) {
	g.calls++
	g.prompt = systemPrompt
	g.messages = messages
	g.maxTok = maxOutputTokens
	return g.answer, g.err
}

type fakeTokens struct{}

func (fakeTokens) Issue(user *models.User) (string, time.Time, error) {
	return "token-" + user.ID.String(), time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), nil
}
