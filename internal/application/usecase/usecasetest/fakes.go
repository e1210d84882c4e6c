// Package usecasetest holds in-memory doubles of the repositories and services the use
// cases depend on.
package usecasetest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/mock"

	"github.com/khoahotran/educursus/internal/application/service"
	"github.com/khoahotran/educursus/internal/domain/career"
	"github.com/khoahotran/educursus/internal/domain/chat"
	"github.com/khoahotran/educursus/internal/domain/gamification"
	"github.com/khoahotran/educursus/internal/domain/interview"
	"github.com/khoahotran/educursus/internal/domain/learning"
	"github.com/khoahotran/educursus/internal/domain/profile"
	"github.com/khoahotran/educursus/internal/domain/progress"
	"github.com/khoahotran/educursus/internal/domain/roadmap"
	"github.com/khoahotran/educursus/internal/domain/skill"
	"github.com/khoahotran/educursus/internal/domain/state"
	"github.com/khoahotran/educursus/internal/domain/student"
	"github.com/khoahotran/educursus/internal/domain/token"
)

// Generator replays Text and Err and records every prompt it receives.
type Generator struct {
	mu      sync.Mutex
	Text    string
	Err     error
	Prompts []string
}

func (g *Generator) Generate(_ context.Context, prompt string, _ service.GenerateOptions) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Prompts = append(g.Prompts, prompt)
	return g.Text, g.Err
}

func (g *Generator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Prompts)
}

// FailingGenerator returns a generator whose calls fail like a disabled provider.
func FailingGenerator() *Generator {
	return &Generator{Err: service.NewGenerationError("test", service.ErrRequestFailed, errors.New("unavailable"))}
}

type Publisher struct {
	mock.Mock
}

func (p *Publisher) PublishGamificationEvent(ctx context.Context, e gamification.Event) error {
	args := p.Called(ctx, e)
	return args.Error(0)
}

type StudentRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*student.Student
}

func NewStudentRepo(students ...*student.Student) *StudentRepo {
	r := &StudentRepo{byID: map[uuid.UUID]*student.Student{}}
	for _, s := range students {
		r.byID[s.ID] = s
	}
	return r
}

func (r *StudentRepo) Save(_ context.Context, s *student.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == s.Email && existing.ID != s.ID {
			return student.ErrEmailTaken
		}
	}
	cp := *s
	r.byID[s.ID] = &cp
	return nil
}

func (r *StudentRepo) FindByEmail(_ context.Context, email string) (*student.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email = student.NormalizeEmail(email)
	for _, s := range r.byID {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, student.ErrStudentNotFound
}

func (r *StudentRepo) FindByID(_ context.Context, id uuid.UUID) (*student.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, student.ErrStudentNotFound
	}
	cp := *s
	return &cp, nil
}

type ProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]profile.Profile
	Saves    int
}

func NewProfileRepo() *ProfileRepo {
	return &ProfileRepo{profiles: map[uuid.UUID]profile.Profile{}}
}

func (r *ProfileRepo) GetByStudentID(_ context.Context, id uuid.UUID) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	return &p, nil
}

func (r *ProfileRepo) Save(_ context.Context, id uuid.UUID, p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[id] = *p
	r.Saves++
	return nil
}

type SessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]profile.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[uuid.UUID]profile.Session{}}
}

func (s *SessionStore) Save(_ context.Context, sess *profile.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.StudentID] = *sess
	return nil
}

func (s *SessionStore) Get(_ context.Context, id uuid.UUID) (*profile.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, profile.ErrSessionNotFound
	}
	return &sess, nil
}

func (s *SessionStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

type ProgressRepo struct {
	mu   sync.Mutex
	data map[uuid.UUID]progress.Progress
}

func NewProgressRepo() *ProgressRepo {
	return &ProgressRepo{data: map[uuid.UUID]progress.Progress{}}
}

func (r *ProgressRepo) Get(_ context.Context, id uuid.UUID) (progress.Progress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := progress.Progress{}
	for k, v := range r.data[id] {
		out[k] = v
	}
	return out, nil
}

func (r *ProgressRepo) Save(_ context.Context, id uuid.UUID, p progress.Progress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := progress.Progress{}
	for k, v := range p {
		cp[k] = v
	}
	r.data[id] = cp
	return nil
}

type SkillRepo struct {
	mu      sync.Mutex
	levels  map[uuid.UUID]skill.Levels
	results map[uuid.UUID][]skill.Result
	Err     error
}

func NewSkillRepo() *SkillRepo {
	return &SkillRepo{levels: map[uuid.UUID]skill.Levels{}, results: map[uuid.UUID][]skill.Result{}}
}

func (r *SkillRepo) GetLevels(_ context.Context, id uuid.UUID) (skill.Levels, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return skill.Levels{}.Merge(r.levels[id]), nil
}

func (r *SkillRepo) SaveLevels(_ context.Context, id uuid.UUID, l skill.Levels) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.levels[id] = l.Merge(nil)
	return nil
}

func (r *SkillRepo) SaveResult(_ context.Context, res *skill.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.levels[res.StudentID] = res.Levels.Merge(nil)
	r.results[res.StudentID] = append(r.results[res.StudentID], *res)
	return nil
}

func (r *SkillRepo) ListResults(_ context.Context, id uuid.UUID) ([]skill.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]skill.Result{}, r.results[id]...), nil
}

type LearningRepo struct {
	mu   sync.Mutex
	done map[uuid.UUID][]learning.Completion
}

func NewLearningRepo() *LearningRepo {
	return &LearningRepo{done: map[uuid.UUID][]learning.Completion{}}
}

func (r *LearningRepo) Complete(_ context.Context, id uuid.UUID, projectID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.done[id] {
		if c.ProjectID == projectID {
			return learning.ErrAlreadyCompleted
		}
	}
	r.done[id] = append(r.done[id], learning.Completion{ProjectID: projectID, CompletedAt: at})
	return nil
}

func (r *LearningRepo) ListCompleted(_ context.Context, id uuid.UUID) ([]learning.Completion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]learning.Completion{}, r.done[id]...), nil
}

type TokenRepo struct {
	mu     sync.Mutex
	tokens map[uuid.UUID][]token.Token
}

func NewTokenRepo() *TokenRepo {
	return &TokenRepo{tokens: map[uuid.UUID][]token.Token{}}
}

func (r *TokenRepo) List(_ context.Context, id uuid.UUID) ([]token.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]token.Token{}, r.tokens[id]...), nil
}

func (r *TokenRepo) Append(_ context.Context, id uuid.UUID, t token.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[id] = append(r.tokens[id], t)
	return nil
}

func (r *TokenRepo) ReplaceAll(_ context.Context, id uuid.UUID, tokens []token.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[id] = append([]token.Token{}, tokens...)
	return nil
}

type RoadmapRepo struct {
	mu       sync.Mutex
	roadmaps map[uuid.UUID]map[string]roadmap.Roadmap
}

func NewRoadmapRepo() *RoadmapRepo {
	return &RoadmapRepo{roadmaps: map[uuid.UUID]map[string]roadmap.Roadmap{}}
}

func (r *RoadmapRepo) Get(_ context.Context, id uuid.UUID, careerID string) (*roadmap.Roadmap, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm, ok := r.roadmaps[id][careerID]
	if !ok {
		return nil, roadmap.ErrRoadmapNotFound
	}
	return &rm, nil
}

func (r *RoadmapRepo) Save(_ context.Context, rm *roadmap.Roadmap) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.roadmaps[rm.StudentID] == nil {
		r.roadmaps[rm.StudentID] = map[string]roadmap.Roadmap{}
	}
	r.roadmaps[rm.StudentID][rm.CareerID] = *rm
	return nil
}

func (r *RoadmapRepo) ListByStudent(_ context.Context, id uuid.UUID) ([]*roadmap.Roadmap, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.roadmaps[id]))
	for careerID := range r.roadmaps[id] {
		ids = append(ids, careerID)
	}
	sort.Strings(ids)
	out := make([]*roadmap.Roadmap, 0, len(ids))
	for _, careerID := range ids {
		rm := r.roadmaps[id][careerID]
		out = append(out, &rm)
	}
	return out, nil
}

func (r *RoadmapRepo) DeleteByStudent(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.roadmaps, id)
	return nil
}

type InterviewRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]interview.Session
}

func NewInterviewRepo() *InterviewRepo {
	return &InterviewRepo{sessions: map[uuid.UUID]interview.Session{}}
}

func (r *InterviewRepo) Save(_ context.Context, s *interview.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	cp.Answers = append([]string{}, s.Answers...)
	r.sessions[s.ID] = cp
	return nil
}

func (r *InterviewRepo) FindByID(_ context.Context, id, studentID uuid.UUID) (*interview.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.StudentID != studentID {
		return nil, interview.ErrSessionNotFound
	}
	s.Answers = append([]string{}, s.Answers...)
	return &s, nil
}

type ChatRepo struct {
	mu       sync.Mutex
	messages map[uuid.UUID][]chat.Message
}

func NewChatRepo() *ChatRepo {
	return &ChatRepo{messages: map[uuid.UUID][]chat.Message{}}
}

func (r *ChatRepo) History(_ context.Context, id uuid.UUID, limit int) ([]chat.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := r.messages[id]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return append([]chat.Message{}, msgs...), nil
}

func (r *ChatRepo) Append(_ context.Context, id uuid.UUID, msgs ...chat.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[id] = append(r.messages[id], msgs...)
	return nil
}

// GamificationRepo applies events to the students held by a StudentRepo.
type GamificationRepo struct {
	mu        sync.Mutex
	Students  *StudentRepo
	processed map[uuid.UUID]bool
}

func NewGamificationRepo(students *StudentRepo) *GamificationRepo {
	return &GamificationRepo{Students: students, processed: map[uuid.UUID]bool{}}
}

func (r *GamificationRepo) ApplyEvent(ctx context.Context, e gamification.Event) (gamification.Standing, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.Students.FindByID(ctx, e.StudentID)
	if err != nil {
		return gamification.Standing{}, false, err
	}
	current := gamification.Standing{XP: s.XP, Level: s.Level, Badges: s.Badges}
	if r.processed[e.ID] {
		return current, false, nil
	}
	next := gamification.Apply(current, e)
	s.XP, s.Level, s.Badges = next.XP, next.Level, next.Badges
	if err := r.Students.Save(ctx, s); err != nil {
		return gamification.Standing{}, false, err
	}
	r.processed[e.ID] = true
	return next, true, nil
}

// StateRepo writes through to the profile, progress and token fakes.
type StateRepo struct {
	Profiles *ProfileRepo
	Progress *ProgressRepo
	Tokens   *TokenRepo
	Err      error
}

func (r *StateRepo) Replace(ctx context.Context, id uuid.UUID, doc *state.Document) error {
	if r.Err != nil {
		return r.Err
	}
	if doc.Profile != nil {
		if err := r.Profiles.Save(ctx, id, doc.Profile); err != nil {
			return err
		}
	}
	if err := r.Progress.Save(ctx, id, doc.Progress); err != nil {
		return err
	}
	return r.Tokens.ReplaceAll(ctx, id, doc.Tokens)
}

// Cache stores JSON like the Redis cache does, ignoring TTLs.
type Cache struct {
	mu   sync.Mutex
	data map[string][]byte
	TTLs map[string]time.Duration
}

func NewCache() *Cache {
	return &Cache{data: map[string][]byte{}, TTLs: map[string]time.Duration{}}
}

func (c *Cache) Get(_ context.Context, key string, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return service.ErrCacheMiss
	}
	return json.Unmarshal(b, dest)
}

func (c *Cache) Set(_ context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	c.TTLs[key] = ttl
	return nil
}

func (c *Cache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

// CareerRepo ranks careers by dot product of their stored embeddings.
type CareerRepo struct {
	mu       sync.Mutex
	careers  map[string]career.Career
	vectors  map[string][]float32
	Upserted int
}

func NewCareerRepo() *CareerRepo {
	return &CareerRepo{careers: map[string]career.Career{}, vectors: map[string][]float32{}}
}

func (r *CareerRepo) UpsertEmbedding(_ context.Context, c career.Career, v pgvector.Vector) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.careers[c.ID] = c
	r.vectors[c.ID] = v.Slice()
	r.Upserted++
	return nil
}

func (r *CareerRepo) SearchByEmbedding(_ context.Context, v pgvector.Vector, limit int) ([]career.Ranked, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := v.Slice()
	var out []career.Ranked
	for id, c := range r.careers {
		var dot float64
		for i, x := range r.vectors[id] {
			if i < len(q) {
				dot += float64(x * q[i])
			}
		}
		out = append(out, career.Ranked{Career: c, Score: dot})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *CareerRepo) List(_ context.Context) ([]career.Career, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]career.Career, 0, len(r.careers))
	for _, c := range r.careers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Embedder maps text to a vector with one dimension per known keyword.
type Embedder struct {
	Keywords []string
	Err      error
}

func (e *Embedder) GenerateEmbeddings(_ context.Context, text string) (pgvector.Vector, error) {
	if e.Err != nil {
		return pgvector.Vector{}, e.Err
	}
	lower := strings.ToLower(text)
	v := make([]float32, len(e.Keywords))
	for i, kw := range e.Keywords {
		if strings.Contains(lower, kw) {
			v[i] = 1
		}
	}
	return pgvector.NewVector(v), nil
}

type Uploader struct {
	mu      sync.Mutex
	Files   map[string][]byte
	Err     error
	Deleted []string
}

func NewUploader() *Uploader {
	return &Uploader{Files: map[string][]byte{}}
}

func (u *Uploader) Upload(_ context.Context, file io.Reader, folder, publicID string) (string, error) {
	if u.Err != nil {
		return "", u.Err
	}
	b, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	key := folder + "/" + publicID
	u.Files[key] = b
	return "https://files.example.com/" + key, nil
}

func (u *Uploader) Delete(_ context.Context, publicID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Deleted = append(u.Deleted, publicID)
	return nil
}
