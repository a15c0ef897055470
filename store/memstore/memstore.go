// Package memstore is an in-memory store.Store. Each method holds the store
// mutex for its whole body, which gives the same single-document atomicity
// the Mongo implementation gets from conditional updates.
package memstore

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/engrsakib/qa-with-go/errorz"
	"github.com/engrsakib/qa-with-go/models"
	"github.com/engrsakib/qa-with-go/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	mu             sync.Mutex
	questions      map[primitive.ObjectID]models.Question
	answers        map[primitive.ObjectID]models.Answer
	comments       map[primitive.ObjectID]models.Comment
	tags           map[primitive.ObjectID]models.Tag
	accounts       map[string]models.Account
	questionDrafts map[primitive.ObjectID]models.DraftQuestion
	answerDrafts   map[primitive.ObjectID]models.DraftAnswer
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		questions:      make(map[primitive.ObjectID]models.Question),
		answers:        make(map[primitive.ObjectID]models.Answer),
		comments:       make(map[primitive.ObjectID]models.Comment),
		tags:           make(map[primitive.ObjectID]models.Tag),
		accounts:       make(map[string]models.Account),
		questionDrafts: make(map[primitive.ObjectID]models.DraftQuestion),
		answerDrafts:   make(map[primitive.ObjectID]models.DraftAnswer),
	}
}

func (s *Store) Questions() store.QuestionRepository { return questionRepo{s} }
func (s *Store) Answers() store.AnswerRepository { return answerRepo{s} }
func (s *Store) Comments() store.CommentRepository { return commentRepo{s} }
func (s *Store) Tags() store.TagRepository { return tagRepo{s} }
func (s *Store) Accounts() store.AccountRepository { return accountRepo{s} }
func (s *Store) Drafts() store.DraftRepository { return draftRepo{s} }

// --- questions

type questionRepo struct{ s *Store }

func cloneQuestion(q models.Question) models.Question {
	q.Tags = slices.Clone(q.Tags)
	q.Answers = slices.Clone(q.Answers)
	q.Comments = slices.Clone(q.Comments)
	q.Views = slices.Clone(q.Views)
	q.UpVotes = slices.Clone(q.UpVotes)
	q.DownVotes = slices.Clone(q.DownVotes)
	return q
}

func (r questionRepo) Insert(_ context.Context, q *models.Question) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if q.ID.IsZero() {
		q.ID = primitive.NewObjectID()
	}
	r.s.questions[q.ID] = cloneQuestion(*q)
	return nil
}

func (r questionRepo) get(id primitive.ObjectID) (models.Question, error) {
	q, ok := r.s.questions[id]
	if !ok {
		return models.Question{}, errorz.NotFound("question not found")
	}
	return q, nil
}

func (r questionRepo) FindByID(_ context.Context, id primitive.ObjectID) (models.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, err := r.get(id)
	return cloneQuestion(q), err
}

func (r questionRepo) FindAll(_ context.Context) ([]models.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Question, 0, len(r.s.questions))
	for _, q := range r.s.questions {
		out = append(out, cloneQuestion(q))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AskDateTime.After(out[j].AskDateTime) })
	return out, nil
}

// update applies fn to the stored question under the lock and returns the
// pre-image and post-image.
func (r questionRepo) update(id primitive.ObjectID, fn func(*models.Question) error) (models.Question, models.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, err := r.get(id)
	if err != nil {
		return models.Question{}, models.Question{}, err
	}
	before := cloneQuestion(q)
	if err := fn(&q); err != nil {
		return models.Question{}, models.Question{}, err
	}
	r.s.questions[id] = q
	return before, cloneQuestion(q), nil
}

func (r questionRepo) UpdateContent(_ context.Context, id primitive.ObjectID, title, text string, tags []primitive.ObjectID) (models.Question, error) {
	_, after, err := r.update(id, func(q *models.Question) error {
		q.Title, q.Text, q.Tags = title, text, slices.Clone(tags)
		return nil
	})
	return after, err
}

func (r questionRepo) Delete(_ context.Context, id primitive.ObjectID) (models.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, err := r.get(id)
	if err != nil {
		return models.Question{}, err
	}
	delete(r.s.questions, id)
	return q, nil
}

func (r questionRepo) AddView(_ context.Context, id primitive.ObjectID, username string) (models.Question, error) {
	_, after, err := r.update(id, func(q *models.Question) error {
		if !slices.Contains(q.Views, username) {
			q.Views = append(q.Views, username)
		}
		return nil
	})
	return after, err
}

func (r questionRepo) Vote(_ context.Context, id primitive.ObjectID, username string, dir models.VoteDirection) (models.Question, error) {
	before, _, err := r.update(id, func(q *models.Question) error {
		q.UpVotes, q.DownVotes = models.ApplyVote(q.UpVotes, q.DownVotes, username, dir)
		return nil
	})
	return before, err
}

func (r questionRepo) SetFlag(_ context.Context, id primitive.ObjectID, flag models.Flag) (models.Question, error) {
	_, after, err := r.update(id, func(q *models.Question) error {
		switch flag {
		case models.FlagPinned:
			q.Pinned = true
		case models.FlagLocked:
			q.Locked = true
		}
		return nil
	})
	return after, err
}

func (r questionRepo) PushAnswer(_ context.Context, id, answerID primitive.ObjectID) error {
	_, _, err := r.update(id, func(q *models.Question) error {
		if q.Locked {
			return errorz.Locked("question is locked")
		}
		q.Answers = append(q.Answers, answerID)
		return nil
	})
	return err
}

func (r questionRepo) PullAnswer(_ context.Context, id, answerID primitive.ObjectID) error {
	_, _, err := r.update(id, func(q *models.Question) error {
		if !slices.Contains(q.Answers, answerID) {
			return errorz.NotFound("answer not found on question")
		}
		q.Answers = withoutID(q.Answers, answerID)
		return nil
	})
	return err
}

func (r questionRepo) PushComment(_ context.Context, id, commentID primitive.ObjectID) error {
	_, _, err := r.update(id, func(q *models.Question) error {
		if q.Locked {
			return errorz.Locked("question is locked")
		}
		q.Comments = append(q.Comments, commentID)
		return nil
	})
	return err
}

func (r questionRepo) PullComment(_ context.Context, id, commentID primitive.ObjectID) error {
	_, _, err := r.update(id, func(q *models.Question) error {
		if !slices.Contains(q.Comments, commentID) {
			return errorz.NotFound("comment not found on question")
		}
		q.Comments = withoutID(q.Comments, commentID)
		return nil
	})
	return err
}

func (r questionRepo) CountByTag(_ context.Context) (map[primitive.ObjectID]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := make(map[primitive.ObjectID]int)
	for _, q := range r.s.questions {
		for _, t := range q.Tags {
			counts[t]++
		}
	}
	return counts, nil
}

// --- answers

type answerRepo struct{ s *Store }

func cloneAnswer(a models.Answer) models.Answer {
	a.Comments = slices.Clone(a.Comments)
	return a
}

func (r answerRepo) Insert(_ context.Context, a *models.Answer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	r.s.answers[a.ID] = cloneAnswer(*a)
	return nil
}

func (r answerRepo) FindByID(_ context.Context, id primitive.ObjectID) (models.Answer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.answers[id]
	if !ok {
		return models.Answer{}, errorz.NotFound("answer not found")
	}
	return cloneAnswer(a), nil
}

func (r answerRepo) FindMany(_ context.Context, ids []primitive.ObjectID) ([]models.Answer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Answer, 0, len(ids))
	for _, id := range ids {
		if a, ok := r.s.answers[id]; ok {
			out = append(out, cloneAnswer(a))
		}
	}
	return out, nil
}

func (r answerRepo) update(id primitive.ObjectID, fn func(*models.Answer) error) (models.Answer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.answers[id]
	if !ok {
		return models.Answer{}, errorz.NotFound("answer not found")
	}
	if err := fn(&a); err != nil {
		return models.Answer{}, err
	}
	r.s.answers[id] = a
	return cloneAnswer(a), nil
}

func (r answerRepo) UpdateText(_ context.Context, id primitive.ObjectID, text string) (models.Answer, error) {
	return r.update(id, func(a *models.Answer) error {
		if a.Locked {
			return errorz.Locked("answer is locked")
		}
		a.Text = text
		return nil
	})
}

func (r answerRepo) Delete(_ context.Context, id primitive.ObjectID) (models.Answer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.answers[id]
	if !ok {
		return models.Answer{}, errorz.NotFound("answer not found")
	}
	delete(r.s.answers, id)
	return a, nil
}

func (r answerRepo) DeleteMany(_ context.Context, ids []primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range ids {
		delete(r.s.answers, id)
	}
	return nil
}

func (r answerRepo) SetFlag(_ context.Context, id primitive.ObjectID, flag models.Flag) (models.Answer, error) {
	return r.update(id, func(a *models.Answer) error {
		switch flag {
		case models.FlagPinned:
			a.Pinned = true
		case models.FlagLocked:
			a.Locked = true
		}
		return nil
	})
}

func (r answerRepo) SetCorrect(_ context.Context, id primitive.ObjectID, correct bool) (models.Answer, error) {
	return r.update(id, func(a *models.Answer) error {
		a.IsCorrect = correct
		return nil
	})
}

func (r answerRepo) PushComment(_ context.Context, id, commentID primitive.ObjectID) error {
	_, err := r.update(id, func(a *models.Answer) error {
		if a.Locked {
			return errorz.Locked("answer is locked")
		}
		a.Comments = append(a.Comments, commentID)
		return nil
	})
	return err
}

func (r answerRepo) PullComment(_ context.Context, id, commentID primitive.ObjectID) error {
	_, err := r.update(id, func(a *models.Answer) error {
		if !slices.Contains(a.Comments, commentID) {
			return errorz.NotFound("comment not found on answer")
		}
		a.Comments = withoutID(a.Comments, commentID)
		return nil
	})
	return err
}

// --- comments

type commentRepo struct{ s *Store }

func (r commentRepo) Insert(_ context.Context, c *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	r.s.comments[c.ID] = *c
	return nil
}

func (r commentRepo) FindByID(_ context.Context, id primitive.ObjectID) (models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.comments[id]
	if !ok {
		return models.Comment{}, errorz.NotFound("comment not found")
	}
	return c, nil
}

func (r commentRepo) FindMany(_ context.Context, ids []primitive.ObjectID) ([]models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Comment, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.s.comments[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r commentRepo) Delete(_ context.Context, id primitive.ObjectID) (models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.comments[id]
	if !ok {
		return models.Comment{}, errorz.NotFound("comment not found")
	}
	delete(r.s.comments, id)
	return c, nil
}

func (r commentRepo) DeleteMany(_ context.Context, ids []primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range ids {
		delete(r.s.comments, id)
	}
	return nil
}

func (r commentRepo) SetPinned(_ context.Context, id primitive.ObjectID) (models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.comments[id]
	if !ok {
		return models.Comment{}, errorz.NotFound("comment not found")
	}
	c.Pinned = true
	r.s.comments[id] = c
	return c, nil
}

// --- tags

type tagRepo struct{ s *Store }

func (r tagRepo) Upsert(_ context.Context, name, description string) (models.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tags {
		if t.Name == name {
			return t, nil
		}
	}
	t := models.Tag{ID: primitive.NewObjectID(), Name: name, Description: description}
	r.s.tags[t.ID] = t
	return t, nil
}

func (r tagRepo) FindByName(_ context.Context, name string) (models.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tags {
		if t.Name == name {
			return t, nil
		}
	}
	return models.Tag{}, errorz.NotFound("tag not found")
}

func (r tagRepo) FindMany(_ context.Context, ids []primitive.ObjectID) ([]models.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Tag, 0, len(ids))
	for _, id := range ids {
		if t, ok := r.s.tags[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r tagRepo) FindAll(_ context.Context) ([]models.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Tag, 0, len(r.s.tags))
	for _, t := range r.s.tags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// --- accounts

type accountRepo struct{ s *Store }

func cloneAccount(a models.Account) models.Account {
	a.Questions = slices.Clone(a.Questions)
	a.Answers = slices.Clone(a.Answers)
	a.Comments = slices.Clone(a.Comments)
	a.UpVotedQuestions = slices.Clone(a.UpVotedQuestions)
	a.DownVotedQuestions = slices.Clone(a.DownVotedQuestions)
	a.QuestionDrafts = slices.Clone(a.QuestionDrafts)
	a.AnswerDrafts = slices.Clone(a.AnswerDrafts)
	return a
}

func (r accountRepo) Insert(_ context.Context, a *models.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, taken := r.s.accounts[a.Username]; taken {
		return errorz.Conflict("username already exists")
	}
	for _, existing := range r.s.accounts {
		if existing.Email == a.Email {
			return errorz.Conflict("email already exists")
		}
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	r.s.accounts[a.Username] = cloneAccount(*a)
	return nil
}

func (r accountRepo) FindByUsername(_ context.Context, username string) (models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.accounts[username]
	if !ok {
		return models.Account{}, errorz.NotFound("user not found")
	}
	return cloneAccount(a), nil
}

func (r accountRepo) FindByEmail(_ context.Context, email string) (models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.accounts {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return models.Account{}, errorz.NotFound("user not found")
}

func (r accountRepo) update(username string, fn func(*models.Account)) (models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.accounts[username]
	if !ok {
		return models.Account{}, errorz.NotFound("user not found")
	}
	fn(&a)
	r.s.accounts[username] = a
	return cloneAccount(a), nil
}

func (r accountRepo) SetUserType(_ context.Context, username string, t models.UserType) (models.Account, error) {
	return r.update(username, func(a *models.Account) { a.UserType = t })
}

func (r accountRepo) UpdateSettings(_ context.Context, username string, s models.Settings) (models.Account, error) {
	return r.update(username, func(a *models.Account) { a.Settings = s })
}

func (r accountRepo) IncScore(_ context.Context, username string, delta int) error {
	_, err := r.update(username, func(a *models.Account) { a.Score += delta })
	return err
}

func (r accountRepo) AddToList(_ context.Context, username string, list models.AccountList, id primitive.ObjectID) error {
	_, err := r.update(username, func(a *models.Account) {
		if l := a.List(list); l != nil && !slices.Contains(*l, id) {
			*l = append(*l, id)
		}
	})
	return err
}

func (r accountRepo) RemoveFromList(_ context.Context, username string, list models.AccountList, id primitive.ObjectID) error {
	_, err := r.update(username, func(a *models.Account) {
		if l := a.List(list); l != nil {
			*l = withoutID(*l, id)
		}
	})
	return err
}

// --- drafts

type draftRepo struct{ s *Store }

func (r draftRepo) InsertQuestion(_ context.Context, d *models.DraftQuestion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	r.s.questionDrafts[d.ID] = *d
	return nil
}

func (r draftRepo) UpdateQuestion(_ context.Context, id primitive.ObjectID, edit models.QuestionContent) (models.DraftQuestion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.questionDrafts[id]
	if !ok {
		return models.DraftQuestion{}, errorz.NotFound("question draft not found")
	}
	d.Edit = edit
	d.UpdatedAt = time.Now()
	r.s.questionDrafts[id] = d
	return d, nil
}

func (r draftRepo) FindQuestion(_ context.Context, id primitive.ObjectID) (models.DraftQuestion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.questionDrafts[id]
	if !ok {
		return models.DraftQuestion{}, errorz.NotFound("question draft not found")
	}
	return d, nil
}

func (r draftRepo) FindQuestionByReal(_ context.Context, username string, realID primitive.ObjectID) (models.DraftQuestion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.questionDrafts {
		if d.Username == username && d.RealID != nil && *d.RealID == realID {
			return d, nil
		}
	}
	return models.DraftQuestion{}, errorz.NotFound("question draft not found")
}

func (r draftRepo) DeleteQuestion(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.questionDrafts[id]; !ok {
		return errorz.NotFound("question draft not found")
	}
	delete(r.s.questionDrafts, id)
	return nil
}

func (r draftRepo) ListQuestions(_ context.Context, username string) ([]models.DraftQuestion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.DraftQuestion{}
	for _, d := range r.s.questionDrafts {
		if d.Username == username {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r draftRepo) InsertAnswer(_ context.Context, d *models.DraftAnswer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	r.s.answerDrafts[d.ID] = *d
	return nil
}

func (r draftRepo) UpdateAnswer(_ context.Context, id primitive.ObjectID, edit models.AnswerContent) (models.DraftAnswer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.answerDrafts[id]
	if !ok {
		return models.DraftAnswer{}, errorz.NotFound("answer draft not found")
	}
	d.Edit = edit
	d.UpdatedAt = time.Now()
	r.s.answerDrafts[id] = d
	return d, nil
}

func (r draftRepo) FindAnswer(_ context.Context, id primitive.ObjectID) (models.DraftAnswer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.answerDrafts[id]
	if !ok {
		return models.DraftAnswer{}, errorz.NotFound("answer draft not found")
	}
	return d, nil
}

func (r draftRepo) FindAnswerByReal(_ context.Context, username string, realID primitive.ObjectID) (models.DraftAnswer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.answerDrafts {
		if d.Username == username && d.RealID != nil && *d.RealID == realID {
			return d, nil
		}
	}
	return models.DraftAnswer{}, errorz.NotFound("answer draft not found")
}

func (r draftRepo) DeleteAnswer(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.answerDrafts[id]; !ok {
		return errorz.NotFound("answer draft not found")
	}
	delete(r.s.answerDrafts, id)
	return nil
}

func (r draftRepo) ListAnswers(_ context.Context, username string) ([]models.DraftAnswer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.DraftAnswer{}
	for _, d := range r.s.answerDrafts {
		if d.Username == username {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func withoutID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
