package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/engrsakib/qa-with-go/controllers"
	"github.com/engrsakib/qa-with-go/events"
	"github.com/engrsakib/qa-with-go/models"
	"github.com/engrsakib/qa-with-go/services"
	"github.com/engrsakib/qa-with-go/store/memstore"
	"github.com/engrsakib/qa-with-go/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	svc    *services.Service
	events *events.Recorder
}

func newServer(t *testing.T) *testServer {
	t.Helper()
	rec := &events.Recorder{}
	svc := services.New(memstore.New(), rec)
	tokens := utils.NewTokens("test-secret", time.Hour, 24*time.Hour)
	r := gin.New()
	Setup(r, controllers.NewHandler(svc, tokens), tokens, nil)
	return &testServer{t: t, router: r, svc: svc, events: rec}
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (s *testServer) do(method, path, token string, body any) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

// signup creates an account over HTTP and returns its access token.
func (s *testServer) signup(username string) string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/login/createAccount", "", gin.H{
		"username": username, "email": username + "@example.com", "password": "secret123",
	})
	require.Equal(s.t, http.StatusCreated, code, env.Error)
	return decode[struct {
		Token string `json:"token"`
	}](s.t, env.Data).Token
}

func (s *testServer) ask(token, username, title string) models.QuestionView {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/question/addQuestion", token, gin.H{
		"title": title, "text": "details", "askedBy": username,
		"tags": []gin.H{{"name": "go"}},
	})
	require.Equal(s.t, http.StatusCreated, code, env.Error)
	return decode[models.QuestionView](s.t, env.Data)
}

func TestAccountScenario(t *testing.T) {
	s := newServer(t)
	s.signup("alice")

	code, env := s.do(http.MethodPost, "/login/createAccount", "", gin.H{
		"username": "alice", "email": "other@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "username already exists", env.Error)

	code, env = s.do(http.MethodPost, "/login/createAccount", "", gin.H{
		"username": "bob", "email": "alice@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "email already exists", env.Error)

	bob := s.signup("bob")

	code, env = s.do(http.MethodPost, "/login/login", "", gin.H{"username": "alice", "password": "secret123"})
	require.Equal(t, http.StatusOK, code)
	assert.NotContains(t, string(env.Data), "hashedPassword")

	code, _ = s.do(http.MethodPost, "/login/login", "", gin.H{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env = s.do(http.MethodGet, "/user/getUser/bob", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "bob", decode[models.Account](t, env.Data).Username)
	assert.NotContains(t, string(env.Data), "email")

	code, env = s.do(http.MethodGet, "/user/getUser/bob", bob, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "bob@example.com", decode[models.Account](t, env.Data).Email)
}

func TestRefreshToken(t *testing.T) {
	s := newServer(t)
	s.signup("alice")

	code, env := s.do(http.MethodPost, "/login/login", "", gin.H{"username": "alice", "password": "secret123"})
	require.Equal(t, http.StatusOK, code)
	login := decode[struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refreshToken"`
	}](t, env.Data)

	code, env = s.do(http.MethodPost, "/login/refreshToken", "", gin.H{"refreshToken": login.RefreshToken})
	require.Equal(t, http.StatusOK, code, env.Error)
	refreshed := decode[struct {
		Token string         `json:"token"`
		User  models.Account `json:"user"`
	}](t, env.Data)
	assert.Equal(t, "alice", refreshed.User.Username)

	code, env = s.do(http.MethodPost, "/user/updateSettings", refreshed.Token, gin.H{
		"username": "alice", "settings": gin.H{"textSize": "large"},
	})
	assert.Equal(t, http.StatusOK, code, env.Error)

	code, _ = s.do(http.MethodPost, "/login/refreshToken", "", gin.H{"refreshToken": login.Token})
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = s.do(http.MethodPost, "/login/refreshToken", "", gin.H{"refreshToken": "garbage"})
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = s.do(http.MethodPost, "/login/refreshToken", "", gin.H{})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestQuestionFlow(t *testing.T) {
	s := newServer(t)
	alice := s.signup("alice")
	bob := s.signup("bob")

	q := s.ask(alice, "alice", "Why is my goroutine leaking?")

	code, env := s.do(http.MethodGet, "/question/getQuestion?order=newest", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]models.QuestionView](t, env.Data), 1)

	code, env = s.do(http.MethodPost, "/answer/addAnswer", bob, gin.H{
		"qid": q.ID.Hex(), "ans": gin.H{"text": "Close the channel.", "ansBy": "bob"},
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	answer := decode[models.AnswerView](t, env.Data)

	code, env = s.do(http.MethodPost, "/comment/addComment", alice, gin.H{
		"id": answer.ID.Hex(), "type": "answer", "comment": gin.H{"text": "Thanks!", "commentBy": "alice"},
	})
	require.Equal(t, http.StatusCreated, code, env.Error)

	code, env = s.do(http.MethodPost, "/question/upvoteQuestion", bob, gin.H{"qid": q.ID.Hex(), "username": "bob"})
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.Equal(t, []string{"bob"}, decode[models.VoteUpdate](t, env.Data).UpVotes)

	code, env = s.do(http.MethodGet, "/question/getQuestionById/"+q.ID.Hex()+"?username=bob", "", nil)
	require.Equal(t, http.StatusOK, code)
	got := decode[models.QuestionView](t, env.Data)
	assert.Equal(t, []string{"bob"}, got.Views)
	require.Len(t, got.Answers, 1)
	assert.Len(t, got.Answers[0].Comments, 1)

	code, env = s.do(http.MethodPost, "/answer/markCorrect", alice, gin.H{"qid": q.ID.Hex(), "aid": answer.ID.Hex(), "username": "alice"})
	require.Equal(t, http.StatusOK, code, env.Error)

	code, env = s.do(http.MethodGet, "/tag/getTagsWithQuestionNumber", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []models.TagCount{{Name: "go", Qcnt: 1}}, decode[[]models.TagCount](t, env.Data))
}

func TestAuthErrors(t *testing.T) {
	s := newServer(t)
	alice := s.signup("alice")
	s.signup("bob")

	code, _ := s.do(http.MethodPost, "/question/addQuestion", "", gin.H{"title": "t"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env := s.do(http.MethodPost, "/question/addQuestion", alice, gin.H{
		"title": "t", "text": "t", "askedBy": "bob", "tags": []gin.H{{"name": "go"}},
	})
	assert.Equal(t, http.StatusForbidden, code)
	assert.NotEmpty(t, env.Error)

	code, _ = s.do(http.MethodGet, "/draft/getDrafts/bob", alice, nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestBadRequests(t *testing.T) {
	s := newServer(t)
	alice := s.signup("alice")

	code, _ := s.do(http.MethodGet, "/question/getQuestionById/not-an-id", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, "/comment/addComment", alice, gin.H{
		"id": "65f000000000000000000000", "type": "tag", "comment": gin.H{"text": "x", "commentBy": "alice"},
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env := s.do(http.MethodPost, "/question/addQuestion", alice, gin.H{
		"title": "t", "text": "t", "askedBy": "alice", "tags": []gin.H{},
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "should have at least 1 tag", env.Error)

	code, _ = s.do(http.MethodGet, "/question/getQuestionById/65f000000000000000000000", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestModeration(t *testing.T) {
	s := newServer(t)
	alice := s.signup("alice")
	bob := s.signup("bob")
	s.signup("mod")
	_, err := s.svc.SetUserType(context.Background(), "mod", models.UserTypeModerator)
	require.NoError(t, err)
	// The role claim is read at login, so log in again after the promotion.
	code, env := s.do(http.MethodPost, "/login/login", "", gin.H{"username": "mod", "password": "secret123"})
	require.Equal(t, http.StatusOK, code)
	mod := decode[struct {
		Token string `json:"token"`
	}](t, env.Data).Token

	q := s.ask(alice, "alice", "Lock me")
	lock := gin.H{"user": "mod", "actionType": "lock", "postType": "question", "postID": q.ID.Hex()}

	code, _ = s.do(http.MethodPost, "/action/takeAction", bob, gin.H{"user": "bob", "actionType": "lock", "postType": "question", "postID": q.ID.Hex()})
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.do(http.MethodPost, "/action/takeAction", mod, lock)
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.True(t, decode[models.ActionResult](t, env.Data).Question.Locked)

	code, env = s.do(http.MethodPost, "/answer/addAnswer", bob, gin.H{
		"qid": q.ID.Hex(), "ans": gin.H{"text": "late", "ansBy": "bob"},
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "question is locked", env.Error)

	code, _ = s.do(http.MethodPost, "/action/takeAction", mod, gin.H{"user": "mod", "actionType": "promote", "postType": "question", "postID": q.ID.Hex()})
	assert.Equal(t, http.StatusNotImplemented, code)

	code, env = s.do(http.MethodPost, "/action/takeAction", mod, gin.H{"user": "mod", "actionType": "remove", "postType": "question", "postID": q.ID.Hex()})
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.True(t, decode[models.ActionResult](t, env.Data).Removed)

	code, _ = s.do(http.MethodGet, "/question/getQuestionById/"+q.ID.Hex(), "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.NotEmpty(t, s.events.OfType(events.QuestionUpdate))
}

func TestDraftRoutes(t *testing.T) {
	s := newServer(t)
	alice := s.signup("alice")

	code, env := s.do(http.MethodPost, "/draft/saveQuestionDraft", alice, gin.H{
		"username": "alice",
		"edit":     gin.H{"title": "Draft title", "text": "draft body", "tagNames": []string{"drafts"}},
	})
	require.Equal(t, http.StatusOK, code, env.Error)
	draft := decode[models.DraftQuestion](t, env.Data)

	code, env = s.do(http.MethodGet, "/draft/getDrafts/alice", alice, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[models.Drafts](t, env.Data).Questions, 1)

	code, env = s.do(http.MethodPost, "/draft/postQuestionDraft", alice, gin.H{"username": "alice", "draftId": draft.ID.Hex()})
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.Equal(t, "Draft title", decode[models.QuestionView](t, env.Data).Title)

	code, env = s.do(http.MethodGet, "/draft/getDrafts/alice", alice, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[models.Drafts](t, env.Data).Questions)
}
