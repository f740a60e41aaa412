package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/wsentinels/sentinelchat/internal/api/apierr"
	"github.com/wsentinels/sentinelchat/internal/api/response"
	"github.com/wsentinels/sentinelchat/internal/factory"
	"github.com/wsentinels/sentinelchat/internal/testutil"
)

// APISuite exercises the HTTP surface end to end against the wired app
type APISuite struct {
	suite.Suite
	app     *factory.TestApp
	server  *httptest.Server
	nextTok int
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	s.app = factory.NewTestApp()

	router := NewRouter(RouterConfig{
		Logger:          testutil.NopLogger(),
		Storage:         s.app.Storage,
		SessionService:  s.app.SessionService,
		RosterService:   s.app.RosterService,
		QueryLogService: s.app.QueryLogService,
		Orchestrator:    s.app.Orchestrator,
	})
	s.server = httptest.NewServer(router)
}

func (s *APISuite) TearDownTest() {
	s.server.Close()
}

func (s *APISuite) do(method, path, token string, body any) *http.Response {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, s.server.URL+path, reader)
	s.Require().NoError(err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *APISuite) decode(resp *http.Response, into any) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(into))
}

func (s *APISuite) errorCode(resp *http.Response) string {
	var body apierr.ErrorResponse
	s.decode(resp, &body)
	return body.Error.Code
}

// begin starts a fresh session and returns its token. Each call queues a
// distinct random id so sessions within a test never collide.
func (s *APISuite) begin() string {
	s.nextTok++
	s.app.MockRandom.QueueString(fmt.Sprintf("tok%06d", s.nextTok))
	resp := s.do(http.MethodPost, "/api/v1/sessions", "", nil)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var body response.BeginResponse
	s.decode(resp, &body)
	return body.Token
}

// signIn drives a session to the dashboard phase for the given role
func (s *APISuite) signIn(role string) string {
	token := s.begin()

	resp := s.do(http.MethodPost, "/api/v1/session/login", token, map[string]string{
		"username": "kkitching",
		"role":     role,
		"password": "x",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(http.MethodPost, "/api/v1/session/verify", token, map[string]string{"code": "123456"})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	return token
}

func (s *APISuite) TestBeginSession() {
	s.app.MockRandom.QueueString("abc123")
	resp := s.do(http.MethodPost, "/api/v1/sessions", "", nil)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var body response.BeginResponse
	s.decode(resp, &body)
	s.Assert().Equal("sess_abc123", body.Token)
	s.Assert().Equal("login", body.Session.Phase)
	s.Assert().Len(body.Roles, 5)
	s.Assert().Contains(body.Roles, "Team Physician")
}

func (s *APISuite) TestLoginMovesToMFA() {
	token := s.begin()

	resp := s.do(http.MethodPost, "/api/v1/session/login", token, map[string]string{
		"username": "kkitching",
		"role":     "Team Physician",
		"password": "x",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var sess response.Session
	s.decode(resp, &sess)
	s.Assert().Equal("mfa", sess.Phase)
	s.Assert().Equal("kkitching", sess.Username)
	s.Assert().Equal("Team Physician", sess.Role)
}

func (s *APISuite) TestLoginValidation() {
	token := s.begin()

	resp := s.do(http.MethodPost, "/api/v1/session/login", token, map[string]string{
		"username": "  ",
		"role":     "Team Physician",
		"password": "x",
	})
	s.Assert().Equal(http.StatusBadRequest, resp.StatusCode)
	s.Assert().Equal(apierr.CodeMissingCredentials, s.errorCode(resp))

	resp = s.do(http.MethodPost, "/api/v1/session/login", token, map[string]string{
		"username": "kkitching",
		"role":     "Janitor",
		"password": "x",
	})
	s.Assert().Equal(http.StatusBadRequest, resp.StatusCode)
	s.Assert().Equal(apierr.CodeInvalidRole, s.errorCode(resp))
}

func (s *APISuite) TestVerifyRejectsMalformedCode() {
	token := s.begin()
	resp := s.do(http.MethodPost, "/api/v1/session/login", token, map[string]string{
		"username": "kkitching", "role": "Team Physician", "password": "x",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	for _, code := range []string{"", "12345", "1234567", "12345a", "123 456"} {
		resp = s.do(http.MethodPost, "/api/v1/session/verify", token, map[string]string{"code": code})
		s.Assert().Equal(http.StatusBadRequest, resp.StatusCode, "code %q", code)
		s.Assert().Equal(apierr.CodeMalformedCode, s.errorCode(resp))
	}

	// Still in the MFA phase, a well-formed code now succeeds
	resp = s.do(http.MethodPost, "/api/v1/session/verify", token, map[string]string{"code": "000000"})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var sess response.Session
	s.decode(resp, &sess)
	s.Assert().Equal("dashboard", sess.Phase)
}

func (s *APISuite) TestPhaseGating() {
	token := s.begin()

	// Dashboard routes are closed before sign-in completes
	resp := s.do(http.MethodPost, "/api/v1/chat", token, map[string]string{"message": "hi"})
	s.Assert().Equal(http.StatusConflict, resp.StatusCode)
	s.Assert().Equal(apierr.CodeInvalidTransition, s.errorCode(resp))

	// Verifying from the login phase is also a transition error
	resp = s.do(http.MethodPost, "/api/v1/session/verify", token, map[string]string{"code": "123456"})
	s.Assert().Equal(http.StatusConflict, resp.StatusCode)
	s.Assert().Equal(apierr.CodeInvalidTransition, s.errorCode(resp))
}

func (s *APISuite) TestAuthRequired() {
	resp := s.do(http.MethodGet, "/api/v1/session", "", nil)
	s.Assert().Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Assert().Equal(apierr.CodeUnauthorized, s.errorCode(resp))

	resp = s.do(http.MethodGet, "/api/v1/session", "sess_bogus", nil)
	s.Assert().Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Assert().Equal(apierr.CodeSessionNotFound, s.errorCode(resp))
}

func (s *APISuite) TestChatInjuryReport() {
	token := s.signIn("Team Physician")

	resp := s.do(http.MethodPost, "/api/v1/chat", token, map[string]string{"message": "List all injuries"})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var transcript response.TranscriptResponse
	s.decode(resp, &transcript)

	// Welcome, question, reply
	s.Require().Len(transcript.Messages, 3)
	s.Assert().Equal("user", transcript.Messages[1].Sender)
	s.Assert().Equal("List all injuries", transcript.Messages[1].Text)
	reply := transcript.Messages[2].Text
	for _, name := range []string{"Marcus Reed", "Devin Cole", "Tyler Brooks", "Nate Dawson"} {
		s.Assert().Contains(reply, name)
	}

	// Exactly one query logged, status new
	resp = s.do(http.MethodGet, "/api/v1/queries", token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var log response.QueryLogResponse
	s.decode(resp, &log)
	s.Require().Len(log.Entries, 1)
	s.Assert().Equal(1, log.Entries[0].ID)
	s.Assert().Equal("kkitching", log.Entries[0].User)
	s.Assert().Equal("Team Physician", log.Entries[0].Role)
	s.Assert().Equal("new", log.Entries[0].Status)
}

func (s *APISuite) TestChatBlankMessageIsNoOp() {
	token := s.signIn("Head Coach")

	resp := s.do(http.MethodPost, "/api/v1/chat", token, map[string]string{"message": "   "})
	s.Assert().Equal(http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(http.MethodGet, "/api/v1/queries", token, nil)
	var log response.QueryLogResponse
	s.decode(resp, &log)
	s.Assert().Empty(log.Entries)
}

func (s *APISuite) TestQueryLogOrdering() {
	token := s.signIn("Front Office")

	for _, msg := range []string{"hello", "help", "injury report"} {
		resp := s.do(http.MethodPost, "/api/v1/chat", token, map[string]string{"message": msg})
		s.Require().Equal(http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp := s.do(http.MethodGet, "/api/v1/queries?order=desc", token, nil)
	var log response.QueryLogResponse
	s.decode(resp, &log)
	s.Require().Len(log.Entries, 3)
	s.Assert().Equal(3, log.Entries[0].ID)
	s.Assert().Equal("injury report", log.Entries[0].Question)
	s.Assert().Equal(1, log.Entries[2].ID)
}

func (s *APISuite) TestUpdateTail() {
	token := s.signIn("Athletic Trainer")

	resp := s.do(http.MethodPost, "/api/v1/chat", token, map[string]string{"message": "hello"})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(http.MethodPatch, "/api/v1/queries/tail", token, map[string]string{
		"status": "reviewed",
		"note":   "seen by staff",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var entry response.QueryLogEntry
	s.decode(resp, &entry)
	s.Assert().Equal("reviewed", entry.Status)
	s.Assert().Equal("seen by staff", entry.Note)
}

func (s *APISuite) TestUpdateTailRejectsUnknownStatus() {
	token := s.signIn("Athletic Trainer")

	resp := s.do(http.MethodPatch, "/api/v1/queries/tail", token, map[string]string{"status": "archived"})
	s.Assert().Equal(http.StatusBadRequest, resp.StatusCode)
	s.Assert().Equal(apierr.CodeInvalidStatus, s.errorCode(resp))
}

func (s *APISuite) TestRosterList() {
	token := s.signIn("Head Coach")

	resp := s.do(http.MethodGet, "/api/v1/roster", token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var roster response.RosterResponse
	s.decode(resp, &roster)
	s.Require().Len(roster.Players, 12)
	s.Assert().Equal("Marcus Reed", roster.Players[0].Name)
	s.Assert().Equal(0, roster.Players[0].Index)
	s.Assert().Equal("Nate Dawson", roster.Players[11].Name)
}

func (s *APISuite) TestPhysicianUpdatesRoster() {
	token := s.signIn("Team Physician")

	resp := s.do(http.MethodPatch, "/api/v1/roster/0", token, map[string]string{
		"injury": "Right shoulder strain (improving)",
		"status": "Cleared for full throws",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var player response.PlayerRecord
	s.decode(resp, &player)
	s.Assert().Equal("Marcus Reed", player.Name)
	s.Assert().Equal("Right shoulder strain (improving)", player.Injury)

	// The update is recorded in the query log as answered
	resp = s.do(http.MethodGet, "/api/v1/queries", token, nil)
	var log response.QueryLogResponse
	s.decode(resp, &log)
	s.Require().Len(log.Entries, 1)
	s.Assert().Equal("answered", log.Entries[0].Status)
	s.Assert().Contains(log.Entries[0].Question, "Marcus Reed")
	s.Assert().Equal("Live injury update performed in demo UI.", log.Entries[0].Note)
}

func (s *APISuite) TestNonPhysicianCannotUpdateRoster() {
	for _, role := range []string{"Athletic Trainer", "Head Coach", "Assistant Coach", "Front Office"} {
		token := s.signIn(role)

		resp := s.do(http.MethodPatch, "/api/v1/roster/0", token, map[string]string{
			"injury": "x", "status": "y",
		})
		s.Assert().Equal(http.StatusForbidden, resp.StatusCode, "role %s", role)
		s.Assert().Equal(apierr.CodeRoleForbidden, s.errorCode(resp))

		// Roster untouched
		resp = s.do(http.MethodGet, "/api/v1/roster", token, nil)
		var roster response.RosterResponse
		s.decode(resp, &roster)
		s.Assert().Equal("Right shoulder strain", roster.Players[0].Injury)
	}
}

func (s *APISuite) TestUpdateRosterIndexOutOfRange() {
	token := s.signIn("Team Physician")

	for _, index := range []string{"12", "99", "-1"} {
		resp := s.do(http.MethodPatch, "/api/v1/roster/"+index, token, map[string]string{
			"injury": "x", "status": "y",
		})
		s.Assert().Equal(http.StatusNotFound, resp.StatusCode, "index %s", index)
	}
}

func (s *APISuite) TestExportFormats() {
	token := s.signIn("Front Office")

	resp := s.do(http.MethodPost, "/api/v1/chat", token, map[string]string{"message": "injury report"})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(http.MethodGet, "/api/v1/queries/export?format=csv", token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Assert().Equal("text/csv", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	s.Require().NoError(err)
	s.Assert().True(strings.HasPrefix(string(body), "id,user,role,question,status,note,created_at"))
	s.Assert().Contains(string(body), "injury report")

	resp = s.do(http.MethodGet, "/api/v1/queries/export?format=pdf", token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Assert().Equal("application/pdf", resp.Header.Get("Content-Type"))
	body, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	s.Require().NoError(err)
	s.Assert().True(bytes.HasPrefix(body, []byte("%PDF")))

	resp = s.do(http.MethodGet, "/api/v1/queries/export?format=xml", token, nil)
	s.Assert().Equal(http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func (s *APISuite) TestTranscriptEndpoint() {
	token := s.signIn("Head Coach")

	resp := s.do(http.MethodGet, "/api/v1/transcript", token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var transcript response.TranscriptResponse
	s.decode(resp, &transcript)
	s.Require().Len(transcript.Messages, 1)
	s.Assert().Equal("system", transcript.Messages[0].Sender)
	s.Assert().Contains(transcript.Messages[0].Text, "injury report")
}

func (s *APISuite) TestHealth() {
	resp := s.do(http.MethodGet, "/api/v1/health", "", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var body map[string]string
	s.decode(resp, &body)
	s.Assert().Equal("ok", body["status"])
}

func (s *APISuite) TestMetricsEndpoint() {
	resp := s.do(http.MethodGet, "/metrics", "", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	s.Require().NoError(err)
	s.Assert().Contains(string(body), "go_goroutines")
}

func (s *APISuite) TestSessionsAreIndependent() {
	physician := s.signIn("Team Physician")

	resp := s.do(http.MethodPatch, "/api/v1/roster/0", physician, map[string]string{
		"injury": "Healed", "status": "Full go",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	coach := s.signIn("Head Coach")
	s.Require().NotEqual(physician, coach)

	resp = s.do(http.MethodGet, "/api/v1/roster", coach, nil)
	var roster response.RosterResponse
	s.decode(resp, &roster)
	s.Assert().Equal("Right shoulder strain", roster.Players[0].Injury)
}

func (s *APISuite) TestChatNonPhysicianSeesFilterNote() {
	token := s.signIn("Assistant Coach")

	resp := s.do(http.MethodPost, "/api/v1/chat", token, map[string]string{"message": "show me the roster"})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var transcript response.TranscriptResponse
	s.decode(resp, &transcript)
	reply := transcript.Messages[len(transcript.Messages)-1].Text
	s.Assert().Contains(reply, "filtered based on your role")
}
