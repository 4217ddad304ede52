package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"github.com/twaasoulElm3refa/editor-tool/internal/auth"
	"github.com/twaasoulElm3refa/editor-tool/pkg/llm"
	"github.com/twaasoulElm3refa/editor-tool/pkg/news"
)

type fakeVerifier struct {
	claims *auth.Claims
}

func (f *fakeVerifier) Verify(authorization string) (*auth.Claims, error) {
	if f.claims == nil || authorization == "" {
		return nil, auth.ErrUnauthorized
	}
	return f.claims, nil
}

type fakeSearcher struct {
	enabled   bool
	items     []news.Item
	err       error
	lastQuery string
}

func (f *fakeSearcher) Search(query, language string, maxItems int) ([]news.Item, error) {
	f.lastQuery = query
	return f.items, f.err
}

func (f *fakeSearcher) Enabled() bool {
	return f.enabled
}

func newChatRouter(verifier SessionVerifier, completer llm.Completer, searcher news.Searcher, autoSearch bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewChatHandler(verifier, completer, searcher, autoSearch, "ar")
	r.POST("/chat", h.Chat)
	return r
}

// closeNotifyRecorder adds http.CloseNotifier, which gin's Context.Stream
// requires and httptest.ResponseRecorder does not implement.
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (c *closeNotifyRecorder) CloseNotify() <-chan bool {
	return c.closed
}

func postChat(r *gin.Engine, token, body string) *httptest.ResponseRecorder {
	w := &closeNotifyRecorder{httptest.NewRecorder(), make(chan bool, 1)}
	req := httptest.NewRequest("POST", "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w.ResponseRecorder
}

func testClaims() *auth.Claims {
	return &auth.Claims{SessionID: "s-1", UserID: 42}
}

func TestChat_Unauthorized(t *testing.T) {
	completer := &fakeCompleter{}
	r := newChatRouter(&fakeVerifier{}, completer, &fakeSearcher{}, false)

	w := postChat(r, "", `{"session_id":"s-1","user_id":42,"message":"مرحبا"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "", completer.lastPrompt)
}

func TestChat_MissingMessage(t *testing.T) {
	r := newChatRouter(&fakeVerifier{claims: testClaims()}, &fakeCompleter{}, &fakeSearcher{}, false)

	w := postChat(r, "token", `{"session_id":"s-1","user_id":42,"message":"  "}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChat_StreamsFragments(t *testing.T) {
	completer := &fakeCompleter{fragments: []llm.Fragment{
		{Text: "أهلًا"},
		{Text: " بك"},
	}}
	r := newChatRouter(&fakeVerifier{claims: testClaims()}, completer, &fakeSearcher{}, false)

	w := postChat(r, "token", `{"session_id":"s-1","user_id":42,"message":"مرحبا"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "أهلًا بك", w.Body.String())

	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain") {
		t.Errorf("unexpected content type %q", w.Header().Get("Content-Type"))
	}
}

func TestChat_StreamErrorBecomesReadableFragment(t *testing.T) {
	completer := &fakeCompleter{fragments: []llm.Fragment{
		{Text: "بداية الرد"},
		{Err: errProvider},
	}}
	r := newChatRouter(&fakeVerifier{claims: testClaims()}, completer, &fakeSearcher{}, false)

	w := postChat(r, "token", `{"session_id":"s-1","user_id":42,"message":"مرحبا"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	if !strings.Contains(body, "بداية الرد") {
		t.Errorf("body lost fragments before the failure: %q", body)
	}
	if !strings.Contains(body, streamErrorMessage) {
		t.Errorf("body missing readable error fragment: %q", body)
	}
}

func TestChat_VisibleValueInContext(t *testing.T) {
	completer := &fakeCompleter{fragments: []llm.Fragment{{Text: "رد"}}}
	r := newChatRouter(&fakeVerifier{claims: testClaims()}, completer, &fakeSearcher{}, false)

	body := `{"session_id":"s-1","user_id":42,"message":"حسّن الصياغة","visible_values":[{"organization_name":"شركة الأفق","about_press":"إطلاق منتج جديد","article":"نص الخبر"}]}`
	w := postChat(r, "token", body)

	assert.Equal(t, http.StatusOK, w.Code)

	if !strings.Contains(completer.lastSystem, "شركة الأفق") {
		t.Errorf("system prompt missing visible value context: %q", completer.lastSystem)
	}
}

func TestChat_NewsBlockOnExplicitCommand(t *testing.T) {
	searcher := &fakeSearcher{
		enabled: true,
		items:   []news.Item{{Title: "خبر اقتصادي", Source: "رويترز", Date: "2024-01-01"}},
	}
	completer := &fakeCompleter{fragments: []llm.Fragment{{Text: "رد"}}}
	r := newChatRouter(&fakeVerifier{claims: testClaims()}, completer, searcher, false)

	w := postChat(r, "token", `{"session_id":"s-1","user_id":42,"message":"بحث: أسعار النفط"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "أسعار النفط", searcher.lastQuery)

	if !strings.Contains(completer.lastSystem, "خبر اقتصادي") {
		t.Errorf("system prompt missing news block: %q", completer.lastSystem)
	}
}

func TestChat_NoNewsWithoutProvider(t *testing.T) {
	completer := &fakeCompleter{fragments: []llm.Fragment{{Text: "رد"}}}
	r := newChatRouter(&fakeVerifier{claims: testClaims()}, completer, &fakeSearcher{enabled: false}, true)

	w := postChat(r, "token", `{"session_id":"s-1","user_id":42,"message":"ما آخر الأخبار؟"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	if strings.Contains(completer.lastSystem, "أخبار حديثة") {
		t.Errorf("system prompt has a news block with no provider configured: %q", completer.lastSystem)
	}
}

func TestChat_NewsFailureDoesNotFailTurn(t *testing.T) {
	searcher := &fakeSearcher{enabled: true, err: errProvider}
	completer := &fakeCompleter{fragments: []llm.Fragment{{Text: "رد"}}}
	r := newChatRouter(&fakeVerifier{claims: testClaims()}, completer, searcher, true)

	w := postChat(r, "token", `{"session_id":"s-1","user_id":42,"message":"مرحبا"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "رد", w.Body.String())
}
