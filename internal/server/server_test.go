package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EkalavyanS/Flashy/internal/content"
	"github.com/EkalavyanS/Flashy/internal/llm"
)

func slidesAnswer(n int) string {
	blocks := make([]string, n)
	for i := range blocks {
		blocks[i] = fmt.Sprintf("Fact %d\nChlorophyll captures light, part %d.", i+1, i+1)
	}
	return strings.Join(blocks, "\n\n")
}

func quizAnswer(n int) string {
	qs := make([]content.Question, n)
	for i := range qs {
		qs[i] = content.Question{
			Prompt:        fmt.Sprintf("Question %d?", i+1),
			Options:       []string{"Sunlight", "Sand", "Plastic", "Noise"},
			CorrectAnswer: "Sunlight",
		}
	}
	b, _ := json.Marshal(qs)
	return "```json\n" + string(b) + "\n```"
}

func newTestServer(t *testing.T, responses ...llm.MockResponse) (*httptest.Server, *llm.MockProvider, *test.Hook) {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	logger, hook := test.NewNullLogger()
	srv := New(content.New(mock, content.DefaultConfig()), Config{Model: "mock"}, logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, mock, hook
}

func post(t *testing.T, url, body string) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func errorText(t *testing.T, out map[string]json.RawMessage) string {
	t.Helper()
	var msg string
	require.NoError(t, json.Unmarshal(out["error"], &msg))
	return msg
}

func TestGenerateFlashcards(t *testing.T) {
	ts, mock, _ := newTestServer(t, llm.MockText(slidesAnswer(10)))

	resp, out := post(t, ts.URL+"/api/generate-flashcards", `{"topic":"Photosynthesis","gradeLevel":"5th Grade"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var slides []map[string]string
	require.NoError(t, json.Unmarshal(out["slides"], &slides))
	require.Len(t, slides, 10)
	assert.Equal(t, "Fact 1", slides[0]["Topic"])
	assert.Equal(t, "Chlorophyll captures light, part 1.", slides[0]["explanation"])

	require.Equal(t, 1, mock.CallCount())
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "Photosynthesis for a 5th Grade grader")
}

func TestGenerateQuiz(t *testing.T) {
	ts, _, _ := newTestServer(t, llm.MockText(quizAnswer(5)))

	resp, out := post(t, ts.URL+"/api/generate-quiz", `{"topic":"Photosynthesis","gradeLevel":"5th Grade"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var questions []content.Question
	require.NoError(t, json.Unmarshal(out["questions"], &questions))
	require.Len(t, questions, 5)
	for _, q := range questions {
		assert.Len(t, q.Options, 4)
		assert.Contains(t, q.Options, q.CorrectAnswer)
	}
}

func TestMissingInput(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{"blank topic", "/api/generate-flashcards", `{"topic":"  ","gradeLevel":"5th Grade"}`},
		{"no grade", "/api/generate-quiz", `{"topic":"Photosynthesis"}`},
		{"not json", "/api/generate-quiz", `topic=Photosynthesis`},
		{"empty body", "/api/generate-flashcards", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, mock, _ := newTestServer(t)
			resp, out := post(t, ts.URL+tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "Missing topic or grade level", errorText(t, out))
			assert.Zero(t, mock.CallCount(), "no generation call for invalid input")
		})
	}
}

func TestGenerationFailure(t *testing.T) {
	down := llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("connection refused")}}

	t.Run("flashcards", func(t *testing.T) {
		ts, _, hook := newTestServer(t, down)
		resp, out := post(t, ts.URL+"/api/generate-flashcards", `{"topic":"Calculus","gradeLevel":"College"}`)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "Failed to generate flashcards", errorText(t, out))

		var logged bool
		for _, e := range hook.AllEntries() {
			if e.Level == logrus.ErrorLevel && e.Message == "Failed to generate flashcards" {
				logged = true
			}
		}
		assert.True(t, logged, "generation failure should be logged at error level")
	})

	t.Run("quiz", func(t *testing.T) {
		ts, _, _ := newTestServer(t, down)
		resp, out := post(t, ts.URL+"/api/generate-quiz", `{"topic":"Calculus","gradeLevel":"College"}`)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "Failed to generate quiz", errorText(t, out))
	})
}

func TestExtractionFailure(t *testing.T) {
	t.Run("quiz not json", func(t *testing.T) {
		ts, _, _ := newTestServer(t, llm.MockText("Sure! Here are five questions about World War II."))
		resp, out := post(t, ts.URL+"/api/generate-quiz", `{"topic":"World War II","gradeLevel":"14 years old"}`)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "Failed to parse generated questions", errorText(t, out))
	})

	t.Run("deck without explanations", func(t *testing.T) {
		ts, _, _ := newTestServer(t, llm.MockText(`[{"Topic":"Causes","explanation":""}]`))
		resp, out := post(t, ts.URL+"/api/generate-flashcards", `{"topic":"World War II","gradeLevel":"14 years old"}`)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "Failed to parse generated flashcards", errorText(t, out))
	})
}

func TestShortDeckIsServed(t *testing.T) {
	ts, _, _ := newTestServer(t, llm.MockText("Here are your slides:\n\n"+slidesAnswer(3)))
	resp, out := post(t, ts.URL+"/api/generate-flashcards", `{"topic":"World War II","gradeLevel":"14 years old"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var slides []map[string]string
	require.NoError(t, json.Unmarshal(out["slides"], &slides))
	assert.Len(t, slides, 4)
	assert.Equal(t, "Here are your slides:", slides[0]["Topic"])
}

func TestHealth(t *testing.T) {
	ts, _, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var out healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, healthResponse{Status: "ok", Model: "mock"}, out)
}

func TestMethodNotAllowed(t *testing.T) {
	ts, _, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/generate-quiz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRequestLogging(t *testing.T) {
	ts, _, hook := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "request", entry.Message)
	assert.Equal(t, "/api/health", entry.Data["path"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])
	assert.NotEmpty(t, entry.Data["request_id"])
}

func TestListenAndServeShutsDown(t *testing.T) {
	srv := New(content.New(llm.NewMockProvider(), content.DefaultConfig()), Config{Addr: "127.0.0.1:0", WriteTimeout: DefaultConfig().WriteTimeout}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()

	cancel()
	assert.NoError(t, <-done)
}

type ctxSource struct {
	content.Source
	session string
}

func (c *ctxSource) Quiz(ctx context.Context, _ content.Request) (content.QuestionSet, error) {
	c.session = llm.SessionFrom(ctx)
	return nil, errors.New("stop")
}

func TestLLMCallsTaggedWithRequestID(t *testing.T) {
	src := &ctxSource{}
	logger, _ := test.NewNullLogger()
	ts := httptest.NewServer(New(src, Config{}, logger).Handler())
	t.Cleanup(ts.Close)

	resp, _ := post(t, ts.URL+"/api/generate-quiz", `{"topic":"Photosynthesis","gradeLevel":"5th Grade"}`)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotEmpty(t, src.session)
}
