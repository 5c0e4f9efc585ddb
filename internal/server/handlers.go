package server

import (
	"encoding/json"
	"net/http"

	"github.com/EkalavyanS/Flashy/internal/content"
	"github.com/EkalavyanS/Flashy/internal/logging"
)

const maxBodyBytes = 64 << 10

// Messages returned in the "error" field.
const (
	msgMissingInput      = "Missing topic or grade level"
	msgFlashcardsFailed  = "Failed to generate flashcards"
	msgFlashcardsInvalid = "Failed to parse generated flashcards"
	msgQuizFailed        = "Failed to generate quiz"
	msgQuizInvalid       = "Failed to parse generated questions"
)

type flashcardsResponse struct {
	Slides content.Deck `json:"slides"`
}

type quizResponse struct {
	Questions content.QuestionSet `json:"questions"`
}

type healthResponse struct {
	Status string `json:"status"`
	Model  string `json:"model,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Model: s.config.Model})
}

func (s *Server) generateFlashcards(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	deck, err := s.source.Flashcards(r.Context(), req)
	if err != nil {
		s.fail(w, r, err, msgFlashcardsFailed, msgFlashcardsInvalid)
		return
	}
	writeJSON(w, http.StatusOK, flashcardsResponse{Slides: deck})
}

func (s *Server) generateQuiz(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	set, err := s.source.Quiz(r.Context(), req)
	if err != nil {
		s.fail(w, r, err, msgQuizFailed, msgQuizInvalid)
		return
	}
	writeJSON(w, http.StatusOK, quizResponse{Questions: set})
}

// decodeRequest reads {topic, gradeLevel}. Anything that does not yield
// two non-blank fields is answered with 400.
func decodeRequest(w http.ResponseWriter, r *http.Request) (content.Request, bool) {
	var body content.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		logging.WithContext(r.Context()).WithError(err).Warn("invalid request body")
		writeError(w, http.StatusBadRequest, msgMissingInput)
		return content.Request{}, false
	}
	req, err := content.NewRequest(body.Topic, body.GradeLevel)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgMissingInput)
		return content.Request{}, false
	}
	return req, true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, generateMsg, parseMsg string) {
	log := logging.WithContext(r.Context()).WithError(err)
	switch content.KindOf(err) {
	case content.KindMissingInput:
		writeError(w, http.StatusBadRequest, msgMissingInput)
	case content.KindExtraction:
		log.Error(parseMsg)
		writeError(w, http.StatusInternalServerError, parseMsg)
	default:
		log.Error(generateMsg)
		writeError(w, http.StatusInternalServerError, generateMsg)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
