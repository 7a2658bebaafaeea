// Package server exposes the discussion platform over HTTP: thin JSON
// endpoints for creating and reading topics, threads, replies, reactions and
// bookmarks, plus the websocket live channel delivering timeline events.
//
// Creating a thread returns immediately; agent replies arrive later,
// exclusively via the live channel or a subsequent read of the thread's
// replies.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/hupe1980/agora/core"
	"github.com/hupe1980/agora/logging"
	"github.com/hupe1980/agora/orchestrator"
	"github.com/hupe1980/agora/timeline"
)

// Options configures a Server instance.
//
// Use functional options with New to override defaults.
type Options struct {
	// DefaultParticipantID identifies the human participant attributed to
	// live-channel messages that do not carry a user id.
	DefaultParticipantID string

	// Logger for request diagnostics. Defaults to NoOp.
	Logger logging.Logger

	// CheckOrigin overrides the websocket origin policy. Defaults to
	// allowing all origins, matching a same-process demo UI.
	CheckOrigin func(r *http.Request) bool
}

// Stores bundles the persistence collaborators the server reads and writes.
type Stores struct {
	Participants core.ParticipantStore
	Topics       core.TopicStore
	Threads      core.ThreadStore
	Replies      core.ReplyStore
	Reactions    core.ReactionStore
	Bookmarks    core.BookmarkStore
}

// Server wires the HTTP API and the live channel to the orchestration
// pipeline.
type Server struct {
	stores             Stores
	orch               *orchestrator.Orchestrator
	hub                *timeline.Hub
	logger             logging.Logger
	upgrader           websocket.Upgrader
	defaultParticipant string
	mux                *http.ServeMux
}

// New creates a Server over the given stores, orchestrator and hub.
func New(stores Stores, orch *orchestrator.Orchestrator, hub *timeline.Hub, optFns ...func(o *Options)) *Server {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	checkOrigin := opts.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	s := &Server{
		stores:             stores,
		orch:               orch,
		hub:                hub,
		logger:             opts.Logger,
		upgrader:           websocket.Upgrader{CheckOrigin: checkOrigin},
		defaultParticipant: opts.DefaultParticipantID,
		mux:                http.NewServeMux(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.mux.ServeHTTP(w, r) }

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/topics", s.handleListTopics)
	s.mux.HandleFunc("POST /api/topics", s.handleCreateTopic)
	s.mux.HandleFunc("GET /api/participants", s.handleListParticipants)
	s.mux.HandleFunc("POST /api/participants", s.handleCreateParticipant)
	s.mux.HandleFunc("GET /api/participants/{id}/bookmarks", s.handleListBookmarks)
	s.mux.HandleFunc("POST /api/threads", s.handleCreateThread)
	s.mux.HandleFunc("GET /api/threads/{id}", s.handleGetThread)
	s.mux.HandleFunc("GET /api/threads/{id}/replies", s.handleListReplies)
	s.mux.HandleFunc("POST /api/replies", s.handleCreateReply)
	s.mux.HandleFunc("POST /api/reactions", s.handleToggleReaction)
	s.mux.HandleFunc("POST /api/bookmarks", s.handleToggleBookmark)
	s.mux.HandleFunc("GET /ws", s.handleLiveChannel)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, core.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.writeError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) handleListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := s.stores.Topics.List(r.Context())
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, topics)
}

func (s *Server) handleCreateTopic(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	topic, err := s.stores.Topics.Create(r.Context(), core.Topic{Name: payload.Name, Description: payload.Description})
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, topic)
}

func (s *Server) handleListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := s.stores.Participants.List(r.Context())
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, participants)
}

func (s *Server) handleCreateParticipant(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
		Bio  string `json:"bio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	participant, err := s.stores.Participants.Create(r.Context(),
		core.NewParticipant(payload.Name, core.RoleHuman, payload.Bio))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, participant)
}

// handleCreateThread persists the thread, kicks off a detached orchestration
// run and returns immediately. The response never waits on agent generation.
func (s *Server) handleCreateThread(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		TopicID   string `json:"topic_id"`
		CreatedBy string `json:"created_by"`
		Content   string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil ||
		payload.TopicID == "" || payload.CreatedBy == "" || payload.Content == "" {
		s.writeError(w, http.StatusBadRequest, "topic_id, created_by and content are required")
		return
	}
	if _, err := s.stores.Topics.Get(r.Context(), payload.TopicID); err != nil {
		s.writeStoreError(w, err)
		return
	}
	if _, err := s.stores.Participants.Get(r.Context(), payload.CreatedBy); err != nil {
		s.writeStoreError(w, err)
		return
	}

	thread, err := s.stores.Threads.Create(r.Context(),
		core.NewThread(payload.TopicID, payload.CreatedBy, payload.Content))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	run := s.orch.TriggerThread(thread)
	s.logger.Debug("orchestration triggered for new thread", "thread_id", thread.ID, "run_id", run.ID)

	s.writeJSON(w, http.StatusCreated, thread)
}

func (s *Server) handleGetThread(w http.ResponseWriter, r *http.Request) {
	thread, err := s.stores.Threads.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, thread)
}

func (s *Server) handleListReplies(w http.ResponseWriter, r *http.Request) {
	if _, err := s.stores.Threads.Get(r.Context(), r.PathValue("id")); err != nil {
		s.writeStoreError(w, err)
		return
	}
	replies, err := s.stores.Replies.ListByThread(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, replies)
}

// handleCreateReply persists a reply without triggering orchestration;
// reply-triggered orchestration rides the live channel.
func (s *Server) handleCreateReply(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ThreadID  string `json:"post_id"`
		CreatedBy string `json:"created_by"`
		Content   string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil ||
		payload.ThreadID == "" || payload.CreatedBy == "" || payload.Content == "" {
		s.writeError(w, http.StatusBadRequest, "post_id, created_by and content are required")
		return
	}
	if _, err := s.stores.Threads.Get(r.Context(), payload.ThreadID); err != nil {
		s.writeStoreError(w, err)
		return
	}
	if _, err := s.stores.Participants.Get(r.Context(), payload.CreatedBy); err != nil {
		s.writeStoreError(w, err)
		return
	}
	reply, err := s.stores.Replies.Create(r.Context(),
		core.NewReply(payload.ThreadID, payload.CreatedBy, payload.Content))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, reply)
}

func (s *Server) handleToggleReaction(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Kind      string `json:"type"`
		ThreadID  string `json:"post_id"`
		ReplyID   string `json:"comment_id"`
		CreatedBy string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	kind := core.ReactionKind(payload.Kind)
	if kind != core.ReactionLike && kind != core.ReactionDislike {
		s.writeError(w, http.StatusBadRequest, "invalid reaction type")
		return
	}
	if (payload.ThreadID == "") == (payload.ReplyID == "") {
		s.writeError(w, http.StatusBadRequest, "exactly one of post_id or comment_id is required")
		return
	}
	action, err := s.stores.Reactions.Toggle(r.Context(), core.Reaction{
		Kind:          kind,
		ParticipantID: payload.CreatedBy,
		ThreadID:      payload.ThreadID,
		ReplyID:       payload.ReplyID,
	})
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"action": string(action), "type": payload.Kind})
}

func (s *Server) handleToggleBookmark(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ThreadID  string `json:"post_id"`
		CreatedBy string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.ThreadID == "" {
		s.writeError(w, http.StatusBadRequest, "post_id is required")
		return
	}
	added, err := s.stores.Bookmarks.Toggle(r.Context(), core.Bookmark{
		ParticipantID: payload.CreatedBy,
		ThreadID:      payload.ThreadID,
	})
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	action := "removed"
	if added {
		action = "added"
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"action": action})
}

func (s *Server) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := s.stores.Bookmarks.ListByParticipant(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, bookmarks)
}
