package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hupe1980/agora/core"
)

// inboundFrame is the client -> server live-channel message shape. UserID is
// optional; when absent the server's default participant is attributed.
type inboundFrame struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	ThreadID string `json:"post_id"`
	UserID   string `json:"user_id,omitempty"`
}

// handleLiveChannel upgrades the connection, subscribes it to the timeline
// hub and pumps events until the client disconnects. Unsubscription runs on
// every exit path, abrupt disconnects included.
func (s *Server) handleLiveChannel(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	sub := s.hub.Subscribe()
	defer sub.Close()
	defer conn.Close()

	s.logger.Debug("live channel connected", "remote", conn.RemoteAddr().String())

	// Writer: forward timeline events until the subscription is closed or a
	// write fails. Closing the connection unblocks the reader below.
	go func() {
		for event := range sub.Events() {
			if err := conn.WriteJSON(event); err != nil {
				s.logger.Debug("live channel write failed", "error", err)
				conn.Close()
				return
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.logger.Debug("live channel disconnected", "error", err)
			return
		}
		// Inbound handling is detached from the read loop only in its side
		// effects: a malformed or failing frame never closes the connection.
		s.handleInboundFrame(r.Context(), data)
	}
}

// handleInboundFrame validates and applies one client frame. A malformed
// frame aborts before any side effect: nothing is persisted and no event is
// published.
func (s *Server) handleInboundFrame(ctx context.Context, data []byte) {
	var frame inboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		s.logger.Warn("malformed live channel frame", "error", err)
		return
	}
	if frame.Type != core.EventTypeReply {
		s.logger.Warn("unsupported live channel frame type", "type", frame.Type)
		return
	}
	if frame.Message == "" || frame.ThreadID == "" {
		s.logger.Warn("live channel frame missing required fields", "type", frame.Type)
		return
	}

	authorID := frame.UserID
	if authorID == "" {
		authorID = s.defaultParticipant
	}
	if authorID == "" {
		s.logger.Warn("live channel frame has no author and no default participant is configured")
		return
	}

	author, err := s.stores.Participants.Get(ctx, authorID)
	if err != nil {
		s.logger.Warn("live channel frame from unknown participant", "user_id", authorID, "error", err)
		return
	}
	thread, err := s.stores.Threads.Get(ctx, frame.ThreadID)
	if err != nil {
		s.logger.Warn("live channel frame for unknown thread", "post_id", frame.ThreadID, "error", err)
		return
	}

	reply, err := s.stores.Replies.Create(ctx, core.NewReply(thread.ID, author.ID, frame.Message))
	if err != nil {
		s.logger.Error("failed to persist live channel reply", "post_id", thread.ID, "error", err)
		return
	}

	// Echo first, then orchestrate: the triggering message event always
	// precedes the run's typing and reply events.
	s.hub.Publish(core.NewReplyEvent(reply, author))
	run := s.orch.TriggerReply(thread, reply)
	s.logger.Debug("orchestration triggered from live channel",
		"thread_id", thread.ID, "reply_id", reply.ID, "run_id", run.ID)
}
