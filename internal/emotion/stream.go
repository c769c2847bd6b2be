package emotion

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vaidyahealth/vaidya-platform/pkg/logging"
)

// AudioSource yields microphone audio frames. ReadFrame blocks until a
// frame is available and returns io.EOF when the source is exhausted.
type AudioSource interface {
	ReadFrame(ctx context.Context) ([]byte, error)
}

// Message is a transcribed conversation turn with its top emotions.
type Message struct {
	Role     string
	Text     string
	Emotions []EmotionScore
}

// StreamConfig controls a streaming session.
type StreamConfig struct {
	// URL is the websocket endpoint of the empathic voice API.
	URL      string
	APIKey   string
	ConfigID string

	Dialer *websocket.Dialer
}

// Stream is one live session against the empathic voice API. A writer
// goroutine pumps audio frames to the socket while the receive loop
// parses events. Both loops exit cooperatively when the stop flag is set
// or the socket errors; there is no hard deadline, so a stalled remote
// keeps the session open until Stop is called.
type Stream struct {
	conn   *websocket.Conn
	log    *Log
	logger *logging.Logger

	// Messages delivers transcribed turns to the caller.
	Messages chan Message
	// Audio delivers the assistant's synthesized audio frames.
	Audio chan []byte

	stopped atomic.Bool
	wg      sync.WaitGroup
}

// Connect dials the empathic voice endpoint and returns a live session.
func Connect(ctx context.Context, cfg StreamConfig, log *Log, logger *logging.Logger) (*Stream, error) {
	if logger == nil {
		logger = logging.Default()
	}
	dialer := cfg.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	endpoint, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("emotion: parse endpoint: %w", err)
	}
	q := endpoint.Query()
	q.Set("api_key", cfg.APIKey)
	if cfg.ConfigID != "" {
		q.Set("config_id", cfg.ConfigID)
	}
	endpoint.RawQuery = q.Encode()

	conn, _, err := dialer.DialContext(ctx, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("emotion: dial voice API: %w", err)
	}

	s := &Stream{
		conn:     conn,
		log:      log,
		logger:   logger,
		Messages: make(chan Message, 16),
		Audio:    make(chan []byte, 16),
	}
	return s, nil
}

// Run starts the audio writer and the receive loop and blocks until the
// session ends. The Messages and Audio channels are closed on return.
func (s *Stream) Run(ctx context.Context, source AudioSource) error {
	s.wg.Add(1)
	go s.pumpAudio(ctx, source)

	err := s.receive()

	s.stopped.Store(true)
	_ = s.conn.Close()
	s.wg.Wait()
	close(s.Messages)
	close(s.Audio)
	return err
}

// Stop ends the session. Safe to call from another goroutine.
func (s *Stream) Stop() {
	s.stopped.Store(true)
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	_ = s.conn.Close()
}

type audioInput struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// pumpAudio reads frames from the source and writes them to the socket
// as base64 audio_input events.
func (s *Stream) pumpAudio(ctx context.Context, source AudioSource) {
	defer s.wg.Done()

	for !s.stopped.Load() {
		frame, err := source.ReadFrame(ctx)
		if err != nil {
			if err != io.EOF && ctx.Err() == nil {
				s.logger.Error("audio source failed", "error", err)
			}
			return
		}
		msg := audioInput{Type: "audio_input", Data: base64.StdEncoding.EncodeToString(frame)}
		if err := s.conn.WriteJSON(msg); err != nil {
			if !s.stopped.Load() {
				s.logger.Error("audio write failed", "error", err)
			}
			return
		}
	}
}

type subscribeEvent struct {
	Type    string `json:"type"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FromText bool `json:"from_text"`
	Models   struct {
		Prosody struct {
			Scores map[string]float64 `json:"scores"`
		} `json:"prosody"`
	} `json:"models"`
	Data string `json:"data"`
}

// receive parses events until the socket closes or errors.
func (s *Stream) receive() error {
	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			if s.stopped.Load() || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("emotion: read event: %w", err)
		}

		var event subscribeEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			s.logger.Warn("unparseable event", "error", err)
			continue
		}

		switch event.Type {
		case "user_message", "assistant_message":
			s.handleMessage(event)
		case "audio_output":
			data, err := base64.StdEncoding.DecodeString(event.Data)
			if err != nil {
				s.logger.Warn("bad audio payload", "error", err)
				continue
			}
			select {
			case s.Audio <- data:
			default:
				// Drop frames the caller is not consuming.
			}
		}
	}
}

func (s *Stream) handleMessage(event subscribeEvent) {
	msg := Message{Role: event.Message.Role, Text: event.Message.Content}

	// Prosody scores only accompany spoken turns.
	if !event.FromText && len(event.Models.Prosody.Scores) > 0 {
		msg.Emotions = TopEmotions(event.Models.Prosody.Scores, 3)
		if s.log != nil {
			if err := s.log.Append(LogEntry{
				Timestamp: time.Now(),
				Role:      msg.Role,
				Message:   msg.Text,
				Emotions:  msg.Emotions,
			}); err != nil {
				s.logger.Error("emotion log append failed", "error", err)
			}
		}
	}

	select {
	case s.Messages <- msg:
	default:
	}
}
