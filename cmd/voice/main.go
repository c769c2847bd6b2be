// Command voice runs a live empathic-voice session from the terminal.
// Raw audio is read from stdin (e.g. piped from `arecord -t raw -f
// S16_LE -r 16000`), transcribed turns are printed with their top
// emotions, and spoken turns are appended to the emotion log that the
// analysis endpoints read.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vaidyahealth/vaidya-platform/internal/config"
	"github.com/vaidyahealth/vaidya-platform/internal/emotion"
	"github.com/vaidyahealth/vaidya-platform/pkg/logging"
)

// frameBytes is 100ms of 16kHz 16-bit mono audio.
const frameBytes = 3200

type stdinSource struct {
	r io.Reader
}

func (s *stdinSource) ReadFrame(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, io.EOF
	}
	buf := make([]byte, frameBytes)
	n, err := s.r.Read(buf)
	if n > 0 {
		return buf[:n], nil
	}
	if err == nil {
		err = io.EOF
	}
	return nil, err
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	if cfg.EmotionSocketURL == "" || cfg.EmotionAPIKey == "" {
		logger.Error("EMOTION_SOCKET_URL and EMOTION_API_KEY are required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stream, err := emotion.Connect(ctx, emotion.StreamConfig{
		URL:      cfg.EmotionSocketURL,
		APIKey:   cfg.EmotionAPIKey,
		ConfigID: cfg.EmotionConfigID,
	}, emotion.NewLog(cfg.EmotionLogPath), logger.Component("emotion"))
	if err != nil {
		logger.Error("voice session connect failed", "error", err)
		os.Exit(1)
	}

	go func() {
		<-ctx.Done()
		stream.Stop()
	}()

	go func() {
		for msg := range stream.Messages {
			line := fmt.Sprintf("[%s] %s", msg.Role, msg.Text)
			for _, e := range msg.Emotions {
				line += fmt.Sprintf(" %s=%.2f", e.Name, e.Score)
			}
			fmt.Println(line)
		}
	}()
	go func() {
		// Assistant audio is discarded; playback is out of scope for
		// the terminal client.
		for range stream.Audio {
		}
	}()

	logger.Info("voice session started", "log", cfg.EmotionLogPath)
	if err := stream.Run(ctx, &stdinSource{r: os.Stdin}); err != nil {
		logger.Error("voice session ended with error", "error", err)
		os.Exit(1)
	}
	logger.Info("voice session ended")
}
