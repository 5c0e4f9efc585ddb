package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/EkalavyanS/Flashy/internal/store"
)

// LoggingProvider is a decorator that records every LLM request in the
// trace store and emits a structured log line for it.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.EventRepo
	log       logrus.FieldLogger
}

// WithLogging wraps a Provider with request tracing. A nil logger
// discards log output.
func WithLogging(p Provider, providerName string, repo store.EventRepo, log logrus.FieldLogger) Provider {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &LoggingProvider{inner: p, provider: providerName, eventRepo: repo, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latencyMs := time.Since(start).Milliseconds()

	model := l.inner.ModelID()
	if req.Model != "" {
		model = req.Model
	}

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       model,
		Purpose:     purpose,
		SessionID:   SessionFrom(ctx),
		LatencyMs:   latencyMs,
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}

	entry := l.log.WithFields(logrus.Fields{
		"provider":   data.Provider,
		"model":      data.Model,
		"purpose":    purpose,
		"session":    data.SessionID,
		"latency_ms": latencyMs,
	})
	if err != nil {
		data.ErrorMessage = err.Error()
		entry.WithError(err).Warn("llm request failed")
	} else {
		entry.WithFields(logrus.Fields{
			"input_tokens":  data.InputTokens,
			"output_tokens": data.OutputTokens,
		}).Debug("llm request completed")
	}

	// Timed-out and abandoned calls are recorded too, so the write must
	// outlive the request context. A failed write never fails the request.
	if logErr := l.eventRepo.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
		l.log.WithError(logErr).Warn("failed to record LLM request")
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.Write(schemaDef)
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
