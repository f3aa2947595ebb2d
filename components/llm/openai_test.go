package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIAnswer(t *testing.T) {
	var req openai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:    "chatcmpl-1",
			Model: req.Model,
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "The robotics club meets on Tuesday."},
			}},
		})
	}))
	defer srv.Close()

	answerer := NewOpenAI(NewOpenAIClient("test-key", srv.URL+"/v1"), WithModel("gpt-4o"), WithTemperature(0.5))
	answer, err := answerer.Answer(context.Background(), "When does the robotics club meet?")
	require.NoError(t, err)
	assert.Equal(t, "The robotics club meets on Tuesday.", answer)

	assert.Equal(t, "gpt-4o", req.Model)
	assert.InDelta(t, 0.5, req.Temperature, 1e-6)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "When does the robotics club meet?", req.Messages[0].Content)
}

func TestOpenAIEmptyAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "chatcmpl-2", "choices": []}`))
	}))
	defer srv.Close()

	_, err := NewOpenAI(NewOpenAIClient("test-key", srv.URL+"/v1")).Answer(context.Background(), "q")
	assert.ErrorIs(t, err, ErrEmptyAnswer)
}

func TestDefaults(t *testing.T) {
	g := NewGemini(nil)
	assert.Equal(t, DefaultGeminiModel, g.Model())
	assert.InDelta(t, DefaultTemperature, g.Temperature(), 1e-6)

	o := NewOpenAI(nil, WithModel("local"))
	assert.Equal(t, "local", o.Model())
}

func TestOpenAIStream(t *testing.T) {
	var req openai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Header().Set("Content-Type", "text/event-stream")
		for _, delta := range []string{"The robotics ", "", "club meets on Tuesday."} {
			bs, err := json.Marshal(openai.ChatCompletionStreamResponse{
				ID: "chatcmpl-3",
				Choices: []openai.ChatCompletionStreamChoice{{
					Delta: openai.ChatCompletionStreamChoiceDelta{Content: delta},
				}},
			})
			require.NoError(t, err)
			fmt.Fprintf(w, "data: %s\n\n", bs)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	var parts []string
	err := NewOpenAI(NewOpenAIClient("test-key", srv.URL+"/v1")).Stream(context.Background(), "When?", func(delta string) error {
		parts = append(parts, delta)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, req.Stream)
	assert.Equal(t, []string{"The robotics ", "club meets on Tuesday."}, parts)
}

func TestOpenAIStreamCallbackError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"id\":\"1\",\"choices\":[{\"delta\":{\"content\":\"a\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"id\":\"1\",\"choices\":[{\"delta\":{\"content\":\"b\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	errClosed := errors.New("client went away")
	calls := 0
	err := NewOpenAI(NewOpenAIClient("test-key", srv.URL+"/v1")).Stream(context.Background(), "q", func(string) error {
		calls++
		return errClosed
	})
	assert.ErrorIs(t, err, errClosed)
	assert.Equal(t, 1, calls)
}
