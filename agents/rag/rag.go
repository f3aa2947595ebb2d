package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bububa/waypoint/components/llm"
	"github.com/bububa/waypoint/components/vectordb"
)

const DefaultTopK = vectordb.DefaultTopK

var (
	ErrEmptyQuestion = errors.New("empty question")
	ErrNoContext     = errors.New("no relevant information to answer question")
)

// Retriever finds the chunks most similar to a query.
type Retriever interface {
	Search(ctx context.Context, query string, topK int) ([]vectordb.Result, error)
}

var _ Retriever = (*vectordb.Store)(nil)

// ContextGenerator turns a question and its retrieved chunks into a prompt.
type ContextGenerator func(question string, results []vectordb.Result) string

type Options struct {
	topK             int
	logger           *zap.Logger
	contextGenerator ContextGenerator
}

type Option func(*Options)

func WithTopK(k int) Option {
	return func(r *Options) {
		r.topK = k
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(r *Options) {
		r.logger = logger
	}
}

func WithContextGenerator(fn ContextGenerator) Option {
	return func(r *Options) {
		r.contextGenerator = fn
	}
}

// Asker answers questions from the indexed chunks: it retrieves the top-k
// chunks, stuffs them into one prompt and hands that to the model.
type Asker struct {
	retriever Retriever
	answerer  llm.Answerer
	Options
}

func NewAsker(retriever Retriever, answerer llm.Answerer, opts ...Option) *Asker {
	ret := &Asker{
		retriever: retriever,
		answerer:  answerer,
		Options: Options{
			topK: DefaultTopK,
		},
	}
	for _, opt := range opts {
		opt(&ret.Options)
	}
	if ret.logger == nil {
		ret.logger = zap.NewNop()
	}
	if ret.contextGenerator == nil {
		ret.contextGenerator = StuffContextGenerator
	}
	return ret
}

func (a *Asker) Ask(ctx context.Context, question string) (string, error) {
	prompt, err := a.prompt(ctx, question)
	if err != nil {
		return "", err
	}
	answer, err := a.answerer.Answer(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}
	return answer, nil
}

// AskStream is Ask handing the answer to fn piece by piece. Answerers that
// cannot stream deliver the whole answer in one piece.
func (a *Asker) AskStream(ctx context.Context, question string, fn func(delta string) error) error {
	prompt, err := a.prompt(ctx, question)
	if err != nil {
		return err
	}
	if streamer, ok := a.answerer.(llm.Streamer); ok {
		if err := streamer.Stream(ctx, prompt, fn); err != nil {
			return fmt.Errorf("failed to generate answer: %w", err)
		}
		return nil
	}
	answer, err := a.answerer.Answer(ctx, prompt)
	if err != nil {
		return fmt.Errorf("failed to generate answer: %w", err)
	}
	return fn(answer)
}

func (a *Asker) prompt(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}
	results, err := a.retriever.Search(ctx, question, a.topK)
	if err != nil {
		return "", fmt.Errorf("failed to search index: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoContext, question)
	}
	for i, res := range results {
		a.logger.Debug("retrieved document",
			zap.Int("rank", i+1),
			zap.String("id", res.ID),
			zap.Float64("score", res.Score),
			zap.Any("meta", res.Meta),
			zap.String("content", res.Content),
		)
	}
	return a.contextGenerator(question, results), nil
}
