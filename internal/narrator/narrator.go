package narrator

import (
	"context"
	"fmt"
	"log"
	"time"

	"conviction-radar/internal/domain"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// LLMClient abstracts the OpenAI chat completions API for testability.
type LLMClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// SignalQuerier provides the ranked signal a narrative is written about.
type SignalQuerier interface {
	GetSignal(ctx context.Context, ticker string) (*domain.Signal, error)
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// NarratorService turns a scored signal into a short prose briefing.
// Narratives are interpretation only; scores and badges come from the
// engine and are passed to the model as ground truth.
type NarratorService struct {
	tracer  trace.Tracer
	llm     LLMClient
	signals SignalQuerier
	redis   RedisClient
	model   string
	ttl     time.Duration
}

func NewNarratorService(
	tracer trace.Tracer,
	llm LLMClient,
	signals SignalQuerier,
	redisClient RedisClient,
	model string,
	ttl time.Duration,
) *NarratorService {
	return &NarratorService{
		tracer:  tracer,
		llm:     llm,
		signals: signals,
		redis:   redisClient,
		model:   model,
		ttl:     ttl,
	}
}

// Narrate returns a briefing for a ranked ticker, cached per ticker so
// repeated reads of the same report don't repeat LLM calls.
func (s *NarratorService) Narrate(ctx context.Context, ticker string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "narrator.narrate")
	defer span.End()
	span.SetAttributes(attribute.String("ticker", ticker))

	cacheKey := "narrative:" + ticker
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, cacheKey).Result()
		if err != nil && err != redis.Nil {
			log.Printf("redis cache read error: %v", err)
		}
		if cached != "" {
			return cached, nil
		}
	}

	sig, err := s.signals.GetSignal(ctx, ticker)
	if err != nil {
		return "", err
	}

	narrative, err := s.callLLM(ctx, BuildSystemPrompt(), FormatSignalContext(sig))
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("narrator unavailable: %w", err)
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, cacheKey, narrative, s.ttl).Err(); err != nil {
			log.Printf("redis cache write error: %v", err)
		}
	}
	return narrative, nil
}

func (s *NarratorService) callLLM(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "narrator.llm-call")
	defer span.End()
	span.SetAttributes(attribute.String("llm.model", s.model))

	completion, err := s.llm.CreateChatCompletion(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in LLM response")
	}

	reply := completion.Choices[0].Message.Content
	span.SetAttributes(attribute.Int("llm.reply_length", len(reply)))
	return reply, nil
}

// openaiClient wraps the official SDK's chat completions service.
type openaiClient struct {
	client openai.Client
}

func NewOpenAIClient(apiKey string) LLMClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &openaiClient{client: client}
}

func (c *openaiClient) CreateChatCompletion(
	ctx context.Context,
	params openai.ChatCompletionNewParams,
) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}
