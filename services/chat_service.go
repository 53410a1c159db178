package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Dosada05/trade-machine/fixtures"
	"github.com/Dosada05/trade-machine/valuation"
)

const (
	chatMaxOutputTokens = 200

	chatEmptyQuestionReply = "Please ask a question about the trade or prospects."
	chatEmptyAnswerReply   = "No response."
)

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"max=4000"`
}

type ChatInput struct {
	Messages []ChatMessage `json:"messages" validate:"max=50,dive"`
}

type ChatReply struct {
	Response string `json:"response"`
}

// TextGenerator answers a conversation under a system prompt.
type TextGenerator interface {
	Generate(ctx context.Context, systemPrompt string, messages []ChatMessage, maxOutputTokens int32) (string, error)
}

type ChatService interface {
	Ask(ctx context.Context, userID, tradeID uuid.UUID, input ChatInput) (*ChatReply, error)
}

type chatService struct {
	trades    TradeService
	generator TextGenerator
	league    *fixtures.League
	logger    zerolog.Logger
}

// NewChatService builds the trade chat. A nil generator makes every
// question fail with ErrChatUnavailable.
func NewChatService(trades TradeService, generator TextGenerator, league *fixtures.League, logger zerolog.Logger) ChatService {
	return &chatService{
		trades:    trades,
		generator: generator,
		league:    league,
		logger:    logger.With().Str("service", "chat").Logger(),
	}
}

func (s *chatService) Ask(ctx context.Context, userID, tradeID uuid.UUID, input ChatInput) (*ChatReply, error) {
	if s.generator == nil {
		return nil, ErrChatUnavailable
	}
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	trade, err := s.trades.Get(ctx, userID, tradeID)
	if err != nil {
		return nil, err
	}

	var question string
	if n := len(input.Messages); n > 0 {
		question = strings.TrimSpace(input.Messages[n-1].Content)
	}
	if question == "" {
		return &ChatReply{Response: chatEmptyQuestionReply}, nil
	}

	prompt := buildChatPrompt(trade, s.league, question)
	answer, err := s.generator.Generate(ctx, prompt, input.Messages, chatMaxOutputTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to generate chat answer: %w", err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		answer = chatEmptyAnswerReply
	}

	s.logger.Debug().Str("trade_id", tradeID.String()).Int("messages", len(input.Messages)).Msg("chat answered")
	return &ChatReply{Response: answer}, nil
}

func buildChatPrompt(trade *TradeView, league *fixtures.League, question string) string {
	var b strings.Builder

	b.WriteString("You are a helpful NBA trade analysis assistant. You have access to the following trade information:\n\n")
	fmt.Fprintf(&b, "Trade Description: %s\n", trade.Description)
	fmt.Fprintf(&b, "Teams Involved: %s\n", strings.Join(trade.Teams, ", "))

	picks := make([]string, len(trade.DraftPicks))
	for i, p := range trade.DraftPicks {
		picks[i] = fmt.Sprintf("%d Round %d Pick %d: %s → %s", p.Year, p.Round, p.PickNumber, p.GivingTeam, p.ReceivingTeam)
	}
	fmt.Fprintf(&b, "Draft Picks: %s\n", strings.Join(picks, "\n"))

	values := make([]string, 0, len(trade.Valuation))
	for _, team := range participantOrder(trade.Teams, trade.Transfers(), trade.Valuation) {
		v := trade.Valuation[team]
		values = append(values, fmt.Sprintf("%s: Gave %d, Received %d, Net: %d", team, v.Given, v.Received, v.Net()))
	}
	fmt.Fprintf(&b, "Team Values: %s\n", strings.Join(values, "\n"))

	prospects := make([]string, 0)
	if league != nil {
		byYear := league.ProspectsFor(trade.Years())
		years := make([]int, 0, len(byYear))
		for y := range byYear {
			years = append(years, y)
		}
		sort.Ints(years)
		for _, y := range years {
			prospects = append(prospects, fmt.Sprintf("%d: %s", y, strings.Join(byYear[y], ", ")))
		}
	}
	fmt.Fprintf(&b, "Available Prospects: %s\n\n", strings.Join(prospects, "\n"))

	b.WriteString("Please answer the following question about this trade, focusing only on the information provided above:\n")
	b.WriteString(question)
	b.WriteString("\n\nKeep your response concise and focused on the trade details provided.")
	return b.String()
}

// participantOrder lists the valued teams with the named participants
// first, then any team that only appears on a pick, in first-seen order.
func participantOrder(teams []string, picks []valuation.Transfer, result valuation.Result) []string {
	seen := make(map[string]bool, len(result))
	order := make([]string, 0, len(result))
	add := func(name string) {
		if _, ok := result[name]; ok && !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}
	for _, t := range teams {
		add(t)
	}
	for _, p := range picks {
		add(p.GivingTeam)
		add(p.ReceivingTeam)
	}
	return order
}
