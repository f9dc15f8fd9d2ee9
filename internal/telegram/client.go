// Package telegram provides a client for sending a run summary via the
// Telegram Bot API after a report has been written. Messages use MarkdownV2
// formatting; sends are retried a bounded number of times since losing a
// courtesy notification is preferable to failing a run whose report already
// exists on disk.
package telegram

import (
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/shelterpulse/shelterpulse/internal/models"
)

// Client handles Telegram notifications
type Client struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// RunSummary carries the facts worth reporting about a completed run.
type RunSummary struct {
	RunID      string
	Records    int
	Months     int
	OutputFile string
	Latest     *models.MonthlyBucket
	FinishedAt time.Time
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}, nil
}

// SendSummary sends the run summary message, retrying with linear backoff.
func (c *Client) SendSummary(summary RunSummary) error {
	msg := tgbotapi.NewMessage(c.chatID, formatSummary(summary))
	msg.ParseMode = "MarkdownV2"

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		_, err := c.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		time.Sleep(c.retryDelayBase * time.Duration(i+1))
	}

	return fmt.Errorf("failed to send message after %d retries: %w", c.maxRetries, lastErr)
}

// formatSummary formats a run summary into a Telegram MarkdownV2 message
func formatSummary(s RunSummary) string {
	message := "*Shelter outcome report generated*\n\n"
	message += fmt.Sprintf("File: %s\n", escapeMarkdownV2(s.OutputFile))
	message += fmt.Sprintf("Records: %d, months: %d\n", s.Records, s.Months)

	if s.Latest != nil {
		message += fmt.Sprintf("Latest month %s: total %d",
			escapeMarkdownV2(s.Latest.MonthLabel), s.Latest.Total)
		if s.Latest.EuthRate != nil {
			message += fmt.Sprintf(", raw rate %s",
				escapeMarkdownV2(fmt.Sprintf("%.2f%%", *s.Latest.EuthRate)))
		}
		if s.Latest.AdjEuthRate != nil {
			message += fmt.Sprintf(", adjusted rate %s",
				escapeMarkdownV2(fmt.Sprintf("%.2f%%", *s.Latest.AdjEuthRate)))
		}
		message += "\n"
	}

	message += fmt.Sprintf("\nFinished: %s\n", escapeMarkdownV2(s.FinishedAt.Format("2006-01-02 15:04:05")))
	if s.RunID != "" {
		message += fmt.Sprintf("Run: %s\n", escapeMarkdownV2(s.RunID))
	}
	return message
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2
func escapeMarkdownV2(text string) string {
	result := ""
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			result += "\\" + string(char)
		default:
			result += string(char)
		}
	}
	return result
}
