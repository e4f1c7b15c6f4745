package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"bazarbot/internal/ingest"
	"bazarbot/pkg/models"
)

const (
	replySavedText      = "✅ Товар успешно добавлен!"
	replySavedPhoto     = "✅ Товар с фото успешно добавлен!"
	replyNotRecognized  = "❌ Не удалось распознать информацию о товаре"
	replySaveFailed     = "❌ Ошибка при сохранении товара"
	replyGenericFailure = "❌ Произошла ошибка при обработке сообщения"
)

// Bot polls the chat platform and starts one ingestion flow per inbound
// message. Flows run concurrently; two quick messages from the same user may
// finish out of order.
type Bot struct {
	api      *tgbotapi.BotAPI
	pipeline *ingest.Pipeline
}

func New(token string, pipeline *ingest.Pipeline) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &Bot{api: api, pipeline: pipeline}, nil
}

// Run blocks reading the update stream until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	log.Printf("[bot] started as @%s, listening for messages", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			if msg, ok := toIngestMessage(b.api, update.Message); ok {
				go b.handle(ctx, update.Message.Chat.ID, msg)
			}
		}
	}
}

// toIngestMessage maps a platform update to a pipeline message. Commands and
// empty messages are skipped; for photos the largest size is resolved to a
// fetchable URL here, so the pipeline never sees platform file handles.
func toIngestMessage(api *tgbotapi.BotAPI, m *tgbotapi.Message) (ingest.Message, bool) {
	if len(m.Photo) > 0 {
		photo := m.Photo[len(m.Photo)-1]
		url, err := api.GetFileDirectURL(photo.FileID)
		if err != nil {
			log.Printf("[bot] resolve photo url: %v", err)
			return ingest.Message{}, false
		}
		return ingest.WithImage(m.Caption, url), true
	}

	text := strings.TrimSpace(m.Text)
	if text == "" || strings.HasPrefix(text, "/") {
		return ingest.Message{}, false
	}
	return ingest.TextOnly(text), true
}

func (b *Bot) handle(ctx context.Context, chatID int64, msg ingest.Message) {
	_, _ = b.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))

	outcome := b.pipeline.Process(ctx, msg)
	b.reply(chatID, formatOutcome(outcome))
}

// formatOutcome renders exactly one user-facing reply per flow.
func formatOutcome(o ingest.Outcome) string {
	if o.Succeeded() {
		return productCard(*o.Listing)
	}

	switch o.Reason {
	case ingest.ReasonExtractionFailed, ingest.ReasonInvalidExtraction:
		return replyNotRecognized
	case ingest.ReasonPersistenceFailed:
		return replySaveFailed
	default:
		return replyGenericFailure
	}
}

func productCard(l models.Listing) string {
	header := replySavedText
	if l.Image != nil {
		header = replySavedPhoto
	}
	return fmt.Sprintf("%s\n\n📦 %s\n🏷️ Категория: %s\n💰 Цена: %s сом\n📝 %s",
		header, l.Title, l.Category, formatPrice(l.Price), l.Description)
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("[bot] send reply: %v", err)
	}
}
