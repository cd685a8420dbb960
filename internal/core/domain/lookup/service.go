// internal/core/domain/lookup/service.go
package lookup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-lookup-bot/internal/core/domain/pagination"
	"catalog-lookup-bot/internal/core/domain/presentation"
	"catalog-lookup-bot/internal/core/domain/search"
	"catalog-lookup-bot/pkg/logger"
)

// MessageStoreUnavailable ответ пользователю, когда каталог не читается
const MessageStoreUnavailable = "Something went wrong while searching the catalog, please try again later"

// Responder канал ответа на один вызов команды
type Responder interface {
	// Acknowledge подтверждает, что ответ придет позже
	Acknowledge(ctx context.Context) error
	pagination.Sender
}

// Dependencies зависимости сервиса
type Dependencies struct {
	Resolver  *search.Resolver
	Formatter *presentation.Formatter
	Pager     *pagination.Controller
}

// Service обрабатывает поисковые команды: классификация, поиск,
// форматирование и выдача (одной карточкой или с пагинацией)
type Service struct {
	resolver  *search.Resolver
	formatter *presentation.Formatter
	pager     *pagination.Controller
}

func NewService(deps Dependencies) (*Service, error) {
	if deps.Resolver == nil {
		return nil, fmt.Errorf("Resolver не может быть nil")
	}
	if deps.Formatter == nil {
		return nil, fmt.Errorf("Formatter не может быть nil")
	}
	if deps.Pager == nil {
		return nil, fmt.Errorf("Pager не может быть nil")
	}

	return &Service{
		resolver:  deps.Resolver,
		formatter: deps.Formatter,
		pager:     deps.Pager,
	}, nil
}

// HandleInvocation обрабатывает вызов. Ошибки поиска превращаются в текст
// ответа; возвращаются только ошибки доставки.
func (s *Service) HandleInvocation(ctx context.Context, inv search.Invocation, r Responder) error {
	started := time.Now()

	if err := r.Acknowledge(ctx); err != nil {
		logger.Warn("⚠️ Не удалось подтвердить вызов %s: %v", inv.Token, err)
	}

	intent := search.Classify(inv)
	if intent.Kind == search.IntentMalformed {
		logger.Warn("⚠️ Нераспознанный вызов %s/%s/%s от %s", inv.Command, inv.Group, inv.Subcommand, inv.UserID)
		return s.reply(ctx, r, intent.Diagnostic)
	}

	result, err := s.resolver.Resolve(ctx, intent)
	if err != nil {
		logger.Lookup(intent.String(), 0, time.Since(started))
		return s.replyError(ctx, r, intent, err)
	}

	units := s.formatter.FormatResult(result)
	logger.Lookup(intent.String(), len(units), time.Since(started))

	if len(units) == 1 {
		if _, err := r.FollowUp(ctx, presentation.Message{Unit: &units[0]}); err != nil {
			return fmt.Errorf("send result for %s: %w", intent, err)
		}
		return nil
	}

	if _, err := s.pager.Start(ctx, r, inv.UserID, units); err != nil {
		return fmt.Errorf("start pagination for %s: %w", intent, err)
	}
	return nil
}

func (s *Service) replyError(ctx context.Context, r Responder, intent search.QueryIntent, err error) error {
	var (
		notFound  *search.NotFoundError
		tooMany   *search.TooManyResultsError
		malformed *search.MalformedInvocationError
	)

	switch {
	case errors.As(err, &notFound), errors.As(err, &tooMany), errors.As(err, &malformed):
		return s.reply(ctx, r, err.Error())
	case errors.Is(err, search.ErrStoreUnavailable):
		logger.Error("❌ Каталог недоступен при запросе %s: %v", intent, err)
		return s.reply(ctx, r, MessageStoreUnavailable)
	}

	logger.Error("❌ Неожиданная ошибка поиска %s: %v", intent, err)
	return s.reply(ctx, r, MessageStoreUnavailable)
}

func (s *Service) reply(ctx context.Context, r Responder, text string) error {
	if _, err := r.FollowUp(ctx, presentation.Text(text)); err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	return nil
}
