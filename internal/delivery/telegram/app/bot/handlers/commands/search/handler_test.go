package search

import (
	"context"
	"errors"
	"testing"

	"catalog-lookup-bot/internal/core/domain/lookup"
	"catalog-lookup-bot/internal/core/domain/presentation"
	core "catalog-lookup-bot/internal/core/domain/search"
	"catalog-lookup-bot/internal/delivery/telegram/app/bot/handlers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	inv core.Invocation
	r   lookup.Responder
	err error
}

func (f *fakeService) HandleInvocation(_ context.Context, inv core.Invocation, r lookup.Responder) error {
	f.inv, f.r = inv, r
	return f.err
}

type chatResponder struct{ chatID int64 }

func (c *chatResponder) Acknowledge(context.Context) error { return nil }

func (c *chatResponder) FollowUp(context.Context, presentation.Message) (presentation.MessageRef, error) {
	return presentation.MessageRef{}, nil
}

func responders(chatID int64) lookup.Responder {
	return &chatResponder{chatID: chatID}
}

func TestSearchHandler_Execute(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(core.CommandSearch, svc, responders)

	assert.Equal(t, "search", h.GetCommand())
	assert.Equal(t, handlers.TypeCommand, h.GetType())

	res, err := h.Execute(context.Background(), handlers.HandlerParams{
		ChatID: 100,
		UserID: 42,
		Text:   "/search product by-name alien",
	})
	require.NoError(t, err)
	assert.Empty(t, res.Message)

	assert.Equal(t, "search", svc.inv.Command)
	assert.Equal(t, "42", svc.inv.UserID)
	assert.NotEmpty(t, svc.inv.Token)
	assert.Equal(t, []core.Option{core.StringOption("name", "alien")}, svc.inv.Options)
	assert.Equal(t, int64(100), svc.r.(*chatResponder).chatID)
}

func TestSearchHandler_TokensAreUnique(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(core.CommandLookup, svc, responders)

	_, err := h.Execute(context.Background(), handlers.HandlerParams{Text: "/lookup 1"})
	require.NoError(t, err)
	first := svc.inv.Token

	_, err = h.Execute(context.Background(), handlers.HandlerParams{Text: "/lookup 1"})
	require.NoError(t, err)
	assert.NotEqual(t, first, svc.inv.Token)
	assert.Equal(t, "lookup", svc.inv.Command)
}

func TestSearchHandler_DeliveryError(t *testing.T) {
	svc := &fakeService{err: errors.New("send failed")}
	h := NewHandler(core.CommandSearch, svc, responders)

	_, err := h.Execute(context.Background(), handlers.HandlerParams{Text: "/search store_id=1"})
	assert.EqualError(t, err, "send failed")
}
