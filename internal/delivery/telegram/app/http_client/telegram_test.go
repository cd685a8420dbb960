package http_client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"catalog-lookup-bot/internal/delivery/telegram"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) *TelegramClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewTelegramClient(srv.URL + "/botTOKEN/")
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestCall_DecodesResult(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body["text"])

		writeJSON(w, map[string]interface{}{"ok": true, "result": map[string]interface{}{"message_id": 42}})
	})

	var msg telegram.Message
	err := client.Call(context.Background(), "sendMessage", map[string]interface{}{"chat_id": 1, "text": "hello"}, &msg)
	require.NoError(t, err)
	assert.Equal(t, int64(42), msg.MessageID)
}

func TestCall_APIError(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, map[string]interface{}{
			"ok":          false,
			"error_code":  400,
			"description": "Bad Request: message is not modified: specified new message content is the same",
		})
	})

	err := client.Call(context.Background(), "editMessageText", struct{}{}, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 400, apiErr.Code)
	assert.Equal(t, "editMessageText", apiErr.Method)
	assert.True(t, apiErr.IsNotModified())
}

func TestCall_RetriesAfterRateLimit(t *testing.T) {
	var calls atomic.Int32
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			writeJSON(w, map[string]interface{}{
				"ok":          false,
				"error_code":  429,
				"description": "Too Many Requests: retry after 1",
				"parameters":  map[string]interface{}{"retry_after": 1},
			})
			return
		}
		writeJSON(w, map[string]interface{}{"ok": true, "result": true})
	})

	started := time.Now()
	err := client.Call(context.Background(), "sendChatAction", struct{}{}, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.GreaterOrEqual(t, time.Since(started), time.Second)
}

func TestCall_RateLimitWaitBoundedByContext(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{
			"ok":         false,
			"error_code": 429,
			"parameters": map[string]interface{}{"retry_after": 30},
		})
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	started := time.Now()
	err := client.Call(ctx, "sendMessage", struct{}{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(started), 5*time.Second)
}

func TestUpload_SendsMultipart(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "7", r.FormValue("chat_id"))
		assert.Equal(t, "<b>Title</b>", r.FormValue("caption"))

		file, header, err := r.FormFile("photo")
		require.NoError(t, err)
		defer file.Close()
		data, err := io.ReadAll(file)
		require.NoError(t, err)

		assert.Equal(t, "poster.jpg", header.Filename)
		assert.Equal(t, []byte{0xff, 0xd8, 0xff}, data)

		writeJSON(w, map[string]interface{}{"ok": true, "result": map[string]interface{}{"message_id": 9}})
	})

	var msg telegram.Message
	err := client.Upload(context.Background(), "sendPhoto",
		map[string]string{"chat_id": "7", "caption": "<b>Title</b>"},
		InputFile{Field: "photo", Name: "poster.jpg", Data: []byte{0xff, 0xd8, 0xff}},
		&msg)
	require.NoError(t, err)
	assert.Equal(t, int64(9), msg.MessageID)
}

func TestCall_MalformedResponse(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	err := client.Call(context.Background(), "getMe", struct{}{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
}

func TestPollingClient_GetUpdates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/getUpdates", r.URL.Path)

		var body struct {
			Offset  int64    `json:"offset"`
			Timeout int      `json:"timeout"`
			Allowed []string `json:"allowed_updates"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(11), body.Offset)
		assert.Equal(t, 0, body.Timeout)
		assert.Equal(t, AllowedUpdates, body.Allowed)

		writeJSON(w, map[string]interface{}{"ok": true, "result": []map[string]interface{}{
			{"update_id": 11, "message": map[string]interface{}{
				"message_id": 1, "chat": map[string]interface{}{"id": 5, "type": "private"}, "text": "/ping",
			}},
			{"update_id": 12, "callback_query": map[string]interface{}{
				"id": "cb", "from": map[string]interface{}{"id": 3, "first_name": "A"}, "data": "pg:next",
			}},
		}})
	}))
	defer srv.Close()

	client := NewPollingClient(srv.URL+"/botTOKEN/", 0)
	updates, err := client.GetUpdates(context.Background(), 11, 0)
	require.NoError(t, err)
	require.Len(t, updates, 2)

	assert.Equal(t, "/ping", updates[0].Message.Text)
	assert.Equal(t, int64(5), updates[0].Message.Chat.ID)
	assert.Equal(t, "pg:next", updates[1].CallbackQuery.Data)
	assert.Equal(t, int64(3), updates[1].CallbackQuery.From.ID)
}
