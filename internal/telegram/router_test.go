package telegram

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Kerhoff/NutriboT/pkg/logger"
)

type recordingAPI struct {
	mu   sync.Mutex
	sent []string
}

func (a *recordingAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/sendMessage") && r.ParseForm() == nil {
		a.mu.Lock()
		a.sent = append(a.sent, r.PostForm.Get("text"))
		a.mu.Unlock()
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"NutriboT","username":"nutribot_test","message_id":1,"date":0,"chat":{"id":1,"type":"private"}}}`))
}

func (a *recordingAPI) messages() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.sent...)
}

type stubHandler struct {
	args []string
	err  error
}

func (h *stubHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	h.args = args
	return h.err
}

func newTestBot(t *testing.T) (*Bot, *recordingAPI) {
	t.Helper()

	rec := &recordingAPI{}
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)

	api, err := tgbotapi.NewBotAPIWithAPIEndpoint("test-token", srv.URL+"/bot%s/%s")
	if err != nil {
		t.Fatalf("failed to create bot API: %v", err)
	}
	return NewBotWithAPI(api, logger.Discard()), rec
}

func command(text string) *tgbotapi.Message {
	name := strings.Fields(text)[0]
	return &tgbotapi.Message{
		MessageID: 1,
		Text:      text,
		Chat:      &tgbotapi.Chat{ID: 42},
		From:      &tgbotapi.User{ID: 7},
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(name)}},
	}
}

type observed struct {
	command string
	err     error
}

func TestRouterDispatchesCommands(t *testing.T) {
	t.Parallel()

	bot, api := newTestBot(t)
	ok := &stubHandler{}
	failing := &stubHandler{err: errors.New("storage down")}
	bot.RegisterCommand("under", ok)
	bot.RegisterCommand("food", failing)

	var seen []observed
	bot.OnCommand(func(cmd string, err error) {
		seen = append(seen, observed{cmd, err})
	})

	bot.handleUpdate(tgbotapi.Update{Message: command("/under proteins 20")})
	if strings.Join(ok.args, " ") != "proteins 20" {
		t.Fatalf("handler args = %v", ok.args)
	}

	bot.handleUpdate(tgbotapi.Update{Message: command("/food 1")})
	bot.handleUpdate(tgbotapi.Update{Message: command("/nope")})
	bot.handleUpdate(tgbotapi.Update{Message: &tgbotapi.Message{Text: "hello", Chat: &tgbotapi.Chat{ID: 42}}})

	if len(seen) != 2 || seen[0].command != "under" || seen[0].err != nil || seen[1].command != "food" || seen[1].err == nil {
		t.Fatalf("observer saw %+v", seen)
	}

	msgs := api.messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 replies, got %q", msgs)
	}
	if !strings.Contains(msgs[0], "An error occurred") {
		t.Fatalf("expected error reply, got %q", msgs[0])
	}
	if !strings.Contains(msgs[1], "Unknown command") {
		t.Fatalf("expected unknown command reply, got %q", msgs[1])
	}
}

func TestHandleUpdateRecoversFromPanic(t *testing.T) {
	t.Parallel()

	bot, _ := newTestBot(t)
	bot.RegisterCommand("boom", panicHandler{})

	bot.handleUpdate(tgbotapi.Update{Message: command("/boom")})
}

type panicHandler struct{}

func (panicHandler) Handle(*tgbotapi.BotAPI, *tgbotapi.Message, []string) error {
	panic("handler exploded")
}
