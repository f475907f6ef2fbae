package twitch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/edgard/phrasebot/internal/chat"
)

// fakeServer is a minimal Twitch IRC-over-WebSocket endpoint. It records
// every line the client sends and runs script once the client has joined.
type fakeServer struct {
	*httptest.Server
	received chan string
}

func newFakeServer(t *testing.T, script func(conn *websocket.Conn)) *fakeServer {
	t.Helper()

	fs := &fakeServer{received: make(chan string, 64)}
	upgrader := websocket.Upgrader{}

	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		joined := false
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			for _, line := range splitLines(string(data)) {
				fs.received <- line
				if strings.HasPrefix(line, "JOIN ") && !joined {
					joined = true
					go script(conn)
				}
			}
		}
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) url() string {
	return "ws" + strings.TrimPrefix(fs.URL, "http")
}

func (fs *fakeServer) expect(t *testing.T, want string) {
	t.Helper()

	timeout := time.After(5 * time.Second)
	for {
		select {
		case got := <-fs.received:
			if got == want {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for client to send %q", want)
		}
	}
}

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()

	c, err := NewClient(Config{
		ServerURL:  serverURL,
		Username:   "PhraseBot",
		OAuthToken: "secret",
		Channel:    "#Streamer",
		RateLimit:  20,
		RatePeriod: 30 * time.Second,
	}, nil)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c
}

func TestNewClientValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{Username: "bot"}, nil); err == nil {
		t.Error("NewClient() with missing fields error = nil, want error")
	}
	if _, err := NewClient(Config{ServerURL: "ws://x", Username: "bot", OAuthToken: "t", Channel: "c"}, nil); err == nil {
		t.Error("NewClient() with zero rate limit error = nil, want error")
	}
}

func TestClientRegistersAndReplies(t *testing.T) {
	t.Parallel()

	srv := newFakeServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(
			":tmi.twitch.tv 001 phrasebot :Welcome, GLHF!\r\n"+
				"PING :tmi.twitch.tv\r\n"))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(
			"@display-name=Alice :alice!alice@alice.tmi.twitch.tv PRIVMSG #streamer :hello there\r\n"))
	})

	client := newTestClient(t, srv.url())
	if got := client.Username(); got != "phrasebot" {
		t.Errorf("Username() = %q, want %q", got, "phrasebot")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan chat.Message, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- client.Run(ctx, func(ctx context.Context, msg chat.Message) {
			got <- msg
			if err := msg.Channel.Send(ctx, "hi\nback"); err != nil {
				t.Errorf("Send() error = %v", err)
			}
		})
	}()

	srv.expect(t, "CAP REQ :twitch.tv/tags twitch.tv/commands")
	srv.expect(t, "PASS oauth:secret")
	srv.expect(t, "NICK phrasebot")
	srv.expect(t, "JOIN #streamer")
	srv.expect(t, "PONG :tmi.twitch.tv")

	select {
	case msg := <-got:
		if msg.Author != "alice" || msg.Content != "hello there" || msg.Echo {
			t.Errorf("handler got %+v", msg)
		}
		if msg.Channel.Name() != "#streamer" {
			t.Errorf("Channel.Name() = %q, want %q", msg.Channel.Name(), "#streamer")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}

	srv.expect(t, "PRIVMSG #streamer :hi back")

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Run() error = %v, want nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestClientEchoDetection(t *testing.T) {
	t.Parallel()

	srv := newFakeServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(
			":phrasebot!phrasebot@phrasebot.tmi.twitch.tv PRIVMSG #streamer :\x01ACTION waves\x01\r\n"))
	})

	client := newTestClient(t, srv.url())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan chat.Message, 1)
	go func() {
		_ = client.Run(ctx, func(_ context.Context, msg chat.Message) { got <- msg })
	}()

	select {
	case msg := <-got:
		if !msg.Echo || msg.Content != "waves" {
			t.Errorf("handler got %+v, want echo with unwrapped action", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestClientAuthFailure(t *testing.T) {
	t.Parallel()

	srv := newFakeServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(
			":tmi.twitch.tv NOTICE * :Login authentication failed\r\n"))
	})

	client := newTestClient(t, srv.url())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := client.Run(ctx, func(context.Context, chat.Message) {})
	if !errors.Is(err, ErrAuthFailed) {
		t.Errorf("Run() error = %v, want ErrAuthFailed", err)
	}
}

func TestSayWithoutConnection(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "ws://127.0.0.1:1")
	if err := client.Say(context.Background(), "#streamer", "hello"); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Say() error = %v, want ErrNotConnected", err)
	}
	if err := client.Say(context.Background(), "#streamer", "  "); err == nil {
		t.Error("Say() with blank text error = nil, want error")
	}
}

func TestClientSkipsPrivmsgWithoutText(t *testing.T) {
	t.Parallel()

	srv := newFakeServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(
			":alice!alice@alice.tmi.twitch.tv PRIVMSG #streamer\r\n"+
				":alice!alice@alice.tmi.twitch.tv PRIVMSG #streamer :real text\r\n"))
	})

	client := newTestClient(t, srv.url())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan chat.Message, 2)
	go func() {
		_ = client.Run(ctx, func(_ context.Context, msg chat.Message) { got <- msg })
	}()

	select {
	case msg := <-got:
		if msg.Content != "real text" {
			t.Errorf("first delivered message content = %q, want %q", msg.Content, "real text")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}
