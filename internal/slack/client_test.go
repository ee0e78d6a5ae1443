package slack

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPost_Success(t *testing.T) {
	var got map[string]any
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &got)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	msg := Message{}
	msg.Add(Header("Hello"), Divider(), Section(Field("Email", "a@b.com")))

	if err := NewClient(time.Second).Post(context.Background(), srv.URL, msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contentType != "application/json" {
		t.Errorf("content type = %q", contentType)
	}
	blocks, ok := got["blocks"].([]any)
	if !ok || len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %v", got["blocks"])
	}
	header := blocks[0].(map[string]any)
	if header["type"] != "header" {
		t.Errorf("first block type = %v", header["type"])
	}
	text := header["text"].(map[string]any)
	if text["type"] != "plain_text" || text["text"] != "Hello" || text["emoji"] != true {
		t.Errorf("header text = %v", text)
	}
	field := blocks[2].(map[string]any)["fields"].([]any)[0].(map[string]any)
	if field["text"] != "*Email:*\na@b.com" {
		t.Errorf("field text = %q", field["text"])
	}
}

func TestPost_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("invalid_blocks"))
	}))
	defer srv.Close()

	err := NewClient(time.Second).Post(context.Background(), srv.URL, Message{})
	var de *DeliveryError
	if !errors.As(err, &de) {
		t.Fatalf("expected DeliveryError, got %v", err)
	}
	if de.StatusCode != http.StatusBadRequest || de.Body != "invalid_blocks" {
		t.Errorf("got %+v", de)
	}
}

func TestPost_NotConfigured(t *testing.T) {
	err := NewClientWithHTTP(nil).Post(context.Background(), "", Message{})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestPost_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewClient(time.Second).Post(context.Background(), url, Message{})
	if err == nil {
		t.Fatal("expected error for closed server")
	}
	var de *DeliveryError
	if errors.As(err, &de) {
		t.Errorf("transport failure should not be a DeliveryError: %v", err)
	}
}

func TestMessage_EmptyBlocksOmitted(t *testing.T) {
	b, err := json.Marshal(Context("Order ID: 1"))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"type":"context","elements":[{"type":"mrkdwn","text":"Order ID: 1"}]}`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}
}
