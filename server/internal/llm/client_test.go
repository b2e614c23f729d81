package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tiger-talk/server/internal/config"
)

func newTestClient(url string) *GroqClient {
	return NewGroqClient(config.GroqConfig{
		APIURL: url,
		APIKey: "dummy",
		Model:  "llama-test",
	})
}

// TestGroqClientComplete 验证 OpenAI 风格响应的正常解析。
func TestGroqClientComplete(t *testing.T) {
	respBody := `{"choices":[{"message":{"content":"어서오세요!"}}]}`

	var gotReq map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer dummy" {
			t.Errorf("unexpected auth header: %q", auth)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(respBody))
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := client.Complete(ctx, []Message{{Role: "user", Content: "안녕"}}, Options{Temperature: 0.7, TopP: 0.85, MaxTokens: 120})
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if res != "어서오세요!" {
		t.Fatalf("unexpected response: %s", res)
	}
	if gotReq["top_p"] != 0.85 {
		t.Fatalf("expected top_p forwarded, got %v", gotReq["top_p"])
	}
}

// TestGroqClientCompleteOmitsZeroTopP 验证 TopP 为 0 时请求体不携带 top_p（翻译路径）。
func TestGroqClientCompleteOmitsZeroTopP(t *testing.T) {
	var gotReq map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	if _, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "x"}}, Options{Temperature: 0.2, MaxTokens: 150}); err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if _, ok := gotReq["top_p"]; ok {
		t.Fatalf("expected no top_p in request body, got %v", gotReq["top_p"])
	}
}

// TestGroqClientEmptyChoicesIsNotAnError 验证没有 choices 的响应返回空串而非错误。
// 场景：上游偶发返回空补全，应由上层出占位文案。
func TestGroqClientEmptyChoicesIsNotAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	res, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "x"}}, generateOptions)
	if err != nil {
		t.Fatalf("expected no error for empty choices, got %v", err)
	}
	if res != "" {
		t.Fatalf("expected empty result, got %q", res)
	}
}

// TestGroqClientStatusErrorWrapsUnavailable 验证非 200 响应包装 ErrUnavailable。
func TestGroqClientStatusErrorWrapsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid api key"}`))
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "x"}}, generateOptions)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

// TestGroqClientMalformedJSONWrapsUnavailable 验证不可解析的响应包装 ErrUnavailable。
func TestGroqClientMalformedJSONWrapsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "x"}}, generateOptions)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

// TestGroqClientTransportErrorWrapsUnavailable 验证连接失败包装 ErrUnavailable。
func TestGroqClientTransportErrorWrapsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // 立即关闭，制造连接拒绝

	client := newTestClient(ts.URL)
	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "x"}}, generateOptions)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
