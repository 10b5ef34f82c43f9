package ocr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockModeSelection(t *testing.T) {
	assert.True(t, NewClient("", false).Mock(), "empty API key forces mock mode")
	assert.True(t, NewClient("sk-test", true).Mock())
	assert.False(t, NewClient("sk-test", false).Mock())
}

func TestAnalyzeMockMode(t *testing.T) {
	client := NewClient("", false)

	result := client.Analyze(context.Background(), []byte("image"), "ko", "vi")
	require.NotNil(t, result)
	assert.Equal(t, "근로계약서 (테스트)", result.DocumentType)
	assert.Equal(t, "ko", result.SourceLang)
	assert.Equal(t, "vi", result.TargetLang)
	assert.Equal(t, 0.90, result.Confidence)
	assert.NotEmpty(t, result.KeyInfo.Conditions)

	english := client.Analyze(context.Background(), []byte("image"), "ko", "en")
	assert.Equal(t, "Employment Contract (Test)", english.DocumentType)

	// Unknown language pairs fall back to the ko-vi payload but keep the
	// requested codes.
	fallback := client.Analyze(context.Background(), []byte("image"), "vi", "ne")
	assert.Equal(t, "근로계약서 (테스트)", fallback.DocumentType)
	assert.Equal(t, "vi", fallback.SourceLang)
	assert.Equal(t, "ne", fallback.TargetLang)
}

func visionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, visionModel, req.Model)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		})
	}))
}

func TestAnalyzeParsesFencedResponse(t *testing.T) {
	payload := "```json\n" + `{
		"document_type": "Pay Slip",
		"original_text": "임금명세서",
		"translated_text": "Pay slip",
		"summary": "Monthly pay slip",
		"key_info": {"company": "ACME", "amount": "2,500,000 KRW"}
	}` + "\n```"
	server := visionServer(t, payload)
	defer server.Close()

	client := NewClient("sk-test", false)
	client.baseURL = server.URL

	result := client.Analyze(context.Background(), []byte("image"), "ko", "en")
	require.NotNil(t, result)
	assert.Equal(t, "Pay Slip", result.DocumentType)
	assert.Equal(t, "ACME", result.KeyInfo.Company)
	assert.Equal(t, 0.95, result.Confidence)
	assert.Equal(t, "ko", result.SourceLang)
	assert.Equal(t, "en", result.TargetLang)
}

func TestAnalyzeUnparseableResponseKeepsRawText(t *testing.T) {
	server := visionServer(t, "I could not produce JSON, sorry")
	defer server.Close()

	client := NewClient("sk-test", false)
	client.baseURL = server.URL

	result := client.Analyze(context.Background(), []byte("image"), "ko", "en")
	require.NotNil(t, result)
	assert.Equal(t, "Analysis complete", result.DocumentType)
	assert.Equal(t, "I could not produce JSON, sorry", result.OriginalText)
	assert.Equal(t, 0.90, result.Confidence)
}

func TestAnalyzeFallsBackToMockOnUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("sk-test", false)
	client.baseURL = server.URL

	result := client.Analyze(context.Background(), []byte("image"), "ko", "vi")
	require.NotNil(t, result)
	assert.Equal(t, "근로계약서 (테스트)", result.DocumentType)
	assert.Equal(t, 0.90, result.Confidence)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`{"a":1}`))
	assert.Equal(t, `{"a":1}`, stripCodeFence("prose before ```json\n{\"a\":1}\n``` prose after"))
}
