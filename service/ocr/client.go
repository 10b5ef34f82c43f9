package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	visionModel    = "gpt-4o"
	requestTimeout = 90 * time.Second
)

// SupportedLanguages are the language codes accepted for source and target.
var SupportedLanguages = []string{"ko", "vi", "en", "ne"}

var languageNames = map[string]string{
	"ko": "Korean",
	"vi": "Vietnamese",
	"en": "English",
	"ne": "Nepali",
}

type KeyInfo struct {
	Company    string   `json:"company,omitempty"`
	Date       string   `json:"date,omitempty"`
	Amount     string   `json:"amount,omitempty"`
	Period     string   `json:"period,omitempty"`
	Conditions []string `json:"conditions,omitempty"`
}

type Result struct {
	DocumentType   string  `json:"document_type"`
	OriginalText   string  `json:"original_text"`
	TranslatedText string  `json:"translated_text"`
	Summary        string  `json:"summary"`
	KeyInfo        KeyInfo `json:"key_info"`
	Confidence     float64 `json:"confidence"`
	SourceLang     string  `json:"source_lang"`
	TargetLang     string  `json:"target_lang"`
}

// Client analyzes document images with a vision model. It is constructed
// explicitly and injected into handlers; in mock mode (or on any upstream
// failure) it returns a canned result instead of surfacing an error, trading
// correctness for availability in this auxiliary feature.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	mock       bool
}

// NewClient builds a vision client. An empty API key forces mock mode.
func NewClient(apiKey string, useMock bool) *Client {
	mock := useMock || apiKey == ""
	if mock {
		log.Println("OCR client running in mock mode")
	}
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		mock:       mock,
	}
}

func (c *Client) Mock() bool {
	return c.mock
}

// Analyze extracts, translates and summarizes the text in a document image.
// It never fails: network, status and parse errors all degrade to the mock
// payload.
func (c *Client) Analyze(ctx context.Context, image []byte, sourceLang, targetLang string) *Result {
	if c.mock {
		return mockResult(sourceLang, targetLang)
	}

	raw, err := c.complete(ctx, image, sourceLang, targetLang)
	if err != nil {
		log.Printf("vision request failed, falling back to mock result: %v", err)
		return mockResult(sourceLang, targetLang)
	}

	var result Result
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &result); err != nil {
		log.Printf("unparseable vision response, returning raw text: %v", err)
		return &Result{
			DocumentType:   "Analysis complete",
			OriginalText:   raw,
			TranslatedText: raw,
			Summary:        "Document analyzed",
			Confidence:     0.90,
			SourceLang:     sourceLang,
			TargetLang:     targetLang,
		}
	}

	result.Confidence = 0.95
	result.SourceLang = sourceLang
	result.TargetLang = targetLang
	return &result
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *contentImage `json:"image_url,omitempty"`
}

type contentImage struct {
	URL    string `json:"url"`
	Detail string `json:"detail"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) complete(ctx context.Context, image []byte, sourceLang, targetLang string) (string, error) {
	payload := chatRequest{
		Model: visionModel,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: buildPrompt(sourceLang, targetLang)},
				{Type: "image_url", ImageURL: &contentImage{
					URL:    "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image),
					Detail: "high",
				}},
			},
		}},
		MaxTokens:   2000,
		Temperature: 0.2,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vision API returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("vision API returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

func buildPrompt(sourceLang, targetLang string) string {
	sourceName := languageNames[sourceLang]
	if sourceName == "" {
		sourceName = languageNames["ko"]
	}
	targetName := languageNames[targetLang]
	if targetName == "" {
		targetName = languageNames["vi"]
	}

	return fmt.Sprintf(`Analyze this document image:

1. Identify the document type (e.g. employment contract, visa application, pay slip).
2. Extract all text in %[1]s.
3. Translate the extracted text into %[2]s.
4. Summarize the key content in %[2]s in 3-5 lines.
5. Extract key details when present: company/organization name, date, amount, period, important conditions.

Respond with exactly this JSON and nothing else:
{
    "document_type": "...",
    "original_text": "%[1]s original",
    "translated_text": "%[2]s translation",
    "summary": "%[2]s summary",
    "key_info": {
        "company": "...",
        "date": "...",
        "amount": "...",
        "period": "...",
        "conditions": ["..."]
    }
}`, sourceName, targetName)
}

// stripCodeFence tolerates models that wrap their JSON in markdown fences.
func stripCodeFence(s string) string {
	if strings.Contains(s, "```json") {
		s = strings.SplitN(s, "```json", 2)[1]
		s = strings.SplitN(s, "```", 2)[0]
		return strings.TrimSpace(s)
	}
	if strings.Contains(s, "```") {
		parts := strings.SplitN(s, "```", 3)
		if len(parts) >= 2 {
			return strings.TrimSpace(parts[1])
		}
	}
	return strings.TrimSpace(s)
}
