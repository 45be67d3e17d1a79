// internal/oracle/client.go
// HTTP client for the Gemini generateContent API in structured-output mode.
// Every call is stateless and independently retryable; the response is
// constrained to a JSON schema so it decodes straight into our types.

package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"
)

var ErrEmptyResponse = errors.New("oracle returned no candidates")

// Client talks to the Gemini REST API
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an oracle client. The per-request timeout bounds every
// call so a stuck request can never stall a whole generation run.
func NewClient(apiKey, model, baseURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Wire types for the generateContent endpoint

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMIMEType string                 `json:"responseMimeType"`
	ResponseSchema   map[string]interface{} `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	Contents          []content        `json:"contents"`
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

var dataURLPattern = regexp.MustCompile(`^data:(.+);base64,(.+)$`)

// imagePart converts an inline data-URL into a request part.
// Returns nil for anything that isn't a well-formed data-URL.
func imagePart(dataURL string) *part {
	matches := dataURLPattern.FindStringSubmatch(dataURL)
	if len(matches) != 3 {
		return nil
	}
	return &part{InlineData: &inlineData{MimeType: matches[1], Data: matches[2]}}
}

// generate runs one structured-output call and returns the raw JSON text
func (c *Client) generate(ctx context.Context, parts []part, schema map[string]interface{}, systemInstruction string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: parts}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	}
	if systemInstruction != "" {
		reqBody.SystemInstruction = &content{Parts: []part{{Text: systemInstruction}}}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal oracle request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build oracle request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("oracle request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("oracle request failed with status %d: %s", resp.StatusCode, body)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decode oracle response: %w", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}

// ScorePair predicts swipe probabilities in both directions for one pair
func (c *Client) ScorePair(ctx context.Context, req *PairRequest) (*Judgment, error) {
	parts := buildPairParts(req)

	text, err := c.generate(ctx, parts, judgmentSchema, "")
	if err != nil {
		return nil, err
	}

	var judgment Judgment
	if err := json.Unmarshal([]byte(text), &judgment); err != nil {
		return nil, fmt.Errorf("parse judgment: %w", err)
	}

	return &judgment, nil
}

// buildPairParts assembles the prompt and any usable photos for a pair request
func buildPairParts(req *PairRequest) []part {
	parts := []part{{Text: pairPrompt(req)}}

	if req.SourcePhoto != "" {
		if img := imagePart(req.SourcePhoto); img != nil {
			parts = append(parts, part{Text: "Source User Photo:"}, *img)
		}
	}
	if req.TargetPhoto != "" {
		if img := imagePart(req.TargetPhoto); img != nil {
			parts = append(parts, part{Text: "Target User Photo:"}, *img)
		}
	}

	return parts
}

// AnalyzeProfile returns coaching feedback for a single profile
func (c *Client) AnalyzeProfile(ctx context.Context, req *ProfileRequest) (*ProfileAnalysis, error) {
	var parts []part

	if req.IncludePhoto && req.Photo != "" {
		if img := imagePart(req.Photo); img != nil {
			parts = append(parts, *img)
		}
	}
	parts = append(parts, part{Text: analysisPrompt(req)})

	text, err := c.generate(ctx, parts, analysisSchema,
		"You are an expert dating consultant. Your goal is to maximize the user's success rate.")
	if err != nil {
		return nil, err
	}

	var analysis ProfileAnalysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return nil, fmt.Errorf("parse profile analysis: %w", err)
	}

	return &analysis, nil
}

// AnalyzeImage extracts physical attributes from a profile photo data-URL
func (c *Client) AnalyzeImage(ctx context.Context, dataURL string) (*ImageAttributes, error) {
	img := imagePart(dataURL)
	if img == nil {
		return nil, errors.New("invalid base64 image data")
	}

	parts := []part{
		*img,
		{Text: "Analyze this profile picture and extract the physical attributes of the person."},
	}

	text, err := c.generate(ctx, parts, imageSchema, "")
	if err != nil {
		return nil, err
	}

	var attrs ImageAttributes
	if err := json.Unmarshal([]byte(text), &attrs); err != nil {
		return nil, fmt.Errorf("parse image attributes: %w", err)
	}

	return &attrs, nil
}
