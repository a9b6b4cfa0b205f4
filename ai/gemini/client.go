package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/Allan0411/Notes-API/errors"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a thin REST client for the Gemini generateContent API.
type Client struct {
	baseURL    string
	apiKey     string
	textModel  string
	imageModel string

	client HTTPClient
}

func NewClient(c HTTPClient, apiKey, textModel, imageModel string) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		textModel:  textModel,
		imageModel: imageModel,

		client: c,
	}
}

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

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	res, err := c.generate(ctx, c.textModel, []part{{Text: prompt}})
	if err != nil {
		return "", err
	}

	for _, p := range res.Parts {
		if p.Text != "" {
			return p.Text, nil
		}
	}
	return "", errors.New("model returned no text")
}

func (c *Client) GenerateImage(ctx context.Context, prompt, imageB64, mimeType string) (string, error) {
	parts := []part{
		{Text: prompt},
		{InlineData: &inlineData{MimeType: mimeType, Data: imageB64}},
	}
	res, err := c.generate(ctx, c.imageModel, parts)
	if err != nil {
		return "", err
	}

	for _, p := range res.Parts {
		if p.InlineData != nil {
			return p.InlineData.Data, nil
		}
	}
	return "", errors.New("model returned no image")
}

func (c *Client) generate(ctx context.Context, model string, parts []part) (content, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: parts}},
	})
	if err != nil {
		return content{}, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)
	req, err := http.NewRequest("POST", url, bytes.NewReader(body))
	if err != nil {
		return content{}, err
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return content{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		data, _ := ioutil.ReadAll(res.Body)
		return content{}, errors.New(fmt.Sprintf("model call failed (%d): %s", res.StatusCode, data))
	}

	var decoded generateResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return content{}, err
	}
	if decoded.Error != nil {
		return content{}, errors.New(decoded.Error.Message)
	}
	if len(decoded.Candidates) == 0 {
		return content{}, errors.New("model returned no candidates")
	}

	return decoded.Candidates[0].Content, nil
}
