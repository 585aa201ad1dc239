package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/abdouni493/auto-rental-application/internal/config"
)

// Language selects the prompt scaffold for the analysis answer.
type Language string

const (
	LanguageFrench Language = "fr"
	LanguageArabic Language = "ar"
)

// unavailableAnswer is shown instead of an error page when the upstream
// model cannot be reached; analysis is advisory and must never block the
// back-office.
const unavailableAnswer = "L'analyse est momentanément indisponible. Veuillez réessayer."

// AnalyzeRequest asks for a business reading over a slice of back-office
// data: a category naming what the numbers are, the data itself, and the
// operator's question.
type AnalyzeRequest struct {
	Category string         `json:"category"`
	Data     map[string]any `json:"data"`
	Question string         `json:"question"`
	Language Language       `json:"language"`
}

// Service produces natural-language insights over back-office data.
type Service interface {
	Analyze(ctx context.Context, req AnalyzeRequest) (string, error)
}

var ErrInvalidQuestion = errors.New("invalid_insights_question")

type Params struct {
	fx.In

	Cfg config.Config
	Log *zap.Logger
}

type client struct {
	cfg  config.InsightsConfig
	log  *zap.Logger
	http *http.Client
}

func NewService(p Params) Service {
	return &client{
		cfg: p.Cfg.Insights,
		log: p.Log.Named("insights.client"),
		http: &http.Client{
			Timeout: p.Cfg.Insights.Timeout,
		},
	}
}

// The request and response types mirror the upstream REST shape.
type contentPart struct {
	Text string `json:"text"`
}

type content struct {
	Parts []contentPart `json:"parts"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *client) Analyze(ctx context.Context, req AnalyzeRequest) (string, error) {
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		return "", ErrInvalidQuestion
	}

	prompt, err := buildPrompt(req)
	if err != nil {
		return "", err
	}

	answer, err := c.generate(ctx, prompt)
	if err != nil {
		c.log.Warn("insights request failed", zap.Error(err))
		return unavailableAnswer, nil
	}
	return answer, nil
}

func (c *client) generate(ctx context.Context, prompt string) (string, error) {
	body := generateRequest{
		Contents:         []content{{Parts: []contentPart{{Text: prompt}}}},
		GenerationConfig: generationConfig{Temperature: c.cfg.Temperature},
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s:generateContent", strings.TrimRight(c.cfg.Endpoint, "/"), c.cfg.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("x-goog-api-key", c.cfg.APIKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("insights upstream status %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("insights upstream returned no candidates")
	}
	return strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text), nil
}

// buildPrompt frames the question with the data context and the answer
// language. Operators work in French by default; Arabic is offered for
// customer-facing summaries.
func buildPrompt(req AnalyzeRequest) (string, error) {
	data, err := json.Marshal(req.Data)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if req.Language == LanguageArabic {
		b.WriteString("أنت مساعد تحليلي لوكالة كراء السيارات. أجب بالعربية وبإيجاز.\n")
	} else {
		b.WriteString("Tu es l'assistant analytique d'une agence de location de voitures. Réponds en français, de façon concise et chiffrée.\n")
	}
	b.WriteString("Catégorie: ")
	b.WriteString(req.Category)
	b.WriteString("\nDonnées: ")
	b.Write(data)
	b.WriteString("\nQuestion: ")
	b.WriteString(req.Question)
	return b.String(), nil
}
