package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jobsy/jobmail-analyzer/internal/core"
	"github.com/jobsy/jobmail-analyzer/internal/utils"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient is an implementation of the LLMClient interface using OpenAI
type OpenAIClient struct {
	client       *openai.Client
	modelName    string
	maxTokens    int
	temperature  float32
	topP         float32
	maxBodySize  int
	logger       *zap.Logger
	promptFormat string
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
) *OpenAIClient {
	client := openai.NewClient(apiKey)

	return &OpenAIClient{
		client:       client,
		modelName:    modelName,
		maxTokens:    maxTokens,
		temperature:  temperature,
		topP:         topP,
		maxBodySize:  maxBodySize,
		logger:       logger,
		promptFormat: judgmentPromptFormat,
	}
}

const judgmentPromptFormat = `Bu e-postanın, kullanıcının daha önce yaptığı bir iş, staj veya program başvurusuna ait olup olmadığını belirle.
Eğer başvurduğu şirket/programdan gelen 'başvurunuz alındı', 'başvurun başarılı', 'mülakat daveti', 'teknik test', 'iş teklifi', 'program kabulü', 'ret' gibi bir durum bildirimi varsa true döndür.

KABUL EDİLECEK E-postalar: başvuru yanıtları, program başvuru yanıtları, mülakat davetleri, teknik test davetleri, başvuru sonuçları.
REDDEDİLECEK E-postalar: açık iş fırsatları ve ilanlar, spam ve reklamlar, sosyal medya bildirimleri, kurs reklamları.

E-posta Bilgileri:
Konu: %s
Gönderen: %s
İçerik:
%s

Cevap formatı (JSON):
{
    "is_job_application": true/false,
    "company_name": "Şirket/Program adı",
    "position": "Pozisyon/Program adı",
    "status": "Applied/Interview/Technical Test/Accepted/Rejected",
    "confidence": 0-100
}`

// truncateBody truncates the email body if it exceeds the maximum size
func (c *OpenAIClient) truncateBody(body string) string {
	if c.maxBodySize <= 0 || len(body) <= c.maxBodySize {
		return body
	}

	truncated := body[:c.maxBodySize]
	c.logger.Debug("Email body truncated",
		zap.Int("original_size", len(body)),
		zap.Int("truncated_size", len(truncated)),
		zap.Int("max_size", c.maxBodySize))

	return truncated
}

// JudgeEmail asks the model whether the email belongs to an existing
// job/internship application
func (c *OpenAIClient) JudgeEmail(ctx context.Context, email *core.RawEmail) (*core.LLMJudgment, error) {
	prompt := fmt.Sprintf(c.promptFormat, email.Subject, email.Sender, c.truncateBody(email.Body))

	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You classify job application emails. Respond only with JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion with OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI")
	}

	return parseJudgment(resp.Choices[0].Message.Content)
}

// parseJudgment extracts the judgment JSON from the LLM response,
// tolerating markdown fences and surrounding prose
func parseJudgment(responseText string) (*core.LLMJudgment, error) {
	cleaned := utils.StripCodeFences(responseText)

	var judgment core.LLMJudgment
	if err := json.Unmarshal([]byte(cleaned), &judgment); err != nil {
		jsonStr := utils.ExtractJSONObject(cleaned)
		if jsonStr == "" {
			return nil, fmt.Errorf("failed to extract JSON from LLM response: %w", err)
		}
		if err := json.Unmarshal([]byte(jsonStr), &judgment); err != nil {
			return nil, fmt.Errorf("failed to parse LLM response as JSON: %w", err)
		}
	}

	return &judgment, nil
}
