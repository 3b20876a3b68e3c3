package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/jobsy/jobmail-analyzer/internal/core"
	"github.com/jobsy/jobmail-analyzer/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiClient is an implementation of the LLMClient interface using Google Gemini
type GeminiClient struct {
	client       *genai.Client
	model        *genai.GenerativeModel
	modelName    string
	maxBodySize  int
	logger       *zap.Logger
	promptFormat string
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
) (*GeminiClient, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(int32(maxTokens))

	return &GeminiClient{
		client:       client,
		model:        model,
		modelName:    modelName,
		maxBodySize:  maxBodySize,
		logger:       logger,
		promptFormat: judgmentPromptFormat,
	}, nil
}

const judgmentPromptFormat = `Bu e-postanın, kullanıcının daha önce yaptığı bir iş, staj veya program başvurusuna ait olup olmadığını belirle.
Eğer başvurduğu şirket/programdan gelen 'başvurunuz alındı', 'başvurun başarılı', 'mülakat daveti', 'teknik test', 'iş teklifi', 'program kabulü', 'ret' gibi bir durum bildirimi varsa true döndür.

KABUL EDİLECEK E-postalar:
1. İş başvuru yanıtları: "Application received", "Başvurunuz alındı", "Your application"
2. Program başvuru yanıtları: "Başvurun başarılı", "Application successful", "Program başvurusu alındı"
3. Mülakat davetleri: "Interview invitation", "Mülakat daveti", "Meeting invitation"
4. Teknik test davetleri: "Technical test", "Coding challenge", "Assessment"
5. Başvuru sonuçları: "Job offer", "Congratulations", "Unfortunately"
6. Program kabul/red: "Program kabulü", "Program reddi", "Program sonucu"

REDDEDİLECEK E-postalar:
1. Açık iş fırsatları: "New job opportunity", "We're hiring", "Apply now"
2. İş ilanları: "Job posting", "Position available", "Career opportunity"
3. Spam ve reklamlar: "Promotion", "Sale", "Newsletter", "Unsubscribe"
4. Sosyal medya bildirimleri: LinkedIn, Facebook bildirimleri
5. Kurs reklamları: "Coursera", "Udemy", "Online course"

E-posta Bilgileri:
Konu: %s
Gönderen: %s
İçerik:
%s

Cevap formatı (JSON):
{
    "is_job_application": true/false,
    "company_name": "Şirket/Program adı (footer veya içerikten)",
    "position": "Pozisyon/Program adı",
    "status": "Applied/Interview/Technical Test/Accepted/Rejected",
    "confidence": 0-100
}

Sadece JSON nesnesiyle cevap ver, başka metin ekleme.`

// Close closes the Gemini client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// truncateBody truncates the email body if it exceeds the maximum size
func (c *GeminiClient) truncateBody(body string) string {
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

// JudgeEmail asks Gemini whether the email belongs to an existing
// job/internship application
func (c *GeminiClient) JudgeEmail(ctx context.Context, email *core.RawEmail) (*core.LLMJudgment, error) {
	prompt := fmt.Sprintf(c.promptFormat, email.Subject, email.Sender, c.truncateBody(email.Body))

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with Gemini: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	return parseJudgment(responseText)
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
