package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/jobsy/jobmail-analyzer/internal/core"
	"github.com/jobsy/jobmail-analyzer/internal/utils"
	"go.uber.org/zap"
)

// BedrockClient is an implementation of the LLMClient interface using Amazon Bedrock
type BedrockClient struct {
	client        *bedrockruntime.Client
	modelID       string
	maxTokens     int
	temperature   float32
	topP          float32
	maxBodySize   int
	logger        *zap.Logger
	promptFormat  string
	textProcessor *utils.TextProcessor
}

// NewBedrockClient creates a new Bedrock client
func NewBedrockClient(
	client *bedrockruntime.Client,
	modelID string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *BedrockClient {
	return &BedrockClient{
		client:        client,
		modelID:       modelID,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
		promptFormat:  judgmentPromptFormat,
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
}

Sadece JSON nesnesiyle cevap ver, başka metin ekleme.`

// JudgeEmail asks the model whether the email belongs to an existing
// job/internship application
func (c *BedrockClient) JudgeEmail(ctx context.Context, email *core.RawEmail) (*core.LLMJudgment, error) {
	processedBody := c.textProcessor.ProcessText(email.Body, c.maxBodySize)
	prompt := fmt.Sprintf(c.promptFormat, email.Subject, email.Sender, processedBody)

	var payload []byte
	var err error

	if c.isAnthropicModel() {
		payload, err = json.Marshal(map[string]interface{}{
			"prompt":               prompt,
			"max_tokens_to_sample": c.maxTokens,
			"temperature":          c.temperature,
			"top_p":                c.topP,
		})
	} else if c.isAmazonTitanModel() {
		payload, err = json.Marshal(map[string]interface{}{
			"inputText": prompt,
			"textGenerationConfig": map[string]interface{}{
				"maxTokenCount": c.maxTokens,
				"temperature":   c.temperature,
				"topP":          c.topP,
			},
		})
	} else {
		payload, err = json.Marshal(map[string]interface{}{
			"prompt":      prompt,
			"max_tokens":  c.maxTokens,
			"temperature": c.temperature,
			"top_p":       c.topP,
		})
	}

	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	resp, err := c.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     &c.modelID,
		Body:        payload,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke Bedrock model: %w", err)
	}

	responseText, err := c.extractResponseText(resp.Body)
	if err != nil {
		return nil, err
	}

	return parseJudgment(responseText)
}

// extractResponseText pulls the generated text out of the
// model-specific response envelope
func (c *BedrockClient) extractResponseText(body []byte) (string, error) {
	if c.isAnthropicModel() {
		var claudeResp struct {
			Completion string `json:"completion"`
		}
		if err := json.Unmarshal(body, &claudeResp); err != nil {
			return "", fmt.Errorf("failed to unmarshal Claude response: %w", err)
		}
		return claudeResp.Completion, nil
	}

	if c.isAmazonTitanModel() {
		var titanResp struct {
			Results []struct {
				OutputText string `json:"outputText"`
			} `json:"results"`
		}
		if err := json.Unmarshal(body, &titanResp); err != nil {
			return "", fmt.Errorf("failed to unmarshal Titan response: %w", err)
		}
		if len(titanResp.Results) == 0 {
			return "", fmt.Errorf("empty response from Titan model")
		}
		return titanResp.Results[0].OutputText, nil
	}

	var genericResp struct {
		Output   string `json:"output"`
		Text     string `json:"text"`
		Response string `json:"response"`
	}
	if err := json.Unmarshal(body, &genericResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal generic response: %w", err)
	}
	switch {
	case genericResp.Output != "":
		return genericResp.Output, nil
	case genericResp.Text != "":
		return genericResp.Text, nil
	case genericResp.Response != "":
		return genericResp.Response, nil
	default:
		return string(body), nil
	}
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

// isAnthropicModel checks if the model is an Anthropic Claude model
func (c *BedrockClient) isAnthropicModel() bool {
	return strings.HasPrefix(c.modelID, "anthropic.claude")
}

// isAmazonTitanModel checks if the model is an Amazon Titan model
func (c *BedrockClient) isAmazonTitanModel() bool {
	return strings.HasPrefix(c.modelID, "amazon.titan")
}
