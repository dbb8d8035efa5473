package insight

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/viper"
	"google.golang.org/api/option"
)

// Agent holds the clients for both hosted text-generation models: the
// situation drafter and the selection reviewer. Calls are single shot and
// blocking; a failed generation is retried by resubmitting the form, never
// automatically.
type Agent struct {
	oa *openai.Client
	gm *genai.Client

	situationModel string
	selectionModel string
}

func NewAgent(ctx context.Context) (*Agent, error) {
	agent := &Agent{
		situationModel: viper.GetString("generation.openai_model"),
		selectionModel: viper.GetString("generation.gemini_model"),
	}

	if key := viper.GetString("generation.openai_key"); len(key) > 0 {
		agent.oa = openai.NewClient(key)
	}
	if key := viper.GetString("generation.gemini_key"); len(key) > 0 {
		client, err := genai.NewClient(ctx, option.WithAPIKey(key))
		if err != nil {
			return nil, fmt.Errorf("unable to create gemini client: %v", err)
		}
		agent.gm = client
	}

	return agent, nil
}

// GenerateSituation asks the drafting model for a conflict situation on the
// given topic plus four candidate responses, returned as the raw model text.
// The caller is responsible for parsing it with ParseSituation.
func (v *Agent) GenerateSituation(ctx context.Context, topic string) (string, error) {
	if v.oa == nil {
		return "", fmt.Errorf("situation generation is not configured")
	}

	resp, err := v.oa.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: v.situationModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(situationPrompt, topic),
			},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// GenerateSelection asks the reviewing model which of the four options
// reflects the least empathetic choice, returning the option index and the
// model's rationale.
func (v *Agent) GenerateSelection(ctx context.Context, situation string, options []string) (int, string, error) {
	if v.gm == nil {
		return 0, "", fmt.Errorf("selection generation is not configured")
	}

	model := v.gm.GenerativeModel(v.selectionModel)
	resp, err := model.GenerateContent(ctx, genai.Text(fmt.Sprintf(selectionPrompt, renderChoices(situation, options))))
	if err != nil {
		return 0, "", err
	}

	var raw string
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				raw += string(text)
			}
		}
		break
	}
	if len(raw) == 0 {
		return 0, "", fmt.Errorf("model returned no text")
	}

	return ParseSelection(raw)
}
