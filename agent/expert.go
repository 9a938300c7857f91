package agent

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"
)

// maxCallRounds bounds the function calls an expert may chain for one
// question.
const maxCallRounds = 8

// Expert is a chat with a model specialized by its instructions and tools.
type Expert struct {
	Name        string                       `json:"name"`
	Description string                       `json:"description"`
	ModelName   string                       `json:"model_name"`
	Config      *genai.GenerateContentConfig `json:"config"`
	Library     Library                      `json:"-"`
	chat        *genai.Chat
}

// Start opens the chat.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return err
	}
	e.chat = chat
	return nil
}

// Ask sends parts to the expert and returns its answer, serving the function
// calls it makes on the way.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error) {
	for range maxCallRounds {
		resp, err := e.chat.Send(ctx, parts...)
		if err != nil {
			return nil, err
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return nil, fmt.Errorf("no response from expert %s", e.Name)
		}
		content := resp.Candidates[0].Content

		var calls []*genai.Part
		for _, p := range content.Parts {
			if p.FunctionCall == nil {
				continue
			}
			if e.Library == nil {
				return nil, fmt.Errorf("expert %s doesn't know how to make function calls", e.Name)
			}
			// Errors travel back to the model in the response.
			calls = append(calls, &genai.Part{FunctionResponse: e.Library(ctx, p.FunctionCall)})
		}
		if len(calls) == 0 {
			return content, nil
		}
		parts = calls
	}
	return nil, fmt.Errorf("expert %s made more than %d rounds of function calls", e.Name, maxCallRounds)
}

// Declaration returns the function declaration to ask this expert.
func (e *Expert) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        e.Name,
		Description: e.Description,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {
					Type:        genai.TypeString,
					Description: "The question to ask the expert.",
				},
			},
			Required: []string{"question"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "The expert's answer.",
		},
	}
}

// Call asks this expert the question in args.
func (e *Expert) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	question, ok := args["question"].(string)
	if !ok {
		return errorResponse(id, e.Name, fmt.Errorf("invalid question type %T, expected string", args["question"]))
	}
	response, err := e.Ask(ctx, &genai.Part{Text: question})
	if err != nil {
		return errorResponse(id, e.Name, fmt.Errorf("something went wrong while calling the expert: %w", err))
	}
	answer := text(response)
	log.Printf("Expert %q: \n        %q\n        %q", e.Name, question, answer)
	return outputResponse(id, e.Name, answer)
}
