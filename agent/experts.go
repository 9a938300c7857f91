package agent

import "google.golang.org/genai"

const model = "gemini-2.5-pro"

func instructions(text string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

// newFacilitator creates the chat talking to the user.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instructions(`
			As a facilitator you are in charge of the conversation and of solving the user's request.

			Learn about the experts' skills from the Tools and ask them questions.
			They are at your service and keep the context of your previous questions.

			The user comes to understand their personal finances: how much they own,
			how much they spend, and when they can stop working.
			Devise a plan of questions to ask each expert and come up with the best response.
			Answer in markdown, with figures and their currency.
		`),
		},
		Library: NewLibrary(experts),
	}
}

// NewEconomist creates an expert grounded in Google Search for inflation,
// exchange rates and market returns.
func NewEconomist() *Expert {
	return &Expert{
		Name: "Economist",
		Description: `This is an economist, aware of inflation, exchange rates, interest rates
		and the long-term returns of asset classes. Ask the Economist whenever you need recent
		or grounding information about the economy.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: instructions(`
			You are an economist. You leverage Google Search to ground your assertions:
			inflation figures, official and parallel exchange rates, interest rates and historical returns.
			Relate what you find to the user's request, and cite the period your figures cover.
		`),
		},
	}
}

// NewAnalyst creates the expert reading the user's ledger through the tools.
func NewAnalyst(ws *Workspace) *Expert {
	lib := Tools(ws)
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. They read the user's ledger and compute
		net worth over time, income and expense averages, expense ratios, projections
		toward financial independence and the allocation of the investments.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: instructions(`
			You are the analyst of the user's personal finances. Use the Tools to get
			figures from the ledger; never guess a figure the tools can compute.
			Other experts may ask you questions in approximate language, figure out what they meant.
		`),
		},
		Library: NewLibrary(lib),
	}
}
