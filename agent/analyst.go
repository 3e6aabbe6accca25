package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/knatarajan-dev/casfolio"
	"github.com/knatarajan-dev/casfolio/renderer"
	"google.golang.org/genai"
)

const analystPrompt = `You are an analyst answering a user's questions about their mutual fund
portfolio, parsed from their consolidated account statement.

Use the available tools to obtain figures; never compute returns yourself and
never fabricate data. The tools already operate on the user's own
transactions and holdings, you only pass query parameters.

Rates are percentages: a tool answer of 12.4 means 12.4%.

Once you have all necessary information, reply with a final, concise answer.
If the required information is missing or unknown, say so honestly.`

// NewAnalyst builds the portfolio analyst expert for one parsed portfolio.
// The tool library closes over the concrete artifacts; the model only ever
// passes query parameters such as an ISIN, never data.
func NewAnalyst(p *casfolio.Portfolio, categories casfolio.CategoryLookup) *Expert {
	lib := []Function{
		xirrFunc(p),
		filterFunc(p),
		summaryFunc(p, categories),
	}

	return &Expert{
		Name: "Analyst",
		Description: `The portfolio analyst. It can compute the money-weighted annual return
		(XIRR), list the transactions of a fund, and break the portfolio down by asset class.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{
				{Text: analystPrompt},
				{Text: "The user's holdings:\n\n" + renderer.HoldingsMarkdown(p)},
			}},
		},
		Library: NewLibrary(lib),
	}
}

func xirrFunc(p *casfolio.Portfolio) *Func {
	const name = "get_xirr"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Compute the XIRR (annualized money-weighted return) of the portfolio,
			or of a single fund when an ISIN is given. The result is in percent: 12.4 means 12.4%.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"isin": {
						Type:        genai.TypeString,
						Description: "Restrict the computation to this fund's ISIN. Omit for the whole portfolio.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeNumber,
				Description: "The annualized return, in percent.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			flows := p.Cashflows
			if isin, ok := args["isin"].(string); ok && isin != "" {
				flows = casfolio.FilterTransactionsByISIN(flows, isin)
			}
			rate, err := casfolio.GetXIRR(flows)
			if err != nil {
				return errResponse(id, name, err)
			}
			return &genai.FunctionResponse{
				ID:   id,
				Name: name,
				Response: map[string]any{
					"output": float64(rate),
				},
			}
		},
	}
}

func filterFunc(p *casfolio.Portfolio) *Func {
	const name = "filter_transactions_by_isin"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: "List the user's transactions for the fund with the given ISIN.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"isin": {
						Type:        genai.TypeString,
						Description: "The ISIN to filter the transactions by.",
					},
				},
				Required: []string{"isin"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The matching transactions as a JSON array.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			isin, ok := args["isin"].(string)
			if !ok {
				return errResponse(id, name, fmt.Errorf("invalid isin argument type %T", args["isin"]))
			}
			filtered := casfolio.FilterTransactionsByISIN(p.Transactions, isin)
			return jsonResponse(id, name, filtered)
		},
	}
}

func summaryFunc(p *casfolio.Portfolio, categories casfolio.CategoryLookup) *Func {
	const name = "get_asset_class_summary"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Summarize the current holdings by asset class: market value and
			percentage share of each class.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The asset-class breakdown as a JSON array.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			summary, err := casfolio.AssetClassSummary(p.CurrentHoldings, categories)
			if err != nil {
				return errResponse(id, name, err)
			}
			return jsonResponse(id, name, summary)
		},
	}
}

// jsonResponse marshals a tool result for the model.
func jsonResponse(id, name string, v any) *genai.FunctionResponse {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errResponse(id, name, err)
	}
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": string(data),
		},
	}
}
