package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-report-bot/internal/database"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// RunAgent answers an owner's free-form question about the daily reports,
// using tool calls against the report store.
func RunAgent(userMessage string, apiKey string, loc *time.Location) (string, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash-001")

	today := time.Now().In(loc).Format("2006-01-02")
	systemPrompt := fmt.Sprintf(`SYSTEM: Today is %s. You are an assistant for a branch-reporting system.
	Employees file one versioned daily financial report per branch.

	RULES:
	1. For questions about a single day (income, cash, clients, which branches reported), call 'get_daily_summary'.
	2. For questions across several days, call 'get_range_reports' and aggregate from the returned rows.
	3. To answer which branches exist, call 'list_branches'.
	4. Answer with concrete numbers from the tool results; do not guess.

	USER: %s`, today, userMessage)

	model.Tools = []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "get_daily_summary",
					Description: "Get the totals (income, cash, cashless, clients, branches reported) for one day.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"date": {Type: genai.TypeString, Description: "Day (YYYY-MM-DD)"},
						},
						Required: []string{"date"},
					},
				},
				{
					Name:        "get_range_reports",
					Description: "Get every report filed within a date range, with branch and employee names.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"start_date": {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
							"end_date":   {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
						},
						Required: []string{"start_date", "end_date"},
					},
				},
				{
					Name:        "list_branches",
					Description: "List all branches with their employee counts.",
				},
			},
		},
	}

	session := model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt))
	if err != nil {
		return "", err
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			switch funcCall.Name {
			case "get_daily_summary":
				return executeDailySummary(ctx, session, funcCall)
			case "get_range_reports":
				return executeRangeReports(ctx, session, funcCall)
			case "list_branches":
				return executeListBranches(ctx, session)
			}
		}
	}

	return printResponse(resp), nil
}

func executeDailySummary(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall) (string, error) {
	dateStr, _ := funcCall.Args["date"].(string)
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return "Error: dates must be in YYYY-MM-DD format.", nil
	}

	summary, err := database.GetDailySummary(day)
	if err != nil {
		return "", err
	}

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name: "get_daily_summary",
		Response: map[string]interface{}{
			"reports":        summary.Reports,
			"branches":       summary.Branches,
			"total_income":   summary.TotalIncome.String(),
			"total_cash":     summary.TotalCash.String(),
			"total_cashless": summary.TotalCashless.String(),
			"total_clients":  summary.TotalClients,
		},
	})
	if err != nil {
		return "", err
	}
	return printResponse(finalResp), nil
}

func executeRangeReports(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall) (string, error) {
	startStr, _ := funcCall.Args["start_date"].(string)
	endStr, _ := funcCall.Args["end_date"].(string)

	start, err1 := time.Parse("2006-01-02", startStr)
	end, err2 := time.Parse("2006-01-02", endStr)
	if err1 != nil || err2 != nil {
		return "Error: dates must be in YYYY-MM-DD format.", nil
	}

	reports, err := database.GetReportsForRange(start, end)
	if err != nil {
		return "", err
	}

	type simpleReport struct {
		Date     string `json:"date"`
		Branch   string `json:"branch"`
		Employee string `json:"employee"`
		Income   string `json:"income"`
		Cash     string `json:"cash"`
		Cashless string `json:"cashless"`
		Clients  int    `json:"clients"`
		Version  int    `json:"version"`
	}
	var rows []simpleReport
	for _, r := range reports {
		rows = append(rows, simpleReport{
			Date:     r.ReportDate.Format("2006-01-02"),
			Branch:   r.Branch.Name,
			Employee: r.Employee.FullName,
			Income:   r.TotalIncome.String(),
			Cash:     r.Cash.String(),
			Cashless: r.Cashless.String(),
			Clients:  r.ClientsCount,
			Version:  r.Version,
		})
	}
	jsonBytes, _ := json.Marshal(rows)

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "get_range_reports",
		Response: map[string]interface{}{"reports": string(jsonBytes)},
	})
	if err != nil {
		return "", err
	}
	return printResponse(finalResp), nil
}

func executeListBranches(ctx context.Context, session *genai.ChatSession) (string, error) {
	branches, err := database.GetBranches()
	if err != nil {
		return "", err
	}

	type simpleBranch struct {
		ID        uint   `json:"id"`
		Name      string `json:"name"`
		Employees int    `json:"employees"`
	}
	var rows []simpleBranch
	for _, b := range branches {
		rows = append(rows, simpleBranch{ID: b.ID, Name: b.Name, Employees: len(b.Employees)})
	}
	jsonBytes, _ := json.Marshal(rows)

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "list_branches",
		Response: map[string]interface{}{"branches": string(jsonBytes)},
	})
	if err != nil {
		return "", err
	}
	return printResponse(finalResp), nil
}

func printResponse(resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
