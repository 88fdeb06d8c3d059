package analytics

import (
	"github.com/MrJamesThe3rd/spendwise/internal/analytics"
	"github.com/MrJamesThe3rd/spendwise/internal/category"
	httptx "github.com/MrJamesThe3rd/spendwise/internal/http/transaction"
)

type periodResponse struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

type categoryTotalResponse struct {
	Category category.Category `json:"category"`
	Total    int64             `json:"total"`
}

type monthTotalResponse struct {
	Month string `json:"month"`
	Total int64  `json:"total"`
}

type comparisonResponse struct {
	Category       category.Category `json:"category"`
	BudgetAmount   int64             `json:"budget_amount"`
	ActualAmount   int64             `json:"actual_amount"`
	PercentageUsed float64           `json:"percentage_used"`
	Remaining      int64             `json:"remaining"`
	OverBudget     int64             `json:"over_budget"`
	IsOverBudget   bool              `json:"is_over_budget"`
}

type insightResponse struct {
	Type        analytics.Kind `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
}

type categoryCountResponse struct {
	Category category.Category `json:"category"`
	Count    int               `json:"count"`
}

// Fields are null when there are no transactions.
type summaryResponse struct {
	TotalSpend            *int64                 `json:"total_spend"`
	TopCategoryByCount    *categoryCountResponse `json:"top_category_by_count"`
	TopCategoryByAmount   *categoryTotalResponse `json:"top_category_by_amount"`
	MostRecentTransaction *httptx.Response       `json:"most_recent_transaction"`
}

type dashboardResponse struct {
	Period            periodResponse          `json:"period"`
	Categories        []categoryTotalResponse `json:"categories"`
	AllTimeCategories []categoryTotalResponse `json:"all_time_categories"`
	Monthly           []monthTotalResponse    `json:"monthly"`
	Comparison        []comparisonResponse    `json:"comparison"`
	Insights          []insightResponse       `json:"insights"`
	Summary           summaryResponse         `json:"summary"`
}

func toTotals(t analytics.Totals) []categoryTotalResponse {
	resp := make([]categoryTotalResponse, 0, len(t))
	for _, c := range t.Ordered() {
		resp = append(resp, categoryTotalResponse{Category: c, Total: t[c]})
	}

	return resp
}

func toMonthly(s analytics.Series) []monthTotalResponse {
	resp := make([]monthTotalResponse, len(s))
	for i, m := range s {
		resp[i] = monthTotalResponse{Month: m.Month, Total: m.Total}
	}

	return resp
}

func toComparison(rows []analytics.ComparisonRow) []comparisonResponse {
	resp := make([]comparisonResponse, len(rows))
	for i, r := range rows {
		resp[i] = comparisonResponse{
			Category:       r.Category,
			BudgetAmount:   r.BudgetAmount,
			ActualAmount:   r.ActualAmount,
			PercentageUsed: r.PercentageUsed,
			Remaining:      r.Remaining,
			OverBudget:     r.OverBudget,
			IsOverBudget:   r.IsOverBudget,
		}
	}

	return resp
}

func toInsights(insights []analytics.Insight) []insightResponse {
	resp := make([]insightResponse, len(insights))
	for i, in := range insights {
		resp[i] = insightResponse{Type: in.Kind, Title: in.Title, Description: in.Description}
	}

	return resp
}

func toSummary(s analytics.Summary) summaryResponse {
	resp := summaryResponse{TotalSpend: s.TotalSpend}

	if s.TopByCount != nil {
		resp.TopCategoryByCount = &categoryCountResponse{Category: s.TopByCount.Category, Count: s.TopByCount.Count}
	}

	if s.TopByAmount != nil {
		resp.TopCategoryByAmount = &categoryTotalResponse{Category: s.TopByAmount.Category, Total: s.TopByAmount.Amount}
	}

	if s.MostRecent != nil {
		resp.MostRecentTransaction = new(httptx.ToResponse(s.MostRecent))
	}

	return resp
}

func toDashboard(d *analytics.Dashboard) dashboardResponse {
	return dashboardResponse{
		Period:            periodResponse{Month: d.Period.Month, Year: d.Period.Year},
		Categories:        toTotals(d.Categories),
		AllTimeCategories: toTotals(d.AllTimeCategories),
		Monthly:           toMonthly(d.Monthly),
		Comparison:        toComparison(d.Comparison),
		Insights:          toInsights(d.Insights),
		Summary:           toSummary(d.Summary),
	}
}
