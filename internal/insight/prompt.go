package insight

import (
	"fmt"
	"strings"

	"github.com/profitlens/backend-go/internal/domain"
)

// formatProductData renders the calculated view as the compact CSV-ish
// table every analyst prompt shares. Only a summary ever crosses the AI
// boundary; raw records stay local.
func formatProductData(products []domain.CalculatedProduct) string {
	var b strings.Builder
	b.WriteString("ProductID, Name, Purchase Price, Selling Price, Units Sold/Week, Profit Margin (%), Weekly Profit ($), Category, Stock Level, Supplier\n")
	for _, p := range products {
		category := p.Category
		if category == "" {
			category = "N/A"
		}
		supplier := p.Supplier
		if supplier == "" {
			supplier = "N/A"
		}
		stock := "N/A"
		if p.StockLevel != nil {
			stock = fmt.Sprintf("%d", *p.StockLevel)
		}
		fmt.Fprintf(&b, "%d, %s, %.2f, %.2f, %d, %.1f%%, %.2f, %s, %s, %s\n",
			p.ID, p.Name, p.PurchasePrice, p.SellingPrice, p.UnitsSoldWeek,
			p.Margin, p.WeeklyProfit, category, stock, supplier)
	}
	return b.String()
}

func insightPrompt(products []domain.CalculatedProduct, question string) string {
	return fmt.Sprintf(`Act as a senior retail business analyst for a small store owner. Your goal is to provide clear, actionable insights to maximize profit.

Based on the following product performance data:
--- DATA ---
%s--- END DATA ---

The store owner asks: %q

Please structure your response as follows, using simple Markdown for formatting:
1. **Key Takeaway:** A single, bolded sentence summarizing the most critical insight.
2. **Actionable Recommendations:** A bulleted list of practical steps the owner can take based on the data and the question.`,
		formatProductData(products), question)
}

func overviewPrompt(metrics domain.DashboardMetrics, products []domain.CalculatedProduct) string {
	var top, bottom *domain.CalculatedProduct
	for i := range products {
		if top == nil || products[i].WeeklyProfit > top.WeeklyProfit {
			top = &products[i]
		}
		if bottom == nil || products[i].WeeklyProfit < bottom.WeeklyProfit {
			bottom = &products[i]
		}
	}

	var b strings.Builder
	b.WriteString(`Act as a live business operations AI for a small retail store owner.
Provide a very brief, streaming summary of the current business situation and highlight any CRITICAL alerts.
Use simple markdown. Start with a 1-2 sentence summary, then list alerts if any.
An alert should be for something that requires immediate attention, like a potential stockout of a key item.

--- DATA ---
`)
	fmt.Fprintf(&b, "Total Weekly Profit: $%.2f\n", metrics.TotalWeeklyProfit)
	if top != nil {
		fmt.Fprintf(&b, "Top Product: %s ($%.2f profit, %d in stock, %d sold/wk)\n",
			top.Name, top.WeeklyProfit, top.Stock(), top.UnitsSoldWeek)
	}
	if bottom != nil {
		fmt.Fprintf(&b, "Lowest Profit Product: %s ($%.2f profit, %d in stock)\n",
			bottom.Name, bottom.WeeklyProfit, bottom.Stock())
	}
	b.WriteString("--- END DATA ---\n\nGenerate the summary and alerts now.")
	return b.String()
}

func extractionPrompt(fileContent string) string {
	return fmt.Sprintf(`Act as an intelligent data extraction engine. Your task is to analyze the following unstructured text data from a file and convert it into a structured JSON object.

The data could be in CSV, JSON, TXT with different delimiters, or just copy-pasted text.
Be smart about mapping column headers. For example:
- 'Product Name', 'Item', 'title' should map to the 'name' field.
- 'Cost', 'Purchase Price', 'Buy Price', 'costPrice' should map to 'purchasePrice'.
- 'Price', 'Selling Price', 'Retail Price', 'sellPrice' should map to 'sellingPrice'.
- 'Units Sold', 'Weekly Sales', 'Qty Sold', 'unitsSoldWeek' should map to 'unitsSoldWeek'.
Optional fields 'category', 'supplier' and 'stockLevel' should be mapped when present.

Ignore any currency symbols (like $), thousands separators (like ,), or extra whitespace in numbers. Extract only the numerical values.
If a row is clearly a header or completely malformed, ignore it. Only return entries that have all the required product data.

--- DATA ---
%s
--- END DATA ---

Respond with JSON of the shape {"products": [{"name": string, "purchasePrice": number, "sellingPrice": number, "unitsSoldWeek": number, "category": string, "supplier": string, "stockLevel": number}]} and nothing else.`,
		fileContent)
}

func compliancePrompt(location, businessType string) string {
	return fmt.Sprintf(`Generate a general business compliance checklist for a small %q located in %q.
Do not provide legal advice, but a general checklist of common requirements.
Focus on categories like licenses/permits, tax, employee relations, and health/safety specific to that business type.

Respond with JSON of the shape {"checklist": [{"task": string, "details": string}]} and nothing else. Keep details to one sentence each.`,
		businessType, location)
}

func forecastPrompt(products []domain.CalculatedProduct) string {
	var b strings.Builder
	b.WriteString(`Act as an expert supply chain analyst for a small retail store.
Based on the following product data (which represents recent weekly sales), provide a sales forecast for the next 7 days for each product.

--- DATA ---
`)
	for _, p := range products {
		category := p.Category
		if category == "" {
			category = "N/A"
		}
		fmt.Fprintf(&b, "{id: %d, name: %q, category: %q, sellingPrice: %.2f, unitsSoldWeek: %d, stockLevel: %d}\n",
			p.ID, p.Name, category, p.SellingPrice, p.UnitsSoldWeek, p.Stock())
	}
	b.WriteString(`--- END DATA ---

Consider potential simple trends but do not over-complicate. The forecast should be a single integer.
Respond with JSON of the shape {"forecasts": [{"id": number, "forecastedSales": number}]} and nothing else.`)
	return b.String()
}

func marketingPrompt(p domain.Product, sim domain.PromoSimulation) string {
	return fmt.Sprintf(`Act as a marketing strategist for a small retail business.
The owner is considering the following promotion:
- Product: %s
- Current Price: $%.2f
- Current Weekly Profit from this product: $%.2f
- Proposed Discount: %.0f%%
- New Price: $%.2f
- Estimated Weekly Sales Increase: %.0f%%
- Simulated Weekly Profit: $%.2f

Based on this simulation, provide brief, expert advice using simple Markdown for formatting.
1. **Potential Pros:** What are the upsides (e.g., customer acquisition, moving inventory)?
2. **Potential Cons/Risks:** What should the owner be cautious about? Quantify the risk if possible.
3. **Alternative Idea:** Suggest one alternative marketing idea for this product.
4. **Recommendation:** Conclude with a final verdict: "**Recommendation:** Go" or "**Recommendation:** No-Go" with a one-sentence justification.`,
		p.Name, p.SellingPrice, sim.CurrentProfit, sim.DiscountPercent, sim.NewPrice, sim.LiftPercent, sim.SimulatedProfit)
}

func reportPrompt(metrics domain.DashboardMetrics, products []domain.CalculatedProduct) string {
	// Cap the sample so prompts stay cheap on large catalogs.
	sample := products
	if len(sample) > 20 {
		sample = sample[:20]
	}

	topName, topProfit := "N/A", 0.0
	if metrics.TopProductByProfit != nil {
		topName = metrics.TopProductByProfit.Name
		topProfit = metrics.TopProductByProfit.WeeklyProfit
	}

	return fmt.Sprintf(`Act as a professional senior business analyst creating an executive report.
You will be given key performance indicators (KPIs) and a detailed product list for the current period.
Your task is to generate a structured JSON object containing a full, insightful, and narrative-driven analysis with a professional yet conversational tone. Tell a story with the data.

--- KPIs ---
Total Weekly Profit: $%.2f
Total Weekly Revenue: $%.2f
Top Product by Profit: %s ($%.2f profit)
Average Profit Margin: %.1f%%
--- END KPIs ---

--- DETAILED PRODUCT DATA (Sample) ---
%s--- END DETAILED PRODUCT DATA ---

Respond with JSON of the shape {"executiveSummary": string, "kpiAnalysis": string, "performanceHighlights": [string], "areasForImprovement": [string], "strategicRecommendations": [{"recommendation": string, "impact": string, "risk": string}]} and nothing else.
For each strategic recommendation give a quantified impact estimate and a brief risk assessment with mitigation.`,
		metrics.TotalWeeklyProfit, metrics.TotalWeeklyRevenue, topName, topProfit, metrics.AverageMargin,
		formatProductData(sample))
}
