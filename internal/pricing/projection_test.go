package pricing

import "testing"

func TestProject_WithAndWithoutHistory(t *testing.T) {
	model := testModel("m", "5", "15", 128000)
	usage := UsageProfile{
		QueriesPerDay:                     100,
		InputTokensPerQuery:               1200,
		OutputTokensPerQuery:              800,
		ConversationHistoryTokensPerQuery: 600,
	}

	tests := []struct {
		name           string
		includeHistory bool
		wantInTokens   string
		wantOutTokens  string
		wantInputCost  string
		wantOutputCost string
		wantDaily      string
		wantMonthly    string
		wantYearly     string
	}{
		{
			name:           "without history",
			includeHistory: false,
			wantInTokens:   "120000",
			wantOutTokens:  "80000",
			wantInputCost:  "0.6",
			wantOutputCost: "1.2",
			wantDaily:      "1.8",
			wantMonthly:    "54",
			wantYearly:     "657",
		},
		{
			name:           "with history",
			includeHistory: true,
			wantInTokens:   "180000",
			wantOutTokens:  "80000",
			wantInputCost:  "0.9",
			wantOutputCost: "1.2",
			wantDaily:      "2.1",
			wantMonthly:    "63",
			wantYearly:     "766.5",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Project(&model, usage, tc.includeHistory)
			if !got.TotalInputTokensPerDay.Equal(dec(tc.wantInTokens)) {
				t.Errorf("TotalInputTokensPerDay = %s, want %s", got.TotalInputTokensPerDay, tc.wantInTokens)
			}
			if !got.TotalOutputTokensPerDay.Equal(dec(tc.wantOutTokens)) {
				t.Errorf("TotalOutputTokensPerDay = %s, want %s", got.TotalOutputTokensPerDay, tc.wantOutTokens)
			}
			checks := []struct {
				field string
				got   string
				want  string
			}{
				{"InputCostPerDay", got.InputCostPerDay.String(), tc.wantInputCost},
				{"OutputCostPerDay", got.OutputCostPerDay.String(), tc.wantOutputCost},
				{"DailyCost", got.DailyCost.String(), tc.wantDaily},
				{"MonthlyCost", got.MonthlyCost.String(), tc.wantMonthly},
				{"YearlyCost", got.YearlyCost.String(), tc.wantYearly},
			}
			for _, c := range checks {
				if !dec(c.got).Equal(dec(c.want)) {
					t.Errorf("%s = %s, want %s", c.field, c.got, c.want)
				}
			}
		})
	}
}

func TestCompareHistory(t *testing.T) {
	model := testModel("m", "5", "15", 128000)
	usage := UsageProfile{
		QueriesPerDay:                     100,
		InputTokensPerQuery:               1200,
		OutputTokensPerQuery:              800,
		ConversationHistoryTokensPerQuery: 600,
	}

	got := CompareHistory(&model, usage)

	if !got.Impact.Daily.Equal(dec("0.3")) {
		t.Errorf("Impact.Daily = %s, want 0.3", got.Impact.Daily)
	}
	if !got.Impact.Monthly.Equal(dec("9")) {
		t.Errorf("Impact.Monthly = %s, want 9", got.Impact.Monthly)
	}
	if !got.Impact.Yearly.Equal(dec("109.5")) {
		t.Errorf("Impact.Yearly = %s, want 109.5", got.Impact.Yearly)
	}
	if !got.Impact.Daily.Equal(got.WithHistory.DailyCost.Sub(got.WithoutHistory.DailyCost)) {
		t.Error("Impact.Daily must equal with - without")
	}
	if !got.Impact.Yearly.Equal(got.WithHistory.YearlyCost.Sub(got.WithoutHistory.YearlyCost)) {
		t.Error("Impact.Yearly must equal with - without")
	}
}

func TestProject_NilModel(t *testing.T) {
	got := Project(nil, UsageProfile{QueriesPerDay: 10, InputTokensPerQuery: 100}, true)
	if !got.TotalInputTokensPerDay.IsZero() || !got.TotalOutputTokensPerDay.IsZero() {
		t.Errorf("expected zero tokens, got %+v", got)
	}
	if !got.DailyCost.IsZero() || !got.MonthlyCost.IsZero() || !got.YearlyCost.IsZero() {
		t.Errorf("expected zero costs, got %+v", got)
	}

	cmp := CompareHistory(nil, UsageProfile{QueriesPerDay: 10})
	if !cmp.Impact.Daily.IsZero() {
		t.Errorf("Impact.Daily = %s, want 0", cmp.Impact.Daily)
	}
}

func TestProject_HistoryNeverCheaper(t *testing.T) {
	models := []ModelCatalogEntry{
		testModel("cheap", "0.1", "0.4", 16000),
		testModel("mid", "3", "15", 200000),
		testModel("input-only", "2", "0", 32000),
	}
	usages := []UsageProfile{
		{QueriesPerDay: 1, InputTokensPerQuery: 1, OutputTokensPerQuery: 1, ConversationHistoryTokensPerQuery: 1},
		{QueriesPerDay: 5000, InputTokensPerQuery: 300, OutputTokensPerQuery: 900, ConversationHistoryTokensPerQuery: 4000},
		{QueriesPerDay: 12, InputTokensPerQuery: 0, OutputTokensPerQuery: 0, ConversationHistoryTokensPerQuery: 10},
	}

	for _, m := range models {
		for _, u := range usages {
			with := Project(&m, u, true)
			without := Project(&m, u, false)
			if !with.DailyCost.GreaterThan(without.DailyCost) {
				t.Errorf("%s %+v: with history %s should exceed without %s",
					m.ID, u, with.DailyCost, without.DailyCost)
			}
		}
	}
}

func TestProject_ClampsNegativeUsage(t *testing.T) {
	model := testModel("m", "1", "1", 4096)
	got := Project(&model, UsageProfile{
		QueriesPerDay:                     -5,
		InputTokensPerQuery:               100,
		OutputTokensPerQuery:              100,
		ConversationHistoryTokensPerQuery: -100,
	}, true)
	if !got.TotalInputTokensPerDay.IsZero() || !got.DailyCost.IsZero() {
		t.Errorf("negative queries should clamp to zero usage, got %+v", got)
	}
}

func TestProject_ContextUtilization(t *testing.T) {
	model := testModel("m", "1", "1", 128000)
	usage := UsageProfile{
		QueriesPerDay:                     1,
		InputTokensPerQuery:               1200,
		OutputTokensPerQuery:              800,
		ConversationHistoryTokensPerQuery: 600,
	}

	without := Project(&model, usage, false)
	if !without.ContextUtilization.Equal(dec("1.5625")) {
		t.Errorf("ContextUtilization = %s, want 1.5625", without.ContextUtilization)
	}
	with := Project(&model, usage, true)
	if !with.ContextUtilization.Equal(dec("2.03125")) {
		t.Errorf("ContextUtilization = %s, want 2.03125", with.ContextUtilization)
	}

	small := testModel("small", "1", "1", 2000)
	if got := Project(&small, usage, true); !got.ExceedsContextWindow {
		t.Error("ExceedsContextWindow = false, want true for 2600 tokens in a 2000 window")
	}

	broken := testModel("broken", "1", "1", 0)
	if got := Project(&broken, usage, true); !got.ContextUtilization.IsZero() || got.ExceedsContextWindow {
		t.Errorf("zero context window should yield zero utilization, got %+v", got)
	}
}

func TestProject_LargeUsageDoesNotWrap(t *testing.T) {
	model := testModel("m", "2", "8", 128000)
	got := Project(&model, UsageProfile{
		QueriesPerDay:        10_000_000_000,
		InputTokensPerQuery:  10_000_000_000,
		OutputTokensPerQuery: 1,
	}, false)

	if !got.TotalInputTokensPerDay.Equal(dec("100000000000000000000")) {
		t.Errorf("TotalInputTokensPerDay = %s, want 1e20", got.TotalInputTokensPerDay)
	}
	// 1e20 tokens at $2/M
	if !got.InputCostPerDay.Equal(dec("200000000000000")) {
		t.Errorf("InputCostPerDay = %s, want 2e14", got.InputCostPerDay)
	}
	if !got.ExceedsContextWindow {
		t.Error("ExceedsContextWindow = false, want true")
	}
}
