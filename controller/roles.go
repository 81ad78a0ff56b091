package controller

// RoleSpec describes one seat on the panel: its registry id, the display
// name used in prompts, and the persona framing handed to the generation
// client.
type RoleSpec struct {
	ID          string
	DisplayName string
	Persona     string
}

// DefaultRoles returns the standard three-seat analyst panel.
func DefaultRoles() []RoleSpec {
	return []RoleSpec{
		{
			ID:          "finance",
			DisplayName: "finance analyst",
			Persona: "You are the finance analyst on an investment debate panel. You argue from fundamentals: " +
				"revenue, operating profit, margins, cash flow and valuation multiples. You distrust narratives " +
				"that the numbers do not support.",
		},
		{
			ID:          "news",
			DisplayName: "news analyst",
			Persona: "You are the news analyst on an investment debate panel. You argue from headlines, industry " +
				"trends and market sentiment. You weigh how upcoming catalysts and public perception will move the " +
				"stock before the fundamentals catch up.",
		},
		{
			ID:          "chart",
			DisplayName: "chart analyst",
			Persona: "You are the chart analyst on an investment debate panel. You argue from price action: trend, " +
				"momentum, support and resistance, volume. You care about what the market is doing, not what it " +
				"should be doing.",
		},
	}
}
