package llm

import (
	"context"
	"encoding/json"
)

// NewDemoProvider returns a MockProvider that answers every request offline,
// so the app can be tried without an API key. Calculation requests get a
// fixed worked example; quiz requests get a fixed batch of questions.
func NewDemoProvider() *MockProvider {
	m := NewMockProvider()
	m.Fallback = demoResponse
	return m
}

func demoResponse(ctx context.Context, req Request) MockResponse {
	if PurposeFrom(ctx) == PurposeQuiz || req.Schema != nil {
		return MockResponse{Content: demoQuiz}
	}
	return MockResponse{Chunks: demoCalculation}
}

var demoCalculation = []string{
	"Demo Answer (mock provider)\n- Figures below are a fixed example for a 50 m dam, not your inputs\n\n",
	"Self Weight\n- Formula: W = γc × A\n- Substitution: W = 24 kN/m³ × 1000 m²\n- Final result: W = 24000 kN/m\n\n",
	"Water Pressure\n- Formula: P = ½ × γw × h²\n- Substitution: P = 0.5 × 9.81 × 45²\n- Final result: P = 9932.6 kN/m\n\n",
	"Uplift Pressure\n- Formula: U = ½ × γw × h × B\n- Substitution: U = 0.5 × 9.81 × 45 × 40\n- Final result: U = 8829 kN/m\n\n",
	"Factor of Safety Against Overturning\n- Formula: FoS = ΣMr / ΣMo\n- Substitution: FoS = 480000 / 215000\n- Final result: FoS = 2.23 (safe, above 1.5)\n\n",
	"Factor of Safety Against Sliding\n- Formula: FoS = μ × (W − U) / P\n- Substitution: FoS = 0.75 × (24000 − 8829) / 9932.6\n- Final result: FoS = 1.15 (check shear friction)",
}

type demoQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

var demoQuiz = mustJSON(map[string][]demoQuestion{"questions": {
	{
		Question:      "Which force is usually the main resisting force in a gravity dam?",
		Options:       []string{"Uplift", "Self weight", "Wave pressure", "Silt pressure"},
		CorrectAnswer: 1,
		Explanation:   "A gravity dam resists the water load mainly through its own weight.",
	},
	{
		Question:      "How does hydrostatic pressure vary with depth?",
		Options:       []string{"Linearly", "Quadratically", "It is constant", "Exponentially"},
		CorrectAnswer: 0,
		Explanation:   "Pressure is γw × h, so it grows linearly with depth.",
	},
	{
		Question:      "What is the resultant horizontal water force per metre for water depth h?",
		Options:       []string{"γw × h", "γw × h² / 2", "γw × h³ / 3", "2 × γw × h"},
		CorrectAnswer: 1,
		Explanation:   "The triangular pressure diagram has area γw × h² / 2.",
	},
	{
		Question:      "Where does the horizontal water force act above the base?",
		Options:       []string{"h / 2", "h / 4", "h / 3", "2h / 3"},
		CorrectAnswer: 2,
		Explanation:   "The centroid of a triangular load is at one third of its height.",
	},
	{
		Question:      "Which force reduces the effective weight of the dam?",
		Options:       []string{"Uplift pressure", "Self weight", "Earthquake force", "Ice pressure"},
		CorrectAnswer: 0,
		Explanation:   "Uplift acts upward on the base and opposes the self weight.",
	},
	{
		Question:      "What is a commonly accepted minimum factor of safety against overturning?",
		Options:       []string{"0.5", "1.0", "1.5", "5.0"},
		CorrectAnswer: 2,
		Explanation:   "Designs usually require the resisting moment to exceed the overturning moment by 1.5 to 2.",
	},
	{
		Question:      "To avoid tension at the heel, the resultant must fall within the...",
		Options:       []string{"Upstream face", "Middle third of the base", "Downstream toe", "Crest"},
		CorrectAnswer: 1,
		Explanation:   "The middle third rule keeps the whole base in compression.",
	},
	{
		Question:      "What does a drainage gallery mainly reduce?",
		Options:       []string{"Self weight", "Wave height", "Uplift pressure", "Silt load"},
		CorrectAnswer: 2,
		Explanation:   "Drains relieve seepage pressure under the dam, cutting uplift.",
	},
	{
		Question:      "Sliding stability compares the horizontal load against...",
		Options:       []string{"Friction and shear resistance", "Crest width", "Freeboard", "Spillway capacity"},
		CorrectAnswer: 0,
		Explanation:   "Sliding is resisted by base friction μ(W − U) and shear strength.",
	},
	{
		Question:      "What is the typical unit weight of concrete used in dam design?",
		Options:       []string{"9.81 kN/m³", "15 kN/m³", "18 kN/m³", "24 kN/m³"},
		CorrectAnswer: 3,
		Explanation:   "Mass concrete is usually taken as about 24 kN/m³.",
	},
}})

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
