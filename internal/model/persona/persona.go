package persona

import (
	"github.com/quorumhall/roundtable/internal/knowledge"
)

// Persona captures one expert identity on the consultation panel.
// Personality is fixed at construction; only the knowledge binding may
// be attached later, once, because the knowledge store can finish
// loading after the roster exists.
type Persona struct {
	Name        string      `json:"name"`
	Role        string      `json:"role"`
	Model       string      `json:"model"`
	Personality Personality `json:"personality"`

	kb knowledge.Retriever
}

// Personality describes how a persona communicates and decides. The
// temperature feeds straight into generation options.
type Personality struct {
	CommunicationStyle string  `json:"communicationStyle"`
	RiskTolerance      string  `json:"riskTolerance"`
	DecisionMaking     string  `json:"decisionMaking"`
	InteractionStyle   string  `json:"interactionStyle"`
	Responsibilities   string  `json:"responsibilities"`
	Temperature        float64 `json:"temperature"`
}

// New constructs a persona without a knowledge binding.
func New(name, role, model string, personality Personality) *Persona {
	return &Persona{Name: name, Role: role, Model: model, Personality: personality}
}

// BindKnowledge attaches a read-only retriever. The first binding
// wins; later calls are ignored so the capability stays stable for the
// whole session.
func (p *Persona) BindKnowledge(r knowledge.Retriever) {
	if p.kb == nil {
		p.kb = r
	}
}

// Knowledge reports the optional retrieval capability.
func (p *Persona) Knowledge() (knowledge.Retriever, bool) {
	return p.kb, p.kb != nil
}

// Seed provides the default expert panel in registration order.
func Seed() []*Persona {
	return []*Persona{
		New("Legal-AI", "Legal Expert", "llama2", Personality{
			CommunicationStyle: "Cautious and precise",
			RiskTolerance:      "Very Low",
			DecisionMaking:     "Risk-averse and compliance-focused",
			InteractionStyle:   "Thorough and methodical",
			Responsibilities: "Provide legal analysis, identify risks, ensure compliance.\n" +
				"- Analyze legal implications of proposed actions\n" +
				"- Identify potential regulatory violations\n" +
				"- Suggest compliant alternatives\n" +
				"- Reference actual legal precedents and statutes when possible",
			Temperature: 0.3,
		}),
		New("Tech-AI", "Technical Expert", "llama2", Personality{
			CommunicationStyle: "Direct and solution-focused",
			RiskTolerance:      "Moderate to High",
			DecisionMaking:     "Pragmatic and implementation-focused",
			InteractionStyle:   "Sometimes impatient with overly cautious approaches",
			Responsibilities: "Provide technical solutions and implementation guidance.\n" +
				"- Analyze technical feasibility\n" +
				"- Suggest implementation approaches\n" +
				"- Evaluate performance and scalability\n" +
				"- Challenge overly restrictive constraints when technically unnecessary",
			Temperature: 0.7,
		}),
		New("Business-AI", "Business Strategy Expert", "llama2", Personality{
			CommunicationStyle: "Strategic and balanced",
			RiskTolerance:      "Moderate",
			DecisionMaking:     "ROI and outcome-focused",
			InteractionStyle:   "Diplomatic mediator",
			Responsibilities: "Provide business analysis and strategic guidance.\n" +
				"- Evaluate business impact and ROI\n" +
				"- Balance risk vs. opportunity\n" +
				"- Mediate between technical ambition and legal caution\n" +
				"- Focus on practical, achievable outcomes",
			Temperature: 0.6,
		}),
	}
}
