package emit

// Format is the closed set of target workflow formats. Each variant has
// exactly one emitter; adding a format means adding a constant here, a case
// in Emit, and the emitter itself, all checked at compile time.
type Format string

const (
	// Generic is the baseline nodes/edges/order JSON document. Every other
	// format degrades toward it when a native feature is missing.
	Generic Format = "generic"
	// LangChain is the linear-chain format. It requires the graph to
	// reduce to a single sequential chain.
	LangChain Format = "langchain"
	// LangGraph is the graph format: nodes carry handler references and
	// edges carry conditional-routing metadata.
	LangGraph Format = "langgraph"
	// LangFlow is the visual-flow format: the generic payload plus a
	// deterministic 2-D layout hint per node.
	LangFlow Format = "langflow"
)

// ParseFormat maps a requested format string onto the closed set.
func ParseFormat(raw string) (Format, bool) {
	switch Format(raw) {
	case Generic, LangChain, LangGraph, LangFlow:
		return Format(raw), true
	default:
		return "", false
	}
}

// Formats lists every supported format, for usage and error text.
func Formats() []Format {
	return []Format{Generic, LangChain, LangGraph, LangFlow}
}
