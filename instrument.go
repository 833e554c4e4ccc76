package opana

import "github.com/sirkon/opana/ir"

// Instrumentation observes actual analysis constructions. Hooks fire
// exactly once per construction and never on cache hits. When a
// construction fails, BeforeAnalysis has fired and AfterAnalysis does not.
//
// A nil Instrumentation is valid and means no observation.
type Instrumentation interface {
	// BeforeAnalysis fires right before an analysis gets computed.
	BeforeAnalysis(name string, id TypeID, op ir.Operation)

	// AfterAnalysis fires right after an analysis was computed and cached.
	AfterAnalysis(name string, id TypeID, op ir.Operation)
}
