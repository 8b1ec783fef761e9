package rule

import (
	"fmt"

	"github.com/viant/wasmguard/analyzer/finding"
	"github.com/viant/wasmguard/inspector/graph"
)

// unsafeExported flags exported functions whose own body contains an unsafe region
type unsafeExported struct{}

func (r *unsafeExported) ID() finding.RuleID {
	return finding.UnsafeExportedFunction
}

func (r *unsafeExported) Description() string {
	return "Boundary-exported function performs unsafe operations in its own body"
}

func (r *unsafeExported) DefaultSeverity() finding.Severity {
	return finding.SeverityHigh
}

func (r *unsafeExported) Check(unit *Unit, fn *graph.Function) *finding.Finding {
	if !unit.Labels.IsExported(fn) || fn.Body == nil {
		return nil
	}
	regions := fn.Body.UnsafeBlocks()
	if len(regions) == 0 {
		return nil
	}
	where := "its body is declared unsafe"
	if first := regions[0]; first.Kind == graph.BlockUnsafe && first.Location != nil {
		where = fmt.Sprintf("unsafe block at line %d", first.Location.StartLine)
		if len(regions) > 1 {
			where = fmt.Sprintf("%d unsafe blocks, first at line %d", len(regions), first.Location.StartLine)
		}
	}
	message := fmt.Sprintf("exported function %s performs unchecked memory operations (%s); boundary callers control its input", fn.Name, where)
	return finding.New(r.ID(), unit.SeverityOf(r), fn, message)
}
