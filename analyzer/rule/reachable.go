package rule

import (
	"fmt"
	"strings"

	"github.com/viant/wasmguard/analyzer/finding"
	"github.com/viant/wasmguard/inspector/graph"
)

// unsafeReachable follows intra-unit call edges from an exported function to internal helpers
// containing unsafe regions. It is opt-in and independent from unsafeExported.
type unsafeReachable struct{}

func (r *unsafeReachable) ID() finding.RuleID {
	return finding.UnsafeReachableHelper
}

func (r *unsafeReachable) Description() string {
	return "Boundary-exported function calls an internal helper that performs unsafe operations"
}

func (r *unsafeReachable) DefaultSeverity() finding.Severity {
	return finding.SeverityMedium
}

func (r *unsafeReachable) Check(unit *Unit, fn *graph.Function) *finding.Finding {
	if !unit.Labels.IsExported(fn) {
		return nil
	}
	parent := map[*graph.Function]*graph.Function{}
	visited := map[*graph.Function]bool{fn: true}
	queue := []*graph.Function{fn}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, call := range current.Calls() {
			for _, callee := range resolveCall(unit.File, current, call) {
				if visited[callee] {
					continue
				}
				visited[callee] = true
				parent[callee] = current
				if unit.Labels.IsExported(callee) {
					continue // reported on its own
				}
				if callee.ContainsUnsafe() {
					chain := callChain(parent, fn, callee)
					message := fmt.Sprintf("exported function %s reaches unsafe code in internal helper %s (%s)", fn.Name, callee.Name, chain)
					return finding.New(r.ID(), unit.SeverityOf(r), fn, message)
				}
				queue = append(queue, callee)
			}
		}
	}
	return nil
}

// resolveCall matches a callee by name within the unit; method calls are not resolved
func resolveCall(file *graph.File, caller *graph.Function, call *graph.Call) []*graph.Function {
	if call.Kind != graph.CallFunction {
		return nil
	}
	qualifier := call.Qualifier()
	for _, prefix := range []string{"crate", "self", "super"} {
		if qualifier == prefix {
			qualifier = ""
		}
		qualifier = strings.TrimPrefix(qualifier, prefix+"::")
	}
	var result []*graph.Function
	for _, candidate := range file.LookupFunctions(call.Name) {
		switch qualifier {
		case "":
			if candidate.Owner == "" {
				result = append(result, candidate)
			}
		case "Self":
			if candidate.Owner != "" && candidate.Owner == caller.Owner {
				result = append(result, candidate)
			}
		default:
			if candidate.Owner == qualifier || strings.HasSuffix(candidate.QualifiedName, qualifier+"::"+call.Name) {
				result = append(result, candidate)
			}
		}
	}
	return result
}

func callChain(parent map[*graph.Function]*graph.Function, root, leaf *graph.Function) string {
	var names []string
	for node := leaf; node != nil; node = parent[node] {
		names = append(names, node.Name)
		if node == root {
			break
		}
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, " -> ")
}
