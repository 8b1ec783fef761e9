package graph

// File represents a single analysis unit with its functions
type File struct {
	Name      string      // File name
	Path      string      // Unit identifier
	Crate     string      // Crate name if known
	Functions []*Function // Functions declared in this unit, in source order

	functionMap map[string][]int // Map of functions for quick lookup
}

// AddFunction adds a function to the file
func (f *File) AddFunction(function *Function) {
	f.Functions = append(f.Functions, function)
	if f.functionMap != nil {
		f.functionMap[function.Name] = append(f.functionMap[function.Name], len(f.Functions)-1)
	}
}

// LookupFunction retrieves the first function declared with name
func (f *File) LookupFunction(name string) *Function {
	candidates := f.LookupFunctions(name)
	if len(candidates) == 0 {
		return nil
	}
	return candidates[0]
}

// LookupFunctions retrieves all functions declared with name (free functions and methods)
func (f *File) LookupFunctions(name string) []*Function {
	if f.functionMap == nil {
		f.IndexFunctions()
	}
	indexes := f.functionMap[name]
	var result = make([]*Function, 0, len(indexes))
	for _, idx := range indexes {
		if idx < len(f.Functions) {
			result = append(result, f.Functions[idx])
		}
	}
	return result
}

// HasFunction checks if a function with the given name exists in the file
func (f *File) HasFunction(name string) bool {
	return len(f.LookupFunctions(name)) > 0
}

// IndexFunctions rebuilds the lookup index
func (f *File) IndexFunctions() {
	f.functionMap = make(map[string][]int)
	for i, function := range f.Functions {
		if function == nil {
			continue
		}
		f.functionMap[function.Name] = append(f.functionMap[function.Name], i)
	}
}
