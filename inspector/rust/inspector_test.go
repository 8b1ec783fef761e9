package rust_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/wasmguard/inspector/graph"
	"github.com/viant/wasmguard/inspector/rust"
)

func TestInspector_InspectSource(t *testing.T) {
	type expectFunction struct {
		name          string
		qualifiedName string
		attributes    []string
		shape         graph.ShapeKind
		unsafe        bool
	}
	tests := []struct {
		description string
		source      string
		expect      []expectFunction
	}{
		{
			description: "exported and internal functions",
			source: `use wasm_bindgen::prelude::*;

/// doc comments do not detach attributes
#[wasm_bindgen]
// neither do line comments
pub fn greet(name: &str) -> String {
    format!("Hello, {}!", name)
}

fn internal_unsafe_function() {
    unsafe {
        let ptr = std::ptr::null_mut::<u8>();
        *ptr = 0;
    }
}
`,
			expect: []expectFunction{
				{name: "greet", qualifiedName: "greet", attributes: []string{"wasm_bindgen"}, shape: graph.ShapePlain},
				{name: "internal_unsafe_function", qualifiedName: "internal_unsafe_function", shape: graph.ShapeUnit, unsafe: true},
			},
		},
		{
			description: "attributes on other items do not leak",
			source: `#[wasm_bindgen]
pub struct Counter {
    value: u32,
}

#[wasm_bindgen]
extern "C" {
    #[wasm_bindgen(js_namespace = console)]
    fn log(s: &str);
}

pub fn plain() {}
`,
			expect: []expectFunction{
				{name: "plain", qualifiedName: "plain", shape: graph.ShapeUnit},
			},
		},
		{
			description: "nested function is a separate entity",
			source: `#[wasm_bindgen]
pub fn outer(data: &mut [u8]) -> usize {
    fn inner(ptr: *mut u8) {
        unsafe { *ptr = 1; }
    }
    inner(data.as_mut_ptr());
    data.len()
}
`,
			expect: []expectFunction{
				{name: "outer", qualifiedName: "outer", attributes: []string{"wasm_bindgen"}, shape: graph.ShapePlain},
				{name: "inner", qualifiedName: "outer::inner", shape: graph.ShapeUnit, unsafe: true},
			},
		},
		{
			description: "modules and impl blocks",
			source: `mod ffi {
    #[wasm_bindgen::prelude::wasm_bindgen(js_name = "sum")]
    #[inline]
    pub fn add(a: i32, b: i32) -> i32 { a + b }
}

#[wasm_bindgen]
impl Buffer<u8> {
    #[wasm_bindgen(constructor)]
    pub fn new() -> Buffer<u8> { Buffer { bytes: Vec::new() } }

    fn peek(&self) -> u8 { unsafe { *self.bytes.as_ptr() } }
}
`,
			expect: []expectFunction{
				{name: "add", qualifiedName: "ffi::add", attributes: []string{"wasm_bindgen::prelude::wasm_bindgen", "inline"}, shape: graph.ShapePlain},
				{name: "new", qualifiedName: "Buffer::new", attributes: []string{"wasm_bindgen"}, shape: graph.ShapePlain},
				{name: "peek", qualifiedName: "Buffer::peek", shape: graph.ShapePlain, unsafe: true},
			},
		},
		{
			description: "unsafe fn body is an unsafe region",
			source: `#[wasm_bindgen]
pub unsafe fn read_at(ptr: *const u8) -> u8 {
    *ptr
}
`,
			expect: []expectFunction{
				{name: "read_at", qualifiedName: "read_at", attributes: []string{"wasm_bindgen"}, shape: graph.ShapePlain, unsafe: true},
			},
		},
		{
			description: "unsafe nested in branches loops and closures",
			source: `pub fn branch(n: usize, p: *mut u8) {
    if n > 0 {
        for i in 0..n {
            unsafe { *p.add(i) = 0; }
        }
    }
}

pub fn closure(p: *const u8) -> u8 {
    let read = || unsafe { *p };
    read()
}

pub fn arm(v: Option<*const u8>) -> u8 {
    match v {
        Some(p) => unsafe { *p },
        None => 0,
    }
}
`,
			expect: []expectFunction{
				{name: "branch", qualifiedName: "branch", shape: graph.ShapeUnit, unsafe: true},
				{name: "closure", qualifiedName: "closure", shape: graph.ShapePlain, unsafe: true},
				{name: "arm", qualifiedName: "arm", shape: graph.ShapePlain, unsafe: true},
			},
		},
		{
			description: "unsafe written in macro arguments",
			source: `pub fn from_vec(p: *const u8) -> Vec<u8> {
    vec![unsafe { *p }]
}

pub fn from_format(p: *const u8) -> String {
    format!("{}", unsafe { *p })
}

pub fn from_nested(p: *const u8) -> String {
    format!("{:?}", vec![1, unsafe { *p }])
}

pub fn keyword_only(p: *const u8) -> String {
    stringify!(unsafe fn read())
}

macro_rules! read {
    ($p:expr) => { unsafe { *$p } };
}
`,
			expect: []expectFunction{
				{name: "from_vec", qualifiedName: "from_vec", shape: graph.ShapePlain, unsafe: true},
				{name: "from_format", qualifiedName: "from_format", shape: graph.ShapePlain, unsafe: true},
				{name: "from_nested", qualifiedName: "from_nested", shape: graph.ShapePlain, unsafe: true},
				{name: "keyword_only", qualifiedName: "keyword_only", shape: graph.ShapePlain},
			},
		},
		{
			description: "comments do not detach attributes of nested items",
			source: `pub fn outer() {
    #[wasm_bindgen]
    // note
    fn inner(p: *const u8) -> u8 { unsafe { *p } }
}
`,
			expect: []expectFunction{
				{name: "outer", qualifiedName: "outer", shape: graph.ShapeUnit},
				{name: "inner", qualifiedName: "outer::inner", attributes: []string{"wasm_bindgen"}, shape: graph.ShapePlain, unsafe: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			inspector := rust.NewInspector(nil)
			file, err := inspector.InspectSource("lib.rs", []byte(tt.source))
			require.NoError(t, err)
			require.Len(t, file.Functions, len(tt.expect))
			for i, expect := range tt.expect {
				fn := file.Functions[i]
				assert.Equal(t, expect.name, fn.Name)
				assert.Equal(t, expect.qualifiedName, fn.QualifiedName)
				var attributes []string
				for _, attribute := range fn.Attributes {
					attributes = append(attributes, attribute.Name)
				}
				assert.Equal(t, expect.attributes, attributes, fn.Name)
				assert.Equal(t, expect.shape, fn.Result.Kind, fn.Name)
				assert.Equal(t, expect.unsafe, fn.ContainsUnsafe(), fn.Name)
				assert.Equal(t, "lib.rs", fn.Location.Path)
			}
		})
	}
}

func TestInspector_ReturnShape(t *testing.T) {
	tests := []struct {
		description string
		signature   string
		kind        graph.ShapeKind
		success     string
		error       string
	}{
		{description: "result", signature: "fn f() -> Result<i32, String>", kind: graph.ShapeFallible, success: "i32", error: "String"},
		{description: "qualified result", signature: "fn f() -> std::result::Result<u8, JsValue>", kind: graph.ShapeFallible, success: "u8", error: "JsValue"},
		{description: "alias with one argument", signature: "fn f() -> io::Result<()>", kind: graph.ShapeFallible, success: "()"},
		{description: "alias without arguments", signature: "fn f() -> fmt::Result", kind: graph.ShapeFallible},
		{description: "option", signature: "fn f() -> Option<u8>", kind: graph.ShapePlain},
		{description: "reference", signature: "fn f() -> &'static str", kind: graph.ShapePlain},
		{description: "explicit unit", signature: "fn f() -> ()", kind: graph.ShapeUnit},
		{description: "no return type", signature: "fn f()", kind: graph.ShapeUnit},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			file, err := rust.NewInspector(nil).InspectSource("lib.rs", []byte(tt.signature+" { todo!() }\n"))
			require.NoError(t, err)
			require.Len(t, file.Functions, 1)
			shape := file.Functions[0].Result
			assert.Equal(t, tt.kind, shape.Kind)
			assert.Equal(t, tt.success, shape.Success)
			assert.Equal(t, tt.error, shape.Error)
		})
	}
}

func TestInspector_FallibleTypes(t *testing.T) {
	source := []byte("pub fn f() -> Outcome<u8, Fault> { todo!() }\n")

	file, err := rust.NewInspector(nil).InspectSource("lib.rs", source)
	require.NoError(t, err)
	assert.Equal(t, graph.ShapePlain, file.Functions[0].Result.Kind)

	file, err = rust.NewInspector(&graph.Config{FallibleTypes: []string{"Outcome"}}).InspectSource("lib.rs", source)
	require.NoError(t, err)
	assert.Equal(t, graph.ShapeFallible, file.Functions[0].Result.Kind)
	assert.Equal(t, "Fault", file.Functions[0].Result.Error)
}

func TestInspector_Attributes(t *testing.T) {
	source := `#[wasm_bindgen(js_name = rawHead, skip_typescript)]
#[cfg_attr(feature = "x", inline)]
#[doc = "head"]
pub fn raw_head() {}
`
	file, err := rust.NewInspector(nil).InspectSource("lib.rs", []byte(source))
	require.NoError(t, err)
	require.Len(t, file.Functions, 1)
	attributes := file.Functions[0].Attributes
	require.Len(t, attributes, 3)
	assert.Equal(t, "wasm_bindgen", attributes[0].Name)
	assert.Equal(t, "js_name = rawHead, skip_typescript", attributes[0].Arguments)
	assert.Equal(t, "cfg_attr", attributes[1].Name)
	assert.Equal(t, "doc", attributes[2].Name)
	assert.Equal(t, `"head"`, attributes[2].Arguments)
	assert.Equal(t, 1, attributes[0].Location.StartLine)
	assert.NotNil(t, file.Functions[0].Attribute("cfg_attr"))
}

func TestInspector_BodyModel(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "body.rs"))
	require.NoError(t, err)
	file, err := rust.NewInspector(nil).InspectSource("testdata/body.rs", src)
	require.NoError(t, err)
	assert.Equal(t, "body.rs", file.Name)
	fn := file.LookupFunction("unsafe_memory_operation")
	require.NotNil(t, fn)

	assert.Equal(t, graph.BlockFunction, fn.Body.Kind)
	assert.False(t, fn.Body.Unsafe)
	regions := fn.Body.UnsafeBlocks()
	require.Len(t, regions, 1)
	assert.Equal(t, graph.BlockUnsafe, regions[0].Kind)
	assert.Equal(t, 4, regions[0].Location.StartLine)

	var names []string
	for _, call := range fn.Calls() {
		names = append(names, call.Name)
	}
	assert.ElementsMatch(t, []string{"as_mut_ptr", "len", "write", "offset", "len"}, names)
	assert.Equal(t, "fn unsafe_memory_operation(data: &mut [u8]) -> usize", fn.Signature())

	parse := file.LookupFunction("parse_and_double")
	require.NotNil(t, parse)
	var kinds []graph.BlockKind
	parse.Body.Visit(func(block *graph.Block) bool {
		kinds = append(kinds, block.Kind)
		return true
	})
	assert.Equal(t, []graph.BlockKind{graph.BlockFunction, graph.BlockArm, graph.BlockArm}, kinds)
	var helper *graph.Call
	for _, call := range parse.Calls() {
		if call.Name == "double" {
			helper = call
		}
	}
	require.NotNil(t, helper)
	assert.Equal(t, "Self", helper.Qualifier())
	assert.Equal(t, graph.CallFunction, helper.Kind)
}

func TestInspector_ParseError(t *testing.T) {
	source := `#[wasm_bindgen]
pub fn truncated(data: &mut [u8]) -> usize {
    unsafe {
        data.len()
`
	_, err := rust.NewInspector(nil).InspectSource("broken.rs", []byte(source))
	require.Error(t, err)
	var parseErr *graph.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "broken.rs", parseErr.Path)
	assert.Greater(t, parseErr.Line, 0)
}

func TestInspector_MacroRegionLocation(t *testing.T) {
	source := "#[wasm_bindgen]\npub fn read(p: *const u8) -> String {\n    format!(\n        \"{}\",\n        unsafe { *p }\n    )\n}\n"
	file, err := rust.NewInspector(nil).InspectSource("lib.rs", []byte(source))
	require.NoError(t, err)
	require.Len(t, file.Functions, 1)
	fn := file.Functions[0]
	regions := fn.Body.UnsafeBlocks()
	require.Len(t, regions, 1)
	assert.Equal(t, 5, regions[0].Location.StartLine)
	assert.Equal(t, 9, regions[0].Location.StartColumn)
	require.Len(t, fn.Calls(), 1)
	assert.Equal(t, graph.CallMacro, fn.Calls()[0].Kind)
}
