package analyzer_test

import (
	"testing"

	"github.com/tsslim/tsslim/internal/analyzer"
	"github.com/tsslim/tsslim/internal/binder"
	"github.com/tsslim/tsslim/internal/fix"
	"github.com/tsslim/tsslim/internal/syntax"
)

func analyze(t *testing.T, text string) []analyzer.Finding {
	t.Helper()
	file := syntax.Parse(syntax.NewSource("test.ts", text))
	return analyzer.Analyze(file, binder.Bind(file))
}

// fixed applies every non-overlapping finding edit and returns the
// resulting text.
func fixed(t *testing.T, text string) string {
	t.Helper()
	findings := analyze(t, text)
	edits := make([]fix.Edit, len(findings))
	for i, f := range findings {
		edits[i] = f.Edit
	}
	out, err := fix.Apply(text, fix.Disjoint(edits))
	if err != nil {
		t.Fatalf("applying edits: %v", err)
	}
	return out
}

func TestAnalyze_NoExplicitArguments(t *testing.T) {
	findings := analyze(t, `
function get<T = string>(k: string): T {}
get("a");
const m: Box = x;
type Box<T = number> = T[];
`)
	if len(findings) != 0 {
		t.Errorf("sites without explicit arguments flagged: %v", findings)
	}
}

func TestAnalyze_FullyRedundantCall(t *testing.T) {
	text := `
function get<T = string, U = number>(k: string): T {}
get<string, number>("a");
`
	findings := analyze(t, text)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	f := findings[0]
	if f.Site.Kind != analyzer.SiteCall {
		t.Errorf("kind = %v, want call", f.Site.Kind)
	}
	if f.CutPoint != 0 {
		t.Errorf("cut point = %d, want 0", f.CutPoint)
	}
	if got := text[f.Edit.Start:f.Edit.End]; got != "<string, number>" {
		t.Errorf("edit removes %q", got)
	}
	want := `
function get<T = string, U = number>(k: string): T {}
get("a");
`
	if got := fixed(t, text); got != want {
		t.Errorf("fixed text:\n%s", got)
	}
}

func TestAnalyze_TrailingSuffixOnly(t *testing.T) {
	text := `
function get<T = string, U = number>(k: string): T {}
get<boolean, number>("a");
`
	findings := analyze(t, text)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].CutPoint != 1 {
		t.Errorf("cut point = %d, want 1", findings[0].CutPoint)
	}
	if got := fixed(t, text); got != `
function get<T = string, U = number>(k: string): T {}
get<boolean>("a");
` {
		t.Errorf("fixed text:\n%s", got)
	}
}

func TestAnalyze_RedundantPrefixBlocked(t *testing.T) {
	// T restates its default, but U does not: positional arguments
	// mean T cannot be removed alone.
	findings := analyze(t, `
function get<T = string, U = number>(k: string): T {}
get<string, boolean>("a");
`)
	if len(findings) != 0 {
		t.Errorf("non-removable suffix flagged: %+v", findings)
	}
}

func TestAnalyze_NoDefaultStopsScan(t *testing.T) {
	findings := analyze(t, `
function get<T, U = number>(k: string): T {}
get<string, number>("a");
function put<T = string, U>(k: string): T {}
put<string, number>("a");
`)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].CutPoint != 1 {
		t.Errorf("cut point = %d, want 1", findings[0].CutPoint)
	}
}

func TestAnalyze_BackwardReferencingDefault(t *testing.T) {
	text := `
function entry<K = string, V = K>(k: K): V {}
entry<number, number>("a");
`
	findings := analyze(t, text)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	// V's default is K, bound at this site to number; both arguments
	// restate their effective defaults only when K itself does.
	if findings[0].CutPoint != 1 {
		t.Errorf("cut point = %d, want 1", findings[0].CutPoint)
	}
	if got := fixed(t, text); got != `
function entry<K = string, V = K>(k: K): V {}
entry<number>("a");
` {
		t.Errorf("fixed text:\n%s", got)
	}
}

func TestAnalyze_AliasTransparency(t *testing.T) {
	findings := analyze(t, `
type UserID = string;
type Alias2 = UserID;
function get<T = UserID>(k: string): T {}
get<string>("a");
get<Alias2>("b");
`)
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(findings))
	}
	for _, f := range findings {
		if f.CutPoint != 0 {
			t.Errorf("cut point = %d, want 0", f.CutPoint)
		}
	}
}

func TestAnalyze_OpaqueSuppression(t *testing.T) {
	findings := analyze(t, `
function get<T = any>(k: string): T {}
get<any>("a");
type Loop = Loop;
function f2<T = Loop>(k: string): T {}
f2<Loop>("a");
`)
	if len(findings) != 0 {
		t.Errorf("opaque or unresolvable defaults flagged: %+v", findings)
	}
}

func TestAnalyze_SelfReferencingDefaultAlias(t *testing.T) {
	// A generic alias whose default names the alias itself must not
	// send the pipeline into unbounded recursion; its sites resolve
	// unresolvable and stay unflagged.
	findings := analyze(t, `
type A<T = A> = T;
function f<U = A>(v: string): U {}
f<string>("a");
const x: A<string> = y;
`)
	if len(findings) != 0 {
		t.Errorf("sites behind a self-referencing default flagged: %+v", findings)
	}
}

func TestAnalyze_AnyTypedCalleeSkipped(t *testing.T) {
	findings := analyze(t, `
const dyn: any = x;
dyn<string>("a");
`)
	if len(findings) != 0 {
		t.Errorf("any-typed callee flagged: %+v", findings)
	}
}

func TestAnalyze_ScopeShadowing(t *testing.T) {
	// The ID alias in scope at the call site maps to number, not the
	// string alias the default refers to.
	findings := analyze(t, `
type ID = string;
function get<T = ID>(k: string): T {}
namespace other {
	type ID = number;
	function caller() {
		get<ID>("a");
	}
}
`)
	if len(findings) != 0 {
		t.Errorf("shadowed alias treated as equivalent: %+v", findings)
	}
}

func TestAnalyze_ArityOverflowSkipped(t *testing.T) {
	findings := analyze(t, `
function one<T = string>(k: string): T {}
one<string, number>("a");
`)
	if len(findings) != 0 {
		t.Errorf("over-supplied site flagged: %+v", findings)
	}
}

func TestAnalyze_AllSiteKinds(t *testing.T) {
	text := `
class Base<T = string> {}
interface Reader<T = string> { read(): T }
function get<T = string>(k: string): T {}

class Sub extends Base<string> implements Reader<string> {}
const c = new Base<string>();
get<string>("a");
type Ref = Base<string>;
`
	findings := analyze(t, text)
	kinds := make(map[analyzer.SiteKind]int)
	for _, f := range findings {
		kinds[f.Site.Kind]++
	}
	for _, k := range []analyzer.SiteKind{
		analyzer.SiteExtends,
		analyzer.SiteImplements,
		analyzer.SiteNew,
		analyzer.SiteCall,
		analyzer.SiteTypeRef,
	} {
		if kinds[k] != 1 {
			t.Errorf("site kind %v: %d findings, want 1", k, kinds[k])
		}
	}
}

func TestAnalyze_NestedSites(t *testing.T) {
	// The outer argument is not a bare restatement of the default, but
	// the inner reference is itself redundant. Only the inner edit
	// applies on the first pass.
	text := `
type Inner<T = string> = T[];
type Outer<T = number> = { v: T };
const x: Outer<Inner<string>> = y;
`
	findings := analyze(t, text)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if got := fixed(t, text); got != `
type Inner<T = string> = T[];
type Outer<T = number> = { v: T };
const x: Outer<Inner> = y;
` {
		t.Errorf("fixed text:\n%s", got)
	}
}

func TestAnalyze_Idempotence(t *testing.T) {
	text := `
function get<T = string, U = number>(k: string): T {}
get<string, number>("a");
get<boolean, number>("b");
`
	once := fixed(t, text)
	if rest := analyze(t, once); len(rest) != 0 {
		t.Errorf("fixed output still has findings: %+v", rest)
	}
	if twice := fixed(t, once); twice != once {
		t.Errorf("second pass changed the text:\n%s", twice)
	}
}

func TestAnalyze_StructuralArguments(t *testing.T) {
	findings := analyze(t, `
function get<T = { a: string; b?: number }>(k: string): T {}
get<{ b?: number; a: string }>("a");
get<{ a: string; b: number }>("b");
`)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].CutPoint != 0 {
		t.Errorf("cut point = %d, want 0", findings[0].CutPoint)
	}
}

func TestAnalyze_AmbientDefault(t *testing.T) {
	text := `
function get<T = Map<string, number>>(k: string): T {}
get<Map<string, number>>("a");
get<Map<string, string>>("b");
`
	findings := analyze(t, text)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
}
