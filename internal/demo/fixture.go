// Package demo builds a small, fixed parse tree for cmd/apexsym to run the
// pipeline against. Because the concrete Apex grammar/lexer lives outside
// this core's scope (spec.md §1), the CLI has no file-reading front end of
// its own yet; this fixture stands in for it until a real parser is wired
// in front of internal/parsetree.
package demo

import (
	"github.com/apex-lang-tools/symbol-core/internal/parsetree"
	"github.com/apex-lang-tools/symbol-core/internal/source"
)

// Unit returns a small compilation unit whose class starts on line 2:
//
//	public class Greeter {
//	    private String name;
//	    public String greet() {
//	        String message;
//	        return message;
//	    }
//	}
func Unit() *parsetree.Node {
	b := parsetree.NewBuilder()

	field := b.Field("name", "String", parsetree.Pos(3, 18, 4))
	field.Modifiers = []string{"private"}

	greetBody := b.LocalVar("String", parsetree.Pos(5, 8, 7), "message")
	ret := b.Node(parsetree.KindIdentifier, parsetree.RoleStatement, "message", parsetree.Pos(6, 15, 7))

	// Method/class Location spans the whole body, not just the declarator
	// line, so every reference nested inside still falls within the
	// enclosing Block's range when the resolver walks the scope hierarchy
	// by position (spec.md §4.5 step 1).
	methodLoc := source.NewLocation(source.NewRange(4, 4, 7, 5))
	method := b.Method("greet", methodLoc, b.TypeRef("String", parsetree.Pos(4, 11, 6)), nil, greetBody, ret)
	method.Modifiers = []string{"public"}

	classLoc := source.NewLocation(source.NewRange(2, 0, 8, 1))
	class := b.Class("Greeter", classLoc, field, method)
	class.Modifiers = []string{"public"}

	return b.Unit(source.NewLocation(source.NewRange(1, 0, 8, 1)), class)
}
