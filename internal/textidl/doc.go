// Package textidl is a reference implementation of the parser.Parser
// contract for a small curly-brace IDL text syntax:
//
//	namespace pkg {
//	  // a dto
//	  dto User {
//	    id: i32
//	    name: string
//	  }
//	  @deprecated
//	  rpc GetUser(id: i32) -> User
//	  enum Color { Red, Green = 5, Blue }
//	  alias UserId = i32
//	}
//
// It is a minimal, readable reference implementation, not a
// production-grade parser for any real-world IDL: a hand-rolled
// recursive-descent lexer and parser over a fully pre-lexed token
// stream, without a CST/branch framework, since this module's domain
// is the API model, not source-position-preserving rewriting.
package textidl
