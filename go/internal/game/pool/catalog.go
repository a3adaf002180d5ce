package pool

import (
	"github.com/codingfighters/trivia/go/internal/models"
)

var catalog = map[string][]models.Question{
	TopicJava: {
		{
			Text:          "Which keyword prevents a Java class from being subclassed?",
			Options:       [4]string{"static", "final", "sealed", "abstract"},
			CorrectOption: 2,
			Topic:         TopicJava,
		},
		{
			Text:          "What is the default value of an uninitialized int field in Java?",
			Options:       [4]string{"null", "undefined", "0", "-1"},
			CorrectOption: 3,
			Topic:         TopicJava,
		},
		{
			Text:          "Which collection preserves insertion order?",
			Options:       [4]string{"HashMap", "TreeSet", "LinkedHashMap", "PriorityQueue"},
			CorrectOption: 3,
			Topic:         TopicJava,
		},
		{
			Text:          "Which method must every Java application entry class define?",
			Options:       [4]string{"start()", "main(String[])", "run()", "init()"},
			CorrectOption: 2,
			Topic:         TopicJava,
		},
		{
			Text:          "What does the JVM garbage collector reclaim?",
			Options:       [4]string{"Unused classes", "Unreachable objects", "Closed files", "Idle threads"},
			CorrectOption: 2,
			Topic:         TopicJava,
		},
		{
			Text:          "Which exception type does not need to be declared or caught?",
			Options:       [4]string{"IOException", "SQLException", "RuntimeException", "ClassNotFoundException"},
			CorrectOption: 3,
			Topic:         TopicJava,
		},
	},
	TopicRust: {
		{
			Text:          "Which keyword makes a Rust variable binding mutable?",
			Options:       [4]string{"var", "mut", "mutable", "let"},
			CorrectOption: 2,
			Topic:         TopicRust,
		},
		{
			Text:          "How many owners can a value have in safe Rust at one time?",
			Options:       [4]string{"One", "Two", "Unlimited", "Depends on the type"},
			CorrectOption: 1,
			Topic:         TopicRust,
		},
		{
			Text:          "Which type represents an optional value in Rust?",
			Options:       [4]string{"Maybe<T>", "Optional<T>", "Option<T>", "Nullable<T>"},
			CorrectOption: 3,
			Topic:         TopicRust,
		},
		{
			Text:          "What does the ? operator do in a Rust function returning Result?",
			Options:       [4]string{"Panics on error", "Propagates the error to the caller", "Ignores the error", "Retries the expression"},
			CorrectOption: 2,
			Topic:         TopicRust,
		},
		{
			Text:          "Which tool is Rust's package manager and build system?",
			Options:       [4]string{"rustup", "cargo", "crates", "rustc"},
			CorrectOption: 2,
			Topic:         TopicRust,
		},
		{
			Text:          "When is a borrow checker error raised?",
			Options:       [4]string{"At runtime", "At compile time", "During linking", "Only in debug builds"},
			CorrectOption: 2,
			Topic:         TopicRust,
		},
	},
	TopicKotlin: {
		{
			Text:          "Which keyword declares a read-only variable in Kotlin?",
			Options:       [4]string{"var", "val", "const", "let"},
			CorrectOption: 2,
			Topic:         TopicKotlin,
		},
		{
			Text:          "How does Kotlin mark a type as nullable?",
			Options:       [4]string{"Optional<T>", "T?", "?T", "Nullable<T>"},
			CorrectOption: 2,
			Topic:         TopicKotlin,
		},
		{
			Text:          "What is the Kotlin equivalent of a Java static member?",
			Options:       [4]string{"companion object", "static block", "object field", "global fun"},
			CorrectOption: 1,
			Topic:         TopicKotlin,
		},
		{
			Text:          "Which function creates an immutable list in Kotlin?",
			Options:       [4]string{"arrayListOf", "mutableListOf", "listOf", "sequenceOf"},
			CorrectOption: 3,
			Topic:         TopicKotlin,
		},
		{
			Text:          "What does the 'data' modifier generate for a Kotlin class?",
			Options:       [4]string{"A builder", "equals, hashCode, toString and copy", "Serialization code", "A default constructor only"},
			CorrectOption: 2,
			Topic:         TopicKotlin,
		},
		{
			Text:          "Which Kotlin feature suspends execution without blocking a thread?",
			Options:       [4]string{"Threads", "Coroutines", "Futures", "Callbacks"},
			CorrectOption: 2,
			Topic:         TopicKotlin,
		},
	},
}
