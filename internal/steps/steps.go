// Package steps holds the fixed problem-solving sequence shown for every problem.
package steps

// Kind groups steps for styling.
type Kind string

const (
	KindUnderstand Kind = "understand"
	KindAnalyze    Kind = "analyze"
	KindPlan       Kind = "plan"
	KindImplement  Kind = "implement"
	KindTest       Kind = "test"
)

// Step is one stage of the sequence.
type Step struct {
	Number    int // 1-based
	Title     string
	Kind      Kind
	Body      string
	Hint      string
	Questions []string
}

var catalog = []Step{
	{
		Number: 1,
		Title:  "Understand the Problem",
		Kind:   KindUnderstand,
		Body:   "Let's break down what this problem is asking for. Read carefully and identify the key components.",
		Hint:   "Focus on: What are the inputs? What should the output be? Are there any constraints mentioned?",
		Questions: []string{
			"What are the input parameters?",
			"What should your function return?",
			"Are there any edge cases to consider?",
			"What are the constraints (array size, value ranges)?",
		},
	},
	{
		Number: 2,
		Title:  "Analyze Examples",
		Kind:   KindAnalyze,
		Body:   "Think through some examples to understand the pattern. This helps clarify the problem requirements.",
		Hint:   "Try working through 2-3 examples manually. What steps do you naturally take?",
		Questions: []string{
			"Can you solve a simple example by hand?",
			"What pattern do you notice in your manual solution?",
			"How would you explain your thought process?",
			"Are there different ways to approach this?",
		},
	},
	{
		Number: 3,
		Title:  "Plan Your Approach",
		Kind:   KindPlan,
		Body:   "Now let's think about the algorithm. What data structures or techniques might be useful?",
		Hint:   "Consider: Do you need to store information? Is there a mathematical relationship? Can you use sorting or searching?",
		Questions: []string{
			"What data structure would be most helpful?",
			"Is this a brute force or optimized approach?",
			"What's the time complexity of your approach?",
			"Can you outline the main steps of your algorithm?",
		},
	},
	{
		Number: 4,
		Title:  "Consider Edge Cases",
		Kind:   KindImplement,
		Body:   "What could go wrong? Think about boundary conditions and special cases.",
		Hint:   "Empty inputs, single elements, duplicates, negative numbers - what applies here?",
		Questions: []string{
			"What happens with empty input?",
			"How do you handle single element cases?",
			"Are there any invalid inputs to check for?",
			"What about duplicate values?",
		},
	},
	{
		Number: 5,
		Title:  "Implementation Strategy",
		Kind:   KindImplement,
		Body:   "Time to think about the actual code structure. What functions or loops will you need?",
		Hint:   "Break it down: initialization, main logic loop, return statement. Keep it simple first.",
		Questions: []string{
			"What variables need to be initialized?",
			"Do you need nested loops or just one?",
			"When do you know you've found the answer?",
			"How will you structure your return statement?",
		},
	},
	{
		Number: 6,
		Title:  "Test Your Logic",
		Kind:   KindTest,
		Body:   "Before coding, let's verify your approach works with the examples.",
		Hint:   "Walk through your algorithm step-by-step with the given examples. Does it produce the right output?",
		Questions: []string{
			"Does your approach work for all given examples?",
			"Have you tested edge cases?",
			"Is your logic clear and easy to follow?",
			"Are there any obvious optimizations?",
		},
	},
}

// All returns a copy of the catalog in order.
func All() []Step {
	out := make([]Step, len(catalog))
	copy(out, catalog)
	return out
}

// Count returns the number of steps.
func Count() int {
	return len(catalog)
}

// At returns the step at a zero-based index, clamped into range.
func At(index int) Step {
	if index < 0 {
		index = 0
	}
	if index >= len(catalog) {
		index = len(catalog) - 1
	}
	return catalog[index]
}
