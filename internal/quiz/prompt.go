package quiz

import (
	"fmt"
	"strings"
)

func systemPrompt(language string) string {
	return "You are an expert question setter for the Indian K-12 CBSE curriculum. " +
		"Every question has exactly four distinct options and exactly one correct option. " +
		"The correct answer must be copied word for word from the options. " +
		"The entire response, including all questions, options, answers and explanations, must be in the " +
		language + " language. Write plain text; no markdown."
}

func temperature(t Type) float64 {
	switch t {
	case TypePractice:
		return 0.7
	case TypeIQ, TypeEQ:
		return 0.9
	}
	return 0.8
}

func buildUserMessage(in GenerateInput) string {
	var b strings.Builder
	n := in.count()

	switch in.Type {
	case TypeQuiz:
		fmt.Fprintf(&b, "Create a %d-question multiple-choice quiz for a %s student on the chapter %q in %s.\n",
			n, in.Grade, in.Chapter, in.Subject)
		b.WriteString("The questions should test conceptual understanding and application of knowledge.\n")
		b.WriteString("Give each question four options, the correct answer and a brief explanation of why it is right.\n")
		b.WriteString("Associate each question with one of the key concepts below through the conceptTitle field.\n\nKey concepts:\n")
		titles := make([]string, 0, len(in.Concepts))
		for _, c := range in.Concepts {
			fmt.Fprintf(&b, "Title: %s\nExplanation: %s\n\n", c.Title, c.Explanation)
			titles = append(titles, c.Title)
		}
		fmt.Fprintf(&b, "Valid values for conceptTitle: %s", strings.Join(titles, "; "))

	case TypePractice:
		c := in.Concepts[0]
		fmt.Fprintf(&b, "Generate %d multiple-choice questions for a %s student to practise the concept %q from the chapter %q in %s.\n",
			n, in.Grade, c.Title, in.Chapter, in.Subject)
		b.WriteString("The questions reinforce the core skill of the concept; keep them direct and clear rather than broad problem solving.\n")
		b.WriteString("For example, for simple addition ask calculations like \"5 + 7 = ?\"; for identifying nouns ask which word in a sentence is a noun.\n")
		fmt.Fprintf(&b, "Set conceptTitle to exactly %q.\n\n", c.Title)
		fmt.Fprintf(&b, "Explanation: %s\nReal-world example: %s", c.Explanation, c.RealWorldExample)

	case TypeDiagnostic:
		fmt.Fprintf(&b, "Create a %d-question diagnostic multiple-choice quiz for a %s student in %s.\n", n, in.Grade, in.Subject)
		b.WriteString("It assesses foundational knowledge to find the student's current level and includes:\n")
		b.WriteString("- 1-2 questions on prerequisite concepts from the previous grade.\n")
		fmt.Fprintf(&b, "- 2-3 questions on core topics of the %s syllabus.\n", in.Grade)
		b.WriteString("- 1 slightly more challenging question to gauge advanced understanding.\n")
		b.WriteString("Set conceptTitle to the topic tested, or \"Foundational Knowledge\".")

	case TypeIQ:
		fmt.Fprintf(&b, "Generate %d fun, engaging multiple-choice IQ questions suitable for a %s student.\n", n, in.Grade)
		b.WriteString("For each give the puzzle, four options, the correct option, a clear simple explanation of the logic, ")
		fmt.Fprintf(&b, "and the skill tested, one of: %s.", strings.Join(IQSkills, ", "))

	case TypeEQ:
		fmt.Fprintf(&b, "Generate %d multiple-choice emotional intelligence scenarios suitable for a %s student.\n", n, in.Grade)
		b.WriteString("Scenarios are short and relatable to a student's life at school, with friends or with family.\n")
		b.WriteString("For each give the scenario, a question asking for the best course of action, four possible responses, ")
		b.WriteString("the bestResponse showing the most emotional intelligence, a simple explanation of why it is the most constructive or empathetic, ")
		fmt.Fprintf(&b, "and the skill tested, one of: %s.", strings.Join(EQSkills, ", "))
	}
	return b.String()
}
