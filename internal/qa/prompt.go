package qa

import (
	"fmt"
	"strings"

	"github.com/abhisek/alfanumrik/internal/llm"
)

// AnswerSchema constrains the mentor's reply.
var AnswerSchema = &llm.Schema{
	Name:        "mentor-answer",
	Description: "Mentor reply to a student's concept question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"isRelevant": map[string]any{
				"type":        "boolean",
				"description": "Whether the question is about understanding the concept",
			},
			"responseText": map[string]any{
				"type":        "string",
				"description": "The explanation, or a gentle redirect when not relevant",
			},
		},
		"required":             []any{"isRelevant", "responseText"},
		"additionalProperties": false,
	},
}

// AnalysisSchema constrains the teacher analysis.
var AnalysisSchema = &llm.Schema{
	Name:        "teacher-analysis",
	Description: "Model answer and private teaching notes for a student's question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"modelAnswer":      map[string]any{"type": "string"},
			"pedagogicalNotes": map[string]any{"type": "string"},
		},
		"required":             []any{"modelAnswer", "pedagogicalNotes"},
		"additionalProperties": false,
	},
}

const mentorSystemPrompt = `You are Fitto, a friendly, encouraging and knowledgeable mentor for K-12 students. Help students understand concepts without giving away answers to homework or tests. Be simple, clear and supportive.`

func buildAnswerMessage(q *Question, language string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A student in %s studying %s asked about the concept %q.\n", q.Grade, q.Subject, q.Concept)
	fmt.Fprintf(&b, "Question: %q\n\n", q.Text)
	fmt.Fprintf(&b, `First decide whether the question is relevant to the concept. Questions asking for understanding, clarification or a simpler explanation are relevant. Personal questions, requests to do homework, unrelated topics or anything inappropriate are not.
- If relevant, explain with analogies and simple examples. Explain the why and how rather than only stating the answer.
- If not relevant, politely redirect the student back to %s.
Keep it concise. Write in %s.`, q.Subject, language)
	return b.String()
}

const coachSystemPrompt = `You are an expert teacher and instructional coach following CBSE standards.`

func buildAnalysisMessage(q *Question, language string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A %s student, %s, asked about the concept %q from the chapter %q in %s.\n",
		q.Grade, q.StudentName, q.Concept, q.Chapter, q.Subject)
	fmt.Fprintf(&b, "Question: %q\n\n", q.Text)
	fmt.Fprintf(&b, `Provide:
1. modelAnswer: a clear, correct, grade-appropriate answer that addresses exactly what was asked.
2. pedagogicalNotes: private notes for the teacher covering the likely root of the confusion, common misconceptions at this grade, key vocabulary to emphasise, and a follow-up question or activity to check understanding.
Write in %s.`, language)
	return b.String()
}
