package reports

import "fmt"

func teacherPrompt(st Student, language, data string) string {
	return fmt.Sprintf(`Act as an experienced educator and data analyst. Based on the following performance data for a student named %[1]s (%[2]s), generate a detailed academic performance analysis report. The entire report must be in %[3]s.

Formatting rules:
- Each section heading is enclosed in double asterisks and ends with a colon, on its own line. For example: **Overall Summary:**
- Lists use bullet points starting with a hyphen (-).

Use exactly these sections:
1. **Overall Summary:** a brief, holistic overview of the student's performance.
2. **Identified Strengths:** subjects or chapters where the student has excelled (scores above 85%%). Be specific.
3. **Areas for Improvement:** subjects or chapters where the student is struggling (scores below 70%%), framed constructively.
4. **Study Patterns & Trends:** observations on quiz versus practice frequency, how the student responds to difficulty (for example practising after a low quiz score) and pacing and consistency from the timestamps.
5. **Actionable Recommendations:** concrete teaching suggestions.

Student performance data (quizzes, practice exercises and cognitive exercises):
---
%[4]s
---

Keep the tone professional, insightful and focused on growth.`, st.Name, st.Grade, language, data)
}

func parentPrompt(st Student, language, data string) string {
	return fmt.Sprintf(`Act as a friendly and encouraging school counselor. Based on the following performance data for a student named %[1]s (%[2]s), write a progress report for their parents. The entire report must be in %[3]s.

Formatting rules:
- Section headings are friendly, enclosed in double asterisks and end with a colon, on their own line. For example: **Where %[1]s is Shining:**
- Lists use bullet points starting with a hyphen (-).

Use these sections:
1. **A Quick Note on %[1]s's Progress:** a warm opening celebrating their effort.
2. **Where %[1]s is Shining:** subjects where they are doing well.
3. **Opportunities for Growth:** areas to focus on, framed positively.
4. **How %[1]s is Learning:** simple, encouraging observations about their study habits.
5. **Tips for Home Support:** simple tips parents can act on.

Student performance data (quizzes, practice exercises and cognitive exercises):
---
%[4]s
---

Be empathetic and collaborative so parents feel like partners in their child's education.`, st.Name, st.Grade, language, data)
}
