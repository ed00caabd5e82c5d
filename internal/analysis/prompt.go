package analysis

// BuildPrompt returns the classification and extraction prompt with the
// document text appended verbatim.
func BuildPrompt(text string) string {
	return `You are an expert document analysis AI.

You MUST return ONLY valid JSON.
No explanations.
No markdown.
No code fences.
No extra text.

Analyze the document text and return EXACTLY this structure:

{
  "document_type": "",
  "fields": {},
  "summary": []
}

Rules:
- "document_type" must be a short phrase (e.g., "Invoice", "Contract", "Report").
- "fields" must contain ONLY the key information relevant to the detected document type.
- "summary" must be a list of 1 to 5 bullet points (max 5).
- Bullet points must be short, clear, and factual.
- DO NOT include markdown or hyphens. Just plain text strings.

Document text:
` + text + "\n"
}
