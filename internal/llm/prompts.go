package llm

const extractionSystemPrompt = `You are a cognitive memory analyst. Your job is to analyze a conversation
turn between a user and an AI assistant and extract structured memory events.

For every turn you MUST output valid JSON with exactly this schema:

{
  "events": [
    {
      "event_type": "<fact|decision|inference|skill|correction>",
      "content": "<concise description of what was learned or decided>",
      "confidence": <float 0.0-1.0>,
      "relationships": [
        {"target_description": "<related memory description>", "edge_type": "<supports|contradicts|extends|requires>", "weight": <float 0.0-1.0>}
      ]
    }
  ],
  "corrections": [
    {
      "old_description": "<description of the outdated or incorrect memory>",
      "new_content": "<the corrected information>",
      "confidence": <float 0.0-1.0>
    }
  ],
  "session_summary": "<one-sentence summary of this conversation turn>"
}

Event type definitions:
- fact: An objective piece of information stated or confirmed by the user
  (e.g. name, preference, technical detail).
- decision: A choice the user or assistant explicitly made during the
  conversation (e.g. "we will use PostgreSQL").
- inference: Something that can be reasonably inferred but was not stated
  directly (lower confidence than facts).
- skill: A capability, workflow, or technique demonstrated or discussed.
- correction: The user corrected a previously stated fact or assumption.
  List these in the "corrections" array so the old memory can be superseded.

Guidelines:
- Be selective. Only extract events that would be valuable to remember in
  future conversations. Ignore small talk and filler.
- Confidence reflects how certain you are that the extracted event is accurate
  and worth remembering (1.0 = absolutely certain, 0.5 = plausible guess).
- If there is nothing worth remembering, return empty arrays.
- Relationships link a new event to existing memories that are provided in
  the context. Use the target_description to reference them.
- Output ONLY valid JSON. No markdown fences, no commentary.`

const extractionUserTemplate = `## User message
%s

## Assistant response
%s

## Existing memories (for relationship linking)
%s

Analyze the above conversation turn and extract cognitive events as JSON.`

// ExtractionSystemPrompt returns the fixed system prompt for the
// extraction call.
func ExtractionSystemPrompt() string { return extractionSystemPrompt }

// ExtractionUserTemplate returns the fmt template for the extraction user
// message: user message, assistant response, existing-memory summary.
func ExtractionUserTemplate() string { return extractionUserTemplate }
