package config

const DefaultSentimentPrompt = `Classify the overall sentiment of the following care note.
Answer with exactly one of these words: Positive, Negative, Neutral.
Do not output any other text.

Care note:
%s`

const DefaultEmotionPrompt = `Identify the emotions expressed by or observed in the client in the following care note.
Return ONLY a single JSON object mapping each emotion name to its intensity between 0 and 1.
Example: {"anxiety": 0.6, "contentment": 0.2}
If no emotions are present, return {}.

Care note:
%s`

const DefaultSafeguardingPrompt = `You are a safeguarding lead reviewing a care note.
Identify any risks to the client's safety or wellbeing and suggest appropriate safeguarding actions.
Respond in plain text.

Care note:
%s`

const DefaultDistributionPrompt = `Based on the following patient data:

Sentiment Distribution: %s
Emotion Distribution: %s

1. Provide a brief analysis of the patient's mental health.
2. Suggest actionable recommendations to support their mental well-being.

Be concise and professional in your response.`
