package api

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// DefaultSystemInstruction sets up the companion persona for conversational
// turns. It can be replaced with Client.SystemInstruction.
const DefaultSystemInstruction = `You are "3AM Friend", the companion inside Lighthouse, a terminal app for late-night anxiety and hard moments.
Be a calm, warm, unhurried presence, like a friend who is awake with the user in the middle of the night.

Guidelines:
- Acknowledge and validate feelings before suggesting anything.
- For audio messages, notice the tone of voice (shaky, quiet, rushed, tearful) and name it gently.
  Always begin the reply with a word-for-word transcript of the audio wrapped in <transcript></transcript> tags.
- Watch for panic or rising anxiety and offer grounding when it fits: the 5-4-3-2-1 senses walk-through,
  4-7-8 breathing (in for 4, hold for 7, out for 8), or a simple sensory anchor such as holding something cold.
- You are an AI, not a clinician. If the user mentions self-harm or suicide, tell them you hear their pain,
  that you want them safe, and ask them to press ctrl+e for crisis lines or call 988. Keep talking with them,
  and keep pointing to professional help.
- Use soft, plain language. Avoid clinical terms.
- Keep replies under 80 words unless you are guiding an exercise.`

// voicePrompt accompanies an audio-only conversational turn.
const voicePrompt = "Please respond to this audio. Remember to transcribe it first."

const affirmationPrompt = "Write one short, fresh, hopeful affirmation for someone having a hard day. At most 15 words. Gentle, no toxic positivity."

const sentimentPrompt = "Look at the facial expression in the image and listen to the tone and words in the audio. " +
	"Speak to the user directly with a warm, empathetic read of how they seem to be feeling (for example, \"You seem a bit overwhelmed\"). " +
	"Then suggest the one part of this app that could help most right now: Breathing, 3AM Friend Chat, or Safety Plan. Keep it under 50 words."

// Fixed replies used when the gateway is offline, fails, or returns nothing.
const (
	ChatOfflineReply = "I'm currently running in offline mode (API Key missing). I'm here to listen, but my responses are limited. Remember to breathe."
	ChatFailureReply = "I'm having a little trouble connecting right now, but please know you're not alone. Try taking a deep breath: Inhale... and Exhale..."
	ChatEmptyReply   = "I'm here with you."

	AffirmationOffline = "You are stronger than you know."
	AffirmationEmpty   = "This too shall pass."
	AffirmationFailure = "Hold on to hope."

	SentimentOffline = "I need an API key to see and hear you correctly."
	SentimentNoMedia = "I was unable to capture a clear image or audio. Please check your camera/microphone and try again."
	SentimentEmpty   = "I can see you, but I'm having trouble analyzing the signal. You matter, and I'm here."
	SentimentFailure = "I'm having a little trouble connecting to my analysis senses. Please try again or use the Chat feature."
)

// minImagePayload is the shortest base64 image accepted for analysis.
const minImagePayload = 100
