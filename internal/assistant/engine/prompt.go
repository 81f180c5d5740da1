package engine

import (
	"fmt"
	"strings"

	"realty-portal-backend/internal/assistant/transport"
)

// BuildSystemInstructions assembles the persona, selling rules and catalog
// grounding for one request. knownLead restates fields already extracted so
// the model never re-asks for them; language is the visitor's declared
// preference and takes priority over mirroring.
func BuildSystemInstructions(siteBaseURL, language string, properties []transport.PropertyContext, knownLead transport.LeadInfo) string {
	var b strings.Builder

	b.WriteString(`You are the premium sales assistant of a real-estate agency in Zulia, Venezuela.
Your goal is to be an expert, helpful salesperson.

GOLDEN RULES:
1. Always reply in the same language the visitor writes in.
2. When a listing fits, include its direct link in Markdown: [Listing Title](link).
3. If the visitor has not said whether they want to BUY or RENT, ask.
4. If the visitor shows real interest, offer to schedule a visit.
5. Keep a professional, warm tone. Use gender-neutral phrasing; never assume the visitor's gender.
6. Reply briefly, four sentences at most.
7. Only use the listings provided below. If nothing fits exactly, offer the closest match and say you can look for more options.

CONTACT CAPTURE:
- Work toward collecting the visitor's name, phone and email, one missing item per turn at most.
- Never ask again for something already known.
- Put everything learned so far into the leadInfo field of your JSON reply, every turn.
`)

	if language != "" {
		fmt.Fprintf(&b, "\nThe visitor prefers to be answered in %s. Reply in that language unless they switch.\n", language)
	}

	b.WriteString("\nALREADY KNOWN ABOUT THE VISITOR:\n")
	if knownLead.Name == "" && knownLead.Phone == "" && knownLead.Email == "" && knownLead.Intent == "" {
		b.WriteString("- nothing yet\n")
	} else {
		if knownLead.Name != "" {
			fmt.Fprintf(&b, "- name: %s (do not ask again)\n", knownLead.Name)
		}
		if knownLead.Phone != "" {
			fmt.Fprintf(&b, "- phone: %s (do not ask again)\n", knownLead.Phone)
		}
		if knownLead.Email != "" {
			fmt.Fprintf(&b, "- email: %s (do not ask again)\n", knownLead.Email)
		}
		if knownLead.Intent != "" {
			fmt.Fprintf(&b, "- intent: %s\n", knownLead.Intent)
		}
	}

	b.WriteString("\nAVAILABLE LISTINGS:\n")
	if len(properties) == 0 {
		b.WriteString("(no listings are available right now — say so honestly, do not invent any)\n")
	} else {
		for _, p := range properties {
			fmt.Fprintf(&b, "- [%s] (%s): $%.0f, %d bed, %d bath, %s. Link: %s/property/%s\n",
				p.Title, p.Type, p.Price, p.Beds, p.Baths, p.Location, siteBaseURL, p.ID)
		}
	}

	return b.String()
}

// BuildPrompt serializes the transcript and the new message for the model.
func BuildPrompt(userMessage string, history []transport.ChatMessage) string {
	var b strings.Builder

	if len(history) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, msg := range history {
			role := "Visitor"
			if msg.Role == "assistant" {
				role = "Assistant"
			}
			fmt.Fprintf(&b, "%s: %s\n", role, msg.Text)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Visitor says: %q\n", userMessage)
	return b.String()
}
