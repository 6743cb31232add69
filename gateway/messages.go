package gateway

import (
	"fmt"

	"github.com/m3rciful/flagbot/quiz"
)

// button is one quick-reply option rendered under a message.
type button struct {
	Body string `json:"body"`
}

// outboundMessage is the gateway wire format for a single send.
// Image and Buttons are optional; Body is always present.
type outboundMessage struct {
	To      string   `json:"to"`
	Type    string   `json:"type"`
	Body    string   `json:"body"`
	Image   string   `json:"image,omitempty"`
	Buttons []button `json:"buttons,omitempty"`
}

func buttons(labels ...string) []button {
	out := make([]button, 0, len(labels))
	for _, l := range labels {
		out = append(out, button{Body: l})
	}
	return out
}

func difficultyPromptMessage(to string) outboundMessage {
	return outboundMessage{
		To:      to,
		Type:    "buttons",
		Body:    "Welcome to Fun with Flags! Choose a difficulty to start.",
		Buttons: buttons(quiz.LabelBeginner, quiz.LabelHard),
	}
}

func invalidDifficultyMessage(to string) outboundMessage {
	return outboundMessage{
		To:      to,
		Type:    "buttons",
		Body:    "That difficulty is not recognized. Pick one of the options below.",
		Buttons: buttons(quiz.LabelBeginner, quiz.LabelHard),
	}
}

func questionMessage(to, imageURL string, q quiz.Question) outboundMessage {
	return outboundMessage{
		To:      to,
		Type:    "image_buttons",
		Body:    "Which country does this flag belong to?",
		Image:   imageURL,
		Buttons: buttons(q.Options...),
	}
}

func feedbackMessage(to string, wasCorrect bool, countryName, enrichment string) outboundMessage {
	body := fmt.Sprintf("Correct! That was the flag of %s.", countryName)
	if !wasCorrect {
		body = fmt.Sprintf("Not quite. That was the flag of %s.", countryName)
	}
	if enrichment != "" {
		body += "\n\n" + enrichment
	}
	return outboundMessage{
		To:      to,
		Type:    "buttons",
		Body:    body,
		Buttons: buttons(quiz.LabelNext),
	}
}

func gameOverMessage(to string, score, total int) outboundMessage {
	return outboundMessage{
		To:      to,
		Type:    "buttons",
		Body:    fmt.Sprintf("Game over! You scored %d out of %d.", score, total),
		Buttons: buttons(quiz.LabelPlayAgain),
	}
}
