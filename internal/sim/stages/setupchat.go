package stages

import (
	"strings"
	"time"
	"unicode/utf16"

	"finetune-sim/internal/sim/timeline"
)

const (
	ReplyDelay        = 600 * time.Millisecond
	processingDelay   = 500 * time.Millisecond
	jobDescDelay      = 800 * time.Millisecond
	renameDelay       = 500 * time.Millisecond
	renameTypeSpeed   = 50 * time.Millisecond
	fastTypeThreshold = 500
	fastTypeSpeed     = 3 * time.Millisecond
	slowTypeSpeed     = 15 * time.Millisecond

	ConfiguredProjectName = "Intent Classification Model"
)

const (
	processingNote = "Processing guidelines and analyzing intent classification requirements..."
	missingFiles   = "Thank you for the information. Please upload your guidelines and intent list files to continue."
	configuredNote = "Your intent classification model has been configured with these guidelines. You can now proceed to the next step to set up your training data."
)

// SimplePrompt and DetailedPrompt are suggested opening messages.
const SimplePrompt = `I would like to create a intent classification model for e-commerce customer support, I have uploaded the guidelines and intent list below`

const DetailedPrompt = `I would like to create a intent classification model for e-commerce customer support.

The model should be able to:
- Classify customer support inquiries into 356 different intent categories
- Follow Coupang's AI accuracy performance standards (95% SLA for intent classification)
- Handle complex utterances with multiple intents and prioritize correctly
- Filter out irrelevant utterances (simple requests, feedback, reactions)

I have prepared:
- Guidelines_and_SLAs.txt: Contains the performance standards and classification guidelines
- intent_list.json: Complete list of all 356 intent categories with descriptions

Please process these files and help me set up the training pipeline.`

const jobDescription = `You are an Intent Classification Model for E-commerce Customer Support

━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━

What's my job?

Your primary responsibility is to analyze customer utterances in e-commerce support conversations and accurately classify their intents according to a comprehensive taxonomy of 356 predefined intent categories. You extract the root cause of customer inquiries, distinguish between intents and requests, prioritize multiple intents when present, and filter out irrelevant utterances to ensure appropriate response routing and service quality optimization.

━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━

Who will need my help?

  • Customer service agents handling e-commerce support inquiries
  • AI-powered chatbot systems requiring accurate intent routing
  • Quality assurance teams monitoring customer support performance
  • Business intelligence teams analyzing customer behavior patterns
  • Service optimization teams improving response workflows

━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━

How do I get things done?

  • Analyze complete customer utterances considering full conversational context
  • Apply hierarchical intent structure (depth1~4) to classify intents
  • Distinguish between customer intents (root causes) and requests (desired actions)
  • When multiple intents are detected, prioritize based on P1 > P2 priority levels
  • Detect and extract critical keywords including Intent_tags
  • Filter irrelevant utterances (acknowledgments, feedback, reactions)
  • Cross-reference against 356-intent classification table
  • Maintain 95%+ accuracy for intent detection, 90%+ for request classification
  • Handle complex utterances with multiple intents
  • Provide classification confidence scores and flag ambiguous cases

━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━

What should I avoid?

  • Do not rely solely on keyword matching without context
  • Avoid conflating customer intents with requested actions
  • Do not prioritize secondary topics over root causes
  • Never overlook hierarchical intent structure
  • Avoid misclassifying vendor-responsible vs customer-responsible issues
  • Do not classify acknowledgments/reactions as having intent
  • Never assign multiple intents with equal priority incorrectly
  • Avoid processing customer/product info as actionable intents

━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━

Key Performance Metrics:

  • Intent classification accuracy: 95%+ target
  • Request classification accuracy: 90%+ target
  • Keyword detection accuracy: 95%+ target
  • Irrelevant utterance filtering: 90%+ target
  • Multi-intent handling success rate
  • Monthly evaluation: minimum 500 cases

━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━

Additional Guidelines:

  • Always consider complete utterance context
  • Prioritize vendor-responsibility for physical defects/damage
  • Focus on root cause intent over solution requests
  • Pay attention to temporal context and utterance sequencing
  • Maintain awareness of domain-specific terminology:
    - Coupang Eats, Coupang Play, WOW Membership, Rocket Mobile
  • Apply priority hierarchy consistently
  • Calibrate classification thresholds continuously
  • Reference comprehensive intent classification table for edge cases`

// JobDescription is the generated system prompt for the configured model.
func JobDescription() string {
	return jobDescription
}

// ChatFile is an attachment on a user message.
type ChatFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// ChatReply is one assistant message in a setup exchange.
type ChatReply struct {
	Content string `json:"content"`
	Typing  bool   `json:"typing"`
}

// SetupReplyState is the assistant side of one exchange at one instant.
type SetupReplyState struct {
	Replies []ChatReply `json:"replies"`
	Rename  string      `json:"rename,omitempty"`
	Done    bool        `json:"done"`
}

// typingTime is how long a message takes to type out: one tick per
// character plus the final tick that clears the typing flag.
func typingTime(content string) time.Duration {
	n := len(utf16.Encode([]rune(content)))
	speed := slowTypeSpeed
	if n > fastTypeThreshold {
		speed = fastTypeSpeed
	}
	return time.Duration(n+2) * speed
}

// SetupReplies builds the assistant messages answering a user message.
func SetupReplies(files []ChatFile) []string {
	if len(files) == 0 {
		return []string{missingFiles}
	}
	var ack strings.Builder
	ack.WriteString("Perfect! I've received your files:\n\n")
	for _, f := range files {
		ack.WriteString("✓ " + f.Name + "\n")
	}
	return []string{
		ack.String(),
		processingNote,
		jobDescription + "\n\n---\n\n" + configuredNote,
	}
}

// SetupChat records the assistant's answer to a user message. With files the
// answer configures the project and renames it once the last reply is typed.
func SetupChat(files []ChatFile) *timeline.Timeline[SetupReplyState] {
	replies := SetupReplies(files)
	delays := []time.Duration{0, processingDelay, jobDescDelay}

	return timeline.Record(SetupReplyState{}, 0, func(l *timeline.Loop, emit func(SetupReplyState)) {
		var sent []ChatReply
		snapshot := func(done bool, rename string) SetupReplyState {
			out := make([]ChatReply, len(sent))
			copy(out, sent)
			return SetupReplyState{Replies: out, Done: done, Rename: rename}
		}

		var send func(i int)
		send = func(i int) {
			l.SetTimeout(delays[i], func() {
				sent = append(sent, ChatReply{Content: replies[i], Typing: true})
				emit(snapshot(false, ""))

				l.SetTimeout(typingTime(replies[i]), func() {
					sent[i].Typing = false
					last := i == len(replies)-1
					if !last {
						emit(snapshot(false, ""))
						send(i + 1)
						return
					}
					if len(files) == 0 {
						emit(snapshot(true, ""))
						return
					}
					emit(snapshot(false, ""))
					typed := time.Duration(len(ConfiguredProjectName)+1) * renameTypeSpeed
					l.SetTimeout(renameDelay+typed, func() {
						emit(snapshot(true, ConfiguredProjectName))
					})
				})
			})
		}

		l.SetTimeout(ReplyDelay, func() { send(0) })
	})
}
