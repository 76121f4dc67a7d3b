package model

// Role is the author of a conversation message.
type Role string

const (
	// RoleSystem marks system prompts.
	RoleSystem Role = "system"
	// RoleUser marks messages written by guut.
	RoleUser Role = "user"
	// RoleAssistant marks model completions.
	RoleAssistant Role = "assistant"
)

// State is the debugging session state carried by the tag of a message.
type State string

// Session states. Done, Aborted and Invalid are terminal.
const (
	StateEmpty                               State = "empty"
	StateInitial                             State = "initial"
	StateExperimentStated                    State = "experiment_stated"
	StateExperimentDoesntCompile             State = "experiment_doesnt_compile"
	StateExperimentResultsGiven              State = "experiment_results_given"
	StateTestInstructionsGiven               State = "test_instructions_given"
	StateTestStated                          State = "test_stated"
	StateTestDoesntCompile                   State = "test_doesnt_compile"
	StateTestDoesntDetectMutant              State = "test_doesnt_detect_mutant"
	StateDone                                State = "done"
	StateClaimedEquivalent                   State = "claimed_equivalent"
	StateEquivalenceMessageGiven             State = "equivalence_message_given"
	StateIncompleteResponse                  State = "incomplete_response"
	StateIncompleteResponseInstructionsGiven State = "incomplete_response_instructions_given"
	StateAborted                             State = "aborted"
	StateInvalid                             State = "invalid"
)

var taggableStates = map[State]struct{}{
	StateInitial:                             {},
	StateExperimentStated:                    {},
	StateExperimentDoesntCompile:             {},
	StateExperimentResultsGiven:              {},
	StateTestInstructionsGiven:               {},
	StateTestStated:                          {},
	StateTestDoesntCompile:                   {},
	StateTestDoesntDetectMutant:              {},
	StateDone:                                {},
	StateClaimedEquivalent:                   {},
	StateEquivalenceMessageGiven:             {},
	StateIncompleteResponse:                  {},
	StateIncompleteResponseInstructionsGiven: {},
	StateAborted:                             {},
	StateInvalid:                             {},
}

// Valid reports whether s can appear as a message tag.
func (s State) Valid() bool {
	_, ok := taggableStates[s]
	return ok
}

// Terminal reports whether a session in state s is finished.
func (s State) Terminal() bool {
	return s == StateDone || s == StateAborted || s == StateInvalid
}

// Usage reports token accounting for one completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// Message is one entry of a conversation. Tag is empty for untagged messages.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	Tag     State  `json:"tag,omitempty"`
	Usage   *Usage `json:"usage,omitempty"`
}

// Conversation is an append-only message log. The current state and per-tag
// counters are maintained on every Append.
type Conversation struct {
	messages []Message
	state    State
	counts   map[State]int
}

// NewConversation builds a conversation by appending messages in order.
func NewConversation(messages ...Message) *Conversation {
	c := &Conversation{
		state:  StateEmpty,
		counts: make(map[State]int),
	}

	for _, msg := range messages {
		c.Append(msg)
	}

	return c
}

// Append adds msg to the log and updates the current state.
func (c *Conversation) Append(msg Message) {
	if c.counts == nil {
		c.counts = make(map[State]int)
	}

	c.messages = append(c.messages, msg)

	if msg.Tag.Valid() {
		c.state = msg.Tag
		c.counts[msg.Tag]++

		return
	}

	c.state = StateInvalid
}

// State returns the tag of the last message, StateEmpty for an empty log and
// StateInvalid when the last message carries no valid tag.
func (c *Conversation) State() State {
	if len(c.messages) == 0 {
		return StateEmpty
	}

	return c.state
}

// Count returns how many messages were tagged with tag.
func (c *Conversation) Count(tag State) int {
	return c.counts[tag]
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// At returns the message at index i.
func (c *Conversation) At(i int) Message {
	return c.messages[i]
}

// Messages returns a copy of the log.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)

	return out
}
