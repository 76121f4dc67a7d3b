package model

import "time"

// KilledMutant records a mutant together with the test run that killed it.
type KilledMutant struct {
	Spec       MutantSpec  `json:"spec"`
	TestResult *TestResult `json:"test_result,omitempty"`
	// SessionID is the session whose test killed the mutant.
	SessionID string `json:"session_id"`
	// ViaSweep is set when the kill came from re-running another mutant's
	// killing test.
	ViaSweep bool `json:"via_sweep"`
}

// CampaignEntry is what the scheduler reports after each session.
type CampaignEntry struct {
	Result SessionResult `json:"result"`
	// Killed holds the session's own mutant (when killed) followed by the
	// mutants killed by the coverage sweep.
	Killed []KilledMutant `json:"killed"`
	Err    string         `json:"error,omitempty"`
}

// CampaignStatus is a snapshot of the scheduler's sets.
type CampaignStatus struct {
	Total    int        `json:"total" yaml:"total"`
	Queued   int        `json:"queued" yaml:"queued"`
	Alive    int        `json:"alive" yaml:"alive"`
	Killed   int        `json:"killed" yaml:"killed"`
	Sessions int        `json:"sessions" yaml:"sessions"`
	Queue    []MutantID `json:"queue" yaml:"queue"`
}

// CampaignResult is the final outcome of a scheduler run.
type CampaignResult struct {
	ID       string         `json:"id" yaml:"id"`
	Mutants  []MutantSpec   `json:"mutants" yaml:"mutants"`
	Alive    []MutantSpec   `json:"alive" yaml:"alive"`
	Killed   []KilledMutant `json:"killed" yaml:"-"`
	Sessions []string       `json:"sessions" yaml:"sessions"`
	Started  time.Time      `json:"started" yaml:"started"`
	Finished time.Time      `json:"finished" yaml:"finished"`
}

// CampaignSummary aggregates the sessions of a campaign.
type CampaignSummary struct {
	ID                string  `json:"id" yaml:"id"`
	Mutants           int     `json:"mutants" yaml:"mutants"`
	Killed            int     `json:"killed" yaml:"killed"`
	Alive             int     `json:"alive" yaml:"alive"`
	Score             float64 `json:"score" yaml:"score"`
	Sessions          int     `json:"sessions" yaml:"sessions"`
	Done              int     `json:"done" yaml:"done"`
	Aborted           int     `json:"aborted" yaml:"aborted"`
	Failed            int     `json:"failed" yaml:"failed"`
	ClaimedEquivalent int     `json:"claimed_equivalent" yaml:"claimed_equivalent"`
	DirectKills       int     `json:"direct_kills" yaml:"direct_kills"`
	SweepKills        int     `json:"sweep_kills" yaml:"sweep_kills"`
	PromptTokens      int     `json:"prompt_tokens" yaml:"prompt_tokens"`
	CompletionTokens  int     `json:"completion_tokens" yaml:"completion_tokens"`
}
