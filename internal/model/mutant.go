// Package model defines the data structures shared by guut's packages.
package model

import "fmt"

// Path represents a file system path.
type Path string

// MutantID is the identity key of a mutant inside a campaign.
type MutantID string

// MutantSpec is the immutable identity of one candidate mutation. The same
// mutation can be regenerated from TargetPath, OperatorName and Occurrence.
type MutantSpec struct {
	// TargetPath is the slash separated file path relative to the module root.
	TargetPath   string `json:"target_path" yaml:"target_path"`
	OperatorName string `json:"operator_name" yaml:"operator_name"`
	Occurrence   int    `json:"occurrence" yaml:"occurrence"`
	LineStart    int    `json:"line_start" yaml:"line_start"`
	LineEnd      int    `json:"line_end" yaml:"line_end"`
}

// ID returns the key used by the scheduler's mutant sets.
func (s MutantSpec) ID() MutantID {
	return MutantID(fmt.Sprintf("%s:%s:%d", s.TargetPath, s.OperatorName, s.Occurrence))
}

func (s MutantSpec) String() string {
	return fmt.Sprintf("%s %s#%d (lines %d-%d)", s.TargetPath, s.OperatorName, s.Occurrence, s.LineStart, s.LineEnd)
}
