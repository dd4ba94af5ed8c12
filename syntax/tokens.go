// Copyright (c) 2025, The mkparse Authors
// See LICENSE for licensing information

package syntax

// AssignOperator is the operator of a variable assignment.
type AssignOperator int

const (
	Assign         AssignOperator = iota // =
	QuestAssign                          // ?=
	ColonAssign                          // :=
	DblColonAssign                       // ::=
	PlusAssign                           // +=
	ShellAssign                          // !=
)

var assignOpStrings = [...]string{
	Assign:         "=",
	QuestAssign:    "?=",
	ColonAssign:    ":=",
	DblColonAssign: "::=",
	PlusAssign:     "+=",
	ShellAssign:    "!=",
}

func (o AssignOperator) String() string { return assignOpStrings[o] }

// RuleOperator is the operator separating a rule's targets from its
// prerequisites.
type RuleOperator int

const (
	Colon    RuleOperator = iota // :
	DblColon                     // ::
)

var ruleOpStrings = [...]string{
	Colon:    ":",
	DblColon: "::",
}

func (o RuleOperator) String() string { return ruleOpStrings[o] }
