package enums

import "fmt"

// ChatMessageKind distinguishes participant chatter from engine-written audit
// entries in an order's transcript.
type ChatMessageKind string

const (
	ChatMessageKindText         ChatMessageKind = "text"
	ChatMessageKindStatusChange ChatMessageKind = "status_change"
)

var validChatMessageKinds = []ChatMessageKind{
	ChatMessageKindText,
	ChatMessageKindStatusChange,
}

// String implements fmt.Stringer.
func (k ChatMessageKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known ChatMessageKind.
func (k ChatMessageKind) IsValid() bool {
	for _, candidate := range validChatMessageKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseChatMessageKind converts raw input into a ChatMessageKind.
func ParseChatMessageKind(value string) (ChatMessageKind, error) {
	for _, candidate := range validChatMessageKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid chat message kind %q", value)
}
