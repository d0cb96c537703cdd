package testhelper

import "github.com/google/uuid"

// UniqueCategory returns a category name no other test uses.
func UniqueCategory() string {
	return "test-" + uuid.New().String()[:8]
}
