package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"scan", "disable-user", "enable-user", "migrate-taxonomy", "grant-admin"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestEmailFlagRequired(t *testing.T) {
	rootCmd.SetArgs([]string{"disable-user"})
	err := rootCmd.Execute()
	assert.ErrorContains(t, err, `required flag(s) "email" not set`)
}
