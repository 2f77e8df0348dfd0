package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientLabel(t *testing.T) {
	t.Run("chrome on linux", func(t *testing.T) {
		got := clientLabel("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		assert.Contains(t, got, "Chrome 120")
		assert.Contains(t, got, "Linux")
	})

	t.Run("empty header yields empty label", func(t *testing.T) {
		assert.Empty(t, clientLabel(""))
	})
}
