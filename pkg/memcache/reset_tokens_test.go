package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConsumeIsSingleUse(t *testing.T) {
	store := NewResetTokens()
	store.Set("tok", "ana@clinic.test", time.Minute)

	assert.Equal(t, "ana@clinic.test", store.Consume("tok"))
	assert.Equal(t, "", store.Consume("tok"))
}

func TestConsumeExpired(t *testing.T) {
	store := NewResetTokens()
	store.Set("tok", "ana@clinic.test", -time.Second)

	assert.Equal(t, "", store.Consume("tok"))
}

func TestConsumeUnknown(t *testing.T) {
	store := NewResetTokens()
	assert.Equal(t, "", store.Consume("nope"))
}

func TestPeekDoesNotConsume(t *testing.T) {
	store := NewResetTokens()
	store.Set("tok", "ana@clinic.test", time.Minute)

	email, ok := store.Peek("tok")
	assert.True(t, ok)
	assert.Equal(t, "ana@clinic.test", email)

	assert.Equal(t, "ana@clinic.test", store.Consume("tok"))
}

func TestSetOverwrites(t *testing.T) {
	store := NewResetTokens()
	store.Set("tok", "old@clinic.test", time.Minute)
	store.Set("tok", "new@clinic.test", time.Minute)

	assert.Equal(t, "new@clinic.test", store.Consume("tok"))
}
